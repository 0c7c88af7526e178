// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "encoding/json"

// Report is the structural document written as JSON: the full annotated
// tree and the scope-filtered diagnostics.
type Report struct {
	FileTree  TreeNode          `json:"fileTree"`
	ErrorTree DiagnosticMapping `json:"errorTree"`
}

// UnmarshalJSON decodes the tree through DecodeNode so the variant survives
// the round trip.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		FileTree  json.RawMessage   `json:"fileTree"`
		ErrorTree DiagnosticMapping `json:"errorTree"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tree, err := DecodeNode(raw.FileTree)
	if err != nil {
		return err
	}
	r.FileTree = tree
	r.ErrorTree = raw.ErrorTree
	if r.ErrorTree == nil {
		r.ErrorTree = DiagnosticMapping{}
	}
	return nil
}
