// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/json"

	"github.com/petar-djukic/diagtree/pkg/types"
)

// Report pairs the full tree with the scoped mapping.
func Report(tree types.TreeNode, scoped types.DiagnosticMapping) types.Report {
	if scoped == nil {
		scoped = types.DiagnosticMapping{}
	}
	return types.Report{FileTree: tree, ErrorTree: scoped}
}

// MarshalReport encodes r as two-space indented JSON. Map keys are sorted,
// so an unchanged input tree yields identical bytes.
func MarshalReport(r types.Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
