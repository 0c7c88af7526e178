// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the shared diagnostic and tree types used across
// diagtree packages.
package types

import "sort"

// Location is a zero-based position within a source file.
type Location struct {
	Line      int `json:"line"`      // Zero-based line
	Character int `json:"character"` // Zero-based column; unit is checker-defined (see SourceFile)
}

// DiagnosticRecord is one normalized finding from a type-checker.
type DiagnosticRecord struct {
	Code     int      `json:"code"`     // Checker-defined classification
	Message  string   `json:"message"`  // Flattened message text
	File     string   `json:"file"`     // Path of the file the finding belongs to
	Location Location `json:"location"` // Position of the finding
}

// DiagnosticMapping maps a file path to its diagnostics in emission order.
// A key exists only for files with at least one diagnostic.
type DiagnosticMapping map[string][]DiagnosticRecord

// Add appends a record under its file path, creating the entry if needed.
func (m DiagnosticMapping) Add(rec DiagnosticRecord) {
	m[rec.File] = append(m[rec.File], rec)
}

// Paths returns the mapping keys in lexical order.
func (m DiagnosticMapping) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Count returns the total number of diagnostics across all files.
func (m DiagnosticMapping) Count() int {
	n := 0
	for _, recs := range m {
		n += len(recs)
	}
	return n
}
