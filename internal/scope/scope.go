// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scope restricts a diagnostic mapping to a path prefix.
package scope

import (
	"strings"

	"github.com/petar-djukic/diagtree/pkg/types"
)

// Filter returns a new mapping holding only the entries whose key starts
// with prefix. The match is a plain string prefix, not a path-segment
// match: "src" also keeps "srcgen/x.ts". The input is not modified and the
// record slices are shared with it.
func Filter(mapping types.DiagnosticMapping, prefix string) types.DiagnosticMapping {
	out := make(types.DiagnosticMapping, len(mapping))
	for path, recs := range mapping {
		if strings.HasPrefix(path, prefix) {
			out[path] = recs
		}
	}
	return out
}
