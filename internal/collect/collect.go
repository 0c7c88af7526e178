// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package collect runs a checker and reduces its diagnostics to a per-file
// mapping of normalized records.
package collect

import (
	"context"
	"fmt"

	"github.com/petar-djukic/diagtree/internal/checker"
	"github.com/petar-djukic/diagtree/pkg/types"
)

// IgnoreSet holds diagnostic codes that are dropped.
type IgnoreSet map[int]struct{}

// NewIgnoreSet builds a set from codes.
func NewIgnoreSet(codes ...int) IgnoreSet {
	s := make(IgnoreSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether code is ignored. A nil set ignores nothing.
func (s IgnoreSet) Has(code int) bool {
	_, ok := s[code]
	return ok
}

// Collect checks files with c under cfg and returns the kept diagnostics
// keyed by file path. Diagnostics without a file or position are dropped,
// as are those whose code is in ignored. Files the checker pulled in on its
// own are kept. Per-file order is the checker's emission order.
//
// A checker error aborts collection and is returned wrapped.
func Collect(ctx context.Context, c checker.Checker, files []string, cfg checker.Config, ignored IgnoreSet) (types.DiagnosticMapping, error) {
	diags, err := c.Check(ctx, files, cfg)
	if err != nil {
		return nil, fmt.Errorf("running %s checker: %w", c.Name(), err)
	}

	mapping := types.DiagnosticMapping{}
	for _, d := range diags {
		if !d.Bound() {
			continue
		}
		if ignored.Has(d.Code) {
			continue
		}
		mapping.Add(types.DiagnosticRecord{
			Code:     d.Code,
			Message:  d.Message.Flatten("\n"),
			File:     d.File.Name(),
			Location: d.File.Location(d.Start),
		})
	}
	return mapping, nil
}
