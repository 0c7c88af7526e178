// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package checker

import (
	"go/token"

	"github.com/petar-djukic/diagtree/pkg/types"
)

// SourceFile is a checked file together with its line table.
type SourceFile struct {
	name string
	tf   *token.File
}

// NewSourceFile indexes the lines of content.
func NewSourceFile(name string, content []byte) *SourceFile {
	fset := token.NewFileSet()
	tf := fset.AddFile(name, -1, len(content))
	tf.SetLinesForContent(content)
	return &SourceFile{name: name, tf: tf}
}

// FromTokenFile wraps a file already registered in a FileSet. name may
// differ from tf.Name() when the checker reports a cleaned path.
func FromTokenFile(name string, tf *token.File) *SourceFile {
	return &SourceFile{name: name, tf: tf}
}

// Name returns the path diagnostics are keyed by.
func (f *SourceFile) Name() string { return f.name }

// Size returns the file length in bytes.
func (f *SourceFile) Size() int { return f.tf.Size() }

// Location maps an offset to a zero-based line and column. For offsets built
// by Offset the column is in the unit the compiler reported.
// Offsets outside the file are clamped to its bounds.
func (f *SourceFile) Location(offset int) types.Location {
	if offset < 0 {
		offset = 0
	}
	if offset > f.tf.Size() {
		offset = f.tf.Size()
	}
	pos := f.tf.Position(f.tf.Pos(offset))
	return types.Location{Line: pos.Line - 1, Character: pos.Column - 1}
}

// Offset maps a one-based line and column, as printed by compilers, to an
// offset. The column is added to the line start as is, so Location gives
// back column-1 in the compiler's own unit: UTF-16 code units for tsc, bytes
// for Go. On non-ASCII lines a tsc offset is therefore not a byte offset.
// Out-of-range lines clamp to the first or last line.
func (f *SourceFile) Offset(line, column int) int {
	if line < 1 {
		line = 1
	}
	if n := f.tf.LineCount(); line > n {
		if n == 0 {
			return 0
		}
		line = n
	}
	if column < 1 {
		column = 1
	}
	offset := f.tf.Offset(f.tf.LineStart(line)) + column - 1
	if offset > f.tf.Size() {
		offset = f.tf.Size()
	}
	return offset
}
