// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output persists rendered reports and logs how they changed since
// the previous run.
package output

import (
	"io"
	"log/slog"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/vfs"
)

// Change summarizes one persisted file.
type Change struct {
	Path    string
	Existed bool // a previous version was on disk
	Added   int  // lines
	Removed int  // lines
}

// Unchanged reports whether the write left the file content as it was.
func (c Change) Unchanged() bool {
	return c.Existed && c.Added == 0 && c.Removed == 0
}

// Writer saves text blobs through an afero filesystem.
type Writer struct {
	Fs     afero.Fs
	Logger *slog.Logger
}

// Save writes content to path. An empty path disables the output and
// returns a zero Change. Failures are vfs errors; a partially written file
// is left in place.
func (w *Writer) Save(path, content string) (Change, error) {
	if path == "" {
		return Change{}, nil
	}

	prev, existed, err := vfs.ReadTextFile(w.Fs, path)
	if err != nil {
		return Change{}, err
	}

	ch := Change{Path: path, Existed: existed}
	if existed {
		ch.Added, ch.Removed = lineChanges(prev, content)
	} else {
		ch.Added, _ = lineChanges("", content)
	}

	if err := vfs.WriteTextFile(w.Fs, path, content); err != nil {
		return Change{}, err
	}

	switch {
	case ch.Unchanged():
		w.logger().Info("output unchanged", "path", path)
	case !existed:
		w.logger().Info("output created", "path", path, "lines", ch.Added)
	default:
		w.logger().Info("output updated", "path", path, "added", ch.Added, "removed", ch.Removed)
	}
	return ch, nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// lineChanges counts inserted and deleted lines between old and new.
func lineChanges(old, new string) (added, removed int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		}
	}
	return added, removed
}

// countLines counts s's lines; a final line without a newline counts.
func countLines(s string) int {
	n := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
