// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package walker lists the files under a root that should be handed to the
// type-checker.
package walker

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/exclude"
	"github.com/petar-djukic/diagtree/internal/vfs"
)

// Walk returns every file under root in pre-order listing order, with
// subdirectories expanded in place. Directories the matcher skips for the
// Walk traversal are not descended into. Paths are filepath.Join(root, ...)
// so they line up with the tree builder's lookups.
//
// Any listing failure, including a missing root, is returned as a
// *vfs.Error.
func Walk(fsys afero.Fs, root string, m *exclude.Matcher) ([]string, error) {
	files := []string{}
	if err := walkDir(fsys, root, "", m, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func walkDir(fsys afero.Fs, dir, rel string, m *exclude.Matcher, files *[]string) error {
	entries, err := vfs.ListEntries(fsys, dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name)
		relPath := filepath.Join(rel, e.Name)
		if m.Skip(exclude.Walk, relPath, e.IsDir) {
			continue
		}
		if e.IsDir {
			if err := walkDir(fsys, path, relPath, m, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, path)
	}
	return nil
}
