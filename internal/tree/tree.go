// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tree builds the annotated directory tree. It walks the file system
// itself instead of reusing the walker's file list so the tree shows what is
// on disk, including files that were never checked.
package tree

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/exclude"
	"github.com/petar-djukic/diagtree/internal/vfs"
	"github.com/petar-djukic/diagtree/pkg/types"
)

// Build returns the directory node for root. Each file is annotated with
// mapping[path] where path is filepath.Join of its ancestors; callers pass the
// unscoped mapping. The matcher is consulted for the Tree traversal only, which
// in the default check-only mode skips nothing.
func Build(fsys afero.Fs, root string, mapping types.DiagnosticMapping, m *exclude.Matcher) (*types.DirectoryNode, error) {
	return buildDir(fsys, root, "", mapping, m)
}

func buildDir(fsys afero.Fs, dir, rel string, mapping types.DiagnosticMapping, m *exclude.Matcher) (*types.DirectoryNode, error) {
	entries, err := vfs.ListEntries(fsys, dir)
	if err != nil {
		return nil, err
	}

	children := make([]types.TreeNode, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.Name)
		relPath := filepath.Join(rel, e.Name)
		if m.Skip(exclude.Tree, relPath, e.IsDir) {
			continue
		}
		if e.IsDir {
			child, err := buildDir(fsys, path, relPath, mapping, m)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			continue
		}
		children = append(children, types.NewFileNode(e.Name, mapping[path]))
	}

	return types.NewDirectoryNode(filepath.Base(filepath.Clean(dir)), children), nil
}
