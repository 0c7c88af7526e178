// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tree

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/diagtree/internal/exclude"
	"github.com/petar-djukic/diagtree/internal/vfs"
	"github.com/petar-djukic/diagtree/internal/walker"
	"github.com/petar-djukic/diagtree/pkg/types"
)

func setupFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fsys, f, []byte("export {};\n"), 0o644))
	}
	return fsys
}

func fileChild(t *testing.T, dir *types.DirectoryNode, name string) *types.FileNode {
	t.Helper()
	for _, c := range dir.Children {
		if c.NodeName() == name {
			f, ok := c.(*types.FileNode)
			require.True(t, ok, "%s is not a file", name)
			return f
		}
	}
	t.Fatalf("no child %q in %s", name, dir.Name)
	return nil
}

func dirChild(t *testing.T, dir *types.DirectoryNode, name string) *types.DirectoryNode {
	t.Helper()
	for _, c := range dir.Children {
		if c.NodeName() == name {
			d, ok := c.(*types.DirectoryNode)
			require.True(t, ok, "%s is not a directory", name)
			return d
		}
	}
	t.Fatalf("no child %q in %s", name, dir.Name)
	return nil
}

func TestBuild_AnnotatesFiles(t *testing.T) {
	fsys := setupFs(t, "/proj/a.ts", "/proj/b.ts")
	mapping := types.DiagnosticMapping{
		"/proj/b.ts": {{Code: 2322, Message: "Type mismatch", File: "/proj/b.ts", Location: types.Location{Line: 0, Character: 6}}},
	}

	root, err := Build(fsys, "/proj", mapping, nil)
	require.NoError(t, err)

	assert.Equal(t, "proj", root.Name)
	require.Len(t, root.Children, 2)

	a := fileChild(t, root, "a.ts")
	assert.True(t, a.ErrorFree)
	assert.Nil(t, a.Errors)

	b := fileChild(t, root, "b.ts")
	assert.False(t, b.ErrorFree)
	require.Len(t, b.Errors, 1)
	assert.Equal(t, 2322, b.Errors[0].Code)
}

func TestBuild_EmptyEntryIsErrorFree(t *testing.T) {
	fsys := setupFs(t, "/proj/c.ts")
	mapping := types.DiagnosticMapping{"/proj/c.ts": {}}

	root, err := Build(fsys, "/proj", mapping, nil)
	require.NoError(t, err)
	assert.True(t, fileChild(t, root, "c.ts").ErrorFree)
}

func TestBuild_PreservesListingOrder(t *testing.T) {
	fsys := setupFs(t, "/proj/zeta.ts", "/proj/alpha/x.ts", "/proj/beta.ts")

	root, err := Build(fsys, "/proj", nil, nil)
	require.NoError(t, err)

	var names []string
	for _, c := range root.Children {
		names = append(names, c.NodeName())
	}
	assert.Equal(t, []string{"alpha", "beta.ts", "zeta.ts"}, names)
}

// The walker skips node_modules but the tree still shows it in the default
// check-only mode; its files are error-free because they were never checked.
func TestBuild_CheckOnlyModeKeepsExcludedDirectory(t *testing.T) {
	fsys := setupFs(t, "/proj/index.ts", "/proj/node_modules/dep/index.js")
	m, err := exclude.Compile(fsys, "/proj", exclude.DefaultPolicy())
	require.NoError(t, err)

	files, err := walker.Walk(fsys, "/proj", m)
	require.NoError(t, err)
	assert.Equal(t, []string{"/proj/index.ts"}, files)

	root, err := Build(fsys, "/proj", types.DiagnosticMapping{}, m)
	require.NoError(t, err)

	nm := dirChild(t, root, "node_modules")
	dep := dirChild(t, nm, "dep")
	idx := fileChild(t, dep, "index.js")
	assert.True(t, idx.ErrorFree)
}

func TestBuild_EverywhereModeDropsExcludedDirectory(t *testing.T) {
	fsys := setupFs(t, "/proj/index.ts", "/proj/node_modules/dep/index.js")
	p := exclude.DefaultPolicy()
	p.Mode = exclude.ModeEverywhere
	m, err := exclude.Compile(fsys, "/proj", p)
	require.NoError(t, err)

	root, err := Build(fsys, "/proj", nil, m)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "index.ts", root.Children[0].NodeName())
}

func TestBuild_LookupIsExactPath(t *testing.T) {
	fsys := setupFs(t, "/proj/src/x.ts")
	mapping := types.DiagnosticMapping{
		"proj/src/x.ts": {{Code: 1}},
		"/proj/x.ts":    {{Code: 2}},
	}

	root, err := Build(fsys, "/proj", mapping, nil)
	require.NoError(t, err)
	assert.True(t, fileChild(t, dirChild(t, root, "src"), "x.ts").ErrorFree)
}

func TestBuild_MissingRoot(t *testing.T) {
	_, err := Build(afero.NewMemMapFs(), "/nope", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, vfs.ErrFileSystem)
}
