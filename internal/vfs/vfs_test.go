// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package vfs

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEntries_SortedWithDirFlag(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/b.ts", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/p/a.ts", []byte("x"), 0o644))
	require.NoError(t, fsys.MkdirAll("/p/lib", 0o755))

	entries, err := ListEntries(fsys, "/p")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "a.ts"},
		{Name: "b.ts"},
		{Name: "lib", IsDir: true},
	}, entries)
}

func TestListEntries_MissingDir(t *testing.T) {
	_, err := ListEntries(afero.NewMemMapFs(), "/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileSystem)

	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "list", fsErr.Op)
	assert.Equal(t, "/missing", fsErr.Path)
}

func TestReadTextFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/f.txt", []byte("hello"), 0o644))

	t.Run("existing", func(t *testing.T) {
		content, ok, err := ReadTextFile(fsys, "/f.txt")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "hello", content)
	})

	t.Run("missing", func(t *testing.T) {
		content, ok, err := ReadTextFile(fsys, "/nope.txt")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, content)
	})
}

func TestWriteTextFile_CreatesParents(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteTextFile(fsys, "/out/nested/report.json", "{}"))

	data, err := afero.ReadFile(fsys, "/out/nested/report.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWriteTextFile_ReadOnlyFs(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := WriteTextFile(fsys, "report.json", "{}")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileSystem)
}
