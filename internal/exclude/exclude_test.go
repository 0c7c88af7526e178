// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package exclude

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkip_CheckOnlyMode(t *testing.T) {
	m, err := Compile(afero.NewMemMapFs(), "/p", DefaultPolicy())
	require.NoError(t, err)

	assert.True(t, m.Skip(Walk, "node_modules", true))
	assert.True(t, m.Skip(Walk, "src/node_modules", true))
	assert.False(t, m.Skip(Tree, "node_modules", true), "tree mirrors disk in check-only mode")
	assert.False(t, m.Skip(Walk, "src", true))
	assert.False(t, m.Skip(Walk, "node_modules", false), "a file named like an excluded dir is kept")
}

func TestSkip_EverywhereMode(t *testing.T) {
	p := DefaultPolicy()
	p.Mode = ModeEverywhere
	m, err := Compile(afero.NewMemMapFs(), "/p", p)
	require.NoError(t, err)

	assert.True(t, m.Skip(Walk, "node_modules", true))
	assert.True(t, m.Skip(Tree, "node_modules", true))
}

func TestSkip_Gitignore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/.gitignore", []byte("# build output\ndist/\n*.log\n\n"), 0o644))

	m, err := Compile(fsys, "/p", Policy{Gitignore: true})
	require.NoError(t, err)

	assert.True(t, m.Skip(Walk, "dist", true))
	assert.True(t, m.Skip(Walk, "debug.log", false))
	assert.True(t, m.Skip(Walk, "src/trace.log", false))
	assert.False(t, m.Skip(Walk, "src/index.ts", false))
	assert.False(t, m.Skip(Tree, "dist", true))
}

func TestSkip_GitignoreMissingFile(t *testing.T) {
	m, err := Compile(afero.NewMemMapFs(), "/p", Policy{Gitignore: true})
	require.NoError(t, err)
	assert.False(t, m.Skip(Walk, "anything.log", false))
}

func TestSkip_NilMatcher(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Skip(Walk, "node_modules", true))
}

func TestMode_StringRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeCheckOnly, ModeEverywhere} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeCheckOnly, false},
		{"check-only", ModeCheckOnly, false},
		{"everywhere", ModeEverywhere, false},
		{"sometimes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
