// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package collect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/diagtree/internal/checker"
	"github.com/petar-djukic/diagtree/pkg/types"
)

// fakeChecker returns canned diagnostics and records its inputs.
type fakeChecker struct {
	diags    []checker.Diagnostic
	err      error
	gotFiles []string
	gotCfg   checker.Config
}

func (f *fakeChecker) Name() string { return "fake" }

func (f *fakeChecker) Check(_ context.Context, files []string, cfg checker.Config) ([]checker.Diagnostic, error) {
	f.gotFiles = files
	f.gotCfg = cfg
	return f.diags, f.err
}

func source(name, content string) *checker.SourceFile {
	return checker.NewSourceFile(name, []byte(content))
}

func TestCollect_ScenarioA(t *testing.T) {
	b := source("/p/b.ts", "let ok = 1;\nlet n: number = 'x';\n")
	fc := &fakeChecker{diags: []checker.Diagnostic{
		{File: b, Start: 16, Code: 2322, Message: checker.Message("Type mismatch")},
	}}

	files := []string{"/p/a.ts", "/p/b.ts"}
	mapping, err := Collect(context.Background(), fc, files, checker.DefaultConfig, nil)
	require.NoError(t, err)

	assert.Equal(t, files, fc.gotFiles)
	assert.Equal(t, checker.DefaultConfig, fc.gotCfg)

	_, hasA := mapping["/p/a.ts"]
	assert.False(t, hasA)
	require.Len(t, mapping["/p/b.ts"], 1)
	assert.Equal(t, types.DiagnosticRecord{
		Code:     2322,
		Message:  "Type mismatch",
		File:     "/p/b.ts",
		Location: types.Location{Line: 1, Character: 4},
	}, mapping["/p/b.ts"][0])
}

func TestCollect_DropsUnboundDiagnostics(t *testing.T) {
	f := source("/p/x.ts", "x\n")
	fc := &fakeChecker{diags: []checker.Diagnostic{
		{File: nil, Start: 0, Code: 5023, Message: checker.Message("global")},
		{File: f, Start: checker.NoPos, Code: 1, Message: checker.Message("no position")},
	}}

	mapping, err := Collect(context.Background(), fc, nil, checker.DefaultConfig, nil)
	require.NoError(t, err)
	assert.Empty(t, mapping)
}

func TestCollect_ScenarioC_IgnoredCodeLeavesNoEntry(t *testing.T) {
	c := source("/p/c.ts", "obj.missing;\n")
	fc := &fakeChecker{diags: []checker.Diagnostic{
		{File: c, Start: 4, Code: 2339, Message: checker.Message("Property 'missing' does not exist")},
	}}

	mapping, err := Collect(context.Background(), fc, []string{"/p/c.ts"}, checker.DefaultConfig, NewIgnoreSet(17004, 1259, 1208, 2339, 2351))
	require.NoError(t, err)
	_, ok := mapping["/p/c.ts"]
	assert.False(t, ok)
}

func TestCollect_IgnoreSetNeverLeaks(t *testing.T) {
	f := source("/p/f.ts", "a\nb\nc\n")
	var diags []checker.Diagnostic
	for i, code := range []int{1, 2, 3, 2, 1, 4} {
		diags = append(diags, checker.Diagnostic{File: f, Start: i % 6, Code: code, Message: checker.Message("m")})
	}
	ignored := NewIgnoreSet(2, 4)

	mapping, err := Collect(context.Background(), &fakeChecker{diags: diags}, nil, checker.DefaultConfig, ignored)
	require.NoError(t, err)

	for _, recs := range mapping {
		for _, r := range recs {
			assert.False(t, ignored.Has(r.Code), "code %d should be ignored", r.Code)
		}
	}
	assert.Equal(t, 3, mapping.Count())
}

func TestCollect_PreservesEmissionOrderAndForeignFiles(t *testing.T) {
	f := source("/p/f.ts", "one\ntwo\nthree\n")
	dep := source("/lib/dep.d.ts", "declare const x: number;\n")
	fc := &fakeChecker{diags: []checker.Diagnostic{
		{File: f, Start: 8, Code: 3, Message: checker.Message("third line")},
		{File: dep, Start: 0, Code: 9, Message: checker.Message("in dependency")},
		{File: f, Start: 0, Code: 1, Message: checker.Message("first line")},
	}}

	mapping, err := Collect(context.Background(), fc, []string{"/p/f.ts"}, checker.DefaultConfig, nil)
	require.NoError(t, err)

	require.Len(t, mapping["/p/f.ts"], 2)
	assert.Equal(t, "third line", mapping["/p/f.ts"][0].Message)
	assert.Equal(t, "first line", mapping["/p/f.ts"][1].Message)
	assert.Len(t, mapping["/lib/dep.d.ts"], 1, "files the checker pulled in are kept")
}

func TestCollect_FlattensMessageChains(t *testing.T) {
	f := source("/p/f.ts", "x\n")
	fc := &fakeChecker{diags: []checker.Diagnostic{{
		File:  f,
		Start: 0,
		Code:  2345,
		Message: checker.MessageChain{
			Text: "outer",
			Next: []checker.MessageChain{checker.Message("inner")},
		},
	}}}

	mapping, err := Collect(context.Background(), fc, nil, checker.DefaultConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, "outer\n  inner", mapping["/p/f.ts"][0].Message)
}

func TestCollect_CheckerFailure(t *testing.T) {
	fc := &fakeChecker{err: checker.ErrCheckerFailure}

	mapping, err := Collect(context.Background(), fc, []string{"a.ts"}, checker.DefaultConfig, nil)
	assert.Nil(t, mapping)
	require.Error(t, err)
	assert.True(t, errors.Is(err, checker.ErrCheckerFailure))
	assert.Contains(t, err.Error(), "fake")
}

func TestIgnoreSet(t *testing.T) {
	var empty IgnoreSet
	assert.False(t, empty.Has(1))

	s := NewIgnoreSet(1, 2)
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(3))
}
