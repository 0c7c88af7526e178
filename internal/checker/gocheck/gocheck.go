// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gocheck type-checks Go sources with go/packages and reports
// go/types errors with their numeric error codes.
package gocheck

import (
	"context"
	"fmt"
	"go/types"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/petar-djukic/diagtree/internal/checker"
)

// Codes for errors that do not come from go/types. go/types codes are small
// positive integers, so these cannot collide.
const (
	CodeListError  = 9001
	CodeParseError = 9002
	CodeUnknown    = 9000
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Checker loads packages containing the given .go files and reports their
// type errors.
type Checker struct {
	Dir    string   // Directory go list runs in (module root); default is the first file's directory
	Env    []string // Extra environment, appended to os.Environ()
	Tests  bool     // Include _test.go files and test packages
	Logger *slog.Logger
}

// Name implements checker.Checker.
func (c *Checker) Name() string { return "go" }

// Check loads every package owning one of the .go files in files. Other
// files are ignored. Soft errors (unused variables and imports) are only
// reported when cfg.Strict is set.
func (c *Checker) Check(ctx context.Context, files []string, cfg checker.Config) ([]checker.Diagnostic, error) {
	var patterns []string
	for _, f := range files {
		if filepath.Ext(f) != ".go" {
			continue
		}
		if !c.Tests && strings.HasSuffix(f, "_test.go") {
			continue
		}
		patterns = append(patterns, "file="+f)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	dir := c.Dir
	if dir == "" {
		dir = filepath.Dir(strings.TrimPrefix(patterns[0], "file="))
	}

	c.logger().Debug("loading go packages", "dir", dir, "files", len(patterns))

	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Env:     append(os.Environ(), c.Env...),
		Tests:   c.Tests,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading packages: %v", checker.ErrCheckerFailure, err)
	}

	r := newResolver()
	var diags []checker.Diagnostic
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		if seen[pkg.ID] {
			continue
		}
		seen[pkg.ID] = true

		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				continue // reported with positions from pkg.TypeErrors
			}
			diags = append(diags, r.packageError(e))
		}
		for _, te := range pkg.TypeErrors {
			if te.Soft && !cfg.Strict {
				continue
			}
			diags = append(diags, r.typeError(te))
		}
	}

	return diags, nil
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// resolver turns checker errors into diagnostics, reading each source file
// at most once.
type resolver struct {
	sources map[string]*checker.SourceFile
}

func newResolver() *resolver {
	return &resolver{sources: make(map[string]*checker.SourceFile)}
}

// typeError binds a go/types error through its FileSet.
func (r *resolver) typeError(te types.Error) checker.Diagnostic {
	d := checker.Diagnostic{
		Start:   checker.NoPos,
		Code:    typeErrorCode(te),
		Message: checker.Message(te.Msg),
	}
	if te.Fset == nil || !te.Pos.IsValid() {
		return d
	}
	tf := te.Fset.File(te.Pos)
	if tf == nil {
		return d
	}
	name := filepath.Clean(tf.Name())
	src, ok := r.sources[name]
	if !ok {
		src = checker.FromTokenFile(name, tf)
		r.sources[name] = src
	}
	d.File = src
	d.Start = tf.Offset(te.Pos)
	return d
}

// packageError binds a list or parse error from its "file:line:col" text.
func (r *resolver) packageError(e packages.Error) checker.Diagnostic {
	code := CodeUnknown
	switch e.Kind {
	case packages.ListError:
		code = CodeListError
	case packages.ParseError:
		code = CodeParseError
	}
	d := checker.Diagnostic{Start: checker.NoPos, Code: code, Message: checker.Message(e.Msg)}

	path, line, col, ok := parsePos(e.Pos)
	if !ok {
		return d
	}
	src := r.load(path)
	if src == nil {
		return d
	}
	d.File = src
	d.Start = src.Offset(line, col)
	return d
}

func (r *resolver) load(path string) *checker.SourceFile {
	if src, ok := r.sources[path]; ok {
		return src
	}
	content, err := os.ReadFile(path)
	if err != nil {
		r.sources[path] = nil
		return nil
	}
	src := checker.NewSourceFile(path, content)
	r.sources[path] = src
	return src
}

// posRegex matches packages.Error positions: file.go:10:5 or file.go:10.
var posRegex = regexp.MustCompile(`^(.+?\.go):(\d+)(?::(\d+))?$`)

func parsePos(pos string) (path string, line, col int, ok bool) {
	m := posRegex.FindStringSubmatch(pos)
	if m == nil {
		return "", 0, 0, false
	}
	line, _ = strconv.Atoi(m[2])
	col = 1
	if m[3] != "" {
		col, _ = strconv.Atoi(m[3])
	}
	return filepath.Clean(m[1]), line, col, true
}

// typeErrorCode reads the error code go/types records in an unexported
// field. It returns CodeUnknown when the field is missing or zero.
func typeErrorCode(te types.Error) int {
	f := reflect.ValueOf(te).FieldByName("go116code")
	if !f.IsValid() || !f.CanInt() {
		return CodeUnknown
	}
	if code := int(f.Int()); code != 0 {
		return code
	}
	return CodeUnknown
}
