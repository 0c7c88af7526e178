// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report wires the walker, collector, scope filter, tree builder,
// renderers and output writer into one report run.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/checker"
	"github.com/petar-djukic/diagtree/internal/collect"
	"github.com/petar-djukic/diagtree/internal/exclude"
	"github.com/petar-djukic/diagtree/internal/output"
	"github.com/petar-djukic/diagtree/internal/render"
	"github.com/petar-djukic/diagtree/internal/scope"
	"github.com/petar-djukic/diagtree/internal/tree"
	"github.com/petar-djukic/diagtree/internal/walker"
	"github.com/petar-djukic/diagtree/pkg/types"
)

// RunResult holds the outcome of a Runner.Run invocation. pkg/diagtree
// converts it to the public Result.
type RunResult struct {
	Root    string                  // absolute target folder
	Files   []string                // files handed to the checker
	Mapping types.DiagnosticMapping // every kept diagnostic
	Scoped  types.DiagnosticMapping // Mapping restricted to the scope prefix
	Tree    *types.DirectoryNode    // built from the unscoped Mapping
	Text    string                  // plain outline
	JSON    []byte                  // {fileTree, errorTree}
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Fs            afero.Fs
	Checker       checker.Checker
	CheckerConfig checker.Config
	Ignored       collect.IgnoreSet
	Policy        exclude.Policy

	Scope  string // errorTree prefix, relative to the target; empty means the target
	Style  render.Style
	Indent string // outline start indent

	TextPath string // empty disables the outline file
	JSONPath string // empty disables the JSON file

	Logger *slog.Logger
}

// Runner produces one report per Run.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies. A zero Style
// becomes render.DefaultStyle and a nil Fs the OS filesystem.
func NewRunner(deps Deps) *Runner {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Style.DirGlyph == "" && deps.Style.FileGlyph == "" {
		deps.Style = render.DefaultStyle()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{deps: deps}
}

// Run walks target, checks the files found, and renders and persists the
// report. Any failure aborts the run; outputs already written stay.
func (r *Runner) Run(ctx context.Context, target string) (*RunResult, error) {
	log := r.deps.Logger

	root, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", target, err)
	}
	result := &RunResult{Root: root}

	m, err := exclude.Compile(r.deps.Fs, root, r.deps.Policy)
	if err != nil {
		return result, fmt.Errorf("compiling exclusions: %w", err)
	}

	// Step 1: Discover files.
	files, err := walker.Walk(r.deps.Fs, root, m)
	if err != nil {
		return result, fmt.Errorf("walking %s: %w", root, err)
	}
	result.Files = files
	log.Info("files discovered", "root", root, "files", len(files))

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Step 2: Check and normalize.
	mapping, err := collect.Collect(ctx, r.deps.Checker, files, r.deps.CheckerConfig, r.deps.Ignored)
	if err != nil {
		return result, err
	}
	result.Mapping = mapping
	log.Info("check finished", "checker", r.deps.Checker.Name(),
		"files_with_diagnostics", len(mapping), "diagnostics", mapping.Count())

	// Step 3: Scope the error list. The tree below stays unscoped.
	prefix := r.scopePrefix(root)
	result.Scoped = scope.Filter(mapping, prefix)
	log.Debug("scope applied", "prefix", prefix, "kept", len(result.Scoped))

	// Step 4: Build the annotated tree.
	t, err := tree.Build(r.deps.Fs, root, mapping, m)
	if err != nil {
		return result, fmt.Errorf("building tree: %w", err)
	}
	result.Tree = t

	// Step 5: Render.
	plain := r.deps.Style
	plain.Painter = render.Plain{}
	result.Text = plain.Render(t, r.indent())

	result.JSON, err = render.MarshalReport(render.Report(t, result.Scoped))
	if err != nil {
		return result, fmt.Errorf("encoding report: %w", err)
	}

	// Step 6: Persist.
	w := &output.Writer{Fs: r.deps.Fs, Logger: log}
	if _, err := w.Save(r.deps.TextPath, result.Text); err != nil {
		return result, err
	}
	if _, err := w.Save(r.deps.JSONPath, string(result.JSON)); err != nil {
		return result, err
	}

	return result, nil
}

func (r *Runner) indent() string {
	if r.deps.Indent != "" {
		return r.deps.Indent
	}
	return render.DefaultIndent
}

// scopePrefix returns the configured scope. A relative scope is taken
// relative to root. A trailing separator is kept so that "src/" does not
// also match "srcgen".
func (r *Runner) scopePrefix(root string) string {
	s := r.deps.Scope
	if s == "" {
		return root
	}
	if filepath.IsAbs(s) {
		return s
	}
	abs := filepath.Join(root, s)
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, string(filepath.Separator)) {
		abs += string(filepath.Separator)
	}
	return abs
}
