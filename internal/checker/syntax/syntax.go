// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package syntax is a language-agnostic fallback checker: it parses each file
// with tree-sitter and reports syntax errors. It has no notion of types.
package syntax

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/diagtree/internal/checker"
)

// Diagnostic codes.
const (
	CodeSyntaxError = 1 // tree-sitter ERROR node
	CodeMissing     = 2 // tree-sitter MISSING node
)

// maxSnippet bounds the source text quoted in a message.
const maxSnippet = 40

// languages maps file extensions to tree-sitter grammars.
var languages = map[string]*sitter.Language{
	".go":   golang.GetLanguage(),
	".js":   javascript.GetLanguage(),
	".jsx":  javascript.GetLanguage(),
	".mjs":  javascript.GetLanguage(),
	".cjs":  javascript.GetLanguage(),
	".ts":   typescript.GetLanguage(),
	".mts":  typescript.GetLanguage(),
	".cts":  typescript.GetLanguage(),
	".py":   python.GetLanguage(),
	".yaml": yaml.GetLanguage(),
	".yml":  yaml.GetLanguage(),
}

// Supported reports whether path has a grammar.
func Supported(path string) bool {
	_, ok := languages[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Checker parses files with tree-sitter.
type Checker struct {
	Fs          afero.Fs // default OS
	Concurrency int      // parser goroutines; <= 0 means runtime.NumCPU()
	Logger      *slog.Logger
}

// Name implements checker.Checker.
func (c *Checker) Name() string { return "syntax" }

// Check parses every supported file in files. Diagnostics come back grouped
// by file in input order and, within a file, in source order. cfg is not
// consulted: syntax is the same under every configuration.
func (c *Checker) Check(ctx context.Context, files []string, _ checker.Config) ([]checker.Diagnostic, error) {
	fsys := c.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	results := make([][]checker.Diagnostic, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range files {
		lang, ok := languages[strings.ToLower(filepath.Ext(path))]
		if !ok {
			continue
		}
		i, path := i, path
		g.Go(func() error {
			content, err := afero.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("%w: reading %s: %v", checker.ErrCheckerFailure, path, err)
			}
			diags, err := parseFile(gctx, path, content, lang)
			if err != nil {
				return err
			}
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []checker.Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	c.logger().Debug("syntax check finished", "files", len(files), "diagnostics", len(all))
	return all, nil
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseFile returns one diagnostic per ERROR or MISSING node.
func parseFile(ctx context.Context, path string, content []byte, lang *sitter.Language) ([]checker.Diagnostic, error) {
	root, err := sitter.ParseCtx(ctx, content, lang)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", checker.ErrCheckerFailure, path, err)
	}
	if root == nil || !root.HasError() {
		return nil, nil
	}

	src := checker.NewSourceFile(path, content)
	var diags []checker.Diagnostic
	collectErrors(root, func(n *sitter.Node) {
		d := checker.Diagnostic{File: src, Start: checker.NoPos}
		if start, err := safecast.Conv[int](n.StartByte()); err == nil {
			d.Start = start
		}
		if n.IsMissing() {
			d.Code = CodeMissing
			d.Message = checker.Message(fmt.Sprintf("missing %s", n.Type()))
		} else {
			d.Code = CodeSyntaxError
			d.Message = checker.Message(fmt.Sprintf("syntax error near %q", snippet(n.Content(content))))
		}
		diags = append(diags, d)
	})
	return diags, nil
}

// collectErrors visits ERROR and MISSING nodes in source order. It does not
// descend into ERROR nodes; one report per broken region is enough.
func collectErrors(n *sitter.Node, visit func(*sitter.Node)) {
	if n.IsMissing() || n.Type() == "ERROR" {
		visit(n)
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectErrors(n.Child(i), visit)
	}
}

// snippet trims s to its first line and at most maxSnippet columns.
func snippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return runewidth.Truncate(strings.TrimSpace(s), maxSnippet, "...")
}
