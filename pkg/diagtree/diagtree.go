// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diagtree defines the public interface for diagtree, a tool that
// type-checks a directory and reports diagnostics as an annotated file tree.
package diagtree

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/pkg/types"
)

// Error types for the diagtree API.
var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrUnknownChecker = errors.New("unknown checker")
)

// Checker names accepted in Config.Checker.
const (
	CheckerTSC    = "tsc"
	CheckerGo     = "go"
	CheckerSyntax = "syntax"
)

// Checkers lists the accepted checker names.
var Checkers = []string{CheckerTSC, CheckerGo, CheckerSyntax}

// Config configures a Reporter.
type Config struct {
	Target  string // Folder to report on (required)
	Checker string // One of Checkers (default "tsc")
	Scope   string // errorTree path prefix, relative to Target unless absolute (default: Target)

	TextPath string // Outline file; empty disables it
	JSONPath string // JSON report file; empty disables it

	ExcludeDirs       []string // Directory names never checked (default node_modules)
	ExcludeEverywhere bool     // Also drop excluded directories from the tree
	Gitignore         bool     // Honour the target's .gitignore

	// IgnoreCodes replaces the checker's default ignore list when non-nil.
	IgnoreCodes []int

	SourceRoot string // Directory name drawn with the source-root connector (default "src")
	TSCCommand string // Command line that runs tsc (default "tsc")

	Fs     afero.Fs     // Filesystem (default OS)
	Logger *slog.Logger // nil discards logs
}

// Result holds the outcome of a Reporter.Run invocation.
type Result struct {
	Root        string               // Absolute target folder
	Files       []string             // Files handed to the checker
	Tree        *types.DirectoryNode // Annotated tree, unscoped
	Report      types.Report         // {fileTree, errorTree}
	Diagnostics int                  // Kept diagnostics before scoping
	Text        string               // Plain outline
	JSON        []byte               // Encoded Report
}

// Reporter produces a diagnostic report for one folder.
type Reporter interface {
	// Run walks the target, runs the checker, builds and renders the
	// annotated tree, and writes the configured outputs.
	Run(ctx context.Context) (*Result, error)
}
