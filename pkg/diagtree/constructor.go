// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package diagtree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/checker"
	"github.com/petar-djukic/diagtree/internal/checker/gocheck"
	"github.com/petar-djukic/diagtree/internal/checker/syntax"
	"github.com/petar-djukic/diagtree/internal/checker/tsc"
	"github.com/petar-djukic/diagtree/internal/collect"
	"github.com/petar-djukic/diagtree/internal/exclude"
	"github.com/petar-djukic/diagtree/internal/render"
	"github.com/petar-djukic/diagtree/internal/report"
	"github.com/petar-djukic/diagtree/pkg/types"
)

const (
	defaultChecker    = CheckerTSC
	defaultTSCCommand = "tsc"
	defaultSourceRoot = "src"
	defaultTSCTimeout = 5 * time.Minute
)

// New validates the config, picks the checker, and returns a ready-to-use
// Reporter. Nothing is read or checked until Run.
func New(cfg Config) (Reporter, error) {
	applyDefaults(&cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	root, err := filepath.Abs(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c, defaultIgnored, err := newChecker(cfg, root)
	if err != nil {
		return nil, err
	}

	ignored := defaultIgnored
	if cfg.IgnoreCodes != nil {
		ignored = cfg.IgnoreCodes
	}

	mode := exclude.ModeCheckOnly
	if cfg.ExcludeEverywhere {
		mode = exclude.ModeEverywhere
	}

	style := render.DefaultStyle()
	style.SourceRoot = cfg.SourceRoot

	runner := report.NewRunner(report.Deps{
		Fs:            cfg.Fs,
		Checker:       c,
		CheckerConfig: checker.DefaultConfig,
		Ignored:       collect.NewIgnoreSet(ignored...),
		Policy: exclude.Policy{
			Dirs:      cfg.ExcludeDirs,
			Mode:      mode,
			Gitignore: cfg.Gitignore,
		},
		Scope:    cfg.Scope,
		Style:    style,
		TextPath: cfg.TextPath,
		JSONPath: cfg.JSONPath,
		Logger:   cfg.Logger,
	})

	return &reporterAdapter{runner: runner, target: root}, nil
}

// newChecker builds the checker named in cfg and returns its default
// ignore list.
func newChecker(cfg Config, root string) (checker.Checker, []int, error) {
	switch cfg.Checker {
	case CheckerTSC:
		fields := strings.Fields(cfg.TSCCommand)
		return &tsc.Checker{
			Command: fields[0],
			Args:    fields[1:],
			WorkDir: root,
			Timeout: defaultTSCTimeout,
			Fs:      cfg.Fs,
			Logger:  cfg.Logger,
		}, tsc.DefaultIgnoredCodes, nil
	case CheckerGo:
		return &gocheck.Checker{Dir: root, Logger: cfg.Logger}, nil, nil
	case CheckerSyntax:
		return &syntax.Checker{Fs: cfg.Fs, Logger: cfg.Logger}, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %w: %q (want one of %s)", ErrInvalidConfig, ErrUnknownChecker, cfg.Checker, strings.Join(Checkers, ", "))
	}
}

// reporterAdapter adapts internal/report.Runner to the public Reporter
// interface.
type reporterAdapter struct {
	runner *report.Runner
	target string
}

func (a *reporterAdapter) Run(ctx context.Context) (*Result, error) {
	rr, err := a.runner.Run(ctx, a.target)
	if rr == nil {
		return &Result{}, err
	}
	res := &Result{
		Root:        rr.Root,
		Files:       rr.Files,
		Tree:        rr.Tree,
		Diagnostics: rr.Mapping.Count(),
		Text:        rr.Text,
		JSON:        rr.JSON,
	}
	if rr.Tree != nil {
		res.Report = render.Report(rr.Tree, rr.Scoped)
	}
	return res, err
}

// validateConfig checks that required fields are present. It runs after
// applyDefaults.
func validateConfig(cfg Config) error {
	if cfg.Target == "" {
		return fmt.Errorf("Target is required")
	}
	if info, err := cfg.Fs.Stat(cfg.Target); err != nil || !info.IsDir() {
		return fmt.Errorf("Target %q does not exist or is not a directory", cfg.Target)
	}
	if cfg.Checker == CheckerTSC && strings.TrimSpace(cfg.TSCCommand) == "" {
		return fmt.Errorf("TSCCommand is empty")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Checker == "" {
		cfg.Checker = defaultChecker
	}
	if cfg.TSCCommand == "" {
		cfg.TSCCommand = defaultTSCCommand
	}
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = defaultSourceRoot
	}
	if cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = exclude.DefaultPolicy().Dirs
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Decode parses a JSON report written by a previous run.
func Decode(data []byte) (types.Report, error) {
	var r types.Report
	err := r.UnmarshalJSON(data)
	return r, err
}
