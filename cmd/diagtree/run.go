// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/viper"

	"github.com/petar-djukic/diagtree/internal/render"
	"github.com/petar-djukic/diagtree/pkg/diagtree"
)

// Stdout formats.
const (
	formatJSON = "json"
	formatText = "text"
	formatNone = "none"
)

// runReport builds a Reporter from the bound configuration, runs it, and
// prints the result to stdout.
func runReport(ctx context.Context, v *viper.Viper, target string, stdout, stderr io.Writer) error {
	format := v.GetString("format")
	switch format {
	case formatJSON, formatText, formatNone:
	default:
		return fmt.Errorf("unknown format %q (want json, text, or none)", format)
	}

	logger := newLogger(stderr, v.GetBool("verbose"))

	cfg := diagtree.Config{
		Target:            target,
		Checker:           v.GetString("checker"),
		Scope:             v.GetString("scope"),
		TextPath:          v.GetString("text-out"),
		JSONPath:          v.GetString("json-out"),
		ExcludeDirs:       v.GetStringSlice("exclude"),
		ExcludeEverywhere: v.GetBool("exclude-everywhere"),
		Gitignore:         v.GetBool("gitignore"),
		SourceRoot:        v.GetString("source-root"),
		TSCCommand:        v.GetString("tsc"),
		Logger:            logger,
	}
	if v.IsSet("ignore-codes") {
		cfg.IgnoreCodes = v.GetIntSlice("ignore-codes")
		if cfg.IgnoreCodes == nil {
			cfg.IgnoreCodes = []int{}
		}
	}
	if cfg.ExcludeDirs == nil {
		cfg.ExcludeDirs = []string{}
	}

	r, err := diagtree.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	result, err := r.Run(ctx)
	if err != nil {
		return err
	}

	switch format {
	case formatJSON:
		fmt.Fprintln(stdout, string(result.JSON))
	case formatText:
		style := render.DefaultStyle()
		style.SourceRoot = cfg.SourceRoot
		style.Painter = newColorPainter()
		fmt.Fprint(stdout, style.Render(result.Tree, render.DefaultIndent))
	}

	logger.Info("report saved",
		"root", result.Root,
		"files", len(result.Files),
		"diagnostics", result.Diagnostics,
		"text", cfg.TextPath,
		"json", cfg.JSONPath)
	return nil
}
