// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tsc checks TypeScript and JavaScript sources by running the
// TypeScript compiler and parsing its plain-text diagnostics.
package tsc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/checker"
)

const (
	defaultCommand = "tsc"
	defaultTimeout = 5 * time.Minute
)

// DefaultIgnoredCodes are TypeScript codes that are noise for a project-wide
// report: 17004 (JSX flag), 1259 (default import interop), 1208 (isolated
// modules), 2339 (unknown property), 2351 (not constructable).
var DefaultIgnoredCodes = []int{17004, 1259, 1208, 2339, 2351}

// Checker runs tsc.
type Checker struct {
	Command string        // Executable (default "tsc")
	Args    []string      // Extra leading arguments, e.g. for "npx tsc"
	WorkDir string        // Directory tsc runs in; relative paths resolve against it
	Timeout time.Duration // Kill tsc after this long (default 5m)
	Fs      afero.Fs      // Reads sources to build line tables (default OS)
	Logger  *slog.Logger
}

// Name implements checker.Checker.
func (c *Checker) Name() string { return "tsc" }

// sourceExts are the extensions handed to tsc. Anything else on the command
// line makes tsc report an option error and skip semantic checking.
var sourceExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// Sources returns the TypeScript sources among files, in order.
// Declaration files (.d.ts) are included.
func Sources(files []string) []string {
	var out []string
	for _, f := range files {
		if sourceExts[strings.ToLower(filepath.Ext(f))] {
			out = append(out, f)
		}
	}
	return out
}

// Check runs tsc over the TypeScript sources in files with cfg mapped to
// compiler flags. Other files are ignored.
//
// tsc reports semantic errors only when the program has no syntax errors,
// so a syntax error in any file hides type errors in all of them.
func (c *Checker) Check(ctx context.Context, files []string, cfg checker.Config) ([]checker.Diagnostic, error) {
	files = Sources(files)
	if len(files) == 0 {
		return nil, nil
	}

	command := c.Command
	if command == "" {
		command = defaultCommand
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	args := append([]string{}, c.Args...)
	args = append(args, compilerFlags(cfg)...)
	args = append(args, files...)

	c.logger().Debug("running tsc", "command", command, "files", len(files))

	out, err := runCommand(ctx, c.WorkDir, timeout, command, args...)
	if err != nil {
		var exitErr *exec.ExitError
		// tsc exits 1 or 2 when it found diagnostics; anything else means
		// it did not run properly.
		if !errors.As(err, &exitErr) || (exitErr.ExitCode() != 1 && exitErr.ExitCode() != 2) {
			return nil, fmt.Errorf("%w: running %s: %v: %s", checker.ErrCheckerFailure, command, err, strings.TrimSpace(out))
		}
	}

	entries := parseOutput(out)
	return c.resolve(entries), nil
}

// compilerFlags maps a checker.Config to tsc options.
func compilerFlags(cfg checker.Config) []string {
	flags := []string{"--pretty", "false"}
	if cfg.NoEmit {
		flags = append(flags, "--noEmit")
	}
	if cfg.Strict {
		flags = append(flags, "--strict")
	}
	if cfg.Target != "" {
		flags = append(flags, "--target", cfg.Target)
	}
	if cfg.Module != "" {
		flags = append(flags, "--module", cfg.Module)
	}
	return flags
}

// runCommand executes a command with a timeout and captures combined output.
func runCommand(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return buf.String(), err
}

// entry is one parsed tsc diagnostic before its file is loaded.
type entry struct {
	path    string // empty for global diagnostics
	line    int    // one-based
	column  int    // one-based
	code    int
	message checker.MessageChain
}

var (
	// src/b.ts(3,7): error TS2322: Type 'string' is not assignable to type 'number'.
	fileDiagRegex = regexp.MustCompile(`^(.+)\((\d+),(\d+)\): (?:error|warning|message) TS(\d+): (.*)$`)
	// error TS5023: Unknown compiler option 'foo'.
	globalDiagRegex = regexp.MustCompile(`^(?:error|warning|message) TS(\d+): (.*)$`)
)

// parseOutput extracts diagnostics from `tsc --pretty false` output. Lines
// indented under a diagnostic are nested message parts, two spaces per level.
func parseOutput(output string) []entry {
	var entries []entry
	var stack []*checker.MessageChain

	for _, raw := range strings.Split(output, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if strings.HasPrefix(raw, " ") {
			if len(stack) == 0 {
				continue
			}
			trimmed := strings.TrimLeft(raw, " ")
			depth := (len(raw) - len(trimmed)) / 2
			if depth < 1 {
				depth = 1
			}
			if depth > len(stack) {
				depth = len(stack)
			}
			parent := stack[depth-1]
			parent.Next = append(parent.Next, checker.Message(trimmed))
			stack = append(stack[:depth], &parent.Next[len(parent.Next)-1])
			continue
		}

		var e entry
		if m := fileDiagRegex.FindStringSubmatch(raw); m != nil {
			e.path = m[1]
			e.line, _ = strconv.Atoi(m[2])
			e.column, _ = strconv.Atoi(m[3])
			e.code, _ = strconv.Atoi(m[4])
			e.message = checker.Message(m[5])
		} else if m := globalDiagRegex.FindStringSubmatch(raw); m != nil {
			e.code, _ = strconv.Atoi(m[1])
			e.message = checker.Message(m[2])
		} else {
			stack = nil
			continue
		}

		entries = append(entries, e)
		stack = []*checker.MessageChain{&entries[len(entries)-1].message}
	}

	return entries
}

// resolve loads each referenced file once and binds entries to offsets.
// Entries whose file cannot be read stay unbound.
func (c *Checker) resolve(entries []entry) []checker.Diagnostic {
	fsys := c.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	base := c.WorkDir
	if base == "" {
		base, _ = os.Getwd()
	}
	sources := make(map[string]*checker.SourceFile)

	diags := make([]checker.Diagnostic, 0, len(entries))
	for _, e := range entries {
		d := checker.Diagnostic{Start: checker.NoPos, Code: e.code, Message: e.message}
		if e.path != "" {
			path := e.path
			if !filepath.IsAbs(path) {
				path = filepath.Join(base, path)
			}
			path = filepath.Clean(path)

			src, ok := sources[path]
			if !ok {
				content, err := afero.ReadFile(fsys, path)
				if err != nil {
					c.logger().Debug("cannot read diagnostic source", "path", path, "error", err)
				} else {
					src = checker.NewSourceFile(path, content)
				}
				sources[path] = src
			}
			if src != nil {
				d.File = src
				d.Start = src.Offset(e.line, e.column)
			}
		}
		diags = append(diags, d)
	}
	return diags
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
