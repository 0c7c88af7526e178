// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package checker defines the contract between diagtree and the type-checkers
// it drives. A Checker takes a file list and a Config and returns raw
// diagnostics; normalization happens in the collector.
package checker

import (
	"context"
	"errors"
	"strings"
)

// ErrCheckerFailure is returned when a checker cannot run at all (missing
// executable, load failure, timeout). Diagnostics about the checked code are
// never reported through it.
var ErrCheckerFailure = errors.New("checker failure")

// NoPos marks a diagnostic that is not bound to a source position.
const NoPos = -1

// Config controls how source is checked.
type Config struct {
	Target string // Language level, e.g. "ES2020"
	Module string // Module system, e.g. "commonjs"
	Strict bool   // Strict checking
	NoEmit bool   // Never write compiler output
}

// DefaultConfig is the fixed policy diagtree checks with.
var DefaultConfig = Config{
	Target: "ES2020",
	Module: "commonjs",
	Strict: true,
	NoEmit: true,
}

// Checker runs a static checker over a set of files. Implementations may
// report diagnostics for files outside the list (resolved imports).
type Checker interface {
	Name() string
	Check(ctx context.Context, files []string, cfg Config) ([]Diagnostic, error)
}

// Diagnostic is one finding as the checker reports it.
type Diagnostic struct {
	File    *SourceFile // nil for global diagnostics
	Start   int         // Byte offset in File, NoPos if unbound
	Code    int
	Message MessageChain
}

// Bound reports whether d has both a file and a position.
func (d Diagnostic) Bound() bool {
	return d.File != nil && d.Start != NoPos
}

// MessageChain is a message with optional nested detail.
type MessageChain struct {
	Text string
	Next []MessageChain
}

// Message builds a chain with no nested detail.
func Message(text string) MessageChain {
	return MessageChain{Text: text}
}

// Flatten joins the chain into one string. Nested parts each start on a new
// line, indented two spaces per level.
func (c MessageChain) Flatten(newline string) string {
	var b strings.Builder
	c.flatten(&b, newline, 0)
	return b.String()
}

func (c MessageChain) flatten(b *strings.Builder, newline string, depth int) {
	if depth > 0 {
		b.WriteString(newline)
		b.WriteString(strings.Repeat("  ", depth))
	}
	b.WriteString(c.Text)
	for _, n := range c.Next {
		n.flatten(b, newline, depth+1)
	}
}
