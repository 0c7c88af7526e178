// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exclude decides which paths the directory traversals skip. One
// Policy is compiled per run and handed to both the file walker and the tree
// builder, so the two traversals can only differ in the way the policy says.
package exclude

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/spf13/afero"

	"github.com/petar-djukic/diagtree/internal/vfs"
)

// Mode selects which traversals the policy applies to.
type Mode int

const (
	// ModeCheckOnly skips excluded paths when collecting files to check,
	// while the tree still mirrors everything on disk.
	ModeCheckOnly Mode = iota
	// ModeEverywhere skips excluded paths in both traversals.
	ModeEverywhere
)

func (m Mode) String() string {
	switch m {
	case ModeCheckOnly:
		return "check-only"
	case ModeEverywhere:
		return "everywhere"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "check-only":
		return ModeCheckOnly, nil
	case "everywhere":
		return ModeEverywhere, nil
	default:
		return 0, fmt.Errorf("unknown exclusion mode %q", s)
	}
}

// Traversal names the walk asking the question.
type Traversal int

const (
	Walk Traversal = iota // file collection for the checker
	Tree                  // annotated tree construction
)

// DefaultDirs are the directory names excluded when no policy is configured.
var DefaultDirs = []string{"node_modules"}

// Policy is the exclusion configuration.
type Policy struct {
	Dirs      []string // Directory base names never descended into
	Mode      Mode     // Traversals the policy applies to
	Gitignore bool     // Also honour the root .gitignore
}

// DefaultPolicy excludes node_modules from checking only.
func DefaultPolicy() Policy {
	dirs := make([]string, len(DefaultDirs))
	copy(dirs, DefaultDirs)
	return Policy{Dirs: dirs, Mode: ModeCheckOnly}
}

// Matcher is a Policy bound to a root directory.
type Matcher struct {
	dirs    map[string]bool
	mode    Mode
	ignorer gitignore.Matcher
}

// Compile binds p to root. When p.Gitignore is set, root/.gitignore is read
// from fsys; a missing file matches nothing.
func Compile(fsys afero.Fs, root string, p Policy) (*Matcher, error) {
	m := &Matcher{
		dirs: make(map[string]bool, len(p.Dirs)),
		mode: p.Mode,
	}
	for _, d := range p.Dirs {
		m.dirs[d] = true
	}

	if p.Gitignore {
		content, ok, err := vfs.ReadTextFile(fsys, filepath.Join(root, ".gitignore"))
		if err != nil {
			return nil, err
		}
		if ok {
			m.ignorer = gitignore.NewMatcher(parsePatterns(content))
		}
	}

	return m, nil
}

// parsePatterns turns .gitignore text into patterns rooted at the top of
// the tree.
func parsePatterns(content string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}

// Skip reports whether traversal t should leave out relPath (relative to
// the root, OS separators). For directories a true result means the whole
// subtree is skipped.
func (m *Matcher) Skip(t Traversal, relPath string, isDir bool) bool {
	if m == nil {
		return false
	}
	if t == Tree && m.mode != ModeEverywhere {
		return false
	}
	if isDir && m.dirs[filepath.Base(relPath)] {
		return true
	}
	if m.ignorer != nil {
		return m.ignorer.Match(strings.Split(filepath.ToSlash(relPath), "/"), isDir)
	}
	return false
}
