// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render serializes an annotated tree as an indented text outline
// and as the JSON report document.
package render

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/diagtree/pkg/types"
)

// DefaultIndent is the indent the outline starts with.
const DefaultIndent = " ┣ "

// Painter decorates names and messages in the outline. It must not add or
// remove newlines.
type Painter interface {
	Dir(name string) string
	File(name string, errorFree bool) string
	Message(text string) string
}

// Plain leaves text untouched.
type Plain struct{}

func (Plain) Dir(name string) string          { return name }
func (Plain) File(name string, _ bool) string { return name }
func (Plain) Message(text string) string      { return text }

// Style controls the glyphs and connectors of the outline.
type Style struct {
	DirGlyph  string
	FileGlyph string

	// MessageIndent follows the node's indent on each diagnostic line.
	MessageIndent string

	// Connector extends the indent for children of a directory.
	// Children of a directory named SourceRoot use SourceRootConnector.
	Connector           string
	SourceRoot          string
	SourceRootConnector string

	Painter Painter
}

// DefaultStyle returns the stock outline style.
func DefaultStyle() Style {
	return Style{
		DirGlyph:            "📂",
		FileGlyph:           "📜",
		MessageIndent:       "     ",
		Connector:           " ┃ ",
		SourceRoot:          "src",
		SourceRootConnector: " ┣ ",
		Painter:             Plain{},
	}
}

// Text renders node with DefaultStyle.
func Text(node types.TreeNode, indent string) string {
	return DefaultStyle().Render(node, indent)
}

// Render returns the outline of node. Every line, including the last, ends
// in a newline. A file gets one line per diagnostic holding its message.
// A multi-line message is the exception: each of its lines is written with
// the message prefix, so one diagnostic can span several outline lines.
func (s Style) Render(node types.TreeNode, indent string) string {
	if s.Painter == nil {
		s.Painter = Plain{}
	}
	var b strings.Builder
	s.render(&b, node, indent)
	return b.String()
}

func (s Style) render(b *strings.Builder, node types.TreeNode, indent string) {
	switch n := node.(type) {
	case *types.FileNode:
		fmt.Fprintf(b, "%s%s %s\n", indent, s.FileGlyph, s.Painter.File(n.Name, n.ErrorFree))
		prefix := indent + s.MessageIndent
		for _, e := range n.Errors {
			for _, line := range strings.Split(e.Message, "\n") {
				b.WriteString(prefix)
				b.WriteString(s.Painter.Message(line))
				b.WriteByte('\n')
			}
		}
	case *types.DirectoryNode:
		fmt.Fprintf(b, "%s%s %s\n", indent, s.DirGlyph, s.Painter.Dir(n.Name))
		child := indent + s.connector(n.Name)
		for _, c := range n.Children {
			s.render(b, c, child)
		}
	default:
		panic(fmt.Sprintf("render: unknown tree node %T", node))
	}
}

func (s Style) connector(dir string) string {
	if s.SourceRoot != "" && dir == s.SourceRoot {
		return s.SourceRootConnector
	}
	return s.Connector
}
