// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import "github.com/fatih/color"

// colorPainter colours the outline printed to a terminal. color disables
// itself when stdout is not a TTY or NO_COLOR is set.
type colorPainter struct {
	dir   *color.Color
	clean *color.Color
	dirty *color.Color
	msg   *color.Color
}

func newColorPainter() colorPainter {
	return colorPainter{
		dir:   color.New(color.Bold),
		clean: color.New(color.FgGreen),
		dirty: color.New(color.FgRed, color.Bold),
		msg:   color.New(color.FgYellow),
	}
}

func (p colorPainter) Dir(name string) string { return p.dir.Sprint(name) }

func (p colorPainter) File(name string, errorFree bool) string {
	if errorFree {
		return p.clean.Sprint(name)
	}
	return p.dirty.Sprint(name)
}

func (p colorPainter) Message(text string) string { return p.msg.Sprint(text) }
