// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package vfs is the minimal file system surface diagtree needs: list a
// directory, read a text file, write a text file. It runs on any afero.Fs
// so tests use an in-memory tree.
package vfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrFileSystem matches every *Error via errors.Is.
var ErrFileSystem = errors.New("file system error")

// Error records a failed file system operation.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrFileSystem, e.Err}
}

// Entry is one directory entry.
type Entry struct {
	Name  string
	IsDir bool
}

// ListEntries returns the entries of dir in listing order (sorted by name).
// Entries that are neither directories nor regular files are left out.
func ListEntries(fsys afero.Fs, dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, &Error{Op: "list", Path: dir, Err: err}
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		switch {
		case info.IsDir():
			entries = append(entries, Entry{Name: info.Name(), IsDir: true})
		case info.Mode().IsRegular():
			entries = append(entries, Entry{Name: info.Name()})
		}
	}
	return entries, nil
}

// ReadTextFile reads path. The bool is false when the file does not exist,
// in which case err is nil.
func ReadTextFile(fsys afero.Fs, path string) (string, bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Op: "read", Path: path, Err: err}
	}
	return string(data), true, nil
}

// WriteTextFile writes content to path, creating parent directories.
func WriteTextFile(fsys afero.Fs, path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return &Error{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	return nil
}
