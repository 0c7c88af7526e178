// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"encoding/json"
	"fmt"
)

// NodeKind is the JSON tag that discriminates tree node variants.
type NodeKind string

const (
	KindFile      NodeKind = "file"
	KindDirectory NodeKind = "directory"
)

// TreeNode is either a *FileNode or a *DirectoryNode. The interface is
// sealed; code that switches on it handles exactly those two variants.
type TreeNode interface {
	NodeName() string
	Kind() NodeKind
	treeNode()
}

// FileNode is a file annotated with its diagnostics.
type FileNode struct {
	Name      string
	ErrorFree bool
	Errors    []DiagnosticRecord // nil when the file has no mapping entry
}

// NewFileNode builds a file node. ErrorFree is derived from errs, so a file
// that was never checked and one that was checked clean look the same.
func NewFileNode(name string, errs []DiagnosticRecord) *FileNode {
	return &FileNode{
		Name:      name,
		ErrorFree: len(errs) == 0,
		Errors:    errs,
	}
}

func (n *FileNode) NodeName() string { return n.Name }
func (n *FileNode) Kind() NodeKind   { return KindFile }
func (n *FileNode) treeNode()        {}

// DirectoryNode is a directory with its children in listing order.
type DirectoryNode struct {
	Name     string
	Children []TreeNode
}

// NewDirectoryNode builds a directory node. A nil children slice is stored
// as empty so it serializes as [].
func NewDirectoryNode(name string, children []TreeNode) *DirectoryNode {
	if children == nil {
		children = []TreeNode{}
	}
	return &DirectoryNode{Name: name, Children: children}
}

func (n *DirectoryNode) NodeName() string { return n.Name }
func (n *DirectoryNode) Kind() NodeKind   { return KindDirectory }
func (n *DirectoryNode) treeNode()        {}

// fileNodeJSON fixes the field order of a serialized file node.
type fileNodeJSON struct {
	Name      string             `json:"name"`
	Type      NodeKind           `json:"type"`
	ErrorFree bool               `json:"errorFree"`
	Errors    []DiagnosticRecord `json:"errors,omitempty"`
}

type directoryNodeJSON struct {
	Name     string            `json:"name"`
	Type     NodeKind          `json:"type"`
	Children []json.RawMessage `json:"children"`
}

// MarshalJSON writes {name, type, errorFree, errors}.
func (n *FileNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileNodeJSON{
		Name:      n.Name,
		Type:      KindFile,
		ErrorFree: n.ErrorFree,
		Errors:    n.Errors,
	})
}

// UnmarshalJSON reads a file node, rejecting other variants.
func (n *FileNode) UnmarshalJSON(data []byte) error {
	var raw fileNodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != KindFile {
		return fmt.Errorf("expected node type %q, got %q", KindFile, raw.Type)
	}
	n.Name = raw.Name
	n.ErrorFree = raw.ErrorFree
	n.Errors = raw.Errors
	return nil
}

// MarshalJSON writes {name, type, children}.
func (n *DirectoryNode) MarshalJSON() ([]byte, error) {
	children := make([]json.RawMessage, 0, len(n.Children))
	for _, c := range n.Children {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		children = append(children, data)
	}
	return json.Marshal(directoryNodeJSON{
		Name:     n.Name,
		Type:     KindDirectory,
		Children: children,
	})
}

// UnmarshalJSON reads a directory node and decodes each child by its type tag.
func (n *DirectoryNode) UnmarshalJSON(data []byte) error {
	var raw directoryNodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != KindDirectory {
		return fmt.Errorf("expected node type %q, got %q", KindDirectory, raw.Type)
	}
	children := make([]TreeNode, 0, len(raw.Children))
	for i, c := range raw.Children {
		child, err := DecodeNode(c)
		if err != nil {
			return fmt.Errorf("child %d of %s: %w", i, raw.Name, err)
		}
		children = append(children, child)
	}
	n.Name = raw.Name
	n.Children = children
	return nil
}

// DecodeNode decodes a serialized node of either variant.
func DecodeNode(data []byte) (TreeNode, error) {
	var head struct {
		Type NodeKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case KindFile:
		n := &FileNode{}
		if err := n.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return n, nil
	case KindDirectory:
		n := &DirectoryNode{}
		if err := n.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", head.Type)
	}
}
