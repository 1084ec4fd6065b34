// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
)

// A Snapshot is one parse of one source file: its text, its tree, the
// bindings the tree refers to, and the diagnostics reported for it.
// A Snapshot is immutable once built and may be shared between goroutines.
type Snapshot struct {
	Name     string
	Text     []byte
	Root     NodeID
	Problems []Diagnostic

	nodes    arena[Node]
	bindings arena[Binding]
}

// Node returns the node with the given id. It panics if id is not a node
// of s.
func (s *Snapshot) Node(id NodeID) *Node {
	n := s.nodes.get(uint32(id))
	if n == nil {
		panic(fmt.Sprintf("syntax: invalid node %d", id))
	}
	return n
}

// Binding returns the binding with the given id, or nil for NoBinding.
func (s *Snapshot) Binding(id BindingID) *Binding {
	return s.bindings.get(uint32(id))
}

// NumNodes returns the number of nodes in s.
func (s *Snapshot) NumNodes() int { return s.nodes.len() }

// NumBindings returns the number of bindings in s.
func (s *Snapshot) NumBindings() int { return s.bindings.len() }

// Bindings calls f for each binding in s, in order of creation.
func (s *Snapshot) Bindings(f func(id BindingID, b *Binding)) {
	for i := range s.bindings.data {
		f(BindingID(i+1), &s.bindings.data[i])
	}
}

// NodeText returns the source text of the node.
func (s *Snapshot) NodeText(id NodeID) []byte {
	n := s.Node(id)
	return s.Text[n.Start:n.End()]
}

// Position returns the 1-based line and column of the byte offset.
func (s *Snapshot) Position(offset int) (line, col int) {
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	before := s.Text[:offset]
	line = 1 + bytes.Count(before, []byte("\n"))
	col = 1 + offset - (bytes.LastIndexByte(before, '\n') + 1)
	return line, col
}

// Addr formats the position of offset as name:line:col.
func (s *Snapshot) Addr(offset int) string {
	line, col := s.Position(offset)
	return fmt.Sprintf("%s:%d:%d", s.Name, line, col)
}

// DeclaringName returns the name node declaring b, or NoNode.
func (s *Snapshot) DeclaringName(b BindingID) NodeID {
	if bb := s.Binding(b); bb != nil {
		return bb.Node
	}
	return NoNode
}

// Declaration returns the declaration node enclosing the name that declares
// b (the type, field, method, or variable declaration), or NoNode.
func (s *Snapshot) Declaration(b BindingID) NodeID {
	name := s.DeclaringName(b)
	if !name.IsValid() {
		return NoNode
	}
	return s.Node(name).Parent
}
