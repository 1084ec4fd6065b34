// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"sort"
)

// A Builder assembles a Snapshot. Node ranges are given either as absolute
// offsets or as text addresses (see EvalAddr) evaluated inside the
// parent's range, so that a child is always contained in its parent.
//
// The first error encountered is remembered and reported by Snapshot;
// methods called after an error return zero IDs.
type Builder struct {
	s   *Snapshot
	err error
}

// NewBuilder returns a Builder for a snapshot of the named text.
// The root is a KindUnit node spanning all of text.
func NewBuilder(name string, text []byte) *Builder {
	b := &Builder{s: &Snapshot{Name: name, Text: text}}
	b.s.Root = b.add(Node{Kind: KindUnit, Start: 0, Len: len(text)})
	return b
}

// Root returns the root node.
func (b *Builder) Root() NodeID { return b.s.Root }

// Err returns the first error encountered, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) errorf(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%s: "+format, append([]any{b.s.Name}, args...)...)
	}
}

// Bind adds a binding and returns its ID.
func (b *Builder) Bind(bb Binding) BindingID {
	if b.err != nil {
		return NoBinding
	}
	i, err := b.s.bindings.alloc(bb)
	if err != nil {
		b.errorf("too many bindings: %v", err)
		return NoBinding
	}
	return BindingID(i)
}

// Binding returns the binding with the given id for further setup.
func (b *Builder) Binding(id BindingID) *Binding {
	return b.s.Binding(id)
}

func (b *Builder) add(n Node) NodeID {
	i, err := b.s.nodes.alloc(n)
	if err != nil {
		b.errorf("too many nodes: %v", err)
		return NoNode
	}
	id := NodeID(i)
	if p := n.Parent; p.IsValid() {
		pn := b.s.Node(p)
		// Keep children in source order.
		k := sort.Search(len(pn.Children), func(j int) bool {
			return b.s.Node(pn.Children[j]).Start > n.Start
		})
		pn.Children = append(pn.Children, NoNode)
		copy(pn.Children[k+1:], pn.Children[k:])
		pn.Children[k] = id
	}
	return id
}

// Resolve evaluates addr inside the range of parent, returning an absolute
// range. On failure it records the error and returns ok == false.
func (b *Builder) Resolve(parent NodeID, addr string) (start, end int, ok bool) {
	if b.err != nil {
		return 0, 0, false
	}
	if b.s.nodes.get(uint32(parent)) == nil {
		b.errorf("invalid parent node %d", parent)
		return 0, 0, false
	}
	p := b.s.Node(parent)
	lo, hi, err := EvalAddr(addr, 0, b.s.Text[p.Start:p.End()])
	if err != nil {
		b.errorf("%s in %s at %d: %v", addr, p.Kind, p.Start, err)
		return 0, 0, false
	}
	return p.Start + lo, p.Start + hi, true
}

// Node adds a node of the given kind spanning addr within parent.
func (b *Builder) Node(parent NodeID, kind Kind, addr string) NodeID {
	start, end, ok := b.Resolve(parent, addr)
	if !ok {
		return NoNode
	}
	return b.add(Node{Kind: kind, Parent: parent, Start: start, Len: end - start})
}

// NodeAt adds a node of the given kind spanning the absolute range
// [start, end), which must lie inside parent.
func (b *Builder) NodeAt(parent NodeID, kind Kind, start, end int) NodeID {
	if b.err != nil {
		return NoNode
	}
	if b.s.nodes.get(uint32(parent)) == nil {
		b.errorf("invalid parent node %d", parent)
		return NoNode
	}
	if p := b.s.Node(parent); start > end || !p.Covers(start, end) {
		b.errorf("range %d-%d outside %s at %d-%d", start, end, p.Kind, p.Start, p.End())
		return NoNode
	}
	return b.add(Node{Kind: kind, Parent: parent, Start: start, Len: end - start})
}

// Name adds a name node spanning addr within parent, referring to bind
// (which may be NoBinding for an unresolved name).
func (b *Builder) Name(parent NodeID, addr string, bind BindingID) NodeID {
	id := b.Node(parent, KindName, addr)
	b.setName(id, bind)
	return id
}

// NameAt is like Name with an absolute range.
func (b *Builder) NameAt(parent NodeID, start, end int, bind BindingID) NodeID {
	id := b.NodeAt(parent, KindName, start, end)
	b.setName(id, bind)
	return id
}

func (b *Builder) setName(id NodeID, bind BindingID) {
	if !id.IsValid() {
		return
	}
	n := b.s.Node(id)
	n.Ident = string(b.s.Text[n.Start:n.End()])
	n.Binding = bind
}

// Declare adds a name node that declares bind.
func (b *Builder) Declare(parent NodeID, addr string, bind BindingID) NodeID {
	id := b.Name(parent, addr, bind)
	b.declares(id, bind)
	return id
}

// DeclareAt is like Declare with an absolute range.
func (b *Builder) DeclareAt(parent NodeID, start, end int, bind BindingID) NodeID {
	id := b.NameAt(parent, start, end, bind)
	b.declares(id, bind)
	return id
}

func (b *Builder) declares(id NodeID, bind BindingID) {
	if !id.IsValid() {
		return
	}
	bb := b.s.Binding(bind)
	if bb == nil {
		b.errorf("declaration of invalid binding %d", bind)
		return
	}
	bb.Node = id
}

// Implicit marks the name node id as the implicit-type keyword.
func (b *Builder) Implicit(id NodeID) {
	if id.IsValid() {
		b.s.Node(id).Implicit = true
	}
}

// Problem adds a diagnostic covering the range of node at.
func (b *Builder) Problem(id ProblemID, sev Severity, msg string, at NodeID) {
	if b.err != nil || !at.IsValid() {
		return
	}
	n := b.s.Node(at)
	b.ProblemAt(id, sev, msg, n.Start, n.End())
}

// ProblemAt adds a diagnostic covering [start, end).
func (b *Builder) ProblemAt(id ProblemID, sev Severity, msg string, start, end int) {
	if b.err != nil {
		return
	}
	if start < 0 || end > len(b.s.Text) || start >= end {
		b.errorf("problem range %d-%d out of range", start, end)
		return
	}
	b.s.Problems = append(b.s.Problems, Diagnostic{
		ID:       id,
		Severity: sev,
		Message:  msg,
		Start:    start,
		End:      end - 1,
	})
}

// Snapshot returns the assembled snapshot.
// The Builder must not be used afterward.
func (b *Builder) Snapshot() (*Snapshot, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := b.s
	b.s = nil
	return s, nil
}
