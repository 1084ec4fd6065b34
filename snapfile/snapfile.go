// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapfile reads and writes parse snapshots produced by an
// external parse service.
//
// A snapshot file is a Document encoded as msgpack, or as JSON when the
// file name ends in ".json". Nodes are nested; each node's range is given
// either by Pos, an absolute [start, end) pair, or by At, a text address
// (see syntax.EvalAddr) evaluated inside the parent's range. Bindings are
// referred to by symbolic IDs local to the file.
package snapfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/xerrors"

	"rsc.io/classrf/syntax"
)

// Schema is the current Document schema version.
const Schema = 1

// A Document is the encoded form of a snapshot.
type Document struct {
	Schema   int             `json:"schema,omitempty"`
	Name     string          `json:"name,omitempty"`
	Text     string          `json:"text"`
	Bindings []BindingRecord `json:"bindings,omitempty"`
	Nodes    []NodeRecord    `json:"nodes,omitempty"` // children of the root
	Problems []ProblemRecord `json:"problems,omitempty"`
}

// A BindingRecord describes one binding. References to other bindings
// use their IDs.
type BindingRecord struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Decl        string   `json:"decl,omitempty"`
	Type        string   `json:"type,omitempty"`
	Constructor bool     `json:"constructor,omitempty"`
	Static      bool     `json:"static,omitempty"`
	Interface   bool     `json:"interface,omitempty"`
	Recovered   bool     `json:"recovered,omitempty"`
	Params      []string `json:"params,omitempty"`
	Supers      []string `json:"supers,omitempty"`
	Visibility  string   `json:"visibility,omitempty"`
}

// A NodeRecord describes one node and its children.
type NodeRecord struct {
	Kind     string          `json:"kind"`
	At       string          `json:"at,omitempty"`
	Pos      []int           `json:"pos,omitempty"`
	Bind     string          `json:"bind,omitempty"`     // name nodes only
	Declares bool            `json:"declares,omitempty"` // the name declares Bind
	Implicit bool            `json:"implicit,omitempty"`
	Problems []ProblemRecord `json:"problems,omitempty"` // located in this node
	Children []NodeRecord    `json:"children,omitempty"`
}

// A ProblemRecord describes one diagnostic. In a NodeRecord, At is
// evaluated inside the node and an empty range means the whole node;
// in a Document, At is evaluated in the whole text.
type ProblemRecord struct {
	ID       string `json:"id"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message"`
	At       string `json:"at,omitempty"`
	Pos      []int  `json:"pos,omitempty"`
}

func isJSON(name string) bool {
	return strings.HasSuffix(name, ".json")
}

// Decode decodes the snapshot file with the given name.
func Decode(name string, data []byte) (*syntax.Snapshot, error) {
	var doc Document
	if isJSON(name) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, xerrors.Errorf("%s: %w", name, err)
		}
	} else {
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&doc); err != nil {
			return nil, xerrors.Errorf("%s: %w", name, err)
		}
	}
	if doc.Schema > Schema {
		return nil, xerrors.Errorf("%s: unsupported schema %d", name, doc.Schema)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return Build(&doc)
}

// Encode encodes s for a file with the given name, using absolute
// positions throughout.
func Encode(name string, s *syntax.Snapshot) ([]byte, error) {
	doc := NewDocument(s)
	if isJSON(name) {
		data, err := json.MarshalIndent(doc, "", "\t")
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", name, err)
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetOmitEmpty(true)
	if err := enc.Encode(doc); err != nil {
		return nil, xerrors.Errorf("%s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// A builder converts a Document to a Snapshot.
type builder struct {
	b   *syntax.Builder
	ids map[string]syntax.BindingID
	err error
}

func (b *builder) errorf(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
}

func (b *builder) binding(id string) syntax.BindingID {
	if id == "" {
		return syntax.NoBinding
	}
	bid, ok := b.ids[id]
	if !ok {
		b.errorf("unknown binding %q", id)
	}
	return bid
}

// Build converts doc to a snapshot.
func Build(doc *Document) (*syntax.Snapshot, error) {
	b := &builder{
		b:   syntax.NewBuilder(doc.Name, []byte(doc.Text)),
		ids: make(map[string]syntax.BindingID),
	}

	// Allocate all bindings first so that records may refer forward.
	for i := range doc.Bindings {
		r := &doc.Bindings[i]
		kind, ok := syntax.ParseBindingKind(r.Kind)
		if !ok {
			b.errorf("binding %q: unknown kind %q", r.ID, r.Kind)
			continue
		}
		vis, ok := syntax.ParseVisibility(r.Visibility)
		if !ok {
			b.errorf("binding %q: unknown visibility %q", r.ID, r.Visibility)
			continue
		}
		if _, dup := b.ids[r.ID]; dup || r.ID == "" {
			b.errorf("binding %q: duplicate or empty id", r.ID)
			continue
		}
		b.ids[r.ID] = b.b.Bind(syntax.Binding{
			Kind:        kind,
			Name:        r.Name,
			Constructor: r.Constructor,
			Static:      r.Static,
			Interface:   r.Interface,
			Recovered:   r.Recovered,
			Params:      r.Params,
			Visibility:  vis,
		})
	}
	for i := range doc.Bindings {
		r := &doc.Bindings[i]
		bb := b.b.Binding(b.ids[r.ID])
		if bb == nil {
			continue
		}
		bb.Decl = b.binding(r.Decl)
		bb.Type = b.binding(r.Type)
		for _, s := range r.Supers {
			bb.Supers = append(bb.Supers, b.binding(s))
		}
	}

	for i := range doc.Nodes {
		b.node(b.b.Root(), &doc.Nodes[i])
	}
	for _, p := range doc.Problems {
		b.problem(b.b.Root(), p)
	}
	if b.err != nil {
		return nil, xerrors.Errorf("%s: %w", doc.Name, b.err)
	}
	return b.b.Snapshot()
}

func (b *builder) span(parent syntax.NodeID, what, at string, pos []int) (start, end int, ok bool) {
	switch {
	case pos != nil && at != "":
		b.errorf("%s has both pos and at", what)
	case pos != nil:
		if len(pos) != 2 {
			b.errorf("%s: pos must be [start, end]", what)
			break
		}
		return pos[0], pos[1], true
	default:
		// Resolve reports failures through the syntax builder.
		return b.b.Resolve(parent, at)
	}
	return 0, 0, false
}

func (b *builder) node(parent syntax.NodeID, r *NodeRecord) {
	if b.err != nil {
		return
	}
	kind, ok := syntax.ParseKind(r.Kind)
	if !ok {
		b.errorf("unknown node kind %q", r.Kind)
		return
	}
	if kind != syntax.KindName && (r.Bind != "" || r.Declares || r.Implicit) {
		b.errorf("%s node cannot have a binding", r.Kind)
		return
	}
	start, end, ok := b.span(parent, r.Kind+" node", r.At, r.Pos)
	if !ok {
		return
	}

	var id syntax.NodeID
	switch {
	case kind != syntax.KindName:
		id = b.b.NodeAt(parent, kind, start, end)
	case r.Declares:
		id = b.b.DeclareAt(parent, start, end, b.binding(r.Bind))
	default:
		id = b.b.NameAt(parent, start, end, b.binding(r.Bind))
	}
	if r.Implicit {
		b.b.Implicit(id)
	}
	if !id.IsValid() {
		return
	}
	for _, p := range r.Problems {
		b.problem(id, p)
	}
	for i := range r.Children {
		b.node(id, &r.Children[i])
	}
}

func (b *builder) problem(at syntax.NodeID, r ProblemRecord) {
	if b.err != nil {
		return
	}
	id, err := syntax.ParseProblemID(r.ID)
	if err != nil {
		b.errorf("%v", err)
		return
	}
	sev, ok := syntax.ParseSeverity(r.Severity)
	if !ok {
		b.errorf("problem %s: unknown severity %q", r.ID, r.Severity)
		return
	}
	start, end, ok := b.span(at, "problem "+r.ID, r.At, r.Pos)
	if !ok {
		return
	}
	b.b.ProblemAt(id, sev, r.Message, start, end)
}

// NewDocument returns the Document form of s, with absolute positions and
// bindings named b1, b2, and so on.
func NewDocument(s *syntax.Snapshot) *Document {
	doc := &Document{Schema: Schema, Name: s.Name, Text: string(s.Text)}
	bid := func(id syntax.BindingID) string {
		if !id.IsValid() {
			return ""
		}
		return fmt.Sprintf("b%d", id)
	}
	s.Bindings(func(id syntax.BindingID, b *syntax.Binding) {
		r := BindingRecord{
			ID:          bid(id),
			Kind:        b.Kind.String(),
			Name:        b.Name,
			Decl:        bid(b.Decl),
			Type:        bid(b.Type),
			Constructor: b.Constructor,
			Static:      b.Static,
			Interface:   b.Interface,
			Recovered:   b.Recovered,
			Params:      b.Params,
			Visibility:  b.Visibility.String(),
		}
		for _, super := range b.Supers {
			r.Supers = append(r.Supers, bid(super))
		}
		doc.Bindings = append(doc.Bindings, r)
	})

	var record func(id syntax.NodeID) NodeRecord
	record = func(id syntax.NodeID) NodeRecord {
		n := s.Node(id)
		r := NodeRecord{Kind: n.Kind.String(), Pos: []int{n.Start, n.End()}}
		if n.Kind == syntax.KindName {
			r.Bind = bid(n.Binding)
			r.Declares = n.Binding.IsValid() && s.DeclaringName(n.Binding) == id
			r.Implicit = n.Implicit
		}
		for _, c := range n.Children {
			r.Children = append(r.Children, record(c))
		}
		return r
	}
	for _, c := range s.Node(s.Root).Children {
		doc.Nodes = append(doc.Nodes, record(c))
	}

	for _, p := range s.Problems {
		doc.Problems = append(doc.Problems, ProblemRecord{
			ID:       p.ID.String(),
			Severity: p.Severity.String(),
			Message:  p.Message,
			Pos:      []int{p.Start, p.End + 1},
		})
	}
	return doc
}
