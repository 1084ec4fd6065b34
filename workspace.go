// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"

	"rsc.io/classrf/diff"
	"rsc.io/classrf/logger"
	"rsc.io/classrf/refactor"
	"rsc.io/classrf/snapfile"
	"rsc.io/classrf/syntax"
)

// A workspace is the set of snapshots a script operates on,
// along with the text edits made to them so far.
type workspace struct {
	ctx    context.Context
	dir    string
	cfg    *refactor.Config
	snaps  []*syntax.Snapshot // in command-line order
	byName map[string]*syntax.Snapshot
	parsed []*syntax.Snapshot // extra parse results for validate
	edited map[string][]byte  // new text by snapshot name

	ShowDiff bool
	Stdout   io.Writer
	Stderr   io.Writer
}

func newWorkspace(ctx context.Context, dir string, files, parsed []string) (*workspace, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	w := &workspace{
		ctx:    ctx,
		dir:    dir,
		cfg:    refactor.DefaultConfig(),
		byName: make(map[string]*syntax.Snapshot),
		edited: make(map[string][]byte),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	for _, file := range files {
		s, err := w.load(file)
		if err != nil {
			return nil, err
		}
		if w.byName[s.Name] != nil {
			return nil, fmt.Errorf("%s: duplicate snapshot %s", file, s.Name)
		}
		w.byName[s.Name] = s
		w.snaps = append(w.snaps, s)
	}
	for _, file := range parsed {
		s, err := w.load(file)
		if err != nil {
			return nil, err
		}
		if w.byName[s.Name] == nil {
			logger.Printf("%s: parsed snapshot %s matches no loaded snapshot", file, s.Name)
		}
		w.parsed = append(w.parsed, s)
	}
	return w, nil
}

func (w *workspace) load(file string) (*syntax.Snapshot, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return snapfile.Decode(filepath.Base(file), data)
}

// snapshot returns the snapshot with the given name.
func (w *workspace) snapshot(name string) (*syntax.Snapshot, error) {
	s := w.byName[name]
	if s == nil {
		return nil, newErrPrecondition("unknown snapshot %s", name)
	}
	return s, nil
}

// text returns the current text of s, including any edits.
func (w *workspace) text(s *syntax.Snapshot) []byte {
	if text, ok := w.edited[s.Name]; ok {
		return text
	}
	return s.Text
}

// Parse plays the parse service: it returns the loaded snapshot with the
// given name and text.
func (w *workspace) Parse(ctx context.Context, name string, text []byte) (*syntax.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, list := range [][]*syntax.Snapshot{w.snaps, w.parsed} {
		for _, s := range list {
			if s.Name == name && bytes.Equal(s.Text, text) {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("no snapshot of %s matches the edited text", name)
}

// finish shows or writes the edited texts.
func (w *workspace) finish() error {
	for _, s := range w.snaps {
		text, ok := w.edited[s.Name]
		if !ok {
			continue
		}
		if w.ShowDiff {
			d, err := diff.Diff(s.Name, s.Text, s.Name, text)
			if err != nil {
				return err
			}
			w.Stdout.Write(d)
			continue
		}
		if err := os.WriteFile(filepath.Join(w.dir, s.Name), text, 0666); err != nil {
			return xerrors.Errorf("writing edits: %w", err)
		}
	}
	return nil
}

// lookupItem resolves an item naming a declared type or member, such as
// B, B.y, B.m, or B.m(int,String). A method name without parameters must
// not be overloaded.
func (w *workspace) lookupItem(item string) (*syntax.Snapshot, syntax.BindingID, error) {
	head := item
	if i := strings.Index(item, "("); i >= 0 {
		head = item[:i]
	}
	typ, member, isMember := cut(head, ".")
	if typ == "" || isMember && member == "" {
		return nil, 0, newErrUsage("invalid item %q", item)
	}
	sig := ""
	if isMember && len(head) < len(item) {
		sig = strings.ReplaceAll(item[len(typ)+1:], " ", "")
	}

	type decl struct {
		s *syntax.Snapshot
		t syntax.BindingID
	}
	var types []decl
	for _, s := range w.snaps {
		s.Bindings(func(id syntax.BindingID, b *syntax.Binding) {
			if b.Kind == syntax.BindType && b.Name == typ && !b.Decl.IsValid() && b.Node.IsValid() {
				types = append(types, decl{s, id})
			}
		})
	}
	switch len(types) {
	case 0:
		return nil, 0, newErrPrecondition("cannot find type %s", typ)
	case 1:
	default:
		return nil, 0, newErrPrecondition("type %s is declared in both %s and %s", typ, types[0].s.Name, types[1].s.Name)
	}
	found, t := types[0].s, types[0].t
	if !isMember {
		return found, t, nil
	}

	var matches []syntax.BindingID
	found.Bindings(func(id syntax.BindingID, b *syntax.Binding) {
		if !b.IsMember() || b.Decl.IsValid() || b.Type != t || b.Name != member {
			return
		}
		if sig == "" || b.Signature() == sig {
			matches = append(matches, id)
		}
	})
	switch len(matches) {
	case 0:
		return nil, 0, newErrPrecondition("cannot find %s", item)
	case 1:
		return found, matches[0], nil
	}
	var sigs []string
	for _, m := range matches {
		sigs = append(sigs, typ+"."+found.Binding(m).Signature())
	}
	return nil, 0, newErrPrecondition("%s is ambiguous: %s", item, strings.Join(sigs, ", "))
}

// lookupMembers resolves items that must all be declared in one snapshot.
func (w *workspace) lookupMembers(items []string) (*syntax.Snapshot, []syntax.BindingID, error) {
	var (
		s       *syntax.Snapshot
		members []syntax.BindingID
	)
	for _, item := range items {
		ms, m, err := w.lookupItem(item)
		if err != nil {
			return nil, nil, err
		}
		if s != nil && ms != s {
			return nil, nil, newErrPrecondition("%s is not in %s", item, s.Name)
		}
		s = ms
		members = append(members, m)
	}
	return s, members, nil
}

// lookupAddr resolves an address: an item, naming the declaring name of
// the item, or snapshot:range, naming the node that spans the range, or
// failing that the innermost node covering it.
func (w *workspace) lookupAddr(addr string) (*syntax.Snapshot, syntax.NodeID, error) {
	name, rng, ok := cut(addr, ":")
	if !ok {
		s, b, err := w.lookupItem(addr)
		if err != nil {
			return nil, 0, err
		}
		return s, s.DeclaringName(b), nil
	}
	s, err := w.snapshot(name)
	if err != nil {
		return nil, 0, err
	}
	lo, hi, err := syntax.EvalAddr(rng, 0, s.Text)
	if err != nil {
		return nil, 0, newErrPrecondition("%s: %v", addr, err)
	}
	id := s.Find(s.Root, lo, hi-lo)
	if !id.IsValid() {
		return nil, 0, newErrPrecondition("%s: no code at %s", addr, s.Addr(lo))
	}
	return s, id, nil
}

// itemName formats a type or member binding as an item.
func itemName(s *syntax.Snapshot, b syntax.BindingID) string {
	bb := s.Binding(b)
	if t := s.Binding(bb.Type); t != nil && bb.IsMember() {
		return t.Name + "." + bb.Signature()
	}
	return bb.Signature()
}
