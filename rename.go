// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"rsc.io/classrf/refactor"
	"rsc.io/classrf/syntax"
)

// cmdRename renames a type in every loaded snapshot that refers to it.
func cmdRename(w *workspace, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return newErrUsage("rename type newname")
	}
	old, name := fields[0], fields[1]
	s, t, err := w.lookupItem(old)
	if err != nil {
		return err
	}
	if s.Binding(t).Kind != syntax.BindType {
		return newErrPrecondition("%s is not a type", old)
	}

	changes, err := refactor.RenameTypeEdits(w.ctx, w, old, name)
	if err != nil {
		return err
	}
	for _, c := range changes {
		cs, err := w.snapshot(c.Resource)
		if err != nil {
			return err
		}
		if _, ok := w.edited[cs.Name]; ok {
			return newErrPrecondition("%s was already edited", cs.Name)
		}
		text, err := c.Apply(cs.Text)
		if err != nil {
			return err
		}
		w.edited[cs.Name] = text
	}
	return nil
}

// SearchType reports every name in the loaded snapshots linked to a
// declaration of the type with the given name.
func (w *workspace) SearchType(ctx context.Context, qualified string, accept func(resource string, start, length int) error) error {
	simple := qualified[strings.LastIndex(qualified, ".")+1:]
	for _, s := range w.snaps {
		var types []syntax.BindingID
		s.Bindings(func(id syntax.BindingID, b *syntax.Binding) {
			if b.Kind == syntax.BindType && b.Name == simple && !b.Decl.IsValid() {
				types = append(types, id)
			}
		})
		for _, t := range types {
			names, err := refactor.FindByBinding(ctx, s, s.Root, t, w.cfg)
			if err != nil {
				return err
			}
			for _, id := range names {
				n := s.Node(id)
				if err := accept(s.Name, n.Start, n.Len); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
