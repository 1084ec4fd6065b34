// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"rsc.io/classrf/refactor"
	"rsc.io/classrf/syntax"
)

// cmdLinks prints the names linked to the name at the address.
func cmdLinks(w *workspace, args string) error {
	if args == "" {
		return newErrUsage("links address")
	}
	s, id, err := w.lookupAddr(args)
	if err != nil {
		return err
	}
	if n := s.Node(id); n.Kind != syntax.KindName {
		return newErrPrecondition("%s: %s is a %s, not a name", args, s.Addr(n.Start), n.Kind)
	}
	names, err := refactor.FindByNode(w.ctx, s, s.Root, id, w.cfg)
	if err != nil {
		return err
	}
	for _, name := range names {
		n := s.Node(name)
		fmt.Fprintf(w.Stdout, "%s: %s\n", s.Addr(n.Start), n.Ident)
	}
	return nil
}

// cmdNames prints the names a new local variable in the statement at the
// address must avoid, and a fresh element name.
func cmdNames(w *workspace, args string) error {
	if args == "" {
		return newErrUsage("names address")
	}
	s, id, err := w.lookupAddr(args)
	if err != nil {
		return err
	}
	used := refactor.UsedNames(s, id, localScope{s}, nil)
	fmt.Fprintf(w.Stdout, "used: %s\n", strings.Join(used, " "))
	fmt.Fprintf(w.Stdout, "fresh: %s\n", refactor.FreshName("", used))
	return nil
}

// A localScope reports the local variables declared in the method or
// lambda enclosing a range.
type localScope struct {
	s *syntax.Snapshot
}

func (l localScope) UsedVariableNames(start, length int) []string {
	s := l.s
	scope := s.Covering(s.Root, start, length)
	for scope.IsValid() {
		if k := s.Node(scope).Kind; k == syntax.KindMethodDecl || k == syntax.KindLambda {
			break
		}
		scope = s.Node(scope).Parent
	}
	if !scope.IsValid() {
		return nil
	}
	var names []string
	s.Inspect(scope, func(id syntax.NodeID) bool {
		n := s.Node(id)
		if n.Kind != syntax.KindName {
			return true
		}
		if b := s.Binding(n.Binding); b != nil && b.Kind == syntax.BindVariable && b.Node == id {
			names = append(names, n.Ident)
		}
		return false
	})
	return names
}
