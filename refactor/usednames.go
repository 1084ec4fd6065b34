// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"sort"
	"strconv"

	"rsc.io/classrf/syntax"
)

// A ScopeAnalyzer reports the variable names visible or used in a range
// of the source.
type ScopeAnalyzer interface {
	UsedVariableNames(start, length int) []string
}

// UsedNames returns the names a new local variable in stmt must not take:
// the names the scope analyzer reports for the statement's range, the
// variables declared inside the statement, and extra. The result is sorted
// and has no duplicates. scope may be nil.
func UsedNames(s *syntax.Snapshot, stmt syntax.NodeID, scope ScopeAnalyzer, extra []string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	n := s.Node(stmt)
	if scope != nil {
		for _, name := range scope.UsedVariableNames(n.Start, n.Len) {
			add(name)
		}
	}
	s.Inspect(stmt, func(id syntax.NodeID) bool {
		n := s.Node(id)
		if n.Kind != syntax.KindName {
			return true
		}
		if b := s.Binding(n.Binding); b != nil && b.Kind == syntax.BindVariable && b.Node == id {
			add(n.Ident)
		}
		return false
	})
	for _, name := range extra {
		add(name)
	}
	sort.Strings(names)
	return names
}

// DefaultElementName is the base name for a generated loop element.
const DefaultElementName = "element"

// FreshName returns base, or base followed by the smallest number from 2
// on, whichever is not in used. An empty base means DefaultElementName.
func FreshName(base string, used []string) string {
	if base == "" {
		base = DefaultElementName
	}
	taken := make(map[string]bool, len(used))
	for _, u := range used {
		taken[u] = true
	}
	name := base
	for i := 2; taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}
