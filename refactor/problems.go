// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"sort"

	"rsc.io/classrf/logger"
	"rsc.io/classrf/syntax"
)

// problemCategory returns the category of the first linkable problem
// reported exactly on the name node, or 0.
func problemCategory(s *syntax.Snapshot, name syntax.NodeID, cfg *Config) Category {
	n := s.Node(name)
	start, inclEnd := n.Start, n.Start+n.Len-1
	for _, p := range s.Problems {
		if p.Start == start && p.End == inclEnd {
			if c := cfg.category(p.ID); c != 0 {
				return c
			}
		}
	}
	return 0
}

// FindByProblems links an unresolved name to the other unresolved names
// with the same identifier whose problems fall in an overlapping category,
// considering only problems strictly inside scope.
//
// It returns nil if the name has no linkable problem of its own, or if it
// is the implicit-type keyword. Otherwise the result always contains the
// name itself and is ordered by position.
func FindByProblems(s *syntax.Snapshot, scope, name syntax.NodeID, cfg *Config) []syntax.NodeID {
	n := s.Node(name)
	if n.Implicit && cfg.implicitTypes() {
		return nil
	}
	kind := problemCategory(s, name, cfg)
	if kind == 0 {
		return nil
	}

	sc := s.Node(scope)
	bodyStart, bodyEnd := sc.Start, sc.End()
	seen := map[syntax.NodeID]bool{}
	var res []syntax.NodeID
	for _, p := range s.Problems {
		probStart, probEnd := p.Start, p.End+1
		if probStart <= bodyStart || probEnd >= bodyEnd {
			continue
		}
		if kind&cfg.category(p.ID) == 0 {
			continue
		}
		id := s.Find(scope, probStart, probEnd-probStart)
		if !id.IsValid() || seen[id] {
			continue
		}
		m := s.Node(id)
		if m.Kind != syntax.KindName || m.Ident != n.Ident {
			continue
		}
		if m.Implicit && cfg.implicitTypes() {
			continue
		}
		seen[id] = true
		res = append(res, id)
	}
	if !seen[name] {
		res = append(res, name)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return s.Node(res[i]).Start < s.Node(res[j]).Start
	})
	logger.Debugf("%s: %d names linked to unresolved %s (%s)", s.Name, len(res), n.Ident, kind)
	return res
}
