// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"

	"rsc.io/classrf/syntax"
)

// labelOf returns the label name of a labeled, break, or continue
// statement, or NoNode if it has none.
func labelOf(s *syntax.Snapshot, stmt syntax.NodeID) syntax.NodeID {
	n := s.Node(stmt)
	switch n.Kind {
	case syntax.KindLabeled, syntax.KindBreak, syntax.KindContinue:
		if len(n.Children) > 0 && s.Node(n.Children[0]).Kind == syntax.KindName {
			return n.Children[0]
		}
	}
	return syntax.NoNode
}

// isLabelName reports whether name is the label of its parent statement.
func isLabelName(s *syntax.Snapshot, name syntax.NodeID) bool {
	p := s.Node(name).Parent
	return p.IsValid() && labelOf(s, p) == name
}

// FindLabels links the label name to the other uses of the same label:
// the innermost enclosing labeled statement with that label, and every
// break or continue naming it inside that statement that is not inside a
// closer labeled statement redeclaring it. Matching is by text and
// nesting alone.
//
// If no enclosing statement declares the label, the result is the name
// alone.
func FindLabels(ctx context.Context, s *syntax.Snapshot, root, name syntax.NodeID) ([]syntax.NodeID, error) {
	text := s.Node(name).Ident
	declares := func(id syntax.NodeID) bool {
		l := labelOf(s, id)
		return s.Node(id).Kind == syntax.KindLabeled && l.IsValid() && s.Node(l).Ident == text
	}

	stmt := syntax.NoNode
	for id := s.Node(name).Parent; id.IsValid(); id = s.Node(id).Parent {
		if declares(id) {
			stmt = id
			break
		}
		if id == root {
			break
		}
	}
	if !stmt.IsValid() {
		return []syntax.NodeID{name}, nil
	}

	decl := labelOf(s, stmt)
	res := []syntax.NodeID{decl}
	for _, c := range s.Node(stmt).Children {
		if c == decl {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Inspect(c, func(id syntax.NodeID) bool {
			switch s.Node(id).Kind {
			case syntax.KindLabeled:
				return !declares(id)
			case syntax.KindBreak, syntax.KindContinue:
				if l := labelOf(s, id); l.IsValid() && s.Node(l).Ident == text {
					res = append(res, l)
				}
				return false
			}
			return true
		})
	}
	return res, nil
}
