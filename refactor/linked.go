// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"

	"rsc.io/classrf/logger"
	"rsc.io/classrf/syntax"
)

// FindByBinding returns the name nodes under root that are linked to the
// binding b, in pre-order: the declaration and all references of the
// symbol, for a type also its constructors, for a constructor the type and
// the other constructors, and for a method also the methods it overrides
// and the methods overriding it when both are declared in s.
//
// Names of the implicit-type keyword are never linked when cfg's source
// level has implicitly typed locals. The context is checked between the
// children of root; if it is done, FindByBinding returns its error and no
// names.
func FindByBinding(ctx context.Context, s *syntax.Snapshot, root syntax.NodeID, b syntax.BindingID, cfg *Config) ([]syntax.NodeID, error) {
	implicit := cfg.implicitTypes()
	key := Declaration(s, b)
	keyKind := s.Binding(key).Kind
	res := []syntax.NodeID{}

	visit := func(id syntax.NodeID) bool {
		n := s.Node(id)
		if n.Kind != syntax.KindName {
			return true
		}
		if n.Implicit && implicit || !n.Binding.IsValid() {
			return false
		}
		nb := s.Binding(n.Binding)
		if nb.Recovered {
			return false
		}
		k := Declaration(s, n.Binding)
		switch {
		case k == key:
			res = append(res, id)
		case s.Binding(k).Kind != keyKind:
		case keyKind == syntax.BindMethod:
			if (Overrides(s, key, k) || Overrides(s, k, key)) && declaredIn(s, key) && declaredIn(s, k) {
				res = append(res, id)
			}
		}
		return false
	}

	if !visit(root) {
		return res, nil
	}
	for _, c := range s.Node(root).Children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Inspect(c, visit)
	}
	logger.Debugf("%s: %d names linked to %s", s.Name, len(res), s.Binding(key).Name)
	return res, nil
}

// declaredIn reports whether the binding is declared in the snapshot.
func declaredIn(s *syntax.Snapshot, b syntax.BindingID) bool {
	return s.DeclaringName(b).IsValid()
}

// FindByNode returns the name nodes under root linked to the name node.
// If the name has a binding, it returns FindByBinding. Otherwise it links
// the name to other unresolved names by the problems reported for them
// (see FindByProblems), or, for a label, by label scoping (see
// FindLabels). If neither applies, the result is the name alone.
func FindByNode(ctx context.Context, s *syntax.Snapshot, root, name syntax.NodeID, cfg *Config) ([]syntax.NodeID, error) {
	n := s.Node(name)
	if n.Implicit && cfg.implicitTypes() {
		return []syntax.NodeID{name}, nil
	}
	if n.Binding.IsValid() && !s.Binding(n.Binding).Recovered {
		return FindByBinding(ctx, s, root, n.Binding, cfg)
	}
	if names := FindByProblems(s, root, name, cfg); names != nil {
		return names, nil
	}
	if isLabelName(s, name) {
		return FindLabels(ctx, s, root, name)
	}
	return []syntax.NodeID{name}, nil
}
