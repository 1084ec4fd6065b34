// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import "rsc.io/classrf/syntax"

// Declaration returns the canonical declaration key for the binding b:
//
//   - a type: its generic type declaration;
//   - a constructor: the declaration of its declaring type, so that all
//     constructors of a type are linked with the type and each other;
//   - any other method: the method declaration;
//   - a field or variable: the variable declaration.
//
// Two bindings denote the same symbol iff their keys are equal.
// Declaration is idempotent. b must not be NoBinding.
func Declaration(s *syntax.Snapshot, b syntax.BindingID) syntax.BindingID {
	bb := s.Binding(b)
	if bb == nil {
		panic("refactor: Declaration of invalid binding")
	}
	switch bb.Kind {
	case syntax.BindMethod:
		d := declOf(s, b)
		if db := s.Binding(d); db.Constructor && db.Type.IsValid() {
			return declOf(s, db.Type)
		}
		return d
	case syntax.BindType, syntax.BindField, syntax.BindVariable:
		return declOf(s, b)
	case syntax.BindLabel:
		return b
	}
	panic("refactor: unexpected binding kind " + bb.Kind.String())
}

// declOf follows Decl links to the declaration-level binding.
func declOf(s *syntax.Snapshot, b syntax.BindingID) syntax.BindingID {
	for i := 0; i < s.NumBindings(); i++ {
		next := s.Binding(b).Decl
		if !next.IsValid() {
			return b
		}
		b = next
	}
	panic("refactor: cycle in binding declarations")
}

// Supertypes returns the canonical proper supertypes of the type t,
// nearest first, without duplicates.
func Supertypes(s *syntax.Snapshot, t syntax.BindingID) []syntax.BindingID {
	t = declOf(s, t)
	seen := map[syntax.BindingID]bool{t: true}
	var out []syntax.BindingID
	queue := []syntax.BindingID{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, super := range s.Binding(cur).Supers {
			super = declOf(s, super)
			if seen[super] {
				continue
			}
			seen[super] = true
			out = append(out, super)
			queue = append(queue, super)
		}
	}
	return out
}

// IsSubtype reports whether t is a proper subtype of super.
func IsSubtype(s *syntax.Snapshot, t, super syntax.BindingID) bool {
	super = declOf(s, super)
	for _, x := range Supertypes(s, t) {
		if x == super {
			return true
		}
	}
	return false
}

// Overrides reports whether method m1 overrides method m2: both are
// non-private instance methods with the same name and erased parameters,
// and the declaring type of m1 is a proper subtype of that of m2.
func Overrides(s *syntax.Snapshot, m1, m2 syntax.BindingID) bool {
	b1 := s.Binding(declOf(s, m1))
	b2 := s.Binding(declOf(s, m2))
	if b1.Kind != syntax.BindMethod || b2.Kind != syntax.BindMethod {
		return false
	}
	if b1.Constructor || b2.Constructor || b1.Static || b2.Static {
		return false
	}
	if b1.Visibility == syntax.Private || b2.Visibility == syntax.Private {
		return false
	}
	if b1.Signature() != b2.Signature() {
		return false
	}
	if !b1.Type.IsValid() || !b2.Type.IsValid() {
		return false
	}
	return IsSubtype(s, b1.Type, b2.Type)
}
