// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"sort"

	"rsc.io/classrf/logger"
	"rsc.io/classrf/syntax"
)

// A PullUp analyzes moving members of one type to one of its supertypes.
// It only reads the snapshot; the edits themselves are made elsewhere.
type PullUp struct {
	s       *syntax.Snapshot
	members []syntax.BindingID // canonical, in the order given
	source  syntax.BindingID   // declaring type of members[0]
}

// NewPullUp returns an analysis for pulling members out of their declaring
// type. Instantiated members are mapped to their declarations; invalid IDs
// are kept for CheckPreactivation to report.
func NewPullUp(s *syntax.Snapshot, members []syntax.BindingID) *PullUp {
	p := &PullUp{s: s}
	for _, m := range members {
		if s.Binding(m) != nil {
			m = declOf(s, m)
		}
		p.members = append(p.members, m)
	}
	if len(p.members) > 0 {
		if b := s.Binding(p.members[0]); b != nil && b.Type.IsValid() {
			p.source = declOf(s, b.Type)
		}
	}
	return p
}

// Source returns the type the members are declared in, or NoBinding.
func (p *PullUp) Source() syntax.BindingID { return p.source }

// Members returns the canonical members being pulled up.
func (p *PullUp) Members() []syntax.BindingID { return p.members }

// Targets returns the types the members may be pulled up to:
// every proper supertype of the source type, nearest first.
func (p *PullUp) Targets() []syntax.BindingID {
	if !p.source.IsValid() {
		return nil
	}
	return Supertypes(p.s, p.source)
}

// DefaultTarget returns the nearest target declared in the snapshot that
// is not an interface, or failing that the nearest target declared in the
// snapshot, or NoBinding.
func (p *PullUp) DefaultTarget() syntax.BindingID {
	first := syntax.NoBinding
	for _, t := range p.Targets() {
		if !declaredIn(p.s, t) {
			continue
		}
		if !p.s.Binding(t).Interface {
			return t
		}
		if !first.IsValid() {
			first = t
		}
	}
	return first
}

// context returns a status context for the declaration of b.
func (p *PullUp) context(b syntax.BindingID) *Context {
	name := p.s.DeclaringName(b)
	if !name.IsValid() {
		return nil
	}
	n := p.s.Node(name)
	return &Context{
		Name:      p.s.Name,
		Start:     n.Start,
		End:       n.End(),
		Container: n.Parent,
		Source:    p.s.Text,
	}
}

// describe returns a readable name for a member or type, like "B.m(int)".
func (p *PullUp) describe(b syntax.BindingID) string {
	bb := p.s.Binding(b)
	if bb == nil {
		return "<nil>"
	}
	if t := p.s.Binding(bb.Type); t != nil && bb.IsMember() {
		return t.Name + "." + bb.Signature()
	}
	return bb.Signature()
}

// CheckPreactivation checks that the members form a valid selection:
// at least one member, only fields and methods, no constructors, no
// member twice, and all declared in the same type, which is declared in
// the snapshot. Failures are fatal.
func (p *PullUp) CheckPreactivation() *Status {
	st := new(Status)
	if len(p.members) == 0 {
		st.Add(Fatal, nil, "no members selected")
		return st
	}
	seen := make(map[syntax.BindingID]bool)
	for _, m := range p.members {
		b := p.s.Binding(m)
		switch {
		case b == nil:
			st.Add(Fatal, nil, "invalid member binding %d", m)
			continue
		case !b.IsMember():
			st.Add(Fatal, p.context(m), "%s is a %s, not a field or method", b.Name, b.Kind)
			continue
		case b.Constructor:
			st.Add(Fatal, p.context(m), "cannot pull up constructor %s", p.describe(m))
			continue
		case !declaredIn(p.s, m):
			st.Add(Fatal, nil, "%s is not declared in %s", p.describe(m), p.s.Name)
			continue
		}
		if seen[m] {
			st.Add(Fatal, p.context(m), "%s selected more than once", p.describe(m))
		}
		seen[m] = true
		if !b.Type.IsValid() || declOf(p.s, b.Type) != p.source {
			st.Add(Fatal, p.context(m), "members are not all declared in the same type")
		}
	}
	if st.HasFatal() {
		return st
	}
	if !declaredIn(p.s, p.source) {
		st.Add(Fatal, nil, "type %s is not declared in %s", p.s.Binding(p.source).Name, p.s.Name)
	}
	return st
}

// isSourceMember reports whether b is a field or method of the source type
// that could be pulled up with the members.
func (p *PullUp) isSourceMember(b syntax.BindingID) bool {
	bb := p.s.Binding(b)
	return bb != nil && bb.IsMember() && !bb.Constructor && bb.Type.IsValid() &&
		declOf(p.s, bb.Type) == p.source && declaredIn(p.s, b)
}

// references returns the members of the source type referred to from the
// declaration of m, in order of first reference.
func (p *PullUp) references(m syntax.BindingID) []syntax.BindingID {
	decl := p.s.Declaration(m)
	if !decl.IsValid() {
		return nil
	}
	var refs []syntax.BindingID
	seen := make(map[syntax.BindingID]bool)
	p.s.Inspect(decl, func(id syntax.NodeID) bool {
		n := p.s.Node(id)
		if n.Kind != syntax.KindName || !n.Binding.IsValid() {
			return true
		}
		if b := p.s.Binding(n.Binding); b.Recovered || b.Kind == syntax.BindLabel {
			return false
		}
		k := Declaration(p.s, n.Binding)
		if k != m && !seen[k] && p.isSourceMember(k) {
			seen[k] = true
			refs = append(refs, k)
		}
		return false
	})
	return refs
}

// RequiredMembers returns the least set of members of the source type that
// contains the pulled members and every member they refer to, directly or
// indirectly, in source order. RequiredMembers of its own result returns the
// same set.
func (p *PullUp) RequiredMembers(ctx context.Context) ([]syntax.BindingID, error) {
	in := make(map[syntax.BindingID]bool)
	var work, out []syntax.BindingID
	for _, m := range p.members {
		if !in[m] {
			in[m] = true
			work = append(work, m)
		}
	}
	for len(work) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := work[0]
		work = work[1:]
		out = append(out, m)
		for _, r := range p.references(m) {
			if !in[r] {
				in[r] = true
				work = append(work, r)
			}
		}
	}
	p.sortMembers(out)
	logger.Debugf("%s: %d required members for %d pulled", p.s.Name, len(out), len(p.members))
	return out, nil
}

// sortMembers sorts bindings by the position of their declarations.
// Bindings declared outside the snapshot sort last, by ID.
func (p *PullUp) sortMembers(list []syntax.BindingID) {
	pos := func(b syntax.BindingID) int {
		if n := p.s.DeclaringName(b); n.IsValid() {
			return p.s.Node(n).Start
		}
		return len(p.s.Text) + 1
	}
	sort.Slice(list, func(i, j int) bool {
		pi, pj := pos(list[i]), pos(list[j])
		if pi != pj {
			return pi < pj
		}
		return list[i] < list[j]
	})
}

// membersOf indexes the declaration-level members of every type.
func (p *PullUp) membersOf() map[syntax.BindingID][]syntax.BindingID {
	m := make(map[syntax.BindingID][]syntax.BindingID)
	p.s.Bindings(func(id syntax.BindingID, b *syntax.Binding) {
		if b.IsMember() && !b.Decl.IsValid() && !b.Constructor && b.Type.IsValid() {
			t := declOf(p.s, b.Type)
			m[t] = append(m[t], id)
		}
	})
	return m
}

// MatchingElements returns the members of the other subtypes of target
// that have the same kind and signature as a pulled member, in source
// order. Only signatures are compared, not bodies.
func (p *PullUp) MatchingElements(ctx context.Context, target syntax.BindingID) ([]syntax.BindingID, error) {
	target = declOf(p.s, target)
	sigs := make(map[string]bool)
	for _, m := range p.members {
		if b := p.s.Binding(m); b != nil && b.IsMember() {
			sigs[b.Kind.String()+" "+b.Signature()] = true
		}
	}
	members := p.membersOf()
	var out []syntax.BindingID
	var err error
	p.s.Bindings(func(id syntax.BindingID, b *syntax.Binding) {
		if err != nil || b.Kind != syntax.BindType || b.Decl.IsValid() || id == p.source {
			return
		}
		if err = ctx.Err(); err != nil {
			return
		}
		if !IsSubtype(p.s, id, target) {
			return
		}
		for _, m := range members[id] {
			mb := p.s.Binding(m)
			if sigs[mb.Kind.String()+" "+mb.Signature()] {
				out = append(out, m)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	p.sortMembers(out)
	return out, nil
}

// inherited returns the nearest member with the given kind and signature
// that target inherits from its supertypes, or NoBinding.
// Private members are not inherited.
func (p *PullUp) inherited(members map[syntax.BindingID][]syntax.BindingID, target syntax.BindingID, kind syntax.BindingKind, sig string) syntax.BindingID {
	for _, t := range Supertypes(p.s, target) {
		for _, m := range members[t] {
			b := p.s.Binding(m)
			if b.Kind == kind && b.Visibility != syntax.Private && b.Signature() == sig {
				return m
			}
		}
	}
	return syntax.NoBinding
}

// CheckActivation checks that the members can be pulled up to target.
// It runs CheckPreactivation first and stops if that fails. Each conflict
// is reported as an error entry naming the member:
//
//   - target already declares a member with the same signature;
//   - a static method would hide an instance method inherited by target,
//     or the reverse;
//   - a method would override an inherited method with less visibility;
//   - an instance field would move into an interface;
//   - a member required by a pulled member is not pulled with it.
func (p *PullUp) CheckActivation(ctx context.Context, target syntax.BindingID) *Status {
	st := p.CheckPreactivation()
	if st.HasFatal() {
		return st
	}
	target = declOf(p.s, target)
	tb := p.s.Binding(target)
	if tb == nil || tb.Kind != syntax.BindType {
		st.Add(Fatal, nil, "invalid target type")
		return st
	}
	isTarget := false
	for _, t := range p.Targets() {
		if t == target {
			isTarget = true
			break
		}
	}
	if !isTarget {
		st.Add(Fatal, nil, "%s is not a supertype of %s", tb.Name, p.s.Binding(p.source).Name)
		return st
	}
	if !declaredIn(p.s, target) {
		st.Add(Fatal, nil, "type %s is not declared in %s", tb.Name, p.s.Name)
		return st
	}

	members := p.membersOf()
	for _, m := range p.members {
		if err := ctx.Err(); err != nil {
			return cancelledStatus(err)
		}
		b := p.s.Binding(m)
		where := p.context(m)
		sig := b.Signature()

		for _, x := range members[target] {
			xb := p.s.Binding(x)
			if xb.Kind == b.Kind && xb.Signature() == sig {
				st.Errorf(where, "%s already declares %s", tb.Name, sig)
			}
		}

		if b.Kind == syntax.BindMethod {
			if over := p.inherited(members, target, b.Kind, sig); over.IsValid() {
				ob := p.s.Binding(over)
				switch {
				case ob.Static != b.Static:
					st.Errorf(where, "%s would %s %s", p.describe(m), staticVerb(b.Static), p.describe(over))
				case b.Visibility < ob.Visibility:
					st.Errorf(where, "%s would reduce the visibility of %s from %s to %s",
						p.describe(m), p.describe(over), ob.Visibility, b.Visibility)
				}
			}
		}

		if b.Kind == syntax.BindField && tb.Interface && !b.Static {
			st.Errorf(where, "cannot move instance field %s into interface %s", b.Name, tb.Name)
		}
	}

	required, err := p.RequiredMembers(ctx)
	if err != nil {
		return cancelledStatus(err)
	}
	pulled := make(map[syntax.BindingID]bool)
	for _, m := range p.members {
		pulled[m] = true
	}
	for _, r := range required {
		if !pulled[r] {
			st.Errorf(p.context(r), "%s is required by the pulled members but is not pulled up", p.describe(r))
		}
	}
	return st
}

func staticVerb(static bool) string {
	if static {
		return "hide instance method"
	}
	return "override static method"
}
