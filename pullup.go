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

// A pullUpArgs is a parsed "member... [target]" argument list
// with its members already checked.
type pullUpArgs struct {
	s      *syntax.Snapshot
	p      *refactor.PullUp
	target syntax.BindingID
}

// parsePullUp parses the arguments of cmd. If withTarget is set, the last
// argument is the target type.
func parsePullUp(w *workspace, cmd, args string, withTarget bool) (*pullUpArgs, error) {
	fields := strings.Fields(args)
	items := fields
	if withTarget {
		if len(fields) < 2 {
			return nil, newErrUsage("%s member... target", cmd)
		}
		items = fields[:len(fields)-1]
	} else if len(fields) < 1 {
		return nil, newErrUsage("%s member...", cmd)
	}

	s, members, err := w.lookupMembers(items)
	if err != nil {
		return nil, err
	}
	a := &pullUpArgs{s: s, p: refactor.NewPullUp(s, members)}
	if withTarget {
		name := fields[len(fields)-1]
		ts, t, err := w.lookupItem(name)
		if err != nil {
			return nil, err
		}
		if ts != s {
			return nil, newErrPrecondition("%s is not in %s", name, s.Name)
		}
		if s.Binding(t).Kind != syntax.BindType {
			return nil, newErrPrecondition("%s is not a type", name)
		}
		a.target = t
	}

	if st := a.p.CheckPreactivation(); !st.OK() {
		w.printStatus("", st)
		return nil, newErrPrecondition("cannot pull up %s", strings.Join(items, " "))
	}
	return a, nil
}

// cmdTargets prints the types the members may be pulled up to, marking
// the default.
func cmdTargets(w *workspace, args string) error {
	a, err := parsePullUp(w, "targets", args, false)
	if err != nil {
		return err
	}
	def := a.p.DefaultTarget()
	for _, t := range a.p.Targets() {
		line := itemName(a.s, t)
		if a.s.Binding(t).Interface {
			line += " interface"
		}
		if t == def {
			line += " (default)"
		}
		fmt.Fprintln(w.Stdout, line)
	}
	return nil
}

// cmdRequired prints the members that must move along with the members.
func cmdRequired(w *workspace, args string) error {
	a, err := parsePullUp(w, "required", args, false)
	if err != nil {
		return err
	}
	required, err := a.p.RequiredMembers(w.ctx)
	if err != nil {
		return err
	}
	for _, m := range required {
		fmt.Fprintln(w.Stdout, itemName(a.s, m))
	}
	return nil
}

// cmdMatching prints the members of other subtypes of the target that
// match the members.
func cmdMatching(w *workspace, args string) error {
	a, err := parsePullUp(w, "matching", args, true)
	if err != nil {
		return err
	}
	matching, err := a.p.MatchingElements(w.ctx, a.target)
	if err != nil {
		return err
	}
	for _, m := range matching {
		fmt.Fprintln(w.Stdout, itemName(a.s, m))
	}
	return nil
}

// cmdPullUp checks whether the members can be pulled up to the target.
func cmdPullUp(w *workspace, args string) error {
	a, err := parsePullUp(w, "pullup", args, true)
	if err != nil {
		return err
	}
	st := a.p.CheckActivation(w.ctx, a.target)
	if st.Cancelled() {
		return w.ctx.Err()
	}
	w.printStatus("", st)
	if !st.OK() {
		return newErrPrecondition("cannot pull up to %s", itemName(a.s, a.target))
	}
	return nil
}
