// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"

	"golang.org/x/xerrors"

	"rsc.io/classrf/logger"
	"rsc.io/classrf/syntax"
)

// A Parser parses and resolves source text into a snapshot, reporting its
// diagnostics in the snapshot's Problems.
type Parser interface {
	Parse(ctx context.Context, name string, text []byte) (*syntax.Snapshot, error)
}

// IntroducedProblems returns the problems in new that have no problem with
// the same ID and message in old, in the order of new.
//
// Positions are ignored, since edits move text around. Two unrelated
// problems with the same ID and message cannot be told apart.
func IntroducedProblems(new, old []syntax.Diagnostic) []syntax.Diagnostic {
	type key struct {
		id  syntax.ProblemID
		msg string
	}
	had := make(map[key]bool, len(old))
	for _, p := range old {
		had[key{p.ID, p.Message}] = true
	}
	var out []syntax.Diagnostic
	for _, p := range new {
		if !had[key{p.ID, p.Message}] {
			out = append(out, p)
		}
	}
	return out
}

// container returns the innermost method, lambda, or block in s containing
// [start, end), or NoNode.
func container(s *syntax.Snapshot, start, end int) syntax.NodeID {
	id := s.Covering(s.Root, start, end-start)
	if !id.IsValid() || s.Node(id).Kind.IsContainer() {
		return id
	}
	return s.Enclosing(id, func(n *syntax.Node) bool { return n.Kind.IsContainer() })
}

// problemContext returns the status context for a diagnostic in s.
func problemContext(s *syntax.Snapshot, p syntax.Diagnostic) *Context {
	start, end := p.Start, p.End+1
	return &Context{
		Name:      s.Name,
		Start:     start,
		End:       end,
		Container: container(s, start, end),
		Source:    s.Text,
	}
}

// CheckNewSource parses newText, the result of editing old, and reports
// the problems the edit introduced: errors as Error entries and the rest as
// Warning entries, each located in the new text. Problems already present
// in old are not reported.
//
// If newText cannot be parsed, the status is fatal. If ctx is done between
// phases, the status is marked cancelled.
func CheckNewSource(ctx context.Context, p Parser, old *syntax.Snapshot, newText []byte) *Status {
	s, err := p.Parse(ctx, old.Name, newText)
	if err != nil {
		if ctx.Err() != nil {
			return cancelledStatus(ctx.Err())
		}
		st := new(Status)
		st.Add(Fatal, nil, "%v", xerrors.Errorf("parsing %s: %w", old.Name, err))
		return st
	}
	if err := ctx.Err(); err != nil {
		return cancelledStatus(err)
	}

	introduced := IntroducedProblems(s.Problems, old.Problems)
	if err := ctx.Err(); err != nil {
		return cancelledStatus(err)
	}

	st := new(Status)
	for _, d := range introduced {
		where := problemContext(s, d)
		if d.IsError() {
			st.Errorf(where, "%s", d.Message)
		} else {
			st.Warnf(where, "%s", d.Message)
		}
	}
	logger.Debugf("%s: %d problems, %d introduced", s.Name, len(s.Problems), len(introduced))
	return st
}

// ReportProblemNodes returns a status with one error for each name node,
// reporting that the name collides with another declaration.
func ReportProblemNodes(s *syntax.Snapshot, names []syntax.NodeID) *Status {
	st := new(Status)
	for _, id := range names {
		n := s.Node(id)
		st.Errorf(&Context{
			Name:      s.Name,
			Start:     n.Start,
			End:       n.End(),
			Container: container(s, n.Start, n.End()),
			Source:    s.Text,
		}, "name collision with '%s'", n.Ident)
	}
	return st
}
