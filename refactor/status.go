// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"sort"
	"strings"

	"rsc.io/classrf/syntax"
)

// A Severity is the severity of a status entry.
type Severity int

const (
	OK Severity = iota
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "ok"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// A Context locates a status entry in a snapshot.
type Context struct {
	Name      string        // snapshot name
	Start     int           // byte range [Start, End)
	End       int           //
	Container syntax.NodeID // enclosing method, lambda, or block, if known
	Source    []byte        // text the range refers to
}

// String formats the context as name:line:col when the source is known.
func (c *Context) String() string {
	if c == nil {
		return ""
	}
	if c.Source == nil {
		return fmt.Sprintf("%s:#%d", c.Name, c.Start)
	}
	s := &syntax.Snapshot{Name: c.Name, Text: c.Source}
	return s.Addr(c.Start)
}

// An Entry is one problem recorded in a Status.
type Entry struct {
	Severity Severity
	Msg      string
	Context  *Context
}

func (e *Entry) String() string {
	if e.Context != nil {
		return fmt.Sprintf("%s: %s: %s", e.Context, e.Severity, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Severity, e.Msg)
}

type entryKey struct {
	sev   Severity
	msg   string
	name  string
	start int
	end   int
}

// A Status is the structured outcome of a check.
// The zero value is an OK status, ready to use.
type Status struct {
	entries   []*Entry
	set       map[entryKey]bool
	cancelled bool
}

// Add records an entry. Entries with the same severity, message, and
// context range as an earlier entry are suppressed.
func (s *Status) Add(sev Severity, ctx *Context, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	s.AddEntry(&Entry{Severity: sev, Msg: msg, Context: ctx})
}

// AddEntry records e, suppressing duplicates as Add does.
func (s *Status) AddEntry(e *Entry) {
	k := entryKey{sev: e.Severity, msg: e.Msg}
	if c := e.Context; c != nil {
		k.name, k.start, k.end = c.Name, c.Start, c.End
	}
	if s.set[k] {
		return
	}
	if s.set == nil {
		s.set = make(map[entryKey]bool)
	}
	s.set[k] = true
	s.entries = append(s.entries, e)
}

func (s *Status) Errorf(ctx *Context, format string, args ...any) {
	s.Add(Error, ctx, format, args...)
}

func (s *Status) Warnf(ctx *Context, format string, args ...any) {
	s.Add(Warning, ctx, format, args...)
}

// Merge adds all entries of t to s.
func (s *Status) Merge(t *Status) {
	if t == nil {
		return
	}
	for _, e := range t.entries {
		s.AddEntry(e)
	}
	if t.cancelled {
		s.cancelled = true
	}
}

// Entries returns the recorded entries in the order they were added.
func (s *Status) Entries() []*Entry {
	return s.entries
}

// Severity returns the highest severity recorded, or OK.
func (s *Status) Severity() Severity {
	sev := OK
	for _, e := range s.entries {
		if e.Severity > sev {
			sev = e.Severity
		}
	}
	return sev
}

// OK reports whether s has no error, no fatal entry, and was not cancelled.
func (s *Status) OK() bool {
	return !s.cancelled && s.Severity() < Error
}

// HasFatal reports whether s records a fatal entry.
func (s *Status) HasFatal() bool {
	return s.Severity() >= Fatal
}

// Cancelled reports whether the check was cancelled before completing.
func (s *Status) Cancelled() bool {
	return s.cancelled
}

// cancelledStatus returns a Status marking a cancelled check.
func cancelledStatus(err error) *Status {
	s := &Status{cancelled: true}
	s.Add(Fatal, nil, "cancelled: %v", err)
	return s
}

// String sorts the entries by position and returns a "\n" separated list.
// Messages that repeat in more than three places are collapsed into one
// line, on the assumption that the refactoring amplified a single issue.
func (s *Status) String() string {
	if len(s.entries) == 0 {
		return "ok"
	}
	entries := append([]*Entry(nil), s.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := entries[i].Context, entries[j].Context
		switch {
		case ci == nil || cj == nil:
			return ci == nil && cj != nil
		case ci.Name != cj.Name:
			return ci.Name < cj.Name
		}
		return ci.Start < cj.Start
	})

	count := make(map[string]int)
	for _, e := range entries {
		count[e.Msg]++
	}

	buf := new(strings.Builder)
	for _, e := range entries {
		line := e.String()
		switch n := count[e.Msg]; {
		case n > 3:
			count[e.Msg] = -1
			line += fmt.Sprintf(" [× %d]", n)
		case n < 0:
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
	}
	return buf.String()
}

// Err returns an error equivalent to s if s is not OK, and otherwise nil.
func (s *Status) Err() error {
	if s.OK() {
		return nil
	}
	return &StatusError{s}
}

// A StatusError adapts a failing Status to the error interface.
type StatusError struct {
	Status *Status
}

func (e *StatusError) Error() string {
	return e.Status.String()
}
