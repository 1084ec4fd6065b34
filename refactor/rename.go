// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"rsc.io/classrf/edit"
)

// A Searcher finds the references to a type outside the snapshots under
// analysis, calling accept for each one found.
type Searcher interface {
	SearchType(ctx context.Context, qualified string, accept func(resource string, start, length int) error) error
}

// A Replace replaces the text [Start, Start+Len) with Text.
type Replace struct {
	Start int
	Len   int
	Text  string
}

// A FileChange is a set of replacements in one resource.
type FileChange struct {
	Resource string
	Replaces []Replace // sorted by Start
}

// Apply returns text with the replacements applied.
func (c *FileChange) Apply(text []byte) ([]byte, error) {
	b := edit.NewBuffer(text)
	for _, r := range c.Replaces {
		if err := b.Replace(r.Start, r.Start+r.Len, r.Text); err != nil {
			return nil, xerrors.Errorf("%s: %w", c.Resource, err)
		}
	}
	out, err := b.Bytes()
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", c.Resource, err)
	}
	return out, nil
}

// QualifiedReplacement returns the new qualified name of the type named
// qualified when its simple name becomes newName: the qualifier is kept.
func QualifiedReplacement(qualified, newName string) string {
	i := strings.LastIndex(qualified, ".")
	if i < 0 {
		return newName
	}
	return qualified[:i+1] + newName
}

// RenameTypeEdits collects the references searcher finds to the type
// named qualified and returns the edits replacing each with the new
// qualified name, grouped by resource. Resources are sorted by name.
// If there are no references, RenameTypeEdits returns nil.
func RenameTypeEdits(ctx context.Context, searcher Searcher, qualified, newName string) ([]*FileChange, error) {
	repl := QualifiedReplacement(qualified, newName)
	changes := make(map[string]*FileChange)
	err := searcher.SearchType(ctx, qualified, func(resource string, start, length int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := changes[resource]
		if c == nil {
			c = &FileChange{Resource: resource}
			changes[resource] = c
		}
		c.Replaces = append(c.Replaces, Replace{Start: start, Len: length, Text: repl})
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("searching for %s: %w", qualified, err)
	}
	if len(changes) == 0 {
		return nil, nil
	}

	out := make([]*FileChange, 0, len(changes))
	for _, c := range changes {
		sort.SliceStable(c.Replaces, func(i, j int) bool {
			return c.Replaces[i].Start < c.Replaces[j].Start
		})
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Resource < out[j].Resource
	})
	return out, nil
}
