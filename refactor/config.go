// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"golang.org/x/xerrors"

	"rsc.io/classrf/syntax"
)

// A Category is a set of symbol categories a problem can stand for.
type Category uint8

const (
	CatField Category = 1 << iota
	CatMethod
	CatType
	CatLabel

	CatName = CatField | CatType
)

func (c Category) String() string {
	switch c {
	case 0:
		return "none"
	case CatName:
		return "name"
	}
	var parts []string
	for _, x := range []struct {
		c    Category
		name string
	}{{CatField, "field"}, {CatMethod, "method"}, {CatType, "type"}, {CatLabel, "label"}} {
		if c&x.c != 0 {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseCategory parses a category name as written in configuration files.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "field":
		return CatField, true
	case "method":
		return CatMethod, true
	case "type":
		return CatType, true
	case "label":
		return CatLabel, true
	case "name":
		return CatName, true
	}
	return 0, false
}

// implicitTypesSince is the first source level with implicitly typed locals.
const implicitTypesSince = "v10"

// Config holds the settings that influence analyses.
// It is passed explicitly to each entry point that needs it.
type Config struct {
	// LinkableProblems maps the problems that may stand in for a missing
	// binding to the categories of symbols they denote.
	LinkableProblems map[syntax.ProblemID]Category

	// SourceLevel is the language level of the analyzed source, such as
	// "v10" or "v8". The empty string means the latest level.
	SourceLevel string

	// MaxDiagnostics bounds how many status entries the command prints.
	MaxDiagnostics int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LinkableProblems: map[syntax.ProblemID]Category{
			syntax.ProblemUndefinedField:     CatField,
			syntax.ProblemUndefinedMethod:    CatMethod,
			syntax.ProblemUndefinedLabel:     CatLabel,
			syntax.ProblemUndefinedName:      CatName,
			syntax.ProblemUnresolvedVariable: CatName,
			syntax.ProblemUndefinedType:      CatType,
		},
		MaxDiagnostics: 100,
	}
}

// category returns the category of the problem id, or 0.
func (c *Config) category(id syntax.ProblemID) Category {
	if c == nil {
		c = DefaultConfig()
	}
	return c.LinkableProblems[id]
}

// implicitTypes reports whether the source level has implicitly typed
// locals, so that names marked Implicit are keywords rather than names.
func (c *Config) implicitTypes() bool {
	if c == nil || c.SourceLevel == "" {
		return true
	}
	return semver.Compare(c.SourceLevel, implicitTypesSince) >= 0
}

type configFile struct {
	SourceLevel    string            `toml:"source_level"`
	MaxDiagnostics *int              `toml:"max_diagnostics"`
	Linkable       map[string]string `toml:"linkable"`
}

// LoadConfig reads a TOML configuration file on top of DefaultConfig.
//
//	source_level = "v10"
//	max_diagnostics = 50
//
//	[linkable]
//	undefined-field = "field"
//	unresolved-variable = "name"
//
// A [linkable] table replaces the default problem categories.
func LoadConfig(path string) (*Config, error) {
	var f configFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, xerrors.Errorf("loading config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, xerrors.Errorf("loading config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	c := DefaultConfig()
	if f.SourceLevel != "" {
		level := f.SourceLevel
		if !strings.HasPrefix(level, "v") {
			level = "v" + level
		}
		if !semver.IsValid(level) {
			return nil, xerrors.Errorf("loading config %s: invalid source_level %q", path, f.SourceLevel)
		}
		c.SourceLevel = level
	}
	if f.MaxDiagnostics != nil {
		if *f.MaxDiagnostics < 0 {
			return nil, xerrors.Errorf("loading config %s: negative max_diagnostics", path)
		}
		c.MaxDiagnostics = *f.MaxDiagnostics
	}
	if f.Linkable != nil {
		c.LinkableProblems = make(map[syntax.ProblemID]Category)
		for name, cat := range f.Linkable {
			id, err := syntax.ParseProblemID(name)
			if err != nil {
				return nil, xerrors.Errorf("loading config %s: %w", path, err)
			}
			c1, ok := ParseCategory(cat)
			if !ok {
				return nil, xerrors.Errorf("loading config %s: unknown category %q for %s", path, cat, name)
			}
			c.LinkableProblems[id] = c1
		}
	}
	return c, nil
}
