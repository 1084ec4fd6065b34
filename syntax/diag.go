// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"strconv"
)

// A ProblemID identifies the kind of problem a Diagnostic reports.
// IDs not listed here are carried through unchanged.
type ProblemID uint32

const (
	ProblemUndefinedField ProblemID = iota + 1
	ProblemUndefinedMethod
	ProblemUndefinedLabel
	ProblemUndefinedName
	ProblemUnresolvedVariable
	ProblemUndefinedType
	ProblemDuplicateMethod
	ProblemDuplicateField
	ProblemTypeMismatch
	ProblemUnusedLocal
	ProblemSyntax
	numProblems
)

var problemNames = [numProblems]string{
	ProblemUndefinedField:     "undefined-field",
	ProblemUndefinedMethod:    "undefined-method",
	ProblemUndefinedLabel:     "undefined-label",
	ProblemUndefinedName:      "undefined-name",
	ProblemUnresolvedVariable: "unresolved-variable",
	ProblemUndefinedType:      "undefined-type",
	ProblemDuplicateMethod:    "duplicate-method",
	ProblemDuplicateField:     "duplicate-field",
	ProblemTypeMismatch:       "type-mismatch",
	ProblemUnusedLocal:        "unused-local",
	ProblemSyntax:             "syntax",
}

func (id ProblemID) String() string {
	if id > 0 && id < numProblems {
		return problemNames[id]
	}
	return "problem(" + strconv.FormatUint(uint64(id), 10) + ")"
}

// ParseProblemID accepts a problem name or a decimal problem number.
func ParseProblemID(s string) (ProblemID, error) {
	for id := ProblemID(1); id < numProblems; id++ {
		if problemNames[id] == s {
			return id, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("unknown problem %q", s)
	}
	return ProblemID(n), nil
}

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity returns the Severity with the given name.
// The empty string is an error.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info":
		return SevInfo, true
	case "warning":
		return SevWarning, true
	case "", "error":
		return SevError, true
	}
	return 0, false
}

// A Diagnostic is a problem reported by the parse service.
// Its offsets are meaningful only within the snapshot that reported it.
type Diagnostic struct {
	ID       ProblemID
	Severity Severity
	Message  string
	Start    int
	End      int // inclusive
}

func (d Diagnostic) IsError() bool { return d.Severity >= SevError }

// Len returns the length of the diagnosed range.
func (d Diagnostic) Len() int { return d.End + 1 - d.Start }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d-%d: %s: %s", d.Start, d.End, d.ID, d.Message)
}
