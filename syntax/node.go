// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fmt"

// A Kind is the syntactic category of a Node.
type Kind uint8

const (
	_ Kind = iota
	KindUnit
	KindTypeDecl
	KindFieldDecl
	KindMethodDecl
	KindLambda
	KindBlock
	KindVarDecl
	KindStmt
	KindLoop
	KindLabeled
	KindBreak
	KindContinue
	KindExpr
	KindName
	numKinds
)

var kindNames = [numKinds]string{
	KindUnit:       "unit",
	KindTypeDecl:   "type",
	KindFieldDecl:  "field",
	KindMethodDecl: "method",
	KindLambda:     "lambda",
	KindBlock:      "block",
	KindVarDecl:    "var",
	KindStmt:       "stmt",
	KindLoop:       "loop",
	KindLabeled:    "labeled",
	KindBreak:      "break",
	KindContinue:   "continue",
	KindExpr:       "expr",
	KindName:       "name",
}

func (k Kind) String() string {
	if k > 0 && k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k := Kind(1); k < numKinds; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// IsContainer reports whether nodes of kind k can anchor a reported
// problem: method declarations, lambdas, and blocks.
func (k Kind) IsContainer() bool {
	switch k {
	case KindMethodDecl, KindLambda, KindBlock:
		return true
	}
	return false
}

// A Node is one element of a parsed tree.
// Parent and Children are arena indices, not owning references.
type Node struct {
	Kind     Kind
	Parent   NodeID
	Children []NodeID

	// Source range [Start, Start+Len).
	Start int
	Len   int

	// Name nodes only.
	Ident    string
	Binding  BindingID // NoBinding if the name did not resolve
	Implicit bool      // the implicit-type keyword of an implicitly typed local
}

// End returns the offset just past the node.
func (n *Node) End() int { return n.Start + n.Len }

// Covers reports whether n's range contains [start, end).
func (n *Node) Covers(start, end int) bool {
	return n.Start <= start && end <= n.End()
}
