// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"strings"
)

// A BindingKind is the kind of symbol a Binding denotes.
type BindingKind uint8

const (
	_ BindingKind = iota
	BindField
	BindMethod
	BindType
	BindVariable
	BindLabel
	numBindingKinds
)

var bindingKindNames = [numBindingKinds]string{
	BindField:    "field",
	BindMethod:   "method",
	BindType:     "type",
	BindVariable: "variable",
	BindLabel:    "label",
}

func (k BindingKind) String() string {
	if k > 0 && k < numBindingKinds {
		return bindingKindNames[k]
	}
	return fmt.Sprintf("binding(%d)", uint8(k))
}

// ParseBindingKind returns the BindingKind with the given name.
func ParseBindingKind(name string) (BindingKind, bool) {
	for k := BindingKind(1); k < numBindingKinds; k++ {
		if bindingKindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// A Visibility is the declared accessibility of a type or member.
// Larger values are more visible.
type Visibility uint8

const (
	Private Visibility = iota
	PackagePrivate
	Protected
	Public
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "private"
	case PackagePrivate:
		return "package"
	case Protected:
		return "protected"
	case Public:
		return "public"
	}
	return fmt.Sprintf("visibility(%d)", uint8(v))
}

// ParseVisibility returns the Visibility with the given name.
// The empty string is package-private.
func ParseVisibility(name string) (Visibility, bool) {
	switch name {
	case "private":
		return Private, true
	case "", "package":
		return PackagePrivate, true
	case "protected":
		return Protected, true
	case "public":
		return Public, true
	}
	return 0, false
}

// A Binding is a resolved reference from a name to the symbol it denotes.
//
// Bindings are not directly comparable: an instantiation of a generic type
// or method, or a reference to a field through a parameterized type, is a
// distinct Binding whose Decl leads to the declaration-level Binding.
type Binding struct {
	Kind BindingKind
	Name string

	// Decl is the binding this one instantiates, or NoBinding if this is
	// the declaration itself.
	Decl BindingID

	// Type is the declaring type of a field or method.
	Type BindingID

	Constructor bool
	Static      bool
	Interface   bool // type bindings only
	Recovered   bool // resolved with errors; treated as no binding

	Params     []string    // erased parameter kinds of a method
	Supers     []BindingID // immediate supertypes of a type
	Visibility Visibility

	// Node is the name node that declares this binding, or NoNode if it is
	// declared outside the snapshot.
	Node NodeID
}

// Signature returns the member signature of b: the name, followed for
// methods by the parenthesized erased parameter kinds.
func (b *Binding) Signature() string {
	if b.Kind != BindMethod {
		return b.Name
	}
	return b.Name + "(" + strings.Join(b.Params, ",") + ")"
}

// IsMember reports whether b is a field or method.
func (b *Binding) IsMember() bool {
	return b.Kind == BindField || b.Kind == BindMethod
}
