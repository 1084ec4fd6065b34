// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Classrf analyzes refactorings of class-based programs.
//
// Usage:
//
//	classrf [-diff] [-v] [-config file] [-parsed snapshot,...] script snapshot...
//
// Classrf loads parse snapshots written by an external parse service and
// applies a script of analysis commands to them. A snapshot holds the text
// of one source file, its syntax tree, the symbol bindings of its names,
// and the problems the compiler reported. Snapshot files are msgpack,
// or JSON when the file name ends in “.json”.
//
// Commands that edit text, like rename, write the edited files back to
// the disk, under the names recorded in the snapshots. The -diff flag
// causes classrf to print a diff of the edits instead.
//
// A script is a sequence of commands, one per line.
// Comments are introduced by # and extend to the end of the line.
// Commands may be broken across lines by ending all but the last
// with a trailing backslash (before any comment), as in:
//
//	classrf '
//		# does m depend on anything?
//		required B.m \ # the method
//		         B.k   # and its helper
//	' P.snap
//
// # Addresses
//
// Commands name code in one of two ways.
//
// An item names a declared type or member: a type name (B), a field or
// method of a type (B.y, B.m), or a method with its erased parameter
// kinds (B.m(int,String)) when the method is overloaded.
//
// A text address has the form Snapshot:Range, where Snapshot is the
// name recorded in a snapshot and Range identifies a section of its text.
// The Range syntax is as used in the Acme and Sam text editors. The most
// common forms are the line range “N,M”, the byte range “#N,#M”, and the
// regular expression range “/re1/,/re2/”. For example:
//
//	V.cls:3            # line 3
//	V.cls:/int a = 1;/ # the declaration of a
//	V.cls:#40,#43      # bytes 40 to 43
//
// A text address names the node spanning exactly that range, or failing
// that the innermost node containing it.
//
// # The links command
//
// The links command prints the names linked to the name at an address:
//
//	links address
//
// For a name with a binding these are the declaration and every reference
// of the symbol, the constructors of a type, and the methods a method
// overrides or is overridden by. For a name that did not resolve, they
// are the other unresolved names whose compiler problems put them in the
// same category (field, method, type, or label). For a label they are the
// labeled statement and the break and continue statements that refer to it.
//
// # The names command
//
// The names command prints the names a new local variable in the statement
// at an address must not take, and the first free element name:
//
//	names address
//
// # The targets, required, and matching commands
//
// The targets command prints the supertypes the members of one type may be
// pulled up to, nearest first, marking the default target:
//
//	targets member...
//
// The required command prints the members that must be pulled up along
// with the given ones because the given ones refer to them:
//
//	required member...
//
// The matching command prints the members of the target's other subtypes
// that match the given ones, which a pull up could also remove:
//
//	matching member... target
//
// # The pullup command
//
// The pullup command checks whether members may be pulled up to a target:
//
//	pullup member... target
//
// It prints each problem found, or ok. If the pull up is not possible,
// the script stops.
//
// # The rename command
//
// The rename command renames a type in every loaded snapshot:
//
//	rename type newname
//
// # The validate command
//
// The validate command reparses the current text of snapshots, including
// the edits made so far, and prints the problems the edits introduced:
//
//	validate [snapshot...]
//
// With no arguments, validate checks every loaded snapshot. The parse
// service is played by the loaded snapshots and those given with -parsed:
// the snapshot with the same name and text is the result of the parse.
//
// # Configuration
//
// The -config flag names a TOML file adjusting the analysis:
//
//	source_level = "v8"     # no implicitly typed locals before v10
//	max_diagnostics = 20    # problems printed per status
//
//	[linkable]              # problems that link unresolved names
//	undefined-field = "field"
//	undefined-method = "method"
package main
