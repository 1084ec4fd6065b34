// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"testing"

	"rsc.io/classrf/syntax"
)

// A hierarchy of three classes, each declaring m.
// B.n calls m through an instantiated binding.
const hierText = `class A {
  public void m() { }
}
class B extends A {
  int y;
  void m() { y = y + 1; }
  void n() { m(); }
}
class C extends B {
  void m() { }
}
`

type hier struct {
	s                 *syntax.Snapshot
	tA, tB, tC        syntax.BindingID
	mA, mB, mC, mInst syntax.BindingID
	y, n              syntax.BindingID

	declMA, declMB, declMC syntax.NodeID
	declY, y1, y2          syntax.NodeID
	call                   syntax.NodeID
	bodyBm                 syntax.NodeID
}

func buildHier(t *testing.T) *hier {
	t.Helper()
	h := new(hier)
	b := syntax.NewBuilder("H.cls", []byte(hierText))
	h.tA = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "A", Visibility: syntax.Public})
	h.tB = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "B", Supers: []syntax.BindingID{h.tA}})
	h.tC = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "C", Supers: []syntax.BindingID{h.tB}})
	h.mA = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: h.tA, Visibility: syntax.Public})
	h.mB = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: h.tB, Visibility: syntax.Public})
	h.mC = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: h.tC, Visibility: syntax.Public})
	h.mInst = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: h.tB, Decl: h.mB})
	h.y = b.Bind(syntax.Binding{Kind: syntax.BindField, Name: "y", Type: h.tB})
	h.n = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "n", Type: h.tB})

	root := b.Root()
	declA := b.Node(root, syntax.KindTypeDecl, `/class A \{/,/^\}/`)
	b.Declare(declA, `/A/`, h.tA)
	meth := b.Node(declA, syntax.KindMethodDecl, `/public void m\(\) \{ \}/`)
	h.declMA = b.Declare(meth, `/m/`, h.mA)
	b.Node(meth, syntax.KindBlock, `/\{ \}/`)

	declB := b.Node(root, syntax.KindTypeDecl, `/class B extends A \{/,/^\}/`)
	b.Declare(declB, `/B/`, h.tB)
	b.Name(declB, `/A/`, h.tA)
	field := b.Node(declB, syntax.KindFieldDecl, `/int y;/`)
	h.declY = b.Declare(field, `/y/`, h.y)
	meth = b.Node(declB, syntax.KindMethodDecl, `/void m\(\) \{[^}]*\}/`)
	h.declMB = b.Declare(meth, `/m/`, h.mB)
	h.bodyBm = b.Node(meth, syntax.KindBlock, `/\{[^}]*\}/`)
	stmt := b.Node(h.bodyBm, syntax.KindStmt, `/y = y \+ 1;/`)
	h.y1 = b.Name(stmt, `/y/`, h.y)
	h.y2 = b.Name(stmt, `/y//y/`, h.y)
	meth = b.Node(declB, syntax.KindMethodDecl, `/void n\(\) \{[^}]*\}/`)
	b.Declare(meth, `/n/`, h.n)
	body := b.Node(meth, syntax.KindBlock, `/\{[^}]*\}/`)
	stmt = b.Node(body, syntax.KindStmt, `/m\(\);/`)
	h.call = b.Name(stmt, `/m/`, h.mInst)

	declC := b.Node(root, syntax.KindTypeDecl, `/class C extends B \{/,/^\}/`)
	b.Declare(declC, `/C/`, h.tC)
	b.Name(declC, `/B/`, h.tB)
	meth = b.Node(declC, syntax.KindMethodDecl, `/void m\(\) \{ \}/`)
	h.declMC = b.Declare(meth, `/m/`, h.mC)
	b.Node(meth, syntax.KindBlock, `/\{ \}/`)

	s, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	h.s = s
	return h
}

// Private methods, an implicitly typed local, and a supertype Base
// known only through its bindings.
const visText = `class A extends Base {
  private void m() { }
  private void k() { }
  public void run() { super.run(); }
}
class B extends A {
}
class C extends B {
  void m() { }
  static void k() { }
  public void run() { var a = new A(); a.run(); }
}
`

type vis struct {
	s                 *syntax.Snapshot
	tBase, tA, tB, tC syntax.BindingID
	mA, kA, runA      syntax.BindingID
	mC, kC, runC      syntax.BindingID
	baseRun           syntax.BindingID

	declA, extendsA, keyword, newA syntax.NodeID
	declMA, declMC                 syntax.NodeID
	declRunA, declRunC             syntax.NodeID
	superRun, callRun              syntax.NodeID
}

func buildVis(t *testing.T) *vis {
	t.Helper()
	v := new(vis)
	b := syntax.NewBuilder("V.cls", []byte(visText))
	v.tBase = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "Base", Visibility: syntax.Public})
	v.baseRun = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "run", Type: v.tBase, Visibility: syntax.Public})
	v.tA = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "A", Supers: []syntax.BindingID{v.tBase}})
	v.tB = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "B", Supers: []syntax.BindingID{v.tA}})
	v.tC = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "C", Supers: []syntax.BindingID{v.tB}})
	v.mA = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: v.tA, Visibility: syntax.Private})
	v.kA = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "k", Type: v.tA, Visibility: syntax.Private})
	v.runA = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "run", Type: v.tA, Visibility: syntax.Public})
	v.mC = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: v.tC, Visibility: syntax.PackagePrivate})
	v.kC = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "k", Type: v.tC, Visibility: syntax.PackagePrivate, Static: true})
	v.runC = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "run", Type: v.tC, Visibility: syntax.Public})

	root := b.Root()
	declA := b.Node(root, syntax.KindTypeDecl, `/class A extends Base \{/,/^\}/`)
	v.declA = b.Declare(declA, `/A/`, v.tA)
	b.Name(declA, `/Base/`, v.tBase)
	meth := b.Node(declA, syntax.KindMethodDecl, `/private void m\(\) \{ \}/`)
	v.declMA = b.Declare(meth, `/m/`, v.mA)
	b.Node(meth, syntax.KindBlock, `/\{ \}/`)
	meth = b.Node(declA, syntax.KindMethodDecl, `/private void k\(\) \{ \}/`)
	b.Declare(meth, `/k/`, v.kA)
	b.Node(meth, syntax.KindBlock, `/\{ \}/`)
	meth = b.Node(declA, syntax.KindMethodDecl, `/public void run\(\) \{[^}]*\}/`)
	v.declRunA = b.Declare(meth, `/run/`, v.runA)
	body := b.Node(meth, syntax.KindBlock, `/\{[^}]*\}/`)
	stmt := b.Node(body, syntax.KindStmt, `/super\.run\(\);/`)
	v.superRun = b.Name(stmt, `/run/`, v.baseRun)

	declB := b.Node(root, syntax.KindTypeDecl, `/class B extends A \{/,/^\}/`)
	b.Declare(declB, `/B/`, v.tB)
	v.extendsA = b.Name(declB, `/A/`, v.tA)

	declC := b.Node(root, syntax.KindTypeDecl, `/class C extends B \{/,/^\}/`)
	b.Declare(declC, `/C/`, v.tC)
	b.Name(declC, `/B/`, v.tB)
	meth = b.Node(declC, syntax.KindMethodDecl, `/void m\(\) \{ \}/`)
	v.declMC = b.Declare(meth, `/m/`, v.mC)
	b.Node(meth, syntax.KindBlock, `/\{ \}/`)
	meth = b.Node(declC, syntax.KindMethodDecl, `/static void k\(\) \{ \}/`)
	b.Declare(meth, `/k/`, v.kC)
	b.Node(meth, syntax.KindBlock, `/\{ \}/`)
	meth = b.Node(declC, syntax.KindMethodDecl, `/public void run\(\) \{[^}]*\}/`)
	v.declRunC = b.Declare(meth, `/run/`, v.runC)
	body = b.Node(meth, syntax.KindBlock, `/\{[^}]*\}/`)
	stmt = b.Node(body, syntax.KindStmt, `/var a = new A\(\);/`)
	v.keyword = b.Name(stmt, `/var/`, v.tA)
	b.Implicit(v.keyword)
	v.newA = b.Name(stmt, `/A/`, v.tA)
	stmt = b.Node(body, syntax.KindStmt, `/a\.run\(\);/`)
	v.callRun = b.Name(stmt, `/run/`, v.runA)

	s, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	v.s = s
	return v
}

// A pair of classes for pulling up B's members to A.
const pullText = `class A {
}
class B extends A {
  int y;
  int z;
  void m() { y = 1; }
  void k() { m(); z = 2; }
  void q() { }
  B() { }
}
`

type pull struct {
	s             *syntax.Snapshot
	tA, tB        syntax.BindingID
	y, z, m, k, q syntax.BindingID
	ct            syntax.BindingID
}

func buildPull(t *testing.T) *pull {
	t.Helper()
	p := new(pull)
	b := syntax.NewBuilder("P.cls", []byte(pullText))
	p.tA = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "A"})
	p.tB = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "B", Supers: []syntax.BindingID{p.tA}})
	p.y = b.Bind(syntax.Binding{Kind: syntax.BindField, Name: "y", Type: p.tB})
	p.z = b.Bind(syntax.Binding{Kind: syntax.BindField, Name: "z", Type: p.tB})
	p.m = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "m", Type: p.tB})
	p.k = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "k", Type: p.tB})
	p.q = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "q", Type: p.tB})
	p.ct = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "B", Type: p.tB, Constructor: true})

	root := b.Root()
	declA := b.Node(root, syntax.KindTypeDecl, `/class A \{/,/^\}/`)
	b.Declare(declA, `/A/`, p.tA)

	declB := b.Node(root, syntax.KindTypeDecl, `/class B extends A \{/,/^\}/`)
	b.Declare(declB, `/B/`, p.tB)
	b.Name(declB, `/A/`, p.tA)
	field := b.Node(declB, syntax.KindFieldDecl, `/int y;/`)
	b.Declare(field, `/y/`, p.y)
	field = b.Node(declB, syntax.KindFieldDecl, `/int z;/`)
	b.Declare(field, `/z/`, p.z)

	meth := b.Node(declB, syntax.KindMethodDecl, `/void m\(\) \{[^}]*\}/`)
	b.Declare(meth, `/m/`, p.m)
	body := b.Node(meth, syntax.KindBlock, `/\{[^}]*\}/`)
	stmt := b.Node(body, syntax.KindStmt, `/y = 1;/`)
	b.Name(stmt, `/y/`, p.y)

	meth = b.Node(declB, syntax.KindMethodDecl, `/void k\(\) \{[^}]*\}/`)
	b.Declare(meth, `/k/`, p.k)
	body = b.Node(meth, syntax.KindBlock, `/\{[^}]*\}/`)
	stmt = b.Node(body, syntax.KindStmt, `/m\(\);/`)
	b.Name(stmt, `/m/`, p.m)
	stmt = b.Node(body, syntax.KindStmt, `/z = 2;/`)
	b.Name(stmt, `/z/`, p.z)

	meth = b.Node(declB, syntax.KindMethodDecl, `/void q\(\) \{ \}/`)
	b.Declare(meth, `/q/`, p.q)

	meth = b.Node(declB, syntax.KindMethodDecl, `/B\(\) \{ \}/`)
	b.Declare(meth, `/B/`, p.ct)

	s, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	p.s = s
	return p
}

// An interface above a class, for activation checks involving
// interfaces, static methods, and visibility.
const ifaceText = `interface I {
  void s();
  void t();
}
class A implements I {
}
class B extends A {
  int y;
  static void s() { }
  void t() { }
}
`

type iface struct {
	s          *syntax.Snapshot
	tI, tA, tB syntax.BindingID
	y, s1, t1  syntax.BindingID
}

func buildIface(t *testing.T) *iface {
	t.Helper()
	f := new(iface)
	b := syntax.NewBuilder("I.cls", []byte(ifaceText))
	f.tI = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "I", Interface: true, Visibility: syntax.Public})
	f.tA = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "A", Supers: []syntax.BindingID{f.tI}})
	f.tB = b.Bind(syntax.Binding{Kind: syntax.BindType, Name: "B", Supers: []syntax.BindingID{f.tA}})
	is := b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "s", Type: f.tI, Visibility: syntax.Public})
	it := b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "t", Type: f.tI, Visibility: syntax.Public})
	f.y = b.Bind(syntax.Binding{Kind: syntax.BindField, Name: "y", Type: f.tB})
	f.s1 = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "s", Type: f.tB, Static: true})
	f.t1 = b.Bind(syntax.Binding{Kind: syntax.BindMethod, Name: "t", Type: f.tB, Visibility: syntax.PackagePrivate})

	root := b.Root()
	declI := b.Node(root, syntax.KindTypeDecl, `/interface I \{/,/^\}/`)
	b.Declare(declI, `/I/`, f.tI)
	meth := b.Node(declI, syntax.KindMethodDecl, `/void s\(\);/`)
	b.Declare(meth, `/s/`, is)
	meth = b.Node(declI, syntax.KindMethodDecl, `/void t\(\);/`)
	b.Declare(meth, `/t/`, it)

	declA := b.Node(root, syntax.KindTypeDecl, `/class A implements I \{/,/^\}/`)
	b.Declare(declA, `/A/`, f.tA)
	b.Name(declA, `/I/`, f.tI)

	declB := b.Node(root, syntax.KindTypeDecl, `/class B extends A \{/,/^\}/`)
	b.Declare(declB, `/B/`, f.tB)
	b.Name(declB, `/A/`, f.tA)
	field := b.Node(declB, syntax.KindFieldDecl, `/int y;/`)
	b.Declare(field, `/y/`, f.y)
	meth = b.Node(declB, syntax.KindMethodDecl, `/static void s\(\) \{ \}/`)
	b.Declare(meth, `/\bs\b/`, f.s1)
	meth = b.Node(declB, syntax.KindMethodDecl, `/void t\(\) \{ \}/`)
	b.Declare(meth, `/t/`, f.t1)

	s, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	f.s = s
	return f
}

// Nested loops with labels, none of them resolved.
const labelText = `void f() {
  inner: for (;;) {
    outer: for (;;) {
      break outer;
    }
    break inner;
  }
}
void g() {
  a: for (;;) {
    a: for (;;) {
      break a;
    }
    continue a;
  }
  break a;
}
`

type labels struct {
	s                           *syntax.Snapshot
	inner, outer, brOuter, brIn syntax.NodeID
	a1, a2, brA2, contA1, stray syntax.NodeID
}

func buildLabels(t *testing.T) *labels {
	t.Helper()
	l := new(labels)
	b := syntax.NewBuilder("L.cls", []byte(labelText))
	root := b.Root()

	meth := b.Node(root, syntax.KindMethodDecl, `/void f\(\) \{/,/^\}/`)
	body := b.Node(meth, syntax.KindBlock, `/\{/,$`)
	lab := b.Node(body, syntax.KindLabeled, `/inner: for/,/^  \}/`)
	l.inner = b.Name(lab, `/inner/`, syntax.NoBinding)
	loop := b.Node(lab, syntax.KindLoop, `/for/,/^  \}/`)
	lab2 := b.Node(loop, syntax.KindLabeled, `/outer: for/,/^    \}/`)
	l.outer = b.Name(lab2, `/outer/`, syntax.NoBinding)
	loop2 := b.Node(lab2, syntax.KindLoop, `/for/,/^    \}/`)
	br := b.Node(loop2, syntax.KindBreak, `/break outer;/`)
	l.brOuter = b.Name(br, `/outer/`, syntax.NoBinding)
	br = b.Node(loop, syntax.KindBreak, `/break inner;/`)
	l.brIn = b.Name(br, `/inner/`, syntax.NoBinding)

	meth = b.Node(root, syntax.KindMethodDecl, `/void g\(\) \{/,/^\}/`)
	body = b.Node(meth, syntax.KindBlock, `/\{/,$`)
	lab = b.Node(body, syntax.KindLabeled, `/a: for/,/^  \}/`)
	l.a1 = b.Name(lab, `/a/`, syntax.NoBinding)
	loop = b.Node(lab, syntax.KindLoop, `/for/,/^  \}/`)
	lab2 = b.Node(loop, syntax.KindLabeled, `/a: for/,/^    \}/`)
	l.a2 = b.Name(lab2, `/a/`, syntax.NoBinding)
	loop2 = b.Node(lab2, syntax.KindLoop, `/for/,/^    \}/`)
	br = b.Node(loop2, syntax.KindBreak, `/break a;/`)
	l.brA2 = b.Name(br, `/\ba\b/`, syntax.NoBinding)
	br = b.Node(loop, syntax.KindContinue, `/continue a;/`)
	l.contA1 = b.Name(br, `/\ba\b/`, syntax.NoBinding)
	br = b.Node(body, syntax.KindBreak, `/continue a;//break a;/`)
	l.stray = b.Name(br, `/\ba\b/`, syntax.NoBinding)

	s, err := b.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	l.s = s
	return l
}
