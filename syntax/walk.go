// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Inspect traverses the tree rooted at root in pre-order, calling f for
// each node. If f returns false, the children of that node are skipped.
func (s *Snapshot) Inspect(root NodeID, f func(id NodeID) bool) {
	if !f(root) {
		return
	}
	for _, c := range s.Node(root).Children {
		s.Inspect(c, f)
	}
}

// Walk traverses the tree rooted at root in pre-order, calling f with the
// stack of nodes from the visited node (stack[0]) up to root.
func (s *Snapshot) Walk(root NodeID, f func(stack []NodeID)) {
	s.WalkRange(root, 0, int(^uint(0)>>1), f)
}

// WalkRange is like Walk but only visits nodes overlapping [lo, hi).
// An empty node overlaps the range if it starts inside it.
func (s *Snapshot) WalkRange(root NodeID, lo, hi int, f func(stack []NodeID)) {
	var stack []NodeID
	var visit func(id NodeID)
	visit = func(id NodeID) {
		n := s.Node(id)
		if n.End() <= lo && n.Start < lo || hi <= n.Start {
			return
		}
		stack = append(stack, id)
		rev := make([]NodeID, len(stack))
		for i, x := range stack {
			rev[len(stack)-1-i] = x
		}
		f(rev)
		for _, c := range n.Children {
			visit(c)
		}
		stack = stack[:len(stack)-1]
	}
	visit(root)
}

// IsParent reports whether parent is a proper ancestor of id.
func (s *Snapshot) IsParent(id, parent NodeID) bool {
	for id = s.Node(id).Parent; id.IsValid(); id = s.Node(id).Parent {
		if id == parent {
			return true
		}
	}
	return false
}

// Enclosing returns the innermost proper ancestor of id for which match
// reports true, or NoNode.
func (s *Snapshot) Enclosing(id NodeID, match func(*Node) bool) NodeID {
	for id = s.Node(id).Parent; id.IsValid(); id = s.Node(id).Parent {
		if match(s.Node(id)) {
			return id
		}
	}
	return NoNode
}

// Covering returns the innermost node under root whose range contains
// [start, start+length), or NoNode if root does not contain it.
func (s *Snapshot) Covering(root NodeID, start, length int) NodeID {
	end := start + length
	if !s.Node(root).Covers(start, end) {
		return NoNode
	}
	id := root
Descend:
	for {
		for _, c := range s.Node(id).Children {
			if s.Node(c).Covers(start, end) {
				id = c
				continue Descend
			}
		}
		return id
	}
}

// Covered returns the first outermost node under root that lies entirely
// inside [start, start+length), or NoNode.
func (s *Snapshot) Covered(root NodeID, start, length int) NodeID {
	end := start + length
	found := NoNode
	s.Inspect(root, func(id NodeID) bool {
		if found.IsValid() {
			return false
		}
		n := s.Node(id)
		if n.End() <= start || end <= n.Start {
			return false
		}
		if start <= n.Start && n.End() <= end {
			found = id
			return false
		}
		return true
	})
	return found
}

// Find returns the node under root that exactly spans
// [start, start+length) if there is one, and otherwise the covering node.
func (s *Snapshot) Find(root NodeID, start, length int) NodeID {
	id := s.Covered(root, start, length)
	if id.IsValid() {
		if n := s.Node(id); n.Start == start && n.Len == length {
			return id
		}
	}
	return s.Covering(root, start, length)
}
