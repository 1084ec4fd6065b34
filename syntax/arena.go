// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "fortio.org/safecast"

// A NodeID identifies a Node in a Snapshot. The zero NodeID means no node.
type NodeID uint32

// A BindingID identifies a Binding in a Snapshot. The zero BindingID means
// no binding.
type BindingID uint32

const (
	NoNode    NodeID    = 0
	NoBinding BindingID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNode }
func (id BindingID) IsValid() bool { return id != NoBinding }

// An arena stores values addressed by 1-based indices.
type arena[T any] struct {
	data []T
}

func (a *arena[T]) alloc(v T) (uint32, error) {
	a.data = append(a.data, v)
	return safecast.Conv[uint32](len(a.data))
}

func (a *arena[T]) get(i uint32) *T {
	if i == 0 || int(i) > len(a.data) {
		return nil
	}
	return &a.data[i-1]
}

func (a *arena[T]) len() int {
	return len(a.data)
}
