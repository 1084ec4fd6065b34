// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

// Every line is 5 bytes, so absolute addresses are easy to calculate.
var addrInput = `1 10
2 20
3 30
4 40
5 50
6 60
7 70
8 80
9 90
`

var evalAddrTests = []struct {
	start  int
	addr   string
	lo, hi int
}{
	{0, "", 0, 45},
	{0, "0", 0, 0},
	{0, "1", 0, 5},
	{0, "2", 5, 10},
	{0, "/10/", 2, 4},
	{0, "/10/+#0", 4, 4},
	{0, "/10/+", 5, 10},
	{0, "/10/+2", 10, 15},
	{0, "/90/", 42, 44},
	{0, "/10/,/90/", 2, 44},
	{0, "/10/,/90/-#0", 2, 42},
	{0, "/50/-0+", 20, 25},
	{0, "$", 45, 45},
	{0, "#3", 3, 3},
	{0, "#3,#5", 3, 5},
	{12, "/0/", 13, 14},
	{44, "/1/", 0, 1}, // wraps
}

func TestEvalAddr(t *testing.T) {
	data := []byte(addrInput)
	for _, tt := range evalAddrTests {
		lo, hi, err := EvalAddr(tt.addr, tt.start, data)
		if lo != tt.lo || hi != tt.hi || err != nil {
			t.Errorf("EvalAddr(%#q, %d, data) = %d, %d, %v, want %d, %d, nil", tt.addr, tt.start, lo, hi, err, tt.lo, tt.hi)
		}
	}
}

var evalAddrErrorTests = []string{
	"/nope/",
	"x",
	"/90/-/10/",
	"/[/",
	"20",
}

func TestEvalAddrError(t *testing.T) {
	data := []byte(addrInput)
	for _, addr := range evalAddrErrorTests {
		if lo, hi, err := EvalAddr(addr, 0, data); err == nil {
			t.Errorf("EvalAddr(%#q) = %d, %d, nil, want error", addr, lo, hi)
		}
	}
}
