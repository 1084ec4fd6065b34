// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger is the process-wide diagnostic log for classrf.
// Debug output is discarded unless verbose logging is enabled.
package logger

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	std     = log.New(os.Stderr, "classrf: ", 0)
	verbose atomic.Bool
)

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetVerbose enables or disables Debugf output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

func Printf(format string, v ...any) {
	std.Printf(format, v...)
}

// Debugf logs only when verbose logging is enabled.
func Debugf(format string, v ...any) {
	if verbose.Load() {
		std.Printf(format, v...)
	}
}

func Fatalf(format string, v ...any) {
	std.Fatalf(format, v...)
}
