// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"rsc.io/classrf/refactor"
	"rsc.io/classrf/syntax"
)

// cmdValidate reparses the current text of the named snapshots, or of all
// snapshots, and reports the problems the edits introduced.
func cmdValidate(w *workspace, args string) error {
	var snaps []*syntax.Snapshot
	if names := strings.Fields(args); len(names) > 0 {
		for _, name := range names {
			s, err := w.snapshot(name)
			if err != nil {
				return err
			}
			snaps = append(snaps, s)
		}
	} else {
		snaps = w.snaps
	}

	jobs := make([]refactor.Job, len(snaps))
	for i, s := range snaps {
		jobs[i] = refactor.Job{Old: s, NewText: w.text(s)}
	}
	for i, st := range refactor.CheckAll(w.ctx, w, jobs, 0) {
		if st.Cancelled() {
			return w.ctx.Err()
		}
		w.printStatus(snaps[i].Name+": ", st)
	}
	return nil
}
