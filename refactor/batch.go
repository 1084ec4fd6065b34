// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rsc.io/classrf/syntax"
)

// A Job is one edited file to validate: the snapshot before the edit and
// the text after it.
type Job struct {
	Old     *syntax.Snapshot
	NewText []byte
}

// CheckAll runs CheckNewSource on each job, at most limit at a time, and
// returns the statuses in job order. A limit <= 0 means GOMAXPROCS.
//
// Jobs share nothing, so they run without coordination. If ctx is done
// before a job starts, its status is marked cancelled.
func CheckAll(ctx context.Context, p Parser, jobs []Job, limit int) []*Status {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]*Status, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, max(len(jobs), 1)))
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = cancelledStatus(err)
				return nil
			}
			results[i] = CheckNewSource(gctx, p, job.Old, job.NewText)
			return nil
		})
	}
	g.Wait()
	return results
}
