// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package trim

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Sink receives finalized per-file outcomes.
// The Runner serializes calls to it.
type Sink interface {
	Outcome(FileOutcome)
}

// Runner processes files with a shared compiler invocation template.
type Runner struct {
	Probe Prober

	// Fix rewrites files instead of just reporting.
	Fix bool

	// Jobs is the number of files processed in parallel.
	// Probes within one file are always sequential.
	Jobs int

	Sink Sink
}

// Stats summarizes a run.
type Stats struct {
	Files          int
	Probes         int
	Checked        int
	Fixed          int
	Unchanged      int
	BaselineFailed int
	TrimFailed     int
}

func (s *Stats) update(out FileOutcome) {
	s.Files++
	s.Probes += out.Probes
	switch out.Status {
	case StatusChecked:
		s.Checked++
	case StatusFixed:
		if out.Changed {
			s.Fixed++
		} else {
			s.Unchanged++
		}
	case StatusBaselineFailed:
		s.BaselineFailed++
	case StatusTrimFailed:
		s.TrimFailed++
	}
}

// Failed returns the number of files that failed to compile.
func (s Stats) Failed() int {
	return s.BaselineFailed + s.TrimFailed
}

// Run processes files and reports each outcome to the Sink.
// Per-file compile failures are recorded in Stats, not returned as an
// error. An error means the run itself broke, e.g. a missing compiler
// or an unreadable file, and aborts the remaining files.
func (r *Runner) Run(ctx context.Context, files []string) (Stats, error) {
	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}
	var mu sync.Mutex
	var stats Stats
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for _, fname := range files {
		eg.Go(func() error {
			out, err := r.processFile(ctx, fname)
			if err != nil {
				return fmt.Errorf("%s: %w", fname, err)
			}
			mu.Lock()
			defer mu.Unlock()
			stats.update(out)
			if r.Sink != nil {
				r.Sink.Outcome(out)
			}
			return nil
		})
	}
	err := eg.Wait()
	return stats, err
}
