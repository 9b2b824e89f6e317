// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package trim minimizes the include block of C sources by probing
// a compiler.
//
// For each file it runs a baseline probe, then probes each include
// entry's removal independently. In fix mode it rewrites the file with
// only the needed entries, after a safety pass that restores removable
// entries one at a time if the reduced block no longer compiles.
package trim

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/inctrim/incscan"
	"go.chromium.org/infra/build/inctrim/probe"
)

// Prober runs compile probes. probe.Cmd implements it.
type Prober interface {
	// Run probes the file on disk.
	Run(ctx context.Context, src string) (probe.Result, error)

	// RunContent probes content as a candidate for src.
	RunContent(ctx context.Context, src string, content []byte) (probe.Result, error)
}

func (r *Runner) processFile(ctx context.Context, fname string) (out FileOutcome, err error) {
	started := time.Now()
	defer func() {
		out.Duration = time.Since(started)
	}()
	out = FileOutcome{Path: fname, Status: StatusChecked}
	if r.Fix {
		out.Status = StatusFixed
	}
	src, err := os.ReadFile(fname)
	if err != nil {
		return out, err
	}
	block := incscan.Scan(src)
	if len(block.Entries) == 0 {
		return out, nil
	}
	res, err := r.Probe.Run(ctx, fname)
	out.Probes++
	if err != nil {
		return out, err
	}
	if !res.Success() {
		log.Debugf("baseline %s failed:\n%s", fname, res.Stderr)
		out.Status = StatusBaselineFailed
		return out, nil
	}
	// Independent removal probes. Each candidate is the original file
	// with exactly one entry's line removed, so one bad classification
	// cannot compound into another.
	for _, e := range block.Entries {
		res, err := r.Probe.RunContent(ctx, fname, incscan.RemoveLine(src, e.Line))
		out.Probes++
		if err != nil {
			return out, err
		}
		if res.Success() {
			out.Removable = append(out.Removable, e)
		} else {
			out.Needed = append(out.Needed, e)
		}
	}
	if !r.Fix {
		return out, nil
	}
	err = r.fix(ctx, fname, src, block, &out)
	return out, err
}

// fix rewrites fname with only the needed entries. If the reduced
// block does not compile, it restores removable entries in original
// order until it does. The file is written at most once, and only
// with content that passed a probe.
func (r *Runner) fix(ctx context.Context, fname string, src []byte, block incscan.Block, out *FileOutcome) error {
	keep := make([]bool, len(block.Entries))
	for _, e := range out.Needed {
		keep[e.Index] = true
	}
	keepFn := func(e incscan.Entry) bool { return keep[e.Index] }
	candidate := incscan.Rebuild(src, block, keepFn)
	res, err := r.Probe.RunContent(ctx, fname, candidate)
	out.Probes++
	if err != nil {
		return err
	}
	if !res.Success() {
		restored := false
		for _, e := range out.Removable {
			keep[e.Index] = true
			out.Restored = append(out.Restored, e)
			candidate = incscan.Rebuild(src, block, keepFn)
			res, err = r.Probe.RunContent(ctx, fname, candidate)
			out.Probes++
			if err != nil {
				return err
			}
			if res.Success() {
				restored = true
				break
			}
		}
		if !restored {
			log.Debugf("trimmed %s still fails:\n%s", fname, res.Stderr)
			out.Status = StatusTrimFailed
			out.Restored = nil
			return nil
		}
	}
	if !bytes.Equal(candidate, src) {
		if err := os.WriteFile(fname, candidate, 0644); err != nil {
			return err
		}
		out.Changed = true
	}
	return nil
}
