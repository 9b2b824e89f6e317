// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package trim

import (
	"time"

	"go.chromium.org/infra/build/inctrim/incscan"
)

// Status is the categorical outcome for one file.
type Status int

const (
	// StatusChecked reports needed/removable counts without rewriting.
	StatusChecked Status = iota

	// StatusFixed means the file was minimized. The file was only
	// rewritten when the minimized block differs.
	StatusFixed

	// StatusBaselineFailed means the file does not compile as is,
	// so no trimming was attempted.
	StatusBaselineFailed

	// StatusTrimFailed means no reduced block compiled, even after
	// restoring every removable entry. The file is left untouched.
	StatusTrimFailed
)

func (s Status) String() string {
	switch s {
	case StatusChecked:
		return "checked"
	case StatusFixed:
		return "fixed"
	case StatusBaselineFailed:
		return "baseline-failed"
	case StatusTrimFailed:
		return "trim-failed"
	}
	return "unknown"
}

// FileOutcome is the result of processing one file.
// It is owned by the processing of that file and emitted once.
type FileOutcome struct {
	Path   string
	Status Status

	// Needed and Removable partition the include block's entries by
	// the independent removal probes.
	Needed    []incscan.Entry
	Removable []incscan.Entry

	// Restored holds removable entries that had to be put back for
	// the reduced block to compile, in original order.
	Restored []incscan.Entry

	// Changed reports whether the file was rewritten.
	Changed bool

	Probes   int
	Duration time.Duration
}

// Kept returns the number of entries present in the final block.
func (o FileOutcome) Kept() int {
	return len(o.Needed) + len(o.Restored)
}

// Removed returns the number of entries dropped from the final block.
func (o FileOutcome) Removed() int {
	return len(o.Needed) + len(o.Removable) - o.Kept()
}

// Failed reports whether the file failed to compile at some stage.
func (o FileOutcome) Failed() bool {
	return o.Status == StatusBaselineFailed || o.Status == StatusTrimFailed
}
