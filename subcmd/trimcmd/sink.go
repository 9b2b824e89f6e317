// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package trimcmd

import (
	"fmt"
	"io"
	"strings"

	"go.chromium.org/infra/build/inctrim/trim"
)

// lineSink prints one result line per finished file, in the order the
// files finish. The runner serializes Outcome calls.
type lineSink struct {
	w       io.Writer
	verbose bool
}

func (s *lineSink) Outcome(res trim.FileOutcome) {
	switch res.Status {
	case trim.StatusChecked:
		fmt.Fprintf(s.w, "[check] %s: needed %d, removable %d\n", res.Path, len(res.Needed), len(res.Removable))
		for _, e := range res.Removable {
			fmt.Fprintf(s.w, "    removable: %s\n", strings.TrimSpace(e.Raw))
		}
	case trim.StatusFixed:
		switch {
		case res.Changed:
			fmt.Fprintf(s.w, "[fix] %s: kept %d, removed %d\n", res.Path, res.Kept(), res.Removed())
		case s.verbose:
			fmt.Fprintf(s.w, "[noop] %s: no changes needed\n", res.Path)
		}
	case trim.StatusBaselineFailed:
		fmt.Fprintf(s.w, "[error] %s: failed to compile baseline; skipping\n", res.Path)
	case trim.StatusTrimFailed:
		fmt.Fprintf(s.w, "[error] %s: trimmed includes fail to compile; keeping original block\n", res.Path)
	}
}
