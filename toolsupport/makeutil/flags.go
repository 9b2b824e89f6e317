// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/inctrim/toolsupport/shutil"
)

// Flags is a compiler invocation template scraped from a makefile.
type Flags struct {
	// CC is the compiler command, possibly with leading args
	// such as "ccache gcc". Empty when the makefile sets no CC.
	CC []string

	// Includes are -I flags. Relative dirs are resolved against
	// the makefile's directory and made absolute.
	Includes []string

	// CFlags are other compile flags, verbatim.
	CFlags []string
}

// ParseFlagsFile reads makefile fname and extracts CC, INCLUDES and CFLAGS.
func ParseFlagsFile(fname string) (Flags, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return Flags{}, err
	}
	vars := ParseVars(b)
	var flags Flags
	if cc, ok := vars["CC"]; ok {
		flags.CC, err = shutil.Split(cc)
		if err != nil {
			return Flags{}, fmt.Errorf("makefile %s: CC: %w", fname, err)
		}
	}
	incs, err := shutil.Split(vars["INCLUDES"])
	if err != nil {
		return Flags{}, fmt.Errorf("makefile %s: INCLUDES: %w", fname, err)
	}
	dir, err := filepath.Abs(filepath.Dir(fname))
	if err != nil {
		return Flags{}, err
	}
	flags.Includes = normalizeIncludes(incs, dir)
	flags.CFlags, err = shutil.Split(vars["CFLAGS"])
	if err != nil {
		return Flags{}, fmt.Errorf("makefile %s: CFLAGS: %w", fname, err)
	}
	log.Debugf("makefile %s: cc=%q includes=%q cflags=%q", fname, flags.CC, flags.Includes, flags.CFlags)
	return flags, nil
}

// normalizeIncludes turns raw INCLUDES tokens into -I-prefixed flags.
// A token may already carry the -I prefix. Absolute dirs are kept as is.
func normalizeIncludes(tokens []string, baseDir string) []string {
	var includes []string
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		dir := strings.TrimPrefix(tok, "-I")
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		includes = append(includes, "-I"+dir)
	}
	return includes
}
