// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package probe runs compile probes against candidate C sources.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/inctrim/runtimex"
	"go.chromium.org/infra/build/inctrim/sync/semaphore"
	"go.chromium.org/infra/build/inctrim/toolsupport/shutil"
)

// Cmd is a compiler invocation template.
// It is read-only after initialization and safe for concurrent use.
type Cmd struct {
	// CC is the compiler command, possibly with leading args.
	CC []string

	// Includes are -I flags, appended after Flags.
	Includes []string

	// Flags are other compile flags.
	Flags []string

	// Timeout bounds one probe compile. Zero means no bound.
	Timeout time.Duration
}

// Result is the outcome of one compile probe.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Success reports whether the probe compiled cleanly.
func (r Result) Success() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

var forkSema = semaphore.New("fork", runtimex.NumCPU())

// Run probes src as it is on disk.
// A failed compile is reported in Result, not as an error. Errors are
// reserved for a broken invocation, e.g. a missing compiler binary.
func (c Cmd) Run(ctx context.Context, src string) (Result, error) {
	return c.run(ctx, src)
}

// RunContent probes content, written to a temp file next to src so
// that quoted includes resolve against the same directory.
// The temp file is removed before RunContent returns.
func (c Cmd) RunContent(ctx context.Context, src string, content []byte) (Result, error) {
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	f, err := os.CreateTemp(dir, strings.TrimSuffix(base, ext)+"_*"+ext)
	if err != nil {
		return Result{}, err
	}
	name := f.Name()
	defer os.Remove(name)
	_, werr := f.Write(content)
	cerr := f.Close()
	if werr != nil {
		return Result{}, werr
	}
	if cerr != nil {
		return Result{}, cerr
	}
	return c.run(ctx, name)
}

func (c Cmd) run(ctx context.Context, src string) (Result, error) {
	if len(c.CC) == 0 {
		return Result{}, fmt.Errorf("no compiler command")
	}
	obj, err := os.CreateTemp("", "inctrim_*.o")
	if err != nil {
		return Result{}, err
	}
	objName := obj.Name()
	obj.Close()
	defer os.Remove(objName)

	args := make([]string, 0, len(c.CC)+4+len(c.Flags)+len(c.Includes))
	args = append(args, c.CC...)
	args = append(args, "-c", src, "-o", objName)
	args = append(args, c.Flags...)
	args = append(args, c.Includes...)

	cctx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(cctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	s := time.Now()
	err = forkSema.Do(cctx, func(ctx context.Context) error {
		return cmd.Start()
	})
	if err == nil {
		err = cmd.Wait()
	}
	log.Debugf("run %s: %v in %s", shutil.Join(args), err, time.Since(s))
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return Result{}, context.Cause(ctx)
	}
	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = -1
		return res, nil
	}
	var eerr *exec.ExitError
	if errors.As(err, &eerr) {
		res.ExitCode = exitCode(eerr)
		return res, nil
	}
	return Result{}, err
}

func exitCode(eerr *exec.ExitError) int {
	if w, ok := eerr.ProcessState.Sys().(syscall.WaitStatus); ok {
		return w.ExitStatus()
	}
	return 1
}
