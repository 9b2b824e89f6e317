// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package trimcmd provides the check and fix subcommands.
package trimcmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/inctrim/probe"
	"go.chromium.org/infra/build/inctrim/runtimex"
	"go.chromium.org/infra/build/inctrim/toolsupport/makeutil"
	"go.chromium.org/infra/build/inctrim/toolsupport/shutil"
	"go.chromium.org/infra/build/inctrim/trim"
	"go.chromium.org/infra/build/inctrim/ui"
)

const checkUsage = `check C sources for removable includes.

 $ inctrim check [-C <dir>] [options] [files...]

Compiles each file as is to establish a baseline, then recompiles it
once per include of the leading include block with that include's line
removed. Includes whose removal still compiles are reported as
removable. Sources are never modified.

Without files, scans -src-dir recursively for *.c files.
`

const fixUsage = `remove unneeded includes from C sources.

 $ inctrim fix [-C <dir>] [options] [files...]

Runs the same analysis as "inctrim check", then rewrites each file
with the removable includes deleted. The reduced include block is
verified by one more compile. If it fails, removed includes are
restored in their original order until the file compiles again; if
none of that helps, the file is left untouched.

Without files, scans -src-dir recursively for *.c files.
`

// CheckCmd returns the Command for the `check` subcommand.
func CheckCmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "check [-C <dir>] [options] [files...]",
		ShortDesc: "report removable includes in C sources",
		LongDesc:  checkUsage,
		CommandRun: func() subcommands.CommandRun {
			r := trimCmdRun{}
			r.init()
			return &r
		},
	}
}

// FixCmd returns the Command for the `fix` subcommand.
func FixCmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "fix [-C <dir>] [options] [files...]",
		ShortDesc: "remove unneeded includes from C sources",
		LongDesc:  fixUsage,
		CommandRun: func() subcommands.CommandRun {
			r := trimCmdRun{fix: true}
			r.init()
			return &r
		},
	}
}

type trimCmdRun struct {
	subcommands.CommandRunBase
	fix     bool
	started time.Time
	stdout  io.Writer

	// flag values
	dir      string
	srcDir   string
	makefile string
	compiler string
	includes flagList
	cflags   flagList
	timeout  time.Duration
	jobs     int
	verbose  bool
}

func (c *trimCmdRun) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "running directory")
	c.Flags.StringVar(&c.srcDir, "src-dir", "src", "directory to scan for .c files (relative to -C)")
	c.Flags.StringVar(&c.makefile, "makefile", "Makefile", "makefile to read CC, INCLUDES and CFLAGS from (relative to -C)")
	c.Flags.StringVar(&c.compiler, "compiler", "", `compiler command. overrides the makefile CC (default "cc")`)
	c.Flags.Var(&c.includes, "I", "include directory. repeatable. overrides the makefile INCLUDES")
	c.Flags.Var(&c.cflags, "cflag", "extra compile flag. repeatable. overrides the makefile CFLAGS")
	c.Flags.DurationVar(&c.timeout, "timeout", 1*time.Minute, "timeout per compile probe. a probe that times out counts as a failed compile")
	c.Flags.IntVar(&c.jobs, "j", runtimex.NumCPU(), "process N files in parallel")
	c.Flags.BoolVar(&c.verbose, "verbose", false, "show compile probes and files that needed no change")
	c.Flags.BoolVar(&c.verbose, "v", false, "show compile probes and files that needed no change (alias of --verbose)")
}

// Run runs the `check` or `fix` subcommand.
func (c *trimCmdRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	c.started = time.Now()
	ctx := cli.GetContext(a, c, env)
	err := parseFlagsFully(&c.Flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	stats, err := c.run(ctx)
	dur := ui.FormatDuration(time.Since(c.started))
	name := "Check"
	if c.fix {
		name = "Fix"
	}
	if err != nil {
		var errFlag flagError
		switch {
		case errors.As(err, &errFlag):
			fmt.Fprintf(os.Stderr, "%v\n", err)
		default:
			msgPrefix := "Error"
			if ui.IsTerminal() {
				msgPrefix = ui.SGR(ui.BackgroundRed, msgPrefix)
			}
			fmt.Fprintf(os.Stderr, "\n%6s %s: %v\n", dur, msgPrefix, err)
		}
		return 1
	}
	if n := stats.Failed(); n > 0 {
		msgPrefix := name + " Failure"
		if ui.IsTerminal() {
			dur = ui.SGR(ui.Bold, dur)
			msgPrefix = ui.SGR(ui.BackgroundRed, msgPrefix)
		}
		fmt.Fprintf(os.Stderr, "\n%6s %s: %d of %d files failed - %d probes\n", dur, msgPrefix, n, stats.Files, stats.Probes)
		return 1
	}
	msgPrefix := name + " Succeeded"
	if ui.IsTerminal() {
		dur = ui.SGR(ui.Bold, dur)
		msgPrefix = ui.SGR(ui.Green, msgPrefix)
	}
	if c.fix {
		fmt.Fprintf(os.Stderr, "%6s %s: %d fixed, %d unchanged - %d probes\n", dur, msgPrefix, stats.Fixed, stats.Unchanged, stats.Probes)
	} else {
		fmt.Fprintf(os.Stderr, "%6s %s: %d files - %d probes\n", dur, msgPrefix, stats.Files, stats.Probes)
	}
	return 0
}

// parse flags without stopping at non flags.
func parseFlagsFully(flagSet *flag.FlagSet) error {
	var files []string
	for {
		args := flagSet.Args()
		if len(args) == 0 {
			break
		}
		argsRemaining := len(args)
		for i, arg := range args {
			if !strings.HasPrefix(arg, "-") {
				files = append(files, arg)
				argsRemaining--
				continue
			}
			err := flagSet.Parse(args[i:])
			if err != nil {
				return err
			}
			break
		}
		if argsRemaining == 0 {
			break
		}
	}
	// files are non-flags. set it to Args.
	return flagSet.Parse(files)
}

type flagError struct {
	err error
}

func (f flagError) Error() string {
	return f.err.Error()
}

type errInterrupted struct{}

func (errInterrupted) Error() string        { return "interrupt by signal" }
func (errInterrupted) Is(target error) bool { return target == context.Canceled }

func (c *trimCmdRun) run(ctx context.Context) (stats trim.Stats, err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer signals.HandleInterrupt(func() {
		cancel(errInterrupted{})
	})()
	if c.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if c.dir != "." {
		err = os.Chdir(c.dir)
		if err != nil {
			return stats, err
		}
		log.Infof("change dir to %s", c.dir)
	}
	p, err := c.probeCmd()
	if err != nil {
		return stats, err
	}
	files, err := trim.CollectFiles(c.srcDir, c.Flags.Args())
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("no .c files found under %s", c.srcDir)
	}
	log.Debugf("%d files, compile template: %s", len(files), shutil.Join(slices.Concat(p.CC, p.Flags, p.Includes)))
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	r := &trim.Runner{
		Probe: p,
		Fix:   c.fix,
		Jobs:  c.jobs,
		Sink:  &lineSink{w: c.stdout, verbose: c.verbose},
	}
	return r.Run(ctx, files)
}

// probeCmd builds the compile command template from the makefile and
// the command line overrides.
func (c *trimCmdRun) probeCmd() (probe.Cmd, error) {
	mk, err := makeutil.ParseFlagsFile(c.makefile)
	if err != nil {
		if !os.IsNotExist(err) {
			return probe.Cmd{}, flagError{err: err}
		}
		if flagWasSet(&c.Flags, "makefile") {
			return probe.Cmd{}, flagError{err: fmt.Errorf("makefile %s not found", c.makefile)}
		}
		log.Debugf("%s not found. using defaults", c.makefile)
	}
	cc := []string{"cc"}
	switch {
	case c.compiler != "":
		cc, err = shutil.Split(c.compiler)
		if err != nil {
			return probe.Cmd{}, flagError{err: fmt.Errorf("bad -compiler %q: %w", c.compiler, err)}
		}
		if len(cc) == 0 {
			return probe.Cmd{}, flagError{err: fmt.Errorf("bad -compiler %q: empty command", c.compiler)}
		}
	case len(mk.CC) > 0:
		cc = mk.CC
	}
	includes := mk.Includes
	if c.includes.set {
		includes = nil
		for _, v := range c.includes.values {
			if !strings.HasPrefix(v, "-") {
				v = "-I" + v
			}
			includes = append(includes, v)
		}
	}
	cflags := mk.CFlags
	if c.cflags.set {
		cflags = slices.Clone(c.cflags.values)
	}
	return probe.Cmd{CC: cc, Includes: includes, Flags: cflags, Timeout: c.timeout}, nil
}

func flagWasSet(flagSet *flag.FlagSet, name string) bool {
	var found bool
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// flagList collects the values of a repeatable string flag.
type flagList struct {
	values []string
	set    bool
}

func (f *flagList) String() string {
	return strings.Join(f.values, " ")
}

func (f *flagList) Set(v string) error {
	f.set = true
	f.values = append(f.values, v)
	return nil
}
