// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package fix is fix subcommand to fixup GCC-generated dependency files.
package fix

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/fixdeps/o11y/clog"
	"go.chromium.org/infra/build/fixdeps/toolsupport/makeutil"
	"go.chromium.org/infra/build/fixdeps/ui"
)

const usage = `fixup GCC-generated dependency files

 $ fixdeps fix <dep_file>...

Modify GCC generated dependency files in-place so they are more suitable
for including in a GNU Makefile. Without the fixups, deleting or renaming
headers can cause the build to be broken.

For every dependency found, a dummy target with no rules is appended.
See http://mad-scientist.net/make/autodep.html for more details of the problem.

Files are processed in order, and it stops at the first failure.
`

// Cmd returns the Command for the `fix` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "fix <dep_file>...",
		ShortDesc: "fixup GCC-generated dependency files",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	quiet bool
}

func (c *run) init() {
	c.Flags.BoolVar(&c.quiet, "quiet", false, "don't report progress")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(a.GetErr(), "%s: %v\n%s\n", a.GetName(), err, usage)
		default:
			fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected one or more files as arguments: %w", flag.ErrHelp)
	}
	for _, fname := range args {
		err := c.fixup(ctx, fname)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *run) fixup(ctx context.Context, fname string) error {
	ctx = clog.NewSpan(ctx, map[string]string{"depfile": fname})
	var spin ui.Spinner = nopSpinner{}
	if !c.quiet {
		spin = ui.Default.NewSpinner()
	}
	spin.Start("fixdeps %s", fname)
	err := makeutil.FixupDepFile(ctx, fname)
	spin.Stop(err)
	if err != nil {
		clog.Warningf(ctx, "fixdeps failed: %v", err)
	}
	return err
}

type nopSpinner struct{}

func (nopSpinner) Start(string, ...any) {}
func (nopSpinner) Stop(error)           {}
func (nopSpinner) Done(string, ...any)  {}
