// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package parse is parse subcommand to show dependencies in depfiles.
package parse

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/fixdeps/toolsupport/makeutil"
)

const usage = `show dependencies in depfiles

 $ fixdeps parse [-C <dir>] <dep_file>...

prints dependencies of <dep_file>, one per line, in the order
"fixdeps fix" would append dummy targets for them.
<dep_file> is relative to <dir>, unless it is absolute.
Files are not modified.
`

// Cmd returns the Command for the `parse` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "parse [-C <dir>] <dep_file>...",
		ShortDesc: "show dependencies in depfiles",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dir string
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "directory to find depfiles")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, a.GetOut(), args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(a.GetErr(), "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no depfile: %w", flag.ErrHelp)
	}
	for _, fname := range args {
		dir := c.dir
		if filepath.IsAbs(fname) {
			dir, fname = filepath.Split(fname)
		}
		deps, err := makeutil.ParseDepsFile(ctx, os.DirFS(dir), filepath.ToSlash(filepath.Clean(fname)))
		if err != nil {
			return err
		}
		for _, dep := range deps {
			fmt.Fprintln(w, dep)
		}
	}
	return nil
}
