// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package benchmarks is benchmarks subcommand to show perf benchmark bindings.
package benchmarks

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/fixdeps/perf/benchmark"
)

const usage = `show perf benchmark bindings

 $ fixdeps benchmarks [-config <file.star>] [<name>...]

prints benchmark name, measurement and page set.
If <name> is not given, it prints all benchmarks.

<file.star> is a Starlark file to register more benchmarks with
 benchmark(name, measurement, page_set)
`

// Cmd returns the Command for the `benchmarks` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "benchmarks [-config <file.star>] [<name>...]",
		ShortDesc: "show perf benchmark bindings",
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

	config string
}

func (c *run) init() {
	c.Flags.StringVar(&c.config, "config", "", "Starlark file to register more benchmarks")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, a.GetOut(), args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, w io.Writer, args []string) error {
	r := benchmark.Default()
	if c.config != "" {
		err := benchmark.LoadConfig(ctx, r, c.config)
		if err != nil {
			return err
		}
	}
	if len(args) == 0 {
		for _, b := range r.List() {
			fmt.Fprintln(w, b)
		}
		return nil
	}
	for _, name := range args {
		b, ok := r.Lookup(name)
		if !ok {
			return fmt.Errorf("benchmark not found: %q", name)
		}
		fmt.Fprintln(w, b)
	}
	return nil
}
