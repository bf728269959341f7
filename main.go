// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// fixdeps fixes up GCC-generated dependency files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	log "github.com/golang/glog"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/fixdeps/o11y/clog"
	"go.chromium.org/infra/build/fixdeps/subcmd/benchmarks"
	"go.chromium.org/infra/build/fixdeps/subcmd/fix"
	"go.chromium.org/infra/build/fixdeps/subcmd/help"
	"go.chromium.org/infra/build/fixdeps/subcmd/parse"
	"go.chromium.org/infra/build/fixdeps/subcmd/version"
)

const fixdepsVersion = "v1.0.0"

func getApplication(ctx context.Context) *cli.Application {
	return &cli.Application{
		Name:  "fixdeps",
		Title: "Fixup GCC-generated dependency files for GNU Make",
		Context: func(context.Context) context.Context {
			return clog.NewContext(ctx, clog.New(ctx))
		},
		Commands: []*subcommands.Command{
			fix.Cmd(),
			parse.Cmd(),
			benchmarks.Cmd(),

			help.Cmd(),
			version.Cmd(fixdepsVersion),
		},
	}
}

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, " %s [global flags] <command> [flags] [args]\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "Use `%s help` to display commands.\n", os.Args[0])
	}
	flag.Parse()
	os.Exit(fixdepsMain(flag.Args()))
}

func fixdepsMain(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer signals.HandleInterrupt(cancel)()

	// Flush the log on exit to not lose any messages.
	defer log.Flush()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Infof("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
	}
	log.Infof("args: %q", args)
	return subcommands.Run(getApplication(ctx), args)
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
