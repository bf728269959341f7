// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.starlark.net/starlark"

	"go.chromium.org/infra/build/fixdeps/o11y/clog"
)

// LoadConfig evaluates a Starlark config file in fname, and registers
// benchmarks to r.
//
// The config file can call the builtin
//
//	benchmark(name, measurement, page_set)
//
// to register a benchmark binding.
func LoadConfig(ctx context.Context, r *Registry, fname string) error {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", fname, err)
	}
	return execConfig(ctx, r, fname, buf)
}

func execConfig(ctx context.Context, r *Registry, fname string, src []byte) error {
	thread := &starlark.Thread{
		Name: "benchmarks " + fname,
		Print: func(thread *starlark.Thread, msg string) {
			clog.Infof(ctx, "thread:%s %s", thread.Name, msg)
		},
	}
	predeclared := starlark.StringDict{
		"benchmark": starlark.NewBuiltin("benchmark", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var b Benchmark
			err := starlark.UnpackArgs(fn.Name(), args, kwargs,
				"name", &b.Name,
				"measurement", &b.Measurement,
				"page_set", &b.PageSet)
			if err != nil {
				return nil, err
			}
			err = r.Register(b)
			if err != nil {
				return nil, err
			}
			clog.Infof(ctx, "register benchmark %s", b)
			return starlark.None, nil
		}),
	}
	_, err := starlark.ExecFile(thread, fname, src, predeclared)
	if err != nil {
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			clog.Warningf(ctx, "stacktrace:\n%s", eerr.Backtrace())
		}
		return fmt.Errorf("failed to exec %s: %w", fname, err)
	}
	return nil
}
