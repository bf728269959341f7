// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	log "github.com/golang/glog"

	"go.chromium.org/infra/build/fixdeps/o11y/clog"
)

// FixupDepFile modifies a GCC generated deps file in fname in-place so
// it is more suitable for including in a GNU Makefile.
//
// For every dependency found, it appends a dummy target with no rules.
// Without them, deleting or renaming a header breaks the build with
// "No rule to make target". See
// http://mad-scientist.net/make/autodep.html for details.
//
// It is not idempotent; every call appends the dummy targets again.
// The file is rewritten in place, so it may be left partially written
// if writing fails.
func FixupDepFile(ctx context.Context, fname string) error {
	fi, err := os.Stat(fname)
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: NotFound, Path: fname, Err: err}
	}
	if err != nil {
		return &Error{Kind: IOFailure, Path: fname, Err: err}
	}
	f, err := os.Open(fname)
	if err != nil {
		return &Error{Kind: IOFailure, Path: fname, Err: err}
	}
	var buf bytes.Buffer
	nlines := 0
	deps, err := scanDeps(f, func(line string) {
		nlines++
		buf.WriteString(line)
	})
	f.Close()
	if err != nil {
		return &Error{Kind: IOFailure, Path: fname, Err: err}
	}
	if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	for _, dep := range deps {
		fmt.Fprintf(&buf, "%s:\n", dep)
	}
	clog.Infof(ctx, "fixdeps %s: %d lines, %d deps", fname, nlines, len(deps))
	if log.V(1) {
		clog.Infof(ctx, "fixdeps %s => %q", fname, deps)
	}
	err = os.WriteFile(fname, buf.Bytes(), fi.Mode().Perm())
	if err != nil {
		return &Error{Kind: IOFailure, Path: fname, Err: err}
	}
	return nil
}
