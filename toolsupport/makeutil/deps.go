// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package makeutil provides utilities for make.
package makeutil

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"

	log "github.com/golang/glog"

	"go.chromium.org/infra/build/fixdeps/o11y/clog"
)

// ParseLine parses one line of a GCC-generated deps file.
//
// Each line contains an optional target and then a list of space
// separated dependencies. The target is only recognized when newTarget
// is true, i.e. the line doesn't continue the previous line.
// Spaces within filenames are escaped with a backslash, and the escape
// is kept in the returned filename.
func ParseLine(line string, newTarget bool) []string {
	if newTarget {
		if _, after, ok := strings.Cut(line, ":"); ok {
			line = after
		}
	}
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, `\`)

	var filenames []string
	for {
		line = strings.TrimSpace(line)
		pos := nextSpace(line)
		if pos < 0 {
			filenames = append(filenames, line)
			return filenames
		}
		filenames = append(filenames, line[:pos])
		line = line[pos+1:]
	}
}

// nextSpace returns the index of the first space in s not escaped
// by a backslash, or -1.
func nextSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			continue
		}
		if i > 0 && s[i-1] == '\\' {
			continue
		}
		return i
	}
	return -1
}

// IsContinuation reports whether line ends with an unescaped backslash,
// i.e. the next line continues the dependency list of this line.
func IsContinuation(line string) bool {
	line = strings.TrimRight(line, " \t\r\n")
	n := len(line) - len(strings.TrimRight(line, `\`))
	return n%2 == 1
}

// ParseDepsLines parses a deps file in r line by line and returns
// all filenames in the order they appear. Duplicates are kept.
func ParseDepsLines(r io.Reader) ([]string, error) {
	return scanDeps(r, nil)
}

// ParseDepsFile parses *.d file in fname on fsys.
func ParseDepsFile(ctx context.Context, fsys fs.FS, fname string) ([]string, error) {
	f, err := fsys.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	deps, err := ParseDepsLines(f)
	if err != nil {
		return nil, err
	}
	if log.V(1) {
		clog.Infof(ctx, "deps %s => %q", fname, deps)
	}
	return deps, nil
}

// scanDeps reads lines from r, calling fn with each line verbatim
// (including its line terminator) if fn is not nil, and returns
// the filenames parsed from the lines.
func scanDeps(r io.Reader, fn func(line string)) ([]string, error) {
	br := bufio.NewReader(r)
	var deps []string
	newTarget := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if fn != nil {
				fn(line)
			}
			deps = append(deps, ParseLine(line, newTarget)...)
			newTarget = !IsContinuation(line)
		}
		if errors.Is(err, io.EOF) {
			return deps, nil
		}
		if err != nil {
			return deps, err
		}
	}
}
