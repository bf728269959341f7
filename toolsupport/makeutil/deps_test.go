// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	for _, tc := range []struct {
		name      string
		line      string
		newTarget bool
		want      []string
	}{
		{
			name:      "simple",
			line:      "foo.o: foo.c foo.h bar.h\n",
			newTarget: true,
			want:      []string{"foo.c", "foo.h", "bar.h"},
		},
		{
			name:      "tab",
			line:      "foo.o:\tbar  baz",
			newTarget: true,
			want:      []string{"bar", "baz"},
		},
		{
			name:      "continuation",
			line:      "foo.o: foo.c \\\n",
			newTarget: true,
			want:      []string{"foo.c"},
		},
		{
			name:      "continued",
			line:      "  foo.h\n",
			newTarget: false,
			want:      []string{"foo.h"},
		},
		{
			name:      "continued-colon",
			line:      "  c:/include/foo.h bar.h \\\n",
			newTarget: false,
			want:      []string{"c:/include/foo.h", "bar.h"},
		},
		{
			name:      "no-target",
			line:      "foo.h bar.h",
			newTarget: true,
			want:      []string{"foo.h", "bar.h"},
		},
		{
			name:      "first-colon",
			line:      "a: b: c",
			newTarget: true,
			want:      []string{"b:", "c"},
		},
		{
			name:      "spaceinname",
			line:      `foo.o: a\ b.h c.h`,
			newTarget: true,
			want:      []string{`a\ b.h`, "c.h"},
		},
		{
			name:      "spaceinname-continuation",
			line:      `foo.o: dep\ with\ space \`,
			newTarget: true,
			want:      []string{`dep\ with\ space`},
		},
		{
			name:      "empty",
			line:      "\n",
			newTarget: true,
			want:      []string{""},
		},
		{
			name:      "phony",
			line:      "foo.h:\n",
			newTarget: true,
			want:      []string{""},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLine(tc.line, tc.newTarget)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseLine(%q, %t) -want +got:\n%s", tc.line, tc.newTarget, diff)
			}
		})
	}
}

func TestIsContinuation(t *testing.T) {
	for _, tc := range []struct {
		line string
		want bool
	}{
		{line: "foo.o: foo.c \\\n", want: true},
		{line: "foo.o: foo.c \\\r\n", want: true},
		{line: "foo.o: foo.c \\", want: true},
		{line: "foo.o: foo.c \\  \n", want: true},
		{line: "foo.o: foo.c\n", want: false},
		{line: "foo.o: foo.c\\\\\n", want: false},
		{line: "foo.o: foo.c\\\\\\\n", want: true},
		{line: "", want: false},
	} {
		got := IsContinuation(tc.line)
		if got != tc.want {
			t.Errorf("IsContinuation(%q)=%t; want %t", tc.line, got, tc.want)
		}
	}
}

func TestParseDepsLines(t *testing.T) {
	for _, tc := range []struct {
		name     string
		depsfile string
		want     []string
	}{
		{
			name:     "simple",
			depsfile: "foo.o: foo.c foo.h bar.h\n",
			want:     []string{"foo.c", "foo.h", "bar.h"},
		},
		{
			name:     "continuation",
			depsfile: "foo.o: foo.c \\\n  foo.h\n",
			want:     []string{"foo.c", "foo.h"},
		},
		{
			name:     "continuation-colon",
			depsfile: "foo.o: foo.c \\\n  c:/foo.h\n",
			want:     []string{"foo.c", "c:/foo.h"},
		},
		{
			name:     "multi-targets",
			depsfile: "foo.o: foo.c \\\n  foo.h\nbar.o: bar.c foo.h\n",
			want:     []string{"foo.c", "foo.h", "bar.c", "foo.h"},
		},
		{
			name:     "crlf",
			depsfile: "foo.o: foo.c \\\r\n  foo.h\r\n",
			want:     []string{"foo.c", "foo.h"},
		},
		{
			name:     "no-newline-at-eof",
			depsfile: "foo.o: foo.c",
			want:     []string{"foo.c"},
		},
		{
			name:     "empty",
			depsfile: "",
			want:     nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDepsLines(strings.NewReader(tc.depsfile))
			if err != nil {
				t.Fatalf("ParseDepsLines(%q)=%q, %v; want nil error", tc.depsfile, got, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseDepsLines(%q) -want +got:\n%s", tc.depsfile, diff)
			}
		})
	}
}

func TestParseDepsFile(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"obj/foo.o.d": &fstest.MapFile{
			Data: []byte("obj/foo.o: ../../foo.cc \\\n  ../../foo.h ../../base/a\\ b.h\n"),
		},
	}
	got, err := ParseDepsFile(ctx, fsys, "obj/foo.o.d")
	if err != nil {
		t.Fatalf("ParseDepsFile(ctx, fsys, %q)=%q, %v; want nil error", "obj/foo.o.d", got, err)
	}
	want := []string{"../../foo.cc", "../../foo.h", `../../base/a\ b.h`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDepsFile(ctx, fsys, %q) -want +got:\n%s", "obj/foo.o.d", diff)
	}

	_, err = ParseDepsFile(ctx, fsys, "obj/bar.o.d")
	if err == nil {
		t.Errorf("ParseDepsFile(ctx, fsys, %q)=_, nil; want error", "obj/bar.o.d")
	}
}
