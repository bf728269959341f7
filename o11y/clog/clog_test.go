// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog_test is a test for clog package.
package clog_test

import (
	"context"
	"testing"

	"cloud.google.com/go/logging"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/fixdeps/o11y/clog"
)

func TestNilLogger(t *testing.T) {
	ctx := context.Background()
	if l := clog.FromContext(ctx); l != nil {
		t.Fatalf("FromContext(ctx)=%v; want nil", l)
	}
	// must not panic without a logger in the context.
	clog.Infof(ctx, "Info")
	clog.Warningf(ctx, "Warning")
	clog.Errorf(ctx, "Error")
	clog.Infof(clog.NewSpan(ctx, map[string]string{"depfile": "foo.d"}), "Child Info")
}

func TestSpan(t *testing.T) {
	ctx := context.Background()
	l := clog.New(ctx)
	defer l.Close()
	if l.Trace() == "" {
		t.Errorf("New(ctx).Trace()=%q; want non empty", l.Trace())
	}
	ctx = clog.NewContext(ctx, l)

	var got []logging.Entry
	l.Formatter = func(e logging.Entry) string {
		got = append(got, e)
		return ""
	}
	cctx := clog.NewSpan(ctx, map[string]string{"depfile": "foo.d"})
	gctx := clog.NewSpan(cctx, map[string]string{"step": "write"})
	clog.Infof(cctx, "child %d", 1)
	clog.Warningf(gctx, "grandchild %d", 2)

	if len(got) != 2 {
		t.Fatalf("logged %d entries; want 2", len(got))
	}
	for i, tc := range []struct {
		severity logging.Severity
		payload  string
		labels   map[string]string
	}{
		{
			severity: logging.Info,
			payload:  "child 1",
			labels:   map[string]string{"depfile": "foo.d"},
		},
		{
			severity: logging.Warning,
			payload:  "grandchild 2",
			labels:   map[string]string{"depfile": "foo.d", "step": "write"},
		},
	} {
		e := got[i]
		if e.Severity != tc.severity || e.Payload != tc.payload {
			t.Errorf("entry[%d]=%v %v; want %v %v", i, e.Severity, e.Payload, tc.severity, tc.payload)
		}
		if diff := cmp.Diff(tc.labels, e.Labels); diff != "" {
			t.Errorf("entry[%d].Labels -want +got:\n%s", i, diff)
		}
		if e.Trace != l.Trace() {
			t.Errorf("entry[%d].Trace=%q; want %q", i, e.Trace, l.Trace())
		}
	}
}
