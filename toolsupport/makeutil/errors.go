// Copyright 2023 The Chromium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makeutil

import "fmt"

// ErrorKind is a kind of error reported by FixupDepFile.
type ErrorKind int

const (
	// NotFound is reported when the depfile doesn't exist.
	// No file is modified in this case.
	NotFound ErrorKind = iota + 1
	// IOFailure is reported for any read or write error.
	// The depfile may be partially written if it happens while writing.
	IOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case IOFailure:
		return "io failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is an error on a depfile.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

var (
	// ErrNotFound matches any *Error of kind NotFound with errors.Is.
	ErrNotFound = &Error{Kind: NotFound}
	// ErrIOFailure matches any *Error of kind IOFailure with errors.Is.
	ErrIOFailure = &Error{Kind: IOFailure}
)

func (e *Error) Error() string {
	switch {
	case e.Kind == NotFound:
		return fmt.Sprintf("File not found: %s", e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
