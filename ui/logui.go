// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

type logSpinner struct {
	logger  *log.Logger
	started time.Time
}

// Start implements the ui.Spinner interface.
// Because a log-based UI cannot support an animated spinner, this is used only to report spinner completion.
func (l *logSpinner) Start(format string, args ...any) {
	l.started = time.Now()
	l.logger.Infof(format, args...)
}

// Stop implements the ui.Spinner interface.
// Because a log-based UI cannot support an animated spinner, this is used to report how long the spinner operation took to complete.
func (l *logSpinner) Stop(err error) {
	if err != nil {
		l.logger.Warnf("-> failed %s %v", time.Since(l.started), err)
		return
	}
	l.logger.Infof("-> done %s", time.Since(l.started))
}

// Done finishes the spinner with message.
func (l *logSpinner) Done(format string, args ...any) {
	l.logger.Infof("-> %s %s", fmt.Sprintf(format, args...), time.Since(l.started))
}

// LogUI is a log-based UI.
type LogUI struct {
	logger *log.Logger
}

// NewLogUI returns a log-based UI writing to w.
func NewLogUI(w io.Writer) *LogUI {
	return &LogUI{
		logger: log.NewWithOptions(w, log.Options{
			Prefix: "fixdeps",
		}),
	}
}

// NewSpinner returns an implementation of ui.Spinner.
func (l *LogUI) NewSpinner() Spinner {
	return &logSpinner{logger: l.logger}
}

// Infof reports an informational message.
func (l *LogUI) Infof(format string, args ...any) {
	l.logger.Helper()
	l.logger.Infof(format, args...)
}

// Warningf reports a warning message.
func (l *LogUI) Warningf(format string, args ...any) {
	l.logger.Helper()
	l.logger.Warnf(format, args...)
}

// Errorf reports an error message.
func (l *LogUI) Errorf(format string, args ...any) {
	l.logger.Helper()
	l.logger.Errorf(format, args...)
}
