// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UseColor is whether to color the level names of log messages.
// It is turned off by [InitColor] when the output is not a color terminal.
var UseColor = true

var output = termenv.NewOutput(os.Stderr)

// InitColor detects the color support of standard error and enables
// virtual terminal processing where needed (Windows). The returned
// function restores the terminal state.
func InitColor() (restore func() error) {
	restore, err := termenv.EnableVirtualTerminalProcessing(output)
	if err != nil {
		restore = func() error { return nil }
	}
	if output.Profile == termenv.Ascii {
		UseColor = false
	}
	return restore
}

// levelColors are the ANSI color numbers of the level names.
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "8", // gray
	slog.LevelInfo:  "4", // blue
	slog.LevelWarn:  "3", // yellow
	slog.LevelError: "1", // red
}

// LevelColor returns the given string colored for the given level,
// or unchanged if [UseColor] is off.
func LevelColor(level slog.Level, str string) string {
	if !UseColor {
		return str
	}
	clr, ok := levelColors[level]
	if !ok {
		return str
	}
	st := output.String(str).Foreground(output.Color(clr))
	if level >= slog.LevelError {
		st = st.Bold()
	}
	return st.String()
}
