// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the slog loggers of the gopvt command.
// Operational messages go to stderr; results are printed separately by the commands.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is below Debug; every evaluated cell is logged at this level
const LevelTrace = slog.LevelDebug - 4

// Options holds the settings given by the global flags
type Options struct {
	Level string // "info", "debug" or "trace"; case-insensitive; unknown means "info"
	JSON  bool   // JSON lines instead of text
}

// ParseLevel maps a level name to a slog.Level; unknown names give slog.LevelInfo
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	}
	return slog.LevelInfo
}

// New returns a logger writing to w according to opts
func New(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: levelNames,
	}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// Discard returns a logger that drops all records
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

// Cell groups the attributes of one evaluated cell
func Cell(i, region int, p, r float64) slog.Attr {
	return slog.Group("cell", "i", i, "region", region, "p", p, "r", r)
}

// levelNames labels LevelTrace as TRACE
func levelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}
