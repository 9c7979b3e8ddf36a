// SPDX-License-Identifier: MIT

// Package logging holds the process-wide structured logger shared by the
// pipeline, the config loader and the augment command.
//
// The logger starts as an info-level text handler on stderr. Configure
// replaces it atomically, so goroutines materializing samples may keep
// calling L while the command line is being applied.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// Environment variables read by InitFromEnv.
const (
	EnvLevel = "LVAUGMENT_LOG_LEVEL"
	EnvJSON  = "LVAUGMENT_LOG_JSON"
)

// Options selects the handler installed by Configure.
//
//	Level  - debug|info|warn|error, see ParseLevel
//	JSON   - JSON lines instead of key=value text
//	Output - destination; nil means os.Stderr
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(build(Options{}))
}

// build turns opts into a logger without installing it.
func build(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, ho))
	}

	return slog.New(slog.NewTextHandler(out, ho))
}

// Configure installs the logger described by opts as the process logger.
// Loggers obtained from L before the call keep their old handler.
func Configure(opts Options) {
	current.Store(build(opts))
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the process logger. It is never nil.
func L() *slog.Logger { return current.Load() }

// InitFromEnv calls Configure with EnvLevel and EnvJSON. An unparsable
// EnvJSON value leaves text output on.
func InitFromEnv() {
	json, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvJSON)))
	if err != nil {
		json = false
	}
	Configure(Options{Level: os.Getenv(EnvLevel), JSON: json})
}
