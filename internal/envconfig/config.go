// Package envconfig reads process-wide settings from the environment.
//
//   - MLLOSS_DEBUG: log level (0/false = INFO, 1/true = DEBUG, other ints scale by -4)
//   - MLLOSS_NUM_THREADS: worker count for per-sample loops (0 = one per CPU)
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the log level configured via MLLOSS_DEBUG.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("MLLOSS_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// NumThreads returns the worker count configured via MLLOSS_NUM_THREADS.
// Zero means "use the default".
func NumThreads() int {
	s := Var("MLLOSS_NUM_THREADS")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		slog.Warn("invalid MLLOSS_NUM_THREADS, using default", "value", s)
		return 0
	}
	return n
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns the supported variables with their current values.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"MLLOSS_DEBUG":       {"MLLOSS_DEBUG", LogLevel(), "Show additional debug information (e.g. MLLOSS_DEBUG=1)"},
		"MLLOSS_NUM_THREADS": {"MLLOSS_NUM_THREADS", NumThreads(), "Worker goroutines for per-sample loops (default: one per CPU)"},
	}
}

// Var returns an environment variable stripped of surrounding spaces and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
