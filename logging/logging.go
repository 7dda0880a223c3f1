// Package logging configures the picker's logging: a text handler on stderr
// plus a best-effort append to the picker log file. The file is opened,
// appended, and closed per message, so a picker reaped mid-run never holds
// the log open and concurrent invocations interleave at line granularity.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// appendFile is an io.Writer that opens-appends-closes on every write.
// Failures are swallowed: logging must never take the picker down.
type appendFile struct {
	path string
}

func (f appendFile) Write(p []byte) (int, error) {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return len(p), nil
	}
	defer file.Close()
	file.Write(p)
	return len(p), nil
}

// Setup installs the default logger. path is the append log file; an empty
// path logs to stderr only. verbose enables debug records.
func Setup(path string, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if path != "" {
		w = io.MultiWriter(os.Stderr, appendFile{path: path})
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
