// Package fallback launches the standard share picker when no omnirec
// selection is obtainable, forwarding its output and exit code so other
// applications can still request screen capture.
package fallback

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Launcher runs the delegate picker tool.
type Launcher struct {
	// Command is the delegate binary name or path.
	Command string
	// Stdout receives the forwarded selection line. Defaults to os.Stdout.
	Stdout io.Writer
}

// New creates a launcher for the given delegate command.
func New(command string) *Launcher {
	return &Launcher{Command: command, Stdout: os.Stdout}
}

// Run spawns the delegate, forwards its first non-empty stdout line
// verbatim, waits unboundedly for completion, and returns its exit code
// collapsed to 0 or 1. A delegate that cannot be started is a hard error
// (exit 1).
func (l *Launcher) Run() int {
	slog.Info("falling back to standard picker", "command", l.Command)

	cmd := exec.Command(l.Command)
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		slog.Error("fallback picker pipe failed", "error", err)
		return 1
	}

	if err := cmd.Start(); err != nil {
		slog.Error("failed to execute fallback picker", "command", l.Command, "error", err)
		return 1
	}

	// ReadString rather than a Scanner: the selection line has no length
	// bound, and a delegate's output must never be dropped for being long.
	forwarded := false
	r := bufio.NewReader(stdout)
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")
		if line != "" && !forwarded {
			slog.Info("fallback picker output", "line", line)
			io.WriteString(l.Stdout, line+"\n")
			forwarded = true
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Warn("reading fallback picker output failed", "error", err)
			}
			break
		}
	}

	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			slog.Info("fallback picker exited", "code", exitErr.ExitCode())
			return 1
		}
		slog.Error("failed to wait for fallback picker", "error", err)
		return 1
	}
	return 0
}
