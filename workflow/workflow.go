// Package workflow drives the picker decision flow end to end: query the
// service for the current selection, gate it behind consent when no approval
// token covers it yet, emit the selection line, and persist a fresh token.
//
// The ordering invariant lives here: the output line is written and flushed
// before any persistence attempt, because the portal may reap the picker the
// moment it observes the line. Token persistence is structurally unreachable
// until emit has returned.
package workflow

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	picker "github.com/omnirec/picker"
	"github.com/omnirec/picker/consent"
	"github.com/omnirec/picker/format"
	"github.com/omnirec/picker/windowlist"
)

// Exit codes. Fallback delegation propagates the delegate's code instead.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Transport is the service connection used by the workflow. One connection
// serves both calls, sequentially.
type Transport interface {
	Query() (*picker.Response, error)
	StoreToken(token string) error
	Close() error
}

// Fallback launches the delegate picker and returns its exit code.
type Fallback interface {
	Run() int
}

// Workflow holds the collaborators for one picker invocation.
type Workflow struct {
	// Dial opens the service connection. Dial failure degrades to fallback.
	Dial func() (Transport, error)
	// Consent asks the user when the selection has no approval token.
	Consent consent.Provider
	// Fallback runs when no selection is obtainable.
	Fallback Fallback
	// Windows resolves window addresses for the output line.
	Windows []windowlist.Entry
	// Stdout receives the single output line. Defaults to os.Stdout.
	Stdout io.Writer
	// NewToken generates an approval token. Defaults to consent.NewApprovalToken.
	NewToken func() (string, error)
}

// Run executes the workflow and returns the process exit code.
func (w *Workflow) Run() int {
	client, err := w.Dial()
	if err != nil {
		slog.Warn("failed to query service, delegating", "error", err)
		return w.Fallback.Run()
	}
	defer client.Close()

	resp, err := client.Query()
	if err != nil {
		slog.Warn("selection query failed, delegating", "error", err)
		return w.Fallback.Run()
	}

	switch resp.Type {
	case picker.TypeSelection:
		return w.emitSelection(client, resp)
	case picker.TypeNoSelection:
		slog.Info("no selection available, delegating")
		return w.Fallback.Run()
	case picker.TypeError:
		slog.Warn("service returned error, delegating", "message", resp.Message)
		return w.Fallback.Run()
	default:
		slog.Warn("unexpected response to query, delegating", "type", resp.Type)
		return w.Fallback.Run()
	}
}

// emitSelection decides consent, writes the output line, and then persists a
// fresh token when the user chose always-allow.
func (w *Workflow) emitSelection(client Transport, resp *picker.Response) int {
	slog.Info("got selection",
		"source_type", resp.SourceType,
		"source_id", resp.SourceID,
		"has_token", resp.HasApprovalToken)

	// A stored token covering this selection skips consent entirely.
	var pendingToken string
	if resp.HasApprovalToken {
		slog.Info("approval token on file, auto-approving")
	} else {
		decision := w.Consent.Ask(consent.Describe(resp.SourceType, resp.SourceID))
		slog.Info("consent decision", "decision", decision)
		switch decision {
		case consent.Denied:
			// No output line at all on denial.
			return ExitFailure
		case consent.AlwaysAllow:
			token, err := w.newToken()
			if err != nil {
				// Without a token the approval still stands for this
				// request; it just won't persist.
				slog.Error("token generation failed, approving once", "error", err)
			} else {
				pendingToken = token
			}
		case consent.AllowOnce:
		}
	}

	line, ok := w.render(resp)
	if !ok {
		return ExitFailure
	}

	// Emit first: the portal may reap us as soon as it sees the line.
	if err := w.emit(line); err != nil {
		slog.Error("failed to write output", "error", err)
		return ExitFailure
	}

	// The exit code is decided; a persistence failure is logged and swallowed.
	if pendingToken != "" {
		if err := client.StoreToken(pendingToken); err != nil {
			slog.Warn("failed to store approval token", "error", err)
		} else {
			slog.Info("approval token stored")
		}
	}

	return ExitSuccess
}

// render produces the output line for the selection. An unknown source type
// or a region without geometry has no sensible output line and is fatal.
func (w *Workflow) render(resp *picker.Response) (string, bool) {
	switch resp.SourceType {
	case picker.SourceMonitor:
		return format.Monitor(resp.SourceID), true
	case picker.SourceWindow:
		return format.Window(resp.SourceID, w.Windows), true
	case picker.SourceRegion:
		if resp.Geometry == nil {
			slog.Error("region selection missing geometry")
			return "", false
		}
		return format.Region(resp.SourceID, *resp.Geometry), true
	default:
		slog.Error("unknown source type", "source_type", resp.SourceType)
		return "", false
	}
}

// emit writes the single output line and flushes it immediately.
func (w *Workflow) emit(line string) error {
	out := w.Stdout
	if out == nil {
		out = os.Stdout
	}
	if _, err := fmt.Fprintln(out, line); err != nil {
		return err
	}
	if f, ok := out.(*os.File); ok {
		f.Sync()
	}
	slog.Info("output", "line", line)
	return nil
}

func (w *Workflow) newToken() (string, error) {
	if w.NewToken != nil {
		return w.NewToken()
	}
	return consent.NewApprovalToken()
}
