package consent

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Dialog binary names probed when no override is configured.
const (
	omnirecDialogBinary  = "omnirec-dialog"
	hyprlandDialogBinary = "hyprland-dialog"
)

// DialogProvider asks via the omnirec-dialog binary. The dialog prints
// ALWAYS_ALLOW or ALLOW_ONCE on stdout; anything else is a denial.
type DialogProvider struct {
	// Command is the resolved dialog binary path.
	Command string
}

// NewDialogProvider locates the omnirec dialog binary. The override (from
// config or $OMNIREC_DIALOG) wins; otherwise a binary next to the picker
// executable is preferred over one on PATH. Returns nil when none is found.
func NewDialogProvider(override string) *DialogProvider {
	if override != "" {
		return &DialogProvider{Command: override}
	}
	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), omnirecDialogBinary)
		if _, err := os.Stat(sibling); err == nil {
			return &DialogProvider{Command: sibling}
		}
	}
	if path, err := exec.LookPath(omnirecDialogBinary); err == nil {
		return &DialogProvider{Command: path}
	}
	return nil
}

// Ask runs the dialog with the source description as its argument and parses
// the decision from its stdout.
func (p *DialogProvider) Ask(description string) Decision {
	cmd := exec.Command(p.Command, description)
	cmd.Stdin = nil
	out, err := cmd.Output()
	if err != nil {
		slog.Warn("consent dialog failed, denying", "command", p.Command, "error", err)
		return Denied
	}
	return parseDialogOutput(strings.TrimSpace(string(out)))
}

func parseDialogOutput(response string) Decision {
	switch response {
	case "ALWAYS_ALLOW":
		return AlwaysAllow
	case "ALLOW_ONCE":
		return AllowOnce
	default:
		return Denied
	}
}

// HyprlandDialogProvider asks via the stock hyprland-dialog tool, used when
// the omnirec dialog is not installed. The pressed button label is printed
// on stdout.
type HyprlandDialogProvider struct {
	Command string
}

// NewHyprlandDialogProvider locates hyprland-dialog on PATH. Returns nil
// when it is not installed.
func NewHyprlandDialogProvider() *HyprlandDialogProvider {
	path, err := exec.LookPath(hyprlandDialogBinary)
	if err != nil {
		return nil
	}
	return &HyprlandDialogProvider{Command: path}
}

// Ask shows the three-button permission dialog and maps the pressed button
// to a decision.
func (p *HyprlandDialogProvider) Ask(description string) Decision {
	text := "OmniRec is requesting permission to record your screen.\n\n" + description
	cmd := exec.Command(p.Command,
		"--title", "OmniRec - Screen Recording Permission",
		"--text", text,
		"--buttons", "Always Allow;Allow Once;Deny",
	)
	cmd.Stdin = nil
	out, err := cmd.Output()
	if err != nil {
		slog.Warn("hyprland-dialog failed, denying", "error", err)
		return Denied
	}
	switch strings.TrimSpace(string(out)) {
	case "Always Allow":
		return AlwaysAllow
	case "Allow Once":
		return AllowOnce
	default:
		return Denied
	}
}
