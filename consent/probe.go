package consent

import "log/slog"

// denyAll is the provider of last resort: with no way to ask the user, the
// request is denied.
type denyAll struct{}

func (denyAll) Ask(string) Decision {
	slog.Error("no consent dialog available, denying; install omnirec-dialog or hyprland-guiutils")
	return Denied
}

// Probe selects the first available provider: the embedded terminal prompt
// when the process has an interactive tty, then the omnirec dialog binary,
// then hyprland-dialog. dialogOverride comes from config or $OMNIREC_DIALOG.
func Probe(dialogOverride string) Provider {
	if p, err := NewTerminalProvider(); err == nil {
		slog.Debug("consent via terminal prompt")
		return p
	}
	if p := NewDialogProvider(dialogOverride); p != nil {
		slog.Debug("consent via dialog", "command", p.Command)
		return p
	}
	if p := NewHyprlandDialogProvider(); p != nil {
		slog.Debug("consent via hyprland-dialog")
		return p
	}
	return denyAll{}
}
