package consent

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// TerminalProvider prompts on the controlling terminal. It reads from
// /dev/tty directly so it works even when stdout is redirected, which is
// always the case when the portal invokes the picker.
type TerminalProvider struct {
	tty *os.File
}

// NewTerminalProvider opens /dev/tty. It fails when the process has no
// controlling terminal or the tty is not interactive.
func NewTerminalProvider() (*TerminalProvider, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty: %w", err)
	}
	if !term.IsTerminal(int(tty.Fd())) {
		tty.Close()
		return nil, fmt.Errorf("/dev/tty is not a terminal")
	}
	return &TerminalProvider{tty: tty}, nil
}

// Close releases the tty fd.
func (p *TerminalProvider) Close() {
	p.tty.Close()
}

// Ask prompts for a single keypress: [a]lways allow, allow [o]nce, or deny.
// Any other key denies.
func (p *TerminalProvider) Ask(description string) Decision {
	fmt.Fprintf(p.tty, "OmniRec wants to record your screen.\r\n  %s\r\n", description)
	fmt.Fprintf(p.tty, "  [a] always allow  [o] allow once  [any other key] deny: ")

	old, err := term.MakeRaw(int(p.tty.Fd()))
	if err != nil {
		slog.Warn("raw mode failed, denying", "error", err)
		return Denied
	}
	defer term.Restore(int(p.tty.Fd()), old)

	var key [1]byte
	if _, err := p.tty.Read(key[:]); err != nil {
		fmt.Fprintf(p.tty, "\r\n")
		return Denied
	}
	fmt.Fprintf(p.tty, "%c\r\n", key[0])

	switch key[0] {
	case 'a', 'A':
		return AlwaysAllow
	case 'o', 'O':
		return AllowOnce
	default:
		return Denied
	}
}
