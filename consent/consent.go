// Package consent obtains the user's screen-recording decision. The dialog
// is a pluggable capability: Probe selects the first available provider at
// startup, so the workflow never depends on a particular presentation.
package consent

import picker "github.com/omnirec/picker"

// Decision is the consent outcome for the current capture request.
type Decision int

const (
	// Denied means the user rejected the request.
	Denied Decision = iota
	// AllowOnce approves this request only; no token is persisted.
	AllowOnce
	// AlwaysAllow approves this request and persists a token so future
	// requests skip consent.
	AlwaysAllow
)

func (d Decision) String() string {
	switch d {
	case AllowOnce:
		return "allow_once"
	case AlwaysAllow:
		return "always_allow"
	default:
		return "denied"
	}
}

// Provider asks the user for a decision. The call blocks for as long as the
// user takes; there is no timeout.
type Provider interface {
	Ask(description string) Decision
}

// Describe builds the human-readable source description shown in the prompt.
func Describe(sourceType, sourceID string) string {
	switch sourceType {
	case picker.SourceMonitor:
		return "Display: " + sourceID
	case picker.SourceWindow:
		return "Window: " + sourceID
	case picker.SourceRegion:
		return "Region on: " + sourceID
	default:
		return "Source: " + sourceID
	}
}
