package fallback

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakePicker writes a shell script standing in for the delegate tool.
func fakePicker(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-picker")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunForwardsFirstNonEmptyLine(t *testing.T) {
	script := "echo ''\necho '[SELECTION]/screen:DP-1'\necho 'extra noise'"
	l := New(fakePicker(t, script))
	var out bytes.Buffer
	l.Stdout = &out

	if code := l.Run(); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out.String() != "[SELECTION]/screen:DP-1\n" {
		t.Errorf("expected only the first non-empty line forwarded, got %q", out.String())
	}
}

func TestRunForwardsLongLineIntact(t *testing.T) {
	// Longer than any fixed scan buffer; the whole line must come through.
	script := "printf '[SELECTION]/window:'; head -c 70000 /dev/zero | tr '\\0' '7'; echo"
	l := New(fakePicker(t, script))
	var out bytes.Buffer
	l.Stdout = &out

	if code := l.Run(); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	want := "[SELECTION]/window:" + strings.Repeat("7", 70000) + "\n"
	if out.String() != want {
		t.Errorf("long line not forwarded intact: got %d bytes, want %d", out.Len(), len(want))
	}
}

func TestRunPropagatesFailure(t *testing.T) {
	l := New(fakePicker(t, "exit 3"))
	var out bytes.Buffer
	l.Stdout = &out

	if code := l.Run(); code != 1 {
		t.Errorf("expected nonzero delegate to collapse to 1, got %d", code)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunMissingBinary(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "does-not-exist"))
	var out bytes.Buffer
	l.Stdout = &out

	if code := l.Run(); code != 1 {
		t.Errorf("expected 1 for unstartable delegate, got %d", code)
	}
}

func TestRunSilentDelegateSucceeds(t *testing.T) {
	l := New(fakePicker(t, "exit 0"))
	var out bytes.Buffer
	l.Stdout = &out

	if code := l.Run(); code != 0 {
		t.Errorf("expected 0, got %d", code)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output from silent delegate, got %q", out.String())
	}
}
