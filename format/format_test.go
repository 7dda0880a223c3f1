package format

import (
	"testing"

	picker "github.com/omnirec/picker"
	"github.com/omnirec/picker/windowlist"
)

func TestMonitor(t *testing.T) {
	if got := Monitor("DP-1"); got != "[SELECTION]/screen:DP-1" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRegion(t *testing.T) {
	got := Region("DP-1", picker.Geometry{X: 10, Y: 20, Width: 800, Height: 600})
	if got != "[SELECTION]/region:DP-1@10,20,800,600" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRegionNegativeOrigin(t *testing.T) {
	got := Region("DP-2", picker.Geometry{X: -1920, Y: -5, Width: 640, Height: 480})
	if got != "[SELECTION]/region:DP-2@-1920,-5,640,480" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestWindowResolved(t *testing.T) {
	windows := []windowlist.Entry{{HandleID: 7, Addr: 0x1234}}
	if got := Window("0x1234", windows); got != "[SELECTION]/window:7" {
		t.Errorf("expected resolved handle, got %q", got)
	}
}

func TestWindowResolvedDecimalID(t *testing.T) {
	windows := []windowlist.Entry{{HandleID: 7, Addr: 4660}}
	if got := Window("4660", windows); got != "[SELECTION]/window:7" {
		t.Errorf("expected resolved handle, got %q", got)
	}
}

func TestWindowUnresolvedUsesRawAddress(t *testing.T) {
	if got := Window("99999", nil); got != "[SELECTION]/window:99999" {
		t.Errorf("expected raw address, got %q", got)
	}
}

func TestWindowUnresolvedHexNormalizedToDecimal(t *testing.T) {
	if got := Window("0xff", nil); got != "[SELECTION]/window:255" {
		t.Errorf("expected decimal form of address, got %q", got)
	}
}
