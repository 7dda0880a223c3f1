// Package format renders a selection into the single output line the portal
// reads from the picker's stdout.
package format

import (
	"fmt"
	"strconv"

	picker "github.com/omnirec/picker"
	"github.com/omnirec/picker/windowlist"
)

// Monitor renders a monitor selection.
func Monitor(sourceID string) string {
	return "[SELECTION]/screen:" + sourceID
}

// Window renders a window selection. The source ID is a window address in
// decimal or 0x-prefixed hex; it is resolved against the sharing list, and
// the raw address is used when no entry matches.
func Window(sourceID string, windows []windowlist.Entry) string {
	addr := windowlist.ParseAddr(sourceID)
	if handle, ok := windowlist.Resolve(windows, addr); ok {
		return "[SELECTION]/window:" + strconv.FormatUint(handle, 10)
	}
	return "[SELECTION]/window:" + strconv.FormatUint(addr, 10)
}

// Region renders a region selection as <output>@<x>,<y>,<w>,<h>.
func Region(sourceID string, geom picker.Geometry) string {
	return fmt.Sprintf("[SELECTION]/region:%s@%d,%d,%d,%d",
		sourceID, geom.X, geom.Y, geom.Width, geom.Height)
}
