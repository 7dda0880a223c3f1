// Package windowlist parses the window sharing list the portal hands down in
// the environment and resolves window addresses to portal handle IDs.
//
// The list is a flat sequence of 4-field records, each field terminated by
// its own sentinel marker:
//
//	<handle_id>[HC>]<class>[HT>]<title>[HE>]<window_addr>[HA>]...
package windowlist

import (
	"os"
	"strconv"
	"strings"
)

// EnvVar is the environment variable carrying the window sharing list.
const EnvVar = "XDPH_WINDOW_SHARING_LIST"

// Field sentinel markers, in record order.
const (
	markHandle = "[HC>]"
	markClass  = "[HT>]"
	markTitle  = "[HE>]"
	markAddr   = "[HA>]"
)

// Entry is one window record from the sharing list. Addr is the join key
// used to resolve a caller-provided window address to the portal's HandleID.
type Entry struct {
	HandleID uint64
	Class    string
	Title    string
	Addr     uint64
}

// Parse decodes a sharing list string. Malformed or truncated trailing data
// is dropped silently; non-numeric id/address text yields zero rather than
// failing the parse.
func Parse(s string) []Entry {
	var entries []Entry
	remaining := s

	for remaining != "" {
		handleStr, rest, ok := cutField(remaining, markHandle)
		if !ok {
			break
		}
		class, rest, ok := cutField(rest, markClass)
		if !ok {
			break
		}
		title, rest, ok := cutField(rest, markTitle)
		if !ok {
			break
		}
		addrStr, rest, ok := cutField(rest, markAddr)
		if !ok {
			break
		}
		remaining = rest

		handleID, _ := strconv.ParseUint(handleStr, 10, 64)
		addr, _ := strconv.ParseUint(addrStr, 10, 64)
		entries = append(entries, Entry{
			HandleID: handleID,
			Class:    class,
			Title:    title,
			Addr:     addr,
		})
	}

	return entries
}

// FromEnv parses the sharing list from the environment.
func FromEnv() []Entry {
	return Parse(os.Getenv(EnvVar))
}

// Resolve returns the portal handle ID for a window address. Exact match,
// first match wins; absence is not an error.
func Resolve(entries []Entry, addr uint64) (uint64, bool) {
	for _, e := range entries {
		if e.Addr == addr {
			return e.HandleID, true
		}
	}
	return 0, false
}

// ParseAddr parses a window address in decimal or 0x-prefixed hexadecimal.
// Unparseable input yields zero.
func ParseAddr(s string) uint64 {
	if hexDigits, ok := strings.CutPrefix(s, "0x"); ok {
		addr, _ := strconv.ParseUint(hexDigits, 16, 64)
		return addr
	}
	addr, _ := strconv.ParseUint(s, 10, 64)
	return addr
}

func cutField(s, mark string) (field, rest string, ok bool) {
	i := strings.Index(s, mark)
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+len(mark):], true
}
