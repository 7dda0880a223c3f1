package windowlist

import (
	"testing"
)

const sampleList = "7[HC>]firefox[HT>]Mozilla Firefox[HE>]4660[HA>]" +
	"12[HC>]kitty[HT>]~/src — kitty[HE>]93825[HA>]"

func TestParseTwoEntries(t *testing.T) {
	entries := Parse(sampleList)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.HandleID != 7 || first.Class != "firefox" || first.Title != "Mozilla Firefox" || first.Addr != 4660 {
		t.Errorf("unexpected first entry: %+v", first)
	}

	second := entries[1]
	if second.HandleID != 12 || second.Addr != 93825 {
		t.Errorf("unexpected second entry: %+v", second)
	}
}

func TestParseEmpty(t *testing.T) {
	if entries := Parse(""); len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestParseTruncatedTailDropped(t *testing.T) {
	entries := Parse(sampleList + "99[HC>]half-a-record")
	if len(entries) != 2 {
		t.Fatalf("expected truncated tail to be dropped, got %d entries", len(entries))
	}
}

func TestParseNonNumericFieldsYieldZero(t *testing.T) {
	entries := Parse("abc[HC>]cls[HT>]title[HE>]xyz[HA>]")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].HandleID != 0 || entries[0].Addr != 0 {
		t.Errorf("expected zero ids, got %+v", entries[0])
	}
}

func TestParseSentinelsInTitle(t *testing.T) {
	// A title containing a later sentinel corrupts that record; the parse
	// must still not panic and drops whatever cannot be framed.
	entries := Parse("1[HC>]cls[HT>]weird[HA>]title[HE>]2[HA>]")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Title != "weird[HA>]title" {
		t.Errorf("unexpected title: %q", entries[0].Title)
	}
}

func TestResolve(t *testing.T) {
	entries := Parse(sampleList)

	handle, ok := Resolve(entries, 4660)
	if !ok || handle != 7 {
		t.Errorf("expected handle 7, got %d (ok=%v)", handle, ok)
	}

	if _, ok := Resolve(entries, 99999); ok {
		t.Error("expected no match for unknown address")
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	entries := []Entry{
		{HandleID: 1, Addr: 42},
		{HandleID: 2, Addr: 42},
	}
	handle, ok := Resolve(entries, 42)
	if !ok || handle != 1 {
		t.Errorf("expected first match (handle 1), got %d", handle)
	}
}

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0x1234", 0x1234},
		{"4660", 4660},
		{"0x55df589f63d0", 0x55df589f63d0},
		{"garbage", 0},
		{"0xzz", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseAddr(tt.in); got != tt.want {
			t.Errorf("ParseAddr(%q) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvVar, sampleList)
	entries := FromEnv()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries from env, got %d", len(entries))
	}
}
