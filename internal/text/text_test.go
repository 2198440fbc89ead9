package text

import (
	"errors"
	"image"
	"testing"
)

func TestParseLabel(t *testing.T) {
	cases := []struct {
		in      string
		display string
		access  rune
		index   int
	}{
		{"Exit", "Exit", 0, -1},
		{"E&xit", "Exit", 'x', 1},
		{"&File", "File", 'F', 0},
		{"Save && Quit", "Save & Quit", 0, -1},
		{"Save && &Quit", "Save & Quit", 'Q', 7},
		{"&Open &Recent", "Open Recent", 'O', 0},
		{"trailing&", "trailing&", 0, -1},
	}
	for _, tc := range cases {
		got := ParseLabel(tc.in)
		if got.Display != tc.display || got.Access != tc.access || got.Index != tc.index {
			t.Fatalf("ParseLabel(%q): expected {%q %q %d}, got {%q %q %d}",
				tc.in, tc.display, tc.access, tc.index, got.Display, got.Access, got.Index)
		}
	}
}

func TestHasAccessIgnoresCase(t *testing.T) {
	if !HasAccess("&File", 'f') {
		t.Fatalf("expected lower-case match")
	}
	if !HasAccess("&file", 'F') {
		t.Fatalf("expected upper-case match")
	}
	if HasAccess("File", 'f') {
		t.Fatalf("unmarked label must not match")
	}
	if HasAccess("A && B", 'B') {
		t.Fatalf("escaped ampersand must not mark the next rune")
	}
	if !HasAccess("&Open &Recent", 'r') {
		t.Fatalf("expected later marker to match")
	}
}

func TestParseDescriptor(t *testing.T) {
	desc, err := ParseDescriptor("Bold:24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Name != "bold" || desc.Size != 24 {
		t.Fatalf("expected bold:24, got %s", desc)
	}
	if _, err := ParseDescriptor("comic:12"); !errors.Is(err, ErrUnknownFace) {
		t.Fatalf("expected ErrUnknownFace, got %v", err)
	}
	if _, err := ParseDescriptor("regular:-1"); err == nil {
		t.Fatalf("expected error for negative size")
	}
	if desc, err := ParseDescriptor("mono"); err != nil || desc.Size != 13 {
		t.Fatalf("expected default size, got %v %v", desc, err)
	}
}

func TestOpenKnownFaces(t *testing.T) {
	f, err := Open(Descriptor{Name: "regular", Size: 24})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	small, err := Open(Descriptor{Name: "regular", Size: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m FaceMeasurer
	big := m.Measure(f, "File")
	little := m.Measure(small, "File")
	if big.X <= little.X || big.Y <= little.Y {
		t.Fatalf("expected larger face to measure larger, got %v vs %v", big, little)
	}
	if basic, err := Open(Descriptor{Name: "basic"}); err != nil || basic != Default() {
		t.Fatalf("expected basic to resolve to the default font")
	}
}

func TestFaceMeasurerDefault(t *testing.T) {
	got := FaceMeasurer{}.Measure(nil, "abc")
	if got != image.Pt(21, 13) {
		t.Fatalf("expected 21x13, got %v", got)
	}
}

func TestCellMeasurer(t *testing.T) {
	if got := (CellMeasurer{}).Measure(nil, "héllo"); got != image.Pt(5, 1) {
		t.Fatalf("expected 5x1, got %v", got)
	}
	if got := (CellMeasurer{}).Measure(nil, "日本"); got.X != 4 {
		t.Fatalf("expected wide runes to take two cells, got %v", got)
	}
}
