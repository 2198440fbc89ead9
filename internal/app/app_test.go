package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/popmenu/internal/menu"
)

func TestDemoDefinitionParses(t *testing.T) {
	def, err := LoadDefinition("")
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	if len(def.Items) != 5 {
		t.Fatalf("expected 5 top-level entries, got %d", len(def.Items))
	}
	file := def.Items[0]
	if file.Submenu == nil || file.Submenu.Items[2].Submenu == nil {
		t.Fatalf("expected File with a nested Recent submenu, got %+v", file)
	}
	if !def.Items[3].Separator {
		t.Fatalf("expected separator before About")
	}
}

func TestLoadDefinitionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.txt")
	if err := os.WriteFile(path, []byte("&Run\t1\n&Stop\t2\tdisabled\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(def.Items) != 2 || !def.Items[1].Disabled {
		t.Fatalf("unexpected definition %+v", def)
	}
	if _, err := LoadDefinition(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWriteListing(t *testing.T) {
	def := menu.Definition{Items: []menu.DefinitionItem{
		{Text: "&File", Submenu: &menu.Definition{Items: []menu.DefinitionItem{
			{ID: 101, Text: "&Open"},
			{Separator: true},
			{ID: 110, Text: "One", Radio: true, Checked: true},
		}}},
		{ID: 7, Text: "&Help", Disabled: true},
	}}
	var b strings.Builder
	if err := WriteListing(&b, def); err != nil {
		t.Fatalf("listing: %v", err)
	}
	want := []string{
		"LABEL    ID  STATE",
		"File         submenu",
		"  Open  101",
		"  ────       separator",
		"  One   110  checked,radio",
		"Help      7  disabled",
	}
	got := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestConfigServesAsSettings(t *testing.T) {
	var settings menu.Settings = Config{NoAnimations: true}
	if !settings.AnimationsDisabled() {
		t.Fatalf("expected animations disabled")
	}
}
