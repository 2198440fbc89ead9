package menudef

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sample = "# demo\n" +
	"&File\n" +
	"\t&Open\t101\n" +
	"\t&Recent\n" +
	"\t\tone.txt\t110\tradio,checked\n" +
	"\t\ttwo.txt\t111\tradio\n" +
	"\t-\n" +
	"\tE&xit\t102\n" +
	"\n" +
	"&Help\t103\tdisabled\n"

func TestParseNestedDefinition(t *testing.T) {
	def, err := ParseString(sample)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(def.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(def.Items))
	}
	file := def.Items[0]
	if file.Text != "&File" || file.Submenu == nil {
		t.Fatalf("expected File with a submenu, got %+v", file)
	}
	if n := len(file.Submenu.Items); n != 4 {
		t.Fatalf("expected 4 entries under File, got %d", n)
	}
	recent := file.Submenu.Items[1]
	if recent.Submenu == nil || len(recent.Submenu.Items) != 2 {
		t.Fatalf("expected Recent with two entries, got %+v", recent)
	}
	one := recent.Submenu.Items[0]
	if one.ID != 110 || !one.Radio || !one.Checked {
		t.Fatalf("expected checked radio 110, got %+v", one)
	}
	if !file.Submenu.Items[2].Separator {
		t.Fatalf("expected separator at index 2")
	}
	if exit := file.Submenu.Items[3]; exit.ID != 102 || exit.Submenu != nil {
		t.Fatalf("expected leaf Exit 102, got %+v", exit)
	}
	if help := def.Items[1]; help.ID != 103 || !help.Disabled {
		t.Fatalf("expected disabled Help 103, got %+v", help)
	}
}

func TestParseErrorsCarryLine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
		want  error
	}{
		{"too deep", "A\t1\n\t\tB\t2\n", 2, ErrIndent},
		{"under separator", "-\n\tB\t2\n", 2, ErrIndent},
		{"nothing to nest under", "\tB\t2\n", 1, ErrIndent},
		{"bad id", "A\tx\n", 1, ErrSyntax},
		{"bad flag", "A\t1\tbold\n", 1, ErrSyntax},
		{"too many fields", "A\t1\tradio\textra\n", 1, ErrSyntax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.input)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if perr.Line != tc.line {
				t.Fatalf("expected line %d, got %d", tc.line, perr.Line)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseDedentClosesSubmenus(t *testing.T) {
	def, err := ParseString("A\n\tB\n\t\tC\t3\nD\t4\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(def.Items) != 2 || def.Items[1].ID != 4 {
		t.Fatalf("expected D back at the top level, got %+v", def.Items)
	}
	if c := def.Items[0].Submenu.Items[0].Submenu.Items[0]; c.ID != 3 {
		t.Fatalf("expected C three levels down, got %+v", c)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.txt")
	if err := os.WriteFile(path, []byte("Only\t7\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	def, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(def.Items) != 1 || def.Items[0].Text != "Only" || def.Items[0].ID != 7 {
		t.Fatalf("unexpected definition %+v", def)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
