// Package menudef reads menu definitions from a small tab-indented text
// format.
//
// Each non-blank line is one entry. Leading tabs give the depth; an entry
// followed by deeper lines owns a submenu made of them.
//
//	&File	0
//		&Open	101
//		&Recent	0
//			one.txt	110	radio,checked
//			two.txt	111	radio
//		-
//		E&xit	102
//	&Help	103	disabled
//
// An entry is `label[<TAB>id[<TAB>flags]]`, flags being a comma-separated
// subset of disabled, checked and radio. A line holding only `-` is a
// separator and lines starting with `#` are comments.
package menudef

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/popmenu/internal/menu"
)

var (
	// ErrIndent reports a line nested deeper than its predecessor allows.
	ErrIndent = errors.New("menudef: bad indentation")
	// ErrSyntax reports a malformed entry.
	ErrSyntax = errors.New("menudef: syntax error")
)

// Error ties a parse failure to its line.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads a definition from path. The path "-" reads standard input.
func Load(path string) (menu.Definition, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return menu.Definition{}, fmt.Errorf("open menu definition: %w", err)
	}
	defer f.Close()
	def, err := Parse(f)
	if err != nil {
		return menu.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (menu.Definition, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a definition from r.
func Parse(r io.Reader) (menu.Definition, error) {
	root := &menu.Definition{}
	stack := []*menu.Definition{root}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimRight(scanner.Text(), "\r")
		body := strings.TrimLeft(raw, "\t")
		depth := len(raw) - len(body)
		if strings.TrimSpace(body) == "" || strings.HasPrefix(body, "#") {
			continue
		}

		switch {
		case depth > len(stack):
			return menu.Definition{}, &Error{Line: line, Err: ErrIndent}
		case depth == len(stack):
			parent := stack[depth-1]
			n := len(parent.Items)
			if n == 0 || parent.Items[n-1].Separator {
				return menu.Definition{}, &Error{Line: line, Err: ErrIndent}
			}
			sub := &menu.Definition{}
			parent.Items[n-1].Submenu = sub
			stack = append(stack, sub)
		default:
			stack = stack[:depth+1]
		}

		entry, err := parseEntry(body)
		if err != nil {
			return menu.Definition{}, &Error{Line: line, Err: err}
		}
		target := stack[depth]
		target.Items = append(target.Items, entry)
	}
	if err := scanner.Err(); err != nil {
		return menu.Definition{}, fmt.Errorf("read menu definition: %w", err)
	}
	return *root, nil
}

func parseEntry(body string) (menu.DefinitionItem, error) {
	if strings.TrimSpace(body) == "-" {
		return menu.DefinitionItem{Separator: true}, nil
	}
	fields := strings.Split(body, "\t")
	if len(fields) > 3 {
		return menu.DefinitionItem{}, fmt.Errorf("%w: too many fields", ErrSyntax)
	}
	item := menu.DefinitionItem{Text: fields[0]}
	if item.Text == "" {
		return menu.DefinitionItem{}, fmt.Errorf("%w: empty label", ErrSyntax)
	}
	if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
		id, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || id < 0 {
			return menu.DefinitionItem{}, fmt.Errorf("%w: bad id %q", ErrSyntax, fields[1])
		}
		item.ID = id
	}
	if len(fields) > 2 {
		for _, flag := range strings.Split(fields[2], ",") {
			switch strings.ToLower(strings.TrimSpace(flag)) {
			case "":
			case "disabled":
				item.Disabled = true
			case "checked":
				item.Checked = true
			case "radio":
				item.Radio = true
			default:
				return menu.DefinitionItem{}, fmt.Errorf("%w: unknown flag %q", ErrSyntax, flag)
			}
		}
	}
	return item, nil
}
