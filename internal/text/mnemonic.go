package text

import (
	"strings"
	"unicode"
)

// Label is an item label split into what is drawn and its access key.
type Label struct {
	Display string
	// Access is the marked rune, or zero when the label has none.
	Access rune
	// Index is the rune offset of Access within Display, or -1.
	Index int
}

// ParseLabel strips accelerator markers from label. "&x" marks x as the access
// key (the first marker wins) and "&&" stands for a literal ampersand.
func ParseLabel(label string) Label {
	out := Label{Index: -1}
	if !strings.ContainsRune(label, '&') {
		out.Display = label
		return out
	}
	var b strings.Builder
	runes := []rune(label)
	pos := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '&' && i+1 < len(runes) {
			next := runes[i+1]
			i++
			if next != '&' && out.Index < 0 {
				out.Access = next
				out.Index = pos
			}
			b.WriteRune(next)
			pos++
			continue
		}
		b.WriteRune(r)
		pos++
	}
	out.Display = b.String()
	return out
}

// HasAccess reports whether label marks r as an access key, ignoring case.
// Every marker counts, not only the first.
func HasAccess(label string, r rune) bool {
	if r == 0 || r == '&' {
		return false
	}
	runes := []rune(label)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != '&' {
			continue
		}
		next := runes[i+1]
		if next == '&' {
			i++
			continue
		}
		if unicode.ToLower(next) == unicode.ToLower(r) {
			return true
		}
	}
	return false
}
