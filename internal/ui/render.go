package ui

import (
	"image"
	"strings"

	"github.com/atomicstack/popmenu/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

var styles = theme.Default()

// Render composites visible menu windows over the owner screen and renders
// the result with Lip Gloss styles.
func (d *Desktop) Render() string {
	d.mu.Lock()
	screen := d.owner.grid.Clone()
	for _, id := range d.order {
		w := d.windows[id]
		if !w.visible || w.shown == nil {
			continue
		}
		blit(screen, w.shown, w.bounds.Min, w.region)
	}
	d.mu.Unlock()
	return renderGrid(screen, styles)
}

func blit(dst, src *theme.Grid, at image.Point, region *image.Rectangle) {
	r := src.Bounds()
	if region != nil {
		r = r.Intersect(*region)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(at.X+x, at.Y+y, src.At(x, y))
		}
	}
}

type run struct {
	style     theme.StyleID
	underline bool
}

// renderGrid turns cells into styled lines. A continuation cell (zero rune)
// whose wide rune was overdrawn renders as a blank.
func renderGrid(g *theme.Grid, s *theme.Styles) string {
	b := g.Bounds()
	lines := make([]string, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		var (
			line  strings.Builder
			chunk strings.Builder
			cur   run
			wide  bool
		)
		flush := func() {
			if chunk.Len() == 0 {
				return
			}
			style := *s.For(cur.style)
			if cur.underline {
				style = style.Underline(true)
			}
			line.WriteString(style.Render(chunk.String()))
			chunk.Reset()
		}
		for x := 0; x < b.Dx(); x++ {
			c := g.At(x, y)
			r := c.Rune
			if r == 0 {
				if wide {
					wide = false
					continue
				}
				r = ' '
			}
			next := run{style: c.Style, underline: c.Underline}
			if next != cur {
				flush()
				cur = next
			}
			chunk.WriteRune(r)
			wide = ansi.StringWidth(string(r)) == 2
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// writeText draws s on row y starting at x, clipped to limit cells.
func writeText(g *theme.Grid, x, y, limit int, s string, style theme.StyleID) {
	if limit <= 0 {
		return
	}
	s = ansi.Truncate(s, limit, "…")
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		g.Set(x, y, theme.Cell{Rune: r, Style: style})
		if w == 2 {
			g.Set(x+1, y, theme.Cell{Rune: 0, Style: style})
		}
		x += w
	}
}
