package theme

import (
	"image"
	"strings"
)

// Cell is one terminal cell. A zero Rune marks the right half of a wide rune.
type Cell struct {
	Rune      rune
	Style     StyleID
	Underline bool
}

// Grid is a rectangular block of cells, the surface of a terminal window.
type Grid struct {
	bounds image.Rectangle
	cells  []Cell
}

// NewGrid returns a w by h grid of blank cells.
func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Resize(w, h)
	return g
}

func (g *Grid) Bounds() image.Rectangle { return g.bounds }

// Resize changes the grid size, discarding its contents.
func (g *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.bounds = image.Rect(0, 0, w, h)
	g.cells = make([]Cell, w*h)
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' '}
	}
}

// At returns the cell at (x, y); cells outside the grid read as blank.
func (g *Grid) At(x, y int) Cell {
	if !image.Pt(x, y).In(g.bounds) {
		return Cell{Rune: ' '}
	}
	return g.cells[y*g.bounds.Dx()+x]
}

// Set writes a cell; writes outside the grid are dropped.
func (g *Grid) Set(x, y int, c Cell) {
	if !image.Pt(x, y).In(g.bounds) {
		return
	}
	g.cells[y*g.bounds.Dx()+x] = c
}

// SetRune replaces the rune at (x, y) keeping the cell's style.
func (g *Grid) SetRune(x, y int, r rune) {
	c := g.At(x, y)
	c.Rune = r
	g.Set(x, y, c)
}

// Fill writes c into every cell of r.
func (g *Grid) Fill(r image.Rectangle, c Cell) {
	r = r.Intersect(g.bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.cells[y*g.bounds.Dx()+x] = c
		}
	}
}

// Clone copies the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{bounds: g.bounds, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Line returns row y as plain text.
func (g *Grid) Line(y int) string {
	var b strings.Builder
	for x := 0; x < g.bounds.Dx(); x++ {
		if r := g.At(x, y).Rune; r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String renders the grid as plain text, one line per row.
func (g *Grid) String() string {
	lines := make([]string, g.bounds.Dy())
	for y := range lines {
		lines[y] = g.Line(y)
	}
	return strings.Join(lines, "\n")
}
