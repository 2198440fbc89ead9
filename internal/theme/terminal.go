package theme

import (
	"image"

	"github.com/atomicstack/popmenu/internal/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	checkmarkRune = '✓'
	bulletRune    = '•'
	arrowRune     = '▸'
)

// Terminal renders into *Grid surfaces. Sizes are in cells.
type Terminal struct {
	border lipgloss.Border
}

// NewTerminal returns a renderer that frames menus with rounded borders.
func NewTerminal() *Terminal {
	return &Terminal{border: lipgloss.RoundedBorder()}
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Metrics() Metrics {
	return Metrics{
		ItemMargin:      0,
		RightSpace:      2,
		SeparatorWidth:  0,
		SeparatorHeight: 1,
		Check:           image.Pt(2, 1),
		Frame:           Margins{Left: 1, Top: 1, Right: 1, Bottom: 1},
	}
}

func (t *Terminal) ContentMargins(part Part, _ State) Margins {
	if part == PartBackground {
		return t.Metrics().Frame
	}
	return Margins{}
}

func itemStyle(state State) (StyleID, bool) {
	switch state {
	case StateNormal:
		return StyleItem, true
	case StateHot:
		return StyleItemHot, true
	case StateDisabled:
		return StyleItemDisabled, true
	case StateDisabledHot:
		return StyleItemDisabledHot, true
	}
	return StyleNone, false
}

func (t *Terminal) DrawBackground(c Canvas, part Part, state State, r image.Rectangle) error {
	g, ok := c.(*Grid)
	if !ok {
		return ErrUnsupportedCanvas
	}
	switch part {
	case PartBackground:
		g.Fill(r, Cell{Rune: ' ', Style: StyleItem})
	case PartBorder:
		t.drawBorder(g, r)
	case PartItem:
		style, ok := itemStyle(state)
		if !ok {
			return ErrUnsupportedState
		}
		g.Fill(r, Cell{Rune: ' ', Style: style})
	case PartSeparator:
		g.Fill(r, Cell{Rune: ' ', Style: StyleSeparator})
		y := r.Min.Y + r.Dy()/2
		for x := r.Min.X; x < r.Max.X; x++ {
			g.SetRune(x, y, []rune(t.border.Top)[0])
		}
	case PartCheck:
		glyph := checkmarkRune
		switch state {
		case StateBullet, StateBulletDisabled:
			glyph = bulletRune
		case StateCheckmark, StateCheckmarkDisabled:
		default:
			return ErrUnsupportedState
		}
		g.SetRune(r.Min.X, r.Min.Y+r.Dy()/2, glyph)
	case PartSubmenu:
		g.SetRune(r.Min.X+(r.Dx()-1)/2, r.Min.Y+r.Dy()/2, arrowRune)
	}
	return nil
}

func (t *Terminal) drawBorder(g *Grid, r image.Rectangle) {
	if r.Dx() < 2 || r.Dy() < 2 {
		return
	}
	first := func(s string) rune { return []rune(s)[0] }
	cell := func(ch string) Cell { return Cell{Rune: first(ch), Style: StyleFrame} }
	for x := r.Min.X + 1; x < r.Max.X-1; x++ {
		g.Set(x, r.Min.Y, cell(t.border.Top))
		g.Set(x, r.Max.Y-1, cell(t.border.Bottom))
	}
	for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
		g.Set(r.Min.X, y, cell(t.border.Left))
		g.Set(r.Max.X-1, y, cell(t.border.Right))
	}
	g.Set(r.Min.X, r.Min.Y, cell(t.border.TopLeft))
	g.Set(r.Max.X-1, r.Min.Y, cell(t.border.TopRight))
	g.Set(r.Min.X, r.Max.Y-1, cell(t.border.BottomLeft))
	g.Set(r.Max.X-1, r.Max.Y-1, cell(t.border.BottomRight))
}

func (t *Terminal) DrawText(c Canvas, _ Part, state State, r image.Rectangle, label string, _ *text.Font) error {
	g, ok := c.(*Grid)
	if !ok {
		return ErrUnsupportedCanvas
	}
	style, ok := itemStyle(state)
	if !ok {
		return ErrUnsupportedState
	}
	lbl := text.ParseLabel(label)
	x := r.Min.X
	y := r.Min.Y + (r.Dy()-1)/2
	for i, ru := range []rune(lbl.Display) {
		w := ansi.StringWidth(string(ru))
		if x+w > r.Max.X {
			break
		}
		g.Set(x, y, Cell{Rune: ru, Style: style, Underline: i == lbl.Index})
		if w == 2 {
			g.Set(x+1, y, Cell{Rune: 0, Style: style})
		}
		x += w
	}
	return nil
}
