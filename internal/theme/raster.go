package theme

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/atomicstack/popmenu/internal/text"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Palette holds the colours of the raster renderer.
type Palette struct {
	Background   color.Color
	Border       color.Color
	Text         color.Color
	Hot          color.Color
	HotText      color.Color
	DisabledText color.Color
	DisabledHot  color.Color
	Separator    color.Color
}

var DefaultPalette = Palette{
	Background:   color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
	Border:       color.RGBA{0x97, 0x97, 0x97, 0xff},
	Text:         color.RGBA{0x00, 0x00, 0x00, 0xff},
	Hot:          color.RGBA{0x33, 0x99, 0xff, 0xff},
	HotText:      color.RGBA{0xff, 0xff, 0xff, 0xff},
	DisabledText: color.RGBA{0x6d, 0x6d, 0x6d, 0xff},
	DisabledHot:  color.RGBA{0xd9, 0xd9, 0xd9, 0xff},
	Separator:    color.RGBA{0xd7, 0xd7, 0xd7, 0xff},
}

// Raster renders into draw.Image surfaces. Sizes are in pixels.
type Raster struct {
	palette Palette
}

// NewRaster returns a raster renderer using p.
func NewRaster(p Palette) *Raster {
	return &Raster{palette: p}
}

func (r *Raster) Name() string { return "raster" }

// Palette exposes the colours, mostly for tests.
func (r *Raster) Palette() Palette { return r.palette }

func (r *Raster) Metrics() Metrics {
	return Metrics{
		ItemMargin:      8,
		RightSpace:      24,
		SeparatorWidth:  6,
		SeparatorHeight: 6,
		Check:           image.Pt(16, 16),
		Frame:           Margins{Left: 3, Top: 3, Right: 3, Bottom: 3},
	}
}

func (r *Raster) ContentMargins(part Part, _ State) Margins {
	if part == PartBackground {
		return r.Metrics().Frame
	}
	return Margins{}
}

func fill(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) itemColors(state State) (bg, fg color.Color, ok bool) {
	p := r.palette
	switch state {
	case StateNormal:
		return p.Background, p.Text, true
	case StateHot:
		return p.Hot, p.HotText, true
	case StateDisabled:
		return p.Background, p.DisabledText, true
	case StateDisabledHot:
		return p.DisabledHot, p.DisabledText, true
	}
	return nil, nil, false
}

func (r *Raster) DrawBackground(c Canvas, part Part, state State, rect image.Rectangle) error {
	dst, ok := c.(draw.Image)
	if !ok {
		return ErrUnsupportedCanvas
	}
	p := r.palette
	switch part {
	case PartBackground:
		fill(dst, rect, p.Background)
	case PartBorder:
		frame := r.Metrics().Frame
		inner := frame.Inset(rect)
		for _, band := range []image.Rectangle{
			image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, inner.Min.Y),
			image.Rect(rect.Min.X, inner.Max.Y, rect.Max.X, rect.Max.Y),
			image.Rect(rect.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
			image.Rect(inner.Max.X, inner.Min.Y, rect.Max.X, inner.Max.Y),
		} {
			fill(dst, band, p.Background)
		}
		fill(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), p.Border)
		fill(dst, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), p.Border)
		fill(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), p.Border)
		fill(dst, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), p.Border)
	case PartItem:
		bg, _, ok := r.itemColors(state)
		if !ok {
			return ErrUnsupportedState
		}
		fill(dst, rect, bg)
	case PartSeparator:
		fill(dst, rect, p.Background)
		y := rect.Min.Y + rect.Dy()/2
		sw := r.Metrics().SeparatorWidth
		fill(dst, image.Rect(rect.Min.X+sw, y, rect.Max.X-sw, y+1), p.Separator)
	case PartCheck:
		col := p.Text
		switch state {
		case StateCheckmark:
		case StateCheckmarkDisabled, StateBulletDisabled:
			col = p.DisabledText
		case StateBullet:
		default:
			return ErrUnsupportedState
		}
		if state == StateBullet || state == StateBulletDisabled {
			drawBullet(dst, rect, col)
		} else {
			drawCheckmark(dst, rect, col)
		}
	case PartSubmenu:
		_, fg, ok := r.itemColors(state)
		if !ok {
			fg = p.Text
		}
		drawArrow(dst, rect, fg)
	}
	return nil
}

func drawBullet(dst draw.Image, rect image.Rectangle, col color.Color) {
	c := rect.Min.Add(rect.Size().Div(2))
	rad := min(rect.Dx(), rect.Dy()) / 4
	for y := -rad; y <= rad; y++ {
		for x := -rad; x <= rad; x++ {
			if x*x+y*y <= rad*rad {
				dst.Set(c.X+x, c.Y+y, col)
			}
		}
	}
}

func drawCheckmark(dst draw.Image, rect image.Rectangle, col color.Color) {
	size := min(rect.Dx(), rect.Dy())
	if size < 6 {
		return
	}
	origin := rect.Min.Add(image.Pt((rect.Dx()-size)/2, (rect.Dy()-size)/2))
	unit := size / 6
	// short stroke down-right, then long stroke up-right
	for i := 0; i <= 2*unit; i++ {
		x := origin.X + unit + i
		y := origin.Y + 3*unit + i
		dst.Set(x, y, col)
		dst.Set(x, y-1, col)
	}
	for i := 0; i <= 3*unit; i++ {
		x := origin.X + 3*unit + i
		y := origin.Y + 5*unit - i
		dst.Set(x, y, col)
		dst.Set(x, y-1, col)
	}
}

func drawArrow(dst draw.Image, rect image.Rectangle, col color.Color) {
	h := rect.Dy() / 3
	if h < 2 {
		h = 2
	}
	cx := rect.Min.X + (rect.Dx()-h/2)/2
	cy := rect.Min.Y + rect.Dy()/2
	for i := 0; i <= h/2; i++ {
		for y := cy - h/2 + i; y <= cy+h/2-i; y++ {
			dst.Set(cx+i, y, col)
		}
	}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func (r *Raster) DrawText(c Canvas, _ Part, state State, rect image.Rectangle, label string, f *text.Font) error {
	dst, ok := c.(draw.Image)
	if !ok {
		return ErrUnsupportedCanvas
	}
	_, fg, ok := r.itemColors(state)
	if !ok {
		return ErrUnsupportedState
	}
	if si, ok := dst.(subImager); ok {
		if clipped, ok := si.SubImage(rect).(draw.Image); ok {
			dst = clipped
		}
	}
	if f == nil {
		f = text.Default()
	}
	face := f.Face()
	metrics := face.Metrics()
	lbl := text.ParseLabel(label)
	baseline := rect.Min.Y + (rect.Dy()-metrics.Height.Ceil())/2 + metrics.Ascent.Ceil()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(rect.Min.X, baseline),
	}
	d.DrawString(lbl.Display)
	if lbl.Index >= 0 {
		prefix := string([]rune(lbl.Display)[:lbl.Index])
		x0 := rect.Min.X + font.MeasureString(face, prefix).Ceil()
		w := font.MeasureString(face, string(lbl.Access)).Ceil()
		fill(dst, image.Rect(x0, baseline+1, x0+w, baseline+2), fg)
	}
	return nil
}
