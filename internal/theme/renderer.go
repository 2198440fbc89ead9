package theme

import (
	"errors"
	"fmt"
	"image"

	"github.com/atomicstack/popmenu/internal/text"
)

// ErrUnsupportedCanvas is returned when a renderer is handed a surface it
// cannot draw on.
var ErrUnsupportedCanvas = errors.New("theme: unsupported canvas")

// ErrUnsupportedState is returned for part/state pairs a renderer does not
// define. Callers retry with StateNormal.
var ErrUnsupportedState = errors.New("theme: unsupported state")

// Canvas is anything with bounds. Renderers type-assert to the concrete
// surface they know how to paint.
type Canvas interface {
	Bounds() image.Rectangle
}

type Part int

const (
	PartBackground Part = iota
	PartBorder
	PartItem
	PartSeparator
	PartCheck
	PartSubmenu
)

type State int

const (
	StateNormal State = iota
	StateHot
	StateDisabled
	StateDisabledHot
	StateCheckmark
	StateCheckmarkDisabled
	StateBullet
	StateBulletDisabled
)

// ItemState maps selection and enablement to an item state.
func ItemState(selected, disabled bool) State {
	switch {
	case selected && disabled:
		return StateDisabledHot
	case selected:
		return StateHot
	case disabled:
		return StateDisabled
	default:
		return StateNormal
	}
}

// CheckState picks the glyph state for a checked item.
func CheckState(radio, disabled bool) State {
	switch {
	case radio && disabled:
		return StateBulletDisabled
	case radio:
		return StateBullet
	case disabled:
		return StateCheckmarkDisabled
	default:
		return StateCheckmark
	}
}

// Margins are insets on each side of a rectangle.
type Margins struct {
	Left, Top, Right, Bottom int
}

// Size is the total extent the margins add.
func (m Margins) Size() image.Point {
	return image.Pt(m.Left+m.Right, m.Top+m.Bottom)
}

// Offset is where the inner rectangle starts relative to the outer one.
func (m Margins) Offset() image.Point {
	return image.Pt(m.Left, m.Top)
}

// Inset shrinks r by the margins.
func (m Margins) Inset(r image.Rectangle) image.Rectangle {
	return image.Rect(r.Min.X+m.Left, r.Min.Y+m.Top, r.Max.X-m.Right, r.Max.Y-m.Bottom)
}

// Metrics are the layout constants of a theme.
type Metrics struct {
	// ItemMargin pads item text on every side.
	ItemMargin int
	// RightSpace is reserved at the right edge of each item for the submenu arrow.
	RightSpace      int
	SeparatorWidth  int
	SeparatorHeight int
	// Check is the size of the check glyph column.
	Check image.Point
	// Frame surrounds the item area inside the window.
	Frame Margins
}

// Renderer draws menu parts. Implementations keep no state between calls
// apart from their palette.
type Renderer interface {
	Name() string
	Metrics() Metrics
	ContentMargins(part Part, state State) Margins
	DrawBackground(c Canvas, part Part, state State, r image.Rectangle) error
	DrawText(c Canvas, part Part, state State, r image.Rectangle, label string, f *text.Font) error
}

// Opener produces a renderer for a newly created menu window.
type Opener func() (Renderer, error)

// Static returns an Opener that always yields r.
func Static(r Renderer) Opener {
	return func() (Renderer, error) {
		if r == nil {
			return nil, fmt.Errorf("theme: no renderer configured")
		}
		return r, nil
	}
}
