package text

import (
	"image"

	"github.com/charmbracelet/x/ansi"
)

// CellMeasurer measures in terminal cells. Every line is one cell tall and the
// font is ignored.
type CellMeasurer struct{}

func (CellMeasurer) Measure(_ *Font, s string) image.Point {
	return image.Pt(ansi.StringWidth(s), 1)
}
