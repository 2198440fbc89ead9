package menu

import (
	"image"

	"github.com/atomicstack/popmenu/internal/text"
	"github.com/atomicstack/popmenu/internal/theme"
)

// metricsSource returns the metrics for layout. Before the first window exists
// the registry fallback supplies them.
func (m *Menu) metricsSource() theme.Renderer {
	if m.renderer != nil {
		return m.renderer
	}
	return m.reg.fallback
}

// Layout measures every item and stacks them top to bottom. It returns the
// content size, which excludes the frame.
func (m *Menu) Layout() image.Point {
	m.metrics = m.metricsSource().Metrics()
	mt := m.metrics
	measure := m.reg.measurer

	width, y := 0, 0
	for _, it := range m.items {
		var h int
		if it.separator {
			h = mt.SeparatorHeight
		} else {
			size := measure.Measure(m.font, text.ParseLabel(it.text).Display)
			w := mt.Check.X + size.X + 2*mt.ItemMargin + mt.RightSpace
			if w > width {
				width = w
			}
			h = size.Y + 2*mt.ItemMargin
			if floor := mt.Check.Y + 2*mt.ItemMargin; h < floor {
				h = floor
			}
		}
		it.bounds = image.Rect(0, y, 0, y+h)
		y += h
	}
	for _, it := range m.items {
		it.bounds.Max.X = width
	}
	m.content = image.Pt(width, y)
	return m.content
}

// ContentSize reports the item area computed by the last layout.
func (m *Menu) ContentSize() image.Point { return m.content }

// WindowSize lays m out and returns the size its window will have.
func (m *Menu) WindowSize() image.Point {
	m.Layout()
	return m.windowSize()
}

// windowSize is the content plus the theme frame.
func (m *Menu) windowSize() image.Point {
	return m.content.Add(m.metrics.Frame.Size())
}

// clientOrigin is the screen position of the item area.
func (m *Menu) clientOrigin() image.Point {
	if m.window == nil {
		return image.Point{}
	}
	return m.window.Bounds().Min.Add(m.metrics.Frame.Offset())
}

// windowRect converts an item rectangle to window coordinates.
func (m *Menu) windowRect(r image.Rectangle) image.Rectangle {
	return r.Add(m.metrics.Frame.Offset())
}

// screenRect converts an item rectangle to screen coordinates.
func (m *Menu) screenRect(r image.Rectangle) image.Rectangle {
	return r.Add(m.clientOrigin())
}
