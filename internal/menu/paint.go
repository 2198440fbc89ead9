package menu

import (
	"errors"
	"fmt"
	"image"

	"github.com/atomicstack/popmenu/internal/logging"
	"github.com/atomicstack/popmenu/internal/theme"
)

// paint redraws the parts of the window that intersect dirty (window
// coordinates).
func (m *Menu) paint(dirty image.Rectangle) {
	if m.window == nil || m.renderer == nil {
		return
	}
	canvas := m.window.Surface()
	full := canvas.Bounds()
	dirty = dirty.Intersect(full)
	if dirty.Empty() {
		return
	}
	inner := m.metrics.Frame.Inset(full)
	if !dirty.In(inner) {
		m.drawPart(canvas, theme.PartBorder, theme.StateNormal, full)
	}
	if bg := dirty.Intersect(inner); !bg.Empty() {
		m.drawPart(canvas, theme.PartBackground, theme.StateNormal, bg)
	}
	for i, it := range m.items {
		rect := m.windowRect(it.bounds)
		if !rect.Overlaps(dirty) {
			continue
		}
		m.drawItem(canvas, i, it, rect)
	}
}

func (m *Menu) drawItem(canvas theme.Canvas, i int, it *item, rect image.Rectangle) {
	mt := m.metrics
	if it.separator {
		m.drawPart(canvas, theme.PartSeparator, theme.StateNormal, rect)
		return
	}
	state := theme.ItemState(i == m.selection, it.disabled)
	m.drawPart(canvas, theme.PartItem, state, rect)
	rect = m.renderer.ContentMargins(theme.PartItem, state).Inset(rect)

	if it.checked {
		check := rect
		check.Max.X = check.Min.X + mt.Check.X + 2*mt.SeparatorWidth
		m.drawPart(canvas, theme.PartCheck, theme.CheckState(it.radio, it.disabled), check)
	}
	if it.submenu != nil {
		arrow := rect
		arrow.Min.X = arrow.Max.X - mt.RightSpace + 2*mt.SeparatorWidth
		m.drawPart(canvas, theme.PartSubmenu, state, arrow)
	}
	if it.text != "" {
		label := rect
		label.Min.X += mt.Check.X + mt.SeparatorWidth
		label = label.Inset(mt.ItemMargin)
		err := m.renderer.DrawText(canvas, theme.PartItem, state, label, it.text, m.font)
		if errors.Is(err, theme.ErrUnsupportedState) && state != theme.StateNormal {
			err = m.renderer.DrawText(canvas, theme.PartItem, theme.StateNormal, label, it.text, m.font)
		}
		m.drawFailed(err)
	}
}

// drawPart draws one background part, retrying with the normal state when
// the renderer has nothing for the requested one.
func (m *Menu) drawPart(canvas theme.Canvas, part theme.Part, state theme.State, r image.Rectangle) {
	err := m.renderer.DrawBackground(canvas, part, state, r)
	if errors.Is(err, theme.ErrUnsupportedState) && state != theme.StateNormal {
		err = m.renderer.DrawBackground(canvas, part, theme.StateNormal, r)
	}
	m.drawFailed(err)
}

func (m *Menu) drawFailed(err error) {
	if err == nil || errors.Is(err, theme.ErrUnsupportedState) {
		return
	}
	logging.Error(fmt.Errorf("paint %s menu: %w", m.renderer.Name(), err))
}
