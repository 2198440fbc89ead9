package menu

import (
	"image"

	"github.com/atomicstack/popmenu/internal/logging/events"
	"github.com/atomicstack/popmenu/internal/text"
)

// HitTest returns the first selectable item whose rectangle contains p
// (client coordinates), or -1. Rectangles are half-open so a shared edge
// belongs to the lower item only.
func (m *Menu) HitTest(p image.Point) int {
	for i, it := range m.items {
		if it.selectable() && p.In(it.bounds) {
			return i
		}
	}
	return -1
}

// SetSelection highlights item i, or clears the highlight for -1. Only the
// old and new item rectangles are repainted.
func (m *Menu) SetSelection(i int) {
	if i < -1 || i >= len(m.items) {
		i = -1
	}
	if i == m.selection {
		return
	}
	m.invalidateItem(m.selection)
	m.selection = i
	m.invalidateItem(i)
	events.Menu.Select(m.depth(), i)
}

func (m *Menu) invalidateItem(i int) {
	it := m.itemAt(i)
	if it == nil || m.window == nil {
		return
	}
	m.window.Invalidate(m.windowRect(it.bounds))
}

// NextSelectable walks from cur in the given direction, wrapping around, and
// returns the next item that is neither a separator nor disabled. Passing -1
// starts before the first (or after the last) item. It returns -1 when
// nothing is selectable.
func (m *Menu) NextSelectable(cur int, forward bool) int {
	n := len(m.items)
	if n == 0 {
		return -1
	}
	i := cur
	if i < 0 || i >= n {
		if forward {
			i = -1
		} else {
			i = n
		}
	}
	for step := 0; step < n; step++ {
		if forward {
			i = (i + 1) % n
		} else {
			i = (i - 1 + n) % n
		}
		if m.items[i].selectable() {
			return i
		}
	}
	return -1
}

// FindItemByAccessChar returns the first selectable item whose label marks r
// as its access character (case-insensitive), or -1.
func (m *Menu) FindItemByAccessChar(r rune) int {
	for i, it := range m.items {
		if it.selectable() && text.HasAccess(it.text, r) {
			return i
		}
	}
	return -1
}
