package menu

import (
	"image"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/logging/events"
)

// handle delivers an event addressed to this node's window. Input is ignored
// once a commit is animating so the result cannot change.
func (m *Menu) handle(ev host.Event) {
	if (ev.IsPointer() || ev.IsKeyboard()) && m.Root().delayed {
		return
	}
	switch ev.Kind {
	case host.EventPaint:
		m.paint(ev.Rect)
	case host.EventTimer:
		m.onTimer(ev.Timer)
	case host.EventClose:
		m.onClose()
	case host.EventPointerMove:
		m.onPointerMove(m.toClient(ev.Point))
	case host.EventButtonDown:
		m.onButtonDown(m.toClient(ev.Point), ev.Double)
	case host.EventButtonUp:
		m.onButtonUp(m.toClient(ev.Point))
	case host.EventKeyDown:
		m.onKey(ev.Key)
	case host.EventChar:
		m.onChar(ev.Rune)
	}
}

func (m *Menu) toClient(screen image.Point) image.Point {
	return screen.Sub(m.clientOrigin())
}

func (m *Menu) onPointerMove(p image.Point) {
	m.keyboard = false
	m.SetSelection(m.HitTest(p))
}

func (m *Menu) onButtonDown(p image.Point, double bool) {
	if double {
		return
	}
	i := m.HitTest(p)
	it := m.itemAt(i)
	if it == nil || !it.selectable() {
		return
	}
	m.SetSelection(i)
	if it.submenu != nil {
		m.openSubmenu(i, false)
	}
}

func (m *Menu) onButtonUp(p image.Point) {
	i := m.HitTest(p)
	if i < 0 {
		return
	}
	m.SetSelection(i)
	it := m.items[i]
	if it.separator || it.submenu != nil {
		return
	}

	id := m.idFromIndex(i)
	root := m.Root()
	delay := !m.reg.animationsDisabled()
	if delay && m.window != nil {
		region := m.windowRect(it.bounds)
		delay = m.window.SetRegion(&region)
	} else {
		delay = false
	}
	events.Menu.Commit(id, delay)
	if delay {
		root.HideTreeDelay(id, m.window.ID())
		return
	}
	root.HideTree(id)
}

// openSubmenu tracks the submenu of item i next to it.
func (m *Menu) openSubmenu(i int, keyboard bool) {
	it := m.itemAt(i)
	if it == nil || it.submenu == nil || m.window == nil {
		return
	}
	exclude := m.screenRect(it.bounds)
	anchor := image.Pt(exclude.Max.X, exclude.Min.Y)
	events.Menu.Open(m.depth(), i, keyboard)
	it.submenu.TrackPopup(m.notify, anchor, keyboard, &exclude)
}

func (m *Menu) onReturn() {
	it := m.itemAt(m.selection)
	if it == nil || !it.selectable() {
		return
	}
	if it.submenu != nil {
		m.openSubmenu(m.selection, true)
		return
	}
	id := m.idFromIndex(m.selection)
	events.Menu.Commit(id, false)
	m.Root().HideTree(id)
}

func (m *Menu) onEscape() {
	events.Menu.Dismiss(events.ReasonEscape)
	root := m.Root()
	root.HideTree(m.result)
}

// onLeft pops back to the parent. The window is only hidden so reopening is
// cheap. On the root this hides the menu and tracking ends with nothing
// chosen.
func (m *Menu) onLeft() {
	m.hideWindow()
	if m.parent != nil && m.parent.openChild == m.parentIndex {
		m.parent.openChild = -1
	}
	events.Menu.Pop(m.depth())
	if active := m.reg.Active(); active != nil {
		m.reg.setActive(active.parent)
	}
}

func (m *Menu) onRight() {
	it := m.itemAt(m.selection)
	if it == nil || !it.selectable() || it.submenu == nil {
		return
	}
	m.openSubmenu(m.selection, true)
}

func (m *Menu) onKey(k host.Key) {
	m.keyboard = true
	if k != host.KeyBackspace {
		m.resetTypeAhead()
	}
	switch k {
	case host.KeyEscape:
		m.onEscape()
	case host.KeyEnter:
		m.onReturn()
	case host.KeyLeft:
		m.onLeft()
	case host.KeyRight:
		m.onRight()
	case host.KeyUp:
		m.moveSelection(false)
	case host.KeyDown, host.KeyTab:
		m.moveSelection(true)
	case host.KeyHome:
		m.SetSelection(m.NextSelectable(-1, true))
	case host.KeyEnd:
		m.SetSelection(m.NextSelectable(-1, false))
	case host.KeyBackspace:
		m.backspaceTypeAhead()
	}
}

// moveSelection steps the highlight. With nothing selectable the selection
// stays where it is.
func (m *Menu) moveSelection(forward bool) {
	if next := m.NextSelectable(m.selection, forward); next >= 0 {
		m.SetSelection(next)
	}
}

// onChar handles plain and Alt characters alike: an access character
// selects and activates its item, anything else feeds type-ahead.
func (m *Menu) onChar(r rune) {
	m.keyboard = true
	if i := m.FindItemByAccessChar(r); i >= 0 {
		m.resetTypeAhead()
		m.SetSelection(i)
		m.onReturn()
		return
	}
	m.typeAhead(r)
}

func (m *Menu) backspaceTypeAhead() {
	runes := []rune(m.typed)
	if len(runes) == 0 {
		return
	}
	m.typed = ""
	for _, r := range runes[:len(runes)-1] {
		m.typeAhead(r)
	}
}
