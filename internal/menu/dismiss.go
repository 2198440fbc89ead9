package menu

import (
	"time"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/logging/events"
)

const (
	timerRefresh   host.TimerID = 1
	timerAnimation host.TimerID = 2
)

const (
	// RefreshInterval is how often an open window re-checks the pointer and
	// the foreground window.
	RefreshInterval = 150 * time.Millisecond
	// AnimationDelay is how long a committed item stays visible on its own.
	AnimationDelay = 150 * time.Millisecond
	// PollInterval bounds the wait between liveness checks.
	PollInterval = 80 * time.Millisecond
	// SettleDelay follows closing foreign popups.
	SettleDelay = 50 * time.Millisecond
)

// hideWindow hides the node's own window and stops its refresh timer.
func (m *Menu) hideWindow() {
	if m.window == nil {
		return
	}
	m.window.KillTimer(timerRefresh)
	m.window.Hide()
}

// HideTree hides m and every submenu below it, recording result on each.
// Windows stay alive so the tree can be shown again cheaply.
func (m *Menu) HideTree(result int) {
	m.result = result
	m.hideWindow()
	for _, it := range m.items {
		if it.submenu != nil {
			it.submenu.HideTree(result)
		}
	}
	if m.parent != nil && m.parent.openChild == m.parentIndex {
		m.parent.openChild = -1
	}
	if m.reg.Active() == m {
		m.reg.setActive(m.parent)
	}
}

// HideTreeDelay is HideTree for a committed item: the window owning win keeps
// showing its clipped region until the animation timer fires, everything else
// hides immediately.
func (m *Menu) HideTreeDelay(result int, win host.WindowID) {
	m.result = result
	m.delayed = true
	for _, it := range m.items {
		if it.submenu != nil {
			it.submenu.HideTreeDelay(result, win)
		}
	}
	if m.window != nil && m.window.ID() == win {
		m.window.KillTimer(timerRefresh)
		m.window.SetTimer(timerAnimation, AnimationDelay)
		return
	}
	m.hideWindow()
}

// DestroyTree destroys the windows of m and its submenus. A second call while
// the first is in progress, or after it finished, does nothing.
func (m *Menu) DestroyTree(result int) {
	if m.destroying {
		return
	}
	m.destroying = true
	m.result = result
	for _, it := range m.items {
		if it.submenu != nil {
			it.submenu.DestroyTree(result)
		}
	}
	m.destroyWindow()
	m.done = true
}

// onClose handles a close request from the desktop. Losing any window of the
// tree ends the whole tree.
func (m *Menu) onClose() {
	if m.window == nil {
		return
	}
	m.destroyWindow()
	if root := m.Root(); root != nil {
		root.HideTree(m.result)
		root.DestroyTree(m.result)
	}
}

// destroyWindow releases the native window of this node only.
func (m *Menu) destroyWindow() {
	w := m.window
	if w == nil {
		return
	}
	m.reg.unregister(m)
	w.KillTimer(timerRefresh)
	w.KillTimer(timerAnimation)
	w.Hide()
	w.Destroy()
	m.window = nil
	m.renderer = nil
	events.Host.WindowDestroy(uint64(w.ID()))
	events.Menu.Destroy(m.depth(), m.result)

	if m.parent != nil {
		m.parent.openChild = -1
	}
	if m.reg.Active() == m {
		m.reg.setActive(m.parent)
	}
}

func (m *Menu) onTimer(id host.TimerID) {
	switch id {
	case timerAnimation:
		w := m.window
		if w == nil {
			return
		}
		w.KillTimer(timerAnimation)
		w.Hide()
		m.reg.setActive(nil)
		m.delayed = false
		m.done = true
		w.SetRegion(nil)
	case timerRefresh:
		if m.delayed || m.window == nil {
			return
		}
		if !m.keyboard {
			hit := m.HitTest(m.reg.desktop.CursorPos().Sub(m.clientOrigin()))
			if hit < 0 && m.openChild >= 0 {
				hit = m.openChild
			}
			m.SetSelection(hit)
		}
		fg := m.reg.desktop.ForegroundWindow()
		if fg != host.NoWindow && fg != m.reg.oldForeground {
			root := m.Root()
			if !root.destroying {
				events.Menu.Dismiss(events.ReasonForegroundChanged)
				root.HideTree(root.result)
			}
		}
	}
}

// alive evaluates the liveness predicate for the tree rooted at root. When
// it fails the reason is returned for tracing.
func (r *Registry) alive(root *Menu) (bool, string) {
	d := r.desktop
	switch {
	case root.done:
		return false, events.ReasonDone
	case r.Active() == nil:
		return false, events.ReasonRootHidden
	case d.ActiveWindow() != r.oldActive:
		return false, events.ReasonActiveChanged
	}
	for _, w := range d.Windows() {
		if w.Visible && w.Class == host.ClassStandardPopup {
			return false, events.ReasonStandardPopup
		}
	}
	if d.ButtonsDown() != 0 {
		p := d.CursorPos()
		if !r.inFamily(root, d.WindowAt(p)) && !r.isExempt(p) {
			return false, events.ReasonButtonOutside
		}
	}
	if d.KeyDown(host.KeyEscape) {
		return false, events.ReasonEscapeHeld
	}
	if root.window == nil || (!root.window.Visible() && !root.delayed) {
		return false, events.ReasonRootHidden
	}
	return true, ""
}
