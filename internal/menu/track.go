package menu

import (
	"fmt"
	"image"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/logging"
	"github.com/atomicstack/popmenu/internal/logging/events"
)

// TrackPopup shows m at anchor and, for a root menu, runs the tracking loop
// until the tree is dismissed or an item is committed. It returns the
// committed id, or 0.
//
// Called on a submenu it shows the submenu, makes it the keyboard target and
// returns 0 at once; the root loop keeps servicing it.
func (m *Menu) TrackPopup(notify host.WindowID, anchor image.Point, keyboard bool, exclude *image.Rectangle) int {
	reg := m.reg
	d := reg.desktop

	if m.parent == nil {
		reg.clear()
		reg.root = m
	}
	reg.setActive(m)
	if n := reg.closeForeignPopups(m.Root()); n > 0 {
		events.Menu.CloseForeign(n)
		d.Sleep(SettleDelay)
	}

	reg.oldActive = d.ActiveWindow()
	reg.oldForeground = d.ForegroundWindow()

	m.initStatus()
	m.notify = notify
	m.keyboard = keyboard

	m.ensureRenderer()
	m.Layout()
	size := m.windowSize()
	monitor, work := d.Monitor(anchor)
	pos := chooseLocation(anchor, size, exclude, monitor, work)
	bounds := image.Rectangle{Min: pos, Max: pos.Add(size)}
	events.Menu.TrackStart(m.depth(), pos.X, pos.Y, keyboard)

	if err := m.ensureWindow(bounds); err != nil {
		logging.Error(fmt.Errorf("track popup: %w", err))
		events.Host.CreateFailed(err)
		reg.setActive(m.parent)
		if m.parent == nil {
			reg.clear()
		}
		return 0
	}

	if p := m.parent; p != nil {
		if p.openChild >= 0 && p.openChild != m.parentIndex {
			if sibling := p.items[p.openChild].submenu; sibling != nil && sibling != m {
				sibling.HideTree(0)
			}
		}
		p.openChild = m.parentIndex
	}

	m.window.Show()
	m.window.SetTimer(timerRefresh, RefreshInterval)
	if m.keyboard {
		m.SetSelection(m.NextSelectable(-1, true))
	}

	if m.parent != nil {
		return 0
	}
	return m.runLoop()
}

func (m *Menu) initStatus() {
	m.done = false
	m.destroying = false
	m.delayed = false
	m.result = 0
	m.openChild = -1
	m.selection = -1
	m.typed = ""
}

// ensureRenderer opens the theme on first use, falling back to the registry
// default when the theme cannot be opened.
func (m *Menu) ensureRenderer() {
	if m.renderer != nil {
		return
	}
	r, err := m.reg.opener()
	if err != nil || r == nil {
		if err != nil {
			logging.Error(fmt.Errorf("open theme: %w", err))
		}
		events.Host.ThemeFallback(err)
		r = m.reg.fallback
	}
	m.renderer = r
}

// ensureWindow creates the window the first time and moves it afterwards.
func (m *Menu) ensureWindow(bounds image.Rectangle) error {
	if m.window != nil {
		m.window.SetBounds(bounds)
		m.window.Invalidate(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		return nil
	}
	w, err := m.reg.desktop.CreateWindow(host.WindowSpec{
		Class:  host.ClassMenu,
		Bounds: bounds,
		Title:  "popmenu",
	})
	if err != nil {
		return err
	}
	m.window = w
	m.reg.register(m)
	events.Host.WindowCreate(uint64(w.ID()), bounds.Dx(), bounds.Dy())
	return nil
}

// closeForeignPopups closes visible standard popups and menu windows that
// belong to other trees. It reports how many were closed.
func (r *Registry) closeForeignPopups(root *Menu) int {
	closed := 0
	for _, w := range r.desktop.Windows() {
		switch w.Class {
		case host.ClassStandardPopup:
			if !w.Visible {
				continue
			}
		case host.ClassMenu:
			if r.inFamily(root, w.ID) {
				continue
			}
			if own := r.menuFor(w.ID); own != nil && !w.Visible {
				continue
			}
		default:
			continue
		}
		r.desktop.Close(w.ID)
		closed++
	}
	return closed
}

// runLoop is the blocking tracking loop of a root menu.
func (m *Menu) runLoop() int {
	reg := m.reg
	d := reg.desktop
	quit, code := false, 0

loop:
	for {
		ev, ok := d.WaitEvent(PollInterval)
		if !ok {
			if !m.stillAlive() {
				break
			}
			continue
		}

		switch {
		case ev.Kind == host.EventQuit:
			quit, code = true, ev.Code
			events.Menu.Dismiss(events.ReasonQuit)
			break loop
		case ev.IsButton() && !reg.inFamily(m, ev.Window) && !reg.isExempt(ev.Point):
			events.Menu.Dismiss(events.ReasonOutsideClick)
			m.DestroyTree(m.result)
			if ev.Window != host.NoWindow && ev.Window == reg.oldActive {
				d.Dispatch(ev)
			}
		case ev.IsKeyboard():
			target := reg.Active()
			if target == nil {
				target = m
			}
			target.handle(ev)
		default:
			if owner := reg.menuFor(ev.Window); owner != nil {
				owner.handle(ev)
			} else {
				d.Dispatch(ev)
			}
		}

		if !m.stillAlive() {
			break
		}
	}

	result := m.result
	m.HideTree(result)
	events.Menu.TrackEnd(result, quit)
	switch {
	case quit:
		d.PostQuit(code)
	case result != 0 && m.notify != host.NoWindow:
		d.PostCommand(m.notify, result)
	}
	reg.clear()
	return result
}

func (m *Menu) stillAlive() bool {
	ok, reason := m.reg.alive(m)
	if !ok {
		events.Menu.Dismiss(reason)
	}
	return ok
}
