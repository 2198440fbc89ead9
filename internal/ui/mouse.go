package ui

import (
	"image"
	"time"

	"github.com/atomicstack/popmenu/internal/host"
	tea "github.com/charmbracelet/bubbletea"
)

func hostButton(b tea.MouseButton) host.Button {
	switch b {
	case tea.MouseButtonLeft:
		return host.ButtonLeft
	case tea.MouseButtonRight:
		return host.ButtonRight
	case tea.MouseButtonMiddle:
		return host.ButtonMiddle
	}
	return 0
}

// Pointer folds a mouse message into the cursor and button state and
// returns the matching host event. Wheel input has no host counterpart.
func (d *Desktop) Pointer(msg tea.MouseMsg) (host.Event, bool) {
	p := image.Pt(msg.X, msg.Y)
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = p
	ev := host.Event{Point: p, Alt: msg.Alt}

	switch msg.Action {
	case tea.MouseActionMotion:
		ev.Kind = host.EventPointerMove
	case tea.MouseActionPress:
		b := hostButton(msg.Button)
		if b == 0 {
			return host.Event{}, false
		}
		ev.Kind = host.EventButtonDown
		ev.Button = b
		last := d.lastPress
		ev.Double = last.button == b && last.point == p && now.Sub(last.at) <= doubleClickTime
		if ev.Double {
			d.lastPress = press{}
		} else {
			d.lastPress = press{button: b, point: p, at: now}
		}
		d.buttons |= b
	case tea.MouseActionRelease:
		b := hostButton(msg.Button)
		if b == 0 {
			// Legacy encodings do not say which button went up.
			b = d.buttons
		}
		if b == 0 {
			return host.Event{}, false
		}
		ev.Kind = host.EventButtonUp
		ev.Button = b
		d.buttons &^= b
	default:
		return host.Event{}, false
	}
	ev.Window = d.windowAtLocked(p)
	return ev, true
}
