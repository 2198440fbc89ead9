package ui

import (
	"fmt"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the bindings used while a menu is tracking (the host keys)
// and while the owner screen is idle.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Home      key.Binding
	End       key.Binding
	Tab       key.Binding
	Backspace key.Binding
	Interrupt key.Binding

	Open key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "previous item")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next item")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "close submenu")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "open submenu")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first item")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last item")),
		Tab:       key.NewBinding(key.WithKeys("tab")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),

		Open: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "open menu")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// hostKey maps a key message to a navigation key, or KeyNone.
func (k keyMap) hostKey(msg tea.KeyMsg) host.Key {
	switch {
	case key.Matches(msg, k.Up):
		return host.KeyUp
	case key.Matches(msg, k.Down):
		return host.KeyDown
	case key.Matches(msg, k.Left):
		return host.KeyLeft
	case key.Matches(msg, k.Right):
		return host.KeyRight
	case key.Matches(msg, k.Enter):
		return host.KeyEnter
	case key.Matches(msg, k.Escape):
		return host.KeyEscape
	case key.Matches(msg, k.Home):
		return host.KeyHome
	case key.Matches(msg, k.End):
		return host.KeyEnd
	case key.Matches(msg, k.Tab):
		return host.KeyTab
	case key.Matches(msg, k.Backspace):
		return host.KeyBackspace
	}
	return host.KeyNone
}

// hostEvents converts a key message into the events a tracking menu sees.
// Printable input becomes one EventChar per rune.
func (k keyMap) hostEvents(msg tea.KeyMsg) []host.Event {
	if key.Matches(msg, k.Interrupt) {
		return []host.Event{{Kind: host.EventQuit}}
	}
	if hk := k.hostKey(msg); hk != host.KeyNone {
		return []host.Event{{Kind: host.EventKeyDown, Key: hk}}
	}
	switch msg.Type {
	case tea.KeyRunes:
		out := make([]host.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, host.Event{Kind: host.EventChar, Rune: r, Alt: msg.Alt})
		}
		return out
	case tea.KeySpace:
		return []host.Event{{Kind: host.EventChar, Rune: ' ', Alt: msg.Alt}}
	}
	return nil
}

// helpLine describes the owner screen bindings.
func (k keyMap) helpLine() string {
	open, quit := k.Open.Help(), k.Quit.Help()
	return fmt.Sprintf("right-click or %s to %s · %s to %s", open.Key, open.Desc, quit.Key, quit.Desc)
}
