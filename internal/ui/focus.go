package ui

import (
	"github.com/atomicstack/popmenu/internal/backend"
	"github.com/atomicstack/popmenu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForFocusEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return focusDoneMsg{}
		}
		return focusEventMsg{event: evt}
	}
}

type focusEventMsg struct {
	event backend.Event
}

type focusDoneMsg struct{}

func (m *Model) handleFocusEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(focusEventMsg)
	if !ok {
		return nil
	}
	m.applyFocusEvent(eventMsg.event)
	if m.backend != nil {
		return waitForFocusEvent(m.backend)
	}
	return nil
}

func (m *Model) handleFocusDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyFocusEvent keeps the desktop's notion of activation in step with
// tmux. A failed probe leaves the previous state alone.
func (m *Model) applyFocusEvent(evt backend.Event) {
	events.Host.Focus(evt.Focus.Session, evt.Focus.Pane, evt.Err)
	if evt.Err != nil {
		m.errMsg = "tmux: " + evt.Err.Error()
		return
	}
	m.errMsg = ""
	if m.judge == nil {
		return
	}
	focused := m.judge.Focused(evt.Focus)
	events.UI.Focus(focused)
	m.desktop.SetFocused(focused)
}
