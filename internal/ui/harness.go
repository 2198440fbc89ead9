package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run on their own goroutines, as they would under a real program,
// because tracking blocks until the harness feeds the input that ends it.
type Harness struct {
	model *Model
	msgs  chan tea.Msg
	quit  bool
}

// NewHarness creates a harness for the provided model and attaches it to the
// model's desktop.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model, msgs: make(chan tea.Msg, 256)}
	if model != nil {
		model.desktop.Attach(func(msg tea.Msg) { h.msgs <- msg })
	}
	return h
}

// Init runs the model's Init command.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.run(h.model.Init())
}

// Send routes a message through the model and starts any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.run(cmd)
}

func (h *Harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		if msg := cmd(); msg != nil {
			h.msgs <- msg
		}
	}()
}

func (h *Harness) deliver(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.run(cmd)
		}
	case tea.QuitMsg:
		h.quit = true
	default:
		h.Send(msg)
	}
}

// WaitFor delivers command results and desktop messages until cond holds or
// timeout passes. It reports whether cond held.
func (h *Harness) WaitFor(cond func(*Model) bool, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if cond(h.model) {
			return true
		}
		select {
		case msg := <-h.msgs:
			h.deliver(msg)
		case <-deadline:
			return cond(h.model)
		}
	}
}

// Settle delivers messages until none arrive for quiet.
func (h *Harness) Settle(quiet time.Duration) {
	for {
		select {
		case msg := <-h.msgs:
			h.deliver(msg)
		case <-time.After(quiet):
			return
		}
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool { return h.quit }

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
