// Package tmux answers one question for the terminal desktop: which tmux pane
// currently has the user's attention. A change of focus away from the pane
// hosting popmenu is what dismisses an open menu when the user switches
// panes, windows or sessions.
package tmux

import (
	"fmt"
	"os"
	"strings"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Focus identifies what the visible tmux client is looking at.
type Focus struct {
	Client  string
	Session string
	Pane    string
}

// IsZero reports whether no client was found.
func (f Focus) IsZero() bool { return f == Focus{} }

type tmuxClient interface {
	ListClients() ([]*gotmux.Client, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// Probe queries a tmux server for the current focus. The control-mode
// connection is opened on first use and reused until Close.
type Probe struct {
	socketPath string
	ownPane    string

	mu     sync.Mutex
	client tmuxClient
}

// NewProbe returns a probe for the server at socketPath. ownPane is the pane
// popmenu runs in; when empty it is taken from TMUX_PANE.
func NewProbe(socketPath, ownPane string) *Probe {
	if strings.TrimSpace(ownPane) == "" {
		ownPane = strings.TrimSpace(os.Getenv("TMUX_PANE"))
	}
	return &Probe{socketPath: socketPath, ownPane: ownPane}
}

// OwnPane returns the pane the probe treats as home.
func (p *Probe) OwnPane() string { return p.ownPane }

func (p *Probe) connect() (tmuxClient, error) {
	if p.client != nil {
		return p.client, nil
	}
	client, err := newTmux(p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect tmux: %w", err)
	}
	p.client = client
	return client, nil
}

// Focus returns the session and active pane of the client attached to the
// session that hosts the probe's own pane. Without an own pane the first
// terminal client wins. Control-mode clients, including the probe's own
// connection, are never considered.
func (p *Probe) Focus() (Focus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	client, err := p.connect()
	if err != nil {
		return Focus{}, err
	}
	clients, err := client.ListClients()
	if err != nil {
		p.reset()
		return Focus{}, fmt.Errorf("list clients: %w", err)
	}

	home := ""
	if p.ownPane != "" {
		if name, err := client.DisplayMessage(p.ownPane, "#{session_name}"); err == nil {
			home = strings.TrimSpace(name)
		}
	}

	var chosen *gotmux.Client
	for _, c := range clients {
		if c == nil || c.ControlMode || c.Session == "" {
			continue
		}
		if home == "" || strings.TrimSpace(c.Session) == home {
			chosen = c
			break
		}
		if chosen == nil {
			chosen = c
		}
	}
	if chosen == nil {
		return Focus{}, nil
	}

	focus := Focus{Client: chosen.Name, Session: strings.TrimSpace(chosen.Session)}
	pane, err := client.DisplayMessage(focus.Session, "#{pane_id}")
	if err != nil {
		return focus, fmt.Errorf("active pane of %s: %w", focus.Session, err)
	}
	focus.Pane = strings.TrimSpace(pane)
	return focus, nil
}

// Focused reports whether f points at the probe's own pane. A probe that does
// not know its pane considers every focus its own.
func (p *Probe) Focused(f Focus) bool {
	if p.ownPane == "" || f.IsZero() {
		return true
	}
	return f.Pane == p.ownPane
}

func (p *Probe) reset() {
	if p.client != nil {
		_ = p.client.Close()
		p.client = nil
	}
}

// Close drops the control-mode connection.
func (p *Probe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}
