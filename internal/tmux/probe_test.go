package tmux

import (
	"errors"
	"os/user"
	"path/filepath"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

type fakeClient struct {
	clients     []*gotmux.Client
	clientsErr  error
	displayFn   func(target, format string) (string, error)
	displayArgs [][]string
	closeCalls  int
}

func (f *fakeClient) ListClients() ([]*gotmux.Client, error) {
	if f.clientsErr != nil {
		return nil, f.clientsErr
	}
	return f.clients, nil
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	f.displayArgs = append(f.displayArgs, []string{target, format})
	if f.displayFn != nil {
		return f.displayFn(target, format)
	}
	return "", nil
}

func (f *fakeClient) Close() error {
	f.closeCalls++
	return nil
}

func TestProbeFocusPrefersHomeSession(t *testing.T) {
	fake := &fakeClient{
		clients: []*gotmux.Client{
			{Name: "ctl", Session: "work", ControlMode: true},
			{Name: "/dev/pts/1", Session: "other"},
			{Name: "/dev/pts/2", Session: "work"},
		},
		displayFn: func(target, format string) (string, error) {
			switch {
			case target == "%3" && format == "#{session_name}":
				return "work\n", nil
			case target == "work" && format == "#{pane_id}":
				return "%3\n", nil
			}
			return "", errors.New("unexpected query")
		},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	p := NewProbe("/tmp/sock", "%3")
	focus, err := p.Focus()
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	want := Focus{Client: "/dev/pts/2", Session: "work", Pane: "%3"}
	if focus != want {
		t.Fatalf("expected %+v, got %+v", want, focus)
	}
	if !p.Focused(focus) {
		t.Fatalf("expected own pane to count as focused")
	}
	if p.Focused(Focus{Session: "work", Pane: "%4"}) {
		t.Fatalf("expected another pane to count as unfocused")
	}
}

func TestProbeFocusSkipsControlModeOnly(t *testing.T) {
	fake := &fakeClient{clients: []*gotmux.Client{{Name: "ctl", Session: "work", ControlMode: true}}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	focus, err := NewProbe("", "%1").Focus()
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if !focus.IsZero() {
		t.Fatalf("expected no focus, got %+v", focus)
	}
}

func TestProbeReusesConnection(t *testing.T) {
	fake := &fakeClient{}
	calls := 0
	withStubTmux(t, func(string) (tmuxClient, error) {
		calls++
		return fake, nil
	})
	p := NewProbe("", "%1")
	for i := 0; i < 3; i++ {
		if _, err := p.Focus(); err != nil {
			t.Fatalf("focus: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one connection, got %d", calls)
	}
	p.Close()
	if fake.closeCalls != 1 {
		t.Fatalf("expected close on shutdown, got %d", fake.closeCalls)
	}
}

func TestProbeDropsConnectionOnError(t *testing.T) {
	fake := &fakeClient{clientsErr: errors.New("boom")}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	p := NewProbe("", "%1")
	if _, err := p.Focus(); err == nil {
		t.Fatalf("expected error")
	}
	if fake.closeCalls != 1 || p.client != nil {
		t.Fatalf("expected broken connection to be dropped")
	}
}

func TestProbeConnectError(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, errors.New("no server") })
	if _, err := NewProbe("", "").Focus(); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestProbeOwnPaneFromEnvironment(t *testing.T) {
	t.Setenv("TMUX_PANE", "%9")
	p := NewProbe("", "")
	if p.OwnPane() != "%9" {
		t.Fatalf("expected %%9, got %q", p.OwnPane())
	}
	if !NewProbe("", "%2").Focused(Focus{}) {
		t.Fatalf("expected unknown focus to count as focused")
	}
}

func TestResolveSocketPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		got, err := ResolveSocketPath("/tmp/flag")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/flag" {
			t.Fatalf("expected /tmp/flag, got %q", got)
		}
	})
	t.Run("tmux env fallback", func(t *testing.T) {
		t.Setenv("TMUX", "/tmp/socket,123,0")
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/socket" {
			t.Fatalf("expected /tmp/socket, got %q", got)
		}
	})
	t.Run("default path", func(t *testing.T) {
		t.Setenv("TMUX", "")
		t.Setenv("TMUX_TMPDIR", "/tmp")
		u, _ := user.Current()
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join("/tmp", "tmux-"+u.Uid, "default")
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}
