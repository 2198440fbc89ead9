package ui

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popmenu/internal/backend"
	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/menu"
	"github.com/atomicstack/popmenu/internal/tmux"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const waitTimeout = 3 * time.Second

var testDefinition = menu.Definition{Items: []menu.DefinitionItem{
	{ID: 1, Text: "&Open"},
	{ID: 2, Text: "&Save"},
	{Separator: true},
	{Text: "Mo&re", Submenu: &menu.Definition{Items: []menu.DefinitionItem{
		{ID: 10, Text: "&Alpha"},
		{ID: 11, Text: "&Beta"},
	}}},
	{ID: 3, Text: "E&xit"},
}}

type paneJudge string

func (p paneJudge) Focused(f tmux.Focus) bool { return f.Pane == string(p) }

func newTestHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	d := NewDesktop(60, 20)
	reg := menu.NewRegistry(d, MenuOptions(menu.StaticSettings{NoAnimations: true}, nil))
	root := reg.FromDefinition(testDefinition)
	if opts.Anchor == (image.Point{}) {
		opts.Anchor = image.Pt(-1, -1)
	}
	h := NewHarness(NewModel(d, root, opts))
	t.Cleanup(func() {
		if h.Model().Tracking() {
			h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
			h.WaitFor(func(m *Model) bool { return !m.Tracking() }, waitTimeout)
		}
	})
	return h
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func menuShown(h *Harness) func(*Model) bool {
	return func(*Model) bool { return strings.Contains(ansi.Strip(h.View()), "Save") }
}

func visibleMenus(d *Desktop) []host.WindowInfo {
	var out []host.WindowInfo
	for _, w := range d.Windows() {
		if w.Class == host.ClassMenu && w.Visible {
			out = append(out, w)
		}
	}
	return out
}

func TestViewShowsIdleScreen(t *testing.T) {
	h := newTestHarness(t, Options{})
	view := ansi.Strip(h.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "popmenu") || !strings.Contains(lines[1], "q to quit") {
		t.Fatalf("expected title and help, got %q / %q", lines[0], lines[1])
	}
	if !strings.Contains(lines[19], "ready") {
		t.Fatalf("expected ready status, got %q", lines[19])
	}
}

func TestOpenKeyThenEnterCommitsFirstItem(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(runeKey('m'))
	if !h.Model().Tracking() {
		t.Fatalf("expected tracking after open key")
	}
	if !h.WaitFor(menuShown(h), waitTimeout) {
		t.Fatalf("expected menu on screen, got:\n%s", ansi.Strip(h.View()))
	}
	if !strings.Contains(ansi.Strip(h.View()), "menu open") {
		t.Fatalf("expected tracking status")
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.WaitFor(func(m *Model) bool { return !m.Tracking() }, waitTimeout) {
		t.Fatalf("expected tracking to end")
	}
	m := h.Model()
	if m.Result().ID != 1 || m.Result().Text != "&Open" {
		t.Fatalf("expected item 1 chosen, got %+v", m.Result())
	}
	if m.Notified() != 1 {
		t.Fatalf("expected command posted to the owner, got %d", m.Notified())
	}
	if view := ansi.Strip(h.View()); !strings.Contains(view, `chose "Open" (id 1)`) || strings.Contains(view, "Save") {
		t.Fatalf("expected status line and no menu, got:\n%s", view)
	}
}

func TestAccessKeysReachSubmenu(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(runeKey('m'))
	h.Send(runeKey('r'))
	h.Send(runeKey('b'))
	if !h.WaitFor(func(m *Model) bool { return !m.Tracking() }, waitTimeout) {
		t.Fatalf("expected tracking to end")
	}
	if res := h.Model().Result(); res.ID != 11 || res.Text != "&Beta" {
		t.Fatalf("expected submenu item 11, got %+v", res)
	}
}

func TestRightClickOpensAtPointer(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if !h.WaitFor(menuShown(h), waitTimeout) {
		t.Fatalf("expected menu after right click")
	}
	menus := visibleMenus(h.Model().desktop)
	if len(menus) != 1 || menus[0].Bounds.Min != image.Pt(5, 3) {
		t.Fatalf("expected one menu at the pointer, got %+v", menus)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.WaitFor(func(m *Model) bool { return !m.Tracking() }, waitTimeout) {
		t.Fatalf("expected escape to dismiss")
	}
	if h.Model().Result().ID != 0 {
		t.Fatalf("expected nothing chosen, got %+v", h.Model().Result())
	}
	if !strings.Contains(ansi.Strip(h.View()), "menu dismissed") {
		t.Fatalf("expected dismissed status")
	}
}

func TestLeftClickOnOwnerDoesNothing(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if h.Model().Tracking() {
		t.Fatalf("expected left click to leave the menu closed")
	}
}

func TestOpenWhileTrackingWaitsForSession(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(runeKey('m'))
	if cmd := h.Model().open(image.Pt(2, 2), true); cmd != nil {
		t.Fatalf("expected no second session while tracking")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	ok := h.WaitFor(func(m *Model) bool { return m.pending == nil && m.Tracking() }, waitTimeout)
	if !ok {
		t.Fatalf("expected the queued request to start after dismissal")
	}
	if !h.WaitFor(func(m *Model) bool {
		menus := visibleMenus(m.desktop)
		return len(menus) == 1 && menus[0].Bounds.Min == image.Pt(2, 2)
	}, waitTimeout) {
		t.Fatalf("expected reopened menu at the queued anchor, got %+v", visibleMenus(h.Model().desktop))
	}
}

func TestInterruptWhileTrackingQuits(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(runeKey('m'))
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.WaitFor(func(*Model) bool { return h.Quit() }, waitTimeout) {
		t.Fatalf("expected interrupt to quit the program")
	}
}

func TestQuitKeyWhenIdle(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(runeKey('q'))
	if !h.WaitFor(func(*Model) bool { return h.Quit() }, waitTimeout) {
		t.Fatalf("expected q to quit")
	}
}

func TestFocusLossDismissesMenu(t *testing.T) {
	h := newTestHarness(t, Options{Judge: paneJudge("%1")})
	h.Send(runeKey('m'))
	if !h.WaitFor(menuShown(h), waitTimeout) {
		t.Fatalf("expected menu on screen")
	}
	h.Send(focusEventMsg{event: backend.Event{Focus: tmux.Focus{Session: "work", Pane: "%7"}}})
	if !h.WaitFor(func(m *Model) bool { return !m.Tracking() }, waitTimeout) {
		t.Fatalf("expected focus loss to dismiss the menu")
	}
	if h.Model().Result().ID != 0 {
		t.Fatalf("expected nothing chosen, got %+v", h.Model().Result())
	}
	if h.Model().desktop.ActiveWindow() == h.Model().desktop.OwnerID() {
		t.Fatalf("expected desktop to be unfocused")
	}
}

func TestFocusErrorShowsInStatus(t *testing.T) {
	h := newTestHarness(t, Options{Judge: paneJudge("%1")})
	h.Send(focusEventMsg{event: backend.Event{Err: errProbe}})
	if !strings.Contains(ansi.Strip(h.View()), "tmux: probe failed") {
		t.Fatalf("expected probe error in status line")
	}
	if h.Model().desktop.ActiveWindow() != h.Model().desktop.OwnerID() {
		t.Fatalf("expected focus left alone on probe error")
	}
}

func TestOnceTracksAtStartAndQuits(t *testing.T) {
	h := newTestHarness(t, Options{Once: true, Keyboard: true})
	h.Init()
	if !h.Model().Tracking() {
		t.Fatalf("expected tracking at start")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.WaitFor(func(*Model) bool { return h.Quit() }, waitTimeout) {
		t.Fatalf("expected quit once tracking ended")
	}
	if res := h.Model().Result(); res.ID != 2 {
		t.Fatalf("expected second item chosen, got %+v", res)
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	h := newTestHarness(t, Options{Width: 30})
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	if got := h.Model().desktop.Size(); got != image.Pt(30, 24) {
		t.Fatalf("expected 30x24, got %v", got)
	}
}

func TestKeyboardAnchorCentresMenu(t *testing.T) {
	h := newTestHarness(t, Options{})
	m := h.Model()
	size := m.root.WindowSize()
	got := m.keyboardAnchor()
	want := image.Pt((60-size.X)/2, (20-size.Y)/2)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

var errProbe = errors.New("probe failed")
