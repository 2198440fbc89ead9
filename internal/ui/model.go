package ui

import (
	"fmt"
	"image"
	"reflect"

	"github.com/atomicstack/popmenu/internal/backend"
	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/logging/events"
	"github.com/atomicstack/popmenu/internal/menu"
	"github.com/atomicstack/popmenu/internal/text"
	"github.com/atomicstack/popmenu/internal/theme"
	"github.com/atomicstack/popmenu/internal/tmux"
	"github.com/atomicstack/popmenu/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type msgHandler func(tea.Msg) tea.Cmd

// FocusJudge decides whether a tmux focus sample points at this program.
type FocusJudge interface {
	Focused(tmux.Focus) bool
}

// Options configure the owner screen.
type Options struct {
	Width  int
	Height int
	// Anchor is where keyboard-opened menus appear; negative coordinates
	// centre the menu on that axis.
	Anchor   image.Point
	Keyboard bool
	// Once tracks the menu as soon as the program starts and quits when
	// tracking ends.
	Once    bool
	Watcher *backend.Watcher
	Judge   FocusJudge
}

type openRequest struct {
	anchor   image.Point
	keyboard bool
}

// Model is the owner application: a screen that opens the popup menu on
// right-click or on the open key and reports what was chosen.
type Model struct {
	desktop *Desktop
	root    *menu.Menu
	bus     *command.Bus
	keys    keyMap

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	anchor   image.Point
	keyboard bool
	once     bool

	tracking bool
	pending  *openRequest
	result   command.Result
	notified int

	infoMsg string
	errMsg  string

	backend *backend.Watcher
	judge   FocusJudge

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the owner screen for root on desktop d.
func NewModel(d *Desktop, root *menu.Menu, opts Options) *Model {
	m := &Model{
		desktop:  d,
		root:     root,
		bus:      command.New(),
		keys:     defaultKeyMap(),
		anchor:   opts.Anchor,
		keyboard: opts.Keyboard,
		once:     opts.Once,
		backend:  opts.Watcher,
		judge:    opts.Judge,
	}
	size := d.Size()
	m.width, m.height = size.X, size.Y
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if m.width != size.X || m.height != size.Y {
		d.Resize(m.width, m.height)
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForFocusEvent(m.backend))
	}
	if m.once {
		cmds = append(cmds, m.open(m.keyboardAnchor(), m.keyboard))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleResultMsg,
		reflect.TypeOf(commandMsg{}):        m.handleCommandMsg,
		reflect.TypeOf(dispatchedMsg{}):     m.handleDispatchedMsg,
		reflect.TypeOf(quitMsg{}):           m.handleQuitMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(focusEventMsg{}):     m.handleFocusEventMsg,
		reflect.TypeOf(focusDoneMsg{}):      m.handleFocusDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// keyboardAnchor resolves the configured anchor against the screen,
// centring the menu on axes left negative.
func (m *Model) keyboardAnchor() image.Point {
	p := m.anchor
	if p.X >= 0 && p.Y >= 0 {
		return p
	}
	var size image.Point
	if m.root != nil {
		size = m.root.WindowSize()
	}
	if p.X < 0 {
		p.X = max(0, (m.width-size.X)/2)
	}
	if p.Y < 0 {
		p.Y = max(0, (m.height-size.Y)/2)
	}
	return p
}

// open starts tracking, or remembers the request when a session is still
// running so it starts as soon as that one ends.
func (m *Model) open(anchor image.Point, keyboard bool) tea.Cmd {
	if m.tracking {
		m.pending = &openRequest{anchor: anchor, keyboard: keyboard}
		return nil
	}
	m.tracking = true
	m.errMsg = ""
	return m.bus.Track(command.Request{
		Menu:     m.root,
		Notify:   m.desktop.OwnerID(),
		Anchor:   anchor,
		Keyboard: keyboard,
	})
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String(), m.tracking)
	if m.tracking {
		for _, ev := range m.keys.hostEvents(keyMsg) {
			m.desktop.Feed(ev)
		}
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Open):
		return m.open(m.keyboardAnchor(), true)
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouseMsg, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	ev, ok := m.desktop.Pointer(mouseMsg)
	if !ok {
		return nil
	}
	if ev.IsButton() {
		events.UI.Mouse(ev.Kind.String(), mouseMsg.Button.String(), ev.Point.X, ev.Point.Y)
	}
	if m.tracking {
		m.desktop.Feed(ev)
		return nil
	}
	return m.ownerInput(ev)
}

// ownerInput handles pointer input that reached the owner screen, either
// directly or re-dispatched by a menu that was dismissed by it.
func (m *Model) ownerInput(ev host.Event) tea.Cmd {
	if ev.Kind == host.EventButtonDown && ev.Button == host.ButtonRight && ev.Window == m.desktop.OwnerID() {
		return m.open(ev.Point, false)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.desktop.Resize(m.width, m.height)
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.tracking = false
	m.result = res
	m.desktop.Flush()
	if m.once {
		return tea.Quit
	}
	if res.ID != 0 {
		m.infoMsg = fmt.Sprintf("chose %q (id %d)", text.ParseLabel(res.Text).Display, res.ID)
	} else {
		m.infoMsg = "menu dismissed"
	}
	if req := m.pending; req != nil {
		m.pending = nil
		return m.open(req.anchor, req.keyboard)
	}
	return nil
}

func (m *Model) handleCommandMsg(msg tea.Msg) tea.Cmd {
	cmd, ok := msg.(commandMsg)
	if !ok || cmd.target != m.desktop.OwnerID() {
		return nil
	}
	m.notified = cmd.id
	return nil
}

func (m *Model) handleDispatchedMsg(msg tea.Msg) tea.Cmd {
	dispatched, ok := msg.(dispatchedMsg)
	if !ok {
		return nil
	}
	return m.ownerInput(dispatched.event)
}

func (m *Model) handleQuitMsg(tea.Msg) tea.Cmd {
	return tea.Quit
}

func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	return nil
}

// Result returns the outcome of the last tracking session.
func (m *Model) Result() command.Result { return m.result }

// Tracking reports whether a menu is open.
func (m *Model) Tracking() bool { return m.tracking }

// Notified returns the last command id posted to the owner window.
func (m *Model) Notified() int { return m.notified }

// View draws the owner screen and lays the open menus over it.
func (m *Model) View() string {
	m.drawOwner()
	return m.desktop.Render()
}

func (m *Model) drawOwner() {
	g := m.desktop.Owner()
	b := g.Bounds()
	g.Fill(b, theme.Cell{Rune: ' ', Style: theme.StyleNone})
	if b.Dy() == 0 {
		return
	}
	writeText(g, 1, 0, b.Dx()-2, "popmenu", theme.StyleInfo)
	if b.Dy() > 2 {
		writeText(g, 1, 1, b.Dx()-2, m.keys.helpLine(), theme.StyleNone)
	}

	status := b.Dy() - 1
	g.Fill(image.Rect(0, status, b.Dx(), status+1), theme.Cell{Rune: ' ', Style: theme.StyleStatus})
	switch {
	case m.errMsg != "":
		writeText(g, 1, status, b.Dx()-2, m.errMsg, theme.StyleError)
	case m.tracking:
		writeText(g, 1, status, b.Dx()-2, "menu open", theme.StyleStatus)
	case m.infoMsg != "":
		writeText(g, 1, status, b.Dx()-2, m.infoMsg, theme.StyleStatus)
	default:
		writeText(g, 1, status, b.Dx()-2, "ready", theme.StyleStatus)
	}
}
