package command

import (
	"image"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/logging/events"
	"github.com/atomicstack/popmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes one tracking session.
type Request struct {
	Menu     *menu.Menu
	Notify   host.WindowID
	Anchor   image.Point
	Keyboard bool
	Exclude  *image.Rectangle
}

// Result is delivered when tracking ends. ID is zero when nothing was
// chosen; Text is the chosen item's label.
type Result struct {
	ID   int
	Text string
}

// Bus runs tracking sessions off the Bubble Tea goroutine.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Track wraps TrackPopup into a Bubble Tea command while emitting trace logs.
// The command blocks until the menu is dismissed.
func (b *Bus) Track(req Request) tea.Cmd {
	events.Command.Queue(req.Anchor.X, req.Anchor.Y, req.Keyboard)
	return func() tea.Msg {
		if req.Menu == nil {
			events.Command.Skip("no menu")
			return Result{}
		}
		id := req.Menu.TrackPopup(req.Notify, req.Anchor, req.Keyboard, req.Exclude)
		res := Result{ID: id}
		if id != 0 {
			res.Text, _ = req.Menu.ItemText(menu.Command(id))
		}
		events.Command.Result(res.ID, res.Text)
		return res
	}
}
