package ui

import (
	"fmt"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	ownerID     host.WindowID = 1
	elsewhereID host.WindowID = 2

	doubleClickTime = 400 * time.Millisecond
)

// Desktop is a host.Desktop living inside a terminal. The owner window is
// the whole screen; menu windows are cell grids composited on top of it by
// Render. Input arrives from the Bubble Tea goroutine through Feed, while the
// menu engine drains it through WaitEvent on its own goroutine, so every
// piece of shared state sits behind mu.
type Desktop struct {
	mu sync.Mutex

	size    image.Point
	owner   *Window
	windows map[host.WindowID]*Window
	order   []host.WindowID
	nextID  host.WindowID

	queue []host.Event
	wake  chan struct{}

	cursor    image.Point
	buttons   host.Buttons
	lastPress press
	focused   bool
	changed   bool

	send func(tea.Msg)
}

type press struct {
	button host.Button
	point  image.Point
	at     time.Time
}

var _ host.Desktop = (*Desktop)(nil)

// Messages the desktop sends to the owner program.
type (
	// frameMsg asks for a redraw after menu windows changed.
	frameMsg struct{}
	// dispatchedMsg carries an event the engine did not consume.
	dispatchedMsg struct{ event host.Event }
	commandMsg    struct {
		target host.WindowID
		id     int
	}
	quitMsg struct{ code int }
)

// NewDesktop returns a desktop of w by h cells.
func NewDesktop(w, h int) *Desktop {
	d := &Desktop{
		windows: make(map[host.WindowID]*Window),
		nextID:  elsewhereID + 1,
		wake:    make(chan struct{}, 1),
		focused: true,
	}
	d.owner = &Window{d: d, id: ownerID, class: host.ClassOther, title: "owner", visible: true, grid: theme.NewGrid(0, 0)}
	d.Resize(w, h)
	return d
}

// Attach routes outgoing messages (dispatched events, commands, quit
// requests, redraw hints) to send, usually tea.Program.Send.
func (d *Desktop) Attach(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	d.mu.Unlock()
}

func (d *Desktop) post(msg tea.Msg) {
	d.mu.Lock()
	send := d.send
	d.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// OwnerID is the window standing for the application screen.
func (d *Desktop) OwnerID() host.WindowID { return ownerID }

// Owner exposes the application screen grid for drawing.
func (d *Desktop) Owner() *theme.Grid { return d.owner.grid }

// Size returns the screen size in cells.
func (d *Desktop) Size() image.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

// Resize changes the screen size. The owner grid is cleared.
func (d *Desktop) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	d.mu.Lock()
	d.size = image.Pt(w, h)
	d.owner.bounds = image.Rect(0, 0, w, h)
	d.owner.grid.Resize(w, h)
	d.changed = true
	d.mu.Unlock()
}

// SetFocused records whether the user is looking at this desktop. When not,
// the active and foreground window move elsewhere.
func (d *Desktop) SetFocused(focused bool) {
	d.mu.Lock()
	d.focused = focused
	d.mu.Unlock()
	d.signal()
}

// Feed queues an input event for the engine.
func (d *Desktop) Feed(ev host.Event) {
	d.mu.Lock()
	d.queue = append(d.queue, ev)
	d.mu.Unlock()
	d.signal()
}

// Flush drops queued input.
func (d *Desktop) Flush() {
	d.mu.Lock()
	d.queue = nil
	d.mu.Unlock()
}

func (d *Desktop) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Desktop) CreateWindow(spec host.WindowSpec) (host.Window, error) {
	if spec.Bounds.Empty() {
		return nil, fmt.Errorf("%w: empty bounds %v", host.ErrWindowCreate, spec.Bounds)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.size.X == 0 || d.size.Y == 0 {
		return nil, fmt.Errorf("%w: screen has no size", host.ErrWindowCreate)
	}
	w := &Window{
		d:      d,
		id:     d.nextID,
		class:  spec.Class,
		title:  spec.Title,
		bounds: spec.Bounds,
		grid:   theme.NewGrid(spec.Bounds.Dx(), spec.Bounds.Dy()),
		timers: make(map[host.TimerID]*timer),
	}
	d.nextID++
	d.windows[w.id] = w
	d.order = append(d.order, w.id)
	return w, nil
}

// WaitEvent returns queued input first, then pending paints, then due
// timers, mirroring the priorities of a native message queue.
func (d *Desktop) WaitEvent(timeout time.Duration) (host.Event, bool) {
	d.present()
	deadline := time.Now().Add(timeout)
	for {
		d.mu.Lock()
		if len(d.queue) > 0 {
			ev := d.queue[0]
			d.queue = d.queue[1:]
			d.mu.Unlock()
			return ev, true
		}
		if ev, ok := d.pendingPaintLocked(); ok {
			d.changed = true
			d.mu.Unlock()
			return ev, true
		}
		now := time.Now()
		next := deadline
		if w, t := d.nextTimerLocked(); t != nil {
			if !t.due.After(now) {
				t.due = now.Add(t.every)
				id := w.id
				d.mu.Unlock()
				return host.Event{Kind: host.EventTimer, Window: id, Timer: t.id}, true
			}
			if t.due.Before(next) {
				next = t.due
			}
		}
		d.mu.Unlock()

		wait := next.Sub(now)
		if !now.Before(deadline) {
			return host.Event{}, false
		}
		timer := time.NewTimer(wait)
		select {
		case <-d.wake:
		case <-timer.C:
		}
		timer.Stop()
	}
}

func (d *Desktop) pendingPaintLocked() (host.Event, bool) {
	for _, id := range d.order {
		w := d.windows[id]
		if w == nil || w.dirty.Empty() {
			continue
		}
		r := w.dirty
		w.dirty = image.Rectangle{}
		return host.Event{Kind: host.EventPaint, Window: id, Rect: r}, true
	}
	return host.Event{}, false
}

func (d *Desktop) nextTimerLocked() (*Window, *timer) {
	var (
		bestW *Window
		bestT *timer
	)
	for _, id := range d.order {
		w := d.windows[id]
		for _, t := range w.sortedTimers() {
			if bestT == nil || t.due.Before(bestT.due) {
				bestW, bestT = w, t
			}
		}
	}
	return bestW, bestT
}

// present snapshots the grids of visible windows for Render and asks the
// program for a redraw. It runs on the engine goroutine between paints, so
// Render never sees a half painted grid.
func (d *Desktop) present() {
	d.mu.Lock()
	if !d.changed {
		d.mu.Unlock()
		return
	}
	d.changed = false
	for _, w := range d.windows {
		if w.visible {
			w.shown = w.grid.Clone()
		}
	}
	send := d.send
	d.mu.Unlock()
	if send != nil {
		send(frameMsg{})
	}
}

func (d *Desktop) Dispatch(ev host.Event) {
	d.post(dispatchedMsg{event: ev})
}

func (d *Desktop) PostCommand(target host.WindowID, id int) {
	d.post(commandMsg{target: target, id: id})
}

func (d *Desktop) PostQuit(code int) {
	d.post(quitMsg{code: code})
}

// Close delivers EventClose to menu windows; the owner cannot be closed.
func (d *Desktop) Close(id host.WindowID) {
	d.mu.Lock()
	w := d.windows[id]
	d.mu.Unlock()
	if w == nil {
		return
	}
	d.Feed(host.Event{Kind: host.EventClose, Window: id})
}

func (d *Desktop) Windows() []host.WindowInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []host.WindowInfo{
		{ID: ownerID, Class: host.ClassOther, Visible: true, Bounds: d.owner.bounds},
		{ID: elsewhereID, Class: host.ClassOther},
	}
	for _, id := range d.order {
		w := d.windows[id]
		out = append(out, host.WindowInfo{ID: w.id, Class: w.class, Visible: w.visible, Bounds: w.bounds})
	}
	return out
}

func (d *Desktop) WindowAt(p image.Point) host.WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windowAtLocked(p)
}

func (d *Desktop) windowAtLocked(p image.Point) host.WindowID {
	for i := len(d.order) - 1; i >= 0; i-- {
		w := d.windows[d.order[i]]
		if w.visible && w.hit(p) {
			return w.id
		}
	}
	if p.In(d.owner.bounds) {
		return ownerID
	}
	return host.NoWindow
}

func (d *Desktop) CursorPos() image.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

func (d *Desktop) ActiveWindow() host.WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focused {
		return ownerID
	}
	return elsewhereID
}

func (d *Desktop) ForegroundWindow() host.WindowID { return d.ActiveWindow() }

func (d *Desktop) ButtonsDown() host.Buttons {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buttons
}

// KeyDown is always false: terminals report key presses, never key state.
func (d *Desktop) KeyDown(host.Key) bool { return false }

// Monitor is the whole screen; the bottom row is kept for the status line.
func (d *Desktop) Monitor(image.Point) (image.Rectangle, image.Rectangle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bounds := image.Rectangle{Max: d.size}
	work := bounds
	if work.Dy() > 1 {
		work.Max.Y--
	}
	return bounds, work
}

func (d *Desktop) Sleep(delta time.Duration) { time.Sleep(delta) }

func (d *Desktop) raiseLocked(id host.WindowID) {
	for i, other := range d.order {
		if other == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.order = append(d.order, id)
}

func (d *Desktop) removeLocked(id host.WindowID) {
	delete(d.windows, id)
	for i, other := range d.order {
		if other == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}

type timer struct {
	id    host.TimerID
	every time.Duration
	due   time.Time
}

// Window is a menu window on the terminal desktop.
type Window struct {
	d       *Desktop
	id      host.WindowID
	class   host.Class
	title   string
	bounds  image.Rectangle
	visible bool
	region  *image.Rectangle
	dirty   image.Rectangle
	grid    *theme.Grid
	shown   *theme.Grid
	timers  map[host.TimerID]*timer

	destroyed bool
}

var _ host.Window = (*Window)(nil)

func (w *Window) ID() host.WindowID { return w.id }

func (w *Window) Bounds() image.Rectangle {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	return w.bounds
}

func (w *Window) SetBounds(r image.Rectangle) {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if r.Size() != w.bounds.Size() {
		w.grid.Resize(r.Dx(), r.Dy())
		w.dirty = w.grid.Bounds()
	}
	w.bounds = r
	w.d.changed = true
}

func (w *Window) Show() {
	w.d.mu.Lock()
	if w.destroyed {
		w.d.mu.Unlock()
		return
	}
	w.visible = true
	w.d.raiseLocked(w.id)
	w.dirty = image.Rect(0, 0, w.bounds.Dx(), w.bounds.Dy())
	w.d.changed = true
	w.d.mu.Unlock()
	w.d.signal()
}

func (w *Window) Hide() {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if !w.visible {
		return
	}
	w.visible = false
	w.d.changed = true
}

func (w *Window) Visible() bool {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	return w.visible
}

func (w *Window) Invalidate(r image.Rectangle) {
	w.d.mu.Lock()
	r = r.Intersect(image.Rect(0, 0, w.bounds.Dx(), w.bounds.Dy()))
	if !r.Empty() {
		w.dirty = w.dirty.Union(r)
	}
	w.d.mu.Unlock()
	w.d.signal()
}

func (w *Window) SetRegion(r *image.Rectangle) bool {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if r != nil {
		clip := *r
		w.region = &clip
	} else {
		w.region = nil
	}
	w.d.changed = true
	return true
}

func (w *Window) SetTimer(id host.TimerID, every time.Duration) {
	w.d.mu.Lock()
	w.timers[id] = &timer{id: id, every: every, due: time.Now().Add(every)}
	w.d.mu.Unlock()
	w.d.signal()
}

func (w *Window) KillTimer(id host.TimerID) {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	delete(w.timers, id)
}

// Surface is the cell grid the engine paints into.
func (w *Window) Surface() host.Surface {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	return w.grid
}

func (w *Window) Destroy() {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.visible = false
	w.timers = map[host.TimerID]*timer{}
	w.d.removeLocked(w.id)
	w.d.changed = true
}

func (w *Window) sortedTimers() []*timer {
	out := make([]*timer, 0, len(w.timers))
	for _, t := range w.timers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (w *Window) hit(p image.Point) bool {
	if !p.In(w.bounds) {
		return false
	}
	if w.region == nil {
		return true
	}
	return p.Sub(w.bounds.Min).In(*w.region)
}
