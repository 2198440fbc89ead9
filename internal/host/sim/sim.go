// Package sim provides a deterministic in-memory desktop. Time only moves when
// the code under test waits or sleeps, input is scripted, and every window
// keeps a record of what was done to it.
package sim

import (
	"fmt"
	"image"
	"image/draw"
	"sort"
	"time"

	"github.com/atomicstack/popmenu/internal/host"
)

// Step is a scripted user action. Steps run one at a time whenever the event
// queue runs dry, which lets a test look at the desktop between actions.
type Step func(d *Desktop)

// Command records a PostCommand call.
type Command struct {
	Target host.WindowID
	ID     int
}

// Desktop is a host.Desktop backed entirely by memory.
type Desktop struct {
	now   time.Time
	start time.Time

	monitor image.Rectangle
	work    image.Rectangle

	nextID  host.WindowID
	windows map[host.WindowID]*Window
	order   []host.WindowID

	queue []host.Event
	steps []Step
	// idle is when the last scripted step ran; used for the runaway guard.
	idle time.Time

	cursor     image.Point
	buttons    host.Buttons
	keys       map[host.Key]bool
	active     host.WindowID
	foreground host.WindowID

	// Owner is the application window that has activation and foreground
	// status when the desktop is created.
	Owner host.WindowID

	// CreateErr, when set, makes CreateWindow fail.
	CreateErr error
	// IdleLimit bounds how long the desktop idles after the last step before
	// it injects a quit event. It keeps broken tests from spinning forever.
	IdleLimit time.Duration
	// NoRegions makes SetRegion report failure.
	NoRegions bool

	Dispatched []host.Event
	Commands   []Command
	Quits      []int
	Closed     []host.WindowID
	Slept      time.Duration
	TimedOut   bool
}

// New returns a desktop with a single monitor. The owner window covers the
// work area and holds activation.
func New(monitor, work image.Rectangle) *Desktop {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &Desktop{
		now:       start,
		start:     start,
		idle:      start,
		monitor:   monitor,
		work:      work,
		windows:   make(map[host.WindowID]*Window),
		keys:      make(map[host.Key]bool),
		IdleLimit: 10 * time.Second,
	}
	owner := d.newWindow(host.ClassOther, work, "owner")
	owner.visible = true
	d.Owner = owner.id
	d.active = owner.id
	d.foreground = owner.id
	return d
}

// Now reports the simulated clock.
func (d *Desktop) Now() time.Time { return d.now }

// Elapsed reports simulated time since the desktop was created.
func (d *Desktop) Elapsed() time.Duration { return d.now.Sub(d.start) }

func (d *Desktop) newWindow(class host.Class, bounds image.Rectangle, title string) *Window {
	d.nextID++
	w := &Window{
		desktop: d,
		id:      d.nextID,
		class:   class,
		title:   title,
		bounds:  bounds,
		surface: image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy())),
		timers:  make(map[host.TimerID]*timer),
	}
	d.windows[w.id] = w
	d.order = append(d.order, w.id)
	return w
}

// CreateWindow implements host.Desktop.
func (d *Desktop) CreateWindow(spec host.WindowSpec) (host.Window, error) {
	if d.CreateErr != nil {
		return nil, fmt.Errorf("%w: %v", host.ErrWindowCreate, d.CreateErr)
	}
	return d.newWindow(spec.Class, spec.Bounds, spec.Title), nil
}

// AddWindow places a window that belongs to somebody else on the desktop.
func (d *Desktop) AddWindow(class host.Class, bounds image.Rectangle, visible bool) *Window {
	w := d.newWindow(class, bounds, "foreign")
	w.visible = visible
	w.foreign = true
	return w
}

// Window looks up a window by id.
func (d *Desktop) Window(id host.WindowID) *Window {
	return d.windows[id]
}

// VisibleWindows lists visible windows of the given class, bottom to top.
func (d *Desktop) VisibleWindows(class host.Class) []*Window {
	var out []*Window
	for _, id := range d.order {
		w := d.windows[id]
		if w != nil && w.visible && w.class == class {
			out = append(out, w)
		}
	}
	return out
}

// Script appends steps to run when the queue is idle.
func (d *Desktop) Script(steps ...Step) {
	d.steps = append(d.steps, steps...)
}

// Post appends a raw event to the queue.
func (d *Desktop) Post(ev host.Event) {
	d.queue = append(d.queue, ev)
}

// Move queues a pointer move to p.
func (d *Desktop) Move(p image.Point) {
	d.Post(host.Event{Kind: host.EventPointerMove, Window: d.WindowAt(p), Point: p})
}

// Press queues a button press at p.
func (d *Desktop) Press(b host.Button, p image.Point) {
	d.Post(host.Event{Kind: host.EventButtonDown, Window: d.WindowAt(p), Point: p, Button: b})
}

// Release queues a button release at p.
func (d *Desktop) Release(b host.Button, p image.Point) {
	d.Post(host.Event{Kind: host.EventButtonUp, Window: d.WindowAt(p), Point: p, Button: b})
}

// Click queues a move, press and release of the left button at p.
func (d *Desktop) Click(p image.Point) {
	d.Move(p)
	d.Press(host.ButtonLeft, p)
	d.Release(host.ButtonLeft, p)
}

// Key queues a key press addressed to the active window.
func (d *Desktop) Key(k host.Key) {
	d.Post(host.Event{Kind: host.EventKeyDown, Window: d.active, Key: k})
}

// Type queues a character addressed to the active window.
func (d *Desktop) Type(r rune, alt bool) {
	d.Post(host.Event{Kind: host.EventChar, Window: d.active, Rune: r, Alt: alt})
}

// Quit queues an application quit request.
func (d *Desktop) Quit(code int) {
	d.Post(host.Event{Kind: host.EventQuit, Code: code})
}

// HoldKey sets the asynchronous state of k.
func (d *Desktop) HoldKey(k host.Key, down bool) {
	d.keys[k] = down
}

// HoldButtons sets the asynchronous button state and pointer position
// without queueing anything.
func (d *Desktop) HoldButtons(b host.Buttons, p image.Point) {
	d.buttons = b
	d.cursor = p
}

// SetCursor moves the pointer without queueing an event.
func (d *Desktop) SetCursor(p image.Point) { d.cursor = p }

func (d *Desktop) SetActive(id host.WindowID) { d.active = id }
func (d *Desktop) SetForeground(id host.WindowID) { d.foreground = id }

// Advance moves the clock forward, queueing every timer that falls due.
func (d *Desktop) Advance(delta time.Duration) {
	deadline := d.now.Add(delta)
	for {
		w, t := d.nextTimer()
		if t == nil || t.due.After(deadline) {
			break
		}
		d.now = t.due
		d.fire(w, t)
	}
	d.now = deadline
}

// WaitEvent implements host.Desktop.
func (d *Desktop) WaitEvent(timeout time.Duration) (host.Event, bool) {
	for {
		if ev, ok := d.pop(); ok {
			return ev, true
		}
		if ev, ok := d.pendingPaint(); ok {
			return ev, true
		}
		if len(d.steps) == 0 {
			break
		}
		step := d.steps[0]
		d.steps = d.steps[1:]
		d.idle = d.now
		step(d)
	}

	deadline := d.now.Add(timeout)
	if w, t := d.nextTimer(); t != nil && !t.due.After(deadline) {
		d.now = t.due
		d.fire(w, t)
		return d.pop()
	}
	d.now = deadline
	if d.IdleLimit > 0 && d.now.Sub(d.idle) > d.IdleLimit {
		d.TimedOut = true
		d.idle = d.now
		return host.Event{Kind: host.EventQuit, Code: -1}, true
	}
	return host.Event{}, false
}

func (d *Desktop) pop() (host.Event, bool) {
	if len(d.queue) == 0 {
		return host.Event{}, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	switch ev.Kind {
	case host.EventPointerMove:
		d.cursor = ev.Point
	case host.EventButtonDown:
		d.cursor = ev.Point
		d.buttons |= ev.Button
	case host.EventButtonUp:
		d.cursor = ev.Point
		d.buttons &^= ev.Button
	}
	return ev, true
}

func (d *Desktop) pendingPaint() (host.Event, bool) {
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

func (d *Desktop) nextTimer() (*Window, *timer) {
	var (
		bestW *Window
		bestT *timer
	)
	ids := make([]host.WindowID, 0, len(d.windows))
	for id := range d.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		w := d.windows[id]
		for _, t := range w.sortedTimers() {
			if bestT == nil || t.due.Before(bestT.due) {
				bestW, bestT = w, t
			}
		}
	}
	return bestW, bestT
}

func (d *Desktop) fire(w *Window, t *timer) {
	t.due = t.due.Add(t.every)
	d.queue = append(d.queue, host.Event{Kind: host.EventTimer, Window: w.id, Timer: t.id})
}

// Dispatch implements host.Desktop.
func (d *Desktop) Dispatch(ev host.Event) {
	d.Dispatched = append(d.Dispatched, ev)
}

// PostCommand implements host.Desktop.
func (d *Desktop) PostCommand(target host.WindowID, id int) {
	d.Commands = append(d.Commands, Command{Target: target, ID: id})
}

// PostQuit implements host.Desktop.
func (d *Desktop) PostQuit(code int) {
	d.Quits = append(d.Quits, code)
}

// Close implements host.Desktop. Foreign windows simply disappear; windows
// created through CreateWindow receive an EventClose.
func (d *Desktop) Close(id host.WindowID) {
	w := d.windows[id]
	if w == nil {
		return
	}
	d.Closed = append(d.Closed, id)
	if w.foreign {
		w.visible = false
		return
	}
	d.Post(host.Event{Kind: host.EventClose, Window: id})
}

// Windows implements host.Desktop.
func (d *Desktop) Windows() []host.WindowInfo {
	out := make([]host.WindowInfo, 0, len(d.order))
	for _, id := range d.order {
		w := d.windows[id]
		out = append(out, host.WindowInfo{ID: id, Class: w.class, Visible: w.visible, Bounds: w.bounds})
	}
	return out
}

// WindowAt implements host.Desktop. The topmost visible window wins; the
// owner window is the fallback.
func (d *Desktop) WindowAt(p image.Point) host.WindowID {
	for i := len(d.order) - 1; i >= 0; i-- {
		w := d.windows[d.order[i]]
		if w == nil || !w.visible || w.id == d.Owner {
			continue
		}
		if w.hit(p) {
			return w.id
		}
	}
	return d.Owner
}

func (d *Desktop) CursorPos() image.Point { return d.cursor }
func (d *Desktop) ActiveWindow() host.WindowID { return d.active }
func (d *Desktop) ForegroundWindow() host.WindowID { return d.foreground }
func (d *Desktop) ButtonsDown() host.Buttons { return d.buttons }
func (d *Desktop) KeyDown(k host.Key) bool { return d.keys[k] }
func (d *Desktop) Monitor(image.Point) (image.Rectangle, image.Rectangle) {
	return d.monitor, d.work
}

// Sleep implements host.Desktop by advancing the clock.
func (d *Desktop) Sleep(delta time.Duration) {
	d.Slept += delta
	d.Advance(delta)
}

func (d *Desktop) raise(id host.WindowID) {
	for i, other := range d.order {
		if other == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.order = append(d.order, id)
}

func (d *Desktop) remove(id host.WindowID) {
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

// Window is a simulated top-level window.
type Window struct {
	desktop *Desktop
	id      host.WindowID
	class   host.Class
	title   string
	bounds  image.Rectangle
	visible bool
	foreign bool
	region  *image.Rectangle
	dirty   image.Rectangle
	surface *image.RGBA
	timers  map[host.TimerID]*timer

	Shows       int
	Hides       int
	Destroyed   bool
	Invalidated []image.Rectangle
	Regions     []*image.Rectangle
}

var _ host.Window = (*Window)(nil)

func (w *Window) ID() host.WindowID { return w.id }
func (w *Window) Class() host.Class { return w.class }
func (w *Window) Bounds() image.Rectangle { return w.bounds }
func (w *Window) Visible() bool { return w.visible }
func (w *Window) Surface() host.Surface { return w.surface }
func (w *Window) RGBA() *image.RGBA { return w.surface }
func (w *Window) Region() *image.Rectangle { return w.region }

func (w *Window) SetBounds(r image.Rectangle) {
	if r.Size() != w.bounds.Size() {
		next := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(next, next.Bounds(), w.surface, image.Point{}, draw.Src)
		w.surface = next
		w.dirty = next.Bounds()
	}
	w.bounds = r
}

func (w *Window) Show() {
	if w.Destroyed {
		return
	}
	w.Shows++
	w.visible = true
	w.desktop.raise(w.id)
	w.dirty = image.Rect(0, 0, w.bounds.Dx(), w.bounds.Dy())
}

func (w *Window) Hide() {
	if !w.visible {
		return
	}
	w.Hides++
	w.visible = false
}

func (w *Window) Invalidate(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, w.bounds.Dx(), w.bounds.Dy()))
	if r.Empty() {
		return
	}
	w.Invalidated = append(w.Invalidated, r)
	w.dirty = w.dirty.Union(r)
}

func (w *Window) SetRegion(r *image.Rectangle) bool {
	if w.desktop.NoRegions {
		return false
	}
	if r != nil {
		clip := *r
		w.region = &clip
	} else {
		w.region = nil
	}
	w.Regions = append(w.Regions, w.region)
	return true
}

func (w *Window) SetTimer(id host.TimerID, every time.Duration) {
	w.timers[id] = &timer{id: id, every: every, due: w.desktop.now.Add(every)}
}

func (w *Window) KillTimer(id host.TimerID) {
	delete(w.timers, id)
}

// HasTimer reports whether timer id is armed.
func (w *Window) HasTimer(id host.TimerID) bool {
	_, ok := w.timers[id]
	return ok
}

func (w *Window) Destroy() {
	if w.Destroyed {
		return
	}
	w.Destroyed = true
	w.visible = false
	w.timers = map[host.TimerID]*timer{}
	w.desktop.remove(w.id)
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
