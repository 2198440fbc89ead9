// Package host describes the desktop services a popup menu relies on:
// non-activating top-level windows, a single input queue, per-window timers,
// and a handful of global queries (cursor, active and foreground window,
// monitor geometry, button and key state).
//
// Coordinates are screen coordinates unless a method says otherwise. Window
// surfaces and regions use window-local coordinates with the origin at the
// window's top-left corner.
package host

import (
	"errors"
	"image"
	"time"
)

// ErrWindowCreate is returned (wrapped) when a desktop cannot create a window.
var ErrWindowCreate = errors.New("host: window creation failed")

// WindowID identifies a top-level window on the desktop. NoWindow is zero.
type WindowID uint64

const NoWindow WindowID = 0

// Class tells menus apart from other top-level windows.
type Class int

const (
	ClassOther Class = iota
	// ClassStandardPopup marks the desktop's own popup menus. Any visible
	// window of this class ends a tracking session.
	ClassStandardPopup
	// ClassMenu marks windows created for popmenu trees, in this process
	// or another.
	ClassMenu
)

func (c Class) String() string {
	switch c {
	case ClassStandardPopup:
		return "standard-popup"
	case ClassMenu:
		return "menu"
	default:
		return "other"
	}
}

// Surface is the drawing target of a window. Concrete types depend on the
// desktop (an *image.RGBA for raster desktops, a cell grid for terminals).
type Surface interface {
	Bounds() image.Rectangle
}

// WindowSpec describes a window to create. Windows are created hidden,
// topmost and never take activation.
type WindowSpec struct {
	Class  Class
	Bounds image.Rectangle
	Title  string
}

// Window is a top-level, non-activating window.
type Window interface {
	ID() WindowID
	Bounds() image.Rectangle
	SetBounds(r image.Rectangle)
	// Show displays the window without activating it.
	Show()
	Hide()
	Visible() bool
	// Invalidate schedules a paint event covering r (window coordinates).
	Invalidate(r image.Rectangle)
	// SetRegion clips the visible part of the window to r (window
	// coordinates). A nil r restores the full window. It reports whether the
	// desktop supports the request.
	SetRegion(r *image.Rectangle) bool
	SetTimer(id TimerID, every time.Duration)
	KillTimer(id TimerID)
	Surface() Surface
	Destroy()
}

// WindowInfo is a snapshot of a top-level window used for enumeration.
type WindowInfo struct {
	ID      WindowID
	Class   Class
	Visible bool
	Bounds  image.Rectangle
}

// Desktop is the windowing system seen by the menu engine. Implementations
// are used from a single goroutine.
type Desktop interface {
	CreateWindow(spec WindowSpec) (Window, error)

	// WaitEvent blocks until an event is available or timeout elapses. The
	// boolean is false on timeout.
	WaitEvent(timeout time.Duration) (Event, bool)
	// Dispatch delivers an event to its target window the normal way, as if
	// nobody had intercepted it.
	Dispatch(ev Event)
	// PostCommand queues an asynchronous command notification for target.
	PostCommand(target WindowID, id int)
	// PostQuit re-queues an application quit request.
	PostQuit(code int)
	// Close asks a window to close. For menu windows this arrives as an
	// EventClose on the owning process's queue.
	Close(id WindowID)

	Windows() []WindowInfo
	WindowAt(p image.Point) WindowID
	CursorPos() image.Point
	ActiveWindow() WindowID
	ForegroundWindow() WindowID
	ButtonsDown() Buttons
	KeyDown(k Key) bool
	// Monitor returns the bounds and work area of the monitor nearest p.
	Monitor(p image.Point) (bounds, work image.Rectangle)

	Sleep(d time.Duration)
}
