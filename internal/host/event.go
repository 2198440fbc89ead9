package host

import (
	"fmt"
	"image"
)

type EventKind int

const (
	EventNone EventKind = iota
	EventPointerMove
	EventButtonDown
	EventButtonUp
	EventKeyDown
	EventChar
	EventTimer
	EventPaint
	EventClose
	EventQuit
)

var eventKindNames = map[EventKind]string{
	EventNone:        "none",
	EventPointerMove: "pointer-move",
	EventButtonDown:  "button-down",
	EventButtonUp:    "button-up",
	EventKeyDown:     "key-down",
	EventChar:        "char",
	EventTimer:       "timer",
	EventPaint:       "paint",
	EventClose:       "close",
	EventQuit:        "quit",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Button is a pointer button. Buttons is a set of them.
type Button uint8

const (
	ButtonLeft Button = 1 << iota
	ButtonRight
	ButtonMiddle
)

type Buttons = Button

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyHome
	KeyEnd
	KeyTab
	KeyBackspace
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

type TimerID int

// Event is a single message from the desktop queue.
type Event struct {
	Kind   EventKind
	Window WindowID
	// Point is the pointer position in screen coordinates for pointer events.
	Point  image.Point
	Button Button
	Double bool
	Key    Key
	Rune   rune
	Alt    bool
	Timer  TimerID
	// Rect is the dirty area of a paint event in window coordinates.
	Rect image.Rectangle
	Code int
}

// IsButton reports whether the event is a pointer button press or release.
func (e Event) IsButton() bool {
	return e.Kind == EventButtonDown || e.Kind == EventButtonUp
}

// IsPointer reports whether the event carries a pointer position.
func (e Event) IsPointer() bool {
	return e.Kind == EventPointerMove || e.IsButton()
}

// IsKeyboard reports whether the event comes from the keyboard.
func (e Event) IsKeyboard() bool {
	return e.Kind == EventKeyDown || e.Kind == EventChar
}
