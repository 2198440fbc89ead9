// Package ui hosts popup menus in a terminal. It has two halves that run on
// different goroutines and meet in Desktop.
//
// The Bubble Tea half:
//   - Model is the owner application. Update routes each tea.Msg through a
//     typed handler registry. Idle key and mouse input opens the menu; while
//     a menu is tracking, input is converted to host events (keys.go,
//     mouse.go) and fed to the desktop queue.
//   - View draws the owner screen into the owner grid and asks the desktop
//     to composite the visible menu windows over it (render.go).
//
// The engine half:
//   - Tracking runs through command.Bus as a tea.Cmd, so TrackPopup blocks
//     its own goroutine and drains input through Desktop.WaitEvent.
//   - Whatever the engine hands back to the owner (dispatched events,
//     command notifications, quit requests, redraw hints) travels as tea
//     messages through the function passed to Desktop.Attach.
//
// Activation follows tmux: a backend.Watcher samples the focused pane and
// the model tells the desktop whether the user is still looking at it. A
// change dismisses the open menu the same way switching windows would on a
// graphical desktop.
package ui
