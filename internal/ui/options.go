package ui

import (
	"image"

	"github.com/atomicstack/popmenu/internal/menu"
	"github.com/atomicstack/popmenu/internal/text"
	"github.com/atomicstack/popmenu/internal/theme"
)

// MenuOptions configures a registry whose menus live on a terminal
// Desktop: cell metrics, the terminal renderer, and the given settings.
func MenuOptions(settings menu.Settings, exempt []image.Rectangle) menu.Options {
	renderer := theme.NewTerminal()
	return menu.Options{
		Theme:    theme.Static(renderer),
		Fallback: renderer,
		Measurer: text.CellMeasurer{},
		Settings: settings,
		Exempt:   exempt,
	}
}
