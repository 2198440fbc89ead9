// Package theme draws menu parts. A Renderer paints a part (background,
// item, separator, check glyph, submenu arrow) in a state (normal, hot,
// disabled) into a window surface and reports the metrics layout needs.
// Raster draws into RGBA images; Terminal draws into cell grids styled with
// Lip Gloss.
package theme

import "github.com/charmbracelet/lipgloss"

// StyleID indexes a terminal style. Grid cells store the id rather than the
// style itself so runs of equal cells can be compared cheaply.
type StyleID uint8

const (
	StyleNone StyleID = iota
	StyleFrame
	StyleItem
	StyleItemHot
	StyleItemDisabled
	StyleItemDisabledHot
	StyleSeparator
	StyleStatus
	StyleInfo
	StyleError
)

// Styles describes reusable Lip Gloss styles shared by the terminal renderer
// and the terminal desktop.
type Styles struct {
	Desktop          *lipgloss.Style
	Frame            *lipgloss.Style
	Item             *lipgloss.Style
	SelectedItem     *lipgloss.Style
	DisabledItem     *lipgloss.Style
	DisabledSelected *lipgloss.Style
	Separator        *lipgloss.Style
	Status           *lipgloss.Style
	Info             *lipgloss.Style
	Error            *lipgloss.Style
}

var defaultStyles = Styles{
	Desktop: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Frame: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	DisabledItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("235")),
	),
	DisabledSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("238")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("235")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

// For returns the style registered under id, falling back to Desktop.
func (s *Styles) For(id StyleID) *lipgloss.Style {
	var style *lipgloss.Style
	switch id {
	case StyleFrame:
		style = s.Frame
	case StyleItem:
		style = s.Item
	case StyleItemHot:
		style = s.SelectedItem
	case StyleItemDisabled:
		style = s.DisabledItem
	case StyleItemDisabledHot:
		style = s.DisabledSelected
	case StyleSeparator:
		style = s.Separator
	case StyleStatus:
		style = s.Status
	case StyleInfo:
		style = s.Info
	case StyleError:
		style = s.Error
	}
	if style == nil {
		style = s.Desktop
	}
	return style
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
