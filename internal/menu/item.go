package menu

import "image"

// Type flags describe how an item is drawn.
type Type uint8

const (
	TypeSeparator Type = 1 << iota
	// TypeRadio draws the check as a bullet instead of a checkmark.
	TypeRadio
)

// TypeString is a plain text item.
const TypeString Type = 0

// State flags describe whether an item is usable and checked.
type State uint8

const (
	StateDisabled State = 1 << iota
	StateChecked
)

const StateEnabled State = 0

// ItemInfo describes an item to append or reports an existing one.
type ItemInfo struct {
	ID      int
	Type    Type
	State   State
	Text    string
	Submenu *Menu
}

func (i ItemInfo) IsSeparator() bool { return i.Type&TypeSeparator != 0 }
func (i ItemInfo) IsRadio() bool     { return i.Type&TypeRadio != 0 }
func (i ItemInfo) IsDisabled() bool  { return i.State&StateDisabled != 0 }
func (i ItemInfo) IsChecked() bool   { return i.State&StateChecked != 0 }

type item struct {
	id        int
	separator bool
	radio     bool
	disabled  bool
	checked   bool
	text      string
	submenu   *Menu
	// bounds is in client coordinates and only valid after layout.
	bounds image.Rectangle
}

func newItem(info ItemInfo) *item {
	it := &item{
		separator: info.IsSeparator(),
		radio:     info.IsRadio(),
		disabled:  info.IsDisabled(),
		checked:   info.IsChecked(),
		submenu:   info.Submenu,
	}
	if !it.separator {
		it.id = info.ID
		it.text = info.Text
	}
	return it
}

// selectable reports whether pointer and keyboard may land on the item.
func (it *item) selectable() bool {
	return !it.separator && !it.disabled
}

func (it *item) info() ItemInfo {
	info := ItemInfo{ID: it.id, Text: it.text, Submenu: it.submenu}
	if it.separator {
		info.Type |= TypeSeparator
	}
	if it.radio {
		info.Type |= TypeRadio
	}
	if it.disabled {
		info.State |= StateDisabled
	}
	if it.checked {
		info.State |= StateChecked
	}
	return info
}

// Addressing selects how a Ref is resolved.
type Addressing int

const (
	// ByPosition resolves a zero-based index within one menu.
	ByPosition Addressing = iota
	// ByCommand searches the whole subtree for an item id.
	ByCommand
)

// Ref addresses an item.
type Ref struct {
	Mode  Addressing
	Value int
}

// Position addresses the i-th item of a menu.
func Position(i int) Ref { return Ref{Mode: ByPosition, Value: i} }

// Command addresses the first item with the given id in a subtree.
func Command(id int) Ref { return Ref{Mode: ByCommand, Value: id} }
