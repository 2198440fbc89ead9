package menu

import (
	"fmt"
	"image"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/logging"
	"github.com/atomicstack/popmenu/internal/logging/events"
	"github.com/atomicstack/popmenu/internal/text"
	"github.com/atomicstack/popmenu/internal/theme"
)

// Menu is one level of a popup menu tree. The root is the menu handed to
// TrackPopup; every submenu is owned by the item that opens it.
type Menu struct {
	reg   *Registry
	items []*item

	// parent is a back-reference only; ownership runs top-down.
	parent      *Menu
	parentIndex int

	font     *text.Font
	window   host.Window
	renderer theme.Renderer
	metrics  theme.Metrics
	// content is the size of the item area without the frame.
	content image.Point

	selection int
	openChild int
	result    int
	keyboard  bool
	notify    host.WindowID
	typed     string

	done       bool
	destroying bool
	delayed    bool
}

// Definition is a menu resource: an ordered list of entries, each possibly
// owning a nested definition.
type Definition struct {
	Items []DefinitionItem
}

type DefinitionItem struct {
	ID        int
	Text      string
	Separator bool
	Radio     bool
	Disabled  bool
	Checked   bool
	Submenu   *Definition
}

func (r *Registry) newMenu(parent *Menu, index int) *Menu {
	m := &Menu{
		reg:         r,
		parent:      parent,
		parentIndex: index,
		font:        r.font,
		selection:   -1,
		openChild:   -1,
	}
	if parent != nil {
		m.font = parent.font
	}
	return m
}

// NewMenu returns an empty root menu.
func (r *Registry) NewMenu() *Menu {
	return r.newMenu(nil, -1)
}

// FromDefinition builds a menu tree from def. Positions are preserved one to
// one and each nested definition becomes a submenu inheriting the font.
func (r *Registry) FromDefinition(def Definition) *Menu {
	m := r.NewMenu()
	m.load(def)
	return m
}

func (m *Menu) load(def Definition) {
	for _, d := range def.Items {
		info := ItemInfo{ID: d.ID, Text: d.Text}
		if d.Separator {
			info.Type |= TypeSeparator
		}
		if d.Radio {
			info.Type |= TypeRadio
		}
		if d.Disabled {
			info.State |= StateDisabled
		}
		if d.Checked {
			info.State |= StateChecked
		}
		if d.Submenu != nil && !d.Separator {
			sub := m.reg.newMenu(m, len(m.items))
			sub.load(*d.Submenu)
			info.Submenu = sub
		}
		m.items = append(m.items, newItem(info))
	}
}

// Definition exports the tree back into a definition.
func (m *Menu) Definition() Definition {
	def := Definition{Items: make([]DefinitionItem, 0, len(m.items))}
	for _, it := range m.items {
		d := DefinitionItem{
			ID:        it.id,
			Text:      it.text,
			Separator: it.separator,
			Radio:     it.radio,
			Disabled:  it.disabled,
			Checked:   it.checked,
		}
		if it.submenu != nil {
			sub := it.submenu.Definition()
			d.Submenu = &sub
		}
		def.Items = append(def.Items, d)
	}
	return def
}

// Parent returns the menu whose item opens m, or nil for a root.
func (m *Menu) Parent() *Menu { return m.parent }

// ParentIndex is the position of the owning item in the parent, or -1.
func (m *Menu) ParentIndex() int { return m.parentIndex }

// Root walks up to the top of the tree.
func (m *Menu) Root() *Menu {
	root := m
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (m *Menu) depth() int {
	d := 0
	for p := m.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// ItemCount reports the number of items at this level.
func (m *Menu) ItemCount() int { return len(m.items) }

// Selection reports the highlighted index, or -1.
func (m *Menu) Selection() int { return m.selection }

// OpenChild reports the index of the item whose submenu is open, or -1.
func (m *Menu) OpenChild() int { return m.openChild }

// Result is the command id that ended (or will end) tracking, or 0.
func (m *Menu) Result() int { return m.result }

// Window returns the popup window, which is nil until the first show.
func (m *Menu) Window() host.Window { return m.window }

// isAncestorOf reports whether m is other or one of its ancestors.
func (m *Menu) isAncestorOf(other *Menu) bool {
	for p := other; p != nil; p = p.parent {
		if p == m {
			return true
		}
	}
	return false
}

// AppendItem adds an item at the end. A submenu in info becomes owned by the
// new item; it must be a detached root from the same registry that is not an
// ancestor of m.
func (m *Menu) AppendItem(info ItemInfo) bool {
	if sub := info.Submenu; sub != nil {
		if info.IsSeparator() || sub.reg != m.reg || sub.parent != nil || sub.isAncestorOf(m) {
			return false
		}
		sub.parent = m
		sub.parentIndex = len(m.items)
		sub.setFont(m.font)
	}
	m.items = append(m.items, newItem(info))
	return true
}

// AddString appends a text item, or a separator when text is empty.
func (m *Menu) AddString(id int, label string, state State) bool {
	info := ItemInfo{ID: id, Text: label, State: state}
	if label == "" {
		info = ItemInfo{Type: TypeSeparator, State: state}
	}
	return m.AppendItem(info)
}

// DeleteAllItems removes every item, destroying owned submenus.
func (m *Menu) DeleteAllItems() {
	for _, it := range m.items {
		if it.submenu != nil {
			it.submenu.Destroy()
		}
	}
	m.items = nil
	m.selection = -1
	m.openChild = -1
}

// Destroy tears down windows and owned submenus. The menu must not be used
// afterwards.
func (m *Menu) Destroy() {
	m.DestroyTree(m.result)
	m.DeleteAllItems()
	if m.reg.root == m {
		m.reg.clear()
	}
}

// SetFont changes the font of m and every submenu below it. A nil descriptor
// restores the default; a face that fails to load degrades to the default.
func (m *Menu) SetFont(desc *text.Descriptor) {
	f := text.Default()
	if desc != nil {
		loaded, err := text.Open(*desc)
		if err != nil {
			logging.Error(fmt.Errorf("set font %s: %w", desc, err))
			events.Host.FontFallback(desc.String(), err)
		} else {
			f = loaded
		}
	}
	m.setFont(f)
}

func (m *Menu) setFont(f *text.Font) {
	m.font = f
	for _, it := range m.items {
		if it.submenu != nil {
			it.submenu.setFont(f)
		}
	}
}

// Font reports the current font.
func (m *Menu) Font() *text.Font { return m.font }
