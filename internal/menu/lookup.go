package menu

import "image"

func (m *Menu) itemAt(i int) *item {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	return m.items[i]
}

// IndexFromID finds the first item with id, looking at this level before
// descending into submenus in order. It returns the owning menu and the local
// index, or (nil, -1). Id 0 never matches.
func (m *Menu) IndexFromID(id int) (*Menu, int) {
	if id == 0 {
		return nil, -1
	}
	for i, it := range m.items {
		if it.id == id {
			return m, i
		}
	}
	for _, it := range m.items {
		if it.submenu == nil {
			continue
		}
		if owner, i := it.submenu.IndexFromID(id); owner != nil {
			return owner, i
		}
	}
	return nil, -1
}

// resolve turns a reference into its owning menu and index.
func (m *Menu) resolve(ref Ref) (*Menu, int, *item) {
	switch ref.Mode {
	case ByPosition:
		if it := m.itemAt(ref.Value); it != nil {
			return m, ref.Value, it
		}
	case ByCommand:
		if owner, i := m.IndexFromID(ref.Value); owner != nil {
			return owner, i, owner.items[i]
		}
	}
	return nil, -1, nil
}

// Item reports the descriptor of the referenced item.
func (m *Menu) Item(ref Ref) (ItemInfo, bool) {
	_, _, it := m.resolve(ref)
	if it == nil {
		return ItemInfo{}, false
	}
	return it.info(), true
}

// SubMenu returns the submenu owned by the referenced item.
func (m *Menu) SubMenu(ref Ref) *Menu {
	if _, _, it := m.resolve(ref); it != nil {
		return it.submenu
	}
	return nil
}

// ItemRect reports the referenced item's rectangle in client coordinates as
// of the last layout.
func (m *Menu) ItemRect(ref Ref) (image.Rectangle, bool) {
	_, _, it := m.resolve(ref)
	if it == nil {
		return image.Rectangle{}, false
	}
	return it.bounds, true
}

// EnableItem enables or disables the referenced item.
func (m *Menu) EnableItem(ref Ref, enabled bool) bool {
	_, _, it := m.resolve(ref)
	if it == nil {
		return false
	}
	it.disabled = !enabled
	return true
}

// CheckItem sets the check state of the referenced item and switches it to
// checkmark rendering.
func (m *Menu) CheckItem(ref Ref, checked bool) bool {
	_, _, it := m.resolve(ref)
	if it == nil {
		return false
	}
	it.checked = checked
	it.radio = false
	return true
}

// CheckRadioItem turns first..last into a radio group with only check
// checked. With ByCommand the three ids must resolve to the same menu.
func (m *Menu) CheckRadioItem(first, last, check int, mode Addressing) bool {
	owner := m
	if mode == ByCommand {
		o1, i1 := m.IndexFromID(first)
		o2, i2 := m.IndexFromID(last)
		o3, i3 := m.IndexFromID(check)
		if o1 == nil || o1 != o2 || o2 != o3 {
			return false
		}
		owner, first, last, check = o1, i1, i2, i3
	}
	if first > last || owner.itemAt(first) == nil || owner.itemAt(last) == nil {
		return false
	}
	if check < first || check > last {
		return false
	}
	for i := first; i <= last; i++ {
		it := owner.items[i]
		it.radio = true
		it.checked = i == check
	}
	return true
}

// ItemText returns the raw label of the referenced item, access markers
// included. Separators have an empty label.
func (m *Menu) ItemText(ref Ref) (string, bool) {
	_, _, it := m.resolve(ref)
	if it == nil {
		return "", false
	}
	return it.text, true
}

// ItemTextN is ItemText bounded like a copy into a buffer of capacity
// runes: at most capacity-1 runes are returned.
func (m *Menu) ItemTextN(ref Ref, capacity int) (string, bool) {
	if capacity <= 0 {
		return "", false
	}
	label, ok := m.ItemText(ref)
	if !ok {
		return "", false
	}
	runes := []rune(label)
	if len(runes) > capacity-1 {
		runes = runes[:capacity-1]
	}
	return string(runes), true
}

// idFromIndex returns the id of the item at i, or 0.
func (m *Menu) idFromIndex(i int) int {
	if it := m.itemAt(i); it != nil {
		return it.id
	}
	return 0
}
