package menu

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/popmenu/internal/logging/events"
	"github.com/atomicstack/popmenu/internal/text"
)

// typeAhead appends r to the node's search buffer and selects the best fuzzy
// match among selectable labels. It never commits. On a miss the buffer
// restarts from r alone, and is dropped if that misses too.
func (m *Menu) typeAhead(r rune) bool {
	query := m.typed + string(r)
	idx := m.bestMatch(query)
	if idx < 0 && m.typed != "" {
		query = string(r)
		idx = m.bestMatch(query)
	}
	events.Menu.TypeAhead(query, idx)
	if idx < 0 {
		m.typed = ""
		return false
	}
	m.typed = query
	m.SetSelection(idx)
	return true
}

func (m *Menu) resetTypeAhead() {
	m.typed = ""
}

func (m *Menu) bestMatch(query string) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}
	labels := make([]string, 0, len(m.items))
	index := make([]int, 0, len(m.items))
	for i, it := range m.items {
		if !it.selectable() {
			continue
		}
		labels = append(labels, text.ParseLabel(it.text).Display)
		index = append(index, i)
	}
	ranks := fuzzy.RankFindFold(query, labels)
	if len(ranks) == 0 {
		return -1
	}
	// lower distance first, then menu order
	sort.SliceStable(ranks, func(a, b int) bool {
		if ranks[a].Distance != ranks[b].Distance {
			return ranks[a].Distance < ranks[b].Distance
		}
		return ranks[a].OriginalIndex < ranks[b].OriginalIndex
	})
	return index[ranks[0].OriginalIndex]
}
