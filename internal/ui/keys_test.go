package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/popmenu/internal/host"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHostEventsMapsNavigationKeys(t *testing.T) {
	keys := defaultKeyMap()
	cases := []struct {
		msg  tea.KeyMsg
		want host.Key
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, host.KeyUp},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, host.KeyUp},
		{tea.KeyMsg{Type: tea.KeyDown}, host.KeyDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, host.KeyLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, host.KeyRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, host.KeyEnter},
		{tea.KeyMsg{Type: tea.KeyEsc}, host.KeyEscape},
		{tea.KeyMsg{Type: tea.KeyHome}, host.KeyHome},
		{tea.KeyMsg{Type: tea.KeyEnd}, host.KeyEnd},
		{tea.KeyMsg{Type: tea.KeyTab}, host.KeyTab},
		{tea.KeyMsg{Type: tea.KeyBackspace}, host.KeyBackspace},
	}
	for _, tc := range cases {
		evs := keys.hostEvents(tc.msg)
		if len(evs) != 1 || evs[0].Kind != host.EventKeyDown || evs[0].Key != tc.want {
			t.Fatalf("%s: expected key %s, got %+v", tc.msg, tc.want, evs)
		}
	}
}

func TestHostEventsSplitsRunes(t *testing.T) {
	keys := defaultKeyMap()
	evs := keys.hostEvents(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab"), Alt: true})
	if len(evs) != 2 {
		t.Fatalf("expected one event per rune, got %+v", evs)
	}
	for i, r := range "ab" {
		if evs[i].Kind != host.EventChar || evs[i].Rune != r || !evs[i].Alt {
			t.Fatalf("event %d: expected alt char %q, got %+v", i, r, evs[i])
		}
	}
	space := keys.hostEvents(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(space) != 1 || space[0].Rune != ' ' {
		t.Fatalf("expected space char, got %+v", space)
	}
}

func TestHostEventsInterruptQuits(t *testing.T) {
	evs := defaultKeyMap().hostEvents(tea.KeyMsg{Type: tea.KeyCtrlC})
	if len(evs) != 1 || evs[0].Kind != host.EventQuit {
		t.Fatalf("expected quit event, got %+v", evs)
	}
	if evs := defaultKeyMap().hostEvents(tea.KeyMsg{Type: tea.KeyCtrlA}); len(evs) != 0 {
		t.Fatalf("expected unmapped control key dropped, got %+v", evs)
	}
}

func TestHelpLineNamesBindings(t *testing.T) {
	line := defaultKeyMap().helpLine()
	if !strings.Contains(line, "m to open menu") || !strings.Contains(line, "q to quit") {
		t.Fatalf("unexpected help line %q", line)
	}
}
