package command

import (
	"image"
	"testing"

	"github.com/atomicstack/popmenu/internal/host"
	"github.com/atomicstack/popmenu/internal/host/sim"
	"github.com/atomicstack/popmenu/internal/menu"
)

func TestTrackReportsChosenText(t *testing.T) {
	d := sim.New(image.Rect(0, 0, 800, 600), image.Rect(0, 0, 800, 560))
	reg := menu.NewRegistry(d, menu.Options{Settings: menu.StaticSettings{NoAnimations: true}})
	m := reg.NewMenu()
	m.AddString(7, "&Seven", menu.StateEnabled)
	d.Script(func(d *sim.Desktop) { d.Type('s', false) })

	msg := New().Track(Request{Menu: m, Anchor: image.Pt(10, 10), Keyboard: true})()
	res, ok := msg.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", msg)
	}
	if res.ID != 7 || res.Text != "&Seven" {
		t.Fatalf("expected 7 &Seven, got %+v", res)
	}
}

func TestTrackWithoutMenu(t *testing.T) {
	msg := New().Track(Request{Notify: host.NoWindow})()
	if res, ok := msg.(Result); !ok || res.ID != 0 {
		t.Fatalf("expected empty result, got %#v", msg)
	}
}
