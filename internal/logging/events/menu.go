package events

import "github.com/atomicstack/popmenu/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

// Dismissal reasons reported by MenuTracer.Dismiss.
const (
	ReasonEscape            = "escape"
	ReasonOutsideClick      = "outside-click"
	ReasonActiveChanged     = "active-changed"
	ReasonForegroundChanged = "foreground-changed"
	ReasonStandardPopup     = "standard-popup"
	ReasonButtonOutside     = "button-outside"
	ReasonEscapeHeld        = "escape-held"
	ReasonRootHidden        = "root-hidden"
	ReasonDone              = "done"
	ReasonQuit              = "quit"
	ReasonClosed            = "closed"
)

func (MenuTracer) TrackStart(depth, x, y int, keyboard bool) {
	logging.Trace("menu.track.start", map[string]interface{}{
		"depth":    depth,
		"x":        x,
		"y":        y,
		"keyboard": keyboard,
	})
}

func (MenuTracer) TrackEnd(result int, quit bool) {
	logging.Trace("menu.track.end", map[string]interface{}{"result": result, "quit": quit})
}

func (MenuTracer) Select(depth, index int) {
	logging.Trace("menu.select", map[string]interface{}{"depth": depth, "index": index})
}

func (MenuTracer) Open(depth, index int, keyboard bool) {
	logging.Trace("menu.open", map[string]interface{}{"depth": depth, "index": index, "keyboard": keyboard})
}

func (MenuTracer) Pop(depth int) {
	logging.Trace("menu.pop", map[string]interface{}{"depth": depth})
}

func (MenuTracer) Commit(id int, delayed bool) {
	logging.Trace("menu.commit", map[string]interface{}{"id": id, "delayed": delayed})
}

func (MenuTracer) Dismiss(reason string) {
	logging.Trace("menu.dismiss", map[string]interface{}{"reason": reason})
}

func (MenuTracer) CloseForeign(count int) {
	logging.Trace("menu.close-foreign", map[string]interface{}{"count": count})
}

func (MenuTracer) Destroy(depth, result int) {
	logging.Trace("menu.destroy", map[string]interface{}{"depth": depth, "result": result})
}

func (MenuTracer) TypeAhead(query string, index int) {
	logging.Trace("menu.typeahead", map[string]interface{}{"query": query, "index": index})
}
