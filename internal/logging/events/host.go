package events

import "github.com/atomicstack/popmenu/internal/logging"

type HostTracer struct{}

var Host = HostTracer{}

func (HostTracer) WindowCreate(id uint64, w, h int) {
	logging.Trace("host.window.create", map[string]interface{}{"id": id, "width": w, "height": h})
}

func (HostTracer) WindowDestroy(id uint64) {
	logging.Trace("host.window.destroy", map[string]interface{}{"id": id})
}

func (HostTracer) CreateFailed(err error) {
	if err == nil {
		return
	}
	logging.Trace("host.window.error", map[string]interface{}{"error": err.Error()})
}

func (HostTracer) ThemeFallback(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("host.theme.fallback", payload)
}

func (HostTracer) FontFallback(desc string, err error) {
	payload := map[string]interface{}{"font": desc}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("host.font.fallback", payload)
}

func (HostTracer) Focus(session, pane string, err error) {
	payload := map[string]interface{}{"session": session, "pane": pane}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("host.focus", payload)
}
