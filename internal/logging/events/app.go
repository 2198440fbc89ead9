package events

import "github.com/atomicstack/popmenu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Result(id int, text string) {
	logging.Trace("app.result", map[string]interface{}{"id": id, "text": text})
}

func (AppTracer) Stop(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}

func (AppTracer) FocusDisabled(reason string) {
	logging.Trace("app.focus_disabled", map[string]interface{}{"reason": reason})
}
