package events

import "github.com/atomicstack/popmenu/internal/logging"

type UITracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Command = CommandTracer{}
)

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Key(key string, tracking bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "tracking": tracking})
}

func (UITracer) Mouse(action, button string, x, y int) {
	logging.Trace("ui.mouse", map[string]interface{}{"action": action, "button": button, "x": x, "y": y})
}

func (UITracer) Focus(focused bool) {
	logging.Trace("ui.focus", map[string]interface{}{"focused": focused})
}

func (CommandTracer) Queue(x, y int, keyboard bool) {
	logging.Trace("command.queue", map[string]interface{}{"x": x, "y": y, "keyboard": keyboard})
}

func (CommandTracer) Result(id int, text string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "text": text})
}

func (CommandTracer) Skip(reason string) {
	logging.Trace("command.skip", map[string]interface{}{"reason": reason})
}
