package events

import "github.com/atomicstack/styleselect/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Expand(rows int) {
	logging.Trace("dropdown.expand", map[string]interface{}{"rows": rows})
}

func (UITracer) Collapse(reason string) {
	logging.Trace("dropdown.collapse", map[string]interface{}{"reason": reason})
}

func (UITracer) Cursor(cursor int, id string) {
	logging.Trace("dropdown.cursor", map[string]interface{}{"cursor": cursor, "id": id})
}

func (UITracer) Refocus() {
	logging.Trace("canvas.focus", nil)
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (CommandTracer) Send(id string) {
	logging.Trace("command.send", map[string]interface{}{"id": id})
}

func (CommandTracer) Apply(style, family string) {
	logging.Trace("style.apply", map[string]interface{}{"style": style, "family": family})
}

func (CommandTracer) Unhandled(style, docType string) {
	logging.Trace("style.apply.unhandled", map[string]interface{}{"style": style, "docType": docType})
}

func (CommandTracer) Skip(id string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id})
}
