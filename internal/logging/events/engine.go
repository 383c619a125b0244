package events

import "github.com/atomicstack/styleselect/internal/logging"

type EngineTracer struct{}

var Engine = EngineTracer{}

func (EngineTracer) Connect(session, url string) {
	logging.Trace("engine.connect", map[string]interface{}{"session": session, "url": url})
}

func (EngineTracer) Send(session, frame string) {
	logging.Trace("engine.send", map[string]interface{}{"session": session, "frame": frame})
}

func (EngineTracer) Frame(session, prefix string, size int) {
	logging.Trace("engine.frame", map[string]interface{}{"session": session, "prefix": prefix, "size": size})
}

func (EngineTracer) Closed(session string, err error) {
	payload := map[string]interface{}{"session": session}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("engine.closed", payload)
}
