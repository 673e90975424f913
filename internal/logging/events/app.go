package events

import "github.com/atomicstack/personalisation-picker/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

// Start records the launch context. info is serialised as JSON.
func (AppTracer) Start(info interface{}) {
	logging.Trace("app.start", map[string]interface{}{"startup": info})
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}
