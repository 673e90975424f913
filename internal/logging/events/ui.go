package events

import "github.com/atomicstack/personalisation-picker/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type EffectTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Action = ActionTracer{}
	Effect = EffectTracer{}
)

// Enter records the row chosen with enter, along with the filter that was
// active when it was picked.
func (UITracer) Enter(levelID, key, filter string) {
	logging.Trace("ui.enter", map[string]interface{}{"level": levelID, "key": key, "filter": filter})
}

func (UITracer) Cursor(levelID string, row int) {
	logging.Trace("ui.cursor", map[string]interface{}{"level": levelID, "row": row})
}

func (UITracer) SettingsCursor(env string, row int) {
	logging.Trace("ui.settings-cursor", map[string]interface{}{"env": env, "row": row})
}

func (FilterTracer) Changed(levelID, query string, matches int) {
	logging.Trace("filter.changed", map[string]interface{}{"level": levelID, "query": query, "matches": matches})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.cleared", map[string]interface{}{"level": levelID})
}

// Rejected records an action the controller refused to apply.
func (ActionTracer) Rejected(action string, err error) {
	logging.Trace("action.rejected", map[string]interface{}{"action": action, "error": errText(err)})
}

// Failed records a load that completed with an error.
func (ActionTracer) Failed(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.failed", map[string]interface{}{"source": source, "error": err.Error()})
}

func (ActionTracer) Info(message string) {
	logging.Trace("action.info", map[string]interface{}{"message": message})
}

func (EffectTracer) Queued(id, label string) {
	logging.Trace("effect.queued", map[string]interface{}{"id": id, "label": label})
}

func (EffectTracer) Dropped(id, label string) {
	logging.Trace("effect.dropped", map[string]interface{}{"id": id, "label": label})
}

func (EffectTracer) Silent(id, label string) {
	logging.Trace("effect.silent", map[string]interface{}{"id": id, "label": label})
}

func (EffectTracer) Done(id, label, action string) {
	logging.Trace("effect.done", map[string]interface{}{"id": id, "label": label, "action": action})
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
