package events

import "github.com/atomicstack/personalisation-picker/internal/logging"

type NavTracer struct{}

type QueryTracer struct{}

type ConfigTracer struct{}

var (
	Nav    = NavTracer{}
	Query  = QueryTracer{}
	Config = ConfigTracer{}
)

func (NavTracer) Action(name string, generation uint64) {
	logging.Trace("nav.action", map[string]interface{}{"action": name, "generation": generation})
}

func (NavTracer) Ignored(name, reason string) {
	logging.Trace("nav.ignored", map[string]interface{}{"action": name, "reason": reason})
}

func (NavTracer) Stale(category string, generation, current uint64) {
	logging.Trace("nav.stale", map[string]interface{}{
		"category":   category,
		"generation": generation,
		"current":    current,
	})
}

func (NavTracer) Loaded(category, env string, count int) {
	logging.Trace("nav.loaded", map[string]interface{}{"category": category, "env": env, "count": count})
}

func (NavTracer) Failed(message string) {
	logging.Trace("nav.failed", map[string]interface{}{"message": message})
}

func (NavTracer) Copy(value string) {
	logging.Trace("nav.copy", map[string]interface{}{"value": value})
}

func (QueryTracer) CacheHit(resource string, count int) {
	logging.Trace("query.cache-hit", map[string]interface{}{"resource": resource, "count": count})
}

func (QueryTracer) Execute(resource, env string) {
	logging.Trace("query.execute", map[string]interface{}{"resource": resource, "env": env})
}

func (QueryTracer) Empty(resource, env string) {
	logging.Trace("query.empty", map[string]interface{}{"resource": resource, "env": env})
}

func (QueryTracer) Status(env string, status int) {
	logging.Trace("query.status", map[string]interface{}{"env": env, "status": status})
}

func (ConfigTracer) Fetch(env, location string) {
	logging.Trace("config.fetch", map[string]interface{}{"env": env, "location": location})
}

func (ConfigTracer) Loaded(env string, keys int) {
	logging.Trace("config.loaded", map[string]interface{}{"env": env, "keys": keys})
}

func (ConfigTracer) CacheCleared(resources []string) {
	logging.Trace("config.cache-cleared", map[string]interface{}{"resources": resources})
}
