package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atomicstack/personalisation-picker/internal/cache"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// Executor runs a GraphQL query for an environment. A nil result with a
// nil error means the endpoint answered with a non-success status.
type Executor interface {
	Execute(ctx context.Context, query, env string) (json.RawMessage, error)
}

// QueryBehavior loads leaf items by running a GraphQL query, caching the
// result under Resource for the environment it ran against.
type QueryBehavior struct {
	Resource string
	Query    string
	Path     []string
	Field    string
	Executor Executor
	Cache    *cache.Cache
}

// Load implements menu.Behavior.
func (q QueryBehavior) Load(ctx context.Context, env string) ([]menu.Item, error) {
	var epoch uint64
	if q.Cache != nil {
		if items, ok := q.Cache.Get(env, q.Resource); ok {
			events.Query.CacheHit(q.Resource, len(items))
			return items, nil
		}
		epoch = q.Cache.Epoch()
	}
	events.Query.Execute(q.Resource, env)
	data, err := q.Executor.Execute(ctx, q.Query, env)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Resource, err)
	}
	if data == nil {
		events.Query.Empty(q.Resource, env)
		return []menu.Item{}, nil
	}
	names, err := ExtractNames(data, q.Path, q.Field)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Resource, err)
	}
	items := menu.LeafItems(names)
	if q.Cache != nil && len(items) > 0 {
		q.Cache.PutIf(epoch, env, q.Resource, items)
	}
	return items, nil
}

// ExtractNames walks path inside data to an array and returns the field of
// every object element. A missing or null path yields no names; elements
// without a usable field are skipped.
func ExtractNames(data json.RawMessage, path []string, field string) ([]string, error) {
	if field == "" {
		field = "name"
	}
	var node interface{}
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	for _, segment := range path {
		if node == nil {
			return nil, nil
		}
		obj, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("path %q: expected object", strings.Join(path, "."))
		}
		node = obj[segment]
	}
	if node == nil {
		return nil, nil
	}
	list, ok := node.([]interface{})
	if !ok {
		return nil, fmt.Errorf("path %q: expected array", strings.Join(path, "."))
	}
	names := make([]string, 0, len(list))
	for _, element := range list {
		obj, ok := element.(map[string]interface{})
		if !ok {
			continue
		}
		switch v := obj[field].(type) {
		case string:
			if v != "" {
				names = append(names, v)
			}
		case float64:
			names = append(names, fmt.Sprintf("%v", v))
		}
	}
	return names, nil
}
