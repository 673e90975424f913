// Package catalog declares the personalisation categories shown at the top
// level of the picker and binds them to query-backed behaviors.
package catalog

import (
	"fmt"
	"strings"

	"github.com/atomicstack/personalisation-picker/internal/cache"
	"github.com/atomicstack/personalisation-picker/internal/menu"
)

// Definition describes one category and the query that populates it.
type Definition struct {
	Key      string   `yaml:"key" toml:"key"`
	Title    string   `yaml:"title" toml:"title"`
	Resource string   `yaml:"resource" toml:"resource"`
	Query    string   `yaml:"query" toml:"query"`
	Path     []string `yaml:"path" toml:"path"`
	Field    string   `yaml:"field" toml:"field"`
}

// Builtins returns the default category definitions.
func Builtins() []Definition {
	return []Definition{
		{
			Key:      "segments",
			Title:    "Customer Segments",
			Resource: "segments",
			Query: `query {
    allCustomerSegments {
        name
    }
}`,
			Path:  []string{"allCustomerSegments"},
			Field: "name",
		},
		{
			Key:      "cartrules",
			Title:    "Cart Price Rules",
			Resource: "cartRules",
			Query: `query {
    allCartRules {
        name
    }
}`,
			Path:  []string{"allCartRules"},
			Field: "name",
		},
		{
			Key:      "catalogrules",
			Title:    "Catalog Price Rules",
			Resource: "catalogRules",
			Query: `query {
    allCatalogRules {
        name
    }
}`,
			Path:  []string{"allCatalogRules"},
			Field: "name",
		},
	}
}

// Validate checks a definition list for missing fields and duplicate keys.
func Validate(defs []Definition) error {
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		key := strings.TrimSpace(def.Key)
		if key == "" {
			return fmt.Errorf("category %d: key is required", i)
		}
		if strings.Contains(key, menu.KeyDelimiter) {
			return fmt.Errorf("category %q: key must not contain %q", key, menu.KeyDelimiter)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("category %q: duplicate key", key)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(def.Title) == "" {
			return fmt.Errorf("category %q: title is required", key)
		}
		if strings.TrimSpace(def.Query) == "" {
			return fmt.Errorf("category %q: query is required", key)
		}
	}
	return nil
}

// Resources lists the cache resource names used by defs.
func Resources(defs []Definition) []string {
	out := make([]string, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.resource())
	}
	return out
}

// Categories binds definitions to query behaviors sharing one cache.
func Categories(defs []Definition, exec Executor, c *cache.Cache) []menu.Category {
	categories := make([]menu.Category, 0, len(defs))
	for _, def := range defs {
		categories = append(categories, menu.Category{
			Key:   def.Key,
			Title: def.Title,
			Behavior: QueryBehavior{
				Resource: def.resource(),
				Query:    def.Query,
				Path:     def.Path,
				Field:    def.Field,
				Executor: exec,
				Cache:    c,
			},
		})
	}
	return categories
}

func (d Definition) resource() string {
	if r := strings.TrimSpace(d.Resource); r != "" {
		return r
	}
	return d.Key
}
