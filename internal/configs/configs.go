// Package configs loads the per-environment config files and flattens them
// into key/value maps.
package configs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/tidwall/jsonc"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownEnvironment is returned when a lookup names an environment that
// was not loaded.
var ErrUnknownEnvironment = errors.New("unknown environment")

// ErrMissingKey is returned when an environment lacks a requested key.
var ErrMissingKey = errors.New("missing config key")

// Source names the config file location for one environment.
type Source struct {
	Env      string
	Location string
}

// Values is the flattened key/value content of one config file.
type Values = map[string]string

// Set holds the loaded config of every environment in declaration order.
type Set struct {
	order  []string
	values map[string]Values
}

// NewSet builds a Set from ordered environment names and their values.
// Environments missing from values get an empty map.
func NewSet(order []string, values map[string]Values) Set {
	s := Set{
		order:  append([]string(nil), order...),
		values: make(map[string]Values, len(order)),
	}
	for _, env := range order {
		src := values[env]
		dup := make(Values, len(src))
		for k, v := range src {
			dup[k] = v
		}
		s.values[env] = dup
	}
	return s
}

// Environments returns environment names in declaration order.
func (s Set) Environments() []string {
	return append([]string(nil), s.order...)
}

// Len reports how many environments are loaded.
func (s Set) Len() int {
	return len(s.order)
}

// Has reports whether env was loaded.
func (s Set) Has(env string) bool {
	_, ok := s.values[env]
	return ok
}

// Values returns a copy of the flattened config for env.
func (s Set) Values(env string) (Values, bool) {
	src, ok := s.values[env]
	if !ok {
		return nil, false
	}
	dup := make(Values, len(src))
	for k, v := range src {
		dup[k] = v
	}
	return dup, true
}

// Value resolves a single config key for env.
func (s Set) Value(env, key string) (string, error) {
	values, ok := s.values[env]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownEnvironment, env)
	}
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w %q in %s config", ErrMissingKey, key, env)
	}
	return v, nil
}

// LoadError reports the environment whose config file could not be loaded.
type LoadError struct {
	Env      string
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s config from %s: %v", e.Env, e.Location, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches config files over HTTP(S) or from the local filesystem.
type Loader struct {
	Sources []Source
	Client  *http.Client
}

// NewLoader creates a loader for the provided sources.
func NewLoader(sources []Source, timeout time.Duration) *Loader {
	return &Loader{
		Sources: append([]Source(nil), sources...),
		Client:  &http.Client{Timeout: timeout},
	}
}

// LoadAll fetches every environment concurrently. Either every file loads
// and the full Set is returned, or the first failure is returned and no
// partial result is exposed.
func (l *Loader) LoadAll(ctx context.Context) (Set, error) {
	if len(l.Sources) == 0 {
		return Set{}, errors.New("no environments configured")
	}
	results := make([]Values, len(l.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range l.Sources {
		i, src := i, src
		g.Go(func() error {
			values, err := l.Load(gctx, src)
			if err != nil {
				return &LoadError{Env: src.Env, Location: src.Location, Err: err}
			}
			results[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Set{}, err
	}
	order := make([]string, 0, len(l.Sources))
	values := make(map[string]Values, len(l.Sources))
	for i, src := range l.Sources {
		order = append(order, src.Env)
		values[src.Env] = results[i]
	}
	return NewSet(order, values), nil
}

// Load fetches and flattens a single config file.
func (l *Loader) Load(ctx context.Context, src Source) (Values, error) {
	events.Config.Fetch(src.Env, src.Location)
	data, err := l.read(ctx, src.Location)
	if err != nil {
		return nil, err
	}
	values, err := Parse(data)
	if err != nil {
		return nil, err
	}
	events.Config.Loaded(src.Env, len(values))
	return values, nil
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	u, err := url.Parse(location)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return l.fetch(ctx, u.String())
	}
	path := location
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read config body: %w", err)
	}
	return body, nil
}

type configFile struct {
	Data []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"data"`
}

// Parse flattens a `{ "data": [ {"key": ..., "value": ...} ] }` document.
// Comments and trailing commas are tolerated. Later duplicates win.
func Parse(data []byte) (Values, error) {
	var file configFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if file.Data == nil {
		return nil, errors.New("parse config file: missing data array")
	}
	values := make(Values, len(file.Data))
	for _, entry := range file.Data {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			continue
		}
		values[key] = entry.Value
	}
	return values, nil
}
