// Package graphql executes GET-style GraphQL queries against the commerce
// endpoint configured for an environment.
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/mitchellh/mapstructure"
)

// EndpointKey is the config key holding the GraphQL endpoint.
const EndpointKey = "commerce-core-endpoint"

// StoreViewKey is the optional config key sent as the Store header.
const StoreViewKey = "commerce-store-view-code"

// space matches what a JavaScript \s does; RE2's \s is ASCII only.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	layoutWhitespace = regexp.MustCompile(`(?:\r\n|\r|\n|\t|` + space + `{4})`)
	repeatedSpace    = regexp.MustCompile(space + space + `+`)
)

// ConfigSource exposes the flattened config of an environment.
type ConfigSource interface {
	Values(env string) (map[string]string, bool)
}

// Settings are the endpoint-related values decoded from an environment's
// config.
type Settings struct {
	Endpoint      string `mapstructure:"commerce-core-endpoint"`
	StoreViewCode string `mapstructure:"commerce-store-view-code"`
}

// DecodeSettings extracts Settings from a flattened config map.
func DecodeSettings(values map[string]string) (Settings, error) {
	var settings Settings
	if err := mapstructure.WeakDecode(values, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode endpoint settings: %w", err)
	}
	if settings.Endpoint == "" {
		return Settings{}, fmt.Errorf("config key %q is empty or missing", EndpointKey)
	}
	return settings, nil
}

// Normalize collapses layout whitespace so the query fits on one line.
func Normalize(query string) string {
	collapsed := layoutWhitespace.ReplaceAllString(query, " ")
	return repeatedSpace.ReplaceAllString(collapsed, " ")
}

// Client runs queries for any environment present in its config source.
type Client struct {
	configs ConfigSource
	http    *http.Client
}

// NewClient creates a client resolving endpoints from configs.
func NewClient(configs ConfigSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{configs: configs, http: httpClient}
}

type response struct {
	Data json.RawMessage `json:"data"`
}

// Execute sends query to the environment's endpoint and returns the data
// member of the response. A non-2xx status yields nil data and a nil error;
// only transport, configuration, or decoding problems return an error.
func (c *Client) Execute(ctx context.Context, query, env string) (json.RawMessage, error) {
	values, ok := c.configs.Values(env)
	if !ok {
		return nil, fmt.Errorf("no config loaded for environment %q", env)
	}
	settings, err := DecodeSettings(values)
	if err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(settings.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", EndpointKey, err)
	}
	params := endpoint.Query()
	params.Add("query", Normalize(query))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if settings.StoreViewCode != "" {
		req.Header.Set("Store", settings.StoreViewCode)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		events.Query.Status(env, resp.StatusCode)
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}
	if len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return nil, nil
	}
	return decoded.Data, nil
}
