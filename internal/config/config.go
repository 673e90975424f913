package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/app"
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envEnvironments = "PERSONALISATION_PICKER_ENV"
	envDefaultEnv   = "PERSONALISATION_PICKER_DEFAULT_ENV"
	envDefinition   = "PERSONALISATION_PICKER_DEFINITION"
	envTimeout      = "PERSONALISATION_PICKER_TIMEOUT"
	envWidth        = "PERSONALISATION_PICKER_WIDTH"
	envHeight       = "PERSONALISATION_PICKER_HEIGHT"
	envShowFooter   = "PERSONALISATION_PICKER_FOOTER"
	envVerbose      = "PERSONALISATION_PICKER_VERBOSE"
	envTrace        = "PERSONALISATION_PICKER_TRACE"
	envLogFile      = "PERSONALISATION_PICKER_LOG_FILE"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("personalisation-picker", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false
	return fs
}

type flagValues struct {
	envs       *[]string
	defaultEnv *string
	definition *string
	timeout    *time.Duration
	width      *int
	height     *int
	footer     *bool
	trace      *bool
	verbose    *bool
	logFile    *string
}

// declareFlags registers every flag on fs, taking defaults from env.
func declareFlags(fs *pflag.FlagSet, env map[string]string) flagValues {
	return flagValues{
		envs:       fs.StringArray("env", envOrList(env, envEnvironments), "environment config as name=location (repeatable, order is kept)"),
		defaultEnv: fs.String("default-env", envOrDefault(env, envDefaultEnv, ""), "environment selected after start-up"),
		definition: fs.String("definition", envOrDefault(env, envDefinition, ""), "YAML or TOML file declaring environments and categories"),
		timeout:    fs.Duration("timeout", envOrDuration(env, envTimeout, navigation.DefaultLoadTimeout), "timeout for config fetches and category loads"),
		width:      fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:     fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:     fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint rows (disabled by default)"),
		trace:      fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		verbose:    fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for loads"),
		logFile:    fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// environment variables; --env replaces PERSONALISATION_PICKER_ENV entirely.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := newFlagSet()
	v := declareFlags(fs, parseEnv(environ))

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if *v.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *v.width)
	}
	if *v.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *v.height)
	}
	sources, err := ParseEnvironments(*v.envs)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Environments: sources,
			DefaultEnv:   strings.TrimSpace(*v.defaultEnv),
			Definition:   *v.definition,
			Timeout:      *v.timeout,
			Width:        *v.width,
			Height:       *v.height,
			ShowFooter:   *v.footer,
			Verbose:      *v.verbose,
		},
		Logging: Logging{
			FilePath: *v.logFile,
			Trace:    *v.trace,
		},
		Flags: map[string]string{
			"env":        strings.Join(*v.envs, ","),
			"defaultEnv": *v.defaultEnv,
			"definition": *v.definition,
			"timeout":    v.timeout.String(),
			"width":      strconv.Itoa(*v.width),
			"height":     strconv.Itoa(*v.height),
			"footer":     strconv.FormatBool(*v.footer),
			"trace":      strconv.FormatBool(*v.trace),
			"verbose":    strconv.FormatBool(*v.verbose),
			"logFile":    *v.logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// ParseEnvironments converts name=location pairs into config sources,
// keeping their order.
func ParseEnvironments(pairs []string) ([]configs.Source, error) {
	sources := make([]configs.Source, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for _, pair := range pairs {
		name, location, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		location = strings.TrimSpace(location)
		if !ok || name == "" || location == "" {
			return nil, fmt.Errorf("invalid --env %q: expected name=location", pair)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("invalid --env %q: environment %q given twice", pair, name)
		}
		seen[name] = struct{}{}
		sources = append(sources, configs.Source{Env: name, Location: location})
	}
	return sources, nil
}

// Usage returns the flag help text with built-in defaults.
func Usage() string {
	fs := newFlagSet()
	declareFlags(fs, nil)
	return "Usage of personalisation-picker:\n" + fs.FlagUsages()
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// envOrList splits a comma separated variable, dropping blank entries.
func envOrList(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout)
	}
	if len(cfg.App.Environments) == 0 && cfg.App.Definition == "" {
		return fmt.Errorf("%w: pass --env name=location or --definition", app.ErrNoEnvironments)
	}
	if cfg.App.DefaultEnv != "" && len(cfg.App.Environments) > 0 {
		for _, src := range cfg.App.Environments {
			if src.Env == cfg.App.DefaultEnv {
				return nil
			}
		}
		return fmt.Errorf("default environment %q is not among --env values", cfg.App.DefaultEnv)
	}
	return nil
}
