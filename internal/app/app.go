package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/cache"
	"github.com/atomicstack/personalisation-picker/internal/catalog"
	"github.com/atomicstack/personalisation-picker/internal/clipboard"
	"github.com/atomicstack/personalisation-picker/internal/configs"
	"github.com/atomicstack/personalisation-picker/internal/graphql"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/atomicstack/personalisation-picker/internal/navigation"
	"github.com/atomicstack/personalisation-picker/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoEnvironments is returned when neither flags nor the definition file
// declare an environment.
var ErrNoEnvironments = errors.New("no environments configured")

// Config describes user-provided application options.
type Config struct {
	Environments []configs.Source
	DefaultEnv   string
	Definition   string
	Timeout      time.Duration
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
}

// Components are the wired collaborators behind the UI.
type Components struct {
	Controller *navigation.Controller
	Runner     *navigation.Runner
	Cache      *cache.Cache
	Client     *graphql.Client
}

// loadedConfigs resolves endpoints from whatever the controller has loaded,
// so the query client never needs its own copy of the config set.
type loadedConfigs struct {
	ctrl *navigation.Controller
}

func (l *loadedConfigs) Values(env string) (map[string]string, bool) {
	if l.ctrl == nil {
		return nil, false
	}
	return l.ctrl.Configs().Values(env)
}

// Wire builds the controller, runner, cache and query client for cfg.
// A nil httpClient uses one bounded by cfg.Timeout.
func Wire(cfg Config, clip clipboard.Writer, httpClient *http.Client) (*Components, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = navigation.DefaultLoadTimeout
	}
	defs := catalog.Builtins()
	sources := cfg.Environments
	defaultEnv := cfg.DefaultEnv
	if cfg.Definition != "" {
		file, err := catalog.LoadFile(cfg.Definition)
		if err != nil {
			return nil, err
		}
		if len(file.Categories) > 0 {
			defs = file.Categories
		}
		// Environments given as flags replace the file's list entirely,
		// including its default.
		if len(sources) == 0 {
			for _, env := range file.Environments {
				sources = append(sources, configs.Source{Env: env.Name, Location: env.Config})
			}
			if defaultEnv == "" {
				defaultEnv = file.DefaultEnvironment
			}
		}
	}
	if len(sources) == 0 {
		return nil, ErrNoEnvironments
	}
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Env)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	responses := cache.New(catalog.Resources(defs)...)
	source := &loadedConfigs{}
	client := graphql.NewClient(source, httpClient)
	ctrl := navigation.NewController(navigation.NewReducer(navigation.Options{
		Categories:    catalog.Categories(defs, client, responses),
		Environments:  names,
		DefaultConfig: defaultEnv,
	}))
	source.ctrl = ctrl

	return &Components{
		Controller: ctrl,
		Runner: &navigation.Runner{
			Loader:    configs.NewLoader(sources, timeout),
			Cache:     responses,
			Clipboard: clip,
			Timeout:   timeout,
		},
		Cache:  responses,
		Client: client,
	}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	components, err := Wire(cfg, clipboard.System{}, nil)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	model := ui.NewModel(ctx, ui.Options{
		Controller: components.Controller,
		Runner:     components.Runner,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		return err
	}
	events.App.Stop("quit")
	return nil
}
