package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/personalisation-picker/internal/app"
	"github.com/atomicstack/personalisation-picker/internal/config"
	"github.com/atomicstack/personalisation-picker/internal/logging"
	"github.com/atomicstack/personalisation-picker/internal/logging/events"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadArgs(args, environ)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(stdout, config.Usage())
		return exitOK
	}
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitUsage
	}

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(newStartupInfo(cfg, os.Stdin, os.Stdout, os.Stderr))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// startupInfo is traced once per launch to help debug terminal and
// configuration problems.
type startupInfo struct {
	Args         []string          `json:"args"`
	Flags        map[string]string `json:"flags"`
	Environments []string          `json:"environments"`
	Definition   string            `json:"definition,omitempty"`
	Executable   string            `json:"executable,omitempty"`
	WorkDir      string            `json:"workdir,omitempty"`
	Terminal     []terminalProbe   `json:"terminal"`
}

type terminalProbe struct {
	Stream string `json:"stream"`
	TTY    bool   `json:"tty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newStartupInfo(cfg config.Config, streams ...*os.File) startupInfo {
	info := startupInfo{
		Args:     cfg.Args,
		Flags:    cfg.Flags,
		Terminal: probeTerminal(streams...),
	}
	for _, src := range cfg.App.Environments {
		info.Environments = append(info.Environments, src.Env)
	}
	info.Definition = cfg.App.Definition
	info.Executable, _ = os.Executable()
	info.WorkDir, _ = os.Getwd()
	return info
}

// probeTerminal reports which streams are attached to a terminal and its
// size as seen through each of them.
func probeTerminal(streams ...*os.File) []terminalProbe {
	probes := make([]terminalProbe, 0, len(streams))
	for _, f := range streams {
		if f == nil {
			continue
		}
		probe := terminalProbe{Stream: f.Name()}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			probe.TTY = true
			w, h, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			}
			probe.Width, probe.Height = w, h
		}
		probes = append(probes, probe)
	}
	return probes
}
