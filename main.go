package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/language"

	"github.com/atomicstack/styleselect/internal/app"
	"github.com/atomicstack/styleselect/internal/config"
	"github.com/atomicstack/styleselect/internal/logging"
	"github.com/atomicstack/styleselect/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	var err error
	if runtimeCfg.Dump {
		err = app.Dump(context.Background(), runtimeCfg.App, os.Stdout)
	} else {
		err = app.Run(runtimeCfg.App)
	}
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		logging.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Close()
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["session"] = describeSession(cfg)
	payload["tty"] = collectTTYDetails()
	return payload
}

// sessionDetails records which engine the dropdown is attached to and how it
// will be presented.
type sessionDetails struct {
	Engine   string `json:"engine"`
	Server   string `json:"server,omitempty"`
	Document string `json:"document,omitempty"`
	Fixture  string `json:"fixture,omitempty"`
	ReadOnly bool   `json:"readonly"`
	Locale   string `json:"locale"`
	Output   string `json:"output"`
}

func describeSession(cfg config.Config) sessionDetails {
	details := sessionDetails{
		Engine:   "fixture",
		Fixture:  cfg.App.Fixture,
		ReadOnly: cfg.App.ReadOnly,
		Locale:   cfg.App.Locale,
		Output:   "interactive",
	}
	if cfg.App.Server != "" {
		details.Engine = "websocket"
		details.Server = cfg.App.Server
		details.Document = cfg.App.Document
		details.Fixture = ""
	}
	if tag, err := language.Parse(cfg.App.Locale); err == nil {
		details.Locale = tag.String()
	}
	if cfg.Dump {
		details.Output = "dump"
	}
	return details
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
