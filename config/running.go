package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/blang/semver"
)

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		Backend BackendRunningCfg
		Version semver.Version
	}

	//BackendRunningCfg holds the resolved backend endpoints
	BackendRunningCfg struct {
		PredictURL   *url.URL
		BatchURL     *url.URL
		LiveURL      *url.URL
		HealthURL    *url.URL
		ModelInfoURL *url.URL
		Timeout      time.Duration
	}
)

// initRunningConfig uses data in the static config initialize
// the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	base, err := url.Parse(static.Backend.URL)
	if err != nil {
		return fmt.Errorf("invalid backend url %q: %w", static.Backend.URL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return fmt.Errorf("invalid backend url %q: scheme must be http or https", static.Backend.URL)
	}

	running.Backend.PredictURL = endpoint(base, static.Backend.PredictPath)
	running.Backend.BatchURL = endpoint(base, static.Backend.BatchPath)
	running.Backend.HealthURL = endpoint(base, static.Backend.HealthPath)
	running.Backend.ModelInfoURL = endpoint(base, static.Backend.ModelInfoPath)

	// the live feed shares the backend host but speaks websocket
	live := endpoint(base, static.Backend.LivePath)
	if live.Scheme == "https" {
		live.Scheme = "wss"
	} else {
		live.Scheme = "ws"
	}
	running.Backend.LiveURL = live

	if static.Backend.Timeout < 0 {
		return fmt.Errorf("invalid backend timeout %d", static.Backend.Timeout)
	}
	running.Backend.Timeout = time.Duration(static.Backend.Timeout) * time.Second

	// the version stays at 0.0.0 for development builds
	if version, err := semver.ParseTolerant(static.Version); err == nil {
		running.Version = version
	}
	return nil
}

func endpoint(base *url.URL, path string) *url.URL {
	out := *base
	out.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return &out
}
