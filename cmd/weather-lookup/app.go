// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/i18n"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/presenter"
	"github.com/wneessen/weather-lookup/internal/weather"
	"github.com/wneessen/weather-lookup/internal/weather/provider/backend"
)

// options holds the global command line flags.
type options struct {
	configPath string
	units      string
	baseURL    string
}

// app bundles the dependencies shared by all commands.
type app struct {
	conf      *config.Config
	log       *logger.Logger
	localizer *spreak.Localizer
	presenter *presenter.Presenter
	backend   *backend.Backend
	unit      weather.Unit
	logFile   *os.File
}

// newApp loads the configuration and wires the dependencies. Interactive commands log
// to the configured log file only so that the terminal UI is not disturbed.
func newApp(opts *options, interactive bool) (*app, error) {
	conf, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	a := &app{conf: conf}
	var output io.Writer = os.Stderr
	if interactive {
		output = io.Discard
	}
	if conf.LogFile != "" {
		a.logFile, err = os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = a.logFile
	}
	a.log = logger.NewLogger(conf.LogLevel, output)

	if a.unit, err = weather.ParseUnit(conf.Units); err != nil {
		return nil, a.closeWith(err)
	}
	if a.localizer, err = i18n.New(conf.Locale, a.log); err != nil {
		return nil, a.closeWith(fmt.Errorf("failed to initialize localizer: %w", err))
	}
	if a.presenter, err = presenter.New(conf, a.localizer); err != nil {
		return nil, a.closeWith(fmt.Errorf("failed to initialize presenter: %w", err))
	}
	client := http.NewWithTimeout(a.log, conf.Backend.Timeout)
	if a.backend, err = backend.New(client, a.log, conf.Backend.BaseURL); err != nil {
		return nil, a.closeWith(fmt.Errorf("failed to initialize backend client: %w", err))
	}

	a.log.Debug("application initialized", slog.String("version", version), slog.String("commit", commit),
		slog.String("date", date), slog.String("base_url", conf.Backend.BaseURL))
	return a, nil
}

// Close releases the log file if one was opened.
func (a *app) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

func (a *app) closeWith(err error) error {
	_ = a.Close()
	return err
}

// loadConfig reads the configuration from the environment, the given or default config
// file and finally applies the command line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	conf, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case opts.configPath != "":
		conf, err = config.NewFromFile(filepath.Dir(opts.configPath), filepath.Base(opts.configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	default:
		if path, file := findConfigFile(); path != "" && file != "" {
			conf, err = config.NewFromFile(path, file)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if opts.units != "" {
		conf.Units = opts.units
	}
	if opts.baseURL != "" {
		conf.Backend.BaseURL = opts.baseURL
	}
	if err = conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return conf, nil
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weather-lookup", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
