// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv         = "WEATHERLOOKUP"
	DefaultTextTpl    = "{{.ConditionIcon}} {{.Temperature}}"
	DefaultTooltipTpl = "{{loc \"temp\"}}: {{.Temperature}}\n{{loc \"apparent\"}}: {{.FeelsLike}}\n" +
		"{{loc \"humidity\"}}: {{floatFormat .Humidity 0}}%\n{{loc \"condition\"}}: {{.Condition}}\n" +
		"{{loc \"location\"}}: {{.Location.Name}}, {{.Location.Country}}"
)

// Palette is a background/foreground colour pair, given as hex colour codes.
type Palette struct {
	Background string `fig:"background"`
	Foreground string `fig:"foreground"`
}

// DefaultPalettes holds the colours used for palettes that are not configured.
var DefaultPalettes = map[string]Palette{
	"hot":     {Background: "#7f1d1d", Foreground: "#fca5a5"},
	"warm":    {Background: "#7c2d12", Foreground: "#fdba74"},
	"mild":    {Background: "#14532d", Foreground: "#86efac"},
	"cold":    {Background: "#1e3a8a", Foreground: "#93c5fd"},
	"neutral": {Background: "#374151", Foreground: "#e5e7eb"},
	"rain":    {Background: "#1e40af", Foreground: "#bfdbfe"},
	"snow":    {Background: "#e0f2fe", Foreground: "#0c4a6e"},
	"sunny":   {Background: "#a16207", Foreground: "#fef08a"},
}

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	LogFile  string     `fig:"logfile"`

	Backend struct {
		BaseURL string        `fig:"base_url" default:"http://localhost:8000"`
		Timeout time.Duration `fig:"timeout" default:"10s"`
	} `fig:"backend"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
		Output        time.Duration `fig:"output" default:"30s"`
	} `fig:"intervals"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`

	Palettes struct {
		Hot     Palette `fig:"hot"`
		Warm    Palette `fig:"warm"`
		Mild    Palette `fig:"mild"`
		Cold    Palette `fig:"cold"`
		Neutral Palette `fig:"neutral"`
		Rain    Palette `fig:"rain"`
		Snow    Palette `fig:"snow"`
		Sunny   Palette `fig:"sunny"`
	} `fig:"palettes"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	backendURL, err := url.ParseRequestURI(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base URL: %w", err)
	}
	if backendURL.Scheme != "http" && backendURL.Scheme != "https" {
		return fmt.Errorf("invalid backend base URL scheme: %s", backendURL.Scheme)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("invalid backend timeout: %s", c.Backend.Timeout)
	}
	if c.Intervals.WeatherUpdate <= 0 || c.Intervals.Output <= 0 {
		return fmt.Errorf("invalid intervals: weather update %s, output %s", c.Intervals.WeatherUpdate,
			c.Intervals.Output)
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
	}
	for name, palette := range c.palettes() {
		fillPalette(palette, DefaultPalettes[name])
	}

	return nil
}

func (c *Config) palettes() map[string]*Palette {
	return map[string]*Palette{
		"hot":     &c.Palettes.Hot,
		"warm":    &c.Palettes.Warm,
		"mild":    &c.Palettes.Mild,
		"cold":    &c.Palettes.Cold,
		"neutral": &c.Palettes.Neutral,
		"rain":    &c.Palettes.Rain,
		"snow":    &c.Palettes.Snow,
		"sunny":   &c.Palettes.Sunny,
	}
}

func fillPalette(palette *Palette, fallback Palette) {
	if palette.Background == "" {
		palette.Background = fallback.Background
	}
	if palette.Foreground == "" {
		palette.Foreground = fallback.Foreground
	}
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
