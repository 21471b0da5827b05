// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const osloBody = `{"weather":{"current":{"temperature":5,"feelslike":2,"humidity":80,` +
	`"weather_descriptions":["Light snow"]},"location":{"name":"Oslo","country":"Norway"}},` +
	`"date":"2026-01-18","location":"Oslo","notes":"ski trip"}`

func TestLoadConfig(t *testing.T) {
	t.Run("command line flags override the configuration", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		conf, err := loadConfig(&options{units: "imperial", baseURL: "http://example.com:9000"})
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Units != "imperial" {
			t.Errorf("expected units to be %q, got %q", "imperial", conf.Units)
		}
		if conf.Backend.BaseURL != "http://example.com:9000" {
			t.Errorf("expected base URL to be %q, got %q", "http://example.com:9000", conf.Backend.BaseURL)
		}
	})
	t.Run("invalid units flag fails", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		if _, err := loadConfig(&options{units: "kelvin"}); err == nil {
			t.Error("expected config loading to fail")
		}
	})
	t.Run("config file in the default location is used", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		dir := filepath.Join(home, ".config", "weather-lookup")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			t.Fatalf("failed to create config dir: %s", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("units = \"imperial\"\n"), 0o600); err != nil {
			t.Fatalf("failed to write config file: %s", err)
		}
		conf, err := loadConfig(&options{})
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Units != "imperial" {
			t.Errorf("expected units to be %q, got %q", "imperial", conf.Units)
		}
	})
	t.Run("missing config file fails", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		if _, err := loadConfig(&options{configPath: "/nonexistent/config.toml"}); err == nil {
			t.Error("expected config loading to fail")
		}
	})
}

func TestNewApp(t *testing.T) {
	t.Run("unusable locale does not prevent startup", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("WEATHERLOOKUP_LOCALE", "not a locale!")
		logFile := filepath.Join(t.TempDir(), "weather-lookup.log")
		t.Setenv("WEATHERLOOKUP_LOGFILE", logFile)

		a, err := newApp(&options{}, true)
		if err != nil {
			t.Fatalf("failed to initialize application: %s", err)
		}
		if err = a.Close(); err != nil {
			t.Fatalf("failed to close application: %s", err)
		}
		if got := a.presenter.Localize("Please enter an ID"); got != "Please enter an ID" {
			t.Errorf("expected english fallback, got %q", got)
		}
		data, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("failed to read log file: %s", err)
		}
		if !strings.Contains(string(data), "unusable locale, falling back to English") {
			t.Errorf("expected fallback warning in log file, got %q", data)
		}
	})
}

func TestGetCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/weather/abc123":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(osloBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	t.Run("get prints the rendered record", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("WEATHERLOOKUP_LOCALE", "en")
		buf := bytes.NewBuffer(nil)
		root := newRootCmd()
		root.SetOut(buf)
		root.SetErr(buf)
		root.SetArgs([]string{"get", "abc123", "--base-url", server.URL, "--units", "imperial"})
		if err := root.ExecuteContext(t.Context()); err != nil {
			t.Fatalf("failed to execute get command: %s", err)
		}
		for _, want := range []string{"41°F", "Oslo", "Norway"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected output to contain %q, got %q", want, buf.String())
			}
		}
	})
	t.Run("get fails for unknown IDs", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("WEATHERLOOKUP_LOCALE", "en")
		buf := bytes.NewBuffer(nil)
		root := newRootCmd()
		root.SetOut(buf)
		root.SetErr(buf)
		root.SetArgs([]string{"get", "missing", "--base-url", server.URL})
		err := root.ExecuteContext(t.Context())
		if err == nil {
			t.Fatal("expected get command to fail")
		}
		if err.Error() != "Weather data not found" {
			t.Errorf("expected error %q, got %q", "Weather data not found", err)
		}
	})
	t.Run("create requires date and location", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("WEATHERLOOKUP_LOCALE", "en")
		buf := bytes.NewBuffer(nil)
		root := newRootCmd()
		root.SetOut(buf)
		root.SetErr(buf)
		root.SetArgs([]string{"create", "--date", "2026-01-18", "--base-url", server.URL})
		if err := root.ExecuteContext(t.Context()); err == nil {
			t.Fatal("expected create command to fail")
		}
	})
}
