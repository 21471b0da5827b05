// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/presenter"
	"github.com/wneessen/weather-lookup/internal/weather"
	"github.com/wneessen/weather-lookup/internal/widget"
)

const (
	ErrorOutputClass = "error"
	ErrorIcon        = "⚠️"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// stdLibSignalSource is the production implementation.
type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

type outputData struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

// Service periodically looks up the weather record stored under a single key and prints
// it as a waybar module.
type Service struct {
	SignalSrc signalSource

	config    *config.Config
	key       string
	logger    *logger.Logger
	output    io.Writer
	presenter *presenter.Presenter
	provider  weather.Provider
	scheduler gocron.Scheduler

	widgetLock sync.RWMutex
	widget     *widget.Widget
}

func New(conf *config.Config, log *logger.Logger, pres *presenter.Presenter, provider weather.Provider,
	key string,
) (*Service, error) {
	if conf == nil || log == nil || pres == nil || provider == nil {
		return nil, errors.New("config, logger, presenter and weather provider are required")
	}
	key, err := weather.NormalizeKey(key)
	if err != nil {
		return nil, err
	}
	unit, err := weather.ParseUnit(conf.Units)
	if err != nil {
		return nil, err
	}

	service := &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		key:       key,
		logger:    log,
		output:    os.Stdout,
		presenter: pres,
		provider:  provider,
		widget:    widget.New(unit),
	}
	return service, nil
}

// Run schedules the refresh and output jobs and blocks until ctx is canceled. The scheduler
// only exists while Run is active.
func (s *Service) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.scheduler = scheduler

	// Start scheduled jobs
	if err = s.createScheduledJob(ctx, s.config.Intervals.Output, s.printWeather,
		"weatherdata_output_job"); err != nil {
		return errors.Join(err, s.scheduler.Shutdown())
	}
	if err = s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.updateWeather,
		"weather_update_job", gocron.WithStartAt(gocron.WithStartImmediately())); err != nil {
		return errors.Join(err, s.scheduler.Shutdown())
	}
	s.scheduler.Start()
	s.logger.Debug("scheduler started", slog.String("key", s.key), slog.String("provider", s.provider.Name()))

	// Wait for the context to cancel
	<-ctx.Done()
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string, opts ...gocron.JobOption,
) error {
	opts = append([]gocron.JobOption{
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	}, opts...)
	_, err := s.scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), opts...)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// updateWeather fetches the record and prints the result right away so that the module
// does not wait for the next output tick.
func (s *Service) updateWeather(ctx context.Context) {
	s.fetchWeather(ctx)
	s.printWeather(ctx)
}

// fetchWeather performs a single lookup for the configured key and applies the outcome
// to the widget.
func (s *Service) fetchWeather(ctx context.Context) {
	s.widgetLock.Lock()
	ticket, err := s.widget.Submit(s.key)
	s.widgetLock.Unlock()
	if err != nil {
		s.logger.Error("invalid weather key", logger.Err(err))
		return
	}

	record, err := s.provider.Lookup(ctx, ticket.Key)
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		s.logger.Error("failed to fetch weather data", logger.Err(err), slog.String("key", ticket.Key))
	}

	s.widgetLock.Lock()
	applied := s.widget.Resolve(ticket, record, err)
	s.widgetLock.Unlock()
	if !applied {
		s.logger.Debug("dropping stale weather lookup result", slog.Uint64("generation", ticket.Generation))
	}
}

// printWeather outputs the current weather data as JSON if available and renders it using
// the configured templates.
func (s *Service) printWeather(context.Context) {
	s.widgetLock.RLock()
	state, record, unit, message := s.widget.State(), s.widget.Record(), s.widget.Unit(), s.widget.Message()
	s.widgetLock.RUnlock()

	var output outputData
	switch state {
	case widget.Success:
		rendered, err := s.presenter.Render(record, unit)
		if err != nil {
			s.logger.Error("failed to render weather data", logger.Err(err))
			return
		}
		output = outputData{Text: rendered.Text, Tooltip: rendered.Tooltip, Class: rendered.Palette.Name}
	case widget.Error:
		message = s.presenter.Localize(message)
		output = outputData{Text: ErrorIcon, Tooltip: message, Class: ErrorOutputClass}
	default:
		s.logger.Debug("no weather data available yet", slog.String("state", state.String()))
		return
	}

	if err := json.NewEncoder(s.output).Encode(output); err != nil {
		s.logger.Error("failed to encode weather data", logger.Err(err))
	}
}

// toggleUnit switches the temperature unit of the widget.
func (s *Service) toggleUnit() weather.Unit {
	s.widgetLock.Lock()
	defer s.widgetLock.Unlock()
	s.widget.ToggleUnit()
	return s.widget.Unit()
}
