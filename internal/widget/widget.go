// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package widget implements the weather lookup state machine. A Widget is not safe for
// concurrent use; hosts mutate it from a single goroutine or guard it themselves.
package widget

import (
	"context"
	"errors"

	"github.com/wneessen/weather-lookup/internal/weather"
)

// User facing messages of the error view.
const (
	MsgEmptyKey   = "Please enter an ID"
	MsgNotFound   = "Weather data not found"
	MsgService    = "Failed to fetch weather data"
	MsgTransport  = "Could not connect to server"
	MsgMalformed  = "Received malformed weather data"
	msgUnexpected = MsgService
)

// State is the exclusive mode of the widget.
type State int

const (
	Idle State = iota
	Loading
	Error
	Success
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Success:
		return "success"
	default:
		return "idle"
	}
}

// Ticket identifies an accepted search. Only the outcome for the most recent ticket
// is applied to the widget.
type Ticket struct {
	Generation uint64
	Key        string
}

type Widget struct {
	key        string
	state      State
	message    string
	record     *weather.Record
	unit       weather.Unit
	generation uint64
}

func New(unit weather.Unit) *Widget {
	return &Widget{unit: unit}
}

// Submit validates key and moves the widget into Loading. The returned Ticket must be
// passed to Resolve together with the outcome of exactly one lookup for Ticket.Key.
// An empty key puts the widget into the error state and returns weather.ErrEmptyKey.
func (w *Widget) Submit(key string) (Ticket, error) {
	w.generation++
	normalized, err := weather.NormalizeKey(key)
	if err != nil {
		w.key = key
		w.setError(MsgEmptyKey)
		return Ticket{}, err
	}

	w.key = normalized
	w.state = Loading
	w.message = ""
	w.record = nil
	return Ticket{Generation: w.generation, Key: normalized}, nil
}

// Resolve applies the outcome of the lookup for ticket. Outcomes of superseded tickets
// are dropped and Resolve reports false.
func (w *Widget) Resolve(ticket Ticket, record *weather.Record, err error) bool {
	if ticket.Generation == 0 || ticket.Generation != w.generation || w.state != Loading {
		return false
	}
	if err == nil {
		err = record.Validate()
	}
	if err != nil {
		w.setError(Message(err))
		return true
	}

	w.state = Success
	w.message = ""
	w.record = record
	return true
}

// Lookup runs a complete search synchronously against provider.
func (w *Widget) Lookup(ctx context.Context, provider weather.Provider, key string) error {
	ticket, err := w.Submit(key)
	if err != nil {
		return err
	}
	record, err := provider.Lookup(ctx, ticket.Key)
	if err == nil {
		err = record.Validate()
	}
	w.Resolve(ticket, record, err)
	return err
}

// Clear resets the key and returns to Idle. The temperature unit is kept.
func (w *Widget) Clear() {
	w.generation++
	w.key = ""
	w.state = Idle
	w.message = ""
	w.record = nil
}

// SetUnit changes the display unit without fetching again.
func (w *Widget) SetUnit(unit weather.Unit) {
	w.unit = unit
}

// ToggleUnit switches between Celsius and Fahrenheit.
func (w *Widget) ToggleUnit() {
	w.unit = w.unit.Toggle()
}

func (w *Widget) Key() string {
	return w.key
}

func (w *Widget) State() State {
	return w.state
}

// Message returns the error message in the Error state and an empty string otherwise.
func (w *Widget) Message() string {
	return w.message
}

// Record returns the record in the Success state and nil otherwise.
func (w *Widget) Record() *weather.Record {
	return w.record
}

func (w *Widget) Unit() weather.Unit {
	return w.unit
}

func (w *Widget) IsLoading() bool {
	return w.state == Loading
}

func (w *Widget) setError(msg string) {
	w.state = Error
	w.message = msg
	w.record = nil
}

// Message maps a lookup error to its user facing message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, weather.ErrEmptyKey):
		return MsgEmptyKey
	case errors.Is(err, weather.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, weather.ErrMalformedResponse):
		return MsgMalformed
	case errors.Is(err, weather.ErrService):
		return MsgService
	case errors.Is(err, weather.ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return MsgTransport
	default:
		return msgUnexpected
	}
}
