// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrEmptyKey is returned when a lookup is attempted with an empty or whitespace-only key.
	ErrEmptyKey = errors.New("weather ID must not be empty")
	// ErrNotFound is returned when the backend has no record for the requested key.
	ErrNotFound = errors.New("weather data not found")
	// ErrService is returned when the backend answers with a non-success status other than 404.
	ErrService = errors.New("weather service returned an error")
	// ErrTransport is returned when the request could not be completed.
	ErrTransport = errors.New("could not connect to weather service")
	// ErrMalformedResponse is returned when a success response could not be turned into a Record.
	ErrMalformedResponse = errors.New("malformed weather data")
)

// Provider is implemented by each weather storage backend.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, key string) (*Record, error)
}

// Record is a stored weather observation as returned by the backend.
type Record struct {
	Temperature  float64
	FeelsLike    float64
	Humidity     float64
	Descriptions []string
	Location     Location

	// Submission data the record was stored with, if the backend returned it
	Date          string
	LocationQuery string
	Notes         string

	FetchedAt time.Time
}

type Location struct {
	Name    string
	Country string
}

// Condition returns the primary weather description of the record.
func (r *Record) Condition() string {
	if r == nil || len(r.Descriptions) == 0 {
		return ""
	}
	return r.Descriptions[0]
}

// Validate checks the invariants a Record must hold before it can be displayed.
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: record is nil", ErrMalformedResponse)
	}
	if len(r.Descriptions) == 0 {
		return fmt.Errorf("%w: no weather description present", ErrMalformedResponse)
	}
	if math.IsNaN(r.Temperature) || math.IsInf(r.Temperature, 0) {
		return fmt.Errorf("%w: invalid temperature", ErrMalformedResponse)
	}
	return nil
}

// NormalizeKey trims the key and reports ErrEmptyKey if nothing is left.
func NormalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}
