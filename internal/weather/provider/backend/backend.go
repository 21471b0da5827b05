// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/weather-lookup/internal/http"
	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/vartype"
	"github.com/wneessen/weather-lookup/internal/weather"
)

const (
	name             = "weather-backend"
	weatherPath      = "weather"
	requestIDHeader  = "X-Request-ID"
	DefaultBaseURL   = "http://localhost:8000"
	contentTypeJSON  = "application/json"
	statusNotFound   = 404
	statusSuccessMin = 200
	statusSuccessMax = 299
)

var ErrInvalidCreateRequest = errors.New("invalid create request")

// Backend talks to the weather storage service.
type Backend struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
	now     func() time.Time
}

type response struct {
	Weather struct {
		Current struct {
			Temperature         vartype.VarFloat64 `json:"temperature"`
			FeelsLike           vartype.VarFloat64 `json:"feelslike"`
			Humidity            vartype.VarFloat64 `json:"humidity"`
			WeatherDescriptions vartype.VarStrings `json:"weather_descriptions"`
		} `json:"current"`
		Location struct {
			Name    vartype.VarString `json:"name"`
			Country vartype.VarString `json:"country"`
		} `json:"location"`
	} `json:"weather"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// CreateRequest holds the data for a new weather record.
type CreateRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type createResponse struct {
	ID string `json:"id"`
}

func New(client *http.Client, log *logger.Logger, baseURL string) (*Backend, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", baseURL, err)
	}

	return &Backend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		log:     log,
		now:     time.Now,
	}, nil
}

func (b *Backend) Name() string {
	return name
}

// Lookup fetches the weather record stored under key.
func (b *Backend) Lookup(ctx context.Context, key string) (*weather.Record, error) {
	key, err := weather.NormalizeKey(key)
	if err != nil {
		return nil, err
	}
	// Dot segments survive path escaping and would be resolved away by the server
	if key == "." || key == ".." {
		return nil, fmt.Errorf("%w: invalid weather ID %q", weather.ErrNotFound, key)
	}

	endpoint := b.baseURL + "/" + weatherPath + "/" + url.PathEscape(key)
	requestID := uuid.NewString()
	b.log.Debug("looking up weather record", slog.String("endpoint", endpoint),
		slog.String("request_id", requestID))

	res := new(response)
	code, err := b.http.Get(ctx, endpoint, res, nil, map[string]string{requestIDHeader: requestID})
	if err = classify(code, err); err != nil {
		b.log.Debug("weather record lookup failed", logger.Err(err), slog.Int("status", code),
			slog.String("request_id", requestID))
		return nil, err
	}

	record, err := res.record()
	if err != nil {
		return nil, err
	}
	record.FetchedAt = b.now()
	return record, nil
}

// Create stores a new weather record and returns its ID.
func (b *Backend) Create(ctx context.Context, req CreateRequest) (string, error) {
	req.Date = strings.TrimSpace(req.Date)
	req.Location = strings.TrimSpace(req.Location)
	if req.Date == "" || req.Location == "" {
		return "", fmt.Errorf("%w: date and location are required", ErrInvalidCreateRequest)
	}

	body := bytes.NewBuffer(nil)
	if err := json.NewEncoder(body).Encode(req); err != nil {
		return "", fmt.Errorf("failed to encode create request: %w", err)
	}

	requestID := uuid.NewString()
	headers := map[string]string{
		"Content-Type":  contentTypeJSON,
		requestIDHeader: requestID,
	}
	b.log.Debug("creating weather record", slog.String("location", req.Location),
		slog.String("request_id", requestID))

	res := new(createResponse)
	code, err := b.http.Post(ctx, b.baseURL+"/"+weatherPath, res, body, headers)
	if code == statusNotFound && err == nil {
		return "", fmt.Errorf("%w: status code %d", weather.ErrService, code)
	}
	if err = classify(code, err); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", fmt.Errorf("%w: response contains no ID", weather.ErrMalformedResponse)
	}
	return res.ID, nil
}

// classify maps the status code and transport error of a request to the error taxonomy
// of the weather package.
func classify(code int, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, http.ErrDecodeResponse):
		return fmt.Errorf("%w: %w", weather.ErrMalformedResponse, err)
	case err != nil:
		return fmt.Errorf("%w: %w", weather.ErrTransport, err)
	case code == statusNotFound:
		return weather.ErrNotFound
	case code < statusSuccessMin || code > statusSuccessMax:
		return fmt.Errorf("%w: status code %d", weather.ErrService, code)
	}
	return nil
}

func (r *response) record() (*weather.Record, error) {
	cur := r.Weather.Current
	loc := r.Weather.Location

	var missing []string
	if !cur.Temperature.IsSet() {
		missing = append(missing, "weather.current.temperature")
	}
	if !cur.FeelsLike.IsSet() {
		missing = append(missing, "weather.current.feelslike")
	}
	if !cur.Humidity.IsSet() {
		missing = append(missing, "weather.current.humidity")
	}
	if !cur.WeatherDescriptions.IsSet() {
		missing = append(missing, "weather.current.weather_descriptions")
	}
	if !loc.Name.IsSet() {
		missing = append(missing, "weather.location.name")
	}
	if !loc.Country.IsSet() {
		missing = append(missing, "weather.location.country")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", weather.ErrMalformedResponse, strings.Join(missing, ", "))
	}

	record := &weather.Record{
		Temperature:   cur.Temperature.Value(),
		FeelsLike:     cur.FeelsLike.Value(),
		Humidity:      cur.Humidity.Value(),
		Descriptions:  cur.WeatherDescriptions.Value(),
		Location:      weather.Location{Name: loc.Name.Value(), Country: loc.Country.Value()},
		Date:          r.Date,
		LocationQuery: r.Location,
		Notes:         r.Notes,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
