// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{"plain key", "abc123", "abc123", false},
		{"surrounding whitespace is trimmed", "  abc123\t", "abc123", false},
		{"empty key", "", "", true},
		{"whitespace only", " \t\n ", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeKey(tc.key)
			if tc.wantErr {
				if !errors.Is(err, ErrEmptyKey) {
					t.Fatalf("expected error to be %s, got %v", ErrEmptyKey, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to normalize key: %s", err)
			}
			if got != tc.want {
				t.Errorf("expected key %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRecord_Validate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		rec := &Record{Temperature: 5, Descriptions: []string{"Light snow"}}
		if err := rec.Validate(); err != nil {
			t.Errorf("expected record to be valid, got %s", err)
		}
	})
	t.Run("invalid records", func(t *testing.T) {
		tests := []struct {
			name string
			rec  *Record
		}{
			{"nil record", nil},
			{"no descriptions", &Record{Temperature: 5}},
			{"NaN temperature", &Record{Temperature: math.NaN(), Descriptions: []string{"Sunny"}}},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.rec.Validate(); !errors.Is(err, ErrMalformedResponse) {
					t.Errorf("expected error to be %s, got %v", ErrMalformedResponse, err)
				}
			})
		}
	})
}

func TestRecord_Condition(t *testing.T) {
	rec := &Record{Descriptions: []string{"Overcast", "Mist"}}
	if rec.Condition() != "Overcast" {
		t.Errorf("expected condition to be %q, got %q", "Overcast", rec.Condition())
	}
	var nilRec *Record
	if nilRec.Condition() != "" {
		t.Errorf("expected empty condition for nil record, got %q", nilRec.Condition())
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"metric", Celsius, false},
		{"Celsius", Celsius, false},
		{"c", Celsius, false},
		{"imperial", Fahrenheit, false},
		{"FAHRENHEIT", Fahrenheit, false},
		{"f", Fahrenheit, false},
		{"kelvin", Celsius, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseUnit(tc.in)
			if tc.wantErr && err == nil {
				t.Fatal("expected parsing to fail")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("failed to parse unit: %s", err)
			}
			if got != tc.want {
				t.Errorf("expected unit %s, got %s", tc.want, got)
			}
		})
	}
}

func TestUnit(t *testing.T) {
	if Celsius.Symbol() != "°C" || Fahrenheit.Symbol() != "°F" {
		t.Errorf("unexpected unit symbols: %s / %s", Celsius.Symbol(), Fahrenheit.Symbol())
	}
	if Celsius.Toggle() != Fahrenheit || Fahrenheit.Toggle() != Celsius {
		t.Error("expected toggle to switch between celsius and fahrenheit")
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		celsius float64
		want    float64
	}{
		{22, 72},
		{0, 32},
		{-40, -40},
		{100, 212},
		{5, 41},
		{21.5, 71},
	}
	for _, tc := range tests {
		if got := CelsiusToFahrenheit(tc.celsius); got != tc.want {
			t.Errorf("CelsiusToFahrenheit(%v): expected %v, got %v", tc.celsius, tc.want, got)
		}
	}
}
