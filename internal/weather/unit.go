// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"fmt"
	"math"
	"strings"
)

// Unit is the temperature display unit.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// ParseUnit maps the configured unit system ("metric", "imperial") or a unit name
// ("celsius", "fahrenheit", "c", "f") to a Unit.
func ParseUnit(val string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "metric", "celsius", "c":
		return Celsius, nil
	case "imperial", "fahrenheit", "f":
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("unsupported temperature unit: %q", val)
	}
}

// Symbol returns the display suffix of the unit.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// CelsiusToFahrenheit converts and rounds to the nearest whole degree.
func CelsiusToFahrenheit(celsius float64) float64 {
	return math.Round(celsius*9/5 + 32)
}
