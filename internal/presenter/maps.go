// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"strings"

	"github.com/vorlif/spreak/localize"
)

// Palette names, also used as the CSS class in watch mode output.
const (
	PaletteHot     = "hot"
	PaletteWarm    = "warm"
	PaletteMild    = "mild"
	PaletteCold    = "cold"
	PaletteNeutral = "neutral"
	PaletteRain    = "rain"
	PaletteSnow    = "snow"
	PaletteSunny   = "sunny"
)

const (
	IconSunny    = "☀️"
	IconRain     = "🌧️"
	IconSnow     = "❄️"
	IconOvercast = "☁️"
	IconDefault  = "🌤️"
)

type conditionRule struct {
	substr string
	icon   string
}

// conditionIcons is evaluated top to bottom against the lower-cased description,
// the first match wins.
var conditionIcons = []conditionRule{
	{"sunny", IconSunny},
	{"rain", IconRain},
	{"snow", IconSnow},
	{"overcast", IconOvercast},
}

type paletteRule struct {
	name  string
	match func(desc string, celsius float64) bool
}

// paletteRules is evaluated top to bottom, the first match wins. The description
// overrides come first with snow before rain before sunny, then the temperature
// buckets. Temperatures in [0, 10) and NaN fall through to neutral.
var paletteRules = []paletteRule{
	{PaletteSnow, func(desc string, _ float64) bool { return strings.Contains(desc, "snow") }},
	{PaletteRain, func(desc string, _ float64) bool { return strings.Contains(desc, "rain") }},
	{PaletteSunny, func(desc string, _ float64) bool { return strings.Contains(desc, "sunny") }},
	{PaletteHot, func(_ string, t float64) bool { return t >= 30 }},
	{PaletteWarm, func(_ string, t float64) bool { return t >= 20 }},
	{PaletteMild, func(_ string, t float64) bool { return t >= 10 }},
	{PaletteCold, func(_ string, t float64) bool { return t < 0 }},
	{PaletteNeutral, func(string, float64) bool { return true }},
}

var i18nVars = map[string]localize.MsgID{
	"temp":      "Temperature",
	"humidity":  "Humidity",
	"apparent":  "Feels like",
	"condition": "Condition",
	"location":  "Location",
	"date":      "Date",
	"notes":     "Notes",
	"fetchedat": "Fetched at",
}
