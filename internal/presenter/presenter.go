// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-lookup/internal/config"
	"github.com/wneessen/weather-lookup/internal/weather"
)

// Palette is the colour pairing of the success view.
type Palette struct {
	Name       string
	Background string
	Foreground string
}

// TemplateContext is the data the text and tooltip templates are rendered with.
type TemplateContext struct {
	Temperature            string
	FeelsLike              string
	Humidity               float64
	Condition              string
	Descriptions           []string
	ConditionIcon          string
	ConditionIconWithSpace string
	Palette                Palette
	Location               weather.Location
	Unit                   string

	Date          string
	LocationQuery string
	Notes         string
	FetchedAt     time.Time
}

// Output is a rendered success view.
type Output struct {
	Text    string
	Tooltip string
	Palette Palette
}

type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	palettes  map[string]Palette

	text    *template.Template
	tooltip *template.Template
}

func New(conf *config.Config, loc *spreak.Localizer) (*Presenter, error) {
	if conf == nil || loc == nil {
		return nil, fmt.Errorf("config and localizer are required")
	}

	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	pres := &Presenter{
		localizer: loc,
		humanizer: collection.CreateHumanizer(loc.Language()),
		palettes: map[string]Palette{
			PaletteHot:     newPalette(PaletteHot, conf.Palettes.Hot),
			PaletteWarm:    newPalette(PaletteWarm, conf.Palettes.Warm),
			PaletteMild:    newPalette(PaletteMild, conf.Palettes.Mild),
			PaletteCold:    newPalette(PaletteCold, conf.Palettes.Cold),
			PaletteNeutral: newPalette(PaletteNeutral, conf.Palettes.Neutral),
			PaletteRain:    newPalette(PaletteRain, conf.Palettes.Rain),
			PaletteSnow:    newPalette(PaletteSnow, conf.Palettes.Snow),
			PaletteSunny:   newPalette(PaletteSunny, conf.Palettes.Sunny),
		},
	}

	pres.text, err = template.New("text").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	pres.tooltip, err = template.New("tooltip").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tooltip template: %w", err)
	}

	// Render a sample once so that broken field references fail early
	sample := &weather.Record{
		Temperature:  21,
		FeelsLike:    20,
		Humidity:     50,
		Descriptions: []string{"Partly cloudy"},
		Location:     weather.Location{Name: "Berlin", Country: "Germany"},
		FetchedAt:    time.Now(),
	}
	if _, err = pres.Render(sample, weather.Celsius); err != nil {
		return nil, err
	}

	return pres, nil
}

// BuildContext derives the template data for record displayed in unit.
func (p *Presenter) BuildContext(record *weather.Record, unit weather.Unit) TemplateContext {
	icon := ConditionIcon(record.Condition())
	return TemplateContext{
		Temperature:            FormatTemperature(record.Temperature, unit),
		FeelsLike:              FormatTemperature(record.FeelsLike, unit),
		Humidity:               record.Humidity,
		Condition:              record.Condition(),
		Descriptions:           record.Descriptions,
		ConditionIcon:          icon,
		ConditionIconWithSpace: EmojiWithSpace(icon),
		Palette:                p.Palette(record.Condition(), record.Temperature),
		Location:               record.Location,
		Unit:                   unit.Symbol(),
		Date:                   record.Date,
		LocationQuery:          record.LocationQuery,
		Notes:                  record.Notes,
		FetchedAt:              record.FetchedAt,
	}
}

// Render executes the text and tooltip templates for record.
func (p *Presenter) Render(record *weather.Record, unit weather.Unit) (Output, error) {
	ctx := p.BuildContext(record, unit)

	textBuf := bytes.NewBuffer(nil)
	if err := p.text.Execute(textBuf, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render text template: %w", err)
	}
	tooltipBuf := bytes.NewBuffer(nil)
	if err := p.tooltip.Execute(tooltipBuf, ctx); err != nil {
		return Output{}, fmt.Errorf("failed to render tooltip template: %w", err)
	}

	return Output{
		Text:    textBuf.String(),
		Tooltip: tooltipBuf.String(),
		Palette: ctx.Palette,
	}, nil
}

// Palette returns the configured palette for the description and temperature.
func (p *Presenter) Palette(desc string, celsius float64) Palette {
	return p.palettes[PaletteName(desc, celsius)]
}

// Localize translates a user facing message.
func (p *Presenter) Localize(msg string) string {
	return p.localizer.Get(msg)
}

// PaletteName applies the palette rules to the description and temperature.
func PaletteName(desc string, celsius float64) string {
	desc = strings.ToLower(desc)
	for _, rule := range paletteRules {
		if rule.match(desc, celsius) {
			return rule.name
		}
	}
	return PaletteNeutral
}

// ConditionIcon returns the emoji for a weather description.
func ConditionIcon(desc string) string {
	desc = strings.ToLower(desc)
	for _, rule := range conditionIcons {
		if strings.Contains(desc, rule.substr) {
			return rule.icon
		}
	}
	return IconDefault
}

// FormatTemperature formats a temperature given in Celsius for display in unit. Celsius
// values are shown as they are, Fahrenheit values are rounded to whole degrees.
func FormatTemperature(celsius float64, unit weather.Unit) string {
	val, precision := celsius, -1
	if unit == weather.Fahrenheit {
		val, precision = weather.CelsiusToFahrenheit(celsius), 0
	}
	if val == 0 {
		val = 0 // no negative zero
	}
	return strconv.FormatFloat(val, 'f', precision, 64) + unit.Symbol()
}

func newPalette(name string, conf config.Palette) Palette {
	return Palette{Name: name, Background: conf.Background, Foreground: conf.Foreground}
}
