// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"

	"github.com/wneessen/weather-lookup/internal/logger"
)

//go:embed locale/*
var locales embed.FS

// New returns a localizer for loc. An empty loc is detected from the environment. A locale
// that cannot be used falls back to English and is reported through log.
func New(loc string, log *logger.Logger) (*spreak.Localizer, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	tag, err := languageTag(loc)
	if err != nil {
		log.Warn("unusable locale, falling back to English", slog.String("locale", loc), logger.Err(err))
		tag = language.English
	}

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

func languageTag(loc string) (language.Tag, error) {
	if loc == "" {
		tag, err := locale.Detect()
		if err != nil {
			return language.English, nil // Unable to detect locale, fallback to English
		}
		return tag, nil
	}
	if loc == "C" || loc == "POSIX" {
		return language.English, nil
	}
	tag, err := language.Parse(loc)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", loc, err)
	}
	return tag, nil
}
