// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build unix

package service

import (
	"context"
	"log/slog"
	"os"
	"syscall"
)

// HandleSignals toggles the temperature unit on SIGUSR1 and refreshes the weather data
// on SIGUSR2.
func (s *Service) HandleSignals(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			switch sig {
			case syscall.SIGUSR1:
				unit := s.toggleUnit()
				s.logger.Debug("temperature unit toggled", slog.String("unit", unit.String()))
				s.printWeather(ctx)
			case syscall.SIGUSR2:
				s.logger.Debug("weather refresh requested")
				s.updateWeather(ctx)
			}
		}
	}
}
