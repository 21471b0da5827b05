// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build unix

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/service"
	"github.com/wneessen/weather-lookup/internal/tui"
	"github.com/wneessen/weather-lookup/internal/weather/provider/backend"
	"github.com/wneessen/weather-lookup/internal/widget"
)

func newRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "weather-lookup",
		Short:         "Look up weather records stored in the weather backend",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, true)
			if err != nil {
				return err
			}
			defer closeApp(a)

			model, err := tui.New(cmd.Context(), a.backend, a.presenter, a.log, a.unit)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), model)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to the config file")
	flags.StringVarP(&opts.units, "units", "u", "", "temperature units (metric or imperial)")
	flags.StringVar(&opts.baseURL, "base-url", "", "base URL of the weather backend")

	root.AddCommand(newGetCmd(opts), newCreateCmd(opts), newWatchCmd(opts))
	return root
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print the weather record stored under the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(a)

			w := widget.New(a.unit)
			if err = w.Lookup(cmd.Context(), a.backend, args[0]); err != nil {
				a.log.Debug("weather lookup failed", logger.Err(err))
				return errors.New(a.presenter.Localize(w.Message()))
			}

			output, err := a.presenter.Render(w.Record(), w.Unit())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", output.Text, output.Tooltip)
			return err
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	req := backend.CreateRequest{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Store a new weather record and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(a)

			id, err := a.backend.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create weather record: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", "date of the weather record (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Location, "location", "", "location of the weather record")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <id>",
		Short: "Periodically print the weather record as waybar module output",
		Long: "Periodically print the weather record as waybar module output. Send SIGUSR1 to " +
			"toggle the temperature unit and SIGUSR2 to refresh the weather data.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(a)

			serv, err := service.New(a.conf, a.log, a.presenter, a.backend, args[0])
			if err != nil {
				return fmt.Errorf("failed to initialize watch service: %w", err)
			}

			sigChan := make(chan os.Signal, 1)
			serv.SignalSrc.Notify(sigChan, syscall.SIGUSR1, syscall.SIGUSR2)
			defer serv.SignalSrc.Stop(sigChan)
			go serv.HandleSignals(cmd.Context(), sigChan)

			a.log.Info("starting weather-lookup watch service", slog.String("version", version),
				slog.String("commit", commit), slog.String("date", date))
			if err = serv.Run(cmd.Context()); err != nil {
				return fmt.Errorf("failed to run watch service: %w", err)
			}
			a.log.Info("shutting down weather-lookup watch service")
			return nil
		},
	}
}

func closeApp(a *app) {
	if err := a.Close(); err != nil {
		a.log.Error("failed to close log file", logger.Err(err))
	}
}
