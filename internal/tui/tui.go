// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package tui hosts the weather lookup widget in an interactive terminal UI.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wneessen/weather-lookup/internal/logger"
	"github.com/wneessen/weather-lookup/internal/presenter"
	"github.com/wneessen/weather-lookup/internal/weather"
	"github.com/wneessen/weather-lookup/internal/widget"
)

const (
	msgTitle       = "Lookup Weather Data"
	msgDescription = "Enter a unique weather ID to retrieve previously stored data."
	msgPlaceholder = "Enter weather ID"
	msgLabel       = "Weather ID"
	msgSearching   = "Searching..."
	msgSuccess     = "Weather data retrieved successfully!"
	msgHelp        = "enter: lookup • ctrl+t: °C/°F • esc: clear • ctrl+c: quit"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	cardStyle    = lipgloss.NewStyle().Padding(1, 2).MarginTop(1)
)

// lookupResultMsg carries the outcome of a lookup back into the update loop.
type lookupResultMsg struct {
	ticket widget.Ticket
	record *weather.Record
	err    error
}

// Model is the Bubble Tea model of the lookup screen. All widget mutations happen in
// Update, lookups run as commands and report back with a lookupResultMsg.
type Model struct {
	ctx       context.Context
	input     textinput.Model
	logger    *logger.Logger
	presenter *presenter.Presenter
	provider  weather.Provider
	widget    *widget.Widget
}

func New(ctx context.Context, provider weather.Provider, pres *presenter.Presenter, log *logger.Logger,
	unit weather.Unit,
) (Model, error) {
	if provider == nil || pres == nil || log == nil {
		return Model{}, errors.New("weather provider, presenter and logger are required")
	}

	input := textinput.New()
	input.Placeholder = pres.Localize(msgPlaceholder)
	input.Prompt = "› "
	input.CharLimit = 128
	input.Width = 40
	input.Focus()

	return Model{
		ctx:       ctx,
		input:     input,
		logger:    log,
		presenter: pres,
		provider:  provider,
		widget:    widget.New(unit),
	}, nil
}

// Run starts the interactive program and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, model Model) error {
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyCtrlT:
			m.widget.ToggleUnit()
			m.logger.Debug("temperature unit toggled", slog.String("unit", m.widget.Unit().String()))
			return m, nil
		case tea.KeyEsc:
			m.widget.Clear()
			m.input.Reset()
			return m, nil
		}
	case lookupResultMsg:
		if !m.widget.Resolve(msg.ticket, msg.record, msg.err) {
			m.logger.Debug("dropping stale weather lookup result", slog.Uint64("generation", msg.ticket.Generation))
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("failed to fetch weather data", logger.Err(msg.err), slog.String("key", msg.ticket.Key))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the current input to the widget and returns the lookup command for an
// accepted search.
func (m Model) submit() tea.Cmd {
	ticket, err := m.widget.Submit(m.input.Value())
	if err != nil {
		return nil
	}
	m.logger.Debug("looking up weather data", slog.String("key", ticket.Key),
		slog.Uint64("generation", ticket.Generation))
	return lookupCmd(m.ctx, m.provider, ticket)
}

func lookupCmd(ctx context.Context, provider weather.Provider, ticket widget.Ticket) tea.Cmd {
	return func() tea.Msg {
		record, err := provider.Lookup(ctx, ticket.Key)
		return lookupResultMsg{ticket: ticket, record: record, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.presenter.Localize(msgTitle)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.presenter.Localize(msgDescription)))
	b.WriteString("\n\n")
	b.WriteString(m.presenter.Localize(msgLabel))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.widget.State() {
	case widget.Loading:
		b.WriteString(mutedStyle.Render(m.presenter.Localize(msgSearching)))
		b.WriteString("\n")
	case widget.Error:
		b.WriteString(errorStyle.Render(m.presenter.Localize(m.widget.Message())))
		b.WriteString("\n")
	case widget.Success:
		b.WriteString(m.successView())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.presenter.Localize(msgHelp)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) successView() string {
	output, err := m.presenter.Render(m.widget.Record(), m.widget.Unit())
	if err != nil {
		m.logger.Error("failed to render weather data", logger.Err(err))
		return errorStyle.Render(m.presenter.Localize(widget.MsgMalformed))
	}

	card := cardStyle.
		Background(lipgloss.Color(output.Palette.Background)).
		Foreground(lipgloss.Color(output.Palette.Foreground)).
		Render(output.Text + "\n\n" + output.Tooltip)
	return successStyle.Render(m.presenter.Localize(msgSuccess)) + "\n" + card
}
