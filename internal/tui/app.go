// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui hosts the interactive permission calculator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/janderssonse/permcalc/internal/tui/models"
	"github.com/janderssonse/permcalc/internal/tui/styles"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// Screen represents different TUI screens.
type Screen int

// Screens.
const (
	CalculatorScreen Screen = Screen(models.CalculatorScreen)
	HelpScreen       Screen = Screen(models.HelpScreen)
)

// Options configures a new App.
type Options struct {
	Theme   string
	Session *permission.Session
	Logger  *zerolog.Logger
}

// App is the root model. It owns the screen models and routes messages to the active one.
type App struct {
	width         int
	height        int
	styles        *styles.Styles
	session       *permission.Session
	logger        zerolog.Logger
	currentScreen Screen
	contentModel  tea.Model
	models        map[Screen]tea.Model
}

// NewApp creates a new TUI application starting on the calculator.
func NewApp(opts Options) *App {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	session := opts.Session
	if session == nil {
		session = permission.NewSession(permission.WithLogger(logger))
	}

	app := &App{
		styles:        styles.NewWithTheme(opts.Theme),
		session:       session,
		logger:        logger,
		currentScreen: CalculatorScreen,
		models:        make(map[Screen]tea.Model),
	}

	calculator := models.NewCalculator(app.styles, session)
	app.contentModel = calculator
	app.models[CalculatorScreen] = calculator

	return app
}

// Run starts the TUI application with the provided context.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	derived := a.session.QueryDerived()
	a.logger.Info().Str("octal", derived.Octal).Str("symbolic", derived.Symbolic).Msg("session finished")

	return nil
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return a.contentModel.Init()
}

// Update implements the tea.Model interface.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		var cmd tea.Cmd

		a.contentModel, cmd = a.contentModel.Update(msg)

		return a, cmd

	case models.NavigateMsg:
		return a.handleNavigation(msg)

	default:
		var cmd tea.Cmd

		a.contentModel, cmd = a.contentModel.Update(msg)

		return a, cmd
	}
}

// View implements the tea.Model interface and centers the active screen.
func (a *App) View() string {
	content := a.contentModel.View()

	if a.width <= 0 || a.height <= 0 {
		return content
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// GetCurrentScreen returns the current screen (for testing).
func (a *App) GetCurrentScreen() Screen {
	return a.currentScreen
}

// GetContentModel returns the current content model (for testing).
func (a *App) GetContentModel() tea.Model {
	return a.contentModel
}

// Session returns the session edited by the app.
func (a *App) Session() *permission.Session {
	return a.session
}

// LaunchInteractive starts the interactive TUI interface.
func LaunchInteractive(ctx context.Context, opts Options) error {
	if !isTerminal() {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	return NewApp(opts).Run(ctx)
}

// handleNavigation switches screens, creating and caching models on first use.
func (a *App) handleNavigation(msg models.NavigateMsg) (tea.Model, tea.Cmd) {
	target := Screen(msg.Screen)

	model, cached := a.models[target]
	if !cached {
		switch target {
		case HelpScreen:
			model = models.NewHelp(a.styles)
		case CalculatorScreen:
			model = models.NewCalculator(a.styles, a.session)
		default:
			return a, nil
		}

		a.models[target] = model
	}

	a.logger.Debug().Int("screen", int(target)).Msg("navigate")

	a.currentScreen = target
	a.contentModel = model

	var sizeCmd tea.Cmd
	if a.width > 0 && a.height > 0 {
		a.contentModel, sizeCmd = a.contentModel.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}

	return a, tea.Batch(a.contentModel.Init(), sizeCmd)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fds fit in int
}
