// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the permcalc command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/janderssonse/permcalc/internal/config"
	"github.com/janderssonse/permcalc/internal/console"
	"github.com/janderssonse/permcalc/internal/logging"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/janderssonse/permcalc/internal/tui"
	"github.com/janderssonse/permcalc/internal/tui/styles"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess        = 0  // Operation completed successfully
	ExitGeneralError   = 1  // Generic failure (catch-all)
	ExitUsageError     = 2  // Invalid command line usage
	ExitConfigError    = 3  // Configuration file error
	ExitNotFoundError  = 5  // Requested path not found
	ExitSystemError    = 12 // System call failed
	ExitInterruptError = 14 // User interrupted (Ctrl+C)
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals

var (
	// ErrInvalidArgument is returned when a command argument is invalid.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing argument")
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// CLI wires flags, configuration and output for all commands.
type CLI struct {
	app        *cli.Command
	verbose    bool
	json       bool
	plain      bool
	configPath string
	theme      string

	output *console.OutputState
	cfg    *config.Config
	cfgErr *ExitError
	logger zerolog.Logger

	// launch starts the TUI; replaced in tests.
	launch func(context.Context, tui.Options) error
}

// NewCLI creates the CLI writing to stdout and stderr.
func NewCLI() *CLI {
	return NewCLIWithOutput(os.Stdout, os.Stderr)
}

// NewCLIWithOutput creates the CLI writing results to out and diagnostics to errOut.
func NewCLIWithOutput(out, errOut io.Writer) *CLI {
	app := &CLI{
		output: &console.OutputState{Out: out, Err: errOut},
		cfg:    config.Default(),
		logger: zerolog.Nop(),
		launch: tui.LaunchInteractive,
	}

	app.app = &cli.Command{
		Name:    "permcalc",
		Usage:   "Calculate chmod permissions in octal and symbolic notation",
		Version: Version,
		Suggest: true,
		// -v is --verbose; the version subcommand replaces --version.
		HideVersion: true,
		Description: `Edit owner, group and public permission digits and see the octal and
symbolic notation update as you go.

QUICK START:
  permcalc                               # Interactive calculator
  permcalc calc --owner 7 --group 5 --public 5
  permcalc convert 644                   # rw-r--r--
  permcalc inspect ./script.sh           # Permissions of an existing file`,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show debug logging on stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain key:value lines for scripts",
				Destination: &app.plain,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.toml",
				Value:       config.DefaultPath(),
				Destination: &app.configPath,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "TUI theme: tokyo-night, nord, gruvbox (overrides config)",
				Destination: &app.theme,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return app.initConfig(ctx, cmd)
		},
		Action:   app.requireConfig(app.defaultAction),
		Commands: app.createCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// Execute runs the CLI and reports a failure in the active output mode. It returns
// the process exit code.
func (app *CLI) Execute(ctx context.Context, args []string) int {
	err := app.Run(ctx, args)
	if err == nil {
		return ExitSuccess
	}

	code := ExitUsageError // flag parsing errors come back from urfave/cli unwrapped

	exitErr := &ExitError{}
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	app.output.ErrorResult(err, code)

	return code
}

// App provides the root command for main.
func App() *CLI {
	return NewCLI()
}

func (app *CLI) createCommands() []*cli.Command {
	return []*cli.Command{
		app.createTUICommand(),
		app.createCalcCommand(),
		app.createConvertCommand(),
		app.createInspectCommand(),
		app.createPromptCommand(),
		app.createConfigCommand(),
		app.createVersionCommand(),
	}
}

// initConfig validates global flags, loads the config file and builds the logger.
// A config file that fails to load is recorded in cfgErr and the built-in defaults are
// used, so commands that repair or locate the file still run. Every other command
// reports cfgErr through requireConfig.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	app.output.SetMode(app.verbose, app.json, app.plain)

	if app.json && app.plain {
		return ctx, NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	cfg, err := config.Load(app.configPath)
	if err != nil {
		app.cfgErr = NewExitError(ExitConfigError, "failed to load config "+app.configPath, err)
		cfg = config.Default()
	}

	if app.theme != "" {
		if !styles.HasTheme(app.theme) {
			return ctx, NewExitError(ExitUsageError, fmt.Sprintf("unknown theme %q", app.theme), config.ErrUnknownTheme)
		}

		cfg.Theme = app.theme
	}

	logger, err := logging.NewConsole(app.output.Err, cfg.Log, app.verbose)
	if err != nil {
		app.cfgErr = NewExitError(ExitConfigError, "invalid log settings", err)
		cfg = config.Default()

		if logger, err = logging.NewConsole(app.output.Err, cfg.Log, app.verbose); err != nil {
			return ctx, NewExitError(ExitConfigError, "invalid log settings", err)
		}
	}

	app.cfg = cfg
	app.logger = logger
	app.logger.Debug().Str("config", app.configPath).Str("theme", cfg.Theme).Msg("configuration loaded")

	return ctx, nil
}

// requireConfig wraps an action that depends on a valid config file.
func (app *CLI) requireConfig(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if app.cfgErr != nil {
			return app.cfgErr
		}

		return action(ctx, cmd)
	}
}

// warnInvalidConfig logs a load failure for commands that run on the built-in defaults.
func (app *CLI) warnInvalidConfig() {
	if app.cfgErr != nil {
		app.logger.Warn().Err(app.cfgErr.Err).Str("config", app.configPath).Msg("config invalid, using built-in defaults")
	}
}

func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return NewExitError(ExitUsageError, fmt.Sprintf("unknown command %q, see 'permcalc --help'", cmd.Args().First()), nil)
	}

	return app.runTUI(ctx)
}

// newSession starts a session seeded with the configured default digits.
func (app *CLI) newSession(logger zerolog.Logger) *permission.Session {
	session := permission.NewSession(permission.WithLogger(logger))
	defaults := app.cfg.Defaults
	session.Seed(defaults.Owner, defaults.Group, defaults.Public)

	return session
}
