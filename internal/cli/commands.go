// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/janderssonse/permcalc/internal/config"
	"github.com/janderssonse/permcalc/internal/logging"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/janderssonse/permcalc/internal/tui"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

func (app *CLI) createTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive calculator",
		Action: app.requireConfig(func(ctx context.Context, _ *cli.Command) error {
			return app.runTUI(ctx)
		}),
	}
}

func (app *CLI) runTUI(ctx context.Context) error {
	fileLogger, err := logging.NewFile(app.cfg, app.verbose)
	if err != nil {
		return NewExitError(ExitConfigError, "failed to open log file", err)
	}

	defer func() { _ = fileLogger.Close() }()

	logger := fileLogger.Logger
	opts := tui.Options{
		Theme:   app.cfg.Theme,
		Session: app.newSession(logger),
		Logger:  &logger,
	}

	if err := app.launch(ctx, opts); err != nil {
		if errors.Is(err, tui.ErrNoTerminal) {
			return NewExitError(ExitUsageError, "no terminal available, use 'permcalc calc' for scripted use", err)
		}

		if errors.Is(err, context.Canceled) {
			return NewExitError(ExitInterruptError, "interrupted", err)
		}

		return NewExitError(ExitGeneralError, "TUI failed", err)
	}

	return nil
}

func (app *CLI) createCalcCommand() *cli.Command {
	return &cli.Command{
		Name:  "calc",
		Usage: "Compute notation from digits and toggles",
		Description: `Digits are applied as text edits: anything other than a single 0-7 digit
is rejected with a warning and the previous value is kept. Toggles flip one
permission bit and are applied in order after the digits.

EXAMPLES:
  permcalc calc --owner 7 --group 5 --public 5
  permcalc calc --toggle owner:execute --toggle g:w`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Aliases: []string{"u"}, Usage: "owner digit (0-7)"},
			&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Usage: "group digit (0-7)"},
			&cli.StringFlag{Name: "public", Aliases: []string{"o"}, Usage: "public digit (0-7)"},
			&cli.StringSliceFlag{Name: "toggle", Aliases: []string{"t"}, Usage: "flip a bit, as subject:kind (e.g. owner:read)"},
		},
		Action: app.requireConfig(app.handleCalc),
	}
}

func (app *CLI) handleCalc(_ context.Context, cmd *cli.Command) error {
	session := app.newSession(app.logger)

	for _, subject := range permission.Subjects() {
		if !cmd.IsSet(subject.String()) {
			continue
		}

		text := cmd.String(subject.String())
		if !permission.IsValidDigit(text) && text != "" {
			app.output.Warningf("ignoring %s digit %q: must be a single digit 0-7", subject, text)
		}

		session.OnTextEdit(subject, text)
	}

	for _, toggle := range cmd.StringSlice("toggle") {
		subject, kind, err := parseToggle(toggle)
		if err != nil {
			return NewExitError(ExitUsageError, fmt.Sprintf("invalid --toggle %q", toggle), err)
		}

		session.OnToggle(subject, kind)
	}

	app.printNotation(session.State())

	return nil
}

// parseToggle splits "subject:kind" into its parts.
func parseToggle(value string) (permission.Subject, permission.Kind, error) {
	name, kind, found := strings.Cut(value, ":")
	if !found {
		return 0, 0, fmt.Errorf("%w: expected subject:kind", ErrInvalidArgument)
	}

	subject, err := permission.ParseSubject(name)
	if err != nil {
		return 0, 0, err
	}

	k, err := permission.ParseKind(kind)
	if err != nil {
		return 0, 0, err
	}

	return subject, k, nil
}

func (app *CLI) createConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert an octal mode to symbolic notation",
		ArgsUsage: "<octal>",
		Action: app.requireConfig(func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return NewExitError(ExitUsageError, "convert requires exactly one octal mode", ErrMissingArgument)
			}

			state, err := permission.ParseOctal(cmd.Args().First())
			if err != nil {
				return NewExitError(ExitUsageError, "cannot convert "+cmd.Args().First(), err)
			}

			app.printNotation(state)

			return nil
		}),
	}
}

func (app *CLI) createInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the permission bits of an existing file",
		ArgsUsage: "<path>",
		Action: app.requireConfig(func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return NewExitError(ExitUsageError, "inspect requires exactly one path", ErrMissingArgument)
			}

			path := cmd.Args().First()

			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return NewExitError(ExitNotFoundError, "no such file "+path, err)
				}

				return NewExitError(ExitSystemError, "cannot stat "+path, err)
			}

			app.logger.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("inspected")
			app.printNotation(permission.FromFileMode(info.Mode()))

			return nil
		}),
	}
}

func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default config file",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite an existing file"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					app.warnInvalidConfig()

					err := config.Save(app.configPath, config.Default(), cmd.Bool("force"))
					if errors.Is(err, config.ErrConfigExists) {
						return NewExitError(ExitConfigError, app.configPath+" exists, use --force to overwrite", err)
					}

					if err != nil {
						return NewExitError(ExitConfigError, "failed to write config", err)
					}

					app.output.Progressf("wrote %s", app.configPath)
					app.output.SuccessResult(app.configPath)

					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: app.requireConfig(func(_ context.Context, _ *cli.Command) error {
					return app.showConfig()
				}),
			},
			{
				Name:  "path",
				Usage: "Print the config file location",
				Action: func(_ context.Context, _ *cli.Command) error {
					app.warnInvalidConfig()
					app.output.SuccessResult(app.configPath)

					return nil
				},
			},
		},
	}
}

func (app *CLI) showConfig() error {
	data, err := toml.Marshal(app.cfg)
	if err != nil {
		return NewExitError(ExitGeneralError, "failed to encode config", err)
	}

	if app.output.JSON {
		// Decoding the TOML document keeps JSON keys identical to the file's.
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return NewExitError(ExitGeneralError, "failed to encode config", err)
		}

		app.output.SuccessResult(doc)

		return nil
	}

	_, _ = fmt.Fprint(app.output.Out, string(data))

	return nil
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(_ context.Context, _ *cli.Command) error {
			app.warnInvalidConfig()

			if app.output.JSON {
				app.output.JSONResult("success", map[string]any{"version": Version})

				return nil
			}

			if app.output.Plain {
				app.output.PlainKeyValue("version", Version)

				return nil
			}

			app.output.Result("permcalc " + Version)

			return nil
		},
	}
}

// printNotation writes a state in the active output mode.
func (app *CLI) printNotation(state permission.State) {
	notation := state.Derive()

	switch {
	case app.output.JSON:
		app.output.SuccessResult(map[string]any{
			"octal":    notation.Octal,
			"symbolic": notation.Symbolic,
			"owner":    state.Digit(permission.Owner),
			"group":    state.Digit(permission.Group),
			"public":   state.Digit(permission.Public),
		})
	case app.output.Plain:
		app.output.PlainKeyValue("octal", notation.Octal)
		app.output.PlainKeyValue("symbolic", notation.Symbolic)
	default:
		rows := make([][]string, 0, len(permission.Subjects()))
		for _, subject := range permission.Subjects() {
			digit := state.Digit(subject)
			rows = append(rows, []string{subject.String(), fmt.Sprint(digit), permission.SymbolicDigit(digit)})
		}

		app.output.Table([]string{"SUBJECT", "DIGIT", "SYMBOLIC"}, rows)
		app.output.Result(notation.String())
	}
}
