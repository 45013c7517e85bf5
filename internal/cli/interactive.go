// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/janderssonse/permcalc/internal/config"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/urfave/cli/v3"
)

// ErrInvalidDigit is reported by the prompt form for anything but a digit 0-7.
var ErrInvalidDigit = errors.New("enter a single digit 0-7")

// PromptAnswers holds the digits entered in the prompt form.
type PromptAnswers struct {
	Owner  string
	Group  string
	Public string
	Save   bool
}

var subjectTitles = map[permission.Subject]string{ //nolint:gochecknoglobals
	permission.Owner:  "Owner (User)",
	permission.Group:  "Group",
	permission.Public: "Public (Others)",
}

func (app *CLI) createPromptCommand() *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "Ask for each digit with a line-based form",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "save", Usage: "offer to store the answers as config defaults"},
		},
		Action: app.requireConfig(func(ctx context.Context, cmd *cli.Command) error {
			return app.runPrompt(ctx, cmd.Bool("save"))
		}),
	}
}

func (app *CLI) runPrompt(ctx context.Context, offerSave bool) error {
	answers := &PromptAnswers{
		Owner:  app.cfg.Defaults.Owner,
		Group:  app.cfg.Defaults.Group,
		Public: app.cfg.Defaults.Public,
	}

	fields := []huh.Field{
		digitInput(permission.Owner, &answers.Owner),
		digitInput(permission.Group, &answers.Group),
		digitInput(permission.Public, &answers.Public),
	}

	if offerSave {
		fields = append(fields, huh.NewConfirm().
			Title("Save as defaults?").
			Description(app.configPath).
			Value(&answers.Save))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(app.output.Plain || !app.output.IsTTY(app.output.Out))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return NewExitError(ExitInterruptError, "prompt cancelled", err)
		}

		return NewExitError(ExitGeneralError, "prompt failed", err)
	}

	state := applyAnswers(app.newSession(app.logger), answers)
	app.printNotation(state)

	if answers.Save {
		return app.saveDefaults(state)
	}

	return nil
}

// applyAnswers feeds the form answers through the session as text edits.
func applyAnswers(session *permission.Session, answers *PromptAnswers) permission.State {
	session.OnTextEdit(permission.Owner, answers.Owner)
	session.OnTextEdit(permission.Group, answers.Group)

	return session.OnTextEdit(permission.Public, answers.Public)
}

func (app *CLI) saveDefaults(state permission.State) error {
	cfg := *app.cfg
	cfg.Defaults = config.Defaults{
		Owner:  state.Text(permission.Owner),
		Group:  state.Text(permission.Group),
		Public: state.Text(permission.Public),
	}

	if err := config.Save(app.configPath, &cfg, true); err != nil {
		return NewExitError(ExitConfigError, "failed to save defaults", err)
	}

	app.cfg = &cfg
	app.output.Progressf("saved defaults to %s", app.configPath)

	return nil
}

func digitInput(subject permission.Subject, value *string) *huh.Input {
	return huh.NewInput().
		Title(subjectTitles[subject]).
		Placeholder("0-7").
		CharLimit(1).
		Validate(validateDigit).
		Value(value)
}

func validateDigit(text string) error {
	if text == "" || permission.IsValidDigit(text) {
		return nil
	}

	return fmt.Errorf("%w: got %q", ErrInvalidDigit, text)
}
