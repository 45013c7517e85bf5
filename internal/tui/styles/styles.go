// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme provides.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// Built-in palettes keyed by theme name.
var palettes = map[string]Palette{ //nolint:gochecknoglobals
	"tokyo-night": {
		Primary:    "#7aa2f7",
		Secondary:  "#bb9af7",
		Success:    "#9ece6a",
		Warning:    "#e0af68",
		Error:      "#f7768e",
		Muted:      "#565f89",
		Background: "#1a1b26",
		Foreground: "#c0caf5",
	},
	"nord": {
		Primary:    "#88c0d0",
		Secondary:  "#b48ead",
		Success:    "#a3be8c",
		Warning:    "#ebcb8b",
		Error:      "#bf616a",
		Muted:      "#4c566a",
		Background: "#2e3440",
		Foreground: "#eceff4",
	},
	"gruvbox": {
		Primary:    "#83a598",
		Secondary:  "#d3869b",
		Success:    "#b8bb26",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
		Muted:      "#665c54",
		Background: "#282828",
		Foreground: "#ebdbb2",
	},
}

// DefaultTheme is used when no theme or an unknown theme is requested.
const DefaultTheme = "tokyo-night"

// Styles contains all the styles used in the TUI.
type Styles struct {
	Theme string
	Palette

	// Component styles
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Footer     lipgloss.Style
	Card       lipgloss.Style
	Field      lipgloss.Style
	FieldFocus lipgloss.Style
	FieldError lipgloss.Style
	Result     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style

	// Text styles (cached for performance)
	MutedText   lipgloss.Style
	PrimaryText lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
}

// New creates a new Styles instance with the default Tokyo Night theme.
func New() *Styles {
	return NewWithTheme(DefaultTheme)
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	_, ok := palettes[name]

	return ok
}

// NewWithTheme creates styles for the named theme, falling back to the default.
func NewWithTheme(name string) *Styles {
	palette, ok := palettes[name]
	if !ok {
		name = DefaultTheme
		palette = palettes[DefaultTheme]
	}

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Muted).
		Padding(0, 1).
		Width(9).
		Align(lipgloss.Center)

	return &Styles{
		Theme:   name,
		Palette: palette,

		Title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Italic(true),

		Footer: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Padding(0, 1).
			MarginTop(1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Muted).
			Padding(1, 2),

		Field:      field,
		FieldFocus: field.BorderForeground(palette.Primary),
		FieldError: field.BorderForeground(palette.Error),

		Result: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(palette.Primary).
			Foreground(palette.Background).
			Padding(0, 1),

		Unselected: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Padding(0, 1),

		MutedText:   lipgloss.NewStyle().Foreground(palette.Muted),
		PrimaryText: lipgloss.NewStyle().Foreground(palette.Primary),
		SuccessText: lipgloss.NewStyle().Foreground(palette.Success),
		ErrorText:   lipgloss.NewStyle().Foreground(palette.Error),
	}
}

// Checkbox renders a toggle box with its label.
func (s *Styles) Checkbox(checked, focused bool, label string) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}

	text := box + " " + label
	if focused {
		return s.Selected.Render(text)
	}

	if checked {
		return s.SuccessText.Padding(0, 1).Render(text)
	}

	return s.Unselected.Render(text)
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Muted)

	return keyStyle.Render("["+key+"]") + " " + descStyle.Render(desc)
}
