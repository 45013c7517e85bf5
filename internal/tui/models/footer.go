// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/permcalc/internal/tui/styles"
)

// FooterAction represents a key-action pair for footer display.
type FooterAction struct {
	Key    string
	Action string
}

// RenderFooter joins the actions into a footer line. Actions that would overflow
// width wrap onto a new line; a width of zero disables wrapping.
func RenderFooter(styleConfig *styles.Styles, width int, actions []FooterAction, includeHelp bool) string {
	rendered := make([]string, 0, len(actions)+1)
	for _, action := range actions {
		rendered = append(rendered, styleConfig.Keybinding(action.Key, action.Action))
	}

	if includeHelp {
		helpKey := lipgloss.NewStyle().Bold(true).Foreground(styleConfig.Warning).Render("[?]")
		rendered = append(rendered, helpKey+" "+lipgloss.NewStyle().Foreground(styleConfig.Muted).Render("help"))
	}

	const gap = "  "

	limit := width - styleConfig.Footer.GetHorizontalFrameSize()

	var (
		lines   []string
		current string
	)

	for _, item := range rendered {
		switch {
		case current == "":
			current = item
		case limit > 0 && lipgloss.Width(current+gap+item) > limit:
			lines = append(lines, current)
			current = item
		default:
			current += gap + item
		}
	}

	lines = append(lines, current)

	return styleConfig.Footer.Render(strings.Join(lines, "\n"))
}
