// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/permcalc/internal/tui/styles"
	"github.com/stretchr/testify/assert"
)

func TestRenderFooter(t *testing.T) {
	t.Parallel()

	actions := []FooterAction{
		{Key: "space", Action: "toggle"},
		{Key: "ctrl+r", Action: "reset"},
		{Key: "esc", Action: "quit"},
	}

	tests := []struct {
		name        string
		width       int
		includeHelp bool
		minLines    int
	}{
		{name: "unbounded width", width: 0, includeHelp: true, minLines: 1},
		{name: "narrow width wraps", width: 24, includeHelp: false, minLines: 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			footer := RenderFooter(styles.New(), testCase.width, actions, testCase.includeHelp)

			for _, action := range actions {
				assert.Contains(t, footer, action.Action)
			}

			assert.Equal(t, testCase.includeHelp, strings.Contains(footer, "help"))
			assert.GreaterOrEqual(t, lipgloss.Height(footer), testCase.minLines)
		})
	}
}
