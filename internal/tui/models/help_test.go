// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/permcalc/internal/tui/styles"
	"github.com/stretchr/testify/require"
)

func TestHelp_Sections(t *testing.T) {
	t.Parallel()

	help := NewHelp(styles.New())

	require.Len(t, help.sections, 3)
	require.Equal(t, 0, help.CurrentSection())
	require.Contains(t, help.View(), "Calculator")
}

func TestHelp_SectionNavigation(t *testing.T) {
	t.Parallel()

	help := NewHelp(styles.New())

	help.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, help.CurrentSection())

	help.Update(tea.KeyMsg{Type: tea.KeyTab})
	help.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 2, help.CurrentSection(), "navigation stops at the last section")

	help.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, 1, help.CurrentSection())
}

func TestHelp_Back(t *testing.T) {
	t.Parallel()

	_, cmd := NewHelp(styles.New()).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(NavigateMsg)
	require.True(t, ok)
	require.Equal(t, CalculatorScreen, msg.Screen)
}

func TestHelp_WindowSize(t *testing.T) {
	t.Parallel()

	help := NewHelp(styles.New())
	help.Update(tea.WindowSizeMsg{Width: 90, Height: 30})

	require.Equal(t, 90, help.viewport.Width)
	require.Positive(t, help.viewport.Height)
}
