// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/permcalc/internal/tui/styles"
)

const helpWrapWidth = 80

// HelpSection represents a help documentation section.
type HelpSection struct {
	Title   string
	Content string
}

// Help represents the help screen model.
type Help struct {
	styles         *styles.Styles
	width          int
	height         int
	sections       []HelpSection
	viewport       viewport.Model
	renderer       *glamour.TermRenderer
	currentSection int
	keyMap         HelpKeyMap
}

// HelpKeyMap defines key bindings for the help screen.
type HelpKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// DefaultHelpKeyMap returns the default key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "previous section"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next section"),
		),
		Back: key.NewBinding(
			key.WithKeys(KeyEsc, "?"),
			key.WithHelp("esc", "back to calculator"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", KeyCtrlC),
			key.WithHelp("q", "quit"),
		),
	}
}

func helpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Calculator",
			Content: `# Using the calculator

Each column holds the digit for one subject: **owner**, **group** and **public**.

- Type a digit from ` + "`0`" + ` to ` + "`7`" + ` in a field. Anything else is ignored.
- Clear a field with **backspace**; an empty field counts as ` + "`0`" + `.
- Move down to the checkboxes and press **space** to toggle read, write or execute.
  The digit above updates immediately.

The results panel always shows both notations for the current digits.`,
		},
		{
			Title: "Notation",
			Content: `# Octal and symbolic notation

Every digit is the sum of the permissions it grants:

| Permission | Weight | Symbol |
|------------|--------|--------|
| Read       | 4      | r      |
| Write      | 2      | w      |
| Execute    | 1      | x      |

| Digit | Symbolic | Digit | Symbolic |
|-------|----------|-------|----------|
| 0     | ---      | 4     | r--      |
| 1     | --x      | 5     | r-x      |
| 2     | -w-      | 6     | rw-      |
| 3     | -wx      | 7     | rwx      |

Octal notation is ` + "`0`" + ` followed by the owner, group and public digits, so
` + "`chmod 0755`" + ` means ` + "`rwxr-xr-x`" + `.`,
		},
		{
			Title: "Keys",
			Content: `# Keyboard shortcuts

| Key | Action |
|-----|--------|
| tab / →  | Next subject |
| shift+tab / ← | Previous subject |
| ↑ / ↓ | Move between the field and the checkboxes |
| space / enter | Toggle the focused permission |
| ctrl+r | Clear all digits |
| ? | Show this help |
| esc | Quit (or leave help) |
| q | Quit when a checkbox is focused |`,
		},
	}
}

// NewHelp creates a new help model.
func NewHelp(styleConfig *styles.Styles) *Help {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(helpWrapWidth),
	)
	if err != nil {
		// Fallback to default renderer
		renderer, _ = glamour.NewTermRenderer()
	}

	viewPort := viewport.New(helpWrapWidth, 20)
	viewPort.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styleConfig.Primary).
		Padding(1)

	helpModel := &Help{
		styles:   styleConfig,
		sections: helpSections(),
		viewport: viewPort,
		renderer: renderer,
		keyMap:   DefaultHelpKeyMap(),
	}

	helpModel.updateContent()

	return helpModel
}

// Init initializes the help model.
func (m *Help) Init() tea.Cmd {
	return nil
}

// Update handles messages for the Help model.
func (m *Help) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	}

	return m, nil
}

// View renders the help screen.
func (m *Help) View() string {
	var builder strings.Builder

	builder.WriteString(m.renderHeader())
	builder.WriteString("\n\n")
	builder.WriteString(m.viewport.View())
	builder.WriteString("\n")
	builder.WriteString(m.renderFooter())

	return builder.String()
}

// CurrentSection returns the index of the visible section.
func (m *Help) CurrentSection() int {
	return m.currentSection
}

func (m *Help) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.Back):
		return m, func() tea.Msg {
			return NavigateMsg{Screen: CalculatorScreen}
		}
	case key.Matches(msg, m.keyMap.Left):
		m.moveSection(-1)

		return m, nil
	case key.Matches(msg, m.keyMap.Right):
		m.moveSection(1)

		return m, nil
	default:
		var cmd tea.Cmd

		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}
}

func (m *Help) moveSection(direction int) {
	next := m.currentSection + direction
	if next >= 0 && next < len(m.sections) {
		m.currentSection = next
		m.updateContent()
	}
}

func (m *Help) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	verticalMargins := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter()) + 1

	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-verticalMargins, 1)

	return m, nil
}

func (m *Help) renderHeader() string {
	tabs := make([]string, 0, len(m.sections))

	for i, section := range m.sections {
		style := m.styles.Unselected.MarginRight(1).Faint(true)
		if i == m.currentSection {
			style = m.styles.Selected.MarginRight(1)
		}

		tabs = append(tabs, style.Render(section.Title))
	}

	return m.styles.Title.Render("❓ Help") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Help) renderFooter() string {
	return RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "↑↓/jk", Action: "scroll"},
		{Key: "←→/hl", Action: "sections"},
		{Key: "esc", Action: "back"},
		{Key: "q", Action: "quit"},
	}, false)
}

// updateContent renders the current section and loads it into the viewport.
func (m *Help) updateContent() {
	section := m.sections[m.currentSection]

	rendered, err := m.renderer.Render(section.Content)
	if err != nil {
		rendered = section.Content
	}

	m.viewport.SetContent(rendered)
}
