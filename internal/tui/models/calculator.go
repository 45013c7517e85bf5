// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/janderssonse/permcalc/internal/tui/styles"
	"github.com/mattn/go-runewidth"
)

// Layout constants for the calculator grid.
const (
	inputRow    = 0
	columnWidth = 22
)

// subjectLabels are the column headings, in notation order.
var subjectLabels = map[permission.Subject]string{ //nolint:gochecknoglobals
	permission.Owner:  "Owner (User)",
	permission.Group:  "Group",
	permission.Public: "Public (Others)",
}

// CalculatorKeyMap defines key bindings for the calculator screen.
type CalculatorKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
	QuitQ  key.Binding
}

// DefaultCalculatorKeyMap returns the default key bindings.
func DefaultCalculatorKeyMap() CalculatorKeyMap {
	return CalculatorKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab/→", "next subject"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab/←", "previous subject"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", KeyEnter),
			key.WithHelp("space", "toggle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(KeyEsc, KeyCtrlC),
			key.WithHelp("esc", "quit"),
		),
		QuitQ: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Calculator is the interactive permission editor. Text fields and checkboxes only
// forward edits to the session and render what it reports back.
type Calculator struct {
	styles   *styles.Styles
	session  *permission.Session
	inputs   []textinput.Model
	column   int
	row      int
	width    int
	height   int
	quitting bool
	keyMap   CalculatorKeyMap
}

// NewCalculator creates the calculator screen over session.
func NewCalculator(styleConfig *styles.Styles, session *permission.Session) *Calculator {
	subjects := permission.Subjects()

	model := &Calculator{
		styles:  styleConfig,
		session: session,
		inputs:  make([]textinput.Model, len(subjects)),
		keyMap:  DefaultCalculatorKeyMap(),
	}

	for i := range subjects {
		input := textinput.New()
		input.Placeholder = "0-7"
		input.Prompt = ""
		input.Width = 3
		model.inputs[i] = input
	}

	model.syncInputs()
	model.focus()

	return model
}

// Init initializes the calculator.
func (m *Calculator) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the Calculator model.
func (m *Calculator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd

	m.inputs[m.column], cmd = m.inputs[m.column].Update(msg)

	return m, cmd
}

// View renders the calculator screen.
func (m *Calculator) View() string {
	if m.quitting {
		return GoodbyeMessage
	}

	var builder strings.Builder

	builder.WriteString(m.styles.Title.Render("🔐 Chmod Permission Calculator"))
	builder.WriteString("\n")

	columns := make([]string, 0, len(m.inputs))
	for _, subject := range permission.Subjects() {
		columns = append(columns, m.renderColumn(subject))
	}

	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	builder.WriteString("\n\n")
	builder.WriteString(m.renderResults())
	builder.WriteString("\n")
	builder.WriteString(m.renderFooter())

	return builder.String()
}

// Session returns the session the calculator edits.
func (m *Calculator) Session() *permission.Session {
	return m.session
}

// Focus returns the focused subject and row (0 is the text field, 1-3 the checkboxes).
func (m *Calculator) Focus() (permission.Subject, int) {
	return permission.Subjects()[m.column], m.row
}

func (m *Calculator) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit),
		m.row != inputRow && key.Matches(msg, m.keyMap.QuitQ):
		m.quitting = true

		return m, tea.Quit
	case key.Matches(msg, m.keyMap.Help):
		return m, func() tea.Msg {
			return NavigateMsg{Screen: HelpScreen}
		}
	case key.Matches(msg, m.keyMap.Reset):
		m.session.Reset()
		m.syncInputs()

		return m, nil
	case key.Matches(msg, m.keyMap.Next):
		return m, m.moveColumn(1)
	case key.Matches(msg, m.keyMap.Prev):
		return m, m.moveColumn(-1)
	case key.Matches(msg, m.keyMap.Down):
		return m, m.moveRow(1)
	case key.Matches(msg, m.keyMap.Up):
		return m, m.moveRow(-1)
	case m.row != inputRow && key.Matches(msg, m.keyMap.Toggle):
		subject, row := m.Focus()
		m.session.OnToggle(subject, permission.Kinds()[row-1])
		m.syncInputs()

		return m, nil
	case m.row == inputRow:
		return m.handleTextInput(msg)
	}

	return m, nil
}

// handleTextInput lets the focused field apply the keystroke, offers the resulting text to
// the session and then shows whatever the session stored, so rejected text disappears.
func (m *Calculator) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	subject, _ := m.Focus()

	var cmd tea.Cmd

	m.inputs[m.column], cmd = m.inputs[m.column].Update(msg)
	m.session.OnTextEdit(subject, m.inputs[m.column].Value())
	m.syncInputs()

	return m, cmd
}

func (m *Calculator) moveColumn(delta int) tea.Cmd {
	count := len(m.inputs)
	m.column = (m.column + delta + count) % count

	return m.focus()
}

func (m *Calculator) moveRow(delta int) tea.Cmd {
	rows := len(permission.Kinds()) + 1
	m.row = (m.row + delta + rows) % rows

	return m.focus()
}

// focus gives keyboard focus to the current text field, or to none on checkbox rows.
func (m *Calculator) focus() tea.Cmd {
	var cmd tea.Cmd

	for i := range m.inputs {
		if i == m.column && m.row == inputRow {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}

	return cmd
}

func (m *Calculator) syncInputs() {
	for i, subject := range permission.Subjects() {
		if text := m.session.QueryDisplayDigit(subject); m.inputs[i].Value() != text {
			m.inputs[i].SetValue(text)
		}
	}
}

func (m *Calculator) renderColumn(subject permission.Subject) string {
	index := int(subject)
	focusedColumn := index == m.column

	label := runewidth.FillRight(subjectLabels[subject], columnWidth)
	if focusedColumn {
		label = m.styles.PrimaryText.Bold(true).Render(label)
	} else {
		label = m.styles.MutedText.Render(label)
	}

	field := m.styles.Field
	text := m.session.QueryDisplayDigit(subject)

	switch {
	case text != "" && !permission.IsValidDigit(text):
		field = m.styles.FieldError
	case focusedColumn && m.row == inputRow:
		field = m.styles.FieldFocus
	}

	lines := []string{label, field.Render(m.inputs[index].View())}

	for i, kind := range permission.Kinds() {
		focused := focusedColumn && m.row == i+1
		lines = append(lines, m.styles.Checkbox(m.session.QueryChecked(subject, kind), focused, kind.Label()))
	}

	return lipgloss.NewStyle().Width(columnWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Calculator) renderResults() string {
	derived := m.session.QueryDerived()

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Subtitle.Render("Octal Notation:"),
		m.styles.Result.Render(derived.Octal),
		"",
		m.styles.Subtitle.Render("Symbolic Notation:"),
		m.styles.Result.Render(derived.Symbolic),
	)

	return m.styles.Card.Render(body)
}

func (m *Calculator) renderFooter() string {
	return RenderFooter(m.styles, m.width, []FooterAction{
		{Key: "0-7", Action: "digit"},
		{Key: "tab/←→", Action: "subject"},
		{Key: "↑↓", Action: "row"},
		{Key: "space", Action: "toggle"},
		{Key: "ctrl+r", Action: "reset"},
		{Key: "esc", Action: "quit"},
	}, true)
}
