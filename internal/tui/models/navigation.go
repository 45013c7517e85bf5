// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models implements the permcalc screens.
package models

// NavigateMsg is a message sent to request navigation to a specific screen.
type NavigateMsg struct {
	Screen int
}

// Screen constants for navigation.
const (
	CalculatorScreen = iota
	HelpScreen
)

// Key constants for common key inputs.
const (
	KeyCtrlC = "ctrl+c"
	KeyEnter = "enter"
	KeyEsc   = "esc"
)

// GoodbyeMessage is rendered once the program is quitting.
const GoodbyeMessage = "Goodbye!\n"
