// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package permission

import (
	"strconv"
	"strings"
)

const maxDigit = 7

// IsValidDigit reports whether text is exactly one character in the range 0-7.
func IsValidDigit(text string) bool {
	return len(text) == 1 && text[0] >= '0' && text[0] <= '7'
}

// State holds the raw text of each subject's digit. Each entry is either empty or a
// single valid octal digit. The zero value is the all-empty state.
//
// State is a value: every transition returns a new State and leaves the receiver untouched.
type State struct {
	digits [subjectCount]string
}

// NewState returns a state with no digits entered.
func NewState() State {
	return State{}
}

// Text returns the raw text stored for subject.
func (s State) Text(subject Subject) string {
	if !subject.Valid() {
		return ""
	}

	return s.digits[subject]
}

// ApplyTextEdit replaces the subject's text when it is empty or a valid digit.
// Any other text is rejected and the state is returned unchanged.
func (s State) ApplyTextEdit(subject Subject, text string) State {
	if !subject.Valid() {
		return s
	}

	if text != "" && !IsValidDigit(text) {
		return s
	}

	s.digits[subject] = text

	return s
}

// ToggleBit flips one permission bit of the subject's digit.
// A result outside 0-7 can only come from a stored value the validator never admitted;
// such a toggle is dropped so the digit invariant holds.
func (s State) ToggleBit(subject Subject, kind Kind) State {
	if !subject.Valid() {
		return s
	}

	next := lenientInt(s.digits[subject]) ^ kind.Weight()
	if next < 0 || next > maxDigit {
		return s
	}

	s.digits[subject] = strconv.Itoa(next)

	return s
}

// HasPermission reports whether kind is granted to subject.
func (s State) HasPermission(subject Subject, kind Kind) bool {
	if !subject.Valid() {
		return false
	}

	return lenientInt(s.digits[subject])&kind.Weight() != 0
}

// Digit returns the numeric digit of subject. Empty or out of range text reads as 0.
func (s State) Digit(subject Subject) int {
	if !subject.Valid() {
		return 0
	}

	value := lenientInt(s.digits[subject])
	if value < 0 || value > maxDigit {
		return 0
	}

	return value
}

// lenientInt parses the leading decimal integer of text, ignoring leading whitespace and
// anything after the digits. Text without a numeric prefix reads as 0.
func lenientInt(text string) int {
	text = strings.TrimLeft(text, " \t\n\r\v\f")

	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}

	start := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}

	if end == start {
		return 0
	}

	value, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0
	}

	return value
}
