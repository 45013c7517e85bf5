// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package permission

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// ErrInvalidOctal is returned when an octal permission string cannot be parsed.
var ErrInvalidOctal = errors.New("octal permission must be three digits 0-7, optionally prefixed by 0")

// symbolicTable maps a digit to its rwx rendering.
var symbolicTable = [maxDigit + 1]string{ //nolint:gochecknoglobals
	"---", "--x", "-w-", "-wx", "r--", "r-x", "rw-", "rwx",
}

// Notation is the derived display of a state.
type Notation struct {
	Octal    string `json:"octal"`
	Symbolic string `json:"symbolic"`
}

func (n Notation) String() string {
	return n.Octal + " (" + n.Symbolic + ")"
}

// SymbolicDigit returns the three-character rendering of digit. Digits outside 0-7 render as "---".
func SymbolicDigit(digit int) string {
	if digit < 0 || digit > maxDigit {
		return symbolicTable[0]
	}

	return symbolicTable[digit]
}

// Derive computes the octal and symbolic notation of s.
func (s State) Derive() Notation {
	var octal, symbolic strings.Builder

	octal.WriteByte('0')

	for _, subject := range Subjects() {
		digit := s.Digit(subject)
		octal.WriteString(strconv.Itoa(digit))
		symbolic.WriteString(SymbolicDigit(digit))
	}

	return Notation{Octal: octal.String(), Symbolic: symbolic.String()}
}

// ParseOctal builds a state from an octal string such as "755" or "0755".
func ParseOctal(text string) (State, error) {
	digits := strings.TrimSpace(text)
	if len(digits) == subjectCount+1 && digits[0] == '0' {
		digits = digits[1:]
	}

	if len(digits) != subjectCount {
		return State{}, fmt.Errorf("%w: %q", ErrInvalidOctal, text)
	}

	state := NewState()

	for i, subject := range Subjects() {
		digit := digits[i : i+1]
		if !IsValidDigit(digit) {
			return State{}, fmt.Errorf("%w: %q", ErrInvalidOctal, text)
		}

		state = state.ApplyTextEdit(subject, digit)
	}

	return state, nil
}

// FromFileMode builds a state from the permission bits of mode.
func FromFileMode(mode fs.FileMode) State {
	perm := int(mode.Perm())
	state := NewState()

	for i, subject := range Subjects() {
		shift := uint(3 * (subjectCount - 1 - i)) //nolint:gosec // i is bounded by subjectCount
		state = state.ApplyTextEdit(subject, strconv.Itoa((perm>>shift)&maxDigit))
	}

	return state
}
