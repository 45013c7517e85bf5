// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package permission models Unix-style permission digits for the owner, group and public
// subjects, and derives their octal and symbolic notations.
package permission

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parse errors.
var (
	// ErrUnknownSubject is returned when a subject name is not recognised.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrUnknownKind is returned when a permission name is not recognised.
	ErrUnknownKind = errors.New("unknown permission")
)

// Subject is one of the three permission-bearing roles.
// The numeric order is the digit position in octal notation.
type Subject int

// Subjects in notation order.
const (
	Owner Subject = iota
	Group
	Public

	subjectCount = 3
)

// Subjects returns all subjects in notation order.
func Subjects() []Subject {
	return []Subject{Owner, Group, Public}
}

func (s Subject) String() string {
	switch s {
	case Owner:
		return "owner"
	case Group:
		return "group"
	case Public:
		return "public"
	default:
		return "subject(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is one of the three defined subjects.
func (s Subject) Valid() bool {
	return s >= Owner && s < subjectCount
}

// ParseSubject resolves a subject name, accepting the chmod letters as aliases.
func ParseSubject(name string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "owner", "user", "u":
		return Owner, nil
	case "group", "g":
		return Group, nil
	case "public", "other", "others", "o":
		return Public, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
}

// Kind is a single permission. Its value is its weight in the digit bitmask.
type Kind uint8

// Permission kinds.
const (
	Execute Kind = 1 << iota
	Write
	Read
)

// Kinds returns all permission kinds in symbolic order (r, w, x).
func Kinds() []Kind {
	return []Kind{Read, Write, Execute}
}

// Weight returns the bit value of k within a digit.
func (k Kind) Weight() int {
	return int(k)
}

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	case Execute:
		return "execute"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Symbol returns the symbolic notation letter for k.
func (k Kind) Symbol() string {
	switch k {
	case Read:
		return "r"
	case Write:
		return "w"
	case Execute:
		return "x"
	default:
		return "?"
	}
}

// Label returns the display label, e.g. "Read (4)".
func (k Kind) Label() string {
	return cases.Title(language.English).String(k.String()) + " (" + strconv.Itoa(k.Weight()) + ")"
}

// ParseKind resolves a permission name or its symbolic letter.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "read", "r":
		return Read, nil
	case "write", "w":
		return Write, nil
	case "execute", "exec", "x":
		return Execute, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
