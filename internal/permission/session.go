// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

package permission

import (
	"github.com/rs/zerolog"
)

// Session owns the current State of one interactive editing session and is the
// entry point for the widget layer. It is not safe for concurrent use.
type Session struct {
	state  State
	logger zerolog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger attaches a logger that records edits at debug level.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session with all digits empty.
func NewSession(opts ...SessionOption) *Session {
	session := &Session{
		state:  NewState(),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// Seed applies one text edit per subject, in notation order. Rejected texts are skipped.
func (s *Session) Seed(owner, group, public string) State {
	texts := [subjectCount]string{owner, group, public}
	for _, subject := range Subjects() {
		s.OnTextEdit(subject, texts[subject])
	}

	return s.state
}

// OnTextEdit handles a raw text change from an input field.
func (s *Session) OnTextEdit(subject Subject, text string) State {
	next := s.state.ApplyTextEdit(subject, text)
	if next == s.state && s.state.Text(subject) != text {
		s.logger.Debug().Stringer("subject", subject).Str("text", text).Msg("rejected text edit")

		return s.state
	}

	s.logger.Debug().Stringer("subject", subject).Str("text", text).Msg("text edit")
	s.state = next

	return s.state
}

// OnToggle flips one permission of subject.
func (s *Session) OnToggle(subject Subject, kind Kind) State {
	s.state = s.state.ToggleBit(subject, kind)
	s.logger.Debug().
		Stringer("subject", subject).
		Stringer("permission", kind).
		Str("digit", s.state.Text(subject)).
		Msg("toggle")

	return s.state
}

// QueryChecked reports whether the toggle for kind should render as checked.
func (s *Session) QueryChecked(subject Subject, kind Kind) bool {
	return s.state.HasPermission(subject, kind)
}

// QueryDisplayDigit returns the text to show in the subject's input field.
func (s *Session) QueryDisplayDigit(subject Subject) string {
	return s.state.Text(subject)
}

// QueryDerived returns the current octal and symbolic notation.
func (s *Session) QueryDerived() Notation {
	return s.state.Derive()
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Reset discards all digits.
func (s *Session) Reset() {
	s.state = NewState()
	s.logger.Debug().Msg("reset")
}
