package share

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	UUID = uuid.UUID
	// Share is one code-addressed drop. TextData and Password are nil
	// when absent; ExpiresAt nil means the share never expires.
	Share struct {
		UUID      UUID
		Code      string
		TextData  *string
		Password  *string
		CreatedAt time.Time
		ExpiresAt *time.Time
	}
	Shares []*Share
)

// AppendSeparator is inserted between the existing text and appended text.
const AppendSeparator = "\n\n--- Appended ---\n\n"

// Expired reports whether the share has lapsed at the given instant.
func (s *Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// Protected reports whether retrieval requires a password.
func (s *Share) Protected() bool {
	return s.Password != nil && *s.Password != ""
}

// Authorize allows access iff the share is unprotected or the supplied
// password matches exactly. Passwords are stored and compared verbatim.
func (s *Share) Authorize(supplied string) bool {
	if !s.Protected() {
		return true
	}
	return supplied != "" && supplied == *s.Password
}

// AppendText merges new text into the existing body with the visible
// separator marker, or adopts it directly when no text was stored yet.
func (s *Share) AppendText(text string) string {
	if s.TextData == nil || *s.TextData == "" {
		return text
	}
	return *s.TextData + AppendSeparator + text
}
