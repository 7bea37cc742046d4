package share

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers unknown codes, unknown blob keys and
	// expired-and-reaped shares alike.
	ErrNotFound = errors.New("share not found")
	// ErrExpired is reported only at the blob-fetch boundary, where a
	// lapsed-but-not-yet-reaped owner is distinguished from an unknown key.
	ErrExpired = errors.New("share expired")
	// ErrUnauthorized means a wrong or missing password on a protected share.
	ErrUnauthorized = errors.New("invalid password")
	// ErrCodeTaken is returned by the record store when a freshly generated
	// code collides with a live share; the caller retries generation.
	ErrCodeTaken = errors.New("access code already taken")
)

// ValidationReason is the machine-checkable kind of a ValidationError.
type ValidationReason string

const (
	ReasonEmptyPayload    ValidationReason = "empty_payload"
	ReasonFileTooLarge    ValidationReason = "file_too_large"
	ReasonUnsupportedType ValidationReason = "unsupported_type"
)

// ValidationError is a caller fault detected before any mutation.
type ValidationError struct {
	Reason   ValidationReason
	FileName string
	MimeType string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmptyPayload:
		return "no files or text data provided"
	case ReasonFileTooLarge:
		return fmt.Sprintf("file %q exceeds the size limit", e.FileName)
	case ReasonUnsupportedType:
		return fmt.Sprintf("file type %q is not supported for %q", e.MimeType, e.FileName)
	}
	return "validation failed"
}

func NewEmptyPayload() *ValidationError {
	return &ValidationError{Reason: ReasonEmptyPayload}
}

func NewFileTooLarge(name string) *ValidationError {
	return &ValidationError{Reason: ReasonFileTooLarge, FileName: name}
}

func NewUnsupportedType(name, mime string) *ValidationError {
	return &ValidationError{Reason: ReasonUnsupportedType, FileName: name, MimeType: mime}
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
