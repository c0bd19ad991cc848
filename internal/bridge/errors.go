package bridge

import "fmt"

// ErrorKind classifies a bridge failure. Every failure leaving this package
// carries exactly one kind so callers can render the uniform outcome shape
// without inspecting error strings.
type ErrorKind string

const (
	// ErrMissingField — a required argument was empty or absent. Detected
	// before any network call.
	ErrMissingField ErrorKind = "missing_field"

	// ErrFileNotFound — a referenced local media path does not exist.
	// Detected before any network call.
	ErrFileNotFound ErrorKind = "file_not_found"

	// ErrNetwork — the backend was unreachable or returned an HTTP error
	// status. Never retried here.
	ErrNetwork ErrorKind = "network_error"

	// ErrDecode — the backend response could not be parsed where a
	// structured shape was expected.
	ErrDecode ErrorKind = "decode_error"

	// ErrUnknownOperation — a dispatch request named an operation outside
	// the catalogue. Defensive; the tool layer only registers catalogued
	// names.
	ErrUnknownOperation ErrorKind = "unknown_operation"
)

// Error is the failure half of every bridge outcome.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// IsValidation reports whether the error was produced by client-side
// validation (no backend contact was made).
func (e *Error) IsValidation() bool {
	return e.Kind == ErrMissingField || e.Kind == ErrFileNotFound
}

func missingField(field string) *Error {
	return &Error{Kind: ErrMissingField, Message: fmt.Sprintf("%s must be provided", field)}
}

func fileNotFound(path string) *Error {
	return &Error{Kind: ErrFileNotFound, Message: fmt.Sprintf("media file not found: %s", path)}
}
