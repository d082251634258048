// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	OpConfigLoad    Op = "load configuration"
	OpPrefsOpen     Op = "open preferences"
	OpInitialize    Op = "initialize application"
	OpFileLoad      Op = "load file"
	OpPlaybackStart Op = "start playback"
)

// Error is a failure of Op, optionally on a named subject such as a file.
type Error struct {
	Op      Op
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", e.Op, e.Subject, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error for op, or nil when err is nil.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith is Wrap with a subject shown in quotes.
func WrapWith(op Op, subject string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Subject: subject, Err: err}
}

// Format returns the user-facing message for err, or "" when err is nil.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is Format with a subject.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	return WrapWith(op, subject, err).Error()
}
