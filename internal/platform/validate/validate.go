// Package validate holds the field checks shared by request payloads.
package validate

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalid matches every *Error with errors.Is.
var ErrInvalid = errors.New("validation failed")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Error reports the first field that failed validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Fail returns an *Error for field.
func Fail(field, message string) error {
	return &Error{Field: field, Message: message}
}

// Email checks s against a minimum length, then a simple address pattern.
func Email(field, s string, minLen int) error {
	if utf8.RuneCountInString(s) < minLen {
		return Fail(field, "Email too short")
	}
	if !emailPattern.MatchString(s) {
		return Fail(field, "Invalid email format")
	}
	return nil
}

// MinLen checks that s has at least n characters.
func MinLen(field, s string, n int, message string) error {
	if utf8.RuneCountInString(s) < n {
		return Fail(field, message)
	}
	return nil
}

// URL checks that s is an absolute http(s) URL.
func URL(field, s, message string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Fail(field, message)
	}
	return nil
}

// OptionalURL is URL for fields that may be left empty.
func OptionalURL(field, s, message string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return URL(field, s, message)
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Message returns the user-facing message of a validation error, or fallback
// when err is not one.
func Message(err error, fallback string) string {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}
