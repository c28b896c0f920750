package payload

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// maxExcerptRunes bounds the diagnostic excerpt carried by a FormatError.
const maxExcerptRunes = 120

// FormatError reports a payload that could not be turned into a JSON array.
// It is fatal for the call: the captured snapshot will not change, so
// retrying the parse is pointless.
type FormatError struct {
	Reason  string
	Excerpt string
	Err     error
}

func (e *FormatError) Error() string {
	msg := "payload format: " + e.Reason
	if e.Excerpt != "" {
		msg += fmt.Sprintf(" (near %q)", e.Excerpt)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Permanent marks the error as not retryable.
func (e *FormatError) Permanent() bool { return true }

// NewFormatError builds a FormatError with a bounded excerpt of raw.
func NewFormatError(reason, raw string, err error) *FormatError {
	return &FormatError{Reason: reason, Excerpt: Excerpt(raw), Err: err}
}

// IsFormatError reports whether err (or any error in its chain) is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// Excerpt returns at most maxExcerptRunes runes from the head of s.
func Excerpt(s string) string {
	if utf8.RuneCountInString(s) <= maxExcerptRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxExcerptRunes {
			return s[:i] + "…"
		}
		n++
	}
	return s
}
