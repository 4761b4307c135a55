package pgtext

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every error returned when text does not follow a recognized PostgreSQL text format.
var ErrMalformed = errors.New("malformed literal")

// ParseError is returned when Text cannot be parsed as Type.
type ParseError struct {
	Type string
	Text string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "cannot parse " + e.Type
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", msg, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: %q", msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

func parseError(typ, text, msg string, err error) *ParseError {
	return &ParseError{Type: typ, Text: text, Msg: msg, Err: err}
}
