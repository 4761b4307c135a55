package pgcast

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeNotFound is matched by errors returned when a database type cannot be resolved.
	ErrTypeNotFound = errors.New("type not found")

	// ErrCannotAdapt is matched by errors returned when a value has no adapter for the requested type.
	ErrCannotAdapt = errors.New("cannot adapt value")

	// ErrRecordSize is matched by errors returned when a record value does not have as many fields as its type.
	ErrRecordSize = errors.New("record has wrong size")
)

// TypeNotFoundError is returned when Key does not name a type in the database catalog.
type TypeNotFoundError struct {
	Key any
	Err error
}

func (e *TypeNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("type %v could not be found: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("type %v could not be found", e.Key)
}

func (e *TypeNotFoundError) Unwrap() error {
	return e.Err
}

func (e *TypeNotFoundError) Is(target error) bool {
	return target == ErrTypeNotFound
}

// AdaptError is returned when Value cannot be converted to Type.
type AdaptError struct {
	Value any
	Type  string
	Msg   string
}

func (e *AdaptError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "do not know how to adapt"
	}
	if e.Type == "" {
		return fmt.Sprintf("%s %T", msg, e.Value)
	}
	return fmt.Sprintf("%s %T to %s", msg, e.Value, e.Type)
}

func (e *AdaptError) Is(target error) bool {
	return target == ErrCannotAdapt
}

// RecordSizeError is returned when a record value has Got fields but its type has Want.
type RecordSizeError struct {
	Type string
	Want int
	Got  int
}

func (e *RecordSizeError) Error() string {
	return fmt.Sprintf("record parameter for %s has wrong size: expected %d fields, got %d", e.Type, e.Want, e.Got)
}

func (e *RecordSizeError) Is(target error) bool {
	return target == ErrRecordSize
}

// InvalidCastError is returned when a value that is not a supported cast function is registered as a cast.
type InvalidCastError struct {
	Cast any
}

func (e *InvalidCastError) Error() string {
	return fmt.Sprintf("cast must be a function taking a string, got %T", e.Cast)
}
