package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput        = errors.New("invalid workout input")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrCorruptState        = errors.New("corrupt persisted state")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrUnknownMarker       = errors.New("unknown marker")
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrNoBackup            = errors.New("no backup to restore")
)

// FieldError names one rejected input field.
type FieldError struct {
	Field  string
	Reason string
}

// InvalidInputError lists every field that failed validation.
type InvalidInputError struct {
	Fields []FieldError
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// Has reports whether field is among the failing fields.
func (e *InvalidInputError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// FieldNames returns the failing field names in validation order.
func (e *InvalidInputError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// CorruptStateError reports a persisted record that could not be decoded.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("%s under key %q: %v", ErrCorruptState, e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() []error { return []error{ErrCorruptState, e.Err} }
