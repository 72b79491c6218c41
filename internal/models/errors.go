package models

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument classifies every validation failure raised by an
// account: non-integer identifiers, non-numeric or non-positive amounts
// and over-withdrawal.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError carries the operation and field that rejected a value.
type ArgumentError struct {
	Op    string
	Field string
	Value any
	Msg   string
}

func (e *ArgumentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Op + ": " + e.Field
	if e.Msg != "" {
		base += " " + e.Msg
	}
	return base
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(op, field string, value any, format string, args ...any) error {
	return &ArgumentError{Op: op, Field: field, Value: value, Msg: fmt.Sprintf(format, args...)}
}
