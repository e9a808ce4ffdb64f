package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Formula errors
	ErrFormat = errors.New("malformed formula")
	ErrType   = errors.New("invalid argument type")

	// Feature errors
	ErrNotImplemented = errors.New("not implemented")

	// Lookup errors
	ErrNotFound         = errors.New("resource not found")
	ErrModelNotFound    = fmt.Errorf("%w: model", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)

	// Data errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNoDataset        = errors.New("no dataset loaded")
	ErrNoModel          = errors.New("no model specified")
)

// Error constructors with context
func NewFormatError(reason string) error {
	return fmt.Errorf("%w: %s", ErrFormat, reason)
}

func NewTypeError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrType, field, reason)
}

func NewNotImplementedError(feature string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, feature)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}

func IsTypeError(err error) bool {
	return errors.Is(err, ErrType)
}

func IsNotImplementedError(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
