package config

import (
	"errors"
	"fmt"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrTypeMismatch    = errors.New("type mismatch")

	// ErrInvalidValue is a value of the right type that cannot be used,
	// such as a malformed duration string.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotLoaded is returned by Reload before Load.
	ErrNotLoaded = errors.New("configuration not loaded")
)

func notFound(path string) error {
	return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
}

// TypeError reports a setting holding the wrong type. It matches
// ErrTypeMismatch.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, have %s", e.Path, e.Expected, e.Actual)
}

func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// ValueError reports a setting that could not be interpreted. It matches
// ErrInvalidValue and unwraps to the parse failure.
type ValueError struct {
	Path  string
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %v: %v", e.Path, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

func (e *ValueError) Is(target error) bool { return target == ErrInvalidValue }
