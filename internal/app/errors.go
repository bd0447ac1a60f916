package app

import "errors"

var (
	// ErrQuit ends Run normally. cmd/hexview exits with status 0 on it.
	ErrQuit = errors.New("quit requested")

	ErrAlreadyRunning = errors.New("application already running")
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNoImage        = errors.New("no image to view")
)

// InitError names the component that failed while the viewer was being
// brought up by New or Run.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "initializing " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error { return e.Err }

// ComponentError reports a failure of a running component. Action says
// what the component was doing and may be empty.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func (e *ComponentError) Error() string {
	prefix := e.Component
	if e.Action != "" {
		prefix += ": " + e.Action
	}
	return prefix + ": " + e.Err.Error()
}

func (e *ComponentError) Unwrap() error { return e.Err }
