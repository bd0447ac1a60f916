package lua

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("lua execution timeout")

	// ErrNoHost is returned when a script is run without a host.
	ErrNoHost = errors.New("lua: no host")
)

// ScriptError reports a failure inside a script file.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return "script " + e.Path + ": " + e.Err.Error()
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
