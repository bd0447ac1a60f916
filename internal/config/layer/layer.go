// Package layer stacks configuration sources by priority.
//
// Each source (built-in defaults, the user file, the environment, command
// line flags, the startup script) contributes one Layer holding a nested
// map. Higher priority layers override lower ones key by key; tables are
// merged recursively.
package layer

import "time"

// Layer is one configuration source.
type Layer struct {
	// Name identifies the layer, e.g. "defaults" or "user".
	Name string

	// Priority determines merge order; higher overrides lower.
	Priority int

	Source Source

	// Path is the file the layer was loaded from, if any.
	Path string

	// Data holds the values as nested maps.
	Data map[string]any

	// ModTime is when the layer was loaded or last replaced.
	ModTime time.Time

	// ReadOnly rejects Set and Delete.
	ReadOnly bool
}

// New creates an empty layer with the standard priority of its source.
func New(name string, source Source) *Layer {
	return NewWithData(name, source, make(map[string]any))
}

// NewWithData creates a layer holding data.
func NewWithData(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
		ModTime:  time.Now(),
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = cloneMap(l.Data)
	return &c
}

// Source identifies where a layer came from.
type Source uint8

const (
	// SourceBuiltin holds the compiled-in defaults.
	SourceBuiltin Source = iota
	// SourceUser is the user configuration file.
	SourceUser
	// SourceScript holds values set by the startup script.
	SourceScript
	// SourceEnv holds HEXVIEW_* environment variables.
	SourceEnv
	// SourceArgs holds command line flags.
	SourceArgs
)

// Standard priorities. Flags beat the environment, which beats the
// startup script, which beats the user file.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityScript  = 200
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceScript:
		return "script"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Priority returns the standard priority of the source.
func (s Source) Priority() int {
	switch s {
	case SourceUser:
		return PriorityUser
	case SourceScript:
		return PriorityScript
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}
