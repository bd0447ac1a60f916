// Package loader reads configuration sources into nested maps.
//
// TOML files are parsed with go-toml and YAML files with yaml.v3.
// HEXVIEW_* environment variables are mapped onto dotted setting paths.
// A missing file is not an error: the loader returns a nil map and the
// layer is simply absent.
package loader

import "os"

// Loader reads one configuration source.
type Loader interface {
	// Load returns the values of the source, or nil, nil when the source
	// does not exist.
	Load() (map[string]any, error)
}

// FileSystem reads configuration files. Tests substitute a map.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// FileSystemFunc adapts a function to FileSystem.
type FileSystemFunc func(path string) ([]byte, error)

// ReadFile calls f.
func (f FileSystemFunc) ReadFile(path string) ([]byte, error) {
	return f(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return FileSystemFunc(os.ReadFile)
}
