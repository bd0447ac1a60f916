package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dshills/hexview/internal/config/layer"
	"github.com/dshills/hexview/internal/config/loader"
	"github.com/dshills/hexview/internal/config/watcher"
)

// Layer names.
const (
	LayerDefaults = "defaults"
	LayerUser     = "user"
	LayerScript   = "script"
	LayerEnv      = "environment"
	LayerArgs     = "arguments"
)

// Change announces a reload of the user file. Err is set when the new
// content could not be used; the previous values then stay in effect.
type Change struct {
	Path string
	Op   watcher.Operation
	Err  error
}

// Config provides merged, typed access to every configuration layer.
// It is safe for concurrent use.
type Config struct {
	mu sync.Mutex

	layers  *layer.Manager
	watcher *watcher.Watcher
	changes chan Change

	path          string
	envPrefix     string
	fs            loader.FileSystem
	environ       func() []string
	enableWatcher bool
	loaded        bool

	// configErrors records type errors met by the section accessors.
	errMu        sync.Mutex
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile sets the user configuration file.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithUserConfigDir sets the directory holding config.toml.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.path = filepath.Join(dir, "config.toml")
	}
}

// WithWatcher enables live reload of the user file.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithEnvPrefix sets the prefix of environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFileSystem reads the user file through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnviron replaces the environment source, for tests.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a Config. Call Load before reading values.
func New(opts ...Option) *Config {
	c := &Config{
		layers:       layer.NewManager(),
		changes:      make(chan Change, 4),
		envPrefix:    loader.DefaultEnvPrefix,
		fs:           loader.DefaultFS(),
		configErrors: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.path == "" {
		c.path = filepath.Join(DefaultUserConfigDir(), "config.toml")
	}
	return c
}

// Load reads every source and, if enabled, starts watching the user file.
// A missing user file is not an error.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	defaults := layer.NewWithData(LayerDefaults, layer.SourceBuiltin, defaultConfig())
	defaults.ReadOnly = true
	c.layers.Add(defaults)

	user, err := c.loadUser()
	if err != nil {
		return err
	}
	c.layers.Add(user)

	env := loader.NewEnvLoader(c.envPrefix)
	if c.environ != nil {
		env = loader.NewEnvLoaderWithEnviron(c.envPrefix, c.environ)
	}
	envData, err := env.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	c.layers.Add(layer.NewWithData(LayerEnv, layer.SourceEnv, envData))
	c.layers.Add(layer.New(LayerScript, layer.SourceScript))
	c.layers.Add(layer.New(LayerArgs, layer.SourceArgs))

	if c.enableWatcher && c.watcher == nil {
		w, err := watcher.New()
		if err != nil {
			return fmt.Errorf("starting config watcher: %w", err)
		}
		if err := w.Watch(c.path); err != nil {
			w.Stop()
			// the directory may not exist; live reload is then unavailable
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("watching %s: %w", c.path, err)
			}
		} else {
			w.OnChange(c.handleFileChange)
			c.watcher = w
		}
	}
	c.loaded = true
	return nil
}

func (c *Config) loadUser() (*layer.Layer, error) {
	data, err := loader.NewTOMLLoaderWithFS(c.fs, c.path).Load()
	if err != nil {
		return nil, err
	}
	l := layer.NewWithData(LayerUser, layer.SourceUser, data)
	l.Path = c.path
	return l, nil
}

// Reload re-reads the user file. On error the previous values are kept.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return ErrNotLoaded
	}
	user, err := c.loadUser()
	if err != nil {
		return err
	}
	c.layers.Add(user)
	return nil
}

func (c *Config) handleFileChange(ev watcher.Event) {
	change := Change{Path: ev.Path, Op: ev.Op}
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		c.mu.Lock()
		err := c.layers.Replace(LayerUser, nil)
		c.mu.Unlock()
		change.Err = err
	} else {
		change.Err = c.Reload()
	}

	select {
	case c.changes <- change:
	default:
		// a reload is already queued; the receiver reads the latest values
	}
}

// Changes delivers user file reloads.
func (c *Config) Changes() <-chan Change {
	return c.changes
}

// Path returns the user configuration file.
func (c *Config) Path() string {
	return c.path
}

// Close stops the watcher.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Get returns the merged value at a dotted path.
func (c *Config) Get(path string) (any, bool) {
	return c.layers.Get(path)
}

// WhichLayer returns the name of the layer providing path.
func (c *Config) WhichLayer(path string) string {
	return c.layers.WhichLayer(path)
}

// Merged returns the merged configuration.
func (c *Config) Merged() map[string]any {
	return c.layers.Merge()
}

// Set stores a command line override.
func (c *Config) Set(path string, value any) error {
	return c.layers.Set(LayerArgs, path, value)
}

// SetScript stores a value set by the startup script.
func (c *Config) SetScript(path string, value any) error {
	return c.layers.Set(LayerScript, path, value)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", notFound(path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
// Strings holding an integer in Go syntax, such as "0x4000", are accepted.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, notFound(path)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		i, err := strconv.ParseInt(val, 0, 64)
		if err != nil {
			return 0, &ValueError{Path: path, Value: val, Err: err}
		}
		return int(i), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, notFound(path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float64 value at the given path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, notFound(path)
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// GetDuration returns a duration at the given path. Strings use
// time.ParseDuration syntax and bare integers count milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, notFound(path)
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &ValueError{Path: path, Value: val, Err: err}
		}
		return d, nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// GetStringMap returns a table of strings at the given path.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, notFound(path)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "table", Actual: typeName(v)}
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)}
		}
		out[k] = s
	}
	return out, nil
}

// Errors returns the problems met while reading sections, sorted by path.
func (c *Config) Errors() []error {
	c.errMu.Lock()
	defer c.errMu.Unlock()

	paths := make([]string, 0, len(c.configErrors))
	for p := range c.configErrors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]error, len(paths))
	for i, p := range paths {
		out[i] = c.configErrors[p]
	}
	return out
}

func (c *Config) recordConfigError(path string, err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	c.configErrors[path] = err
}

// DefaultUserConfigDir returns $XDG_CONFIG_HOME/hexview, falling back to
// ~/.config/hexview.
func DefaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hexview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hexview")
}

// defaultConfig returns the built-in values.
func defaultConfig() map[string]any {
	return map[string]any{
		"view": map[string]any{
			"height":        480,
			"batch":         32,
			"idleSleep":     "45ms",
			"flushInterval": "200ms",
			"gfxScale":      2,
			"shift":         0,
			"caseShift":     0,
			"tallSprites":   false,
		},
		"ui": map[string]any{
			"backend":    "window",
			"font":       "gomono",
			"statusFont": "8x16",
			"scale":      2,
			"animation":  true,
		},
		"theme": map[string]any{},
		"keys":  map[string]any{},
		"script": map[string]any{
			"path":    filepath.Join(DefaultUserConfigDir(), "init.lua"),
			"enabled": true,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
