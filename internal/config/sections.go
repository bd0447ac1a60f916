package config

import (
	"errors"
	"time"
)

// Section accessors return snapshots. Values of the wrong type fall back to
// the default and are recorded in Errors.

// ViewConfig holds rendering and scheduling settings.
type ViewConfig struct {
	// Height is the framebuffer height in pixels.
	Height int

	// Batch is the number of scanlines redrawn per loop iteration.
	Batch int

	// IdleSleep is how long the loop waits for input once everything is
	// drawn.
	IdleSleep time.Duration

	// FlushInterval bounds how long rendered rows wait for presentation.
	FlushInterval time.Duration

	// GfxScale is the pixel size of one tile pixel.
	GfxScale int

	// Shift and CaseShift are the initial transliteration shifts.
	Shift     int
	CaseShift int

	TallSprites bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Backend is "window" or "terminal".
	Backend string

	// Font and StatusFont name built-in faces.
	Font       string
	StatusFont string

	// Scale is the window magnification.
	Scale int

	// Animation enables the bottom bar walker.
	Animation bool
}

// ScriptConfig locates the startup script.
type ScriptConfig struct {
	Path    string
	Enabled bool
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string

	// File receives log output. Empty means stderr.
	File string
}

// View returns the [view] section.
func (c *Config) View() ViewConfig {
	return ViewConfig{
		Height:        c.getIntOr("view.height", 480),
		Batch:         c.getIntOr("view.batch", 32),
		IdleSleep:     c.getDurationOr("view.idleSleep", 45*time.Millisecond),
		FlushInterval: c.getDurationOr("view.flushInterval", 200*time.Millisecond),
		GfxScale:      c.getIntOr("view.gfxScale", 2),
		Shift:         c.getIntOr("view.shift", 0),
		CaseShift:     c.getIntOr("view.caseShift", 0),
		TallSprites:   c.getBoolOr("view.tallSprites", false),
	}
}

// UI returns the [ui] section.
func (c *Config) UI() UIConfig {
	return UIConfig{
		Backend:    c.getStringOr("ui.backend", "window"),
		Font:       c.getStringOr("ui.font", "gomono"),
		StatusFont: c.getStringOr("ui.statusFont", "8x16"),
		Scale:      c.getIntOr("ui.scale", 2),
		Animation:  c.getBoolOr("ui.animation", true),
	}
}

// Theme returns the [theme] color overrides, keyed by color name.
func (c *Config) Theme() map[string]string {
	return c.getStringMapOr("theme")
}

// Keys returns the [keys] table, mapping key specs to command names.
func (c *Config) Keys() map[string]string {
	return c.getStringMapOr("keys")
}

// Script returns the [script] section.
func (c *Config) Script() ScriptConfig {
	return ScriptConfig{
		Path:    c.getStringOr("script.path", ""),
		Enabled: c.getBoolOr("script.enabled", true),
	}
}

// Logging returns the [logging] section.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getDurationOr(path string, defaultValue time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		c.noteError(path, err)
		return defaultValue
	}
	return v
}

func (c *Config) getStringMapOr(path string) map[string]string {
	v, err := c.GetStringMap(path)
	if err != nil {
		c.noteError(path, err)
		return map[string]string{}
	}
	return v
}

func (c *Config) noteError(path string, err error) {
	if !errors.Is(err, ErrSettingNotFound) {
		c.recordConfigError(path, err)
	}
}
