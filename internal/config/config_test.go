package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/hexview/internal/config/loader"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func newTestConfig(t *testing.T, file string, env ...string) *Config {
	t.Helper()
	fsys := memFS{}
	if file != "" {
		fsys["/cfg/config.toml"] = file
	}
	c := New(
		WithConfigFile("/cfg/config.toml"),
		WithFileSystem(fsys),
		WithWatcher(false),
		WithEnviron(func() []string { return env }),
	)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := newTestConfig(t, "")

	view := c.View()
	if view.Height != 480 || view.Batch != 32 || view.GfxScale != 2 {
		t.Errorf("View() = %+v", view)
	}
	if view.IdleSleep != 45*time.Millisecond || view.FlushInterval != 200*time.Millisecond {
		t.Errorf("View() timings = %v, %v", view.IdleSleep, view.FlushInterval)
	}

	ui := c.UI()
	want := UIConfig{Backend: "window", Font: "gomono", StatusFont: "8x16", Scale: 2, Animation: true}
	if ui != want {
		t.Errorf("UI() = %+v, want %+v", ui, want)
	}
	if lg := c.Logging(); lg.Level != "info" || lg.File != "" {
		t.Errorf("Logging() = %+v", lg)
	}
	if len(c.Theme()) != 0 || len(c.Keys()) != 0 {
		t.Errorf("Theme() = %v, Keys() = %v, want empty", c.Theme(), c.Keys())
	}
	if s := c.Script(); !s.Enabled || filepath.Base(s.Path) != "init.lua" {
		t.Errorf("Script() = %+v", s)
	}
	if errs := c.Errors(); len(errs) != 0 {
		t.Errorf("Errors() = %v", errs)
	}
}

func TestUserFileOverrides(t *testing.T) {
	c := newTestConfig(t, `
[view]
batch = 8
idleSleep = "10ms"
shift = "0x10"
tallSprites = true

[ui]
backend = "terminal"

[theme]
pastEnd = "#102030"

[keys]
q = "quit"
`)

	view := c.View()
	if view.Batch != 8 || view.IdleSleep != 10*time.Millisecond || view.Shift != 16 || !view.TallSprites {
		t.Errorf("View() = %+v", view)
	}
	if c.UI().Backend != "terminal" {
		t.Errorf("UI().Backend = %q", c.UI().Backend)
	}
	if c.Theme()["pastEnd"] != "#102030" {
		t.Errorf("Theme() = %v", c.Theme())
	}
	if c.Keys()["q"] != "quit" {
		t.Errorf("Keys() = %v", c.Keys())
	}
	if got := c.WhichLayer("view.batch"); got != LayerUser {
		t.Errorf("WhichLayer(view.batch) = %q, want user", got)
	}
}

func TestPrecedence(t *testing.T) {
	c := newTestConfig(t, "[view]\nbatch = 8\n", "HEXVIEW_VIEW_BATCH=4")

	if got := c.View().Batch; got != 4 {
		t.Errorf("Batch = %d, want 4 from the environment", got)
	}
	if err := c.SetScript("view.batch", 2); err != nil {
		t.Fatalf("SetScript failed: %v", err)
	}
	if got := c.View().Batch; got != 4 {
		t.Errorf("Batch = %d, want the environment to beat the script", got)
	}
	if err := c.Set("view.batch", 1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := c.View().Batch; got != 1 {
		t.Errorf("Batch = %d, want 1 from the flags", got)
	}
	if got := c.WhichLayer("view.batch"); got != LayerArgs {
		t.Errorf("WhichLayer = %q, want arguments", got)
	}
}

func TestTypedGetters(t *testing.T) {
	c := newTestConfig(t, `
[x]
s = "str"
i = 3
f = 1.5
b = true
d = 250
bad = "soon"
`)

	if v, err := c.GetString("x.s"); err != nil || v != "str" {
		t.Errorf("GetString = %q, %v", v, err)
	}
	if v, err := c.GetInt("x.i"); err != nil || v != 3 {
		t.Errorf("GetInt = %d, %v", v, err)
	}
	if v, err := c.GetFloat("x.f"); err != nil || v != 1.5 {
		t.Errorf("GetFloat = %v, %v", v, err)
	}
	if v, err := c.GetBool("x.b"); err != nil || !v {
		t.Errorf("GetBool = %v, %v", v, err)
	}
	if v, err := c.GetDuration("x.d"); err != nil || v != 250*time.Millisecond {
		t.Errorf("GetDuration = %v, %v", v, err)
	}

	if _, err := c.GetString("x.i"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetString(int) = %v, want ErrTypeMismatch", err)
	}
	if _, err := c.GetInt("x.missing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("GetInt(missing) = %v, want ErrSettingNotFound", err)
	}
	if _, err := c.GetDuration("x.bad"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("GetDuration(bad) = %v, want ErrInvalidValue", err)
	}
	if _, err := c.GetStringMap("x"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetStringMap(mixed) = %v, want ErrTypeMismatch", err)
	}
}

func TestSectionErrorsFallBack(t *testing.T) {
	c := newTestConfig(t, "[view]\nbatch = \"many\"\n[ui]\nanimation = 1\n")

	if got := c.View().Batch; got != 32 {
		t.Errorf("Batch = %d, want the default 32", got)
	}
	if got := c.UI().Animation; !got {
		t.Error("Animation = false, want the default true")
	}
	if errs := c.Errors(); len(errs) != 2 {
		t.Errorf("Errors() = %v, want 2 entries", errs)
	}
}

func TestLoadParseError(t *testing.T) {
	c := New(
		WithConfigFile("/cfg/config.toml"),
		WithFileSystem(memFS{"/cfg/config.toml": "[view\n"}),
		WithWatcher(false),
	)
	var pe *loader.ParseError
	if err := c.Load(context.Background()); !errors.As(err, &pe) {
		t.Errorf("Load = %v, want *loader.ParseError", err)
	}
}

func TestReload(t *testing.T) {
	fsys := memFS{"/cfg/config.toml": "[view]\nbatch = 8\n"}
	c := New(WithConfigFile("/cfg/config.toml"), WithFileSystem(fsys), WithWatcher(false))
	if err := c.Reload(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Reload before Load = %v, want ErrNotLoaded", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	fsys["/cfg/config.toml"] = "[view]\nbatch = 12\n"
	if err := c.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := c.View().Batch; got != 12 {
		t.Errorf("Batch = %d, want 12", got)
	}

	fsys["/cfg/config.toml"] = "[view\n"
	if err := c.Reload(); err == nil {
		t.Error("Reload of a broken file succeeded")
	}
	if got := c.View().Batch; got != 12 {
		t.Errorf("Batch = %d, want 12 kept after a failed reload", got)
	}
}

func TestLiveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[view]\nbatch = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(WithConfigFile(path), WithWatcher(true), WithEnviron(func() []string { return nil }))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer c.Close()

	if err := os.WriteFile(path, []byte("[view]\nbatch = 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ch := <-c.Changes():
			if ch.Err != nil {
				t.Fatalf("Change.Err = %v", ch.Err)
			}
			if got := c.View().Batch; got == 24 {
				return
			}
		case <-deadline:
			t.Fatalf("Batch = %d, no reload seen", c.View().Batch)
		}
	}
}

func TestDefaultUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultUserConfigDir(); got != filepath.Join("/xdg", "hexview") {
		t.Errorf("DefaultUserConfigDir() = %q", got)
	}
}
