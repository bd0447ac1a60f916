// Package app wires configuration, the renderer, a backend and input into
// the viewer's main loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/hexview/internal/config"
	"github.com/dshills/hexview/internal/input/keymap"
	"github.com/dshills/hexview/internal/input/mouse"
	"github.com/dshills/hexview/internal/plugin/lua"
	"github.com/dshills/hexview/internal/renderer"
	"github.com/dshills/hexview/internal/renderer/backend"
	"github.com/dshills/hexview/internal/renderer/compose"
	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/rom"
)

// Backend names accepted in ui.backend and -backend.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// Options configures the application.
type Options struct {
	// ImagePath is the file to view. Ignored when Image is set.
	ImagePath string
	Image     *rom.Image

	// ConfigPath overrides the user configuration file.
	ConfigPath string

	// ConfigOptions are applied after the options derived from the fields
	// above.
	ConfigOptions []config.Option

	// Watch enables live reload of the configuration file.
	Watch bool

	// BackendName overrides ui.backend. Backend, when set, is used as is.
	BackendName string
	Backend     backend.Backend

	// LogLevel overrides logging.level. LogOutput overrides logging.file.
	LogLevel  string
	LogOutput io.Writer

	// ScriptPath overrides script.path and runs even when script.enabled
	// is false.
	ScriptPath string

	// Offset is the byte offset shown first. Zero leaves the view at the
	// start.
	Offset int

	// Clock drives animation and flush timing. Defaults to time.Now.
	Clock func() time.Time
}

// Application owns the viewer components and runs the main loop.
type Application struct {
	opts Options

	session string
	log     *Logger
	logFile io.Closer
	cfg     *config.Config
	img     *rom.Image
	backend backend.Backend
	view    *renderer.Renderer
	mouse   *mouse.Handler

	keys       *keymap.Keymap
	scriptKeys map[string]string

	batch int
	idle  time.Duration
	clock func() time.Time

	running atomic.Bool
}

// New loads configuration and the image, creates the backend and renderer,
// and runs the startup script. The backend is initialized by Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:       opts,
		session:    uuid.NewString(),
		mouse:      mouse.NewHandler(),
		scriptKeys: make(map[string]string),
		clock:      opts.Clock,
	}
	if app.clock == nil {
		app.clock = time.Now
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfgOpts := []config.Option{config.WithWatcher(app.opts.Watch)}
	if app.opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithConfigFile(app.opts.ConfigPath))
	}
	app.cfg = config.New(append(cfgOpts, app.opts.ConfigOptions...)...)
	if err := app.cfg.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 2. Logging
	backendName := app.opts.BackendName
	if backendName == "" {
		backendName = app.cfg.UI().Backend
	}
	if err := app.initLogger(backendName == BackendTerminal); err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logConfigErrors()

	// 3. Image
	img, err := app.loadImage()
	if err != nil {
		return &InitError{Component: "image", Err: err}
	}
	app.img = img
	app.log.Info("viewing %s (%d bytes, %d+%d banks)", app.opts.ImagePath, img.Len(),
		img.Layout().Header().PrimaryBanks, img.Layout().Header().SecondaryBanks)

	// 4. Backend
	app.backend = app.opts.Backend
	if app.backend == nil {
		app.backend, err = newBackend(backendName, app.cfg.UI().Scale)
		if err != nil {
			return &InitError{Component: "backend", Err: err}
		}
	}

	// 5. Renderer and keys
	app.view, err = renderer.New(img, app.backend, app.rendererOptions())
	if err != nil {
		return &InitError{Component: "renderer", Err: err}
	}
	app.applyConfig()

	// 6. Startup script
	if err := app.runScript(context.Background()); err != nil {
		return &InitError{Component: "script", Err: err}
	}

	if app.opts.Offset > 0 {
		app.view.JumpTo(app.opts.Offset)
	}
	return nil
}

func (app *Application) initLogger(terminal bool) error {
	logCfg := app.cfg.Logging()

	out := app.opts.LogOutput
	if out == nil {
		w, closer, err := OpenLogOutput(logCfg.File, terminal)
		if err != nil {
			return err
		}
		out, app.logFile = w, closer
	}

	name := logCfg.Level
	if app.opts.LogLevel != "" {
		name = app.opts.LogLevel
	}
	level, _ := ParseLogLevel(name)

	cfg := DefaultLoggerConfig()
	cfg.Level = level
	cfg.Output = out
	// runs share an appended log file; the session field tells them apart
	app.log = NewLogger(cfg).WithField("session", app.session)
	return nil
}

func (app *Application) loadImage() (*rom.Image, error) {
	if app.opts.Image != nil {
		return app.opts.Image, nil
	}
	if app.opts.ImagePath == "" {
		return nil, ErrNoImage
	}
	return rom.Load(app.opts.ImagePath)
}

// newBackend creates a backend by name.
func newBackend(name string, scale int) (backend.Backend, error) {
	switch name {
	case BackendWindow:
		return backend.NewWindow("hexview", scale)
	case BackendTerminal:
		return backend.NewTerminal()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// rendererOptions builds renderer settings from the configuration.
func (app *Application) rendererOptions() renderer.Options {
	view := app.cfg.View()
	ui := app.cfg.UI()

	opts := renderer.DefaultOptions()
	opts.DataFont = ui.Font
	opts.StatusFont = ui.StatusFont
	opts.Height = view.Height
	opts.GfxScale = view.GfxScale
	opts.FlushInterval = view.FlushInterval
	opts.Animation = ui.Animation
	opts.Theme = app.theme()
	opts.State = core.ViewerState{
		Shift:       uint8(view.Shift),
		CaseShift:   uint8(view.CaseShift),
		TallSprites: view.TallSprites,
	}
	opts.Clock = app.clock
	opts.Logger = app.log.WithComponent("renderer")
	return opts
}

// theme returns the stock palette with the [theme] overrides applied.
// Bad entries are logged and skipped.
func (app *Application) theme() compose.Theme {
	t, err := compose.DefaultTheme().WithOverrides(app.cfg.Theme())
	if err != nil {
		app.log.Warn("theme: %v", err)
	}
	return t
}

// runScript runs the startup script when one is configured and present.
func (app *Application) runScript(ctx context.Context) error {
	path := app.opts.ScriptPath
	if path == "" {
		sc := app.cfg.Script()
		if !sc.Enabled || sc.Path == "" {
			return nil
		}
		if _, err := os.Stat(sc.Path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = sc.Path
	}

	if err := lua.RunFile(ctx, &scriptHost{app: app}, path); err != nil {
		return err
	}
	app.log.Info("ran startup script %s", path)

	// hexview.set may have changed settings
	app.applyConfig()
	return nil
}

// Run initializes the backend and runs the main loop until the user quits,
// the backend closes or ctx is cancelled. Quitting returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	w, h := app.view.Size()
	if err := app.backend.Init(w, h); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	done := make(chan struct{})
	defer close(done)
	events := make(chan backend.Event, 64)
	go app.pollEvents(events, done)

	app.view.MarkAllDirty()
	return app.eventLoop(ctx, events)
}

// Session returns the identifier attached to every log line of this run.
func (app *Application) Session() string {
	return app.session
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.view
}

// Keymap returns the active key bindings.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keys
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	if app.log == nil {
		return NullLogger
	}
	return app.log
}

// Close stops the configuration watcher and closes the log file.
// It is safe to call more than once.
func (app *Application) Close() {
	if app.cfg != nil {
		app.cfg.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}
