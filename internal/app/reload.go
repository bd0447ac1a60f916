package app

import (
	"github.com/dshills/hexview/internal/config"
	"github.com/dshills/hexview/internal/input/keymap"
)

// applyConfig pushes the settings that can change at run time into the
// renderer, the loop and the keymap. Fonts, height and the backend are
// fixed at startup.
func (app *Application) applyConfig() {
	view := app.cfg.View()
	ui := app.cfg.UI()

	app.batch = max(view.Batch, 1)
	app.idle = view.IdleSleep
	app.view.SetTheme(app.theme())
	app.view.SetAnimation(ui.Animation)
	app.keys = app.buildKeymap()

	if app.opts.LogLevel == "" {
		if level, ok := ParseLogLevel(app.cfg.Logging().Level); ok {
			app.log.SetLevel(level)
		}
	}
}

// buildKeymap layers the [keys] table and the script's bindings over the
// defaults. Bad entries are logged and skipped.
func (app *Application) buildKeymap() *keymap.Keymap {
	km := keymap.Default()
	if err := km.BindAll(app.cfg.Keys(), "config"); err != nil {
		app.log.Warn("keys: %v", err)
	}
	// script bindings were validated when they were made
	_ = km.BindAll(app.scriptKeys, "script")
	return km
}

// reloadConfig re-reads the user file on request.
func (app *Application) reloadConfig() {
	if err := app.cfg.Reload(); err != nil {
		app.log.Warn("%v", &ComponentError{Component: "config", Action: "reload", Err: err})
		app.view.SetMessage("reload failed")
		return
	}
	app.applyReload()
}

// handleConfigChange applies a reload delivered by the file watcher.
func (app *Application) handleConfigChange(ch config.Change) {
	if ch.Err != nil {
		app.log.Warn("%v", &ComponentError{Component: "config", Action: "watch " + ch.Op.String(), Err: ch.Err})
		app.view.SetMessage("reload failed")
		return
	}
	app.log.Debug("config file %s: %s", ch.Path, ch.Op)
	app.applyReload()
}

func (app *Application) applyReload() {
	app.applyConfig()
	app.logConfigErrors()
	app.view.SetMessage("reloaded")
	app.log.Info("configuration reloaded from %s", app.cfg.Path())
}

// logConfigErrors reports settings that fell back to their defaults.
func (app *Application) logConfigErrors() {
	for _, err := range app.cfg.Errors() {
		app.log.Warn("config: %v", err)
	}
}
