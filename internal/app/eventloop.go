package app

import (
	"context"
	"time"

	"github.com/dshills/hexview/internal/input"
	"github.com/dshills/hexview/internal/input/key"
	"github.com/dshills/hexview/internal/input/mouse"
	"github.com/dshills/hexview/internal/renderer/backend"
)

// pollEvents forwards backend events until the backend reports quit or
// done is closed.
func (app *Application) pollEvents(events chan<- backend.Event, done <-chan struct{}) {
	for {
		ev := app.backend.PollEvent()
		select {
		case events <- ev:
		case <-done:
			return
		}
		if ev.Type == backend.EventQuit {
			return
		}
	}
}

// eventLoop interleaves incremental redraws with input. While rows are
// dirty it draws one batch per iteration and takes at most one pending
// event without blocking. Once everything is drawn it advances the walker,
// refreshes the bars and waits up to the idle sleep for input.
func (app *Application) eventLoop(ctx context.Context, events <-chan backend.Event) error {
	started := app.clock()
	for {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := app.view.RefreshBatch(app.batch); err != nil {
			return &ComponentError{Component: "renderer", Action: "refresh", Err: err}
		}

		if !app.view.Settled() {
			select {
			case ev := <-events:
				if err := app.handleEvent(ev); err != nil {
					return err
				}
			case ch := <-app.cfg.Changes():
				app.handleConfigChange(ch)
			default:
			}
			continue
		}

		app.view.MarkAnimationDirty(app.clock().Sub(started))
		app.view.MarkStatusDirty()
		idle := time.NewTimer(app.idle)
		select {
		case <-ctx.Done():
			idle.Stop()
			return nil
		case ev := <-events:
			idle.Stop()
			if err := app.handleEvent(ev); err != nil {
				return err
			}
		case ch := <-app.cfg.Changes():
			idle.Stop()
			app.handleConfigChange(ch)
		case <-idle.C:
		}
	}
}

// handleEvent routes one backend event. It returns ErrQuit when the
// viewer should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventQuit:
		return ErrQuit
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		app.handleMouse(ev)
	case backend.EventWheel:
		app.view.Wheel(ev.Wheel)
	case backend.EventResize:
		app.view.Invalidate()
	}
	return nil
}

// handleKey looks the key up in the keymap and executes its command.
func (app *Application) handleKey(ev backend.Event) error {
	cmd, ok := app.keys.Lookup(convertKeyEvent(ev))
	if !ok {
		return nil
	}
	return app.execute(cmd)
}

// execute runs a command. Viewer commands go to the renderer; quit and
// reload are handled here.
func (app *Application) execute(cmd input.Command) error {
	switch cmd {
	case input.CmdQuit:
		return ErrQuit
	case input.CmdReloadConfig:
		app.reloadConfig()
		return nil
	}
	if !app.view.Apply(cmd) {
		app.log.Debug("command %s not handled", cmd)
	}
	return nil
}

// handleMouse feeds the pointer through the drag tracker. A left drag
// scrolls; every event updates the hover position.
func (app *Application) handleMouse(ev backend.Event) {
	res := app.mouse.Handle(mouse.Event{
		X:    ev.X,
		Y:    ev.Y,
		Left: ev.Buttons.Has(backend.ButtonLeft),
	})
	if res.Action == mouse.ActionDrag && res.DeltaY != 0 {
		app.view.Drag(res.DeltaY)
	}
	app.view.Pointer(res.Pos.X, res.Pos.Y)
}

// convertKeyEvent converts a backend key event to a key.Event.
func convertKeyEvent(ev backend.Event) key.Event {
	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods |= key.ModCtrl
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods |= key.ModAlt
	}
	if ev.Mod.Has(backend.ModShift) {
		mods |= key.ModShift
	}

	if ev.Key == backend.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods).Normalize()
	}
	return key.NewSpecialEvent(mapBackendKey(ev.Key), mods)
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyPageUp:
		return key.KeyPageUp
	case backend.KeyPageDown:
		return key.KeyPageDown
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	default:
		return key.KeyNone
	}
}
