package app

import (
	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/rom"
)

// scriptHost exposes the application to the startup script.
type scriptHost struct {
	app *Application
}

func (h *scriptHost) Bind(keys, command string) error {
	if err := h.app.keys.Bind(keys, command, "script"); err != nil {
		return err
	}
	h.app.scriptKeys[keys] = command
	return nil
}

func (h *scriptHost) ViewerState() core.ViewerState {
	return h.app.view.State()
}

func (h *scriptHost) SetViewerState(st core.ViewerState) {
	h.app.view.SetState(st)
}

func (h *scriptHost) JumpTo(offset int) {
	h.app.view.JumpTo(offset)
}

func (h *scriptHost) Header() rom.Header {
	return h.app.img.Layout().Header()
}

func (h *scriptHost) Config(path string) (any, bool) {
	return h.app.cfg.Get(path)
}

func (h *scriptHost) SetConfig(path string, value any) error {
	return h.app.cfg.SetScript(path, value)
}

func (h *scriptHost) Log(msg string) {
	h.app.log.WithComponent("script").Info("%s", msg)
}
