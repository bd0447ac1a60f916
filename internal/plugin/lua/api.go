package lua

import (
	"context"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/rom"
)

// ModuleName is the global table startup scripts call into.
const ModuleName = "hexview"

// Host is the viewer surface a startup script drives.
type Host interface {
	// Bind maps a key specification to a command name.
	Bind(keys, command string) error

	ViewerState() core.ViewerState
	SetViewerState(core.ViewerState)

	// JumpTo scrolls so the line holding offset is at the top.
	JumpTo(offset int)

	Header() rom.Header

	// Config reads a merged configuration value by dotted path.
	Config(path string) (any, bool)

	// SetConfig writes a value into the script configuration layer.
	SetConfig(path string, value any) error

	Log(msg string)
}

// Install registers the hexview module on s, bound to host.
func Install(s *State, host Host) {
	api := &hostAPI{host: host}
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"bind":       api.bind,
		"shift":      api.shift,
		"case_shift": api.caseShift,
		"tall":       api.tall,
		"jump":       api.jump,
		"header":     api.header,
		"get":        api.get,
		"set":        api.set,
		"log":        api.log,
	})
}

// RunFile executes the script at path against host in a fresh state.
func RunFile(ctx context.Context, host Host, path string, opts ...StateOption) error {
	if host == nil {
		return ErrNoHost
	}
	opts = append([]StateOption{WithPrint(host.Log)}, opts...)
	s, err := NewState(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	Install(s, host)
	if err := s.DoFile(ctx, path); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	return nil
}

type hostAPI struct {
	host Host
}

// hexview.bind(keys, command)
func (a *hostAPI) bind(L *lua.LState) int {
	keys := L.CheckString(1)
	command := L.CheckString(2)
	if err := a.host.Bind(keys, command); err != nil {
		L.RaiseError("bind %q: %s", keys, err.Error())
	}
	return 0
}

// hexview.shift([n]) returns the shift after any update.
func (a *hostAPI) shift(L *lua.LState) int {
	st := a.host.ViewerState()
	if L.GetTop() >= 1 {
		st.Shift = uint8(L.CheckInt(1))
		a.host.SetViewerState(st)
	}
	L.Push(lua.LNumber(st.Shift))
	return 1
}

// hexview.case_shift([n]) returns the case shift after any update.
func (a *hostAPI) caseShift(L *lua.LState) int {
	st := a.host.ViewerState()
	if L.GetTop() >= 1 {
		st.CaseShift = uint8(L.CheckInt(1))
		a.host.SetViewerState(st)
	}
	L.Push(lua.LNumber(st.CaseShift))
	return 1
}

// hexview.tall([on]) returns the tall-sprite flag after any update.
func (a *hostAPI) tall(L *lua.LState) int {
	st := a.host.ViewerState()
	if L.GetTop() >= 1 {
		st.TallSprites = L.CheckBool(1)
		a.host.SetViewerState(st)
	}
	L.Push(lua.LBool(st.TallSprites))
	return 1
}

// hexview.jump(offset)
func (a *hostAPI) jump(L *lua.LState) int {
	off := L.CheckInt(1)
	if off < 0 {
		L.ArgError(1, "offset must not be negative")
		return 0
	}
	a.host.JumpTo(off)
	return 0
}

// hexview.header() returns {primary, secondary, length, lines}.
func (a *hostAPI) header(L *lua.LState) int {
	h := a.host.Header()
	t := L.CreateTable(0, 4)
	t.RawSetString("primary", lua.LNumber(h.PrimaryBanks))
	t.RawSetString("secondary", lua.LNumber(h.SecondaryBanks))
	t.RawSetString("length", lua.LNumber(h.Length))
	t.RawSetString("lines", lua.LNumber(h.Lines))
	L.Push(t)
	return 1
}

// hexview.get(path) returns the merged value or nil.
func (a *hostAPI) get(L *lua.LState) int {
	v, ok := a.host.Config(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(ToLuaValue(L, v))
	return 1
}

// hexview.set(path, value)
func (a *hostAPI) set(L *lua.LState) int {
	path := L.CheckString(1)
	value := ToGoValue(L.CheckAny(2))
	if err := a.host.SetConfig(path, value); err != nil {
		L.RaiseError("set %q: %s", path, err.Error())
	}
	return 0
}

// hexview.log(...)
func (a *hostAPI) log(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	a.host.Log(strings.Join(parts, " "))
	return 0
}
