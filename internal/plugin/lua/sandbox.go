package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals can load code from disk or escape the environment.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
	"getfenv",
	"setfenv",
	"collectgarbage",
}

// Sandbox restricts a Lua state to the safe base libraries plus the modules
// registered by the host.
type Sandbox struct {
	L *lua.LState

	print   func(string)
	modules map[string]bool
}

// NewSandbox creates a sandbox for L. Script print output goes to print.
func NewSandbox(L *lua.LState, print func(string)) *Sandbox {
	if print == nil {
		print = func(string) {}
	}
	return &Sandbox{
		L:     L,
		print: print,
		modules: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Install removes unsafe globals and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.luaPrint))
	s.L.SetGlobal("require", s.L.NewFunction(s.luaRequire))
}

// Allow makes a global table loadable through require.
func (s *Sandbox) Allow(module string) {
	s.modules[module] = true
}

// Allowed reports whether require accepts module.
func (s *Sandbox) Allowed(module string) bool {
	return s.modules[module]
}

func (s *Sandbox) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.print(strings.Join(parts, "\t"))
	return 0
}

// luaRequire only hands out modules already present as globals.
func (s *Sandbox) luaRequire(L *lua.LState) int {
	name := L.CheckString(1)
	if !s.modules[name] {
		L.RaiseError("module %q is not available", name)
		return 0
	}
	L.Push(L.GetGlobal(name))
	return 1
}
