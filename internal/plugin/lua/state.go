package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single DoFile or DoString call.
const DefaultTimeout = 5 * time.Second

// safeLibs are the only standard libraries opened. io, os, debug and
// package stay closed.
var safeLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// State is a sandboxed Lua interpreter. Calls through State are
// serialized; the underlying LState is never exposed.
type State struct {
	mu      sync.Mutex
	ls      *lua.LState
	sandbox *Sandbox
	closed  bool

	timeout time.Duration
	print   func(string)
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) { s.timeout = d }
}

// WithPrint routes the script's print output to fn.
func WithPrint(fn func(string)) StateOption {
	return func(s *State) { s.print = fn }
}

// NewState creates a sandboxed Lua state with only the safe libraries opened.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{timeout: DefaultTimeout, print: func(string) {}}
	for _, opt := range opts {
		opt(s)
	}

	s.ls = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range safeLibs {
		err := s.ls.CallByParam(lua.P{Fn: s.ls.NewFunction(lib.open), Protect: true}, lua.LString(lib.name))
		if err != nil {
			s.ls.Close()
			return nil, fmt.Errorf("opening %s library: %w", lib.name, err)
		}
	}
	s.sandbox = NewSandbox(s.ls, s.print)
	s.sandbox.Install()
	return s, nil
}

// DoFile runs the script at path.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.call(ctx, func(ls *lua.LState) error { return ls.DoFile(path) })
}

// DoString runs a chunk of source.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.call(ctx, func(ls *lua.LState) error { return ls.DoString(code) })
}

// call runs fn under the state's deadline. A script stopped by ctx reports
// ctx's error; one stopped by the deadline reports ErrTimeout.
func (s *State) call(ctx context.Context, fn func(*lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()
	s.ls.SetContext(runCtx)
	defer s.ls.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err = fn(s.ls); err == nil || runCtx.Err() == nil {
		return err
	}
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	}
	return err
}

// GetGlobal returns a global, or nil once the state is closed.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.ls.GetGlobal(name)
}

// RegisterModule installs a global table holding funcs, makes it
// available to require and returns it.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) *lua.LTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	mod := s.ls.SetFuncs(s.ls.NewTable(), funcs)
	s.ls.SetGlobal(name, mod)
	s.sandbox.Allow(name)
	return mod
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the interpreter. It is safe to call more than once.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.ls.Close()
		s.closed = true
	}
	return nil
}
