package lua

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := state.GetGlobal("x"); got != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", got)
	}
}

func TestStateSyntaxError(t *testing.T) {
	state, _ := NewState()
	defer state.Close()

	if err := state.DoString(context.Background(), `x = = 1`); err == nil {
		t.Error("DoString() with syntax error returned nil")
	}
}

func TestStateTimeout(t *testing.T) {
	state, _ := NewState(WithTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("DoString(loop) = %v, want ErrTimeout", err)
	}
}

func TestStateCancelled(t *testing.T) {
	state, _ := NewState(WithTimeout(0))
	defer state.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := state.DoString(ctx, `while true do end`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("DoString(loop) = %v, want context.DeadlineExceeded", err)
	}
}

func TestStateClosed(t *testing.T) {
	state, _ := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v, want ErrStateClosed", err)
	}
	if got := state.GetGlobal("x"); got != glua.LNil {
		t.Errorf("GetGlobal() after Close = %v, want nil", got)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	state, _ := NewState()
	defer state.Close()

	for _, name := range removedGlobals {
		if got := state.GetGlobal(name); got != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, got)
		}
	}
	for _, name := range []string{"io", "os", "debug"} {
		if got := state.GetGlobal(name); got != glua.LNil {
			t.Errorf("library %s is open", name)
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	state, _ := NewState()
	defer state.Close()
	ctx := context.Background()

	if err := state.DoString(ctx, `local s = require("string"); n = s.len("abc")`); err != nil {
		t.Fatalf("require(string) error = %v", err)
	}
	if got := state.GetGlobal("n"); got != glua.LNumber(3) {
		t.Errorf("n = %v, want 3", got)
	}

	err := state.DoString(ctx, `require("os")`)
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("require(os) = %v, want not available", err)
	}

	state.RegisterModule("extra", map[string]glua.LGFunction{
		"one": func(L *glua.LState) int {
			L.Push(glua.LNumber(1))
			return 1
		},
	})
	if err := state.DoString(ctx, `m = require("extra").one()`); err != nil {
		t.Fatalf("require(extra) error = %v", err)
	}
	if got := state.GetGlobal("m"); got != glua.LNumber(1) {
		t.Errorf("m = %v, want 1", got)
	}
}

func TestSandboxPrint(t *testing.T) {
	var lines []string
	state, _ := NewState(WithPrint(func(s string) { lines = append(lines, s) }))
	defer state.Close()

	if err := state.DoString(context.Background(), `print("a", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if len(lines) != 1 || lines[0] != "a\t1\ttrue" {
		t.Errorf("print output = %q, want [\"a\\t1\\ttrue\"]", lines)
	}
}
