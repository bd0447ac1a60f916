package lua

import (
	"fmt"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// ToGoValue converts a Lua value to the plain types the config layer
// stores: bool, int64, float64, string, []any and map[string]any.
// Functions, userdata and tables already being converted become nil.
func ToGoValue(lv lua.LValue) any {
	c := converter{seen: make(map[*lua.LTable]bool)}
	return c.value(lv)
}

type converter struct {
	seen map[*lua.LTable]bool
}

func (c converter) value(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		if f := float64(v); f == float64(int64(f)) {
			return int64(f)
		}
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if c.seen[v] {
			return nil
		}
		c.seen[v] = true
		defer delete(c.seen, v)
		return c.table(v)
	}
	return nil
}

// table converts a sequence 1..n to a slice and anything else to a map.
func (c converter) table(t *lua.LTable) any {
	var keys []lua.LValue
	t.ForEach(func(k, _ lua.LValue) { keys = append(keys, k) })

	if n := t.Len(); n > 0 && n == len(keys) {
		out := make([]any, n)
		for i := range out {
			out[i] = c.value(t.RawGetInt(i + 1))
		}
		return out
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[tableKey(k)] = c.value(t.RawGet(k))
	}
	return out
}

func tableKey(k lua.LValue) string {
	switch kv := k.(type) {
	case lua.LString:
		return string(kv)
	case lua.LNumber:
		return strconv.FormatFloat(float64(kv), 'g', -1, 64)
	}
	return k.String()
}

// ToLuaValue converts a Go value to a Lua value. Map keys are inserted in
// sorted order; unknown types become their printed form.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint8:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return ToLuaValue(L, items)
	case []any:
		t := L.CreateTable(len(val), 0)
		for _, item := range val {
			t.Append(ToLuaValue(L, item))
		}
		return t
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := L.CreateTable(0, len(val))
		for _, k := range keys {
			t.RawSetString(k, ToLuaValue(L, val[k]))
		}
		return t
	case fmt.Stringer:
		return lua.LString(val.String())
	}
	return lua.LString(fmt.Sprint(v))
}
