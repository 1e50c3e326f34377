package report

import (
	"errors"

	lua "github.com/yuin/gopher-lua"
)

// maxTableDepth bounds how deeply nested an event payload may be.
const maxTableDepth = 32

var (
	errCyclicTable = errors.New("cyclic table")
	errTableDepth  = errors.New("table nested too deeply")
)

// tableToMap converts a Lua table into JSON-friendly Go values. Array
// tables become slices, other tables maps keyed by the string form of the
// key. Functions and userdata are dropped. A table that contains itself, or
// nesting beyond maxTableDepth, is an error.
func tableToMap(t *lua.LTable) (map[string]any, error) {
	c := &converter{visiting: make(map[*lua.LTable]bool)}
	return c.table(t, 0)
}

type converter struct {
	// visiting holds the tables on the current path only, so a table
	// shared by two siblings still converts.
	visiting map[*lua.LTable]bool
}

func (c *converter) table(t *lua.LTable, depth int) (map[string]any, error) {
	if err := c.enter(t, depth); err != nil {
		return nil, err
	}
	defer delete(c.visiting, t)

	out := make(map[string]any)
	var firstErr error
	t.ForEach(func(k, v lua.LValue) {
		if firstErr != nil {
			return
		}
		gv, ok, err := c.value(v, depth+1)
		if err != nil {
			firstErr = err
			return
		}
		if ok {
			out[k.String()] = gv
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (c *converter) enter(t *lua.LTable, depth int) error {
	if depth >= maxTableDepth {
		return errTableDepth
	}
	if c.visiting[t] {
		return errCyclicTable
	}
	c.visiting[t] = true
	return nil
}

func (c *converter) value(v lua.LValue, depth int) (any, bool, error) {
	switch val := v.(type) {
	case lua.LString:
		return string(val), true, nil
	case lua.LNumber:
		return float64(val), true, nil
	case lua.LBool:
		return bool(val), true, nil
	case *lua.LTable:
		if n := val.Len(); n > 0 && countKeys(val) == n {
			if err := c.enter(val, depth); err != nil {
				return nil, false, err
			}
			defer delete(c.visiting, val)

			items := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				gv, ok, err := c.value(val.RawGetInt(i), depth+1)
				if err != nil {
					return nil, false, err
				}
				if ok {
					items = append(items, gv)
				}
			}
			return items, true, nil
		}
		m, err := c.table(val, depth)
		if err != nil {
			return nil, false, err
		}
		return m, true, nil
	default:
		return nil, false, nil
	}
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(lua.LValue, lua.LValue) { n++ })
	return n
}
