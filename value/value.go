// Package value implements the tagged discriminated-union payload carried
// by DEVS events: null, boolean, integer, double, string, tuple, set, map,
// and table variants.
package value

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the variant held by a Value. It is a sealed sum, not a
// class hierarchy: callers switch on Kind rather than type-assert.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindTuple
	KindSet
	KindMap
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is an immutable-by-convention tagged union. Zero value is Null.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	f      float64
	s      string
	tuple  []float64
	set    []Value
	mp     map[string]Value
	table  [][]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double wraps a float64.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Tuple wraps a fixed-length sequence of doubles. The slice is copied.
func Tuple(xs ...float64) Value {
	cp := make([]float64, len(xs))
	copy(cp, xs)
	return Value{kind: KindTuple, tuple: cp}
}

// Set wraps an ordered sequence of Values. The slice is copied.
func Set(vs ...Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{kind: KindSet, set: cp}
}

// Map wraps a string-keyed map of Values. The map is copied.
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, mp: cp}
}

// Table wraps a 2D grid of Values. Rows are copied.
func Table(rows [][]Value) Value {
	cp := make([][]Value, len(rows))
	for i, row := range rows {
		r := make([]Value, len(row))
		copy(r, row)
		cp[i] = r
	}
	return Value{kind: KindTable, table: cp}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the wrapped boolean. It panics if v is not KindBool.
func (v Value) AsBool() bool { v.mustBe(KindBool); return v.b }

// AsInt returns the wrapped integer. It panics if v is not KindInt.
func (v Value) AsInt() int64 { v.mustBe(KindInt); return v.i }

// AsDouble returns the wrapped float. It panics if v is not KindDouble.
func (v Value) AsDouble() float64 { v.mustBe(KindDouble); return v.f }

// AsString returns the wrapped string. It panics if v is not KindString.
func (v Value) AsString() string { v.mustBe(KindString); return v.s }

// AsTuple returns the wrapped tuple. It panics if v is not KindTuple.
func (v Value) AsTuple() []float64 { v.mustBe(KindTuple); return v.tuple }

// AsSet returns the wrapped set. It panics if v is not KindSet.
func (v Value) AsSet() []Value { v.mustBe(KindSet); return v.set }

// AsMap returns the wrapped map. It panics if v is not KindMap.
func (v Value) AsMap() map[string]Value { v.mustBe(KindMap); return v.mp }

// AsTable returns the wrapped table. It panics if v is not KindTable.
func (v Value) AsTable() [][]Value { v.mustBe(KindTable); return v.table }

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value: expected %s, got %s", k, v.kind))
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindTuple:
		return Tuple(v.tuple...)
	case KindSet:
		cp := make([]Value, len(v.set))
		for i, e := range v.set {
			cp[i] = e.Clone()
		}
		return Value{kind: KindSet, set: cp}
	case KindMap:
		cp := make(map[string]Value, len(v.mp))
		for k, e := range v.mp {
			cp[k] = e.Clone()
		}
		return Value{kind: KindMap, mp: cp}
	case KindTable:
		cp := make([][]Value, len(v.table))
		for i, row := range v.table {
			r := make([]Value, len(row))
			for j, e := range row {
				r[j] = e.Clone()
			}
			cp[i] = r
		}
		return Value{kind: KindTable, table: cp}
	default:
		return v
	}
}

// String renders a human-readable form, used for logging and for the
// observation sinks' textual value columns.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindDouble:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindTuple:
		return fmt.Sprintf("%v", v.tuple)
	case KindSet:
		parts := make([]string, len(v.set))
		for i, e := range v.set {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindMap:
		keys := v.MapKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.mp[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindTable:
		rows := make([]string, len(v.table))
		for i, row := range v.table {
			cells := make([]string, len(row))
			for j, e := range row {
				cells[j] = e.String()
			}
			rows[i] = "[" + strings.Join(cells, ", ") + "]"
		}
		return "[" + strings.Join(rows, ", ") + "]"
	default:
		return "?"
	}
}

// Equal performs a deep structural comparison.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindDouble:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindTuple:
		if len(a.tuple) != len(b.tuple) {
			return false
		}
		for i := range a.tuple {
			if a.tuple[i] != b.tuple[i] {
				return false
			}
		}
		return true
	case KindSet:
		if len(a.set) != len(b.set) {
			return false
		}
		for i := range a.set {
			if !Equal(a.set[i], b.set[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.mp) != len(b.mp) {
			return false
		}
		for k, av := range a.mp {
			bv, ok := b.mp[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindTable:
		if len(a.table) != len(b.table) {
			return false
		}
		for i := range a.table {
			if len(a.table[i]) != len(b.table[i]) {
				return false
			}
			for j := range a.table[i] {
				if !Equal(a.table[i][j], b.table[i][j]) {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}

// MapKeys returns the sorted keys of a KindMap Value, a convenience for
// deterministic iteration (e.g. canonical serialization).
func (v Value) MapKeys() []string {
	v.mustBe(KindMap)
	keys := make([]string, 0, len(v.mp))
	for k := range v.mp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
