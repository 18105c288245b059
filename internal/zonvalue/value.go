// Package zonvalue defines the ZON in-memory data model: a tagged union
// of primitives, objects, and arrays, plus the table predicate that
// governs layout selection during encoding.
package zonvalue

import "sort"

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindArr
	KindObj
)

// Field is one key/value pair of an Obj, preserving decode order.
type Field struct {
	Key   string
	Value Value
}

// Value is the tagged union described in spec §3.1. Exactly one of the
// typed accessors is meaningful for a given Kind.
type Value struct {
	kind Kind

	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  []Field
}

func Null() Value            { return Value{kind: KindNull} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Str(s string) Value     { return Value{kind: KindStr, s: s} }
func Arr(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArr, arr: items}
}

// Obj builds an object from fields in the given order. The order is
// preserved verbatim (decode order); encoders sort keys separately.
func Obj(fields []Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: KindObj, obj: fields}
}

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsNull() bool     { return v.kind == KindNull }
func (v Value) Bool() bool       { return v.b }
func (v Value) Int() int64       { return v.i }
func (v Value) Float() float64   { return v.f }
func (v Value) Str() string      { return v.s }
func (v Value) Items() []Value   { return v.arr }
func (v Value) Fields() []Field  { return v.obj }

// IsScalar reports whether v is Null/Bool/Int/Float/Str — any kind that
// emits as a single token rather than a container.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat, KindStr:
		return true
	default:
		return false
	}
}

// Get returns the field value for key and whether it was present.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.obj {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// SortedKeys returns the object's keys in ascending code-point order.
func (v Value) SortedKeys() []string {
	keys := make([]string, len(v.obj))
	for i, f := range v.obj {
		keys[i] = f.Key
	}
	sort.Strings(keys)
	return keys
}

// IsTable reports whether an Arr value satisfies the table predicate of
// spec §3.2: non-empty, every element an Obj, all elements sharing the
// same set of keys (set equality, not order). On success it also
// returns the table's columns — the sorted union of keys.
func (v Value) IsTable() (columns []string, ok bool) {
	if v.kind != KindArr || len(v.arr) == 0 {
		return nil, false
	}
	first, isObj := v.arr[0], v.arr[0].kind == KindObj
	if !isObj {
		return nil, false
	}
	keySet := make(map[string]struct{}, len(first.obj))
	for _, f := range first.obj {
		keySet[f.Key] = struct{}{}
	}
	for _, elem := range v.arr[1:] {
		if elem.kind != KindObj {
			return nil, false
		}
		if len(elem.obj) != len(keySet) {
			return nil, false
		}
		for _, f := range elem.obj {
			if _, ok := keySet[f.Key]; !ok {
				return nil, false
			}
		}
	}
	cols := make([]string, 0, len(keySet))
	for k := range keySet {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols, true
}

// ToAny materializes v as a plain Go value (nil/bool/int64/float64/
// string/[]any/map[string]any) suitable for encoding/json.Marshal. Key
// order is not preserved, since Go's map type has none; callers that
// need order-preserving JSON should walk Fields directly.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindStr:
		return v.s
	case KindArr:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case KindObj:
		out := make(map[string]any, len(v.obj))
		for _, f := range v.obj {
			out[f.Key] = f.Value.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Equal reports value equality (spec §8.1's "under value equality"):
// same kind, same scalar payload, same array order, same object content
// irrespective of field order.
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
	case KindFloat:
		return a.f == b.f
	case KindStr:
		return a.s == b.s
	case KindArr:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObj:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for _, f := range a.obj {
			other, found := b.Get(f.Key)
			if !found || !Equal(f.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
