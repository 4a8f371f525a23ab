package value

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JMESPath object: a mapping from unique string keys to
// Values. Iteration (Keys, Values, Range) always follows insertion order.
// The language leaves object iteration order unspecified except where it
// demands stability (e.g. values()); always preserving insertion order
// satisfies that trivially and makes every other evaluation deterministic
// as a side effect, at no semantic cost.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

func (o *Object) Kind() Kind { return KindObject }

// Set inserts or updates key. Updating an existing key keeps its original
// position in iteration order, matching ordinary map semantics.
func (o *Object) Set(key string, v Value) {
	o.m.Set(key, v)
}

// Get returns the value for key and whether it was present. A missing key
// is the caller's responsibility to turn into Nil; Get itself makes no
// such assumption so it can also be used for existence checks.
func (o *Object) Get(key string) (Value, bool) {
	return o.m.Get(key)
}

// Len returns the number of keys.
func (o *Object) Len() int { return o.m.Len() }

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns the object's values in insertion order.
func (o *Object) Values() []Value {
	vals := make([]Value, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		vals = append(vals, pair.Value)
	}
	return vals
}

// Range calls fn for each key/value pair in insertion order, stopping
// early if fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	o.Range(func(k string, v Value) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v.String())
		return true
	})
	b.WriteByte('}')
	return b.String()
}
