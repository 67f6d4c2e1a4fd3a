package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// Object is a JSON object that keeps its keys in the order they were read.
// Nested objects are *Object, arrays are []any and numbers are float64.
type Object struct {
	m *orderedmap.OrderedMap
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return wrap(orderedmap.New())
}

func wrap(m *orderedmap.OrderedMap) *Object {
	m.SetEscapeHTML(false)
	return &Object{m: m}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.m.Keys())
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.m.Keys()...)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (o *Object) Set(key string, value any) {
	o.m.Set(key, value)
}

// Object returns the nested object stored under key.
func (o *Object) Object(key string) (*Object, bool) {
	v, _ := o.Get(key)
	child, ok := v.(*Object)
	return child, ok && child != nil
}

// String returns the string stored under key.
func (o *Object) String(key string) (string, bool) {
	v, _ := o.Get(key)
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.m.MarshalJSON()
}

// ParseObject parses strict JSON whose top-level value is an object.
func ParseObject(data []byte) (*Object, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("{")) {
		return nil, errors.New("parsing JSON: top-level value is not an object")
	}
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return fromOrdered(m), nil
}

// fromOrdered wraps m and every map nested in it, so that nested objects
// are *Object all the way down.
func fromOrdered(m *orderedmap.OrderedMap) *Object {
	obj := wrap(m)
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		m.Set(key, normalize(v))
	}
	return obj
}

// ObjectFromMap converts a Go map to an Object. Map keys have no order, so
// they are inserted sorted; nested maps and slices are converted as well.
func ObjectFromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, normalize(m[k]))
	}
	return obj
}

func normalize(v any) any {
	switch t := v.(type) {
	case orderedmap.OrderedMap:
		return fromOrdered(&t)
	case *orderedmap.OrderedMap:
		return fromOrdered(t)
	case map[string]any:
		return ObjectFromMap(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = e
		}
		return ObjectFromMap(m)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	}
	return v
}
