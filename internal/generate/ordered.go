package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// OrderedMap is a string to string mapping that remembers key order.
//
// Setting a key that already exists replaces its value in place, the same
// way a JavaScript object keeps its original property order.
type OrderedMap struct {
	keys []string
	vals map[string]string
}

// NewOrderedMap returns an empty map with room for n keys.
func NewOrderedMap(n int) *OrderedMap {
	return &OrderedMap{
		keys: make([]string, 0, n),
		vals: make(map[string]string, n),
	}
}

// Set stores v under k, appending k if it is new.
func (m *OrderedMap) Set(k, v string) {
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// Get returns the value stored under k.
func (m *OrderedMap) Get(k string) (string, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in order.
func (m *OrderedMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Each calls fn for every entry in order.
func (m *OrderedMap) Each(fn func(k, v string)) {
	for _, k := range m.keys {
		fn(k, m.vals[k])
	}
}

// Clone returns an independent copy.
func (m *OrderedMap) Clone() *OrderedMap {
	c := NewOrderedMap(m.Len())
	m.Each(c.Set)
	return c
}

// MarshalJSON encodes the map as a compact JSON object in key order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, m.vals[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings, keeping document order.
func (m *OrderedMap) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("invalid JSON")
	}
	res := gjson.ParseBytes(b)
	if !res.IsObject() {
		return fmt.Errorf("expected a JSON object, got %s", res.Type)
	}
	out := NewOrderedMap(0)
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("value for %q is %s, want string", key.String(), value.Type)
			return false
		}
		out.Set(key.String(), value.String())
		return true
	})
	if err != nil {
		return err
	}
	*m = *out
	return nil
}

// MarshalIndent returns the map as two-space indented JSON ending in a
// newline, the format the data files are committed in.
func (m *OrderedMap) MarshalIndent() ([]byte, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return indent(b), nil
}

// SortByName returns a new map ordered by nameOf(value), ascending. Entries
// with equal names keep their relative order.
func SortByName(m *OrderedMap, nameOf func(value string) string) *OrderedMap {
	keys := m.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return nameOf(m.vals[keys[i]]) < nameOf(m.vals[keys[j]])
	})
	out := NewOrderedMap(len(keys))
	for _, k := range keys {
		out.Set(k, m.vals[k])
	}
	return out
}

func indent(compact []byte) []byte {
	return pretty.PrettyOptions(compact, &pretty.Options{
		Width:  80,
		Indent: "  ",
	})
}

// writeJSONString writes s as a JSON string without HTML escaping, so names
// like "Bosnia & Herzegovina" stay readable in the committed files.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
