// Package content models the translation dictionaries of the landing site.
//
// A dictionary is a tree of Values. The kind of every node is decided once
// when the document is parsed, so merging and checking are plain switches
// over Kind rather than shape inspection at lookup time.
package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindAbsent is the zero Value: no entry at that path.
	KindAbsent Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "absent"
	}
}

// Value is one node of a dictionary tree.
//
// Scalars keep their JSON text verbatim (strings, numbers, booleans, null).
// Mappings keep keys in document order.
type Value struct {
	kind   Kind
	scalar json.RawMessage
	items  []Value
	keys   []string
	fields map[string]Value
}

// String builds a string scalar.
func String(s string) Value {
	return Value{kind: KindScalar, scalar: quote(s)}
}

// Sequence builds a sequence from items.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value(nil), items...)}
}

// Entry is a key/value pair used to build mappings in order.
type Entry struct {
	Key   string
	Value Value
}

// Mapping builds a mapping keeping the order of entries. A repeated key keeps
// its first position and its last value, as JSON decoders do.
func Mapping(entries ...Entry) Value {
	m := newMapping(len(entries))
	for _, e := range entries {
		m.set(e.Key, e.Value)
	}
	return m
}

func newMapping(size int) Value {
	return Value{kind: KindMapping, keys: make([]string, 0, size), fields: make(map[string]Value, size)}
}

func (v *Value) set(key string, val Value) {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports a JSON null scalar.
func (v Value) IsNull() bool {
	return v.kind == KindScalar && bytes.Equal(v.scalar, []byte("null"))
}

// Keys returns mapping keys in document order.
func (v Value) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Get returns the child at key, or the absent Value.
func (v Value) Get(key string) Value {
	if v.kind != KindMapping {
		return Value{}
	}
	return v.fields[key]
}

// Has reports whether a mapping defines key.
func (v Value) Has(key string) bool {
	if v.kind != KindMapping {
		return false
	}
	_, ok := v.fields[key]
	return ok
}

// Items returns sequence elements.
func (v Value) Items() []Value {
	return append([]Value(nil), v.items...)
}

// Len is the number of mapping keys or sequence items.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.keys)
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Lookup walks a path of mapping keys. A dotted single argument is split.
func (v Value) Lookup(path ...string) Value {
	if len(path) == 1 && strings.Contains(path[0], ".") {
		path = strings.Split(path[0], ".")
	}
	cur := v
	for _, key := range path {
		cur = cur.Get(key)
		if cur.IsAbsent() {
			return cur
		}
	}
	return cur
}

// AsString returns the string held by a string scalar.
func (v Value) AsString() (string, bool) {
	if v.kind != KindScalar || len(v.scalar) == 0 || v.scalar[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.scalar, &s); err != nil {
		return "", false
	}
	return s, true
}

// Text returns the string at a dotted path, or the path itself when the entry
// is missing or not a string, so templates never render empty copy.
func (v Value) Text(path string) string {
	if s, ok := v.Lookup(path).AsString(); ok {
		return s
	}
	return path
}

// Equal reports deep equality. Mapping order is not significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return bytes.Equal(v.scalar, o.scalar)
	case KindSequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.keys) != len(o.keys) {
			return false
		}
		for _, k := range v.keys {
			ov, ok := o.fields[k]
			if !ok || !v.fields[k].Equal(ov) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON writes the tree back out, mappings in document order. The
// absent Value encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindScalar:
		buf.Write(v.scalar)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(quote(k))
			buf.WriteByte(':')
			if err := v.fields[k].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// quote encodes s as a JSON string without HTML escaping; dictionary copy
// legitimately contains markup.
func quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// UnmarshalJSON parses a document with Parse semantics, minus the root check.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := parseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
