// Package entities defines the ranking value types and the insertion-ordered
// table they are collected into during an extraction run.
package entities

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Table is an insertion-ordered mapping from normalized title to a ranking
// value. It is owned by a single extraction run and never mutated after the
// run hands it off, so readers need no locking.
type Table[V Value] struct {
	keys   []string
	values map[string]V
}

// NewTable creates an empty table.
func NewTable[V Value]() *Table[V] {
	return &Table[V]{
		values: make(map[string]V),
	}
}

// Set stores a value under key. A duplicate key keeps its original position
// and takes the latest value (keep-last), matching how the source files are
// interpreted: a later row for the same title supersedes an earlier one.
func (t *Table[V]) Set(key string, value V) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value for key and whether it is present.
func (t *Table[V]) Get(key string) (V, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table[V]) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// SortedKeys returns the keys in lexicographic order, used by the script
// serializer for reproducible diffs.
func (t *Table[V]) SortedKeys() []string {
	keys := t.Keys()
	sort.Strings(keys)
	return keys
}

// MarshalJSON emits the table as a JSON object with keys in insertion order
// and non-ASCII characters preserved literally.
func (t *Table[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := encodeLiteral(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedValue, err := encodeLiteral(t.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeLiteral marshals v without HTML escaping, so accented titles stay
// readable in the diffable artifacts.
func encodeLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
