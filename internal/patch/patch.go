// Package patch models partial updates: which fields a request carried, and whether a carried
// field was an explicit null.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrEmpty is returned when a patch carries no updatable field.
var ErrEmpty = errors.New("no valid fields to update")

// Field is an optional request field. Present is false when the key was absent from the JSON
// object; Value is nil when the key was present with a null value.
type Field[T any] struct {
	Present bool
	Value   *T
}

// Set builds a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: &v}
}

// Null builds a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// UnmarshalJSON marks the field present. encoding/json only calls it for keys in the object.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// MarshalJSON renders the value or null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present || f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// Interface returns the value for a store write: nil for an explicit null.
func (f Field[T]) Interface() interface{} {
	if f.Value == nil {
		return nil
	}
	return *f.Value
}

// Patch is an ordered column to value mapping. Only present fields are recorded.
type Patch struct {
	columns []string
	values  map[string]interface{}
}

// New returns an empty patch.
func New() *Patch {
	return &Patch{values: make(map[string]interface{})}
}

// Add records column when the field was present in the request.
func Add[T any](p *Patch, column string, f Field[T]) {
	if !f.Present {
		return
	}
	p.Put(column, f.Interface())
}

// Put records a raw column value, replacing any earlier value for the same column.
func (p *Patch) Put(column string, value interface{}) {
	if p.values == nil {
		p.values = make(map[string]interface{})
	}
	if _, exists := p.values[column]; !exists {
		p.columns = append(p.columns, column)
	}
	p.values[column] = value
}

// Has reports whether column is part of the patch.
func (p *Patch) Has(column string) bool {
	if p == nil {
		return false
	}
	_, ok := p.values[column]
	return ok
}

// Len returns the number of columns in the patch.
func (p *Patch) Len() int {
	if p == nil {
		return 0
	}
	return len(p.columns)
}

// Columns returns the patched columns in insertion order.
func (p *Patch) Columns() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Updates returns the column map for a parameterized update, or ErrEmpty.
func (p *Patch) Updates() (map[string]interface{}, error) {
	if p.Len() == 0 {
		return nil, ErrEmpty
	}
	out := make(map[string]interface{}, len(p.values))
	for _, column := range p.columns {
		out[column] = p.values[column]
	}
	return out, nil
}
