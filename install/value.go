package install

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

var jsonNull = []byte("null")

// Value is a configuration section whose shape depends on the option the
// user picked in the UI. It holds the raw JSON; the zero Value is null.
type Value struct {
	raw json.RawMessage
}

// NewValue encodes v as an open section value.
func NewValue(v interface{}) (Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("encoding value: %w", err)
	}
	var out Value
	if err := out.UnmarshalJSON(b); err != nil {
		return Value{}, err
	}
	return out, nil
}

// MustValue is like NewValue but panics on encoding failure.
func MustValue(v interface{}) Value {
	out, err := NewValue(v)
	if err != nil {
		panic(err)
	}
	return out
}

// IsNull reports whether the value is absent or JSON null.
func (v Value) IsNull() bool {
	return len(v.raw) == 0
}

// Raw returns the JSON encoding of the value.
func (v Value) Raw() json.RawMessage {
	if v.IsNull() {
		return json.RawMessage(jsonNull)
	}
	return v.raw
}

// Decode unmarshals the value into dst. A null value leaves dst untouched.
func (v Value) Decode(dst interface{}) error {
	if v.IsNull() {
		return nil
	}
	return json.Unmarshal(v.raw, dst)
}

// Equal reports whether both values hold the same JSON document, ignoring
// formatting and object key order.
func (v Value) Equal(o Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() == o.IsNull()
	}
	if bytes.Equal(v.raw, o.raw) {
		return true
	}
	var a, b interface{}
	if json.Unmarshal(v.raw, &a) != nil || json.Unmarshal(o.raw, &b) != nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func (v Value) String() string {
	return string(v.Raw())
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.Raw(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		v.raw = nil
		return nil
	}
	if !json.Valid(b) {
		return fmt.Errorf("invalid JSON value %q", b)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	v.raw = buf.Bytes()
	return nil
}
