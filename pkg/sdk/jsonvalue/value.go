// Package jsonvalue provides Value, an immutable JSON document returned by the
// OmniDimension client.
//
// The client enforces no schema on responses. A Value keeps the exact bytes the
// service sent and exposes them as a tagged union of null, bool, number,
// string, array and object.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a parsed JSON document. The zero Value is Invalid and marshals as null.
type Value struct {
	raw []byte
}

// Parse validates data and wraps it. Leading and trailing whitespace is dropped.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !gjson.ValidBytes(trimmed) {
		return Value{}, fmt.Errorf("jsonvalue: invalid JSON")
	}
	raw := make([]byte, len(trimmed))
	copy(raw, trimmed)
	return Value{raw: raw}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests and constants.
func MustParse(data string) Value {
	v, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return v
}

// EmptyObject returns the Value {}.
func EmptyObject() Value {
	return Value{raw: []byte("{}")}
}

func fromResult(r gjson.Result) Value {
	if !r.Exists() {
		return Value{}
	}
	return Value{raw: []byte(r.Raw)}
}

func (v Value) result() gjson.Result {
	return gjson.ParseBytes(v.raw)
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind {
	if len(v.raw) == 0 {
		return Invalid
	}
	r := v.result()
	switch r.Type {
	case gjson.Null:
		return Null
	case gjson.True, gjson.False:
		return Bool
	case gjson.Number:
		return Number
	case gjson.String:
		return String
	case gjson.JSON:
		if r.IsArray() {
			return Array
		}
		return Object
	}
	return Invalid
}

// IsValid reports whether v holds a JSON document.
func (v Value) IsValid() bool {
	return len(v.raw) > 0
}

// Bytes returns a copy of the raw JSON.
func (v Value) Bytes() []byte {
	out := make([]byte, len(v.raw))
	copy(out, v.raw)
	return out
}

// String returns the raw JSON text ("null" for an invalid Value).
func (v Value) String() string {
	if len(v.raw) == 0 {
		return "null"
	}
	return string(v.raw)
}

// Get looks up a gjson path such as "data.0.id". Missing paths yield an invalid Value.
func (v Value) Get(path string) Value {
	if len(v.raw) == 0 {
		return Value{}
	}
	return fromResult(v.result().Get(path))
}

// Has reports whether path exists.
func (v Value) Has(path string) bool {
	return v.Get(path).IsValid()
}

// Bool returns the boolean held by v; false for other kinds.
func (v Value) Bool() bool {
	return v.Kind() == Bool && v.result().Bool()
}

// Int returns v as an int64. Numbers are truncated; numeric strings are parsed.
func (v Value) Int() int64 {
	return v.result().Int()
}

// Float returns v as a float64.
func (v Value) Float() float64 {
	return v.result().Float()
}

// Str returns the string held by v. For other kinds it returns the raw JSON.
func (v Value) Str() string {
	if len(v.raw) == 0 {
		return ""
	}
	return v.result().String()
}

// Array returns the elements of an array Value; nil for other kinds.
func (v Value) Array() []Value {
	if v.Kind() != Array {
		return nil
	}
	items := v.result().Array()
	out := make([]Value, 0, len(items))
	for _, item := range items {
		out = append(out, fromResult(item))
	}
	return out
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.result().Array())
	case Object:
		n := 0
		v.result().ForEach(func(_, _ gjson.Result) bool {
			n++
			return true
		})
		return n
	}
	return 0
}

// Keys returns the member names of an object Value in document order.
func (v Value) Keys() []string {
	if v.Kind() != Object {
		return nil
	}
	var keys []string
	v.result().ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// Interface converts v into plain Go values (map[string]any, []any, float64, string, bool, nil).
func (v Value) Interface() any {
	if len(v.raw) == 0 {
		return nil
	}
	return v.result().Value()
}

// Decode unmarshals v into dst.
func (v Value) Decode(dst any) error {
	if len(v.raw) == 0 {
		return fmt.Errorf("jsonvalue: decode of invalid value")
	}
	return json.Unmarshal(v.raw, dst)
}

// Equal reports whether v and other hold byte-identical JSON.
func (v Value) Equal(other Value) bool {
	return bytes.Equal(v.raw, other.raw)
}

// MarshalJSON returns the raw JSON unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.Bytes(), nil
}

// UnmarshalJSON stores a copy of data.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Indent returns v formatted with two-space indentation.
func (v Value) Indent() string {
	if len(v.raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, v.raw, "", "  "); err != nil {
		return string(v.raw)
	}
	return buf.String()
}
