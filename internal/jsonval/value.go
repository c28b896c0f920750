// Package jsonval provides a tagged JSON value tree with total accessors.
// Every positional read on a Value is checked: a type or index mismatch
// yields the Null value (or a false ok flag), never a panic.
package jsonval

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
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
		return "null"
	}
}

// Member is a single key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable decoded JSON node. The zero Value is Null.
type Value struct {
	kind    Kind
	b       bool
	num     float64
	str     string
	items   []Value
	members []Member
}

// Decode parses JSON text into a Value tree.
func Decode(text string) (Value, error) {
	if strings.TrimSpace(text) == "" {
		return Value{}, eris.New("jsonval: empty input")
	}
	if !gjson.Valid(text) {
		return Value{}, eris.New("jsonval: invalid json")
	}
	return fromResult(gjson.Parse(text)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.True:
		return NewBool(true)
	case gjson.False:
		return NewBool(false)
	case gjson.Number:
		return NewNumber(r.Num)
	case gjson.String:
		return NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, v gjson.Result) bool {
				items = append(items, fromResult(v))
				return true
			})
			return NewArray(items...)
		}
		if r.IsObject() {
			var members []Member
			r.ForEach(func(k, v gjson.Result) bool {
				members = append(members, Member{Key: k.Str, Value: fromResult(v)})
				return true
			})
			return NewObject(members...)
		}
	}
	return Value{}
}

// NewNull returns the Null value.
func NewNull() Value { return Value{} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewNumber wraps a number.
func NewNumber(n float64) Value { return Value{kind: Number, num: n} }

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: String, str: s} }

// NewArray builds an array from items.
func NewArray(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

// NewObject builds an object from members, preserving their order.
func NewObject(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: Object, members: members}
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsArray() bool  { return v.kind == Array }
func (v Value) IsObject() bool { return v.kind == Object }
func (v Value) IsString() bool { return v.kind == String }
func (v Value) IsNumber() bool { return v.kind == Number }

// Len returns the number of array items or object members, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th array item, or Null when v is not an array or i
// is out of range.
func (v Value) Index(i int) Value {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// At follows a chain of array indices, e.g. v.At(1, 5, 2).
func (v Value) At(path ...int) Value {
	cur := v
	for _, i := range path {
		cur = cur.Index(i)
		if cur.kind == Null {
			return cur
		}
	}
	return cur
}

// Items returns the array items, or nil when v is not an array.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Members returns the object members, or nil when v is not an object.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.members
}

// Field returns the first member named key, or Null.
func (v Value) Field(key string) Value {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value
		}
	}
	return Value{}
}

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// StrOr returns the string payload, or def when v is not a string.
func (v Value) StrOr(def string) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return def
}

// Num returns the numeric payload and whether v is a number.
func (v Value) Num() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// Bool returns the boolean payload and whether v is a boolean.
func (v Value) Bool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}
