// Package document supplies the container navigation primitives consumed by
// the path execution engine: kind inspection, ordered member iteration,
// member-by-key and element-by-index lookup, size queries and byte-offset
// addressing. Containers are backed by raw JSON text navigated with
// github.com/tidwall/gjson; no intermediate tree is materialized.
package document

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind classifies a document value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "boolean", "number", "string", "array", "object"}

// String returns the SQL/JSON type name of the kind.
func (k Kind) String() string { return kindNames[k] }

// ErrInvalid is returned by Parse for malformed JSON input.
var ErrInvalid = errors.New("document: invalid JSON input")

// Value references a value inside a JSON document together with the byte
// offset of its raw text within the document root. Offsets give composite
// values a stable address used for generated-object identity.
type Value struct {
	res gjson.Result
	off int
}

// Parse validates and wraps a JSON document.
func Parse(src string) (Value, error) {
	if !gjson.Valid(src) {
		return Value{}, ErrInvalid
	}
	return Value{res: gjson.Parse(src), off: 0}, nil
}

// Synthesize wraps JSON text produced during evaluation. The text is
// assumed valid by construction and addresses a fresh offset space.
func Synthesize(raw string) Value {
	return Value{res: gjson.Parse(raw), off: 0}
}

// Kind returns the classification of the value.
func (v Value) Kind() Kind {
	switch v.res.Type {
	case gjson.Null:
		return KindNull
	case gjson.False, gjson.True:
		return KindBool
	case gjson.Number:
		return KindNumber
	case gjson.String:
		return KindString
	default:
		if v.res.IsArray() {
			return KindArray
		}
		return KindObject
	}
}

// IsComposite reports whether the value is an array or object.
func (v Value) IsComposite() bool {
	k := v.Kind()
	return k == KindArray || k == KindObject
}

// Bool returns the boolean payload of a KindBool value.
func (v Value) Bool() bool { return v.res.Type == gjson.True }

// Str returns the decoded string payload of a KindString value.
func (v Value) Str() string { return v.res.Str }

// NumberLiteral returns the raw numeric literal, preserving the exact
// precision of the source text.
func (v Value) NumberLiteral() string { return strings.TrimSpace(v.res.Raw) }

// Raw returns the raw JSON text of the value.
func (v Value) Raw() string { return v.res.Raw }

// Offset returns the byte offset of the value's raw text within the
// document root it was navigated from.
func (v Value) Offset() int { return v.off }

// Size returns the number of elements or members of a composite value,
// or -1 for scalars.
func (v Value) Size() int {
	if !v.IsComposite() {
		return -1
	}
	n := 0
	v.res.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

// ArrayLen returns the element count of an array, or -1 if the value is
// not an array.
func (v Value) ArrayLen() int {
	if v.Kind() != KindArray {
		return -1
	}
	return v.Size()
}

// child wraps a result produced by iterating v. Iteration reports the
// position of the raw value within the originally parsed source, so the
// offset is taken as is; a zero position means unknown and keeps the
// parent's offset.
func (v Value) child(res gjson.Result) Value {
	off := v.off
	if res.Index > 0 {
		off = res.Index
	}
	return Value{res: res, off: off}
}

// Element returns the i-th element of an array value.
func (v Value) Element(i int) (Value, bool) {
	var out Value
	found := false
	n := 0
	v.res.ForEach(func(_, elem gjson.Result) bool {
		if n == i {
			out = v.child(elem)
			found = true
			return false
		}
		n++
		return true
	})
	return out, found
}

// Member returns the value of the named object member. Duplicate keys keep
// the last occurrence, matching binary-document ingestion semantics.
func (v Value) Member(key string) (Value, bool) {
	var out Value
	found := false
	v.res.ForEach(func(k, member gjson.Result) bool {
		if k.Str == key {
			out = v.child(member)
			found = true
		}
		return true
	})
	return out, found
}

// Each iterates a composite value in document order. For objects key holds
// the member name; for arrays it is empty. Iteration stops when fn returns
// false.
func (v Value) Each(fn func(key string, elem Value) bool) {
	v.res.ForEach(func(k, elem gjson.Result) bool {
		return fn(k.Str, v.child(elem))
	})
}

// Field is one member of a constructed object.
type Field struct {
	Key string
	Raw string // raw JSON of the member value
}

// BuildObject constructs the raw JSON text of an object with the given
// members in order.
func BuildObject(fields []Field) string {
	out := "{}"
	for _, f := range fields {
		out, _ = sjson.SetRaw(out, escapePathKey(f.Key), f.Raw)
	}
	return out
}

// AppendArray appends a raw JSON element to the raw text of an array,
// starting from "[]".
func AppendArray(arrayRaw, elemRaw string) string {
	out, err := sjson.SetRaw(arrayRaw, "-1", elemRaw)
	if err != nil {
		return arrayRaw
	}
	return out
}

// escapePathKey escapes characters that are special in set-path syntax so
// arbitrary member names address literally.
func escapePathKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
