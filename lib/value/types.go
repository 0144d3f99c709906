package value

import (
	"strconv"
	"strings"

	"zemscript/lib/diag"
)

type Kind uint8

const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindArray
	KindDictionary
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dictionary"
	case KindFunction:
		return "function"
	default:
		return "nil"
	}
}

// Value is the closed set of runtime values a script can produce.
type Value interface {
	isValue()
	Kind() Kind
	Equal(v Value) bool
	Op(opt string, other Value) (Value, error)
	String() string
}

var _ Value = Number{}
var _ Value = String("")
var _ Value = Bool(true)
var _ Value = &Array{}
var _ Value = &Dict{}
var _ Value = &Function{}
var _ Value = nil_{}

type String string

func (s String) isValue()   {}
func (s String) Kind() Kind { return KindString }
func (s String) Equal(v Value) bool {
	switch v := v.(type) {
	case String:
		return v == s
	default:
		return false
	}
}
func (s String) String() string {
	return string(s)
}
func (s String) Op(opt string, other Value) (Value, error) {
	return route(s, opt, other)
}

type Bool bool

func (b Bool) isValue()   {}
func (b Bool) Kind() Kind { return KindBoolean }
func (b Bool) Equal(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return v == b
	default:
		return false
	}
}
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
func (b Bool) Op(opt string, other Value) (Value, error) {
	return route(b, opt, other)
}

type nil_ struct{}

// Nil is the result of evaluations that produce nothing, such as a loop
// that never ran or a call to a function whose body is empty.
var Nil = nil_{}

func (n nil_) isValue()   {}
func (n nil_) Kind() Kind { return KindNil }
func (n nil_) Equal(v Value) bool {
	_, ok := v.(nil_)
	return ok
}
func (n nil_) String() string {
	return "nil"
}
func (n nil_) Op(opt string, other Value) (Value, error) {
	return route(n, opt, other)
}

// Quote renders v the way it appears inside a container: strings are
// single-quoted, everything else uses its display form.
func Quote(v Value) string {
	if s, ok := v.(String); ok {
		return "'" + strings.ReplaceAll(string(s), "'", "\\'") + "'"
	}
	return v.String()
}

func mismatch(expected, actual Value) error {
	return diag.New(diag.TypeMismatch, "type mismatch - expected type '%s' but got type '%s'", expected.Kind(), actual.Kind())
}

func invalid(format string, args ...interface{}) error {
	return diag.New(diag.InvalidType, format, args...)
}
