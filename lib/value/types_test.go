package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zemscript/lib/diag"
)

func TestParseNumber(t *testing.T) {
	scenarios := []struct {
		lexeme   string
		expected string
	}{
		{"12", "12"},
		{"12.50", "12.5"},
		{"0.000", "0"},
		{"0x3BE", "958"},
		{"0o52", "42"},
		{"0b101", "5"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, scenario := range scenarios {
		n, err := ParseNumber(scenario.lexeme)
		require.NoError(t, err, scenario.lexeme)
		assert.Equal(t, scenario.expected, n.String(), scenario.lexeme)
	}
	for _, bad := range []string{"0x", "0b102", "abc", "1.2.3"} {
		_, err := ParseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestNumber_Int64(t *testing.T) {
	i, ok := num("42.0").Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)
	_, ok = num("4.2").Int64()
	assert.False(t, ok)
	_, ok = num("99999999999999999999999").Int64()
	assert.False(t, ok)
}

func TestDisplay(t *testing.T) {
	arr := NewArray(num("1"), String("two"), Bool(false), NewArray())
	assert.Equal(t, "[1, 'two', false, []]", arr.String())

	d := NewDict()
	d.Set(String("a"), num("1"))
	d.Set(num("2"), arr)
	assert.Equal(t, "{'a': 1, 2: [1, 'two', false, []]}", d.String())

	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "native function(len)", NewNative("len", nil).String())
	assert.Equal(t, "hi", String("hi").String())
	assert.Equal(t, "'it\\'s'", Quote(String("it's")))
}

func TestArray_Mutation(t *testing.T) {
	arr := NewArray(num("1"))
	alias := Value(arr)
	arr.Append(num("2"), num("3"))
	assert.Equal(t, 3, alias.(*Array).Len())

	last, err := arr.Pop()
	assert.NoError(t, err)
	assert.True(t, num("3").Equal(last))
	assert.Equal(t, "[1, 2]", alias.String())

	vals := arr.Values()
	vals[0] = String("changed")
	assert.Equal(t, "[1, 2]", arr.String())

	_, err = NewArray().Pop()
	assert.Error(t, err)
}

func TestDict_KeysByValue(t *testing.T) {
	d := NewDict()
	d.Set(num("1"), String("one"))
	d.Set(num("1.00"), String("uno"))
	d.Set(String("1"), String("string one"))
	d.Set(Bool(true), String("yes"))
	d.Set(NewArray(num("1")), String("array"))

	assert.Equal(t, 4, d.Len())
	v, err := d.Get(num("1.0"))
	assert.NoError(t, err)
	assert.Equal(t, String("uno"), v)
	v, err = d.Get(String("1"))
	assert.NoError(t, err)
	assert.Equal(t, String("string one"), v)
	v, err = d.Get(NewArray(num("1")))
	assert.NoError(t, err)
	assert.Equal(t, String("array"), v)

	_, err = d.Get(String("missing"))
	assert.EqualError(t, err, "key not found: 'missing'")
	assert.False(t, d.Has(Bool(false)))

	// the first inserted key is kept and order is insertion order
	assert.Equal(t, "{1: 'uno', '1': 'string one', true: 'yes', [1]: 'array'}", d.String())

	d.Remove(String("1"))
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []Value{String("uno"), String("yes"), String("array")}, d.Values())
}

func TestDict_FunctionKeys(t *testing.T) {
	f := NewNative("f", nil)
	g := NewNative("f", nil)
	d := NewDict()
	d.Set(f, num("1"))
	assert.True(t, d.Has(f))
	assert.False(t, d.Has(g))
}

func TestDict_IterAllowsMutation(t *testing.T) {
	d := NewDict()
	d.Set(String("a"), num("1"))
	d.Set(String("b"), num("2"))
	var seen []string
	d.Iter(func(k, v Value) bool {
		seen = append(seen, k.String())
		d.Set(String("c"), num("3"))
		return true
	})
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 3, d.Len())
}

func TestConvert(t *testing.T) {
	_, err := ToNumber(String("1"))
	assert.EqualError(t, err, "expected type 'number' but got type 'string'")
	_, err = ToBool(num("1"))
	assert.EqualError(t, err, "expected type 'boolean' but got type 'number'")
	assert.Equal(t, String("[1]"), ToString(NewArray(num("1"))))
	assert.Equal(t, "dictionary", NewDict().Kind().String())
}

func TestSelfReference(t *testing.T) {
	a := NewArray(num("1"))
	a.Append(a)
	assert.Equal(t, "[1, [...]]", a.String())
	assert.Equal(t, "[1, [...]]", ToString(a).String())

	d := NewDict()
	d.Set(String("self"), d)
	d.Set(String("list"), NewArray(d, a))
	assert.Equal(t, "{'self': {...}, 'list': [{...}, [1, [...]]]}", d.String())

	// a cycle reached twice along different branches is printed in full
	shared := NewArray(num("2"))
	assert.Equal(t, "[[2], [2]]", NewArray(shared, shared).String())

	// structural equality terminates and == reports the cycle
	b := NewArray(num("1"))
	b.Append(b)
	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	_, err := a.Op("==", b)
	assert.True(t, diag.IsKind(err, diag.InvalidType), "%v", err)
	_, err = d.Op("!=", NewDict())
	assert.True(t, diag.IsKind(err, diag.InvalidType), "%v", err)
	ret, err := NewArray(shared, shared).Op("==", NewArray(shared, shared))
	require.NoError(t, err)
	assert.Equal(t, Bool(true), ret)

	_, err = ToJson(a)
	assert.True(t, diag.IsKind(err, diag.InvalidType), "%v", err)
	_, err = ToJson(d)
	assert.True(t, diag.IsKind(err, diag.InvalidType), "%v", err)

	// cyclic values can still be dictionary keys
	keyed := NewDict()
	keyed.Set(a, String("cycle"))
	v, err := keyed.Get(a)
	require.NoError(t, err)
	assert.Equal(t, String("cycle"), v)
}
