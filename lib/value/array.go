package value

import (
	"strings"
)

// Array is a mutable, ordered sequence. Arrays have reference semantics:
// every holder of the same *Array observes in-place element writes.
type Array struct {
	values []Value
}

func NewArray(values ...Value) *Array {
	ret := make([]Value, 0, len(values))
	ret = append(ret, values...)
	return &Array{values: ret}
}

func (a *Array) isValue()   {}
func (a *Array) Kind() Kind { return KindArray }
func (a *Array) Equal(v Value) bool {
	return equal(a, v, map[pair]bool{})
}
func (a *Array) String() string {
	return a.display(path{})
}

// display renders a, printing an array that contains itself as [...].
func (a *Array) display(p path) string {
	if !p.enter(a) {
		return "[...]"
	}
	defer p.leave(a)
	sb := strings.Builder{}
	sb.WriteString("[")
	for i, v := range a.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteIn(v, p))
	}
	sb.WriteString("]")
	return sb.String()
}
func (a *Array) Op(opt string, other Value) (Value, error) {
	return route(a, opt, other)
}

func (a *Array) Len() int {
	return len(a.values)
}

// Values returns a copy of the elements.
func (a *Array) Values() []Value {
	ret := make([]Value, len(a.values))
	copy(ret, a.values)
	return ret
}

func (a *Array) Get(idx Value) (Value, error) {
	i, err := a.index(idx)
	if err != nil {
		return Nil, err
	}
	return a.values[i], nil
}

func (a *Array) Set(idx Value, v Value) error {
	i, err := a.index(idx)
	if err != nil {
		return err
	}
	a.values[i] = v
	return nil
}

func (a *Array) Append(vs ...Value) {
	a.values = append(a.values, vs...)
}

// Pop removes and returns the last element.
func (a *Array) Pop() (Value, error) {
	if len(a.values) == 0 {
		return Nil, invalid("can not pop from an empty array")
	}
	last := a.values[len(a.values)-1]
	a.values = a.values[:len(a.values)-1]
	return last, nil
}

func (a *Array) index(idx Value) (int, error) {
	n, ok := idx.(Number)
	if !ok {
		return 0, invalid("array index must be a number but got type '%s'", idx.Kind())
	}
	i, ok := n.Int64()
	if !ok {
		return 0, invalid("array index must be an integer but got '%s'", n)
	}
	if i < 0 || i >= int64(len(a.values)) {
		return 0, invalid("array index out of bounds: %s (length %d)", n, len(a.values))
	}
	return int(i), nil
}
