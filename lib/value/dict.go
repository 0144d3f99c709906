package value

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

type entry struct {
	key Value
	val Value
}

// Dict maps arbitrary values to values. Keys compare by value: numbers
// numerically, strings and booleans by content, arrays and dictionaries by
// their display form when inserted, functions by identity. Iteration
// follows insertion order. Like Array, a Dict has reference semantics.
type Dict struct {
	m *linkedhashmap.Map
}

func NewDict() *Dict {
	return &Dict{m: linkedhashmap.New()}
}

func (d *Dict) isValue()   {}
func (d *Dict) Kind() Kind { return KindDictionary }
func (d *Dict) Equal(v Value) bool {
	return equal(d, v, map[pair]bool{})
}
func (d *Dict) String() string {
	return d.display(path{})
}

// display renders d, printing a dictionary that contains itself as {...}.
func (d *Dict) display(p path) string {
	if !p.enter(d) {
		return "{...}"
	}
	defer p.leave(d)
	sb := strings.Builder{}
	sb.WriteString("{")
	first := true
	d.Iter(func(k, v Value) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(quoteIn(k, p))
		sb.WriteString(": ")
		sb.WriteString(quoteIn(v, p))
		return true
	})
	sb.WriteString("}")
	return sb.String()
}
func (d *Dict) Op(opt string, other Value) (Value, error) {
	return route(d, opt, other)
}

func (d *Dict) Len() int {
	return d.m.Size()
}

func (d *Dict) Set(k, v Value) {
	key := hashKey(k)
	if old, found := d.m.Get(key); found {
		// keep the key the entry was first inserted with
		d.m.Put(key, entry{key: old.(entry).key, val: v})
		return
	}
	d.m.Put(key, entry{key: k, val: v})
}

func (d *Dict) Get(k Value) (Value, error) {
	e, found := d.m.Get(hashKey(k))
	if !found {
		return Nil, invalid("key not found: %s", Quote(k))
	}
	return e.(entry).val, nil
}

func (d *Dict) Has(k Value) bool {
	_, found := d.m.Get(hashKey(k))
	return found
}

func (d *Dict) Remove(k Value) {
	d.m.Remove(hashKey(k))
}

func (d *Dict) Keys() []Value {
	ret := make([]Value, 0, d.Len())
	d.Iter(func(k, _ Value) bool {
		ret = append(ret, k)
		return true
	})
	return ret
}

func (d *Dict) Values() []Value {
	ret := make([]Value, 0, d.Len())
	d.Iter(func(_, v Value) bool {
		ret = append(ret, v)
		return true
	})
	return ret
}

// Iter calls fn for each entry in insertion order until fn returns false.
// Entries are snapshotted first, so fn may mutate the dictionary.
func (d *Dict) Iter(fn func(k, v Value) bool) {
	entries := make([]entry, 0, d.Len())
	it := d.m.Iterator()
	for it.Next() {
		entries = append(entries, it.Value().(entry))
	}
	for _, e := range entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}

func hashKey(k Value) string {
	switch k := k.(type) {
	case Number:
		return "n:" + k.String()
	case String:
		return "s:" + string(k)
	case Bool:
		return "b:" + k.String()
	case *Array:
		return "a:" + k.String()
	case *Dict:
		return "d:" + k.String()
	case *Function:
		return fmt.Sprintf("f:%p", k)
	default:
		return "nil"
	}
}
