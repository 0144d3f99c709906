package natives

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"zemscript/lib/diag"
	"zemscript/lib/value"
)

func init() {
	mustRegister(
		PrintNative{newline: false},
		PrintNative{newline: true},
		StrNative{},
		NumNative{},
		TypeNative{},
		LenNative{},
		KeysNative{},
		ValuesNative{},
		HasNative{},
		RemoveNative{},
		PushNative{},
		PopNative{},
		RangeNative{},
		TimeNative{},
	)
}

// PrintNative writes the display form of its arguments separated by spaces.
type PrintNative struct {
	newline bool
}

func (p PrintNative) Signature() *Signature {
	if p.newline {
		return NewSignature("println").Variadic(0)
	}
	return NewSignature("print").Variadic(0)
}

func (p PrintNative) Apply(host Host, args []value.Value) (value.Value, error) {
	s := strings.Join(lo.Map(args, func(v value.Value, _ int) string { return v.String() }), " ")
	if p.newline {
		s += "\n"
	}
	if _, err := fmt.Fprint(host.Out, s); err != nil {
		return value.Nil, err
	}
	return value.Nil, nil
}

type StrNative struct{}

func (s StrNative) Signature() *Signature {
	return NewSignature("str").Arity(1, 1)
}

func (s StrNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	return value.ToString(args[0]), nil
}

type NumNative struct{}

func (n NumNative) Signature() *Signature {
	return NewSignature("num").Arity(1, 1)
}

func (n NumNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Number:
		return v, nil
	case value.String:
		ret, err := value.ParseNumber(strings.TrimSpace(string(v)))
		if err != nil {
			return value.Nil, diag.New(diag.InvalidType, "num: can not convert %s to a number", value.Quote(v))
		}
		return ret, nil
	}
	return value.Nil, diag.New(diag.InvalidType, "num expects a string or number but got %s", args[0].Kind())
}

type TypeNative struct{}

func (t TypeNative) Signature() *Signature {
	return NewSignature("type").Arity(1, 1)
}

func (t TypeNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	return value.String(args[0].Kind().String()), nil
}

type LenNative struct{}

func (l LenNative) Signature() *Signature {
	return NewSignature("len").Arity(1, 1)
}

func (l LenNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.String:
		return value.Int(int64(utf8.RuneCountInString(string(v)))), nil
	case *value.Array:
		return value.Int(int64(v.Len())), nil
	case *value.Dict:
		return value.Int(int64(v.Len())), nil
	}
	return value.Nil, diag.New(diag.InvalidType, "len expects a string, array or dictionary but got %s", args[0].Kind())
}

type KeysNative struct{}

func (k KeysNative) Signature() *Signature {
	return NewSignature("keys").Arity(1, 1)
}

func (k KeysNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	d, err := dictArg("keys", args[0])
	if err != nil {
		return value.Nil, err
	}
	return value.NewArray(d.Keys()...), nil
}

type ValuesNative struct{}

func (v ValuesNative) Signature() *Signature {
	return NewSignature("values").Arity(1, 1)
}

func (v ValuesNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	d, err := dictArg("values", args[0])
	if err != nil {
		return value.Nil, err
	}
	return value.NewArray(d.Values()...), nil
}

type HasNative struct{}

func (h HasNative) Signature() *Signature {
	return NewSignature("has").Arity(2, 2)
}

func (h HasNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	d, err := dictArg("has", args[0])
	if err != nil {
		return value.Nil, err
	}
	return value.Bool(d.Has(args[1])), nil
}

// RemoveNative deletes a key in place and returns the removed value.
type RemoveNative struct{}

func (r RemoveNative) Signature() *Signature {
	return NewSignature("remove").Arity(2, 2)
}

func (r RemoveNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	d, err := dictArg("remove", args[0])
	if err != nil {
		return value.Nil, err
	}
	old, err := d.Get(args[1])
	if err != nil {
		return value.Nil, err
	}
	d.Remove(args[1])
	return old, nil
}

// PushNative appends to an array in place and returns the array.
type PushNative struct{}

func (p PushNative) Signature() *Signature {
	return NewSignature("push").Variadic(2)
}

func (p PushNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	a, err := arrayArg("push", args[0])
	if err != nil {
		return value.Nil, err
	}
	a.Append(args[1:]...)
	return a, nil
}

type PopNative struct{}

func (p PopNative) Signature() *Signature {
	return NewSignature("pop").Arity(1, 1)
}

func (p PopNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	a, err := arrayArg("pop", args[0])
	if err != nil {
		return value.Nil, err
	}
	return a.Pop()
}

// RangeNative returns the integers [0, n) or [a, b).
type RangeNative struct{}

func (r RangeNative) Signature() *Signature {
	return NewSignature("range").Arity(1, 2)
}

func (r RangeNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	bounds := make([]int64, 0, 2)
	for _, arg := range args {
		n, ok := arg.(value.Number)
		if !ok {
			return value.Nil, diag.New(diag.InvalidType, "range expects numbers but got %s", arg.Kind())
		}
		i, ok := n.Int64()
		if !ok {
			return value.Nil, diag.New(diag.InvalidType, "range expects integers but got %s", n)
		}
		bounds = append(bounds, i)
	}
	start, end := int64(0), bounds[0]
	if len(bounds) == 2 {
		start, end = bounds[0], bounds[1]
	}
	ret := value.NewArray()
	for i := start; i < end; i++ {
		ret.Append(value.Int(i))
	}
	return ret, nil
}

// TimeNative returns the host clock as unix seconds.
type TimeNative struct{}

func (t TimeNative) Signature() *Signature {
	return NewSignature("time").Arity(0, 0)
}

func (t TimeNative) Apply(host Host, _ []value.Value) (value.Value, error) {
	return value.Int(host.Clock.Now().Unix()), nil
}

func arrayArg(name string, v value.Value) (*value.Array, error) {
	a, ok := v.(*value.Array)
	if !ok {
		return nil, diag.New(diag.InvalidType, "%s expects an array but got %s", name, v.Kind())
	}
	return a, nil
}

func dictArg(name string, v value.Value) (*value.Dict, error) {
	d, ok := v.(*value.Dict)
	if !ok {
		return nil, diag.New(diag.InvalidType, "%s expects a dictionary but got %s", name, v.Kind())
	}
	return d, nil
}
