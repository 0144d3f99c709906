package value

import (
	"fmt"
	"strings"
)

type NativeFunc func(args []Value) (Value, error)

// Closure is a user-defined function together with the cells it captured.
// The interpreter provides the implementation.
type Closure interface {
	Params() []string
}

// Function is either a native host function or a user closure. Functions
// compare by identity.
type Function struct {
	name    string
	native  NativeFunc
	closure Closure
}

func NewNative(name string, fn NativeFunc) *Function {
	return &Function{name: name, native: fn}
}

func NewClosure(c Closure) *Function {
	return &Function{closure: c}
}

func (f *Function) isValue()   {}
func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) Equal(v Value) bool {
	other, ok := v.(*Function)
	return ok && other == f
}
func (f *Function) String() string {
	if f.closure == nil {
		return fmt.Sprintf("native function(%s)", f.name)
	}
	return fmt.Sprintf("function(%s)", strings.Join(f.closure.Params(), ", "))
}
func (f *Function) Op(opt string, other Value) (Value, error) {
	return route(f, opt, other)
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) IsNative() bool {
	return f.closure == nil
}

func (f *Function) Native() NativeFunc {
	return f.native
}

func (f *Function) Closure() Closure {
	return f.closure
}
