package natives

import (
	"fmt"
	"io"
	"sort"

	"github.com/raulk/clock"

	"zemscript/lib/diag"
	"zemscript/lib/value"
)

var registry = make(map[string]Native)

// Host is what natives may touch outside their arguments.
type Host struct {
	Out   io.Writer
	Clock clock.Clock
}

type Signature struct {
	Name string
	Min  int
	// Max is -1 for variadic natives.
	Max int
}

func NewSignature(name string) *Signature {
	return &Signature{Name: name}
}

func (s *Signature) Arity(min, max int) *Signature {
	s.Min = min
	s.Max = max
	return s
}

func (s *Signature) Variadic(min int) *Signature {
	s.Min = min
	s.Max = -1
	return s
}

func (s *Signature) expects() string {
	switch {
	case s.Max < 0:
		return fmt.Sprintf("at least %d", s.Min)
	case s.Min == s.Max:
		return fmt.Sprintf("%d", s.Min)
	default:
		return fmt.Sprintf("%d to %d", s.Min, s.Max)
	}
}

type Native interface {
	Apply(host Host, args []value.Value) (value.Value, error)
	Signature() *Signature
}

func Register(n Native) error {
	name := n.Signature().Name
	if _, ok := registry[name]; ok {
		return fmt.Errorf("native function '%s' already registered", name)
	}
	registry[name] = n
	return nil
}

func Locate(name string) (Native, error) {
	ret, ok := registry[name]
	if !ok {
		return nil, diag.New(diag.InvalidFunction, "unregistered native function '%s'", name)
	}
	return ret, nil
}

// Names returns the names of all registered natives in sorted order.
func Names() []string {
	ret := make([]string, 0, len(registry))
	for name := range registry {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func Validate(n Native, args []value.Value) error {
	sig := n.Signature()
	if len(args) < sig.Min || (sig.Max >= 0 && len(args) > sig.Max) {
		return diag.New(diag.InvalidFunction, "native function '%s' expects %s arguments but got %d",
			sig.Name, sig.expects(), len(args))
	}
	return nil
}

// Bind wraps n into a function value whose calls are checked against the
// signature of n before being applied.
func Bind(host Host, n Native) *value.Function {
	return value.NewNative(n.Signature().Name, func(args []value.Value) (value.Value, error) {
		if err := Validate(n, args); err != nil {
			return value.Nil, err
		}
		return n.Apply(host, args)
	})
}

func mustRegister(natives ...Native) {
	for _, n := range natives {
		if err := Register(n); err != nil {
			panic(err)
		}
	}
}
