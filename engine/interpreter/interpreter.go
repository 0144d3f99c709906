package interpreter

import (
	"io"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/raulk/clock"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"

	"zemscript/engine/ast"
	"zemscript/engine/natives"
	"zemscript/engine/scope"
	"zemscript/engine/symtab"
	"zemscript/lib/diag"
	"zemscript/lib/value"
)

// MaxDepth bounds the number of nested user function calls.
const MaxDepth = 4096

var functionCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "zem_function_calls_total",
	Help: "Number of function calls made by scripts",
}, []string{"kind"})

var closuresCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "zem_closures_created_total",
	Help: "Number of function values created from function literals",
})

// frame is the state of one active call: the table names resolve in, the
// scope analysis of the running function and the pending return, if any.
type frame struct {
	table     *symtab.Table
	scope     *scope.Info
	returning bool
	result    value.Value
}

type Interpreter struct {
	global *symtab.Table
	root   *scope.Info
	frames []*frame

	log    *zap.Logger
	out    io.Writer
	clock  clock.Clock
	extras map[string]value.NativeFunc
}

var _ ast.VisitorValue = (*Interpreter)(nil)

type Option func(*Interpreter)

func WithLogger(log *zap.Logger) Option {
	return func(i *Interpreter) {
		i.log = log
	}
}

// WithOutput sets where print and println write.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

func WithClock(c clock.Clock) Option {
	return func(i *Interpreter) {
		i.clock = c
	}
}

// WithNatives binds additional host functions in the global table.
func WithNatives(fns map[string]value.NativeFunc) Option {
	return func(i *Interpreter) {
		for name, fn := range fns {
			i.extras[name] = fn
		}
	}
}

func NewInterpreter(opts ...Option) (*Interpreter, error) {
	i := &Interpreter{
		global: symtab.NewGlobal(),
		root:   scope.NewRoot(),
		log:    zap.NewNop(),
		out:    os.Stdout,
		clock:  clock.New(),
		extras: make(map[string]value.NativeFunc),
	}
	for _, opt := range opts {
		opt(i)
	}
	host := natives.Host{Out: i.out, Clock: i.clock}
	for _, name := range natives.Names() {
		n, err := natives.Locate(name)
		if err != nil {
			return nil, err
		}
		if err := i.global.Define(name, natives.Bind(host, n)); err != nil {
			return nil, err
		}
	}
	names := lo.Keys(i.extras)
	sort.Strings(names)
	for _, name := range names {
		if err := i.global.Define(name, value.NewNative(name, i.extras[name])); err != nil {
			return nil, err
		}
	}
	i.frames = []*frame{{table: i.global, scope: i.root}}
	return i, nil
}

// Eval runs prog in the global table and returns the value of the last
// top-level statement evaluated. Globals survive across calls, so a host can
// evaluate a program piece by piece. On failure the interpreter is left
// ready for the next program.
func (i *Interpreter) Eval(prog *ast.Program) (value.Value, error) {
	defer i.reset()
	scope.AnalyzeProgram(i.root, prog)
	i.log.Debug("evaluating program", zap.Int("statements", len(prog.Statements)))
	ret, err := prog.AcceptValue(i)
	if err != nil {
		i.log.Debug("evaluation failed", zap.Error(err))
		return value.Nil, err
	}
	return ret, nil
}

// Call invokes the function bound to name in the global table.
func (i *Interpreter) Call(name string, args ...value.Value) (value.Value, error) {
	defer i.reset()
	v, err := i.global.Get(name)
	if err != nil {
		return value.Nil, diag.New(diag.InvalidFunction, "call to undefined function '%s'", name)
	}
	fn, ok := v.(*value.Function)
	if !ok {
		return value.Nil, diag.New(diag.InvalidFunction, "call to invalid function: '%s' is a %s", name, v.Kind())
	}
	return i.call(name, fn, args)
}

// Global returns the value bound to name in the global table.
func (i *Interpreter) Global(name string) (value.Value, error) {
	return i.global.Get(name)
}

func (i *Interpreter) reset() {
	i.frames = i.frames[:1]
	i.frames[0].returning = false
	i.frames[0].result = nil
}

func (i *Interpreter) top() *frame {
	return i.frames[len(i.frames)-1]
}

// eval visits node and tags any failure with the position of node, unless a
// deeper node already did.
func (i *Interpreter) eval(node ast.Ast) (value.Value, error) {
	ret, err := node.AcceptValue(i)
	if err != nil {
		return value.Nil, diag.At(err, node.Pos())
	}
	return ret, nil
}

func (i *Interpreter) statements(statements []ast.Ast) (value.Value, error) {
	var ret value.Value = value.Nil
	f := i.top()
	for _, stmt := range statements {
		v, err := i.eval(stmt)
		if err != nil {
			return value.Nil, err
		}
		ret = v
		if f.returning {
			return f.result, nil
		}
	}
	return ret, nil
}

func (i *Interpreter) VisitProgram(statements []ast.Ast) (value.Value, error) {
	return i.statements(statements)
}

func (i *Interpreter) VisitBlock(statements []ast.Ast) (value.Value, error) {
	return i.statements(statements)
}

func (i *Interpreter) VisitAssign(target ast.Ast, val ast.Ast) (value.Value, error) {
	v, err := i.eval(val)
	if err != nil {
		return value.Nil, err
	}
	switch t := target.(type) {
	case *ast.Var:
		i.top().table.Set(t.Name, v)
	case *ast.Lookup:
		container, err := i.eval(t.Target)
		if err != nil {
			return value.Nil, err
		}
		key, err := i.eval(t.Key)
		if err != nil {
			return value.Nil, err
		}
		if err = value.SetIndex(container, key, v); err != nil {
			return value.Nil, diag.At(err, t.Pos())
		}
	default:
		return value.Nil, diag.NewAt(diag.InvalidType, target.Pos(), "left hand of assignment must be a variable")
	}
	return v, nil
}

func (i *Interpreter) VisitBinary(left ast.Ast, op string, right ast.Ast) (value.Value, error) {
	l, err := i.eval(left)
	if err != nil {
		return value.Nil, err
	}
	switch op {
	case "&&", "||":
		lb, err := value.ToBool(l)
		if err != nil {
			return value.Nil, diag.At(err, left.Pos())
		}
		if op == "&&" && !bool(lb) {
			return value.Bool(false), nil
		}
		if op == "||" && bool(lb) {
			return value.Bool(true), nil
		}
		r, err := i.eval(right)
		if err != nil {
			return value.Nil, err
		}
		rb, err := value.ToBool(r)
		if err != nil {
			return value.Nil, diag.At(err, right.Pos())
		}
		return rb, nil
	}
	r, err := i.eval(right)
	if err != nil {
		return value.Nil, err
	}
	return l.Op(op, r)
}

func (i *Interpreter) VisitUnary(op string, operand ast.Ast) (value.Value, error) {
	v, err := i.eval(operand)
	if err != nil {
		return value.Nil, err
	}
	return value.Unary(op, v)
}

func (i *Interpreter) VisitAtom(at ast.AtomType, lexeme string) (value.Value, error) {
	switch at {
	case ast.Number:
		return value.ParseNumber(lexeme)
	case ast.String:
		return value.String(lexeme), nil
	case ast.Bool:
		return value.Bool(lexeme == "true"), nil
	}
	return value.Nil, diag.New(diag.InvalidType, "unknown atom type %d", at)
}

func (i *Interpreter) VisitArray(elems []ast.Ast) (value.Value, error) {
	ret := make([]value.Value, 0, len(elems))
	for _, e := range elems {
		v, err := i.eval(e)
		if err != nil {
			return value.Nil, err
		}
		ret = append(ret, v)
	}
	return value.NewArray(ret...), nil
}

func (i *Interpreter) VisitDict(entries []ast.Entry) (value.Value, error) {
	ret := value.NewDict()
	for _, e := range entries {
		k, err := i.eval(e.Key)
		if err != nil {
			return value.Nil, err
		}
		v, err := i.eval(e.Value)
		if err != nil {
			return value.Nil, err
		}
		ret.Set(k, v)
	}
	return ret, nil
}

func (i *Interpreter) VisitVar(name string) (value.Value, error) {
	return i.top().table.Get(name)
}

func (i *Interpreter) VisitLookup(target ast.Ast, key ast.Ast) (value.Value, error) {
	container, err := i.eval(target)
	if err != nil {
		return value.Nil, err
	}
	k, err := i.eval(key)
	if err != nil {
		return value.Nil, err
	}
	return container.Op("[]", k)
}

func (i *Interpreter) VisitFunction(fn *ast.Function) (value.Value, error) {
	f := i.top()
	info := scope.Analyze(f.scope, fn)
	upvalues := info.Upvalues()
	closuresCreated.Inc()
	i.log.Debug("creating closure",
		zap.Stringer("pos", fn.Pos()),
		zap.Strings("upvalues", upvalues),
		zap.Strings("locals", info.Locals()),
	)
	return value.NewClosure(&userFunction{
		node:  fn,
		scope: info,
		table: symtab.NewClosure(f.table, upvalues),
	}), nil
}

func (i *Interpreter) VisitCall(callee ast.Ast, args []ast.Ast) (value.Value, error) {
	name := ""
	if v, ok := callee.(*ast.Var); ok {
		name = v.Name
	}
	c, err := i.eval(callee)
	if err != nil {
		if name != "" && diag.IsKind(err, diag.UnsetVariable) {
			return value.Nil, diag.NewAt(diag.InvalidFunction, callee.Pos(), "call to undefined function '%s'", name)
		}
		return value.Nil, err
	}
	fn, ok := c.(*value.Function)
	if !ok {
		return value.Nil, diag.New(diag.InvalidFunction, "call to invalid function: value of type '%s' is not callable", c.Kind())
	}
	vals := make([]value.Value, 0, len(args))
	for _, a := range args {
		v, err := i.eval(a)
		if err != nil {
			return value.Nil, err
		}
		vals = append(vals, v)
	}
	return i.call(name, fn, vals)
}

func (i *Interpreter) VisitReturn(val mo.Option[ast.Ast]) (value.Value, error) {
	var ret value.Value = value.Nil
	if e, ok := val.Get(); ok {
		v, err := i.eval(e)
		if err != nil {
			return value.Nil, err
		}
		ret = v
	}
	f := i.top()
	f.returning = true
	f.result = ret
	return ret, nil
}

func (i *Interpreter) VisitIf(cond ast.Ast, then *ast.Block, els mo.Option[ast.Ast]) (value.Value, error) {
	ok, err := i.test(cond)
	if err != nil {
		return value.Nil, err
	}
	if ok {
		return i.eval(then)
	}
	if e, present := els.Get(); present {
		return i.eval(e)
	}
	return value.Bool(false), nil
}

func (i *Interpreter) VisitWhile(cond ast.Ast, body *ast.Block) (value.Value, error) {
	var ret value.Value = value.Nil
	f := i.top()
	for {
		ok, err := i.test(cond)
		if err != nil {
			return value.Nil, err
		}
		if !ok {
			return ret, nil
		}
		if ret, err = i.eval(body); err != nil {
			return value.Nil, err
		}
		if f.returning {
			return f.result, nil
		}
	}
}

func (i *Interpreter) VisitForeach(on ast.Ast, key mo.Option[string], val string, body *ast.Block) (value.Value, error) {
	container, err := i.eval(on)
	if err != nil {
		return value.Nil, err
	}
	f := i.top()
	keyName, withKey := key.Get()
	var ret value.Value = value.Nil
	switch c := container.(type) {
	case *value.Array:
		for idx, elem := range c.Values() {
			if withKey {
				f.table.Set(keyName, value.Int(int64(idx)))
			}
			f.table.Set(val, elem)
			if ret, err = i.eval(body); err != nil {
				return value.Nil, err
			}
			if f.returning {
				return f.result, nil
			}
		}
	case *value.Dict:
		c.Iter(func(k, v value.Value) bool {
			if withKey {
				f.table.Set(keyName, k)
			}
			f.table.Set(val, v)
			ret, err = i.eval(body)
			return err == nil && !f.returning
		})
		if err != nil {
			return value.Nil, err
		}
		if f.returning {
			return f.result, nil
		}
	default:
		return value.Nil, diag.NewAt(diag.InvalidType, on.Pos(),
			"foreach expects an array or dictionary but got type '%s'", container.Kind())
	}
	return ret, nil
}

// VisitGlobal binds each name to its global cell in the current table.
func (i *Interpreter) VisitGlobal(names []string) (value.Value, error) {
	t := i.top().table
	for _, name := range names {
		t.Import(name)
	}
	return value.Nil, nil
}

func (i *Interpreter) test(cond ast.Ast) (bool, error) {
	c, err := i.eval(cond)
	if err != nil {
		return false, err
	}
	b, err := value.ToBool(c)
	if err != nil {
		return false, diag.At(err, cond.Pos())
	}
	return bool(b), nil
}
