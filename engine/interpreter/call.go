package interpreter

import (
	"go.uber.org/zap"

	"zemscript/engine/ast"
	"zemscript/engine/scope"
	"zemscript/engine/symtab"
	"zemscript/lib/diag"
	"zemscript/lib/value"
)

// userFunction is a function literal together with its scope analysis and
// the table holding the cells it captured when it was created.
type userFunction struct {
	node  *ast.Function
	scope *scope.Info
	table *symtab.Table
}

var _ value.Closure = (*userFunction)(nil)

func (u *userFunction) Params() []string {
	return u.node.ParamNames()
}

func (i *Interpreter) call(name string, fn *value.Function, args []value.Value) (value.Value, error) {
	if fn.IsNative() {
		functionCalls.WithLabelValues("native").Inc()
		i.log.Debug("calling native function", zap.String("name", fn.Name()), zap.Int("args", len(args)))
		return fn.Native()(args)
	}
	uf, ok := fn.Closure().(*userFunction)
	if !ok {
		return value.Nil, diag.New(diag.InvalidFunction, "call to invalid function: %s", fn)
	}
	functionCalls.WithLabelValues("user").Inc()
	return i.callUser(name, uf, args)
}

// callUser runs uf in a new frame. The call table starts from the captured
// cells, imports the cells of every name the function declares global, and
// binds the parameters as fresh locals. Omitted arguments take their default,
// evaluated in the call table after the earlier parameters are bound. The
// result is the value of the return statement that ended the call, or else
// the value of the last statement of the body.
func (i *Interpreter) callUser(name string, uf *userFunction, args []value.Value) (value.Value, error) {
	if name == "" {
		name = "anonymous function"
	}
	params := uf.node.Params
	if len(args) > len(params) {
		return value.Nil, diag.New(diag.InvalidFunction, "%s expects at most %d arguments but got %d",
			name, len(params), len(args))
	}
	if len(i.frames) > MaxDepth {
		return value.Nil, diag.New(diag.InvalidFunction, "maximum call depth of %d exceeded", MaxDepth)
	}

	table := symtab.NewChild(uf.table)
	globals := uf.scope.Globals()
	for _, g := range globals {
		table.Import(g)
	}
	f := &frame{table: table, scope: uf.scope}
	i.frames = append(i.frames, f)
	defer func() {
		i.frames = i.frames[:len(i.frames)-1]
	}()
	i.log.Debug("calling function",
		zap.String("name", name),
		zap.Int("args", len(args)),
		zap.Int("depth", len(i.frames)-1),
		zap.Strings("globals", globals),
	)

	for idx, p := range params {
		if idx < len(args) {
			table.Redefine(p.Name, args[idx])
			continue
		}
		d, ok := p.Default.Get()
		if !ok {
			return value.Nil, diag.New(diag.InvalidFunction, "%s: missing argument '%s'", name, p.Name)
		}
		v, err := i.eval(d)
		if err != nil {
			return value.Nil, err
		}
		table.Redefine(p.Name, v)
	}

	ret, err := i.eval(uf.node.Body)
	if err != nil {
		return value.Nil, err
	}
	if f.returning {
		return f.result, nil
	}
	return ret, nil
}
