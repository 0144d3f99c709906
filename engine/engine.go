package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"zemscript/engine/ast"
	"zemscript/engine/interpreter"
	"zemscript/engine/parser"
	"zemscript/lib/timer"
	"zemscript/lib/value"
)

// Executor parses and evaluates scripts against one long-lived interpreter,
// so globals defined by one script are visible to the next.
type Executor struct {
	ip  *interpreter.Interpreter
	log *zap.Logger
}

func NewExecutor(log *zap.Logger, opts ...interpreter.Option) (*Executor, error) {
	opts = append([]interpreter.Option{interpreter.WithLogger(log)}, opts...)
	ip, err := interpreter.NewInterpreter(opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create interpreter: %w", err)
	}
	return &Executor{ip: ip, log: log}, nil
}

func (ex *Executor) Interpreter() *interpreter.Interpreter {
	return ex.ip
}

func (ex *Executor) Parse(ctx context.Context, src string) (*ast.Program, error) {
	defer timer.Start(ctx, "parser.parse").Stop()
	return parser.Parse(src)
}

func (ex *Executor) Run(ctx context.Context, prog *ast.Program) (value.Value, error) {
	defer timer.Start(ctx, "interpreter.eval").Stop()
	return ex.ip.Eval(prog)
}

// Exec parses and runs src. The timing of each phase is logged at debug
// level once the script finishes.
func (ex *Executor) Exec(ctx context.Context, src string) (value.Value, error) {
	ctx = timer.WithTracing(ctx)
	defer timer.LogTracingInfo(ctx, ex.log)
	prog, err := ex.Parse(ctx, src)
	if err != nil {
		return value.Nil, err
	}
	return ex.Run(ctx, prog)
}
