package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"zemscript/engine"
	"zemscript/engine/ast"
	"zemscript/engine/interpreter"
	"zemscript/lib/value"
	"zemscript/service/common"
)

type Args struct {
	common.PrometheusArgs
	Config     string `arg:"--config,env:ZEM_CONFIG" help:"YAML configuration file"`
	Dev        bool   `arg:"--dev,env:ZEM_DEV" help:"human readable logs at debug level"`
	LogLevel   string `arg:"--log-level,env:ZEM_LOG_LEVEL" help:"one of debug, info, warn, error"`
	ShowResult bool   `arg:"--show-result" help:"print the value of the last statement"`
	PrintAst   bool   `arg:"--print-ast" help:"print the parsed program instead of running it"`
	Format     bool   `arg:"--format" help:"print the program reformatted instead of running it"`
	Eval       string `arg:"-e,--eval" help:"source to run instead of a script file"`
	Script     string `arg:"positional" help:"script to run; starts a REPL when omitted"`
}

func (Args) Description() string {
	return "zem runs ZemScript programs"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	var args Args
	p, err := arg.NewParser(arg.Config{Program: "zem"}, &args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := p.Parse(argv); err != nil {
		if err == arg.ErrHelp {
			p.WriteHelp(stdout)
			return 0
		}
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cfg, err := LoadConfig(args.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	cfg = cfg.Merge(args)

	logger, err := NewLogger(cfg.Dev, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	if srv := common.StartPromMetricsServer(cfg.MetricsPort, logger); srv != nil {
		logger.Info("serving metrics", zap.Uint("port", cfg.MetricsPort))
		defer srv.Close()
	}

	executor, err := engine.NewExecutor(logger, interpreter.WithOutput(stdout))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	ctx := context.Background()
	for _, path := range cfg.Prelude {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "error: could not read prelude: %v\n", err)
			return 1
		}
		logger.Debug("loading prelude", zap.String("path", path))
		if _, err := executor.Exec(ctx, string(src)); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			return 1
		}
	}

	switch {
	case args.Eval != "":
		return runSource(ctx, executor, cfg, args, args.Eval, stdout, stderr)
	case args.Script != "":
		src, err := os.ReadFile(args.Script)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return runSource(ctx, executor, cfg, args, string(src), stdout, stderr)
	default:
		return runREPL(ctx, executor, stdout)
	}
}

func runSource(ctx context.Context, ex *engine.Executor, cfg Config, args Args, src string, stdout, stderr io.Writer) int {
	if args.PrintAst || args.Format {
		prog, err := ex.Parse(ctx, src)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if args.PrintAst {
			fmt.Fprintln(stdout, ast.Print(prog))
		} else {
			fmt.Fprintln(stdout, ast.Format(prog))
		}
		return 0
	}
	v, err := ex.Exec(ctx, src)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if cfg.ShowResult {
		fmt.Fprintln(stdout, value.Quote(v))
	}
	return 0
}
