package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"zemscript/engine"
	"zemscript/engine/parser"
	"zemscript/lib/diag"
	"zemscript/lib/value"
)

const (
	promptMain  = "zem> "
	promptCont  = "...> "
	historyFile = ".zem_history"
)

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// runREPL reads statements interactively and evaluates each one against the
// same interpreter, so definitions persist between inputs. Errors are printed
// and the session goes on.
func runREPL(ctx context.Context, ex *engine.Executor, out io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := historyPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintln(out, "ZemScript REPL. Ctrl-D to exit.")
	for {
		src, err := readInput(ln)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			fmt.Fprintln(out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.Join(strings.Fields(src), " "))

		v, err := ex.Exec(ctx, src)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if v != value.Nil {
			fmt.Fprintln(out, value.Quote(v))
		}
	}

	if hist != "" {
		if f, err := os.Create(hist); err == nil {
			_, _ = ln.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}

// readInput keeps prompting for lines until the accumulated source parses or
// fails for a reason other than running out of input.
func readInput(ln *liner.State) (string, error) {
	var buf strings.Builder
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		src := buf.String()
		if strings.TrimSpace(src) == "" {
			return src, nil
		}
		if _, err := parser.Parse(src); diag.IsIncomplete(err) {
			prompt = promptCont
			continue
		}
		return src, nil
	}
}
