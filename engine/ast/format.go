package ast

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Formatter renders a tree back into parseable source. Binary and unary
// expressions are fully parenthesized, so formatting is not a pretty
// printer but re-parsing its output yields the same tree.
type Formatter struct{}

var _ VisitorString = Formatter{}

func Format(a Ast) string {
	return a.AcceptString(Formatter{})
}

func (f Formatter) statement(a Ast) string {
	switch a := a.(type) {
	case *If, *While, *Foreach:
		return a.AcceptString(f)
	case *Call:
		// a statement may start with a bare function literal, so no parens
		return f.call(a.Callee, a.Args) + ";"
	default:
		return a.AcceptString(f) + ";"
	}
}

// operand renders a node that sits where only an atom may appear.
func (f Formatter) operand(a Ast) string {
	switch a := a.(type) {
	case *Function, *Array, *Dict:
		return "(" + a.AcceptString(f) + ")"
	default:
		return a.AcceptString(f)
	}
}

func (f Formatter) list(nodes []Ast) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.AcceptString(f)
	}
	return strings.Join(parts, ", ")
}

func (f Formatter) VisitProgram(statements []Ast) string {
	parts := make([]string, len(statements))
	for i, s := range statements {
		parts[i] = f.statement(s)
	}
	return strings.Join(parts, "\n")
}

func (f Formatter) VisitBlock(statements []Ast) string {
	if len(statements) == 0 {
		return "{}"
	}
	parts := make([]string, len(statements))
	for i, s := range statements {
		parts[i] = f.statement(s)
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (f Formatter) VisitAssign(target Ast, val Ast) string {
	return fmt.Sprintf("%s = %s", target.AcceptString(f), val.AcceptString(f))
}

func (f Formatter) VisitBinary(left Ast, op string, right Ast) string {
	return fmt.Sprintf("(%s %s %s)", f.operand(left), op, f.operand(right))
}

func (f Formatter) VisitUnary(op string, operand Ast) string {
	return fmt.Sprintf("(%s%s)", op, f.operand(operand))
}

func (f Formatter) VisitAtom(at AtomType, lexeme string) string {
	if at == String {
		if strings.Contains(lexeme, "'") {
			return `"` + lexeme + `"`
		}
		return "'" + lexeme + "'"
	}
	return lexeme
}

func (f Formatter) VisitArray(elems []Ast) string {
	return "[" + f.list(elems) + "]"
}

func (f Formatter) VisitDict(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key.AcceptString(f), e.Value.AcceptString(f))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f Formatter) VisitVar(name string) string {
	return name
}

func (f Formatter) VisitLookup(target Ast, key Ast) string {
	return fmt.Sprintf("%s[%s]", target.AcceptString(f), key.AcceptString(f))
}

func (f Formatter) VisitFunction(fn *Function) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if def, ok := p.Default.Get(); ok {
			params[i] = fmt.Sprintf("%s = %s", p.Name, def.AcceptString(f))
		} else {
			params[i] = p.Name
		}
	}
	return fmt.Sprintf("function(%s) %s", strings.Join(params, ", "), fn.Body.AcceptString(f))
}

// call renders a call chain without wrapping its function literal root.
func (f Formatter) call(callee Ast, args []Ast) string {
	if inner, ok := callee.(*Call); ok {
		return fmt.Sprintf("%s(%s)", f.call(inner.Callee, inner.Args), f.list(args))
	}
	return fmt.Sprintf("%s(%s)", callee.AcceptString(f), f.list(args))
}

func (f Formatter) VisitCall(callee Ast, args []Ast) string {
	root := callee
	for {
		c, ok := root.(*Call)
		if !ok {
			break
		}
		root = c.Callee
	}
	if _, ok := root.(*Function); ok {
		return "(" + f.call(callee, args) + ")"
	}
	return f.call(callee, args)
}

func (f Formatter) VisitReturn(val mo.Option[Ast]) string {
	if v, ok := val.Get(); ok {
		return "return " + v.AcceptString(f)
	}
	return "return"
}

func (f Formatter) VisitIf(cond Ast, then *Block, els mo.Option[Ast]) string {
	ret := fmt.Sprintf("if (%s) %s", f.operand(cond), then.AcceptString(f))
	if e, ok := els.Get(); ok {
		ret += " else " + e.AcceptString(f)
	}
	return ret
}

func (f Formatter) VisitWhile(cond Ast, body *Block) string {
	return fmt.Sprintf("while (%s) %s", f.operand(cond), body.AcceptString(f))
}

func (f Formatter) VisitForeach(on Ast, key mo.Option[string], val string, body *Block) string {
	as := val
	if k, ok := key.Get(); ok {
		as = k + " : " + val
	}
	return fmt.Sprintf("foreach (%s as %s) %s", on.AcceptString(f), as, body.AcceptString(f))
}

func (f Formatter) VisitGlobal(names []string) string {
	return "global " + strings.Join(names, ", ")
}
