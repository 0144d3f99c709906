package ast

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Printer renders a tree as S-expressions. The output is the canonical
// form used to compare parse trees.
type Printer struct{}

var _ VisitorString = Printer{}

func Print(a Ast) string {
	return a.AcceptString(Printer{})
}

func (p Printer) list(nodes []Ast) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.AcceptString(p)
	}
	return strings.Join(parts, " ")
}

func (p Printer) VisitProgram(statements []Ast) string {
	return p.list(statements)
}

func (p Printer) VisitBlock(statements []Ast) string {
	return fmt.Sprintf("(%s)", p.list(statements))
}

func (p Printer) VisitAssign(target Ast, val Ast) string {
	return fmt.Sprintf("(set! %s %s)", target.AcceptString(p), val.AcceptString(p))
}

func (p Printer) VisitBinary(left Ast, op string, right Ast) string {
	switch op {
	case "&&":
		op = "and"
	case "||":
		op = "or"
	}
	return fmt.Sprintf("(%s %s %s)", op, left.AcceptString(p), right.AcceptString(p))
}

func (p Printer) VisitUnary(op string, operand Ast) string {
	if op == "!" {
		op = "not"
	}
	return fmt.Sprintf("(%s %s)", op, operand.AcceptString(p))
}

func (p Printer) VisitAtom(at AtomType, lexeme string) string {
	if at == String {
		return "'" + lexeme + "'"
	}
	return lexeme
}

func (p Printer) VisitArray(elems []Ast) string {
	if len(elems) == 0 {
		return "(array)"
	}
	return fmt.Sprintf("(array %s)", p.list(elems))
}

func (p Printer) VisitDict(entries []Entry) string {
	sb := strings.Builder{}
	sb.WriteString("(dict")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf(" (%s %s)", e.Key.AcceptString(p), e.Value.AcceptString(p)))
	}
	sb.WriteString(")")
	return sb.String()
}

func (p Printer) VisitVar(name string) string {
	return name
}

func (p Printer) VisitLookup(target Ast, key Ast) string {
	return fmt.Sprintf("(lookup %s %s)", target.AcceptString(p), key.AcceptString(p))
}

func (p Printer) VisitFunction(fn *Function) string {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		if def, ok := param.Default.Get(); ok {
			params[i] = fmt.Sprintf("(set! %s %s)", param.Name, def.AcceptString(p))
		} else {
			params[i] = param.Name
		}
	}
	return fmt.Sprintf("(function (%s) %s)", strings.Join(params, " "), fn.Body.AcceptString(p))
}

func (p Printer) VisitCall(callee Ast, args []Ast) string {
	if len(args) == 0 {
		return fmt.Sprintf("(%s)", callee.AcceptString(p))
	}
	return fmt.Sprintf("(%s %s)", callee.AcceptString(p), p.list(args))
}

func (p Printer) VisitReturn(val mo.Option[Ast]) string {
	if v, ok := val.Get(); ok {
		return fmt.Sprintf("(return %s)", v.AcceptString(p))
	}
	return "(return)"
}

func (p Printer) VisitIf(cond Ast, then *Block, els mo.Option[Ast]) string {
	if e, ok := els.Get(); ok {
		return fmt.Sprintf("(if %s %s %s)", cond.AcceptString(p), then.AcceptString(p), e.AcceptString(p))
	}
	return fmt.Sprintf("(if %s %s)", cond.AcceptString(p), then.AcceptString(p))
}

func (p Printer) VisitWhile(cond Ast, body *Block) string {
	return fmt.Sprintf("(while %s %s)", cond.AcceptString(p), body.AcceptString(p))
}

func (p Printer) VisitForeach(on Ast, key mo.Option[string], val string, body *Block) string {
	as := val
	if k, ok := key.Get(); ok {
		as = fmt.Sprintf("(%s %s)", k, val)
	}
	return fmt.Sprintf("(foreach %s %s %s)", on.AcceptString(p), as, body.AcceptString(p))
}

func (p Printer) VisitGlobal(names []string) string {
	return fmt.Sprintf("(global %s)", strings.Join(names, " "))
}
