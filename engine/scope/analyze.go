package scope

import (
	"zemscript/engine/ast"
)

// Analyze computes the scope of function literal fn defined inside parent.
// Nested function literals are analyzed recursively and their upvalues merged
// into the result. The AST and parent are left untouched apart from parent
// upvalues picked up from fn.
func Analyze(parent *Info, fn *ast.Function) *Info {
	s := NewChild(parent)
	for _, p := range fn.Params {
		s.MarkLocal(p.Name)
	}
	for _, p := range fn.Params {
		if d, ok := p.Default.Get(); ok {
			s.walk(d)
		}
	}
	s.walk(fn.Body)
	return s
}

// AnalyzeProgram records in root the names prog declares global outside of
// any function body, so that functions defined anywhere in the program see
// them as globals.
func AnalyzeProgram(root *Info, prog *ast.Program) {
	root.declareGlobals(prog)
}

func (s *Info) declareGlobals(node ast.Ast) {
	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Statements {
			s.declareGlobals(stmt)
		}
	case *ast.Block:
		if n != nil {
			for _, stmt := range n.Statements {
				s.declareGlobals(stmt)
			}
		}
	case *ast.If:
		s.declareGlobals(n.Then)
		if e, ok := n.Else.Get(); ok {
			s.declareGlobals(e)
		}
	case *ast.While:
		s.declareGlobals(n.Body)
	case *ast.Foreach:
		s.declareGlobals(n.Body)
	case *ast.Global:
		for _, name := range n.Names {
			s.MarkGlobal(name)
		}
	}
}

func (s *Info) walk(node ast.Ast) {
	switch n := node.(type) {
	case nil:
	case *ast.Program:
		s.walkAll(n.Statements)
	case *ast.Block:
		if n != nil {
			s.walkAll(n.Statements)
		}
	case *ast.Assign:
		s.walk(n.Value)
		if v, ok := n.Target.(*ast.Var); ok {
			s.WriteVariable(v.Name)
		} else {
			s.walk(n.Target)
		}
	case *ast.Binary:
		s.walk(n.Left)
		s.walk(n.Right)
	case *ast.Unary:
		s.walk(n.Operand)
	case *ast.Atom:
	case *ast.Array:
		s.walkAll(n.Elems)
	case *ast.Dict:
		for _, e := range n.Entries {
			s.walk(e.Key)
			s.walk(e.Value)
		}
	case *ast.Var:
		s.ReadVariable(n.Name)
	case *ast.Lookup:
		s.walk(n.Target)
		s.walk(n.Key)
	case *ast.Function:
		s.EndScope(Analyze(s, n))
	case *ast.Call:
		s.walk(n.Callee)
		s.walkAll(n.Args)
	case *ast.Return:
		if v, ok := n.Value.Get(); ok {
			s.walk(v)
		}
	case *ast.If:
		s.walk(n.Cond)
		s.walk(n.Then)
		if e, ok := n.Else.Get(); ok {
			s.walk(e)
		}
	case *ast.While:
		s.walk(n.Cond)
		s.walk(n.Body)
	case *ast.Foreach:
		s.walk(n.On)
		if k, ok := n.Key.Get(); ok {
			s.WriteVariable(k)
		}
		s.WriteVariable(n.Value)
		s.walk(n.Body)
	case *ast.Global:
		for _, name := range n.Names {
			s.MarkGlobal(name)
		}
	}
}

func (s *Info) walkAll(nodes []ast.Ast) {
	for _, n := range nodes {
		s.walk(n)
	}
}
