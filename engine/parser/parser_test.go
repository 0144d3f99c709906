package parser

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zemscript/engine/ast"
	"zemscript/lib/diag"
)

func verifySExpr(t *testing.T, src, expected string) {
	prog, err := Parse(src)
	require.NoError(t, err, src)
	assert.Equal(t, expected, ast.Print(prog), src)
}

func verifySyntax(t *testing.T, src string) {
	_, err := Parse(src)
	assert.NoError(t, err, src)
}

func verifyParseError(t *testing.T, src string) {
	_, err := Parse(src)
	assert.Error(t, err, src)
}

func TestParser_Assignment(t *testing.T) {
	prog, err := Parse("n = 0;")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	assign, ok := prog.Statements[0].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, diag.Position{Line: 1, Column: 3}, assign.Pos())

	types := map[string]ast.AtomType{
		"n = 3;":       ast.Number,
		"n = 'hello';": ast.String,
		"n = true;":    ast.Bool,
		"n = false;":   ast.Bool,
	}
	for src, expected := range types {
		prog, err := Parse(src)
		require.NoError(t, err)
		atom, ok := prog.Statements[0].(*ast.Assign).Value.(*ast.Atom)
		require.True(t, ok, src)
		assert.Equal(t, expected, atom.Type, src)
	}
}

func TestParser_ArithmeticOperators(t *testing.T) {
	for src, op := range map[string]string{
		"n = 1 + 1;": "+", "n = 3 - 2;": "-", "n = 2 * 2;": "*",
		"n = 4 / 2;": "/", "n = 4 % 3;": "%", "n = 2 ^ 2;": "^",
	} {
		prog, err := Parse(src)
		require.NoError(t, err)
		bin, ok := prog.Statements[0].(*ast.Assign).Value.(*ast.Binary)
		require.True(t, ok, src)
		assert.Equal(t, op, bin.Op)
	}
}

func TestParser_OperatorChain(t *testing.T) {
	verifySyntax(t, "n = 2 + 2 - 2 + 2;")
	verifySyntax(t, "n = 2 * 2 / 2 * 2;")
	verifySyntax(t, "n = 2 ^ 2 ^ 2;")
	verifySyntax(t, "n = true && true && false || false || true;")
	verifySExpr(t, "n = 2 - 1 - 1;", "(set! n (- (- 2 1) 1))")
	verifySExpr(t, "n = 2 ^ 3 ^ 2;", "(set! n (^ (^ 2 3) 2))")
}

func TestParser_OperatorPrecedence(t *testing.T) {
	verifySExpr(t, "n = 1 - -2;", "(set! n (- 1 (- 2)))")
	verifySExpr(t, "n = 2 + 2 * 3;", "(set! n (+ 2 (* 2 3)))")
	verifySExpr(t, "n = 2 - 4 / 2;", "(set! n (- 2 (/ 4 2)))")
	verifySExpr(t, "n = 2 + 1 * 2 ^ 2;", "(set! n (+ 2 (* 1 (^ 2 2))))")
	verifySExpr(t, "n = 2 ^ -2;", "(set! n (^ 2 (- 2)))")
	verifySExpr(t, "n = -2 ^ 2;", "(set! n (^ (- 2) 2))")
	verifySExpr(t, "n = +2;", "(set! n 2)")
	verifySExpr(t, "n = a || b && c;", "(set! n (or a (and b c)))")
	verifySExpr(t, "n = a && b || c;", "(set! n (or (and a b) c))")
	verifySExpr(t, "n = a && b || c && d;", "(set! n (or (and a b) (and c d)))")
	verifySExpr(t, "n = a && b || c && d || e;", "(set! n (or (and a b) (or (and c d) e)))")
	verifySExpr(t, "n = !a && b;", "(set! n (and (not a) b))")
	verifySExpr(t, "n = a && !b;", "(set! n (and a (not b)))")
	verifySExpr(t, "n = (2 + 2) * 3;", "(set! n (* (+ 2 2) 3))")
	verifySExpr(t, "n = !(a && b);", "(set! n (not (and a b)))")
	verifySExpr(t, "n = 1 + 1 <= 2 || 3 * 2 > 5 && 5 * 1 > 4;",
		"(set! n (or (<= (+ 1 1) 2) (and (> (* 3 2) 5) (> (* 5 1) 4))))")
}

func TestParser_Strings(t *testing.T) {
	verifySExpr(t, "x = 'hello' ~ ' world!';", "(set! x (~ 'hello' ' world!'))")
	verifySExpr(t, "x = 'a' ~ b ~ 'c';", "(set! x (~ 'a' (~ b 'c')))")
	verifySExpr(t, "x = s == 'a';", "(set! x (== s 'a'))")
	verifySExpr(t, `x = "it's";`, "(set! x 'it's')")
}

func TestParser_ControlStructures(t *testing.T) {
	verifySExpr(t, "if (cond) { then(); } else { somethingElse(); }", "(if cond ((then)) ((somethingElse)))")
	verifySExpr(t, "if (cond) { then(); }", "(if cond ((then)))")
	verifySExpr(t, "if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }",
		"(if a ((set! x 1)) (if b ((set! x 2)) ((set! x 3))))")
	verifySExpr(t, "while (cond) { body(); }", "(while cond ((body)))")
	verifySExpr(t, "foreach (on_var as element) { process(element); }", "(foreach on_var element ((process element)))")
	verifySExpr(t, "foreach (on_var as key : value) { process(key, value); }", "(foreach on_var (key value) ((process key value)))")
	verifySExpr(t, "while (true) {}", "(while true ())")
}

func TestParser_Function(t *testing.T) {
	verifySExpr(t, "add = function(a, b) { return a + b; };", "(set! add (function (a b) ((return (+ a b)))))")
	verifySExpr(t, "f = function(a, b = a * 2) { return; };", "(set! f (function (a (set! b (* a 2))) ((return))))")
	verifySExpr(t, "x = f()()();", "(set! x (((f))))")
	verifySExpr(t, "function(msg) { return msg; }('hello world');", "((function (msg) ((return msg))) 'hello world')")
	verifySExpr(t, "msg = obj['greet']();", "(set! msg ((lookup obj 'greet')))")
	verifySExpr(t, "x = add(2, add(2, 3));", "(set! x (add 2 (add 2 3)))")
}

func TestParser_Containers(t *testing.T) {
	verifySExpr(t, "a = [1, 'two', [3]];", "(set! a (array 1 'two' (array 3)))")
	verifySExpr(t, "a = [];", "(set! a (array))")
	verifySExpr(t, "d = {'apples': 1, 2: 'two'};", "(set! d (dict ('apples' 1) (2 'two')))")
	verifySExpr(t, "d = {};", "(set! d (dict))")
	verifySExpr(t, "m[0][1] = m[1][0];", "(set! (lookup (lookup m 0) 1) (lookup (lookup m 1) 0))")
}

func TestParser_Global(t *testing.T) {
	verifySExpr(t, "global x; x = 0;", "(global x) (set! x 0)")
	verifySExpr(t, "f = function() { global a, b; a = b; };", "(set! f (function () ((global a b) (set! a b))))")
	verifyParseError(t, "global;")
	verifyParseError(t, "global x y;")
}

func TestParser_CommentsAreSkipped(t *testing.T) {
	verifySExpr(t, "// leading\nx = /* inline */ 1; // trailing", "(set! x 1)")
}

func TestParser_Errors(t *testing.T) {
	verifyParseError(t, "x = ;")
	verifyParseError(t, "x = 1")
	verifyParseError(t, "x 1;")
	verifyParseError(t, "if (x) { y = 1;")
	verifyParseError(t, "foreach (a in b) {}")
	verifyParseError(t, "d = {a: 1};")
	verifyParseError(t, "function() {};")
	verifyParseError(t, "3 + 4;")
	verifyParseError(t, "x = 0b102;")

	_, err := Parse("x = 1;\ny = (2 + ;")
	require.Error(t, err)
	assert.True(t, diag.IsKind(err, diag.Parser))
	pos, ok := diag.PosOf(err)
	assert.True(t, ok)
	assert.Equal(t, diag.Position{Line: 2, Column: 10}, pos)
}

func TestParser_Positions(t *testing.T) {
	prog, err := Parse("x = y;\nf(1)(2);")
	require.NoError(t, err)
	assign := prog.Statements[0].(*ast.Assign)
	assert.Equal(t, diag.Position{Line: 1, Column: 5}, assign.Value.Pos())

	outer := prog.Statements[1].(*ast.Call)
	inner := outer.Callee.(*ast.Call)
	if diff := deep.Equal(
		[]diag.Position{{Line: 2, Column: 5}, {Line: 2, Column: 1}},
		[]diag.Position{outer.Pos(), inner.Pos()},
	); diff != nil {
		t.Error(diff)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	scripts := []string{
		"n = (3 + 12 * 2 ^ 4 >= 0) && 3 % 4 == 3;",
		"n = -2 ^ 2 - -1;",
		"n = !(a && b) || !c;",
		"x = 'a' ~ b ~ \"it's\";",
		"if (false) { x = 'then'; } else if (true) { x = 'elseif'; } else { x = 'else'; }",
		"i = 0; while (i < 9) { i = i + 1; } x = i;",
		"dict = {'apples':1, 'oranges':3}; t = 0; foreach (dict as k : v) { t = t + v; } x = t;",
		"create = function() { x = 40; f = function() { return function(y = x) { return y; }; }; return f(); };",
		"f = function() { return function() { return function() { return 'hello world'; }; }; }; x = f()()();",
		"function(msg) { return msg; }('hello world');",
		"x = (function(msg) { return msg; }('hello world')) ~ '!';",
		"obj = { 'greet' : function() { return 'hello world'; } }; msg = obj['greet']();",
		"global x, y; m[0][1] = [1, [2], {}]; return;",
		"x = ([1]) == ([1]); y = (function() {}) == f;",
		"g = function() {}()();",
	}
	for _, src := range scripts {
		prog, err := Parse(src)
		require.NoError(t, err, src)
		formatted := ast.Format(prog)
		again, err := Parse(formatted)
		require.NoError(t, err, formatted)
		assert.Equal(t, ast.Print(prog), ast.Print(again), formatted)
		assert.Equal(t, formatted, ast.Format(again))
	}
}
