package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zemscript/engine/ast"
	"zemscript/engine/parser"
)

func TestInfo_ReadWrite(t *testing.T) {
	root := NewRoot()
	root.MarkGlobal("g")
	root.WriteVariable("top")

	fn := NewChild(root)
	assert.True(t, fn.global.has("g"))
	fn.MarkLocal("a")
	fn.WriteVariable("b")
	fn.WriteVariable("g")
	fn.ReadVariable("top")
	assert.Equal(t, []string{"a", "b"}, fn.Locals())
	assert.Empty(t, fn.Upvalues())

	inner := NewChild(fn)
	inner.ReadVariable("a")
	inner.WriteVariable("b")
	inner.WriteVariable("c")
	inner.ReadVariable("undefined")
	assert.Equal(t, []string{"a", "b"}, inner.Upvalues())
	assert.Equal(t, []string{"c"}, inner.Locals())

	fn.EndScope(inner)
	assert.Empty(t, fn.Upvalues())

	deepest := NewChild(inner)
	deepest.ReadVariable("a")
	deepest.ReadVariable("c")
	inner.EndScope(deepest)
	assert.Equal(t, []string{"a", "b"}, inner.Upvalues())
}

func TestInfo_ChildrenOfRootSeeNoOuterNames(t *testing.T) {
	root := NewRoot()
	root.WriteVariable("x")
	fn := NewChild(root)
	fn.WriteVariable("x")
	assert.True(t, fn.local.has("x"))
	assert.False(t, fn.upvalue.has("x"))
}

func TestInfo_GlobalsPropagateDown(t *testing.T) {
	root := NewRoot()
	fn := NewChild(root)
	fn.MarkGlobal("counter")
	inner := NewChild(fn)
	inner.WriteVariable("counter")
	assert.Equal(t, []string{"counter"}, inner.Globals())
	assert.Empty(t, inner.Locals())
	assert.False(t, root.global.has("counter"))
}

func function(t *testing.T, src string) *ast.Function {
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	assign, ok := prog.Statements[0].(*ast.Assign)
	require.True(t, ok)
	fn, ok := assign.Value.(*ast.Function)
	require.True(t, ok)
	return fn
}

func TestAnalyze_NestedCapture(t *testing.T) {
	fn := function(t, "create = function() { x = 40; f = function() { return function(y = x) { return y; }; }; return f(); };")
	s := Analyze(NewRoot(), fn)
	assert.Equal(t, []string{"f", "x"}, s.Locals())
	assert.Empty(t, s.Upvalues())

	// the nested literal captures x through f
	body := fn.Body.Statements[1].(*ast.Assign).Value.(*ast.Function)
	inner := Analyze(s, body)
	assert.Equal(t, []string{"x"}, inner.Upvalues())
	assert.Empty(t, inner.Locals())
}

func TestAnalyze_Params(t *testing.T) {
	fn := function(t, "f = function(a, b = a * k) { c = a + b; foreach (c as i : v) { d = v; } };")
	s := Analyze(NewRoot(), fn)
	assert.Equal(t, []string{"a", "b", "c", "d", "i", "v"}, s.Locals())
	assert.Empty(t, s.Upvalues())
	assert.False(t, s.local.has("k"))
}

func TestAnalyze_Global(t *testing.T) {
	fn := function(t, "f = function() { global x; x = 1; g = function() { x = 2; }; };")
	s := Analyze(NewRoot(), fn)
	assert.Equal(t, []string{"x"}, s.Globals())
	assert.Equal(t, []string{"g"}, s.Locals())

	g := Analyze(s, fn.Body.Statements[2].(*ast.Assign).Value.(*ast.Function))
	assert.Empty(t, g.Locals())
	assert.Empty(t, g.Upvalues())
}

func TestAnalyzeProgram(t *testing.T) {
	prog, err := parser.Parse("x = 1; global y; if (x) { global z; } f = function() { global w; y = 2; z = 3; v = 4; };")
	require.NoError(t, err)
	root := NewRoot()
	AnalyzeProgram(root, prog)
	assert.True(t, root.root)
	assert.Equal(t, []string{"y", "z"}, root.Globals())

	f := Analyze(root, prog.Statements[3].(*ast.Assign).Value.(*ast.Function))
	assert.Equal(t, []string{"w", "y", "z"}, f.Globals())
	assert.Equal(t, []string{"v"}, f.Locals())
	assert.False(t, f.root)
}
