package symtab

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"zemscript/lib/diag"
	"zemscript/lib/value"
)

// Cell holds the value of one variable. Tables that share a variable share
// the *Cell. A nil Value means the variable is declared but not yet set.
type Cell struct {
	Value value.Value
}

// Table maps names to cells. Every table other than the global one links
// to the global table, which resolves names missing locally.
type Table struct {
	global *Table
	cells  map[string]*Cell
}

func NewGlobal() *Table {
	return &Table{cells: make(map[string]*Cell)}
}

// NewChild returns a table holding every cell of parent. Cells of the global
// table are not copied since lookups fall back to it anyway.
func NewChild(parent *Table) *Table {
	t := &Table{global: parent.Global(), cells: make(map[string]*Cell)}
	if !parent.IsGlobal() {
		for name, c := range parent.cells {
			t.cells[name] = c
		}
	}
	return t
}

// NewClosure returns a table holding only the cells of parent named in
// upvalues. Names missing from parent are skipped.
func NewClosure(parent *Table, upvalues []string) *Table {
	t := &Table{global: parent.Global(), cells: make(map[string]*Cell)}
	if !parent.IsGlobal() {
		for _, name := range upvalues {
			if c, ok := parent.cells[name]; ok {
				t.cells[name] = c
			}
		}
	}
	return t
}

func (t *Table) IsGlobal() bool {
	return t.global == nil
}

func (t *Table) Global() *Table {
	if t.global == nil {
		return t
	}
	return t.global
}

// Define binds name to a new cell, failing if name is already bound here.
func (t *Table) Define(name string, v value.Value) error {
	if _, ok := t.cells[name]; ok {
		return diag.New(diag.InvalidFunction, "re-defining symbol: '%s'", name)
	}
	t.cells[name] = &Cell{Value: v}
	return nil
}

// Redefine binds name to a new cell even if name is already bound here,
// detaching it from any table it was shared with.
func (t *Table) Redefine(name string, v value.Value) {
	t.cells[name] = &Cell{Value: v}
}

// Set writes v into the cell bound to name, creating a local cell if there
// is none.
func (t *Table) Set(name string, v value.Value) {
	if c, ok := t.cells[name]; ok {
		c.Value = v
		return
	}
	t.cells[name] = &Cell{Value: v}
}

func (t *Table) Get(name string) (value.Value, error) {
	c, ok := t.cells[name]
	if !ok {
		if t.global != nil {
			return t.global.Get(name)
		}
		return nil, diag.New(diag.UnsetVariable, "variable '%s' is not set", name)
	}
	if c.Value == nil {
		return nil, diag.New(diag.UnsetVariable, "variable '%s' is not set", name)
	}
	return c.Value, nil
}

// lookup returns the cell bound to name in this table only.
func (t *Table) lookup(name string) (*Cell, bool) {
	c, ok := t.cells[name]
	return c, ok
}

// Import binds name to the global table's cell for it, creating an unset
// global cell when needed, so writes through this table reach the global.
func (t *Table) Import(name string) {
	g := t.Global()
	c, ok := g.cells[name]
	if !ok {
		c = &Cell{}
		g.cells[name] = c
	}
	t.cells[name] = c
}

func (t *Table) Names() []string {
	ret := lo.Keys(t.cells)
	sort.Strings(ret)
	return ret
}

func (t *Table) String() string {
	sb := strings.Builder{}
	for _, name := range t.Names() {
		sb.WriteString(name)
		sb.WriteString(" => ")
		if v := t.cells[name].Value; v != nil {
			sb.WriteString(value.Quote(v))
		} else {
			sb.WriteString("<unset>")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
