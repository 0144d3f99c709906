package ast

import (
	"github.com/samber/mo"

	"zemscript/lib/diag"
	"zemscript/lib/value"
)

type VisitorValue interface {
	VisitProgram(statements []Ast) (value.Value, error)
	VisitBlock(statements []Ast) (value.Value, error)
	VisitAssign(target Ast, val Ast) (value.Value, error)
	VisitBinary(left Ast, op string, right Ast) (value.Value, error)
	VisitUnary(op string, operand Ast) (value.Value, error)
	VisitAtom(at AtomType, lexeme string) (value.Value, error)
	VisitArray(elems []Ast) (value.Value, error)
	VisitDict(entries []Entry) (value.Value, error)
	VisitVar(name string) (value.Value, error)
	VisitLookup(target Ast, key Ast) (value.Value, error)
	VisitFunction(fn *Function) (value.Value, error)
	VisitCall(callee Ast, args []Ast) (value.Value, error)
	VisitReturn(val mo.Option[Ast]) (value.Value, error)
	VisitIf(cond Ast, then *Block, els mo.Option[Ast]) (value.Value, error)
	VisitWhile(cond Ast, body *Block) (value.Value, error)
	VisitForeach(on Ast, key mo.Option[string], val string, body *Block) (value.Value, error)
	VisitGlobal(names []string) (value.Value, error)
}

type VisitorString interface {
	VisitProgram(statements []Ast) string
	VisitBlock(statements []Ast) string
	VisitAssign(target Ast, val Ast) string
	VisitBinary(left Ast, op string, right Ast) string
	VisitUnary(op string, operand Ast) string
	VisitAtom(at AtomType, lexeme string) string
	VisitArray(elems []Ast) string
	VisitDict(entries []Entry) string
	VisitVar(name string) string
	VisitLookup(target Ast, key Ast) string
	VisitFunction(fn *Function) string
	VisitCall(callee Ast, args []Ast) string
	VisitReturn(val mo.Option[Ast]) string
	VisitIf(cond Ast, then *Block, els mo.Option[Ast]) string
	VisitWhile(cond Ast, body *Block) string
	VisitForeach(on Ast, key mo.Option[string], val string, body *Block) string
	VisitGlobal(names []string) string
}

type Ast interface {
	AcceptValue(v VisitorValue) (value.Value, error)
	AcceptString(v VisitorString) string
	Pos() diag.Position
}

var _ Ast = (*Program)(nil)
var _ Ast = (*Block)(nil)
var _ Ast = (*Assign)(nil)
var _ Ast = (*Binary)(nil)
var _ Ast = (*Unary)(nil)
var _ Ast = (*Atom)(nil)
var _ Ast = (*Array)(nil)
var _ Ast = (*Dict)(nil)
var _ Ast = (*Var)(nil)
var _ Ast = (*Lookup)(nil)
var _ Ast = (*Function)(nil)
var _ Ast = (*Call)(nil)
var _ Ast = (*Return)(nil)
var _ Ast = (*If)(nil)
var _ Ast = (*While)(nil)
var _ Ast = (*Foreach)(nil)
var _ Ast = (*Global)(nil)

// Span carries the source position of the token that introduced a node.
type Span struct {
	At diag.Position
}

func (s Span) Pos() diag.Position {
	return s.At
}

func At(line, column int) Span {
	return Span{At: diag.Position{Line: line, Column: column}}
}

type AtomType uint8

const (
	Number AtomType = 1
	String AtomType = 2
	Bool   AtomType = 3
)

type Program struct {
	Span
	Statements []Ast
}

type Block struct {
	Span
	Statements []Ast
}

// Assign binds Value to Target, which is either a *Var or a *Lookup.
type Assign struct {
	Span
	Target Ast
	Value  Ast
}

type Binary struct {
	Span
	Left  Ast
	Op    string
	Right Ast
}

type Unary struct {
	Span
	Op      string
	Operand Ast
}

type Atom struct {
	Span
	Type   AtomType
	Lexeme string
}

type Array struct {
	Span
	Elems []Ast
}

type Entry struct {
	Key   Ast
	Value Ast
}

type Dict struct {
	Span
	Entries []Entry
}

type Var struct {
	Span
	Name string
}

type Lookup struct {
	Span
	Target Ast
	Key    Ast
}

type Param struct {
	Name    string
	Default mo.Option[Ast]
}

type Function struct {
	Span
	Params []Param
	Body   *Block
}

func (f *Function) ParamNames() []string {
	ret := make([]string, len(f.Params))
	for i, p := range f.Params {
		ret[i] = p.Name
	}
	return ret
}

type Call struct {
	Span
	Callee Ast
	Args   []Ast
}

type Return struct {
	Span
	Value mo.Option[Ast]
}

// If holds an optional else branch that is either a *Block or a nested *If.
type If struct {
	Span
	Cond Ast
	Then *Block
	Else mo.Option[Ast]
}

type While struct {
	Span
	Cond Ast
	Body *Block
}

type Foreach struct {
	Span
	On    Ast
	Key   mo.Option[string]
	Value string
	Body  *Block
}

type Global struct {
	Span
	Names []string
}

func (p *Program) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitProgram(p.Statements)
}

func (p *Program) AcceptString(v VisitorString) string {
	return v.VisitProgram(p.Statements)
}

func (b *Block) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitBlock(b.Statements)
}

func (b *Block) AcceptString(v VisitorString) string {
	return v.VisitBlock(b.Statements)
}

func (a *Assign) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitAssign(a.Target, a.Value)
}

func (a *Assign) AcceptString(v VisitorString) string {
	return v.VisitAssign(a.Target, a.Value)
}

func (b *Binary) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitBinary(b.Left, b.Op, b.Right)
}

func (b *Binary) AcceptString(v VisitorString) string {
	return v.VisitBinary(b.Left, b.Op, b.Right)
}

func (u *Unary) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitUnary(u.Op, u.Operand)
}

func (u *Unary) AcceptString(v VisitorString) string {
	return v.VisitUnary(u.Op, u.Operand)
}

func (a *Atom) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitAtom(a.Type, a.Lexeme)
}

func (a *Atom) AcceptString(v VisitorString) string {
	return v.VisitAtom(a.Type, a.Lexeme)
}

func (a *Array) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitArray(a.Elems)
}

func (a *Array) AcceptString(v VisitorString) string {
	return v.VisitArray(a.Elems)
}

func (d *Dict) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitDict(d.Entries)
}

func (d *Dict) AcceptString(v VisitorString) string {
	return v.VisitDict(d.Entries)
}

func (r *Var) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitVar(r.Name)
}

func (r *Var) AcceptString(v VisitorString) string {
	return v.VisitVar(r.Name)
}

func (l *Lookup) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitLookup(l.Target, l.Key)
}

func (l *Lookup) AcceptString(v VisitorString) string {
	return v.VisitLookup(l.Target, l.Key)
}

func (f *Function) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitFunction(f)
}

func (f *Function) AcceptString(v VisitorString) string {
	return v.VisitFunction(f)
}

func (c *Call) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitCall(c.Callee, c.Args)
}

func (c *Call) AcceptString(v VisitorString) string {
	return v.VisitCall(c.Callee, c.Args)
}

func (r *Return) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitReturn(r.Value)
}

func (r *Return) AcceptString(v VisitorString) string {
	return v.VisitReturn(r.Value)
}

func (i *If) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitIf(i.Cond, i.Then, i.Else)
}

func (i *If) AcceptString(v VisitorString) string {
	return v.VisitIf(i.Cond, i.Then, i.Else)
}

func (w *While) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitWhile(w.Cond, w.Body)
}

func (w *While) AcceptString(v VisitorString) string {
	return v.VisitWhile(w.Cond, w.Body)
}

func (f *Foreach) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitForeach(f.On, f.Key, f.Value, f.Body)
}

func (f *Foreach) AcceptString(v VisitorString) string {
	return v.VisitForeach(f.On, f.Key, f.Value, f.Body)
}

func (g *Global) AcceptValue(v VisitorValue) (value.Value, error) {
	return v.VisitGlobal(g.Names)
}

func (g *Global) AcceptString(v VisitorString) string {
	return v.VisitGlobal(g.Names)
}
