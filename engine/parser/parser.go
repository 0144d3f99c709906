package parser

import (
	"github.com/samber/mo"

	"zemscript/engine/ast"
	"zemscript/lib/diag"
	"zemscript/lib/value"
)

// Parser is a recursive-descent parser producing an *ast.Program.
type Parser struct {
	tokens []Token
	cur    int
	end    Token
}

func NewParser(tokens []Token) *Parser {
	filtered := make([]Token, 0, len(tokens))
	end := Token{Pos: diag.Position{Line: 1, Column: 1}, Type: EOF}
	for _, t := range tokens {
		if t.Type == COMMENT {
			continue
		}
		filtered = append(filtered, t)
		end.Pos = t.Pos
	}
	return &Parser{tokens: filtered, end: end}
}

// Parse tokenizes and parses a whole program.
func Parse(src string) (*ast.Program, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Program()
}

func (p *Parser) peek(i int) Token {
	if p.cur+i-1 >= len(p.tokens) {
		return p.end
	}
	return p.tokens[p.cur+i-1]
}

func (p *Parser) lookAhead(i int) TokenType {
	return p.peek(i).Type
}

func (p *Parser) match(t TokenType) (Token, error) {
	tok := p.peek(1)
	if tok.Type == EOF {
		return tok, diag.NewIncomplete(diag.Parser, tok.Pos, "expecting type %s but reached end of input", t)
	}
	if tok.Type != t {
		return tok, diag.NewAt(diag.Parser, tok.Pos, "expecting type %s but got %s", t, tok.Type)
	}
	p.cur++
	return tok, nil
}

func span(t Token) ast.Span {
	return ast.Span{At: t.Pos}
}

func (p *Parser) Program() (*ast.Program, error) {
	prog := &ast.Program{Span: ast.At(1, 1)}
	for p.lookAhead(1) != EOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
	}
	return prog, nil
}

func (p *Parser) block() (*ast.Block, error) {
	lbrace, err := p.match(LBRACE)
	if err != nil {
		return nil, err
	}
	b := &ast.Block{Span: span(lbrace)}
	for p.lookAhead(1) != RBRACE {
		if p.lookAhead(1) == EOF {
			_, err = p.match(RBRACE)
			return nil, err
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, s)
	}
	if _, err = p.match(RBRACE); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Parser) endStatement(node ast.Ast) (ast.Ast, error) {
	if _, err := p.match(END_STATEMENT); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) statement() (ast.Ast, error) {
	switch p.lookAhead(1) {
	case FUNCTION:
		fn, err := p.function()
		if err != nil {
			return nil, err
		}
		if p.lookAhead(1) != LPAREN {
			_, err = p.match(LPAREN)
			return nil, err
		}
		call, err := p.callSuffix(fn)
		if err != nil {
			return nil, err
		}
		return p.endStatement(call)
	case VARIABLE:
		target, err := p.target()
		if err != nil {
			return nil, err
		}
		if p.lookAhead(1) == LPAREN {
			call, err := p.callSuffix(target)
			if err != nil {
				return nil, err
			}
			return p.endStatement(call)
		}
		assign, err := p.match(ASSIGN)
		if err != nil {
			return nil, err
		}
		val, err := p.expression()
		if err != nil {
			return nil, err
		}
		return p.endStatement(&ast.Assign{Span: span(assign), Target: target, Value: val})
	case RETURN:
		ret, _ := p.match(RETURN)
		if p.lookAhead(1) == END_STATEMENT {
			return p.endStatement(&ast.Return{Span: span(ret), Value: mo.None[ast.Ast]()})
		}
		val, err := p.expression()
		if err != nil {
			return nil, err
		}
		return p.endStatement(&ast.Return{Span: span(ret), Value: mo.Some(val)})
	case GLOBAL:
		return p.global()
	case IF:
		return p._if()
	case WHILE:
		return p._while()
	case FOR_EACH:
		return p.foreach()
	}
	tok := p.peek(1)
	return nil, diag.NewAt(diag.Parser, tok.Pos, "unexpected token %s", tok)
}

func (p *Parser) global() (ast.Ast, error) {
	g, _ := p.match(GLOBAL)
	node := &ast.Global{Span: span(g)}
	for {
		name, err := p.match(VARIABLE)
		if err != nil {
			return nil, err
		}
		node.Names = append(node.Names, name.Text)
		if p.lookAhead(1) != COMMA {
			break
		}
		p.cur++
	}
	return p.endStatement(node)
}

func (p *Parser) condition() (ast.Ast, error) {
	if _, err := p.match(LPAREN); err != nil {
		return nil, err
	}
	test, err := p.boolExpr()
	if err != nil {
		return nil, err
	}
	if _, err = p.match(RPAREN); err != nil {
		return nil, err
	}
	return test, nil
}

func (p *Parser) _if() (ast.Ast, error) {
	tok, _ := p.match(IF)
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Span: span(tok), Cond: test, Then: then, Else: mo.None[ast.Ast]()}
	if p.lookAhead(1) != ELSE {
		return node, nil
	}
	p.cur++
	var els ast.Ast
	if p.lookAhead(1) == IF {
		els, err = p._if()
	} else {
		els, err = p.block()
	}
	if err != nil {
		return nil, err
	}
	node.Else = mo.Some(els)
	return node, nil
}

func (p *Parser) _while() (ast.Ast, error) {
	tok, _ := p.match(WHILE)
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.While{Span: span(tok), Cond: test, Body: body}, nil
}

func (p *Parser) foreach() (ast.Ast, error) {
	tok, _ := p.match(FOR_EACH)
	if _, err := p.match(LPAREN); err != nil {
		return nil, err
	}
	on, err := p.match(VARIABLE)
	if err != nil {
		return nil, err
	}
	if _, err = p.match(AS); err != nil {
		return nil, err
	}
	val, err := p.match(VARIABLE)
	if err != nil {
		return nil, err
	}
	node := &ast.Foreach{
		Span:  span(tok),
		On:    &ast.Var{Span: span(on), Name: on.Text},
		Key:   mo.None[string](),
		Value: val.Text,
	}
	if p.lookAhead(1) == COLON {
		p.cur++
		v, err := p.match(VARIABLE)
		if err != nil {
			return nil, err
		}
		node.Key = mo.Some(val.Text)
		node.Value = v.Text
	}
	if _, err = p.match(RPAREN); err != nil {
		return nil, err
	}
	if node.Body, err = p.block(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) array() (ast.Ast, error) {
	tok, _ := p.match(LBRACKET)
	node := &ast.Array{Span: span(tok)}
	if p.lookAhead(1) != RBRACKET {
		for {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			node.Elems = append(node.Elems, e)
			if p.lookAhead(1) != COMMA {
				break
			}
			p.cur++
		}
	}
	if _, err := p.match(RBRACKET); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) dictionary() (ast.Ast, error) {
	tok, _ := p.match(LBRACE)
	node := &ast.Dict{Span: span(tok)}
	if p.lookAhead(1) != RBRACE {
		for {
			k, err := p.key()
			if err != nil {
				return nil, err
			}
			if _, err = p.match(COLON); err != nil {
				return nil, err
			}
			v, err := p.expression()
			if err != nil {
				return nil, err
			}
			node.Entries = append(node.Entries, ast.Entry{Key: k, Value: v})
			if p.lookAhead(1) != COMMA {
				break
			}
			p.cur++
		}
	}
	if _, err := p.match(RBRACE); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) key() (ast.Ast, error) {
	if p.lookAhead(1) == STRING_LITERAL {
		t, _ := p.match(STRING_LITERAL)
		return &ast.Atom{Span: span(t), Type: ast.String, Lexeme: t.Text}, nil
	}
	return p.number()
}

func (p *Parser) number() (ast.Ast, error) {
	t, err := p.match(NUMBER)
	if err != nil {
		return nil, err
	}
	if _, err = value.ParseNumber(t.Text); err != nil {
		return nil, diag.At(err, t.Pos)
	}
	return &ast.Atom{Span: span(t), Type: ast.Number, Lexeme: t.Text}, nil
}

func (p *Parser) function() (*ast.Function, error) {
	tok, err := p.match(FUNCTION)
	if err != nil {
		return nil, err
	}
	if _, err = p.match(LPAREN); err != nil {
		return nil, err
	}
	fn := &ast.Function{Span: span(tok)}
	if p.lookAhead(1) != RPAREN {
		for {
			param, err := p.parameter()
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if p.lookAhead(1) != COMMA {
				break
			}
			p.cur++
		}
	}
	if _, err = p.match(RPAREN); err != nil {
		return nil, err
	}
	if fn.Body, err = p.block(); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parameter() (ast.Param, error) {
	name, err := p.match(VARIABLE)
	if err != nil {
		return ast.Param{}, err
	}
	if p.lookAhead(1) != ASSIGN {
		return ast.Param{Name: name.Text, Default: mo.None[ast.Ast]()}, nil
	}
	p.cur++
	def, err := p.expression()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: name.Text, Default: mo.Some(def)}, nil
}

func (p *Parser) expression() (ast.Ast, error) {
	switch p.lookAhead(1) {
	case FUNCTION:
		fn, err := p.function()
		if err != nil {
			return nil, err
		}
		if p.lookAhead(1) == LPAREN {
			return p.callSuffix(fn)
		}
		return fn, nil
	case LBRACKET:
		return p.array()
	case LBRACE:
		return p.dictionary()
	}
	return p.stringExpr()
}

func (p *Parser) stringExpr() (ast.Ast, error) {
	left, err := p.boolExpr()
	if err != nil {
		return nil, err
	}
	if p.lookAhead(1) != CONCAT {
		return left, nil
	}
	op, _ := p.match(CONCAT)
	right, err := p.stringExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Span: span(op), Left: left, Op: "~", Right: right}, nil
}

func (p *Parser) boolExpr() (ast.Ast, error) {
	left, err := p.boolTerm()
	if err != nil {
		return nil, err
	}
	if p.lookAhead(1) != OR {
		return left, nil
	}
	op, _ := p.match(OR)
	right, err := p.boolExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Span: span(op), Left: left, Op: "||", Right: right}, nil
}

func (p *Parser) boolTerm() (ast.Ast, error) {
	left, err := p.boolFactor()
	if err != nil {
		return nil, err
	}
	if p.lookAhead(1) != AND {
		return left, nil
	}
	op, _ := p.match(AND)
	right, err := p.boolTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Span: span(op), Left: left, Op: "&&", Right: right}, nil
}

func (p *Parser) boolFactor() (ast.Ast, error) {
	if p.lookAhead(1) != NOT {
		return p.relation()
	}
	op, _ := p.match(NOT)
	operand, err := p.relation()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Span: span(op), Op: "!", Operand: operand}, nil
}

var relations = map[TokenType]string{
	LESS_THAN:     "<",
	LESS_EQUAL:    "<=",
	GREATER_THAN:  ">",
	GREATER_EQUAL: ">=",
	EQUAL:         "==",
	NOT_EQUAL:     "!=",
}

func (p *Parser) relation() (ast.Ast, error) {
	left, err := p.sum()
	if err != nil {
		return nil, err
	}
	op, ok := relations[p.lookAhead(1)]
	if !ok {
		return left, nil
	}
	tok := p.peek(1)
	p.cur++
	right, err := p.sum()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Span: span(tok), Left: left, Op: op, Right: right}, nil
}

// binaryChain parses left-associative chains of the given operators.
func (p *Parser) binaryChain(ops map[TokenType]string, operand func() (ast.Ast, error)) (ast.Ast, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.lookAhead(1)]
		if !ok {
			return left, nil
		}
		tok := p.peek(1)
		p.cur++
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Span: span(tok), Left: left, Op: op, Right: right}
	}
}

var (
	sumOps    = map[TokenType]string{PLUS: "+", MINUS: "-"}
	termOps   = map[TokenType]string{MULTIPLY: "*", DIVIDE: "/", MOD: "%"}
	factorOps = map[TokenType]string{POWER: "^"}
)

func (p *Parser) sum() (ast.Ast, error) {
	return p.binaryChain(sumOps, p.term)
}

func (p *Parser) term() (ast.Ast, error) {
	return p.binaryChain(termOps, p.factor)
}

func (p *Parser) factor() (ast.Ast, error) {
	return p.binaryChain(factorOps, p.sign)
}

func (p *Parser) sign() (ast.Ast, error) {
	switch p.lookAhead(1) {
	case MINUS:
		op, _ := p.match(MINUS)
		operand, err := p.atom()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Span: span(op), Op: "-", Operand: operand}, nil
	case PLUS:
		p.cur++
	}
	return p.atom()
}

func (p *Parser) atom() (ast.Ast, error) {
	tok := p.peek(1)
	switch tok.Type {
	case NUMBER:
		return p.number()
	case STRING_LITERAL:
		p.cur++
		return &ast.Atom{Span: span(tok), Type: ast.String, Lexeme: tok.Text}, nil
	case TRUE, FALSE:
		p.cur++
		return &ast.Atom{Span: span(tok), Type: ast.Bool, Lexeme: tok.Text}, nil
	case LPAREN:
		p.cur++
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err = p.match(RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case VARIABLE:
		target, err := p.target()
		if err != nil {
			return nil, err
		}
		if p.lookAhead(1) == LPAREN {
			return p.callSuffix(target)
		}
		return target, nil
	case EOF:
		return nil, diag.NewIncomplete(diag.Parser, tok.Pos, "unexpected end of input")
	}
	return nil, diag.NewAt(diag.Parser, tok.Pos, "unexpected token %s", tok)
}

func (p *Parser) target() (ast.Ast, error) {
	name, err := p.match(VARIABLE)
	if err != nil {
		return nil, err
	}
	var node ast.Ast = &ast.Var{Span: span(name), Name: name.Text}
	for p.lookAhead(1) == LBRACKET {
		lbracket, _ := p.match(LBRACKET)
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err = p.match(RBRACKET); err != nil {
			return nil, err
		}
		node = &ast.Lookup{Span: span(lbracket), Target: node, Key: key}
	}
	return node, nil
}

// callSuffix parses one or more argument lists applied to callee, so
// f()() calls the result of f().
func (p *Parser) callSuffix(callee ast.Ast) (ast.Ast, error) {
	first := true
	for p.lookAhead(1) == LPAREN {
		lparen, _ := p.match(LPAREN)
		call := &ast.Call{Span: span(lparen), Callee: callee}
		if first {
			call.Span = ast.Span{At: callee.Pos()}
			first = false
		}
		if p.lookAhead(1) != RPAREN {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if p.lookAhead(1) != COMMA {
					break
				}
				p.cur++
			}
		}
		if _, err := p.match(RPAREN); err != nil {
			return nil, err
		}
		callee = call
	}
	return callee, nil
}
