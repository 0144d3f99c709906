package parser

import (
	"strings"

	"zemscript/lib/diag"
)

const eof = rune(-1)

// Lexer splits source text into tokens, tracking 1-based line and column
// numbers. Comments are returned as COMMENT tokens; the parser drops them.
type Lexer struct {
	src    []rune
	offset int
	line   int
	column int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, column: 1}
}

// Tokenize returns every token of src, excluding the trailing EOF.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var ret []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		if t.Type == EOF {
			return ret, nil
		}
		ret = append(ret, t)
	}
}

func (l *Lexer) peek(i int) rune {
	if l.offset+i-1 >= len(l.src) {
		return eof
	}
	return l.src[l.offset+i-1]
}

func (l *Lexer) read() rune {
	c := l.peek(1)
	if c == eof {
		return eof
	}
	l.offset++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) pos() diag.Position {
	return diag.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return diag.NewAt(diag.Lexer, l.pos(), format, args...)
}

func (l *Lexer) match(c rune) error {
	if l.peek(1) != c {
		if l.peek(1) == eof {
			return diag.NewIncomplete(diag.Lexer, l.pos(), "expected '%c' but got 'END_OF_FILE'", c)
		}
		return l.errorf("expected '%c' but got '%c'", c, l.peek(1))
	}
	l.read()
	return nil
}

func (l *Lexer) token(t TokenType, text string) (Token, error) {
	pos := l.pos()
	for _, c := range text {
		if err := l.match(c); err != nil {
			return Token{}, err
		}
	}
	return Token{Pos: pos, Type: t, Text: text}, nil
}

func (l *Lexer) Next() (Token, error) {
	c := l.peek(1)
	for c == ' ' || c == '\t' || c == '\r' || c == '\n' {
		l.read()
		c = l.peek(1)
	}
	switch c {
	case eof:
		return Token{Pos: l.pos(), Type: EOF}, nil
	case ';':
		return l.token(END_STATEMENT, ";")
	case '+':
		return l.token(PLUS, "+")
	case '-':
		return l.token(MINUS, "-")
	case '*':
		return l.token(MULTIPLY, "*")
	case '/':
		switch l.peek(2) {
		case '/':
			return l.lineComment()
		case '*':
			return l.blockComment()
		}
		return l.token(DIVIDE, "/")
	case '%':
		return l.token(MOD, "%")
	case '^':
		return l.token(POWER, "^")
	case ',':
		return l.token(COMMA, ",")
	case '~':
		return l.token(CONCAT, "~")
	case ':':
		return l.token(COLON, ":")
	case '(':
		return l.token(LPAREN, "(")
	case ')':
		return l.token(RPAREN, ")")
	case '{':
		return l.token(LBRACE, "{")
	case '}':
		return l.token(RBRACE, "}")
	case '[':
		return l.token(LBRACKET, "[")
	case ']':
		return l.token(RBRACKET, "]")
	case '=':
		if l.peek(2) == '=' {
			return l.token(EQUAL, "==")
		}
		return l.token(ASSIGN, "=")
	case '|':
		return l.token(OR, "||")
	case '&':
		return l.token(AND, "&&")
	case '!':
		if l.peek(2) == '=' {
			return l.token(NOT_EQUAL, "!=")
		}
		return l.token(NOT, "!")
	case '<':
		if l.peek(2) == '=' {
			return l.token(LESS_EQUAL, "<=")
		}
		return l.token(LESS_THAN, "<")
	case '>':
		if l.peek(2) == '=' {
			return l.token(GREATER_EQUAL, ">=")
		}
		return l.token(GREATER_THAN, ">")
	case '\'', '"':
		return l.stringLiteral(c)
	}
	switch {
	case isDigit(c):
		return l.number()
	case isLetter(c):
		return l.identifier()
	}
	return Token{}, l.errorf("unexpected '%c' character", c)
}

func (l *Lexer) lineComment() (Token, error) {
	pos := l.pos()
	l.read()
	l.read()
	sb := strings.Builder{}
	for c := l.peek(1); c != '\r' && c != '\n' && c != eof; c = l.peek(1) {
		sb.WriteRune(l.read())
	}
	return Token{Pos: pos, Type: COMMENT, Text: sb.String()}, nil
}

func (l *Lexer) blockComment() (Token, error) {
	pos := l.pos()
	l.read()
	l.read()
	sb := strings.Builder{}
	for !(l.peek(1) == '*' && l.peek(2) == '/') {
		if l.peek(1) == eof {
			return Token{}, diag.NewIncomplete(diag.Lexer, l.pos(), "expecting */ but found end of file")
		}
		sb.WriteRune(l.read())
	}
	l.read()
	l.read()
	return Token{Pos: pos, Type: COMMENT, Text: sb.String()}, nil
}

func (l *Lexer) number() (Token, error) {
	pos := l.pos()
	sb := strings.Builder{}
	if l.peek(1) == '0' && strings.ContainsRune("xXoObB", l.peek(2)) {
		sb.WriteRune(l.read())
		sb.WriteRune(l.read())
		for isHexDigit(l.peek(1)) {
			sb.WriteRune(l.read())
		}
		return Token{Pos: pos, Type: NUMBER, Text: sb.String()}, nil
	}
	decimal := false
	for c := l.peek(1); isDigit(c) || c == '.'; c = l.peek(1) {
		if c == '.' {
			if decimal {
				return Token{}, l.errorf("unexpected '.' character")
			}
			decimal = true
		}
		sb.WriteRune(l.read())
	}
	return Token{Pos: pos, Type: NUMBER, Text: sb.String()}, nil
}

func (l *Lexer) identifier() (Token, error) {
	pos := l.pos()
	sb := strings.Builder{}
	for c := l.peek(1); isLetter(c) || isDigit(c); c = l.peek(1) {
		sb.WriteRune(l.read())
	}
	word := sb.String()
	if t, ok := keywords[word]; ok {
		return Token{Pos: pos, Type: t, Text: word}, nil
	}
	return Token{Pos: pos, Type: VARIABLE, Text: word}, nil
}

func (l *Lexer) stringLiteral(quote rune) (Token, error) {
	pos := l.pos()
	l.read()
	sb := strings.Builder{}
	for c := l.peek(1); c != quote && c != eof; c = l.peek(1) {
		sb.WriteRune(l.read())
	}
	if err := l.match(quote); err != nil {
		return Token{}, err
	}
	return Token{Pos: pos, Type: STRING_LITERAL, Text: sb.String()}, nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
