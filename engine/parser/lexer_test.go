package parser

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zemscript/lib/diag"
)

func tok(line, column int, t TokenType, text string) Token {
	return Token{Pos: diag.Position{Line: line, Column: column}, Type: t, Text: text}
}

func verifyTokens(t *testing.T, src string, expected []Token) {
	actual, err := Tokenize(src)
	require.NoError(t, err)
	if diff := deep.Equal(expected, actual); diff != nil {
		t.Errorf("%s: %v", src, diff)
	}
}

func verifyTokenType(t *testing.T, src string, expected TokenType) {
	l := NewLexer(src)
	actual, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, expected, actual.Type, src)
}

func TestLexer_TokenTypes(t *testing.T) {
	scenarios := map[string]TokenType{
		"=": ASSIGN, "+": PLUS, "-": MINUS, "*": MULTIPLY, "/": DIVIDE, "^": POWER, "%": MOD,
		"~":  CONCAT,
		"&&": AND, "||": OR, "!": NOT,
		"<": LESS_THAN, "<=": LESS_EQUAL, "==": EQUAL, "!=": NOT_EQUAL, ">=": GREATER_EQUAL, ">": GREATER_THAN,
		"0": NUMBER, "1": NUMBER, "69": NUMBER, "0.01": NUMBER, "12345678901234567890.1234567890": NUMBER,
		"0x3BE": NUMBER, "0o52": NUMBER, "0b101": NUMBER,
		"true": TRUE, "false": FALSE,
		"''": STRING_LITERAL, "'a'": STRING_LITERAL, `"hello"`: STRING_LITERAL,
		"if": IF, "else": ELSE, "while": WHILE, "foreach": FOR_EACH, "as": AS,
		"function": FUNCTION, "return": RETURN, "global": GLOBAL,
		"(": LPAREN, ")": RPAREN, "{": LBRACE, "}": RBRACE, "[": LBRACKET, "]": RBRACKET,
		",": COMMA, ":": COLON, ";": END_STATEMENT,
		"// note": COMMENT, "/* block */": COMMENT,
		"somevar": VARIABLE, "_x1": VARIABLE,
		"": EOF,
	}
	for src, expected := range scenarios {
		verifyTokenType(t, src, expected)
	}
}

func TestLexer_Errors(t *testing.T) {
	for _, src := range []string{"12.23.4", "#", "'unterminated", "/* open", "|x", "&"} {
		_, err := Tokenize(src)
		assert.Error(t, err, src)
		assert.True(t, diag.IsKind(err, diag.Lexer), src)
	}
	_, err := Tokenize("x = 1;\n  #")
	assert.EqualError(t, err, "line 2, column 3: unexpected '#' character")
}

func TestLexer_Expression(t *testing.T) {
	verifyTokens(t, "n = (3 + 12 * 2 ^ 4 >= 0) && 3 % 4 == 3;", []Token{
		tok(1, 1, VARIABLE, "n"),
		tok(1, 3, ASSIGN, "="),
		tok(1, 5, LPAREN, "("),
		tok(1, 6, NUMBER, "3"),
		tok(1, 8, PLUS, "+"),
		tok(1, 10, NUMBER, "12"),
		tok(1, 13, MULTIPLY, "*"),
		tok(1, 15, NUMBER, "2"),
		tok(1, 17, POWER, "^"),
		tok(1, 19, NUMBER, "4"),
		tok(1, 21, GREATER_EQUAL, ">="),
		tok(1, 24, NUMBER, "0"),
		tok(1, 25, RPAREN, ")"),
		tok(1, 27, AND, "&&"),
		tok(1, 30, NUMBER, "3"),
		tok(1, 32, MOD, "%"),
		tok(1, 34, NUMBER, "4"),
		tok(1, 36, EQUAL, "=="),
		tok(1, 39, NUMBER, "3"),
		tok(1, 40, END_STATEMENT, ";"),
	})
}

func TestLexer_Compact(t *testing.T) {
	verifyTokens(t, "132.567'hello'somevar", []Token{
		tok(1, 1, NUMBER, "132.567"),
		tok(1, 8, STRING_LITERAL, "hello"),
		tok(1, 15, VARIABLE, "somevar"),
	})
}

func TestLexer_FunctionDeclaration(t *testing.T) {
	verifyTokens(t, "greet = function() { println('hello'); }", []Token{
		tok(1, 1, VARIABLE, "greet"),
		tok(1, 7, ASSIGN, "="),
		tok(1, 9, FUNCTION, "function"),
		tok(1, 17, LPAREN, "("),
		tok(1, 18, RPAREN, ")"),
		tok(1, 20, LBRACE, "{"),
		tok(1, 22, VARIABLE, "println"),
		tok(1, 29, LPAREN, "("),
		tok(1, 30, STRING_LITERAL, "hello"),
		tok(1, 37, RPAREN, ")"),
		tok(1, 38, END_STATEMENT, ";"),
		tok(1, 40, RBRACE, "}"),
	})
}

func TestLexer_MultiLine(t *testing.T) {
	verifyTokens(t, "x = 1; // one\n/* two\nlines */ global x;", []Token{
		tok(1, 1, VARIABLE, "x"),
		tok(1, 3, ASSIGN, "="),
		tok(1, 5, NUMBER, "1"),
		tok(1, 6, END_STATEMENT, ";"),
		tok(1, 8, COMMENT, " one"),
		tok(2, 1, COMMENT, " two\nlines "),
		tok(3, 10, GLOBAL, "global"),
		tok(3, 17, VARIABLE, "x"),
		tok(3, 18, END_STATEMENT, ";"),
	})
}
