package parser

import (
	"fmt"

	"zemscript/lib/diag"
)

type TokenType uint8

const (
	EOF TokenType = iota
	COMMENT
	END_STATEMENT
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	MOD
	POWER
	COMMA
	CONCAT
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	ASSIGN
	EQUAL
	NOT_EQUAL
	NOT
	LESS_THAN
	LESS_EQUAL
	GREATER_THAN
	GREATER_EQUAL
	AND
	OR
	STRING_LITERAL
	NUMBER
	VARIABLE
	TRUE
	FALSE
	IF
	ELSE
	WHILE
	FOR_EACH
	AS
	FUNCTION
	RETURN
	GLOBAL
)

var tokenNames = map[TokenType]string{
	EOF:            "EOF",
	COMMENT:        "COMMENT",
	END_STATEMENT:  "END_STATEMENT",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	MULTIPLY:       "MULTIPLY",
	DIVIDE:         "DIVIDE",
	MOD:            "MOD",
	POWER:          "POWER",
	COMMA:          "COMMA",
	CONCAT:         "CONCAT",
	COLON:          "COLON",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	LBRACE:         "LBRACE",
	RBRACE:         "RBRACE",
	LBRACKET:       "LBRACKET",
	RBRACKET:       "RBRACKET",
	ASSIGN:         "ASSIGN",
	EQUAL:          "EQUAL",
	NOT_EQUAL:      "NOT_EQUAL",
	NOT:            "NOT",
	LESS_THAN:      "LESS_THAN",
	LESS_EQUAL:     "LESS_EQUAL",
	GREATER_THAN:   "GREATER_THAN",
	GREATER_EQUAL:  "GREATER_EQUAL",
	AND:            "AND",
	OR:             "OR",
	STRING_LITERAL: "STRING_LITERAL",
	NUMBER:         "NUMBER",
	VARIABLE:       "VARIABLE",
	TRUE:           "TRUE",
	FALSE:          "FALSE",
	IF:             "IF",
	ELSE:           "ELSE",
	WHILE:          "WHILE",
	FOR_EACH:       "FOR_EACH",
	AS:             "AS",
	FUNCTION:       "FUNCTION",
	RETURN:         "RETURN",
	GLOBAL:         "GLOBAL",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

var keywords = map[string]TokenType{
	"true":     TRUE,
	"false":    FALSE,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"foreach":  FOR_EACH,
	"as":       AS,
	"function": FUNCTION,
	"return":   RETURN,
	"global":   GLOBAL,
}

type Token struct {
	Pos  diag.Position
	Type TokenType
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s,'%s'", t.Type, t.Text)
}
