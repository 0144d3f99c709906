package diag

import (
	"errors"
	"fmt"
)

// Position is a 1-based line and column in the script source.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

type Kind uint8

const (
	Unknown Kind = iota
	UnsetVariable
	InvalidType
	TypeMismatch
	InvalidFunction
	Arithmetic
	Lexer
	Parser
)

func (k Kind) String() string {
	switch k {
	case UnsetVariable:
		return "unset variable"
	case InvalidType:
		return "invalid type"
	case TypeMismatch:
		return "type mismatch"
	case InvalidFunction:
		return "invalid function"
	case Arithmetic:
		return "arithmetic"
	case Lexer:
		return "lexer"
	case Parser:
		return "parser"
	default:
		return "unknown"
	}
}

// Error is the single failure type raised while lexing, parsing or
// evaluating a script. Pos is the zero Position until the evaluator
// attaches the position of the node that triggered it.
type Error struct {
	Kind Kind
	Pos  Position
	Msg  string
	// Incomplete is set by the front end when the source ended before the
	// construct being read was finished.
	Incomplete bool
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NewAt(kind Kind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// NewIncomplete reports that the source ended too early at pos.
func NewIncomplete(kind Kind, pos Position, format string, args ...interface{}) *Error {
	e := NewAt(kind, pos, format, args...)
	e.Incomplete = true
	return e
}

// At tags err with pos unless it already carries a position. Errors that
// are not *Error are wrapped as Unknown so every failure leaving the
// evaluator has a location.
func At(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		if de.Pos.IsValid() || !pos.IsValid() {
			return err
		}
		return &Error{Kind: de.Kind, Pos: pos, Msg: de.Msg, Incomplete: de.Incomplete}
	}
	return &Error{Kind: Unknown, Pos: pos, Msg: err.Error()}
}

func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Unknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PosOf returns the position attached to err, if any.
func PosOf(err error) (Position, bool) {
	var de *Error
	if errors.As(err, &de) && de.Pos.IsValid() {
		return de.Pos, true
	}
	return Position{}, false
}

// IsIncomplete reports whether err means the source ended too early, as
// opposed to being malformed.
func IsIncomplete(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Incomplete
}
