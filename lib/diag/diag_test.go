package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_At(t *testing.T) {
	err := New(TypeMismatch, "type mismatch - expected type '%s' but got type '%s'", "number", "string")
	assert.Equal(t, "type mismatch - expected type 'number' but got type 'string'", err.Error())

	tagged := At(err, Position{Line: 2, Column: 7})
	assert.Equal(t, "line 2, column 7: type mismatch - expected type 'number' but got type 'string'", tagged.Error())
	assert.True(t, IsKind(tagged, TypeMismatch))

	// the first position wins
	again := At(tagged, Position{Line: 9, Column: 9})
	pos, ok := PosOf(again)
	assert.True(t, ok)
	assert.Equal(t, Position{Line: 2, Column: 7}, pos)

	// the untagged error is left as is
	_, ok = PosOf(err)
	assert.False(t, ok)
}

func TestError_AtForeignError(t *testing.T) {
	tagged := At(fmt.Errorf("boom"), Position{Line: 1, Column: 1})
	assert.Equal(t, Unknown, KindOf(tagged))
	assert.Equal(t, "line 1, column 1: boom", tagged.Error())
	assert.Nil(t, At(nil, Position{Line: 1, Column: 1}))
}

func TestError_As(t *testing.T) {
	wrapped := fmt.Errorf("while running: %w", NewAt(UnsetVariable, Position{Line: 3, Column: 4}, "variable 'x' is not set"))
	var de *Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, UnsetVariable, de.Kind)
	assert.Equal(t, "unset variable", de.Kind.String())
	assert.False(t, IsKind(nil, UnsetVariable))
}

func TestError_Incomplete(t *testing.T) {
	err := NewIncomplete(Parser, Position{Line: 1, Column: 6}, "unexpected end of input")
	assert.True(t, IsIncomplete(err))
	assert.True(t, IsIncomplete(fmt.Errorf("parse: %w", err)))
	untagged := &Error{Kind: Lexer, Msg: "expecting */ but found end of file", Incomplete: true}
	assert.True(t, IsIncomplete(At(untagged, Position{Line: 2, Column: 3})))
	assert.False(t, IsIncomplete(NewAt(Parser, Position{Line: 1, Column: 1}, "unexpected token")))
	assert.False(t, IsIncomplete(nil))
}
