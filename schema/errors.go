package schema

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Error is a schema validation failure. Line and Column refer to the SDL
// source when the failing construct has a position.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (err *Error) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("schema: %s (line %d:%d)", err.Message, err.Line, err.Column)
	}
	return "schema: " + err.Message
}

func errorf(pos *ast.Position, format string, args ...any) *Error {
	err := &Error{Message: fmt.Sprintf(format, args...)}
	if pos != nil {
		err.Line = pos.Line
		err.Column = pos.Column
	}
	return err
}

// InputCycleError reports a cycle of non-nullable input object fields with
// no list level in between. Such a cycle has no finite value.
type InputCycleError struct {
	Path []string // type names along the cycle; first and last are equal
}

func (err *InputCycleError) Error() string {
	return "schema: cyclic non-nullable input objects: " + strings.Join(err.Path, " -> ")
}
