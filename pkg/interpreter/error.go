// Package interpreter provides error handling for the robol interpreter.
package interpreter

import (
	"errors"
	"fmt"

	"github.com/zurustar/robol/pkg/compiler/ast"
)

// ErrorType represents the type of runtime error.
type ErrorType string

const (
	ErrorUnboundIdentifier ErrorType = "UNBOUND_IDENTIFIER"
	ErrorOutOfBounds       ErrorType = "OUT_OF_BOUNDS"
	ErrorInvariant         ErrorType = "INVARIANT"
	ErrorInvalidGrid       ErrorType = "INVALID_GRID"
	ErrorIterationLimit    ErrorType = "ITERATION_LIMIT"
)

// Sentinel errors for errors.Is. A *RuntimeError unwraps to the one
// matching its Type.
var (
	ErrUnboundIdentifier = errors.New("unbound identifier")
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrInvariant         = errors.New("interpreter invariant violated")
	ErrInvalidGrid       = errors.New("invalid grid")
	ErrIterationLimit    = errors.New("iteration limit exceeded")
)

var sentinels = map[ErrorType]error{
	ErrorUnboundIdentifier: ErrUnboundIdentifier,
	ErrorOutOfBounds:       ErrOutOfBounds,
	ErrorInvariant:         ErrInvariant,
	ErrorInvalidGrid:       ErrInvalidGrid,
	ErrorIterationLimit:    ErrIterationLimit,
}

// RuntimeError represents an error raised while executing a program.
// All runtime errors are fatal.
type RuntimeError struct {
	Type    ErrorType
	Message string
	Line    int // 1-indexed, 0 if unknown
	Column  int
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s at line %d, column %d", e.Type, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the sentinel error for e.Type.
func (e *RuntimeError) Unwrap() error {
	return sentinels[e.Type]
}

// NewRuntimeError creates a RuntimeError located at node, which may be nil.
func NewRuntimeError(errType ErrorType, node ast.Node, format string, args ...any) *RuntimeError {
	err := &RuntimeError{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
	if node != nil {
		err.Line, err.Column = node.Pos()
	}
	return err
}

func unboundIdentifier(ident *ast.Identifier) *RuntimeError {
	return NewRuntimeError(ErrorUnboundIdentifier, ident, "unbound identifier %q", ident.Name)
}

func invariant(node ast.Node, format string, args ...any) *RuntimeError {
	return NewRuntimeError(ErrorInvariant, node, format, args...)
}
