// Package interpreter provides expression evaluation for the robol interpreter.
package interpreter

import (
	"github.com/zurustar/robol/pkg/compiler/ast"
)

// Evaluate evaluates expr against the robot's bindings and returns its value.
// Relational operators yield 1 or 0. On error the evaluation stack is
// restored to its depth before the call.
func Evaluate(expr ast.Expression, r *Robot) (int64, error) {
	depth := len(r.stack)
	if err := r.eval(expr); err != nil {
		r.stack = r.stack[:depth]
		return 0, err
	}
	v, ok := r.pop()
	if !ok || len(r.stack) != depth {
		r.stack = r.stack[:min(depth, len(r.stack))]
		return 0, invariant(expr, "unbalanced evaluation stack")
	}
	return v, nil
}

// EvaluateCondition evaluates a loop condition: 0 is false, anything else true.
func EvaluateCondition(cond *ast.BooleanWrapper, r *Robot) (bool, error) {
	if cond == nil {
		return false, invariant(nil, "missing condition")
	}
	v, err := Evaluate(cond, r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// eval pushes exactly one value on success.
func (r *Robot) eval(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		r.push(e.Value)
		return nil

	case *ast.Identifier:
		v, ok := r.Lookup(e.Name)
		if !ok {
			return unboundIdentifier(e)
		}
		r.push(v)
		return nil

	case *ast.BinaryOp:
		if err := r.eval(e.Left); err != nil {
			return err
		}
		if err := r.eval(e.Right); err != nil {
			return err
		}
		right, ok1 := r.pop()
		left, ok2 := r.pop()
		if !ok1 || !ok2 {
			return invariant(e, "evaluation stack underflow")
		}
		v, err := apply(e, left, right)
		if err != nil {
			return err
		}
		r.push(v)
		return nil

	case *ast.BooleanWrapper:
		if e.Expression == nil {
			return invariant(nil, "empty condition")
		}
		if err := r.eval(e.Expression); err != nil {
			return err
		}
		v, _ := r.pop()
		r.push(boolToInt(v != 0))
		return nil

	default:
		return invariant(nil, "unknown expression %T", expr)
	}
}

func apply(op *ast.BinaryOp, left, right int64) (int64, error) {
	switch op.Operator {
	case ast.PLUS:
		return left + right, nil
	case ast.MINUS:
		return left - right, nil
	case ast.MULT:
		return left * right, nil
	case ast.LESS:
		return boolToInt(left < right), nil
	case ast.GREATER:
		return boolToInt(left > right), nil
	case ast.EQUALS:
		return boolToInt(left == right), nil
	default:
		return 0, invariant(op, "unknown operator %s", op.Operator)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
