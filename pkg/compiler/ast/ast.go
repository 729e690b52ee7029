// Package ast defines the syntax tree of a robol program.
//
// Expressions and statements are closed variant sets: only the types in
// this package implement Expression and Statement.
package ast

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/zurustar/robol/pkg/compiler/lexer"
)

// Node is the interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() (line, column int)
}

// Statement is the interface for all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression is the interface for all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Operator is a binary operator.
type Operator int

const (
	PLUS Operator = iota + 1
	MINUS
	MULT
	LESS
	GREATER
	EQUALS
)

var operatorSymbols = map[Operator]string{
	PLUS:    "+",
	MINUS:   "-",
	MULT:    "*",
	LESS:    "<",
	GREATER: ">",
	EQUALS:  "=",
}

// LookupOperator maps an operator symbol to its Operator.
func LookupOperator(symbol string) (Operator, bool) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return op, true
		}
	}
	return 0, false
}

func (o Operator) String() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// IsRelational reports whether the operator yields 1/0.
func (o Operator) IsRelational() bool {
	return o == LESS || o == GREATER || o == EQUALS
}

// Direction is the rotation of a turn statement.
type Direction int

const (
	CLOCKWISE Direction = iota + 1
	COUNTERCLOCKWISE
)

func (d Direction) String() string {
	switch d {
	case CLOCKWISE:
		return "clockwise"
	case COUNTERCLOCKWISE:
		return "counterclockwise"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// AssignOp is the operation of an assignment statement.
type AssignOp int

const (
	INC AssignOp = iota + 1
	DEC
)

func (a AssignOp) String() string {
	switch a {
	case INC:
		return "++"
	case DEC:
		return "--"
	}
	return fmt.Sprintf("AssignOp(%d)", int(a))
}

// Program is the root node of the AST.
type Program struct {
	Grid       *Grid
	Statements []Statement
}

// TokenLiteral returns the literal value of the grid token.
func (p *Program) TokenLiteral() string {
	if p.Grid != nil {
		return p.Grid.TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	if p.Grid != nil {
		out.WriteString(p.Grid.String())
	}
	for _, s := range p.Statements {
		out.WriteString("\n")
		out.WriteString(s.String())
	}
	return out.String()
}

// Grid is the movement bound declared by size.
type Grid struct {
	Token lexer.Token
	East  Expression
	North Expression
}

func (g *Grid) TokenLiteral() string { return g.Token.Literal }
func (g *Grid) Pos() (int, int)      { return g.Token.Line, g.Token.Column }
func (g *Grid) String() string {
	return fmt.Sprintf("size %s*%s", g.East.String(), g.North.String())
}

// NumberLiteral is an integer constant.
type NumberLiteral struct {
	Token lexer.Token
	Value int64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() (int, int)      { return nl.Token.Line, nl.Token.Column }
func (nl *NumberLiteral) String() string       { return strconv.FormatInt(nl.Value, 10) }

// Identifier is a reference to a binding.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() (int, int)      { return i.Token.Line, i.Token.Column }
func (i *Identifier) String() string       { return i.Name }

// BinaryOp is a prefix binary expression such as (+ 1 2).
type BinaryOp struct {
	Token    lexer.Token // the operator token
	Operator Operator
	Left     Expression
	Right    Expression
}

func (bo *BinaryOp) expressionNode()      {}
func (bo *BinaryOp) TokenLiteral() string { return bo.Token.Literal }
func (bo *BinaryOp) Pos() (int, int)      { return bo.Token.Line, bo.Token.Column }
func (bo *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", bo.Operator, bo.Left.String(), bo.Right.String())
}

// BooleanWrapper normalizes an integer expression to a truth value.
type BooleanWrapper struct {
	Expression Expression
}

func (bw *BooleanWrapper) expressionNode()      {}
func (bw *BooleanWrapper) TokenLiteral() string { return bw.Expression.TokenLiteral() }
func (bw *BooleanWrapper) Pos() (int, int)      { return bw.Expression.Pos() }
func (bw *BooleanWrapper) String() string       { return bw.Expression.String() }

// Binding binds a name to a value.
// Example: let i = 5
type Binding struct {
	Token lexer.Token
	Name  *Identifier
	Value Expression
}

func (b *Binding) statementNode()       {}
func (b *Binding) TokenLiteral() string { return b.Token.Literal }
func (b *Binding) Pos() (int, int)      { return b.Token.Line, b.Token.Column }
func (b *Binding) String() string {
	return fmt.Sprintf("let %s = %s", b.Name.String(), b.Value.String())
}

// Start places the robot.
// Example: start 0,0
type Start struct {
	Token lexer.Token
	East  Expression
	North Expression
}

func (s *Start) statementNode()       {}
func (s *Start) TokenLiteral() string { return s.Token.Literal }
func (s *Start) Pos() (int, int)      { return s.Token.Line, s.Token.Column }
func (s *Start) String() string {
	return fmt.Sprintf("start %s,%s", s.East.String(), s.North.String())
}

// Turn rotates the robot by a quarter turn.
type Turn struct {
	Token     lexer.Token
	Direction Direction
}

func (t *Turn) statementNode()       {}
func (t *Turn) TokenLiteral() string { return t.Token.Literal }
func (t *Turn) Pos() (int, int)      { return t.Token.Line, t.Token.Column }
func (t *Turn) String() string       { return "turn " + t.Direction.String() }

// Step moves the robot along its orientation.
type Step struct {
	Token lexer.Token
	Steps Expression
}

func (s *Step) statementNode()       {}
func (s *Step) TokenLiteral() string { return s.Token.Literal }
func (s *Step) Pos() (int, int)      { return s.Token.Line, s.Token.Column }
func (s *Step) String() string       { return "step " + s.Steps.String() }

// Assignment increments or decrements a binding.
// Example: i++
type Assignment struct {
	Token lexer.Token
	Name  *Identifier
	Op    AssignOp
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() (int, int)      { return a.Token.Line, a.Token.Column }
func (a *Assignment) String() string       { return a.Name.String() + a.Op.String() }

// Loop is a post-condition loop: the body runs before the condition is tested.
// Example: do ... } (< i 5)
type Loop struct {
	Token     lexer.Token // the do token
	Body      []Statement
	Condition *BooleanWrapper
}

func (l *Loop) statementNode()       {}
func (l *Loop) TokenLiteral() string { return l.Token.Literal }
func (l *Loop) Pos() (int, int)      { return l.Token.Line, l.Token.Column }
func (l *Loop) String() string {
	var out bytes.Buffer
	out.WriteString("do")
	for _, s := range l.Body {
		out.WriteString("\n\t")
		out.WriteString(s.String())
	}
	out.WriteString("\n} ")
	if l.Condition != nil {
		out.WriteString(l.Condition.String())
	}
	return out.String()
}

// Stop reports the current position.
type Stop struct {
	Token lexer.Token
}

func (s *Stop) statementNode()       {}
func (s *Stop) TokenLiteral() string { return s.Token.Literal }
func (s *Stop) Pos() (int, int)      { return s.Token.Line, s.Token.Column }
func (s *Stop) String() string       { return "stop" }
