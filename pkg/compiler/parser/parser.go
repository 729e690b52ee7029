// Package parser provides syntax analysis for robol scripts.
//
// The statement parser dispatches on the leading keyword of each statement
// and hands expressions to ParseExpression. Loop bodies are collected by
// stacking statement buffers: do pushes a buffer, } pops it into a Loop.
package parser

import (
	"strings"

	"github.com/zurustar/robol/pkg/compiler/ast"
	"github.com/zurustar/robol/pkg/compiler/lexer"
)

const (
	clockwise        = "clockwise"
	counterclockwise = "counterclockwise"
)

// block is an open do ... } body.
type block struct {
	token      lexer.Token // the do token
	statements []ast.Statement
}

// Parser parses a token stream into a Program.
type Parser struct {
	tokens []lexer.Token
	last   lexer.Token // most recently consumed token

	program *ast.Program
	blocks  []*block
}

// New creates a new Parser.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses source.
func Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// ParseProgram parses the entire program. Parsing stops at the first error.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	p.program = &ast.Program{Statements: []ast.Statement{}}

	if len(p.tokens) == 0 {
		return nil, &Error{Message: "empty program: expected size", Line: 1, Column: 1}
	}
	if p.tokens[0].Type != lexer.TOKEN_SIZE {
		return nil, errorAt(p.tokens[0], "program must begin with size, got %q", p.tokens[0].Literal)
	}

	for len(p.tokens) > 0 {
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}

	if len(p.blocks) > 0 {
		open := p.blocks[len(p.blocks)-1]
		return nil, errorAt(open.token, "unterminated do block: missing }")
	}

	return p.program, nil
}

func (p *Parser) parseStatement() error {
	tok := p.next()

	switch tok.Type {
	case lexer.TOKEN_SIZE:
		return p.parseSize(tok)
	case lexer.TOKEN_LET:
		return p.parseBinding(tok)
	case lexer.TOKEN_START:
		return p.parseStart(tok)
	case lexer.TOKEN_TURN:
		return p.parseTurn(tok)
	case lexer.TOKEN_STEP:
		return p.parseStep(tok)
	case lexer.TOKEN_DO:
		p.parseDo(tok)
		return nil
	case lexer.TOKEN_END:
		return p.parseLoopEnd(tok)
	case lexer.TOKEN_STOP:
		p.add(&ast.Stop{Token: tok})
		return nil
	}

	if tok.Type == lexer.TOKEN_WORD {
		if stmt, ok := parseAssignment(tok); ok {
			p.add(stmt)
			return nil
		}
	}

	return errorAt(tok, "unexpected %q: expected a statement", tok.Literal)
}

// parseSize parses: size W*H
func (p *Parser) parseSize(tok lexer.Token) error {
	if p.program.Grid != nil {
		return errorAt(tok, "duplicate size: grid already declared at line %d", p.program.Grid.Token.Line)
	}

	dims, err := p.expect(tok, "grid dimensions")
	if err != nil {
		return err
	}

	parts := strings.Split(dims.Literal, "*")
	if len(parts) != 2 {
		return errorAt(dims, "size expects WIDTH*HEIGHT, got %q", dims.Literal)
	}

	east, err := parseText(parts[0], dims)
	if err != nil {
		return err
	}
	north, err := parseText(parts[1], dims)
	if err != nil {
		return err
	}

	p.program.Grid = &ast.Grid{Token: tok, East: east, North: north}
	return nil
}

// parseBinding parses: let NAME = VALUE
// The lexer only splits on whitespace and commas, so let i=5 arrives as
// the single word i=5 and is split here.
func (p *Parser) parseBinding(tok lexer.Token) error {
	nameTok, err := p.expect(tok, "binding name")
	if err != nil {
		return err
	}

	name, valueText, inline := strings.Cut(nameTok.Literal, "=")
	if !isIdentifier(name) {
		return errorAt(nameTok, "invalid binding name %q", name)
	}
	ident := &ast.Identifier{Token: nameTok, Name: name}

	if !inline {
		eq, err := p.expect(tok, "=")
		if err != nil {
			return err
		}
		if !strings.HasPrefix(eq.Literal, "=") {
			return errorAt(eq, "expected = after %q, got %q", name, eq.Literal)
		}
		valueText = strings.TrimPrefix(eq.Literal, "=")
		nameTok = eq
	}

	var value ast.Expression
	if valueText != "" {
		value, err = parseText(valueText, nameTok)
	} else {
		value, err = p.parseExpression()
	}
	if err != nil {
		return err
	}

	p.add(&ast.Binding{Token: tok, Name: ident, Value: value})
	return nil
}

// parseStart parses: start E,N
// A bare comma separates tokens, so E and N usually arrive as two tokens;
// a parenthesized (E,N) arrives as one.
func (p *Parser) parseStart(tok lexer.Token) error {
	first, err := p.expect(tok, "start position")
	if err != nil {
		return err
	}

	var east, north ast.Expression
	if eText, nText, ok := strings.Cut(first.Literal, ","); ok {
		if east, err = parseText(eText, first); err != nil {
			return err
		}
		if north, err = parseText(nText, first); err != nil {
			return err
		}
	} else {
		p.tokens = append([]lexer.Token{first}, p.tokens...)
		if east, err = p.parseExpression(); err != nil {
			return err
		}
		if north, err = p.parseExpression(); err != nil {
			return err
		}
	}

	p.add(&ast.Start{Token: tok, East: east, North: north})
	return nil
}

// parseTurn parses: turn clockwise | turn counterclockwise
func (p *Parser) parseTurn(tok lexer.Token) error {
	dirTok, err := p.expect(tok, "turn direction")
	if err != nil {
		return err
	}

	var dir ast.Direction
	switch dirTok.Literal {
	case clockwise:
		dir = ast.CLOCKWISE
	case counterclockwise:
		dir = ast.COUNTERCLOCKWISE
	default:
		return errorAt(dirTok, "turn expects %s or %s, got %q", clockwise, counterclockwise, dirTok.Literal)
	}

	p.add(&ast.Turn{Token: tok, Direction: dir})
	return nil
}

// parseStep parses: step EXPR
func (p *Parser) parseStep(tok lexer.Token) error {
	steps, err := p.parseExpression()
	if err != nil {
		return err
	}
	p.add(&ast.Step{Token: tok, Steps: steps})
	return nil
}

// parseDo opens a loop body. An optional { after do is skipped.
func (p *Parser) parseDo(tok lexer.Token) {
	if p.peekLiteral("{") {
		p.next()
	}
	p.blocks = append(p.blocks, &block{token: tok, statements: []ast.Statement{}})
}

// parseLoopEnd closes the innermost loop body: } [while] COND
func (p *Parser) parseLoopEnd(tok lexer.Token) error {
	if len(p.blocks) == 0 {
		return errorAt(tok, "unmatched }: no open do block")
	}
	if p.peekLiteral("while") {
		p.next()
	}

	cond, err := p.parseExpression()
	if err != nil {
		return err
	}

	open := p.blocks[len(p.blocks)-1]
	p.blocks = p.blocks[:len(p.blocks)-1]

	p.add(&ast.Loop{
		Token:     open.token,
		Body:      open.statements,
		Condition: &ast.BooleanWrapper{Expression: cond},
	})
	return nil
}

// parseAssignment recognizes NAME++ and NAME--.
func parseAssignment(tok lexer.Token) (*ast.Assignment, bool) {
	var op ast.AssignOp
	switch {
	case strings.HasSuffix(tok.Literal, "++"):
		op = ast.INC
	case strings.HasSuffix(tok.Literal, "--"):
		op = ast.DEC
	default:
		return nil, false
	}

	name := tok.Literal[:len(tok.Literal)-2]
	if !isIdentifier(name) {
		return nil, false
	}

	return &ast.Assignment{
		Token: tok,
		Name:  &ast.Identifier{Token: tok, Name: name},
		Op:    op,
	}, true
}

// parseExpression parses an expression from the remaining tokens.
func (p *Parser) parseExpression() (ast.Expression, error) {
	expr, rest, err := parseExpression(p.tokens, p.last)
	if err != nil {
		return nil, err
	}
	p.tokens = rest
	return expr, nil
}

// add appends stmt to the innermost open block, or to the program.
func (p *Parser) add(stmt ast.Statement) {
	if n := len(p.blocks); n > 0 {
		p.blocks[n-1].statements = append(p.blocks[n-1].statements, stmt)
		return
	}
	p.program.Statements = append(p.program.Statements, stmt)
}

func (p *Parser) next() lexer.Token {
	tok := p.tokens[0]
	p.tokens = p.tokens[1:]
	p.last = tok
	return tok
}

// expect consumes the token required after keyword.
func (p *Parser) expect(keyword lexer.Token, what string) (lexer.Token, error) {
	if len(p.tokens) == 0 {
		return lexer.Token{}, errorAt(keyword, "%s expects %s, got end of input", keyword.Literal, what)
	}
	if p.tokens[0].Type.IsKeyword() {
		return lexer.Token{}, errorAt(p.tokens[0], "%s expects %s, got keyword %q", keyword.Literal, what, p.tokens[0].Literal)
	}
	return p.next(), nil
}

func (p *Parser) peekLiteral(literal string) bool {
	return len(p.tokens) > 0 && p.tokens[0].Literal == literal
}
