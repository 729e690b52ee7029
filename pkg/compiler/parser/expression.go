package parser

import (
	"strconv"
	"strings"

	"github.com/zurustar/robol/pkg/compiler/ast"
	"github.com/zurustar/robol/pkg/compiler/lexer"
)

// ParseExpression parses one prefix-notation expression from the head of
// tokens and returns it together with the tokens that follow it.
//
// A head token containing whitespace (a parenthesized group) is split into
// words before parsing, so (* 3 i) parses like * 3 i.
func ParseExpression(tokens []lexer.Token) (ast.Expression, []lexer.Token, error) {
	return parseExpression(tokens, lexer.Token{})
}

// parseExpression keeps track of the last consumed token so a missing
// operand can be reported where it was expected.
func parseExpression(tokens []lexer.Token, last lexer.Token) (ast.Expression, []lexer.Token, error) {
	tokens = flattenHead(tokens)
	if len(tokens) == 0 {
		if last.Literal == "" {
			return nil, nil, &Error{Message: "expected expression, got end of input"}
		}
		return nil, nil, errorAt(last, "expected expression after %q, got end of input", last.Literal)
	}

	tok := tokens[0]
	rest := tokens[1:]

	if op, ok := ast.LookupOperator(tok.Literal); ok {
		left, rest, err := parseExpression(rest, tok)
		if err != nil {
			return nil, nil, err
		}
		right, rest, err := parseExpression(rest, tok)
		if err != nil {
			return nil, nil, err
		}
		return &ast.BinaryOp{Token: tok, Operator: op, Left: left, Right: right}, rest, nil
	}

	leaf, err := parseLeaf(tok)
	if err != nil {
		return nil, nil, err
	}
	return leaf, rest, nil
}

// parseLeaf turns a single token into a NumberLiteral or an Identifier.
func parseLeaf(tok lexer.Token) (ast.Expression, error) {
	if tok.Type.IsKeyword() {
		return nil, errorAt(tok, "expected expression, got keyword %q", tok.Literal)
	}
	if value, err := strconv.ParseInt(tok.Literal, 10, 64); err == nil {
		return &ast.NumberLiteral{Token: tok, Value: value}, nil
	}
	if !isIdentifier(tok.Literal) {
		return nil, errorAt(tok, "invalid identifier %q", tok.Literal)
	}
	return &ast.Identifier{Token: tok, Name: tok.Literal}, nil
}

// parseText parses text as exactly one expression. It is used for values
// embedded in a larger word, like the extents of 64*64.
func parseText(text string, at lexer.Token) (ast.Expression, error) {
	words := splitWords(text, at)
	if len(words) == 0 {
		return nil, errorAt(at, "expected expression in %q", at.Literal)
	}
	expr, rest, err := parseExpression(words, at)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errorAt(rest[0], "unexpected %q after expression", rest[0].Literal)
	}
	return expr, nil
}

// flattenHead re-splits the head token while it holds several words.
func flattenHead(tokens []lexer.Token) []lexer.Token {
	for len(tokens) > 0 && strings.ContainsAny(tokens[0].Literal, " \t\r\n") {
		words := splitWords(tokens[0].Literal, tokens[0])
		tokens = append(words, tokens[1:]...)
	}
	return tokens
}

// splitWords splits text on whitespace; every word takes the position of at.
func splitWords(text string, at lexer.Token) []lexer.Token {
	fields := strings.Fields(text)
	words := make([]lexer.Token, 0, len(fields))
	for _, f := range fields {
		words = append(words, lexer.NewWord(f, at.Line, at.Column))
	}
	return words
}

// isIdentifier rejects words that cannot name a binding.
func isIdentifier(word string) bool {
	if word == "" || lexer.LookupKeyword(word) != lexer.TOKEN_WORD {
		return false
	}
	if _, err := strconv.ParseInt(word, 10, 64); err == nil {
		return false
	}
	if _, ok := ast.LookupOperator(word); ok {
		return false
	}
	return !strings.ContainsAny(word, "(){}=*+<>,")
}
