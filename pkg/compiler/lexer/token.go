// Package lexer provides lexical analysis for robol scripts.
package lexer

// TokenType represents the type of a token.
type TokenType int

// Token types
const (
	TOKEN_ILLEGAL TokenType = iota

	TOKEN_WORD  // any whitespace/comma separated word
	TOKEN_GROUP // verbatim text captured between ( and )

	// Keywords
	TOKEN_SIZE  // size
	TOKEN_LET   // let
	TOKEN_START // start
	TOKEN_TURN  // turn
	TOKEN_STEP  // step
	TOKEN_DO    // do
	TOKEN_END   // }
	TOKEN_STOP  // stop
)

// Token represents a lexical token.
// Line and Column point at the first character of the token (1-indexed).
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenTypeNames = map[TokenType]string{
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_WORD:    "WORD",
	TOKEN_GROUP:   "GROUP",
	TOKEN_SIZE:    "size",
	TOKEN_LET:     "let",
	TOKEN_START:   "start",
	TOKEN_TURN:    "turn",
	TOKEN_STEP:    "step",
	TOKEN_DO:      "do",
	TOKEN_END:     "}",
	TOKEN_STOP:    "stop",
}

// String returns a string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword returns true if the token type is a statement keyword.
func (t TokenType) IsKeyword() bool {
	return t >= TOKEN_SIZE && t <= TOKEN_STOP
}

// keywords maps statement keywords to their TokenType.
// Keywords are case-sensitive.
var keywords = map[string]TokenType{
	"size":  TOKEN_SIZE,
	"let":   TOKEN_LET,
	"start": TOKEN_START,
	"turn":  TOKEN_TURN,
	"step":  TOKEN_STEP,
	"do":    TOKEN_DO,
	"}":     TOKEN_END,
	"stop":  TOKEN_STOP,
}

// LookupKeyword returns the keyword TokenType for word, or TOKEN_WORD if
// word is not a keyword.
func LookupKeyword(word string) TokenType {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	return TOKEN_WORD
}

// NewWord creates a word token, classifying keywords.
// It is used by the parser when a group is split back into words.
func NewWord(literal string, line, column int) Token {
	return Token{Type: LookupKeyword(literal), Literal: literal, Line: line, Column: column}
}
