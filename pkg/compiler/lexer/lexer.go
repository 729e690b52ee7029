package lexer

import (
	"fmt"
	"strings"
)

// Error is a lexical error.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Lexer tokenizes robol source code.
type Lexer struct {
	input        string
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           byte // current char
	line         int  // current line number
	column       int  // current column number

	buf       strings.Builder
	bufLine   int
	bufColumn int
	tokens    []Token
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize splits source into tokens.
func Tokenize(source string) ([]Token, error) {
	return New(source).Tokenize()
}

// Tokenize consumes the whole input and returns the token sequence.
//
// Separators (comma, space, newline, tab, carriage return) end the pending
// word and are discarded. An opening parenthesis starts a verbatim group
// which runs up to the first closing parenthesis; groups do not nest.
// A NUL byte anywhere in the input is an error.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.atEnd() {
		switch {
		case l.ch == 0:
			return nil, l.nulError()
		case isSeparator(l.ch):
			l.flush()
		case l.ch == '(':
			l.flush()
			if err := l.readGroup(); err != nil {
				return nil, err
			}
		default:
			if l.buf.Len() == 0 {
				l.bufLine, l.bufColumn = l.line, l.column
			}
			l.buf.WriteByte(l.ch)
		}
		l.readChar()
	}
	l.flush()
	return l.tokens, nil
}

// atEnd reports whether the whole input has been consumed.
func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) nulError() *Error {
	return &Error{Message: "unexpected NUL byte", Line: l.line, Column: l.column}
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// readGroup captures the text between the current '(' and the next ')'.
// On return l.ch is the closing parenthesis.
func (l *Lexer) readGroup() error {
	line, column := l.line, l.column
	start := l.position + 1
	for {
		l.readChar()
		if l.atEnd() {
			return &Error{Message: "unterminated parenthesis group", Line: line, Column: column}
		}
		if l.ch == 0 {
			return l.nulError()
		}
		if l.ch == ')' {
			break
		}
	}
	l.emit(TOKEN_GROUP, l.input[start:l.position], line, column)
	return nil
}

// flush emits the pending word, if any.
func (l *Lexer) flush() {
	if l.buf.Len() == 0 {
		return
	}
	word := strings.TrimSpace(l.buf.String())
	l.buf.Reset()
	l.emit(LookupKeyword(word), word, l.bufLine, l.bufColumn)
}

func (l *Lexer) emit(tokenType TokenType, literal string, line, column int) {
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return
	}
	l.tokens = append(l.tokens, Token{Type: tokenType, Literal: literal, Line: line, Column: column})
}

// isSeparator checks if a character separates tokens.
func isSeparator(ch byte) bool {
	return ch == ',' || ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r'
}
