// Package compiler provides the compilation pipeline for robol scripts.
// It transforms source text into a program tree through two phases:
// 1. Lexer: Tokenization
// 2. Parser: AST generation
//
// - Compile: Compiles a source string
// - CompileFile: Loads a file (decoding its character encoding) and compiles it
package compiler

import (
	"errors"
	"fmt"

	"github.com/zurustar/robol/pkg/compiler/ast"
	"github.com/zurustar/robol/pkg/compiler/lexer"
	"github.com/zurustar/robol/pkg/compiler/parser"
	"github.com/zurustar/robol/pkg/script"
)

// Compile compiles source code to a program tree.
// It chains the lexer → parser pipeline and stops at the first error,
// which is returned as a *CompileError carrying source context.
func Compile(source string) (*ast.Program, error) {
	// Phase 1: Lexical analysis
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		var le *lexer.Error
		if errors.As(err, &le) {
			ce := NewLexerError(le.Message, le.Line, le.Column)
			ce.Context = GenerateErrorContext(source, le.Line, le.Column)
			ce.Err = err
			return nil, ce
		}
		return nil, err
	}

	// Phase 2: Syntax analysis
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		var pe *parser.Error
		if errors.As(err, &pe) {
			ce := NewParserErrorWithContext(pe.Message, pe.Line, pe.Column, source)
			ce.Err = err
			return nil, ce
		}
		return nil, err
	}

	return program, nil
}

// CompileFile reads path, decodes it from encodingName (a WHATWG label such
// as "utf-8" or "shift_jis") and compiles the content.
func CompileFile(path, encodingName string) (*ast.Program, error) {
	s, err := script.LoadFile(path, encodingName)
	if err != nil {
		return nil, err
	}

	program, err := Compile(s.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.FileName, err)
	}
	return program, nil
}
