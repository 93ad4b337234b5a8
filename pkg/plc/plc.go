// Package plc is the embeddable facade over the lex/parse/analyze/
// interpret/generate pipeline, for callers that want PLC source evaluated
// or compiled without going through the cmd/plc CLI.
package plc

import (
	"bytes"
	"io"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/generator"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/interp"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/parser"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/semantic"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects print output to w instead of the default io.Discard.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// Engine bundles the pipeline stages behind a single entry point, so a
// caller running many programs doesn't need to thread an io.Writer and
// option set through each call by hand.
type Engine struct {
	output io.Writer
}

// New creates an Engine. With no options, print output is discarded.
func New(opts ...Option) *Engine {
	e := &Engine{output: io.Discard}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CompileError wraps whichever pipeline stage failed, preserving the
// PositionedError so callers can still format a caret diagnostic against
// the original source via errors.Format.
type CompileError struct {
	Stage string
	Err   errors.PositionedError
}

func (e *CompileError) Error() string { return e.Stage + ": " + e.Err.Error() }
func (e *CompileError) Unwrap() error { return e.Err }

// Lex tokenizes source, or returns a CompileError wrapping a *ParseError.
func (e *Engine) Lex(source string) ([]token.Token, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, &CompileError{Stage: "lex", Err: err}
	}
	return toks, nil
}

// Parse tokenizes and parses source into an AST, or returns a CompileError
// wrapping whichever stage failed.
func (e *Engine) Parse(source string) (*ast.Source, error) {
	toks, err := e.Lex(source)
	if err != nil {
		return nil, err
	}
	src, perr := parser.Parse(toks)
	if perr != nil {
		return nil, &CompileError{Stage: "parse", Err: perr}
	}
	return src, nil
}

// Analyze parses and semantically analyzes source, returning the decorated
// AST, or a CompileError wrapping whichever stage failed.
func (e *Engine) Analyze(source string) (*ast.Source, error) {
	src, err := e.Parse(source)
	if err != nil {
		return nil, err
	}
	if aerr := semantic.Analyze(src); aerr != nil {
		return nil, &CompileError{Stage: "analyze", Err: aerr}
	}
	return src, nil
}

// Eval runs source to completion and returns main's exit code.
func (e *Engine) Eval(source string) (int, error) {
	src, err := e.Analyze(source)
	if err != nil {
		return 0, err
	}
	i := interp.New(e.output)
	code, rerr := i.Run(src)
	if rerr != nil {
		return 0, &CompileError{Stage: "run", Err: rerr}
	}
	return code, nil
}

// Generate analyzes source and renders it as Java-family source text.
func (e *Engine) Generate(source string) (string, error) {
	src, err := e.Analyze(source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if werr := generator.Write(&buf, src); werr != nil {
		return "", werr
	}
	return buf.String(), nil
}
