// Package errors defines the three positioned failure channels the
// pipeline stages use (ParseError, AnalysisError, RuntimeError), plus a
// shared source-context formatter for the CLI.
package errors

import (
	"fmt"
	"strings"
)

// PositionedError is implemented by every error this pipeline returns.
// Index reports the 0-based byte offset of the failure in the original
// source, when one is known.
type PositionedError interface {
	error
	Index() (int, bool)
}

// ParseError is returned by the lexer and the parser. It is always fatal;
// the pipeline does not attempt recovery.
type ParseError struct {
	Message string
	At      int
}

func (e *ParseError) Error() string      { return e.Message }
func (e *ParseError) Index() (int, bool) { return e.At, true }

// NewParseError builds a ParseError positioned at byte offset at.
func NewParseError(at int, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), At: at}
}

// AnalysisError is returned by the semantic analyzer. The position is
// optional: some violations (e.g. a missing main) have no single offending
// token.
type AnalysisError struct {
	Message string
	At      int
	HasAt   bool
}

func (e *AnalysisError) Error() string { return e.Message }
func (e *AnalysisError) Index() (int, bool) {
	return e.At, e.HasAt
}

// NewAnalysisError builds a positioned AnalysisError.
func NewAnalysisError(at int, format string, args ...any) *AnalysisError {
	return &AnalysisError{Message: fmt.Sprintf(format, args...), At: at, HasAt: true}
}

// NewAnalysisErrorNoPos builds an AnalysisError with no attached position.
func NewAnalysisErrorNoPos(format string, args ...any) *AnalysisError {
	return &AnalysisError{Message: fmt.Sprintf(format, args...)}
}

// RuntimeError is returned by the interpreter. It is fatal to the current
// program run.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string      { return e.Message }
func (e *RuntimeError) Index() (int, bool) { return 0, false }

// NewRuntimeError builds a RuntimeError.
func NewRuntimeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// Format renders err with a source line and caret pointing at the failing
// byte offset, in the style used by the CLI for every pipeline stage. If
// err carries no position, or the position falls outside source, only the
// bare message is returned.
func Format(err PositionedError, source string) string {
	idx, ok := err.Index()
	if !ok || idx < 0 || idx > len(source) {
		return err.Error()
	}

	line, col := lineCol(source, idx)
	lineText := sourceLine(source, line)

	var sb strings.Builder
	fmt.Fprintf(&sb, "error at line %d, column %d: %s\n", line, col, err.Error())
	if lineText != "" {
		prefix := fmt.Sprintf("%4d | ", line)
		sb.WriteString(prefix)
		sb.WriteString(lineText)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// lineCol converts a 0-based byte offset into 1-based line and column
// numbers (columns counted in runes, matching how source is authored).
func lineCol(source string, index int) (line, col int) {
	line, col = 1, 1
	for i, r := range source {
		if i >= index {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func sourceLine(source string, lineNum int) string {
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
