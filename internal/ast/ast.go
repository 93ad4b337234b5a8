// Package ast defines the typed Abstract Syntax Tree produced by the
// parser and decorated in place by the semantic analyzer.
package ast

import (
	"bytes"
	"fmt"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// Node is the base interface for every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node starts at.
	TokenLiteral() string
	// String renders the node for debugging (e.g. `plc parse` output and
	// `plc run --dump-ast`).
	String() string
	// Pos returns the node's 0-based byte offset into the original source.
	Pos() int
}

// Expression is any node that produces a value. Every expression carries a
// mutable type slot populated by the analyzer.
type Expression interface {
	Node
	expressionNode()
	GetType() *env.Type
	SetType(*env.Type)
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// baseNode factors out the Token/TokenLiteral/Pos boilerplate every node
// needs.
type baseNode struct {
	Token token.Token
}

func (n baseNode) TokenLiteral() string { return n.Token.Literal }
func (n baseNode) Pos() int             { return n.Token.Index }

// typedExpr factors out the resolved-type slot shared by every expression.
type typedExpr struct {
	baseNode
	Type *env.Type
}

func (e *typedExpr) GetType() *env.Type  { return e.Type }
func (e *typedExpr) SetType(t *env.Type) { e.Type = t }
func (e *typedExpr) expressionNode()     {}

// Source is the root of the AST: a sequence of field declarations followed
// by a sequence of method declarations.
type Source struct {
	Fields  []*Field
	Methods []*Method
}

func (s *Source) TokenLiteral() string {
	if len(s.Fields) > 0 {
		return s.Fields[0].TokenLiteral()
	}
	if len(s.Methods) > 0 {
		return s.Methods[0].TokenLiteral()
	}
	return ""
}

func (s *Source) Pos() int {
	if len(s.Fields) > 0 {
		return s.Fields[0].Pos()
	}
	if len(s.Methods) > 0 {
		return s.Methods[0].Pos()
	}
	return 0
}

func (s *Source) String() string {
	var out bytes.Buffer
	for _, f := range s.Fields {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	for _, m := range s.Methods {
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	return out.String()
}

func newTypedExpr(tok token.Token) typedExpr {
	return typedExpr{baseNode: baseNode{Token: tok}}
}

// NewLiteral constructs a Literal expression at tok with the given value.
func NewLiteral(tok token.Token, value any) *Literal {
	return &Literal{typedExpr: newTypedExpr(tok), Value: value}
}

// NewGroup constructs a Group expression wrapping inner.
func NewGroup(tok token.Token, inner Expression) *Group {
	return &Group{typedExpr: newTypedExpr(tok), Inner: inner}
}

// NewBinary constructs a Binary expression.
func NewBinary(tok token.Token, op BinaryOp, left, right Expression) *Binary {
	return &Binary{typedExpr: newTypedExpr(tok), Op: op, Left: left, Right: right}
}

// NewAccess constructs an Access expression, optionally on a receiver.
func NewAccess(tok token.Token, receiver Expression, name string) *Access {
	return &Access{typedExpr: newTypedExpr(tok), Receiver: receiver, Name: name}
}

// NewFunction constructs a Function call expression, optionally on a receiver.
func NewFunction(tok token.Token, receiver Expression, name string, args []Expression) *Function {
	return &Function{typedExpr: newTypedExpr(tok), Receiver: receiver, Name: name, Args: args}
}

// --- Literal ---------------------------------------------------------------

// Literal holds a constant value: nil, a bool, an arbitrary-precision
// integer (*big.Int), an arbitrary-precision decimal (*big.Float), a
// single rune, or a string.
type Literal struct {
	typedExpr
	Value any
}

func (l *Literal) String() string {
	if l.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", l.Value)
}

// Group is a parenthesized subexpression. It is semantically transparent
// but required at the AST level to preserve source structure and to
// restrict what may appear inside (see Analyzer's Group rule).
type Group struct {
	typedExpr
	Inner Expression
}

func (g *Group) String() string { return "(" + g.Inner.String() + ")" }

// BinaryOp enumerates the operators Binary may carry.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpLT
	OpLTEq
	OpGT
	OpGTEq
	OpEq
	OpNotEq
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpLT:
		return "<"
	case OpLTEq:
		return "<="
	case OpGT:
		return ">"
	case OpGTEq:
		return ">="
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Binary is a left-associative binary operator application.
type Binary struct {
	typedExpr
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

// Access is a variable or field read. Receiver is nil for a bare variable
// reference. Symbol is bound by the analyzer.
type Access struct {
	typedExpr
	Receiver Expression
	Name     string
	Symbol   *env.Variable
}

func (a *Access) String() string {
	if a.Receiver != nil {
		return a.Receiver.String() + "." + a.Name
	}
	return a.Name
}

// Function is a free function or method call. Receiver is nil for a free
// function call. Symbol is bound by the analyzer.
type Function struct {
	typedExpr
	Receiver Expression
	Name     string
	Args     []Expression
	Symbol   *env.Function
}

func (f *Function) String() string {
	var out bytes.Buffer
	if f.Receiver != nil {
		out.WriteString(f.Receiver.String())
		out.WriteString(".")
	}
	out.WriteString(f.Name)
	out.WriteString("(")
	for i, a := range f.Args {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteString(")")
	return out.String()
}
