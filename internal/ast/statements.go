package ast

import (
	"bytes"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// NewExpressionStatement constructs an ExpressionStatement at tok.
func NewExpressionStatement(tok token.Token, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{baseNode: baseNode{Token: tok}, Expr: expr}
}

// NewDeclaration constructs a local Declaration at tok with no type
// annotation (the grammar has none; see Parse's doc comment).
func NewDeclaration(tok token.Token, name string, value Expression) *Declaration {
	return &Declaration{baseNode: baseNode{Token: tok}, Name: name, Value: value}
}

// NewAssignment constructs an Assignment at tok.
func NewAssignment(tok token.Token, receiver *Access, value Expression) *Assignment {
	return &Assignment{baseNode: baseNode{Token: tok}, Receiver: receiver, Value: value}
}

// NewReturn constructs a Return at tok.
func NewReturn(tok token.Token, value Expression) *Return {
	return &Return{baseNode: baseNode{Token: tok}, Value: value}
}

// ExpressionStatement is an expression evaluated for effect. The analyzer
// requires Expr to be a *Function call.
type ExpressionStatement struct {
	baseNode
	Expr Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string { return s.Expr.String() + ";" }

// Declaration is a local or field declaration. At least one of TypeName or
// Value must be present; HasType distinguishes an absent annotation
// from the zero value of TypeName.
type Declaration struct {
	baseNode
	Name       string
	TypeName   string
	HasType    bool
	Value    Expression // nil if absent
	Symbol   *env.Variable
}

func (d *Declaration) statementNode() {}
func (d *Declaration) String() string {
	var out bytes.Buffer
	out.WriteString("LET ")
	out.WriteString(d.Name)
	if d.HasType {
		out.WriteString(": ")
		out.WriteString(d.TypeName)
	}
	if d.Value != nil {
		out.WriteString(" = ")
		out.WriteString(d.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// Assignment stores Value into Receiver, which must be an *Access.
type Assignment struct {
	baseNode
	Receiver *Access
	Value    Expression
}

func (a *Assignment) statementNode() {}
func (a *Assignment) String() string {
	return a.Receiver.String() + " = " + a.Value.String() + ";"
}

// Return unwinds the enclosing method invocation, yielding Value (which may
// be nil in the AST only if absent from the grammar — the grammar in fact
// always requires one).
type Return struct {
	baseNode
	Value Expression
}

func (r *Return) statementNode() {}
func (r *Return) String() string { return "RETURN " + r.Value.String() + ";" }
