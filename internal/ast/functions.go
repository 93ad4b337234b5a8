package ast

import (
	"bytes"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// NewField constructs a top-level Field declaration at tok with no type
// annotation (the grammar has none; see Parse's doc comment).
func NewField(tok token.Token, name string, value Expression) *Field {
	return &Field{baseNode: baseNode{Token: tok}, Name: name, Value: value}
}

// NewMethod constructs a Method at tok with no parameter or return type
// annotations (the grammar has none; see Parse's doc comment).
func NewMethod(tok token.Token, name string, params []string, body []Statement) *Method {
	return &Method{baseNode: baseNode{Token: tok}, Name: name, Params: params, Body: body}
}

// Field is a top-level `LET` declaration at source scope.
type Field struct {
	baseNode
	Name     string
	TypeName string
	HasType  bool
	Value    Expression // nil if absent
	Symbol   *env.Variable
}

func (f *Field) TokenLiteral() string { return f.baseNode.TokenLiteral() }
func (f *Field) Pos() int             { return f.baseNode.Pos() }
func (f *Field) String() string {
	var out bytes.Buffer
	out.WriteString("LET ")
	out.WriteString(f.Name)
	if f.HasType {
		out.WriteString(": ")
		out.WriteString(f.TypeName)
	}
	if f.Value != nil {
		out.WriteString(" = ")
		out.WriteString(f.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// Method is a top-level `DEF` declaration of a free function.
type Method struct {
	baseNode
	Name            string
	Params          []string
	ParamTypeNames  []string
	ReturnTypeName  string
	HasReturnType   bool
	Body            []Statement
	Symbol          *env.Function
}

func (m *Method) TokenLiteral() string { return m.baseNode.TokenLiteral() }
func (m *Method) Pos() int             { return m.baseNode.Pos() }
func (m *Method) String() string {
	var out bytes.Buffer
	out.WriteString("DEF ")
	out.WriteString(m.Name)
	out.WriteString("(")
	out.WriteString(joinParams(m.Params))
	out.WriteString(") DO ")
	out.WriteString(blockString(m.Body))
	out.WriteString("END")
	return out.String()
}

func joinParams(params []string) string {
	var out bytes.Buffer
	for i, p := range params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p)
	}
	return out.String()
}
