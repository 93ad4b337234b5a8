package ast

import (
	"bytes"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// NewIf constructs an If at tok.
func NewIf(tok token.Token, condition Expression, then, elseBody []Statement) *If {
	return &If{baseNode: baseNode{Token: tok}, Condition: condition, Then: then, Else: elseBody}
}

// NewFor constructs a For at tok.
func NewFor(tok token.Token, name string, iterable Expression, body []Statement) *For {
	return &For{baseNode: baseNode{Token: tok}, Name: name, Iterable: iterable, Body: body}
}

// NewWhile constructs a While at tok.
func NewWhile(tok token.Token, condition Expression, body []Statement) *While {
	return &While{baseNode: baseNode{Token: tok}, Condition: condition, Body: body}
}

func blockString(stmts []Statement) string {
	var out bytes.Buffer
	for _, s := range stmts {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	return out.String()
}

// If is a conditional statement. Else may be empty/nil for a one-armed if.
type If struct {
	baseNode
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (i *If) statementNode() {}
func (i *If) String() string {
	var out bytes.Buffer
	out.WriteString("IF ")
	out.WriteString(i.Condition.String())
	out.WriteString(" DO ")
	out.WriteString(blockString(i.Then))
	if len(i.Else) > 0 {
		out.WriteString("ELSE ")
		out.WriteString(blockString(i.Else))
	}
	out.WriteString("END")
	return out.String()
}

// For iterates Name over the values produced by Iterable.
type For struct {
	baseNode
	Name     string
	Iterable Expression
	Body     []Statement
	Symbol   *env.Variable // bound loop variable
}

func (f *For) statementNode() {}
func (f *For) String() string {
	var out bytes.Buffer
	out.WriteString("FOR ")
	out.WriteString(f.Name)
	out.WriteString(" IN ")
	out.WriteString(f.Iterable.String())
	out.WriteString(" DO ")
	out.WriteString(blockString(f.Body))
	out.WriteString("END")
	return out.String()
}

// While repeats Body while Condition holds.
type While struct {
	baseNode
	Condition Expression
	Body      []Statement
}

func (w *While) statementNode() {}
func (w *While) String() string {
	var out bytes.Buffer
	out.WriteString("WHILE ")
	out.WriteString(w.Condition.String())
	out.WriteString(" DO ")
	out.WriteString(blockString(w.Body))
	out.WriteString("END")
	return out.String()
}
