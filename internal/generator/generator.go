// Package generator emits Java-family source text from an analyzed AST.
package generator

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
)

const indentUnit = "    "

// Generator renders an ast.Source to a target io.Writer, tracking
// indentation depth as it descends into blocks.
type Generator struct {
	w      io.Writer
	depth  int
	err    error
}

// Write renders src to w as a single `Main` class. It returns the first
// write error encountered, if any.
func Write(w io.Writer, src *ast.Source) error {
	g := &Generator{w: w}
	g.genSource(src)
	return g.err
}

func (g *Generator) line(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, err := fmt.Fprintf(g.w, "%s%s\n", strings.Repeat(indentUnit, g.depth), fmt.Sprintf(format, args...))
	if err != nil {
		g.err = err
	}
}

func (g *Generator) genSource(src *ast.Source) {
	g.line("class Main {")
	g.depth++

	for _, f := range src.Fields {
		g.genField(f)
	}
	for _, m := range src.Methods {
		g.genMethod(m)
	}

	g.line("public static void main(String[] args) {")
	g.depth++
	g.line("System.exit(new Main().main());")
	g.depth--
	g.line("}")

	g.depth--
	g.line("}")
}

func (g *Generator) genField(f *ast.Field) {
	jvmType := "Object"
	if f.Symbol != nil && f.Symbol.Type != nil {
		jvmType = f.Symbol.Type.JVMName
	}
	if f.Value != nil {
		g.line("%s %s = %s;", jvmType, f.Name, g.expr(f.Value))
		return
	}
	g.line("%s %s;", jvmType, f.Name)
}

func (g *Generator) genMethod(m *ast.Method) {
	returnType := "Object"
	if m.Symbol != nil && m.Symbol.ReturnType != nil {
		returnType = m.Symbol.ReturnType.JVMName
	}

	params := make([]string, len(m.Params))
	for idx, p := range m.Params {
		pt := "Object"
		if m.Symbol != nil && idx < len(m.Symbol.ParameterTypes) {
			pt = m.Symbol.ParameterTypes[idx].JVMName
		}
		params[idx] = fmt.Sprintf("%s %s", pt, p)
	}

	g.line("%s %s(%s) {", returnType, m.Name, strings.Join(params, ", "))
	g.depth++
	g.genStatements(m.Body)
	g.depth--
	g.line("}")
}

func (g *Generator) genStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		g.genStatement(s)
	}
}

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		g.genDeclaration(s)
	case *ast.Assignment:
		g.line("%s = %s;", s.Receiver.String(), g.expr(s.Value))
	case *ast.ExpressionStatement:
		g.line("%s;", g.expr(s.Expr))
	case *ast.If:
		g.genIf(s)
	case *ast.While:
		g.genWhile(s)
	case *ast.For:
		g.genFor(s)
	case *ast.Return:
		g.line("return %s;", g.expr(s.Value))
	default:
		g.line("/* unsupported statement %T */", stmt)
	}
}

func (g *Generator) genDeclaration(d *ast.Declaration) {
	jvmType := "Object"
	if d.Symbol != nil && d.Symbol.Type != nil {
		jvmType = d.Symbol.Type.JVMName
	}
	if d.Value != nil {
		g.line("%s %s = %s;", jvmType, d.Name, g.expr(d.Value))
		return
	}
	g.line("%s %s;", jvmType, d.Name)
}

func (g *Generator) genIf(s *ast.If) {
	g.line("if (%s) {", g.expr(s.Condition))
	g.depth++
	g.genStatements(s.Then)
	g.depth--
	if len(s.Else) > 0 {
		g.line("} else {")
		g.depth++
		g.genStatements(s.Else)
		g.depth--
	}
	g.line("}")
}

func (g *Generator) genWhile(s *ast.While) {
	g.line("while (%s) {", g.expr(s.Condition))
	g.depth++
	g.genStatements(s.Body)
	g.depth--
	g.line("}")
}

func (g *Generator) genFor(s *ast.For) {
	g.line("for (int %s : %s) {", s.Name, g.expr(s.Iterable))
	g.depth++
	g.genStatements(s.Body)
	g.depth--
	g.line("}")
}

// expr renders an expression to text. Unlike statements, expressions
// never need to write lines directly, so they build a string instead of
// going through g.line.
func (g *Generator) expr(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Literal:
		return literalText(v.Value)
	case *ast.Group:
		return "(" + g.expr(v.Inner) + ")"
	case *ast.Binary:
		return fmt.Sprintf("%s %s %s", g.expr(v.Left), binaryOpText(v.Op), g.expr(v.Right))
	case *ast.Access:
		return g.accessText(v)
	case *ast.Function:
		return g.callText(v)
	default:
		return fmt.Sprintf("/* unsupported expr %T */", e)
	}
}

func (g *Generator) accessText(a *ast.Access) string {
	name := a.Name
	if a.Symbol != nil && a.Symbol.JVMName != "" {
		name = a.Symbol.JVMName
	}
	if a.Receiver != nil {
		return g.expr(a.Receiver) + "." + name
	}
	return name
}

func (g *Generator) callText(f *ast.Function) string {
	name := f.Name
	if f.Symbol != nil && f.Symbol.JVMName != "" {
		name = f.Symbol.JVMName
	}

	args := make([]string, len(f.Args))
	for idx, a := range f.Args {
		args[idx] = g.expr(a)
	}

	call := fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	if f.Receiver != nil {
		return g.expr(f.Receiver) + "." + call
	}
	return call
}

func binaryOpText(op ast.BinaryOp) string {
	switch op {
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	default:
		return op.String()
	}
}

func literalText(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case *big.Int:
		return val.String()
	case *big.Float:
		return val.Text('g', -1)
	case rune:
		return "'" + escapeJavaChar(val) + "'"
	case string:
		return `"` + escapeJavaString(val) + `"`
	default:
		return fmt.Sprintf("%v", val)
	}
}

func escapeJavaChar(r rune) string {
	switch r {
	case '\'':
		return `\'`
	case '\\':
		return `\\`
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	default:
		return string(r)
	}
}

func escapeJavaString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
