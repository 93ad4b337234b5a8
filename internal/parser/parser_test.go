package parser

import (
	"testing"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
)

func mustParse(t *testing.T, source string) *ast.Source {
	t.Helper()
	toks, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	src, perr := Parse(toks)
	if perr != nil {
		t.Fatalf("Parse returned error: %s", perr.Error())
	}
	return src
}

func singleExprStatement(t *testing.T, src *ast.Source) ast.Expression {
	t.Helper()
	if len(src.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(src.Methods))
	}
	body := src.Methods[0].Body
	if len(body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body))
	}
	es, ok := body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", body[0])
	}
	return es.Expr
}

func TestOperatorPrecedence(t *testing.T) {
	src := mustParse(t, "DEF main() DO f(1 + 2 * 3); END")
	call := singleExprStatement(t, src).(*ast.Function)
	bin := call.Args[0].(*ast.Binary)
	if bin.Op != ast.OpAdd {
		t.Fatalf("top operator = %s, want +", bin.Op)
	}
	right := bin.Right.(*ast.Binary)
	if right.Op != ast.OpMul {
		t.Fatalf("right operator = %s, want *", right.Op)
	}
}

func TestLeftAssociativity(t *testing.T) {
	src := mustParse(t, "DEF main() DO f(1 - 2 - 3); END")
	call := singleExprStatement(t, src).(*ast.Function)
	top := call.Args[0].(*ast.Binary)
	if top.Op != ast.OpSub {
		t.Fatalf("top operator = %s, want -", top.Op)
	}
	left, ok := top.Left.(*ast.Binary)
	if !ok {
		t.Fatalf("expected (1-2) on the left, got %T", top.Left)
	}
	if left.Op != ast.OpSub {
		t.Fatalf("left operator = %s, want -", left.Op)
	}
	if _, ok := top.Right.(*ast.Literal); !ok {
		t.Fatalf("expected a literal 3 on the right, got %T", top.Right)
	}
}

func TestSecondaryChainedCall(t *testing.T) {
	src := mustParse(t, `DEF main() DO x.length().charAt(0); END`)
	expr := singleExprStatement(t, src)
	outer, ok := expr.(*ast.Function)
	if !ok {
		t.Fatalf("expected outer Function, got %T", expr)
	}
	if outer.Name != "charAt" {
		t.Fatalf("outer call = %s, want charAt", outer.Name)
	}
	inner, ok := outer.Receiver.(*ast.Function)
	if !ok {
		t.Fatalf("expected inner Function receiver, got %T", outer.Receiver)
	}
	if inner.Name != "length" {
		t.Fatalf("inner call = %s, want length", inner.Name)
	}
	if _, ok := inner.Receiver.(*ast.Access); !ok {
		t.Fatalf("expected Access receiver on inner call, got %T", inner.Receiver)
	}
}

func TestPrimaryCallVsAccessDisambiguation(t *testing.T) {
	src := mustParse(t, "DEF main() DO print(x); print(y()); END")
	if len(src.Methods[0].Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(src.Methods[0].Body))
	}

	first := src.Methods[0].Body[0].(*ast.ExpressionStatement).Expr.(*ast.Function)
	if _, ok := first.Args[0].(*ast.Access); !ok {
		t.Fatalf("expected bare identifier to parse as Access, got %T", first.Args[0])
	}

	second := src.Methods[0].Body[1].(*ast.ExpressionStatement).Expr.(*ast.Function)
	if _, ok := second.Args[0].(*ast.Function); !ok {
		t.Fatalf("expected identifier with parens to parse as Function, got %T", second.Args[0])
	}
}

func TestFieldAndMethodParsing(t *testing.T) {
	src := mustParse(t, `LET x = 1; DEF main(a, b) DO RETURN 0; END`)
	if len(src.Fields) != 1 || src.Fields[0].Name != "x" {
		t.Fatalf("expected field x, got %+v", src.Fields)
	}
	if len(src.Methods) != 1 || src.Methods[0].Name != "main" {
		t.Fatalf("expected method main, got %+v", src.Methods)
	}
	if len(src.Methods[0].Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(src.Methods[0].Params))
	}
}

func TestIfForWhileAndReturn(t *testing.T) {
	src := mustParse(t, `DEF main() DO
		IF TRUE DO print(1); ELSE print(2); END
		FOR i IN range(0, 3) DO print(i); END
		WHILE FALSE DO print(3); END
		RETURN 0;
	END`)
	body := src.Methods[0].Body
	if len(body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(body))
	}
	if _, ok := body[0].(*ast.If); !ok {
		t.Errorf("statement 0: got %T, want If", body[0])
	}
	if _, ok := body[1].(*ast.For); !ok {
		t.Errorf("statement 1: got %T, want For", body[1])
	}
	if _, ok := body[2].(*ast.While); !ok {
		t.Errorf("statement 2: got %T, want While", body[2])
	}
	if _, ok := body[3].(*ast.Return); !ok {
		t.Errorf("statement 3: got %T, want Return", body[3])
	}
}

func TestAssignmentRequiresAccessOnLeft(t *testing.T) {
	toks, err := lexer.Tokenize("DEF main() DO 1 = 2; RETURN 0; END")
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	if _, perr := Parse(toks); perr == nil {
		t.Fatal("expected a parse error for assigning to a non-lvalue")
	}
}

func TestGroupedExpression(t *testing.T) {
	src := mustParse(t, "DEF main() DO f((1 + 2)); END")
	call := singleExprStatement(t, src).(*ast.Function)
	if _, ok := call.Args[0].(*ast.Group); !ok {
		t.Fatalf("expected Group, got %T", call.Args[0])
	}
}
