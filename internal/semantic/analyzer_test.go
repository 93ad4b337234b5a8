package semantic

import (
	"testing"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/parser"
)

func analyzeSource(t *testing.T, source string) *errors.AnalysisError {
	t.Helper()
	toks, lerr := lexer.Tokenize(source)
	if lerr != nil {
		t.Fatalf("Tokenize returned error: %s", lerr.Error())
	}
	src, perr := parser.Parse(toks)
	if perr != nil {
		t.Fatalf("Parse returned error: %s", perr.Error())
	}
	return Analyze(src)
}

func TestAnalyzeValidMainPasses(t *testing.T) {
	if err := analyzeSource(t, `DEF main() DO RETURN 0; END`); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestAnalyzeMissingMainFails(t *testing.T) {
	err := analyzeSource(t, `DEF helper() DO RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error for a missing main")
	}
}

func TestAnalyzeMainWrongReturnTypeFails(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO RETURN "oops"; END`)
	if err == nil {
		t.Fatal("expected an error for main not returning Integer")
	}
}

func TestAnalyzeDeclarationWithoutInitializerFails(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO LET x; RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error: declaration lacks both type and initializer")
	}
}

func TestAnalyzeUndefinedVariableFails(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO print(x); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestAnalyzeGroupMustWrapBinary(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO print((1)); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error: Group's inner must be a Binary")
	}
}

func TestAnalyzeGroupWrappingBinaryPasses(t *testing.T) {
	if err := analyzeSource(t, `DEF main() DO print((1 + 2)); RETURN 0; END`); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestAnalyzeIfConditionMustBeBoolean(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO IF 1 DO print(1); END RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error for a non-Boolean if condition")
	}
}

func TestAnalyzeAdditionStringCoercion(t *testing.T) {
	if err := analyzeSource(t, `DEF main() DO print("a" + 1); RETURN 0; END`); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestAnalyzeAdditionMismatchedNumericTypesFails(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO print(1 + 1.5); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error mixing Integer and Decimal")
	}
}

func TestAnalyzeForRequiresIntegerIterable(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO FOR i IN 1 DO print(i); END RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error: for's iterable must be an IntegerIterable")
	}
}

func TestAnalyzeForOverRangePasses(t *testing.T) {
	if err := analyzeSource(t, `DEF main() DO FOR i IN range(0, 3) DO print(i); END RETURN 0; END`); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestAnalyzeStringMethodCall(t *testing.T) {
	if err := analyzeSource(t, `DEF main() DO print("abc".length()); RETURN 0; END`); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
}

func TestAnalyzeCallArityMismatchFails(t *testing.T) {
	err := analyzeSource(t, `DEF helper(a) DO RETURN a; END
DEF main() DO helper(1, 2); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error for a call with the wrong arity")
	}
}

func TestAnalyzeMethodReturnTypeInferredFromReturns(t *testing.T) {
	toks, lerr := lexer.Tokenize(`DEF helper() DO RETURN "x"; END
DEF main() DO LET s = helper(); RETURN 0; END`)
	if lerr != nil {
		t.Fatalf("Tokenize returned error: %s", lerr.Error())
	}
	src, perr := parser.Parse(toks)
	if perr != nil {
		t.Fatalf("Parse returned error: %s", perr.Error())
	}
	if err := Analyze(src); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if src.Methods[0].Symbol.ReturnType != env.String {
		t.Errorf("inferred return type = %s, want String", src.Methods[0].Symbol.ReturnType)
	}
}

func TestAnalyzeIntegerLiteralOutOfRangeFails(t *testing.T) {
	err := analyzeSource(t, `DEF main() DO print(99999999999); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected an error for an out-of-range Integer literal")
	}
}
