package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/parser"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/semantic"
)

func run(t *testing.T, source string) (string, int, error) {
	t.Helper()
	toks, lerr := lexer.Tokenize(source)
	if lerr != nil {
		t.Fatalf("Tokenize returned error: %s", lerr.Error())
	}
	src, perr := parser.Parse(toks)
	if perr != nil {
		t.Fatalf("Parse returned error: %s", perr.Error())
	}
	if aerr := semantic.Analyze(src); aerr != nil {
		t.Fatalf("Analyze returned error: %s", aerr.Error())
	}
	return runAnalyzed(src)
}

func runAnalyzed(src *ast.Source) (string, int, error) {
	var buf bytes.Buffer
	code, rerr := New(&buf).Run(src)
	if rerr != nil {
		return buf.String(), code, rerr
	}
	return buf.String(), code, nil
}

func TestRunPrintsAndExits(t *testing.T) {
	out, code, err := run(t, `DEF main() DO print(41 + 1); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("output = %q, want %q", out, "42")
	}
}

func TestMainExitCodeIsReturnValue(t *testing.T) {
	_, code, err := run(t, `DEF main() DO RETURN 7; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if code != 7 {
		t.Fatalf("exit code = %d, want 7", code)
	}
}

func TestFieldInitializedBeforeMain(t *testing.T) {
	out, _, err := run(t, `LET x = 10; DEF main() DO print(x); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "10" {
		t.Fatalf("output = %q, want %q", out, "10")
	}
}

func TestAssignmentMutatesVariable(t *testing.T) {
	out, _, err := run(t, `DEF main() DO LET x = 1; x = x + 2; print(x); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("output = %q, want %q", out, "3")
	}
}

func TestNonLocalReturnEscapesNestedIf(t *testing.T) {
	out, code, err := run(t, `DEF main() DO
		IF TRUE DO
			RETURN 5;
		END
		print(99);
		RETURN 0;
	END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if code != 5 {
		t.Fatalf("exit code = %d, want 5 (return must escape the if)", code)
	}
	if out != "" {
		t.Fatalf("output = %q, want empty (statement after the if must not run)", out)
	}
}

func TestWhileLoopExecutesUntilConditionFalse(t *testing.T) {
	out, _, err := run(t, `DEF main() DO
		LET i = 0;
		WHILE i < 3 DO
			print(i);
			i = i + 1;
		END
		RETURN 0;
	END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "0\n1\n2" {
		t.Fatalf("output = %q, want %q", out, "0\\n1\\n2")
	}
}

func TestForLoopOverRange(t *testing.T) {
	out, _, err := run(t, `DEF main() DO
		FOR i IN range(0, 3) DO
			print(i);
		END
		RETURN 0;
	END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "0\n1\n2" {
		t.Fatalf("output = %q, want %q", out, "0\\n1\\n2")
	}
}

func TestRecursiveFunctionCall(t *testing.T) {
	out, _, err := run(t, `
DEF fact(n) DO
	IF n < 2 DO
		RETURN 1;
	END
	RETURN n * fact(n - 1);
END
DEF main() DO print(fact(5)); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "120" {
		t.Fatalf("output = %q, want %q", out, "120")
	}
}

func TestDivisionByZeroFailsAtRuntime(t *testing.T) {
	_, _, err := run(t, `DEF main() DO print(1 / 0); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestDecimalDivisionRoundsHalfEven(t *testing.T) {
	out, _, err := run(t, `DEF main() DO print(1.0 / 4.0); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "0.25" {
		t.Fatalf("output = %q, want %q", out, "0.25")
	}
}

func TestOrDoesNotShortCircuit(t *testing.T) {
	out, _, err := run(t, `
DEF sideEffect(n) DO
	print(n);
	RETURN TRUE;
END
DEF main() DO
	LET r = sideEffect(1) OR sideEffect(2);
	RETURN 0;
END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "1\n2" {
		t.Fatalf("output = %q, want both sides evaluated: %q", out, "1\\n2")
	}
}

func TestAndDoesNotShortCircuit(t *testing.T) {
	out, _, err := run(t, `
DEF sideEffect(n) DO
	print(n);
	RETURN FALSE;
END
DEF main() DO
	LET r = sideEffect(1) AND sideEffect(2);
	RETURN 0;
END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "1\n2" {
		t.Fatalf("output = %q, want both sides evaluated: %q", out, "1\\n2")
	}
}

func TestMismatchedRelationalTypesProduceNil(t *testing.T) {
	out, _, err := run(t, `DEF main() DO print(1 < "a"); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "nil" {
		t.Fatalf("output = %q, want %q", out, "nil")
	}
}

func TestStringPlusIntegerFailsAtRuntime(t *testing.T) {
	out, _, err := run(t, `DEF main() DO print("count: " + 5); RETURN 0; END`)
	if err == nil {
		t.Fatalf("expected a runtime error for String + Integer, got output %q", out)
	}
}

func TestStringMethodCallsAtRuntime(t *testing.T) {
	out, _, err := run(t, `DEF main() DO print("hello".length()); print("hello".charAt(1)); RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %s", err.Error())
	}
	if strings.TrimSpace(out) != "5\ne" {
		t.Fatalf("output = %q, want %q", out, "5\\ne")
	}
}
