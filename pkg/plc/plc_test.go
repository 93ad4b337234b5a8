package plc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLexReturnsTokens(t *testing.T) {
	e := New()
	toks, err := e.Lex(`DEF main() DO RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(toks) == 0 {
		t.Fatal("expected a non-empty token stream")
	}
}

func TestLexReturnsCompileErrorOnBadInput(t *testing.T) {
	e := New()
	_, err := e.Lex("LET x = @;")
	if err == nil {
		t.Fatal("expected a lex error for an invalid character")
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a *CompileError, got %T", err)
	}
	if cerr.Stage != "lex" {
		t.Errorf("stage = %q, want %q", cerr.Stage, "lex")
	}
}

func TestParseReturnsCompileErrorOnBadSyntax(t *testing.T) {
	e := New()
	_, err := e.Parse(`DEF main() DO 1 = 2; RETURN 0; END`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Stage != "parse" {
		t.Fatalf("expected a parse-stage CompileError, got %v", err)
	}
}

func TestAnalyzeReturnsCompileErrorOnTypeMismatch(t *testing.T) {
	e := New()
	_, err := e.Analyze(`DEF main() DO RETURN "oops"; END`)
	if err == nil {
		t.Fatal("expected an analysis error")
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Stage != "analyze" {
		t.Fatalf("expected an analyze-stage CompileError, got %v", err)
	}
}

func TestEvalRunsAndReportsExitCode(t *testing.T) {
	var out bytes.Buffer
	e := New(WithOutput(&out))
	code, err := e.Eval(`DEF main() DO print("hi"); RETURN 3; END`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
	if strings.TrimSpace(out.String()) != "hi" {
		t.Fatalf("output = %q, want %q", out.String(), "hi")
	}
}

func TestEvalReturnsCompileErrorOnRuntimeFailure(t *testing.T) {
	e := New()
	_, err := e.Eval(`DEF main() DO print(1 / 0); RETURN 0; END`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Stage != "run" {
		t.Fatalf("expected a run-stage CompileError, got %v", err)
	}
}

func TestGenerateProducesJavaSource(t *testing.T) {
	e := New()
	out, err := e.Generate(`DEF main() DO RETURN 0; END`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(out, "class Main {") {
		t.Fatalf("expected generated Java source, got:\n%s", out)
	}
}

func TestDefaultEngineDiscardsOutput(t *testing.T) {
	e := New()
	if _, err := e.Eval(`DEF main() DO print("swallowed"); RETURN 0; END`); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}
