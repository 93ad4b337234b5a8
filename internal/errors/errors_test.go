package errors

import (
	"strings"
	"testing"
)

func TestFormatWithPosition(t *testing.T) {
	source := "LET x = 1;\nLET y = ;"
	err := NewParseError(19, "unexpected token %q", ";")

	out := Format(err, source)
	if !strings.Contains(out, "line 2") {
		t.Errorf("expected line 2 in output, got %q", out)
	}
	if !strings.Contains(out, "unexpected token") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret in output, got %q", out)
	}
}

func TestFormatWithoutPosition(t *testing.T) {
	err := NewAnalysisErrorNoPos("a function named 'main' must exist")
	out := Format(err, "LET x = 1;")
	if out != err.Error() {
		t.Errorf("got %q, want bare message %q", out, err.Error())
	}
}

func TestAnalysisErrorHasAt(t *testing.T) {
	positioned := NewAnalysisError(3, "boom")
	if idx, ok := positioned.Index(); !ok || idx != 3 {
		t.Errorf("got (%d, %v), want (3, true)", idx, ok)
	}

	unpositioned := NewAnalysisErrorNoPos("boom")
	if _, ok := unpositioned.Index(); ok {
		t.Error("expected HasAt to be false for NewAnalysisErrorNoPos")
	}
}

func TestRuntimeErrorHasNoPosition(t *testing.T) {
	err := NewRuntimeError("division by zero")
	if _, ok := err.Index(); ok {
		t.Error("RuntimeError should never report a position")
	}
}
