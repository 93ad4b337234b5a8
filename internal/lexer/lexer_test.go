package lexer

import (
	"testing"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

func tokenTypes(t *testing.T, toks []token.Token) []token.Type {
	t.Helper()
	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	input := `LET x = 1; DEF main() DO RETURN x; END`
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}

	want := []token.Type{
		token.LET, token.IDENTIFIER, token.ASSIGN, token.INTEGER, token.SEMICOLON,
		token.DEF, token.IDENTIFIER, token.LPAREN, token.RPAREN, token.DO,
		token.RETURN, token.IDENTIFIER, token.SEMICOLON, token.END, token.EOF,
	}
	got := tokenTypes(t, toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeSignedNumberQuirk(t *testing.T) {
	// The grammar lets a number literal carry a leading sign, so "1-2"
	// lexes as the two tokens "1" and "-2" rather than "1", "-", "2". This
	// is a deliberate fidelity choice; see DESIGN.md.
	toks, err := Tokenize("1-2")
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (INTEGER, INTEGER, EOF): %v", len(toks), toks)
	}
	if toks[0].Literal != "1" || toks[1].Literal != "-2" {
		t.Errorf("got literals %q, %q; want \"1\", \"-2\"", toks[0].Literal, toks[1].Literal)
	}
}

func TestTokenizeDecimal(t *testing.T) {
	toks, err := Tokenize("3.14")
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	if toks[0].Type != token.DECIMAL || toks[0].Literal != "3.14" {
		t.Errorf("got %v, want DECIMAL 3.14", toks[0])
	}
}

func TestTokenizeStringAndCharacterLiterals(t *testing.T) {
	toks, err := Tokenize(`"hi\n" 'a' '\t'`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	if toks[0].Type != token.STRING || toks[0].Literal != `"hi\n"` {
		t.Errorf("got %v for string literal", toks[0])
	}
	if toks[1].Type != token.CHARACTER || toks[1].Literal != "'a'" {
		t.Errorf("got %v for character literal", toks[1])
	}
	if toks[2].Type != token.CHARACTER || toks[2].Literal != `'\t'` {
		t.Errorf("got %v for escaped character literal", toks[2])
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	toks, err := Tokenize("<= >= == !=")
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	want := []token.Type{token.LT_EQ, token.GT_EQ, token.EQ, token.NOT_EQ, token.EOF}
	got := tokenTypes(t, toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestTokenizeIllegalCharacterFails(t *testing.T) {
	_, err := Tokenize("@")
	if err == nil {
		t.Fatal("expected an error for an illegal character")
	}
}

func TestTokenizeLineAndColumnTracking(t *testing.T) {
	toks, err := Tokenize("LET x = 1;\nLET y = 2;")
	if err != nil {
		t.Fatalf("Tokenize returned error: %s", err.Error())
	}
	// The second LET starts the second line.
	var secondLet token.Token
	seen := 0
	for _, tok := range toks {
		if tok.Type == token.LET {
			seen++
			if seen == 2 {
				secondLet = tok
			}
		}
	}
	if secondLet.Line != 2 {
		t.Errorf("second LET on line %d, want 2", secondLet.Line)
	}
}

func TestWithTracing(t *testing.T) {
	var traced []string
	opt := WithTracing(func(format string, args ...any) {
		traced = append(traced, format)
	})
	l := New("x", opt)
	if _, err := l.Next(); err != nil {
		t.Fatalf("Next returned error: %s", err.Error())
	}
	if len(traced) == 0 {
		t.Error("expected at least one trace callback")
	}
}
