package lexer

import (
	"strings"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
)

// DecodeCharLiteral strips the surrounding quotes from a raw CHARACTER
// token literal and resolves its single escape, if any. The lexer has
// already validated the literal's shape, so this never fails in practice;
// it returns an error only to keep the call sites honest about that.
func DecodeCharLiteral(raw string) (rune, *errors.ParseError) {
	inner := raw[1 : len(raw)-1]
	runes := []rune(inner)
	if len(runes) == 2 && runes[0] == '\\' {
		r, ok := escapeAlphabet[runes[1]]
		if !ok {
			return 0, errors.NewParseError(0, "invalid escape sequence '\\%c'", runes[1])
		}
		return r, nil
	}
	if len(runes) != 1 {
		return 0, errors.NewParseError(0, "character literal must contain exactly one character")
	}
	return runes[0], nil
}

// DecodeStringLiteral strips the surrounding quotes from a raw STRING
// token literal and resolves its escapes.
func DecodeStringLiteral(raw string) (string, *errors.ParseError) {
	inner := raw[1 : len(raw)-1]
	var sb strings.Builder
	runes := []rune(inner)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			sb.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			return "", errors.NewParseError(0, "unterminated escape sequence")
		}
		r, ok := escapeAlphabet[runes[i]]
		if !ok {
			return "", errors.NewParseError(0, "invalid escape sequence '\\%c'", runes[i])
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
