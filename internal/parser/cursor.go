// Package parser implements recursive-descent parsing of a PLC token
// stream into an ast.Source.
package parser

import (
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// Parser walks a fixed slice of tokens with a single cursor. Unlike a
// classic curToken/peekToken pair, lookahead of arbitrary width is done by
// indexing relative to the cursor directly.
type Parser struct {
	tokens []token.Token
	pos    int
}

func newParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// at returns the token offset tokens ahead of the cursor, clamped to the
// final (EOF) token.
func (p *Parser) at(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) cur() token.Token { return p.at(0) }

// checkPattern is the lookahead predicate: it compares the window of
// tokens starting at the cursor against pattern, where each element is
// either a token.Type (matched against Token.Type) or a string (matched
// against Token.Literal).
func (p *Parser) checkPattern(pattern ...any) bool {
	for i, want := range pattern {
		tok := p.at(i)
		switch w := want.(type) {
		case token.Type:
			if tok.Type != w {
				return false
			}
		case string:
			if tok.Literal != w {
				return false
			}
		}
	}
	return true
}

// match is the matching consumer: it advances the cursor past len(pattern)
// tokens only if checkPattern succeeds, and reports whether it did.
func (p *Parser) match(pattern ...any) bool {
	if !p.checkPattern(pattern...) {
		return false
	}
	p.pos += len(pattern)
	return true
}
