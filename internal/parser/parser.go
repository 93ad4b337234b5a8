package parser

import (
	"math/big"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
)

// Parse turns a finite token stream into an ast.Source, or returns the
// first parse failure encountered. The grammar has no type-annotation
// syntax (see DESIGN.md): declarations, parameters and return types are
// never written in source, so Field/Declaration.HasType is always false
// and Method parameter/return types are left for the analyzer to infer.
func Parse(tokens []token.Token) (*ast.Source, *errors.ParseError) {
	p := newParser(tokens)
	return p.parseSource()
}

func (p *Parser) expect(t token.Type, what string) (token.Token, *errors.ParseError) {
	tok := p.cur()
	if tok.Type != t {
		return token.Token{}, errors.NewParseError(tok.Index, "expected %s, got %q", what, tok.Literal)
	}
	p.pos++
	return tok, nil
}

func (p *Parser) parseSource() (*ast.Source, *errors.ParseError) {
	src := &ast.Source{}

	for p.checkPattern(token.LET) {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		src.Fields = append(src.Fields, f)
	}

	for p.checkPattern(token.DEF) {
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		src.Methods = append(src.Methods, m)
	}

	if !p.checkPattern(token.EOF) {
		return nil, errors.NewParseError(p.cur().Index, "unexpected token %q at top level", p.cur().Literal)
	}

	return src, nil
}

func (p *Parser) parseField() (*ast.Field, *errors.ParseError) {
	letTok := p.cur()
	p.match(token.LET)

	name, value, err := p.parseDeclarationBody()
	if err != nil {
		return nil, err
	}
	return ast.NewField(letTok, name, value), nil
}

// parseDeclarationBody parses `IDENT ('=' expr)? ';'` and returns the
// bound name and optional initializer.
func (p *Parser) parseDeclarationBody() (string, ast.Expression, *errors.ParseError) {
	nameTok, err := p.expect(token.IDENTIFIER, "identifier")
	if err != nil {
		return "", nil, err
	}

	var value ast.Expression
	if p.match(token.ASSIGN) {
		value, err = p.parseExpr()
		if err != nil {
			return "", nil, err
		}
	}

	if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return "", nil, err
	}

	return nameTok.Literal, value, nil
}

func (p *Parser) parseMethod() (*ast.Method, *errors.ParseError) {
	defTok := p.cur()
	p.match(token.DEF)

	nameTok, err := p.expect(token.IDENTIFIER, "method name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}

	var params []string
	if !p.checkPattern(token.RPAREN) {
		for {
			paramTok, err := p.expect(token.IDENTIFIER, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, paramTok.Literal)
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO, "'DO'"); err != nil {
		return nil, err
	}

	body, err := p.parseStatements(token.END)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.END, "'END'"); err != nil {
		return nil, err
	}

	return ast.NewMethod(defTok, nameTok.Literal, params, body), nil
}

// parseStatements parses zero or more statements until the cursor reaches
// one of the given terminator token types (not consumed).
func (p *Parser) parseStatements(terminators ...token.Type) ([]ast.Statement, *errors.ParseError) {
	var stmts []ast.Statement
	for !p.atAny(terminators...) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) atAny(types ...token.Type) bool {
	cur := p.cur().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() (ast.Statement, *errors.ParseError) {
	switch {
	case p.checkPattern(token.LET):
		return p.parseLocalDeclaration()
	case p.checkPattern(token.IF):
		return p.parseIf()
	case p.checkPattern(token.FOR):
		return p.parseFor()
	case p.checkPattern(token.WHILE):
		return p.parseWhile()
	case p.checkPattern(token.RETURN):
		return p.parseReturn()
	default:
		return p.parseExprOrAssignment()
	}
}

func (p *Parser) parseLocalDeclaration() (ast.Statement, *errors.ParseError) {
	letTok := p.cur()
	p.match(token.LET)

	name, value, err := p.parseDeclarationBody()
	if err != nil {
		return nil, err
	}
	return ast.NewDeclaration(letTok, name, value), nil
}

func (p *Parser) parseIf() (ast.Statement, *errors.ParseError) {
	ifTok := p.cur()
	p.match(token.IF)

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO, "'DO'"); err != nil {
		return nil, err
	}

	then, err := p.parseStatements(token.ELSE, token.END)
	if err != nil {
		return nil, err
	}

	var elseBody []ast.Statement
	if p.match(token.ELSE) {
		elseBody, err = p.parseStatements(token.END)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.END, "'END'"); err != nil {
		return nil, err
	}

	return ast.NewIf(ifTok, cond, then, elseBody), nil
}

func (p *Parser) parseFor() (ast.Statement, *errors.ParseError) {
	forTok := p.cur()
	p.match(token.FOR)

	nameTok, err := p.expect(token.IDENTIFIER, "loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "'IN'"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO, "'DO'"); err != nil {
		return nil, err
	}

	body, err := p.parseStatements(token.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END, "'END'"); err != nil {
		return nil, err
	}

	return ast.NewFor(forTok, nameTok.Literal, iterable, body), nil
}

func (p *Parser) parseWhile() (ast.Statement, *errors.ParseError) {
	whileTok := p.cur()
	p.match(token.WHILE)

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO, "'DO'"); err != nil {
		return nil, err
	}

	body, err := p.parseStatements(token.END)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END, "'END'"); err != nil {
		return nil, err
	}

	return ast.NewWhile(whileTok, cond, body), nil
}

func (p *Parser) parseReturn() (ast.Statement, *errors.ParseError) {
	retTok := p.cur()
	p.match(token.RETURN)

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}

	return ast.NewReturn(retTok, value), nil
}

// parseExprOrAssignment parses `expr ('=' expr)? ';'`.
func (p *Parser) parseExprOrAssignment() (ast.Statement, *errors.ParseError) {
	startTok := p.cur()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.match(token.ASSIGN) {
		access, ok := expr.(*ast.Access)
		if !ok {
			return nil, errors.NewParseError(startTok.Index, "left-hand side of assignment must be a variable or field")
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
		return ast.NewAssignment(startTok, access, value), nil
	}

	if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(startTok, expr), nil
}

// --- expression grammar, lowest to highest precedence -----------------

func (p *Parser) parseExpr() (ast.Expression, *errors.ParseError) {
	return p.parseLogical()
}

func (p *Parser) parseLogical() (ast.Expression, *errors.ParseError) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.checkPattern(token.AND) || p.checkPattern(token.OR) {
		opTok := p.cur()
		p.pos++
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		op := ast.OpAnd
		if opTok.Type == token.OR {
			op = ast.OpOr
		}
		left = ast.NewBinary(opTok, op, left, right)
	}
	return left, nil
}

var equalityOps = map[token.Type]ast.BinaryOp{
	token.LT:     ast.OpLT,
	token.LT_EQ:  ast.OpLTEq,
	token.GT:     ast.OpGT,
	token.GT_EQ:  ast.OpGTEq,
	token.EQ:     ast.OpEq,
	token.NOT_EQ: ast.OpNotEq,
}

func (p *Parser) parseEquality() (ast.Expression, *errors.ParseError) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := equalityOps[p.cur().Type]
		if !ok {
			return left, nil
		}
		opTok := p.cur()
		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(opTok, op, left, right)
	}
}

func (p *Parser) parseAdditive() (ast.Expression, *errors.ParseError) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.checkPattern(token.PLUS) || p.checkPattern(token.MINUS) {
		opTok := p.cur()
		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		op := ast.OpAdd
		if opTok.Type == token.MINUS {
			op = ast.OpSub
		}
		left = ast.NewBinary(opTok, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, *errors.ParseError) {
	left, err := p.parseSecondary()
	if err != nil {
		return nil, err
	}
	for p.checkPattern(token.STAR) || p.checkPattern(token.SLASH) {
		opTok := p.cur()
		p.pos++
		right, err := p.parseSecondary()
		if err != nil {
			return nil, err
		}
		op := ast.OpMul
		if opTok.Type == token.SLASH {
			op = ast.OpDiv
		}
		left = ast.NewBinary(opTok, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseSecondary() (ast.Expression, *errors.ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.checkPattern(token.DOT) {
		dotTok := p.cur()
		p.pos++
		nameTok, err := p.expect(token.IDENTIFIER, "member name")
		if err != nil {
			return nil, err
		}

		if p.checkPattern(token.LPAREN) {
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = ast.NewFunction(dotTok, expr, nameTok.Literal, args)
		} else {
			expr = ast.NewAccess(dotTok, expr, nameTok.Literal)
		}
	}

	return expr, nil
}

// parseCallArgs parses `'(' args? ')'`, where args ::= expr (',' expr)*.
func (p *Parser) parseCallArgs() ([]ast.Expression, *errors.ParseError) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.checkPattern(token.RPAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, *errors.ParseError) {
	tok := p.cur()

	switch tok.Type {
	case token.NIL:
		p.pos++
		return ast.NewLiteral(tok, nil), nil
	case token.TRUE:
		p.pos++
		return ast.NewLiteral(tok, true), nil
	case token.FALSE:
		p.pos++
		return ast.NewLiteral(tok, false), nil
	case token.INTEGER:
		p.pos++
		n, ok := new(big.Int).SetString(tok.Literal, 10)
		if !ok {
			return nil, errors.NewParseError(tok.Index, "malformed integer literal %q", tok.Literal)
		}
		return ast.NewLiteral(tok, n), nil
	case token.DECIMAL:
		p.pos++
		f, _, ferr := big.ParseFloat(tok.Literal, 10, 200, big.ToNearestEven)
		if ferr != nil {
			return nil, errors.NewParseError(tok.Index, "malformed decimal literal %q", tok.Literal)
		}
		return ast.NewLiteral(tok, f), nil
	case token.CHARACTER:
		p.pos++
		r, perr := lexer.DecodeCharLiteral(tok.Literal)
		if perr != nil {
			return nil, errors.NewParseError(tok.Index, "%s", perr.Error())
		}
		return ast.NewLiteral(tok, r), nil
	case token.STRING:
		p.pos++
		s, perr := lexer.DecodeStringLiteral(tok.Literal)
		if perr != nil {
			return nil, errors.NewParseError(tok.Index, "%s", perr.Error())
		}
		return ast.NewLiteral(tok, s), nil
	case token.IDENTIFIER:
		p.pos++
		if p.checkPattern(token.LPAREN) {
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return ast.NewFunction(tok, nil, tok.Literal, args), nil
		}
		return ast.NewAccess(tok, nil, tok.Literal), nil
	case token.LPAREN:
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return ast.NewGroup(tok, inner), nil
	default:
		return nil, errors.NewParseError(tok.Index, "unexpected token %q", tok.Literal)
	}
}
