// Package parser implements a Pratt (precedence-climbing) parser that
// turns a token stream from internal/lexer into an internal/ast.Program,
// per the grammar in spec.md §4.1.
package parser

import (
	"github.com/rphle/numfu/internal/ast"
	"github.com/rphle/numfu/internal/errs"
	"github.com/rphle/numfu/internal/lexer"
	"github.com/rphle/numfu/internal/token"
)

// Precedence levels, lowest to tightest-binding. These are the mirror
// image of spec.md's table (which is numbered tightest-to-loosest);
// here a *larger* constant means the operator binds *more* tightly, as
// is conventional for a Pratt parser.
const (
	LOWEST int = iota
	PIPEPREC    // |>           (spec level 12)
	COMPOSEPREC // >>           (spec level 11)
	ORPREC      // ||           (spec level 10)
	ANDPREC     // &&           (spec level 9)
	COMPAREPREC // < > <= >= == != (spec levels 7-8, merged into one level so all six chain together)
	SUMPREC     // + -          (spec level 6)
	PRODUCTPREC // * / %        (spec level 5)
	UNARYPREC   // prefix + - ! (spec level 4)
	POWERPREC   // ^            (spec level 3)
	CALLPREC    // f(x) a[i] a.b (spec level 2)
)

var precedences = map[token.Type]int{
	token.PIPE:      PIPEPREC,
	token.COMPOSE:   COMPOSEPREC,
	token.OR:        ORPREC,
	token.AND:       ANDPREC,
	token.LT:        COMPAREPREC,
	token.GT:        COMPAREPREC,
	token.LE:        COMPAREPREC,
	token.GE:        COMPAREPREC,
	token.EQ:        COMPAREPREC,
	token.NEQ:       COMPAREPREC,
	token.PLUS:      SUMPREC,
	token.MINUS:     SUMPREC,
	token.ASTERISK:  PRODUCTPREC,
	token.SLASH:     PRODUCTPREC,
	token.PERCENT:   PRODUCTPREC,
	token.CARET:     POWERPREC,
	token.LPAREN:    CALLPREC,
	token.LBRACKET:  CALLPREC,
	token.DOT:       CALLPREC,
}

func isComparisonOp(t token.Type) bool {
	switch t {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NEQ:
		return true
	default:
		return false
	}
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser parses one NumFu source file/string into an *ast.Program,
// collecting every syntax error it encounters rather than stopping at
// the first (spec §6 "numfu parse FILE ... report syntax errors").
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*errs.NumFuError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.UNDERSCORE, p.parsePlaceholder)
	p.registerPrefix(token.DOLLAR, p.parseDollarRef)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseListLiteral)
	p.registerPrefix(token.LBRACE, p.parseLambda)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.LET, p.parseLetExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)
	p.registerInfix(token.PERCENT, p.parseBinaryExpression)
	p.registerInfix(token.CARET, p.parsePowerExpression)
	p.registerInfix(token.LT, p.parseComparisonChain)
	p.registerInfix(token.GT, p.parseComparisonChain)
	p.registerInfix(token.LE, p.parseComparisonChain)
	p.registerInfix(token.GE, p.parseComparisonChain)
	p.registerInfix(token.EQ, p.parseComparisonChain)
	p.registerInfix(token.NEQ, p.parseComparisonChain)
	p.registerInfix(token.AND, p.parseLogicalExpression)
	p.registerInfix(token.OR, p.parseLogicalExpression)
	p.registerInfix(token.COMPOSE, p.parseComposeExpression)
	p.registerInfix(token.PIPE, p.parsePipeExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixParseFns[t] = fn }

// Errors returns every syntax error collected while parsing.
func (p *Parser) Errors() []*errs.NumFuError { return p.errors }

func (p *Parser) addErrorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, errs.New(errs.SyntaxError, pos, format, args...))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// peekPrecedence returns LOWEST for a postfix-applying token (call,
// index, member) that is preceded by a newline, so that a newline
// between two top-level expressions never merges them (spec §4.1
// "Expression termination").
func (p *Parser) peekPrecedence() int {
	switch p.peekToken.Type {
	case token.LPAREN, token.LBRACKET, token.DOT:
		if p.peekToken.PrecededByNewline {
			return LOWEST
		}
	}
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addErrorf(p.peekToken.Pos, "expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseTopLevelLet()
	case token.DEL:
		return p.parseDelStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) consumeOptionalSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.consumeOptionalSemicolon()
		return nil
	}
	if p.peekTokenIs(token.ASSERT) {
		p.nextToken() // curToken = --->
		assertTok := p.curToken
		p.nextToken() // move to predicate start
		pred := p.parseExpression(LOWEST)
		p.consumeOptionalSemicolon()
		return &ast.AssertStatement{Token: assertTok, Expr: expr, Pred: pred}
	}
	p.consumeOptionalSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

// parseBindings parses the comma-separated `NAME = EXPR` list shared
// by both `let … in` expressions and the top-level `let NAME = EXPR`
// statement. Assumes curToken == LET.
func (p *Parser) parseBindings() []ast.LetBinding {
	p.nextToken() // move past 'let'
	var bindings []ast.LetBinding
	for {
		if !p.curTokenIs(token.IDENT) {
			p.addErrorf(p.curToken.Pos, "expected identifier in let binding, got %s", p.curToken.Type)
			return bindings
		}
		name := p.curToken.Literal
		if !p.expectPeek(token.ASSIGN) {
			return bindings
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		bindings = append(bindings, ast.LetBinding{Name: name, Value: val})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	return bindings
}

func (p *Parser) parseTopLevelLet() ast.Statement {
	letTok := p.curToken
	bindings := p.parseBindings()

	if p.peekTokenIs(token.IN) {
		p.nextToken() // curToken = in
		p.nextToken() // move to body
		body := p.parseExpression(LOWEST)
		letExpr := &ast.LetExpr{Token: letTok, Bindings: bindings, Body: body}
		if p.peekTokenIs(token.ASSERT) {
			p.nextToken()
			assertTok := p.curToken
			p.nextToken()
			pred := p.parseExpression(LOWEST)
			p.consumeOptionalSemicolon()
			return &ast.AssertStatement{Token: assertTok, Expr: letExpr, Pred: pred}
		}
		p.consumeOptionalSemicolon()
		return &ast.ExpressionStatement{Token: letTok, Expr: letExpr}
	}

	if len(bindings) != 1 {
		p.addErrorf(letTok.Pos, "bare 'let' at module top level must bind exactly one name (use 'let …, … in …' for multiple bindings)")
	}
	p.consumeOptionalSemicolon()
	if len(bindings) == 0 {
		return nil
	}
	return &ast.LetStatement{Token: letTok, Name: bindings[0].Name, Value: bindings[0].Value}
}

func (p *Parser) parseDelStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.consumeOptionalSemicolon()
		return nil
	}
	name := p.curToken.Literal
	p.consumeOptionalSemicolon()
	return &ast.DelStatement{Token: tok, Name: name}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	p.nextToken() // move past 'import'

	var stmt *ast.ImportStatement
	switch {
	case p.curTokenIs(token.STRING):
		stmt = &ast.ImportStatement{Token: tok, Prefixed: true, Path: p.curToken.Literal}
	case p.curTokenIs(token.ASTERISK):
		if !p.expectPeek(token.FROM) {
			p.consumeOptionalSemicolon()
			return nil
		}
		if !p.expectPeek(token.STRING) {
			p.consumeOptionalSemicolon()
			return nil
		}
		stmt = &ast.ImportStatement{Token: tok, Wildcard: true, Path: p.curToken.Literal}
	case p.curTokenIs(token.IDENT):
		names := []string{p.curToken.Literal}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			if !p.curTokenIs(token.IDENT) {
				p.addErrorf(p.curToken.Pos, "expected identifier in import list, got %s", p.curToken.Type)
				break
			}
			names = append(names, p.curToken.Literal)
		}
		if !p.expectPeek(token.FROM) {
			p.consumeOptionalSemicolon()
			return nil
		}
		if !p.expectPeek(token.STRING) {
			p.consumeOptionalSemicolon()
			return nil
		}
		stmt = &ast.ImportStatement{Token: tok, Names: names, Path: p.curToken.Literal}
	default:
		p.addErrorf(p.curToken.Pos, "malformed import statement")
	}
	p.consumeOptionalSemicolon()
	return stmt
}

func (p *Parser) parseExportStatement() ast.Statement {
	tok := p.curToken
	p.nextToken() // move past 'export'

	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
		name := p.curToken.Literal
		p.nextToken() // curToken = =
		p.nextToken() // move to value
		val := p.parseExpression(LOWEST)
		p.consumeOptionalSemicolon()
		return &ast.LetStatement{Token: tok, Name: name, Value: val, Export: true}
	}

	if !p.curTokenIs(token.IDENT) {
		p.addErrorf(p.curToken.Pos, "expected identifier after 'export', got %s", p.curToken.Type)
		p.consumeOptionalSemicolon()
		return nil
	}
	names := []string{p.curToken.Literal}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			break
		}
		names = append(names, p.curToken.Literal)
	}
	p.consumeOptionalSemicolon()
	return &ast.ExportStatement{Token: tok, Names: names}
}

// parseExpression is the Pratt-parser core: parse a prefix/primary
// expression, then repeatedly fold in infix operators whose
// precedence exceeds the caller's minimum.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addErrorf(p.curToken.Pos, "unexpected token %s (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	return &ast.NumberLiteral{Token: p.curToken, Literal: p.curToken.Literal}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parsePlaceholder() ast.Expression {
	return &ast.Placeholder{Token: p.curToken}
}

func (p *Parser) parseDollarRef() ast.Expression {
	return &ast.DollarRef{Token: p.curToken}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseListElement() ast.Expression {
	if p.curTokenIs(token.DOTDOTDOT) {
		tok := p.curToken
		p.nextToken()
		if p.curTokenIs(token.UNDERSCORE) {
			p.addErrorf(tok.Pos, "cannot spread the argument placeholder")
		}
		val := p.parseExpression(LOWEST)
		return &ast.SpreadExpr{Token: tok, Value: val}
	}
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.curToken
	list := &ast.ListLiteral{Token: tok}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list.Elements = append(list.Elements, p.parseListElement())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACKET) { // trailing comma
			p.nextToken()
			return list
		}
		p.nextToken()
		list.Elements = append(list.Elements, p.parseListElement())
	}
	if !p.expectPeek(token.RBRACKET) {
		return list
	}
	return list
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.curToken // {
	lambda := &ast.Lambda{Token: tok}

	if p.peekTokenIs(token.IDENT) {
		// Disambiguate the named form `{NAME: params -> body}` from a
		// parameter list that simply starts with an identifier, by
		// looking two tokens ahead for a colon.
		save := p.snapshot()
		p.nextToken() // curToken = IDENT
		if p.peekTokenIs(token.COLON) {
			lambda.Name = p.curToken.Literal
			p.nextToken() // curToken = :
		} else {
			p.restore(save)
		}
	}
	p.nextToken() // move to first param, or to -> if there are none

	if !p.curTokenIs(token.ARROW) {
		for {
			rest := false
			if p.curTokenIs(token.DOTDOTDOT) {
				rest = true
				p.nextToken()
			}
			if !p.curTokenIs(token.IDENT) {
				p.addErrorf(p.curToken.Pos, "expected parameter name, got %s", p.curToken.Type)
				break
			}
			lambda.Params = append(lambda.Params, ast.Param{Name: p.curToken.Literal, Rest: rest})
			if rest && p.peekTokenIs(token.COMMA) {
				p.addErrorf(p.curToken.Pos, "rest parameter must be the last parameter")
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
	}

	if restCount := countRest(lambda.Params); restCount > 1 {
		p.addErrorf(tok.Pos, "a lambda may declare at most one rest parameter")
	}

	if !p.curTokenIs(token.ARROW) && !p.expectPeek(token.ARROW) {
		return lambda
	}
	p.nextToken() // move to body
	lambda.Body = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACE) {
		return lambda
	}
	return lambda
}

func countRest(params []ast.Param) int {
	n := 0
	for _, pr := range params {
		if pr.Rest {
			n++
		}
	}
	return n
}

// parserSnapshot is a cheap save-point used only to look ahead past an
// identifier to decide between the named- and unnamed-lambda forms.
type parserSnapshot struct {
	lexerState any
	cur, peek  token.Token
}

func (p *Parser) snapshot() parserSnapshot {
	return parserSnapshot{lexerState: p.l.State(), cur: p.curToken, peek: p.peekToken}
}

func (p *Parser) restore(s parserSnapshot) {
	p.l.Restore(s.lexerState)
	p.curToken = s.cur
	p.peekToken = s.peek
}

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.THEN) {
		return &ast.IfExpr{Token: tok, Cond: cond}
	}
	p.nextToken()
	thenExpr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.ELSE) {
		return &ast.IfExpr{Token: tok, Cond: cond, Then: thenExpr}
	}
	p.nextToken()
	elseExpr := p.parseExpression(LOWEST)
	return &ast.IfExpr{Token: tok, Cond: cond, Then: thenExpr, Else: elseExpr}
}

func (p *Parser) parseLetExpression() ast.Expression {
	letTok := p.curToken
	bindings := p.parseBindings()
	if !p.expectPeek(token.IN) {
		return &ast.LetExpr{Token: letTok, Bindings: bindings}
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	return &ast.LetExpr{Token: letTok, Bindings: bindings, Body: body}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(UNARYPREC)
	return &ast.UnaryExpr{Token: tok, Op: tok.Type, Value: value}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Op: tok.Type, Left: left, Right: right}
}

// parsePowerExpression implements right-associativity for `^`.
func (p *Parser) parsePowerExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(POWERPREC - 1)
	return &ast.BinaryExpr{Token: tok, Op: tok.Type, Left: left, Right: right}
}

// parseComparisonChain implements spec §4.1's chained-comparison
// desugaring: `a OP1 b OP2 c` keeps every interior operand (`b`) as a
// single AST subtree so the evaluator can evaluate it exactly once.
func (p *Parser) parseComparisonChain(left ast.Expression) ast.Expression {
	firstTok := p.curToken
	operands := []ast.Expression{left}
	var ops []token.Type

	for {
		op := p.curToken.Type
		p.nextToken()
		right := p.parseExpression(COMPAREPREC)
		operands = append(operands, right)
		ops = append(ops, op)
		if isComparisonOp(p.peekToken.Type) {
			p.nextToken()
			continue
		}
		break
	}

	if len(ops) == 1 {
		return &ast.BinaryExpr{Token: firstTok, Op: ops[0], Left: operands[0], Right: operands[1]}
	}
	return &ast.ChainCompare{Token: firstTok, Operands: operands, Ops: ops}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.LogicalExpr{Token: tok, Op: tok.Type, Left: left, Right: right}
}

// parseComposeExpression implements right-associativity for `>>`.
func (p *Parser) parseComposeExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(COMPOSEPREC - 1)
	return &ast.ComposeExpr{Token: tok, Left: left, Right: right}
}

func (p *Parser) parsePipeExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PIPEPREC)
	return &ast.PipeExpr{Token: tok, Left: left, Right: right}
}

func (p *Parser) parseCallExpression(left ast.Expression) ast.Expression {
	tok := p.curToken // (
	call := &ast.Call{Token: tok, Fn: left}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}
	p.nextToken()
	call.Args = append(call.Args, p.parseCallArg())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) { // trailing comma
			p.nextToken()
			return call
		}
		p.nextToken()
		call.Args = append(call.Args, p.parseCallArg())
	}
	if !p.expectPeek(token.RPAREN) {
		return call
	}
	return call
}

func (p *Parser) parseCallArg() ast.Expression {
	if p.curTokenIs(token.UNDERSCORE) {
		return &ast.Placeholder{Token: p.curToken}
	}
	if p.curTokenIs(token.DOTDOTDOT) {
		tok := p.curToken
		p.nextToken()
		if p.curTokenIs(token.UNDERSCORE) {
			p.addErrorf(tok.Pos, "cannot spread the argument placeholder")
		}
		val := p.parseExpression(LOWEST)
		return &ast.SpreadExpr{Token: tok, Value: val}
	}
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken // [
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return &ast.IndexExpr{Token: tok, Value: left, Index: idx}
	}
	return &ast.IndexExpr{Token: tok, Value: left, Index: idx}
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	tok := p.curToken // .
	if !p.expectPeek(token.IDENT) {
		return left
	}
	return &ast.MemberExpr{Token: tok, Object: left, Name: p.curToken.Literal}
}
