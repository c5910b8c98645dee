package parser

import (
	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/token"
)

// parseStmt handles:
//
//	stmt := exprStmt | block | for | while | switch | if
//	      | "return" expr? ";" | "break" ";" | "continue" ";"
//	      | "fallthrough" ";" | "goto" Ident ";" | label
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	case token.Switch:
		return p.parseSwitch()
	case token.If:
		return p.parseBranch()
	case token.Return:
		return p.parseReturn()
	case token.Break:
		line := p.cur.Line
		p.advance()
		p.expectStmtEnd()

		return &ast.Break{Line: line}
	case token.Continue:
		line := p.cur.Line
		p.advance()
		p.expectStmtEnd()

		return &ast.Continue{Line: line}
	case token.Fallthrough:
		line := p.cur.Line
		p.advance()
		p.expectStmtEnd()

		return &ast.Fallthrough{Line: line}
	case token.Goto:
		return p.parseGoto()
	case token.Label:
		return p.parseLabel()
	case token.Let, token.Mut:
		// A local variable declaration is valid wherever a statement is,
		// threaded through Fiat at the Block level; reaching here means
		// a caller asked for a bare Stmt (e.g. a for-loop clause).
		return &ast.VarStmt{Variable: p.parseVariable(false)}
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) expectStmtEnd() {
	if !p.match(token.Semicolon) {
		p.errorf(p.cur.Line, "expected ';'")
		p.synchronize()
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	line := p.cur.Line
	expr := p.parseExpr()
	p.expectStmtEnd()

	return &ast.ExprStmt{X: expr, Line: line}
}

// parseBlock handles "{" fiat* "}" where fiat is a Decl or a Stmt.
func (p *Parser) parseBlock() *ast.Block {
	line := p.cur.Line

	if _, ok := p.expect(token.LBrace); !ok {
		p.synchronize()
		return &ast.Block{Line: line}
	}

	var fiats []ast.Fiat

	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		fiats = append(fiats, p.parseFiat())
	}

	p.expect(token.RBrace)

	return &ast.Block{Fiats: fiats, Line: line}
}

// parseFiat parses one element of a block body: a local declaration or a
// statement, both permitted to interleave in source order.
func (p *Parser) parseFiat() ast.Fiat {
	switch p.cur.Kind {
	case token.Struct, token.Func, token.Method:
		public := p.match(token.Pub)
		return ast.DeclFiat{Decl: p.parseDeclarationBody(public)}
	case token.Pub:
		p.advance()
		return ast.DeclFiat{Decl: p.parseDeclarationBody(true)}
	case token.Let, token.Mut:
		return ast.DeclFiat{Decl: p.parseVariable(false)}
	default:
		return ast.StmtFiat{Stmt: p.parseStmt()}
	}
}

// parseDeclarationBody dispatches the remainder of a declaration once a
// leading "pub" (if any) has already been consumed.
func (p *Parser) parseDeclarationBody(public bool) ast.Decl {
	switch p.cur.Kind {
	case token.Struct:
		return p.parseUdt(public)
	case token.Func:
		return p.parseFunction(public)
	case token.Method:
		return p.parseMethod(public)
	case token.Let, token.Mut:
		return p.parseVariable(public)
	default:
		p.errorf(p.cur.Line, "expected declaration, found %s", p.cur.Kind)
		p.synchronize()

		return nil
	}
}

// parseFor handles "for" init ";" cond ";" post block, where init and
// post may be empty (a bare ";").
func (p *Parser) parseFor() *ast.For {
	line := p.cur.Line
	p.advance() // "for"

	var init ast.Stmt

	switch {
	case p.cur.Kind == token.Semicolon:
		p.advance()
	case p.cur.Kind == token.Let || p.cur.Kind == token.Mut:
		init = &ast.VarStmt{Variable: p.parseVariable(false)}
	default:
		// parseExprStmt consumes the trailing ";" itself.
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if p.cur.Kind != token.Semicolon {
		cond = p.parseExpr()
	}

	p.expect(token.Semicolon)

	var post ast.Stmt
	if p.cur.Kind != token.LBrace {
		post = &ast.ExprStmt{X: p.parseExpr(), Line: p.cur.Line}
	}

	body := p.parseBlock()

	return &ast.For{Init: init, Cond: cond, Post: post, Body: body, Line: line}
}

// parseWhile handles "while" cond block.
func (p *Parser) parseWhile() *ast.While {
	line := p.cur.Line
	p.advance() // "while"

	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.While{Cond: cond, Body: body, Line: line}
}

// parseBranch handles:
//
//	if := "if" (("let"|"mut") Ident (":" type)? "=" expr ";")? expr block
//	      ("else" (block | if))?
func (p *Parser) parseBranch() *ast.Branch {
	line := p.cur.Line
	p.advance() // "if"

	var shortVar *ast.Variable

	if p.cur.Kind == token.Let || p.cur.Kind == token.Mut {
		shortVar = p.parseVariable(false)
	}

	cond := p.parseExpr()
	pass := p.parseBlock()

	var fail ast.Stmt

	if p.match(token.Else) {
		if p.cur.Kind == token.If {
			fail = p.parseBranch()
		} else {
			fail = p.parseBlock()
		}
	}

	return &ast.Branch{ShortVar: shortVar, Cond: cond, Pass: pass, Fail: fail, Line: line}
}

// parseSwitch handles:
//
//	switch := "switch" expr "{" ("case" expr ("," expr)* ":" fiat*
//	                             | "default" ":" fiat*)* "}"
func (p *Parser) parseSwitch() *ast.Switch {
	line := p.cur.Line
	p.advance() // "switch"

	controller := p.parseExpr()

	p.expect(token.LBrace)

	var tests []*ast.Test

	for p.cur.Kind == token.Case || p.cur.Kind == token.Default {
		tests = append(tests, p.parseTest())
	}

	p.expect(token.RBrace)

	return &ast.Switch{Controller: controller, Tests: tests, Line: line}
}

func (p *Parser) parseTest() *ast.Test {
	line := p.cur.Line

	var values []ast.Expr

	if p.match(token.Case) {
		values = append(values, p.parseExpr())

		for p.match(token.Comma) {
			values = append(values, p.parseExpr())
		}
	} else {
		p.expect(token.Default)
	}

	p.expect(token.Colon)

	var body []ast.Fiat

	for p.cur.Kind != token.Case && p.cur.Kind != token.Default && p.cur.Kind != token.RBrace &&
		p.cur.Kind != token.EOF {
		body = append(body, p.parseFiat())
	}

	return &ast.Test{Values: values, Body: body, Line: line}
}

// parseReturn handles "return" expr? ";"
func (p *Parser) parseReturn() *ast.Return {
	line := p.cur.Line
	p.advance() // "return"

	var value ast.Expr
	if p.cur.Kind != token.Semicolon {
		value = p.parseExpr()
	}

	p.expectStmtEnd()

	return &ast.Return{Value: value, Line: line}
}

// parseGoto handles "goto" Ident ";"
func (p *Parser) parseGoto() *ast.Goto {
	line := p.cur.Line
	p.advance() // "goto"

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Goto{Line: line}
	}

	p.expectStmtEnd()

	return &ast.Goto{Name: nameTok.Lexeme, Line: line}
}

// parseLabel handles "label" Ident ":" stmt
func (p *Parser) parseLabel() *ast.Label {
	line := p.cur.Line
	p.advance() // "label"

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Label{Line: line}
	}

	p.expect(token.Colon)
	target := p.parseStmt()

	return &ast.Label{Name: nameTok.Lexeme, Target: target, Line: line}
}
