package parser

import (
	"strconv"

	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/token"
)

// parseImport handles: import := "import" string-literal ";"
func (p *Parser) parseImport() *ast.Import {
	line := p.cur.Line
	p.advance() // "import"

	lit, ok := p.expect(token.String)
	if !ok {
		p.synchronize()
		return &ast.Import{Line: line}
	}

	if !p.match(token.Semicolon) {
		p.errorf(p.cur.Line, "expected ';' after import")
		p.synchronize()
	}

	return &ast.Import{Alias: lit.Lexeme, Line: line}
}

// parseDeclaration handles: declaration := udt | function | method | variable
func (p *Parser) parseDeclaration() ast.Decl {
	public := p.match(token.Pub)

	var decl ast.Decl

	switch p.cur.Kind {
	case token.Struct:
		decl = p.parseUdt(public)
	case token.Func:
		decl = p.parseFunction(public)
	case token.Method:
		decl = p.parseMethod(public)
	case token.Let, token.Mut:
		decl = p.parseVariable(public)
	default:
		p.errorf(p.cur.Line, "expected declaration, found %s", p.cur.Kind)
		p.synchronize()

		return nil
	}

	return decl
}

// parseUdt handles: udt := ("pub")? "struct" Ident "{" member (";" member)* "}"
func (p *Parser) parseUdt(public bool) *ast.Udt {
	line := p.cur.Line
	p.advance() // "struct"

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Udt{Public: public, Line: line}
	}

	if _, ok := p.expect(token.LBrace); !ok {
		p.synchronize()
		return &ast.Udt{Name: nameTok.Lexeme, Public: public, Line: line}
	}

	var members []*ast.Member

	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		members = append(members, p.parseMember())

		if p.cur.Kind == token.RBrace {
			break
		}

		if !p.match(token.Semicolon) {
			p.errorf(p.cur.Line, "expected ';' between members")
			p.synchronize()

			break
		}
	}

	p.expect(token.RBrace)

	return &ast.Udt{Name: nameTok.Lexeme, Members: members, Public: public, Line: line}
}

// parseMember handles: member := ("pub")? Ident ":" type
func (p *Parser) parseMember() *ast.Member {
	public := p.match(token.Pub)

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Member{Public: public}
	}

	p.expect(token.Colon)
	typ := p.parseType()

	return &ast.Member{Name: nameTok.Lexeme, Type: typ, Public: public}
}

// parseFunction handles:
// function := ("pub")? "func" Ident "(" params? ")" (":" type)? block
func (p *Parser) parseFunction(public bool) *ast.Function {
	line := p.cur.Line
	p.advance() // "func"

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Function{Public: public, Line: line}
	}

	params := p.parseParamList()

	var ret ast.Type
	if p.match(token.Colon) {
		ret = p.parseType()
	}

	block := p.parseBlock()

	return &ast.Function{Name: nameTok.Lexeme, Ret: ret, Block: block, Params: params, Public: public, Line: line}
}

// parseMethod handles:
// method := ("pub")? "method" "(" recv ")" Ident "(" params? ")" (":" type)? block
func (p *Parser) parseMethod(public bool) *ast.Method {
	line := p.cur.Line
	p.advance() // "method"

	p.expect(token.LParen)
	recv := p.parseParam()
	p.expect(token.RParen)

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Method{Recv: recv, Public: public, Line: line}
	}

	params := p.parseParamList()

	var ret ast.Type
	if p.match(token.Colon) {
		ret = p.parseType()
	}

	block := p.parseBlock()

	return &ast.Method{
		Name: nameTok.Lexeme, Ret: ret, Recv: recv, Block: block, Params: params, Public: public, Line: line,
	}
}

// parseParamList handles the "(" params? ")" shared by function and
// method declarations.
func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LParen)

	var params []*ast.Param

	for p.cur.Kind != token.RParen && p.cur.Kind != token.EOF {
		params = append(params, p.parseParam())

		if p.cur.Kind != token.RParen {
			if !p.match(token.Comma) {
				break
			}
		}
	}

	p.expect(token.RParen)

	return params
}

// parseParam handles one "(mut)? Ident ':' type" parameter, also reused
// for a method's receiver.
func (p *Parser) parseParam() *ast.Param {
	mutable := p.match(token.Mut)

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return &ast.Param{Mutable: mutable}
	}

	p.expect(token.Colon)
	typ := p.parseType()

	return &ast.Param{Name: nameTok.Lexeme, Type: typ, Mutable: mutable}
}

// parseVariable handles:
// variable := ("pub")? ("let" | "mut") Ident (":" type)? ("=" expr)? ";"
func (p *Parser) parseVariable(public bool) *ast.Variable {
	line := p.cur.Line
	mutable := p.cur.Kind == token.Mut
	p.advance() // "let" or "mut"

	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		p.synchronize()
		return &ast.Variable{Mutable: mutable, Public: public, Line: line}
	}

	var varType ast.Type
	if p.match(token.Colon) {
		varType = p.parseType()
	}

	var value ast.Expr
	if p.match(token.Eq) {
		value = p.parseExpr()
	}

	if !p.match(token.Semicolon) {
		p.errorf(p.cur.Line, "expected ';' after variable declaration")
		p.synchronize()
	}

	return &ast.Variable{
		Name: nameTok.Lexeme, VarType: varType, Value: value, Mutable: mutable, Public: public, Line: line,
	}
}

// parseType handles: type := "*" type | "[" int "]" type | Ident ("." Ident)?
func (p *Parser) parseType() ast.Type {
	switch p.cur.Kind {
	case token.Star:
		p.advance()
		return &ast.Pointer{Reference: p.parseType()}
	case token.LBracket:
		p.advance()

		lenTok, ok := p.expect(token.Int)
		length := 0

		if ok {
			length, _ = strconv.Atoi(lenTok.Lexeme)
		}

		p.expect(token.RBracket)

		return &ast.Array{Element: p.parseType(), Len: length}
	case token.Identifier:
		nameTok := p.advance()

		if p.match(token.Dot) {
			refTok, ok := p.expect(token.Identifier)
			if !ok {
				return &ast.Named{Name: nameTok.Lexeme}
			}

			return &ast.Named{Name: nameTok.Lexeme, Reference: &ast.Base{Name: refTok.Lexeme}}
		}

		return &ast.Base{Name: nameTok.Lexeme}
	default:
		p.errorf(p.cur.Line, "expected type, found %s", p.cur.Kind)
		return &ast.Base{Name: "<error>"}
	}
}
