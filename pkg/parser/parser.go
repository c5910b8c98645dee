// Package parser implements the recursive-descent + Pratt parser described
// in spec.md §4.3: one Module AST per source file, consumed token-by-token
// from a scanner.Channel with a single token of lookahead. Grounded on
// pkg/asm/assembler/parser.go's Parser shape (lookahead/expect/match
// helpers, a running error count, syntax-error synchronization), adapted
// from that parser's pre-tokenized slice to this package's streaming,
// channel-fed consumption model.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/birendpatel/lemon/pkg/ast"
	"github.com/birendpatel/lemon/pkg/diag"
	"github.com/birendpatel/lemon/pkg/scanner"
	"github.com/birendpatel/lemon/pkg/source"
	"github.com/birendpatel/lemon/pkg/token"
)

// Parser consumes one scanner.Channel and builds one ast.Module. It holds a
// single token of lookahead, pulled from the channel as needed; it never
// buffers more than that, matching spec.md §4.3's "a one-token lookahead
// is maintained by pulling from the channel".
type Parser struct {
	ch     *scanner.Channel
	log    *diag.Log
	file   string
	cur    token.Token
	errors int
}

// boundaryKinds are the token kinds the parser synchronizes to after a
// syntax error, per spec.md §4.3's error-handling contract.
var boundaryKinds = map[token.Kind]bool{
	token.Semicolon: true,
	token.RBrace:    true,
	token.Func:      true,
	token.Struct:    true,
	token.Method:    true,
	token.Let:       true,
	token.Mut:       true,
	token.Import:    true,
}

func newParser(ch *scanner.Channel, log *diag.Log, file string) *Parser {
	p := &Parser{ch: ch, log: log, file: file}
	p.advance()

	return p
}

// Parse scans file with its own scanner/channel pair and builds its
// Module. Imports and declarations are returned in source order; Next,
// Table, and each declaration's Entry are left nil for later phases
// (the dependency resolver and symbol resolver respectively).
func Parse(file *source.File, log *diag.Log) *ast.Module {
	ch := scanner.NewChannel(scanner.DefaultCapacity)
	scanner.Spawn(file, ch)

	p := newParser(ch, log, file.Path)

	module := &ast.Module{Alias: moduleAlias(file.Path)}

	for p.cur.Kind == token.Import {
		module.Imports = append(module.Imports, p.parseImport())
	}

	for p.cur.Kind != token.EOF {
		// synchronize() deliberately leaves a boundary RBrace unconsumed
		// so an enclosing block's own loop can notice it; at this top
		// level there is no enclosing block, so a stray '}' left behind
		// by a failed declaration must be consumed here or the loop
		// would spin forever without making progress.
		if p.cur.Kind == token.RBrace {
			p.errorf(p.cur.Line, "unexpected '}'")
			p.advance()

			continue
		}

		if decl := p.parseDeclaration(); decl != nil {
			module.Declarations = append(module.Declarations, decl)
		}
	}

	module.Errors = p.errors

	return module
}

// moduleAlias derives a Module's alias from its disk path: the base name
// with any ".lem" suffix stripped, matching the bare names used in
// "import \"name\";" clauses (spec.md §6's file-extension rule run in
// reverse).
func moduleAlias(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ".lem")
}

// advance returns the current lookahead and pulls the next token from the
// channel. Once the channel is closed, advance keeps synthesizing EOF
// tokens rather than blocking, so callers never need a special case for
// "ran off the end of the stream".
func (p *Parser) advance() token.Token {
	prev := p.cur

	tok, ok := p.ch.Recv()
	if !ok {
		tok = token.Token{Kind: token.EOF, Line: prev.Line}
	}

	p.cur = tok

	return prev
}

// match consumes the current token if it has kind k, reporting whether it
// did.
func (p *Parser) match(k token.Kind) bool {
	if p.cur.Kind != k {
		return false
	}

	p.advance()

	return true
}

// expect consumes and returns the current token if it has kind k;
// otherwise it reports a syntax error and returns the ok=false zero
// value without advancing, so callers can synchronize.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.cur.Kind != k {
		p.errorf(p.cur.Line, "expected %s, found %s", k, p.cur.Kind)
		return token.Token{}, false
	}

	return p.advance(), true
}

// errorf reports a syntax error and increments the running error count
// copied into ast.Module.Errors once parsing finishes.
func (p *Parser) errorf(line int, format string, args ...any) {
	p.errors++
	p.log.Reportf(diag.Error, p.file, line, format, args...)
}

// synchronize discards tokens until one of the statement-boundary kinds
// is current, consuming a boundary Semicolon (the error is "over") but
// leaving any other boundary kind in place so the caller's own loop
// notices it naturally.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.EOF {
		if boundaryKinds[p.cur.Kind] {
			if p.cur.Kind == token.Semicolon {
				p.advance()
			}

			return
		}

		p.advance()
	}
}
