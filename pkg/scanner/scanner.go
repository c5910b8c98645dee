// Package scanner turns a source.File's byte buffer into a stream of
// tokens, delivered to a consumer over a bounded Channel. Grounded on the
// teacher's pkg/util/source/lex package (a Scanner/Lexer pair driven by a
// cursor and line counter) and pkg/asm/assembler/lexer.go (the
// token-kind-constant, single-pass-over-bytes shape); unlike the
// teacher's combinator-based lexer, this scanner is hand-rolled per
// spec.md's exact recognition rules, matching pkg/asm/assembler/lexer.go's
// style of a direct byte-by-byte state machine rather than composed rules.
package scanner

import (
	"github.com/birendpatel/lemon/pkg/source"
	"github.com/birendpatel/lemon/pkg/token"
)

// Scanner holds the minimal state the specification allows: a read-only
// view of the source buffer, a cursor, and the current line. It buffers
// no prior tokens.
type Scanner struct {
	buf    []byte // includes the trailing NUL terminator
	end    int    // index of the NUL terminator == len(real bytes)
	cursor int
	line   int
}

// New constructs a Scanner over file. The scanner does not take ownership
// of file; the caller (typically the dependency resolver) owns it for the
// program's lifetime.
func New(file *source.File) *Scanner {
	return &Scanner{buf: file.Bytes(), end: file.Len(), cursor: 0, line: 1}
}

// Spawn starts a producer goroutine dedicated to one source, emitting
// tokens onto ch in source order, terminated by a single EOF token, after
// which ch is closed. A non-recoverable internal failure never occurs in
// this implementation (every lexical failure is reported as a flagged
// Invalid token), but the close-after-EOF contract holds unconditionally,
// matching spec.md §4.1's "if any non-recoverable internal failure occurs
// it still emits EOF and closes".
func Spawn(file *source.File, ch *Channel) {
	go func() {
		defer ch.Close()

		s := New(file)
		for {
			tok := s.next()
			ch.Send(tok)

			if tok.Kind == token.EOF {
				return
			}
		}
	}()
}

func (s *Scanner) peek(offset int) byte {
	idx := s.cursor + offset
	if idx < 0 || idx >= len(s.buf) {
		return 0
	}

	return s.buf[idx]
}

func (s *Scanner) atEnd() bool {
	return s.cursor >= s.end
}

func (s *Scanner) advance() byte {
	b := s.peek(0)
	s.cursor++

	return b
}

// next scans and returns exactly one token, advancing the cursor past it.
func (s *Scanner) next() token.Token {
	s.skipWhitespaceAndComments()

	line := s.line

	if s.atEnd() {
		return token.Token{Kind: token.EOF, Line: line}
	}

	c := s.peek(0)

	switch {
	case isDigit(c):
		return s.scanNumber(line)
	case c == '"':
		return s.scanString(line)
	case isIdentStart(c):
		return s.scanIdentifier(line)
	}

	if kind, width := s.matchPunctuation(); width > 0 {
		lexeme := string(s.buf[s.cursor : s.cursor+width])
		s.cursor += width

		return token.Token{Kind: kind, Lexeme: lexeme, Line: line}
	}

	return s.scanInvalid(line)
}

func (s *Scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		switch c := s.peek(0); {
		case c == '\n':
			s.line++
			s.cursor++
		case c == '\t' || c == '\v' || c == '\f' || c == '\r' || c == ' ':
			s.cursor++
		case c == '#':
			for !s.atEnd() && s.peek(0) != '\n' {
				s.cursor++
			}
		default:
			return
		}
	}
}

// twoCharOps lists every two-character operator, checked before falling
// back to the corresponding one-character token.
var twoCharOps = map[[2]byte]token.Kind{
	{'=', '='}: token.EqEq,
	{'!', '='}: token.NotEq,
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'<', '<'}: token.Shl,
	{'>', '>'}: token.Shr,
	{'>', '='}: token.GtEq,
	{'<', '='}: token.LtEq,
}

// oneCharOps lists every one-character operator or punctuation mark.
var oneCharOps = map[byte]token.Kind{
	';': token.Semicolon,
	'[': token.LBracket,
	']': token.RBracket,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'.': token.Dot,
	'~': token.Tilde,
	',': token.Comma,
	':': token.Colon,
	'*': token.Star,
	'\'': token.Quote,
	'^':  token.Caret,
	'+':  token.Plus,
	'-':  token.Minus,
	'/':  token.Slash,
	'%':  token.Percent,
	'<':  token.Lt,
	'>':  token.Gt,
	'=':  token.Eq,
	'!':  token.Bang,
	'&':  token.Amp,
	'|':  token.Pipe,
}

// matchPunctuation reports the kind and byte width (2, 1, or 0 for "no
// match") of the punctuation or operator starting at the cursor. Two-char
// operators are tried first, per spec.md §4.1's lookahead rule.
func (s *Scanner) matchPunctuation() (token.Kind, int) {
	pair := [2]byte{s.peek(0), s.peek(1)}
	if kind, ok := twoCharOps[pair]; ok {
		return kind, 2
	}

	if kind, ok := oneCharOps[pair[0]]; ok {
		return kind, 1
	}

	return token.Invalid, 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isIdentCont(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

// scanNumber implements the trailing-dot numeric rule: the dot is only
// consumed as a decimal point when a digit immediately follows it, so "3."
// and "3.toString" stop at "3" and leave the dot for the parser (a lone
// dot "terminates the number and is not consumed"); a second dot is never
// reached by this logic since the fractional run is scanned only once,
// which is exactly "the number stops before the second [dot]". Emits Int
// if no dot was consumed, Float otherwise.
func (s *Scanner) scanNumber(line int) token.Token {
	start := s.cursor

	for !s.atEnd() && isDigit(s.peek(0)) {
		s.cursor++
	}

	kind := token.Int

	if !s.atEnd() && s.peek(0) == '.' && isDigit(s.peek(1)) {
		kind = token.Float
		s.cursor++ // consume the decimal point

		for !s.atEnd() && isDigit(s.peek(0)) {
			s.cursor++
		}
	}

	lexeme := string(s.buf[start:s.cursor])

	return token.Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// scanString reads a "..." literal; the lexeme excludes both quotes.
// Reaching end of input before the closing quote emits a flagged Invalid
// token and stops.
func (s *Scanner) scanString(line int) token.Token {
	s.cursor++ // opening quote
	start := s.cursor

	for !s.atEnd() && s.peek(0) != '"' {
		s.cursor++
	}

	if s.atEnd() {
		lexeme := string(s.buf[start:s.cursor])
		return token.Token{Kind: token.Invalid, Lexeme: lexeme, Line: line, Flags: token.FlagBadString}
	}

	lexeme := string(s.buf[start:s.cursor])
	s.cursor++ // closing quote

	return token.Token{Kind: token.String, Lexeme: lexeme, Line: line}
}

func (s *Scanner) scanIdentifier(line int) token.Token {
	start := s.cursor

	for !s.atEnd() && isIdentCont(s.peek(0)) {
		s.cursor++
	}

	lexeme := string(s.buf[start:s.cursor])

	return token.Token{Kind: token.Lookup(lexeme), Lexeme: lexeme, Line: line}
}

// scanInvalid synchronizes on any byte matched by no other rule: the
// Invalid token extends until the next whitespace or end of input.
func (s *Scanner) scanInvalid(line int) token.Token {
	start := s.cursor

	for !s.atEnd() {
		switch s.peek(0) {
		case '\t', '\n', '\v', '\f', '\r', ' ':
			goto done
		}

		s.cursor++
	}

done:
	lexeme := string(s.buf[start:s.cursor])
	if lexeme == "" {
		// atEnd was already true: consume nothing further, just report
		// the single unmatched byte so the loop always progresses.
		s.cursor++
		lexeme = string(s.buf[start:s.cursor])
	}

	return token.Token{Kind: token.Invalid, Lexeme: lexeme, Line: line}
}
