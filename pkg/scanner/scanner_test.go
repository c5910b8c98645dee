package scanner

import (
	"testing"

	"github.com/birendpatel/lemon/pkg/source"
	"github.com/birendpatel/lemon/pkg/token"
	"github.com/stretchr/testify/assert"
)

func scanAll(t *testing.T, src string, capacity int) []token.Token {
	t.Helper()

	file := source.NewFile("test.lem", []byte(src))
	ch := NewChannel(capacity)
	Spawn(file, ch)

	var toks []token.Token
	for {
		tok, ok := ch.Recv()
		if !ok {
			t.Fatal("channel closed before EOF token observed")
		}

		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanner_TrailingDotNumeric(t *testing.T) {
	toks := scanAll(t, "3.14e3", DefaultCapacity)

	assert.Equal(t, token.Float, toks[0].Kind)
	assert.Equal(t, "3.14", toks[0].Lexeme)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "e3", toks[1].Lexeme)
	assert.Equal(t, token.EOF, toks[2].Kind)
}

func TestScanner_LoneDotNotConsumed(t *testing.T) {
	toks := scanAll(t, "3.foo", DefaultCapacity)

	assert.Equal(t, token.Int, toks[0].Kind)
	assert.Equal(t, "3", toks[0].Lexeme)
	assert.Equal(t, token.Dot, toks[1].Kind)
	assert.Equal(t, token.Identifier, toks[2].Kind)
	assert.Equal(t, "foo", toks[2].Lexeme)
}

func TestScanner_UnterminatedString(t *testing.T) {
	toks := scanAll(t, `"unterminated`, DefaultCapacity)

	assert.Len(t, toks, 2)
	assert.Equal(t, token.Invalid, toks[0].Kind)
	assert.True(t, toks[0].Is(token.FlagBadString))
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestScanner_TwoCharOperatorsPreferred(t *testing.T) {
	toks := scanAll(t, "== != && || << >> >= <= = ! & | < >", DefaultCapacity)

	want := []token.Kind{
		token.EqEq, token.NotEq, token.AndAnd, token.OrOr,
		token.Shl, token.Shr, token.GtEq, token.LtEq,
		token.Eq, token.Bang, token.Amp, token.Pipe, token.Lt, token.Gt,
		token.EOF,
	}

	assert.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanner_KeywordsAndIdentifiersPartition(t *testing.T) {
	toks := scanAll(t, "func foo struct Bar", DefaultCapacity)

	assert.Equal(t, token.Func, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, token.Struct, toks[2].Kind)
	assert.Equal(t, token.Identifier, toks[3].Kind)
}

func TestScanner_CommentsAndWhitespaceSkipped(t *testing.T) {
	toks := scanAll(t, "let x = 1; # trailing comment\nlet y = 2;", DefaultCapacity)

	// let x = 1 ;  let y = 2 ;  EOF -- indices 0-4 on line 1, 5-9 on line 2.
	assert.Equal(t, token.Let, toks[0].Kind)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, token.Let, toks[5].Kind)
	assert.Equal(t, 2, toks[5].Line, "comment must not swallow the following newline")
}

func TestScanner_InvalidByteSynchronizes(t *testing.T) {
	toks := scanAll(t, "let @@@ x", DefaultCapacity)

	assert.Equal(t, token.Let, toks[0].Kind)
	assert.Equal(t, token.Invalid, toks[1].Kind)
	assert.Equal(t, "@@@", toks[1].Lexeme)
	assert.Equal(t, token.Identifier, toks[2].Kind)
}

func TestScanner_DeterministicAcrossChannelCapacities(t *testing.T) {
	src := `import "shapes";

pub struct Circle {
	pub radius: float64;
}

func area(c: Circle): float64 {
	return 3.14 * c.radius * c.radius;
}`

	base := scanAll(t, src, 1)

	for _, capacity := range []int{1, 2, 4, 1024} {
		got := scanAll(t, src, capacity)
		assert.Equal(t, len(base), len(got), "capacity %d", capacity)

		for i := range base {
			assert.Equal(t, base[i].Kind, got[i].Kind, "capacity %d token %d", capacity, i)
			assert.Equal(t, base[i].Lexeme, got[i].Lexeme, "capacity %d token %d", capacity, i)
			assert.Equal(t, base[i].Line, got[i].Line, "capacity %d token %d", capacity, i)
		}
	}
}

func TestChannel_CloseIsIdempotent(t *testing.T) {
	ch := NewChannel(4)

	assert.NotPanics(t, func() {
		ch.Close()
		ch.Close()
		ch.Close()
	})
}
