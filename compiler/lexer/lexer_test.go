package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/lexer"
	"github.com/kush-lang/kushc/compiler/token"
)

func visibleKinds(tokens []token.Token) []token.Kind {
	var kinds []token.Kind
	for _, t := range tokens {
		if t.Channel == token.ChannelDefault {
			kinds = append(kinds, t.Kind)
		}
	}
	return kinds
}

func TestScanAllBasicDeclaration(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New(`var x i32 = 10;`, "a.kush", h)
	tokens := l.ScanAll()

	require.False(t, h.HasErrors())
	assert.Equal(t, []token.Kind{
		token.KeywordVar, token.Identifier, token.KeywordI32, token.Equal,
		token.IntegerLiteral, token.Semicolon, token.EndOfStream,
	}, visibleKinds(tokens))
}

func TestScanAllSkipsWhitespaceAndComments(t *testing.T) {
	h := errors.NewHandler(nil)
	src := "// a comment\nlet y = /* inline */ 3.5;\n"
	l := lexer.New(src, "a.kush", h)
	tokens := l.ScanAll()

	require.False(t, h.HasErrors())
	assert.Equal(t, []token.Kind{
		token.KeywordLet, token.Identifier, token.Equal, token.FloatLiteral,
		token.Semicolon, token.EndOfStream,
	}, visibleKinds(tokens))
}

func TestScanNumberLiterals(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New(`0x1A 0b101 0o17 1_000 3.14 2e10`, "a.kush", h)
	tokens := l.ScanAll()
	require.False(t, h.HasErrors())

	var lexemes []string
	for _, tok := range tokens {
		if tok.Channel == token.ChannelDefault && tok.Kind != token.EndOfStream {
			lexemes = append(lexemes, tok.Text)
		}
	}
	assert.Equal(t, []string{"0x1A", "0b101", "0o17", "1_000", "3.14", "2e10"}, lexemes)
}

func TestScanStringEscapes(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New(`"a\nb\tc"`, "a.kush", h)
	tokens := l.ScanAll()
	require.False(t, h.HasErrors())
	require.GreaterOrEqual(t, len(tokens), 1)
	assert.Equal(t, "a\nb\tc", tokens[0].Text)
}

func TestUnterminatedStringReportsError(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New("\"abc\n", "a.kush", h)
	l.ScanAll()

	require.True(t, h.HasLexicalErrors())
	assert.Equal(t, errors.UnterminatedStringLiteral, h.Errors()[0].Code)
}

func TestUnknownCharacterRecoversAndContinues(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New("let x `= 1;", "a.kush", h)
	tokens := l.ScanAll()

	require.True(t, h.HasLexicalErrors())
	assert.Equal(t, errors.UnknownCharacter, h.Errors()[0].Code)
	// lexing continued past the bad rune instead of aborting
	assert.Contains(t, visibleKinds(tokens), token.IntegerLiteral)
}

func TestOperatorMaximalMunch(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New(`>>>= >>= >> > ...`, "a.kush", h)
	tokens := l.ScanAll()
	require.False(t, h.HasErrors())

	assert.Equal(t, []token.Kind{
		token.RightAngle3Equal, token.RightAngle2Equal, token.RightAngle2,
		token.RightAngle, token.Ellipsis, token.EndOfStream,
	}, visibleKinds(tokens))
}

func TestStreamLookaheadAndConsume(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New(`var x = 1;`, "a.kush", h)
	s := lexer.NewStream(l.ScanAll())

	assert.Equal(t, token.KeywordVar, s.La(1))
	assert.Equal(t, token.Identifier, s.La(2))
	first := s.Consume()
	assert.Equal(t, token.KeywordVar, first.Kind)
	assert.Equal(t, token.Identifier, s.La(1))
}

func TestStreamMarkAndReset(t *testing.T) {
	h := errors.NewHandler(nil)
	l := lexer.New(`a b c`, "a.kush", h)
	s := lexer.NewStream(l.ScanAll())

	mark := s.Mark()
	s.Consume()
	s.Consume()
	s.Reset(mark)
	assert.Equal(t, "a", s.Lt(1).Text)
}
