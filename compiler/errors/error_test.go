package errors_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/token"
)

func tok(kind token.Kind, file string, line, col int) token.Token {
	return token.Token{
		Kind:  kind,
		Text:  kind.String(),
		File:  file,
		Start: token.Position{Line: line, Column: col},
		Stop:  token.Position{Line: line, Column: col + 1},
	}
}

func TestHandlerAccumulatesAcrossClasses(t *testing.T) {
	h := errors.NewHandler(nil)
	require.False(t, h.HasErrors())

	h.ReportLexical(errors.UnknownCharacter, tok(token.Unknown, "a.kush", 1, 0))
	h.ReportSyntactic(errors.UnexpectedToken, tok(token.Semicolon, "a.kush", 2, 4), token.RightParen)
	h.ReportSemantic(errors.UndeclaredIdentifier, tok(token.Identifier, "a.kush", 3, 1), "")
	h.ReportGeneral(errors.CorruptedBinaryEntity, "")

	assert.True(t, h.HasLexicalErrors())
	assert.True(t, h.HasSyntacticErrors())
	assert.True(t, h.HasSemanticErrors())
	assert.True(t, h.HasGeneralErrors())
	assert.Len(t, h.Errors(), 4)
}

func TestUnexpectedTokenMessageIsSynthesized(t *testing.T) {
	h := errors.NewHandler(nil)
	h.ReportSyntactic(errors.UnexpectedToken, tok(token.Semicolon, "a.kush", 2, 4), token.RightParen)

	got := h.Errors()[0].String()
	assert.Contains(t, got, "expected token")
	assert.Contains(t, got, token.RightParen.String())
	assert.Contains(t, got, "a.kush:2")
}

func TestSemanticMessageOverridesDefault(t *testing.T) {
	h := errors.NewHandler(nil)
	h.ReportSemantic(errors.IncompatibleTypes, tok(token.Identifier, "b.kush", 5, 2), "cannot assign f64 to i32")

	got := h.Errors()[0].String()
	assert.Contains(t, got, "cannot assign f64 to i32")
}

func TestGetClassMapsCodesToTheirOriginClass(t *testing.T) {
	for code, want := range map[errors.Code]errors.Class{
		errors.UnterminatedStringLiteral: errors.Lexical, errors.UnknownCharacter: errors.Lexical,
		errors.UnexpectedToken: errors.Syntactic, errors.TryStatementExpectsCatchOrFinally: errors.Syntactic,
		errors.UndeclaredIdentifier: errors.Semantic, errors.RedeclarationAsFunction: errors.Semantic,
		errors.CorruptedBinaryEntity: errors.General, errors.InvalidFEBVersion: errors.General,
	} {
		assert.Equal(t, want, errors.GetClass(code), string(code))
	}
}

func TestSessionIsStablePerHandler(t *testing.T) {
	h := errors.NewHandler(nil)
	first := h.Session()
	h.ReportGeneral(errors.UnknownModule, "kush.nope")
	assert.Equal(t, first, h.Session())
}

func TestWriteTerminalRendersEveryDiagnostic(t *testing.T) {
	h := errors.NewHandler(nil)
	h.ReportLexical(errors.UnknownCharacter, tok(token.Unknown, "a.kush", 1, 0))
	h.ReportGeneral(errors.UnknownModule, "kush.nope")

	var buf bytes.Buffer
	h.WriteTerminal(&buf)

	out := buf.String()
	assert.Contains(t, out, "UNKNOWN_CHARACTER")
	assert.Contains(t, out, "UNKNOWN_MODULE")
}
