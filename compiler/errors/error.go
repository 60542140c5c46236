package errors

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kush-lang/kushc/compiler/token"
)

// Error is a single diagnostic produced by any compiler phase. Expected
// is only meaningful for Code == UnexpectedToken, where it names the
// token kind the parser's grammar rule required.
type Error struct {
	Code     Code
	Token    token.Token
	Expected token.Kind
	Message  string
}

// text renders the human-readable diagnostic body, synthesizing the
// "expected X, encountered Y" form for unexpected-token errors per
// spec §7.2.
func (e Error) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code == UnexpectedToken {
		return fmt.Sprintf("expected token '%s', encountered token '%s'", e.Expected, e.Token.Kind)
	}
	return DefaultMessage(e.Code)
}

// String renders the diagnostic in spec §7's wire format:
// "[error] <file>:<startLine>[-<stopLine>]:<startCol>-<stopCol>: <message>".
func (e Error) String() string {
	t := e.Token
	lines := fmt.Sprintf("%d", t.Start.Line)
	if t.Stop.Line != t.Start.Line {
		lines = fmt.Sprintf("%d-%d", t.Start.Line, t.Stop.Line)
	}
	return fmt.Sprintf("[error] %s:%s:%d-%d: %s",
		t.File, lines, t.Start.Column, t.Stop.Column, e.text())
}

// Handler accumulates diagnostics across every compiler phase without
// ever aborting the pipeline (spec §7): each phase keeps running and
// reports into the same Handler, and the driver consults the per-class
// query methods to decide whether a later phase should be skipped.
type Handler struct {
	errors  []Error
	logger  *zap.Logger
	session uuid.UUID
}

// NewHandler builds a Handler for one compile session, stamping a
// session id used to correlate log lines across concurrent driver
// invocations sharing a log sink.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:  logger,
		session: uuid.New(),
	}
}

// Session reports the compile-session correlation id.
func (h *Handler) Session() uuid.UUID {
	return h.session
}

func (h *Handler) report(err Error) {
	h.errors = append(h.errors, err)
	h.logger.Debug("diagnostic",
		zap.String("session", h.session.String()),
		zap.String("code", string(err.Code)),
		zap.String("class", GetClass(err.Code).String()),
		zap.String("file", err.Token.File),
		zap.Int("line", err.Token.Start.Line),
		zap.Int("column", err.Token.Start.Column),
	)
}

// ReportLexical records a Lexical-class diagnostic at tok.
func (h *Handler) ReportLexical(code Code, tok token.Token) {
	h.report(Error{Code: code, Token: tok})
}

// ReportSyntactic records a Syntactic-class diagnostic. expected is only
// consulted when code is UnexpectedToken.
func (h *Handler) ReportSyntactic(code Code, tok token.Token, expected token.Kind) {
	h.report(Error{Code: code, Token: tok, Expected: expected})
}

// ReportSemantic records a Semantic-class diagnostic, optionally
// overriding the default message (e.g. to name the offending type).
func (h *Handler) ReportSemantic(code Code, tok token.Token, message string) {
	h.report(Error{Code: code, Token: tok, Message: message})
}

// ReportGeneral records a General-class diagnostic not anchored to any
// particular token position (e.g. a corrupted module artifact).
func (h *Handler) ReportGeneral(code Code, message string) {
	h.report(Error{Code: code, Message: message})
}

// ReportGeneralAt records a General-class diagnostic anchored to tok
// (e.g. UnknownModule, pointed at an import's final identifier).
func (h *Handler) ReportGeneralAt(code Code, tok token.Token, message string) {
	h.report(Error{Code: code, Token: tok, Message: message})
}

// Errors returns every diagnostic reported so far, in report order.
func (h *Handler) Errors() []Error {
	return h.errors
}

// HasErrors reports whether any diagnostic has been reported.
func (h *Handler) HasErrors() bool {
	return len(h.errors) > 0
}

func (h *Handler) hasClass(c Class) bool {
	for _, e := range h.errors {
		if GetClass(e.Code) == c {
			return true
		}
	}
	return false
}

// HasLexicalErrors reports whether lexing produced any diagnostic. The
// driver only logs it: parsing still runs on a source file whose token
// stream is unreliable.
func (h *Handler) HasLexicalErrors() bool { return h.hasClass(Lexical) }

// HasSyntacticErrors reports whether parsing produced any diagnostic.
// The driver skips analysis when true: an unreliable AST cannot be
// type-checked meaningfully.
func (h *Handler) HasSyntacticErrors() bool { return h.hasClass(Syntactic) }

// HasSemanticErrors reports whether analysis produced any diagnostic.
// The driver skips emission when true: spec §7 forbids emitting C for
// an ill-typed program.
func (h *Handler) HasSemanticErrors() bool { return h.hasClass(Semantic) }

// HasGeneralErrors reports whether any General-class diagnostic (module
// loading, artifact corruption) was reported.
func (h *Handler) HasGeneralErrors() bool { return h.hasClass(General) }
