// Package lexer scans Kush source text into a flat slice of tokens
// (spec §4.1, component B), reporting lexical diagnostics through a
// shared errors.Handler rather than aborting on the first bad rune.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/token"
)

// Lexer scans one source file's runes into tokens. It never mutates
// source; start/current/line/column track the scan cursor.
type Lexer struct {
	source  []rune
	file    string
	handler *errors.Handler

	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

// New builds a Lexer over source, attributing every token and
// diagnostic to file.
func New(source, file string, handler *errors.Handler) *Lexer {
	return &Lexer{
		source:  []rune(source),
		file:    file,
		handler: handler,
		line:    1,
		column:  0,
	}
}

// ScanAll scans the entire source and returns every token, including
// hidden-channel whitespace/newline/comment tokens, terminated by a
// single EndOfStream sentinel.
func (l *Lexer) ScanAll() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := l.scanOne()
		if ok {
			tokens = append(tokens, tok)
		}
		if tok.Kind == token.EndOfStream {
			return tokens
		}
	}
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.current + offset
	if idx >= len(l.source) {
		return 0
	}
	return l.source[idx]
}

func (l *Lexer) advance() rune {
	r := l.source[l.current]
	l.current++
	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) match(r rune) bool {
	if l.atEnd() || l.source[l.current] != r {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) position(idx int) token.Position {
	return token.Position{Index: idx, Line: l.line, Column: l.column}
}

func (l *Lexer) startPosition() token.Position {
	return token.Position{Index: l.start, Line: l.startLine, Column: l.startColumn}
}

func (l *Lexer) make(kind token.Kind, channel token.Channel, text string) token.Token {
	return token.Token{
		Kind:    kind,
		Channel: channel,
		Text:    text,
		File:    l.file,
		Start:   l.startPosition(),
		Stop:    l.position(l.current),
	}
}

func (l *Lexer) lexeme() string {
	return string(l.source[l.start:l.current])
}

// scanOne scans a single token, returning ok=false for nothing-to-emit
// situations that cannot occur in practice (kept so the loop shape
// mirrors ScanAll's single-exit contract).
func (l *Lexer) scanOne() (token.Token, bool) {
	l.start = l.current
	l.startLine = l.line
	l.startColumn = l.column

	if l.atEnd() {
		return l.make(token.EndOfStream, token.ChannelDefault, ""), true
	}

	r := l.advance()

	switch {
	case r == '\n':
		return l.make(token.Newline, token.ChannelHidden, "\n"), true
	case r == ' ' || r == '\t' || r == '\r':
		for !l.atEnd() && (l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\r') {
			l.advance()
		}
		return l.make(token.Whitespace, token.ChannelHidden, l.lexeme()), true
	case r == '/' && l.peek() == '/':
		return l.scanLineComment(), true
	case r == '/' && l.peek() == '*':
		return l.scanBlockComment(), true
	case r == '"':
		return l.scanString(), true
	case unicode.IsDigit(r):
		return l.scanNumber(), true
	case isIdentifierStart(r):
		return l.scanIdentifier(), true
	default:
		l.current = l.start
		l.line, l.column = l.startLine, l.startColumn
		if op, ok := l.scanOperator(); ok {
			return op, true
		}
		l.advance()
		l.handler.ReportLexical(errors.UnknownCharacter, l.make(token.Unknown, token.ChannelDefault, l.lexeme()))
		return l.make(token.Unknown, token.ChannelDefault, l.lexeme()), true
	}
}

func (l *Lexer) scanLineComment() token.Token {
	l.advance() // second '/'
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
	return l.make(token.SingleLineComment, token.ChannelHidden, l.lexeme())
}

func (l *Lexer) scanBlockComment() token.Token {
	l.advance() // '*'
	for {
		if l.atEnd() {
			l.handler.ReportLexical(errors.UnterminatedMultiLineComment, l.make(token.MultiLineComment, token.ChannelHidden, l.lexeme()))
			break
		}
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			break
		}
		l.advance()
	}
	return l.make(token.MultiLineComment, token.ChannelHidden, l.lexeme())
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdentifier() token.Token {
	for !l.atEnd() && isIdentifierPart(l.peek()) {
		l.advance()
	}
	text := l.lexeme()
	if kind, ok := token.Keywords[text]; ok {
		return l.make(kind, token.ChannelDefault, text)
	}
	return l.make(token.Identifier, token.ChannelDefault, text)
}

// scanNumber scans integer and floating-point literals, including the
// 0x/0o/0b radix prefixes and '_' digit-group separators (spec §4.1).
func (l *Lexer) scanNumber() token.Token {
	isFloat := false

	if l.source[l.start] == '0' && !l.atEnd() {
		switch l.peek() {
		case 'x', 'X':
			l.advance()
			l.scanDigitsRadix(isHexDigit)
			return l.make(token.IntegerLiteral, token.ChannelDefault, l.lexeme())
		case 'o', 'O':
			l.advance()
			l.scanDigitsRadix(isOctalDigit)
			return l.make(token.IntegerLiteral, token.ChannelDefault, l.lexeme())
		case 'b', 'B':
			l.advance()
			l.scanDigitsRadix(isBinaryDigit)
			return l.make(token.IntegerLiteral, token.ChannelDefault, l.lexeme())
		}
	}

	// Rewind over the leading digit scanOne already consumed, so the
	// decimal scan below counts it as the literal's first digit.
	l.current, l.column = l.start, l.startColumn
	l.scanDigitsRadix(unicode.IsDigit)

	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		l.scanDigitsRadix(unicode.IsDigit)
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.current
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if unicode.IsDigit(l.peek()) {
			isFloat = true
			l.scanDigitsRadix(unicode.IsDigit)
		} else {
			l.current = save
		}
	}

	kind := token.IntegerLiteral
	if isFloat {
		kind = token.FloatLiteral
	}
	return l.make(kind, token.ChannelDefault, l.lexeme())
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

// scanDigitsRadix consumes a run of digits (per isDigit) allowing '_'
// separators between them. A prefix with zero digits, or an underscore
// not followed by another digit, is reported but scanning continues so
// the rest of the file still lexes.
func (l *Lexer) scanDigitsRadix(isDigit func(rune) bool) {
	sawDigit := false
	for !l.atEnd() {
		if isDigit(l.peek()) {
			l.advance()
			sawDigit = true
			continue
		}
		if l.peek() == '_' {
			l.advance()
			if !isDigit(l.peek()) {
				l.handler.ReportLexical(errors.ExpectedDigitAfterUnderscore, l.make(token.Unknown, token.ChannelDefault, l.lexeme()))
			}
			continue
		}
		break
	}
	if !sawDigit {
		l.handler.ReportLexical(errors.InvalidIntegerLiteralPrefix, l.make(token.Unknown, token.ChannelDefault, l.lexeme()))
	}
}

// scanString scans a double-quoted string literal, decoding escape
// sequences eagerly (Open Question resolved as option (a) — see
// SPEC_FULL.md §4.8) so the emitter only ever re-encodes a known-good
// byte value.
func (l *Lexer) scanString() token.Token {
	var decoded strings.Builder
	for {
		if l.atEnd() || l.peek() == '\n' {
			l.handler.ReportLexical(errors.UnterminatedStringLiteral, l.make(token.StringLiteral, token.ChannelDefault, l.lexeme()))
			return l.make(token.StringLiteral, token.ChannelDefault, decoded.String())
		}
		r := l.advance()
		if r == '"' {
			break
		}
		if r != '\\' {
			decoded.WriteRune(r)
			continue
		}
		if l.atEnd() {
			l.handler.ReportLexical(errors.UnterminatedStringLiteral, l.make(token.StringLiteral, token.ChannelDefault, l.lexeme()))
			return l.make(token.StringLiteral, token.ChannelDefault, decoded.String())
		}
		esc := l.advance()
		switch esc {
		case 'n':
			decoded.WriteRune('\n')
		case 't':
			decoded.WriteRune('\t')
		case 'r':
			decoded.WriteRune('\r')
		case '\\':
			decoded.WriteRune('\\')
		case '"':
			decoded.WriteRune('"')
		case '\'':
			decoded.WriteRune('\'')
		case '0':
			decoded.WriteRune(0)
		case 'u':
			r, ok := l.scanUnicodeEscape()
			if ok {
				decoded.WriteRune(r)
			}
		default:
			l.handler.ReportLexical(errors.InvalidEscapeSequence, l.make(token.Unknown, token.ChannelDefault, string(esc)))
		}
	}
	return l.make(token.StringLiteral, token.ChannelDefault, decoded.String())
}

// scanUnicodeEscape scans the 4 hex digits following "\u".
func (l *Lexer) scanUnicodeEscape() (rune, bool) {
	var digits [4]rune
	for i := 0; i < 4; i++ {
		if l.atEnd() || !isHexDigit(l.peek()) {
			l.handler.ReportLexical(errors.MalformedUnicodeCharacterSeq, l.make(token.Unknown, token.ChannelDefault, l.lexeme()))
			return utf8.RuneError, false
		}
		digits[i] = l.advance()
	}
	var value rune
	for _, d := range digits {
		value = value*16 + hexValue(d)
	}
	return value, true
}

func hexValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}

// scanOperator attempts every entry of token.Operators in maximal-munch
// order (the table is itself sorted longest-first).
func (l *Lexer) scanOperator() (token.Token, bool) {
	remaining := string(l.source[l.current:])
	for _, op := range token.Operators {
		if strings.HasPrefix(remaining, op.Lexeme) {
			for range op.Lexeme {
				l.advance()
			}
			return l.make(op.Kind, token.ChannelDefault, op.Lexeme), true
		}
	}
	return token.Token{}, false
}
