// Package token defines the lexical tokens produced by the Kush lexer.
package token

import "fmt"

// Channel marks whether a token is visible to the parser by default or
// only recoverable through explicit channel-aware lookahead.
type Channel int

const (
	// ChannelDefault carries every token the parser consumes.
	ChannelDefault Channel = iota
	// ChannelHidden carries whitespace, newlines, and comments.
	ChannelHidden
)

func (c Channel) String() string {
	if c == ChannelHidden {
		return "hidden"
	}
	return "default"
}

// Kind identifies the lexical category of a Token. The set is closed;
// see spec §6 for the full taxonomy.
type Kind int

const (
	Unknown Kind = iota

	Whitespace
	Newline
	EndOfStream

	SingleLineComment
	MultiLineComment

	Identifier
	IntegerLiteral
	FloatLiteral
	StringLiteral

	// Keywords
	KeywordBoolean
	KeywordBreak
	KeywordCatch
	KeywordElse
	KeywordF32
	KeywordF64
	KeywordFalse
	KeywordFinally
	KeywordFor
	KeywordI16
	KeywordI32
	KeywordI64
	KeywordI8
	KeywordIf
	KeywordImport
	KeywordLet
	KeywordNative
	KeywordNew
	KeywordNull
	KeywordReturn
	KeywordStruct
	KeywordThis
	KeywordThrow
	KeywordTrue
	KeywordTry
	KeywordUI16
	KeywordUI32
	KeywordUI64
	KeywordUI8
	KeywordVar
	KeywordVoid
	KeywordWhile
	KeywordWith

	// Operators and punctuation
	BangEqual        // !=
	Bang             // !
	At               // @
	Hash             // #
	PercentEqual     // %=
	Percent          // %
	Ampersand2       // &&
	AmpersandEqual   // &=
	Ampersand        // &
	LeftParen        // (
	RightParen       // )
	Asterisk2Equal   // **=
	Asterisk2        // **
	AsteriskEqual    // *=
	Asterisk         // *
	Plus2            // ++
	PlusEqual        // +=
	Plus             // +
	Comma            // ,
	Dash2            // --
	Arrow            // ->
	DashEqual        // -=
	Dash             // -
	Ellipsis         // ...
	Dot2             // ..
	Dot              // .
	SlashEqual       // /=
	Slash            // /
	Colon2           // ::
	Colon            // :
	Semicolon        // ;
	LeftAngle2Equal  // <<=
	LeftAngle2       // <<
	LeftAngleEqual   // <=
	LeftAngle        // <
	RightAngle3Equal // >>>=
	RightAngle3      // >>>
	RightAngle2Equal // >>=
	RightAngle2      // >>
	RightAngleEqual  // >=
	RightAngle       // >
	EqualEqual       // ==
	Equal            // =
	Question         // ?
	LeftBrace        // {
	RightBrace       // }
	LeftBracket      // [
	RightBracket     // ]
	CaretEqual       // ^=
	Caret            // ^
	Pipe2            // ||
	PipeEqual        // |=
	Pipe             // |
	TildeEqual       // ~=
	Tilde            // ~
)

var kindNames = map[Kind]string{
	Unknown:           "UNKNOWN",
	Whitespace:        "WHITESPACE",
	Newline:           "NEWLINE",
	EndOfStream:       "EOS",
	SingleLineComment: "LINE_COMMENT",
	MultiLineComment:  "BLOCK_COMMENT",
	Identifier:        "IDENTIFIER",
	IntegerLiteral:    "INTEGER_LITERAL",
	FloatLiteral:      "FLOAT_LITERAL",
	StringLiteral:     "STRING_LITERAL",
	KeywordBoolean:    "boolean", KeywordBreak: "break", KeywordCatch: "catch",
	KeywordElse: "else", KeywordF32: "f32", KeywordF64: "f64", KeywordFalse: "false",
	KeywordFinally: "finally", KeywordFor: "for", KeywordI16: "i16", KeywordI32: "i32",
	KeywordI64: "i64", KeywordI8: "i8", KeywordIf: "if", KeywordImport: "import",
	KeywordLet: "let", KeywordNative: "native", KeywordNew: "new", KeywordNull: "null",
	KeywordReturn: "return", KeywordStruct: "struct", KeywordThis: "this",
	KeywordThrow: "throw", KeywordTrue: "true", KeywordTry: "try", KeywordUI16: "ui16",
	KeywordUI32: "ui32", KeywordUI64: "ui64", KeywordUI8: "ui8", KeywordVar: "var",
	KeywordVoid: "void", KeywordWhile: "while", KeywordWith: "with",
	BangEqual: "!=", Bang: "!", At: "@", Hash: "#", PercentEqual: "%=", Percent: "%",
	Ampersand2: "&&", AmpersandEqual: "&=", Ampersand: "&", LeftParen: "(", RightParen: ")",
	Asterisk2Equal: "**=", Asterisk2: "**", AsteriskEqual: "*=", Asterisk: "*",
	Plus2: "++", PlusEqual: "+=", Plus: "+", Comma: ",", Dash2: "--", Arrow: "->",
	DashEqual: "-=", Dash: "-", Ellipsis: "...", Dot2: "..", Dot: ".",
	SlashEqual: "/=", Slash: "/", Colon2: "::", Colon: ":", Semicolon: ";",
	LeftAngle2Equal: "<<=", LeftAngle2: "<<", LeftAngleEqual: "<=", LeftAngle: "<",
	RightAngle3Equal: ">>>=", RightAngle3: ">>>", RightAngle2Equal: ">>=", RightAngle2: ">>",
	RightAngleEqual: ">=", RightAngle: ">", EqualEqual: "==", Equal: "=", Question: "?",
	LeftBrace: "{", RightBrace: "}", LeftBracket: "[", RightBracket: "]",
	CaretEqual: "^=", Caret: "^", Pipe2: "||", PipeEqual: "|=", Pipe: "|",
	TildeEqual: "~=", Tilde: "~",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps every reserved lexeme to its Kind. Built once; consulted
// by the lexer after scanning an identifier-shaped run of characters.
var Keywords = map[string]Kind{
	"boolean": KeywordBoolean, "break": KeywordBreak, "catch": KeywordCatch,
	"else": KeywordElse, "f32": KeywordF32, "f64": KeywordF64, "false": KeywordFalse,
	"finally": KeywordFinally, "for": KeywordFor, "i16": KeywordI16, "i32": KeywordI32,
	"i64": KeywordI64, "i8": KeywordI8, "if": KeywordIf, "import": KeywordImport,
	"let": KeywordLet, "native": KeywordNative, "new": KeywordNew, "null": KeywordNull,
	"return": KeywordReturn, "struct": KeywordStruct, "this": KeywordThis,
	"throw": KeywordThrow, "true": KeywordTrue, "try": KeywordTry, "ui16": KeywordUI16,
	"ui32": KeywordUI32, "ui64": KeywordUI64, "ui8": KeywordUI8, "var": KeywordVar,
	"void": KeywordVoid, "while": KeywordWhile, "with": KeywordWith,
}

// Operators lists every multi-character operator/punctuation lexeme in
// maximal-munch order (longest candidates must be tried first by the
// lexer). Kept here, rather than scattered across lexer switch arms, so
// the closed set in spec §6 has one authoritative home.
var Operators = []struct {
	Lexeme string
	Kind   Kind
}{
	{">>>=", RightAngle3Equal}, {"**=", Asterisk2Equal},
	{"<<=", LeftAngle2Equal}, {">>=", RightAngle2Equal}, {">>>", RightAngle3},
	{"...", Ellipsis},
	{"!=", BangEqual}, {"%=", PercentEqual}, {"&&", Ampersand2}, {"&=", AmpersandEqual},
	{"**", Asterisk2}, {"*=", AsteriskEqual}, {"++", Plus2}, {"+=", PlusEqual},
	{"--", Dash2}, {"->", Arrow}, {"-=", DashEqual}, {"..", Dot2}, {"/=", SlashEqual},
	{"::", Colon2}, {"<<", LeftAngle2}, {"<=", LeftAngleEqual}, {">>", RightAngle2},
	{">=", RightAngleEqual}, {"==", EqualEqual}, {"^=", CaretEqual}, {"||", Pipe2},
	{"|=", PipeEqual}, {"~=", TildeEqual},
	{"!", Bang}, {"@", At}, {"#", Hash}, {"%", Percent}, {"&", Ampersand},
	{"(", LeftParen}, {")", RightParen}, {"*", Asterisk}, {"+", Plus}, {",", Comma},
	{"-", Dash}, {".", Dot}, {"/", Slash}, {":", Colon}, {";", Semicolon},
	{"<", LeftAngle}, {">", RightAngle}, {"=", Equal}, {"?", Question},
	{"{", LeftBrace}, {"}", RightBrace}, {"[", LeftBracket}, {"]", RightBracket},
	{"^", Caret}, {"|", Pipe}, {"~", Tilde},
}

// Position pinpoints a byte in a source file by line and column, both
// 0-based for columns and 1-based for lines per the lexer's accounting
// rules (spec §4.1).
type Position struct {
	Index  int
	Line   int
	Column int
}

// Token is an immutable lexical unit produced by the lexer. Channel
// decides whether the parser's default-channel lookahead observes it.
type Token struct {
	Kind    Kind
	Channel Channel
	Text    string
	Start   Position
	Stop    Position
	File    string
	// StreamIndex is this token's absolute position in the owning
	// TokenStream's buffer, assigned when the stream fetches it.
	StreamIndex int
}

// Length reports the byte length of the token's lexeme.
func (t Token) Length() int {
	return len(t.Text)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s) %q @%d:%d-%d:%d", t.Kind, t.Channel, t.Text,
		t.Start.Line, t.Start.Column, t.Stop.Line, t.Stop.Column)
}

// IsEndOfStream reports whether t is the sentinel EOS token.
func (t Token) IsEndOfStream() bool {
	return t.Kind == EndOfStream
}
