// Package errors implements Kush's cross-cutting diagnostic collector
// (spec §4's ErrorHandler, component K): every phase reports into a
// shared Handler and keeps going, never aborting the pipeline on a
// recoverable error (spec §7).
package errors

// Code identifies a diagnostic's exact cause. The set is closed and
// organized by origin class, mirroring spec §7's four-class taxonomy and
// named after original_source/include/kush/error-handler.h's
// k_ErrorCode_t enumerators.
type Code string

// Class groups a Code by the phase that can produce it.
type Class int

const (
	Lexical Class = iota
	Syntactic
	Semantic
	General
)

func (c Class) String() string {
	switch c {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	default:
		return "general"
	}
}

const (
	// Lexical errors (spec §4.1, §7.1)
	UnterminatedStringLiteral        Code = "UNTERMINATED_STRING_LITERAL"
	UnterminatedMultiLineComment     Code = "UNTERMINATED_MULTI_LINE_COMMENT"
	MalformedUnicodeCharacterSeq     Code = "MALFORMED_UNICODE_CHARACTER_SEQUENCE"
	InvalidEscapeSequence            Code = "INVALID_ESCAPE_SEQUENCE"
	UnknownCharacter                 Code = "UNKNOWN_CHARACTER"
	InvalidIntegerLiteralPrefix      Code = "INVALID_INTEGER_LITERAL_PREFIX"
	ExpectedDigitAfterUnderscore     Code = "EXPECTED_DIGIT_AFTER_UNDERSCORE"

	// Syntactic errors (spec §4.3, §7.2)
	UnexpectedToken                Code = "UNEXPECTED_TOKEN"
	TryStatementExpectsCatchOrFinally Code = "TRY_STATEMENT_EXPECTS_CATCH_OR_FINALLY"

	// Semantic errors (spec §4.6, §7.3)
	UndeclaredClass                   Code = "UNDECLARED_CLASS"
	InvalidLValue                     Code = "INVALID_LVALUE"
	InstantiationOfNonClassSymbol     Code = "INSTANTIATION_OF_NON_CLASS_SYMBOL"
	NoSuitableConstructor             Code = "NO_SUITABLE_CONSTRUCTOR"
	UndeclaredIdentifier              Code = "UNDECLARED_IDENTIFIER"
	VariableTreatedAsFunction         Code = "VARIABLE_TREATED_AS_FUNCTION"
	RedeclarationAsFunction           Code = "REDECLARATION_OF_SYMBOL_AS_FUNCTION"
	RedeclarationAsParameter          Code = "REDECLARATION_OF_SYMBOL_AS_PARAMETER"
	DuplicateFunctionOverload         Code = "DUPLICATE_FUNCTION_OVERLOAD"
	FunctionExceedsParameterThreshold Code = "FUNCTION_DECLARATION_EXCEEDS_PARAMETER_THRESHOLD"
	RedeclarationAsVariable           Code = "REDECLARATION_OF_SYMBOL_AS_VARIABLE"
	RedeclarationAsConstant           Code = "REDECLARATION_OF_SYMBOL_AS_CONSTANT"
	RedeclarationAsLabel              Code = "REDECLARATION_OF_SYMBOL_AS_LABEL"
	RedeclarationAsLoopParameter      Code = "REDECLARATION_OF_SYMBOL_AS_LOOP_PARAMETER"
	RedeclarationAsCatchParameter     Code = "REDECLARATION_OF_SYMBOL_AS_CATCH_PARAMETER"
	RedeclarationAsStructure          Code = "REDECLARATION_OF_SYMBOL_AS_CLASS"
	RedeclarationPreviouslyImported   Code = "REDECLARATION_OF_SYMBOL_PREVIOUSLY_IMPORTED"
	InvalidMemberAccess               Code = "INVALID_MEMBER_ACCESS"
	InvalidFunctionInvocation         Code = "INVALID_FUNCTION_INVOCATION"
	InvalidLeftOperand                Code = "INVALID_LEFT_OPERAND"
	IncompatibleTypes                 Code = "INCOMPATIBLE_TYPES"
	CombiningEqualityOperators        Code = "COMBINING_EQUALITY_OPERATORS"
	InvalidOperand                    Code = "INVALID_OPERAND"
	ExpectedBoolean                   Code = "EXPECTED_BOOLEAN"

	// General errors (spec §4.7, §7.4)
	CorruptedBinaryEntity Code = "CORRUPTED_BINARY_ENTITY"
	InvalidFEBVersion     Code = "INVALID_FEB_VERSION"
	UnknownModule         Code = "UNKNOWN_MODULE"
)

// classOf maps every Code to its Class. Kept as one table rather than
// folded into scattered constructors so GetClass stays exhaustive and
// checkable at a glance.
var classOf = map[Code]Class{
	UnterminatedStringLiteral:    Lexical,
	UnterminatedMultiLineComment: Lexical,
	MalformedUnicodeCharacterSeq: Lexical,
	InvalidEscapeSequence:        Lexical,
	UnknownCharacter:             Lexical,
	InvalidIntegerLiteralPrefix:  Lexical,
	ExpectedDigitAfterUnderscore: Lexical,

	UnexpectedToken:                   Syntactic,
	TryStatementExpectsCatchOrFinally: Syntactic,

	UndeclaredClass:                   Semantic,
	InvalidLValue:                     Semantic,
	InstantiationOfNonClassSymbol:     Semantic,
	NoSuitableConstructor:             Semantic,
	UndeclaredIdentifier:              Semantic,
	VariableTreatedAsFunction:         Semantic,
	RedeclarationAsFunction:           Semantic,
	RedeclarationAsParameter:          Semantic,
	DuplicateFunctionOverload:         Semantic,
	FunctionExceedsParameterThreshold: Semantic,
	RedeclarationAsVariable:           Semantic,
	RedeclarationAsConstant:           Semantic,
	RedeclarationAsLabel:              Semantic,
	RedeclarationAsLoopParameter:      Semantic,
	RedeclarationAsCatchParameter:     Semantic,
	RedeclarationAsStructure:          Semantic,
	RedeclarationPreviouslyImported:   Semantic,
	InvalidMemberAccess:               Semantic,
	InvalidFunctionInvocation:         Semantic,
	InvalidLeftOperand:                Semantic,
	IncompatibleTypes:                 Semantic,
	CombiningEqualityOperators:        Semantic,
	InvalidOperand:                    Semantic,
	ExpectedBoolean:                   Semantic,

	CorruptedBinaryEntity: General,
	InvalidFEBVersion:     General,
	UnknownModule:         General,
}

// GetClass reports the origin class of a Code, or General if unknown.
func GetClass(code Code) Class {
	if c, ok := classOf[code]; ok {
		return c
	}
	return General
}

var defaultMessages = map[Code]string{
	UnterminatedStringLiteral:    "unterminated string literal",
	UnterminatedMultiLineComment: "unterminated multi-line comment",
	MalformedUnicodeCharacterSeq: "malformed unicode character sequence",
	InvalidEscapeSequence:        "invalid escape sequence",
	UnknownCharacter:             "unknown character",
	InvalidIntegerLiteralPrefix:  "invalid integer literal prefix",
	ExpectedDigitAfterUnderscore: "expected a digit after '_'",

	UnexpectedToken:                   "unexpected token",
	TryStatementExpectsCatchOrFinally: "'try' statement expects a 'catch' or 'finally' clause",

	UndeclaredClass:                   "undeclared structure",
	InvalidLValue:                     "left-hand side of assignment is not an l-value",
	InstantiationOfNonClassSymbol:     "cannot instantiate a non-structure symbol",
	NoSuitableConstructor:             "no suitable constructor found",
	UndeclaredIdentifier:              "undeclared identifier",
	VariableTreatedAsFunction:         "variable used as if it were a function",
	RedeclarationAsFunction:           "symbol already declared as a function",
	RedeclarationAsParameter:          "symbol already declared as a parameter",
	DuplicateFunctionOverload:         "duplicate function overload",
	FunctionExceedsParameterThreshold: "function declaration exceeds the parameter threshold",
	RedeclarationAsVariable:           "symbol already declared as a variable",
	RedeclarationAsConstant:           "symbol already declared as a constant",
	RedeclarationAsLabel:              "symbol already declared as a label",
	RedeclarationAsLoopParameter:      "symbol already declared as a loop parameter",
	RedeclarationAsCatchParameter:     "symbol already declared as a catch parameter",
	RedeclarationAsStructure:          "symbol already declared as a structure",
	RedeclarationPreviouslyImported:   "symbol was previously imported",
	InvalidMemberAccess:               "invalid member access",
	InvalidFunctionInvocation:         "invalid function invocation",
	InvalidLeftOperand:                "left operand is not indexable",
	IncompatibleTypes:                 "incompatible types",
	CombiningEqualityOperators:        "cannot combine equality/relational operators without parentheses",
	InvalidOperand:                    "invalid operand for operator",
	ExpectedBoolean:                   "expected a boolean expression",

	CorruptedBinaryEntity: "corrupted module artifact",
	InvalidFEBVersion:     "incompatible module artifact version",
	UnknownModule:         "unknown module",
}

// DefaultMessage returns the default human-readable message for code.
func DefaultMessage(code Code) string {
	if msg, ok := defaultMessages[code]; ok {
		return msg
	}
	return "unknown error"
}
