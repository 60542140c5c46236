// Package parser implements Kush's recursive-descent, precedence-
// climbing parser (component E, spec §4.3).
package parser

import (
	"github.com/kush-lang/kushc/compiler/ast"
	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/lexer"
	"github.com/kush-lang/kushc/compiler/token"
)

// Parser holds a token Stream and reports diagnostics through a shared
// errors.Handler, never panicking on malformed input: parse methods
// report what they cannot match and return a best-effort node, and
// ParseModule and parseLabelled synchronize to a follow-set token so
// the caller can keep parsing the rest of the file.
type Parser struct {
	stream  *lexer.Stream
	handler *errors.Handler
	file    string
}

// New builds a Parser over tokens already produced by the lexer.
func New(tokens []token.Token, file string, handler *errors.Handler) *Parser {
	return &Parser{stream: lexer.NewStream(tokens), handler: handler, file: file}
}

func (p *Parser) at(kind token.Kind) bool { return p.stream.La(1) == kind }

func (p *Parser) advance() token.Token { return p.stream.Consume() }

func (p *Parser) check(kind token.Kind) bool { return p.at(kind) }

// expect consumes the current token if it matches kind, otherwise
// reports UnexpectedToken and returns the current token without
// consuming it, so the caller's follow-set recovery can decide what to
// skip.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	tok := p.stream.Lt(1)
	p.handler.ReportSyntactic(errors.UnexpectedToken, tok, kind)
	return tok, false
}

// synchronize discards tokens until one in follow (or EndOfStream) is
// current, the standard panic-mode recovery for spec §7.2.
func (p *Parser) synchronize(follow ...token.Kind) {
	for {
		if p.at(token.EndOfStream) {
			return
		}
		for _, k := range follow {
			if p.at(k) {
				return
			}
		}
		p.advance()
	}
}

// primitiveTypeKinds is the closed set of keyword tokens that can start
// a type reference (spec §3's primitive set, plus `void` for return
// types). A custom structure type instead starts with a plain Identifier.
var primitiveTypeKinds = map[token.Kind]bool{
	token.KeywordBoolean: true,
	token.KeywordF32:     true,
	token.KeywordF64:     true,
	token.KeywordI8:      true,
	token.KeywordI16:     true,
	token.KeywordI32:     true,
	token.KeywordI64:     true,
	token.KeywordUI8:     true,
	token.KeywordUI16:    true,
	token.KeywordUI32:    true,
	token.KeywordUI64:    true,
	token.KeywordVoid:    true,
}

func isTypeStartKind(k token.Kind) bool {
	return primitiveTypeKinds[k] || k == token.Identifier
}

var declarationFollow = buildDeclarationFollow()

func buildDeclarationFollow() []token.Kind {
	follow := []token.Kind{
		token.KeywordImport, token.KeywordStruct, token.KeywordNative,
		token.KeywordLet, token.KeywordVar, token.Identifier, token.EndOfStream,
	}
	for k := range primitiveTypeKinds {
		follow = append(follow, k)
	}
	return follow
}

// ParseModule parses one entire source file (spec §4.3's `module`
// production: imports, then an interleaving of structures and
// functions; top-level variable declarations are accepted as a
// straightforward generalization of the same type-first declarator
// grammar used everywhere else).
func (p *Parser) ParseModule() *ast.Module {
	start := p.stream.Lt(1).Start
	mod := &ast.Module{Start: start, File: p.file}

	for p.at(token.KeywordImport) {
		mod.Imports = append(mod.Imports, p.parseImport())
	}

	for !p.at(token.EndOfStream) {
		switch {
		case p.at(token.KeywordStruct):
			mod.Structures = append(mod.Structures, p.parseStructure())
		case p.at(token.KeywordNative):
			mod.Functions = append(mod.Functions, p.parseFunction())
		case p.at(token.KeywordLet) || p.at(token.KeywordVar):
			mod.Variables = append(mod.Variables, p.parseVarDecl())
		case isTypeStartKind(p.stream.La(1)) && p.isFunctionAhead():
			mod.Functions = append(mod.Functions, p.parseFunction())
		case isTypeStartKind(p.stream.La(1)):
			mod.Variables = append(mod.Variables, p.parseVarDecl())
		default:
			p.handler.ReportSyntactic(errors.UnexpectedToken, p.stream.Lt(1), token.KeywordStruct)
			p.synchronize(declarationFollow...)
			if p.at(token.EndOfStream) {
				return mod
			}
		}
	}
	return mod
}

// isFunctionAhead disambiguates a type-first `returnType name ( ... )`
// function declaration from a type-first variable declaration by
// scanning past the return type's `[]` array suffixes to check for a
// second identifier immediately followed by `(`.
func (p *Parser) isFunctionAhead() bool {
	k := 2
	for p.stream.La(k) == token.LeftBracket && p.stream.La(k+1) == token.RightBracket {
		k += 2
	}
	return p.stream.La(k) == token.Identifier && p.stream.La(k+1) == token.LeftParen
}

// isTypeFirstDeclAhead disambiguates a type-first statement-level
// declaration (`i32 x = 1;`, `Point p = new Point(1, 2);`) from an
// ordinary expression statement led by an identifier (`foo();`,
// `x = 1;`), by requiring a second identifier — past any `[]` array
// suffixes — before committing to the declaration parse.
func (p *Parser) isTypeFirstDeclAhead() bool {
	k1 := p.stream.La(1)
	if primitiveTypeKinds[k1] {
		return k1 != token.KeywordVoid
	}
	if k1 != token.Identifier {
		return false
	}
	k := 2
	for p.stream.La(k) == token.LeftBracket && p.stream.La(k+1) == token.RightBracket {
		k += 2
	}
	return p.stream.La(k) == token.Identifier
}

// parseImport corresponds to `"import" qname ("." "*")? ";"`.
// DescriptorEnd is kept pointing at the last real path identifier
// (never the wildcard) so UNKNOWN_MODULE can anchor there per spec §4.6.
func (p *Parser) parseImport() *ast.Import {
	start := p.advance().Start // `import`
	first, _ := p.expect(token.Identifier)
	descriptor := first.Text
	descriptorEnd := first.Start
	for p.at(token.Dot) && p.stream.La(2) == token.Identifier {
		p.advance()
		part, _ := p.expect(token.Identifier)
		descriptor += "." + part.Text
		descriptorEnd = part.Start
	}
	imp := &ast.Import{Descriptor: descriptor, Start: start, DescriptorEnd: descriptorEnd}
	if p.at(token.Dot) && p.stream.La(2) == token.Asterisk {
		p.advance() // `.`
		p.advance() // `*`
		imp.Wildcard = true
	}
	p.expect(token.Semicolon)
	return imp
}

func (p *Parser) parseTypeRef() *ast.TypeRef {
	start := p.stream.Lt(1).Start
	name := p.stream.Lt(1).Text
	p.advance()
	t := &ast.TypeRef{Name: name, Start: start}
	for p.at(token.LeftBracket) {
		p.advance()
		p.expect(token.RightBracket)
		t.ArrayDepth++
	}
	return t
}

// parseStructure corresponds to `"struct" IDENT "{" variableDecl* "}"`:
// each member is parsed through the same type-first declarator grammar
// as any other variableDecl, then flattened into an ast.Member.
func (p *Parser) parseStructure() *ast.Structure {
	start := p.advance().Start // `struct`
	name, _ := p.expect(token.Identifier)
	s := &ast.Structure{Name: name.Text, Start: start}
	p.expect(token.LeftBrace)
	for !p.at(token.RightBrace) && !p.at(token.EndOfStream) {
		vd := p.parseVarDecl()
		for _, d := range vd.Declarators {
			s.Members = append(s.Members, &ast.Member{Name: d.Name, Type: d.Type, Start: d.Start})
		}
	}
	p.expect(token.RightBrace)
	return s
}

// parseFunction corresponds to `returnType IDENT "(" params? ")" block`,
// with an optional leading `native` marking a body-less declaration
// terminated by `;` instead of a block.
func (p *Parser) parseFunction() *ast.Function {
	start := p.stream.Lt(1).Start
	native := false
	if p.at(token.KeywordNative) {
		native = true
		p.advance()
	}
	fn := &ast.Function{Native: native, Start: start}
	if p.at(token.KeywordVoid) {
		p.advance()
	} else {
		fn.ReturnType = p.parseTypeRef()
	}
	name, _ := p.expect(token.Identifier)
	fn.Name = name.Text

	p.expect(token.LeftParen)
	for !p.at(token.RightParen) && !p.at(token.EndOfStream) {
		if p.at(token.Ellipsis) {
			p.advance()
			fn.Variadic = true
			paramStart := p.stream.Lt(1).Start
			paramType := p.parseTypeRef()
			paramName, _ := p.expect(token.Identifier)
			fn.Parameters = append(fn.Parameters, &ast.Parameter{Name: paramName.Text, Type: paramType, Start: paramStart})
			break
		}
		paramStart := p.stream.Lt(1).Start
		paramType := p.parseTypeRef()
		paramName, _ := p.expect(token.Identifier)
		fn.Parameters = append(fn.Parameters, &ast.Parameter{Name: paramName.Text, Type: paramType, Start: paramStart})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.RightParen)

	if native {
		p.expect(token.Semicolon)
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseBlock parses `{ statement* }`.
func (p *Parser) parseBlock() *ast.Block {
	start, _ := p.expect(token.LeftBrace)
	b := &ast.Block{Start: start.Start}
	for !p.at(token.RightBrace) && !p.at(token.EndOfStream) {
		b.Statements = append(b.Statements, p.parseStatement())
	}
	p.expect(token.RightBrace)
	return b
}

var statementFollow = []token.Kind{token.Semicolon, token.RightBrace, token.EndOfStream}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.at(token.LeftBrace):
		return p.parseBlock()
	case p.at(token.KeywordLet) || p.at(token.KeywordVar):
		return p.parseVarDecl()
	case p.at(token.KeywordIf):
		return p.parseIf()
	case p.at(token.KeywordWhile):
		return p.parseWhile("")
	case p.at(token.KeywordFor):
		return p.parseFor("")
	case p.at(token.KeywordTry):
		return p.parseTry()
	case p.at(token.KeywordReturn):
		return p.parseReturn()
	case p.at(token.KeywordBreak):
		return p.parseBreak()
	case p.at(token.KeywordThrow):
		return p.parseThrow()
	case p.at(token.Identifier) && p.stream.La(2) == token.Colon:
		return p.parseLabelled()
	case p.isTypeFirstDeclAhead():
		return p.parseVarDecl()
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarDecl corresponds to `("let"|"var"|type) declarator ("," declarator)* ";"`.
// A `let`/`var`-introduced declaration leaves each declarator's type to
// be inferred from its initializer; a type-first declaration shares one
// explicit type across every comma-separated declarator.
func (p *Parser) parseVarDecl() *ast.VariableDecl {
	start := p.stream.Lt(1).Start
	constant := false
	var sharedType *ast.TypeRef
	switch {
	case p.at(token.KeywordLet):
		p.advance()
		constant = true
	case p.at(token.KeywordVar):
		p.advance()
	default:
		sharedType = p.parseTypeRef()
	}
	decl := &ast.VariableDecl{Constant: constant, Start: start}
	for {
		d := p.parseDeclarator()
		d.Type = sharedType
		decl.Declarators = append(decl.Declarators, d)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.Semicolon)
	return decl
}

// parseDeclarator corresponds to `IDENT ("=" expression)?`.
func (p *Parser) parseDeclarator() *ast.Declarator {
	start := p.stream.Lt(1).Start
	name, _ := p.expect(token.Identifier)
	d := &ast.Declarator{Name: name.Text, Start: start}
	if p.at(token.Equal) {
		p.advance()
		d.Initializer = p.parseAssignment()
	}
	return d
}

func (p *Parser) parseIf() *ast.IfStatement {
	start := p.advance().Start // `if`
	p.expect(token.LeftParen)
	cond := p.parseExpression()
	p.expect(token.RightParen)
	then := p.parseBlock()
	stmt := &ast.IfStatement{Condition: cond, Then: then, Start: start}
	if p.at(token.KeywordElse) {
		p.advance()
		if p.at(token.KeywordIf) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

// parseLabelled corresponds to a label prefix (`outer:`) ahead of a
// `while` or `for` (spec §4.8 lowers `break outer;` to `goto __outerExit;`).
func (p *Parser) parseLabelled() ast.Statement {
	label := p.advance().Text // identifier
	p.advance()               // `:`
	switch {
	case p.at(token.KeywordWhile):
		return p.parseWhile(label)
	case p.at(token.KeywordFor):
		return p.parseFor(label)
	default:
		p.handler.ReportSyntactic(errors.UnexpectedToken, p.stream.Lt(1), token.KeywordWhile)
		p.synchronize(statementFollow...)
		return &ast.Block{}
	}
}

func (p *Parser) parseWhile(label string) *ast.IterativeStatement {
	start := p.advance().Start // `while`
	p.expect(token.LeftParen)
	cond := p.parseExpression()
	p.expect(token.RightParen)
	body := p.parseBlock()
	return &ast.IterativeStatement{Label: label, Condition: cond, Body: body, Start: start}
}

func (p *Parser) parseFor(label string) *ast.IterativeStatement {
	start := p.advance().Start // `for`
	p.expect(token.LeftParen)
	stmt := &ast.IterativeStatement{Label: label, Start: start}
	if !p.at(token.Semicolon) {
		if p.at(token.KeywordLet) || p.at(token.KeywordVar) || p.isTypeFirstDeclAhead() {
			stmt.Init = p.parseVarDeclNoSemicolon()
		} else {
			stmt.Init = &ast.ExpressionStatement{Expr: p.parseExpression(), Start: p.stream.Lt(1).Start}
		}
	}
	p.expect(token.Semicolon)
	if !p.at(token.Semicolon) {
		stmt.Condition = p.parseExpression()
	}
	p.expect(token.Semicolon)
	if !p.at(token.RightParen) {
		stmt.Post = p.parseExpression()
	}
	p.expect(token.RightParen)
	stmt.Body = p.parseBlock()
	return stmt
}

// parseVarDeclNoSemicolon parses a `for`-init declaration, which shares
// the declarator grammar but is terminated by the loop's own `;`.
func (p *Parser) parseVarDeclNoSemicolon() *ast.VariableDecl {
	start := p.stream.Lt(1).Start
	constant := false
	var sharedType *ast.TypeRef
	switch {
	case p.at(token.KeywordLet):
		p.advance()
		constant = true
	case p.at(token.KeywordVar):
		p.advance()
	default:
		sharedType = p.parseTypeRef()
	}
	decl := &ast.VariableDecl{Constant: constant, Start: start}
	for {
		d := p.parseDeclarator()
		d.Type = sharedType
		decl.Declarators = append(decl.Declarators, d)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return decl
}

// parseTry allows an untyped `catch (name)` clause alongside a typed
// `catch (Type name)` one, matching `param := type IDENT` while still
// letting a handler catch without naming an exception type.
func (p *Parser) parseTry() *ast.TryStatement {
	start := p.advance().Start // `try`
	body := p.parseBlock()
	stmt := &ast.TryStatement{Body: body, Start: start}
	if p.at(token.KeywordCatch) {
		p.advance()
		p.expect(token.LeftParen)
		if p.at(token.Identifier) && p.stream.La(2) == token.RightParen {
			param, _ := p.expect(token.Identifier)
			stmt.CatchParam = param.Text
		} else {
			stmt.CatchType = p.parseTypeRef()
			param, _ := p.expect(token.Identifier)
			stmt.CatchParam = param.Text
		}
		p.expect(token.RightParen)
		stmt.CatchBody = p.parseBlock()
	}
	if p.at(token.KeywordFinally) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	if stmt.CatchBody == nil && stmt.Finally == nil {
		p.handler.ReportSyntactic(errors.TryStatementExpectsCatchOrFinally, p.stream.Lt(1), token.KeywordCatch)
	}
	return stmt
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	start := p.advance().Start // `return`
	stmt := &ast.ReturnStatement{Start: start}
	if !p.at(token.Semicolon) {
		stmt.Value = p.parseExpression()
	}
	p.expect(token.Semicolon)
	return stmt
}

func (p *Parser) parseBreak() *ast.BreakStatement {
	start := p.advance().Start // `break`
	stmt := &ast.BreakStatement{Start: start}
	if p.at(token.Identifier) {
		stmt.Label = p.advance().Text
	}
	p.expect(token.Semicolon)
	return stmt
}

func (p *Parser) parseThrow() *ast.ThrowStatement {
	start := p.advance().Start // `throw`
	value := p.parseExpression()
	p.expect(token.Semicolon)
	return &ast.ThrowStatement{Value: value, Start: start}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	start := p.stream.Lt(1).Start
	expr := p.parseExpression()
	p.expect(token.Semicolon)
	return &ast.ExpressionStatement{Expr: expr, Start: start}
}

// ParseExpression parses one expression from the current position. It
// is exported API; nothing in this repository calls it, since the
// parser's own methods use parseExpression directly.
func (p *Parser) ParseExpression() ast.Expression { return p.parseExpression() }

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

var assignmentOperators = map[token.Kind]bool{
	token.Equal: true, token.PlusEqual: true, token.DashEqual: true,
	token.AsteriskEqual: true, token.SlashEqual: true, token.PercentEqual: true,
	token.Asterisk2Equal: true, token.AmpersandEqual: true, token.PipeEqual: true,
	token.CaretEqual: true, token.LeftAngle2Equal: true, token.RightAngle2Equal: true,
	token.RightAngle3Equal: true,
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseConditional()
	if assignmentOperators[p.stream.La(1)] {
		op := p.advance()
		value := p.parseAssignment()
		return &ast.AssignmentExpression{Target: left, Operator: op.Kind, Value: value, Start: left.Pos()}
	}
	return left
}

func (p *Parser) parseConditional() ast.Expression {
	cond := p.parseLogicalOr()
	if p.at(token.Question) {
		p.advance()
		then := p.parseAssignment()
		p.expect(token.Colon)
		els := p.parseAssignment()
		return &ast.ConditionalExpression{Condition: cond, Then: then, Else: els, Start: cond.Pos()}
	}
	return cond
}

// binaryLevel builds one left-associative precedence level: parse the
// next-tighter level, then fold in zero or more (operator, operand)
// pairs whose operator kind is in ops.
func (p *Parser) binaryLevel(next func() ast.Expression, ops ...token.Kind) ast.Expression {
	left := next()
	var pairs []ast.BinaryPair
	for {
		matched := false
		for _, op := range ops {
			if p.at(op) {
				p.advance()
				pairs = append(pairs, ast.BinaryPair{Operator: op, Right: next()})
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	if len(pairs) == 0 {
		return left
	}
	return &ast.BinaryExpression{Left: left, Pairs: pairs, Start: left.Pos()}
}

func (p *Parser) parseLogicalOr() ast.Expression {
	return p.binaryLevel(p.parseLogicalAnd, token.Pipe2)
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	return p.binaryLevel(p.parseInclusiveOr, token.Ampersand2)
}

func (p *Parser) parseInclusiveOr() ast.Expression {
	return p.binaryLevel(p.parseExclusiveOr, token.Pipe)
}

func (p *Parser) parseExclusiveOr() ast.Expression {
	return p.binaryLevel(p.parseAnd, token.Caret)
}

func (p *Parser) parseAnd() ast.Expression {
	return p.binaryLevel(p.parseEquality, token.Ampersand)
}

func (p *Parser) parseEquality() ast.Expression {
	return p.binaryLevel(p.parseRelational, token.EqualEqual, token.BangEqual)
}

func (p *Parser) parseRelational() ast.Expression {
	return p.binaryLevel(p.parseShift, token.LeftAngle, token.LeftAngleEqual, token.RightAngle, token.RightAngleEqual)
}

func (p *Parser) parseShift() ast.Expression {
	return p.binaryLevel(p.parseAdditive, token.LeftAngle2, token.RightAngle2, token.RightAngle3)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.binaryLevel(p.parseMultiplicative, token.Plus, token.Dash)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.binaryLevel(p.parseUnary, token.Asterisk, token.Slash, token.Percent, token.Asterisk2)
}

var unaryOperators = map[token.Kind]bool{
	token.Bang: true, token.Dash: true, token.Plus: true, token.Tilde: true,
}

func (p *Parser) parseUnary() ast.Expression {
	if unaryOperators[p.stream.La(1)] {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Operator: op.Kind, Operand: operand, Start: op.Start}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	primary := p.parsePrimary()
	expr := &ast.PostfixExpression{Primary: primary, Start: primary.Pos()}
	for {
		switch {
		case p.at(token.LeftBracket):
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RightBracket)
			expr.Parts = append(expr.Parts, ast.PostfixPart{Index: idx, Start: idx.Pos()})
		case p.at(token.LeftParen):
			start := p.advance().Start
			var args []ast.Expression
			for !p.at(token.RightParen) && !p.at(token.EndOfStream) {
				args = append(args, p.parseAssignment())
				if p.at(token.Comma) {
					p.advance()
				}
			}
			p.expect(token.RightParen)
			expr.Parts = append(expr.Parts, ast.PostfixPart{IsCall: true, Arguments: args, Start: start})
		case p.at(token.Dot) || p.at(token.Question) && p.stream.La(2) == token.Dot:
			safe := p.at(token.Question)
			if safe {
				p.advance()
			}
			start := p.advance().Start // `.`
			name, _ := p.expect(token.Identifier)
			expr.Parts = append(expr.Parts, ast.PostfixPart{Member: name.Text, Safe: safe, Start: start})
		default:
			if len(expr.Parts) == 0 {
				return primary
			}
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.stream.Lt(1)
	switch tok.Kind {
	case token.IntegerLiteral, token.FloatLiteral, token.StringLiteral,
		token.KeywordTrue, token.KeywordFalse, token.KeywordNull:
		p.advance()
		return &ast.LiteralExpression{Token: tok, Start: tok.Start}
	case token.KeywordThis:
		p.advance()
		return &ast.ThisExpression{Start: tok.Start}
	case token.Identifier:
		p.advance()
		return &ast.IdentifierExpression{Name: tok.Text, Start: tok.Start}
	case token.LeftParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RightParen)
		return &ast.ParenExpression{Inner: inner, Start: tok.Start}
	case token.LeftBracket:
		p.advance()
		lit := &ast.ArrayLiteral{Start: tok.Start}
		for !p.at(token.RightBracket) && !p.at(token.EndOfStream) {
			lit.Elements = append(lit.Elements, p.parseAssignment())
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.RightBracket)
		return lit
	case token.KeywordNew:
		p.advance()
		typeRef := p.parseTypeRef()
		p.expect(token.LeftParen)
		n := &ast.NewExpression{Type: typeRef, Start: tok.Start}
		for !p.at(token.RightParen) && !p.at(token.EndOfStream) {
			n.Arguments = append(n.Arguments, p.parseAssignment())
			if p.at(token.Comma) {
				p.advance()
			}
		}
		p.expect(token.RightParen)
		return n
	default:
		p.handler.ReportSyntactic(errors.UnexpectedToken, tok, token.Identifier)
		p.advance()
		return &ast.LiteralExpression{Token: tok, Start: tok.Start}
	}
}
