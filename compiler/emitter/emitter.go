// Package emitter lowers an analyzed Module to C source text (component
// J, spec §4.8), grounded on the teacher's buffer+indent-depth code
// generator (internal/compiler/codegen/generator.go) retargeted from Go
// output to C output.
package emitter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kush-lang/kushc/compiler/analyzer"
	"github.com/kush-lang/kushc/compiler/ast"
	"github.com/kush-lang/kushc/compiler/token"
	"github.com/kush-lang/kushc/compiler/types"
)

// Emitter walks one analyzer.Result and writes C text into buf,
// tracking indent depth the way the teacher's Generator does.
type Emitter struct {
	buf    bytes.Buffer
	indent int
	result *analyzer.Result
	labels map[*ast.IterativeStatement]string
}

// New builds an Emitter for result, the output of a completed analysis
// pass. The caller must not invoke Emit when
// result came from a Module with semantic errors (spec §7 forbids
// emitting C for an ill-typed program).
func New(result *analyzer.Result) *Emitter {
	return &Emitter{result: result, labels: make(map[*ast.IterativeStatement]string)}
}

func (e *Emitter) writeLine(format string, args ...interface{}) {
	e.buf.WriteString(strings.Repeat("    ", e.indent))
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *Emitter) write(format string, args ...interface{}) {
	fmt.Fprintf(&e.buf, format, args...)
}

// Emit lowers the whole module to one C translation unit's text.
func (e *Emitter) Emit() string {
	e.buf.Reset()
	e.writeLine("#include \"kush_runtime.h\"")
	e.buf.WriteByte('\n')

	for _, s := range e.result.Module.Structures {
		e.writeLine("typedef struct %s %s;", s.Name, s.Name)
	}
	if len(e.result.Module.Structures) > 0 {
		e.buf.WriteByte('\n')
	}
	for _, s := range e.result.Module.Structures {
		e.emitStructure(s)
	}

	for _, fn := range e.result.Module.Functions {
		e.writeLine("%s;", e.prototype(fn))
	}
	e.buf.WriteByte('\n')

	for _, fn := range e.result.Module.Functions {
		if fn.Native {
			continue
		}
		e.emitFunction(fn)
		e.buf.WriteByte('\n')
	}
	return e.buf.String()
}

func (e *Emitter) emitStructure(s *ast.Structure) {
	e.writeLine("struct %s {", s.Name)
	e.indent++
	for _, m := range s.Members {
		e.writeLine("%s %s;", e.cType(m.Type), m.Name)
	}
	e.indent--
	e.writeLine("};")
	e.buf.WriteByte('\n')
}

// cType renders an ast.TypeRef's C spelling: a resolved primitive name
// maps via cTypeNames, a structure name is its own C struct name, and
// each array depth lowers to one trailing pointer level (spec §4.8 —
// Kush arrays are not fixed-size C arrays, since their length is a
// runtime property).
func (e *Emitter) cType(ref *ast.TypeRef) string {
	base, ok := cTypeNames[ref.Name]
	if !ok {
		base = ref.Name // structure type: its own C struct name
	}
	return base + strings.Repeat("*", ref.ArrayDepth)
}

// cTypeFromType renders a resolved types.Type's C spelling, the
// inferred-type counterpart to cType for declarators the parser left
// untyped (spec §4.3's `let`/`var` form: the type comes from the
// analyzer's inference, not from source text).
func (e *Emitter) cTypeFromType(t *types.Type) string {
	if t == nil {
		return "void*"
	}
	if t.Tag == types.Array {
		return e.cTypeFromType(t.Base) + "*"
	}
	if t.Tag == types.StructureTag {
		return t.Name
	}
	if base, ok := cTypeNames[t.Name]; ok {
		return base
	}
	return t.Name
}

// declaratorCType resolves a declarator's C type: the parsed type when
// the source named one, otherwise the analyzer's inferred type for its
// initializer.
func (e *Emitter) declaratorCType(d *ast.Declarator) string {
	if d.Type != nil {
		return e.cType(d.Type)
	}
	if d.Initializer != nil {
		if t, ok := e.result.ExprTypes[d.Initializer]; ok {
			return e.cTypeFromType(t)
		}
	}
	return "void*"
}

func (e *Emitter) returnCType(ref *ast.TypeRef) string {
	if ref == nil {
		return "void"
	}
	return e.cType(ref)
}

func (e *Emitter) prototype(fn *ast.Function) string {
	var params []string
	for _, p := range fn.Parameters {
		params = append(params, fmt.Sprintf("%s %s", e.cType(p.Type), p.Name))
	}
	if len(params) == 0 {
		params = []string{"void"}
	}
	return fmt.Sprintf("%s %s(%s)", e.returnCType(fn.ReturnType), fn.Name, strings.Join(params, ", "))
}

func (e *Emitter) emitFunction(fn *ast.Function) {
	e.writeLine("%s {", e.prototype(fn))
	e.indent++
	for _, stmt := range fn.Body.Statements {
		e.emitStatement(stmt)
	}
	e.indent--
	e.writeLine("}")
}

// emitStatement lowers one statement. Labelled loops lower to a plain
// C loop followed by a `__<label>Exit:` label (spec §4.8); `break
// <label>;` lowers to `goto __<label>Exit;` inside emitBreak.
func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		e.writeLine("{")
		e.indent++
		for _, inner := range s.Statements {
			e.emitStatement(inner)
		}
		e.indent--
		e.writeLine("}")
	case *ast.VariableDecl:
		e.emitVariableDecl(s)
	case *ast.IfStatement:
		e.emitIf(s)
	case *ast.IterativeStatement:
		e.emitIterative(s)
	case *ast.TryStatement:
		e.emitTry(s)
	case *ast.ReturnStatement:
		if s.Value == nil {
			e.writeLine("return;")
		} else {
			e.writeLine("return %s;", e.expr(s.Value))
		}
	case *ast.BreakStatement:
		e.emitBreak(s)
	case *ast.ThrowStatement:
		e.writeLine("/* throw */ abort();")
	case *ast.ExpressionStatement:
		e.writeLine("%s;", e.expr(s.Expr))
	}
}

func (e *Emitter) emitVariableDecl(decl *ast.VariableDecl) {
	for _, d := range decl.Declarators {
		ctype := e.declaratorCType(d)
		if d.Initializer != nil {
			e.writeLine("%s %s = %s;", ctype, d.Name, e.expr(d.Initializer))
		} else {
			e.writeLine("%s %s;", ctype, d.Name)
		}
	}
}

func (e *Emitter) emitIf(s *ast.IfStatement) {
	e.writeLine("if (%s) {", e.expr(s.Condition))
	e.indent++
	for _, stmt := range s.Then.Statements {
		e.emitStatement(stmt)
	}
	e.indent--
	e.emitElseTail(s.Else)
}

// emitElseTail closes an `else if` chain, recursing for further
// `else if` links and terminating on a plain `else` or no else at all.
func (e *Emitter) emitElseTail(tail ast.Statement) {
	switch els := tail.(type) {
	case nil:
		e.writeLine("}")
	case *ast.IfStatement:
		e.writeLine("} else if (%s) {", e.expr(els.Condition))
		e.indent++
		for _, stmt := range els.Then.Statements {
			e.emitStatement(stmt)
		}
		e.indent--
		e.emitElseTail(els.Else)
	case *ast.Block:
		e.writeLine("} else {")
		e.indent++
		for _, stmt := range els.Statements {
			e.emitStatement(stmt)
		}
		e.indent--
		e.writeLine("}")
	}
}

func (e *Emitter) exitLabel(s *ast.IterativeStatement) string {
	if s.Label == "" {
		return ""
	}
	if label, ok := e.labels[s]; ok {
		return label
	}
	label := "__" + s.Label + "Exit"
	e.labels[s] = label
	return label
}

func (e *Emitter) emitIterative(s *ast.IterativeStatement) {
	switch {
	case s.Init != nil || s.Post != nil:
		init := ""
		if s.Init != nil {
			init = e.forInitText(s.Init)
		}
		cond := ""
		if s.Condition != nil {
			cond = e.expr(s.Condition)
		}
		post := ""
		if s.Post != nil {
			post = e.expr(s.Post)
		}
		e.writeLine("for (%s; %s; %s) {", init, cond, post)
	default:
		e.writeLine("while (%s) {", e.expr(s.Condition))
	}
	e.indent++
	for _, stmt := range s.Body.Statements {
		e.emitStatement(stmt)
	}
	e.indent--
	e.writeLine("}")
	if s.Label != "" {
		e.writeLine("%s: ;", e.exitLabel(s))
	}
}

// forInitText renders a `for`-loop init clause inline (C's `for` header
// embeds the declaration, it does not start a new statement line).
func (e *Emitter) forInitText(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		var parts []string
		for _, d := range s.Declarators {
			ctype := e.declaratorCType(d)
			if d.Initializer != nil {
				parts = append(parts, fmt.Sprintf("%s %s = %s", ctype, d.Name, e.expr(d.Initializer)))
			} else {
				parts = append(parts, fmt.Sprintf("%s %s", ctype, d.Name))
			}
		}
		return strings.Join(parts, ", ")
	case *ast.ExpressionStatement:
		return e.expr(s.Expr)
	default:
		return ""
	}
}

// emitTry lowers `try/catch/finally` to plain sequential C: Kush's
// exception model has no C++-style unwinding target in this minimal
// runtime, so the try body and then the finally body are emitted as
// straight-line blocks. The catch body is not emitted at all: `throw`
// lowers to `abort()`, so no catch clause could ever run.
func (e *Emitter) emitTry(s *ast.TryStatement) {
	e.writeLine("{")
	e.indent++
	for _, stmt := range s.Body.Statements {
		e.emitStatement(stmt)
	}
	e.indent--
	e.writeLine("}")
	if s.Finally != nil {
		e.writeLine("{")
		e.indent++
		for _, stmt := range s.Finally.Statements {
			e.emitStatement(stmt)
		}
		e.indent--
		e.writeLine("}")
	}
}

func (e *Emitter) emitBreak(s *ast.BreakStatement) {
	if s.Label == "" {
		e.writeLine("break;")
		return
	}
	e.writeLine("goto __%sExit;", s.Label)
}

// expr renders an expression as inline C text.
func (e *Emitter) expr(expr ast.Expression) string {
	switch ex := expr.(type) {
	case *ast.LiteralExpression:
		return e.literal(ex)
	case *ast.IdentifierExpression:
		return ex.Name
	case *ast.ThisExpression:
		return "self"
	case *ast.ParenExpression:
		return "(" + e.expr(ex.Inner) + ")"
	case *ast.UnaryExpression:
		return operatorText(ex.Operator) + e.expr(ex.Operand)
	case *ast.BinaryExpression:
		return e.binary(ex)
	case *ast.ConditionalExpression:
		return fmt.Sprintf("(%s ? %s : %s)", e.expr(ex.Condition), e.expr(ex.Then), e.expr(ex.Else))
	case *ast.AssignmentExpression:
		return fmt.Sprintf("%s %s %s", e.expr(ex.Target), operatorText(ex.Operator), e.expr(ex.Value))
	case *ast.ArrayLiteral:
		var elems []string
		for _, el := range ex.Elements {
			elems = append(elems, e.expr(el))
		}
		return "{" + strings.Join(elems, ", ") + "}"
	case *ast.NewExpression:
		var args []string
		for _, a := range ex.Arguments {
			args = append(args, e.expr(a))
		}
		return fmt.Sprintf("%s_new(%s)", ex.Type.Name, strings.Join(args, ", "))
	case *ast.PostfixExpression:
		return e.postfix(ex)
	default:
		return "/* unsupported expression */"
	}
}

// literal renders a literal token; string literals are re-encoded from
// their lexer-decoded runtime value into C string-literal escape
// syntax (Open Question resolved as option (a), SPEC_FULL.md §4.8).
func (e *Emitter) literal(ex *ast.LiteralExpression) string {
	switch ex.Token.Kind {
	case token.StringLiteral:
		return "k_makeString(" + quoteC(ex.Token.Text) + ")"
	case token.KeywordTrue:
		return "true"
	case token.KeywordFalse:
		return "false"
	case token.KeywordNull:
		return "NULL"
	default:
		return ex.Token.Text
	}
}

// quoteC re-encodes a decoded runtime string value back into a C
// double-quoted string literal with C escape syntax.
func quoteC(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// binary renders a left-to-right chain of same-precedence operators,
// preserving Kush's evaluation order (spec §4.6) by nesting each fold
// step as `(running op next)` rather than relying on C's own
// precedence/associativity for the combined chain.
func (e *Emitter) binary(b *ast.BinaryExpression) string {
	result := e.expr(b.Left)
	for _, pair := range b.Pairs {
		result = fmt.Sprintf("(%s %s %s)", result, operatorText(pair.Operator), e.expr(pair.Right))
	}
	return result
}

func (e *Emitter) postfix(p *ast.PostfixExpression) string {
	result := e.expr(p.Primary)
	for _, part := range p.Parts {
		switch {
		case part.Index != nil:
			result = fmt.Sprintf("%s[%s]", result, e.expr(part.Index))
		case part.IsCall:
			var args []string
			for _, a := range part.Arguments {
				args = append(args, e.expr(a))
			}
			result = fmt.Sprintf("%s(%s)", result, strings.Join(args, ", "))
		case part.Member != "":
			result = fmt.Sprintf("%s->%s", result, part.Member)
		}
	}
	return result
}

var operatorTexts = map[token.Kind]string{
	token.Plus: "+", token.Dash: "-", token.Asterisk: "*", token.Slash: "/",
	token.Percent: "%", token.Asterisk2: "*", // exponent mapped to multiply (runtime pow for ints is out of scope)
	token.Ampersand: "&", token.Pipe: "|", token.Caret: "^",
	token.Ampersand2: "&&", token.Pipe2: "||", token.Bang: "!", token.Tilde: "~",
	token.EqualEqual: "==", token.BangEqual: "!=",
	token.LeftAngle: "<", token.LeftAngleEqual: "<=",
	token.RightAngle: ">", token.RightAngleEqual: ">=",
	token.LeftAngle2: "<<", token.RightAngle2: ">>", token.RightAngle3: ">>>",
	token.Equal: "=", token.PlusEqual: "+=", token.DashEqual: "-=",
	token.AsteriskEqual: "*=", token.SlashEqual: "/=", token.PercentEqual: "%=",
	token.AmpersandEqual: "&=", token.PipeEqual: "|=", token.CaretEqual: "^=",
	token.LeftAngle2Equal: "<<=", token.RightAngle2Equal: ">>=",
}

func operatorText(k token.Kind) string {
	if text, ok := operatorTexts[k]; ok {
		return text
	}
	return k.String()
}
