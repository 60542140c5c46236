// Package ast defines Kush's abstract syntax tree (component D). Every
// node is a concrete struct; dispatch over node kinds happens by type
// switch at the call site (analyzer, emitter) rather than through a
// visitor interface, matching the teacher's own
// internal/compiler/ast.go shape.
package ast

import "github.com/kush-lang/kushc/compiler/token"

// Node is implemented by every AST node. Pos anchors diagnostics back
// to source.
type Node interface {
	Pos() token.Position
}

// Module is the root of one compiled file (spec §4.3 grammar rule
// `module`).
type Module struct {
	Imports     []*Import
	Functions   []*Function
	Structures  []*Structure
	Variables   []*VariableDecl
	Start       token.Position
	File        string
}

func (m *Module) Pos() token.Position { return m.Start }

// Import corresponds to `import qname ("." "*")? ;`.
type Import struct {
	Descriptor    string // dotted path without a trailing wildcard, e.g. "kush.core"
	Wildcard      bool   // true when the source wrote a trailing ".*"
	Start         token.Position
	DescriptorEnd token.Position // position of Descriptor's last identifier, for UNKNOWN_MODULE
}

func (i *Import) Pos() token.Position { return i.Start }

// TypeRef is a syntactic type reference (not yet resolved against a
// types.Registry — that happens in the analyzer).
type TypeRef struct {
	Name       string // primitive name or structure name
	ArrayDepth int    // number of trailing [] suffixes
	Start      token.Position
}

func (t *TypeRef) Pos() token.Position { return t.Start }

// Parameter is one entry of a function's parameter list.
type Parameter struct {
	Name  string
	Type  *TypeRef
	Start token.Position
}

func (p *Parameter) Pos() token.Position { return p.Start }

// Function is a top-level function declaration.
type Function struct {
	Name       string
	Native     bool
	Variadic   bool // true when the parameter list ended in `"," "..." param`
	Parameters []*Parameter
	ReturnType *TypeRef // nil means void
	Body       *Block   // nil for `native` declarations
	Start      token.Position
}

func (f *Function) Pos() token.Position { return f.Start }

// Structure is a `struct Name { ... }` declaration.
type Structure struct {
	Name    string
	Members []*Member
	Start   token.Position
}

func (s *Structure) Pos() token.Position { return s.Start }

// Member is one field of a Structure.
type Member struct {
	Name  string
	Type  *TypeRef
	Start token.Position
}

func (m *Member) Pos() token.Position { return m.Start }

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Block is a brace-delimited statement sequence and its own lexical
// scope boundary (spec §4.5).
type Block struct {
	Statements []Statement
	Start      token.Position
}

func (b *Block) Pos() token.Position { return b.Start }
func (b *Block) statementNode()      {}

// VariableDecl corresponds to `let`/`var` declarations and to
// type-first declarations (`i32 x = 1;`), which may declare several
// comma-separated Declarators sharing one keyword or leading type.
type VariableDecl struct {
	Constant    bool // true for `let`, false for `var` and type-first declarations
	Declarators []*Declarator
	Start       token.Position
}

func (v *VariableDecl) Pos() token.Position { return v.Start }
func (v *VariableDecl) statementNode()      {}

// Declarator is one `name [= initializer]` entry; Type is the
// declaration's shared leading type in the type-first form.
type Declarator struct {
	Name        string
	Type        *TypeRef // nil when the type is inferred from Initializer
	Initializer Expression
	Start       token.Position
}

func (d *Declarator) Pos() token.Position { return d.Start }

// IfStatement covers both `if/else` and chained `else if` (the parser
// nests a further IfStatement into Else for the chained form).
type IfStatement struct {
	Condition Expression
	Then      *Block
	Else      Statement // *Block, *IfStatement, or nil
	Start     token.Position
}

func (i *IfStatement) Pos() token.Position { return i.Start }
func (i *IfStatement) statementNode()      {}

// IterativeStatement covers `while` and the C-style `for` (spec §4.3's
// single iterative-statement production), disambiguated by which of
// Init/Post are non-nil. Label supports the emitter's labelled-loop to
// `goto` lowering for `break <label>;` (spec §4.8).
type IterativeStatement struct {
	Label     string
	Init      Statement // nil for `while`
	Condition Expression
	Post      Expression // nil for `while`
	Body      *Block
	Start     token.Position
}

func (it *IterativeStatement) Pos() token.Position { return it.Start }
func (it *IterativeStatement) statementNode()      {}

// TryStatement models `try { } catch (param) { } finally { }`; per
// spec §4.3 at least one of Catch/Finally must be present (enforced by
// the parser, reported as TryStatementExpectsCatchOrFinally).
type TryStatement struct {
	Body          *Block
	CatchParam    string
	CatchType     *TypeRef
	CatchBody     *Block // nil if no catch clause
	Finally       *Block // nil if no finally clause
	Start         token.Position
}

func (t *TryStatement) Pos() token.Position { return t.Start }
func (t *TryStatement) statementNode()      {}

// ReturnStatement corresponds to `return [expr] ;`.
type ReturnStatement struct {
	Value Expression // nil for bare `return;`
	Start token.Position
}

func (r *ReturnStatement) Pos() token.Position { return r.Start }
func (r *ReturnStatement) statementNode()      {}

// BreakStatement corresponds to `break [label] ;`.
type BreakStatement struct {
	Label string // empty when unlabelled
	Start token.Position
}

func (b *BreakStatement) Pos() token.Position { return b.Start }
func (b *BreakStatement) statementNode()      {}

// ThrowStatement corresponds to `throw expr ;`.
type ThrowStatement struct {
	Value Expression
	Start token.Position
}

func (t *ThrowStatement) Pos() token.Position { return t.Start }
func (t *ThrowStatement) statementNode()      {}

// ExpressionStatement wraps a bare expression used as a statement
// (typically an assignment or call).
type ExpressionStatement struct {
	Expr  Expression
	Start token.Position
}

func (e *ExpressionStatement) Pos() token.Position { return e.Start }
func (e *ExpressionStatement) statementNode()      {}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// AssignmentExpression covers `=` and every compound assignment
// operator (spec §4.3's assignmentOperator production).
type AssignmentExpression struct {
	Target   Expression
	Operator token.Kind
	Value    Expression
	Start    token.Position
}

func (a *AssignmentExpression) Pos() token.Position { return a.Start }
func (a *AssignmentExpression) expressionNode()     {}

// ConditionalExpression is the `cond ? then : else` ternary.
type ConditionalExpression struct {
	Condition Expression
	Then      Expression
	Else      Expression
	Start     token.Position
}

func (c *ConditionalExpression) Pos() token.Position { return c.Start }
func (c *ConditionalExpression) expressionNode()     {}

// BinaryPair is one (operator, right-operand) step of a left-to-right
// binary expression chain.
type BinaryPair struct {
	Operator token.Kind
	Right    Expression
}

// BinaryExpression models a left-associative chain of same-precedence
// binary operators as one left operand plus an ordered list of
// (operator, operand) pairs, rather than a binary tree, so the
// analyzer and emitter can both walk strictly left-to-right (spec
// §4.6's evaluation-order invariant).
type BinaryExpression struct {
	Left  Expression
	Pairs []BinaryPair
	Start token.Position
}

func (b *BinaryExpression) Pos() token.Position { return b.Start }
func (b *BinaryExpression) expressionNode()     {}

// UnaryExpression covers prefix `!`, `-`, `+`, `~`.
type UnaryExpression struct {
	Operator token.Kind
	Operand  Expression
	Start    token.Position
}

func (u *UnaryExpression) Pos() token.Position { return u.Start }
func (u *UnaryExpression) expressionNode()     {}

// PostfixPart is one subscript/call/member suffix applied to a postfix
// expression's primary operand, in left-to-right application order.
type PostfixPart struct {
	// Subscript: Index != nil.
	Index Expression
	// Call: IsCall is true and Arguments holds the (possibly empty)
	// argument list.
	IsCall    bool
	Arguments []Expression
	// Member access: Member != "" (Safe marks `?.`).
	Member string
	Safe   bool
	Start  token.Position
}

// PostfixExpression applies subscript/call/member-access suffixes to a
// primary expression, left to right (spec §4.3's postfixExpression
// production, §4.6's postfix-chain typing rule).
type PostfixExpression struct {
	Primary Expression
	Parts   []PostfixPart
	Start   token.Position
}

func (p *PostfixExpression) Pos() token.Position { return p.Start }
func (p *PostfixExpression) expressionNode()     {}

// NewExpression is `new Type ( args... )`.
type NewExpression struct {
	Type      *TypeRef
	Arguments []Expression
	Start     token.Position
}

func (n *NewExpression) Pos() token.Position { return n.Start }
func (n *NewExpression) expressionNode()     {}

// ArrayLiteral is `[ elem, elem, ... ]`.
type ArrayLiteral struct {
	Elements []Expression
	Start    token.Position
}

func (a *ArrayLiteral) Pos() token.Position { return a.Start }
func (a *ArrayLiteral) expressionNode()     {}

// IdentifierExpression references a declared symbol by name; the
// analyzer resolves it to a *scope.Symbol.
type IdentifierExpression struct {
	Name  string
	Start token.Position
}

func (i *IdentifierExpression) Pos() token.Position { return i.Start }
func (i *IdentifierExpression) expressionNode()     {}

// ThisExpression is the `this` reference inside a structure's method.
type ThisExpression struct {
	Start token.Position
}

func (t *ThisExpression) Pos() token.Position { return t.Start }
func (t *ThisExpression) expressionNode()     {}

// LiteralExpression wraps a token-carried literal (int/float/string/
// bool/null) as a primary expression; Token.Kind disambiguates which.
type LiteralExpression struct {
	Token token.Token
	Start token.Position
}

func (l *LiteralExpression) Pos() token.Position { return l.Start }
func (l *LiteralExpression) expressionNode()     {}

// ParenExpression is a parenthesized sub-expression, kept as its own
// node (rather than unwrapped); the emitter always re-emits the
// parentheses around it.
type ParenExpression struct {
	Inner Expression
	Start token.Position
}

func (p *ParenExpression) Pos() token.Position { return p.Start }
func (p *ParenExpression) expressionNode()     {}
