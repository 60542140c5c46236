// Package analyzer implements Kush's two-pass semantic analysis
// (component H, spec §4.6): a declare pass that registers every
// top-level structure, function, and variable before any body is
// inspected, followed by a resolve/type-check pass over executable
// code.
package analyzer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kush-lang/kushc/compiler/ast"
	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/moduleloader"
	"github.com/kush-lang/kushc/compiler/scope"
	"github.com/kush-lang/kushc/compiler/token"
	"github.com/kush-lang/kushc/compiler/types"
)

// Result carries everything the emitter needs out of analysis: the
// per-expression resolved type and the module's root scope (for symbol
// lookups the emitter repeats, e.g. resolving an identifier's storage
// class).
type Result struct {
	Module     *ast.Module
	RootScope  *scope.Scope
	ExprTypes  map[ast.Expression]*types.Type
	Structures map[string]*types.Structure
	Functions  map[string]*ast.Function
}

// Analyzer runs the declare-then-resolve walk over one parsed Module.
type Analyzer struct {
	handler    *errors.Handler
	registry   *types.Registry
	logger     *zap.Logger
	loader     *moduleloader.Loader
	structures map[string]*types.Structure
	functions  map[string]*ast.Function
	root       *scope.Scope
	exprTypes  map[ast.Expression]*types.Type
}

// New builds an Analyzer. registry must be the one Registry the driver
// constructed for this compile session (spec §9 — no package-level
// singleton). loader resolves each `import` descriptor against a
// previously-compiled module artifact (spec §4.7); a nil loader skips
// import resolution entirely, which only a test harness with no
// imports to exercise should pass.
func New(registry *types.Registry, loader *moduleloader.Loader, handler *errors.Handler, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		handler:    handler,
		registry:   registry,
		logger:     logger,
		loader:     loader,
		structures: make(map[string]*types.Structure),
		functions:  make(map[string]*ast.Function),
		exprTypes:  make(map[ast.Expression]*types.Type),
	}
}

// externalDecl wraps a moduleloader.Symbol aliased into the module
// scope by an import, so it can sit in a scope.Symbol's Decl field
// alongside ast.Declarator/Parameter/Function/Structure.
type externalDecl struct {
	sym moduleloader.Symbol
	pos token.Position
}

func (e *externalDecl) Pos() token.Position { return e.pos }

// Analyze runs both passes over mod and returns the accumulated Result.
// Diagnostics are reported into the Analyzer's Handler; the caller
// decides (per spec §7) whether to proceed to emission based on
// Handler.HasSemanticErrors.
func (a *Analyzer) Analyze(mod *ast.Module) *Result {
	a.root = scope.New("module", scope.ModuleScope, nil)
	a.declare(mod)
	a.resolve(mod)
	return &Result{
		Module:     mod,
		RootScope:  a.root,
		ExprTypes:  a.exprTypes,
		Structures: a.structures,
		Functions:  a.functions,
	}
}

// --- declare pass -----------------------------------------------------

func (a *Analyzer) declare(mod *ast.Module) {
	a.resolveImports(mod)

	// Structure names first, so member types referencing another
	// structure declared later in the file still resolve. localStructs
	// tracks which names this pass actually declared locally, so the
	// member-population pass below never overwrites an externally
	// aliased structure's Members with a collided local declaration's.
	localStructs := make(map[string]bool, len(mod.Structures))
	for _, s := range mod.Structures {
		if existing, ok := a.root.LookupLocal(s.Name); ok {
			a.reportStructureCollision(existing, s)
			continue
		}
		a.structures[s.Name] = &types.Structure{Name: s.Name}
		a.root.Declare(s.Name, "structure", scope.ModifierNone, s)
		localStructs[s.Name] = true
	}
	for _, s := range mod.Structures {
		if !localStructs[s.Name] {
			continue
		}
		resolved := a.structures[s.Name]
		for _, m := range s.Members {
			resolved.Members = append(resolved.Members, types.Field{
				Name: m.Name,
				Type: a.resolveTypeRef(m.Type),
			})
		}
	}

	for _, fn := range mod.Functions {
		if existing, ok := a.root.LookupLocal(fn.Name); ok {
			a.reportFunctionCollision(existing, fn)
			continue
		}
		a.functions[fn.Name] = fn
		a.root.Declare(fn.Name, "function", scope.ModifierNone, fn)
	}

	for _, v := range mod.Variables {
		a.declareVariable(a.root, v)
	}
}

func (a *Analyzer) reportStructureCollision(existing *scope.Symbol, s *ast.Structure) {
	if existing.Modifiers&scope.ModifierExternal != 0 {
		a.handler.ReportSemantic(errors.RedeclarationPreviouslyImported, structTok(s), s.Name)
		return
	}
	a.handler.ReportSemantic(errors.RedeclarationAsStructure, structTok(s), "")
}

func (a *Analyzer) reportFunctionCollision(existing *scope.Symbol, fn *ast.Function) {
	if existing.Modifiers&scope.ModifierExternal != 0 {
		a.handler.ReportSemantic(errors.RedeclarationPreviouslyImported, fnTok(fn), fn.Name)
		return
	}
	a.handler.ReportSemantic(errors.DuplicateFunctionOverload, fnTok(fn), "")
}

// resolveImports asks the module loader to resolve each import's dotted
// descriptor (spec §4.6) and aliases every exported structure/function
// into the module's root scope. An unresolvable descriptor reports
// UNKNOWN_MODULE anchored at the import's final identifier.
func (a *Analyzer) resolveImports(mod *ast.Module) {
	if a.loader == nil {
		return
	}
	for _, imp := range mod.Imports {
		m := a.loader.Load(imp.Descriptor)
		if m == nil {
			tok := token.Token{Start: imp.DescriptorEnd, Stop: imp.DescriptorEnd, Text: lastSegment(imp.Descriptor)}
			a.handler.ReportGeneralAt(errors.UnknownModule, tok, fmt.Sprintf("unknown module '%s'", imp.Descriptor))
			continue
		}
		for _, sym := range m.Structures {
			a.aliasExternalStructure(sym, imp.Start)
		}
		for _, sym := range m.Functions {
			a.aliasExternalFunction(sym, imp.Start)
		}
	}
}

func lastSegment(descriptor string) string {
	parts := strings.Split(descriptor, ".")
	return parts[len(parts)-1]
}

func (a *Analyzer) aliasExternalStructure(sym moduleloader.Symbol, at token.Position) {
	members := make([]types.Field, len(sym.MemberNames))
	for i, name := range sym.MemberNames {
		members[i] = types.Field{Name: name, Type: a.resolveExternalTypeName(sym.MemberTypes[i])}
	}
	a.structures[sym.Name] = &types.Structure{Name: sym.Name, Members: members}
	a.root.Declare(sym.Name, "structure", scope.ModifierExternal, &externalDecl{sym: sym, pos: at})
}

func (a *Analyzer) aliasExternalFunction(sym moduleloader.Symbol, at token.Position) {
	a.root.Declare(sym.Name, "function", scope.ModifierExternal, &externalDecl{sym: sym, pos: at})
}

// resolveExternalTypeName resolves a `.am` artifact's string type
// spelling (primitive name, structure name, or either with trailing
// "[]" repeated per array dimension) against this session's registry
// and already-known structures.
func (a *Analyzer) resolveExternalTypeName(name string) *types.Type {
	depth := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		depth++
	}
	base := a.registry.Lookup(name)
	if base == nil {
		if s, ok := a.structures[name]; ok {
			base = types.NewStructure(s)
		} else {
			base = a.registry.Unknown()
		}
	}
	for i := 0; i < depth; i++ {
		base = types.NewArray(base)
	}
	return base
}

func structTok(s *ast.Structure) token.Token {
	return token.Token{Start: s.Start, Stop: s.Start, File: ""}
}

func fnTok(fn *ast.Function) token.Token {
	return token.Token{Start: fn.Start, Stop: fn.Start}
}

func (a *Analyzer) resolveTypeRef(ref *ast.TypeRef) *types.Type {
	if ref == nil {
		return a.registry.Lookup("void")
	}
	base := a.registry.Lookup(ref.Name)
	if base == nil {
		if s, ok := a.structures[ref.Name]; ok {
			base = types.NewStructure(s)
		} else {
			a.handler.ReportSemantic(errors.UndeclaredClass, token.Token{Start: ref.Start, Stop: ref.Start, Text: ref.Name}, ref.Name)
			base = a.registry.Unknown()
		}
	}
	for i := 0; i < ref.ArrayDepth; i++ {
		base = types.NewArray(base)
	}
	return base
}

func (a *Analyzer) declareVariable(sc *scope.Scope, decl *ast.VariableDecl) {
	modifier := scope.ModifierVariable
	if decl.Constant {
		modifier = scope.ModifierConstant
	}
	for _, d := range decl.Declarators {
		if existing, ok := sc.LookupLocal(d.Name); ok {
			a.reportRedeclaration(existing, d)
			continue
		}
		kind := "variable"
		if decl.Constant {
			kind = "constant"
		}
		sc.Declare(d.Name, kind, modifier, d)
	}
}

func (a *Analyzer) reportRedeclaration(existing *scope.Symbol, d *ast.Declarator) {
	tok := token.Token{Start: d.Start, Stop: d.Start, Text: d.Name}
	switch existing.Discriminator {
	case "function":
		a.handler.ReportSemantic(errors.RedeclarationAsFunction, tok, d.Name)
	case "parameter":
		a.handler.ReportSemantic(errors.RedeclarationAsParameter, tok, d.Name)
	case "constant":
		a.handler.ReportSemantic(errors.RedeclarationAsConstant, tok, d.Name)
	case "structure":
		a.handler.ReportSemantic(errors.RedeclarationAsStructure, tok, d.Name)
	case "label":
		a.handler.ReportSemantic(errors.RedeclarationAsLabel, tok, d.Name)
	default:
		a.handler.ReportSemantic(errors.RedeclarationAsVariable, tok, d.Name)
	}
}

// --- resolve/type-check pass -------------------------------------------

func (a *Analyzer) resolve(mod *ast.Module) {
	for _, fn := range mod.Functions {
		a.checkFunction(fn)
	}
}

func (a *Analyzer) checkFunction(fn *ast.Function) {
	fnScope := scope.New(fn.Name, scope.FunctionScope, a.root)
	for _, param := range fn.Parameters {
		if _, ok := fnScope.LookupLocal(param.Name); ok {
			a.handler.ReportSemantic(errors.RedeclarationAsParameter, paramTok(param), param.Name)
			continue
		}
		fnScope.Declare(param.Name, "parameter", scope.ModifierVariable, param)
	}
	if fn.Body != nil {
		a.checkBlock(fn.Body, fnScope)
	}
}

func paramTok(p *ast.Parameter) token.Token {
	return token.Token{Start: p.Start, Stop: p.Start, Text: p.Name}
}

func (a *Analyzer) checkBlock(b *ast.Block, parent *scope.Scope) *scope.Scope {
	blockScope := scope.New("block", scope.BlockScope, parent)
	for _, stmt := range b.Statements {
		a.checkStatement(stmt, blockScope)
	}
	return blockScope
}

func (a *Analyzer) checkStatement(stmt ast.Statement, sc *scope.Scope) {
	switch s := stmt.(type) {
	case *ast.Block:
		a.checkBlock(s, sc)
	case *ast.VariableDecl:
		a.checkVariableDecl(s, sc)
	case *ast.IfStatement:
		a.checkExpectBoolean(s.Condition, sc)
		a.checkBlock(s.Then, sc)
		if s.Else != nil {
			a.checkStatement(s.Else, sc)
		}
	case *ast.IterativeStatement:
		loopScope := scope.New("loop", scope.LoopScope, sc)
		if s.Init != nil {
			a.checkStatement(s.Init, loopScope)
		}
		if s.Condition != nil {
			a.checkExpectBoolean(s.Condition, loopScope)
		}
		if s.Post != nil {
			a.infer(s.Post, loopScope)
		}
		a.checkBlock(s.Body, loopScope)
	case *ast.TryStatement:
		a.checkBlock(s.Body, sc)
		if s.CatchBody != nil {
			catchScope := scope.New("catch", scope.BlockScope, sc)
			if s.CatchParam != "" {
				catchScope.Declare(s.CatchParam, "parameter", scope.ModifierVariable, s)
			}
			a.checkBlock(s.CatchBody, catchScope)
		}
		if s.Finally != nil {
			a.checkBlock(s.Finally, sc)
		}
	case *ast.ReturnStatement:
		if s.Value != nil {
			a.infer(s.Value, sc)
		}
	case *ast.BreakStatement:
		// spec §7 has no dedicated code for break-outside-loop; nothing is
		// checked here, and the emitter lowers the break as written
		// without checking for an enclosing loop or label either.
	case *ast.ThrowStatement:
		a.infer(s.Value, sc)
	case *ast.ExpressionStatement:
		a.infer(s.Expr, sc)
	}
}

func (a *Analyzer) checkVariableDecl(decl *ast.VariableDecl, sc *scope.Scope) {
	a.declareVariable(sc, decl)
	for _, d := range decl.Declarators {
		if d.Initializer == nil {
			continue
		}
		initType := a.infer(d.Initializer, sc)
		if d.Type != nil {
			declared := a.resolveTypeRef(d.Type)
			if !declared.Equals(initType) && initType != a.registry.Unknown() && !(declared.IsNumeric() && initType.IsNumeric()) {
				a.handler.ReportSemantic(errors.IncompatibleTypes, token.Token{Start: d.Start},
					fmt.Sprintf("cannot assign %s to %s", initType, declared))
			}
		}
	}
}

func (a *Analyzer) checkExpectBoolean(expr ast.Expression, sc *scope.Scope) {
	t := a.infer(expr, sc)
	boolean := a.registry.Lookup("boolean")
	if t != a.registry.Unknown() && !t.Equals(boolean) {
		a.handler.ReportSemantic(errors.ExpectedBoolean, token.Token{Start: expr.Pos()}, "")
	}
}

// infer type-checks expr bottom-up, recording its resolved type, and
// returns that type for the caller to fold into an enclosing
// expression's own check.
func (a *Analyzer) infer(expr ast.Expression, sc *scope.Scope) *types.Type {
	t := a.inferUncached(expr, sc)
	a.exprTypes[expr] = t
	return t
}

func (a *Analyzer) inferUncached(expr ast.Expression, sc *scope.Scope) *types.Type {
	switch e := expr.(type) {
	case *ast.LiteralExpression:
		return a.inferLiteral(e)
	case *ast.ThisExpression:
		return a.registry.Unknown()
	case *ast.IdentifierExpression:
		sym, ok := sc.Lookup(e.Name)
		if !ok {
			msg := fmt.Sprintf("undeclared identifier '%s'", e.Name)
			if guess := errors.Suggest(e.Name, sc.VisibleNames()); guess != "" {
				msg += fmt.Sprintf("; did you mean '%s'?", guess)
			}
			a.handler.ReportSemantic(errors.UndeclaredIdentifier, token.Token{Start: e.Start, Text: e.Name}, msg)
			return a.registry.Unknown()
		}
		return a.typeOfSymbol(sym)
	case *ast.ParenExpression:
		return a.infer(e.Inner, sc)
	case *ast.UnaryExpression:
		operand := a.infer(e.Operand, sc)
		if !operand.IsNumeric() && e.Operator != token.Bang {
			a.handler.ReportSemantic(errors.InvalidOperand, token.Token{Start: e.Start}, "")
		}
		return operand
	case *ast.BinaryExpression:
		return a.inferBinary(e, sc)
	case *ast.ConditionalExpression:
		a.checkExpectBoolean(e.Condition, sc)
		thenType := a.infer(e.Then, sc)
		a.infer(e.Else, sc)
		return thenType
	case *ast.AssignmentExpression:
		return a.inferAssignment(e, sc)
	case *ast.ArrayLiteral:
		var elem *types.Type = a.registry.Unknown()
		for _, el := range e.Elements {
			elem = a.infer(el, sc)
		}
		return types.NewArray(elem)
	case *ast.NewExpression:
		for _, arg := range e.Arguments {
			a.infer(arg, sc)
		}
		s, ok := a.structures[e.Type.Name]
		if !ok {
			a.handler.ReportSemantic(errors.InstantiationOfNonClassSymbol, token.Token{Start: e.Start}, e.Type.Name)
			return a.registry.Unknown()
		}
		return types.NewStructure(s)
	case *ast.PostfixExpression:
		return a.inferPostfix(e, sc)
	default:
		return a.registry.Unknown()
	}
}

func (a *Analyzer) typeOfSymbol(sym *scope.Symbol) *types.Type {
	switch decl := sym.Decl.(type) {
	case *ast.Declarator:
		if decl.Type != nil {
			return a.resolveTypeRef(decl.Type)
		}
		if t, ok := a.exprTypes[decl.Initializer]; ok {
			return t
		}
		return a.registry.Unknown()
	case *ast.Parameter:
		return a.resolveTypeRef(decl.Type)
	case *ast.Function:
		return a.functionType(decl)
	case *ast.Structure:
		s := a.structures[decl.Name]
		return types.NewStructure(s)
	case *externalDecl:
		if decl.sym.IsFunction {
			return a.functionTypeFromSymbol(decl.sym)
		}
		s := a.structures[decl.sym.Name]
		return types.NewStructure(s)
	default:
		return a.registry.Unknown()
	}
}

// functionType builds the callable signature a locally declared
// function's symbol resolves to (spec §4.6's postfix Call rule).
func (a *Analyzer) functionType(fn *ast.Function) *types.Type {
	params := make([]*types.Type, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = a.resolveTypeRef(p.Type)
	}
	return types.NewFunction(params, a.resolveTypeRef(fn.ReturnType))
}

// functionTypeFromSymbol is functionType's counterpart for a function
// imported from a `.am` artifact, whose parameter/return types arrive
// as strings rather than ast.TypeRefs.
func (a *Analyzer) functionTypeFromSymbol(sym moduleloader.Symbol) *types.Type {
	params := make([]*types.Type, len(sym.ParameterTypes))
	for i, pt := range sym.ParameterTypes {
		params[i] = a.resolveExternalTypeName(pt)
	}
	return types.NewFunction(params, a.resolveExternalTypeName(sym.ReturnType))
}

func (a *Analyzer) inferLiteral(e *ast.LiteralExpression) *types.Type {
	switch e.Token.Kind {
	case token.IntegerLiteral:
		return a.registry.Lookup("i32")
	case token.FloatLiteral:
		return a.registry.Lookup("f64")
	case token.StringLiteral:
		return a.registry.Lookup("string")
	case token.KeywordTrue, token.KeywordFalse:
		return a.registry.Lookup("boolean")
	case token.KeywordNull:
		return a.registry.Lookup("null")
	default:
		return a.registry.Unknown()
	}
}

var relationalOrEquality = map[token.Kind]bool{
	token.EqualEqual: true, token.BangEqual: true,
	token.LeftAngle: true, token.LeftAngleEqual: true,
	token.RightAngle: true, token.RightAngleEqual: true,
}

// inferBinary type-checks a left-to-right operator chain and rejects
// combining two relational/equality operators in the same chain
// without parentheses (spec §4.6), since `a == b == c` has no single
// well-defined boolean meaning in Kush's grammar.
func (a *Analyzer) inferBinary(e *ast.BinaryExpression, sc *scope.Scope) *types.Type {
	left := a.infer(e.Left, sc)
	relCount := 0
	result := left
	for _, pair := range e.Pairs {
		right := a.infer(pair.Right, sc)
		if relationalOrEquality[pair.Operator] {
			relCount++
			if relCount > 1 {
				a.handler.ReportSemantic(errors.CombiningEqualityOperators, token.Token{Start: e.Start}, "")
			}
			result = a.registry.Lookup("boolean")
			continue
		}
		if result.Tag != types.Unknown && right.Tag != types.Unknown && !result.IsNumeric() {
			a.handler.ReportSemantic(errors.IncompatibleTypes, token.Token{Start: e.Start},
				fmt.Sprintf("left operand of %s is not numeric", pair.Operator))
		}
		result = right
	}
	return result
}

func (a *Analyzer) inferAssignment(e *ast.AssignmentExpression, sc *scope.Scope) *types.Type {
	if !isLValue(e.Target) {
		a.handler.ReportSemantic(errors.InvalidLValue, token.Token{Start: e.Start}, "")
	}
	targetType := a.infer(e.Target, sc)
	valueType := a.infer(e.Value, sc)
	if targetType != a.registry.Unknown() && valueType != a.registry.Unknown() &&
		!targetType.Equals(valueType) && !(targetType.IsNumeric() && valueType.IsNumeric()) {
		a.handler.ReportSemantic(errors.IncompatibleTypes, token.Token{Start: e.Start},
			fmt.Sprintf("cannot assign %s to %s", valueType, targetType))
	}
	return targetType
}

func isLValue(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.IdentifierExpression:
		return true
	case *ast.PostfixExpression:
		if len(e.Parts) == 0 {
			return isLValue(e.Primary)
		}
		last := e.Parts[len(e.Parts)-1]
		return last.Member != "" || last.Index != nil
	default:
		return false
	}
}

func (a *Analyzer) inferPostfix(e *ast.PostfixExpression, sc *scope.Scope) *types.Type {
	current := a.infer(e.Primary, sc)
	for _, part := range e.Parts {
		switch {
		case part.Index != nil:
			a.infer(part.Index, sc)
			if current.Tag == types.Array {
				current = current.Base
			} else if current != a.registry.Unknown() {
				a.handler.ReportSemantic(errors.InvalidLeftOperand, token.Token{Start: part.Start}, "")
				current = a.registry.Unknown()
			}
		case part.IsCall:
			argTypes := make([]*types.Type, len(part.Arguments))
			for i, arg := range part.Arguments {
				argTypes[i] = a.infer(arg, sc)
			}
			if !current.Callable {
				if current != a.registry.Unknown() {
					a.handler.ReportSemantic(errors.InvalidFunctionInvocation, token.Token{Start: part.Start}, "")
				}
				current = a.registry.Unknown()
				continue
			}
			if len(part.Arguments) != len(current.Params) {
				a.handler.ReportSemantic(errors.InvalidFunctionInvocation, token.Token{Start: part.Start},
					fmt.Sprintf("expected %d argument(s), got %d", len(current.Params), len(part.Arguments)))
			} else {
				for i, pt := range current.Params {
					at := argTypes[i]
					if at != a.registry.Unknown() && pt != a.registry.Unknown() &&
						!pt.Equals(at) && !(pt.IsNumeric() && at.IsNumeric()) {
						a.handler.ReportSemantic(errors.IncompatibleTypes, token.Token{Start: part.Arguments[i].Pos()},
							fmt.Sprintf("cannot pass %s as %s", at, pt))
					}
				}
			}
			current = current.Return
		case part.Member != "":
			if current.Tag == types.StructureTag && current.Structure != nil {
				if field, ok := current.Structure.Field(part.Member); ok {
					current = field.Type
					continue
				}
			}
			if current != a.registry.Unknown() {
				msg := fmt.Sprintf("no member '%s'", part.Member)
				if current.Structure != nil {
					var names []string
					for _, f := range current.Structure.Members {
						names = append(names, f.Name)
					}
					if guess := errors.Suggest(part.Member, names); guess != "" {
						msg += fmt.Sprintf("; did you mean '%s'?", guess)
					}
				}
				a.handler.ReportSemantic(errors.InvalidMemberAccess, token.Token{Start: part.Start}, msg)
			}
			current = a.registry.Unknown()
		}
	}
	return current
}
