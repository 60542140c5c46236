package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/ast"
	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/lexer"
	"github.com/kush-lang/kushc/compiler/parser"
)

func parse(t *testing.T, src string) (*ast.Module, *errors.Handler) {
	t.Helper()
	h := errors.NewHandler(nil)
	l := lexer.New(src, "a.kush", h)
	p := parser.New(l.ScanAll(), "a.kush", h)
	return p.ParseModule(), h
}

func TestParseImportWildcardAndFunction(t *testing.T) {
	mod, h := parse(t, `
		import kush.core.*;
		i32 add(i32 a, i32 b) {
			return a + b;
		}
	`)
	require.False(t, h.HasErrors())
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, "kush.core", mod.Imports[0].Descriptor)
	assert.True(t, mod.Imports[0].Wildcard)

	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "i32", fn.Parameters[0].Type.Name)
	assert.Equal(t, "i32", fn.ReturnType.Name)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Len(t, bin.Pairs, 1)
}

func TestParseImportWithoutWildcard(t *testing.T) {
	mod, h := parse(t, `import kush.core;`)
	require.False(t, h.HasErrors())
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, "kush.core", mod.Imports[0].Descriptor)
	assert.False(t, mod.Imports[0].Wildcard)
}

func TestParseStructure(t *testing.T) {
	mod, h := parse(t, `
		struct Point {
			i32 x;
			i32 y;
		}
	`)
	require.False(t, h.HasErrors())
	require.Len(t, mod.Structures, 1)
	assert.Equal(t, "Point", mod.Structures[0].Name)
	require.Len(t, mod.Structures[0].Members, 2)
	assert.Equal(t, "x", mod.Structures[0].Members[0].Name)
	assert.Equal(t, "i32", mod.Structures[0].Members[0].Type.Name)
}

func TestParseVarDeclAndAssignment(t *testing.T) {
	mod, h := parse(t, `
		void main() {
			var x = 1;
			x = x + 1;
		}
	`)
	require.False(t, h.HasErrors())
	body := mod.Functions[0].Body.Statements
	require.Len(t, body, 2)

	decl, ok := body[0].(*ast.VariableDecl)
	require.True(t, ok)
	assert.False(t, decl.Constant)
	assert.Nil(t, decl.Declarators[0].Type)

	stmt, ok := body[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	_, ok = stmt.Expr.(*ast.AssignmentExpression)
	assert.True(t, ok)
}

func TestParseTypeFirstDeclaration(t *testing.T) {
	mod, h := parse(t, `
		void main() {
			i32 x = 1;
		}
	`)
	require.False(t, h.HasErrors())
	decl, ok := mod.Functions[0].Body.Statements[0].(*ast.VariableDecl)
	require.True(t, ok)
	require.NotNil(t, decl.Declarators[0].Type)
	assert.Equal(t, "i32", decl.Declarators[0].Type.Name)
}

func TestParseIfElseChain(t *testing.T) {
	mod, h := parse(t, `
		void main() {
			if (true) {
			} else if (false) {
			} else {
			}
		}
	`)
	require.False(t, h.HasErrors())
	ifStmt, ok := mod.Functions[0].Body.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	elseIf, ok := ifStmt.Else.(*ast.IfStatement)
	require.True(t, ok)
	_, ok = elseIf.Else.(*ast.Block)
	assert.True(t, ok)
}

func TestParseLabelledLoopAndBreak(t *testing.T) {
	mod, h := parse(t, `
		void main() {
			outer: while (true) {
				break outer;
			}
		}
	`)
	require.False(t, h.HasErrors())
	loop, ok := mod.Functions[0].Body.Statements[0].(*ast.IterativeStatement)
	require.True(t, ok)
	assert.Equal(t, "outer", loop.Label)

	brk, ok := loop.Body.Statements[0].(*ast.BreakStatement)
	require.True(t, ok)
	assert.Equal(t, "outer", brk.Label)
}

func TestParseLabelledForLoop(t *testing.T) {
	mod, h := parse(t, `
		void main() {
			outer: for (i32 i = 0; i < 10; i = i + 1) {
				break outer;
			}
		}
	`)
	require.False(t, h.HasErrors())
	loop, ok := mod.Functions[0].Body.Statements[0].(*ast.IterativeStatement)
	require.True(t, ok)
	assert.Equal(t, "outer", loop.Label)
	init, ok := loop.Init.(*ast.VariableDecl)
	require.True(t, ok)
	assert.Equal(t, "i32", init.Declarators[0].Type.Name)
}

func TestParseTryWithoutCatchOrFinallyReportsError(t *testing.T) {
	_, h := parse(t, `
		void main() {
			try {
			}
		}
	`)
	require.True(t, h.HasSyntacticErrors())
	assert.Equal(t, errors.TryStatementExpectsCatchOrFinally, h.Errors()[0].Code)
}

func TestParsePostfixChain(t *testing.T) {
	mod, h := parse(t, `
		void main() {
			i32 y = arr[0].field.method(1, 2);
		}
	`)
	require.False(t, h.HasErrors())
	decl := mod.Functions[0].Body.Statements[0].(*ast.VariableDecl)
	postfix, ok := decl.Declarators[0].Initializer.(*ast.PostfixExpression)
	require.True(t, ok)
	require.Len(t, postfix.Parts, 4)
	assert.NotNil(t, postfix.Parts[0].Index)
	assert.Equal(t, "field", postfix.Parts[1].Member)
	assert.True(t, postfix.Parts[3].IsCall)
}

func TestParseStructTypedParameterAndNewExpression(t *testing.T) {
	mod, h := parse(t, `
		struct Point {
			i32 x;
			i32 y;
		}
		Point origin() {
			return new Point(0, 0);
		}
		void translate(Point p, i32 dx) {
		}
	`)
	require.False(t, h.HasErrors())
	require.Len(t, mod.Functions, 2)
	assert.Equal(t, "Point", mod.Functions[0].ReturnType.Name)
	assert.Equal(t, "Point", mod.Functions[1].Parameters[0].Type.Name)
}

func TestUnexpectedTokenRecoversToNextDeclaration(t *testing.T) {
	mod, h := parse(t, `
		@@@
		void ok() {
		}
	`)
	require.True(t, h.HasSyntacticErrors())
	require.Len(t, mod.Functions, 1)
	assert.Equal(t, "ok", mod.Functions[0].Name)
}
