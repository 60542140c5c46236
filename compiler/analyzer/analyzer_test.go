package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/analyzer"
	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/lexer"
	"github.com/kush-lang/kushc/compiler/moduleloader"
	"github.com/kush-lang/kushc/compiler/parser"
	"github.com/kush-lang/kushc/compiler/types"
)

func analyze(t *testing.T, src string) (*analyzer.Result, *errors.Handler) {
	t.Helper()
	h := errors.NewHandler(nil)
	l := lexer.New(src, "a.kush", h)
	p := parser.New(l.ScanAll(), "a.kush", h)
	mod := p.ParseModule()
	require.False(t, h.HasSyntacticErrors())

	a := analyzer.New(types.NewPrimitives(), nil, h, nil)
	return a.Analyze(mod), h
}

func TestAnalyzeWellTypedProgram(t *testing.T) {
	_, h := analyze(t, `
		i32 add(i32 a, i32 b) {
			return a + b;
		}
	`)
	assert.False(t, h.HasSemanticErrors())
}

func TestUndeclaredIdentifierReported(t *testing.T) {
	_, h := analyze(t, `
		void main() {
			i32 x = y;
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Equal(t, errors.UndeclaredIdentifier, h.Errors()[0].Code)
}

func TestUndeclaredIdentifierSuggestsCloseName(t *testing.T) {
	_, h := analyze(t, `
		void main() {
			i32 count = 0;
			i32 x = cnt;
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Contains(t, h.Errors()[0].String(), "did you mean 'count'")
}

func TestStructureMemberAccessResolves(t *testing.T) {
	result, h := analyze(t, `
		struct Point {
			i32 x;
			i32 y;
		}
		void main() {
			Point p = new Point(1, 2);
			i32 x = p.x;
		}
	`)
	assert.False(t, h.HasSemanticErrors())
	require.Contains(t, result.Structures, "Point")
	assert.Len(t, result.Structures["Point"].Members, 2)
}

func TestInvalidMemberAccessReported(t *testing.T) {
	_, h := analyze(t, `
		struct Point {
			i32 x;
		}
		void main() {
			Point p = new Point(1);
			i32 z = p.missing;
		}
	`)
	require.True(t, h.HasSemanticErrors())
	found := false
	for _, e := range h.Errors() {
		if e.Code == errors.InvalidMemberAccess {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCombiningEqualityOperatorsReported(t *testing.T) {
	_, h := analyze(t, `
		void main() {
			boolean ok = 1 == 2 == 3;
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Equal(t, errors.CombiningEqualityOperators, h.Errors()[0].Code)
}

func TestAssignmentToNonLValueReported(t *testing.T) {
	_, h := analyze(t, `
		void main() {
			1 = 2;
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Equal(t, errors.InvalidLValue, h.Errors()[0].Code)
}

func TestValidFunctionCallResolvesToReturnType(t *testing.T) {
	_, h := analyze(t, `
		i32 add(i32 a, i32 b) {
			return a + b;
		}
		void main() {
			i32 sum = add(1, 2);
		}
	`)
	assert.False(t, h.HasSemanticErrors())
}

func TestCallArityMismatchReported(t *testing.T) {
	_, h := analyze(t, `
		i32 add(i32 a, i32 b) {
			return a + b;
		}
		void main() {
			i32 sum = add(1);
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Equal(t, errors.InvalidFunctionInvocation, h.Errors()[0].Code)
}

func TestCallArgumentTypeMismatchReported(t *testing.T) {
	_, h := analyze(t, `
		void takesBoolean(boolean flag) {
		}
		void main() {
			takesBoolean("nope");
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Equal(t, errors.IncompatibleTypes, h.Errors()[0].Code)
}

func TestCallingNonCallableReported(t *testing.T) {
	_, h := analyze(t, `
		void main() {
			i32 x = 1;
			x();
		}
	`)
	require.True(t, h.HasSemanticErrors())
	assert.Equal(t, errors.InvalidFunctionInvocation, h.Errors()[0].Code)
}

func TestUnresolvableImportReportsUnknownModule(t *testing.T) {
	h := errors.NewHandler(nil)
	src := `
		import kush.nonexistent.*;
		void main() {
		}
	`
	l := lexer.New(src, "a.kush", h)
	p := parser.New(l.ScanAll(), "a.kush", h)
	mod := p.ParseModule()
	require.False(t, h.HasSyntacticErrors())

	loader := moduleloader.New(nil, h)
	a := analyzer.New(types.NewPrimitives(), loader, h, nil)
	a.Analyze(mod)

	require.True(t, h.HasGeneralErrors())
	assert.Equal(t, errors.UnknownModule, h.Errors()[0].Code)
}
