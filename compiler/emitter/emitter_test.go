package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/analyzer"
	"github.com/kush-lang/kushc/compiler/emitter"
	"github.com/kush-lang/kushc/compiler/errors"
	"github.com/kush-lang/kushc/compiler/lexer"
	"github.com/kush-lang/kushc/compiler/parser"
	"github.com/kush-lang/kushc/compiler/types"
)

func compile(t *testing.T, src string) (string, *errors.Handler) {
	t.Helper()
	h := errors.NewHandler(nil)
	l := lexer.New(src, "a.kush", h)
	p := parser.New(l.ScanAll(), "a.kush", h)
	mod := p.ParseModule()
	require.False(t, h.HasSyntacticErrors())

	a := analyzer.New(types.NewPrimitives(), nil, h, nil)
	result := a.Analyze(mod)
	require.False(t, h.HasSemanticErrors())

	return emitter.New(result).Emit(), h
}

func TestEmitSimpleFunction(t *testing.T) {
	out, _ := compile(t, `
		i32 add(i32 a, i32 b) {
			return a + b;
		}
	`)
	assert.Contains(t, out, "#include \"kush_runtime.h\"")
	assert.Contains(t, out, "int32_t add(int32_t a, int32_t b)")
	assert.Contains(t, out, "return (a + b);")
}

func TestEmitStructure(t *testing.T) {
	out, _ := compile(t, `
		struct Point {
			i32 x;
			i32 y;
		}
	`)
	assert.Contains(t, out, "typedef struct Point Point;")
	assert.Contains(t, out, "struct Point {")
	assert.Contains(t, out, "int32_t x;")
}

func TestEmitIfElseChain(t *testing.T) {
	out, _ := compile(t, `
		void classify(i32 x) {
			if (x < 0) {
				return;
			} else if (x == 0) {
				return;
			} else {
				return;
			}
		}
	`)
	assert.Contains(t, out, "if (")
	assert.Contains(t, out, "} else if (")
	assert.Contains(t, out, "} else {")
}

func TestEmitLabelledLoopBreak(t *testing.T) {
	out, _ := compile(t, `
		void run() {
			outer: for (i32 i = 0; i < 10; i = i + 1) {
				break outer;
			}
		}
	`)
	assert.Contains(t, out, "goto __outerExit;")
	assert.Contains(t, out, "__outerExit: ;")
}

func TestEmitStringLiteralReEncodesEscapes(t *testing.T) {
	out, _ := compile(t, `
		void run() {
			var s = "a\nb";
		}
	`)
	assert.Contains(t, out, `k_makeString("a\nb")`)
}

func TestRuntimeFilesArePresent(t *testing.T) {
	header, source := emitter.RuntimeFiles()
	assert.Contains(t, header, "k_makeString")
	assert.Contains(t, source, "k_print_i")
}
