package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kush-lang/kushc/compiler/scope"
)

func TestDeclareAndLookupLocal(t *testing.T) {
	root := scope.New("module", scope.ModuleScope, nil)
	sym := root.Declare("x", "variable", scope.ModifierVariable, nil)

	got, ok := root.LookupLocal("x")
	require.True(t, ok)
	assert.Same(t, sym, got)
}

func TestLookupWalksParentChain(t *testing.T) {
	root := scope.New("module", scope.ModuleScope, nil)
	root.Declare("x", "variable", scope.ModifierVariable, nil)
	child := scope.New("block", scope.BlockScope, root)

	_, ok := child.LookupLocal("x")
	assert.False(t, ok)

	sym, ok := child.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "x", sym.Name)
}

func TestTicketsAreStableDeclarationOrder(t *testing.T) {
	root := scope.New("module", scope.ModuleScope, nil)
	root.Declare("a", "variable", scope.ModifierVariable, nil)
	root.Declare("b", "variable", scope.ModifierVariable, nil)
	root.Declare("c", "variable", scope.ModifierVariable, nil)

	syms := root.Symbols()
	require.Len(t, syms, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{syms[0].Name, syms[1].Name, syms[2].Name})
}

func TestEnclosingFunctionAndLoop(t *testing.T) {
	root := scope.New("module", scope.ModuleScope, nil)
	fn := scope.New("fn", scope.FunctionScope, root)
	loop := scope.New("loop", scope.LoopScope, fn)
	block := scope.New("block", scope.BlockScope, loop)

	assert.Same(t, fn, block.EnclosingFunction())
	assert.Same(t, loop, block.EnclosingLoop())
	assert.Nil(t, root.EnclosingLoop())
}
