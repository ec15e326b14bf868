package automaton

import (
	"testing"

	"github.com/dekarrin/lalrgen/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arithGrammar builds scenario 1 of spec.md §8:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | int
func arithGrammar(t *testing.T) *grammar.CFG {
	g := grammar.NewCFG()
	for _, term := range []string{"+", "*", "(", ")", "int"} {
		g.AddTerm(term)
	}
	require.NoError(t, g.AddRule("E", []string{"E", "+", "T"}))
	require.NoError(t, g.AddRule("E", []string{"T"}))
	require.NoError(t, g.AddRule("T", []string{"T", "*", "F"}))
	require.NoError(t, g.AddRule("T", []string{"F"}))
	require.NoError(t, g.AddRule("F", []string{"(", "E", ")"}))
	require.NoError(t, g.AddRule("F", []string{"int"}))
	require.NoError(t, g.Validate())
	return g
}

func Test_BuildLR1_StateIdsAreContiguous(t *testing.T) {
	g := arithGrammar(t)
	col, err := BuildLR1(g)
	require.NoError(t, err)
	require.NotEmpty(t, col.States)

	for i, st := range col.States {
		assert.Equal(t, i, st.ID)
	}
	assert.Equal(t, 0, col.Start)
}

func Test_BuildLR1_StartStateHasAugmentedKernelItem(t *testing.T) {
	g := arithGrammar(t)
	col, err := BuildLR1(g)
	require.NoError(t, err)

	start := col.States[col.Start]
	found := false
	for it := range start.Items {
		p := col.Grammar.Production(it.Rule)
		if p.LHS == col.Grammar.StartSymbol() && it.Dot == 0 {
			found = true
			assert.Equal(t, grammar.EOF.Name(), it.Lookahead)
		}
	}
	assert.True(t, found, "start state must contain the augmented start item")
}

func Test_Closure_IsIdempotent(t *testing.T) {
	g := arithGrammar(t)
	aug := g.Augmented()
	startRule := aug.RuleIndicesOf(aug.StartSymbol())[0]
	start := newItemSet(grammar.LR1Item{
		LR0Item:   grammar.LR0Item{Rule: startRule, Dot: 0},
		Lookahead: grammar.EOF.Name(),
	})

	once := Closure(aug, start)
	twice := Closure(aug, once)

	assert.Equal(t, once.key(), twice.key())
}

func Test_Goto_UndefinedSymbolYieldsEmptySet(t *testing.T) {
	g := arithGrammar(t)
	aug := g.Augmented()
	startRule := aug.RuleIndicesOf(aug.StartSymbol())[0]
	start := Closure(aug, newItemSet(grammar.LR1Item{
		LR0Item:   grammar.LR0Item{Rule: startRule, Dot: 0},
		Lookahead: grammar.EOF.Name(),
	}))

	result := Goto(aug, start, "*")
	assert.Empty(t, result)
}
