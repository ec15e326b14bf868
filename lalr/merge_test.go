package lalr

import (
	"testing"

	"github.com/dekarrin/lalrgen/automaton"
	"github.com/dekarrin/lalrgen/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// danglingGrammar is scenario 3 of spec.md §8: a grammar that is not LR(0)
// (or SLR(1)); its canonical LR(1) states all have distinct LR(0) cores, so
// merging leaves the state count unchanged:
//
//	S -> A a | b A c | d c | b d a
//	A -> d
func danglingGrammar(t *testing.T) *grammar.CFG {
	g := grammar.NewCFG()
	for _, term := range []string{"a", "b", "c", "d"} {
		g.AddTerm(term)
	}
	require.NoError(t, g.AddRule("S", []string{"A", "a"}))
	require.NoError(t, g.AddRule("S", []string{"b", "A", "c"}))
	require.NoError(t, g.AddRule("S", []string{"d", "c"}))
	require.NoError(t, g.AddRule("S", []string{"b", "d", "a"}))
	require.NoError(t, g.AddRule("A", []string{"d"}))
	require.NoError(t, g.Validate())
	return g
}

func Test_Merge_DoesNotIncreaseStateCount(t *testing.T) {
	g := danglingGrammar(t)
	col, err := automaton.BuildLR1(g)
	require.NoError(t, err)

	merged := Merge(col)

	assert.LessOrEqual(t, len(merged.States), len(col.States))
	assert.NotEmpty(t, merged.States)

	for i, st := range merged.States {
		assert.Equal(t, i, st.ID)
	}
}

func Test_Merge_StartStateMapsToMergedZero(t *testing.T) {
	g := arithGrammarForLALR(t)
	col, err := automaton.BuildLR1(g)
	require.NoError(t, err)

	merged := Merge(col)
	assert.Equal(t, 0, merged.Start)
}

func Test_Merge_PreservesTransitionsAcrossGroup(t *testing.T) {
	g := danglingGrammar(t)
	col, err := automaton.BuildLR1(g)
	require.NoError(t, err)

	merged := Merge(col)

	// Every transition reachable in the canonical collection must still be
	// reachable, under the same symbol, from the corresponding merged
	// state (spec.md §4.F: merging rewrites edges, never drops them).
	coreOf := map[int]string{}
	for _, st := range col.States {
		coreOf[st.ID] = coreKeyOf(st.Items)
	}
	mergedIDOfCore := map[string]int{}
	for _, st := range merged.States {
		mergedIDOfCore[coreKeyOf(st.Items)] = st.ID
	}

	for _, st := range col.States {
		mergedID := mergedIDOfCore[coreOf[st.ID]]
		for X, target := range col.Transitions(st.ID) {
			gotTarget, ok := merged.Goto(mergedID, X)
			require.True(t, ok, "merged state %d missing transition on %q", mergedID, X)
			assert.Equal(t, mergedIDOfCore[coreOf[target]], gotTarget)
		}
	}
}

func arithGrammarForLALR(t *testing.T) *grammar.CFG {
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
