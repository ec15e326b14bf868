package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CFG_AddRule_RejectsMixedEpsilon(t *testing.T) {
	g := NewCFG()
	g.AddTerm("a")
	err := g.AddRule("A", []string{"a", Epsilon.Name()})
	require.Error(t, err)
}

func Test_CFG_AddRule_AllowsExplicitAndImplicitEpsilon(t *testing.T) {
	g := NewCFG()
	require.NoError(t, g.AddRule("A", nil))
	require.NoError(t, g.AddRule("B", []string{Epsilon.Name()}))

	assert.True(t, g.Production(g.RuleIndicesOf("A")[0]).IsEpsilon())
	assert.True(t, g.Production(g.RuleIndicesOf("B")[0]).IsEpsilon())
}

// Test_CFG_Validate checks spec.md §3's grammar invariants.
func Test_CFG_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(g *CFG)
		expectErr bool
	}{
		{
			name:      "empty grammar has no start symbol",
			build:     func(g *CFG) {},
			expectErr: true,
		},
		{
			name: "unknown rhs symbol",
			build: func(g *CFG) {
				g.AddTerm("a")
				_ = g.AddRule("S", []string{"a", "UNDEFINED"})
			},
			expectErr: true,
		},
		{
			name: "start symbol with no productions",
			build: func(g *CFG) {
				g.AddTerm("a")
				_ = g.AddRule("S", []string{"a"})
				g.SetStart("T")
			},
			expectErr: true,
		},
		{
			name: "valid grammar",
			build: func(g *CFG) {
				g.AddTerm("a")
				_ = g.AddRule("S", []string{"a"})
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewCFG()
			tc.build(g)
			err := g.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Test_CFG_Nullable_And_First covers scenario 5 of spec.md §8: S -> A B,
// A -> a | ε, B -> b. NULLABLE = {A, ε}; FIRST(S) = {a, b}.
func Test_CFG_Nullable_And_First(t *testing.T) {
	g := NewCFG()
	g.AddTerm("a")
	g.AddTerm("b")
	require.NoError(t, g.AddRule("S", []string{"A", "B"}))
	require.NoError(t, g.AddRule("A", []string{"a"}))
	require.NoError(t, g.AddRule("A", nil))
	require.NoError(t, g.AddRule("B", []string{"b"}))
	require.NoError(t, g.Validate())

	assert.True(t, g.Nullable("A"))
	assert.False(t, g.Nullable("B"))
	assert.False(t, g.Nullable("S"))

	assert.ElementsMatch(t, []string{"a", "b"}, g.First("S"))
	assert.ElementsMatch(t, []string{"a"}, g.First("A"))
	assert.ElementsMatch(t, []string{"b"}, g.First("B"))
}

func Test_CFG_FirstOfSequence_IncludesEpsilonWhenAllNullable(t *testing.T) {
	g := NewCFG()
	require.NoError(t, g.AddRule("A", nil))
	require.NoError(t, g.AddRule("B", nil))
	require.NoError(t, g.Validate())

	got := g.FirstOfSequence([]string{"A", "B"})
	assert.Contains(t, got, Epsilon.Name())
}

func Test_CFG_Augmented_AddsStartRuleOnEOF(t *testing.T) {
	g := NewCFG()
	g.AddTerm("a")
	require.NoError(t, g.AddRule("S", []string{"a"}))
	require.NoError(t, g.Validate())

	aug := g.Augmented()
	rule := aug.Rule(aug.StartSymbol())
	require.Len(t, rule.Productions, 1)
	assert.Equal(t, []string{"S", EOF.Name()}, rule.Productions[0])
}

func Test_Production_Len_ExcludesEpsilon(t *testing.T) {
	g := NewCFG()
	require.NoError(t, g.AddRule("A", nil))
	require.NoError(t, g.AddRule("B", []string{"A", "A"}))

	p := g.Production(g.RuleIndicesOf("A")[0])
	assert.Equal(t, 0, p.Len())

	p2 := g.Production(g.RuleIndicesOf("B")[0])
	assert.Equal(t, 2, p2.Len())
}
