package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseText_ParsesAlternativesAndEpsilon(t *testing.T) {
	text := `
# a parenthesized-list grammar
S -> ( L ) | x
L -> S | L , S
A ->
`
	ts, err := ParseText(text)
	require.NoError(t, err)

	require.Len(t, ts.Productions(), 5)
	assert.Equal(t, "S", ts.Start())

	var aRule *Rule
	for i := range ts.Productions() {
		if ts.Productions()[i].LHS == "A" {
			aRule = &ts.Productions()[i]
		}
	}
	require.NotNil(t, aRule)
	assert.Empty(t, aRule.RHS)
}

func Test_ParseText_RejectsMissingArrow(t *testing.T) {
	_, err := ParseText("S x y z")
	assert.Error(t, err)
}

func Test_ParseText_SkipsCommentsAndBlankLines(t *testing.T) {
	text := "\n# comment\n\nS -> a\n"
	ts, err := ParseText(text)
	require.NoError(t, err)
	require.Len(t, ts.Productions(), 1)
}

func Test_TextSource_SetStart_Overrides_FirstRule(t *testing.T) {
	ts, err := ParseText("S -> a\nT -> b\n")
	require.NoError(t, err)
	assert.Equal(t, "S", ts.Start())

	ts.SetStart("T")
	assert.Equal(t, "T", ts.Start())
}

func Test_Build_DeclaresUndeclaredRHSSymbolsAsTerminals(t *testing.T) {
	ts, err := ParseText("S -> a S | b\n")
	require.NoError(t, err)

	g, err := Build(ts)
	require.NoError(t, err)

	assert.True(t, g.IsTerminal("a"))
	assert.True(t, g.IsTerminal("b"))
	assert.True(t, g.IsNonTerminal("S"))
}

func Test_Build_SetsLiteralsAsTerminals(t *testing.T) {
	ts, err := ParseText("S -> PLUS\n")
	require.NoError(t, err)
	ts.SetLiteral("+", "PLUS")

	g, err := Build(ts)
	require.NoError(t, err)
	assert.True(t, g.IsTerminal("PLUS"))
}

func Test_Build_PropagatesValidateErrors(t *testing.T) {
	ts, err := ParseText("")
	require.NoError(t, err)

	_, err = Build(ts)
	assert.Error(t, err)
}
