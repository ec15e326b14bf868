package serialize

import (
	"testing"

	"github.com/dekarrin/lalrgen/automaton"
	"github.com/dekarrin/lalrgen/grammar"
	"github.com/dekarrin/lalrgen/lalr"
	"github.com/dekarrin/lalrgen/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildArithTable(t *testing.T) *parse.Table {
	t.Helper()
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

	col, err := automaton.BuildLR1(g)
	require.NoError(t, err)
	merged := lalr.Merge(col)
	tbl, err := parse.Build(merged)
	require.NoError(t, err)
	return tbl
}

func Test_Encode_ThenDecode_RoundTripsEveryCell(t *testing.T) {
	tbl := buildArithTable(t)
	art := Encode(tbl)

	nonTerms := map[string]bool{}
	for _, nt := range tbl.Grammar.NonTerminals() {
		nonTerms[nt] = true
	}

	for i := 0; i < tbl.NStates; i++ {
		symbols := append(append([]string(nil), tbl.Grammar.Terminals()...), tbl.Grammar.NonTerminals()...)
		symbols = append(symbols, grammar.EOF.Name())
		for _, sym := range symbols {
			want := tbl.Action(i, sym)
			enc, ok := art.Cells[cellKey(i, sym)]
			if want.Type == parse.Error {
				assert.False(t, ok, "state %d symbol %q should have no cell", i, sym)
				continue
			}
			require.True(t, ok, "state %d symbol %q missing an encoded cell", i, sym)
			got := Decode(enc, nonTerms[sym])
			assert.True(t, want.Equal(got), "state %d symbol %q: want %v got %v", i, sym, want, got)
		}
	}
}

func Test_Encode_States_IsDenseRange(t *testing.T) {
	tbl := buildArithTable(t)
	art := Encode(tbl)

	require.Len(t, art.States, tbl.NStates)
	for i, id := range art.States {
		assert.Equal(t, i, id)
	}
}

func Test_Marshal_Unmarshal_RoundTrips(t *testing.T) {
	tbl := buildArithTable(t)
	art := Encode(tbl)

	data := Marshal(art)
	require.NotEmpty(t, data)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, art.States, got.States)
	assert.Equal(t, art.Cells, got.Cells)
	assert.Equal(t, art.Expected, got.Expected)
}

func Test_Unmarshal_RejectsTruncatedData(t *testing.T) {
	tbl := buildArithTable(t)
	data := Marshal(Encode(tbl))

	_, err := Unmarshal(data[:len(data)/2])
	assert.Error(t, err)
}
