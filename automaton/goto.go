package automaton

import "github.com/dekarrin/lalrgen/grammar"

// Goto computes GOTO(I, X) for augmented grammar g (spec.md §4.D): the
// closure of the items in I with the dot advanced over X. Defined for every
// symbol X, including EOF; callers should treat an empty result as "no
// transition".
func Goto(g *grammar.CFG, I ItemSet, X string) ItemSet {
	moved := ItemSet{}
	for it := range I {
		sym, ok := it.NextSymbol(g)
		if !ok || sym != X {
			continue
		}
		moved.add(it.Advanced())
	}
	if len(moved) == 0 {
		return moved
	}
	return Closure(g, moved)
}
