package automaton

import "github.com/dekarrin/lalrgen/grammar"

// Closure computes CLOSURE(I) for augmented grammar g (spec.md §4.C):
//
//	repeat
//	  for each item (A -> α · B β, a) in I with B nonterminal:
//	    for each production B -> γ:
//	      for each terminal b in FIRST*(β a):
//	        add (B -> ·γ, b) to I
//	  until I stops growing
func Closure(g *grammar.CFG, I ItemSet) ItemSet {
	result := I.clone()

	changed := true
	for changed {
		changed = false
		for it := range result {
			p := g.Production(it.Rule)
			if it.Dot >= len(p.RHS) {
				continue
			}
			B := p.RHS[it.Dot]
			if !g.IsNonTerminal(B) {
				continue
			}

			beta := p.RHS[it.Dot+1:]
			lookaheads := g.FirstOfSequence(append(append([]string(nil), beta...), it.Lookahead))

			for _, gammaIdx := range g.RuleIndicesOf(B) {
				for _, b := range lookaheads {
					if b == grammar.Epsilon.Name() {
						continue
					}
					newItem := grammar.LR1Item{
						LR0Item:   grammar.LR0Item{Rule: gammaIdx, Dot: 0},
						Lookahead: b,
					}
					if result.add(newItem) {
						changed = true
					}
				}
			}
		}
	}

	return result
}
