package grammar

import "sort"

// derivedSets caches NULLABLE and FIRST once computed for a grammar. It is
// invalidated (set to nil) by any mutation of the owning CFG.
type derivedSets struct {
	nullable map[string]bool
	first    map[string]map[string]bool
}

func (g *CFG) derive() *derivedSets {
	if g.derived != nil {
		return g.derived
	}

	d := &derivedSets{
		nullable: map[string]bool{},
		first:    map[string]map[string]bool{},
	}

	for _, nt := range g.nonTerminalOrder {
		d.first[nt] = map[string]bool{}
	}
	for _, t := range g.terminalOrder {
		d.first[t] = map[string]bool{t: true}
	}

	// NULLABLE: least fixed point. ε ∈ NULLABLE trivially; A is nullable
	// iff some alternative of A consists entirely of nullable symbols
	// (the empty alternative vacuously qualifies).
	changed := true
	for changed {
		changed = false
		for _, nt := range g.nonTerminalOrder {
			if d.nullable[nt] {
				continue
			}
			for _, idx := range g.rules.alternativesOf(nt) {
				p := g.rules.get(idx)
				allNullable := true
				for _, s := range p.RHS {
					if !d.isNullableSoFar(s) {
						allNullable = false
						break
					}
				}
				if allNullable {
					d.nullable[nt] = true
					changed = true
					break
				}
			}
		}
	}

	// FIRST: for a non-terminal, the union over its alternatives of FIRST
	// of each prefix up through the first non-nullable symbol.
	changed = true
	for changed {
		changed = false
		for _, nt := range g.nonTerminalOrder {
			ntFirst := d.first[nt]
			for _, idx := range g.rules.alternativesOf(nt) {
				p := g.rules.get(idx)
				for _, s := range p.RHS {
					for t := range d.firstSetOf(s) {
						if !ntFirst[t] {
							ntFirst[t] = true
							changed = true
						}
					}
					if !d.isNullableSoFar(s) {
						break
					}
				}
			}
		}
	}

	g.derived = d
	return d
}

func (d *derivedSets) isNullableSoFar(sym string) bool {
	if sym == Epsilon.Name() {
		return true
	}
	return d.nullable[sym]
}

func (d *derivedSets) firstSetOf(sym string) map[string]bool {
	if sym == Epsilon.Name() {
		return nil
	}
	return d.first[sym]
}

// Nullable reports whether sym ⇒* ε.
func (g *CFG) Nullable(sym string) bool {
	if sym == Epsilon.Name() {
		return true
	}
	return g.derive().nullable[sym]
}

// First returns FIRST(sym): {sym} for a terminal or EOF, the memoized
// derived set for a non-terminal. The result is sorted for determinism.
func (g *CFG) First(sym string) []string {
	if sym == EOF.Name() {
		return []string{EOF.Name()}
	}
	if g.IsTerminal(sym) {
		return []string{sym}
	}
	d := g.derive()
	set := d.first[sym]
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FirstOfSequence computes FIRST*(seq): the union of FIRST(Xi) while Xi is
// nullable, stopping at (and including) the first non-nullable Xi, or
// including ε if every Xi is nullable. seq is a sentential form — a mix of
// terminal and non-terminal names, optionally ending in EOF.
func (g *CFG) FirstOfSequence(seq []string) []string {
	set := map[string]bool{}
	allNullable := true
	for _, s := range seq {
		for _, t := range g.First(s) {
			set[t] = true
		}
		nullable := s == Epsilon.Name() || g.Nullable(s)
		if s == EOF.Name() {
			nullable = false
		}
		if !nullable {
			allNullable = false
			break
		}
	}
	if allNullable {
		set[Epsilon.Name()] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Follow returns FOLLOW(nonTerminal): the set of terminals (and possibly
// EOF) that can immediately follow nonTerminal in some derivation from the
// start symbol. FOLLOW is not needed for LALR(1) construction itself (the
// lookaheads carried by LR(1) items make it unnecessary) — it is provided
// for diagnostics only, per spec.md §3.
func (g *CFG) Follow(nonTerminal string) []string {
	follow := map[string]map[string]bool{}
	for _, nt := range g.nonTerminalOrder {
		follow[nt] = map[string]bool{}
	}
	if g.start != "" {
		follow[g.start] = map[string]bool{EOF.Name(): true}
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.nonTerminalOrder {
			for _, idx := range g.rules.alternativesOf(nt) {
				p := g.rules.get(idx)
				for i, sym := range p.RHS {
					if !g.IsNonTerminal(sym) {
						continue
					}
					rest := p.RHS[i+1:]
					firstRest := g.FirstOfSequence(rest)
					for _, t := range firstRest {
						if t == Epsilon.Name() {
							continue
						}
						if !follow[sym][t] {
							follow[sym][t] = true
							changed = true
						}
					}
					restNullable := true
					for _, r := range rest {
						if !g.Nullable(r) {
							restNullable = false
							break
						}
					}
					if restNullable {
						for t := range follow[nt] {
							if !follow[sym][t] {
								follow[sym][t] = true
								changed = true
							}
						}
					}
				}
			}
		}
	}

	out := make([]string, 0, len(follow[nonTerminal]))
	for t := range follow[nonTerminal] {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
