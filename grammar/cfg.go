package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lalrgen/gerrors"
)

// Rule is the ordered list of alternatives for a single non-terminal, as
// returned by CFG.Rule. Each alternative is a right-hand side symbol-name
// sequence; an epsilon alternative is the empty slice.
type Rule struct {
	NonTerminal string
	Productions [][]string
}

// CFG is a context-free grammar: a mapping from non-terminal to its ordered
// alternatives, a distinguished start symbol, and the sets of all terminals
// and non-terminals. It is built incrementally with AddTerm/AddRule and is
// read-only once Validate (or any derivation query) succeeds.
type CFG struct {
	rules *ruleArena

	declaredTerminals map[string]bool
	terminalOrder     []string

	lhsSet          map[string]bool
	nonTerminalOrder []string

	rhsSymbols map[string]bool // every symbol name that has appeared in some rhs

	start string

	derived *derivedSets // memoized NULLABLE/FIRST, invalidated by mutation
}

// NewCFG returns an empty grammar ready for AddTerm/AddRule calls.
func NewCFG() *CFG {
	return &CFG{
		rules:             newRuleArena(),
		declaredTerminals: map[string]bool{},
		lhsSet:            map[string]bool{},
		rhsSymbols:        map[string]bool{},
	}
}

// AddTerm declares name as a terminal symbol of the grammar, even if it
// never appears on the right-hand side of any kept rule (e.g. a terminal
// only used for diagnostics). Idempotent.
func (g *CFG) AddTerm(name string) {
	g.derived = nil
	if g.declaredTerminals[name] {
		return
	}
	g.declaredTerminals[name] = true
	g.terminalOrder = append(g.terminalOrder, name)
}

// SetStart sets the grammar's start symbol explicitly. If never called, the
// start symbol defaults to the lhs of the first rule added.
func (g *CFG) SetStart(nonTerminal string) {
	g.start = nonTerminal
}

// AddRule appends rhs as a new alternative for lhs. rhs may be nil/empty to
// denote an epsilon production, or may spell epsilon explicitly as
// []string{grammar.Epsilon.Name()} — the two are equivalent and both are
// normalized to the empty production. Returns ErrIllFormedGrammar if rhs
// mixes epsilon with other symbols in the same alternative.
func (g *CFG) AddRule(lhs string, rhs []string) error {
	if lhs == "" {
		return gerrors.New("rule lhs must not be empty", gerrors.ErrIllFormedGrammar)
	}

	normalized := rhs
	if len(rhs) > 1 {
		for _, s := range rhs {
			if s == Epsilon.Name() {
				return gerrors.New(
					fmt.Sprintf("rule %q -> %s mixes epsilon with other symbols", lhs, strings.Join(rhs, " ")),
					gerrors.ErrIllFormedGrammar,
				)
			}
		}
	} else if len(rhs) == 1 && rhs[0] == Epsilon.Name() {
		normalized = nil
	}

	g.derived = nil

	if !g.lhsSet[lhs] {
		g.lhsSet[lhs] = true
		g.nonTerminalOrder = append(g.nonTerminalOrder, lhs)
	}
	if g.start == "" {
		g.start = lhs
	}
	for _, s := range normalized {
		if !g.rhsSymbols[s] {
			g.rhsSymbols[s] = true
		}
	}

	g.rules.add(lhs, normalized)
	return nil
}

// StartSymbol returns the grammar's (non-augmented) start symbol name.
func (g *CFG) StartSymbol() string { return g.start }

// Terminals returns the grammar's terminal names in declaration order. It
// does not include EOF or Epsilon.
func (g *CFG) Terminals() []string {
	out := make([]string, len(g.terminalOrder))
	copy(out, g.terminalOrder)
	return out
}

// NonTerminals returns the grammar's non-terminal names in the order each
// first appeared as the lhs of a rule.
func (g *CFG) NonTerminals() []string {
	out := make([]string, len(g.nonTerminalOrder))
	copy(out, g.nonTerminalOrder)
	return out
}

// IsTerminal reports whether name was declared a terminal via AddTerm, or is
// EOF. Undeclared rhs symbols are not terminals; Validate rejects them.
func (g *CFG) IsTerminal(name string) bool {
	return name == EOF.Name() || g.declaredTerminals[name]
}

// IsNonTerminal reports whether name is the lhs of at least one rule.
func (g *CFG) IsNonTerminal(name string) bool {
	return g.lhsSet[name]
}

// Rule returns the ordered alternatives for a non-terminal. The zero Rule is
// returned (no Productions) if nonTerminal has no rules.
func (g *CFG) Rule(nonTerminal string) Rule {
	idxs := g.rules.alternativesOf(nonTerminal)
	r := Rule{NonTerminal: nonTerminal}
	for _, idx := range idxs {
		p := g.rules.get(idx)
		r.Productions = append(r.Productions, p.RHS)
	}
	return r
}

// RuleIndicesOf returns the arena indices of nonTerminal's alternatives, in
// declaration order.
func (g *CFG) RuleIndicesOf(nonTerminal string) []RuleIndex {
	return g.rules.alternativesOf(nonTerminal)
}

// Production returns the production stored at idx.
func (g *CFG) Production(idx RuleIndex) Production {
	return g.rules.get(idx)
}

// AllProductions returns every production in the grammar, in declaration
// order, alongside its arena index.
func (g *CFG) AllProductions() []Production {
	out := make([]Production, len(g.rules.prods))
	copy(out, g.rules.prods)
	return out
}

// GenerateUniqueTerminal returns a terminal name derived from base that is
// not currently used anywhere (as a terminal, non-terminal, or rhs symbol)
// in this grammar, by appending "'" until unique.
func (g *CFG) GenerateUniqueTerminal(base string) string {
	name := base
	for g.declaredTerminals[name] || g.lhsSet[name] || g.rhsSymbols[name] || name == EOF.Name() || name == Epsilon.Name() {
		name += "'"
	}
	return name
}

// GenerateUniqueNonTerminal is the non-terminal analogue of
// GenerateUniqueTerminal, used to name the augmented start symbol.
func (g *CFG) GenerateUniqueNonTerminal(base string) string {
	name := base
	for g.declaredTerminals[name] || g.lhsSet[name] || g.rhsSymbols[name] {
		name += "'"
	}
	return name
}

// Validate checks the invariants of spec.md §3/§7:
//   - every rhs symbol is a declared terminal or the lhs of some rule;
//   - the start symbol has at least one production;
//   - (AddRule already rejects epsilon mixed with other symbols.)
func (g *CFG) Validate() error {
	if g.start == "" {
		return gerrors.New("grammar has no start symbol", gerrors.ErrIllFormedGrammar)
	}
	if len(g.rules.alternativesOf(g.start)) == 0 {
		return gerrors.New(fmt.Sprintf("start symbol %q has no productions", g.start), gerrors.ErrIllFormedGrammar)
	}

	unknown := map[string]bool{}
	for s := range g.rhsSymbols {
		if g.IsTerminal(s) || g.lhsSet[s] {
			continue
		}
		unknown[s] = true
	}
	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for s := range unknown {
			names = append(names, s)
		}
		sort.Strings(names)
		return gerrors.New(
			fmt.Sprintf("unknown symbol(s) on rhs (neither declared terminal nor defined non-terminal): %s", strings.Join(names, ", ")),
			gerrors.ErrIllFormedGrammar,
		)
	}
	return nil
}

// Augmented returns a new grammar identical to g plus the augmented start
// rule S' -> S $, where S is g's start symbol and $ is EOF. The augmented grammar's start
// symbol is S'. Calling Augmented on an already-augmented grammar is safe
// but produces a grammar with two layers of augmentation; callers should
// only augment a non-augmented grammar, per spec.md §4.F.
func (g *CFG) Augmented() *CFG {
	primeName := g.GenerateUniqueNonTerminal(g.start + "'")

	aug := NewCFG()
	for _, t := range g.terminalOrder {
		aug.AddTerm(t)
	}
	for _, p := range g.rules.prods {
		// AddRule on an empty RHS re-normalizes; passing p.RHS (possibly
		// nil) directly reproduces the original alternative exactly.
		_ = aug.AddRule(p.LHS, p.RHS)
	}
	_ = aug.AddRule(primeName, []string{g.start, EOF.Name()})
	aug.SetStart(primeName)
	return aug
}
