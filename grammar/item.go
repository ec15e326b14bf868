package grammar

import "fmt"

// LR0Item is a production with a dot marking parse progress: (A -> α·β).
// It carries the production by arena index rather than by value, so that an
// item is a small comparable struct — two items with the same (Rule, Dot)
// are the same item, usable directly as a map key.
type LR0Item struct {
	Rule RuleIndex
	Dot  int
}

// LR1Item adds a single terminal lookahead to an LR0Item: (A -> α·β, a).
// The Core of an LR1Item is its embedded LR0Item.
type LR1Item struct {
	LR0Item
	Lookahead string
}

// Core projects the lookahead out of an LR1Item, yielding the LR0 item used
// to key a state's kernel for LALR(1) merging (spec.md §4.F).
func (it LR1Item) Core() LR0Item { return it.LR0Item }

// IsComplete reports whether the dot has reached the end of the production:
// dot == len(rhs).
func (it LR0Item) IsComplete(g *CFG) bool {
	return it.Dot >= g.Production(it.Rule).Len()
}

// NextSymbol returns the symbol immediately after the dot and true, or ""
// and false if the item is complete.
func (it LR0Item) NextSymbol(g *CFG) (string, bool) {
	p := g.Production(it.Rule)
	if it.Dot >= len(p.RHS) {
		return "", false
	}
	return p.RHS[it.Dot], true
}

// Advanced returns the item with the dot moved one position to the right.
// It is the caller's responsibility to only call this when NextSymbol is
// defined.
func (it LR0Item) Advanced() LR0Item {
	return LR0Item{Rule: it.Rule, Dot: it.Dot + 1}
}

// Advanced returns the LR1 item with the dot moved one position to the
// right, preserving the lookahead.
func (it LR1Item) Advanced() LR1Item {
	return LR1Item{LR0Item: it.LR0Item.Advanced(), Lookahead: it.Lookahead}
}

// String renders the item as "A -> α · β" ("A -> α · β, a" for an LR1Item).
func (it LR0Item) String(g *CFG) string {
	p := g.Production(it.Rule)
	left := p.RHS[:it.Dot]
	right := p.RHS[it.Dot:]
	if len(left) == 0 && len(right) == 0 {
		return fmt.Sprintf("%s -> ·", p.LHS)
	}
	s := p.LHS + " -> "
	for i, sym := range left {
		if i > 0 {
			s += " "
		}
		s += sym
	}
	s += " ·"
	for _, sym := range right {
		s += " " + sym
	}
	return s
}

// String renders the LR1 item with its lookahead appended.
func (it LR1Item) String(g *CFG) string {
	return fmt.Sprintf("%s, %s", it.LR0Item.String(g), it.Lookahead)
}
