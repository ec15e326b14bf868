package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ProductionID content-addresses a production by its lhs and rhs symbol
// names, so that two rules built from equal (lhs, rhs) pairs are the same
// rule, independent of where they were declared.
type ProductionID [32]byte

func (id ProductionID) String() string {
	return hex.EncodeToString(id[:])
}

func newProductionID(lhs string, rhs []string) ProductionID {
	var sb strings.Builder
	sb.WriteString(lhs)
	sb.WriteByte(0)
	for _, s := range rhs {
		sb.WriteString(s)
		sb.WriteByte(0)
	}
	return sha256.Sum256([]byte(sb.String()))
}

// Production is the right-hand side of a rule `A -> α`, addressed by an
// arena index (RuleIndex) rather than carried around by value inside every
// item; items refer back to it by index, per the arena-of-rules design.
//
// An empty alternative is represented as RHS == nil (length 0 for
// parsing/popping purposes), matching spec.md's rule that ε never
// contributes to the "symbols to pop on reduce" count.
type Production struct {
	id  ProductionID
	LHS string
	RHS []string
}

// Len returns the number of symbols to pop from the parse stack on a reduce
// over this production. An epsilon production has length 0.
func (p Production) Len() int { return len(p.RHS) }

// IsEpsilon reports whether this production's rhs is empty.
func (p Production) IsEpsilon() bool { return len(p.RHS) == 0 }

// ID returns the production's content address.
func (p Production) ID() ProductionID { return p.id }

// String renders the production in "A -> X Y Z" form ("A -> ε" if empty).
func (p Production) String() string {
	if p.IsEpsilon() {
		return p.LHS + " -> ε"
	}
	return p.LHS + " -> " + strings.Join(p.RHS, " ")
}

// RuleIndex is an arena index into a Grammar's production table. Items carry
// a RuleIndex instead of an owning reference to the Production, so that
// copying an item is cheap and comparisons are by integer.
type RuleIndex int

// ruleArena stores productions in declaration order, deduplicated by
// content address, and indexes them by lhs for expansion during closure.
type ruleArena struct {
	byID    map[ProductionID]RuleIndex
	prods   []Production
	byLHS   map[string][]RuleIndex
	lhsSeen []string // non-terminal declaration order
}

func newRuleArena() *ruleArena {
	return &ruleArena{
		byID:  map[ProductionID]RuleIndex{},
		byLHS: map[string][]RuleIndex{},
	}
}

// add inserts (lhs, rhs) if not already present and returns its index. The
// pair (lhs, rhs) is globally unique, per spec.md §3.
func (a *ruleArena) add(lhs string, rhs []string) RuleIndex {
	id := newProductionID(lhs, rhs)
	if idx, ok := a.byID[id]; ok {
		return idx
	}
	idx := RuleIndex(len(a.prods))
	rhsCopy := append([]string(nil), rhs...)
	a.prods = append(a.prods, Production{id: id, LHS: lhs, RHS: rhsCopy})
	a.byID[id] = idx
	if _, ok := a.byLHS[lhs]; !ok {
		a.lhsSeen = append(a.lhsSeen, lhs)
	}
	a.byLHS[lhs] = append(a.byLHS[lhs], idx)
	return idx
}

func (a *ruleArena) get(idx RuleIndex) Production {
	return a.prods[idx]
}

func (a *ruleArena) alternativesOf(lhs string) []RuleIndex {
	return a.byLHS[lhs]
}
