// Package automaton builds the LR(1) viable-prefix automaton from a grammar:
// item-set closure and goto (spec.md §4.C/D), and the BFS enumeration of the
// canonical LR(1) collection (spec.md §4.E).
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lalrgen/grammar"
)

// ItemSet is a set of LR(1) items. Items are small comparable structs, so
// the set is just a Go map with struct{} values — no string-hashing of item
// text is needed to store or look one up.
type ItemSet map[grammar.LR1Item]struct{}

func newItemSet(items ...grammar.LR1Item) ItemSet {
	s := make(ItemSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s ItemSet) add(it grammar.LR1Item) bool {
	if _, ok := s[it]; ok {
		return false
	}
	s[it] = struct{}{}
	return true
}

func (s ItemSet) clone() ItemSet {
	out := make(ItemSet, len(s))
	for it := range s {
		out[it] = struct{}{}
	}
	return out
}

// sorted returns the set's items in a stable total order: by (rule index,
// dot, lookahead name), per spec.md §5's requirement that table population
// iterate items in a reproducible order.
func (s ItemSet) sorted() []grammar.LR1Item {
	out := make([]grammar.LR1Item, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead < b.Lookahead
	})
	return out
}

// kernel returns the subset of items with Dot > 0 — the items that
// determine this state's identity (spec.md §3). The caller is responsible
// for separately including the augmented start item for the start state,
// which conventionally has Dot == 0 but is nonetheless part of its kernel.
func (s ItemSet) kernel(includeStartItem *grammar.LR1Item) ItemSet {
	out := ItemSet{}
	for it := range s {
		if it.Dot > 0 {
			out[it] = struct{}{}
		}
	}
	if includeStartItem != nil {
		out[*includeStartItem] = struct{}{}
	}
	return out
}

// key renders a canonical string for this item set, built from small
// integer tuples rather than full item text, used only as a map key to
// deduplicate discovered states/kernels — not consulted on every lookup.
func (s ItemSet) key() string {
	items := s.sorted()
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%d.%d.%s", it.Rule, it.Dot, it.Lookahead)
	}
	return strings.Join(parts, "|")
}

// coreKey renders a canonical string for this item set's LR(0) core (the
// lookahead projected out), used to group states by core during LALR(1)
// merging (spec.md §4.F).
func (s ItemSet) coreKey() string {
	seen := map[grammar.LR0Item]bool{}
	cores := make([]grammar.LR0Item, 0, len(s))
	for it := range s {
		c := it.Core()
		if !seen[c] {
			seen[c] = true
			cores = append(cores, c)
		}
	}
	sort.Slice(cores, func(i, j int) bool {
		if cores[i].Rule != cores[j].Rule {
			return cores[i].Rule < cores[j].Rule
		}
		return cores[i].Dot < cores[j].Dot
	})
	parts := make([]string, len(cores))
	for i, c := range cores {
		parts[i] = fmt.Sprintf("%d.%d", c.Rule, c.Dot)
	}
	return strings.Join(parts, "|")
}
