// Package lalr groups the canonical LR(1) collection built by the automaton
// package into an LALR(1) collection: states with equal LR(0) cores are
// merged into one state whose items carry the union of the group's
// lookaheads (spec.md §4.F).
package lalr

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lalrgen/automaton"
	"github.com/dekarrin/lalrgen/grammar"
)

// State is one state of the merged LALR(1) collection.
type State struct {
	ID    int
	Items automaton.ItemSet
}

// Collection is the LALR(1) automaton: merged states plus the rewritten
// GOTO transitions between them (spec.md §4.F).
type Collection struct {
	Grammar *grammar.CFG
	States  []*State
	Start   int

	trans map[int]map[string]int
}

// Goto returns the id of the merged state reached from id on symbol, if
// any transition is defined.
func (c *Collection) Goto(id int, symbol string) (int, bool) {
	row, ok := c.trans[id]
	if !ok {
		return 0, false
	}
	j, ok := row[symbol]
	return j, ok
}

// Transitions returns the symbol->target map for merged state id.
func (c *Collection) Transitions(id int) map[string]int {
	return c.trans[id]
}

func coreKeyOf(items automaton.ItemSet) string {
	seen := map[grammar.LR0Item]bool{}
	cores := make([]grammar.LR0Item, 0, len(items))
	for it := range items {
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
	parts := make([]byte, 0, len(cores)*8)
	for _, c := range cores {
		parts = append(parts, []byte(fmt.Sprintf("%d.%d|", c.Rule, c.Dot))...)
	}
	return string(parts)
}

// Merge groups col's states by LR(0) core and unions lookaheads within each
// group (spec.md §4.F). The merged collection's state ids are assigned in
// order of the minimum original state id in each group, so state 0 (the
// canonical collection's start state) always maps to merged state 0.
//
// Merge itself never fails: reduce/reduce conflicts exposed by the merge are
// a property of the resulting table, detected during ACTION synthesis (see
// the parse package), not of the merge operation.
func Merge(col *automaton.Collection) *Collection {
	groupOf := map[string][]int{} // coreKey -> original state ids
	keyOrder := []string{}
	keyOf := make([]string, len(col.States))

	for _, st := range col.States {
		k := coreKeyOf(st.Items)
		keyOf[st.ID] = k
		if _, ok := groupOf[k]; !ok {
			keyOrder = append(keyOrder, k)
		}
		groupOf[k] = append(groupOf[k], st.ID)
	}

	// order groups by their minimum member id, so merged ids preserve BFS
	// discovery order and merged state 0 is always the start state's group.
	sort.Slice(keyOrder, func(i, j int) bool {
		return minOf(groupOf[keyOrder[i]]) < minOf(groupOf[keyOrder[j]])
	})

	mergedIDOf := map[string]int{}
	merged := &Collection{Grammar: col.Grammar, trans: map[int]map[string]int{}}
	for newID, k := range keyOrder {
		mergedIDOf[k] = newID
		items := automaton.ItemSet{}
		for _, origID := range groupOf[k] {
			for it := range col.States[origID].Items {
				items[it] = struct{}{}
			}
		}
		merged.States = append(merged.States, &State{ID: newID, Items: items})
	}
	merged.Start = mergedIDOf[keyOf[col.Start]]

	for _, k := range keyOrder {
		newID := mergedIDOf[k]
		for _, origID := range groupOf[k] {
			for X, origTarget := range col.Transitions(origID) {
				targetKey := keyOf[origTarget]
				newTarget := mergedIDOf[targetKey]
				if merged.trans[newID] == nil {
					merged.trans[newID] = map[string]int{}
				}
				if existing, ok := merged.trans[newID][X]; ok && existing != newTarget {
					// Cannot happen: states sharing an LR(0) core already
					// agreed on every Goto/Shift target before merging
					// (spec.md §4.F, §9 Open Question 2).
					panic(fmt.Sprintf("lalr: merge aliased two distinct targets for state %d on symbol %q: %d and %d", newID, X, existing, newTarget))
				}
				merged.trans[newID][X] = newTarget
			}
		}
	}

	return merged
}

func minOf(ids []int) int {
	m := ids[0]
	for _, id := range ids[1:] {
		if id < m {
			m = id
		}
	}
	return m
}
