package automaton

import "github.com/dekarrin/lalrgen/grammar"

// State is one state of the canonical LR(1) collection: its closure item
// set, its kernel (the subset that determines its identity), and the
// integer id assigned to it in BFS discovery order.
type State struct {
	ID     int
	Items  ItemSet
	Kernel ItemSet
}

// Collection is the canonical LR(1) viable-prefix automaton for a grammar:
// its states (in discovery order, so state ids are a contiguous [0, N)
// range per spec.md §8 invariant 3) and the GOTO transitions between them.
// Grammar is the augmented grammar the collection was built from.
type Collection struct {
	Grammar *grammar.CFG
	States  []*State
	Start   int

	trans map[int]map[string]int
}

// Goto returns the id of the state reached from id on symbol, if any.
func (c *Collection) Goto(id int, symbol string) (int, bool) {
	row, ok := c.trans[id]
	if !ok {
		return 0, false
	}
	j, ok := row[symbol]
	return j, ok
}

// Transitions returns the symbol->target map for state id, for callers that
// need to enumerate every outgoing edge (table synthesis, serialization).
func (c *Collection) Transitions(id int) map[string]int {
	return c.trans[id]
}

// BuildLR1 enumerates the canonical LR(1) collection for grammar g (spec.md
// §4.E). g must not already be augmented; BuildLR1 augments it internally
// and the returned Collection's Grammar is that augmented grammar.
func BuildLR1(g *grammar.CFG) (*Collection, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	aug := g.Augmented()
	startRuleIdx := aug.RuleIndicesOf(aug.StartSymbol())[0]
	startItem := grammar.LR1Item{
		LR0Item:   grammar.LR0Item{Rule: startRuleIdx, Dot: 0},
		Lookahead: grammar.EOF.Name(),
	}
	startSet := Closure(aug, newItemSet(startItem))

	col := &Collection{Grammar: aug, trans: map[int]map[string]int{}}
	byKey := map[string]int{}

	addState := func(items ItemSet) (id int, isNew bool) {
		k := items.key()
		if id, ok := byKey[k]; ok {
			return id, false
		}
		id = len(col.States)
		st := &State{ID: id, Items: items}
		if id == 0 {
			st.Kernel = items.kernel(&startItem)
		} else {
			st.Kernel = items.kernel(nil)
		}
		col.States = append(col.States, st)
		byKey[k] = id
		return id, true
	}

	startID, _ := addState(startSet)
	col.Start = startID

	symbols := make([]string, 0, len(aug.Terminals())+len(aug.NonTerminals())+1)
	symbols = append(symbols, aug.Terminals()...)
	symbols = append(symbols, aug.NonTerminals()...)
	symbols = append(symbols, grammar.EOF.Name())

	queue := []int{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		st := col.States[id]

		for _, X := range symbols {
			J := Goto(aug, st.Items, X)
			if len(J) == 0 {
				continue
			}
			jid, isNew := addState(J)
			if col.trans[id] == nil {
				col.trans[id] = map[string]int{}
			}
			col.trans[id][X] = jid
			if isNew {
				queue = append(queue, jid)
			}
		}
	}

	return col, nil
}
