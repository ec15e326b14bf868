package parse

import (
	"sort"
	"strconv"

	"github.com/dekarrin/lalrgen/gerrors"
	"github.com/dekarrin/lalrgen/grammar"
	"github.com/dekarrin/lalrgen/lalr"
	"github.com/dekarrin/rosed"
)

// Table is the ACTION/GOTO table produced by synthesizing a merged LALR(1)
// collection (spec.md §4.G). Cells are keyed by (state id, symbol name); a
// missing cell means ACTION/GOTO is undefined there.
type Table struct {
	Grammar *grammar.CFG
	Start   int
	NStates int

	cells map[int]map[string]Action
}

type cellKey struct {
	state  int
	symbol string
}

// Action returns the action for (state, symbol), or the zero Action (Type
// == Error) if none is defined.
func (t *Table) Action(state int, symbol string) Action {
	row, ok := t.cells[state]
	if !ok {
		return Action{}
	}
	return row[symbol]
}

// ExpectedTerminals returns the sorted set of terminal names (and possibly
// EOF) on which ACTION is defined for state — the expected-token set used
// for parse-error diagnostics (spec.md §4.G, §6).
func (t *Table) ExpectedTerminals(state int) []string {
	row, ok := t.cells[state]
	if !ok {
		return nil
	}
	var out []string
	for sym, act := range row {
		if act.Type == Shift || act.Type == Reduce || act.Type == Accept {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Table) set(state int, symbol string, act Action) error {
	if t.cells[state] == nil {
		t.cells[state] = map[string]Action{}
	}
	existing, ok := t.cells[state][symbol]
	if !ok {
		t.cells[state][symbol] = act
		return nil
	}
	if existing.Equal(act) {
		return nil
	}
	return conflictError(state, symbol, existing, act)
}

func conflictError(state int, symbol string, a, b Action) error {
	shift, reduce := pick(a, b, Shift), pick(a, b, Reduce)
	switch {
	case shift.Type == Shift && reduce.Type == Reduce:
		return gerrors.New(
			"state "+itoa(state)+": shift/reduce conflict on "+symbol+
				" (shift to "+itoa(shift.State)+" or reduce "+reduce.LHS+")",
			gerrors.ErrShiftReduceConflict, gerrors.ErrNotLALR1,
		)
	case a.Type == Reduce && b.Type == Reduce:
		return gerrors.New(
			"state "+itoa(state)+": reduce/reduce conflict on "+symbol+
				" (reduce "+a.LHS+" or reduce "+b.LHS+")",
			gerrors.ErrReduceReduceConflict, gerrors.ErrNotLALR1,
		)
	default:
		return gerrors.New(
			"state "+itoa(state)+": conflicting actions on "+symbol+" ("+a.String()+" vs "+b.String()+")",
			gerrors.ErrNotLALR1,
		)
	}
}

func pick(a, b Action, want ActionType) Action {
	if a.Type == want {
		return a
	}
	return b
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Build synthesizes the ACTION/GOTO table from merged, the LALR(1)
// collection produced by lalr.Merge (spec.md §4.G). It returns a
// gerrors.Error wrapping ErrShiftReduceConflict/ErrReduceReduceConflict on
// the first conflict encountered, in deterministic (state id, then item
// order) scan order, and does not emit a partial table (spec.md §7: all
// construction errors are fatal).
func Build(merged *lalr.Collection) (*Table, error) {
	g := merged.Grammar
	t := &Table{
		Grammar: g,
		Start:   merged.Start,
		NStates: len(merged.States),
		cells:   map[int]map[string]Action{},
	}

	for _, st := range merged.States {
		items := sortedItems(st.Items)
		for _, it := range items {
			p := g.Production(it.Rule)

			if it.Dot >= len(p.RHS) {
				// complete item: reduce, unless it is the augmented start
				// rule, which never reduces (it only accepts).
				if p.LHS == g.StartSymbol() {
					continue
				}
				if err := t.set(st.ID, it.Lookahead, Action{Type: Reduce, LHS: p.LHS, Len: p.Len()}); err != nil {
					return nil, err
				}
				continue
			}

			X := p.RHS[it.Dot]
			target, ok := merged.Goto(st.ID, X)
			if !ok {
				continue
			}

			if g.IsNonTerminal(X) {
				// Goto never conflicts (spec.md §4.G.4): non-terminal
				// transitions are disjoint from terminal actions by symbol
				// kind.
				t.set(st.ID, X, Action{Type: Goto, State: target})
				continue
			}

			// X is a terminal. The augmented start rule's item
			// (S' -> S · EOF, EOF) is the one place Shift is replaced with
			// Accept (spec.md §4.G.2).
			if p.LHS == g.StartSymbol() && X == grammar.EOF.Name() {
				if err := t.set(st.ID, X, Action{Type: Accept}); err != nil {
					return nil, err
				}
				continue
			}
			if err := t.set(st.ID, X, Action{Type: Shift, State: target}); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

func sortedItems(items map[grammar.LR1Item]struct{}) []grammar.LR1Item {
	out := make([]grammar.LR1Item, 0, len(items))
	for it := range items {
		out = append(out, it)
	}
	// Stable total order per spec.md §5: (rule index, dot, lookahead name).
	// rule index alone does not carry lhs-name ordering, but it is assigned
	// in grammar declaration order, which is sufficient for a reproducible
	// build of a fixed grammar.
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

// String renders the table as a rosed-formatted grid: one row per state,
// one column per terminal (ACTION) then per non-terminal (GOTO).
func (t *Table) String() string {
	terms := t.Grammar.Terminals()
	terms = append(append([]string(nil), terms...), grammar.EOF.Name())
	nonTerms := t.Grammar.NonTerminals()

	headers := []string{"state", "|"}
	for _, term := range terms {
		headers = append(headers, "A:"+term)
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}
	for i := 0; i < t.NStates; i++ {
		row := []string{itoa(i), "|"}
		for _, term := range terms {
			act := t.Action(i, term)
			cell := ""
			switch act.Type {
			case Accept:
				cell = "acc"
			case Reduce:
				cell = "r:" + act.LHS
			case Shift:
				cell = "s" + itoa(act.State)
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			act := t.Action(i, nt)
			cell := ""
			if act.Type == Goto {
				cell = itoa(act.State)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.Edit("").InsertTableOpts(0, data, 10, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}
