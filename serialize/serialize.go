// Package serialize produces the compact, table-driver-ready encoding of an
// ACTION/GOTO table (spec.md §4.H) and its binary (REZI) wire form.
package serialize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/lalrgen/grammar"
	"github.com/dekarrin/lalrgen/parse"
	"github.com/dekarrin/rezi"
)

// EncodedAction is the compact per-cell encoding of spec.md §4.H:
//
//	Shift  -> Code = (next<<1)|1
//	Goto   -> Code = next<<1
//	Accept -> Code = -1
//	Reduce -> IsReduce, ReduceLHS, ReduceLen carry the (lhs, rhs length) pair
type EncodedAction struct {
	Code      int64
	IsReduce  bool
	ReduceLHS string
	ReduceLen int
}

// Artifact is the serialized table shape consumed by a table-driven parser
// (spec.md §4.H): the encoded ACTION/GOTO mapping, the dense list of state
// ids, and the per-state expected-terminal sets.
type Artifact struct {
	// Cells maps "state:symbol" to its encoded action.
	Cells map[string]EncodedAction
	// States is the dense 0..N state id range (spec.md §8 invariant 3).
	States []int
	// Expected maps state id to its sorted expected-terminal set.
	Expected map[int][]string
}

func cellKey(state int, symbol string) string {
	return strconv.Itoa(state) + ":" + symbol
}

// Encode walks t and produces its compact Artifact encoding.
func Encode(t *parse.Table) *Artifact {
	art := &Artifact{
		Cells:    map[string]EncodedAction{},
		States:   make([]int, t.NStates),
		Expected: map[int][]string{},
	}
	for i := 0; i < t.NStates; i++ {
		art.States[i] = i
		art.Expected[i] = t.ExpectedTerminals(i)
	}

	// Re-derive symbols from the grammar rather than re-scanning the
	// table's private cells: every terminal/non-terminal is a candidate
	// column, and Action() on an undefined cell is simply absent.
	symbols := append(append([]string(nil), t.Grammar.Terminals()...), t.Grammar.NonTerminals()...)
	symbols = append(symbols, grammar.EOF.Name())

	for i := 0; i < t.NStates; i++ {
		for _, sym := range symbols {
			act := t.Action(i, sym)
			switch act.Type {
			case parse.Shift:
				art.Cells[cellKey(i, sym)] = EncodedAction{Code: int64(act.State)<<1 | 1}
			case parse.Goto:
				art.Cells[cellKey(i, sym)] = EncodedAction{Code: int64(act.State) << 1}
			case parse.Accept:
				art.Cells[cellKey(i, sym)] = EncodedAction{Code: -1}
			case parse.Reduce:
				art.Cells[cellKey(i, sym)] = EncodedAction{IsReduce: true, ReduceLHS: act.LHS, ReduceLen: act.Len}
			}
		}
	}

	return art
}

// Decode reconstructs the original Action variant from an EncodedAction,
// per spec.md §4.H's round-trip requirement. isNonTerminal classifies the
// symbol this cell was stored under, needed to disambiguate Shift (Code is
// odd, symbol is a terminal) from Goto (Code is even, symbol is a
// non-terminal) since both share the "<<1" shape.
func Decode(e EncodedAction, isNonTerminal bool) parse.Action {
	if e.IsReduce {
		return parse.Action{Type: parse.Reduce, LHS: e.ReduceLHS, Len: e.ReduceLen}
	}
	if e.Code == -1 {
		return parse.Action{Type: parse.Accept}
	}
	next := int(e.Code >> 1)
	if isNonTerminal {
		return parse.Action{Type: parse.Goto, State: next}
	}
	return parse.Action{Type: parse.Shift, State: next}
}

// Marshal encodes art to its binary wire form using REZI, the same
// binary codec the teacher uses for its saved-game artifacts
// (server/dao/sqlite.go's rezi.EncBinary/DecBinary round trip).
func Marshal(art *Artifact) []byte {
	return rezi.EncBinary(art)
}

// Unmarshal decodes a binary Artifact previously produced by Marshal.
func Unmarshal(data []byte) (*Artifact, error) {
	art := &Artifact{}
	n, err := rezi.DecBinary(data, art)
	if err != nil {
		return nil, fmt.Errorf("REZI decode: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}
	return art, nil
}

// String renders the artifact's cells sorted by state then symbol, for
// debugging and golden-file tests.
func (a *Artifact) String() string {
	keys := make([]string, 0, len(a.Cells))
	for k := range a.Cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s -> %+v\n", k, a.Cells[k])
	}
	return sb.String()
}
