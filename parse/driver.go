package parse

import (
	"fmt"

	"github.com/dekarrin/lalrgen/grammar"
	"github.com/dekarrin/lalrgen/lex"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Tracer receives a line of diagnostic text at each notable step of the
// driver (shift, reduce, accept). Nil-safe: a nil Tracer disables tracing,
// mirroring lrParser.trace in the teacher this module is grounded on.
type Tracer func(string)

// SyntaxError is a recoverable parse-time error (spec.md §6/§7): ACTION was
// undefined for the encountered token in the given state. The runtime
// driver decides whether to continue; this implementation stops.
type SyntaxError struct {
	Token    lex.Token
	State    int
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: unexpected %s in state %d (expected one of: %v)", e.Token, e.State, e.Expected)
}

// ValueBuilder constructs semantic values as the driver shifts tokens and
// reduces productions. A nil ValueBuilder is valid; the driver then tracks
// reductions only, carrying untyped nils as stack values.
type ValueBuilder interface {
	// Shift returns the semantic value pushed for a shifted token.
	Shift(tok lex.Token) interface{}
	// Reduce returns the semantic value pushed for a reduction of lhs over
	// children (the popped values, in left-to-right order).
	Reduce(lhs string, children []interface{}) interface{}
}

// Driver is a reference shift-reduce parser over a Table (spec.md §6's
// runtime driver contract): maintain a stack of (state, value) pairs, shift
// or reduce per ACTION, and consult GOTO after each reduce.
type Driver struct {
	table *Table
	trace Tracer
}

// NewDriver returns a Driver over table. trace may be nil.
func NewDriver(table *Table, trace Tracer) *Driver {
	return &Driver{table: table, trace: trace}
}

func (d *Driver) notify(format string, args ...interface{}) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, args...))
	}
}

// Parse drives stream to completion against d's table. It returns the
// accepted semantic value (nil if vb is nil) and the sequence of reduced
// left-hand sides in the order the reductions occurred.
func (d *Driver) Parse(stream lex.TokenStream, vb ValueBuilder) (value interface{}, reductions []string, err error) {
	states := arraystack.New()
	values := arraystack.New()

	states.Push(d.table.Start)
	tok := stream.Next()

	for {
		top, _ := states.Peek()
		state := top.(int)

		// the stream's terminating token is keyed as the grammar's EOF marker
		kind := tok.Kind
		if tok.IsEOF() {
			kind = grammar.EOF.Name()
		}

		act := d.table.Action(state, kind)
		switch act.Type {
		case Shift:
			d.notify("shift %s -> state %d", tok.Kind, act.State)
			var v interface{}
			if vb != nil {
				v = vb.Shift(tok)
			}
			values.Push(v)
			states.Push(act.State)
			tok = stream.Next()

		case Reduce:
			d.notify("reduce %s (pop %d)", act.LHS, act.Len)
			children := make([]interface{}, act.Len)
			for i := act.Len - 1; i >= 0; i-- {
				v, _ := values.Pop()
				states.Pop()
				children[i] = v
			}
			reductions = append(reductions, act.LHS)

			top, _ = states.Peek()
			gotoState := top.(int)
			next := d.table.Action(gotoState, act.LHS)
			if next.Type != Goto {
				return nil, reductions, fmt.Errorf("parse: no GOTO from state %d on %s after reducing", gotoState, act.LHS)
			}

			var v interface{}
			if vb != nil {
				v = vb.Reduce(act.LHS, children)
			}
			values.Push(v)
			states.Push(next.State)

		case Accept:
			d.notify("accept")
			if vb != nil {
				top, _ := values.Peek()
				value = top
			}
			return value, reductions, nil

		default:
			return nil, reductions, &SyntaxError{
				Token:    tok,
				State:    state,
				Expected: d.table.ExpectedTerminals(state),
			}
		}
	}
}
