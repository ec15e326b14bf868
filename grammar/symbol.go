// Package grammar holds the context-free grammar model consumed by the
// automaton and parse packages: symbols, productions, and the derived
// NULLABLE/FIRST sets used to build an LALR(1) parsing automaton.
package grammar

import "fmt"

// Kind classifies a Symbol as it appears in a grammar. The kind of a symbol
// is fixed at construction and never changes.
type Kind int

const (
	// Terminal symbols are matched against tokens produced by a lexer.
	Terminal Kind = iota
	// NonTerminal symbols are expanded by the productions of a grammar.
	NonTerminal
	// Marker symbols are neither: they are the distinguished EOF and
	// epsilon sentinels.
	Marker
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case NonTerminal:
		return "non-terminal"
	case Marker:
		return "marker"
	default:
		return "unknown"
	}
}

// Symbol is a grammar symbol: a terminal, a non-terminal, or one of the two
// process-wide markers (EOF, epsilon). Two symbols are equal iff their names
// are equal; the Kind is informational and derivable from the grammar that
// produced the symbol, never consulted for equality.
type Symbol struct {
	name string
	kind Kind
}

// NewTerminal returns the terminal symbol with the given name.
func NewTerminal(name string) Symbol {
	return Symbol{name: name, kind: Terminal}
}

// NewNonTerminal returns the non-terminal symbol with the given name.
func NewNonTerminal(name string) Symbol {
	return Symbol{name: name, kind: NonTerminal}
}

// EOF is the end-of-stream marker terminal, spelled "$". It is matched only
// by the augmented start rule.
var EOF = Symbol{name: "$", kind: Marker}

// Epsilon is the empty-string marker. It never appears in a non-empty
// right-hand side; a production's rhs containing only Epsilon is the
// grammar's way of spelling an empty alternative.
var Epsilon = Symbol{name: "ε", kind: Marker}

// Name returns the symbol's name. Equality and hashing of symbols are by
// name alone.
func (s Symbol) Name() string { return s.name }

// Kind returns the symbol's kind.
func (s Symbol) Kind() Kind { return s.kind }

// IsTerminal reports whether s is a terminal (EOF counts as a terminal for
// FIRST-set purposes, but IsTerminal on the EOF marker itself is false; use
// Equal(EOF) to test for it specifically).
func (s Symbol) IsTerminal() bool { return s.kind == Terminal }

// IsNonTerminal reports whether s is a non-terminal.
func (s Symbol) IsNonTerminal() bool { return s.kind == NonTerminal }

// IsMarker reports whether s is EOF or Epsilon.
func (s Symbol) IsMarker() bool { return s.kind == Marker }

// Equal reports whether two symbols have the same name. The Kind is not
// considered: symbol identity is the name.
func (s Symbol) Equal(o Symbol) bool { return s.name == o.name }

func (s Symbol) String() string {
	return fmt.Sprintf("%s<%s>", s.name, s.kind)
}
