// Package source implements the grammar-source contract of spec.md §6: an
// external collaborator yields an ordered list of productions, a start
// symbol, and a literal->terminal-kind map, which this package turns into
// a *grammar.CFG.
package source

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lalrgen/grammar"
)

// Rule is one production as handed across the grammar-source contract:
// lhs -> rhs, with rhs empty denoting an epsilon alternative.
type Rule struct {
	LHS string
	RHS []string
}

// Source is the grammar-source contract (spec.md §6): an ordered list of
// productions, a designated start symbol, and a mapping from literal text
// (keywords, operators) to the terminal kind a lexer should classify them
// as.
type Source interface {
	Productions() []Rule
	Start() string
	Literals() map[string]string
}

// Build turns a Source into a validated *grammar.CFG: every rhs symbol
// that isn't the lhs of some rule is declared a terminal, the start symbol
// is set, and Validate is run before returning.
func Build(src Source) (*grammar.CFG, error) {
	rules := src.Productions()

	lhsSet := map[string]bool{}
	for _, r := range rules {
		lhsSet[r.LHS] = true
	}

	g := grammar.NewCFG()
	for lit, kind := range src.Literals() {
		_ = lit
		g.AddTerm(kind)
	}

	for _, r := range rules {
		for _, s := range r.RHS {
			if s == grammar.Epsilon.Name() || lhsSet[s] {
				continue
			}
			g.AddTerm(s)
		}
	}

	for _, r := range rules {
		if err := g.AddRule(r.LHS, r.RHS); err != nil {
			return nil, err
		}
	}

	if src.Start() != "" {
		g.SetStart(src.Start())
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// TextSource is a concrete Source backed by a small line-oriented grammar
// text format, grounded on the "NONTERM -> ALPHA . BETA" item convention of
// grammar.ParseLR0Item in the teacher:
//
//	# comment
//	S -> ( L ) | x
//	L -> S | L , S
//
// Alternatives on one line are separated by '|'; an empty alternative (or
// one spelled as the literal "ε") denotes epsilon. The first rule's lhs is
// the default start symbol unless overridden by SetStart.
type TextSource struct {
	rules     []Rule
	start     string
	firstRule string
	literals  map[string]string
}

// ParseText parses text in the format documented on TextSource.
func ParseText(text string) (*TextSource, error) {
	ts := &TextSource{literals: map[string]string{}}

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sides := strings.SplitN(line, "->", 2)
		if len(sides) != 2 {
			return nil, fmt.Errorf("line %d: expected 'LHS -> alt1 | alt2...': %q", lineNo+1, line)
		}
		lhs := strings.TrimSpace(sides[0])
		if lhs == "" {
			return nil, fmt.Errorf("line %d: empty left-hand side", lineNo+1)
		}
		if ts.firstRule == "" {
			ts.firstRule = lhs
		}

		for _, alt := range strings.Split(sides[1], "|") {
			alt = strings.TrimSpace(alt)
			var rhs []string
			if alt != "" && alt != grammar.Epsilon.Name() {
				rhs = strings.Fields(alt)
			}
			ts.rules = append(ts.rules, Rule{LHS: lhs, RHS: rhs})
		}
	}

	return ts, nil
}

// SetStart overrides the default start symbol (the lhs of the first rule).
func (ts *TextSource) SetStart(nonTerminal string) { ts.start = nonTerminal }

// SetLiteral records that literal should lex as terminal kind.
func (ts *TextSource) SetLiteral(literal, kind string) { ts.literals[literal] = kind }

func (ts *TextSource) Productions() []Rule { return ts.rules }

func (ts *TextSource) Start() string {
	if ts.start != "" {
		return ts.start
	}
	return ts.firstRule
}

func (ts *TextSource) Literals() map[string]string { return ts.literals }
