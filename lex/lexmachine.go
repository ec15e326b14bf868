package lex

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Rule binds a terminal kind to the regex pattern (lexmachine/RE2 syntax)
// that recognizes it. Rules earlier in the slice take priority on a tie,
// the same "first rule wins" convention lexmachine itself uses.
type Rule struct {
	Kind    string
	Pattern string
}

// Skip marks a Rule whose matches are discarded rather than turned into
// tokens (whitespace, comments) — filtered out before reaching the parser
// driver, per spec.md §6.
const Skip = ""

// Lexer is a concrete, regex-rule-driven tokenizer backed by
// github.com/timtadh/lexmachine, grounded on npillmayer-gorgo's lexmachine
// scanner adapter.
type Lexer struct {
	inner *lexmachine.Lexer
}

// NewLexer compiles rules into a reusable Lexer. Rules whose Kind is Skip
// match and are silently dropped (no token produced).
func NewLexer(rules []Rule) (*Lexer, error) {
	lx := lexmachine.NewLexer()
	for _, r := range rules {
		kind := r.Kind
		if kind == Skip {
			lx.Add([]byte(r.Pattern), func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
				return nil, nil
			})
			continue
		}
		lx.Add([]byte(r.Pattern), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(0, kind, m), nil
		})
	}
	if err := lx.Compile(); err != nil {
		return nil, fmt.Errorf("compiling lexer rules: %w", err)
	}
	return &Lexer{inner: lx}, nil
}

// Stream returns a lazy TokenStream over input, attributing file to every
// token's Location for diagnostics.
func (l *Lexer) Stream(input []byte, file string) (TokenStream, error) {
	sc, err := l.inner.Scanner(input)
	if err != nil {
		return nil, fmt.Errorf("starting scan of %s: %w", file, err)
	}
	return &machineStream{scanner: sc, file: file}, nil
}

// machineStream adapts a lexmachine.Scanner to the TokenStream interface,
// lazily pulling one token at a time and caching exactly one lookahead for
// Peek, mirroring the lazy-stream contract of spec.md §6.
type machineStream struct {
	scanner *lexmachine.Scanner
	file    string

	cached  *Token
	atEOF   bool
	eofTok  Token
	haveEOF bool
}

func (m *machineStream) pull() Token {
	for {
		tok, err, eof := m.scanner.Next()
		if eof {
			m.atEOF = true
			if !m.haveEOF {
				m.eofTok = Token{Kind: EOFKind, Loc: Location{File: m.file}}
				m.haveEOF = true
			}
			return m.eofTok
		}
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				m.scanner.TC = ui.FailTC
				continue
			}
			m.atEOF = true
			m.eofTok = Token{Kind: EOFKind, Loc: Location{File: m.file}}
			m.haveEOF = true
			return m.eofTok
		}
		if tok == nil {
			// a Skip rule matched (whitespace/comment); keep pulling.
			continue
		}
		lt := tok.(*lexmachine.Token)
		return Token{
			Kind:   lt.Value.(string),
			Lexeme: string(lt.Lexeme),
			Loc: Location{
				File:   m.file,
				Line:   lt.StartLine,
				Col:    lt.StartColumn,
				Offset: lt.TC,
			},
		}
	}
}

func (m *machineStream) Next() Token {
	if m.cached != nil {
		t := *m.cached
		m.cached = nil
		return t
	}
	return m.pull()
}

func (m *machineStream) Peek() Token {
	if m.cached == nil {
		t := m.pull()
		m.cached = &t
	}
	return *m.cached
}

func (m *machineStream) HasNext() bool {
	return !m.Peek().IsEOF()
}
