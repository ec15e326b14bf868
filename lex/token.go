// Package lex defines the tokenizer contract consumed by the table-driven
// parser driver (spec.md §6) and a concrete, lexmachine-backed
// implementation of it.
package lex

import (
	"fmt"
	"strings"
)

// EOFKind is the token kind every TokenStream must terminate with.
const EOFKind = "eof"

// Location pinpoints where a token was read from in its source text.
type Location struct {
	File   string
	Line   int
	Col    int
	Offset int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Token is a lexeme read from text, tagged with the kind the grammar's
// terminals match against (spec.md §6): `Token { kind, lexeme, loc }`.
type Token struct {
	Kind   string
	Lexeme string
	Loc    Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Loc)
}

// IsEOF reports whether t is the stream-terminating end-of-file token.
func (t Token) IsEOF() bool { return t.Kind == EOFKind }

// TokenStream is a lazy sequence of Tokens, always terminated by a Token
// with Kind == EOFKind (spec.md §6). Whitespace, comment, and newline
// tokens are expected to already be filtered out by the producer.
type TokenStream interface {
	// Next returns the next token and advances the stream by one.
	Next() Token
	// Peek returns the next token without advancing the stream.
	Peek() Token
	// HasNext reports whether Next would return anything other than a
	// repeat of the terminal EOF token.
	HasNext() bool
}

// sliceStream is a TokenStream over a pre-lexed, in-memory slice of tokens.
// Used by tests and by callers that already have a full token list instead
// of a lazy lexmachine scanner.
type sliceStream struct {
	toks []Token
	pos  int
	eof  Token
}

// NewSliceStream returns a TokenStream over toks. If the slice does not
// already end with an EOF token, one is appended using eofLoc as its location.
func NewSliceStream(toks []Token, eofLoc Location) TokenStream {
	eof := Token{Kind: EOFKind, Loc: eofLoc}
	if len(toks) == 0 || !toks[len(toks)-1].IsEOF() {
		toks = append(append([]Token(nil), toks...), eof)
	}
	return &sliceStream{toks: toks, eof: eof}
}

func (s *sliceStream) Next() Token {
	if s.pos >= len(s.toks) {
		return s.eof
	}
	t := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

func (s *sliceStream) Peek() Token {
	if s.pos >= len(s.toks) {
		return s.eof
	}
	return s.toks[s.pos]
}

func (s *sliceStream) HasNext() bool {
	return s.pos < len(s.toks)-1
}

// NewWordStream splits line on whitespace and returns a TokenStream whose
// tokens use each field verbatim as both Kind and Lexeme — the convention
// spec.md §8's end-to-end scenarios use to describe input ("int + int *
// int"), useful for driving a grammar directly by terminal name without a
// real lexer.
func NewWordStream(line string, file string) TokenStream {
	fields := strings.Fields(line)
	toks := make([]Token, len(fields))
	for i, f := range fields {
		toks[i] = Token{Kind: f, Lexeme: f, Loc: Location{File: file, Col: i + 1}}
	}
	return NewSliceStream(toks, Location{File: file})
}
