package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewWordStream_SplitsOnWhitespaceAndAppendsEOF(t *testing.T) {
	s := NewWordStream("int + int", "<test>")

	var kinds []string
	for {
		tok := s.Next()
		kinds = append(kinds, tok.Kind)
		if tok.IsEOF() {
			break
		}
	}

	assert.Equal(t, []string{"int", "+", "int", EOFKind}, kinds)
}

func Test_NewWordStream_EmptyLineYieldsOnlyEOF(t *testing.T) {
	s := NewWordStream("   ", "<test>")
	tok := s.Next()
	assert.True(t, tok.IsEOF())
	assert.False(t, s.HasNext())
}

func Test_SliceStream_PeekDoesNotAdvance(t *testing.T) {
	s := NewSliceStream([]Token{{Kind: "a"}, {Kind: "b"}}, Location{})

	assert.Equal(t, "a", s.Peek().Kind)
	assert.Equal(t, "a", s.Peek().Kind)
	assert.Equal(t, "a", s.Next().Kind)
	assert.Equal(t, "b", s.Next().Kind)
}

func Test_SliceStream_RepeatsEOFAfterExhausted(t *testing.T) {
	s := NewSliceStream([]Token{{Kind: "a"}}, Location{File: "f"})

	assert.Equal(t, "a", s.Next().Kind)
	assert.True(t, s.Next().IsEOF())
	assert.True(t, s.Next().IsEOF())
	assert.False(t, s.HasNext())
}

func Test_SliceStream_DoesNotDoubleAppendEOF(t *testing.T) {
	s := NewSliceStream([]Token{{Kind: EOFKind}}, Location{})
	assert.False(t, s.HasNext())
	assert.True(t, s.Next().IsEOF())
	assert.True(t, s.Next().IsEOF())
}
