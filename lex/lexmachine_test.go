package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arithLexer(t *testing.T) *Lexer {
	t.Helper()
	lx, err := NewLexer([]Rule{
		{Kind: Skip, Pattern: ` +`},
		{Kind: "int", Pattern: `[0-9]+`},
		{Kind: "+", Pattern: `\+`},
		{Kind: "*", Pattern: `\*`},
		{Kind: "(", Pattern: `\(`},
		{Kind: ")", Pattern: `\)`},
	})
	require.NoError(t, err)
	return lx
}

func Test_Lexer_Stream_SkipsWhitespaceAndTagsKinds(t *testing.T) {
	lx := arithLexer(t)
	stream, err := lx.Stream([]byte("12 + 3 * ( 4 )"), "<test>")
	require.NoError(t, err)

	var kinds []string
	for {
		tok := stream.Next()
		kinds = append(kinds, tok.Kind)
		if tok.IsEOF() {
			break
		}
	}

	assert.Equal(t, []string{"int", "+", "int", "*", "(", "int", ")", EOFKind}, kinds)
}

func Test_Lexer_Stream_TokensCarryKindLexemeAndFile(t *testing.T) {
	lx := arithLexer(t)
	stream, err := lx.Stream([]byte("42"), "file.g")
	require.NoError(t, err)

	tok := stream.Next()
	assert.Equal(t, "int", tok.Kind)
	assert.Equal(t, "42", tok.Lexeme)
	assert.Equal(t, "file.g", tok.Loc.File)
}

func Test_Lexer_Stream_Peek_IsIdempotent(t *testing.T) {
	lx := arithLexer(t)
	stream, err := lx.Stream([]byte("1 + 2"), "<test>")
	require.NoError(t, err)

	first := stream.Peek()
	second := stream.Peek()
	assert.Equal(t, first, second)
	assert.Equal(t, first, stream.Next())
}
