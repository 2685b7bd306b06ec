package newick

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	var tokens []Token
	for tok, err := range Tokens([]byte(src)) {
		require.NoError(t, err)
		tokens = append(tokens, tok)
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	ks := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "; ( ) , : = *")
	assert.Equal(t, []TokenKind{
		TokenSemicolon, TokenLParen, TokenRParen, TokenComma,
		TokenColon, TokenEquals, TokenStar,
	}, kinds(tokens))
}

func TestLexerTree(t *testing.T) {
	tokens := collectTokens(t, "(A:0.1,B:2e-3,(C,D)E:-1)F;")
	assert.Equal(t, []TokenKind{
		TokenLParen, TokenWord, TokenColon, TokenNumber, TokenComma,
		TokenWord, TokenColon, TokenNumber, TokenComma,
		TokenLParen, TokenWord, TokenComma, TokenWord, TokenRParen,
		TokenWord, TokenColon, TokenNumber, TokenRParen, TokenWord,
		TokenSemicolon,
	}, kinds(tokens))
	assert.Equal(t, "2e-3", tokens[7].Text)
	assert.Equal(t, "-1", tokens[16].Text)
}

func TestLexerWordsAndNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"Struthioniformes", TokenWord},
		{"Homo_sapiens", TokenWord},
		{"23", TokenNumber},
		{"+4", TokenNumber},
		{"21.8", TokenNumber},
		{".5", TokenNumber},
		{"1.5E+10", TokenNumber},
		{"-", TokenWord},
		{"e", TokenWord},
		{"Inf", TokenWord},
		{"NaN", TokenWord},
		{"1a", TokenWord},
		{"1.2.3", TokenWord},
		{"#NEXUS", TokenHeader},
		{"#nexus", TokenHeader},
		{"#NEXUS2", TokenWord},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 1, "input: %s", tt.input)
		assert.Equal(t, tt.kind, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.input, tokens[0].Text, "input: %s", tt.input)
	}
}

func TestLexerQuoted(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"'Homo sapiens'", "Homo sapiens"},
		{"''", ""},
		{"'O''Brien'", "O'Brien"},
		{"'a (b), c; [d]'", "a (b), c; [d]"},
		{"''''", "'"},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 1, "input: %s", tt.input)
		assert.Equal(t, TokenString, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.text, tokens[0].Text, "input: %s", tt.input)
	}
}

func TestLexerComments(t *testing.T) {
	tokens := collectTokens(t, "[a] A [b [nested] c] [&R] ( B [trailing]")
	require.Len(t, tokens, 3)
	assert.Equal(t, []string{"a"}, tokens[0].Comments)
	assert.Equal(t, []string{"b [nested] c", "&R"}, tokens[1].Comments)
	assert.Equal(t, TokenLParen, tokens[1].Kind)
	assert.Empty(t, tokens[2].Comments)
}

func TestLexerPositions(t *testing.T) {
	tokens := collectTokens(t, "#NEXUS\n  BEGIN trees;\n\tEND;")
	require.Len(t, tokens, 6)
	assert.Equal(t, Pos{Offset: 0, Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, Pos{Offset: 9, Line: 2, Column: 3}, tokens[1].Pos)
	assert.Equal(t, Pos{Offset: 15, Line: 2, Column: 9}, tokens[2].Pos)
	assert.Equal(t, Pos{Offset: 20, Line: 2, Column: 14}, tokens[3].Pos)
	assert.Equal(t, Pos{Offset: 23, Line: 3, Column: 2}, tokens[4].Pos)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   Pos
	}{
		{"A 'unterminated", Pos{Offset: 2, Line: 1, Column: 3}},
		{"A\n[outer [inner] still open", Pos{Offset: 2, Line: 2, Column: 1}},
		{"A ] B", Pos{Offset: 2, Line: 1, Column: 3}},
		{"(A,B);\x00", Pos{Offset: 6, Line: 1, Column: 7}},
		{"(A\x00B);", Pos{Offset: 2, Line: 1, Column: 3}},
		{"\x00", Pos{Offset: 0, Line: 1, Column: 1}},
	}
	for _, tt := range tests {
		var err error
		for _, e := range Tokens([]byte(tt.input)) {
			if e != nil {
				err = e
			}
		}
		var lexErr *LexError
		require.True(t, errors.As(err, &lexErr), "input: %s", tt.input)
		assert.Equal(t, tt.pos, lexErr.Pos, "input: %s", tt.input)
	}
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens([]byte("(A,B);"))
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, 6, first)
	assert.Equal(t, first, second)
}

func TestScannerPeek(t *testing.T) {
	s := NewScanner([]byte("A;"))
	peeked, err := s.Peek()
	require.NoError(t, err)
	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, tok)

	tok, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenSemicolon, tok.Kind)

	for i := 0; i < 2; i++ {
		tok, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Kind)
	}
}
