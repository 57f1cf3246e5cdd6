package sqli

import (
	"os"
	"testing"

	"github.com/kantega/wafdetect/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_BasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  TokenKind
		value string
	}{
		{"left paren", "(", TokenLeftParen, "("},
		{"right paren", ")", TokenRightParen, ")"},
		{"comma", ",", TokenComma, ","},
		{"semicolon", ";", TokenSemicolon, ";"},
		{"dot", ".", TokenDot, "."},
		{"colon", ":", TokenColon, ":"},
		{"number", "1", TokenNumber, "1"},
		{"string", "'abc'", TokenString, "abc"},
		{"bareword", "users", TokenBareword, "users"},
		{"keyword", "FROM", TokenKeyword, "FROM"},
		{"expression", "SELECT", TokenExpression, "SELECT"},
		{"union", "UNION", TokenUnion, "UNION"},
		{"logic operator", "OR", TokenLogicOperator, "OR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := NewTokenizer([]byte(tt.input), false, 0)
			var tok Token
			require.True(t, tz.Next(&tok))
			assert.Equal(t, tt.kind, tok.Kind)
			assert.Equal(t, tt.value, string(tok.Value()))
		})
	}
}

func TestTokenizer_WhitespaceSkipped(t *testing.T) {
	tz := NewTokenizer([]byte("   "), false, 0)
	var tok Token
	assert.False(t, tz.Next(&tok))
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tz := NewTokenizer(nil, false, 0)
	var tok Token
	assert.False(t, tz.Next(&tok))
}

// TestTokenizer_Corpus replays the tokenizer against the round-trip
// fixtures checked in under corpus/testdata/tokens.
func TestTokenizer_Corpus(t *testing.T) {
	cases, err := corpus.LoadTokenCases(os.DirFS("../corpus/testdata/tokens"), ".")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			tz := NewTokenizer(tc.Input, false, 0)
			var got []corpus.ExpectedToken
			var tok Token
			for tz.Next(&tok) {
				got = append(got, corpus.ExpectedToken{
					Letter: tok.Kind.Letter(),
					Value:  string(tok.Value()),
				})
			}
			assert.Equal(t, tc.Expected, got)
		})
	}
}
