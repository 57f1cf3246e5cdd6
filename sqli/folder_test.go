package sqli

import (
	"os"
	"testing"

	"github.com/kantega/wafdetect/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldTokens_SingleTokenUnaffected(t *testing.T) {
	tz := NewTokenizer([]byte("1"), false, 0)
	tokens, emitted := FoldTokens(tz)
	require.Equal(t, 1, emitted)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenNumber, tokens[0].Kind)
	assert.Equal(t, "1", string(tokens[0].Value()))
}

func TestFoldTokens_CapAtFive(t *testing.T) {
	tz := NewTokenizer([]byte("(1)(2)(3)(4)(5)(6)(7)"), false, 0)
	tokens, _ := FoldTokens(tz)
	assert.LessOrEqual(t, len(tokens), maxFoldTokens)
}

func TestFoldTokens_Corpus(t *testing.T) {
	cases, err := corpus.LoadTokenCases(os.DirFS("../corpus/testdata/folding"), ".")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			tz := NewTokenizer(tc.Input, false, 0)
			tokens, _ := FoldTokens(tz)
			var got []corpus.ExpectedToken
			for _, tok := range tokens {
				got = append(got, corpus.ExpectedToken{
					Letter: tok.Kind.Letter(),
					Value:  string(tok.Value()),
				})
			}
			assert.Equal(t, tc.Expected, got)
		})
	}
}
