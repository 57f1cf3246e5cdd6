package xss

import (
	"os"
	"testing"

	"github.com/kantega/wafdetect/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_BasicTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ctx   Context
		kind  TokenType
		value string
	}{
		{"tag open", "<script>", ContextData, TokTagNameOpen, "script"},
		{"data text", "hello<", ContextData, TokDataText, "hello"},
		{"attr name", "name=", ContextValueNoQuote, TokAttrName, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New([]byte(tt.input), tt.ctx)
			require.True(t, h.Next())
			assert.Equal(t, tt.kind, h.TokenType)
			assert.Equal(t, tt.value, string(h.Token()))
		})
	}
}

func TestState_EmptyInput(t *testing.T) {
	h := New(nil, ContextData)
	assert.False(t, h.Next())
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "data-text", TokDataText.String())
	assert.Equal(t, "tag-name-open", TokTagNameOpen.String())
	assert.Equal(t, "doctype", TokDoctype.String())
}

// TestState_Corpus replays the HTML5 state machine against the
// round-trip fixtures checked in under corpus/testdata/html5.
func TestState_Corpus(t *testing.T) {
	cases, err := corpus.LoadHtml5Cases(os.DirFS("../corpus/testdata/html5"), ".")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			h := New(tc.Input, ContextData)
			var got []corpus.Html5Line
			for h.Next() {
				got = append(got, corpus.Html5Line{
					TokenType: h.TokenType.String(),
					Len:       len(h.Token()),
					Bytes:     append([]byte(nil), h.Token()...),
				})
			}
			require.Len(t, got, len(tc.Lines))
			for i := range tc.Lines {
				assert.Equal(t, tc.Lines[i].TokenType, got[i].TokenType)
				assert.Equal(t, tc.Lines[i].Len, got[i].Len)
				assert.Equal(t, string(tc.Lines[i].Bytes), string(got[i].Bytes))
			}
		})
	}
}
