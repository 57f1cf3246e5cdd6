package sqli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_PlainTextIsSafe(t *testing.T) {
	res := Detect([]byte("Hello, world!"))
	assert.False(t, res.IsInjection, "fingerprint=%q", res.Fingerprint)
}

func TestDetect_EmptyInput(t *testing.T) {
	res := Detect(nil)
	assert.False(t, res.IsInjection)
	assert.Equal(t, "", res.Fingerprint)
}

// TestDetect_SeedScenarios exercises the four literal scenarios this
// detector's fold/classify pipeline is validated against.
func TestDetect_SeedScenarios(t *testing.T) {
	t.Run("benign select by id", func(t *testing.T) {
		res := Detect([]byte("SELECT * FROM users WHERE id = 1"))
		assert.Equal(t, "Eoknk", res.Fingerprint)
		assert.False(t, res.IsInjection)
	})
	t.Run("boolean injection", func(t *testing.T) {
		res := Detect([]byte("1' OR '1'='1"))
		assert.Equal(t, "s&s", res.Fingerprint)
		assert.True(t, res.IsInjection)
	})
	t.Run("comment truncation", func(t *testing.T) {
		res := Detect([]byte("admin'--"))
		assert.Equal(t, "sc", res.Fingerprint)
		assert.True(t, res.IsInjection)
	})
	t.Run("union-based injection", func(t *testing.T) {
		res := Detect([]byte("1 UNION SELECT password FROM users"))
		assert.True(t, strings.HasPrefix(res.Fingerprint, "1U"))
		assert.True(t, res.IsInjection)
	})
}

func TestDetect_FingerprintBounded(t *testing.T) {
	inputs := []string{
		"",
		"1",
		"1 UNION SELECT password FROM users",
		"admin'--",
		"1' OR '1'='1",
		"SELECT * FROM users WHERE id = 1",
		"Hello, world!",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := Detect([]byte(in))
			assert.LessOrEqual(t, len(res.Fingerprint), maxFoldTokens)
			if res.IsInjection {
				assert.NotEmpty(t, res.Fingerprint)
			}
		})
	}
}

// TestDetect_TrailingWhitespaceMonotonic checks the spec's monotonicity
// property: appending whitespace never turns a detected injection into
// "safe".
func TestDetect_TrailingWhitespaceMonotonic(t *testing.T) {
	inputs := []string{
		"1' OR '1'='1",
		"admin'--",
		"1 UNION SELECT password FROM users",
		"SELECT * FROM users WHERE id = 1",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			base := Detect([]byte(in))
			padded := Detect([]byte(in + "   "))
			if base.IsInjection {
				assert.True(t, padded.IsInjection)
			}
		})
	}
}

func TestDetectWithFlags_DialectSelection(t *testing.T) {
	res := DetectWithFlags([]byte("1"), FlagQuoteNone|FlagDialectANSI)
	assert.Equal(t, "1", res.Fingerprint)
	assert.False(t, res.IsInjection)
}
