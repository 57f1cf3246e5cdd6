package sqli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Empty(t *testing.T) {
	assert.Equal(t, "", Fingerprint(nil))
}

func TestFingerprint_LengthInvariant(t *testing.T) {
	inputs := []string{
		"",
		"1",
		"1 UNION SELECT password FROM users",
		"admin'--",
		"1' OR '1'='1",
		"SELECT * FROM users WHERE id = 1",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := Detect([]byte(in))
			assert.LessOrEqual(t, len(res.Fingerprint), maxFoldTokens)
		})
	}
}
