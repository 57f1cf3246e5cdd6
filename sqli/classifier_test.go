package sqli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSQLi_EmptyFingerprintIsSafe(t *testing.T) {
	assert.False(t, IsSQLi("", nil, 0, nil))
}

func TestIsSQLi_UnlistedFingerprintIsSafe(t *testing.T) {
	tok := Token{Kind: TokenBareword}
	tok.setVal([]byte("users"))
	assert.False(t, IsSQLi("n", []Token{tok}, 1, []byte("users")))
}

func TestContainsSpPassword(t *testing.T) {
	assert.True(t, containsSpPassword("sc", []byte("exec sp_password '1'--")))
	assert.False(t, containsSpPassword("sc", []byte("exec sp_other '1'--")))
	assert.False(t, containsSpPassword("ss", []byte("sp_password")))
}
