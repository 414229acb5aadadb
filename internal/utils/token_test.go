package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	plain, hash, err := IssueToken(20)
	require.NoError(t, err)

	assert.Len(t, plain, 20)
	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]{20}$`), plain)
	assert.Len(t, hash, 60)
	assert.Regexp(t, regexp.MustCompile(`^\$2[aby]\$`), hash)
	assert.NotContains(t, hash, plain)

	assert.True(t, VerifyToken(plain, hash))
	assert.False(t, VerifyToken("invalidToken12345678", hash))
	assert.False(t, VerifyToken("", hash))
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := GenerateToken(20)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}

func TestGenerateToken_InvalidLength(t *testing.T) {
	_, err := GenerateToken(0)
	assert.Error(t, err)
}
