package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"strong", "TesterTest_123?", nil},
		{"too short", "Ab1?", ErrPasswordTooShort},
		{"lower case only", "weakpassword", ErrPasswordMixedCase},
		{"no digit", "NoDigits_here?", ErrPasswordNoDigit},
		{"no symbol", "NoSymbols123abc", ErrPasswordNoSymbol},
		{"common", "Password1!", ErrPasswordTooGuessable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPasswordStrength(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("TesterTest_123?")
	require.NoError(t, err)

	assert.True(t, CheckPassword("TesterTest_123?", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
