package utils

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort     = fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	ErrPasswordMixedCase    = errors.New("password must contain upper and lower case letters")
	ErrPasswordNoDigit      = errors.New("password must contain at least one number")
	ErrPasswordNoSymbol     = errors.New("password must contain at least one symbol")
	ErrPasswordTooGuessable = errors.New("password is too common or easy to guess")
)

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordStrength enforces the password policy. userInputs (names, email)
// are penalised by the strength estimator when they appear in the password.
func CheckPasswordStrength(password string, userInputs ...string) error {
	if len([]rune(password)) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r):
			symbol = true
		}
	}

	switch {
	case !upper || !lower:
		return ErrPasswordMixedCase
	case !digit:
		return ErrPasswordNoDigit
	case !symbol:
		return ErrPasswordNoSymbol
	}

	if zxcvbn.PasswordStrength(password, userInputs).Score < constants.MinPasswordScore {
		return ErrPasswordTooGuessable
	}

	return nil
}
