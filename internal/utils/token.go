package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	placeholderOnce sync.Once
	placeholderHash []byte
)

// GenerateToken returns a random alphanumeric token of the given length.
func GenerateToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(tokenAlphabet)))
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		token[i] = tokenAlphabet[n.Int64()]
	}

	return string(token), nil
}

// IssueToken generates a plaintext token together with the bcrypt hash that gets persisted.
// The plaintext is only ever handed to the recipient.
func IssueToken(length int) (plaintext, hash string, err error) {
	plaintext, err = GenerateToken(length)
	if err != nil {
		return "", "", err
	}

	hash, err = HashToken(plaintext)
	if err != nil {
		return "", "", err
	}

	return plaintext, hash, nil
}

// HashToken returns the bcrypt hash of a token.
func HashToken(token string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyToken reports whether token matches the stored hash.
func VerifyToken(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// BurnTokenCheck spends the same work as VerifyToken against a throwaway hash.
// Callers use it when no record exists so a missing record costs as much as a wrong token.
func BurnTokenCheck(token string) {
	placeholderOnce.Do(func() {
		placeholderHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-token"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(placeholderHash, []byte(token))
}
