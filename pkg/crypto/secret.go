package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashSecret hashes an operator key (or any shared secret) using bcrypt
func HashSecret(secret string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	bytes, err := bcryptGenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(bytes), nil
}

// CheckSecret compares a secret with a bcrypt hash
func CheckSecret(secret, hash string) bool {
	if secret == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// GenerateRandomToken generates a hex token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
