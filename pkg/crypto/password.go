package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 10

	// ResetTokenBytes is the size of a password reset token before hex encoding
	ResetTokenBytes = 23

	minCode = 100000
	maxCode = 999999
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
	randomInt                  = func(r io.Reader, max *big.Int) (*big.Int, error) { return rand.Int(r, max) }
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateRandomToken generates a hex token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateResetToken generates the 46-character token of a reset request
func GenerateResetToken() (string, error) {
	return GenerateRandomToken(ResetTokenBytes)
}

// GenerateNumericCode returns a uniformly random six digit code
func GenerateNumericCode() (int, error) {
	n, err := randomInt(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return 0, fmt.Errorf("failed to generate code: %w", err)
	}
	return minCode + int(n.Int64()), nil
}
