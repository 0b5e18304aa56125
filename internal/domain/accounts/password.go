package accounts

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed cost factor for every password hash the toolkit
// writes. The platform's login path verifies against the same factor, so it
// must not drift between runs.
const BcryptCost = 12

// tempPasswordLength is the length of generated temporary passwords.
const tempPasswordLength = 16

// Unambiguous alphanumerics; temporary passwords get read over the phone, so
// lookalike characters (0/O, 1/l/I) are left out.
const tempPasswordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HashPassword hashes a plaintext password with bcrypt at the fixed cost.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the bcrypt hash.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed: %w", err)
	}
	return nil
}

// GenerateTempPassword produces a random temporary password from the
// unambiguous charset.
func GenerateTempPassword() (string, error) {
	max := big.NewInt(int64(len(tempPasswordCharset)))
	buf := make([]byte, tempPasswordLength)

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate temporary password: %w", err)
		}
		buf[i] = tempPasswordCharset[n.Int64()]
	}

	return string(buf), nil
}
