package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength     = 12
	hashIterations = 100_000
	hashKeyLength  = sha256.Size
	passwordSep    = "$"
	saltAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomString returns n characters drawn from [a-zA-Z0-9] using crypto/rand.
func RandomString(n int) (string, error) {
	alphabetLen := big.NewInt(int64(len(saltAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("random string: %w", err)
		}
		b.WriteByte(saltAlphabet[idx.Int64()])
	}
	return b.String(), nil
}

// HashPassword returns the hex PBKDF2-HMAC-SHA256 digest of password with salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// EncodePassword hashes password with a fresh salt into the stored "salt$hash" form.
func EncodePassword(password string) (string, error) {
	salt, err := RandomString(SaltLength)
	if err != nil {
		return "", err
	}
	return salt + passwordSep + HashPassword(password, salt), nil
}

// VerifyPassword checks password against a stored "salt$hash" value.
func VerifyPassword(password, stored string) bool {
	salt, hashed, ok := strings.Cut(stored, passwordSep)
	if !ok || salt == "" || hashed == "" {
		return false
	}
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) == 1
}
