// Package cryptox derives the client-side password pre-hash sent to the API
// on registration and login. The server hashes the received value again.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/argon2"
)

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// EmailSalt is a per-account salt derived from the normalised email, so the
// same email always produces the same pre-hash.
func EmailSalt(email string) []byte {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return sum[:]
}

// PrehashPassword returns the hex-encoded argon2id hash of password salted
// with the account email.
func PrehashPassword(email string, password []byte) string {
	key := DeriveKey(password, EmailSalt(email))
	defer Wipe(key)
	return hex.EncodeToString(key)
}

// Wipe overwrites b with zeros. A nil slice is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
