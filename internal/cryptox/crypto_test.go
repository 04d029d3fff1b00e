package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	assert.True(t, bytes.Equal(key1, key2))
	assert.Len(t, key1, 32)
	assert.False(t, bytes.Equal(key1, DeriveKey(password, []byte("other-salt"))))
}

func TestEmailSalt_Normalises(t *testing.T) {
	assert.Equal(t, EmailSalt("a@b.com"), EmailSalt("  A@B.com "))
	assert.NotEqual(t, EmailSalt("a@b.com"), EmailSalt("c@b.com"))
}

func TestPrehashPassword(t *testing.T) {
	h1 := PrehashPassword("a@b.com", []byte("password123"))
	h2 := PrehashPassword("A@b.com", []byte("password123"))

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	_, err := hex.DecodeString(h1)
	require.NoError(t, err)

	assert.NotEqual(t, h1, PrehashPassword("a@b.com", []byte("password124")))
	assert.NotEqual(t, h1, PrehashPassword("z@b.com", []byte("password123")))
}

func TestWipe(t *testing.T) {
	b := []byte("hunter2")
	Wipe(b)
	assert.Equal(t, make([]byte, 7), b)

	assert.NotPanics(t, func() { Wipe(nil) })
}
