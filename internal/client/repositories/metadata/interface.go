// Package metadata is the key/value table of the client database. It holds
// the session credential and the cached profile of the signed-in user.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// SessionKeys are the keys that together make up a saved session.
var SessionKeys = []string{KeyToken, KeyUser}

// Repository reads and writes raw values by key. Each method issues a single
// statement, so a call is atomic even outside a transaction.
type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Lookup returns the stored values of keys. Missing keys are absent from
	// the result.
	Lookup(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Put upserts every entry.
	Put(ctx context.Context, entries map[string][]byte) error
	// Delete removes keys. Unknown keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
