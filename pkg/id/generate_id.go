package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a 32-char lowercase hex identifier (no separators or
// prefixes). Used for ledger, loan and escrow-account ids alike.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
