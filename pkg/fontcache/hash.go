package fontcache

import (
	"crypto/md5"
	"encoding/hex"
)

// Hash computes the content fingerprint stored alongside a CSS block.
// Returns the 32-character hex MD5 of value.
func Hash(value string) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

// NewEntry builds an entry for value with its hash filled in.
func NewEntry(value string) Entry {
	return Entry{Hash: Hash(value), Value: value}
}
