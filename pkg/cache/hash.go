package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// NameKey returns the cache key for the model name of a panel with the given EDID.
// The namespace separates names produced by different decoders.
func NameKey(namespace string, edid []byte) string {
	return "name:" + namespace + ":" + Hash(edid)
}
