package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// recordExtension is the file extension used for durable cache records.
const recordExtension = ".cache"

// recordName converts a logical cache key to its durable file name.
// Keys are hashed so arbitrary strings (phone numbers, query parameters)
// map to fixed-length, filesystem-safe names. Collisions are not detected;
// SHA-256 makes them a non-concern.
func recordName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]) + recordExtension
}
