package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. Graph files, layout JSON,
// and rendered artifacts are all identified by this digest.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a stage key: the stage prefix followed by the digest of
// the JSON-encoded parts. Everything that affects a stage's output must be
// in parts so that changing it invalidates the entry.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
