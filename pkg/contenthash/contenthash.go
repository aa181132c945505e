// Package contenthash computes the content digests used to verify deed
// attachments. Digests are always computed locally, before and independent of
// any storage backend, so document integrity stays checkable in degraded mode.
package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the lowercase hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether data hashes to the expected digest.
func Verify(data []byte, digest string) bool {
	return Sum(data) == digest
}
