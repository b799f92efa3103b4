package analysis

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the hex sha256 digest of a submission's text.
// The text is hashed exactly as received; any normalization here would
// break cache identity for submissions that differ only in whitespace.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
