package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string, ignoring case and surrounding space
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(input))))

	return hex.EncodeToString(h.Sum(nil))
}
