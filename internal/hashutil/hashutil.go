package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprintLen is the number of hex characters kept by Fingerprint.
const fingerprintLen = 16

// SHA256Hex returns the hex SHA-256 of the trimmed input.
func SHA256Hex(input string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(input)))
	return hex.EncodeToString(sum[:])
}

// Fingerprint is a short stable SHA-256 prefix, used to correlate log lines
// about an identity (client IP, user id) without writing the value itself.
func Fingerprint(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return SHA256Hex(input)[:fingerprintLen]
}
