package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// UnknownIPHash is recorded when no caller identity can be derived.
const UnknownIPHash = "unknown"

// ipHashLength is the hex-prefix length kept per caller: enough entropy for
// deduplication and grouping, short enough that the raw address cannot be
// recovered. Truncation is the privacy trade-off, not an optimization.
const ipHashLength = 16

// AnonymizeIP derives a stable, non-reversible caller identifier from the
// client IP: sha256 over the salted address, hex-encoded, truncated. An
// empty or sentinel input yields the sentinel; this function never blocks a
// redirect.
func AnonymizeIP(ip, salt string) string {
	if ip == "" || ip == UnknownIPHash {
		return UnknownIPHash
	}
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:ipHashLength]
}
