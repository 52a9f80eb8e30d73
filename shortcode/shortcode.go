package shortcode

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/rs/zerolog/log"
)

const (
	// charset drops visually-confusable characters (0/O/o, 1/I/l/i) so
	// codes survive being read aloud or typed from a printed Spark code.
	charset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz"

	// DefaultLength is the code length tried against the persisted set.
	DefaultLength = 8

	// FallbackLength is used for the single unchecked candidate issued
	// after the retry budget runs out.
	FallbackLength = 12

	maxAttempts = 10
)

// ExistenceChecker reports whether a candidate code is already persisted.
type ExistenceChecker interface {
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
}

// Generate produces a cryptographically random code of the given length
// drawn uniformly from the confusable-free alphabet.
func Generate(length int) (string, error) {
	result := make([]byte, length)
	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[num.Int64()]
	}
	return string(result), nil
}

// EnsureUnique generates 8-character candidates and checks each against the
// persisted code set, one lookup per attempt. After 10 collisions it falls
// back to a single 12-character code returned unchecked: at 55^12
// combinations a collision is left to the store's unique index, which fails
// the downstream insert rather than looping here forever.
func EnsureUnique(ctx context.Context, checker ExistenceChecker) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := Generate(DefaultLength)
		if err != nil {
			return "", err
		}

		exists, err := checker.ShortCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		log.Warn().
			Str("short_code", code).
			Int("attempt", attempt+1).
			Msg("Short code collision, retrying")
	}

	return Generate(FallbackLength)
}

// Valid reports whether every character of code belongs to the alphabet.
func Valid(code string) bool {
	if code == "" {
		return false
	}
	for _, ch := range code {
		found := false
		for _, valid := range charset {
			if ch == valid {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
