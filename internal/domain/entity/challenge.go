package entity

import "time"

// MaxChallengeAttempts is the number of wrong codes a live challenge absorbs
// before it is destroyed.
const MaxChallengeAttempts = 3

// Challenge is a one-time verification code bound to a mobile number.
// At most one live challenge exists per identifier; reissuing overwrites the
// previous one. The code itself is never stored, only its hash.
type Challenge struct {
	Identifier string    // The mobile number the code was issued for.
	CodeHash   string    // Hash of the 6-digit code.
	ExpiresAt  time.Time // Instant after which the challenge is dead.
	Attempts   int       // Wrong-code attempts consumed so far. Invariant: <= MaxChallengeAttempts while live.
}

// Expired reports whether the challenge is past its expiry at the given instant.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
