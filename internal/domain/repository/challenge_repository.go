// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"shophub/internal/domain/entity"
	"shophub/internal/errors"
)

// ErrChallengeNotFound is returned when no live challenge exists for an identifier.
var ErrChallengeNotFound = errors.New("challenge not found")

// ChallengeRepository defines the interface for verification code storage.
// At most one challenge is live per identifier; Save replaces any existing one.
// Each method is atomic with respect to its identifier.
type ChallengeRepository interface {
	// Save stores a challenge, replacing any live challenge for the same identifier.
	Save(ctx context.Context, challenge *entity.Challenge) error

	// Find retrieves the live challenge for an identifier.
	Find(ctx context.Context, identifier string) (*entity.Challenge, error)

	// Delete destroys the challenge for an identifier. Deleting a missing
	// challenge is not an error.
	Delete(ctx context.Context, identifier string) error

	// IncrementAttempts bumps the attempt counter and returns the new count.
	IncrementAttempts(ctx context.Context, identifier string) (int, error)
}
