// Package otp provides the in-memory store for verification code challenges.
// Challenges are short-lived and process-local, so they never hit the
// persistence layer.
package otp

import (
	"context"
	"sync"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"
)

// memoryStore keeps live challenges keyed by identifier. Each method is
// atomic under the store lock.
type memoryStore struct {
	mu         sync.Mutex
	challenges map[string]*entity.Challenge
}

// NewMemoryStore creates an empty in-memory challenge store.
func NewMemoryStore() repository.ChallengeRepository {
	return &memoryStore{challenges: make(map[string]*entity.Challenge)}
}

func (s *memoryStore) Save(_ context.Context, challenge *entity.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *challenge
	s.challenges[challenge.Identifier] = &copied

	return nil
}

func (s *memoryStore) Find(_ context.Context, identifier string) (*entity.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[identifier]
	if !ok {
		return nil, repository.ErrChallengeNotFound
	}

	copied := *challenge

	return &copied, nil
}

func (s *memoryStore) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, identifier)

	return nil
}

func (s *memoryStore) IncrementAttempts(_ context.Context, identifier string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[identifier]
	if !ok {
		return 0, repository.ErrChallengeNotFound
	}

	challenge.Attempts++

	return challenge.Attempts, nil
}
