package kv

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"
	"shophub/internal/errors"
)

// userRepository persists users as one document per mobile number plus an
// ID-to-mobile index, so lookups work from either direction.
type userRepository struct {
	store *Store
	mu    sync.Mutex
}

// NewUserRepository creates a user repository backed by the KV store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func userKey(mobile string) string {
	return "users/by-mobile/" + mobile + ".json"
}

func userIndexKey(id uuid.UUID) string {
	return "users/by-id/" + id.String() + ".json"
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var mobile string
	if err := r.store.GetJSON(ctx, userIndexKey(id), &mobile); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, err
	}

	return r.FindByMobile(ctx, mobile)
}

func (r *userRepository) FindByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	user := new(entity.User)
	if err := r.store.GetJSON(ctx, userKey(mobile), user); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.SetJSON(ctx, userKey(user.Mobile), user); err != nil {
		return err
	}

	return r.store.SetJSON(ctx, userIndexKey(user.ID), user.Mobile)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.SetJSON(ctx, userKey(user.Mobile), user)
}
