package kv

import (
	"context"

	"github.com/google/uuid"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"
	"shophub/internal/errors"
)

// cartRepository persists each user's cart as one document. A missing
// document reads as an empty cart.
type cartRepository struct {
	store *Store
}

// NewCartRepository creates a cart repository backed by the KV store.
func NewCartRepository(store *Store) repository.CartRepository {
	return &cartRepository{store: store}
}

func cartKey(userID uuid.UUID) string {
	return "carts/" + userID.String() + ".json"
}

func (r *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	if err := r.store.GetJSON(ctx, cartKey(userID), &items); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return items, nil
}

func (r *cartRepository) Save(ctx context.Context, userID uuid.UUID, items []entity.OrderItem) error {
	return r.store.SetJSON(ctx, cartKey(userID), items)
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.store.Delete(ctx, cartKey(userID))
}
