// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"shophub/internal/domain/entity"

	"github.com/google/uuid"
)

// CartRepository defines the interface for per-user cart persistence.
// A missing cart reads as empty; clearing an empty cart is a no-op.
type CartRepository interface {
	// FindByUser retrieves the user's current cart lines.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error)

	// Save replaces the user's cart with the given lines.
	Save(ctx context.Context, userID uuid.UUID, items []entity.OrderItem) error

	// Clear empties the user's cart.
	Clear(ctx context.Context, userID uuid.UUID) error
}
