// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"shophub/internal/domain/entity"
	"shophub/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found in the ledger.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for the order ledger.
// The ledger is append-then-update: placed orders are never removed,
// cancellation is a status change.
type OrderRepository interface {
	// Save appends a new order to the ledger.
	Save(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by its ledger ID.
	FindByID(ctx context.Context, orderID string) (*entity.Order, error)

	// FindByUser retrieves a user's orders, most recent first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Update rewrites an existing ledger record.
	Update(ctx context.Context, order *entity.Order) error
}
