package usecase

import (
	"context"

	"shophub/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase defines the interface for cart operations.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error)
	SaveCart(ctx context.Context, userID uuid.UUID, items []entity.OrderItem) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
