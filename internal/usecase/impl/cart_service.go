package impl

import (
	"context"

	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/usecase"

	"github.com/google/uuid"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	carts repository.CartRepository
}

// NewCartService is the constructor for cartService.
func NewCartService(carts repository.CartRepository) usecase.CartUsecase {
	return &cartService{carts: carts}
}

// GetCart returns the user's current cart lines.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error) {
	return srv.carts.FindByUser(ctx, userID)
}

// SaveCart replaces the user's cart.
func (srv *cartService) SaveCart(ctx context.Context, userID uuid.UUID, items []entity.OrderItem) error {
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Price.IsNegative() {
			return domainerrors.ErrValidationFailed.WithDetails("cart lines need a product, a positive quantity and a non-negative price")
		}
	}

	return srv.carts.Save(ctx, userID, items)
}

// ClearCart empties the user's cart.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return srv.carts.Clear(ctx, userID)
}
