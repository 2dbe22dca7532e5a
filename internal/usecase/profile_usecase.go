package usecase

import (
	"context"

	"shophub/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for account-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	GetPaymentHistory(ctx context.Context, userID uuid.UUID) ([]entity.PaymentRecord, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines the data required to update an account.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
