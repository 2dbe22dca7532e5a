package impl

import (
	"context"
	"log/slog"
	"time"

	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	users  repository.UserRepository
	logger *slog.Logger

	nowFunc func() time.Time
}

// NewProfileService is the constructor for profileService.
func NewProfileService(users repository.UserRepository, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		users:   users,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// GetProfile retrieves the account for a user ID.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find user")
	}

	return user, nil
}

// UpdateProfile updates the account fields that were supplied.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	user.UpdatedAt = srv.nowFunc()

	if err := srv.users.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user")
	}

	srv.logger.Info("profile updated", slog.String("user_id", userID.String()))

	return user, nil
}

// GetPaymentHistory returns the user's successful payments, most recent first.
func (srv *profileService) GetPaymentHistory(ctx context.Context, userID uuid.UUID) ([]entity.PaymentRecord, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.PaymentHistory, nil
}
