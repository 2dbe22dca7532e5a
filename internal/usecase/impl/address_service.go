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

// addressService implements the AddressUsecase interface.
type addressService struct {
	addresses repository.AddressRepository
	logger    *slog.Logger

	nowFunc func() time.Time
}

// NewAddressService is the constructor for addressService.
func NewAddressService(addresses repository.AddressRepository, logger *slog.Logger) usecase.AddressUsecase {
	return &addressService{
		addresses: addresses,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// ListAddresses returns the user's address book.
func (srv *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	return srv.addresses.FindAddressesByOwner(ctx, userID)
}

// AddAddress appends an address to the user's book. The first address
// becomes the default automatically.
func (srv *addressService) AddAddress(ctx context.Context, userID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	now := srv.nowFunc()
	address := &entity.Address{
		ID:         uuid.New(),
		OwnerID:    userID,
		Name:       input.Name,
		Phone:      input.Phone,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := srv.addresses.CreateAddress(ctx, address); err != nil {
		return nil, errors.Wrap(err, "create address")
	}

	return address, nil
}

// UpdateAddress rewrites one of the user's addresses.
func (srv *addressService) UpdateAddress(ctx context.Context, userID uuid.UUID, addressID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	existing, err := srv.addresses.FindAddressByID(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "find address")
	}

	existing.Name = input.Name
	existing.Phone = input.Phone
	existing.Street = input.Street
	existing.City = input.City
	existing.State = input.State
	existing.PostalCode = input.PostalCode
	existing.Country = input.Country
	if input.IsDefault {
		existing.IsDefault = true
	}
	existing.UpdatedAt = srv.nowFunc()

	if err := srv.addresses.UpdateAddress(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "update address")
	}

	return existing, nil
}

// DeleteAddress removes one of the user's addresses. Deleting the default
// promotes the oldest remaining address.
func (srv *addressService) DeleteAddress(ctx context.Context, userID uuid.UUID, addressID uuid.UUID) error {
	if err := srv.addresses.DeleteAddress(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return domainerrors.ErrAddressNotFound
		}

		return errors.Wrap(err, "delete address")
	}

	return nil
}

// SetDefaultAddress marks one address as the default shipping destination.
func (srv *addressService) SetDefaultAddress(ctx context.Context, userID uuid.UUID, addressID uuid.UUID) error {
	if err := srv.addresses.SetDefaultAddress(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return domainerrors.ErrAddressNotFound
		}

		return errors.Wrap(err, "set default address")
	}

	return nil
}
