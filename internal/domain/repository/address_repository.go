// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"shophub/internal/domain/entity"
	"shophub/internal/errors"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for address book persistence.
// Each user owns an independent list of shipping addresses with at most one default.
type AddressRepository interface {
	// CreateAddress persists a new address for an owner.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its unique ID within an owner's book.
	FindAddressByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entity.Address, error)

	// FindAddressesByOwner retrieves all addresses for a user.
	FindAddressesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error)

	// FindDefaultAddressByOwner retrieves the default address for a user.
	// Returns ErrAddressNotFound if no default address exists.
	FindDefaultAddressByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Address, error)

	// UpdateAddress updates an existing address record.
	UpdateAddress(ctx context.Context, address *entity.Address) error

	// DeleteAddress removes an address by its ID.
	DeleteAddress(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error

	// SetDefaultAddress marks one address as the default and clears the flag
	// on every other address in the owner's book.
	SetDefaultAddress(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
}
