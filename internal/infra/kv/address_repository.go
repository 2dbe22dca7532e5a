package kv

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"
	"shophub/internal/errors"
)

// addressRepository persists each user's address book as a single document.
// Books are small, so read-modify-write of the whole list keeps the
// one-default invariant in one place.
type addressRepository struct {
	store *Store
	mu    sync.Mutex
}

// NewAddressRepository creates an address repository backed by the KV store.
func NewAddressRepository(store *Store) repository.AddressRepository {
	return &addressRepository{store: store}
}

func addressBookKey(ownerID uuid.UUID) string {
	return "addresses/" + ownerID.String() + ".json"
}

func (r *addressRepository) loadBook(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error) {
	var book []*entity.Address
	if err := r.store.GetJSON(ctx, addressBookKey(ownerID), &book); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return book, nil
}

func (r *addressRepository) saveBook(ctx context.Context, ownerID uuid.UUID, book []*entity.Address) error {
	return r.store.SetJSON(ctx, addressBookKey(ownerID), book)
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, err := r.loadBook(ctx, address.OwnerID)
	if err != nil {
		return err
	}

	// First address in the book becomes the default automatically.
	if len(book) == 0 {
		address.IsDefault = true
	} else if address.IsDefault {
		for _, existing := range book {
			existing.IsDefault = false
		}
	}

	book = append(book, address)

	return r.saveBook(ctx, address.OwnerID, book)
}

func (r *addressRepository) FindAddressByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entity.Address, error) {
	book, err := r.loadBook(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, addr := range book {
		if addr.ID == id {
			return addr, nil
		}
	}

	return nil, repository.ErrAddressNotFound
}

func (r *addressRepository) FindAddressesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Address, error) {
	return r.loadBook(ctx, ownerID)
}

func (r *addressRepository) FindDefaultAddressByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Address, error) {
	book, err := r.loadBook(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, addr := range book {
		if addr.IsDefault {
			return addr, nil
		}
	}

	return nil, repository.ErrAddressNotFound
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, err := r.loadBook(ctx, address.OwnerID)
	if err != nil {
		return err
	}

	found := false
	for i, addr := range book {
		if addr.ID == address.ID {
			book[i] = address
			found = true

			continue
		}
		if address.IsDefault {
			addr.IsDefault = false
		}
	}
	if !found {
		return repository.ErrAddressNotFound
	}

	return r.saveBook(ctx, address.OwnerID, book)
}

func (r *addressRepository) DeleteAddress(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, err := r.loadBook(ctx, ownerID)
	if err != nil {
		return err
	}

	kept := book[:0]
	removedDefault := false
	found := false
	for _, addr := range book {
		if addr.ID == id {
			found = true
			removedDefault = addr.IsDefault

			continue
		}
		kept = append(kept, addr)
	}
	if !found {
		return repository.ErrAddressNotFound
	}

	// Deleting the default promotes the oldest remaining address.
	if removedDefault && len(kept) > 0 {
		kept[0].IsDefault = true
	}

	return r.saveBook(ctx, ownerID, kept)
}

func (r *addressRepository) SetDefaultAddress(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, err := r.loadBook(ctx, ownerID)
	if err != nil {
		return err
	}

	found := false
	for _, addr := range book {
		addr.IsDefault = addr.ID == id
		if addr.IsDefault {
			found = true
		}
	}
	if !found {
		return repository.ErrAddressNotFound
	}

	return r.saveBook(ctx, ownerID, book)
}
