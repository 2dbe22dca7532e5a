package impl

import (
	"context"
	"testing"

	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/infra/kv"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAddressService(t *testing.T) (usecase.AddressUsecase, uuid.UUID) {
	t.Helper()

	return NewAddressService(kv.NewAddressRepository(testStore()), testLogger()), uuid.New()
}

func sampleAddressInput(name string) *usecase.AddressInput {
	return &usecase.AddressInput{
		Name:       name,
		Phone:      "+15550004444",
		Street:     "42 Galaxy Way",
		City:       "Portland",
		PostalCode: "97201",
		Country:    "US",
	}
}

func TestAddressService_FirstAddressBecomesDefault(t *testing.T) {
	svc, userID := createTestAddressService(t)
	ctx := context.Background()

	first, err := svc.AddAddress(ctx, userID, sampleAddressInput("Home"))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.AddAddress(ctx, userID, sampleAddressInput("Office"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestAddressService_SetDefaultSwitchesFlag(t *testing.T) {
	svc, userID := createTestAddressService(t)
	ctx := context.Background()

	first, err := svc.AddAddress(ctx, userID, sampleAddressInput("Home"))
	require.NoError(t, err)
	second, err := svc.AddAddress(ctx, userID, sampleAddressInput("Office"))
	require.NoError(t, err)

	require.NoError(t, svc.SetDefaultAddress(ctx, userID, second.ID))

	book, err := svc.ListAddresses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, book, 2)
	for _, addr := range book {
		assert.Equal(t, addr.ID == second.ID, addr.IsDefault)
	}
	_ = first
}

func TestAddressService_DeleteDefaultPromotesRemaining(t *testing.T) {
	svc, userID := createTestAddressService(t)
	ctx := context.Background()

	first, err := svc.AddAddress(ctx, userID, sampleAddressInput("Home"))
	require.NoError(t, err)
	second, err := svc.AddAddress(ctx, userID, sampleAddressInput("Office"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(ctx, userID, first.ID))

	book, err := svc.ListAddresses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.Equal(t, second.ID, book[0].ID)
	assert.True(t, book[0].IsDefault)
}

func TestAddressService_UpdateAddress(t *testing.T) {
	svc, userID := createTestAddressService(t)
	ctx := context.Background()

	addr, err := svc.AddAddress(ctx, userID, sampleAddressInput("Home"))
	require.NoError(t, err)

	input := sampleAddressInput("Home")
	input.City = "Seattle"
	updated, err := svc.UpdateAddress(ctx, userID, addr.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Seattle", updated.City)
}

func TestAddressService_MissingAddress(t *testing.T) {
	svc, userID := createTestAddressService(t)
	ctx := context.Background()

	_, err := svc.UpdateAddress(ctx, userID, uuid.New(), sampleAddressInput("Home"))
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)

	err = svc.DeleteAddress(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)

	err = svc.SetDefaultAddress(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
}

func TestAddressService_BooksAreIsolatedPerUser(t *testing.T) {
	svc, userID := createTestAddressService(t)
	ctx := context.Background()
	otherID := uuid.New()

	addr, err := svc.AddAddress(ctx, userID, sampleAddressInput("Home"))
	require.NoError(t, err)

	book, err := svc.ListAddresses(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, book)

	err = svc.DeleteAddress(ctx, otherID, addr.ID)
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
}
