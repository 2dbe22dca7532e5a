package kv

import (
	"context"
	"strconv"
	"testing"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func testStore() *Store {
	return NewStore(memblob.OpenBucket(nil))
}

func TestStore_GetJSON_MissingKey(t *testing.T) {
	store := testStore()

	var out map[string]string
	err := store.GetJSON(context.Background(), "missing.json", &out)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStore_RoundTrip(t *testing.T) {
	store := testStore()
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, "k.json", map[string]int{"a": 1}))

	var out map[string]int
	require.NoError(t, store.GetJSON(ctx, "k.json", &out))
	assert.Equal(t, 1, out["a"])

	require.NoError(t, store.Delete(ctx, "k.json"))
	assert.ErrorIs(t, store.GetJSON(ctx, "k.json", &out), ErrKeyNotFound)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "k.json"))
}

func TestAuditRepository_EvictsOldestBeyondCap(t *testing.T) {
	repo := NewAuditRepository(testStore())
	ctx := context.Background()

	for i := range entity.MaxAuditEntries + 5 {
		require.NoError(t, repo.Append(ctx, entity.AuditEntry{
			TransactionID: "tx" + strconv.Itoa(i),
			Amount:        decimal.NewFromInt(int64(i)),
		}))
	}

	log, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, log, entity.MaxAuditEntries)

	// Insertion order survives; the five oldest entries were evicted.
	assert.Equal(t, "tx5", log[0].TransactionID)
	assert.Equal(t, "tx104", log[len(log)-1].TransactionID)
}

func TestUserRepository_LookupBothDirections(t *testing.T) {
	repo := NewUserRepository(testStore())
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Mobile: "+15550006666", Name: "Ada"}
	require.NoError(t, repo.Create(ctx, user))

	byMobile, err := repo.FindByMobile(ctx, user.Mobile)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byMobile.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Mobile, byID.Mobile)

	_, err = repo.FindByMobile(ctx, "+10000000000")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestOrderRepository_UpdateRewritesRecord(t *testing.T) {
	repo := NewOrderRepository(testStore())
	ctx := context.Background()
	userID := uuid.New()

	order := &entity.Order{ID: "ORD1", UserID: userID, Status: entity.OrderConfirmed, RefundedAmount: decimal.Zero}
	require.NoError(t, repo.Save(ctx, order))

	order.Status = entity.OrderShipped
	require.NoError(t, repo.Update(ctx, order))

	got, err := repo.FindByID(ctx, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, got.Status)

	missing := &entity.Order{ID: "ORD404", RefundedAmount: decimal.Zero}
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrOrderNotFound)
}

func TestOrderRepository_FindByUserFiltersLedger(t *testing.T) {
	repo := NewOrderRepository(testStore())
	ctx := context.Background()
	mine := uuid.New()
	theirs := uuid.New()

	require.NoError(t, repo.Save(ctx, &entity.Order{ID: "ORD1", UserID: mine, RefundedAmount: decimal.Zero}))
	require.NoError(t, repo.Save(ctx, &entity.Order{ID: "ORD2", UserID: theirs, RefundedAmount: decimal.Zero}))
	require.NoError(t, repo.Save(ctx, &entity.Order{ID: "ORD3", UserID: mine, RefundedAmount: decimal.Zero}))

	orders, err := repo.FindByUser(ctx, mine)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD3", orders[0].ID)
	assert.Equal(t, "ORD1", orders[1].ID)
}
