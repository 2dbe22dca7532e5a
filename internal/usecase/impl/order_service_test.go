package impl

import (
	"context"
	"testing"

	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/infra/kv"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderFixtures holds all test dependencies for order service tests.
type orderFixtures struct {
	service   usecase.OrderUsecase
	orders    repository.OrderRepository
	publisher *recordingPublisher
	userID    uuid.UUID
}

func createTestOrderService(t *testing.T) orderFixtures {
	t.Helper()

	store := testStore()
	orders := kv.NewOrderRepository(store)
	publisher := &recordingPublisher{}

	svc := NewOrderService(orders, stubQRCodeService{}, publisher, testLogger())

	return orderFixtures{
		service:   svc,
		orders:    orders,
		publisher: publisher,
		userID:    uuid.New(),
	}
}

func (fx orderFixtures) seedOrder(t *testing.T, id string, status entity.OrderStatus) {
	t.Helper()

	order := &entity.Order{
		ID:             id,
		UserID:         fx.userID,
		Status:         status,
		TrackingNumber: "SH12345678ABCD",
		Totals:         entity.OrderTotals{Total: decimal.NewFromFloat(113.99)},
		RefundedAmount: decimal.Zero,
	}
	require.NoError(t, fx.orders.Save(context.Background(), order))
}

func TestOrderService_GetOrder_OwnershipEnforced(t *testing.T) {
	fx := createTestOrderService(t)
	fx.seedOrder(t, "ORD1", entity.OrderConfirmed)

	order, err := fx.service.GetOrder(context.Background(), fx.userID, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, "ORD1", order.ID)

	_, err = fx.service.GetOrder(context.Background(), uuid.New(), "ORD1")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ListOrders_MostRecentFirst(t *testing.T) {
	fx := createTestOrderService(t)
	fx.seedOrder(t, "ORD1", entity.OrderConfirmed)
	fx.seedOrder(t, "ORD2", entity.OrderConfirmed)

	orders, err := fx.service.ListOrders(context.Background(), fx.userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD2", orders[0].ID)
	assert.Equal(t, "ORD1", orders[1].ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	fx := createTestOrderService(t)
	fx.seedOrder(t, "ORD1", entity.OrderConfirmed)
	ctx := context.Background()

	order, err := fx.service.UpdateStatus(ctx, "ORD1", entity.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, order.Status)

	// Out-of-order carrier callbacks still land.
	order, err = fx.service.UpdateStatus(ctx, "ORD1", entity.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, order.Status)

	assert.Contains(t, fx.publisher.eventTypes(), "order.status_changed")
}

func TestOrderService_UpdateStatus_RejectsCancelTarget(t *testing.T) {
	fx := createTestOrderService(t)
	fx.seedOrder(t, "ORD1", entity.OrderConfirmed)

	_, err := fx.service.UpdateStatus(context.Background(), "ORD1", entity.OrderCancelled)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)
	fx.seedOrder(t, "ORD1", entity.OrderConfirmed)

	_, err := fx.service.UpdateStatus(context.Background(), "ORD1", entity.OrderStatus("lost"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_CancelOrder(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	tests := []struct {
		id      string
		status  entity.OrderStatus
		wantErr bool
	}{
		{id: "ORD1", status: entity.OrderConfirmed, wantErr: false},
		{id: "ORD2", status: entity.OrderProcessing, wantErr: false},
		{id: "ORD3", status: entity.OrderShipped, wantErr: true},
		{id: "ORD4", status: entity.OrderDelivered, wantErr: true},
		{id: "ORD5", status: entity.OrderCancelled, wantErr: true},
	}

	for _, tt := range tests {
		fx.seedOrder(t, tt.id, tt.status)

		order, err := fx.service.CancelOrder(ctx, fx.userID, tt.id, "changed my mind")
		if tt.wantErr {
			assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition, "status %s", tt.status)

			continue
		}

		require.NoError(t, err, "status %s", tt.status)
		assert.Equal(t, entity.OrderCancelled, order.Status)
		assert.NotNil(t, order.CancelledAt)
		assert.Equal(t, "changed my mind", order.CancellationReason)
	}

	assert.Contains(t, fx.publisher.eventTypes(), "order.cancelled")
}

func TestOrderService_TrackOrder(t *testing.T) {
	fx := createTestOrderService(t)
	fx.seedOrder(t, "ORD1", entity.OrderShipped)

	view, err := fx.service.TrackOrder(context.Background(), fx.userID, "ORD1")
	require.NoError(t, err)
	assert.Equal(t, "SH12345678ABCD", view.TrackingNumber)
	assert.Equal(t, entity.OrderShipped, view.Status)
	assert.Equal(t, []byte("png"), view.QRCodePNG)
}
