package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/infra/gateway"
	"shophub/internal/infra/kv"
	"shophub/internal/infra/region"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paymentFixtures holds all test dependencies for payment service tests.
type paymentFixtures struct {
	service   usecase.PaymentUsecase
	sampler   *fixedSampler
	users     repository.UserRepository
	orders    repository.OrderRepository
	audit     repository.AuditRepository
	publisher *recordingPublisher
	userID    uuid.UUID
}

func createTestPaymentService(t *testing.T) paymentFixtures {
	t.Helper()

	cfg := testConfig()
	store := testStore()
	sampler := &fixedSampler{succeed: true}
	users := kv.NewUserRepository(store)
	orders := kv.NewOrderRepository(store)
	audit := kv.NewAuditRepository(store)
	publisher := &recordingPublisher{}

	user := &entity.User{ID: uuid.New(), Mobile: "+15550001111", Name: "Ada"}
	require.NoError(t, users.Create(context.Background(), user))

	svc := NewPaymentService(
		cfg,
		gateway.NewGateways(cfg, sampler),
		region.NewDetector(),
		audit,
		users,
		orders,
		publisher,
		testLogger(),
	)

	return paymentFixtures{
		service:   svc,
		sampler:   sampler,
		users:     users,
		orders:    orders,
		audit:     audit,
		publisher: publisher,
		userID:    user.ID,
	}
}

func TestPaymentService_ListMethods(t *testing.T) {
	fx := createTestPaymentService(t)

	methods := fx.service.ListMethods(context.Background())

	kinds := make([]entity.PaymentMethodKind, 0, len(methods))
	for _, m := range methods {
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, []entity.PaymentMethodKind{
		entity.MethodCard,
		entity.MethodPayPal,
		entity.MethodApplePay,
		entity.MethodGooglePay,
		entity.MethodRazorpay,
		entity.MethodCOD,
	}, kinds)
}

func TestPaymentService_CardRouting(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		wantPrefix string
	}{
		{name: "large charges go to stripe", amount: 2000, wantPrefix: "stripe_"},
		{name: "micro charges go to square", amount: 10, wantPrefix: "sq_"},
		{name: "mid-range charges go to stripe", amount: 500, wantPrefix: "stripe_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPaymentService(t)

			tx, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
				Amount: decimal.NewFromInt(tt.amount),
				Method: entity.MethodCard,
			})

			require.NoError(t, err)
			assert.True(t, tx.Success)
			assert.True(t, strings.HasPrefix(tx.ID, tt.wantPrefix), "got id %s", tx.ID)
		})
	}
}

func TestPaymentService_WalletMethodsRouteToStripe(t *testing.T) {
	fx := createTestPaymentService(t)

	for _, method := range []entity.PaymentMethodKind{entity.MethodApplePay, entity.MethodGooglePay} {
		tx, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
			Amount: decimal.NewFromInt(75),
			Method: method,
		})

		require.NoError(t, err)
		assert.Equal(t, "stripe", tx.Gateway)
	}
}

func TestPaymentService_RazorpayDefaultsToINR(t *testing.T) {
	fx := createTestPaymentService(t)

	tx, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodRazorpay,
	})

	require.NoError(t, err)
	assert.Equal(t, "razorpay", tx.Gateway)
	assert.Equal(t, "INR", tx.Currency)
	assert.True(t, strings.HasPrefix(tx.ID, "rzp_"))
}

func TestPaymentService_CurrencyDetectedFromCountry(t *testing.T) {
	fx := createTestPaymentService(t)

	tx, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
		Amount:  decimal.NewFromInt(100),
		Method:  entity.MethodCard,
		Country: "GB",
	})

	require.NoError(t, err)
	assert.Equal(t, "GBP", tx.Currency)
}

func TestPaymentService_StripeFees(t *testing.T) {
	fx := createTestPaymentService(t)

	tx, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCard,
	})

	require.NoError(t, err)
	// 2.9% of 100 plus 0.30
	assert.True(t, tx.Fee.Equal(decimal.NewFromFloat(3.20)), "got fee %s", tx.Fee)
}

func TestPaymentService_CODHasNoFeeAndNeverDeclines(t *testing.T) {
	fx := createTestPaymentService(t)
	fx.sampler.set(false)

	tx, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCOD,
	})

	require.NoError(t, err)
	assert.True(t, tx.Success)
	assert.True(t, tx.Fee.IsZero())
	assert.Equal(t, "cod", tx.Gateway)
}

func TestPaymentService_DeclineIsRecordedButNotInHistory(t *testing.T) {
	fx := createTestPaymentService(t)
	fx.sampler.set(false)
	ctx := context.Background()

	tx, err := fx.service.ProcessPayment(ctx, fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCard,
	})

	require.NoError(t, err)
	assert.False(t, tx.Success)
	assert.Equal(t, "card_declined", tx.ErrorCode)

	log, err := fx.audit.List(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.False(t, log[0].Success)
	assert.Equal(t, tx.ID, log[0].TransactionID)

	user, err := fx.users.FindByID(ctx, fx.userID)
	require.NoError(t, err)
	assert.Empty(t, user.PaymentHistory)
}

func TestPaymentService_SuccessUpdatesHistory(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	tx, err := fx.service.ProcessPayment(ctx, fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCard,
	})
	require.NoError(t, err)

	user, err := fx.users.FindByID(ctx, fx.userID)
	require.NoError(t, err)
	require.Len(t, user.PaymentHistory, 1)
	assert.Equal(t, tx.ID, user.PaymentHistory[0].TransactionID)
	assert.Equal(t, "completed", user.PaymentHistory[0].Status)
}

func TestPaymentService_ValidateCard(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	valid, err := fx.service.ValidateCard(ctx, &entity.CardDetails{
		Number: "4242 4242 4242 4242",
		Expiry: "12/30",
		CVV:    "123",
	})
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, "Visa", valid.CardType)

	badLuhn, err := fx.service.ValidateCard(ctx, &entity.CardDetails{
		Number: "4242424242424241",
		Expiry: "12/30",
		CVV:    "123",
	})
	require.NoError(t, err)
	assert.False(t, badLuhn.Valid)

	expired, err := fx.service.ValidateCard(ctx, &entity.CardDetails{
		Number: "4242424242424242",
		Expiry: "01/20",
		CVV:    "123",
	})
	require.NoError(t, err)
	assert.False(t, expired.Valid)

	amex, err := fx.service.ValidateCard(ctx, &entity.CardDetails{
		Number: "378282246310005",
		Expiry: "12/30",
		CVV:    "1234",
	})
	require.NoError(t, err)
	assert.True(t, amex.Valid)
	assert.Equal(t, "American Express", amex.CardType)
}

func TestPaymentService_InvalidCardRejectedBeforeCharge(t *testing.T) {
	fx := createTestPaymentService(t)

	_, err := fx.service.ProcessPayment(context.Background(), fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCard,
		Card: &entity.CardDetails{
			Number: "1234",
			Expiry: "12/30",
			CVV:    "123",
		},
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	log, listErr := fx.audit.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, log)
}

func TestPaymentService_Analytics(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	_, err := fx.service.ProcessPayment(ctx, fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCard,
	})
	require.NoError(t, err)

	_, err = fx.service.ProcessPayment(ctx, fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(200),
		Method: entity.MethodPayPal,
	})
	require.NoError(t, err)

	fx.sampler.set(false)
	_, err = fx.service.ProcessPayment(ctx, fx.userID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(300),
		Method: entity.MethodCard,
	})
	require.NoError(t, err)

	analytics, err := fx.service.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, analytics.TotalAttempts)
	assert.Equal(t, 2, analytics.TotalSuccesses)
	assert.InDelta(t, 2.0/3.0, analytics.SuccessRate, 1e-9)
	assert.True(t, analytics.TotalVolume.Equal(decimal.NewFromInt(300)))
}

func TestPaymentService_RefundPayment(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	order := &entity.Order{
		ID:     "ORD1",
		UserID: fx.userID,
		Status: entity.OrderCancelled,
		Transaction: entity.Transaction{
			ID:       "stripe_abc",
			Amount:   decimal.NewFromFloat(113.99),
			Currency: "USD",
		},
		RefundedAmount: decimal.Zero,
	}
	require.NoError(t, fx.orders.Save(ctx, order))

	refunded, err := fx.service.RefundPayment(ctx, fx.userID, "ORD1")
	require.NoError(t, err)
	assert.True(t, refunded.RefundedAmount.Equal(decimal.NewFromFloat(113.99)))
	assert.Contains(t, fx.publisher.eventTypes(), "payment.refunded")

	// A second refund is rejected.
	_, err = fx.service.RefundPayment(ctx, fx.userID, "ORD1")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestPaymentService_RefundRequiresCancelledOrder(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	order := &entity.Order{
		ID:             "ORD2",
		UserID:         fx.userID,
		Status:         entity.OrderConfirmed,
		RefundedAmount: decimal.Zero,
	}
	require.NoError(t, fx.orders.Save(ctx, order))

	_, err := fx.service.RefundPayment(ctx, fx.userID, "ORD2")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestPaymentService_GatewayTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Checkout.PaymentTimeout = 5 * time.Millisecond
	cfg.Gateways["stripe"] = slowStripeConfig()

	store := testStore()
	users := kv.NewUserRepository(store)
	user := &entity.User{ID: uuid.New(), Mobile: "+15550002222"}
	require.NoError(t, users.Create(context.Background(), user))

	svc := NewPaymentService(
		cfg,
		gateway.NewGateways(cfg, &fixedSampler{succeed: true}),
		region.NewDetector(),
		kv.NewAuditRepository(store),
		users,
		kv.NewOrderRepository(store),
		&recordingPublisher{},
		testLogger(),
	)

	_, err := svc.ProcessPayment(context.Background(), user.ID, &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCard,
	})

	assert.ErrorIs(t, err, domainerrors.ErrGatewayUnavailable)
}

func TestPaymentService_RequiresKnownUser(t *testing.T) {
	fx := createTestPaymentService(t)

	_, err := fx.service.ProcessPayment(context.Background(), uuid.New(), &usecase.PaymentInput{
		Amount: decimal.NewFromInt(100),
		Method: entity.MethodCOD,
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	entries, auditErr := fx.audit.List(context.Background())
	require.NoError(t, auditErr)
	assert.Empty(t, entries)
}
