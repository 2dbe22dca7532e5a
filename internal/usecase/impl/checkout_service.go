package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shophub/config"
	deliverycontext "shophub/internal/delivery/context"
	"shophub/internal/domain/constants"
	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/domain/service"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultShippingFee     = 5.99
	defaultTaxRate         = 0.08
	defaultDeliveryMinDays = 3
	defaultDeliveryMaxDays = 7
)

// checkoutService implements the CheckoutUsecase interface. Sessions are
// process-local; everything durable goes through the repositories.
type checkoutService struct {
	carts     repository.CartRepository
	addresses repository.AddressRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	payments  usecase.PaymentUsecase
	publisher service.EventPublisher
	logger    *slog.Logger

	shippingFee     decimal.Decimal
	taxRate         decimal.Decimal
	deliveryMinDays int
	deliveryMaxDays int
	nowFunc         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entity.CheckoutSession
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	cfg *config.Config,
	carts repository.CartRepository,
	addresses repository.AddressRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	payments usecase.PaymentUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	srv := &checkoutService{
		carts:           carts,
		addresses:       addresses,
		orders:          orders,
		users:           users,
		payments:        payments,
		publisher:       publisher,
		logger:          logger,
		shippingFee:     decimal.NewFromFloat(defaultShippingFee),
		taxRate:         decimal.NewFromFloat(defaultTaxRate),
		deliveryMinDays: defaultDeliveryMinDays,
		deliveryMaxDays: defaultDeliveryMaxDays,
		nowFunc:         time.Now,
		sessions:        make(map[string]*entity.CheckoutSession),
	}

	if cfg.Checkout != nil {
		if cfg.Checkout.ShippingFee > 0 {
			srv.shippingFee = decimal.NewFromFloat(cfg.Checkout.ShippingFee)
		}
		if cfg.Checkout.TaxRate > 0 {
			srv.taxRate = decimal.NewFromFloat(cfg.Checkout.TaxRate)
		}
		if cfg.Checkout.DeliveryMinDays > 0 {
			srv.deliveryMinDays = cfg.Checkout.DeliveryMinDays
		}
		if cfg.Checkout.DeliveryMaxDays > 0 {
			srv.deliveryMaxDays = cfg.Checkout.DeliveryMaxDays
		}
	}

	return srv
}

// StartCheckout opens a session over the user's current cart.
func (srv *checkoutService) StartCheckout(ctx context.Context, userID uuid.UUID) (*usecase.CheckoutView, error) {
	items, err := srv.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	session := entity.NewCheckoutSession(uuid.NewString(), userID, items, srv.nowFunc())

	srv.mu.Lock()
	srv.sessions[session.ID] = session
	srv.mu.Unlock()

	srv.logger.Info("checkout session opened",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID.String()),
		slog.Int("items", len(items)),
	)

	return srv.view(session), nil
}

// GetSession returns the current state of a session.
func (srv *checkoutService) GetSession(_ context.Context, userID uuid.UUID, sessionID string) (*usecase.CheckoutView, error) {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	return srv.view(session), nil
}

// SelectAddress records the shipping address for the session.
func (srv *checkoutService) SelectAddress(ctx context.Context, userID uuid.UUID, sessionID string, addressID uuid.UUID) (*usecase.CheckoutView, error) {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	address, err := srv.addresses.FindAddressByID(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "find address")
	}

	if err := session.SelectAddress(*address, srv.nowFunc()); err != nil {
		return nil, err
	}

	return srv.view(session), nil
}

// SelectPaymentMethod records the payment method for the session.
func (srv *checkoutService) SelectPaymentMethod(_ context.Context, userID uuid.UUID, sessionID string, method entity.PaymentMethodKind) (*usecase.CheckoutView, error) {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.SelectPaymentMethod(method, srv.nowFunc()); err != nil {
		return nil, err
	}

	return srv.view(session), nil
}

// NextStep advances the session one step.
func (srv *checkoutService) NextStep(_ context.Context, userID uuid.UUID, sessionID string) (*usecase.CheckoutView, error) {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := session.Advance(srv.nowFunc()); err != nil {
		return nil, err
	}

	return srv.view(session), nil
}

// PreviousStep moves the session one step back.
func (srv *checkoutService) PreviousStep(_ context.Context, userID uuid.UUID, sessionID string) (*usecase.CheckoutView, error) {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := session.Retreat(srv.nowFunc()); err != nil {
		return nil, err
	}

	return srv.view(session), nil
}

// CancelSession abandons the session.
func (srv *checkoutService) CancelSession(_ context.Context, userID uuid.UUID, sessionID string) error {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return err
	}

	return session.Cancel(srv.nowFunc())
}

// PlaceOrder charges the payment and appends the order to the ledger.
func (srv *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string) (*entity.Order, error) {
	session, err := srv.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	existingID, err := session.BeginPlacement()
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		// The session was already placed; placement is idempotent.
		order, findErr := srv.orders.FindByID(ctx, existingID)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "find placed order")
		}

		return order, nil
	}

	snapshot := session.PlacementSnapshot()
	now := srv.nowFunc()
	orderID := generateOrderID(now)
	totals := session.FinalTotal(srv.shippingFee, srv.taxRate)

	tx, err := srv.payments.ProcessPayment(ctx, userID, &usecase.PaymentInput{
		Amount:   totals.Total,
		Method:   snapshot.Method,
		Country:  snapshot.Address.Country,
		OrderRef: orderID,
	})
	if err != nil {
		session.FailPlacement(srv.nowFunc())

		return nil, err
	}
	if !tx.Success {
		session.FailPlacement(srv.nowFunc())

		return nil, domainerrors.ErrGatewayDeclined.WithDetails(tx.ErrorMessage)
	}

	order := &entity.Order{
		ID:                orderID,
		UserID:            userID,
		Items:             snapshot.Items,
		Totals:            totals,
		ShippingAddress:   snapshot.Address,
		PaymentMethod:     string(snapshot.Method),
		Transaction:       *tx,
		Status:            entity.OrderConfirmed,
		TrackingNumber:    generateTrackingNumber(now),
		EstimatedDelivery: estimateDelivery(now, srv.deliveryMinDays, srv.deliveryMaxDays),
		PlacedAt:          now,
		StatusUpdatedAt:   now,
		RefundedAmount:    decimal.Zero,
	}

	if err := srv.orders.Save(ctx, order); err != nil {
		session.FailPlacement(srv.nowFunc())

		return nil, errors.Wrap(err, "save order")
	}

	session.CompletePlacement(orderID, srv.nowFunc())
	srv.finishPlacement(ctx, userID, order)

	return order, nil
}

// finishPlacement runs the after-placement bookkeeping. The order is already
// in the ledger, so failures here are logged and absorbed.
func (srv *checkoutService) finishPlacement(ctx context.Context, userID uuid.UUID, order *entity.Order) {
	if user, err := srv.users.FindByID(ctx, userID); err != nil {
		srv.logger.Error("failed to load user for order history",
			slog.String("user_id", userID.String()), slog.Any("error", err))
	} else {
		user.RecordOrder(order.ID)
		user.UpdatedAt = srv.nowFunc()
		if err := srv.users.Update(ctx, user); err != nil {
			srv.logger.Error("failed to update order history",
				slog.String("user_id", userID.String()), slog.Any("error", err))
		}
	}

	if err := srv.carts.Clear(ctx, userID); err != nil {
		srv.logger.Error("failed to clear cart",
			slog.String("user_id", userID.String()), slog.Any("error", err))
	}

	event := &service.OrderEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  constants.EventOrderPlaced,
		OrderID:    order.ID,
		UserID:     userID.String(),
		Status:     string(order.Status),
		Total:      order.Totals.Total.String(),
		Currency:   order.Transaction.Currency,
		OccurredAt: order.PlacedAt,
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Error("failed to publish order event",
			slog.String("order_id", order.ID), slog.Any("error", err))
	}

	srv.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID.String()),
		slog.String("total", order.Totals.Total.String()),
		slog.String("gateway", order.Transaction.Gateway),
	)
}

// ownedSession resolves a session and checks ownership. Foreign sessions
// read as missing so session IDs cannot be probed.
func (srv *checkoutService) ownedSession(userID uuid.UUID, sessionID string) (*entity.CheckoutSession, error) {
	srv.mu.RLock()
	session, ok := srv.sessions[sessionID]
	srv.mu.RUnlock()

	if !ok || session.UserID != userID {
		return nil, domainerrors.ErrSessionNotFound
	}

	return session, nil
}

func (srv *checkoutService) view(session *entity.CheckoutSession) *usecase.CheckoutView {
	snap := session.View()

	return &usecase.CheckoutView{
		SessionID: session.ID,
		Step:      snap.Step,
		Items:     snap.Items,
		Address:   snap.Address,
		Method:    snap.Method,
		Totals:    session.FinalTotal(srv.shippingFee, srv.taxRate),
		OrderID:   snap.OrderID,
	}
}
