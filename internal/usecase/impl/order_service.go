package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "shophub/internal/delivery/context"
	"shophub/internal/domain/constants"
	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/repository"
	"shophub/internal/domain/service"
	"shophub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orders    repository.OrderRepository
	qrcodes   service.QRCodeService
	publisher service.EventPublisher
	logger    *slog.Logger

	nowFunc func() time.Time
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orders repository.OrderRepository,
	qrcodes service.QRCodeService,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orders:    orders,
		qrcodes:   qrcodes,
		publisher: publisher,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// ListOrders returns the user's orders, most recent first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return srv.orders.FindByUser(ctx, userID)
}

// GetOrder returns one of the user's orders by ledger ID.
func (srv *orderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error) {
	return srv.ownedOrder(ctx, userID, orderID)
}

// TrackOrder returns the order's shipment view with a tracking QR code.
func (srv *orderService) TrackOrder(ctx context.Context, userID uuid.UUID, orderID string) (*usecase.TrackingView, error) {
	order, err := srv.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	view := &usecase.TrackingView{
		OrderID:           order.ID,
		Status:            order.Status,
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery.Format("2006-01-02"),
	}

	png, err := srv.qrcodes.GenerateTrackingQR(order.TrackingNumber)
	if err != nil {
		// Tracking still works without the QR image.
		srv.logger.Error("failed to generate tracking QR",
			slog.String("order_id", order.ID), slog.Any("error", err))

		return view, nil
	}
	view.QRCodePNG = png

	return view, nil
}

// UpdateStatus sets the order status. Any non-cancel target is accepted: the
// fulfillment side reports states from external carriers and stale or
// out-of-order callbacks still have to land.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	if status == entity.OrderCancelled {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("cancellation goes through the cancel operation")
	}

	switch status {
	case entity.OrderConfirmed, entity.OrderProcessing, entity.OrderShipped, entity.OrderDelivered:
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + string(status))
	}

	order, err := srv.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "find order")
	}

	order.Status = status
	order.StatusUpdatedAt = srv.nowFunc()

	if err := srv.orders.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	srv.publishEvent(ctx, order, constants.EventOrderStatusChanged)

	return order, nil
}

// CancelOrder cancels a confirmed or processing order.
func (srv *orderService) CancelOrder(ctx context.Context, userID uuid.UUID, orderID string, reason string) (*entity.Order, error) {
	order, err := srv.ownedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Cancellable() {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			"orders in status " + string(order.Status) + " cannot be cancelled")
	}

	now := srv.nowFunc()
	order.Status = entity.OrderCancelled
	order.StatusUpdatedAt = now
	order.CancelledAt = &now
	order.CancellationReason = reason

	if err := srv.orders.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "update order")
	}

	srv.logger.Info("order cancelled",
		slog.String("order_id", order.ID),
		slog.String("reason", reason),
	)
	srv.publishEvent(ctx, order, constants.EventOrderCancelled)

	return order, nil
}

// ownedOrder resolves an order and checks ownership. Foreign orders read as
// missing so ledger IDs cannot be probed.
func (srv *orderService) ownedOrder(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error) {
	order, err := srv.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "find order")
	}
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

func (srv *orderService) publishEvent(ctx context.Context, order *entity.Order, eventType string) {
	event := &service.OrderEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  eventType,
		OrderID:    order.ID,
		UserID:     order.UserID.String(),
		Status:     string(order.Status),
		OccurredAt: srv.nowFunc(),
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Error("failed to publish order event",
			slog.String("order_id", order.ID), slog.Any("error", err))
	}
}
