package usecase

import (
	"context"

	"shophub/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for the order ledger operations.
type OrderUsecase interface {
	// ListOrders returns the user's orders, most recent first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns one of the user's orders by ledger ID.
	GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error)

	// TrackOrder returns the order's shipment view with a tracking QR code.
	TrackOrder(ctx context.Context, userID uuid.UUID, orderID string) (*TrackingView, error)

	// UpdateStatus sets the order status. Cancellation must go through
	// CancelOrder, which enforces the cancellable states.
	UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error)

	// CancelOrder cancels a confirmed or processing order.
	CancelOrder(ctx context.Context, userID uuid.UUID, orderID string, reason string) (*entity.Order, error)
}

// TrackingView is the shipment state returned to the client.
type TrackingView struct {
	OrderID           string             `json:"orderId"`
	Status            entity.OrderStatus `json:"status"`
	TrackingNumber    string             `json:"trackingNumber"`
	EstimatedDelivery string             `json:"estimatedDelivery"`
	QRCodePNG         []byte             `json:"qrCodePng,omitempty"`
}
