package usecase

import (
	"context"

	"shophub/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutUsecase defines the interface for the checkout flow. One session
// walks a cart snapshot through address selection, payment selection and
// review; placing the order charges the payment and writes the ledger.
type CheckoutUsecase interface {
	// StartCheckout opens a session over the user's current cart.
	StartCheckout(ctx context.Context, userID uuid.UUID) (*CheckoutView, error)

	// GetSession returns the current state of a session.
	GetSession(ctx context.Context, userID uuid.UUID, sessionID string) (*CheckoutView, error)

	// SelectAddress records the shipping address for the session.
	SelectAddress(ctx context.Context, userID uuid.UUID, sessionID string, addressID uuid.UUID) (*CheckoutView, error)

	// SelectPaymentMethod records the payment method for the session.
	SelectPaymentMethod(ctx context.Context, userID uuid.UUID, sessionID string, method entity.PaymentMethodKind) (*CheckoutView, error)

	// NextStep advances the session one step.
	NextStep(ctx context.Context, userID uuid.UUID, sessionID string) (*CheckoutView, error)

	// PreviousStep moves the session one step back.
	PreviousStep(ctx context.Context, userID uuid.UUID, sessionID string) (*CheckoutView, error)

	// CancelSession abandons the session.
	CancelSession(ctx context.Context, userID uuid.UUID, sessionID string) error

	// PlaceOrder charges the payment and appends the order to the ledger.
	// Placing an already placed session returns the existing order.
	PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string) (*entity.Order, error)
}

// CheckoutView is the session state returned to the client.
type CheckoutView struct {
	SessionID string                   `json:"sessionId"`
	Step      entity.CheckoutStep      `json:"step"`
	Items     []entity.OrderItem       `json:"items"`
	Address   *entity.Address          `json:"address,omitempty"`
	Method    entity.PaymentMethodKind `json:"method,omitempty"`
	Totals    entity.OrderTotals       `json:"totals"`
	OrderID   string                   `json:"orderId,omitempty"`
}
