package usecase

import (
	"context"

	"shophub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentUsecase defines the interface for payment routing and bookkeeping.
type PaymentUsecase interface {
	// ListMethods returns the payment method catalog.
	ListMethods(ctx context.Context) []entity.PaymentMethod

	// ValidateCard checks card details without charging them.
	ValidateCard(ctx context.Context, input *entity.CardDetails) (*CardValidationResult, error)

	// ProcessPayment routes a charge to a gateway and records the outcome in
	// the audit log and, on success, the user's payment history.
	ProcessPayment(ctx context.Context, userID uuid.UUID, input *PaymentInput) (*entity.Transaction, error)

	// RefundPayment refunds the full charge of a cancelled order.
	RefundPayment(ctx context.Context, userID uuid.UUID, orderID string) (*entity.Order, error)

	// GetAuditLog returns the retained gateway call records, oldest first.
	GetAuditLog(ctx context.Context) ([]entity.AuditEntry, error)

	// GetAnalytics aggregates the audit log into per-gateway statistics.
	GetAnalytics(ctx context.Context) (*PaymentAnalytics, error)
}

// --- Input DTOs ---

// PaymentInput defines the data required to charge a payment.
type PaymentInput struct {
	Amount   decimal.Decimal          `json:"amount"`
	Currency string                   `json:"currency,omitempty"`
	Method   entity.PaymentMethodKind `json:"method" validate:"required"`
	Country  string                   `json:"country,omitempty"`
	OrderRef string                   `json:"orderRef,omitempty"`
	Card     *entity.CardDetails      `json:"card,omitempty"`
}

// CardValidationResult reports the outcome of card validation.
type CardValidationResult struct {
	Valid    bool   `json:"valid"`
	CardType string `json:"cardType"`
	Reason   string `json:"reason,omitempty"`
}

// GatewayStats aggregates audit entries for one gateway.
type GatewayStats struct {
	Gateway   string          `json:"gateway"`
	Attempts  int             `json:"attempts"`
	Successes int             `json:"successes"`
	Volume    decimal.Decimal `json:"volume"`
}

// PaymentAnalytics summarizes the retained audit log.
type PaymentAnalytics struct {
	TotalAttempts  int             `json:"totalAttempts"`
	TotalSuccesses int             `json:"totalSuccesses"`
	SuccessRate    float64         `json:"successRate"`
	TotalVolume    decimal.Decimal `json:"totalVolume"`
	ByGateway      []GatewayStats  `json:"byGateway"`
}
