package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// MaxAuditEntries bounds the shared payment audit log. The oldest entry is
// evicted once the cap is reached.
const MaxAuditEntries = 100

// OrderItem is an immutable snapshot of a cart line at placement time.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// Subtotal returns price multiplied by quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderTotals breaks a charged amount into its components.
type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Order is the ledger record for a completed checkout. Item, address and
// payment details are snapshots: later edits to the user's address book or
// payment history never touch a placed order.
type Order struct {
	ID                 string          `json:"orderId"`
	UserID             uuid.UUID       `json:"userId"`
	Items              []OrderItem     `json:"items"`
	Totals             OrderTotals     `json:"totals"`
	ShippingAddress    Address         `json:"shippingAddress"`
	PaymentMethod      string          `json:"paymentMethod"`
	Transaction        Transaction     `json:"transaction"`
	Status             OrderStatus     `json:"status"`
	TrackingNumber     string          `json:"trackingNumber"`
	EstimatedDelivery  time.Time       `json:"estimatedDelivery"`
	PlacedAt           time.Time       `json:"placedAt"`
	StatusUpdatedAt    time.Time       `json:"statusUpdatedAt"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	RefundedAmount     decimal.Decimal `json:"refundedAmount"`
}

// Cancellable reports whether the order may still be cancelled. Orders that
// have shipped are past the point of no return.
func (o *Order) Cancellable() bool {
	return o.Status == OrderConfirmed || o.Status == OrderProcessing
}

// AuditEntry is one line in the shared payment audit log.
type AuditEntry struct {
	TransactionID string          `json:"transactionId"`
	OrderID       string          `json:"orderId,omitempty"`
	UserID        uuid.UUID       `json:"userId"`
	Gateway       string          `json:"gateway"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Success       bool            `json:"success"`
	ErrorCode     string          `json:"errorCode,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}
