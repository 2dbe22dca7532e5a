package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "shophub/internal/domain/errors"
)

// PaymentMethodKind identifies one entry of the fixed payment method catalog.
type PaymentMethodKind string

const (
	MethodCard      PaymentMethodKind = "card"
	MethodPayPal    PaymentMethodKind = "paypal"
	MethodApplePay  PaymentMethodKind = "apple_pay"
	MethodGooglePay PaymentMethodKind = "google_pay"
	MethodRazorpay  PaymentMethodKind = "razorpay"
	MethodCOD       PaymentMethodKind = "cod"
)

// PaymentMethod is a reference to one catalog entry, not a stored credential.
type PaymentMethod struct {
	Kind PaymentMethodKind `json:"kind"`
	Name string            `json:"name"`
}

// SupportedMethods returns the fixed payment method catalog.
func SupportedMethods() []PaymentMethod {
	return []PaymentMethod{
		{Kind: MethodCard, Name: "Credit/Debit Card"},
		{Kind: MethodPayPal, Name: "PayPal"},
		{Kind: MethodApplePay, Name: "Apple Pay"},
		{Kind: MethodGooglePay, Name: "Google Pay"},
		{Kind: MethodRazorpay, Name: "Razorpay"},
		{Kind: MethodCOD, Name: "Cash on Delivery"},
	}
}

// MethodByKind resolves a catalog entry by its kind.
func MethodByKind(kind PaymentMethodKind) (PaymentMethod, bool) {
	for _, m := range SupportedMethods() {
		if m.Kind == kind {
			return m, true
		}
	}

	return PaymentMethod{}, false
}

// PaymentRequest is the uniform input of every gateway variant.
type PaymentRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Method   PaymentMethodKind `json:"method"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate enforces the shared gateway validation: amount, currency and method
// must all be present before any variant-specific logic runs.
func (r *PaymentRequest) Validate() error {
	if r == nil {
		return domainerrors.ErrInvalidRequest.WithDetails("request is nil")
	}
	if !r.Amount.IsPositive() {
		return domainerrors.ErrInvalidRequest.WithDetails("amount is required")
	}
	if strings.TrimSpace(r.Currency) == "" {
		return domainerrors.ErrInvalidRequest.WithDetails("currency is required")
	}
	if r.Method == "" {
		return domainerrors.ErrInvalidRequest.WithDetails("payment method is required")
	}

	return nil
}

// Transaction is the immutable result of one gateway invocation. A stochastic
// decline is a normal outcome carried as a failure Transaction, not an error.
type Transaction struct {
	ID           string            `json:"transactionId"`
	Success      bool              `json:"success"`
	Amount       decimal.Decimal   `json:"amount"`
	Currency     string            `json:"currency"`
	Gateway      string            `json:"gateway"`
	Method       PaymentMethodKind `json:"paymentMethod"`
	Fee          decimal.Decimal   `json:"fees"`
	Timestamp    time.Time         `json:"timestamp"`
	ErrorCode    string            `json:"errorCode,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}
