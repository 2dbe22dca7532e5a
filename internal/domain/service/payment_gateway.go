package service

import (
	"context"

	"shophub/internal/domain/entity"
)

// PaymentGateway defines the interface every payment provider adapter
// implements. Adapters are stateless; all call outcome bookkeeping lives
// above them in the router.
type PaymentGateway interface {
	// Name returns the gateway identifier used in routing and audit records.
	Name() string

	// IsSupported reports whether the gateway accepts the given method.
	IsSupported(method entity.PaymentMethodKind) bool

	// ProcessPayment attempts to charge the request. A declined payment is
	// returned as a failed Transaction, not an error; errors are reserved
	// for invalid requests and transport failures.
	ProcessPayment(ctx context.Context, req entity.PaymentRequest) (*entity.Transaction, error)
}

// OutcomeSampler decides whether a simulated gateway call succeeds.
// Production wiring uses a seeded random source; tests pin the outcome.
type OutcomeSampler interface {
	// Sample returns true with the given probability of success.
	Sample(successRate float64) bool
}

// CurrencyDetector resolves the currency to charge in when a request
// does not carry one.
type CurrencyDetector interface {
	// Detect returns the ISO 4217 currency code for a country.
	Detect(country string) string
}
