// Package gateway implements the payment provider adapters. Providers are
// simulated: each adapter charges with a configured success rate, a realistic
// latency window and the provider's published fee schedule.
package gateway

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shophub/config"
	"shophub/internal/domain/entity"
	domainerrors "shophub/internal/domain/errors"
	"shophub/internal/domain/service"
)

// feeSchedule is a percentage of the amount plus a fixed component, both in
// the charged currency.
type feeSchedule struct {
	percent decimal.Decimal
	fixed   decimal.Decimal
}

func (f feeSchedule) feeFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(f.percent).Add(f.fixed).Round(2)
}

// simGateway carries the behavior shared by every simulated provider.
// Provider files differ only in their profile.
type simGateway struct {
	name            string
	txPrefix        string
	methods         map[entity.PaymentMethodKind]struct{}
	fees            feeSchedule
	defaultCurrency string
	declineCode     string
	declineMessage  string
	successRate     float64
	minLatency      time.Duration
	maxLatency      time.Duration

	sampler service.OutcomeSampler
	nowFunc func() time.Time
}

// profile is the static identity of a provider; config supplies rates and
// latency on top of it.
type profile struct {
	name            string
	txPrefix        string
	methods         []entity.PaymentMethodKind
	percentFee      float64
	fixedFee        float64
	defaultCurrency string
	declineCode     string
	declineMessage  string
	successRate     float64
}

func newSimGateway(p profile, cfg *config.GatewayConfig, sampler service.OutcomeSampler) *simGateway {
	g := &simGateway{
		name:            p.name,
		txPrefix:        p.txPrefix,
		methods:         make(map[entity.PaymentMethodKind]struct{}, len(p.methods)),
		fees:            feeSchedule{percent: decimal.NewFromFloat(p.percentFee), fixed: decimal.NewFromFloat(p.fixedFee)},
		defaultCurrency: p.defaultCurrency,
		declineCode:     p.declineCode,
		declineMessage:  p.declineMessage,
		successRate:     p.successRate,
		minLatency:      500 * time.Millisecond,
		maxLatency:      2 * time.Second,
		sampler:         sampler,
		nowFunc:         time.Now,
	}
	for _, m := range p.methods {
		g.methods[m] = struct{}{}
	}

	if cfg != nil {
		if cfg.SuccessRate > 0 {
			g.successRate = cfg.SuccessRate
		}
		if cfg.PercentFee > 0 {
			g.fees.percent = decimal.NewFromFloat(cfg.PercentFee)
		}
		if cfg.FixedFee > 0 {
			g.fees.fixed = decimal.NewFromFloat(cfg.FixedFee)
		}
		if cfg.DefaultCurrency != "" {
			g.defaultCurrency = cfg.DefaultCurrency
		}
		if cfg.MinLatency > 0 {
			g.minLatency = cfg.MinLatency
		}
		if cfg.MaxLatency > 0 {
			g.maxLatency = cfg.MaxLatency
		}
	}

	return g
}

func (g *simGateway) Name() string {
	return g.name
}

func (g *simGateway) IsSupported(method entity.PaymentMethodKind) bool {
	_, ok := g.methods[method]

	return ok
}

func (g *simGateway) ProcessPayment(ctx context.Context, req entity.PaymentRequest) (*entity.Transaction, error) {
	if req.Currency == "" {
		req.Currency = g.defaultCurrency
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !g.IsSupported(req.Method) {
		return nil, domainerrors.ErrInvalidRequest.WithDetails(
			g.name + " does not support method " + string(req.Method))
	}

	if err := g.simulateLatency(ctx); err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		ID:        g.newTransactionID(),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Gateway:   g.name,
		Method:    req.Method,
		Timestamp: g.nowFunc(),
	}

	if !g.sampler.Sample(g.successRate) {
		tx.Success = false
		tx.ErrorCode = g.declineCode
		tx.ErrorMessage = g.declineMessage

		return tx, nil
	}

	tx.Success = true
	tx.Fee = g.fees.feeFor(req.Amount)

	return tx, nil
}

// simulateLatency blocks for a spread inside the provider's latency window,
// honoring context cancellation.
func (g *simGateway) simulateLatency(ctx context.Context) error {
	window := g.maxLatency - g.minLatency
	delay := g.minLatency
	if window > 0 {
		delay += rand.N(window)
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *simGateway) newTransactionID() string {
	return g.txPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
