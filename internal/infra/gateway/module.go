package gateway

import (
	"shophub/config"
	"shophub/internal/domain/service"

	"go.uber.org/fx"
)

// NewGateways builds the enabled provider adapters. Providers run with their
// built-in profiles unless a config section tunes or disables them.
func NewGateways(cfg *config.Config, sampler service.OutcomeSampler) []service.PaymentGateway {
	constructors := map[string]func(*config.Config, service.OutcomeSampler) service.PaymentGateway{
		GatewayStripe:   NewStripeGateway,
		GatewayPayPal:   NewPayPalGateway,
		GatewayRazorpay: NewRazorpayGateway,
		GatewaySquare:   NewSquareGateway,
	}

	gateways := make([]service.PaymentGateway, 0, len(constructors))
	for _, name := range []string{GatewayStripe, GatewayPayPal, GatewayRazorpay, GatewaySquare} {
		if section := gatewayConfig(cfg, name); section != nil && section.Disabled {
			continue
		}
		gateways = append(gateways, constructors[name](cfg, sampler))
	}

	return gateways
}

// Module provides the payment gateway FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRandSampler),
	fx.Provide(NewGateways),
)
