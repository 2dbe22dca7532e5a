package gateway

import (
	"shophub/config"
	"shophub/internal/domain/entity"
	"shophub/internal/domain/service"
)

// GatewayStripe is the routing name of the Stripe adapter.
const GatewayStripe = "stripe"

// NewStripeGateway creates the simulated Stripe adapter. Stripe carries the
// card rails, including the wallet methods that tokenize down to a card.
func NewStripeGateway(cfg *config.Config, sampler service.OutcomeSampler) service.PaymentGateway {
	return newSimGateway(profile{
		name:     GatewayStripe,
		txPrefix: "stripe_",
		methods: []entity.PaymentMethodKind{
			entity.MethodCard,
			entity.MethodApplePay,
			entity.MethodGooglePay,
		},
		percentFee:      0.029,
		fixedFee:        0.30,
		defaultCurrency: "USD",
		declineCode:     "card_declined",
		declineMessage:  "Your card was declined.",
		successRate:     0.95,
	}, gatewayConfig(cfg, GatewayStripe), sampler)
}

// gatewayConfig picks one provider's section from the config, nil when absent.
func gatewayConfig(cfg *config.Config, name string) *config.GatewayConfig {
	if cfg == nil || cfg.Gateways == nil {
		return nil
	}
	if section, ok := cfg.Gateways[name]; ok {
		return &section
	}

	return nil
}
