package gateway

import (
	"shophub/config"
	"shophub/internal/domain/entity"
	"shophub/internal/domain/service"
)

// GatewayPayPal is the routing name of the PayPal adapter.
const GatewayPayPal = "paypal"

// NewPayPalGateway creates the simulated PayPal adapter.
func NewPayPalGateway(cfg *config.Config, sampler service.OutcomeSampler) service.PaymentGateway {
	return newSimGateway(profile{
		name:     GatewayPayPal,
		txPrefix: "pp_",
		methods: []entity.PaymentMethodKind{
			entity.MethodPayPal,
		},
		percentFee:      0.0349,
		fixedFee:        0.49,
		defaultCurrency: "USD",
		declineCode:     "instrument_declined",
		declineMessage:  "The PayPal payment could not be completed.",
		successRate:     0.97,
	}, gatewayConfig(cfg, GatewayPayPal), sampler)
}
