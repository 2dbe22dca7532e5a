package gateway

import (
	"shophub/config"
	"shophub/internal/domain/entity"
	"shophub/internal/domain/service"
)

// GatewaySquare is the routing name of the Square adapter.
const GatewaySquare = "square"

// NewSquareGateway creates the simulated Square adapter.
func NewSquareGateway(cfg *config.Config, sampler service.OutcomeSampler) service.PaymentGateway {
	return newSimGateway(profile{
		name:     GatewaySquare,
		txPrefix: "sq_",
		methods: []entity.PaymentMethodKind{
			entity.MethodCard,
		},
		percentFee:      0.026,
		fixedFee:        0.10,
		defaultCurrency: "USD",
		declineCode:     "CARD_DECLINED",
		declineMessage:  "The card was declined by the issuer.",
		successRate:     0.94,
	}, gatewayConfig(cfg, GatewaySquare), sampler)
}
