package gateway

import (
	"shophub/config"
	"shophub/internal/domain/entity"
	"shophub/internal/domain/service"
)

// GatewayRazorpay is the routing name of the Razorpay adapter.
const GatewayRazorpay = "razorpay"

// NewRazorpayGateway creates the simulated Razorpay adapter. Razorpay
// settles in INR unless the request says otherwise.
func NewRazorpayGateway(cfg *config.Config, sampler service.OutcomeSampler) service.PaymentGateway {
	return newSimGateway(profile{
		name:     GatewayRazorpay,
		txPrefix: "rzp_",
		methods: []entity.PaymentMethodKind{
			entity.MethodRazorpay,
			entity.MethodCard,
		},
		percentFee:      0.02,
		fixedFee:        0,
		defaultCurrency: "INR",
		declineCode:     "payment_failed",
		declineMessage:  "The payment could not be processed.",
		successRate:     0.96,
	}, gatewayConfig(cfg, GatewayRazorpay), sampler)
}
