package gateway_fx

import (
	"go.uber.org/fx"

	"vendora/internal/gateway"
)

var Module = fx.Provide(
	gateway.NewRazorpayGateway,
)
