package offer_fx

import (
	"go.uber.org/fx"

	"vendora/internal/repositories"
	"vendora/internal/services"
)

var Module = fx.Provide(
	repositories.NewCouponRepository,
	repositories.NewReferralRepository,
	services.NewOfferService,
)
