package cashout_fx

import (
	"go.uber.org/fx"

	"vendora/internal/api/controllers"
	"vendora/internal/repositories"
	"vendora/internal/services"
)

var Module = fx.Provide(
	repositories.NewCashoutRepository,
	services.NewCashoutService,
	controllers.NewFinanceController,
)
