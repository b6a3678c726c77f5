package settlement_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"vendora/internal/api/controllers"
	"vendora/internal/gateway"
	"vendora/internal/infra"
	"vendora/internal/repositories"
	"vendora/internal/services"
)

var Module = fx.Provide(
	repositories.NewVendorRepository,
	repositories.NewSettlementRepository,
	provideMailService,
	services.NewOutboxDispatcher,
	provideSettlementService,
	controllers.NewPaymentController,
)

func provideMailService(cfg *infra.Config) services.IMailService {
	return services.NewSMTPMailService(cfg.SMTP)
}

func provideSettlementService(
	vendorRepo repositories.IVendorRepository,
	planRepo repositories.IPlanRepository,
	settlementRepo repositories.ISettlementRepository,
	offers services.IOfferService,
	wallet services.IWalletService,
	gw gateway.PaymentGateway,
	outbox *services.OutboxDispatcher,
	cfg *infra.Config,
	logger *zap.Logger,
) services.ISettlementService {
	return services.NewSettlementService(
		vendorRepo, planRepo, settlementRepo,
		offers, wallet, gw, outbox,
		cfg.Currency, logger,
	)
}
