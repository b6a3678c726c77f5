package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"vendora/cmd/fx/cashout_fx"
	"vendora/cmd/fx/gateway_fx"
	"vendora/cmd/fx/infra_fx"
	"vendora/cmd/fx/offer_fx"
	"vendora/cmd/fx/plan_fx"
	"vendora/cmd/fx/settlement_fx"
	"vendora/cmd/fx/wallet_fx"
	"vendora/internal/api/controllers"
	"vendora/internal/infra"
	"vendora/pkg/middleware"
	"vendora/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		infra_fx.Module,
		gateway_fx.Module,
		plan_fx.Module,
		offer_fx.Module,
		wallet_fx.Module,
		cashout_fx.Module,
		settlement_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("port", cfg.Port))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	planController *controllers.PlanController,
	paymentController *controllers.PaymentController,
	walletController *controllers.WalletController,
	financeController *controllers.FinanceController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, planController, paymentController, walletController, financeController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	cfg *infra.Config,
	planController *controllers.PlanController,
	paymentController *controllers.PaymentController,
	walletController *controllers.WalletController,
	financeController *controllers.FinanceController,
) {
	secret := []byte(cfg.JWTSecret)

	r.GET("/plans", planController.ListPlans)

	payment := r.Group("/payment")
	payment.Use(middleware.JWTAuthMiddleware(secret))
	payment.POST("/initiate", paymentController.Initiate)
	payment.POST("/verify", paymentController.Verify)
	payment.GET("/referral-offers/:vendor_id", middleware.VendorScopeMiddleware(), paymentController.ListReferralOffers)
	payment.GET("/subscription/:vendor_id", middleware.VendorScopeMiddleware(), paymentController.CurrentSubscription)

	wallet := r.Group("/wallet")
	wallet.Use(middleware.JWTAuthMiddleware(secret), middleware.VendorScopeMiddleware())
	wallet.GET("/:vendor_id", walletController.GetWallet)
	wallet.GET("/:vendor_id/cashouts", walletController.ListCashouts)
	wallet.POST("/:vendor_id/cashouts", walletController.CreateCashout)

	finance := r.Group("/finance/referrals/cashouts")
	finance.Use(middleware.JWTAuthMiddleware(secret), middleware.RoleMiddleware(utils.RoleFinance))
	finance.GET("", financeController.ListCashouts)
	finance.POST("/:id/approve", financeController.Approve)
	finance.POST("/:id/reject", financeController.Reject)
	finance.POST("/:id/mark-paid", financeController.MarkPaid)
}
