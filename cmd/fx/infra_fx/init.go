package infra_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vendora/internal/infra"
)

var Module = fx.Provide(
	infra.LoadConfig,
	provideLogger,
	provideDB,
)

func provideLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func provideDB(cfg *infra.Config, logger *zap.Logger) (*gorm.DB, error) {
	return infra.InitPostgresql(cfg, logger)
}
