package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripnect/internal/config"
	"tripnect/internal/repositories"
	"tripnect/internal/services"
	"tripnect/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
}

func provideAccountService(accountRepo repositories.AccountRepository, jwt *utils.JWTManager, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, logger)
}
