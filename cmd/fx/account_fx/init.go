package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/config"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
	mem "apnadoctor/pkg/memcache"
	"apnadoctor/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager, controllers.NewAccountController)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	revoked mem.RevokedTokenStore,
	cfg config.Config,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, revoked, cfg.AdminSecret, log)
}
