// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/spendlens/backend/config"
	"github.com/spendlens/backend/internal/application/usecase/auth"
	"github.com/spendlens/backend/internal/application/usecase/categorization"
	"github.com/spendlens/backend/internal/application/usecase/category"
	"github.com/spendlens/backend/internal/application/usecase/transaction"
	"github.com/spendlens/backend/internal/infra/server/router"
	"github.com/spendlens/backend/internal/integration/adapters"
	"github.com/spendlens/backend/internal/integration/entrypoint/controller"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
	"github.com/spendlens/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	ruleRepo := persistence.NewCategorizationRuleRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create categorization use cases
	recordManualUseCase := categorization.NewRecordManualCategorizationUseCase(transactionRepo, categoryRepo, ruleRepo)
	createRuleUseCase := categorization.NewCreatePatternRuleUseCase(ruleRepo, categoryRepo)
	listRulesUseCase := categorization.NewListRulesUseCase(ruleRepo)
	deleteRuleUseCase := categorization.NewDeleteRuleUseCase(ruleRepo)
	autoCategorizeUseCase := categorization.NewAutoCategorizeUseCase(transactionRepo, ruleRepo, cfg.Categorize.Workers)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		deleteTransactionUseCase,
	)

	categorizationController := controller.NewCategorizationController(
		recordManualUseCase,
		createRuleUseCase,
		listRulesUseCase,
		deleteRuleUseCase,
		autoCategorizeUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		categorizationController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
