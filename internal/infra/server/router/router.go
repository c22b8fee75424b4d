// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spendlens/backend/internal/integration/entrypoint/controller"
	"github.com/spendlens/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	authController           *controller.AuthController
	categoryController       *controller.CategoryController
	transactionController    *controller.TransactionController
	categorizationController *controller.CategorizationController
	loginRateLimiter         *middleware.RateLimiter
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	categorizationController *controller.CategorizationController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		authController:           authController,
		categoryController:       categoryController,
		transactionController:    transactionController,
		categorizationController: categorizationController,
		loginRateLimiter:         loginRateLimiter,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.DELETE("/:id", r.transactionController.Delete)

				// Manual categorization is scoped to a single transaction
				if r.categorizationController != nil {
					transactions.POST("/:id/categorize", r.categorizationController.Categorize)
				}
			}
		}

		// Categorization rule routes (require authentication)
		if r.categorizationController != nil && r.authMiddleware != nil {
			categorization := v1.Group("/categorization")
			categorization.Use(r.authMiddleware.Authenticate())
			{
				categorization.GET("/rules", r.categorizationController.ListRules)
				categorization.POST("/rules", r.categorizationController.CreateRule)
				categorization.DELETE("/rules/:id", r.categorizationController.DeleteRule)
				categorization.POST("/auto", r.categorizationController.AutoCategorize)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
