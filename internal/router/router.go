package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/FINZ1-ops/shop-api/internal/auth"
	"github.com/FINZ1-ops/shop-api/internal/config"
	"github.com/FINZ1-ops/shop-api/internal/handler"
	"github.com/FINZ1-ops/shop-api/internal/middleware"
	"github.com/FINZ1-ops/shop-api/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Products     *handler.ProductHandler
	Categories   *handler.CategoryHandler
	Stocks       *handler.StockHandler
	Orders       *handler.OrderHandler
	Transactions *handler.TransactionHandler
}

// Register mounts all routes.  Role policy per group: registration and
// login are open (rate limited); catalogue and user management require
// admin; order, transaction and stock management accept admin or cashier.
func Register(e *echo.Echo, h Handlers, tokens *auth.Service, roles middleware.RoleSource, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Open endpoints, throttled against credential stuffing.
	authGroup := e.Group("/v1/auth", middleware.RateLimit(rlCfg, rdb))
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	// Any authenticated user.  Logout only needs a verified token — a
	// disabled user can still log out.
	e.POST("/v1/logout", h.Auth.Logout, middleware.TokenAuth(tokens))
	e.GET("/v1/me", h.Auth.Me,
		middleware.TokenAuth(tokens),
		middleware.RequireRole(roles, model.RoleAdmin, model.RoleCashier))

	// Admin-only management.
	admin := e.Group("/v1",
		middleware.TokenAuth(tokens),
		middleware.RequireRole(roles, model.RoleAdmin))

	admin.GET("/categories", h.Categories.List)
	admin.GET("/categories/:id", h.Categories.Get)
	admin.POST("/categories", h.Categories.Create)
	admin.PUT("/categories/:id", h.Categories.Update)
	admin.DELETE("/categories/:id", h.Categories.Delete)

	admin.GET("/products", h.Products.List)
	admin.GET("/products/:id", h.Products.Get)
	admin.POST("/products", h.Products.Create)
	admin.PUT("/products/:id", h.Products.Update)
	admin.DELETE("/products/:id", h.Products.Delete)

	admin.GET("/users", h.Users.List)
	admin.GET("/users/:id", h.Users.Get)
	admin.PUT("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)

	// Point-of-sale: admin or cashier.
	pos := e.Group("/v1",
		middleware.TokenAuth(tokens),
		middleware.RequireRole(roles, model.RoleAdmin, model.RoleCashier))

	pos.GET("/orders", h.Orders.List)
	pos.GET("/orders/date/:date", h.Orders.ListByDate)
	pos.GET("/orders/customer/:customer_id", h.Orders.ListByCustomer)
	pos.GET("/orders/:id", h.Orders.Get)
	pos.POST("/orders", h.Orders.Create)
	pos.PUT("/orders/:id", h.Orders.Update)
	pos.DELETE("/orders/:id", h.Orders.Delete)

	pos.GET("/transactions", h.Transactions.List)
	pos.GET("/transactions/:id", h.Transactions.Get)
	pos.POST("/transactions", h.Transactions.Create)
	pos.PUT("/transactions/:id", h.Transactions.Update)
	pos.DELETE("/transactions/:id", h.Transactions.Delete)

	pos.GET("/stocks", h.Stocks.List)
	pos.GET("/stocks/product/:product_id", h.Stocks.ListByProduct)
	pos.GET("/stocks/:id", h.Stocks.Get)
	pos.POST("/stocks", h.Stocks.Create)
	pos.PUT("/stocks/:id", h.Stocks.Update)
	pos.DELETE("/stocks/:id", h.Stocks.Delete)
}
