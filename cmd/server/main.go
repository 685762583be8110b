package main // Entry point package

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/FINZ1-ops/shop-api/internal/auth"
	"github.com/FINZ1-ops/shop-api/internal/config"
	"github.com/FINZ1-ops/shop-api/internal/database"
	"github.com/FINZ1-ops/shop-api/internal/handler"
	"github.com/FINZ1-ops/shop-api/internal/repository"
	"github.com/FINZ1-ops/shop-api/internal/router"
	"github.com/FINZ1-ops/shop-api/internal/service"
)

func main() {
	// A .env file is optional; real deployments pass the environment in.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	tokens := auth.NewService(auth.Config{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
	})

	users := repository.NewUserRepo(db)
	pairs := repository.NewTokenRepo(db)
	products := repository.NewProductRepo(db)
	categories := repository.NewCategoryRepo(db)
	stocks := repository.NewStockRepo(db)
	orders := repository.NewOrderRepo(db)
	transactions := repository.NewTransactionRepo(db)

	publisher := service.NewPublisher(cfg.AMQPURL)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.HTTPErrorHandler = errorHandler

	router.Register(e, router.Handlers{
		Auth:         handler.NewAuthHandler(tokens, users, pairs, cfg.BcryptCost),
		Users:        handler.NewUserHandler(users, cfg.BcryptCost),
		Products:     handler.NewProductHandler(products),
		Categories:   handler.NewCategoryHandler(categories),
		Stocks:       handler.NewStockHandler(stocks, publisher),
		Orders:       handler.NewOrderHandler(orders, publisher),
		Transactions: handler.NewTransactionHandler(transactions, orders),
	}, tokens, users, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// errorHandler renders unmatched routes and uncaught errors in the same
// envelope the handlers use, without leaking internals.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	status := "failed"
	if code < 500 {
		status = "error"
	}
	_ = c.JSON(code, echo.Map{"status": status, "message": msg})
}
