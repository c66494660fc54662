package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankaccess/account-system/internal/api/handler"
	"github.com/bankaccess/account-system/internal/core/ports"
	"github.com/bankaccess/account-system/internal/core/service"
	mongostore "github.com/bankaccess/account-system/internal/infrastructure/db/mongo"
	redisstore "github.com/bankaccess/account-system/internal/infrastructure/db/redis"
)

// NewAccountsRouter builds the Echo instance for the accounts service:
// sign-up/sign-in, the block/unblock proxy, and the ledger.
func NewAccountsRouter(db *mongo.Database, rdb *redis.Client, blocklist ports.BlocklistClient, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts_http"))

	// --- Dependencies ---
	accountRepo := mongostore.NewAccountRepository(db)
	idemStore := redisstore.NewIdempotencyStore(rdb)
	authService := service.NewAuthService(accountRepo, blocklist, log)
	ledgerService := service.NewLedgerService(accountRepo, idemStore, log)

	authHandler := handler.NewAuthHandler(authService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)

	// --- Auth routes ---
	e.POST("/v1/auth/signup", authHandler.SignUp)
	e.POST("/v1/auth/signin", authHandler.SignIn)
	e.POST("/v1/auth/block/:national_id", authHandler.Block)
	e.POST("/v1/auth/unblock/:national_id", authHandler.Unblock)

	// --- Ledger routes ---
	e.GET("/v1/accounts/:national_id/balance", ledgerHandler.Balance)
	e.POST("/v1/accounts/:national_id/credit", ledgerHandler.Credit)
	e.POST("/v1/accounts/:national_id/debit", ledgerHandler.Debit)
	e.POST("/v1/accounts/:national_id/logout", ledgerHandler.Logout)

	// --- Health probes and metrics ---
	peer, _ := blocklist.(handler.Pinger)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb, peer)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// NewBlocklistRouter builds the Echo instance for the blocklist service.
func NewBlocklistRouter(db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blocklist_http"))

	// --- Dependencies ---
	blockRepo := mongostore.NewBlockRepository(db)
	blockService := service.NewBlockService(blockRepo, log)
	blocklistHandler := handler.NewBlocklistHandler(blockService)

	// --- Registry routes ---
	e.POST("/v1/blocklist/block", blocklistHandler.Block)
	e.POST("/v1/blocklist/unblock/:national_id", blocklistHandler.Unblock)
	e.GET("/v1/blocklist/is-blocked/:national_id", blocklistHandler.IsBlocked)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, nil, nil)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
