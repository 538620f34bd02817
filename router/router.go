package router

import (
	"context"
	"net/http"

	"pocketledger/api"
	"pocketledger/config"
	_ "pocketledger/docs"
	"pocketledger/logger"
	"pocketledger/middleware"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	JWT          *middleware.JWT
	Users        *service.UserService
	Ledgers      *service.LedgerService
	Transactions *service.TransactionService
	Analysis     *service.AnalysisService
}

// SetupRouter builds the engine. ctx bounds background work such as the rate limiter sweep.
func SetupRouter(ctx context.Context, deps Deps) *gin.Engine {
	cfg := deps.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log.WithComponent("http")))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	{
		authHandler := api.NewAuthHandler(deps.Users)
		users := apiGroup.Group("/users")
		users.Use(middleware.LoginRateLimit(ctx, cfg.Server.LoginRateLimit, cfg.Server.LoginRateWindow))
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
		}

		authorized := apiGroup.Group("")
		authorized.Use(deps.JWT.Auth())
		{
			ledgerHandler := api.NewLedgerHandler(deps.Ledgers)
			ledgers := authorized.Group("/ledgers")
			{
				ledgers.GET("", ledgerHandler.List)
				ledgers.POST("", ledgerHandler.Create)
			}

			transactionHandler := api.NewTransactionHandler(deps.Transactions)
			exportHandler := api.NewExportHandler(deps.Transactions)
			analysisHandler := api.NewAIAnalysisHandler(deps.Analysis)
			transactions := authorized.Group("/transactions")
			{
				transactions.GET("", transactionHandler.List)
				transactions.POST("", transactionHandler.Create)
				transactions.GET("/summary", transactionHandler.Summary)
				transactions.GET("/export", exportHandler.Export)
				transactions.POST("/analyze-ai", analysisHandler.Analyze)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			analyses := authorized.Group("/analyses")
			{
				analyses.GET("", analysisHandler.ListHistory)
				analyses.GET("/:id", analysisHandler.GetHistory)
				analyses.DELETE("/:id", analysisHandler.DeleteHistory)
			}
		}
	}

	return r
}

// CORSMiddleware allows any origin; auth is by bearer token, not cookies.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
