package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "grota_financiamento/docs" // swag-generated OpenAPI description
	request "grota_financiamento/internal/adapter/http/dto/request"
	"grota_financiamento/internal/adapter/http/handlers"
	"grota_financiamento/internal/adapter/http/middlewares"
	"grota_financiamento/internal/infrastructure/config"
	"grota_financiamento/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Run will start the server and block until SIGINT/SIGTERM.
func Run() {
	cfg := config.Load()
	logger.Configure(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApplication(ctx, cfg)
	if err != nil {
		logger.Get().WithError(err).Fatal("[app][routes] failed to build application")
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(cfg, app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Get().WithField("port", cfg.Port).Info("[app][routes] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().WithError(err).Fatal("[app][routes] failed to startup the application")
		}
	}()

	<-ctx.Done()
	logger.Get().Info("[app][routes] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().WithError(err).Warn("[app][routes] graceful shutdown failed")
	}
}

// NewRouter mounts every route of the API on a fresh engine.
func NewRouter(cfg config.Config, app *Application) *gin.Engine {
	if err := registerValidators(); err != nil {
		logger.Get().WithError(err).Fatal("[app][routes] failed to register validators")
	}

	router := gin.New()
	setMiddlewares(router, cfg)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	if app.Redis != nil {
		v1.Use(middlewares.Idempotency(app.Redis, cfg.IdempotencyTTL))
	}
	addPingRoutes(v1)
	addProposalRoutes(v1, app.Proposals, app.Timeline)
	addContractRoutes(v1, app.Contracts, app.Payments)
	addLookupRoutes(v1, app.Lookups)

	return router
}

func setMiddlewares(router *gin.Engine, cfg config.Config) {
	router.Use(gin.Logger())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(cfg.CORSAllowedOrigins))
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return request.RegisterValidators(v)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}
