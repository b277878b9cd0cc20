package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/clients"
	"storefront-service/config"
	"storefront-service/controllers"
	apperrors "storefront-service/errors"
	"storefront-service/logger"
	"storefront-service/metrics"
	"storefront-service/middleware"
	"storefront-service/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()

	// ── CloudWatch Logs + Metrics ──
	var cwWriter io.Writer
	var metricsClient *metrics.MetricsClient
	if cfg.CloudWatchEnabled {
		cwCtx := context.Background()
		w, err := metrics.NewCloudWatchLogsWriter(cwCtx, cfg.Service)
		if err != nil {
			os.Stderr.WriteString("CloudWatch Logs init failed: " + err.Error() + "\n")
		} else {
			cwWriter = w
		}
		mc, err := metrics.NewMetricsClient(cwCtx, cfg.Service, true)
		if err != nil {
			os.Stderr.WriteString("CloudWatch Metrics init failed: " + err.Error() + "\n")
		} else {
			metricsClient = mc
		}
	}

	logger.InitializeWithWriter(cfg.AppEnv, cwWriter)
	defer logger.Sync()

	opts := []clients.RequestOption{}
	if cfg.AuthHeader != "" {
		opts = append(opts, clients.WithHeader("Authorization", cfg.AuthHeader))
	}
	if metricsClient != nil {
		opts = append(opts, clients.WithMetrics(metricsClient))
	}
	api := clients.NewRequestClient(cfg.APIBaseURL, cfg.RequestTimeout, opts...)

	cartClient := clients.NewCartClient(api, cfg.CartModule, logger.Log.Named("cart"))
	orderClient := clients.NewOrderClient(api)
	controller := controllers.NewStorefrontController(cartClient, orderClient)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, 10*time.Minute)))

	// Typed nil must not reach the middleware as a non-nil interface.
	var recorder middleware.Recorder
	if metricsClient != nil {
		recorder = metricsClient
	}
	r.Use(middleware.Metrics(recorder, metrics.MetricHTTPRequests, metrics.MetricHTTPLatency, metrics.MetricHTTPErrors))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, controller)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("storefront service listening",
			zap.String("port", cfg.Port),
			zap.String("api_base_url", cfg.APIBaseURL),
			zap.String("cart_module", cfg.CartModule),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown error", zap.Error(err))
	}
}
