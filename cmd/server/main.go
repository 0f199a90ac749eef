// Command server runs the trending dashboard HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/trendlens/youtube-trending-go/internal/auth"
	"github.com/trendlens/youtube-trending-go/internal/config"
	"github.com/trendlens/youtube-trending-go/internal/credstore"
	"github.com/trendlens/youtube-trending-go/internal/handler"
	"github.com/trendlens/youtube-trending-go/internal/middleware"
	"github.com/trendlens/youtube-trending-go/internal/model"
	"github.com/trendlens/youtube-trending-go/internal/service"
	"github.com/trendlens/youtube-trending-go/internal/youtube"
	"github.com/trendlens/youtube-trending-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// The API key must be present before any fetch is attempted.
	if err := cfg.Validate(); err != nil {
		logger.Log.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	store := loadCredentialStore(cfg)

	client, err := youtube.NewClient(cfg.YouTube.APIKey,
		youtube.WithBaseURL(cfg.YouTube.BaseURL),
		youtube.WithTimeout(cfg.YouTube.Timeout),
		youtube.WithMaxResults(cfg.YouTube.MaxResults),
	)
	if err != nil {
		logger.Log.Error("failed to initialize YouTube client", zap.Error(err))
		os.Exit(1)
	}

	svc := service.NewTrendingService(client, cfg.YouTube.CacheTTL)
	sessions := auth.NewManager(cfg.Auth.CookieName, []byte(cfg.Auth.CookieKey), cfg.Auth.CookieMaxAge())

	isAdmin := func(username string) bool {
		if cfg.Auth.IsAdmin(username) {
			return true
		}
		return store != nil && store.IsAdmin(username)
	}

	router := buildRouter(cfg, store, svc, sessions, isAdmin)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	logger.Log.Info("server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("default_region", cfg.YouTube.DefaultRegion),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
		zap.String("version", handler.AppVersion),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}

// loadCredentialStore loads and migrates the credential file. With auth
// enabled, a missing or empty store is fatal before any route is served.
func loadCredentialStore(cfg *config.Config) *credstore.Store {
	store, err := credstore.Load(cfg.Auth.CredentialsFile)
	if err != nil {
		logger.Log.Error("failed to load credential file", zap.Error(err))
		os.Exit(1)
	}

	if err := auth.EnsureCredentials(cfg.Auth.Enabled, store); err != nil {
		logger.Log.Error("auth misconfigured", zap.Error(err))
		os.Exit(1)
	}

	if store == nil {
		return nil
	}

	// One-time plaintext upgrade; a read-only file degrades to a warning.
	migrated, err := store.MigratePlaintext()
	if err != nil {
		var persistErr *model.PersistenceError
		if !errors.As(err, &persistErr) {
			logger.Log.Error("credential migration failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Log.Warn("migrated credentials could not be persisted; admin console disabled",
			zap.Error(err),
		)
	}
	if migrated > 0 {
		logger.Log.Info("migrated plaintext credentials", zap.Int("count", migrated))
	}
	return store
}

func buildRouter(
	cfg *config.Config,
	store *credstore.Store,
	svc *service.TrendingService,
	sessions *auth.Manager,
	isAdmin func(string) bool,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(cfg, store)
	trendingHandler := handler.NewTrendingHandler(svc, cfg.YouTube.DefaultRegion)
	authHandler := handler.NewAuthHandler(store, sessions, isAdmin)
	adminHandler := handler.NewAdminHandler(store, isAdmin)
	sessionAuth := middleware.NewSessionAuth(sessions, cfg.Auth.Enabled)

	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Auth.Enabled {
		router.POST("/api/auth/login", authHandler.Login)
	}

	api := router.Group("/api", sessionAuth.Middleware())
	api.GET("/trending", trendingHandler.GetTrending)
	api.GET("/regions", trendingHandler.ListRegions)
	api.POST("/refresh", trendingHandler.Refresh)
	api.GET("/auth/session", authHandler.Session)

	if cfg.Auth.Enabled {
		api.POST("/auth/logout", authHandler.Logout)

		admin := api.Group("/admin", adminHandler.RequireAdmin())
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users", adminHandler.AddUser)
		admin.PUT("/users/:username/password", adminHandler.ChangePassword)
	}

	return router
}
