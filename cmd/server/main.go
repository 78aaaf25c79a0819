package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/auth"
	"github.com/quochao170402/cekspek/configs"
	"github.com/quochao170402/cekspek/internal/catalog"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		panic("Error load config: " + err.Error())
	}

	logger, err := configs.NewLogger(cfg.App)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *configs.Config, logger *zap.Logger) error {
	if err := cfg.Auth.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := configs.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	if cfg.Auth.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}

	if !cfg.App.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	configs.SetupRoutes(router, configs.Dependencies{
		Catalog:     catalog.NewService(store, logger),
		Admin:       auth.Admin{Email: cfg.Auth.AdminEmail, PasswordHash: cfg.Auth.AdminPasswordHash},
		Tokens:      auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessExpire, cfg.Auth.RefreshExpire),
		Logger:      logger,
		CORSOrigins: cfg.App.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.App.AppPort), zap.String("store", store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
