package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"usuarios/docs"
	"usuarios/internal/auth"
	"usuarios/internal/cache"
	"usuarios/internal/config"
	"usuarios/internal/db"
	"usuarios/internal/handler"
	"usuarios/internal/logging"
	"usuarios/internal/repository"
	"usuarios/internal/router"
	"usuarios/internal/service"
)

func newRootCmd() *cobra.Command {
	var port string

	root := &cobra.Command{
		Use:           "usuarios-server",
		Short:         "User registration and login API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), port)
		},
	}
	root.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the usuarios table and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate()
		},
	})
	return root
}

func setup() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	gormDB, err := db.NewMySQL(cfg.DSN(), db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
		PingTimeout:     cfg.DBConnectTimeout,
		Logger:          log,
	})
	if err != nil {
		log.Error("database init", "err", err)
		return nil, nil, nil, err
	}
	log.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)
	return cfg, log, gormDB, nil
}

func runMigrate() error {
	_, log, gormDB, err := setup()
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		log.Error("migrate", "err", err)
		return err
	}
	log.Info("migrations completed")
	return nil
}

func runServe(ctx context.Context, portFlag string) error {
	cfg, log, gormDB, err := setup()
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if portFlag != "" {
		cfg.ServerPort = portFlag
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			log.Error("migrate", "err", err)
			return err
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable, lookups will hit the database", "addr", cfg.RedisAddr, "err", err)
	}

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Error("hasher init", "err", err)
		return err
	}

	userRepo := repository.NewCachedUserRepository(repository.NewUserRepository(gormDB), cacheClient, cfg.UserCacheTTL)
	authService := service.NewAuthService(userRepo, hasher, cfg.DBQueryTimeout)
	authHandler := handler.NewAuthHandler(authService, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(e, log, authHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr, "swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server start", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
		return err
	}
	return nil
}
