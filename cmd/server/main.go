package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contacts_backend/internal/app/di"
	"contacts_backend/internal/app/router"
	"contacts_backend/internal/config"
	authadapters "contacts_backend/internal/feature/auth/adapters"
	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	authusecase "contacts_backend/internal/feature/auth/usecase"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	contactusecase "contacts_backend/internal/feature/contacts/usecase"
	platformdb "contacts_backend/internal/platform/db"
	jwtmw "contacts_backend/internal/platform/jwt"
	"contacts_backend/internal/platform/logger"
	"contacts_backend/internal/platform/metrics"
	"contacts_backend/internal/platform/password"
	platformredis "contacts_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.Open(platformdb.Config{
		Driver:         cfg.Database.Driver,
		SQLitePath:     cfg.Database.SQLitePath,
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Name:           cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if cfg.Database.RunMigrations {
		if err := platformdb.Migrate(ctx, db, cfg.Database.Driver, di.Models()...); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		tmp, err := platformredis.NewRedisClient(ctx, platformredis.Options{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password,
		}, log)
		if err != nil {
			log.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", zap.Error(err))
				}
			}()
		}
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	contactRepo := di.NewContactRepository(db, rdb, cfg.Redis.CacheTTL, log)

	tokens := jwtmw.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Usecase
	authUC := authusecase.NewAuthUsecase(
		userRepo,
		password.NewBcryptHasher(password.DefaultCost),
		tokens,
	)
	contactUC := contactusecase.NewContactUsecase(contactRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, log)
	contactH := contacthandler.NewContactHandler(contactUC, log)

	r := router.NewRouter(log, httpMetrics, cfg.App.CORSAllowedOrigins, tokens, authH, contactH)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
