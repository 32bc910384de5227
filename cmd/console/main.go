package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/northcms/console-gateway/internal/api"
	"github.com/northcms/console-gateway/internal/api/handler"
	"github.com/northcms/console-gateway/internal/core/ports"
	"github.com/northcms/console-gateway/internal/core/service"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
	"github.com/northcms/console-gateway/internal/infrastructure/config"
	"github.com/northcms/console-gateway/internal/infrastructure/store/mongostore"
	"github.com/northcms/console-gateway/internal/infrastructure/store/redisstore"
	"github.com/northcms/console-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Session store backend ---
	var (
		sessionStore ports.SessionStore
		storeCheck   handler.DependencyCheck
	)
	switch cfg.SessionStore {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		sessionStore = mongostore.NewSessionStore(db, cfg.TokenKey, cfg.UserKey)
		storeCheck = handler.DependencyCheck{
			Name:  "mongodb",
			Check: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}
	default:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		sessionStore = redisstore.NewSessionStore(rdb, cfg.TokenKey, cfg.UserKey)
		storeCheck = handler.DependencyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}
	}

	// --- Session manager over the management API ---
	client := apiclient.New(cfg.APIBaseURL, 0, log)
	sessions := service.NewSessionManager(sessionStore, client, log)

	// Restore before any guarded route can render: the guard blocks on the
	// loading state until this resolves.
	sessions.Restore(ctx)

	e, err := api.NewRouter(api.Deps{
		Sessions:   sessions,
		Client:     client,
		Log:        log,
		StoreCheck: storeCheck,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("api", cfg.APIBaseURL).
		Str("store", cfg.SessionStore).
		Msg("console gateway started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
