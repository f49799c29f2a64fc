package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kargopanel/mng-bridge/internal/api"
	"github.com/kargopanel/mng-bridge/internal/infrastructure/carrier/mng"
	mongodb "github.com/kargopanel/mng-bridge/internal/infrastructure/db/mongo"
	redisdb "github.com/kargopanel/mng-bridge/internal/infrastructure/db/redis"
	"github.com/kargopanel/mng-bridge/internal/infrastructure/storefront/shopify"
	"github.com/kargopanel/mng-bridge/internal/pkg/config"
	"github.com/kargopanel/mng-bridge/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "mng-bridge",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := mongodb.NewShipmentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("shipment index creation failed")
	}
	if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("user index creation failed")
	}

	// --- Outbound clients ---
	carrierClient := mng.NewClient(mng.Config{
		BaseURL:        cfg.MNG.BaseURL,
		APIKey:         cfg.MNG.APIKey,
		APISecret:      cfg.MNG.APISecret,
		CustomerNumber: cfg.MNG.CustomerNumber,
		Password:       cfg.MNG.Password,
		Timeout:        cfg.MNG.Timeout,
	}, log)
	storefrontClient := shopify.NewClient(cfg.Shopify.Timeout, log)

	// --- Router and background workers ---
	e, dispatcher := api.NewRouter(api.Deps{
		DB:         db,
		Redis:      rdb,
		Carrier:    carrierClient,
		Directory:  carrierClient,
		Storefront: storefrontClient,
		JWTSecret:  cfg.JWTSecret,
		Workers:    cfg.Workers,
		Log:        log,
	})
	dispatcher.Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
