// @title        Promo Game Play Gate API
// @version      1.0
// @description  Registers participants by phone number and grants each one a single play.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/promoplay/playgate/internal/api"
	"github.com/promoplay/playgate/internal/api/handler"
	"github.com/promoplay/playgate/internal/core/ports"
	"github.com/promoplay/playgate/internal/core/service"
	"github.com/promoplay/playgate/internal/infrastructure/config"
	mongodb "github.com/promoplay/playgate/internal/infrastructure/db/mongo"
	redisdb "github.com/promoplay/playgate/internal/infrastructure/db/redis"
	"github.com/promoplay/playgate/internal/infrastructure/queue"
	"github.com/promoplay/playgate/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "playgate",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found, reading environment variables directly")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
		OpTimeout:      cfg.Mongo.OpTimeout,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// Redis only backs the prize cache; the service runs without it.
	var (
		prizeCache ports.PrizeCache
		redisPing  handler.PingFunc
	)
	if cfg.Redis.PrizeCacheTTL > 0 {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, prize cache disabled")
		} else {
			defer func() { _ = rdb.Close() }()
			prizeCache = redisdb.NewPrizeCache(rdb, cfg.Redis.PrizeCacheTTL)
			redisPing = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewAuditDispatcher(
		cfg.AuditWorkers,
		mongodb.NewPlayAuditRepository(db, cfg.Mongo.OpTimeout),
		logger.Component("audit"),
	)
	dispatcher.Start(auditCtx)
	defer func() {
		stopAudit()
		dispatcher.Wait()
	}()

	participants := service.NewParticipantService(
		mongodb.NewParticipantRepository(db, cfg.Mongo.OpTimeout),
		dispatcher,
		logger.Component("registry"),
	)
	prizes := service.NewPrizeService(
		mongodb.NewPrizeRepository(db, cfg.Mongo.OpTimeout),
		prizeCache,
		logger.Component("prizes"),
	)

	e := api.NewRouter(api.Deps{
		Participants:   participants,
		Prizes:         prizes,
		MongoPing:      func(ctx context.Context) error { return mongodb.Ping(ctx, db) },
		RedisPing:      redisPing,
		Logger:         log,
		Prefix:         cfg.APIPrefix,
		AllowedOrigins: cfg.AllowedOrigins(),
		RequestTimeout: cfg.RequestTimeout,
		ExposeErrors:   cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("prefix", cfg.APIPrefix).Msg("server listening")
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

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
