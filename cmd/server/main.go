package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"landregistry/internal/audit"
	"landregistry/internal/docstore"
	httpapi "landregistry/internal/http"
	jwttoken "landregistry/internal/jwt_token"
	"landregistry/internal/ledger"
	"landregistry/internal/ledger/gateway"
	"landregistry/internal/platform/config"
	"landregistry/internal/platform/httpserver"
	"landregistry/internal/platform/logger"
	"landregistry/internal/platform/metrics"
	platformredis "landregistry/internal/platform/redis"
	"landregistry/internal/registry/handler"
	"landregistry/internal/registry/service"
	"landregistry/internal/registry/store"
)

// main wires the backends selected by configuration. Every backend setting
// left empty selects the in-process implementation, so a bare binary still
// serves the full API.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var deeds interface {
		service.DeedStore
		service.VerificationStore
	}
	if cfg.Postgres.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		deeds = store.NewPostgres(pool)
		log.Info("deed store: postgres")
	} else {
		deeds = store.NewMemory()
		log.Warn("deed store: in-memory, records do not survive restarts")
	}

	var live ledger.Ledger
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis client init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		live = ledger.NewRedis(redisClient.Client)
	}
	gw := gateway.New(ctx, live, gateway.WithLogger(log))

	documents := docstore.New(ctx, cfg.IPFS.URL, cfg.IPFS.Timeout, log)

	auditStore := audit.NewInMemoryStore()
	var sink audit.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit sink: kafka", "topic", cfg.Kafka.Topic)
	}
	inbox := make(chan audit.Event, audit.DefaultInboxSize)
	publisher := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(auditStore, sink, inbox, log)

	svc := service.New(deeds, deeds, documents, gw,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(metrics.New()),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "landregistry", "landregistry")
	router := httpapi.NewRouter(handler.New(svc, log), jwtService, log, gw.Degraded)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		log.Info("starting land registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
