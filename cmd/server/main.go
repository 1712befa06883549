package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"

	"credchat/internal/access"
	accesshandler "credchat/internal/access/handler"
	accessstore "credchat/internal/access/store"
	"credchat/internal/attestation"
	attesthandler "credchat/internal/attestation/handler"
	attestmetrics "credchat/internal/attestation/metrics"
	atteststore "credchat/internal/attestation/store"
	"credchat/internal/chain"
	chainhandler "credchat/internal/chain/handler"
	chainmetrics "credchat/internal/chain/metrics"
	"credchat/internal/idempotency"
	"credchat/internal/invite"
	invitehandler "credchat/internal/invite/handler"
	"credchat/internal/notify"
	"credchat/internal/oracle"
	"credchat/internal/platform/config"
	"credchat/internal/platform/httpserver"
	"credchat/internal/platform/logger"
	"credchat/internal/platform/middleware"
	platformredis "credchat/internal/platform/redis"
	"credchat/internal/registry"
	registryhandler "credchat/internal/registry/handler"
	registrystore "credchat/internal/registry/store"
	"credchat/internal/token"
)

const inviteTTL = 7 * 24 * time.Hour

// main wires dependencies and owns the process lifecycle. Each optional
// backend (postgres, redis, kafka, eth RPC) degrades to an in-process
// fallback or a disabled feature when unconfigured, so a bare `go run`
// brings up a working dev server.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		db  *sql.DB
		err error
	)
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	groupStore, userStore, roomStore, attestStore := buildStores(ctx, db, log)

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	var ledger idempotency.Ledger
	if redisClient != nil {
		defer redisClient.Close()
		ledger = idempotency.NewRedisLedger(redisClient.Client)
	} else {
		log.Warn("redis not configured, using in-process idempotency ledger")
		ledger = idempotency.NewInMemoryLedger()
	}

	var kafkaClient *kgo.Client
	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err = kgo.NewClient(kgo.SeedBrokers(cfg.KafkaBrokers...))
		if err != nil {
			log.Error("kafka client failed", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()
	} else {
		log.Warn("kafka not configured, grant notifications will be dropped")
	}

	var producer notify.Producer
	if kafkaClient != nil {
		producer = kafkaClient
	}
	notifier := notify.New(producer, ledger, cfg.NotifyTopic, log)

	registrySvc := registry.NewService(groupStore, log)
	accessSvc := access.NewService(userStore, roomStore, notifier, log)
	proofOracle := oracle.New(cfg.VerifyingKeyPath)
	attestSvc := attestation.NewService(proofOracle, registrySvc, accessSvc, attestStore, attestmetrics.New(), log)
	tokens := token.NewService(cfg.JWTSigningKey)
	invites := invite.NewService(cfg.JWTSigningKey, inviteTTL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)

	attestHandler := attesthandler.New(attestSvc, log)
	inviteHandler := invitehandler.New(invites, log)

	registryhandler.New(registrySvc, log).Register(router)
	attestHandler.Register(router)
	inviteHandler.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	if cfg.EthRPCURL != "" {
		eth, err := ethclient.DialContext(ctx, cfg.EthRPCURL)
		if err != nil {
			log.Error("eth rpc dial failed", "error", err)
			os.Exit(1)
		}
		defer eth.Close()
		verifier := chain.NewVerifier(eth, accessSvc, cfg.ReceiptTimeout, cfg.ReceiptPollInterval, chainmetrics.New(), log)
		chainhandler.New(verifier, log).Register(router)
	} else {
		log.Warn("eth rpc not configured, room purchase sync disabled")
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))
		attestHandler.RegisterProtected(r)
		inviteHandler.RegisterProtected(r)
		accesshandler.New(accessSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("credchat listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("credchat stopped")
}

// buildStores returns the postgres-backed stores when a database is
// configured, applying each store's DDL, and the in-memory stores otherwise.
func buildStores(ctx context.Context, db *sql.DB, log *slog.Logger) (registrystore.Store, accessstore.UserStore, accessstore.RoomStore, atteststore.Store) {
	if db == nil {
		log.Warn("postgres not configured, using in-memory stores")
		return registrystore.NewInMemory(), accessstore.NewInMemoryUsers(), accessstore.NewInMemoryRooms(), atteststore.NewInMemory()
	}

	groups := registrystore.NewPostgres(db)
	users := accessstore.NewPostgresUsers(db)
	rooms := accessstore.NewPostgresRooms(db)
	attests := atteststore.NewPostgres(db)
	for name, ensure := range map[string]func(context.Context) error{
		"registry":    groups.EnsureSchema,
		"users":       users.EnsureSchema,
		"rooms":       rooms.EnsureSchema,
		"attestation": attests.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			log.Error("schema bootstrap failed", "store", name, "error", err)
			os.Exit(1)
		}
	}
	return groups, users, rooms, attests
}
