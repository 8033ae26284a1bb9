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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"namevault/internal/funds"
	jwttoken "namevault/internal/jwt_token"
	"namevault/internal/platform/config"
	"namevault/internal/platform/httpserver"
	"namevault/internal/platform/logger"
	"namevault/internal/platform/middleware"
	platformredis "namevault/internal/platform/redis"
	"namevault/internal/ratelimit"
	"namevault/internal/registrar/escrow"
	"namevault/internal/registrar/events"
	"namevault/internal/registrar/handler"
	registrarmetrics "namevault/internal/registrar/metrics"
	"namevault/internal/registrar/service"
	"namevault/internal/registrar/store"
	"namevault/internal/registrar/token"
	id "namevault/pkg/domain"
	"namevault/pkg/platform/reentrancy"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store selection: PostgreSQL when configured, in-memory otherwise.
	var (
		recordStore store.RecordStore
		tokenStore  token.Store
		stakeStore  escrow.Store
		serviceOpts []service.Option
	)
	if cfg.Postgres.URL != "" {
		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		recordStore = store.NewPostgres(db)
		tokenStore = token.NewPostgres(db)
		stakeStore = escrow.NewPostgres(db)
		serviceOpts = append(serviceOpts, service.WithTx(store.NewSQLTx(db)))
		log.Info("using postgres stores")
	} else {
		recordStore = store.NewInMemoryStore()
		tokenStore = token.NewInMemoryStore()
		stakeStore = escrow.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	// The in-process ledger is the funds medium. The escrow pool account
	// holds every live stake.
	ledger := funds.NewLedger("escrow-pool")

	guard := reentrancy.NewGuard()
	issuer := token.NewIssuer(tokenStore)
	esc := escrow.New(stakeStore, ledger, guard, log)

	publisher, err := events.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer publisher.Close()
		serviceOpts = append(serviceOpts, service.WithEvents(publisher))
		log.Info("publishing domain events", "topic", cfg.Kafka.Topic)
	}

	serviceOpts = append(serviceOpts,
		service.WithLogger(log),
		service.WithMetrics(registrarmetrics.New()),
	)
	registrar, err := service.NewService(
		recordStore, issuer, esc, guard,
		id.Quantity(cfg.InitialCost),
		serviceOpts...,
	)
	if err != nil {
		return err
	}

	jwt := jwttoken.NewService(cfg.JWTSigningKey, "namevault", "namevault")

	// Rate limiting shares state through Redis when configured so replicas
	// enforce one window per account.
	var limiterStore ratelimit.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		limiterStore = ratelimit.NewRedisStore(redisClient.Client)
		log.Info("using redis rate limiting")
	} else {
		limiterStore = ratelimit.NewInMemoryStore()
	}
	limiter := ratelimit.Middleware(limiterStore, cfg.RateLimit.ClaimLimit, cfg.RateLimit.ClaimWindow, log)

	h := handler.New(registrar, log, jwt, handler.WithClaimLimiter(limiter))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	h.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(redisClient))

	srv := httpserver.New(cfg.Addr, router)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting namevault", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func healthz(redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
