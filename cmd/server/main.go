package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"remit/internal/audit"
	ledgercache "remit/internal/ledger/cache"
	ledgerhandler "remit/internal/ledger/handler"
	ledgermetrics "remit/internal/ledger/metrics"
	ledgerservice "remit/internal/ledger/service"
	ledgermemory "remit/internal/ledger/store/memory"
	ledgerpg "remit/internal/ledger/store/postgres"
	"remit/internal/platform/config"
	"remit/internal/platform/httpserver"
	"remit/internal/platform/logger"
	"remit/internal/platform/middleware"
	platformredis "remit/internal/platform/redis"
	refdatahandler "remit/internal/refdata/handler"
	refdataservice "remit/internal/refdata/service"
	refdatamemory "remit/internal/refdata/store/memory"
	refdatapg "remit/internal/refdata/store/postgres"
	"remit/pkg/platform/httputil"
	"remit/pkg/platform/tx"
)

// main wires stores, services and workers. Business rules live in the
// internal service packages; this stays assembly only.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var (
		ledgerStore  ledgerservice.Store
		refdataStore refdataservice.Store
		auditStore   audit.Store
		runner       tx.Runner = tx.Nop{}
		db           *sql.DB
	)

	if cfg.Postgres.URL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		ledgerStore = ledgerpg.New(db)
		refdataStore = refdatapg.New(db)
		auditStore = audit.NewPostgresStore(db)
		runner = ledgerpg.NewRunner(db)
		log.Info("using postgres stores")
	} else {
		ledgerStore = ledgermemory.NewInMemory()
		refdataStore = refdatamemory.NewInMemory()
		auditStore = audit.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}

	ledgerOpts := []ledgerservice.Option{
		ledgerservice.WithLogger(log),
		ledgerservice.WithAuditPublisher(audit.NewPublisher(auditStore)),
		ledgerservice.WithMetrics(ledgermetrics.New()),
		ledgerservice.WithRunner(runner),
	}
	if redisClient != nil {
		defer redisClient.Close()
		ledgerOpts = append(ledgerOpts,
			ledgerservice.WithStateCache(ledgercache.NewStateCache(redisClient.Client, cfg.Redis.StateTTL, log)))
	}
	ledgerSvc := ledgerservice.New(ledgerStore, ledgerOpts...)
	refdataSvc := refdataservice.New(refdataStore, refdataservice.WithLogger(log))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	ledgerhandler.New(ledgerSvc, log).Register(router)
	refdatahandler.New(refdataSvc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(db, redisClient))

	relay, err := audit.NewRelay(auditStore, cfg.Kafka, log)
	if err != nil {
		log.Error("start outbox relay", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting remit server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if relay != nil {
		group.Go(func() error {
			err := relay.Run(groupCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func healthz(db *sql.DB, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := map[string]string{"status": "ok"}
		code := http.StatusOK

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				status["status"] = "degraded"
				status["postgres"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, code, status)
	}
}
