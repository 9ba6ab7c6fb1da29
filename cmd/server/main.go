package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/audit"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/auth"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/election"
	jwttoken "github.com/karthik14985-bit/voting-system-by-Karthi/internal/jwt_token"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/config"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/httpserver"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/logger"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/metrics"
	platformredis "github.com/karthik14985-bit/voting-system-by-Karthi/internal/platform/redis"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/ratelimit"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/storage"
	httptransport "github.com/karthik14985-bit/voting-system-by-Karthi/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx := context.Background()

	var (
		kv       storage.KV
		notifier storage.Notifier
		sessions auth.SessionStore
	)
	switch {
	case cfg.RedisURL != "":
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		backend := storage.NewRedis(client.Client)
		kv, notifier = backend, backend
		sessions = auth.NewRedisSessionStore(client.Client)
		log.Info("using redis storage backend")
	case cfg.PostgresDSN != "":
		backend, err := storage.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer backend.Close()
		kv = backend
		sessions = auth.NewInMemorySessionStore()
		log.Info("using postgres storage backend")
	default:
		backend := storage.NewMemory()
		kv, notifier = backend, backend
		sessions = auth.NewInMemorySessionStore()
		log.Info("using in-memory storage backend")
	}

	var gatewayOpts []election.GatewayOption
	if cfg.SimulatedLatency {
		gatewayOpts = append(gatewayOpts, election.WithSimulatedLatency(cfg.LatencyMin, cfg.LatencyMax))
	}
	gateway := election.NewGateway(kv, gatewayOpts...)
	electionSvc := election.NewService(gateway, audit.NewPublisher(gateway), m, log)

	// A failed initial load degrades to empty mirrors; the service keeps
	// running and the next change signal or restart retries.
	if err := electionSvc.Load(ctx); err != nil {
		log.Warn("initial data load failed, starting with empty mirrors", "error", err)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	limiter := ratelimit.NewLoginLimiter(cfg.LoginMaxFailures, cfg.LoginLockout)
	authSvc := auth.NewService(electionSvc, sessions, jwtService, limiter, log,
		cfg.AdminEmail, cfg.AdminPassword, cfg.SessionTTL)

	router := httptransport.NewRouter(
		httptransport.NewAuthHandler(authSvc, log),
		httptransport.NewElectionHandler(electionSvc, log),
		jwttoken.NewJWTServiceAdapter(jwtService),
		m,
		log,
	)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if notifier != nil {
		go func() {
			if err := electionSvc.Watch(watchCtx, notifier); err != nil && watchCtx.Err() == nil {
				log.Error("change watcher stopped", "error", err)
			}
		}()
	}

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting election service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
