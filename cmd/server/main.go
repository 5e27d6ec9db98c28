package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/pawsnclaws/intake-api/internal/api"
	"github.com/pawsnclaws/intake-api/internal/auth"
	"github.com/pawsnclaws/intake-api/internal/config"
	"github.com/pawsnclaws/intake-api/internal/notify"
	"github.com/pawsnclaws/intake-api/internal/payment"
	"github.com/pawsnclaws/intake-api/internal/pkg/distlock"
	"github.com/pawsnclaws/intake-api/internal/pkg/logger"
	"github.com/pawsnclaws/intake-api/internal/repository/postgres"
	"github.com/pawsnclaws/intake-api/internal/service/donation"
	"github.com/pawsnclaws/intake-api/internal/service/intake"
	"github.com/pawsnclaws/intake-api/internal/service/newsletter"
	"github.com/pawsnclaws/intake-api/internal/service/records"
	"github.com/pawsnclaws/intake-api/internal/tenant"
)

// checkPortAvailable fails fast when something else already holds the port.
func checkPortAvailable(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is already in use: %w", addr, err)
	}
	return ln.Close()
}

// extractHost returns the host part of a DSN for logging without credentials.
func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func main() {
	configPath := "config/config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.ShouldRedact())

	if err := checkPortAvailable(cfg.Server.Addr()); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistence is optional; without it every form still validates and
	// notifies.
	var db *sql.DB
	var store records.Store
	if cfg.Database.Enabled() {
		db, err = openDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		store = postgres.NewRecordStore(db)
		logger.Info("database connected", "host", extractHost(cfg.Database.URL))
	} else {
		logger.Warn("DATABASE_URL not set, submissions will not be persisted")
	}

	var redisClient *redis.Client
	var sessions auth.SessionStore
	if cfg.Redis.URL != "" {
		redisClient, err = openRedis(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory sessions", "error", err)
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = auth.NewRedisStore(redisClient)
	} else {
		mem := auth.NewMemoryStore()
		go mem.CleanupExpiredSessions(ctx, 10*time.Minute)
		sessions = mem
	}

	sender, err := newSender(ctx, cfg.Email)
	if err != nil {
		log.Fatalf("Failed to initialize email sender: %v", err)
	}
	renderer, err := notify.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load email templates: %v", err)
	}
	dispatcher := notify.NewDispatcher(renderer, sender)

	tenants := tenant.NewRegistry(cfg.Tenants, cfg.DefaultTenant)
	paymentClient := payment.NewClient(cfg.Stripe)
	if !paymentClient.Configured() {
		logger.Warn("STRIPE_SECRET_KEY not set, donation checkout will fail")
	}

	donations := donation.NewService(paymentClient, store, tenants, dispatcher, cfg.Server.AppURL).
		WithEventLocks(func(key string, ttl time.Duration) distlock.DistLock {
			return distlock.NewLock(redisClient, db, key, ttl)
		})

	services := api.Services{
		Intake:     intake.NewService(store, tenants, dispatcher),
		Newsletter: newsletter.NewService(store, tenants, dispatcher),
		Donations:  donations,
		Webhooks:   payment.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance()),
	}
	if store != nil {
		services.Records = records.NewService(store)
	}

	var authManager *auth.Manager
	if cfg.Auth.Enabled {
		authManager = auth.NewManager(cfg.Auth, cfg.Server.AppURL, sessions)
		if authManager.GoogleEnabled() {
			if err := authManager.ValidateCredentials(ctx); err != nil {
				logger.Warn("google oauth credentials rejected", "error", err)
			}
		}
	} else {
		logger.Warn("admin auth disabled, admin routes will reject every request")
	}

	health := api.NewHealthChecker(db, redisClient, paymentClient.Configured())
	server := api.NewServer(cfg.Server, api.NewHandlers(services), health, authManager)

	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr(), "tenants", len(tenants.All()), "email", cfg.Email.Provider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func newSender(ctx context.Context, cfg config.EmailConfig) (notify.Sender, error) {
	switch cfg.Provider {
	case "ses":
		return notify.NewSESSender(ctx, notify.SESConfig{
			Region:           cfg.Region,
			AccessKey:        cfg.AccessKey,
			SecretKey:        cfg.SecretKey,
			From:             cfg.From,
			ConfigurationSet: cfg.ConfigurationSet,
		})
	case "log":
		logger.Warn("email provider is log, messages will not be delivered")
		return notify.LogSender{}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
