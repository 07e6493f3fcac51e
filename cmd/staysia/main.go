package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staysia/internal/app/middleware"
	"staysia/internal/app/outbox"
	"staysia/internal/app/policies"
	"staysia/internal/app/uow"
	"staysia/internal/app/wiring"
	domaincalendar "staysia/internal/domain/calendar"
	"staysia/internal/infra/cache/redis"
	"staysia/internal/infra/config"
	"staysia/internal/infra/db/mongo"
	"staysia/internal/infra/db/postgres"
	"staysia/internal/infra/fixtures"
	"staysia/internal/infra/geocoding"
	ginserver "staysia/internal/infra/http/gin"
	"staysia/internal/infra/obs"
	infraoutbox "staysia/internal/infra/outbox"
	infrapricing "staysia/internal/infra/pricing"
	"staysia/internal/infra/security"
	"staysia/internal/infra/storage/memory"
	"staysia/internal/infra/storage/s3"
	"staysia/internal/infra/validation"
)

func main() {
	hashHostKey := flag.String("hash-host-key", "", "print the bcrypt hash of the given host key and exit")
	flag.Parse()
	if *hashHostKey != "" {
		hash, err := security.BcryptHasher{}.Hash(*hashHostKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev", "info").Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application init failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	loader := fixtures.Loader{UoWFactory: app.uowFactory, Logger: logger, Seed: cfg.PricingSeed}
	if _, err := loader.Load(ctx, cfg.FixturesPath); err != nil {
		logger.Warn("fixtures load failed", "error", err, "path", cfg.FixturesPath)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Probes: app.probes}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers   ginserver.Handlers
	uowFactory uow.UoWFactory
	probes     map[string]obs.Probe
	closers    []func()
}

func (a application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApplication connects every configured backend. Unset backends fall back to in-memory adapters.
func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	app := application{probes: map[string]obs.Probe{}}

	memFactory := memory.NewFactory()
	var factory uow.UoWFactory = memFactory
	var box outbox.Outbox = memory.NewOutbox(logger)
	var idempotency middleware.IdempotencyStore = memory.NewIdempotencyStore()
	var sessions domaincalendar.SessionStore = memory.NewSessionStore(cfg.SessionTTL)
	var cache policies.DetailsCache = memory.NewDetailsCache(cfg.DetailsCacheTTL)
	var images policies.ImageStorage

	if cfg.MongoURI != "" {
		client, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return app, fmt.Errorf("mongo: %w", err)
		}
		app.closers = append(app.closers, func() { _ = client.Close(context.Background()) })
		app.probes["mongo"] = client.Ping
		memFactory.BookingRepo = mongo.NewBookingRepository(client.DB)
		factory = memFactory
		box = infraoutbox.NewStore(client.DB)
		idempotency = mongo.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
	}

	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return app, fmt.Errorf("postgres: %w", err)
		}
		app.closers = append(app.closers, func() { _ = db.Close() })
		if err := postgres.Migrate(db); err != nil {
			return app, fmt.Errorf("postgres migrate: %w", err)
		}
		app.probes["postgres"] = db.PingContext
		factory = postgres.Factory{DB: db, BookingRepo: memFactory.BookingRepo}
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return app, fmt.Errorf("redis: %w", err)
		}
		app.closers = append(app.closers, func() { _ = client.Close() })
		app.probes["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		sessions = redis.NewSessionStore(client, cfg.SessionTTL)
		cache = redis.NewDetailsCache(client, cfg.DetailsCacheTTL)
	}

	if cfg.S3Endpoint != "" {
		store, err := s3.NewImageStore(s3.Config{
			Endpoint:      cfg.S3Endpoint,
			UseSSL:        cfg.S3UseSSL,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicEndpoint,
		}, logger)
		if err != nil {
			return app, fmt.Errorf("s3: %w", err)
		}
		app.probes["s3"] = store.Ping
		images = store
	}

	var pricingSource policies.PricingSource = &infrapricing.LocalSource{UoWFactory: factory}
	if cfg.PricingMode == config.PricingModeHTTP {
		pricingSource = &infrapricing.HTTPSource{
			Client:   &http.Client{Timeout: cfg.PricingTimeout},
			Endpoint: cfg.PricingURL,
			Logger:   logger,
		}
	}

	buses, err := wiring.Build(wiring.Deps{
		UoWFactory:  factory,
		Sessions:    sessions,
		Outbox:      box,
		Idempotency: idempotency,
		Validator:   validation.New(),
		Pricing:     pricingSource,
		Cache:       cache,
		Images:      images,
		Geocoder: &geocoding.Nominatim{
			Client:    &http.Client{Timeout: cfg.GeocoderTimeout},
			BaseURL:   cfg.GeocoderURL,
			UserAgent: cfg.GeocoderUserAgent,
		},
		AutocompleteDelay: cfg.AutocompleteDelay,
		EventSource:       infraoutbox.DefaultSource,
		Logger:            logger,
	})
	if err != nil {
		return app, err
	}

	var verifier *security.JWTVerifier
	if cfg.SessionSecret != "" {
		verifier = security.NewJWTVerifier(cfg.SessionSecret)
	} else {
		logger.Warn("SESSION_SECRET not set, signed-in endpoints will reject every request")
	}
	hostKey := security.HostKeyChecker{Hash: cfg.HostKeyHash}

	app.uowFactory = factory
	app.handlers = ginserver.Handlers{
		Property: ginserver.PropertyHandler{Commands: buses.Commands, Queries: buses.Queries, Logger: logger},
		Calendar: ginserver.CalendarHandler{Commands: buses.Commands, Queries: buses.Queries, Logger: logger},
		Booking:  ginserver.BookingHandler{Queries: buses.Queries, Logger: logger},
		Lookup:   ginserver.LookupHandler{Queries: buses.Queries, Logger: logger},
	}
	if hostKey.Enabled() {
		app.handlers.HostKey = ginserver.HostKey(hostKey)
	} else {
		logger.Warn("HOST_KEY_HASH not set, host endpoints are closed")
	}
	if verifier != nil {
		app.handlers.AuthMiddleware = ginserver.AuthMiddleware{Verifier: verifier, Logger: logger}.Handle
	}
	return app, nil
}
