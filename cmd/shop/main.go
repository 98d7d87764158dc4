package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/toko-console/internal/admin"
	"github.com/noah-isme/toko-console/internal/auth"
	"github.com/noah-isme/toko-console/internal/catalog"
	"github.com/noah-isme/toko-console/internal/checkout"
	"github.com/noah-isme/toko-console/internal/config"
	"github.com/noah-isme/toko-console/internal/events"
	"github.com/noah-isme/toko-console/internal/fulfillment"
	"github.com/noah-isme/toko-console/internal/health"
	"github.com/noah-isme/toko-console/internal/notify"
	"github.com/noah-isme/toko-console/internal/obs"
	"github.com/noah-isme/toko-console/internal/repo"
	"github.com/noah-isme/toko-console/internal/resilience"
	"github.com/noah-isme/toko-console/internal/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel, os.Stderr).With().Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	resilience.MustRegisterMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	if cfg.EnableTracing {
		shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
			ServiceName:   "toko-console",
			Endpoint:      cfg.OTLPEndpoint,
			SamplingRatio: cfg.SamplingRatio,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	hasher, err := auth.NewHasher(cfg.PasswordHasher)
	if err != nil {
		logger.Fatal().Err(err).Msg("password hasher")
	}
	adminCredential, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash admin password")
	}
	store := repo.New(repo.Options{
		AdminEmail:      cfg.AdminEmail,
		AdminNickname:   cfg.AdminNickname,
		AdminCredential: adminCredential,
		Verifier:        hasher,
	})

	journal := &events.Journal{}
	bus := &events.Bus{
		Journal:   journal,
		Notifiers: []events.Notifier{events.LogNotifier{Logger: logger}},
	}
	breaker := resilience.NewBreaker(resilience.BreakerConfig{
		MinRequests:  cfg.PaymentBreaker.MinRequests,
		FailureRatio: cfg.PaymentBreaker.FailureRatio,
		OpenFor:      cfg.PaymentBreaker.OpenFor,
		Target:       "payment",
		Logger:       logger,
	})

	if cfg.AdminEnabled() {
		router := admin.NewRouter(admin.Config{
			Health:  health.Handler{Store: store},
			Journal: journal,
			Metrics: obs.NewHTTPMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer),
			Logger:  logger,
		})
		go func() {
			if err := admin.Serve(ctx, cfg.AdminAddr, router, logger); err != nil {
				logger.Error().Err(err).Msg("admin listener exited")
			}
		}()
	}

	sh := shell.New(shell.Config{
		In:          os.Stdin,
		Out:         os.Stdout,
		Auth:        auth.NewService(store, hasher),
		Catalog:     catalog.NewService(store, bus, logger),
		Checkout:    &checkout.Service{Store: store, Mail: notify.ConsoleMail{Out: os.Stdout}, Events: bus, Logger: logger},
		Fulfillment: &fulfillment.Service{Store: store, Events: bus, Logger: logger},
		Breaker:     breaker,
		Currency:    cfg.CurrencySymbol,
		Logger:      logger,
	})
	if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("shell exited")
	}
	health.SetReady(false)
}
