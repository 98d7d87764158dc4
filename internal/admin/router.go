package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/events"
	"github.com/noah-isme/toko-console/internal/health"
	"github.com/noah-isme/toko-console/internal/obs"
)

// Config wires the admin listener.
type Config struct {
	Health   health.Handler
	Journal  *events.Journal
	Gatherer prometheus.Gatherer
	Metrics  *obs.HTTPMetrics
	Logger   zerolog.Logger
}

// NewRouter builds the read-only operator surface: health probes, Prometheus
// metrics and the domain event journal.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)
	r.Use(obs.HTTPObs{Metrics: cfg.Metrics}.Middleware)
	r.Use(requestLogger(cfg.Logger))

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health/live", cfg.Health.Live)
	r.Get("/health/ready", cfg.Health.Ready)
	r.Get("/events", journalHandler(cfg.Journal))

	return otelhttp.NewHandler(r, "admin")
}

func journalHandler(journal *events.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := []events.Event{}
		if journal != nil {
			if topic := strings.TrimSpace(r.URL.Query().Get("topic")); topic != "" {
				list = journal.Topic(topic)
			} else {
				list = journal.Events()
			}
		}
		common.JSON(w, http.StatusOK, map[string]any{"data": list})
	}
}

// secureHeaders marks every admin response as non-embeddable, non-sniffable data.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		headers.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := obs.NewStatusRecorder(w)
			start := time.Now()
			next.ServeHTTP(recorder, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.Status()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("trace_id", obs.TraceID(r.Context())).
				Dur("duration", time.Since(start)).
				Msg("admin_request")
		})
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("admin listener starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		health.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
