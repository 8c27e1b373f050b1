package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/external/nhlapi"
	"github.com/riskibarqy/nhl-due-tracker/internal/config"
	"github.com/riskibarqy/nhl-due-tracker/internal/interfaces/report"
	"github.com/riskibarqy/nhl-due-tracker/internal/observability"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/cache"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/logging"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/resilience"
	"github.com/riskibarqy/nhl-due-tracker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	cacheKeyPrefix   = "nhl-due-tracker:"
	redisDialTimeout = 2 * time.Second
	redisIOTimeout   = time.Second
)

var appTracer = otel.Tracer("nhl-due-tracker/internal/app")

// App wires one evaluation run: provider client, cache, evaluator and report.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	service *usecase.DueService
	closers []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{cfg: cfg, logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	store := a.buildCache(ctx)

	client := nhlapi.NewClient(nhlapi.ClientConfig{
		HTTPClient:   newHTTPClient(cfg),
		StatsBaseURL: cfg.NHLStatsBaseURL,
		RestBaseURL:  cfg.NHLRestBaseURL,
		Timeout:      cfg.NHLTimeout,
		Retry: resilience.RetryConfig{
			MaxRetries:      cfg.NHLMaxRetries,
			InitialInterval: cfg.NHLRetryInitialInterval,
		},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMaxReq,
		},
		Cache:  store,
		Logger: logger,
	})

	a.service = usecase.NewDueService(client, usecase.DueOptions{
		MinGoals:   cfg.DueMinGoals,
		MaxWorkers: cfg.DueMaxWorkers,
	}, logger)

	return a, nil
}

// Run evaluates the configured date and writes the report to out.
func (a *App) Run(ctx context.Context, out io.Writer) error {
	ctx, span := appTracer.Start(ctx, "app.Run")
	defer span.End()

	items, err := a.service.Evaluate(ctx, a.cfg.DueEvalDate)
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int("due.players", len(items)))

	rendered, err := report.Render(a.cfg.ReportFormat, items)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Close releases the cache connection and flushes tracing, in reverse order of setup.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// buildCache returns nil when caching is off. An unreachable Redis falls back to memory.
func (a *App) buildCache(ctx context.Context) *cache.Store {
	if !a.cfg.CacheEnabled {
		return nil
	}

	var backend cache.Backend = cache.NewMemoryBackend()
	if a.cfg.CacheRedisAddr != "" {
		redisBackend, err := cache.NewRedisBackend(ctx, cache.RedisConfig{
			Addr:         a.cfg.CacheRedisAddr,
			Password:     a.cfg.CacheRedisPassword,
			DB:           a.cfg.CacheRedisDB,
			DialTimeout:  redisDialTimeout,
			ReadTimeout:  redisIOTimeout,
			WriteTimeout: redisIOTimeout,
		})
		if err != nil {
			a.logger.WarnContext(ctx, "redis cache unavailable, using in-memory cache", "addr", a.cfg.CacheRedisAddr, "error", err)
		} else {
			backend = redisBackend
			a.closers = append(a.closers, func(context.Context) error { return redisBackend.Close() })
		}
	}

	return cache.NewStore(backend, a.cfg.CacheTTL, cacheKeyPrefix, a.logger)
}

func newHTTPClient(cfg config.Config) *http.Client {
	transport := http.DefaultTransport
	if observability.Enabled(cfg) {
		transport = otelhttp.NewTransport(transport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "nhlapi " + r.Method + " " + r.URL.Path
			}),
		)
	}
	return &http.Client{Timeout: cfg.NHLTimeout, Transport: transport}
}
