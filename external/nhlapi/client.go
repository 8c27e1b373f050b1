package nhlapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/cache"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/logging"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/resilience"
	"github.com/riskibarqy/nhl-due-tracker/internal/usecase"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStatsBaseURL = "https://statsapi.web.nhl.com/api/v1"
	DefaultRestBaseURL  = "https://api.nhle.com/stats/rest/en"
	defaultTimeout      = 20 * time.Second
	maxResponseBytes    = 6 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	StatsBaseURL   string
	RestBaseURL    string
	Timeout        time.Duration
	Retry          resilience.RetryConfig
	CircuitBreaker resilience.CircuitBreakerConfig
	Cache          *cache.Store
	Logger         *logging.Logger
}

// Client reads the public NHL stats endpoints. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	statsBase  string
	restBase   string
	retry      resilience.RetryConfig
	breaker    *resilience.Breaker
	cache      *cache.Store
	logger     *logging.Logger
	flight     singleflight.Group
}

var _ usecase.StatsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	statsBase := strings.TrimRight(strings.TrimSpace(cfg.StatsBaseURL), "/")
	if statsBase == "" {
		statsBase = DefaultStatsBaseURL
	}
	restBase := strings.TrimRight(strings.TrimSpace(cfg.RestBaseURL), "/")
	if restBase == "" {
		restBase = DefaultRestBaseURL
	}

	breaker := resilience.NewBreaker("nhl-stats-api", cfg.CircuitBreaker, isTransientFailure, func(name, from, to string) {
		logger.Warn("nhl api circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		statsBase:  statsBase,
		restBase:   restBase,
		retry:      resilience.NormalizeRetryConfig(cfg.Retry),
		breaker:    breaker,
		cache:      cfg.Cache,
		logger:     logger,
	}
}

func (c *Client) statsURL(path string, query url.Values) string {
	return buildURL(c.statsBase, path, query)
}

func (c *Client) restURL(path string, query url.Values) string {
	return buildURL(c.restBase, path, query)
}

func buildURL(base, path string, query url.Values) string {
	fullURL := base + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

// doJSON fetches fullURL and decodes it into target. Every failure is a *usecase.ProviderError.
func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	raw, err := c.cache.GetOrLoad(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, fullURL)
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return &usecase.ProviderError{Resource: fullURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.breaker.Execute(func() ([]byte, error) {
			return resilience.Retry(ctx, c.retry, func() ([]byte, error) {
				return c.executeRequest(ctx, fullURL)
			}, func(err error, wait time.Duration) {
				c.logger.WarnContext(ctx, "nhl api request failed, retrying", "url", fullURL, "wait", wait, "error", err)
			})
		})
	})
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "nhl api circuit breaker rejected request", "url", fullURL, "state", c.breaker.State())
		}
		var providerErr *usecase.ProviderError
		if !stderrors.As(err, &providerErr) {
			err = &usecase.ProviderError{Resource: fullURL, Err: err}
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, &usecase.ProviderError{Resource: fullURL, Err: fmt.Errorf("unexpected response payload type %T", out)}
	}
	return raw, nil
}

// executeRequest performs one attempt. Non-retryable statuses come back as permanent errors.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, resilience.Permanent(&usecase.ProviderError{Resource: fullURL, Err: fmt.Errorf("build request: %w", err)})
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, resilience.Permanent(&usecase.ProviderError{Resource: fullURL, Err: ctx.Err()})
		}
		return nil, &usecase.ProviderError{Resource: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &usecase.ProviderError{
			Resource:   fullURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)),
		}
		if isRetryableStatus(resp.StatusCode) {
			return nil, statusErr
		}
		return nil, resilience.Permanent(statusErr)
	}
	if readErr != nil {
		return nil, &usecase.ProviderError{Resource: fullURL, Err: fmt.Errorf("read response body: %w", readErr)}
	}

	return raw, nil
}

// isTransientFailure decides what counts against the circuit breaker.
func isTransientFailure(err error) bool {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return false
	}
	var providerErr *usecase.ProviderError
	if !stderrors.As(err, &providerErr) {
		return true
	}
	return providerErr.StatusCode == 0 || isRetryableStatus(providerErr.StatusCode)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
