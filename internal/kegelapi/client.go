// Package kegelapi is the HTTP client for the simulation server's REST
// API. It is the only component that talks to the network; everything
// above it consumes typed domain records.
package kegelapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	validator "github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/resilience"
	"github.com/robertKrusekopf/kegelsim-client/internal/usecase"
)

const (
	defaultTimeout  = 20 * time.Second
	maxResponseSize = 6 << 20
)

var errTransient = crerr.New("kegel api transient failure")

// ErrorCodeHomeTeamLineupCreationFailed is the machine-readable code
// the server attaches when it could not auto-create the home lineup
// before an away submission.
const ErrorCodeHomeTeamLineupCreationFailed = "HOME_TEAM_LINEUP_CREATION_FAILED"

// APIError is a non-2xx response with whatever machine-readable detail
// the server attached.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api status=%d code=%s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api status=%d: %s", e.StatusCode, e.Message)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the simulation server. Reads are retried and
// deduplicated in flight; mutations are sent exactly once.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	validate       *validator.Validate
}

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
		httpClient.Timeout = defaultTimeout
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = otelhttp.NewTransport(base)

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		validate:       validator.New(),
	}
}

// getJSON fetches a resource with retries, breaker accounting and
// in-flight deduplication, then decodes into target.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeGet(ctx, fullURL)
		c.record(reqErr)
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode response payload: %w", err)
	}
	return nil
}

// postJSON sends a mutation exactly once: no retries, because the
// caller cannot assume a failed simulation call left the server
// consistent, and a blind replay could double-apply it.
func (c *Client) postJSON(ctx context.Context, path string, body any, target any) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.do(req)
	c.record(err)
	if err != nil {
		return err
	}
	if target != nil && len(raw) > 0 {
		if err := sonic.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode response payload: %w", err)
		}
	}
	return nil
}

func (c *Client) executeGet(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		raw, err := c.do(req)
		if err == nil {
			return raw, nil
		}
		if !crerr.Is(err, errTransient) {
			return nil, err
		}
		lastErr = err

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	c.logger.WarnContext(ctx, "kegel api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("send request: %v", err), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("read response body: %v", err), errTransient)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	apiErr := decodeAPIError(resp.StatusCode, raw)
	if isRetryableStatus(resp.StatusCode) {
		return nil, crerr.Mark(apiErr, errTransient)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w", usecase.ErrNotFound, apiErr)
	}
	return nil, apiErr
}

func (c *Client) allow(ctx context.Context) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "kegel api circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: simulation server is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return nil
}

func (c *Client) record(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Error     string `json:"error"`
		ErrorCode string `json:"error_code"`
	}
	if err := sonic.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
		apiErr.Code = payload.ErrorCode
	}
	if apiErr.Message == "" {
		apiErr.Message = abbreviateBody(body)
	}
	return apiErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(body []byte) string {
	const maxLen = 256
	text := strings.TrimSpace(string(body))
	if len(text) > maxLen {
		return text[:maxLen] + "..."
	}
	return text
}
