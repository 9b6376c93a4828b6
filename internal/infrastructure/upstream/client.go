package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/startup-analytics/internal/auth"
	"github.com/example/startup-analytics/internal/config"
	"github.com/example/startup-analytics/internal/logger"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while an upstream's breaker rejects calls.
var ErrCircuitOpen = errors.New("upstream circuit open")

// StatusError is a non-2xx answer from an upstream service.
type StatusError struct {
	Service string
	Path    string
	Status  int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d", e.Service, e.Path, e.Status)
}

// StateObserver is told about every breaker state change.
type StateObserver func(service, to string)

// Client performs authenticated JSON GETs against one upstream service,
// behind a circuit breaker.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	log        *logger.Logger
	observer   StateObserver
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

func WithStateObserver(fn StateObserver) Option {
	return func(o *clientOptions) { o.observer = fn }
}

// NewClient creates a client for the service named name at baseURL.
func NewClient(name, baseURL string, cfg config.BreakerConfig, opts ...Option) *Client {
	o := clientOptions{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With("component", "UpstreamClient", "upstream", name)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Only trip if we have enough requests to make a decision
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "from", from.String(), "to", to.String())
			if o.observer != nil {
				o.observer(name, to.String())
			}
		},
		IsSuccessful: countsAsSuccess,
	})

	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    o.httpClient,
		breaker: breaker,
		log:     log,
	}
}

// countsAsSuccess keeps caller-side problems (4xx, cancellation) from
// tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status < http.StatusInternalServerError
	}
	return errors.Is(err, context.Canceled)
}

// Name returns the upstream service name.
func (c *Client) Name() string { return c.name }

// GetJSON fetches path and decodes the body into out. The caller's bearer
// token, when present in ctx, is forwarded.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.get(ctx, path, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: %v", ErrCircuitOpen, c.name, err)
	}
	return err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.name, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Service: c.name, Path: path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", c.name, path, err)
	}
	return nil
}

// countList fetches a JSON array and returns its length. A null body counts as empty.
func (c *Client) countList(ctx context.Context, path string) (int, error) {
	var items []json.RawMessage
	if err := c.GetJSON(ctx, path, &items); err != nil {
		return 0, err
	}
	return len(items), nil
}
