package client

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kelasa/pawapay/metrics"
)

// Environment selects which provider deployment the client talks to.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Base URLs per environment.
const (
	sandboxBaseURL    = "https://api.sandbox.pawapay.io"
	productionBaseURL = "https://api.pawapay.io"
)

// Default request policy, overridable via Config.
const (
	defaultTimeout        = 30 * time.Second
	defaultMaxAttempts    = 4
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// Config holds everything the client needs to talk to the provider.
// Validate runs at construction so a misconfigured client fails fast instead
// of failing on the first call.
type Config struct {
	// APIToken is the bearer credential attached to every request. Required.
	APIToken string

	// Environment selects the provider base URL. Defaults to sandbox.
	Environment Environment

	// BaseURL overrides the environment-derived base URL. Intended for
	// tests pointed at a local server.
	BaseURL string

	// CallbackSecret is the shared secret for verifying inbound status
	// callbacks. When empty, VerifyCallback always reports unverified.
	CallbackSecret string

	// SignRequests enables the Content-Digest header on request bodies.
	SignRequests bool

	// SigningKeyPath references the key material registered with the
	// provider. Required when SignRequests is set.
	SigningKeyPath string

	// Timeout bounds each logical call, including backoff between retries.
	// Zero means the default of 30s.
	Timeout time.Duration

	// MaxAttempts bounds total attempts per call (first try plus retries).
	// Zero means the default of 4.
	MaxAttempts int

	// RetryBaseDelay is the backoff starting point; attempt n sleeps
	// RetryBaseDelay << n. Zero means the default of 500ms.
	RetryBaseDelay time.Duration
}

// Validate checks the configuration. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.APIToken == "" {
		errs = append(errs, fmt.Errorf("APIToken is required"))
	}

	switch c.Environment {
	case "", EnvironmentSandbox, EnvironmentProduction:
	default:
		errs = append(errs, fmt.Errorf("Environment must be %q or %q, got %q",
			EnvironmentSandbox, EnvironmentProduction, c.Environment))
	}

	if c.SignRequests && c.SigningKeyPath == "" {
		errs = append(errs, fmt.Errorf("SigningKeyPath is required when SignRequests is enabled"))
	}

	if c.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("MaxAttempts cannot be negative"))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("Timeout cannot be negative"))
	}

	if c.RetryBaseDelay < 0 {
		errs = append(errs, fmt.Errorf("RetryBaseDelay cannot be negative"))
	}

	if len(errs) > 0 {
		return &ConfigurationError{Problems: errs}
	}

	return nil
}

// baseURL resolves the effective base URL for the configuration.
func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Environment == EnvironmentProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// Client is the HTTP client for the provider's transaction API. It is
// stateless per call beyond the shared connection pool and safe for
// concurrent use; each call carries its own idempotency identifier.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics

	// newID generates idempotency identifiers; swapped in tests.
	newID func() string
	// now supplies customer timestamps; swapped in tests.
	now func() time.Time
}

// NewClient creates a new provider client. If httpClient is nil a default
// client with the configured timeout is used; the pool it owns lives as long
// as the Client does. If logger is nil, logs are discarded. If m is nil, no
// metrics are recorded.
func NewClient(cfg Config, httpClient *http.Client, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryBaseDelay == 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return &Client{
		cfg:        cfg,
		baseURL:    cfg.baseURL(),
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
		newID:      newRequestID,
		now:        time.Now,
	}, nil
}

// customerTimestamp formats the client-side timestamp the provider expects:
// UTC RFC 3339 with an explicit "Z" suffix.
func (c *Client) customerTimestamp() string {
	return c.now().UTC().Format(time.RFC3339)
}
