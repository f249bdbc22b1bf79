package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kelasa/pawapay/metrics"
)

// transientStatuses are the HTTP statuses worth retrying. Anything else
// non-2xx fails on the first attempt because resubmitting would not change
// the outcome.
var transientStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// newRequestID generates an idempotency identifier. It is generated exactly
// once per logical transaction, before any network I/O, and reused verbatim
// on every retry so the provider can deduplicate.
func newRequestID() string {
	return uuid.New().String()
}

// contentDigest computes the Content-Digest header value for a request body:
// a SHA-256 over the exact byte serialization, in the provider's
// `sha-256=:<hex>:` framing.
func contentDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("sha-256=:%s:", hex.EncodeToString(sum[:]))
}

// providerError is the wire shape of a provider-declared error.
type providerError struct {
	ErrorCode    string         `json:"errorCode"`
	ErrorMessage string         `json:"errorMessage"`
	Details      map[string]any `json:"details"`
}

// do issues one logical request against the provider API and returns the raw
// JSON body of a structurally successful (200-202) response. endpoint is the
// route template ("/deposits/{depositId}") used as the metrics label; path is
// the concrete request path. Keeping them separate keeps label cardinality
// bounded when paths embed transaction identifiers.
//
// Transient statuses are retried with exponential backoff, serially: a retry
// is never issued while an attempt is in flight, so duplicate submissions
// cannot race each other. The body bytes are identical on every attempt; the
// content digest is recomputed per attempt from those same bytes.
//
// The whole call, backoff included, is bounded by the configured timeout.
func (c *Client) do(ctx context.Context, method, endpoint, path string, body []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, status, err := c.doWithRetry(ctx, method, endpoint, path, body)

	if c.metrics != nil {
		label := "error"
		if status != 0 {
			label = metrics.StatusCodeClass(status)
		}
		c.metrics.RecordAPIRequest(endpoint, method, label, time.Since(start).Seconds())
	}

	return raw, err
}

func (c *Client) doWithRetry(ctx context.Context, method, endpoint, path string, body []byte) (json.RawMessage, int, error) {
	url := c.baseURL + path

	var lastErr error
	lastStatus := 0

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.cfg.RetryBaseDelay << uint(attempt-1)
			c.logger.WarnContext(ctx, "retrying provider request",
				"method", method,
				"path", path,
				"attempt", attempt+1,
				"backoff", backoff.String(),
			)
			if c.metrics != nil {
				c.metrics.RecordRetry(endpoint, retryReason(lastStatus, lastErr))
			}
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, lastStatus, c.classifyTransportError(ctx.Err())
			case <-timer.C:
			}
		}

		raw, status, retryable, err := c.attempt(ctx, method, url, body)
		lastStatus = status
		if err == nil {
			return raw, status, nil
		}
		lastErr = err
		if !retryable {
			return nil, status, err
		}
		if c.metrics != nil && status == http.StatusTooManyRequests {
			c.metrics.RecordRateLimitHit(endpoint)
		}
	}

	return nil, lastStatus, lastErr
}

// attempt issues a single HTTP attempt. retryable reports whether the
// failure is worth another try under the retry policy.
func (c *Client) attempt(ctx context.Context, method, url string, body []byte) (raw json.RawMessage, status int, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.SignRequests {
			req.Header.Set("Content-Digest", contentDigest(body))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failure: retry unless the call's budget is gone.
		cerr := c.classifyTransportError(err)
		var te *TimeoutError
		if errors.As(cerr, &te) && ctx.Err() != nil {
			return nil, 0, false, cerr
		}
		return nil, 0, true, cerr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, true, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 202 {
		// Some endpoints legitimately return an empty body on 2xx.
		if len(bytes.TrimSpace(respBody)) == 0 {
			return json.RawMessage("{}"), resp.StatusCode, false, nil
		}
		return json.RawMessage(respBody), resp.StatusCode, false, nil
	}

	httpErr := parseErrorResponse(resp.StatusCode, respBody)
	return nil, resp.StatusCode, transientStatuses[resp.StatusCode], httpErr
}

// parseErrorResponse maps a non-2xx response onto *HTTPError, carrying the
// provider's declared error code and message when the body has them.
func parseErrorResponse(statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var perr providerError
	if err := json.Unmarshal(body, &perr); err == nil {
		if perr.ErrorCode != "" {
			httpErr.Code = perr.ErrorCode
		}
		if perr.ErrorMessage != "" {
			httpErr.Message = perr.ErrorMessage
		}
		httpErr.Details = perr.Details
	}

	return httpErr
}

// classifyTransportError separates timeout exhaustion from plain
// unreachability so callers can decide whether to poll status or resubmit.
func (c *Client) classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &TimeoutError{Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &NetworkError{Err: err}
}

// retryReason labels why a retry happened, for metrics.
func retryReason(status int, err error) string {
	if status == http.StatusTooManyRequests {
		return "rate_limit"
	}
	if status >= 500 {
		return "server_error"
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return "timeout"
	}
	return "network_error"
}
