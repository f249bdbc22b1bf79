package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
)

// TransactionKind distinguishes the two transaction flows where an
// operation applies to either.
type TransactionKind string

const (
	KindDeposit TransactionKind = "deposit"
	KindPayout  TransactionKind = "payout"
)

// VerifyCallback reports whether an inbound status-callback payload is
// authentic: the provided signature must equal the hex HMAC-SHA256 of the
// raw payload bytes under the configured shared secret. Comparison is
// constant-time to avoid timing side-channels.
//
// When no callback secret is configured the result is always false:
// verification is unavailable, not a crash. Callers must treat false as
// "do not trust this callback" regardless of cause.
func (c *Client) VerifyCallback(payload []byte, signature string) bool {
	if c.cfg.CallbackSecret == "" {
		if c.metrics != nil {
			c.metrics.RecordCallbackVerification("no_secret")
		}
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.cfg.CallbackSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	ok := hmac.Equal([]byte(signature), []byte(expected))
	if c.metrics != nil {
		result := "ok"
		if !ok {
			result = "mismatch"
		}
		c.metrics.RecordCallbackVerification(result)
	}
	return ok
}

// ParseCallback decodes a status-callback payload. It must only be called
// after VerifyCallback succeeds; decoding is deliberately a separate step so
// a bad signature is never conflated with bad JSON. A body that fails to
// decode after a valid signature is a *MalformedPayloadError.
func ParseCallback(payload []byte) (*Callback, error) {
	var cb Callback
	if err := json.Unmarshal(payload, &cb); err != nil {
		return nil, &MalformedPayloadError{Err: err}
	}

	status, err := ParseStatus(cb.RawStatus)
	if err != nil {
		return nil, err
	}
	cb.Status = status

	return &cb, nil
}

// ResendCallback asks the provider to re-deliver the status callback for a
// transaction, typically after the receiving endpoint was down.
func (c *Client) ResendCallback(ctx context.Context, id string, kind TransactionKind) (json.RawMessage, error) {
	if id == "" {
		return nil, &ValidationError{Field: "transaction ID", Message: "required"}
	}

	var endpoint, path string
	switch kind {
	case KindDeposit:
		endpoint = "/v1/deposits/{depositId}/resend-callback"
		path = "/v1/deposits/" + url.PathEscape(id) + "/resend-callback"
	case KindPayout:
		endpoint = "/v1/payouts/{payoutId}/resend-callback"
		path = "/v1/payouts/" + url.PathEscape(id) + "/resend-callback"
	default:
		return nil, &ValidationError{Field: "transaction kind", Message: "must be deposit or payout"}
	}

	return c.do(ctx, http.MethodPost, endpoint, path, nil)
}
