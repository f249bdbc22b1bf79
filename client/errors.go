package client

import (
	"fmt"
)

// The client surfaces every failure as one of the typed errors below so
// callers can branch with errors.As. Transient transport failures are
// retried internally and only reach the caller after the retry policy is
// exhausted; business and validation failures are never retried.

// NetworkError indicates the provider could not be reached at all: DNS
// failure, connection refused, broken pipe. Retries were already applied.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError indicates the per-call time budget was exhausted, including
// time spent in backoff between retries. It is distinct from NetworkError so
// callers can poll transaction status instead of blindly resubmitting.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx provider response after the retry policy ran its
// course. Code, Message and Details carry the provider's declared error.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider returned %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Message)
}

// TransactionRejectedError is a business-level decline inside a 2xx
// envelope: the HTTP call succeeded but the provider refused the
// transaction content. Code and Message are the provider's rejection
// fields, verbatim.
type TransactionRejectedError struct {
	Kind    string // "deposit" or "payout"
	Code    string
	Message string
}

func (e *TransactionRejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s (%s)", e.Kind, e.Message, e.Code)
}

// CorrespondentResolutionError means no correspondent was supplied and none
// could be predicted for the phone number, so the transaction cannot be
// submitted at all.
type CorrespondentResolutionError struct {
	MSISDN string
}

func (e *CorrespondentResolutionError) Error() string {
	return fmt.Sprintf("could not resolve correspondent for %s", e.MSISDN)
}

// UnknownStatusError means the provider returned a status string outside the
// known lifecycle enum. Silently mapping it to a known state would corrupt
// the caller's view of the transaction, so parsing fails loudly instead.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown transaction status %q", e.Value)
}

// MalformedPayloadError means a callback body failed to decode as JSON after
// its signature already verified. It is not a verification failure.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed callback payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// ConfigurationError reports invalid client setup. Every problem found
// during validation is carried so a caller can fix them all in one pass.
type ConfigurationError struct {
	Problems []error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration validation failed: %v", e.Problems)
}

func (e *ConfigurationError) Unwrap() []error { return e.Problems }

// ValidationError covers caller-supplied input the client refuses to send:
// bad amounts, bad phone numbers, missing required fields.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
