package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// PayoutParams are the caller-supplied inputs for a payout: a disbursement
// from the merchant account to a recipient. Unlike deposits, payouts also
// require the recipient's country code.
type PayoutParams struct {
	// Amount is an exact decimal string, sent and echoed verbatim.
	Amount string

	// Currency is the ISO-style 3-letter currency code.
	Currency string

	// Country is the recipient's ISO country code, e.g. "KEN".
	Country string

	// PhoneNumber is the recipient's MSISDN.
	PhoneNumber string

	// Correspondent optionally names the mobile-money operator. When
	// empty, the provider's prediction endpoint is consulted.
	Correspondent string

	// StatementDescription optionally appears on the recipient's statement.
	StatementDescription string
}

// payoutWire is the provider's payout representation, shared by creation and
// status-check responses.
type payoutWire struct {
	PayoutID        string           `json:"payoutId"`
	Status          string           `json:"status"`
	Amount          string           `json:"amount"`
	Currency        string           `json:"currency"`
	Country         string           `json:"country"`
	Correspondent   string           `json:"correspondent"`
	Created         string           `json:"created"`
	Recipient       *Recipient       `json:"recipient"`
	FailureReason   *failureReason   `json:"failureReason"`
	RejectionReason *rejectionReason `json:"rejectionReason"`
}

// RequestPayout initiates a payout and returns the provider's initial
// snapshot of it. Idempotency, retry and rejection semantics mirror
// RequestDeposit.
func (c *Client) RequestPayout(ctx context.Context, params PayoutParams) (*PayoutResponse, error) {
	if err := ValidateAmount(params.Amount); err != nil {
		return nil, err
	}
	if params.Currency == "" {
		return nil, &ValidationError{Field: "currency", Message: "required"}
	}
	if params.Country == "" {
		return nil, &ValidationError{Field: "country", Message: "required"}
	}
	msisdn, err := NormalizeMSISDN(params.PhoneNumber)
	if err != nil {
		return nil, err
	}

	correspondent, err := c.resolveCorrespondent(ctx, params.Correspondent, msisdn)
	if err != nil {
		return nil, err
	}

	req := PayoutRequest{
		PayoutID:             c.newID(),
		Amount:               params.Amount,
		Currency:             params.Currency,
		Country:              params.Country,
		Correspondent:        correspondent,
		Recipient:            Recipient{Type: AddressTypeMSISDN, Value: msisdn},
		CustomerTimestamp:    c.customerTimestamp(),
		StatementDescription: params.StatementDescription,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payout request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/payouts", "/payouts", body)
	if err != nil {
		return nil, err
	}

	var wire payoutWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode payout response: %w", err)
	}

	if Status(wire.Status) == StatusRejected {
		if c.metrics != nil {
			c.metrics.RecordTransactionRejected("payout")
		}
		rejErr := &TransactionRejectedError{Kind: "payout"}
		if wire.RejectionReason != nil {
			rejErr.Code = wire.RejectionReason.RejectionCode
			rejErr.Message = wire.RejectionReason.RejectionMessage
		}
		return nil, rejErr
	}

	// Same field re-attachment as deposits: the accept response does not
	// echo everything the caller supplied.
	wire.Amount = req.Amount
	wire.Currency = req.Currency
	wire.Correspondent = req.Correspondent
	wire.Recipient = &req.Recipient
	if wire.PayoutID == "" {
		wire.PayoutID = req.PayoutID
	}

	resp, err := payoutFromWire(&wire)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "payout requested",
		"payout_id", resp.ID,
		"status", resp.Status,
		"correspondent", resp.Correspondent,
	)

	return resp, nil
}

// CheckPayoutStatus fetches the current state of a payout, unwrapping the
// provider's single-element status history list.
func (c *Client) CheckPayoutStatus(ctx context.Context, payoutID string) (*PayoutResponse, error) {
	if payoutID == "" {
		return nil, &ValidationError{Field: "payout ID", Message: "required"}
	}

	raw, err := c.do(ctx, http.MethodGet, "/payouts/{payoutId}", "/payouts/"+url.PathEscape(payoutID), nil)
	if err != nil {
		return nil, err
	}

	entry, err := unwrapStatusList(raw)
	if err != nil {
		return nil, err
	}

	var wire payoutWire
	if err := json.Unmarshal(entry, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode payout status: %w", err)
	}

	return payoutFromWire(&wire)
}

// payoutFromWire converts the provider representation into the typed
// snapshot, failing loudly on a status outside the known lifecycle.
func payoutFromWire(wire *payoutWire) (*PayoutResponse, error) {
	status, err := ParseStatus(wire.Status)
	if err != nil {
		return nil, err
	}

	created, err := parseCreated(wire.Created)
	if err != nil {
		return nil, err
	}

	resp := &PayoutResponse{
		Transaction: Transaction{
			ID:            wire.PayoutID,
			Status:        status,
			Amount:        wire.Amount,
			Currency:      wire.Currency,
			Correspondent: wire.Correspondent,
			Created:       created,
			FailureReason: wire.FailureReason.flatten(),
		},
	}
	if wire.Recipient != nil {
		resp.Recipient = *wire.Recipient
	}

	return resp, nil
}
