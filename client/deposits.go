package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DepositParams are the caller-supplied inputs for a deposit: a collection
// of funds from a payer into the merchant account.
type DepositParams struct {
	// Amount is an exact decimal string, e.g. "100.00". It is sent and
	// echoed verbatim; see NormalizeAmount for canonicalization.
	Amount string

	// Currency is the ISO-style 3-letter currency code, e.g. "KES".
	Currency string

	// PhoneNumber is the payer's MSISDN. Formatting characters are
	// stripped before use.
	PhoneNumber string

	// Correspondent optionally names the mobile-money operator. When
	// empty, the provider's prediction endpoint is consulted.
	Correspondent string

	// StatementDescription optionally appears on the payer's statement.
	StatementDescription string
}

// depositWire is the provider's deposit representation, shared by creation
// and status-check responses.
type depositWire struct {
	DepositID       string           `json:"depositId"`
	Status          string           `json:"status"`
	Amount          string           `json:"amount"`
	Currency        string           `json:"currency"`
	Correspondent   string           `json:"correspondent"`
	Created         string           `json:"created"`
	Payer           *Payer           `json:"payer"`
	FailureReason   *failureReason   `json:"failureReason"`
	RejectionReason *rejectionReason `json:"rejectionReason"`
}

// RequestDeposit initiates a deposit and returns the provider's initial
// snapshot of it. The request carries a freshly generated idempotency
// identifier which is reused on every transport retry, so at-least-once
// delivery cannot double-charge the payer.
//
// A provider-side decline inside a 2xx envelope surfaces as
// *TransactionRejectedError; an unresolvable correspondent as
// *CorrespondentResolutionError.
func (c *Client) RequestDeposit(ctx context.Context, params DepositParams) (*DepositResponse, error) {
	if err := ValidateAmount(params.Amount); err != nil {
		return nil, err
	}
	if params.Currency == "" {
		return nil, &ValidationError{Field: "currency", Message: "required"}
	}
	msisdn, err := NormalizeMSISDN(params.PhoneNumber)
	if err != nil {
		return nil, err
	}

	correspondent, err := c.resolveCorrespondent(ctx, params.Correspondent, msisdn)
	if err != nil {
		return nil, err
	}

	req := DepositRequest{
		DepositID:            c.newID(),
		Amount:               params.Amount,
		Currency:             params.Currency,
		Correspondent:        correspondent,
		Payer:                Payer{Type: AddressTypeMSISDN, Address: Address{Value: msisdn}},
		CustomerTimestamp:    c.customerTimestamp(),
		StatementDescription: params.StatementDescription,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/deposits", "/deposits", body)
	if err != nil {
		return nil, err
	}

	var wire depositWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode deposit response: %w", err)
	}

	if Status(wire.Status) == StatusRejected {
		if c.metrics != nil {
			c.metrics.RecordTransactionRejected("deposit")
		}
		rejErr := &TransactionRejectedError{Kind: "deposit"}
		if wire.RejectionReason != nil {
			rejErr.Code = wire.RejectionReason.RejectionCode
			rejErr.Message = wire.RejectionReason.RejectionMessage
		}
		return nil, rejErr
	}

	// The initial accept response does not echo every field the caller
	// needs, so the request's amount, currency, correspondent and payer
	// descriptor are carried into the snapshot directly.
	wire.Amount = req.Amount
	wire.Currency = req.Currency
	wire.Correspondent = req.Correspondent
	wire.Payer = &req.Payer
	if wire.DepositID == "" {
		wire.DepositID = req.DepositID
	}

	resp, err := depositFromWire(&wire)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "deposit requested",
		"deposit_id", resp.ID,
		"status", resp.Status,
		"correspondent", resp.Correspondent,
	)

	return resp, nil
}

// CheckDepositStatus fetches the current state of a deposit. The provider
// returns status history as a list; only the current entry is mapped. Every
// call produces a new read-only snapshot.
func (c *Client) CheckDepositStatus(ctx context.Context, depositID string) (*DepositResponse, error) {
	if depositID == "" {
		return nil, &ValidationError{Field: "deposit ID", Message: "required"}
	}

	raw, err := c.do(ctx, http.MethodGet, "/deposits/{depositId}", "/deposits/"+url.PathEscape(depositID), nil)
	if err != nil {
		return nil, err
	}

	entry, err := unwrapStatusList(raw)
	if err != nil {
		return nil, err
	}

	var wire depositWire
	if err := json.Unmarshal(entry, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode deposit status: %w", err)
	}

	return depositFromWire(&wire)
}

// RefundDeposit requests a refund of a completed deposit and returns the
// provider's acknowledgement: the refund identifier and its initial status.
func (c *Client) RefundDeposit(ctx context.Context, depositID string) (json.RawMessage, error) {
	if depositID == "" {
		return nil, &ValidationError{Field: "deposit ID", Message: "required"}
	}
	return c.do(ctx, http.MethodPost, "/v1/deposits/{depositId}/refund", "/v1/deposits/"+url.PathEscape(depositID)+"/refund", nil)
}

// depositFromWire converts the provider representation into the typed
// snapshot, failing loudly on a status outside the known lifecycle.
func depositFromWire(wire *depositWire) (*DepositResponse, error) {
	status, err := ParseStatus(wire.Status)
	if err != nil {
		return nil, err
	}

	created, err := parseCreated(wire.Created)
	if err != nil {
		return nil, err
	}

	resp := &DepositResponse{
		Transaction: Transaction{
			ID:            wire.DepositID,
			Status:        status,
			Amount:        wire.Amount,
			Currency:      wire.Currency,
			Correspondent: wire.Correspondent,
			Created:       created,
			FailureReason: wire.FailureReason.flatten(),
		},
	}
	if wire.Payer != nil {
		resp.Payer = *wire.Payer
	}

	return resp, nil
}
