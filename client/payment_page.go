package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PaymentPageParams are the inputs for a hosted-payment-page deposit, where
// the customer completes payment on the provider's page instead of an MSISDN
// push. No correspondent resolution happens; the page handles operator
// selection.
type PaymentPageParams struct {
	// Amount is an exact decimal string.
	Amount string

	// Currency is the ISO-style 3-letter currency code.
	Currency string

	// ReturnURL is where the customer is sent after completing payment.
	ReturnURL string

	// StatementDescription optionally appears on the payer's statement.
	StatementDescription string
}

// CreatePaymentPageDeposit creates a deposit to be completed on the
// provider's hosted payment page and returns the redirect URL together with
// the generated deposit identifier, which doubles as the idempotency key.
func (c *Client) CreatePaymentPageDeposit(ctx context.Context, params PaymentPageParams) (*PaymentPage, error) {
	if err := ValidateAmount(params.Amount); err != nil {
		return nil, err
	}
	if params.Currency == "" {
		return nil, &ValidationError{Field: "currency", Message: "required"}
	}
	if params.ReturnURL == "" {
		return nil, &ValidationError{Field: "return URL", Message: "required"}
	}

	depositID := c.newID()
	req := map[string]string{
		"depositId":         depositID,
		"amount":            params.Amount,
		"currency":          params.Currency,
		"returnUrl":         params.ReturnURL,
		"customerTimestamp": c.customerTimestamp(),
	}
	if params.StatementDescription != "" {
		req["statementDescription"] = params.StatementDescription
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment page request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/payment-page/deposits", "/v1/payment-page/deposits", body)
	if err != nil {
		return nil, err
	}

	var page PaymentPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to decode payment page response: %w", err)
	}
	if page.DepositID == "" {
		page.DepositID = depositID
	}

	c.logger.DebugContext(ctx, "payment page deposit created",
		"deposit_id", page.DepositID,
	)

	return &page, nil
}
