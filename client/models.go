package client

import (
	"time"
)

// Status is the lifecycle state of a deposit or payout as reported by the
// provider. Transitions beyond ACCEPTED happen server-side; the client only
// observes them via status checks or callbacks.
type Status string

const (
	StatusAccepted         Status = "ACCEPTED"
	StatusEnqueued         Status = "ENQUEUED"
	StatusSubmitted        Status = "SUBMITTED"
	StatusCompleted        Status = "COMPLETED"
	StatusFailed           Status = "FAILED"
	StatusRejected         Status = "REJECTED"
	StatusDuplicateIgnored Status = "DUPLICATE_IGNORED"
)

// ParseStatus converts a provider status string into a Status. It fails with
// *UnknownStatusError for any value outside the known set; callers must never
// default an unrecognized status to a known state.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAccepted, StatusEnqueued, StatusSubmitted, StatusCompleted,
		StatusFailed, StatusRejected, StatusDuplicateIgnored:
		return Status(s), nil
	}
	return "", &UnknownStatusError{Value: s}
}

// Terminal reports whether the status is absorbing: no further transitions
// will be observed for the transaction.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRejected, StatusDuplicateIgnored:
		return true
	}
	return false
}

// AddressType identifies how a payer or recipient is addressed. MSISDN
// (phone number) is the only addressing scheme the provider supports today.
type AddressType string

const AddressTypeMSISDN AddressType = "MSISDN"

// Payer identifies the party a deposit collects funds from.
type Payer struct {
	Type    AddressType `json:"type"`
	Address Address     `json:"address"`
}

// Recipient identifies the party a payout disburses funds to.
// The provider's payout schema carries the address value inline rather than
// nested, unlike the deposit payer.
type Recipient struct {
	Type  AddressType `json:"type"`
	Value string      `json:"value"`
}

// Address wraps an MSISDN value for the deposit payer schema.
type Address struct {
	Value string `json:"value"`
}

// Correspondent describes one active mobile-money operator channel: the
// provider-specific operator code scoped to a country and currency.
type Correspondent struct {
	Correspondent string `json:"correspondent"`
	Country       string `json:"country"`
	Currency      string `json:"currency"`
}

// DepositRequest is the exact body sent to the deposit creation endpoint.
// It is immutable once built: the deposit ID is the idempotency key and the
// serialized bytes are reused verbatim across retries so the provider can
// deduplicate and any content digest stays valid.
type DepositRequest struct {
	DepositID            string `json:"depositId"`
	Amount               string `json:"amount"`
	Currency             string `json:"currency"`
	Correspondent        string `json:"correspondent"`
	Payer                Payer  `json:"payer"`
	CustomerTimestamp    string `json:"customerTimestamp"`
	StatementDescription string `json:"statementDescription,omitempty"`
}

// PayoutRequest is the exact body sent to the payout creation endpoint.
// Same immutability rules as DepositRequest.
type PayoutRequest struct {
	PayoutID             string    `json:"payoutId"`
	Amount               string    `json:"amount"`
	Currency             string    `json:"currency"`
	Country              string    `json:"country"`
	Correspondent        string    `json:"correspondent"`
	Recipient            Recipient `json:"recipient"`
	CustomerTimestamp    string    `json:"customerTimestamp"`
	StatementDescription string    `json:"statementDescription,omitempty"`
}

// Transaction holds the fields shared by deposit and payout responses.
// Deposit and payout are modeled as two variants embedding this shape rather
// than an inheritance-style hierarchy, so the variant is always explicit.
type Transaction struct {
	ID            string    `json:"id"`
	Status        Status    `json:"status"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Correspondent string    `json:"correspondent"`
	Created       time.Time `json:"created"`
	FailureReason string    `json:"failure_reason,omitempty"`
}

// DepositResponse is a read-only snapshot of a deposit's state. A new status
// check produces a new value; responses are never mutated in place.
type DepositResponse struct {
	Transaction
	Payer Payer `json:"payer"`
}

// PayoutResponse is a read-only snapshot of a payout's state.
type PayoutResponse struct {
	Transaction
	Recipient Recipient `json:"recipient"`
}

// Callback is a verified status-update push from the provider. Exactly one
// of DepositID or PayoutID is set depending on the transaction kind.
type Callback struct {
	DepositID     string `json:"depositId,omitempty"`
	PayoutID      string `json:"payoutId,omitempty"`
	Status        Status `json:"-"`
	RawStatus     string `json:"status"`
	FailureReason string `json:"failureReason,omitempty"`
}

// PaymentPage is the provider's response to a hosted-payment-page deposit:
// the URL the customer must be redirected to.
type PaymentPage struct {
	DepositID   string `json:"depositId"`
	RedirectURL string `json:"redirectUrl"`
}
