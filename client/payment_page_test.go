package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentPageDeposit(t *testing.T) {
	var captured map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment-page/deposits", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"redirectUrl": "https://pay.example.com/session/abc",
		})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	cl.newID = func() string { return testDepositID }
	cl.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	page, err := cl.CreatePaymentPageDeposit(context.Background(), PaymentPageParams{
		Amount:    "100.00",
		Currency:  "KES",
		ReturnURL: "https://merchant.example.com/done",
	})
	require.NoError(t, err)

	assert.Equal(t, testDepositID, captured["depositId"])
	assert.Equal(t, "100.00", captured["amount"])
	assert.Equal(t, "KES", captured["currency"])
	assert.Equal(t, "https://merchant.example.com/done", captured["returnUrl"])
	assert.Equal(t, "2026-08-29T12:00:00Z", captured["customerTimestamp"])
	assert.NotContains(t, captured, "statementDescription")

	assert.Equal(t, "https://pay.example.com/session/abc", page.RedirectURL)
	// Response omitted the deposit ID; the generated one is carried over.
	assert.Equal(t, testDepositID, page.DepositID)
}

func TestCreatePaymentPageDeposit_Validation(t *testing.T) {
	cl := newTestClient(t, "http://127.0.0.1:1")

	tests := []struct {
		name   string
		params PaymentPageParams
		field  string
	}{
		{"bad amount", PaymentPageParams{Amount: "x", Currency: "KES", ReturnURL: "https://x"}, "amount"},
		{"missing currency", PaymentPageParams{Amount: "1", ReturnURL: "https://x"}, "currency"},
		{"missing return URL", PaymentPageParams{Amount: "1", Currency: "KES"}, "return URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cl.CreatePaymentPageDeposit(context.Background(), tt.params)
			require.Error(t, err)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}
