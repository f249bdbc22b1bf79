package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDepositID = "11111111-2222-3333-4444-555555555555"

func TestRequestDeposit(t *testing.T) {
	var captured DepositRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/deposits", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"depositId": captured.DepositID,
			"status":    "ACCEPTED",
			"created":   "2026-08-29T12:00:00Z",
		})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	cl.newID = func() string { return testDepositID }
	cl.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	resp, err := cl.RequestDeposit(context.Background(), DepositParams{
		Amount:               "100.00",
		Currency:             "KES",
		PhoneNumber:          "+254 700-000-001",
		Correspondent:        "MTN_MOMO_KEN",
		StatementDescription: "Order 42",
	})
	require.NoError(t, err)

	// The wire request carries the normalized phone number and the exact
	// amount string the caller supplied.
	assert.Equal(t, testDepositID, captured.DepositID)
	assert.Equal(t, "100.00", captured.Amount)
	assert.Equal(t, "KES", captured.Currency)
	assert.Equal(t, "MTN_MOMO_KEN", captured.Correspondent)
	assert.Equal(t, AddressTypeMSISDN, captured.Payer.Type)
	assert.Equal(t, "254700000001", captured.Payer.Address.Value)
	assert.Equal(t, "2026-08-29T12:00:00Z", captured.CustomerTimestamp)
	assert.Equal(t, "Order 42", captured.StatementDescription)

	assert.Equal(t, testDepositID, resp.ID)
	assert.Equal(t, StatusAccepted, resp.Status)
	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "KES", resp.Currency)
	assert.Equal(t, "MTN_MOMO_KEN", resp.Correspondent)
	assert.Equal(t, "254700000001", resp.Payer.Address.Value)
}

func TestRequestDeposit_PredictsCorrespondentWhenOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/predict-correspondent":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "254700000001", body["msisdn"])

			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"correspondent": "MTN_MOMO_KEN"})
		case "/deposits":
			var req DepositRequest
			json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "MTN_MOMO_KEN", req.Correspondent)

			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"depositId": req.DepositID,
				"status":    "ACCEPTED",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	resp, err := cl.RequestDeposit(context.Background(), DepositParams{
		Amount:      "50",
		Currency:    "KES",
		PhoneNumber: "254700000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "MTN_MOMO_KEN", resp.Correspondent)
}

func TestRequestDeposit_UnresolvableCorrespondent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prediction endpoint is down; the deposit must never be sent.
		require.Equal(t, "/v1/predict-correspondent", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	_, err := cl.RequestDeposit(context.Background(), DepositParams{
		Amount:      "50",
		Currency:    "KES",
		PhoneNumber: "254700000001",
	})
	require.Error(t, err)

	var resErr *CorrespondentResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "254700000001", resErr.MSISDN)
}

func TestRequestDeposit_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"depositId": testDepositID,
			"status":    "REJECTED",
			"rejectionReason": map[string]string{
				"rejectionCode":    "DEPOSIT_LIMIT_EXCEEDED",
				"rejectionMessage": "Daily deposit limit exceeded",
			},
		})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	_, err := cl.RequestDeposit(context.Background(), DepositParams{
		Amount:        "100.00",
		Currency:      "KES",
		PhoneNumber:   "254700000001",
		Correspondent: "MTN_MOMO_KEN",
	})
	require.Error(t, err)

	var rejErr *TransactionRejectedError
	require.ErrorAs(t, err, &rejErr)
	assert.Equal(t, "deposit", rejErr.Kind)
	assert.Equal(t, "DEPOSIT_LIMIT_EXCEEDED", rejErr.Code)
	assert.Equal(t, "Daily deposit limit exceeded", rejErr.Message)
}

func TestRequestDeposit_UnknownStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"depositId": testDepositID,
			"status":    "PONDERING",
		})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	_, err := cl.RequestDeposit(context.Background(), DepositParams{
		Amount:        "100.00",
		Currency:      "KES",
		PhoneNumber:   "254700000001",
		Correspondent: "MTN_MOMO_KEN",
	})
	require.Error(t, err)

	var unk *UnknownStatusError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "PONDERING", unk.Value)
}

func TestRequestDeposit_InputValidation(t *testing.T) {
	// No server needed: validation fails before any network I/O.
	cl := newTestClient(t, "http://127.0.0.1:1")

	tests := []struct {
		name   string
		params DepositParams
		field  string
	}{
		{"missing amount", DepositParams{Currency: "KES", PhoneNumber: "254700000001"}, "amount"},
		{"negative amount", DepositParams{Amount: "-5", Currency: "KES", PhoneNumber: "254700000001"}, "amount"},
		{"too many decimals", DepositParams{Amount: "1.234", Currency: "KES", PhoneNumber: "254700000001"}, "amount"},
		{"missing currency", DepositParams{Amount: "100.00", PhoneNumber: "254700000001"}, "currency"},
		{"bad phone", DepositParams{Amount: "100.00", Currency: "KES", PhoneNumber: "abc"}, "phone number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cl.RequestDeposit(context.Background(), tt.params)
			require.Error(t, err)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestCheckDepositStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/deposits/"+testDepositID, r.URL.Path)

		// Status history arrives as a list; the current entry is first.
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]map[string]any{{
			"depositId":     testDepositID,
			"status":        "COMPLETED",
			"amount":        "100.00",
			"currency":      "KES",
			"correspondent": "MTN_MOMO_KEN",
			"created":       "2026-08-29T12:00:00Z",
		}})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	resp, err := cl.CheckDepositStatus(context.Background(), testDepositID)
	require.NoError(t, err)

	assert.Equal(t, testDepositID, resp.ID)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.True(t, resp.Status.Terminal())
	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "MTN_MOMO_KEN", resp.Correspondent)
	assert.Equal(t, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), resp.Created)
}

func TestCheckDepositStatus_FailedWithReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]map[string]any{{
			"depositId": testDepositID,
			"status":    "FAILED",
			"failureReason": map[string]string{
				"failureCode":    "PAYER_LIMIT_REACHED",
				"failureMessage": "The payer has reached their transaction limit",
			},
		}})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	resp, err := cl.CheckDepositStatus(context.Background(), testDepositID)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, resp.Status)
	assert.True(t, resp.Status.Terminal())
	assert.Equal(t, "PAYER_LIMIT_REACHED: The payer has reached their transaction limit", resp.FailureReason)
}

func TestCheckDepositStatus_EmptyHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	_, err := cl.CheckDepositStatus(context.Background(), testDepositID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty status list")
}

func TestCheckDepositStatus_RequiresID(t *testing.T) {
	cl := newTestClient(t, "http://127.0.0.1:1")
	_, err := cl.CheckDepositStatus(context.Background(), "")

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "deposit ID", valErr.Field)
}

func TestRefundDeposit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/deposits/"+testDepositID+"/refund", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"refundId": "99999999-8888-7777-6666-555555555555",
			"status":   "ACCEPTED",
		})
	}))
	defer server.Close()

	cl := newTestClient(t, server.URL)
	raw, err := cl.RefundDeposit(context.Background(), testDepositID)
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, "ACCEPTED", resp["status"])
}
