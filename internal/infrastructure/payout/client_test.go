package payout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "sellhub.backend/internal/domain/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, "test-key", 5*time.Second), server
}

func transferRequest() TransferRequest {
	return TransferRequest{
		IdempotencyKey: "wd-1",
		Amount:         decimal.RequireFromString("100.00"),
		PaymentMethod:  "pix",
		PixKey:         "seller@example.com",
		Description:    "withdrawal wd-1",
	}
}

func TestCreateTransfer_Success(t *testing.T) {
	var gotPath, gotIdemKey, gotAuth string
	var gotBody TransferRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotIdemKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(TransferResult{TransactionID: "tx-1", Status: TransferStatusCompleted})
	})
	defer server.Close()

	result, err := client.CreateTransfer(context.Background(), transferRequest())
	require.NoError(t, err)
	assert.Equal(t, "tx-1", result.TransactionID)
	assert.Equal(t, TransferStatusCompleted, result.Status)

	assert.Equal(t, "/v1/transfers", gotPath)
	assert.Equal(t, "wd-1", gotIdemKey)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.True(t, gotBody.Amount.Equal(decimal.RequireFromString("100.00")))
}

func TestCreateTransfer_DuplicateCode(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(TransferResult{
			TransactionID: "tx-1",
			Status:        TransferStatusCompleted,
			Code:          "already_processed",
			Message:       "transfer already processed",
		})
	})
	defer server.Close()

	result, err := client.CreateTransfer(context.Background(), transferRequest())
	assert.ErrorIs(t, err, domainerrors.ErrTransferDuplicate)
	require.NotNil(t, result, "the original result rides along with the duplicate error")
	assert.Equal(t, "tx-1", result.TransactionID)
}

func TestCreateTransfer_FailedStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TransferResult{Status: TransferStatusFailed, Code: "insufficient_funds"})
	})
	defer server.Close()

	_, err := client.CreateTransfer(context.Background(), transferRequest())
	assert.ErrorIs(t, err, domainerrors.ErrTransferFailed)
}

func TestCreateTransfer_HTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(TransferResult{Message: "internal error"})
	})
	defer server.Close()

	_, err := client.CreateTransfer(context.Background(), transferRequest())
	assert.ErrorIs(t, err, domainerrors.ErrTransferFailed)
}

func TestCreateTransfer_NetworkFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	_, err := client.CreateTransfer(context.Background(), transferRequest())
	assert.ErrorIs(t, err, domainerrors.ErrTransferFailed)
}

func TestCreateTransfer_InvalidResponseBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	defer server.Close()

	_, err := client.CreateTransfer(context.Background(), transferRequest())
	assert.ErrorIs(t, err, domainerrors.ErrTransferFailed)
}

func TestGetTransfer_Success(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(TransferResult{TransactionID: "tx-1", Status: TransferStatusProcessing})
	})
	defer server.Close()

	result, err := client.GetTransfer(context.Background(), "wd-1")
	require.NoError(t, err)
	assert.Equal(t, TransferStatusProcessing, result.Status)
	assert.Equal(t, "/v1/transfers/wd-1", gotPath)
}

func TestGetTransfer_NotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetTransfer(context.Background(), "wd-unknown")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
