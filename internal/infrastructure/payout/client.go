package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	domainerrors "sellhub.backend/internal/domain/errors"
)

// TransferStatus values reported by the payout provider
const (
	TransferStatusCompleted  = "completed"
	TransferStatusProcessing = "processing"
	TransferStatusFailed     = "failed"
)

// Provider response codes. Duplicate detection matches these codes, never
// free-text messages.
const (
	codeDuplicate        = "duplicate"
	codeAlreadyProcessed = "already_processed"
)

// TransferRequest is one payout order sent to the provider
type TransferRequest struct {
	IdempotencyKey string          `json:"idempotencyKey"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"paymentMethod"`
	PixKey         string          `json:"pixKey"`
	Description    string          `json:"description,omitempty"`
}

// TransferResult is the provider's view of a transfer
type TransferResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Code          string `json:"code,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Client calls the external payout provider over HTTP+JSON
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new payout provider client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateTransfer asks the provider to execute a transfer. The idempotency
// key makes a network-level retry of the same call safe: the provider
// answers a duplicate with its duplicate code, which is surfaced as
// ErrTransferDuplicate together with the original transfer result.
func (c *Client) CreateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	defer resp.Body.Close()

	return c.decodeResult(resp)
}

// GetTransfer queries the provider for the transfer identified by the
// idempotency key, used to resolve withdrawals stuck in PROCESSING.
func (c *Client) GetTransfer(ctx context.Context, idempotencyKey string) (*TransferResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/transfers/"+idempotencyKey, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domainerrors.ErrNotFound
	}
	return c.decodeResult(resp)
}

func (c *Client) decodeResult(resp *http.Response) (*TransferResult, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domainerrors.ErrTransferFailed, err)
	}

	var result TransferResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", domainerrors.ErrTransferFailed, err)
	}

	switch result.Code {
	case codeDuplicate, codeAlreadyProcessed:
		// The transfer already happened; callers treat this as success
		return &result, domainerrors.ErrTransferDuplicate
	}

	if resp.StatusCode >= 400 || result.Status == TransferStatusFailed {
		return &result, fmt.Errorf("%w: %s (%s)", domainerrors.ErrTransferFailed, result.Message, result.Code)
	}
	return &result, nil
}
