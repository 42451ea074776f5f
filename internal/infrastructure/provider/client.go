package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"rampsync.backend/pkg/logger"
)

const (
	apiKeyHeader         = "Api-Key"
	idempotencyKeyHeader = "Idempotency-Key"
	maxErrorBody         = 4 << 10
)

// APIError is returned for any non-2xx provider response
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider api error: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the payments provider REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a provider client. A zero timeout falls back to 30s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateKYCLink starts hosted identity verification for a new customer
func (c *Client) CreateKYCLink(ctx context.Context, req CreateKYCLinkRequest, idempotencyKey string) (*KYCLink, error) {
	var out KYCLink
	if err := c.do(ctx, http.MethodPost, "/kyc_links", req, idempotencyKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetKYCLink fetches the current state of a KYC link
func (c *Client) GetKYCLink(ctx context.Context, kycLinkID string) (*KYCLink, error) {
	var out KYCLink
	if err := c.do(ctx, http.MethodGet, "/kyc_links/"+url.PathEscape(kycLinkID), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer fetches a customer
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodGet, customerPath(customerID, ""), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWallet creates a custody wallet on chain for the customer
func (c *Client) CreateWallet(ctx context.Context, customerID, chain, idempotencyKey string) (*Wallet, error) {
	var out Wallet
	if err := c.do(ctx, http.MethodPost, customerPath(customerID, "/wallets"), CreateWalletRequest{Chain: chain}, idempotencyKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWallets lists the customer's custody wallets
func (c *Client) ListWallets(ctx context.Context, customerID string) ([]Wallet, error) {
	var out ListResponse[Wallet]
	if err := c.do(ctx, http.MethodGet, customerPath(customerID, "/wallets"), nil, "", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateVirtualAccount creates a fiat deposit account forwarding to a crypto destination
func (c *Client) CreateVirtualAccount(ctx context.Context, customerID string, req CreateVirtualAccountRequest, idempotencyKey string) (*VirtualAccount, error) {
	var out VirtualAccount
	if err := c.do(ctx, http.MethodPost, customerPath(customerID, "/virtual_accounts"), req, idempotencyKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVirtualAccounts lists the customer's virtual accounts
func (c *Client) ListVirtualAccounts(ctx context.Context, customerID string) ([]VirtualAccount, error) {
	var out ListResponse[VirtualAccount]
	if err := c.do(ctx, http.MethodGet, customerPath(customerID, "/virtual_accounts"), nil, "", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListExternalAccounts lists the customer's payout bank accounts
func (c *Client) ListExternalAccounts(ctx context.Context, customerID string) ([]ExternalAccount, error) {
	var out ListResponse[ExternalAccount]
	if err := c.do(ctx, http.MethodGet, customerPath(customerID, "/external_accounts"), nil, "", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListLiquidationAddresses lists the customer's liquidation addresses
func (c *Client) ListLiquidationAddresses(ctx context.Context, customerID string) ([]LiquidationAddress, error) {
	var out ListResponse[LiquidationAddress]
	if err := c.do(ctx, http.MethodGet, customerPath(customerID, "/liquidation_addresses"), nil, "", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func customerPath(customerID, suffix string) string {
	return "/customers/" + url.PathEscape(customerID) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, idempotencyKey string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyKeyHeader, idempotencyKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "Provider API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
