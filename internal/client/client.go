// Package client talks to the account service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/eaglebank/banking/shared/models"
	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
	}
	return e.Message
}

// IsStatus reports whether err is an APIError carrying status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type OpenSessionResponse struct {
	Session *models.SessionView `json:"session"`
	Token   string              `json:"token"`
}

type HTTPClient struct {
	Base  string
	Token string
	HTTP  *http.Client
}

func NewHTTP(base, token string) *HTTPClient {
	return &HTTPClient{
		Base:  base,
		Token: token,
		HTTP:  http.DefaultClient,
	}
}

func (c *HTTPClient) OpenSession(ctx context.Context) (*OpenSessionResponse, error) {
	var out OpenSessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CloseSession(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/sessions", nil, nil)
}

func (c *HTTPClient) ListAccounts(ctx context.Context) ([]models.AccountView, error) {
	var out struct {
		Accounts []models.AccountView `json:"accounts"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (c *HTTPClient) GetAccount(ctx context.Context, accountType string) (*models.AccountView, error) {
	var out models.AccountView
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountType, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Deposit(ctx context.Context, accountType string, amount decimal.Decimal) (*models.AccountView, error) {
	return c.move(ctx, "/v1/accounts/"+accountType+"/deposits", amount)
}

func (c *HTTPClient) Withdraw(ctx context.Context, accountType string, amount decimal.Decimal) (*models.AccountView, error) {
	return c.move(ctx, "/v1/accounts/"+accountType+"/withdrawals", amount)
}

func (c *HTTPClient) ApplyInterest(ctx context.Context, accountType string) (*models.AccountView, error) {
	var out models.AccountView
	if err := c.do(ctx, http.MethodPost, "/v1/accounts/"+accountType+"/interest", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) move(ctx context.Context, path string, amount decimal.Decimal) (*models.AccountView, error) {
	body := struct {
		Amount decimal.Decimal `json:"amount"`
	}{Amount: amount}
	var out models.AccountView
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
