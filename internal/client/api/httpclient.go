package api

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

	"github.com/google/uuid"

	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/logging"
)

// TokenSource yields the persisted bearer token, or "" when anonymous.
// The token store satisfies this interface.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// authTransport attaches the bearer token and a request id to every outgoing
// request. The token is re-read from the source on each call, so a login or
// logout is picked up by the very next request.
type authTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		return nil, err
	}

	clone := req.Clone(req.Context())
	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	clone.Header.Set("X-Request-Id", uuid.NewString())
	clone.Header.Set("Content-Type", "application/json")

	return t.base.RoundTrip(clone)
}

// HTTPClient is the concrete REST implementation of Client.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given API base URL (e.g.
// "https://finance.example.com/api"). The timeout applies per request.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{tokens: tokens, base: http.DefaultTransport},
		},
		log: log,
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// apiErrorBody is the superset of error payload shapes the backend emits.
type apiErrorBody struct {
	Detail               string `json:"detail"`
	Error                string `json:"error"`
	Message              string `json:"message"`
	VerificationRequired bool   `json:"verification_required"`
	UserID               int64  `json:"user_id"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Raw: string(raw)}
		var eb apiErrorBody
		if jsonErr := json.Unmarshal(raw, &eb); jsonErr == nil {
			apiErr.Detail = eb.Detail
			if apiErr.Detail == "" {
				apiErr.Detail = eb.Error
			}
			if apiErr.Detail == "" {
				apiErr.Detail = eb.Message
			}
			apiErr.VerificationRequired = eb.VerificationRequired
			apiErr.UserID = eb.UserID
		}
		c.log.Debug(ctx, "api error", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// getList decodes either a bare JSON array or a paginated
// {"results": [...]} envelope into dst (a pointer to a slice).
func (c *HTTPClient) getList(ctx context.Context, path string, dst any) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, dst)
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("GET %s: decode list: %w", path, err)
	}
	if envelope.Results == nil {
		return nil
	}
	return json.Unmarshal(envelope.Results, dst)
}

// ---------- auth ----------

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, userID int64, code string) (*TokenResponse, error) {
	body := map[string]any{"user_id": userID, "otp": code}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/verify-otp/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResendOTP(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, "/users/resend-otp/", map[string]any{"user_id": userID}, nil)
}

func (c *HTTPClient) ResendVerification(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, "/users/resend_verification/", map[string]any{"user_id": userID}, nil)
}

func (c *HTTPClient) GoogleLogin(ctx context.Context, idToken, clientID string) (*OAuthResponse, error) {
	body := map[string]any{"id_token": idToken, "client_id": clientID}
	var resp OAuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/google-oauth/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*OAuthResponse, error) {
	var resp OAuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/reset-password/", map[string]any{"email": email}, nil)
}

func (c *HTTPClient) ResetPasswordConfirm(ctx context.Context, uid, token, password string) error {
	body := map[string]any{"uid": uid, "token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/users/reset-password-confirm/", body, nil)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/verify-email/", map[string]any{"token": token}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ---------- recurring bills ----------

func (c *HTTPClient) ListBills(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	if err := c.getList(ctx, "/recurring-bills/", &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (c *HTTPClient) CreateBill(ctx context.Context, in models.BillInput) (*models.Bill, error) {
	var bill models.Bill
	if err := c.do(ctx, http.MethodPost, "/recurring-bills/", in, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *HTTPClient) UpdateBill(ctx context.Context, id int64, in models.BillInput) (*models.Bill, error) {
	var bill models.Bill
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/recurring-bills/%d/", id), in, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (c *HTTPClient) PayBill(ctx context.Context, id int64) (string, error) {
	var resp struct {
		Detail string `json:"detail"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/recurring-bills/%d/pay_bill/", id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Detail, nil
}

// ---------- transactions ----------

func (c *HTTPClient) ListTransactions(ctx context.Context, deleted bool) ([]models.Transaction, error) {
	path := "/transactions/"
	if deleted {
		path += "?" + url.Values{"deleted": {"true"}}.Encode()
	}
	var txs []models.Transaction
	if err := c.getList(ctx, path, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions/", in, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *HTTPClient) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d/", id), nil, nil)
}

func (c *HTTPClient) RestoreTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/transactions/%d/restore/", id), nil, nil)
}

// ---------- reference data ----------

func (c *HTTPClient) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.getList(ctx, "/accounts/", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getList(ctx, "/categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *HTTPClient) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	var currencies []models.Currency
	if err := c.getList(ctx, "/currencies/", &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

func (c *HTTPClient) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := c.getList(ctx, "/budgets/", &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}
