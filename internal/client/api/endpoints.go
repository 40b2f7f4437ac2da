package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/coinbank/internal/client/models"
	"github.com/shopspring/decimal"
)

const (
	loginEndpoint        = "/api/login"
	registerEndpoint     = "/api/register"
	logoutEndpoint       = "/api/logout"
	cardEndpoint         = "/api/card"
	cardResetEndpoint    = "/api/card/reset"
	transactionsEndpoint = "/api/transactions"
	transferEndpoint     = "/api/transfer"
	billPayEndpoint      = "/api/bill/pay"
	billCreateEndpoint   = "/api/bill/create"
)

// AmountDecimals is the fixed precision amounts are sent and shown with.
const AmountDecimals = 8

type LoginResponse struct {
	SessionCreated  bool      `json:"sessionCreated"`
	PasswordCorrect bool      `json:"passwordCorrect"`
	SessionID       models.ID `json:"sessionId"`
	UserID          models.ID `json:"userId"`
	Error           string    `json:"error"`
}

// StatusResponse is the {success, error} shape shared by several endpoints.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type BalanceResponse struct {
	// Coins is nil when the field was absent.
	Coins *decimal.Decimal `json:"coins"`
}

type CardResponse struct {
	CardCode string `json:"cardCode"`
}

type ResetCardResponse struct {
	NewCode string `json:"newCode"`
}

type TransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type CreateBillResponse struct {
	Success bool      `json:"success"`
	BillID  models.ID `json:"billId"`
	Error   string    `json:"error"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type transferRequest struct {
	ToID   string `json:"toId"`
	Amount string `json:"amount"`
}

type payBillRequest struct {
	BillID string `json:"billId"`
}

type createBillRequest struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Amount string `json:"amount"`
}

// FormatAmount renders an amount with exactly AmountDecimals digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountDecimals)
}

// Login sends the plaintext password; hashing is the server's job.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.Request(ctx, http.MethodPost, loginEndpoint, credentials{username, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.Request(ctx, http.MethodPost, registerEndpoint, credentials{username, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Request(ctx, http.MethodPost, logoutEndpoint, nil, nil)
}

func (c *Client) Balance(ctx context.Context, userID string) (*BalanceResponse, error) {
	var resp BalanceResponse
	endpoint := fmt.Sprintf("/api/user/%s/balance", url.PathEscape(userID))
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Card(ctx context.Context) (*CardResponse, error) {
	var resp CardResponse
	if err := c.Request(ctx, http.MethodPost, cardEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResetCard(ctx context.Context) (*ResetCardResponse, error) {
	var resp ResetCardResponse
	if err := c.Request(ctx, http.MethodPost, cardResetEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Transactions(ctx context.Context, page int) (*TransactionsResponse, error) {
	var resp TransactionsResponse
	endpoint := fmt.Sprintf("%s?page=%d", transactionsEndpoint, page)
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Transfer(ctx context.Context, toID string, amount decimal.Decimal) (*StatusResponse, error) {
	var resp StatusResponse
	req := transferRequest{ToID: toID, Amount: FormatAmount(amount)}
	if err := c.Request(ctx, http.MethodPost, transferEndpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PayBill(ctx context.Context, billID string) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.Request(ctx, http.MethodPost, billPayEndpoint, payBillRequest{BillID: billID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateBill(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*CreateBillResponse, error) {
	var resp CreateBillResponse
	req := createBillRequest{FromID: fromID, ToID: toID, Amount: FormatAmount(amount)}
	if err := c.Request(ctx, http.MethodPost, billCreateEndpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
