package services

import (
	"context"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
	"github.com/shopspring/decimal"
)

// BankClient is the subset of *api.Client the services rely on.
type BankClient interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, username, password string) (*api.StatusResponse, error)
	Logout(ctx context.Context) error
	Balance(ctx context.Context, userID string) (*api.BalanceResponse, error)
	Card(ctx context.Context) (*api.CardResponse, error)
	ResetCard(ctx context.Context) (*api.ResetCardResponse, error)
	Transactions(ctx context.Context, page int) (*api.TransactionsResponse, error)
	Transfer(ctx context.Context, toID string, amount decimal.Decimal) (*api.StatusResponse, error)
	PayBill(ctx context.Context, billID string) (*api.StatusResponse, error)
	CreateBill(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*api.CreateBillResponse, error)
}

// KVStore persists JSON values; satisfied by *storage.Store.
type KVStore interface {
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	SetMany(ctx context.Context, values map[string]any) error
	Remove(ctx context.Context, keys ...string) error
}

// Poller is the periodic refresh loop; satisfied by *polling.Poller.
type Poller interface {
	Start(ctx context.Context)
	Stop()
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type Clipboard interface {
	Copy(text string) error
}
