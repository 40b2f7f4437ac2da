package services

import (
	"context"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
	"github.com/dmitrijs2005/coinbank/internal/client/models"
	"github.com/dmitrijs2005/coinbank/internal/logging"
)

// RecentTransactions is how many history rows are displayed.
const RecentTransactions = 5

const (
	msgCardError          = "Error loading card"
	msgNoTransactions     = "No transactions found"
	msgTransactionsFailed = "Failed to load transactions"
)

// Display receives loaded data. The view state implements it.
type Display interface {
	ShowBalance(text string)
	ShowCard(text string)
	ShowTransactions(txs []models.Transaction, userID string)
	ShowTransactionsMessage(msg string)
}

// Loader fetches balance, card and history for the active session and
// pushes the result to a Display. Every method is a no-op without a session.
// Overlapping calls are not ordered: the last response to arrive wins.
type Loader struct {
	bank    BankClient
	state   *SessionState
	display Display
	log     logging.Logger
}

func NewLoader(bank BankClient, state *SessionState, display Display, log logging.Logger) *Loader {
	return &Loader{bank: bank, state: state, display: display, log: log}
}

// RefreshBalance leaves the displayed balance untouched on failure or when
// the response has no coins field.
func (l *Loader) RefreshBalance(ctx context.Context) {
	session, ok := l.state.Current()
	if !ok {
		return
	}

	resp, err := l.bank.Balance(ctx, session.UserID)
	if err != nil {
		l.log.Warn(ctx, "failed to load balance", "user_id", session.UserID, "error", err)
		return
	}
	if resp.Coins != nil {
		l.display.ShowBalance(api.FormatAmount(*resp.Coins))
	}
}

func (l *Loader) RefreshCard(ctx context.Context) {
	if _, ok := l.state.Current(); !ok {
		return
	}

	resp, err := l.bank.Card(ctx)
	if err != nil {
		l.log.Warn(ctx, "failed to load card info", "error", err)
		l.display.ShowCard(msgCardError)
		return
	}
	if resp.CardCode == "" {
		l.display.ShowCard(msgCardError)
		return
	}
	l.display.ShowCard(resp.CardCode)
}

func (l *Loader) RefreshTransactions(ctx context.Context) {
	session, ok := l.state.Current()
	if !ok {
		return
	}

	resp, err := l.bank.Transactions(ctx, 1)
	if err != nil {
		l.log.Warn(ctx, "failed to load transactions", "error", err)
		l.display.ShowTransactionsMessage(msgTransactionsFailed)
		return
	}
	if len(resp.Transactions) == 0 {
		l.display.ShowTransactionsMessage(msgNoTransactions)
		return
	}

	txs := resp.Transactions
	if len(txs) > RecentTransactions {
		txs = txs[:RecentTransactions]
	}
	l.display.ShowTransactions(txs, session.UserID)
}

// RefreshAll is what the poller runs when a cycle starts.
func (l *Loader) RefreshAll(ctx context.Context) {
	l.RefreshBalance(ctx)
	l.RefreshCard(ctx)
	l.RefreshTransactions(ctx)
}
