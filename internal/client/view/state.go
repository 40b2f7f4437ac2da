// Package view holds what the user currently sees: the active screen and
// tab, the loaded balance, card and history, and the form fields. It knows
// nothing about how it is rendered.
package view

import (
	"sync"

	"github.com/dmitrijs2005/coinbank/internal/client/models"
)

type Screen string

const (
	ScreenLogin Screen = "login"
	ScreenMain  Screen = "main"
)

type Tab string

const (
	TabTransfer Tab = "transfer"
	TabCard     Tab = "card"
	TabHistory  Tab = "history"
)

// ParseTab maps a user-typed tab name to a Tab.
func ParseTab(s string) (Tab, bool) {
	switch t := Tab(s); t {
	case TabTransfer, TabCard, TabHistory:
		return t, true
	}
	return "", false
}

// Placeholders shown before the first load.
const (
	InitialBalance = "0.00000000"
	InitialCard    = "Loading..."
)

// Forms mirrors the input fields of both screens.
type Forms struct {
	LoginUsername string
	LoginPassword string

	RegisterUsername string
	RegisterPassword string
	RegisterConfirm  string

	TransferAmount string
	RecipientID    string

	BillID string

	BillAmount string
	FromUserID string
}

// Snapshot is a point-in-time copy of the state, safe to read without
// locking.
type Snapshot struct {
	Screen   Screen
	Tab      Tab
	Username string
	Balance  string
	Card     string

	// History holds rendered rows; HistoryMessage replaces them when set.
	History        []TxRow
	HistoryMessage string

	Accounts []models.SavedAccount
	Forms    Forms
}

// State is the mutable view state. Loaders write to it from the polling
// goroutine while commands read and write it from the UI goroutine.
type State struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewState() *State {
	return &State{snap: Snapshot{
		Screen:  ScreenLogin,
		Tab:     TabTransfer,
		Balance: InitialBalance,
		Card:    InitialCard,
	}}
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.snap
	out.History = append([]TxRow(nil), s.snap.History...)
	out.Accounts = append([]models.SavedAccount(nil), s.snap.Accounts...)
	return out
}

func (s *State) SetScreen(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Screen = screen
}

func (s *State) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Tab = tab
}

func (s *State) SetUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Username = username
}

func (s *State) SetAccounts(accounts []models.SavedAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Accounts = append([]models.SavedAccount(nil), accounts...)
}

// UpdateForms applies fn to the form fields under the lock.
func (s *State) UpdateForms(fn func(f *Forms)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snap.Forms)
}

// ResetAccountData drops everything loaded for the previous user. Forms
// and saved accounts are kept.
func (s *State) ResetAccountData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Username = ""
	s.snap.Balance = InitialBalance
	s.snap.Card = InitialCard
	s.snap.History = nil
	s.snap.HistoryMessage = ""
	s.snap.Tab = TabTransfer
}

func (s *State) ShowBalance(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Balance = text
}

func (s *State) ShowCard(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Card = text
}

func (s *State) ShowTransactions(txs []models.Transaction, userID string) {
	rows := BuildRows(txs, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.History = rows
	s.snap.HistoryMessage = ""
}

func (s *State) ShowTransactionsMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.History = nil
	s.snap.HistoryMessage = msg
}
