package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
	"github.com/dmitrijs2005/coinbank/internal/client/banktest"
	"github.com/dmitrijs2005/coinbank/internal/client/models"
	"github.com/dmitrijs2005/coinbank/internal/client/polling"
	"github.com/dmitrijs2005/coinbank/internal/client/storage"
	"github.com/dmitrijs2005/coinbank/internal/common"
	"github.com/dmitrijs2005/coinbank/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type displayed struct {
	balance  string
	card     string
	txs      []models.Transaction
	txUserID string
	txMsg    string
}

type fakeDisplay struct {
	mu sync.Mutex
	d  displayed
}

func (f *fakeDisplay) ShowBalance(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.d.balance = text
}

func (f *fakeDisplay) ShowCard(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.d.card = text
}

func (f *fakeDisplay) ShowTransactions(txs []models.Transaction, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.d.txs = txs
	f.d.txUserID = userID
	f.d.txMsg = ""
}

func (f *fakeDisplay) ShowTransactionsMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.d.txs = nil
	f.d.txMsg = msg
}

func (f *fakeDisplay) snapshot() displayed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.d
}

type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (c *fakeConfirmer) Confirm(ctx context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type fakeClipboard struct {
	err    error
	copied []string
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// ---- harness ----

type harness struct {
	srv       *banktest.Server
	state     *SessionState
	store     *storage.Store
	display   *fakeDisplay
	loader    *Loader
	poller    *polling.Poller
	sessions  *sessionManager
	actions   Actions
	confirmer *fakeConfirmer
	clipboard *fakeClipboard
	clock     *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv := banktest.NewServer()
	t.Cleanup(srv.Close)

	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logging.Nop()
	state := NewSessionState()
	bank := api.NewClient(srv.URL, nil, state, log)
	display := &fakeDisplay{}
	loader := NewLoader(bank, state, display, log)
	poller := polling.New(loader, time.Hour, log)
	t.Cleanup(poller.Stop)

	store := storage.NewStore(db)
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	sm := NewSessionManager(bank, store, state, poller, log).(*sessionManager)
	sm.now = clock.Now

	confirmer := &fakeConfirmer{answer: true}
	clipboard := &fakeClipboard{}

	return &harness{
		srv:       srv,
		state:     state,
		store:     store,
		display:   display,
		loader:    loader,
		poller:    poller,
		sessions:  sm,
		actions:   NewActions(bank, state, loader, confirmer, clipboard, log),
		confirmer: confirmer,
		clipboard: clipboard,
		clock:     clock,
	}
}

// login puts the harness into the logged-in state without going through
// the login endpoint.
func (h *harness) login(userID string) {
	h.state.set(models.Session{Username: "alice", SessionID: "tok1", UserID: userID})
}

func userMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)

	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var uerr *common.UserError
	require.ErrorAs(t, err, &uerr)
	return uerr.Message
}
