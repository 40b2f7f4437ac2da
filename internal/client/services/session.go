// Package services contains application services for the coin bank client.
// This file defines the session manager: login, register, session restore,
// logout, and the saved-account cache.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinbank/internal/client/models"
	"github.com/dmitrijs2005/coinbank/internal/common"
	"github.com/dmitrijs2005/coinbank/internal/logging"
)

// Storage keys.
const (
	keyCurrentSession = "currentSession"
	keyLastLogin      = "lastLogin"
	keyAccounts       = "accounts"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
)

const (
	msgMissingCredentials = "Please enter username and password"
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Login failed"

	msgFillAllFields     = "Please fill all fields"
	msgPasswordsMismatch = "Passwords do not match"
	msgUsernameTooShort  = "Username must be at least 3 characters"
	msgPasswordTooShort  = "Password must be at least 4 characters"
	msgRegisterFailed    = "Registration failed"
	msgRegistered        = "Account created successfully! Please login."
)

// SessionManager owns the authentication lifecycle.
//
// Contract:
//   - Login: authenticate, persist the session, remember the account, start polling.
//   - Register: validate locally, then create the account on the server.
//   - RestoreSession: revive a persisted session if the server still accepts it.
//   - Logout: always succeeds locally; the server is notified best-effort.
//   - SaveAccount / RemoveAccount / ListAccounts / Account: plaintext
//     credential cache for one-step re-login. Never validated against the server.
//
// Errors meant for the user are *common.ValidationError or *common.UserError.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
	Register(ctx context.Context, username, password, confirm string) (string, error)
	RestoreSession(ctx context.Context) (models.Session, bool)
	Logout(ctx context.Context)
	Current() (models.Session, bool)

	SaveAccount(ctx context.Context, username, password string) error
	RemoveAccount(ctx context.Context, username string) error
	ListAccounts(ctx context.Context) ([]models.SavedAccount, error)
	Account(ctx context.Context, username string) (models.SavedAccount, error)
}

type sessionManager struct {
	bank   BankClient
	store  KVStore
	state  *SessionState
	poller Poller
	log    logging.Logger
	now    func() time.Time
}

// NewSessionManager wires a SessionManager. state must be the same
// SessionState the API client reads its bearer token from.
func NewSessionManager(bank BankClient, store KVStore, state *SessionState, poller Poller, log logging.Logger) SessionManager {
	return &sessionManager{
		bank:   bank,
		store:  store,
		state:  state,
		poller: poller,
		log:    log,
		now:    time.Now,
	}
}

// Login sends the password in plaintext; hashing is the server's job. On
// success the previous polling cycle (if any) is stopped before the session
// is replaced, and a new one is started afterwards.
func (m *sessionManager) Login(ctx context.Context, username, password string) (models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Session{}, common.NewValidationError(msgMissingCredentials)
	}

	resp, err := m.bank.Login(ctx, username, password)
	if err != nil {
		m.log.Warn(ctx, "login failed", "username", username, "error", err)
		return models.Session{}, common.NewUserError(describe(err, msgLoginFailed), err)
	}

	if !resp.SessionCreated || !resp.PasswordCorrect {
		m.log.Info(ctx, "login rejected", "username", username, "error", resp.Error)
		if isBlocked(resp.Error) {
			return models.Session{}, common.NewUserError(msgBlocked, ErrRejected)
		}
		return models.Session{}, common.NewUserError(msgInvalidCredentials, ErrRejected)
	}

	session := models.Session{
		Username:  username,
		SessionID: resp.SessionID.String(),
		UserID:    resp.UserID.String(),
	}
	if !session.Valid() {
		m.log.Error(ctx, "login response without session id or user id", "username", username)
		return models.Session{}, common.NewUserError(msgLoginFailed, ErrRejected)
	}

	m.poller.Stop()
	m.state.set(session)

	if err := m.SaveAccount(ctx, username, password); err != nil {
		m.log.Warn(ctx, "failed to save account", "username", username, "error", err)
	}
	if err := m.store.SetMany(ctx, map[string]any{
		keyCurrentSession: session,
		keyLastLogin:      m.now().UnixMilli(),
	}); err != nil {
		m.log.Warn(ctx, "failed to persist session", "username", username, "error", err)
	}

	m.poller.Start(ctx)
	m.log.Info(ctx, "logged in", "username", username, "user_id", session.UserID)
	return session, nil
}

// Register validates the input locally and only then calls the server. The
// returned string is the success message.
func (m *sessionManager) Register(ctx context.Context, username, password, confirm string) (string, error) {
	username = strings.TrimSpace(username)

	switch {
	case username == "" || password == "" || confirm == "":
		return "", common.NewValidationError(msgFillAllFields)
	case password != confirm:
		return "", common.NewValidationError(msgPasswordsMismatch)
	case len([]rune(username)) < minUsernameLen:
		return "", common.NewValidationError(msgUsernameTooShort)
	case len([]rune(password)) < minPasswordLen:
		return "", common.NewValidationError(msgPasswordTooShort)
	}

	resp, err := m.bank.Register(ctx, username, password)
	if err != nil {
		m.log.Warn(ctx, "register failed", "username", username, "error", err)
		return "", common.NewUserError(describe(err, msgRegisterFailed), err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = msgRegisterFailed
		}
		return "", common.NewUserError(msg, ErrRejected)
	}

	m.log.Info(ctx, "registered", "username", username)
	return msgRegistered, nil
}

// RestoreSession revives the persisted session after probing it with one
// authenticated balance call. Every failure ends in the logged-out state
// with the persisted session removed; none is reported as an error.
func (m *sessionManager) RestoreSession(ctx context.Context) (models.Session, bool) {
	var session models.Session
	found, err := m.store.Get(ctx, keyCurrentSession, &session)
	if err != nil {
		m.log.Warn(ctx, "failed to read persisted session", "error", err)
		m.discardSession(ctx)
		return models.Session{}, false
	}
	if !found {
		return models.Session{}, false
	}
	if !session.Valid() {
		m.discardSession(ctx)
		return models.Session{}, false
	}

	if tokenExpired(session.SessionID, m.now()) {
		m.log.Info(ctx, "persisted session token expired", "username", session.Username)
		m.discardSession(ctx)
		return models.Session{}, false
	}

	m.state.set(session)
	if _, err := m.bank.Balance(ctx, session.UserID); err != nil {
		m.log.Info(ctx, "session expired, requiring new login", "username", session.Username, "error", err)
		m.discardSession(ctx)
		return models.Session{}, false
	}

	m.poller.Start(ctx)
	m.log.Info(ctx, "session restored", "username", session.Username)
	return session, true
}

// Logout stops polling before the session goes away so no refresh is sent
// with a stale token.
func (m *sessionManager) Logout(ctx context.Context) {
	m.poller.Stop()

	if _, ok := m.state.Current(); ok {
		if err := m.bank.Logout(ctx); err != nil {
			m.log.Info(ctx, "logout notification failed", "error", err)
		}
	}

	if err := m.store.Remove(ctx, keyCurrentSession); err != nil {
		m.log.Warn(ctx, "failed to remove persisted session", "error", err)
	}
	m.state.clear()
}

func (m *sessionManager) Current() (models.Session, bool) {
	return m.state.Current()
}

func (m *sessionManager) discardSession(ctx context.Context) {
	m.state.clear()
	if err := m.store.Remove(ctx, keyCurrentSession); err != nil {
		m.log.Warn(ctx, "failed to remove persisted session", "error", err)
	}
}
