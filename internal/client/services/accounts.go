package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coinbank/internal/client/models"
)

// SaveAccount upserts the credentials for username and marks them as the
// most recently used. The session token is never part of the record.
func (m *sessionManager) SaveAccount(ctx context.Context, username, password string) error {
	accounts, err := m.loadAccounts(ctx)
	if err != nil {
		return err
	}

	entry := models.SavedAccount{
		Username: username,
		Password: password,
		LastUsed: m.now().UnixMilli(),
	}

	replaced := false
	for i := range accounts {
		if accounts[i].Username == username {
			accounts[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		accounts = append(accounts, entry)
	}

	return m.saveAccounts(ctx, accounts)
}

// RemoveAccount drops username from the cache. Unknown names are a no-op.
func (m *sessionManager) RemoveAccount(ctx context.Context, username string) error {
	accounts, err := m.loadAccounts(ctx)
	if err != nil {
		return err
	}

	filtered := accounts[:0]
	for _, a := range accounts {
		if a.Username != username {
			filtered = append(filtered, a)
		}
	}
	return m.saveAccounts(ctx, filtered)
}

// ListAccounts returns the cache ordered by LastUsed, newest first.
func (m *sessionManager) ListAccounts(ctx context.Context) ([]models.SavedAccount, error) {
	accounts, err := m.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	models.SortByLastUsed(accounts)
	return accounts, nil
}

func (m *sessionManager) Account(ctx context.Context, username string) (models.SavedAccount, error) {
	accounts, err := m.loadAccounts(ctx)
	if err != nil {
		return models.SavedAccount{}, err
	}
	for _, a := range accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return models.SavedAccount{}, fmt.Errorf("%s: %w", username, ErrNotSaved)
}

func (m *sessionManager) loadAccounts(ctx context.Context) ([]models.SavedAccount, error) {
	var accounts []models.SavedAccount
	if _, err := m.store.Get(ctx, keyAccounts, &accounts); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return accounts, nil
}

func (m *sessionManager) saveAccounts(ctx context.Context, accounts []models.SavedAccount) error {
	if accounts == nil {
		accounts = []models.SavedAccount{}
	}
	if err := m.store.Set(ctx, keyAccounts, accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}
