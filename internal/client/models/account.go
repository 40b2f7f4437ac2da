package models

import (
	"sort"
	"time"
)

// SavedAccount is a locally cached username/password pair used for
// one-click re-login. The password is stored in plaintext on purpose: the
// feature exists for convenience and the cache never leaves the machine.
// LastUsed is Unix milliseconds.
type SavedAccount struct {
	Username string `json:"username"`
	Password string `json:"password"`
	LastUsed int64  `json:"lastUsed"`
}

func (a SavedAccount) LastUsedTime() time.Time {
	return time.UnixMilli(a.LastUsed)
}

// SortByLastUsed orders accounts most recently used first, in place.
func SortByLastUsed(accounts []SavedAccount) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].LastUsed > accounts[j].LastUsed
	})
}
