// Package models defines client-side data models used by the coin bank CLI.
package models

// Session is the client-side record of an authenticated user. SessionID is
// an opaque bearer token issued by the bank.
type Session struct {
	Username  string `json:"username"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// Valid reports whether the session carries a token and a user id.
func (s Session) Valid() bool {
	return s.SessionID != "" && s.UserID != ""
}
