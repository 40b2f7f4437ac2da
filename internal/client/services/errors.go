package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
)

var (
	// ErrRejected means the bank answered 2xx but reported the operation as
	// unsuccessful.
	ErrRejected  = errors.New("rejected by bank")
	ErrNoSession = errors.New("no active session")
	ErrNotSaved  = errors.New("account not saved")
)

const (
	msgRateLimited = "Too many attempts. Please wait a moment."
	msgBusy        = "Server is busy. Please try again."
	msgBlocked     = "Temporarily blocked. Try again later."
	msgLoginFirst  = "Please login first"
)

// describe maps err to the message shown to the user. Server-provided
// messages win over fallback; transport failures always use fallback.
func describe(err error, fallback string) string {
	if msg, ok := transientMessage(err); ok {
		return msg
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
		if isBlocked(apiErr.Message) {
			return msgBlocked
		}
		return apiErr.Message
	}
	return fallback
}

// describeTransient is describe without server messages, for handlers that
// always report a fixed failure text.
func describeTransient(err error, fallback string) string {
	if msg, ok := transientMessage(err); ok {
		return msg
	}
	return fallback
}

func transientMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, api.ErrRateLimited):
		return msgRateLimited, true
	case errors.Is(err, api.ErrServiceUnavailable):
		return msgBusy, true
	}
	return "", false
}

func isBlocked(msg string) bool {
	return strings.Contains(msg, "IP blocked")
}
