// Package api is the HTTP/JSON client of the remote coin bank.
//
// # Overview
//
// Client.Request issues one request against the configured base URL,
// attaches "Authorization: Bearer <token>" when the TokenSource yields a
// token, and decodes the JSON response body best-effort: empty or malformed
// bodies leave the result zero-valued instead of failing.
//
// Typed wrappers (Login, Register, Logout, Balance, Card, ResetCard,
// Transactions, Transfer, PayBill, CreateBill) cover the endpoints the
// client uses.
//
// # Error Handling
//
// Failures are normalized into a small taxonomy matched with errors.Is/As:
//
//   - ErrRateLimited        HTTP 429
//   - ErrServiceUnavailable HTTP 503 and 504
//   - *APIError             any other non-2xx status, or a transport failure
//     (Status == 0)
//
// No request is retried.
package api
