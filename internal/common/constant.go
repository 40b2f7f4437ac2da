// Package common contains constants and error types shared by the client
// layers.
package common

const (
	// AuthorizationHeader carries "Bearer <sessionId>" on authenticated calls.
	AuthorizationHeader = "Authorization"
	// RequestIDHeader tags every outbound request for log correlation.
	RequestIDHeader = "X-Request-ID"
)
