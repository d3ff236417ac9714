// Package common contains shared constants and sentinel errors used across
// WealthWise components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the access token in the Authorization header.
	BearerScheme = "Bearer"

	// RequestIDHeaderName correlates a request with client-side diagnostics.
	RequestIDHeaderName = "X-Request-ID"
)
