// Package common defines shared constants and sentinel errors used across
// the WastePoint client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")
	ErrInvalidToken   = errors.New("invalid token")

	// Validation errors raised before any network call.
	ErrUnsupportedRole = errors.New("unsupported role")
)
