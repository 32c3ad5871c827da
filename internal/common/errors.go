// Package common defines shared constants and sentinel errors used across
// the busticket client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// ErrAuthenticationFailed is returned when the server rejects a login
	// or registration attempt (bad credentials, validation failure). The
	// server-reported message is attached by wrapping.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSessionExpired is returned when a token refresh was required but
	// could not be performed (no refresh token held, or the server rejected
	// it). The local session is cleared as a side effect; the user must log
	// in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotAuthenticated is returned by operations that need a logged-in
	// user when no session is held.
	ErrNotAuthenticated = errors.New("not authenticated")
)
