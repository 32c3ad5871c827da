package models

import "time"

// TokenPair is the credential pair minted by the auth endpoints. The access
// token is a short-lived signed bearer token; the refresh token is an opaque
// secret presented only to the refresh and logout endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the access token validity in seconds, when the server
	// reports it. The expiry embedded in the token itself takes precedence.
	ExpiresIn int64 `json:"expires_in,omitempty"`
}

// LoginRecord is one entry of the account's login history.
type LoginRecord struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// RemoteSession describes one server-side session of the account, as
// reported by the sessions endpoint. Current marks the session backing this
// client's own credentials.
type RemoteSession struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
