// Package api implements the HTTP transport for the bus-ticketing REST API:
// endpoint paths, the response envelope, request/response DTOs, and a thin
// JSON round-trip client. Credential handling lives above it in the session
// package.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
)

// Endpoint paths, relative to the configured API base URL.
const (
	PathRegister           = "/auth/register"
	PathLogin              = "/auth/login"
	PathLogout             = "/auth/logout"
	PathRefreshToken       = "/auth/refresh-token"
	PathProfile            = "/auth/profile"
	PathChangePassword     = "/auth/change-password"
	PathForgotPassword     = "/auth/forgot-password"
	PathVerifyEmail        = "/auth/verify-email"
	PathResendVerification = "/auth/resend-verification"
	PathLoginHistory       = "/auth/login-history"
	PathSessions           = "/auth/sessions"
)

// PathSession returns the path addressing one server-side session.
func PathSession(id string) string {
	return PathSessions + "/" + id
}

// Client performs one HTTP round trip against the API. Implementations must
// not retry; retry policy belongs to the caller.
type Client interface {
	RoundTrip(ctx context.Context, method, path string, body any, accessToken string) (*Response, error)
}

// Envelope is the JSON body shape shared by every API response.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// FieldError is one validation failure reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response couples the decoded envelope with the HTTP status it arrived
// under.
type Response struct {
	Status int
	Envelope
}

// OK reports whether the response carried a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// DecodeData unmarshals the envelope's data payload into v.
func (r *Response) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return errors.New("response has no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// RegisterRequest is the body for PathRegister.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone,omitempty"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// LoginRequest is the body for PathLogin.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

// TokenRequest carries the refresh token to the refresh and logout
// endpoints; it is never sent anywhere else.
type TokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest is the body for PathChangePassword.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ForgotPasswordRequest is the body for PathForgotPassword.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyEmailRequest is the body for PathVerifyEmail.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// ProfileUpdate is the body for updating PathProfile. Nil fields are
// omitted, so a partial update touches only what the caller set.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// AuthData is the data payload of the register, login, refresh, and profile
// endpoints. Endpoints that rotate tokens fill Tokens; profile reads fill
// only User.
type AuthData struct {
	User   *models.User      `json:"user,omitempty"`
	Tokens *models.TokenPair `json:"tokens,omitempty"`
}

// HistoryData is the data payload of PathLoginHistory.
type HistoryData struct {
	History []models.LoginRecord `json:"history"`
}

// SessionsData is the data payload of PathSessions.
type SessionsData struct {
	Sessions []models.RemoteSession `json:"sessions"`
}
