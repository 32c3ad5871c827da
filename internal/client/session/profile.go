package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
	"github.com/Nandighoshbus/busticket-cli/internal/common"
)

// Profile fetches the account record from the server and replaces the
// locally held user.
func (m *Manager) Profile(ctx context.Context) (*models.User, error) {
	resp, err := m.Do(ctx, http.MethodGet, api.PathProfile, nil)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	var data api.AuthData
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if data.User == nil {
		return nil, errors.New("get profile: response missing user")
	}
	if err := m.replaceUser(ctx, data.User); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return data.User, nil
}

// UpdateProfile applies a partial update and stores the returned user. When
// the server rotates tokens alongside the update, the whole session is
// replaced.
func (m *Manager) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error) {
	resp, err := m.Do(ctx, http.MethodPut, api.PathProfile, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	var data api.AuthData
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if data.User == nil {
		return nil, errors.New("update profile: response missing user")
	}
	if data.Tokens != nil {
		err = m.installSession(ctx, data.User, data.Tokens)
	} else {
		err = m.replaceUser(ctx, data.User)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return data.User, nil
}

// ChangePassword replaces the account password.
func (m *Manager) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := api.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if _, err := m.Do(ctx, http.MethodPost, api.PathChangePassword, body); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// ForgotPassword requests a password-reset mail for the given address. No
// session is required.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	if _, err := m.Do(ctx, http.MethodPost, api.PathForgotPassword, api.ForgotPasswordRequest{Email: email}); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// VerifyEmail confirms the account email with the token from the
// verification mail and flips the local verified flag right away, without
// waiting for a profile re-fetch.
func (m *Manager) VerifyEmail(ctx context.Context, token string) error {
	if _, err := m.Do(ctx, http.MethodPost, api.PathVerifyEmail, api.VerifyEmailRequest{Token: token}); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	m.mu.Lock()
	current := m.user
	m.mu.Unlock()
	if current == nil {
		return nil
	}

	updated := *current
	updated.IsVerified = true
	if err := m.replaceUser(ctx, &updated); err != nil {
		m.log.Warn(ctx, "failed to persist verified flag", "error", err)
	}
	return nil
}

// ResendVerification asks the server to send a fresh verification mail to
// the logged-in account.
func (m *Manager) ResendVerification(ctx context.Context) error {
	if m.CurrentUser() == nil {
		return common.ErrNotAuthenticated
	}
	if _, err := m.Do(ctx, http.MethodPost, api.PathResendVerification, nil); err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}
	return nil
}
