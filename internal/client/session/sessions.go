package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
)

// LoginHistory returns the account's recorded login attempts.
func (m *Manager) LoginHistory(ctx context.Context) ([]models.LoginRecord, error) {
	resp, err := m.Do(ctx, http.MethodGet, api.PathLoginHistory, nil)
	if err != nil {
		return nil, fmt.Errorf("login history: %w", err)
	}
	var data api.HistoryData
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("login history: %w", err)
	}
	return data.History, nil
}

// Sessions lists the account's active server-side sessions.
func (m *Manager) Sessions(ctx context.Context) ([]models.RemoteSession, error) {
	resp, err := m.Do(ctx, http.MethodGet, api.PathSessions, nil)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	var data api.SessionsData
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return data.Sessions, nil
}

// RevokeSession terminates one server-side session by id.
func (m *Manager) RevokeSession(ctx context.Context, id string) error {
	if _, err := m.Do(ctx, http.MethodDelete, api.PathSession(id), nil); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
