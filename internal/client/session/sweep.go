package session

import (
	"context"
	"errors"
	"time"

	"github.com/Nandighoshbus/busticket-cli/internal/common"
)

// StartExpirySweep periodically refreshes a held-but-expired access token so
// that the first request after expiry does not pay the reactive
// 401-and-retry round trip. It blocks until ctx is cancelled; run it on its
// own goroutine. The single-flight guard in RefreshAccessToken keeps the
// sweep from racing caller-driven refreshes.
func (m *Manager) StartExpirySweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			token, expired := m.accessTokenState()
			if token == "" || !expired {
				continue
			}
			if err := m.RefreshAccessToken(ctx); err != nil {
				if errors.Is(err, common.ErrSessionExpired) {
					m.log.Info(ctx, "session expired, login required")
				} else {
					m.log.Warn(ctx, "background token refresh failed", "error", err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
