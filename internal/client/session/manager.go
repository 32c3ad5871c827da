// Package session implements the client-side session manager for the
// bus-ticketing API: it is the single source of truth for who is logged in
// and with what credentials, keeps the access token fresh, mirrors the
// session to a durable local store, and offers one authorized-request
// primitive for everything behind the authenticated API surface.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
	"github.com/Nandighoshbus/busticket-cli/internal/client/store"
	"github.com/Nandighoshbus/busticket-cli/internal/common"
	"github.com/Nandighoshbus/busticket-cli/internal/logging"
)

// Durable store keys for the persisted session. The four keys are written
// and cleared together; a partial set is treated as no session.
const (
	keyAccessToken    = "access_token"
	keyRefreshToken   = "refresh_token"
	keyUserData       = "user_data"
	keyTokenExpiresAt = "token_expires_at"
)

// refreshKey keys the single-flight group; every refresh attempt shares it.
const refreshKey = "refresh"

// Manager holds the current session and coordinates its lifecycle. Construct
// one per application with NewManager, call Load once at startup, and tear
// it down by cancelling the context given to StartExpirySweep.
type Manager struct {
	api   api.Client
	store store.Repository
	log   logging.Logger

	// now is a test seam for the clock.
	now func() time.Time

	refreshGroup singleflight.Group

	mu           sync.Mutex
	user         *models.User
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	// epoch increments whenever the session is replaced or cleared, so a
	// refresh that started against an older session discards its result
	// instead of resurrecting it.
	epoch uint64
}

func NewManager(apiClient api.Client, repo store.Repository, log logging.Logger) *Manager {
	return &Manager{
		api:   apiClient,
		store: repo,
		log:   log,
		now:   time.Now,
	}
}

// Load restores the persisted session at startup. A missing or partial
// session, and a stored user record that fails to parse, leave a clean
// logged-out state without error: absence of a session is not a failure.
// When the restored access token is already expired, a refresh is started in
// the background; callers that need a guaranteed-fresh token must still go
// through Do.
func (m *Manager) Load(ctx context.Context) error {
	access, err := m.store.Get(ctx, keyAccessToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	refresh, err := m.store.Get(ctx, keyRefreshToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	userData, err := m.store.Get(ctx, keyUserData)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	expiresRaw, err := m.store.Get(ctx, keyTokenExpiresAt)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if len(access) == 0 || len(refresh) == 0 || len(userData) == 0 || len(expiresRaw) == 0 {
		return m.clearSession(ctx)
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		m.log.Warn(ctx, "stored user record is corrupt, resetting session", "error", err)
		return m.clearSession(ctx)
	}

	expiresAt, err := time.Parse(time.RFC3339, string(expiresRaw))
	if err != nil {
		// Re-derivable from the token itself; zero means unknown.
		expiresAt, _ = TokenExpiry(string(access))
	}

	m.mu.Lock()
	m.user = &user
	m.accessToken = string(access)
	m.refreshToken = string(refresh)
	m.expiresAt = expiresAt
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "user", user.Email, "role", user.Role)

	if IsTokenExpired(string(access), m.now()) {
		go func() {
			if err := m.RefreshAccessToken(context.WithoutCancel(ctx)); err != nil {
				m.log.Warn(context.Background(), "startup token refresh failed", "error", err)
			}
		}()
	}
	return nil
}

// Register creates a new account and installs the returned session.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	resp, err := m.api.RoundTrip(ctx, http.MethodPost, api.PathRegister, req, "")
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return m.installAuthResponse(ctx, "register", resp)
}

// Login authenticates with email and password and installs the returned
// session. On failure the existing session, if any, stays untouched.
func (m *Manager) Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, error) {
	body := api.LoginRequest{Email: email, Password: password, RememberMe: rememberMe}
	resp, err := m.api.RoundTrip(ctx, http.MethodPost, api.PathLogin, body, "")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return m.installAuthResponse(ctx, "login", resp)
}

func (m *Manager) installAuthResponse(ctx context.Context, op string, resp *api.Response) (*models.User, error) {
	if !resp.OK() || !resp.Success {
		return nil, fmt.Errorf("%s: %w", op, authFailure(resp))
	}
	var data api.AuthData
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if data.User == nil || data.Tokens == nil {
		return nil, fmt.Errorf("%s: response missing user or tokens", op)
	}
	if err := m.installSession(ctx, data.User, data.Tokens); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data.User, nil
}

// authFailure wraps the server-reported failure of a login or registration
// attempt, including field-level validation messages when present.
func authFailure(resp *api.Response) error {
	msg := resp.Message
	if msg == "" {
		msg = http.StatusText(resp.Status)
	}
	if len(resp.Errors) > 0 {
		parts := make([]string, 0, len(resp.Errors))
		for _, fe := range resp.Errors {
			parts = append(parts, fe.Field+": "+fe.Message)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return fmt.Errorf("%w: %s", common.ErrAuthenticationFailed, msg)
}

// Logout revokes the refresh token server-side on a best-effort basis and
// unconditionally clears the local session. A failing remote call is logged,
// never surfaced: local logout must always succeed.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	refreshToken := m.refreshToken
	m.mu.Unlock()

	if refreshToken != "" {
		resp, err := m.api.RoundTrip(ctx, http.MethodPost, api.PathLogout, api.TokenRequest{RefreshToken: refreshToken}, "")
		switch {
		case err != nil:
			m.log.Warn(ctx, "remote logout failed", "error", err)
		case !resp.OK():
			m.log.Warn(ctx, "remote logout rejected", "status", resp.Status)
		}
	}

	return m.clearSession(ctx)
}

// RefreshAccessToken exchanges the refresh token for a new token pair.
// Concurrent callers collapse into one exchange and observe the same
// resulting state. When no refresh token is held, or the server rejects the
// one presented, the session is cleared and ErrSessionExpired is returned;
// that is terminal until the user logs in again.
func (m *Manager) RefreshAccessToken(ctx context.Context) error {
	_, err, _ := m.refreshGroup.Do(refreshKey, func() (any, error) {
		return nil, m.refresh(ctx)
	})
	return err
}

func (m *Manager) refresh(ctx context.Context) error {
	m.mu.Lock()
	refreshToken := m.refreshToken
	epoch := m.epoch
	m.mu.Unlock()

	if refreshToken == "" {
		if err := m.clearSession(ctx); err != nil {
			m.log.Warn(ctx, "failed to clear session store", "error", err)
		}
		return common.ErrSessionExpired
	}

	resp, err := m.api.RoundTrip(ctx, http.MethodPost, api.PathRefreshToken, api.TokenRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		// A transport failure is not a rejection; the session stays.
		return fmt.Errorf("refresh token: %w", err)
	}
	if !resp.OK() || !resp.Success {
		m.log.Info(ctx, "refresh token rejected", "status", resp.Status)
		if err := m.clearSession(ctx); err != nil {
			m.log.Warn(ctx, "failed to clear session store", "error", err)
		}
		return common.ErrSessionExpired
	}

	var data api.AuthData
	if err := resp.DecodeData(&data); err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	if data.Tokens == nil {
		return errors.New("refresh token: response missing tokens")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		// A logout or a competing login finished while the exchange was in
		// flight; do not write the stale result back.
		return common.ErrSessionExpired
	}
	user := m.user
	if data.User != nil {
		user = data.User
	}
	if err := m.installLocked(ctx, user, data.Tokens); err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	return nil
}

// Do is the sanctioned way to reach the authenticated API surface. It
// refreshes a known-expired token up front, attaches the bearer credential
// when one is held, and on a 401 performs exactly one refresh and one retry
// before giving up. Any other non-2xx status is surfaced as a RequestError.
func (m *Manager) Do(ctx context.Context, method, path string, body any) (*api.Response, error) {
	token, expired := m.accessTokenState()

	if token != "" && expired {
		if err := m.RefreshAccessToken(ctx); err != nil {
			return nil, err
		}
		token = m.currentAccessToken()
	}

	resp, err := m.api.RoundTrip(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized {
		// The token was rejected despite the proactive check, e.g. after a
		// server-side revocation.
		if err := m.RefreshAccessToken(ctx); err != nil {
			return nil, err
		}
		resp, err = m.api.RoundTrip(ctx, method, path, body, m.currentAccessToken())
		if err != nil {
			return nil, err
		}
	}

	if !resp.OK() {
		return resp, &RequestError{Status: resp.Status, Message: resp.Message}
	}
	return resp, nil
}

// CurrentUser returns a copy of the logged-in user record, or nil when no
// session is held.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user and a non-expired access token are
// held. It never refreshes; callers that need a valid token go through Do.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && !m.tokenExpiredLocked()
}

// HasRole reports whether the logged-in user holds one of the given roles.
func (m *Manager) HasRole(roles ...models.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return false
	}
	for _, r := range roles {
		if m.user.Role == r {
			return true
		}
	}
	return false
}

// IsVerified reports whether the logged-in user's email is verified.
func (m *Manager) IsVerified() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.IsVerified
}

func (m *Manager) currentAccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken
}

// accessTokenState returns the held access token together with its expiry
// verdict, read atomically.
func (m *Manager) accessTokenState() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken, m.tokenExpiredLocked()
}

// tokenExpiredLocked prefers the token's own exp claim and falls back to the
// server-reported expiry instant when the claim cannot be read. An absent
// token, or one whose lifetime cannot be established either way, counts as
// expired. Callers hold m.mu.
func (m *Manager) tokenExpiredLocked() bool {
	if m.accessToken == "" {
		return true
	}
	if exp, err := TokenExpiry(m.accessToken); err == nil {
		return !exp.After(m.now())
	}
	if !m.expiresAt.IsZero() {
		return !m.expiresAt.After(m.now())
	}
	return true
}

// installSession atomically replaces the in-memory session and all four
// durable keys.
func (m *Manager) installSession(ctx context.Context, user *models.User, tokens *models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.installLocked(ctx, user, tokens)
}

func (m *Manager) installLocked(ctx context.Context, user *models.User, tokens *models.TokenPair) error {
	expiresAt := m.deriveExpiry(tokens)

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	entries := map[string][]byte{
		keyAccessToken:    []byte(tokens.AccessToken),
		keyRefreshToken:   []byte(tokens.RefreshToken),
		keyUserData:       userJSON,
		keyTokenExpiresAt: []byte(expiresAt.UTC().Format(time.RFC3339)),
	}
	if err := m.store.ReplaceAll(ctx, entries); err != nil {
		return err
	}

	m.user = user
	m.accessToken = tokens.AccessToken
	m.refreshToken = tokens.RefreshToken
	m.expiresAt = expiresAt
	m.epoch++
	return nil
}

// deriveExpiry picks the persisted expiry instant: the token's own exp claim
// when present, otherwise the server-reported lifetime.
func (m *Manager) deriveExpiry(tokens *models.TokenPair) time.Time {
	if exp, err := TokenExpiry(tokens.AccessToken); err == nil {
		return exp
	}
	if tokens.ExpiresIn > 0 {
		return m.now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}
	return time.Time{}
}

// replaceUser swaps the in-memory user and its durable copy, leaving the
// tokens alone.
func (m *Manager) replaceUser(ctx context.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(ctx, keyUserData, userJSON); err != nil {
		return err
	}
	m.user = user
	return nil
}

func (m *Manager) clearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked(ctx)
}

func (m *Manager) clearLocked(ctx context.Context) error {
	m.user = nil
	m.accessToken = ""
	m.refreshToken = ""
	m.expiresAt = time.Time{}
	m.epoch++
	return m.store.Clear(ctx)
}
