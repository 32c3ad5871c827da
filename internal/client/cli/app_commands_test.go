package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
	"github.com/Nandighoshbus/busticket-cli/internal/common"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func newTestApp(svc Service, r *bufio.Reader) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{session: svc, reader: r, out: &out}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}

type fakeService struct {
	// Register
	regReq api.RegisterRequest
	regOut *models.User
	regErr error

	// Login
	loginEmail    string
	loginPassword string
	loginRemember bool
	loginOut      *models.User
	loginErr      error

	// Logout
	logoutCalled bool
	logoutErr    error

	current       *models.User
	authenticated bool
	verified      bool

	// Profile / UpdateProfile
	profileOut *models.User
	profileErr error
	updateIn   *api.ProfileUpdate
	updateOut  *models.User
	updateErr  error

	// Password / verification
	changeCurrent string
	changeNew     string
	changeErr     error
	forgotEmail   string
	forgotErr     error
	verifyToken   string
	verifyErr     error
	resendCalled  bool
	resendErr     error

	// Sessions
	historyOut []models.LoginRecord
	historyErr error
	sessionsOut []models.RemoteSession
	sessionsErr error
	revokedID   string
	revokeErr   error
}

func (f *fakeService) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	f.regReq = req
	return f.regOut, f.regErr
}
func (f *fakeService) Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, error) {
	f.loginEmail = email
	f.loginPassword = password
	f.loginRemember = rememberMe
	return f.loginOut, f.loginErr
}
func (f *fakeService) Logout(ctx context.Context) error { f.logoutCalled = true; return f.logoutErr }
func (f *fakeService) CurrentUser() *models.User        { return f.current }
func (f *fakeService) IsAuthenticated() bool            { return f.authenticated }
func (f *fakeService) IsVerified() bool                 { return f.verified }
func (f *fakeService) Profile(ctx context.Context) (*models.User, error) {
	return f.profileOut, f.profileErr
}
func (f *fakeService) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error) {
	f.updateIn = &update
	return f.updateOut, f.updateErr
}
func (f *fakeService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	f.changeCurrent = currentPassword
	f.changeNew = newPassword
	return f.changeErr
}
func (f *fakeService) ForgotPassword(ctx context.Context, email string) error {
	f.forgotEmail = email
	return f.forgotErr
}
func (f *fakeService) VerifyEmail(ctx context.Context, token string) error {
	f.verifyToken = token
	return f.verifyErr
}
func (f *fakeService) ResendVerification(ctx context.Context) error {
	f.resendCalled = true
	return f.resendErr
}
func (f *fakeService) LoginHistory(ctx context.Context) ([]models.LoginRecord, error) {
	return f.historyOut, f.historyErr
}
func (f *fakeService) Sessions(ctx context.Context) ([]models.RemoteSession, error) {
	return f.sessionsOut, f.sessionsErr
}
func (f *fakeService) RevokeSession(ctx context.Context, id string) error {
	f.revokedID = id
	return f.revokeErr
}
func (f *fakeService) StartExpirySweep(ctx context.Context, interval time.Duration) {}

var appTestUser = &models.User{
	ID:         "u1",
	Email:      "rider@example.com",
	FullName:   "Test Rider",
	Role:       models.RoleCustomer,
	IsVerified: true,
}

// ------------ tests ------------

func TestLogin_PassesCredentials(t *testing.T) {
	stubPassword(t, "pass123")
	svc := &fakeService{loginOut: appTestUser}
	app, out := newTestApp(svc, readerFromLines(
		"rider@example.com", // email
		"y",                 // stay logged in
	))

	app.Login(context.Background())

	require.Equal(t, "rider@example.com", svc.loginEmail)
	require.Equal(t, "pass123", svc.loginPassword)
	require.True(t, svc.loginRemember)
	require.Contains(t, out.String(), "Logged in as Test Rider")
}

func TestLogin_AuthFailureMessage(t *testing.T) {
	stubPassword(t, "wrong")
	svc := &fakeService{loginErr: fmt.Errorf("%w: invalid credentials", common.ErrAuthenticationFailed)}
	app, out := newTestApp(svc, readerFromLines("rider@example.com", "n"))

	app.Login(context.Background())

	require.Contains(t, out.String(), "Login failed")
	require.Contains(t, out.String(), "invalid credentials")
}

func TestLogin_UnverifiedHint(t *testing.T) {
	stubPassword(t, "pass123")
	unverified := *appTestUser
	unverified.IsVerified = false
	svc := &fakeService{loginOut: &unverified}
	app, out := newTestApp(svc, readerFromLines("rider@example.com", "n"))

	app.Login(context.Background())

	require.Contains(t, out.String(), "not verified")
}

func TestRegister_RequestIsPassed(t *testing.T) {
	stubPassword(t, "pass123")
	svc := &fakeService{regOut: appTestUser}
	app, out := newTestApp(svc, readerFromLines(
		"rider@example.com", // email
		"Test Rider",        // full name
		"+1555000",          // phone
		"y",                 // terms
	))

	app.Register(context.Background())

	require.Equal(t, "rider@example.com", svc.regReq.Email)
	require.Equal(t, "Test Rider", svc.regReq.FullName)
	require.Equal(t, "+1555000", svc.regReq.Phone)
	require.Equal(t, "pass123", svc.regReq.Password)
	require.True(t, svc.regReq.TermsAccepted)
	require.Contains(t, out.String(), "Registered and logged in")
}

func TestRegister_TermsDeclined(t *testing.T) {
	stubPassword(t, "pass123")
	svc := &fakeService{regOut: appTestUser}
	app, out := newTestApp(svc, readerFromLines(
		"rider@example.com",
		"Test Rider",
		"",
		"n",
	))

	app.Register(context.Background())

	require.Empty(t, svc.regReq.Email, "register must not be called")
	require.Contains(t, out.String(), "terms of service")
}

func TestLogout(t *testing.T) {
	svc := &fakeService{}
	app, out := newTestApp(svc, readerFromLines())

	app.Logout(context.Background())

	require.True(t, svc.logoutCalled)
	require.Contains(t, out.String(), "Logged out")
}

func TestWhoAmI(t *testing.T) {
	svc := &fakeService{current: appTestUser}
	app, out := newTestApp(svc, readerFromLines())

	app.WhoAmI()

	require.Contains(t, out.String(), "Test Rider <rider@example.com>")
	require.Contains(t, out.String(), "customer")
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	app, out := newTestApp(&fakeService{}, readerFromLines())
	app.WhoAmI()
	require.Contains(t, out.String(), "Not logged in")
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	svc := &fakeService{updateOut: appTestUser}
	app, out := newTestApp(svc, readerFromLines(
		"New Name", // full name
		"",         // phone kept
	))

	app.UpdateProfile(context.Background())

	require.NotNil(t, svc.updateIn)
	require.NotNil(t, svc.updateIn.FullName)
	require.Equal(t, "New Name", *svc.updateIn.FullName)
	require.Nil(t, svc.updateIn.Phone)
	require.Contains(t, out.String(), "Profile updated")
}

func TestUpdateProfile_NothingToUpdate(t *testing.T) {
	svc := &fakeService{}
	app, out := newTestApp(svc, readerFromLines("", ""))

	app.UpdateProfile(context.Background())

	require.Nil(t, svc.updateIn)
	require.Contains(t, out.String(), "Nothing to update")
}

func TestChangePassword(t *testing.T) {
	pwds := []string{"oldpw", "newpw"}
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		pw := pwds[0]
		pwds = pwds[1:]
		return []byte(pw), nil
	}

	svc := &fakeService{}
	app, out := newTestApp(svc, readerFromLines())

	app.ChangePassword(context.Background())

	require.Equal(t, "oldpw", svc.changeCurrent)
	require.Equal(t, "newpw", svc.changeNew)
	require.Contains(t, out.String(), "Password changed")
}

func TestVerifyEmail_Usage(t *testing.T) {
	svc := &fakeService{}
	app, out := newTestApp(svc, readerFromLines())

	app.VerifyEmail(context.Background(), nil)

	require.Empty(t, svc.verifyToken)
	require.Contains(t, out.String(), "usage: verify <token>")
}

func TestVerifyEmail_TokenPassed(t *testing.T) {
	svc := &fakeService{}
	app, out := newTestApp(svc, readerFromLines())

	app.VerifyEmail(context.Background(), []string{"tok-123"})

	require.Equal(t, "tok-123", svc.verifyToken)
	require.Contains(t, out.String(), "Email verified")
}

func TestLoginHistory_Printed(t *testing.T) {
	svc := &fakeService{historyOut: []models.LoginRecord{
		{ID: "h1", IPAddress: "10.0.0.1", UserAgent: "cli", Success: true, CreatedAt: time.Now()},
		{ID: "h2", IPAddress: "10.0.0.2", UserAgent: "web", Success: false, CreatedAt: time.Now()},
	}}
	app, out := newTestApp(svc, readerFromLines())

	app.LoginHistory(context.Background())

	require.Contains(t, out.String(), "10.0.0.1")
	require.Contains(t, out.String(), "FAILED")
}

func TestSessions_CurrentMarked(t *testing.T) {
	svc := &fakeService{sessionsOut: []models.RemoteSession{
		{ID: "s1", IPAddress: "10.0.0.1", Current: true, ExpiresAt: time.Now().Add(time.Hour)},
		{ID: "s2", IPAddress: "10.0.0.2", ExpiresAt: time.Now().Add(time.Hour)},
	}}
	app, out := newTestApp(svc, readerFromLines())

	app.Sessions(context.Background())

	require.Contains(t, out.String(), "* s1")
	require.Contains(t, out.String(), "  s2")
}

func TestRevokeSession(t *testing.T) {
	svc := &fakeService{}
	app, out := newTestApp(svc, readerFromLines())

	app.RevokeSession(context.Background(), []string{"s2"})

	require.Equal(t, "s2", svc.revokedID)
	require.Contains(t, out.String(), "Session s2 revoked")
}

func TestRevokeSession_Error(t *testing.T) {
	svc := &fakeService{revokeErr: errors.New("not found")}
	app, out := newTestApp(svc, readerFromLines())

	app.RevokeSession(context.Background(), []string{"missing"})

	require.Contains(t, out.String(), "not found")
}

func TestRoot_DispatchAndExit(t *testing.T) {
	svc := &fakeService{current: appTestUser, authenticated: true}
	app, out := newTestApp(svc, readerFromLines(
		"help",
		"whoami",
		"bogus",
		"exit",
	))

	app.Root(context.Background())

	require.Contains(t, out.String(), "Available commands")
	require.Contains(t, out.String(), "Test Rider")
	require.Contains(t, out.String(), `unknown command "bogus"`)
}

func TestRoot_ReturnsOnEOF(t *testing.T) {
	app, _ := newTestApp(&fakeService{}, rdr(""))
	app.Root(context.Background())
}

func TestHelp_VariesWithAuth(t *testing.T) {
	app, out := newTestApp(&fakeService{authenticated: true}, readerFromLines())
	app.Help()
	require.Contains(t, out.String(), "logout")

	app2, out2 := newTestApp(&fakeService{}, readerFromLines())
	app2.Help()
	require.Contains(t, out2.String(), "register")
	require.NotContains(t, out2.String(), "logout")
}
