package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/client/config"
	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
	"github.com/Nandighoshbus/busticket-cli/internal/client/session"
	"github.com/Nandighoshbus/busticket-cli/internal/client/store"
	"github.com/Nandighoshbus/busticket-cli/internal/logging"
)

// Service is the session-manager surface the CLI drives. *session.Manager
// implements it; tests substitute a fake.
type Service interface {
	Register(ctx context.Context, req api.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
	IsVerified() bool
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context) error
	LoginHistory(ctx context.Context) ([]models.LoginRecord, error)
	Sessions(ctx context.Context) ([]models.RemoteSession, error)
	RevokeSession(ctx context.Context, id string) error
	StartExpirySweep(ctx context.Context, interval time.Duration)
}

// App wires configuration, the durable store, the API transport and the
// session manager behind the interactive prompt.
type App struct {
	config  *config.Config
	log     logging.Logger
	session Service
	store   *store.SQLiteRepository
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewDefault(cfg.LogFile)

	repo, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing session store", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	mgr := session.NewManager(apiClient, repo, log)

	if err := mgr.Load(ctx); err != nil {
		log.Warn(ctx, "could not restore previous session", "error", err)
	}

	return &App{
		config:  cfg,
		log:     log,
		session: mgr,
		store:   repo,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run starts the background expiry sweep and enters the command loop. It
// returns when the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.session.StartExpirySweep(sweepCtx, a.config.TokenSweepInterval)

	a.Root(ctx)
}
