// Package cli is the terminal front end of the WastePoint client. It is a
// thin presentation layer: all session and authorization decisions live in
// the session, userstate, and guard packages.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/akimovd/wastepoint/internal/client/api"
	"github.com/akimovd/wastepoint/internal/client/config"
	"github.com/akimovd/wastepoint/internal/client/guard"
	"github.com/akimovd/wastepoint/internal/client/repositories/metadata"
	"github.com/akimovd/wastepoint/internal/client/session"
	"github.com/akimovd/wastepoint/internal/client/store"
	"github.com/akimovd/wastepoint/internal/client/userstate"
	"github.com/akimovd/wastepoint/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	client  api.Client
	session *session.Manager
	users   *userstate.Store
	guard   *guard.Guard
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.Default()

	db, err := store.OpenDatabase(ctx, cfg.DatabaseFile)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	st := store.New(metadata.NewSQLiteRepository(db), log)

	out := os.Stdout
	apiClient := api.NewHTTPClient(cfg.ServerEndpointURL, cfg.RequestTimeout, log)

	sess := session.NewManager(apiClient, st, &printNotifier{w: out}, log)
	sess.Bind()

	users := userstate.New(sess)

	return &App{
		config:  cfg,
		client:  apiClient,
		session: sess,
		users:   users,
		guard:   guard.New(users),
		reader:  bufio.NewReader(os.Stdin),
		out:     out,
	}, nil
}

// Run restores any persisted session, starts the token watcher, and hands
// control to the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.shutdown()

	a.session.Restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.session.StartTokenWatcher(watchCtx, a.config.TokenRefreshInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) shutdown() {
	a.users.Close()
	a.session.Close()
	_ = a.client.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated
}

func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.User == nil {
		return ""
	}
	return snap.User.Email + " (" + string(snap.User.RoleName) + ")"
}
