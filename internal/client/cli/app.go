package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/qiwen5/dressup/internal/client/backend"
	"github.com/qiwen5/dressup/internal/client/config"
	"github.com/qiwen5/dressup/internal/client/history"
	"github.com/qiwen5/dressup/internal/client/outfitgen"
	"github.com/qiwen5/dressup/internal/client/session"
	"github.com/qiwen5/dressup/internal/client/storage"
	"github.com/qiwen5/dressup/internal/client/store"
	"github.com/qiwen5/dressup/internal/logging"
)

// App holds the wired-up client components and the I/O streams the REPL
// reads from and writes to.
type App struct {
	config   *config.Config
	adapter  backend.Adapter
	store    *store.Store
	sessions *session.Service
	history  *history.Service
	gen      *outfitgen.Client
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the client from configuration: opens the local database,
// builds the selected backend and restores the previous session if any.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTintLogger()

	medium, err := storage.NewSQLiteMedium(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	kind, err := backend.ParseKind(c.Backend)
	if err != nil {
		return nil, err
	}
	adapter, err := backend.New(ctx, kind, medium, c.BackendLatency)
	if err != nil {
		return nil, err
	}

	sessions := session.NewService(medium)
	hist := history.NewService(medium)
	st := store.New(adapter, medium, sessions, log)
	gen := outfitgen.New(c.RelayBaseURL, c.GenerationTimeout, hist, sessions, log)

	app := &App{
		config:   c,
		adapter:  adapter,
		store:    st,
		sessions: sessions,
		history:  hist,
		gen:      gen,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	if sessions.LoggedIn() {
		if err := st.Init(ctx); err != nil {
			log.Warn(ctx, "could not restore previous session", "error", err)
		}
	}

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.LoggedIn()
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	current, err := a.sessions.Current()
	if err != nil || current == nil {
		return ""
	}
	return "(" + current.Name + ")"
}
