package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/api"
	"github.com/dmitrijs2005/fittrack/internal/client/config"
	"github.com/dmitrijs2005/fittrack/internal/client/goals"
	"github.com/dmitrijs2005/fittrack/internal/client/mirror"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/client/storage"
	"github.com/dmitrijs2005/fittrack/internal/client/workouts"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

type sessionManager interface {
	Current() models.Session
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
}

type goalStore interface {
	List() []models.Goal
	Status() mirror.Status
	Refresh(ctx context.Context) error
	Create(ctx context.Context, g models.Goal) (models.Goal, error)
	Update(ctx context.Context, g models.Goal) (models.Goal, error)
	Delete(ctx context.Context, id string) error
}

type workoutStore interface {
	List() []models.Workout
	Status() mirror.Status
	Refresh(ctx context.Context) error
	Create(ctx context.Context, w models.Workout) (models.Workout, error)
	Update(ctx context.Context, w models.Workout) (models.Workout, error)
	Delete(ctx context.Context, id string) error
	Start(ctx context.Context)
}

type App struct {
	config   *config.Config
	session  sessionManager
	goals    goalStore
	workouts workoutStore
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	closers   []func()
	closeOnce sync.Once
}

// NewApp opens the local database and builds the API client, the session
// manager and both stores from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	client := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout,
		api.WithRateLimit(c.RateLimit, 1),
		api.WithLogger(logger.With("module", "api")),
	)

	sm := session.NewManager(client, storage.NewSQLiteTokenStore(db), session.NewJWTVerifier(c.JWTSecret), logger)
	gs := goals.NewStore(client, sm, logger)
	ws := workouts.NewStore(client, sm, c.WorkoutRefreshInterval, logger)

	a := newApp(c, sm, gs, ws, logger, os.Stdin, os.Stdout)
	a.closers = []func(){ws.Close, gs.Close, func() { closeDB(db) }}
	return a, nil
}

func closeDB(db *sql.DB) { _ = db.Close() }

func newApp(c *config.Config, sm sessionManager, gs goalStore, ws workoutStore, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		config:   c,
		session:  sm,
		goals:    gs,
		workouts: ws,
		logger:   logger.With("module", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores the saved session, starts background refresh and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to FitTrack CLI (type 'help' for commands)")

	if err := a.session.Restore(ctx); err != nil {
		a.report(ctx, err)
	} else if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.displayName())
	}

	a.workouts.Start(ctx)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close stops the stores and releases the database. It is safe to call
// more than once and from a signal handler.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		for _, c := range a.closers {
			c()
		}
	})
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}

func (a *App) displayName() string {
	s := a.session.Current()
	if s.User == nil {
		return ""
	}
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Email
}

func (a *App) getStatus() string {
	s := a.session.Current()
	switch s.Phase {
	case models.PhaseAuthenticated:
		return fmt.Sprintf("(%s)", a.displayName())
	case models.PhaseAuthenticating:
		return "(signing in)"
	default:
		return ""
	}
}

// report prints the user-facing description of err and logs the details.
func (a *App) report(ctx context.Context, err error) {
	a.logger.Debug(ctx, "command failed", "error", err)
	fmt.Fprintln(a.out, "Error:", common.Describe(err))
}
