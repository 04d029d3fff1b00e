// Package httpapi exposes the reference REST API over echo. Routes, request
// and response bodies follow the contract used by the FitTrack client.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	Authenticate(token string) (string, error)
}

type GoalService interface {
	List(ctx context.Context, userID string) ([]models.Goal, error)
	Create(ctx context.Context, userID string, g models.Goal) (*models.Goal, error)
	Update(ctx context.Context, userID, id string, g models.Goal) (*models.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}

type WorkoutService interface {
	List(ctx context.Context, userID string) ([]models.Workout, error)
	Create(ctx context.Context, userID string, w models.Workout) (*models.Workout, error)
	Update(ctx context.Context, userID, id string, w models.Workout) (*models.Workout, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address  string
	echo     *echo.Echo
	logger   logging.Logger
	users    UserService
	goals    GoalService
	workouts WorkoutService
}

func NewServer(address string, l logging.Logger, us UserService, gs GoalService, ws WorkoutService) *Server {
	s := &Server{
		address:  address,
		echo:     echo.New(),
		logger:   l.With("module", "http_server"),
		users:    us,
		goals:    gs,
		workouts: ws,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	s.echo.Use(s.logRequests)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.POST("/auth/register", s.register)
	s.echo.POST("/auth/login", s.login)
	s.echo.GET("/auth/user", s.profile, s.requireUser)

	s.echo.GET("/goals", s.listGoals, s.requireUser)
	s.echo.POST("/goals", s.createGoal, s.requireUser)
	s.echo.PUT("/goals/:id", s.updateGoal, s.requireUser)
	s.echo.DELETE("/goals/:id", s.deleteGoal, s.requireUser)

	s.echo.GET("/workouts", s.listWorkouts, s.requireUser)
	s.echo.POST("/workouts", s.createWorkout, s.requireUser)
	s.echo.PUT("/workouts/:id", s.updateWorkout, s.requireUser)
	s.echo.DELETE("/workouts/:id", s.deleteWorkout, s.requireUser)
}

// Handler returns the router, for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
