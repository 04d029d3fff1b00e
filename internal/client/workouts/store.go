// Package workouts keeps the signed-in user's workout log in sync with the
// API and refreshes it in the background while someone is signed in.
package workouts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/api"
	"github.com/dmitrijs2005/fittrack/internal/client/mirror"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// DefaultRefreshInterval is used when the configured interval is not positive.
const DefaultRefreshInterval = 60 * time.Second

type Store struct {
	api      api.WorkoutClient
	session  session.Provider
	mirror   *mirror.Mirror[models.Workout]
	logger   logging.Logger
	interval time.Duration

	unsubscribe func()

	mu         sync.Mutex
	root       context.Context
	stop       context.CancelFunc
	closed     bool
	pollOwner  string
	pollCancel context.CancelFunc
	wg         sync.WaitGroup
}

func NewStore(client api.WorkoutClient, sess session.Provider, interval time.Duration, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	s := &Store{
		api:      client,
		session:  sess,
		mirror:   mirror.New[models.Workout](),
		logger:   logger.With("module", "workouts"),
		interval: interval,
	}
	s.unsubscribe = sess.Subscribe(s.onSession)
	s.mirror.Rebind(sess.Current().UserID())
	return s
}

func (s *Store) onSession(sess models.Session) {
	if s.mirror.Rebind(sess.UserID()) {
		s.logger.Debug(context.Background(), "workouts cleared", "user_id", sess.UserID())
	}
	s.reconcilePoller(sess.UserID())
}

// Start enables background refresh. The poller runs only while a user is
// signed in and is restarted for every new user. It stops when ctx is done or
// Close is called.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.root != nil || s.closed {
		s.mu.Unlock()
		return
	}
	s.root, s.stop = context.WithCancel(ctx)
	s.mu.Unlock()

	s.reconcilePoller(s.session.Current().UserID())
}

func (s *Store) reconcilePoller(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil || s.closed {
		return
	}
	if owner == s.pollOwner && s.pollCancel != nil {
		return
	}
	if s.pollCancel != nil {
		s.pollCancel()
		s.pollCancel = nil
	}
	s.pollOwner = owner
	if owner == "" {
		return
	}

	ctx, cancel := context.WithCancel(s.root)
	s.pollCancel = cancel
	s.wg.Add(1)
	go s.poll(ctx, owner)
}

func (s *Store) poll(ctx context.Context, owner string) {
	defer s.wg.Done()

	s.logger.Debug(ctx, "workout poller started", "user_id", owner, "interval", s.interval)
	defer s.logger.Debug(context.Background(), "workout poller stopped", "user_id", owner)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.logger.Debug(ctx, "background refresh failed", "error", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the poller, waits for it to exit and detaches the store from
// the session manager.
func (s *Store) Close() {
	s.unsubscribe()

	s.mu.Lock()
	s.closed = true
	if s.stop != nil {
		s.stop()
	}
	s.pollCancel = nil
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Store) List() []models.Workout {
	return s.mirror.Items()
}

func (s *Store) Status() mirror.Status {
	return s.mirror.Status()
}

func (s *Store) begin() (models.Session, mirror.Ticket, error) {
	sess := s.session.Current()
	if !sess.Authenticated() {
		return sess, mirror.Ticket{}, common.ErrNotAuthenticated
	}
	t := s.mirror.Issue()
	if t.Owner != sess.UserID() {
		s.mirror.Settle(t, nil)
		return sess, mirror.Ticket{}, common.ErrSessionChanged
	}
	return sess, t, nil
}

func (s *Store) fail(ctx context.Context, sess models.Session, t mirror.Ticket, op string, err error) error {
	if errors.Is(err, common.ErrUnauthorized) {
		s.session.Expire(ctx, sess.Token)
	}
	s.mirror.Settle(t, err)
	s.logger.Warn(ctx, op+" failed", "error", err)
	return err
}

// Refresh replaces the mirror with the user's workouts. Stale results are
// dropped silently.
func (s *Store) Refresh(ctx context.Context) error {
	sess, t, err := s.begin()
	if err != nil {
		return err
	}

	items, err := s.api.ListWorkouts(ctx, sess.Token, sess.UserID())
	if err != nil {
		return s.fail(ctx, sess, t, "refresh workouts", err)
	}

	if !s.mirror.ApplyRefresh(t, items) {
		s.logger.Debug(ctx, "stale workout list discarded", "seq", t.Seq)
	}
	s.mirror.Settle(t, nil)
	return nil
}

// Create validates w, escapes its notes and sends it.
func (s *Store) Create(ctx context.Context, w models.Workout) (models.Workout, error) {
	w, err := w.Prepare()
	if err != nil {
		return models.Workout{}, err
	}

	sess, t, err := s.begin()
	if err != nil {
		return models.Workout{}, err
	}

	w.ID = ""
	w.UserID = sess.UserID()
	created, err := s.api.CreateWorkout(ctx, sess.Token, w)
	if err != nil {
		return models.Workout{}, s.fail(ctx, sess, t, "create workout", err)
	}

	if !s.mirror.ApplyMutation(t, mirror.Added(created)) {
		return models.Workout{}, common.ErrSessionChanged
	}
	s.mirror.Settle(t, nil)
	return created, nil
}

// Update applies the same validation and escaping as Create. Escaping is
// idempotent, so already escaped notes are sent unchanged.
func (s *Store) Update(ctx context.Context, w models.Workout) (models.Workout, error) {
	if strings.TrimSpace(w.ID) == "" {
		return models.Workout{}, common.NewValidationError("id", "workout id is required")
	}
	w, err := w.Prepare()
	if err != nil {
		return models.Workout{}, err
	}

	sess, t, err := s.begin()
	if err != nil {
		return models.Workout{}, err
	}

	w.UserID = sess.UserID()
	updated, err := s.api.UpdateWorkout(ctx, sess.Token, w)
	if err != nil {
		return models.Workout{}, s.fail(ctx, sess, t, "update workout", err)
	}

	if !s.mirror.ApplyMutation(t, mirror.Updated(updated)) {
		return models.Workout{}, common.ErrSessionChanged
	}
	s.mirror.Settle(t, nil)
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return common.NewValidationError("id", "workout id is required")
	}

	sess, t, err := s.begin()
	if err != nil {
		return err
	}

	if err := s.api.DeleteWorkout(ctx, sess.Token, id); err != nil {
		return s.fail(ctx, sess, t, "delete workout", err)
	}

	if !s.mirror.ApplyMutation(t, mirror.Removed[models.Workout](id)) {
		return common.ErrSessionChanged
	}
	s.mirror.Settle(t, nil)
	return nil
}
