// Package goals keeps the signed-in user's goals in sync with the API.
//
// The store never inserts optimistically: the mirror changes only after the
// API confirmed an operation and returned the server-assigned id. Failed
// operations leave the mirror untouched and are reported both as the return
// value and through Status.
package goals

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/client/api"
	"github.com/dmitrijs2005/fittrack/internal/client/mirror"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

type Store struct {
	api     api.GoalClient
	session session.Provider
	mirror  *mirror.Mirror[models.Goal]
	logger  logging.Logger

	unsubscribe func()
}

func NewStore(client api.GoalClient, sess session.Provider, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{
		api:     client,
		session: sess,
		mirror:  mirror.New[models.Goal](),
		logger:  logger.With("module", "goals"),
	}
	s.unsubscribe = sess.Subscribe(s.onSession)
	s.mirror.Rebind(sess.Current().UserID())
	return s
}

func (s *Store) onSession(sess models.Session) {
	if s.mirror.Rebind(sess.UserID()) {
		s.logger.Debug(context.Background(), "goals cleared", "user_id", sess.UserID())
	}
}

// Close detaches the store from the session manager.
func (s *Store) Close() {
	s.unsubscribe()
}

// List returns a snapshot of the mirrored goals.
func (s *Store) List() []models.Goal {
	return s.mirror.Items()
}

func (s *Store) Status() mirror.Status {
	return s.mirror.Status()
}

// begin checks the session and takes a ticket bound to its user.
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

// Refresh replaces the mirror with the server's list. A result that was
// overtaken by a later refresh or a landed mutation is dropped silently.
func (s *Store) Refresh(ctx context.Context) error {
	sess, t, err := s.begin()
	if err != nil {
		return err
	}

	goals, err := s.api.ListGoals(ctx, sess.Token)
	if err != nil {
		return s.fail(ctx, sess, t, "refresh goals", err)
	}

	if !s.mirror.ApplyRefresh(t, goals) {
		s.logger.Debug(ctx, "stale goal list discarded", "seq", t.Seq)
	}
	s.mirror.Settle(t, nil)
	return nil
}

func (s *Store) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if err := g.Validate(); err != nil {
		return models.Goal{}, err
	}

	sess, t, err := s.begin()
	if err != nil {
		return models.Goal{}, err
	}

	g.ID = ""
	g.UserID = sess.UserID()
	created, err := s.api.CreateGoal(ctx, sess.Token, g)
	if err != nil {
		return models.Goal{}, s.fail(ctx, sess, t, "create goal", err)
	}

	if !s.mirror.ApplyMutation(t, mirror.Added(created)) {
		return models.Goal{}, common.ErrSessionChanged
	}
	s.mirror.Settle(t, nil)
	return created, nil
}

func (s *Store) Update(ctx context.Context, g models.Goal) (models.Goal, error) {
	if strings.TrimSpace(g.ID) == "" {
		return models.Goal{}, common.NewValidationError("id", "goal id is required")
	}
	if err := g.Validate(); err != nil {
		return models.Goal{}, err
	}

	sess, t, err := s.begin()
	if err != nil {
		return models.Goal{}, err
	}

	g.UserID = sess.UserID()
	updated, err := s.api.UpdateGoal(ctx, sess.Token, g)
	if err != nil {
		return models.Goal{}, s.fail(ctx, sess, t, "update goal", err)
	}

	if !s.mirror.ApplyMutation(t, mirror.Updated(updated)) {
		return models.Goal{}, common.ErrSessionChanged
	}
	s.mirror.Settle(t, nil)
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return common.NewValidationError("id", "goal id is required")
	}

	sess, t, err := s.begin()
	if err != nil {
		return err
	}

	if err := s.api.DeleteGoal(ctx, sess.Token, id); err != nil {
		return s.fail(ctx, sess, t, "delete goal", err)
	}

	if !s.mirror.ApplyMutation(t, mirror.Removed[models.Goal](id)) {
		return common.ErrSessionChanged
	}
	s.mirror.Settle(t, nil)
	return nil
}
