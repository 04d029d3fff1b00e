package workouts

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/api"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu    sync.Mutex
	state models.Session
	subs  []func(models.Session)
}

func signedIn(id string) models.Session {
	return models.Session{Phase: models.PhaseAuthenticated, Token: "tok-" + id, User: &models.User{ID: id}}
}

func (f *fakeSession) Current() models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Subscribe(fn func(models.Session)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *fakeSession) Expire(context.Context, string) { f.Set(models.Anonymous()) }

func (f *fakeSession) Set(s models.Session) {
	f.mu.Lock()
	f.state = s
	subs := append([]func(models.Session){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}

type fakeWorkouts struct {
	api.WorkoutClient

	mu       sync.Mutex
	items    []models.Workout
	nextID   int
	sent     []models.Workout
	err      error
	lists    atomic.Int32
	listUser []string
}

func (f *fakeWorkouts) ListWorkouts(ctx context.Context, token string, userID string) ([]models.Workout, error) {
	f.lists.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listUser = append(f.listUser, userID)
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Workout{}, f.items...), nil
}

func (f *fakeWorkouts) CreateWorkout(ctx context.Context, token string, w models.Workout) (models.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, w)
	if f.err != nil {
		return models.Workout{}, f.err
	}
	f.nextID++
	w.ID = fmt.Sprintf("w%d", f.nextID)
	f.items = append(f.items, w)
	return w, nil
}

func (f *fakeWorkouts) UpdateWorkout(ctx context.Context, token string, w models.Workout) (models.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, w)
	if f.err != nil {
		return models.Workout{}, f.err
	}
	for i := range f.items {
		if f.items[i].ID == w.ID {
			f.items[i] = w
			return w, nil
		}
	}
	return models.Workout{}, &common.NetworkError{Op: "update workout", StatusCode: http.StatusNotFound, Err: common.ErrNotFound}
}

func (f *fakeWorkouts) DeleteWorkout(ctx context.Context, token string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &common.NetworkError{Op: "delete workout", StatusCode: http.StatusNotFound, Err: common.ErrNotFound}
}

func workout(notes string) models.Workout {
	return models.Workout{
		Date:      timex.NewDate(2024, time.March, 10),
		Duration:  "45",
		Activity:  models.ActivityStrength,
		Intensity: models.IntensityHigh,
		Notes:     notes,
	}
}

func setup(t *testing.T, interval time.Duration) (*Store, *fakeWorkouts, *fakeSession) {
	t.Helper()
	sess := &fakeSession{state: signedIn("u1")}
	fw := &fakeWorkouts{}
	s := NewStore(fw, sess, interval, nil)
	t.Cleanup(s.Close)
	return s, fw, sess
}

func TestCreate_EscapesNotes(t *testing.T) {
	s, fw, _ := setup(t, time.Hour)

	created, err := s.Create(context.Background(), workout("<b>great</b>"))
	require.NoError(t, err)

	require.Len(t, fw.sent, 1)
	assert.Equal(t, "&lt;b&gt;great&lt;/b&gt;", fw.sent[0].Notes)
	assert.Equal(t, "u1", fw.sent[0].UserID)
	assert.Equal(t, "&lt;b&gt;great&lt;/b&gt;", created.Notes)
	assert.Equal(t, []models.Workout{created}, s.List())
}

func TestUpdate_EscapesNotesOnce(t *testing.T) {
	s, fw, _ := setup(t, time.Hour)
	ctx := context.Background()

	created, err := s.Create(ctx, workout("<i>"))
	require.NoError(t, err)

	_, err = s.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "&lt;i&gt;", fw.sent[1].Notes)

	edited := created
	edited.Notes = "<u>new</u>"
	updated, err := s.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, "&lt;u&gt;new&lt;/u&gt;", updated.Notes)
	assert.Equal(t, []models.Workout{updated}, s.List())
}

func TestValidationSkipsNetwork(t *testing.T) {
	s, fw, _ := setup(t, time.Hour)
	ctx := context.Background()

	bad := workout("")
	bad.Duration = "abc"
	_, err := s.Create(ctx, bad)
	assert.ErrorIs(t, err, common.ErrValidation)

	long := workout(string(make([]byte, 256)))
	_, err = s.Create(ctx, long)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Update(ctx, workout(""))
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Empty(t, fw.sent)
}

func TestDeleteAndRefresh(t *testing.T) {
	s, _, _ := setup(t, time.Hour)
	ctx := context.Background()

	a, err := s.Create(ctx, workout("a"))
	require.NoError(t, err)
	b, err := s.Create(ctx, workout("b"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.Equal(t, []models.Workout{b}, s.List())

	err = s.Delete(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, []models.Workout{b}, s.List())

	require.NoError(t, s.Refresh(ctx))
	assert.Equal(t, []models.Workout{b}, s.List())
}

func TestRefresh_ScopedToUser(t *testing.T) {
	s, fw, _ := setup(t, time.Hour)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, []string{"u1"}, fw.listUser)
}

func TestFailureKeepsMirror(t *testing.T) {
	s, fw, _ := setup(t, time.Hour)
	ctx := context.Background()

	_, err := s.Create(ctx, workout("a"))
	require.NoError(t, err)
	before := s.List()

	fw.err = &common.NetworkError{Op: "x", Err: common.ErrUnavailable}
	assert.Error(t, s.Refresh(ctx))
	_, err = s.Create(ctx, workout("b"))
	assert.Error(t, err)

	assert.Equal(t, before, s.List())
	assert.ErrorIs(t, s.Status().Err, common.ErrUnavailable)
}

func TestPoller_RefreshesWhileSignedIn(t *testing.T) {
	s, fw, _ := setup(t, 10*time.Millisecond)
	fw.items = []models.Workout{{ID: "w9", Duration: "10"}}

	s.Start(context.Background())

	require.Eventually(t, func() bool { return fw.lists.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []models.Workout{{ID: "w9", Duration: "10"}}, s.List())
}

func TestPoller_StopsOnLogoutAndRestartsOnLogin(t *testing.T) {
	s, fw, sess := setup(t, 10*time.Millisecond)
	s.Start(context.Background())
	require.Eventually(t, func() bool { return fw.lists.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)

	sess.Set(models.Anonymous())
	assert.Empty(t, s.List())

	// let a refresh that was already running finish
	time.Sleep(30 * time.Millisecond)
	stopped := fw.lists.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, fw.lists.Load(), "no refresh while anonymous")

	sess.Set(signedIn("u2"))
	require.Eventually(t, func() bool { return fw.lists.Load() > stopped }, 2*time.Second, 5*time.Millisecond)

	fw.mu.Lock()
	last := fw.listUser[len(fw.listUser)-1]
	fw.mu.Unlock()
	assert.Equal(t, "u2", last)
}

func TestPoller_NotStartedWhenAnonymous(t *testing.T) {
	sess := &fakeSession{state: models.Anonymous()}
	fw := &fakeWorkouts{}
	s := NewStore(fw, sess, 5*time.Millisecond, nil)
	defer s.Close()

	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, fw.lists.Load())
}

func TestPoller_StopsOnCloseAndCancel(t *testing.T) {
	s, fw, _ := setup(t, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return fw.lists.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	s.Close()
	n := fw.lists.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, fw.lists.Load())

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, fw.lists.Load(), "a closed store does not restart")
}

func TestDefaultInterval(t *testing.T) {
	s := NewStore(&fakeWorkouts{}, &fakeSession{}, 0, nil)
	defer s.Close()
	assert.Equal(t, DefaultRefreshInterval, s.interval)
}
