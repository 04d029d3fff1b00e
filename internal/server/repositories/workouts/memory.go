package workouts

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Workout
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Workout)}
}

// List returns the newest workouts first.
func (r *MemoryRepository) List(_ context.Context, userID string) ([]models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Workout{}
	for _, w := range r.items {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date.Time)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) Create(_ context.Context, w *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[w.ID]; ok {
		return common.ErrAlreadyExists
	}
	r.items[w.ID] = *w
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, w *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[w.ID]
	if !ok || cur.UserID != w.UserID {
		return common.ErrNotFound
	}
	r.items[w.ID] = *w
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[id]
	if !ok || cur.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
