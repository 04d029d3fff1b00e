package goals

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Goal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Goal)}
}

func (r *MemoryRepository) List(_ context.Context, userID string) ([]models.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Goal{}
	for _, g := range r.items {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Deadline.Equal(result[j].Deadline) {
			return result[i].Deadline.Before(result[j].Deadline.Time)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *MemoryRepository) Create(_ context.Context, goal *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[goal.ID]; ok {
		return common.ErrAlreadyExists
	}
	r.items[goal.ID] = *goal
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, goal *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[goal.ID]
	if !ok || cur.UserID != goal.UserID {
		return common.ErrNotFound
	}
	r.items[goal.ID] = *goal
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
