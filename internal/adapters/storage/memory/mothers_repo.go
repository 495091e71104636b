package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"breeding-records/internal/domain/mothers"
)

type MotherRepo struct {
	mu   sync.RWMutex
	byID map[string]mothers.Mother
}

func NewMotherRepo() *MotherRepo {
	return &MotherRepo{
		byID: make(map[string]mothers.Mother),
	}
}

func (r *MotherRepo) Create(ctx context.Context, m mothers.Mother) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("mother id required: %w", mothers.ErrInvalidInput)
	}
	if _, exists := r.byID[m.ID]; exists {
		return fmt.Errorf("mother %q: %w", m.ID, mothers.ErrConflict)
	}
	r.byID[m.ID] = m
	return nil
}

func (r *MotherRepo) Ensure(ctx context.Context, m mothers.Mother) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("mother id required: %w", mothers.ErrInvalidInput)
	}
	if _, exists := r.byID[m.ID]; exists {
		return nil
	}
	r.byID[m.ID] = m
	return nil
}

func (r *MotherRepo) GetByID(ctx context.Context, id string) (mothers.Mother, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return mothers.Mother{}, fmt.Errorf("mother %q: %w", id, mothers.ErrNotFound)
	}
	return m, nil
}

func (r *MotherRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]mothers.Mother, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mothers.Mother, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}

	// Orden estable por created_at asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// ReserveNextSequence lee e incrementa bajo el mismo lock: equivale al
// incremento atómico del storage real.
func (r *MotherRepo) ReserveNextSequence(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return 0, fmt.Errorf("mother %q: %w", id, mothers.ErrNotFound)
	}

	seq := m.NextLitterSequence
	m.NextLitterSequence++
	r.byID[id] = m
	return seq, nil
}

func (r *MotherRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("mother %q: %w", id, mothers.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}
