package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"breeding-records/internal/domain/offspring"
)

type OffspringRepo struct {
	mu   sync.RWMutex
	byID map[string]offspring.Offspring
}

func NewOffspringRepo() *OffspringRepo {
	return &OffspringRepo{
		byID: make(map[string]offspring.Offspring),
	}
}

func (r *OffspringRepo) Create(ctx context.Context, o offspring.Offspring) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("offspring id required: %w", offspring.ErrInvalidInput)
	}
	if _, exists := r.byID[o.ID]; exists {
		return fmt.Errorf("offspring %q: %w", o.ID, offspring.ErrConflict)
	}
	r.byID[o.ID] = o
	return nil
}

func (r *OffspringRepo) GetByID(ctx context.Context, id string) (offspring.Offspring, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return offspring.Offspring{}, fmt.Errorf("offspring %q: %w", id, offspring.ErrNotFound)
	}
	return o, nil
}

func (r *OffspringRepo) Update(ctx context.Context, o offspring.Offspring) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[o.ID]; !exists {
		return fmt.Errorf("offspring %q: %w", o.ID, offspring.ErrNotFound)
	}
	r.byID[o.ID] = o
	return nil
}

// Rename re-keya bajo un único lock: no hay ventana en la que el registro
// exista bajo ninguno de los dos ids.
func (r *OffspringRepo) Rename(ctx context.Context, oldID string, o offspring.Offspring) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[oldID]; !exists {
		return fmt.Errorf("offspring %q: %w", oldID, offspring.ErrNotFound)
	}
	if _, exists := r.byID[o.ID]; exists {
		return fmt.Errorf("offspring %q: %w", o.ID, offspring.ErrConflict)
	}

	delete(r.byID, oldID)
	r.byID[o.ID] = o
	return nil
}

func (r *OffspringRepo) ListByLitter(ctx context.Context, litterID string) ([]offspring.Offspring, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]offspring.Offspring, 0)
	for _, o := range r.byID {
		if o.LitterID == litterID {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *OffspringRepo) DeleteByLitter(ctx context.Context, litterID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, o := range r.byID {
		if o.LitterID == litterID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
