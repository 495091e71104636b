package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"breeding-records/internal/domain/litters"
)

type LitterRepo struct {
	mu   sync.RWMutex
	byID map[string]litters.Litter
}

func NewLitterRepo() *LitterRepo {
	return &LitterRepo{
		byID: make(map[string]litters.Litter),
	}
}

func (r *LitterRepo) Create(ctx context.Context, l litters.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("litter id required: %w", litters.ErrInvalidInput)
	}
	if _, exists := r.byID[l.ID]; exists {
		return fmt.Errorf("litter %q: %w", l.ID, litters.ErrConflict)
	}
	r.byID[l.ID] = l
	return nil
}

func (r *LitterRepo) GetByID(ctx context.Context, id string) (litters.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return litters.Litter{}, fmt.Errorf("litter %q: %w", id, litters.ErrNotFound)
	}
	return l, nil
}

func (r *LitterRepo) Update(ctx context.Context, l litters.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; !exists {
		return fmt.Errorf("litter %q: %w", l.ID, litters.ErrNotFound)
	}
	r.byID[l.ID] = l
	return nil
}

func (r *LitterRepo) ListByMother(ctx context.Context, motherID string, filter litters.ListFilter) ([]litters.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]litters.Litter, 0)
	for _, l := range r.byID {
		if l.MotherID != motherID {
			continue
		}

		// Ventana inclusiva en ambos extremos (birth_date)
		if filter.From != nil && l.BirthDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.BirthDate.After(*filter.To) {
			continue
		}

		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].BirthDate.Equal(out[j].BirthDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].BirthDate.Before(out[j].BirthDate)
	})

	return out, nil
}

func (r *LitterRepo) ListIDsByMother(ctx context.Context, motherID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for id, l := range r.byID {
		if l.MotherID == motherID {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Delete es no-op si el id ya no existe (cascade reintentable).
func (r *LitterRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
