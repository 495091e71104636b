package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"breeding-records/internal/domain/reports"
)

// ReportRepo guarda los reportes bajo su surrogate (ID) y mantiene un
// índice nombre -> ID aparte; el rename solo muta el índice.
type ReportRepo struct {
	mu     sync.RWMutex
	byID   map[string]reports.Report
	byName map[string]string
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{
		byID:   make(map[string]reports.Report),
		byName: make(map[string]string),
	}
}

func (r *ReportRepo) Create(ctx context.Context, rep reports.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rep.ID) == "" || strings.TrimSpace(rep.Name) == "" {
		return fmt.Errorf("report id and name required: %w", reports.ErrInvalidInput)
	}
	if _, exists := r.byName[rep.Name]; exists {
		return fmt.Errorf("report %q: %w", rep.Name, reports.ErrConflict)
	}

	r.byID[rep.ID] = cloneReport(rep)
	r.byName[rep.Name] = rep.ID
	return nil
}

func (r *ReportRepo) GetByName(ctx context.Context, name string) (reports.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return reports.Report{}, fmt.Errorf("report %q: %w", name, reports.ErrNotFound)
	}
	return cloneReport(r.byID[id]), nil
}

func (r *ReportRepo) Update(ctx context.Context, rep reports.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rep.ID]; !exists {
		return fmt.Errorf("report id %q: %w", rep.ID, reports.ErrNotFound)
	}
	r.byID[rep.ID] = cloneReport(rep)
	return nil
}

// Rename muta solo el índice de nombres, bajo un único lock.
func (r *ReportRepo) Rename(ctx context.Context, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[oldName]
	if !ok {
		return fmt.Errorf("report %q: %w", oldName, reports.ErrNotFound)
	}
	if _, taken := r.byName[newName]; taken {
		return fmt.Errorf("report %q: %w", newName, reports.ErrConflict)
	}

	delete(r.byName, oldName)
	r.byName[newName] = id

	rep := r.byID[id]
	rep.Name = newName
	r.byID[id] = rep
	return nil
}

func (r *ReportRepo) DeleteByName(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("report %q: %w", name, reports.ErrNotFound)
	}
	delete(r.byName, name)
	delete(r.byID, id)
	return nil
}

// cloneReport copia los slices para que el caller no aliase el estado
// guardado (los merges hacen append sobre lo que leyeron).
func cloneReport(rep reports.Report) reports.Report {
	out := rep
	out.TargetMothers = append([]string(nil), rep.TargetMothers...)
	out.Results = append([]string(nil), rep.Results...)
	return out
}
