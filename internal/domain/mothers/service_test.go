package mothers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Mother
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Mother{}}
}

func (r *testRepo) Create(ctx context.Context, m Mother) error {
	if _, ok := r.byID[m.ID]; ok {
		return fmt.Errorf("repo: mother %q: %w", m.ID, ErrConflict)
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Ensure(ctx context.Context, m Mother) error {
	if _, ok := r.byID[m.ID]; ok {
		return nil
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Mother, error) {
	m, ok := r.byID[id]
	if !ok {
		return Mother{}, fmt.Errorf("repo: mother %q: %w", id, ErrNotFound)
	}
	return m, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Mother, error) {
	out := make([]Mother, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) ReserveNextSequence(ctx context.Context, id string) (int64, error) {
	m, ok := r.byID[id]
	if !ok {
		return 0, fmt.Errorf("repo: mother %q: %w", id, ErrNotFound)
	}
	seq := m.NextLitterSequence
	m.NextLitterSequence++
	r.byID[id] = m
	return seq, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("repo: mother %q: %w", id, ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Purgers fake (para el cascade)
// -------------------------

type testPurgers struct {
	littersByMother map[string][]string
	deletedLitters  []string
	purgedLitters   []string
}

func newTestPurgers() *testPurgers {
	return &testPurgers{littersByMother: map[string][]string{}}
}

func (p *testPurgers) ListIDsByMother(ctx context.Context, motherID string) ([]string, error) {
	return p.littersByMother[motherID], nil
}

func (p *testPurgers) Delete(ctx context.Context, litterID string) error {
	p.deletedLitters = append(p.deletedLitters, litterID)
	return nil
}

func (p *testPurgers) DeleteByLitter(ctx context.Context, litterID string) (int, error) {
	p.purgedLitters = append(p.purgedLitters, litterID)
	return 2, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_ConflictOnDuplicate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestPurgers(), newTestPurgers())

	if _, err := svc.Register(context.Background(), "owner-1", RegisterInput{ID: "M1"}); err != nil {
		t.Fatalf("Register #1 error: %v", err)
	}
	_, err := svc.Register(context.Background(), "owner-1", RegisterInput{ID: "M1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_Register_StartsSequenceAtOne(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestPurgers(), newTestPurgers())

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m, err := svc.Register(context.Background(), "owner-1", RegisterInput{ID: "M1", Notes: "  primeriza "})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if m.NextLitterSequence != 1 {
		t.Fatalf("expected NextLitterSequence=1, got %d", m.NextLitterSequence)
	}
	if m.Notes != "primeriza" {
		t.Fatalf("expected trimmed notes, got %q", m.Notes)
	}
	if m.CreatedAt != now {
		t.Fatalf("expected CreatedAt=now")
	}
}

func TestService_Ensure_IdempotentKeepsSequence(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestPurgers(), newTestPurgers())

	if err := svc.Ensure(context.Background(), "owner-1", "M1"); err != nil {
		t.Fatalf("Ensure #1 error: %v", err)
	}

	// Avanzar la secuencia y volver a asegurar: no debe resetearla.
	if _, err := svc.ReserveNextSequence(context.Background(), "M1"); err != nil {
		t.Fatalf("ReserveNextSequence error: %v", err)
	}
	if err := svc.Ensure(context.Background(), "owner-1", "M1"); err != nil {
		t.Fatalf("Ensure #2 error: %v", err)
	}

	m, err := svc.Get(context.Background(), "M1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if m.NextLitterSequence != 2 {
		t.Fatalf("expected sequence preserved at 2, got %d", m.NextLitterSequence)
	}
}

func TestService_ReserveNextSequence_StrictlyIncreasing(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestPurgers(), newTestPurgers())

	if err := svc.Ensure(context.Background(), "owner-1", "M1"); err != nil {
		t.Fatalf("Ensure error: %v", err)
	}

	var prev int64
	for i := 1; i <= 5; i++ {
		seq, err := svc.ReserveNextSequence(context.Background(), "M1")
		if err != nil {
			t.Fatalf("ReserveNextSequence #%d error: %v", i, err)
		}
		if seq != int64(i) {
			t.Fatalf("expected sequence %d, got %d", i, seq)
		}
		if seq <= prev {
			t.Fatalf("sequence not strictly increasing: %d after %d", seq, prev)
		}
		prev = seq
	}
}

func TestService_ReserveNextSequence_NotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestPurgers(), newTestPurgers())

	_, err := svc.ReserveNextSequence(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Remove_CascadesChildBeforeParent(t *testing.T) {
	repo := newTestRepo()
	purgers := newTestPurgers()
	svc := NewService(repo, purgers, purgers)

	if err := svc.Ensure(context.Background(), "owner-1", "M1"); err != nil {
		t.Fatalf("Ensure error: %v", err)
	}
	purgers.littersByMother["M1"] = []string{"M1-1", "M1-2"}

	if err := svc.Remove(context.Background(), "M1"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	// Crías de cada camada antes que la camada, camadas antes que la madre.
	if len(purgers.purgedLitters) != 2 || purgers.purgedLitters[0] != "M1-1" || purgers.purgedLitters[1] != "M1-2" {
		t.Fatalf("expected offspring purge for M1-1 and M1-2, got %#v", purgers.purgedLitters)
	}
	if len(purgers.deletedLitters) != 2 {
		t.Fatalf("expected both litters deleted, got %#v", purgers.deletedLitters)
	}
	if _, err := svc.Get(context.Background(), "M1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected mother gone, got %v", err)
	}
}

func TestService_Remove_NotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, newTestPurgers(), newTestPurgers())

	err := svc.Remove(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
