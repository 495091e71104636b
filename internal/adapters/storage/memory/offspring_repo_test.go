package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"breeding-records/internal/domain/offspring"
)

func seedOffspring(t *testing.T, repo *OffspringRepo, id, litterID string) {
	t.Helper()
	err := repo.Create(context.Background(), offspring.Offspring{
		ID:        id,
		LitterID:  litterID,
		Sex:       offspring.SexUnknown,
		IsAlive:   true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed offspring %s: %v", id, err)
	}
}

func TestOffspringRepo_Rename(t *testing.T) {
	repo := NewOffspringRepo()
	seedOffspring(t, repo, "C1", "M1-1")

	o, err := repo.GetByID(context.Background(), "C1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	o.ID = "C1-nuevo"
	if err := repo.Rename(context.Background(), "C1", o); err != nil {
		t.Fatalf("Rename error: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "C1"); !errors.Is(err, offspring.ErrNotFound) {
		t.Fatalf("old id must be gone, got %v", err)
	}
	got, err := repo.GetByID(context.Background(), "C1-nuevo")
	if err != nil {
		t.Fatalf("GetByID new id error: %v", err)
	}
	if got.LitterID != "M1-1" || !got.IsAlive {
		t.Fatalf("rename must carry the record over, got %+v", got)
	}
}

func TestOffspringRepo_Rename_Conflict(t *testing.T) {
	repo := NewOffspringRepo()
	seedOffspring(t, repo, "C1", "M1-1")
	seedOffspring(t, repo, "C2", "M1-1")

	o, _ := repo.GetByID(context.Background(), "C1")
	o.ID = "C2"
	err := repo.Rename(context.Background(), "C1", o)
	if !errors.Is(err, offspring.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// El registro original queda intacto.
	if _, err := repo.GetByID(context.Background(), "C1"); err != nil {
		t.Fatalf("C1 must survive the failed rename: %v", err)
	}
}

func TestOffspringRepo_DeleteByLitter(t *testing.T) {
	repo := NewOffspringRepo()
	seedOffspring(t, repo, "C1", "M1-1")
	seedOffspring(t, repo, "C2", "M1-1")
	seedOffspring(t, repo, "C3", "M1-2")

	n, err := repo.DeleteByLitter(context.Background(), "M1-1")
	if err != nil {
		t.Fatalf("DeleteByLitter error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}

	// Idempotente: la segunda pasada no encuentra nada y no falla.
	n, err = repo.DeleteByLitter(context.Background(), "M1-1")
	if err != nil || n != 0 {
		t.Fatalf("expected no-op second pass, got n=%d err=%v", n, err)
	}
	if _, err := repo.GetByID(context.Background(), "C3"); err != nil {
		t.Fatalf("other litter's offspring must survive: %v", err)
	}
}
