package mothers

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type Service struct {
	repo      Repository
	litters   LitterPurger
	offspring OffspringPurger
	now       func() time.Time
}

func NewService(repo Repository, litters LitterPurger, offspring OffspringPurger) *Service {
	return &Service{
		repo:      repo,
		litters:   litters,
		offspring: offspring,
		now:       time.Now,
	}
}

type RegisterInput struct {
	ID    string
	Notes string
}

// Register crea una madre explícitamente. Falla ErrConflict si el id ya existe.
func (s *Service) Register(ctx context.Context, ownerUserID string, in RegisterInput) (Mother, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	id := strings.TrimSpace(in.ID)

	if ownerUserID == "" || id == "" {
		return Mother{}, ErrInvalidInput
	}

	m := Mother{
		ID:                 id,
		OwnerUserID:        ownerUserID,
		Notes:              strings.TrimSpace(in.Notes),
		NextLitterSequence: 1,
		CreatedAt:          s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Mother{}, err
	}
	return m, nil
}

// Ensure crea la madre con NextLitterSequence = 1 si no existe.
// Idempotente: nunca falla por "ya existe".
func (s *Service) Ensure(ctx context.Context, ownerUserID, id string) error {
	ownerUserID = strings.TrimSpace(ownerUserID)
	id = strings.TrimSpace(id)

	if ownerUserID == "" || id == "" {
		return ErrInvalidInput
	}

	return s.repo.Ensure(ctx, Mother{
		ID:                 id,
		OwnerUserID:        ownerUserID,
		NextLitterSequence: 1,
		CreatedAt:          s.now(),
	})
}

func (s *Service) Get(ctx context.Context, id string) (Mother, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Mother{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Mother, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ReserveNextSequence emite el próximo número de camada para la madre.
// Estrictamente creciente por madre; delega la atomicidad al repo.
func (s *Service) ReserveNextSequence(ctx context.Context, id string) (int64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.ReserveNextSequence(ctx, id)
}

// Remove borra la madre en cascada: crías de cada camada, camadas, madre,
// en ese orden (hijo antes que padre). Sin rollback: si falla a mitad queda
// un cascade parcial, pero un retry lo completa porque los purgers tratan
// "ya no existe" como no-op.
func (s *Service) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	litterIDs, err := s.litters.ListIDsByMother(ctx, id)
	if err != nil {
		return err
	}

	for _, lid := range litterIDs {
		if _, err := s.offspring.DeleteByLitter(ctx, lid); err != nil {
			return err
		}
		if err := s.litters.Delete(ctx, lid); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}
