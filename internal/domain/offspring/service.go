package offspring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"breeding-records/internal/domain/litters"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

type Service struct {
	repo    Repository
	litters *litters.Service
	now     func() time.Time
}

func NewService(repo Repository, littersSvc *litters.Service) *Service {
	return &Service{
		repo:    repo,
		litters: littersSvc,
		now:     time.Now,
	}
}

type RecordInput struct {
	ID    string
	Sex   Sex
	Notes string
}

// Record registra una cría en una camada existente. La camada no se crea
// automáticamente: si falta => ErrNotFound. Id duplicado => ErrConflict.
func (s *Service) Record(ctx context.Context, litterID string, in RecordInput) (Offspring, error) {
	litterID = strings.TrimSpace(litterID)
	id := strings.TrimSpace(in.ID)

	if litterID == "" || id == "" {
		return Offspring{}, ErrInvalidInput
	}

	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}
	if !sex.Valid() {
		return Offspring{}, fmt.Errorf("unrecognized sex %q: %w", in.Sex, ErrInvalidInput)
	}

	if _, err := s.litters.Get(ctx, litterID); err != nil {
		return Offspring{}, fmt.Errorf("litter %q: %w", litterID, ErrNotFound)
	}

	now := s.now()
	o := Offspring{
		ID:                id,
		LitterID:          litterID,
		Sex:               sex,
		Notes:             strings.TrimSpace(in.Notes),
		IsAlive:           true,
		SurvivedToWeaning: false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Offspring{}, err
	}
	return o, nil
}

type UpdateInput struct {
	// Punteros: nil = no tocar. NewID con valor distinto re-keya el registro.
	NewID    *string
	LitterID *string
	Sex      *Sex
	Notes    *string
}

// Update actualiza campos y, si NewID difiere del actual, renombra la cría
// conservando ambos flags de ciclo de vida. Mover de camada exige que la
// camada destino exista (sin auto-creación).
func (s *Service) Update(ctx context.Context, oldID string, in UpdateInput) (Offspring, error) {
	oldID = strings.TrimSpace(oldID)
	if oldID == "" {
		return Offspring{}, ErrInvalidInput
	}

	o, err := s.repo.GetByID(ctx, oldID)
	if err != nil {
		return Offspring{}, err
	}

	if in.LitterID != nil {
		target := strings.TrimSpace(*in.LitterID)
		if target == "" {
			return Offspring{}, ErrInvalidInput
		}
		if target != o.LitterID {
			if _, err := s.litters.Get(ctx, target); err != nil {
				return Offspring{}, fmt.Errorf("litter %q: %w", target, ErrNotFound)
			}
			o.LitterID = target
		}
	}

	if in.Sex != nil {
		if !in.Sex.Valid() {
			return Offspring{}, fmt.Errorf("unrecognized sex %q: %w", *in.Sex, ErrInvalidInput)
		}
		o.Sex = *in.Sex
	}

	if in.Notes != nil {
		o.Notes = strings.TrimSpace(*in.Notes)
	}

	o.UpdatedAt = s.now()

	newID := oldID
	if in.NewID != nil && strings.TrimSpace(*in.NewID) != "" {
		newID = strings.TrimSpace(*in.NewID)
	}

	if newID != oldID {
		if _, err := s.repo.GetByID(ctx, newID); err == nil {
			return Offspring{}, fmt.Errorf("offspring %q already exists: %w", newID, ErrConflict)
		}
		o.ID = newID
		if err := s.repo.Rename(ctx, oldID, o); err != nil {
			return Offspring{}, err
		}
		return o, nil
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return Offspring{}, err
	}
	return o, nil
}

// RecordWeaning marca que la cría sobrevivió al destete. Solo aplica a
// crías vivas; sobre una muerta => ErrInvalidState sin mutar nada.
func (s *Service) RecordWeaning(ctx context.Context, id string) (Offspring, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Offspring{}, ErrInvalidInput
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Offspring{}, err
	}
	if !o.IsAlive {
		return Offspring{}, fmt.Errorf("offspring %q is dead: %w", id, ErrInvalidState)
	}

	o.SurvivedToWeaning = true
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return Offspring{}, err
	}
	return o, nil
}

// RecordDeath marca la muerte. Solo baja IsAlive; SurvivedToWeaning se
// conserva tal cual (la muerte posterior al destete no revoca el hito).
func (s *Service) RecordDeath(ctx context.Context, id string) (Offspring, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Offspring{}, ErrInvalidInput
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Offspring{}, err
	}
	if !o.IsAlive {
		return Offspring{}, fmt.Errorf("offspring %q is already dead: %w", id, ErrInvalidState)
	}

	o.IsAlive = false
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return Offspring{}, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (Offspring, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Offspring{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByLitter(ctx context.Context, litterID string) ([]Offspring, error) {
	litterID = strings.TrimSpace(litterID)
	if litterID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByLitter(ctx, litterID)
}
