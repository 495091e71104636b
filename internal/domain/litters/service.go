package litters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"breeding-records/internal/domain/mothers"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type Service struct {
	repo    Repository
	mothers *mothers.Service
	now     func() time.Time
}

func NewService(repo Repository, mothersSvc *mothers.Service) *Service {
	return &Service{
		repo:    repo,
		mothers: mothersSvc,
		now:     time.Now,
	}
}

// Patch representa un campo presencia-sensible de un PATCH:
// Set=false => el caller no mandó el campo, no tocar.
// Set=true y Value=nil => el caller mandó null, resetear al default.
type Patch struct {
	Set   bool
	Value *string
}

type RecordInput struct {
	FatherID           *string // nil = no especificado
	BirthDate          time.Time
	ReportedLitterSize int
	Notes              string
}

// Record registra una camada: asegura la madre (creándola si hace falta),
// reserva la secuencia N y deriva el id "<motherID>-<N>". Si el id ya
// existe es una violación de la secuencia (no debería pasar) => ErrConflict.
// Un insert fallido deja un hueco en la secuencia; nunca se reemite N.
func (s *Service) Record(ctx context.Context, ownerUserID, motherID string, in RecordInput) (Litter, error) {
	motherID = strings.TrimSpace(motherID)
	if motherID == "" || in.BirthDate.IsZero() || in.ReportedLitterSize < 0 {
		return Litter{}, ErrInvalidInput
	}

	if err := s.mothers.Ensure(ctx, ownerUserID, motherID); err != nil {
		return Litter{}, err
	}

	seq, err := s.mothers.ReserveNextSequence(ctx, motherID)
	if err != nil {
		return Litter{}, err
	}

	now := s.now()
	l := Litter{
		ID:                 fmt.Sprintf("%s-%d", motherID, seq),
		MotherID:           motherID,
		FatherID:           trimFatherID(in.FatherID),
		BirthDate:          in.BirthDate,
		ReportedLitterSize: in.ReportedLitterSize,
		Notes:              strings.TrimSpace(in.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return Litter{}, err
	}
	return l, nil
}

type UpdateInput struct {
	// MotherID no es editable; si viene y difiere => ErrConflict,
	// porque el id de la camada codifica la secuencia de su madre.
	MotherID *string

	FatherID           Patch // null explícito => resetear a no especificado
	BirthDate          *time.Time
	ReportedLitterSize *int
	Notes              Patch // null explícito => resetear a ""
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Litter{}, ErrInvalidInput
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Litter{}, err
	}

	if in.MotherID != nil && strings.TrimSpace(*in.MotherID) != l.MotherID {
		return Litter{}, fmt.Errorf("mother_id is immutable: %w", ErrConflict)
	}

	if in.FatherID.Set {
		l.FatherID = trimFatherID(in.FatherID.Value)
	}
	if in.BirthDate != nil {
		if in.BirthDate.IsZero() {
			return Litter{}, ErrInvalidInput
		}
		l.BirthDate = *in.BirthDate
	}
	if in.ReportedLitterSize != nil {
		if *in.ReportedLitterSize < 0 {
			return Litter{}, ErrInvalidInput
		}
		l.ReportedLitterSize = *in.ReportedLitterSize
	}
	if in.Notes.Set {
		if in.Notes.Value == nil {
			l.Notes = ""
		} else {
			l.Notes = strings.TrimSpace(*in.Notes.Value)
		}
	}

	l.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, l); err != nil {
		return Litter{}, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id string) (Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Litter{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByMother(ctx context.Context, motherID string, filter ListFilter) ([]Litter, error) {
	motherID = strings.TrimSpace(motherID)
	if motherID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByMother(ctx, motherID, filter)
}

func trimFatherID(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
