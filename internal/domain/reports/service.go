package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"breeding-records/internal/domain/litters"
	"breeding-records/internal/domain/mothers"
	"breeding-records/internal/domain/offspring"
	"breeding-records/internal/ports/summarizer"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	// ErrDependency: el summarizer externo no respondió o respondió basura.
	// No es un defecto del core; se propaga tal cual al caller.
	ErrDependency = errors.New("dependency failure")
)

type Service struct {
	repo       Repository
	mothers    *mothers.Service
	litters    *litters.Service
	offspring  *offspring.Service
	summarizer summarizer.Summarizer // puede ser nil si no está configurado
	now        func() time.Time
}

func NewService(repo Repository, mothersSvc *mothers.Service, littersSvc *litters.Service, offspringSvc *offspring.Service, sum summarizer.Summarizer) *Service {
	return &Service{
		repo:       repo,
		mothers:    mothersSvc,
		litters:    littersSvc,
		offspring:  offspringSvc,
		summarizer: sum,
		now:        time.Now,
	}
}

type GenerateInput struct {
	MotherID string
	Start    time.Time
	End      time.Time
	Name     string
}

// Generate calcula el resumen de performance de una madre en la ventana
// [Start, End] (inclusive en ambos extremos) y lo mergea en el reporte
// nombrado: crea el reporte si no existe; si existe, une la madre al set,
// agrega la entrada solo si no está ya (igualdad exacta de string),
// refresca GeneratedAt e invalida Summary cuando el contenido cambió.
// Devuelve la lista completa de resultados, posiblemente mergeada.
func (s *Service) Generate(ctx context.Context, ownerUserID string, in GenerateInput) ([]string, error) {
	motherID := strings.TrimSpace(in.MotherID)
	name := strings.TrimSpace(in.Name)

	if motherID == "" || name == "" || in.Start.IsZero() || in.End.IsZero() {
		return nil, ErrInvalidInput
	}
	if in.End.Before(in.Start) {
		return nil, fmt.Errorf("end before start: %w", ErrInvalidInput)
	}

	if _, err := s.mothers.Get(ctx, motherID); err != nil {
		return nil, fmt.Errorf("mother %q: %w", motherID, ErrNotFound)
	}

	ls, err := s.litters.ListByMother(ctx, motherID, litters.ListFilter{From: &in.Start, To: &in.End})
	if err != nil {
		return nil, err
	}

	total, weaned := 0, 0
	for _, l := range ls {
		os, err := s.offspring.ListByLitter(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		total += len(os)
		for _, o := range os {
			if o.SurvivedToWeaning {
				weaned++
			}
		}
	}

	entry := formatEntry(motherID, in.Start, in.End, len(ls), total, weaned)
	now := s.now()

	rep, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		rep = Report{
			ID:            uuid.NewString(),
			Name:          name,
			OwnerUserID:   strings.TrimSpace(ownerUserID),
			GeneratedAt:   now,
			TargetMothers: []string{motherID},
			Results:       []string{entry},
			CreatedAt:     now,
		}
		if err := s.repo.Create(ctx, rep); err != nil {
			return nil, err
		}
		return rep.Results, nil
	}

	changed := false
	if !containsString(rep.TargetMothers, motherID) {
		rep.TargetMothers = append(rep.TargetMothers, motherID)
		changed = true
	}
	if !containsString(rep.Results, entry) {
		rep.Results = append(rep.Results, entry)
		changed = true
	}

	rep.GeneratedAt = now
	if changed {
		rep.Summary = "" // el contenido cambió: la narrativa cacheada ya no vale
	}

	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return rep.Results, nil
}

// Rename re-indexa el reporte de oldName a newName sin tocar el registro.
func (s *Service) Rename(ctx context.Context, oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)

	if oldName == "" || newName == "" || oldName == newName {
		return ErrInvalidInput
	}
	return s.repo.Rename(ctx, oldName, newName)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByName(ctx, name)
}

// View devuelve los resultados del reporte.
func (s *Service) View(ctx context.Context, name string) ([]string, error) {
	rep, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return rep.Results, nil
}

func (s *Service) Get(ctx context.Context, name string) (Report, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Report{}, ErrInvalidInput
	}
	return s.repo.GetByName(ctx, name)
}

// Summarize invoca el summarizer externo y cachea la narrativa. A lo sumo
// una invocación por estado del reporte: si Summary ya está, se devuelve
// sin tocar el colaborador.
func (s *Service) Summarize(ctx context.Context, name string) (Report, error) {
	rep, err := s.Get(ctx, name)
	if err != nil {
		return Report{}, err
	}

	if rep.Summary != "" {
		return rep, nil
	}

	if s.summarizer == nil {
		return Report{}, fmt.Errorf("summarizer not configured: %w", ErrDependency)
	}

	out, err := s.summarizer.Summarize(ctx, summarizer.Input{
		Name:          rep.Name,
		TargetMothers: rep.TargetMothers,
		Results:       rep.Results,
	})
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrDependency, err)
	}
	if strings.TrimSpace(out.Narrative) == "" {
		return Report{}, fmt.Errorf("empty narrative from summarizer: %w", ErrDependency)
	}

	rep.Summary = out.Narrative
	if err := s.repo.Update(ctx, rep); err != nil {
		return Report{}, err
	}
	return rep, nil
}

// formatEntry arma la entrada de performance para (madre, ventana).
// El formato es determinístico a propósito: el dedupe del merge depende
// de la igualdad exacta del string.
func formatEntry(motherID string, start, end time.Time, litterCount, total, weaned int) string {
	rate := "n/a"
	if total > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(weaned)/float64(total)*100)
	}
	return fmt.Sprintf(
		"mother %s %s..%s: litters=%d offspring=%d weaned=%d survival=%s",
		motherID,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		litterCount,
		total,
		weaned,
		rate,
	)
}

func containsString(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
