package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"breeding-records/internal/domain/litters"
	"breeding-records/internal/domain/mothers"
	"breeding-records/internal/domain/offspring"
	"breeding-records/internal/ports/summarizer"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testMotherRepo struct {
	byID map[string]mothers.Mother
}

func (r *testMotherRepo) Create(ctx context.Context, m mothers.Mother) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testMotherRepo) Ensure(ctx context.Context, m mothers.Mother) error {
	if _, ok := r.byID[m.ID]; !ok {
		r.byID[m.ID] = m
	}
	return nil
}

func (r *testMotherRepo) GetByID(ctx context.Context, id string) (mothers.Mother, error) {
	m, ok := r.byID[id]
	if !ok {
		return mothers.Mother{}, mothers.ErrNotFound
	}
	return m, nil
}

func (r *testMotherRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]mothers.Mother, error) {
	return nil, nil
}

func (r *testMotherRepo) ReserveNextSequence(ctx context.Context, id string) (int64, error) {
	m, ok := r.byID[id]
	if !ok {
		return 0, mothers.ErrNotFound
	}
	seq := m.NextLitterSequence
	m.NextLitterSequence++
	r.byID[id] = m
	return seq, nil
}

func (r *testMotherRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type testLitterRepo struct {
	byID map[string]litters.Litter
}

func (r *testLitterRepo) Create(ctx context.Context, l litters.Litter) error {
	r.byID[l.ID] = l
	return nil
}

func (r *testLitterRepo) GetByID(ctx context.Context, id string) (litters.Litter, error) {
	l, ok := r.byID[id]
	if !ok {
		return litters.Litter{}, litters.ErrNotFound
	}
	return l, nil
}

func (r *testLitterRepo) Update(ctx context.Context, l litters.Litter) error {
	r.byID[l.ID] = l
	return nil
}

func (r *testLitterRepo) ListByMother(ctx context.Context, motherID string, filter litters.ListFilter) ([]litters.Litter, error) {
	out := make([]litters.Litter, 0)
	for _, l := range r.byID {
		if l.MotherID != motherID {
			continue
		}
		if filter.From != nil && l.BirthDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.BirthDate.After(*filter.To) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *testLitterRepo) ListIDsByMother(ctx context.Context, motherID string) ([]string, error) {
	return nil, nil
}

func (r *testLitterRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type testOffspringRepo struct {
	byID map[string]offspring.Offspring
}

func (r *testOffspringRepo) Create(ctx context.Context, o offspring.Offspring) error {
	if _, ok := r.byID[o.ID]; ok {
		return offspring.ErrConflict
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testOffspringRepo) GetByID(ctx context.Context, id string) (offspring.Offspring, error) {
	o, ok := r.byID[id]
	if !ok {
		return offspring.Offspring{}, offspring.ErrNotFound
	}
	return o, nil
}

func (r *testOffspringRepo) Update(ctx context.Context, o offspring.Offspring) error {
	r.byID[o.ID] = o
	return nil
}

func (r *testOffspringRepo) Rename(ctx context.Context, oldID string, o offspring.Offspring) error {
	delete(r.byID, oldID)
	r.byID[o.ID] = o
	return nil
}

func (r *testOffspringRepo) ListByLitter(ctx context.Context, litterID string) ([]offspring.Offspring, error) {
	out := make([]offspring.Offspring, 0)
	for _, o := range r.byID {
		if o.LitterID == litterID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *testOffspringRepo) DeleteByLitter(ctx context.Context, litterID string) (int, error) {
	n := 0
	for id, o := range r.byID {
		if o.LitterID == litterID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type testReportRepo struct {
	byID   map[string]Report
	byName map[string]string
}

func newTestReportRepo() *testReportRepo {
	return &testReportRepo{byID: map[string]Report{}, byName: map[string]string{}}
}

func (r *testReportRepo) Create(ctx context.Context, rep Report) error {
	if _, ok := r.byName[rep.Name]; ok {
		return fmt.Errorf("repo: report %q: %w", rep.Name, ErrConflict)
	}
	r.byID[rep.ID] = rep
	r.byName[rep.Name] = rep.ID
	return nil
}

func (r *testReportRepo) GetByName(ctx context.Context, name string) (Report, error) {
	id, ok := r.byName[name]
	if !ok {
		return Report{}, fmt.Errorf("repo: report %q: %w", name, ErrNotFound)
	}
	return r.byID[id], nil
}

func (r *testReportRepo) Update(ctx context.Context, rep Report) error {
	if _, ok := r.byID[rep.ID]; !ok {
		return fmt.Errorf("repo: report %q: %w", rep.ID, ErrNotFound)
	}
	r.byID[rep.ID] = rep
	return nil
}

func (r *testReportRepo) Rename(ctx context.Context, oldName, newName string) error {
	id, ok := r.byName[oldName]
	if !ok {
		return fmt.Errorf("repo: report %q: %w", oldName, ErrNotFound)
	}
	if _, ok := r.byName[newName]; ok {
		return fmt.Errorf("repo: report %q: %w", newName, ErrConflict)
	}
	rep := r.byID[id]
	rep.Name = newName
	r.byID[id] = rep
	delete(r.byName, oldName)
	r.byName[newName] = id
	return nil
}

func (r *testReportRepo) DeleteByName(ctx context.Context, name string) error {
	id, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("repo: report %q: %w", name, ErrNotFound)
	}
	delete(r.byID, id)
	delete(r.byName, name)
	return nil
}

// testSummarizer cuenta invocaciones para verificar el cacheo.
type testSummarizer struct {
	calls     int
	narrative string
	err       error
}

func (s *testSummarizer) Summarize(ctx context.Context, in summarizer.Input) (summarizer.Output, error) {
	s.calls++
	if s.err != nil {
		return summarizer.Output{}, s.err
	}
	return summarizer.Output{Narrative: s.narrative}, nil
}

type fixture struct {
	reports   *Service
	mothers   *mothers.Service
	litters   *litters.Service
	offspring *offspring.Service
	repo      *testReportRepo
	sum       *testSummarizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mothersSvc := mothers.NewService(&testMotherRepo{byID: map[string]mothers.Mother{}}, nil, nil)
	littersSvc := litters.NewService(&testLitterRepo{byID: map[string]litters.Litter{}}, mothersSvc)
	offspringSvc := offspring.NewService(&testOffspringRepo{byID: map[string]offspring.Offspring{}}, littersSvc)
	repo := newTestReportRepo()
	sum := &testSummarizer{narrative: "La madre M1 muestra buena tasa de destete."}

	return &fixture{
		reports:   NewService(repo, mothersSvc, littersSvc, offspringSvc, sum),
		mothers:   mothersSvc,
		litters:   littersSvc,
		offspring: offspringSvc,
		repo:      repo,
		sum:       sum,
	}
}

// seedMother arma una madre con una camada y sus crías (weaned de las
// primeras weanedCount).
func (f *fixture) seedMother(t *testing.T, motherID string, birth time.Time, offspringCount, weanedCount int) {
	t.Helper()

	l, err := f.litters.Record(context.Background(), "owner-1", motherID, litters.RecordInput{
		BirthDate:          birth,
		ReportedLitterSize: offspringCount,
	})
	if err != nil {
		t.Fatalf("seed litter: %v", err)
	}
	for i := 0; i < offspringCount; i++ {
		id := fmt.Sprintf("%s-C%d", l.ID, i+1)
		if _, err := f.offspring.Record(context.Background(), l.ID, offspring.RecordInput{ID: id}); err != nil {
			t.Fatalf("seed offspring: %v", err)
		}
		if i < weanedCount {
			if _, err := f.offspring.RecordWeaning(context.Background(), id); err != nil {
				t.Fatalf("seed weaning: %v", err)
			}
		}
	}
}

var (
	windowStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

// -------------------------
// Tests
// -------------------------

func TestService_Generate_CreatesReport(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 4, 3)

	results, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(results))
	}
	want := "mother M1 2024-01-01..2024-12-31: litters=1 offspring=4 weaned=3 survival=75.0%"
	if results[0] != want {
		t.Fatalf("entry mismatch:\n got  %q\n want %q", results[0], want)
	}
}

func TestService_Generate_IdempotentMerge(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2, 2)

	in := GenerateInput{MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1"}
	if _, err := f.reports.Generate(context.Background(), "owner-1", in); err != nil {
		t.Fatalf("Generate #1 error: %v", err)
	}
	results, err := f.reports.Generate(context.Background(), "owner-1", in)
	if err != nil {
		t.Fatalf("Generate #2 error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("repeat generate must not duplicate the entry, got %d entries", len(results))
	}

	rep, err := f.reports.Get(context.Background(), "R1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(rep.TargetMothers) != 1 || rep.TargetMothers[0] != "M1" {
		t.Fatalf("target mothers must not grow on repeat, got %#v", rep.TargetMothers)
	}
}

func TestService_Generate_MergesSecondMother(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2, 1)
	f.seedMother(t, "M2", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 3, 3)

	for _, id := range []string{"M1", "M2"} {
		if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
			MotherID: id, Start: windowStart, End: windowEnd, Name: "R1",
		}); err != nil {
			t.Fatalf("Generate %s error: %v", id, err)
		}
	}

	rep, err := f.reports.Get(context.Background(), "R1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(rep.Results) != 2 {
		t.Fatalf("expected 2 entries after merging two mothers, got %d", len(rep.Results))
	}
	if len(rep.TargetMothers) != 2 {
		t.Fatalf("expected both mothers in the target set, got %#v", rep.TargetMothers)
	}
}

func TestService_Generate_NoOffspringRateNA(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0, 0)

	results, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.Contains(results[0], "survival=n/a") {
		t.Fatalf("expected n/a survival without offspring, got %q", results[0])
	}
}

func TestService_Generate_WindowIsInclusive(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	// Camadas exactamente en los bordes, más una fuera.
	f.seedMother(t, "M1", start, 1, 0)
	f.seedMother(t, "M1", end, 1, 0)
	f.seedMother(t, "M1", end.AddDate(0, 0, 1), 1, 0)

	results, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: start, End: end, Name: "R1",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.Contains(results[0], "litters=2") {
		t.Fatalf("boundary litters must be counted, got %q", results[0])
	}
}

func TestService_Generate_ValidatesWindowAndMother(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowEnd, End: windowStart, Name: "R1",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted window, got %v", err)
	}

	_, err = f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "ghost", Start: windowStart, End: windowEnd, Name: "R1",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing mother, got %v", err)
	}
}

func TestService_Rename_ConflictLeavesOriginalIntact(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1, 1)

	for _, name := range []string{"R1", "R2"} {
		if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
			MotherID: "M1", Start: windowStart, End: windowEnd, Name: name,
		}); err != nil {
			t.Fatalf("Generate %s error: %v", name, err)
		}
	}

	err := f.reports.Rename(context.Background(), "R1", "R2")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// R1 sigue accesible bajo su nombre original.
	if _, err := f.reports.View(context.Background(), "R1"); err != nil {
		t.Fatalf("R1 must survive the failed rename: %v", err)
	}
}

func TestService_Rename_MovesName(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1, 1)

	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if err := f.reports.Rename(context.Background(), "R1", "annual"); err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	if _, err := f.reports.Get(context.Background(), "R1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old name must be gone, got %v", err)
	}
	rep, err := f.reports.Get(context.Background(), "annual")
	if err != nil {
		t.Fatalf("Get by new name error: %v", err)
	}
	if len(rep.Results) != 1 {
		t.Fatalf("rename must not touch the contents, got %#v", rep.Results)
	}
}

func TestService_Summarize_CachesNarrative(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2, 1)

	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	rep, err := f.reports.Summarize(context.Background(), "R1")
	if err != nil {
		t.Fatalf("Summarize #1 error: %v", err)
	}
	if rep.Summary == "" {
		t.Fatal("expected narrative in Summary")
	}

	if _, err := f.reports.Summarize(context.Background(), "R1"); err != nil {
		t.Fatalf("Summarize #2 error: %v", err)
	}
	if f.sum.calls != 1 {
		t.Fatalf("expected cached summary (1 call), summarizer was called %d times", f.sum.calls)
	}
}

func TestService_Summarize_InvalidatedByMerge(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2, 1)
	f.seedMother(t, "M2", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 2, 2)

	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if _, err := f.reports.Summarize(context.Background(), "R1"); err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	// Merge de contenido nuevo: la narrativa cacheada queda invalidada.
	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M2", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate merge error: %v", err)
	}
	if _, err := f.reports.Summarize(context.Background(), "R1"); err != nil {
		t.Fatalf("Summarize after merge error: %v", err)
	}
	if f.sum.calls != 2 {
		t.Fatalf("expected re-summarize after content change, got %d calls", f.sum.calls)
	}
}

func TestService_Summarize_DependencyFailure(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1, 0)
	f.sum.err = errors.New("upstream timeout")

	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err := f.reports.Summarize(context.Background(), "R1")
	if !errors.Is(err, ErrDependency) {
		t.Fatalf("expected ErrDependency, got %v", err)
	}

	// El fallo no persiste nada: reintentar con el colaborador sano funciona.
	f.sum.err = nil
	rep, err := f.reports.Summarize(context.Background(), "R1")
	if err != nil {
		t.Fatalf("retry Summarize error: %v", err)
	}
	if rep.Summary == "" {
		t.Fatal("expected narrative after retry")
	}
}

func TestService_Summarize_NotConfigured(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1, 0)
	f.reports.summarizer = nil

	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err := f.reports.Summarize(context.Background(), "R1")
	if !errors.Is(err, ErrDependency) {
		t.Fatalf("expected ErrDependency when not configured, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	f.seedMother(t, "M1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1, 0)

	if _, err := f.reports.Generate(context.Background(), "owner-1", GenerateInput{
		MotherID: "M1", Start: windowStart, End: windowEnd, Name: "R1",
	}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if err := f.reports.Delete(context.Background(), "R1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := f.reports.View(context.Background(), "R1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := f.reports.Delete(context.Background(), "R1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
