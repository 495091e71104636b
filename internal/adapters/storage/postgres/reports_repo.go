package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"breeding-records/internal/domain/reports"
)

// ReportsRepo persiste los reportes bajo su surrogate (id) con el nombre
// en una columna UNIQUE aparte: el rename es un UPDATE de esa columna.
// target_mothers y results van como JSONB (orden de inserción preservado).
type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

func (r *ReportsRepo) Create(ctx context.Context, rep reports.Report) error {
	mothersJSON, resultsJSON, err := marshalReportLists(rep)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reports (
			id, name, owner_user_id, generated_at,
			target_mothers, results, summary, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rep.ID,
		rep.Name,
		rep.OwnerUserID,
		rep.GeneratedAt,
		mothersJSON,
		resultsJSON,
		rep.Summary,
		rep.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("report %q: %w", rep.Name, reports.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *ReportsRepo) GetByName(ctx context.Context, name string) (reports.Report, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, owner_user_id, generated_at,
			target_mothers, results, summary, created_at
		FROM reports
		WHERE name = $1
	`, name)

	var rep reports.Report
	var mothersJSON, resultsJSON []byte
	if err := row.Scan(
		&rep.ID,
		&rep.Name,
		&rep.OwnerUserID,
		&rep.GeneratedAt,
		&mothersJSON,
		&resultsJSON,
		&rep.Summary,
		&rep.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return reports.Report{}, fmt.Errorf("report %q: %w", name, reports.ErrNotFound)
		}
		return reports.Report{}, err
	}

	if err := json.Unmarshal(mothersJSON, &rep.TargetMothers); err != nil {
		return reports.Report{}, fmt.Errorf("reports: target_mothers corrupt: %w", err)
	}
	if err := json.Unmarshal(resultsJSON, &rep.Results); err != nil {
		return reports.Report{}, fmt.Errorf("reports: results corrupt: %w", err)
	}
	return rep, nil
}

func (r *ReportsRepo) Update(ctx context.Context, rep reports.Report) error {
	mothersJSON, resultsJSON, err := marshalReportLists(rep)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET generated_at = $2,
			target_mothers = $3,
			results = $4,
			summary = $5
		WHERE id = $1
	`,
		rep.ID,
		rep.GeneratedAt,
		mothersJSON,
		resultsJSON,
		rep.Summary,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("report id %q: %w", rep.ID, reports.ErrNotFound)
	}
	return nil
}

func (r *ReportsRepo) Rename(ctx context.Context, oldName, newName string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports SET name = $2 WHERE name = $1
	`, oldName, newName)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("report %q: %w", newName, reports.ErrConflict)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("report %q: %w", oldName, reports.ErrNotFound)
	}
	return nil
}

func (r *ReportsRepo) DeleteByName(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE name = $1`, name)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("report %q: %w", name, reports.ErrNotFound)
	}
	return nil
}

func marshalReportLists(rep reports.Report) ([]byte, []byte, error) {
	mothersJSON, err := json.Marshal(rep.TargetMothers)
	if err != nil {
		return nil, nil, err
	}
	resultsJSON, err := json.Marshal(rep.Results)
	if err != nil {
		return nil, nil, err
	}
	return mothersJSON, resultsJSON, nil
}
