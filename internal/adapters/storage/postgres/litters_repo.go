package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"breeding-records/internal/domain/litters"
)

type LittersRepo struct {
	db *sql.DB
}

func NewLittersRepo(db *sql.DB) *LittersRepo {
	return &LittersRepo{db: db}
}

func (r *LittersRepo) Create(ctx context.Context, l litters.Litter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO litters (
			id, mother_id, father_id,
			birth_date, reported_litter_size, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		l.ID,
		l.MotherID,
		toNullString(l.FatherID),
		l.BirthDate,
		l.ReportedLitterSize,
		l.Notes,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("litter %q: %w", l.ID, litters.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *LittersRepo) GetByID(ctx context.Context, id string) (litters.Litter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, mother_id, father_id,
			birth_date, reported_litter_size, notes,
			created_at, updated_at
		FROM litters
		WHERE id = $1
	`, id)

	l, err := scanLitter(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return litters.Litter{}, fmt.Errorf("litter %q: %w", id, litters.ErrNotFound)
		}
		return litters.Litter{}, err
	}
	return l, nil
}

func (r *LittersRepo) Update(ctx context.Context, l litters.Litter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE litters
		SET father_id = $2,
			birth_date = $3,
			reported_litter_size = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1
	`,
		l.ID,
		toNullString(l.FatherID),
		l.BirthDate,
		l.ReportedLitterSize,
		l.Notes,
		l.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("litter %q: %w", l.ID, litters.ErrNotFound)
	}
	return nil
}

func (r *LittersRepo) ListByMother(ctx context.Context, motherID string, filter litters.ListFilter) ([]litters.Litter, error) {
	// Ventana inclusiva en ambos extremos (birth_date)
	query := `
		SELECT id, mother_id, father_id,
			birth_date, reported_litter_size, notes,
			created_at, updated_at
		FROM litters
		WHERE mother_id = $1
	`
	args := []any{motherID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND birth_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND birth_date <= $%d", len(args))
	}
	query += " ORDER BY birth_date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]litters.Litter, 0)
	for rows.Next() {
		l, err := scanLitter(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LittersRepo) ListIDsByMother(ctx context.Context, motherID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM litters WHERE mother_id = $1 ORDER BY id ASC
	`, motherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Delete es no-op si el id ya no existe (cascade reintentable).
func (r *LittersRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM litters WHERE id = $1`, id)
	return err
}

func scanLitter(scan func(dest ...any) error) (litters.Litter, error) {
	var l litters.Litter
	var father sql.NullString
	if err := scan(
		&l.ID,
		&l.MotherID,
		&father,
		&l.BirthDate,
		&l.ReportedLitterSize,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return litters.Litter{}, err
	}
	if father.Valid {
		f := father.String
		l.FatherID = &f
	}
	return l, nil
}

// father_id es NULL cuando el padre no fue especificado
func toNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *v, Valid: true}
}
