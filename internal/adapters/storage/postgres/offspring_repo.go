package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"breeding-records/internal/domain/offspring"
)

type OffspringRepo struct {
	db *sql.DB
}

func NewOffspringRepo(db *sql.DB) *OffspringRepo {
	return &OffspringRepo{db: db}
}

func (r *OffspringRepo) Create(ctx context.Context, o offspring.Offspring) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offspring (
			id, litter_id, sex, notes,
			is_alive, survived_to_weaning,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		o.ID,
		o.LitterID,
		string(o.Sex),
		o.Notes,
		o.IsAlive,
		o.SurvivedToWeaning,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("offspring %q: %w", o.ID, offspring.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *OffspringRepo) GetByID(ctx context.Context, id string) (offspring.Offspring, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, litter_id, sex, notes,
			is_alive, survived_to_weaning,
			created_at, updated_at
		FROM offspring
		WHERE id = $1
	`, id)

	o, err := scanOffspring(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return offspring.Offspring{}, fmt.Errorf("offspring %q: %w", id, offspring.ErrNotFound)
		}
		return offspring.Offspring{}, err
	}
	return o, nil
}

func (r *OffspringRepo) Update(ctx context.Context, o offspring.Offspring) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offspring
		SET litter_id = $2,
			sex = $3,
			notes = $4,
			is_alive = $5,
			survived_to_weaning = $6,
			updated_at = $7
		WHERE id = $1
	`,
		o.ID,
		o.LitterID,
		string(o.Sex),
		o.Notes,
		o.IsAlive,
		o.SurvivedToWeaning,
		o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("offspring %q: %w", o.ID, offspring.ErrNotFound)
	}
	return nil
}

// Rename re-keya el registro en un único UPDATE: atómico, sin ventana de
// delete+insert. La PK choca => conflicto.
func (r *OffspringRepo) Rename(ctx context.Context, oldID string, o offspring.Offspring) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offspring
		SET id = $2,
			litter_id = $3,
			sex = $4,
			notes = $5,
			is_alive = $6,
			survived_to_weaning = $7,
			updated_at = $8
		WHERE id = $1
	`,
		oldID,
		o.ID,
		o.LitterID,
		string(o.Sex),
		o.Notes,
		o.IsAlive,
		o.SurvivedToWeaning,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("offspring %q: %w", o.ID, offspring.ErrConflict)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("offspring %q: %w", oldID, offspring.ErrNotFound)
	}
	return nil
}

func (r *OffspringRepo) ListByLitter(ctx context.Context, litterID string) ([]offspring.Offspring, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, litter_id, sex, notes,
			is_alive, survived_to_weaning,
			created_at, updated_at
		FROM offspring
		WHERE litter_id = $1
		ORDER BY created_at ASC, id ASC
	`, litterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]offspring.Offspring, 0)
	for rows.Next() {
		o, err := scanOffspring(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OffspringRepo) DeleteByLitter(ctx context.Context, litterID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM offspring WHERE litter_id = $1`, litterID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanOffspring(scan func(dest ...any) error) (offspring.Offspring, error) {
	var o offspring.Offspring
	var sex string
	if err := scan(
		&o.ID,
		&o.LitterID,
		&sex,
		&o.Notes,
		&o.IsAlive,
		&o.SurvivedToWeaning,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return offspring.Offspring{}, err
	}
	o.Sex = offspring.Sex(sex)
	return o, nil
}
