package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"breeding-records/internal/domain/mothers"
)

type MothersRepo struct {
	db *sql.DB
}

func NewMothersRepo(db *sql.DB) *MothersRepo {
	return &MothersRepo{db: db}
}

func (r *MothersRepo) Create(ctx context.Context, m mothers.Mother) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mothers (id, owner_user_id, notes, next_litter_sequence, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		m.ID,
		m.OwnerUserID,
		m.Notes,
		m.NextLitterSequence,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("mother %q: %w", m.ID, mothers.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *MothersRepo) Ensure(ctx context.Context, m mothers.Mother) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mothers (id, owner_user_id, notes, next_litter_sequence, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO NOTHING
	`,
		m.ID,
		m.OwnerUserID,
		m.Notes,
		m.NextLitterSequence,
		m.CreatedAt,
	)
	return err
}

func (r *MothersRepo) GetByID(ctx context.Context, id string) (mothers.Mother, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return mothers.Mother{}, fmt.Errorf("mother id required: %w", mothers.ErrNotFound)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, notes, next_litter_sequence, created_at
		FROM mothers
		WHERE id = $1
	`, id)

	var m mothers.Mother
	if err := row.Scan(&m.ID, &m.OwnerUserID, &m.Notes, &m.NextLitterSequence, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return mothers.Mother{}, fmt.Errorf("mother %q: %w", id, mothers.ErrNotFound)
		}
		return mothers.Mother{}, err
	}
	return m, nil
}

func (r *MothersRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]mothers.Mother, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, notes, next_litter_sequence, created_at
		FROM mothers
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mothers.Mother, 0)
	for rows.Next() {
		var m mothers.Mother
		if err := rows.Scan(&m.ID, &m.OwnerUserID, &m.Notes, &m.NextLitterSequence, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ReserveNextSequence incrementa y lee en un único UPDATE: el storage
// garantiza la atomicidad, nunca se emite el mismo número dos veces.
func (r *MothersRepo) ReserveNextSequence(ctx context.Context, id string) (int64, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE mothers
		SET next_litter_sequence = next_litter_sequence + 1
		WHERE id = $1
		RETURNING next_litter_sequence - 1
	`, id)

	var seq int64
	if err := row.Scan(&seq); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("mother %q: %w", id, mothers.ErrNotFound)
		}
		return 0, err
	}
	return seq, nil
}

func (r *MothersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mothers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("mother %q: %w", id, mothers.ErrNotFound)
	}
	return nil
}
