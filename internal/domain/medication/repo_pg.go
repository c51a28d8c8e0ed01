package medication

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) LookupByTokens(ctx context.Context, tokens []string) (*Medication, error) {
	if len(tokens) == 0 {
		return nil, ErrNotFound
	}
	var m Medication
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, name_normalized, covered_plans
		FROM medications
		WHERE name_normalized = ANY($1)
		ORDER BY id LIMIT 1`, tokens).
		Scan(&m.ID, &m.Name, &m.NameNormalized, &m.CoveredPlans)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repoPG) ReplaceAll(ctx context.Context, meds []*Medication) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM medications`); err != nil {
		return 0, fmt.Errorf("clear medications: %w", err)
	}
	for _, m := range meds {
		if _, err := tx.Exec(ctx, `
			INSERT INTO medications (name, name_normalized, covered_plans)
			VALUES ($1,$2,$3)
			ON CONFLICT (name_normalized) DO UPDATE SET
				name = EXCLUDED.name,
				covered_plans = EXCLUDED.covered_plans`,
			m.Name, m.NameNormalized, m.CoveredPlans); err != nil {
			return 0, fmt.Errorf("insert medication %q: %w", m.Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(meds), nil
}
