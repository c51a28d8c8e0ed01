package letter

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const letterCols = `letter_id, patient_phone, letter_type, plan_id, content, created_at`

func scanLetter(row pgx.Row) (*Letter, error) {
	var l Letter
	err := row.Scan(&l.LetterID, &l.PatientPhone, &l.LetterType, &l.PlanID, &l.Content, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &l, err
}

func (r *repoPG) Append(ctx context.Context, l *Letter) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO letters (letter_id, patient_phone, letter_type, plan_id, content, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		l.LetterID, l.PatientPhone, l.LetterType, l.PlanID, l.Content, l.CreatedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, letterID uuid.UUID) (*Letter, error) {
	return scanLetter(r.pool.QueryRow(ctx,
		`SELECT `+letterCols+` FROM letters WHERE letter_id = $1`, letterID))
}

func (r *repoPG) LatestByPhone(ctx context.Context, phone string) (*Letter, error) {
	return scanLetter(r.pool.QueryRow(ctx, `
		SELECT `+letterCols+` FROM letters
		WHERE patient_phone = $1
		ORDER BY created_at DESC LIMIT 1`, phone))
}

func (r *repoPG) ListByPhone(ctx context.Context, phone string, limit, offset int) ([]*Letter, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM letters WHERE patient_phone = $1`, phone).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+letterCols+` FROM letters
		WHERE patient_phone = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, phone, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Letter
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}
