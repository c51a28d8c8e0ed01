package coverage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Member Repository ===========

type memberRepoPG struct{ pool *pgxpool.Pool }

func NewMemberRepoPG(pool *pgxpool.Pool) MemberRepository { return &memberRepoPG{pool: pool} }

const memberCols = `id, name, name_normalized, date_of_birth, phone,
	plan_id, plan_name, coverage_level, deductible, copay`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.NameNormalized, &m.DateOfBirth, &m.Phone,
		&m.PlanID, &m.PlanName, &m.CoverageLevel, &m.Deductible, &m.Copay)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &m, err
}

func (r *memberRepoPG) FindByIdentity(ctx context.Context, nameNormalized, dateOfBirth string) (*Member, error) {
	return scanMember(r.pool.QueryRow(ctx, `
		SELECT `+memberCols+` FROM insurance_members
		WHERE name_normalized = $1 AND date_of_birth = $2
		ORDER BY id LIMIT 1`,
		nameNormalized, dateOfBirth))
}

func (r *memberRepoPG) ReplaceAll(ctx context.Context, members []*Member) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM insurance_members`); err != nil {
		return 0, fmt.Errorf("clear members: %w", err)
	}

	count := 0
	for _, m := range members {
		if _, err := tx.Exec(ctx, `
			INSERT INTO insurance_members
				(name, name_normalized, date_of_birth, phone,
				 plan_id, plan_name, coverage_level, deductible, copay)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			m.Name, m.NameNormalized, m.DateOfBirth, m.Phone,
			m.PlanID, m.PlanName, m.CoverageLevel, m.Deductible, m.Copay); err != nil {
			return 0, fmt.Errorf("insert member %q: %w", m.Name, err)
		}
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return count, nil
}

// =========== Plan Repository ===========

type planRepoPG struct{ pool *pgxpool.Pool }

func NewPlanRepoPG(pool *pgxpool.Pool) PlanRepository { return &planRepoPG{pool: pool} }

const planCols = `plan_id, plan_name, description, deductible, copay`

func scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	err := row.Scan(&p.PlanID, &p.PlanName, &p.Description, &p.Deductible, &p.Copay)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *planRepoPG) Get(ctx context.Context, planID string) (*Plan, error) {
	return scanPlan(r.pool.QueryRow(ctx, `SELECT `+planCols+` FROM plans WHERE plan_id = $1`, planID))
}

func (r *planRepoPG) Upsert(ctx context.Context, p *Plan) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO plans (plan_id, plan_name, description, deductible, copay)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (plan_id) DO UPDATE SET
			plan_name = EXCLUDED.plan_name,
			description = EXCLUDED.description,
			deductible = EXCLUDED.deductible,
			copay = EXCLUDED.copay,
			updated_at = NOW()`,
		p.PlanID, p.PlanName, p.Description, p.Deductible, p.Copay)
	return err
}

func (r *planRepoPG) CreateIfAbsent(ctx context.Context, p *Plan) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO plans (plan_id, plan_name, description, deductible, copay)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (plan_id) DO NOTHING`,
		p.PlanID, p.PlanName, p.Description, p.Deductible, p.Copay)
	return err
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	var p Patient
	err := r.pool.QueryRow(ctx, `
		SELECT phone, name, date_of_birth, plan_id FROM patients WHERE phone = $1`, phone).
		Scan(&p.Phone, &p.Name, &p.DateOfBirth, &p.PlanID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Upsert(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (phone, name, date_of_birth, plan_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			date_of_birth = EXCLUDED.date_of_birth,
			plan_id = EXCLUDED.plan_id,
			updated_at = NOW()`,
		p.Phone, p.Name, p.DateOfBirth, p.PlanID)
	return err
}
