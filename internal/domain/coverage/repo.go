package coverage

import "context"

type MemberRepository interface {
	// FindByIdentity returns the first member (by import order) whose
	// normalized name and date of birth both match, or ErrNotFound.
	FindByIdentity(ctx context.Context, nameNormalized, dateOfBirth string) (*Member, error)
	// ReplaceAll deletes every member row and inserts the given set in order.
	ReplaceAll(ctx context.Context, members []*Member) (int, error)
}

type PlanRepository interface {
	Get(ctx context.Context, planID string) (*Plan, error)
	// Upsert inserts the plan or overwrites every mutable field on conflict.
	Upsert(ctx context.Context, p *Plan) error
	// CreateIfAbsent inserts the plan only when its plan_id is unused.
	CreateIfAbsent(ctx context.Context, p *Plan) error
}

type PatientRepository interface {
	GetByPhone(ctx context.Context, phone string) (*Patient, error)
	// Upsert inserts the patient or fully replaces name, date of birth, and
	// plan_id for an existing phone.
	Upsert(ctx context.Context, p *Patient) error
}
