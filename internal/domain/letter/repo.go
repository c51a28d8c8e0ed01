package letter

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Append inserts a new letter. Letters are never updated or deleted.
	Append(ctx context.Context, l *Letter) error
	GetByID(ctx context.Context, letterID uuid.UUID) (*Letter, error)
	// LatestByPhone returns the letter with the maximum created_at for the
	// phone, or ErrNotFound when the patient has none.
	LatestByPhone(ctx context.Context, phone string) (*Letter, error)
	ListByPhone(ctx context.Context, phone string, limit, offset int) ([]*Letter, int, error)
}
