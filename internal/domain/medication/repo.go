package medication

import "context"

type Repository interface {
	// LookupByTokens returns the first catalog entry whose normalized name
	// equals any of the tokens, or ErrNotFound. Ties break on lowest id.
	LookupByTokens(ctx context.Context, tokens []string) (*Medication, error)
	// ReplaceAll atomically swaps the catalog for the given entries and
	// returns the number inserted.
	ReplaceAll(ctx context.Context, meds []*Medication) (int, error)
}
