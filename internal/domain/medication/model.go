package medication

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no medication matches a lookup.
var ErrNotFound = errors.New("medication not found")

// Medication maps to the medications table. CoveredPlans holds the plan_ids
// the medication is covered under; an empty list means not covered anywhere.
type Medication struct {
	ID             int64    `db:"id" json:"id"`
	Name           string   `db:"name" json:"name"`
	NameNormalized string   `db:"name_normalized" json:"-"`
	CoveredPlans   []string `db:"covered_plans" json:"covered_plans"`
}

// Covers reports whether the medication is covered under the given plan.
func (m *Medication) Covers(planID string) bool {
	for _, p := range m.CoveredPlans {
		if p == planID {
			return true
		}
	}
	return false
}

// NormalizeName lowercases a medication name for matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
