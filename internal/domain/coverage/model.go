package coverage

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultPlanID identifies the hardcoded fallback plan assigned when a
// registering patient has no matching imported member.
const DefaultPlanID = "BASIC_PLAN"

// derivedPlanPrefix prefixes plan IDs synthesized from imported member rows.
const derivedPlanPrefix = "KAGGLE_"

var (
	// ErrNotFound is returned when a member, plan, or patient lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when required registration fields are missing.
	ErrValidation = errors.New("validation failed")
)

// Member is an externally imported insurance-eligibility record. Members are
// bulk-replaced wholesale on each import and never mutated individually; the
// id column preserves import order and is the deterministic tie-break when
// several rows share the same identity.
type Member struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	NameNormalized string  `db:"name_normalized" json:"name_normalized"`
	DateOfBirth    string  `db:"date_of_birth" json:"date_of_birth"`
	Phone          *string `db:"phone" json:"phone,omitempty"`
	PlanID         string  `db:"plan_id" json:"plan_id"`
	PlanName       string  `db:"plan_name" json:"plan_name"`
	CoverageLevel  string  `db:"coverage_level" json:"coverage_level"`
	Deductible     float64 `db:"deductible" json:"deductible"`
	Copay          float64 `db:"copay" json:"copay"`
}

// Plan is the authoritative coverage descriptor referenced by a Patient.
type Plan struct {
	PlanID      string   `db:"plan_id" json:"plan_id"`
	PlanName    string   `db:"plan_name" json:"plan_name"`
	Description string   `db:"description" json:"description"`
	Deductible  *float64 `db:"deductible" json:"deductible,omitempty"`
	Copay       *float64 `db:"copay" json:"copay,omitempty"`
}

// Patient maps to the patients table, keyed by phone. Registration fully
// replaces the mutable fields; plan_id is a point-in-time snapshot of the
// plan resolved at registration.
type Patient struct {
	Phone       string `db:"phone" json:"phone"`
	Name        string `db:"name" json:"name"`
	DateOfBirth string `db:"date_of_birth" json:"dob"`
	PlanID      string `db:"plan_id" json:"plan_id"`
}

// UsageSummary is an ephemeral utilization snapshot. It is recomputed per
// request and never persisted.
type UsageSummary struct {
	Visits     int     `json:"visits"`
	TotalSpend float64 `json:"total_spend"`
}

// DerivePlanID computes the plan identifier for an imported plan name:
// spaces become underscores and the result is uppercased under the KAGGLE_
// prefix.
func DerivePlanID(planName string) string {
	return derivedPlanPrefix + strings.ToUpper(strings.ReplaceAll(planName, " ", "_"))
}

// NormalizeName lowercases a member or patient name for identity matching.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// PlanFromMember builds the derived Plan for a matched member row.
func PlanFromMember(m *Member) *Plan {
	level := m.CoverageLevel
	if level == "" {
		level = "N/A"
	}
	deductible := m.Deductible
	copay := m.Copay
	return &Plan{
		PlanID:      m.PlanID,
		PlanName:    m.PlanName,
		Description: fmt.Sprintf("Coverage level: %s", level),
		Deductible:  &deductible,
		Copay:       &copay,
	}
}

// DefaultPlan returns the hardcoded fallback plan.
func DefaultPlan() *Plan {
	return &Plan{
		PlanID:      DefaultPlanID,
		PlanName:    "Basic Health Coverage Plan",
		Description: "Covers primary care, specialists, labs, and generic medications.",
	}
}
