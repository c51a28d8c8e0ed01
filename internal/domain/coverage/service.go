package coverage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// LetterSource supplies the most recent letter for the dashboard response.
// Implemented by the letter service and attached after construction to avoid
// a dependency cycle; returns (nil, nil) when the patient has no letters.
type LetterSource interface {
	LatestForDashboard(ctx context.Context, phone string) (interface{}, error)
}

type Service struct {
	members  MemberRepository
	plans    PlanRepository
	patients PatientRepository
	letters  LetterSource
}

func NewService(members MemberRepository, plans PlanRepository, patients PatientRepository) *Service {
	return &Service{members: members, plans: plans, patients: patients}
}

// SetLetterSource attaches the collaborator that resolves the latest letter
// for dashboard responses (may be left nil in tests).
func (s *Service) SetLetterSource(ls LetterSource) {
	s.letters = ls
}

// ResolveAndRegister matches the identity against imported members, derives
// the authoritative plan, and upserts the patient record keyed by phone.
//
// The member match is exact on (lowercased name, date of birth); phone is
// deliberately not part of the match key. When several imported rows share
// an identity, the first by import order wins. A miss falls back to the
// default plan. Re-registering the same phone fully replaces the patient's
// mutable fields: last registration wins.
func (s *Service) ResolveAndRegister(ctx context.Context, name, dob, phone string) (*Patient, *Plan, error) {
	name = strings.TrimSpace(name)
	dob = strings.TrimSpace(dob)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if dob == "" {
		return nil, nil, fmt.Errorf("%w: dob is required", ErrValidation)
	}
	if phone == "" {
		return nil, nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}

	var plan *Plan
	member, err := s.members.FindByIdentity(ctx, NormalizeName(name), dob)
	switch {
	case err == nil:
		plan = PlanFromMember(member)
		// Overwrite-on-match: the derived plan always reflects the most
		// recently matched member row.
		if err := s.plans.Upsert(ctx, plan); err != nil {
			return nil, nil, fmt.Errorf("upsert derived plan: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		plan, err = s.GetOrCreateDefaultPlan(ctx)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("member lookup: %w", err)
	}

	patient := &Patient{
		Phone:       phone,
		Name:        name,
		DateOfBirth: dob,
		PlanID:      plan.PlanID,
	}
	if err := s.patients.Upsert(ctx, patient); err != nil {
		return nil, nil, fmt.Errorf("upsert patient: %w", err)
	}

	stored, err := s.patients.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, fmt.Errorf("read back patient: %w", err)
	}
	return stored, plan, nil
}

// GetOrCreateDefaultPlan returns BASIC_PLAN, creating it atomically on first
// need. The insert-if-absent keeps concurrent first registrations from
// producing duplicates.
func (s *Service) GetOrCreateDefaultPlan(ctx context.Context) (*Plan, error) {
	if err := s.plans.CreateIfAbsent(ctx, DefaultPlan()); err != nil {
		return nil, fmt.Errorf("create default plan: %w", err)
	}
	plan, err := s.plans.Get(ctx, DefaultPlanID)
	if err != nil {
		return nil, fmt.Errorf("read default plan: %w", err)
	}
	return plan, nil
}

// PatientByPhone returns the registered patient or ErrNotFound.
func (s *Service) PatientByPhone(ctx context.Context, phone string) (*Patient, error) {
	return s.patients.GetByPhone(ctx, phone)
}

// PlanForPatient resolves the patient's plan. A dangling plan_id is silently
// repaired via the default plan rather than surfaced as an error.
func (s *Service) PlanForPatient(ctx context.Context, patient *Patient) (*Plan, error) {
	plan, err := s.plans.Get(ctx, patient.PlanID)
	if errors.Is(err, ErrNotFound) {
		return s.GetOrCreateDefaultPlan(ctx)
	}
	return plan, err
}

// SummarizeUsage returns the utilization summary for a patient. The values
// are currently synthetic; the summary is recomputed on every call and never
// cached so a real ledger aggregation can slot in without changing callers.
func (s *Service) SummarizeUsage(_ *Patient) UsageSummary {
	return UsageSummary{Visits: 3, TotalSpend: 240.50}
}

// DashboardResult is the coverage overview returned to the portal.
type DashboardResult struct {
	Patient      *Patient     `json:"patient"`
	Plan         *Plan        `json:"plan"`
	UsageSummary UsageSummary `json:"usage_summary"`
	LatestLetter interface{}  `json:"latest_letter"`
}

// Dashboard assembles the patient's coverage, a fresh usage summary, and the
// most recent letter (null when none exists).
func (s *Service) Dashboard(ctx context.Context, phone string) (*DashboardResult, error) {
	patient, err := s.patients.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	plan, err := s.PlanForPatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	result := &DashboardResult{
		Patient:      patient,
		Plan:         plan,
		UsageSummary: s.SummarizeUsage(patient),
	}

	if s.letters != nil {
		latest, err := s.letters.LatestForDashboard(ctx, phone)
		if err != nil {
			return nil, fmt.Errorf("latest letter: %w", err)
		}
		result.LatestLetter = latest
	}
	return result, nil
}
