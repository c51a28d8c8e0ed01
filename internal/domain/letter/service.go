package letter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medisecure/medisecure/internal/domain/coverage"
	"github.com/medisecure/medisecure/internal/platform/phi"
)

type Service struct {
	letters  Repository
	coverage *coverage.Service
}

func NewService(letters Repository, cov *coverage.Service) *Service {
	return &Service{letters: letters, coverage: cov}
}

// Generate renders a letter for the patient's current plan and usage,
// redacts the patient's name from the body, and appends the record. Unknown
// letter types render the generic fallback template. Returns
// coverage.ErrNotFound when the phone is unregistered.
func (s *Service) Generate(ctx context.Context, phone, letterType string) (*Letter, error) {
	patient, err := s.coverage.PatientByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	plan, err := s.coverage.PlanForPatient(ctx, patient)
	if err != nil {
		return nil, err
	}
	usage := s.coverage.SummarizeUsage(patient)

	if letterType == "" {
		letterType = TypeCoverageSummary
	}

	content := render(letterType, templateInput{
		PatientName: patient.Name,
		PlanName:    plan.PlanName,
		Visits:      usage.Visits,
		TotalSpend:  usage.TotalSpend,
	})

	l := &Letter{
		LetterID:     uuid.New(),
		PatientPhone: patient.Phone,
		LetterType:   letterType,
		PlanID:       plan.PlanID,
		Content:      phi.RedactName(content, patient.Name),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.letters.Append(ctx, l); err != nil {
		return nil, fmt.Errorf("append letter: %w", err)
	}
	return l, nil
}

// DownloadResult is the letter-download response shape.
type DownloadResult struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Download returns the redacted letter content with its download filename.
func (s *Service) Download(ctx context.Context, letterID uuid.UUID) (*DownloadResult, error) {
	l, err := s.letters.GetByID(ctx, letterID)
	if err != nil {
		return nil, err
	}
	return &DownloadResult{Filename: l.Filename(), Content: l.Content}, nil
}

// ListByPhone returns the patient's letters, newest first.
func (s *Service) ListByPhone(ctx context.Context, phone string, limit, offset int) ([]*Letter, int, error) {
	return s.letters.ListByPhone(ctx, phone, limit, offset)
}

// LatestForDashboard implements coverage.LetterSource. A patient with no
// letters yields (nil, nil) so the dashboard serializes latest_letter as
// null.
func (s *Service) LatestForDashboard(ctx context.Context, phone string) (interface{}, error) {
	l, err := s.letters.LatestByPhone(ctx, phone)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}
