package letter

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Letter types form a closed enumeration; anything else renders the generic
// fallback template rather than erroring.
const (
	TypeCoverageSummary    = "coverage_summary"
	TypeMedicationCoverage = "medication_coverage"
)

// ErrNotFound is returned when a letter lookup misses.
var ErrNotFound = errors.New("letter not found")

// Letter maps to the letters table. Letters are append-only and immutable
// once created; content is stored post-redaction.
type Letter struct {
	LetterID     uuid.UUID `db:"letter_id" json:"letter_id"`
	PatientPhone string    `db:"patient_phone" json:"patient_phone"`
	LetterType   string    `db:"letter_type" json:"letter_type"`
	PlanID       string    `db:"plan_id" json:"plan_id"`
	Content      string    `db:"content" json:"content"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Filename returns the download filename for the letter.
func (l *Letter) Filename() string {
	return fmt.Sprintf("letter_%s.txt", l.LetterID)
}
