package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medisecure/medisecure/internal/domain/coverage"
	"github.com/medisecure/medisecure/internal/domain/medication"
)

type Service struct {
	coverage *coverage.Service
	meds     *medication.Service
	intents  []intent
}

// turn carries everything one reply decision can look at. No conversation
// state survives across calls.
type turn struct {
	text    string
	tokens  []string
	patient *coverage.Patient
	plan    *coverage.Plan
	med     *medication.Medication
}

// intent is one (predicate, responder) pair in the decision list. The list
// is evaluated top to bottom and the first matching intent wins.
type intent struct {
	match func(t *turn) bool
	reply func(t *turn) string
}

func NewService(cov *coverage.Service, meds *medication.Service) *Service {
	s := &Service{coverage: cov, meds: meds}
	s.intents = []intent{
		{
			match: func(t *turn) bool { return t.med != nil },
			reply: func(t *turn) string {
				if t.plan != nil && t.med.Covers(t.plan.PlanID) {
					return fmt.Sprintf("Yes, %s is covered under your plan.", t.med.Name)
				}
				return fmt.Sprintf("%s is not listed as covered by your current plan.", t.med.Name)
			},
		},
		{
			match: func(t *turn) bool {
				return strings.Contains(t.text, "coverage") || strings.Contains(t.text, "what does my plan cover")
			},
			reply: func(t *turn) string {
				return "Your plan covers primary care, specialist visits, and most generic medications."
			},
		},
		{
			match: func(t *turn) bool {
				return strings.Contains(t.text, "help") || strings.Contains(t.text, "hi")
			},
			reply: func(t *turn) string {
				return "Hello! I can help you check if a medication is covered or summarize your benefits."
			},
		},
		{
			match: func(t *turn) bool { return true },
			reply: func(t *turn) string {
				return "I’m not sure about that, but you can ask me if a specific medication is covered."
			},
		},
	}
	return s
}

// Tokenize lowercases the message, splits on whitespace, and strips comma
// and period punctuation from token edges.
func Tokenize(message string) []string {
	fields := strings.Fields(strings.ToLower(message))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := strings.Trim(f, ",."); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Reply resolves a single utterance to a coverage answer. An unregistered
// phone gets a registration prompt; store errors during medication or plan
// lookup are returned so the handler can surface them.
func (s *Service) Reply(ctx context.Context, phone, message string) (string, error) {
	patient, err := s.coverage.PatientByPhone(ctx, phone)
	if errors.Is(err, coverage.ErrNotFound) {
		return "I could not find your record. Please register first.", nil
	}
	if err != nil {
		return "", err
	}

	t := &turn{
		text:    strings.ToLower(message),
		tokens:  Tokenize(message),
		patient: patient,
	}

	plan, err := s.coverage.PlanForPatient(ctx, patient)
	if err != nil {
		return "", err
	}
	t.plan = plan

	med, err := s.meds.FindByTokens(ctx, t.tokens)
	if err != nil && !errors.Is(err, medication.ErrNotFound) {
		return "", err
	}
	t.med = med

	for _, in := range s.intents {
		if in.match(t) {
			return in.reply(t), nil
		}
	}
	// Unreachable: the decision list ends in a catch-all.
	return "", nil
}
