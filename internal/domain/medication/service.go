package medication

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type Service struct {
	meds Repository
}

func NewService(meds Repository) *Service {
	return &Service{meds: meds}
}

// FindByTokens looks up the first medication whose name matches any token.
// Tokens are expected pre-normalized (lowercased, punctuation trimmed).
func (s *Service) FindByTokens(ctx context.Context, tokens []string) (*Medication, error) {
	return s.meds.LookupByTokens(ctx, tokens)
}

// ImportCSV replaces the medication catalog from a CSV stream. Expected
// columns are name and covered_plans, the latter a semicolon-separated list
// of plan_ids. Rows without a name are skipped.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	nameIdx, ok := idx["name"]
	if !ok {
		return 0, fmt.Errorf("csv missing name column")
	}
	plansIdx, hasPlans := idx["covered_plans"]

	var meds []*Medication
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read record: %w", err)
		}

		name := ""
		if nameIdx < len(record) {
			name = strings.TrimSpace(record[nameIdx])
		}
		if name == "" {
			continue
		}

		var plans []string
		if hasPlans && plansIdx < len(record) {
			for _, p := range strings.Split(record[plansIdx], ";") {
				if p = strings.TrimSpace(p); p != "" {
					plans = append(plans, p)
				}
			}
		}

		meds = append(meds, &Medication{
			Name:           name,
			NameNormalized: NormalizeName(name),
			CoveredPlans:   plans,
		})
	}

	return s.meds.ReplaceAll(ctx, meds)
}
