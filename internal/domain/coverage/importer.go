package coverage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvRow gives case-insensitive, fallback-aware access to a CSV record. The
// upstream datasets are inconsistent about header casing and naming, so each
// field is resolved against an ordered list of candidate column names.
type csvRow struct {
	index  map[string]int
	record []string
}

func newCSVIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return index
}

func (r csvRow) field(names ...string) string {
	for _, name := range names {
		if i, ok := r.index[strings.ToLower(name)]; ok && i < len(r.record) {
			if v := strings.TrimSpace(r.record[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

func (r csvRow) floatField(names ...string) float64 {
	v, err := strconv.ParseFloat(r.field(names...), 64)
	if err != nil {
		return 0
	}
	return v
}

// ImportMembersCSV replaces the entire imported member set with the rows from
// the given CSV stream. Rows without a name are skipped; monetary fields
// default to 0 when blank or malformed. Returns the number of rows loaded.
func (s *Service) ImportMembersCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	index := newCSVIndex(header)

	var members []*Member
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv record: %w", err)
		}
		row := csvRow{index: index, record: record}

		name := row.field("Name")
		if name == "" {
			continue
		}

		planName := row.field("InsurancePlan", "Plan_Name", "plan_name")
		if planName == "" {
			planName = "Kaggle Imported Plan"
		}
		coverageLevel := row.field("CoverageLevel", "coverage_level")
		if coverageLevel == "" {
			coverageLevel = "N/A"
		}

		m := &Member{
			Name:           name,
			NameNormalized: NormalizeName(name),
			DateOfBirth:    row.field("Date_of_Birth", "DOB"),
			PlanID:         DerivePlanID(planName),
			PlanName:       planName,
			CoverageLevel:  coverageLevel,
			Deductible:     row.floatField("Annual_Deductible", "deductible"),
			Copay:          row.floatField("CoPay", "copay"),
		}
		if phone := row.field("Phone"); phone != "" {
			m.Phone = &phone
		}
		members = append(members, m)
	}

	return s.members.ReplaceAll(ctx, members)
}
