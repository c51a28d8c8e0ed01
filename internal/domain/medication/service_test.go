package medication

import (
	"context"
	"strings"
	"testing"
)

type mockRepo struct {
	items []*Medication
}

func (m *mockRepo) LookupByTokens(_ context.Context, tokens []string) (*Medication, error) {
	for _, med := range m.items {
		for _, tok := range tokens {
			if med.NameNormalized == tok {
				return med, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) ReplaceAll(_ context.Context, meds []*Medication) (int, error) {
	m.items = meds
	for i, med := range m.items {
		med.ID = int64(i + 1)
	}
	return len(meds), nil
}

func TestImportCSV(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	csvData := `name,covered_plans
Metformin,BASIC_PLAN;KAGGLE_GOLD_SHIELD
Lisinopril,BASIC_PLAN
Ozempic,
`
	count, err := svc.ImportCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 imported, got %d", count)
	}

	metformin := repo.items[0]
	if metformin.NameNormalized != "metformin" {
		t.Errorf("expected normalized name metformin, got %s", metformin.NameNormalized)
	}
	if len(metformin.CoveredPlans) != 2 || !metformin.Covers("BASIC_PLAN") || !metformin.Covers("KAGGLE_GOLD_SHIELD") {
		t.Errorf("unexpected covered plans: %v", metformin.CoveredPlans)
	}
	if ozempic := repo.items[2]; len(ozempic.CoveredPlans) != 0 {
		t.Errorf("expected no covered plans for Ozempic, got %v", ozempic.CoveredPlans)
	}
}

func TestImportCSV_SkipsNamelessRows(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	count, err := svc.ImportCSV(context.Background(), strings.NewReader("name,covered_plans\n,BASIC_PLAN\nMetformin,BASIC_PLAN\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 imported, got %d", count)
	}
}

func TestImportCSV_MissingNameColumn(t *testing.T) {
	svc := NewService(&mockRepo{})

	if _, err := svc.ImportCSV(context.Background(), strings.NewReader("drug,plans\nMetformin,BASIC_PLAN\n")); err == nil {
		t.Fatal("expected error for missing name column")
	}
}

func TestImportCSV_EmptyStream(t *testing.T) {
	repo := &mockRepo{items: []*Medication{{Name: "Metformin", NameNormalized: "metformin"}}}
	svc := NewService(repo)

	count, err := svc.ImportCSV(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 imported, got %d", count)
	}
	if len(repo.items) != 1 {
		t.Error("empty stream must not touch the catalog")
	}
}

func TestFindByTokens(t *testing.T) {
	repo := &mockRepo{items: []*Medication{
		{ID: 1, Name: "Metformin", NameNormalized: "metformin", CoveredPlans: []string{"BASIC_PLAN"}},
	}}
	svc := NewService(repo)

	med, err := svc.FindByTokens(context.Background(), []string{"is", "metformin", "covered"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if med.Name != "Metformin" {
		t.Errorf("expected Metformin, got %s", med.Name)
	}

	if _, err := svc.FindByTokens(context.Background(), []string{"is", "aspirin", "covered"}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
