package coverage

import "testing"

func TestDerivePlanID(t *testing.T) {
	cases := []struct {
		planName string
		want     string
	}{
		{"Gold Shield", "KAGGLE_GOLD_SHIELD"},
		{"basic", "KAGGLE_BASIC"},
		{"Premium Family Care", "KAGGLE_PREMIUM_FAMILY_CARE"},
	}
	for _, tc := range cases {
		if got := DerivePlanID(tc.planName); got != tc.want {
			t.Errorf("DerivePlanID(%q) = %q, want %q", tc.planName, got, tc.want)
		}
	}
}

func TestPlanFromMember(t *testing.T) {
	m := &Member{
		Name:           "Ann Lee",
		NameNormalized: "ann lee",
		DateOfBirth:    "1990-01-01",
		PlanID:         DerivePlanID("Gold Shield"),
		PlanName:       "Gold Shield",
		CoverageLevel:  "Gold",
		Deductible:     500,
		Copay:          20,
	}

	p := PlanFromMember(m)
	if p.PlanID != "KAGGLE_GOLD_SHIELD" {
		t.Errorf("expected plan_id KAGGLE_GOLD_SHIELD, got %s", p.PlanID)
	}
	if p.Description != "Coverage level: Gold" {
		t.Errorf("unexpected description: %s", p.Description)
	}
	if p.Deductible == nil || *p.Deductible != 500 {
		t.Errorf("unexpected deductible: %v", p.Deductible)
	}
	if p.Copay == nil || *p.Copay != 20 {
		t.Errorf("unexpected copay: %v", p.Copay)
	}
}

func TestPlanFromMember_EmptyCoverageLevel(t *testing.T) {
	p := PlanFromMember(&Member{PlanID: "KAGGLE_X", PlanName: "X"})
	if p.Description != "Coverage level: N/A" {
		t.Errorf("expected N/A description, got %s", p.Description)
	}
}

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()
	if p.PlanID != DefaultPlanID {
		t.Errorf("expected %s, got %s", DefaultPlanID, p.PlanID)
	}
	if p.PlanName != "Basic Health Coverage Plan" {
		t.Errorf("unexpected plan name: %s", p.PlanName)
	}
	if p.Deductible != nil || p.Copay != nil {
		t.Error("default plan must not carry deductible or copay")
	}
}
