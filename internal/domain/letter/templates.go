package letter

import "fmt"

// templateInput carries the fields the letter templates interpolate.
type templateInput struct {
	PatientName string
	PlanName    string
	Visits      int
	TotalSpend  float64
}

// render produces the letter body for the given type. The templates are
// fixed English prose with plain string interpolation; unknown types degrade
// to the generic correspondence template.
func render(letterType string, in templateInput) string {
	name := in.PatientName
	if name == "" {
		name = "Member"
	}
	planName := in.PlanName
	if planName == "" {
		planName = "your current plan"
	}

	switch letterType {
	case TypeCoverageSummary:
		return fmt.Sprintf(
			"Dear %s,\n\n"+
				"This letter summarizes your coverage under %s.\n"+
				"You have used %d visits so far with an estimated spend of $%.2f.\n\n"+
				"Your plan covers primary care, specialist visits, and most "+
				"generic medications according to formulary rules.\n\n"+
				"Sincerely,\nMediSecure AI",
			name, planName, in.Visits, in.TotalSpend)

	case TypeMedicationCoverage:
		return fmt.Sprintf(
			"Dear %s,\n\n"+
				"This letter explains medication coverage under your current plan.\n"+
				"Most generic medications are covered at the lowest copay tier, "+
				"while some brand-name medications may require prior authorization.\n\n"+
				"Please check with your pharmacist or provider for exact costs.\n\n"+
				"Sincerely,\nMediSecure AI",
			name)

	default:
		return fmt.Sprintf(
			"Dear %s,\n\nThis is an automatically generated correspondence.\n\nMediSecure AI",
			name)
	}
}
