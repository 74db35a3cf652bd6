package risk

import (
	"strings"

	"github.com/genetic-risk-server/internal/domain"
)

// Evidence extraction groups responses by the question's tagged category and
// hands each group to a category-specific extractor. Dispatch is on the
// category tag and the catalogue's question ids; answer text is only ever
// keyword-matched where the evidence is genuinely textual (exposures,
// ethnicity, symptoms).

type familyHistoryEvidence struct {
	Patterns          []string
	AffectedRelatives int
}

type demographicEvidence struct {
	Age         float64
	HasAge      bool
	Sex         string
	Ethnicities []string
}

type medicalHistoryEvidence struct {
	PriorCancer       bool
	PriorCancerTypes  []string
	MultiplePrimaries bool
}

type lifestyleEvidence struct {
	SmokingHistory bool
	Alcohol        string
	Exercise       string
	Diet           string
	Sleep          string
	Stress         string
	ChronicStress  bool
}

type dietaryEvidence struct {
	ProcessedFoodHigh bool
	VegetableHigh     bool
}

type evidenceSet struct {
	Family      familyHistoryEvidence
	Demographic demographicEvidence
	Symptoms    []string
	Medical     medicalHistoryEvidence
	Lifestyle   lifestyleEvidence
	Dietary     dietaryEvidence
	Exposures   []string
}

// extractEvidence splits the responses by category and runs the per-category
// extractors. Responses for questions missing from the bank are skipped
// rather than failing the whole extraction.
func (e *Engine) extractEvidence(responses []domain.ResponseRecord) evidenceSet {
	byCategory := make(map[domain.Category][]domain.ResponseRecord)
	for _, r := range responses {
		q, err := e.bank.Get(r.QuestionID)
		if err != nil {
			e.logger.WithField("question_id", r.QuestionID).
				Warn("Response references unknown question, excluded from scoring")
			continue
		}
		byCategory[q.Category] = append(byCategory[q.Category], r)
	}

	var ev evidenceSet
	ev.Family = extractFamilyHistory(byCategory[domain.CATEGORY_FAMILY_HISTORY])
	ev.Demographic = extractDemographics(byCategory[domain.CATEGORY_DEMOGRAPHICS])
	ev.Symptoms = extractSymptoms(byCategory[domain.CATEGORY_SYMPTOMS])
	ev.Medical = extractMedicalHistory(byCategory[domain.CATEGORY_MEDICAL_HISTORY])
	ev.Lifestyle = extractLifestyle(byCategory[domain.CATEGORY_LIFESTYLE])
	ev.Dietary = extractDietary(byCategory[domain.CATEGORY_DIET])
	ev.Exposures = extractExposures(byCategory[domain.CATEGORY_ENVIRONMENTAL])

	// Male breast cancer in the family is a distinct pattern with its own
	// weights; it needs both the family and demographic groups.
	if ev.Demographic.Sex == "Male" && contains(ev.Family.Patterns, patternBreastFamily) {
		ev.Family.Patterns = append(ev.Family.Patterns, patternMaleBreast)
	}

	return ev
}

func extractFamilyHistory(responses []domain.ResponseRecord) familyHistoryEvidence {
	var ev familyHistoryEvidence
	seen := map[string]bool{}
	addPattern := func(p string) {
		if !seen[p] {
			seen[p] = true
			ev.Patterns = append(ev.Patterns, p)
		}
	}

	for _, r := range responses {
		switch r.QuestionID {
		case "family_cancer_types":
			for _, t := range r.Value.AsStrings() {
				switch {
				case strings.Contains(strings.ToLower(t), "breast"):
					addPattern(patternBreastFamily)
				case strings.Contains(strings.ToLower(t), "ovarian"):
					addPattern(patternOvarianFamily)
				case strings.Contains(strings.ToLower(t), "colorectal"),
					strings.Contains(strings.ToLower(t), "colon"):
					addPattern(patternColorectalFamily)
				case strings.Contains(strings.ToLower(t), "pancreatic"):
					addPattern(patternPancreaticFamily)
				case strings.Contains(strings.ToLower(t), "gastric"):
					addPattern(patternGastricFamily)
				}
			}
		case "family_cancer_relatives":
			ev.AffectedRelatives += len(r.Value.AsStrings())
		case "family_early_onset":
			if v, ok := r.Value.AsBool(); ok && v {
				addPattern(patternEarlyOnset)
			}
		case "family_multiple_cancers", "family_bilateral_cancer":
			if v, ok := r.Value.AsBool(); ok && v {
				addPattern(patternMultiplePrimaries)
			}
		}
	}
	return ev
}

func extractDemographics(responses []domain.ResponseRecord) demographicEvidence {
	var ev demographicEvidence
	for _, r := range responses {
		switch r.QuestionID {
		case "demo_age":
			if n, ok := r.Value.AsNumber(); ok {
				ev.Age = n
				ev.HasAge = true
			}
		case "demo_gender":
			ev.Sex = r.Value.Choice
		case "demo_ethnicity":
			ev.Ethnicities = r.Value.AsStrings()
		}
	}
	return ev
}

func extractSymptoms(responses []domain.ResponseRecord) []string {
	var symptoms []string
	for _, r := range responses {
		if r.QuestionID != "current_symptoms" {
			continue
		}
		for _, s := range r.Value.AsStrings() {
			if strings.EqualFold(s, "None of the above") {
				continue
			}
			symptoms = append(symptoms, s)
		}
	}
	return symptoms
}

func extractMedicalHistory(responses []domain.ResponseRecord) medicalHistoryEvidence {
	var ev medicalHistoryEvidence
	for _, r := range responses {
		switch r.QuestionID {
		case "personal_cancer_history":
			if v, ok := r.Value.AsBool(); ok {
				ev.PriorCancer = v
			}
		case "personal_cancer_type":
			ev.PriorCancerTypes = r.Value.AsStrings()
		case "personal_multiple_primaries":
			if v, ok := r.Value.AsBool(); ok {
				ev.MultiplePrimaries = v
			}
		}
	}
	if len(ev.PriorCancerTypes) > 1 {
		ev.MultiplePrimaries = true
	}
	return ev
}

func extractLifestyle(responses []domain.ResponseRecord) lifestyleEvidence {
	var ev lifestyleEvidence
	for _, r := range responses {
		switch r.QuestionID {
		case "lifestyle_smoking":
			ev.SmokingHistory = r.Value.Choice == "Current smoker" || r.Value.Choice == "Former smoker"
		case "lifestyle_alcohol":
			ev.Alcohol = r.Value.Choice
		case "lifestyle_exercise":
			ev.Exercise = r.Value.Choice
		case "lifestyle_sleep":
			ev.Sleep = r.Value.Choice
		case "stress_level":
			ev.Stress = r.Value.Choice
		case "chronic_stress":
			if v, ok := r.Value.AsBool(); ok {
				ev.ChronicStress = v
			}
		}
	}
	return ev
}

func extractDietary(responses []domain.ResponseRecord) dietaryEvidence {
	var ev dietaryEvidence
	for _, r := range responses {
		switch r.QuestionID {
		case "diet_quality":
			// diet_quality feeds the lifestyle modifier directly; see
			// lifestyleModifier.
		case "processed_food_frequency":
			ev.ProcessedFoodHigh = r.Value.Choice == "Daily" || r.Value.Choice == "Several times per week"
		case "vegetable_intake":
			ev.VegetableHigh = r.Value.Choice == "5 or more servings"
		}
	}
	return ev
}

// dietQuality pulls the diet_quality answer out of the diet category group.
func dietQuality(responses []domain.ResponseRecord) string {
	for _, r := range responses {
		if r.QuestionID == "diet_quality" {
			return r.Value.Choice
		}
	}
	return ""
}

func extractExposures(responses []domain.ResponseRecord) []string {
	var exposures []string
	for _, r := range responses {
		if r.QuestionID != "environmental_exposures" && r.QuestionID != "occupational_history" {
			continue
		}
		for _, s := range r.Value.AsStrings() {
			if strings.EqualFold(s, "None of the above") {
				continue
			}
			exposures = append(exposures, s)
		}
	}
	return exposures
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func containsAnyFold(haystack string, needles []string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
