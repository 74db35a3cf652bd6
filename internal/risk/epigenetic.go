package risk

import (
	"sort"
	"strings"

	"github.com/genetic-risk-server/internal/domain"
)

const (
	minFactorRisk          = 0.05
	maxFactorRisk          = 0.95
	surfaceFactorThreshold = 0.1
	maxRecommendations     = 5
)

// EpigeneticRisks scores every factor in the catalogue and returns those above
// the reporting threshold, sorted descending by score.
func (e *Engine) EpigeneticRisks(responses []domain.ResponseRecord) []domain.EpigeneticFactorResult {
	ev := e.extractEvidence(responses)
	diet := dietQuality(responses)

	lifestyleMod := lifestyleModifier(ev.Lifestyle, diet, ev.Dietary)
	envMod := environmentalModifier(ev.Exposures)

	results := make([]domain.EpigeneticFactorResult, 0, len(e.factorProfiles))
	for factor, profile := range e.factorProfiles {
		if profile.BaseRisk <= 0 {
			// Malformed profile; fall back to the catalogue defaults so one
			// bad definition cannot block the rest.
			e.logger.WithField("factor", factor).Warn("Factor profile missing base risk, using defaults")
			profile = factorProfile{BaseRisk: 0.1, Modifiable: true, LifestyleImpact: 0.3}
		}

		score := clamp(
			profile.BaseRisk*(1+lifestyleMod*profile.LifestyleImpact+envMod*environmentalImpactWeight),
			minFactorRisk, maxFactorRisk,
		)
		if score <= surfaceFactorThreshold {
			continue
		}

		results = append(results, domain.EpigeneticFactorResult{
			FactorName:       factorDisplayName(factor),
			RiskLevel:        domain.RiskLevelFor(score),
			ProbabilityScore: score,
			Modifiable:       profile.Modifiable,
			Recommendations:  factorRecommendations(factor, ev.Lifestyle, ev.Dietary),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].ProbabilityScore != results[j].ProbabilityScore {
			return results[i].ProbabilityScore > results[j].ProbabilityScore
		}
		return results[i].FactorName < results[j].FactorName
	})
	return results
}

// lifestyleModifier sums the signed contributions of each lifestyle answer.
// Protective behaviors subtract; the result may be negative.
func lifestyleModifier(ls lifestyleEvidence, diet string, dt dietaryEvidence) float64 {
	modifier := 0.0

	if ls.SmokingHistory {
		modifier += 0.4
	}

	switch ls.Alcohol {
	case "Daily or almost daily", "Frequently (3-4 times per week)":
		modifier += 0.3
	case "Regularly (1-2 times per week)":
		modifier += 0.1
	}

	switch ls.Exercise {
	case "Daily", "5+ times per week":
		modifier -= 0.2
	case "3-4 times per week":
		modifier -= 0.1
	}

	switch diet {
	case "Mostly whole foods", "Strict healthy diet (Mediterranean, plant-based, etc.)":
		modifier -= 0.15
	case "Mostly processed/fast foods":
		modifier += 0.2
	}

	switch ls.Sleep {
	case "Poor", "Very poor":
		modifier += 0.15
	}

	switch ls.Stress {
	case "High", "Very high":
		modifier += 0.25
	}

	if dt.ProcessedFoodHigh {
		modifier += 0.15
	}
	if dt.VegetableHigh {
		modifier -= 0.1
	}
	if ls.ChronicStress {
		modifier += 0.2
	}

	return modifier
}

// environmentalModifier sums exposure keyword contributions, capped.
func environmentalModifier(exposures []string) float64 {
	modifier := 0.0
	for _, exposure := range exposures {
		switch {
		case containsAnyFold(exposure, highRiskExposureKeywords):
			modifier += highRiskExposureWeight
		case containsAnyFold(exposure, moderateRiskExposureKeywords):
			modifier += moderateRiskExposureWeight
		}
	}
	if modifier > environmentalModifierCap {
		modifier = environmentalModifierCap
	}
	return modifier
}

// factorRecommendations templates advice by factor family, then appends
// lifestyle-specific items, capped.
func factorRecommendations(factor string, ls lifestyleEvidence, dt dietaryEvidence) []string {
	var recs []string

	switch {
	case strings.Contains(factor, "dna_methylation"):
		recs = append(recs,
			"Increase folate and B-vitamin intake",
			"Consider Mediterranean diet pattern",
			"Limit alcohol consumption")
	case strings.Contains(factor, "histone_modification"):
		recs = append(recs,
			"Regular physical exercise",
			"Stress management techniques",
			"Adequate sleep (7-9 hours nightly)")
	case strings.Contains(factor, "stress"):
		recs = append(recs,
			"Increase antioxidant-rich foods",
			"Reduce processed food consumption",
			"Regular moderate exercise")
	case strings.Contains(factor, "inflammation"):
		recs = append(recs,
			"Anti-inflammatory diet (omega-3 rich foods)",
			"Regular moderate exercise",
			"Stress reduction techniques")
	case strings.Contains(factor, "telomere"):
		recs = append(recs,
			"Regular aerobic exercise",
			"Stress management and meditation",
			"Adequate sleep and recovery")
	case strings.Contains(factor, "metabolic"):
		recs = append(recs,
			"Maintain a healthy body weight",
			"Limit refined sugar intake",
			"Regular physical activity")
	}

	if ls.SmokingHistory {
		recs = append(recs, "Smoking cessation program")
	}
	if ls.Stress == "High" || ls.Stress == "Very high" {
		recs = append(recs,
			"Professional stress management counseling",
			"Mindfulness or meditation practice")
	}
	if dt.ProcessedFoodHigh {
		recs = append(recs, "Reduce processed food consumption")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// factorDisplayName converts a snake_case factor key into its display form.
func factorDisplayName(factor string) string {
	words := strings.Split(factor, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
