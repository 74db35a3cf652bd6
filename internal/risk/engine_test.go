package risk

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/questionbank"
)

func newTestEngine() *Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEngine(logger, questionbank.NewBank(logger))
}

func resp(questionID string, value domain.AnswerValue) domain.ResponseRecord {
	return domain.ResponseRecord{
		QuestionID: questionID,
		Value:      value,
		Timestamp:  time.Now().UTC(),
	}
}

// strongHereditaryProfile is a respondent with Ashkenazi Jewish ancestry,
// multiple relatives with breast and ovarian cancer diagnosed young, and a
// personal breast cancer history.
func strongHereditaryProfile() []domain.ResponseRecord {
	return []domain.ResponseRecord{
		resp("demo_age", domain.NumberAnswer(38)),
		resp("demo_gender", domain.ChoiceAnswer("Female")),
		resp("demo_ethnicity", domain.MultiAnswer("Ashkenazi Jewish")),
		resp("family_cancer_history", domain.BoolAnswer(true)),
		resp("family_cancer_types", domain.MultiAnswer("Breast cancer", "Ovarian cancer")),
		resp("family_cancer_relatives", domain.MultiAnswer("Mother", "Sister", "Aunt (mother's side)")),
		resp("family_early_onset", domain.BoolAnswer(true)),
		resp("personal_cancer_history", domain.BoolAnswer(true)),
		resp("personal_cancer_type", domain.MultiAnswer("Breast cancer")),
	}
}

func TestGeneticRisksStrongHereditaryProfile(t *testing.T) {
	engine := newTestEngine()

	results := engine.GeneticRisks(strongHereditaryProfile())
	require.NotEmpty(t, results)

	var brca1 *domain.GeneticRiskResult
	for i := range results {
		if results[i].GeneSymbol == "BRCA1" {
			brca1 = &results[i]
			break
		}
	}
	require.NotNil(t, brca1, "BRCA1 must surface for a strong hereditary breast/ovarian profile")
	assert.Greater(t, brca1.MutationProbability, 0.1)
	assert.True(t, brca1.EvidenceStrength.AtLeast(domain.EVIDENCE_MODERATE),
		"expected at least moderate evidence, got %s", brca1.EvidenceStrength)
	assert.NotEmpty(t, brca1.RecommendedTesting)
	assert.Contains(t, brca1.ClinicalSignificance, "BRCA1")
}

func TestGeneticRisksConfidenceIntervalBounds(t *testing.T) {
	engine := newTestEngine()

	results := engine.GeneticRisks(strongHereditaryProfile())
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.LessOrEqual(t, r.ConfidenceInterval.Low, r.MutationProbability, r.GeneSymbol)
		assert.GreaterOrEqual(t, r.ConfidenceInterval.High, r.MutationProbability, r.GeneSymbol)
		assert.GreaterOrEqual(t, r.ConfidenceInterval.Low, 0.0, r.GeneSymbol)
		assert.LessOrEqual(t, r.ConfidenceInterval.High, 1.0, r.GeneSymbol)
	}
}

func TestGeneticRisksSortedAndCapped(t *testing.T) {
	engine := newTestEngine()

	results := engine.GeneticRisks(strongHereditaryProfile())
	assert.LessOrEqual(t, len(results), maxSurfacedGenes)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MutationProbability, results[i].MutationProbability)
	}
	for _, r := range results {
		assert.Greater(t, r.MutationProbability, surfaceGeneThreshold)
	}
}

func TestGeneticRisksNoEvidence(t *testing.T) {
	engine := newTestEngine()

	// Population priors alone stay below the reporting threshold.
	results := engine.GeneticRisks(nil)
	assert.Empty(t, results)
}

func TestGeneticRisksIgnoresUnknownQuestions(t *testing.T) {
	engine := newTestEngine()

	responses := append(strongHereditaryProfile(),
		resp("no_such_question", domain.BoolAnswer(true)))
	results := engine.GeneticRisks(responses)
	assert.NotEmpty(t, results)
}

func TestEpigeneticRisksHighRiskLifestyle(t *testing.T) {
	engine := newTestEngine()

	responses := []domain.ResponseRecord{
		resp("lifestyle_smoking", domain.ChoiceAnswer("Current smoker")),
		resp("lifestyle_alcohol", domain.ChoiceAnswer("Daily or almost daily")),
		resp("lifestyle_sleep", domain.ChoiceAnswer("Poor")),
		resp("stress_level", domain.ChoiceAnswer("Very high")),
		resp("chronic_stress", domain.BoolAnswer(true)),
		resp("diet_quality", domain.ChoiceAnswer("Mostly processed/fast foods")),
		resp("processed_food_frequency", domain.ChoiceAnswer("Daily")),
		resp("environmental_exposures", domain.MultiAnswer("Asbestos", "Air pollution")),
	}

	results := engine.EpigeneticRisks(responses)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.ProbabilityScore, minFactorRisk, r.FactorName)
		assert.LessOrEqual(t, r.ProbabilityScore, maxFactorRisk, r.FactorName)
		assert.Equal(t, domain.RiskLevelFor(r.ProbabilityScore), r.RiskLevel, r.FactorName)
		assert.LessOrEqual(t, len(r.Recommendations), maxRecommendations, r.FactorName)
	}

	// The most lifestyle-sensitive factor saturates under this profile.
	top := results[0]
	assert.Equal(t, "Cellular Stress Indicators", top.FactorName)
	assert.Equal(t, domain.RISK_HIGH, top.RiskLevel)
	assert.InDelta(t, maxFactorRisk, top.ProbabilityScore, 1e-9)
}

func TestEpigeneticRisksProtectiveLifestyle(t *testing.T) {
	engine := newTestEngine()

	responses := []domain.ResponseRecord{
		resp("lifestyle_smoking", domain.ChoiceAnswer("Never smoked")),
		resp("lifestyle_exercise", domain.ChoiceAnswer("Daily")),
		resp("diet_quality", domain.ChoiceAnswer("Mostly whole foods")),
		resp("vegetable_intake", domain.ChoiceAnswer("5 or more servings")),
	}

	results := engine.EpigeneticRisks(responses)
	for _, r := range results {
		assert.NotEqual(t, domain.RISK_HIGH, r.RiskLevel, r.FactorName)
	}
}

func TestLifestyleModifier(t *testing.T) {
	tests := []struct {
		name     string
		ls       lifestyleEvidence
		diet     string
		dt       dietaryEvidence
		expected float64
	}{
		{
			name:     "neutral",
			expected: 0,
		},
		{
			name:     "smoker only",
			ls:       lifestyleEvidence{SmokingHistory: true},
			expected: 0.4,
		},
		{
			name: "all adverse factors",
			ls: lifestyleEvidence{
				SmokingHistory: true,
				Alcohol:        "Daily or almost daily",
				Sleep:          "Very poor",
				Stress:         "High",
				ChronicStress:  true,
			},
			diet:     "Mostly processed/fast foods",
			dt:       dietaryEvidence{ProcessedFoodHigh: true},
			expected: 0.4 + 0.3 + 0.15 + 0.25 + 0.2 + 0.2 + 0.15,
		},
		{
			name: "protective profile goes negative",
			ls:   lifestyleEvidence{Exercise: "Daily"},
			diet: "Strict healthy diet (Mediterranean, plant-based, etc.)",
			dt:   dietaryEvidence{VegetableHigh: true},
			expected: -0.2 - 0.15 - 0.1,
		},
		{
			name:     "moderate alcohol",
			ls:       lifestyleEvidence{Alcohol: "Regularly (1-2 times per week)"},
			expected: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, lifestyleModifier(tt.ls, tt.diet, tt.dt), 1e-9)
		})
	}
}

func TestEnvironmentalModifier(t *testing.T) {
	tests := []struct {
		name      string
		exposures []string
		expected  float64
	}{
		{name: "none", expected: 0},
		{name: "one high risk", exposures: []string{"Asbestos"}, expected: 0.3},
		{name: "one moderate risk", exposures: []string{"Secondhand smoke"}, expected: 0.15},
		{
			name:      "mixed",
			exposures: []string{"Radiation (medical or occupational)", "Air pollution"},
			expected:  0.45,
		},
		{
			name: "capped",
			exposures: []string{
				"Asbestos", "Radiation (medical or occupational)",
				"Industrial chemicals", "Pesticides", "Heavy metals",
			},
			expected: environmentalModifierCap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, environmentalModifier(tt.exposures), 1e-9)
		})
	}
}

func TestInterimRisksEmptySession(t *testing.T) {
	engine := newTestEngine()

	interim := engine.InterimRisks(domain.COMPREHENSIVE_ASSESSMENT, nil)
	require.NotNil(t, interim)
	assert.Zero(t, interim.OverallRisk)
	assert.Zero(t, interim.Confidence)
	assert.Empty(t, interim.GeneticRiskGene)
}

func TestInterimRisksBlendsBothTracks(t *testing.T) {
	engine := newTestEngine()

	responses := append(strongHereditaryProfile(),
		resp("lifestyle_smoking", domain.ChoiceAnswer("Current smoker")),
		resp("stress_level", domain.ChoiceAnswer("Very high")),
	)

	genetic := engine.GeneticRisks(responses)
	epigenetic := engine.EpigeneticRisks(responses)
	require.NotEmpty(t, genetic)
	require.NotEmpty(t, epigenetic)

	interim := engine.InterimRisks(domain.COMPREHENSIVE_ASSESSMENT, responses)
	expected := blendGeneticWeight*genetic[0].MutationProbability +
		blendEpigeneticWeight*epigenetic[0].ProbabilityScore
	assert.InDelta(t, expected, interim.OverallRisk, 1e-9)
	assert.Equal(t, genetic[0].GeneSymbol, interim.GeneticRiskGene)
	assert.Equal(t, epigenetic[0].FactorName, interim.EpigeneticRiskFactor)
}

func TestInterimRisksSingleTrackDiscount(t *testing.T) {
	engine := newTestEngine()

	responses := strongHereditaryProfile()
	genetic := engine.GeneticRisks(responses)
	require.NotEmpty(t, genetic)

	interim := engine.InterimRisks(domain.GENETIC_SCREENING, responses)
	assert.InDelta(t, blendGeneticOnly*genetic[0].MutationProbability, interim.OverallRisk, 1e-9)
	assert.Empty(t, interim.EpigeneticRiskFactor)
}

func TestInterimConfidence(t *testing.T) {
	assert.InDelta(t, 0.0, interimConfidence(0), 1e-9)
	assert.InDelta(t, 0.5, interimConfidence(5), 1e-9)
	assert.InDelta(t, 1.0, interimConfidence(10), 1e-9)
	assert.InDelta(t, 1.0, interimConfidence(40), 1e-9)
}

func TestClinicalUrgency(t *testing.T) {
	tests := []struct {
		name     string
		genes    []domain.GeneticRiskResult
		overall  float64
		expected domain.ClinicalUrgency
	}{
		{
			name:     "critical on very high gene probability",
			genes:    []domain.GeneticRiskResult{{GeneSymbol: "TP53", MutationProbability: 0.85}},
			overall:  0.2,
			expected: domain.URGENCY_CRITICAL,
		},
		{name: "urgent", overall: 0.75, expected: domain.URGENCY_URGENT},
		{name: "elevated", overall: 0.5, expected: domain.URGENCY_ELEVATED},
		{name: "routine", overall: 0.1, expected: domain.URGENCY_ROUTINE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clinicalUrgency(tt.genes, tt.overall))
		})
	}
}

func TestFinalResults(t *testing.T) {
	engine := newTestEngine()

	session := &domain.Session{
		ID:        "test-session",
		Variant:   domain.COMPREHENSIVE_ASSESSMENT,
		CreatedAt: time.Now().UTC(),
		Responses: append(strongHereditaryProfile(),
			resp("lifestyle_smoking", domain.ChoiceAnswer("Current smoker"))),
		Completed: true,
	}

	results := engine.FinalResults(session)
	require.NotNil(t, results)
	assert.Equal(t, session.ID, results.SessionID)
	assert.Equal(t, session.Variant, results.Variant)
	assert.Equal(t, len(session.Responses), results.TotalAnswered)
	assert.NotEmpty(t, results.GeneticPredictions)
	assert.NotEmpty(t, results.NextSteps)
	assert.True(t, results.ClinicalUrgency.IsValid())
	assert.GreaterOrEqual(t, results.AggregateRiskScore, 0.0)
	assert.LessOrEqual(t, results.AggregateRiskScore, 1.0)
}

func TestFinalResultsVariantScoping(t *testing.T) {
	engine := newTestEngine()

	session := &domain.Session{
		ID:      "genetic-only",
		Variant: domain.GENETIC_SCREENING,
		Responses: append(strongHereditaryProfile(),
			resp("lifestyle_smoking", domain.ChoiceAnswer("Current smoker"))),
		Completed: true,
	}

	results := engine.FinalResults(session)
	assert.NotEmpty(t, results.GeneticPredictions)
	assert.Empty(t, results.EpigeneticFactors, "genetic screening must not report epigenetic factors")
}

func TestRecommendVariants(t *testing.T) {
	tests := []struct {
		name                               string
		family, personal, lifestyle        bool
		expectedVariants                   []domain.Variant
	}{
		{
			name:             "no indicators",
			expectedVariants: []domain.Variant{domain.EPIGENETIC_ASSESSMENT},
		},
		{
			name:             "family history only",
			family:           true,
			expectedVariants: []domain.Variant{domain.GENETIC_SCREENING},
		},
		{
			name:             "lifestyle only",
			lifestyle:        true,
			expectedVariants: []domain.Variant{domain.EPIGENETIC_ASSESSMENT},
		},
		{
			name:      "family and lifestyle",
			family:    true,
			lifestyle: true,
			expectedVariants: []domain.Variant{
				domain.GENETIC_SCREENING, domain.EPIGENETIC_ASSESSMENT, domain.COMPREHENSIVE_ASSESSMENT,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := RecommendVariants(tt.family, tt.personal, tt.lifestyle)
			var got []domain.Variant
			for _, r := range recs {
				got = append(got, r.Variant)
			}
			assert.Equal(t, tt.expectedVariants, got)
		})
	}
}
