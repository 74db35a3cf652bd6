// Package risk scores questionnaire responses into gene mutation
// probabilities and epigenetic factor risks. The engine is a pure function
// over its inputs once constructed: the association tables are copied at
// construction and never mutated, so one engine can serve concurrent callers
// without synchronization.
package risk

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/questionbank"
)

// Interim blend weights. Single-track sessions are discounted because half
// the evidence surface is missing.
const (
	blendGeneticWeight    = 0.7
	blendEpigeneticWeight = 0.3
	blendGeneticOnly      = 0.8
	blendEpigeneticOnly   = 0.6

	// Confidence saturates once this many questions are answered.
	confidenceSaturation = 10
)

// Engine owns the association tables and computes all risk scores.
type Engine struct {
	logger *logrus.Logger
	bank   *questionbank.Bank

	genePriors     map[string]float64
	patternWeights map[string]map[string]float64
	factorProfiles map[string]factorProfile
}

// NewEngine builds an engine over the bank with its own copy of the
// association tables.
func NewEngine(logger *logrus.Logger, bank *questionbank.Bank) *Engine {
	priors := defaultGenePriors()
	patterns := defaultPatternWeights()
	profiles := defaultFactorProfiles()

	logger.WithFields(logrus.Fields{
		"genes":   len(priors),
		"factors": len(profiles),
	}).Debug("Risk engine initialized")

	return &Engine{
		logger:         logger,
		bank:           bank,
		genePriors:     priors,
		patternWeights: patterns,
		factorProfiles: profiles,
	}
}

// InterimRisks recomputes the mid-questionnaire snapshot from the partial
// response set. Only the strongest signal per track is reported; the blend
// weighting follows the variant's evidence coverage.
func (e *Engine) InterimRisks(variant domain.Variant, responses []domain.ResponseRecord) *domain.InterimRisk {
	interim := &domain.InterimRisk{
		Confidence: interimConfidence(len(responses)),
	}

	var genetic, epigenetic float64
	var hasGenetic, hasEpigenetic bool

	if variant.IncludesGenetic() {
		if results := e.GeneticRisks(responses); len(results) > 0 {
			interim.HighestGeneticRisk = results[0].MutationProbability
			interim.GeneticRiskGene = results[0].GeneSymbol
			genetic = results[0].MutationProbability
			hasGenetic = true
		}
	}
	if variant.IncludesEpigenetic() {
		if results := e.EpigeneticRisks(responses); len(results) > 0 {
			interim.HighestEpigeneticRisk = results[0].ProbabilityScore
			interim.EpigeneticRiskFactor = results[0].FactorName
			epigenetic = results[0].ProbabilityScore
			hasEpigenetic = true
		}
	}

	switch {
	case hasGenetic && hasEpigenetic:
		interim.OverallRisk = blendGeneticWeight*genetic + blendEpigeneticWeight*epigenetic
	case hasGenetic:
		interim.OverallRisk = blendGeneticOnly * genetic
	case hasEpigenetic:
		interim.OverallRisk = blendEpigeneticOnly * epigenetic
	}

	return interim
}

// FinalResults runs both scoring tracks over the complete response set and
// assembles the assessment. Overall risk uses the same top-probability blend
// as the interim path; the mean across surfaced results is reported
// separately as the aggregate score.
func (e *Engine) FinalResults(session *domain.Session) *domain.AssessmentResults {
	results := &domain.AssessmentResults{
		SessionID:      session.ID,
		Variant:        session.Variant,
		CompletionDate: time.Now().UTC(),
		TotalAnswered:  len(session.Responses),
	}

	if session.Variant.IncludesGenetic() {
		results.GeneticPredictions = e.GeneticRisks(session.Responses)
	}
	if session.Variant.IncludesEpigenetic() {
		results.EpigeneticFactors = e.EpigeneticRisks(session.Responses)
	}

	interim := e.InterimRisks(session.Variant, session.Responses)
	results.OverallRiskScore = interim.OverallRisk
	results.AggregateRiskScore = aggregateScore(results.GeneticPredictions, results.EpigeneticFactors)
	results.ClinicalUrgency = clinicalUrgency(results.GeneticPredictions, results.OverallRiskScore)
	results.NextSteps = nextSteps(results)

	e.logger.WithFields(logrus.Fields{
		"session_id":   session.ID,
		"genes":        len(results.GeneticPredictions),
		"factors":      len(results.EpigeneticFactors),
		"overall_risk": results.OverallRiskScore,
		"urgency":      results.ClinicalUrgency,
	}).Info("Assessment results computed")

	return results
}

func interimConfidence(answered int) float64 {
	c := float64(answered) / confidenceSaturation
	if c > 1 {
		c = 1
	}
	return c
}

// aggregateScore is the mean over all surfaced results from both tracks.
func aggregateScore(genes []domain.GeneticRiskResult, factors []domain.EpigeneticFactorResult) float64 {
	total := 0.0
	n := 0
	for _, g := range genes {
		total += g.MutationProbability
		n++
	}
	for _, f := range factors {
		total += f.ProbabilityScore
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func clinicalUrgency(genes []domain.GeneticRiskResult, overallRisk float64) domain.ClinicalUrgency {
	for _, g := range genes {
		if g.MutationProbability > 0.8 {
			return domain.URGENCY_CRITICAL
		}
	}
	switch {
	case overallRisk > 0.7:
		return domain.URGENCY_URGENT
	case overallRisk > 0.4:
		return domain.URGENCY_ELEVATED
	default:
		return domain.URGENCY_ROUTINE
	}
}

// nextSteps derives the action list from urgency and the surfaced results.
func nextSteps(results *domain.AssessmentResults) []string {
	var steps []string

	switch results.ClinicalUrgency {
	case domain.URGENCY_CRITICAL:
		steps = append(steps,
			"Contact a genetic counselor within the next week",
			"Share these results with your primary care provider immediately")
	case domain.URGENCY_URGENT:
		steps = append(steps,
			"Schedule an appointment with a genetic counselor",
			"Discuss these results with your primary care provider")
	case domain.URGENCY_ELEVATED:
		steps = append(steps,
			"Consider discussing genetic counseling with your healthcare provider")
	default:
		steps = append(steps,
			"Continue routine cancer screening appropriate for your age and sex")
	}

	for _, g := range results.GeneticPredictions {
		if g.MutationProbability > 0.1 {
			steps = append(steps, "Review "+g.GeneSymbol+" testing options with a specialist")
			break
		}
	}

	modifiable := 0
	for _, f := range results.EpigeneticFactors {
		if f.Modifiable && f.RiskLevel != domain.RISK_LOW {
			modifiable++
		}
	}
	if modifiable > 0 {
		steps = append(steps, "Address the modifiable lifestyle factors identified in this assessment")
	}

	return steps
}

// RecommendVariants suggests questionnaire variants for an intake profile.
// Family or personal cancer history prioritizes genetic screening; lifestyle
// concerns prioritize the epigenetic track; both together suggest the
// comprehensive assessment.
func RecommendVariants(familyHistory, personalHistory, lifestyleConcerns bool) []domain.VariantRecommendation {
	var recs []domain.VariantRecommendation

	if familyHistory || personalHistory {
		recs = append(recs, domain.VariantRecommendation{
			Variant:           domain.GENETIC_SCREENING,
			Priority:          "high",
			Reason:            "Family or personal cancer history indicates hereditary risk assessment",
			EstimatedDuration: "10-15 minutes",
		})
	}
	if lifestyleConcerns {
		recs = append(recs, domain.VariantRecommendation{
			Variant:           domain.EPIGENETIC_ASSESSMENT,
			Priority:          "medium",
			Reason:            "Lifestyle factors suggest modifiable epigenetic risk",
			EstimatedDuration: "8-12 minutes",
		})
	}
	if (familyHistory || personalHistory) && lifestyleConcerns {
		recs = append(recs, domain.VariantRecommendation{
			Variant:           domain.COMPREHENSIVE_ASSESSMENT,
			Priority:          "high",
			Reason:            "Combined hereditary and lifestyle indicators warrant a full assessment",
			EstimatedDuration: "20-30 minutes",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, domain.VariantRecommendation{
			Variant:           domain.EPIGENETIC_ASSESSMENT,
			Priority:          "low",
			Reason:            "Baseline wellness assessment in the absence of specific risk indicators",
			EstimatedDuration: "8-12 minutes",
		})
	}
	return recs
}
