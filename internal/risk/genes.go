package risk

import (
	"math"
	"sort"

	"github.com/genetic-risk-server/internal/domain"
)

const (
	minMutationProbability = 0.001
	maxMutationProbability = 0.99
	ciHalfWidth            = 0.10
	minCIBound             = 0.001
	maxCIBound             = 0.999
	surfaceGeneThreshold   = 0.05
	maxSurfacedGenes       = 10
)

// geneLikelihoods holds the independent per-gene likelihood ratios, one per
// evidence category. 1.0 is neutral.
type geneLikelihoods struct {
	Family      float64
	Demographic float64
	Symptom     float64
	Medical     float64
}

func (lr geneLikelihoods) max() float64 {
	m := lr.Family
	for _, v := range []float64{lr.Demographic, lr.Symptom, lr.Medical} {
		if v > m {
			m = v
		}
	}
	return m
}

// GeneticRisks scores every gene in the catalogue against the responses and
// returns the surfaced results: probability above the reporting threshold,
// sorted descending, capped.
func (e *Engine) GeneticRisks(responses []domain.ResponseRecord) []domain.GeneticRiskResult {
	ev := e.extractEvidence(responses)

	results := make([]domain.GeneticRiskResult, 0, len(e.genePriors))
	for gene, prior := range e.genePriors {
		if prior <= 0 || prior >= 1 {
			// Malformed prior; score with the floor so the rest of the
			// catalogue still computes.
			e.logger.WithField("gene", gene).Warn("Gene prior out of range, using floor")
			prior = minMutationProbability
		}

		lr := geneLikelihoods{
			Family:      e.familyLikelihood(gene, ev.Family),
			Demographic: demographicLikelihood(gene, ev.Demographic),
			Symptom:     symptomLikelihood(ev.Symptoms),
			Medical:     medicalLikelihood(ev.Medical),
		}

		logOdds := math.Log(prior / (1 - prior))
		logOdds += math.Log(lr.Family)
		logOdds += math.Log(lr.Demographic)
		logOdds += math.Log(lr.Symptom)
		logOdds += math.Log(lr.Medical)

		probability := clamp(1/(1+math.Exp(-logOdds)), minMutationProbability, maxMutationProbability)

		results = append(results, domain.GeneticRiskResult{
			GeneSymbol:          gene,
			MutationProbability: probability,
			ConfidenceInterval: domain.ConfidenceInterval{
				Low:  clamp(probability-ciHalfWidth, minCIBound, maxCIBound),
				High: clamp(probability+ciHalfWidth, minCIBound, maxCIBound),
			},
			EvidenceStrength:     domain.EvidenceStrengthFor(lr.max()),
			ClinicalSignificance: clinicalSignificance(gene, probability),
			RecommendedTesting:   recommendedTesting(gene, probability),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MutationProbability != results[j].MutationProbability {
			return results[i].MutationProbability > results[j].MutationProbability
		}
		return results[i].GeneSymbol < results[j].GeneSymbol
	})

	surfaced := results[:0:0]
	for _, r := range results {
		if r.MutationProbability > surfaceGeneThreshold {
			surfaced = append(surfaced, r)
		}
		if len(surfaced) == maxSurfacedGenes {
			break
		}
	}
	return surfaced
}

// familyLikelihood multiplies (1 + pattern weight) for every matched family
// history pattern carrying a weight for this gene, then scales by relative
// count when two or more affected relatives are named.
func (e *Engine) familyLikelihood(gene string, ev familyHistoryEvidence) float64 {
	ratio := 1.0
	for _, pattern := range ev.Patterns {
		if w, ok := e.patternWeights[pattern][gene]; ok {
			ratio *= 1 + w
		}
	}
	if ev.AffectedRelatives >= 2 {
		ratio *= 1 + 0.3*float64(ev.AffectedRelatives)
	}
	return ratio
}

func demographicLikelihood(gene string, ev demographicEvidence) float64 {
	ratio := 1.0
	if ev.HasAge && ev.Age < 50 && (gene == "BRCA1" || gene == "BRCA2") {
		ratio *= 1.5
	}
	if ev.HasAge && ev.Age < 30 && gene == "TP53" {
		ratio *= 2.0
	}
	for _, eth := range ev.Ethnicities {
		if containsAnyFold(eth, []string{"ashkenazi jewish"}) && (gene == "BRCA1" || gene == "BRCA2") {
			ratio *= 1.8
			break
		}
	}
	if ev.Sex == "Male" && gene == "BRCA2" {
		ratio *= 1.3
	}
	return ratio
}

func symptomLikelihood(symptoms []string) float64 {
	matched := 0
	for _, s := range symptoms {
		if containsAnyFold(s, cancerWarningKeywords) {
			matched++
		}
	}
	return 1 + 0.2*float64(matched)
}

func medicalLikelihood(ev medicalHistoryEvidence) float64 {
	ratio := 1.0
	if ev.PriorCancer {
		ratio *= 1.8
		if ev.MultiplePrimaries {
			ratio *= 2.5
		}
	}
	return ratio
}

// clinicalSignificance templates the interpretation text by probability band.
func clinicalSignificance(gene string, probability float64) string {
	switch {
	case probability > 0.3:
		return "High probability of pathogenic " + gene + " variant; urgent genetic counseling recommended"
	case probability > 0.1:
		return "Elevated probability of pathogenic " + gene + " variant; genetic counseling recommended"
	case probability > 0.05:
		return "Moderately elevated probability of pathogenic " + gene + " variant; consider discussing genetic testing"
	default:
		return "Low probability of pathogenic " + gene + " variant based on current responses"
	}
}

// recommendedTesting templates the testing recommendations by probability band.
func recommendedTesting(gene string, probability float64) []string {
	switch {
	case probability > 0.3:
		return []string{
			"Urgent referral to genetic counseling",
			"Comprehensive hereditary cancer panel including " + gene,
			"Cascade testing for at-risk family members",
		}
	case probability > 0.1:
		return []string{
			"Referral to genetic counseling",
			"Targeted " + gene + " sequencing",
		}
	case probability > 0.05:
		return []string{
			"Discuss genetic testing options with a healthcare provider",
		}
	default:
		return nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
