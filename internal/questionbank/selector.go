package questionbank

import "github.com/genetic-risk-server/internal/domain"

// Relevance boosts applied on top of a question's priority weight once the
// responses so far indicate a high-yield line of questioning.
const (
	boostFamilyHistory   = 2.0
	boostSmokerLifestyle = 1.5
	boostGeneAssociated  = 2.5
)

// Selector chooses the next question for a session. It is a pure function
// over the bank and its inputs: invoking it repeatedly with the same
// arguments returns the same answer, so progress previews may call it freely.
type Selector struct {
	bank *Bank
}

// NewSelector creates a selector over the given bank.
func NewSelector(bank *Bank) *Selector {
	return &Selector{bank: bank}
}

// Next returns the id of the best next question, or ok=false when no
// candidate remains, which signals questionnaire completion.
//
// Candidates are relevant, unasked questions whose dependencies are all
// answered and whose skip conditions all miss. Each candidate scores
// priority weight plus response-driven boosts; the highest score wins and
// ties break by ascending question id so selection is reproducible.
func (s *Selector) Next(variant domain.Variant, responses []domain.ResponseRecord, askedPath []string) (string, bool) {
	answered := make(map[string]domain.AnswerValue, len(responses))
	for _, r := range responses {
		answered[r.QuestionID] = r.Value
	}
	asked := make(map[string]struct{}, len(askedPath))
	for _, id := range askedPath {
		asked[id] = struct{}{}
	}

	bestID := ""
	bestScore := 0.0
	for _, id := range s.bank.ordered {
		q := s.bank.questions[id]
		if _, done := asked[id]; done {
			continue
		}
		if !s.bank.relevant(q, variant) {
			continue
		}
		if !dependenciesMet(q, answered) {
			continue
		}
		if skipTriggered(q, answered) {
			continue
		}

		score := q.PriorityWeight + relevanceBoost(q, answered)
		// Strict > plus the sorted iteration order makes the
		// lexicographically smallest id win ties.
		if bestID == "" || score > bestScore {
			bestID = id
			bestScore = score
		}
	}

	if bestID == "" {
		return "", false
	}
	return bestID, true
}

// relevanceBoost adds score for questions made more informative by earlier
// answers. Boosts are additive.
func relevanceBoost(q *domain.QuestionDefinition, answered map[string]domain.AnswerValue) float64 {
	boost := 0.0

	if v, ok := answered["family_cancer_history"]; ok {
		if positive, isBool := v.AsBool(); isBool && positive && q.Category == domain.CATEGORY_FAMILY_HISTORY {
			boost += boostFamilyHistory
		}
	}

	if v, ok := answered["lifestyle_smoking"]; ok {
		if v.Equal(domain.ChoiceAnswer("Current smoker")) || v.Equal(domain.ChoiceAnswer("Former smoker")) {
			if q.Category == domain.CATEGORY_LIFESTYLE || q.Category == domain.CATEGORY_ENVIRONMENTAL {
				boost += boostSmokerLifestyle
			}
		}
	}

	if v, ok := answered["personal_cancer_history"]; ok {
		if positive, isBool := v.AsBool(); isBool && positive && len(q.GeneAssociations) > 0 {
			boost += boostGeneAssociated
		}
	}

	return boost
}
