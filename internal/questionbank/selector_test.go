package questionbank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genetic-risk-server/internal/domain"
)

func record(questionID string, value domain.AnswerValue) domain.ResponseRecord {
	return domain.ResponseRecord{
		QuestionID: questionID,
		Value:      value,
		Timestamp:  time.Now().UTC(),
	}
}

// entryResponses answers the genetic-screening entry set with the given
// family and personal history flags.
func entryResponses(familyHistory, personalHistory bool) []domain.ResponseRecord {
	return []domain.ResponseRecord{
		record("demo_age", domain.NumberAnswer(45)),
		record("demo_gender", domain.ChoiceAnswer("Female")),
		record("demo_ethnicity", domain.MultiAnswer("Caucasian/White")),
		record("family_cancer_history", domain.BoolAnswer(familyHistory)),
		record("personal_cancer_history", domain.BoolAnswer(personalHistory)),
	}
}

func pathOf(responses []domain.ResponseRecord) []string {
	path := make([]string, 0, len(responses))
	for _, r := range responses {
		path = append(path, r.QuestionID)
	}
	return path
}

func TestNextPrefersHighestPriority(t *testing.T) {
	selector := NewSelector(newTestBank())

	// With nothing answered, the heaviest question wins.
	id, ok := selector.Next(domain.GENETIC_SCREENING, nil, nil)
	require.True(t, ok)
	assert.Equal(t, "demo_age", id)
}

func TestPositiveFamilyHistoryBoostsFollowUps(t *testing.T) {
	selector := NewSelector(newTestBank())

	responses := entryResponses(true, false)
	id, ok := selector.Next(domain.GENETIC_SCREENING, responses, pathOf(responses))
	require.True(t, ok)
	assert.Contains(t,
		[]string{"family_cancer_types", "family_cancer_relatives", "family_early_onset"},
		id,
		"family-history boost must dominate after a positive answer")
}

func TestNegativeFamilyHistoryNeverOffersFollowUps(t *testing.T) {
	selector := NewSelector(newTestBank())
	blocked := map[string]bool{
		"family_cancer_types":     true,
		"family_cancer_relatives": true,
		"family_early_onset":      true,
	}

	responses := entryResponses(false, false)
	path := pathOf(responses)

	// Drain the whole candidate stream; the skip-conditioned questions must
	// never surface.
	for i := 0; i < 100; i++ {
		id, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
		if !ok {
			return
		}
		assert.False(t, blocked[id], "skip-conditioned question %s was offered", id)

		q, err := newTestBank().Get(id)
		require.NoError(t, err)
		responses = append(responses, record(id, neutralAnswer(q)))
		path = append(path, id)
	}
	t.Fatal("candidate stream did not drain")
}

func neutralAnswer(q *domain.QuestionDefinition) domain.AnswerValue {
	switch q.Type {
	case domain.BOOLEAN:
		return domain.BoolAnswer(false)
	case domain.NUMERIC:
		return domain.NumberAnswer(40)
	case domain.MULTIPLE_CHOICE:
		return domain.ChoiceAnswer(q.Options[0])
	case domain.MULTI_SELECT:
		return domain.MultiAnswer(q.Options[len(q.Options)-1])
	default:
		return domain.TextAnswer("none")
	}
}

func TestSmokerBoostSteersLifestyle(t *testing.T) {
	selector := NewSelector(newTestBank())

	responses := []domain.ResponseRecord{
		record("demo_age", domain.NumberAnswer(50)),
		record("lifestyle_smoking", domain.ChoiceAnswer("Current smoker")),
		record("lifestyle_alcohol", domain.ChoiceAnswer("Never")),
		record("diet_quality", domain.ChoiceAnswer("Mostly whole foods")),
		record("stress_level", domain.ChoiceAnswer("Moderate")),
	}

	id, ok := selector.Next(domain.EPIGENETIC_ASSESSMENT, responses, pathOf(responses))
	require.True(t, ok)

	q, err := newTestBank().Get(id)
	require.NoError(t, err)
	assert.Contains(t,
		[]domain.Category{domain.CATEGORY_LIFESTYLE, domain.CATEGORY_ENVIRONMENTAL},
		q.Category,
		"smoker boost must keep selection in lifestyle or environmental territory")
}

func TestDeterministicSelection(t *testing.T) {
	selector := NewSelector(newTestBank())
	responses := entryResponses(true, false)
	path := pathOf(responses)

	first, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
		require.True(t, ok)
		assert.Equal(t, first, again, "selection must be reproducible for identical inputs")
	}
}

func TestBoostedSelectionOrder(t *testing.T) {
	selector := NewSelector(newTestBank())

	// family_cancer_types (9.0) and family_cancer_relatives (8.5) both carry
	// the +2.0 family boost; the heavier one wins first, then the next.
	responses := entryResponses(true, false)
	path := pathOf(responses)

	first, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
	require.True(t, ok)
	assert.Equal(t, "family_cancer_types", first, "highest boosted weight wins")

	// With the winner consumed, selection falls to the next candidate, and
	// repeated invocation stays stable.
	path = append(path, first)
	responses = append(responses, record(first, domain.MultiAnswer("Breast cancer")))

	second, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
	require.True(t, ok)
	assert.Equal(t, "family_cancer_relatives", second)
}

func TestSelectorHonorsDependencies(t *testing.T) {
	selector := NewSelector(newTestBank())

	// genetic_testing_results depends on previous_genetic_testing; before
	// that answer exists, it must not be offered no matter the weights.
	responses := entryResponses(true, false)
	path := pathOf(responses)

	for i := 0; i < 100; i++ {
		id, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
		if !ok {
			return
		}
		if id == "genetic_testing_results" {
			answered := false
			for _, r := range responses {
				if r.QuestionID == "previous_genetic_testing" {
					answered = true
					break
				}
			}
			assert.True(t, answered, "follow-up offered before its dependency was answered")
		}

		q, err := newTestBank().Get(id)
		require.NoError(t, err)
		responses = append(responses, record(id, neutralAnswer(q)))
		path = append(path, id)
	}
}

func TestExhaustionSignalsCompletion(t *testing.T) {
	selector := NewSelector(newTestBank())

	responses := entryResponses(false, false)
	path := pathOf(responses)

	for i := 0; i < 100; i++ {
		id, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
		if !ok {
			_, ok := selector.Next(domain.GENETIC_SCREENING, responses, path)
			assert.False(t, ok, "exhaustion must be stable")
			return
		}
		q, err := newTestBank().Get(id)
		require.NoError(t, err)
		responses = append(responses, record(id, neutralAnswer(q)))
		path = append(path, id)
	}
	t.Fatal("selector never exhausted")
}
