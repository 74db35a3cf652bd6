// Package questionbank holds the immutable question catalogue and the
// adaptive question selector. Both are pure over their inputs: the bank never
// changes after construction and the selector has no side effects, so either
// can be shared across goroutines without synchronization.
package questionbank

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/genetic-risk-server/internal/domain"
)

// Bank is the evidence-based question catalogue.
type Bank struct {
	logger    *logrus.Logger
	questions map[string]*domain.QuestionDefinition
	ordered   []string
}

// NewBank constructs the bank from the built-in catalogue.
func NewBank(logger *logrus.Logger) *Bank {
	defs := defaultCatalogue()
	questions := make(map[string]*domain.QuestionDefinition, len(defs))
	ordered := make([]string, 0, len(defs))
	for _, q := range defs {
		questions[q.ID] = q
		ordered = append(ordered, q.ID)
	}
	sort.Strings(ordered)

	logger.WithField("question_count", len(questions)).Debug("Question bank initialized")

	return &Bank{
		logger:    logger,
		questions: questions,
		ordered:   ordered,
	}
}

// Get returns the question definition, or a NotFoundError for unknown ids.
func (b *Bank) Get(id string) (*domain.QuestionDefinition, error) {
	q, ok := b.questions[id]
	if !ok {
		return nil, domain.NewNotFound("question", id)
	}
	return q, nil
}

// InitialQuestions returns the fixed entry set for a questionnaire variant.
func (b *Bank) InitialQuestions(variant domain.Variant) []string {
	switch variant {
	case domain.GENETIC_SCREENING:
		return []string{
			"demo_age", "demo_gender", "demo_ethnicity",
			"family_cancer_history", "personal_cancer_history",
		}
	case domain.EPIGENETIC_ASSESSMENT:
		return []string{
			"demo_age", "lifestyle_smoking", "lifestyle_alcohol",
			"diet_quality", "stress_level",
		}
	case domain.COMPREHENSIVE_ASSESSMENT:
		return []string{
			"demo_age", "demo_gender", "demo_ethnicity",
			"family_cancer_history", "lifestyle_smoking",
		}
	}
	return nil
}

// EstimateCount returns the fixed per-variant question count estimate used
// for progress reporting.
func (b *Bank) EstimateCount(variant domain.Variant) int {
	switch variant {
	case domain.GENETIC_SCREENING:
		return 15
	case domain.EPIGENETIC_ASSESSMENT:
		return 12
	case domain.COMPREHENSIVE_ASSESSMENT:
		return 25
	}
	return 10
}

// QuestionsFor returns all questions relevant to the variant, optionally
// filtered by category, in deterministic id order.
func (b *Bank) QuestionsFor(variant domain.Variant, category domain.Category) []*domain.QuestionDefinition {
	var out []*domain.QuestionDefinition
	for _, id := range b.ordered {
		q := b.questions[id]
		if !b.relevant(q, variant) {
			continue
		}
		if category != "" && q.Category != category {
			continue
		}
		out = append(out, q)
	}
	return out
}

// relevant implements the per-variant relevance rule. Comprehensive accepts
// everything; genetic screening requires a gene association or a core intake
// category; epigenetic assessment requires an epigenetic association or a
// lifestyle-adjacent category.
func (b *Bank) relevant(q *domain.QuestionDefinition, variant domain.Variant) bool {
	switch variant {
	case domain.COMPREHENSIVE_ASSESSMENT:
		return true
	case domain.GENETIC_SCREENING:
		if len(q.GeneAssociations) > 0 {
			return true
		}
		switch q.Category {
		case domain.CATEGORY_DEMOGRAPHICS, domain.CATEGORY_FAMILY_HISTORY, domain.CATEGORY_MEDICAL_HISTORY:
			return true
		}
		return false
	case domain.EPIGENETIC_ASSESSMENT:
		if len(q.EpigeneticAssociations) > 0 {
			return true
		}
		switch q.Category {
		case domain.CATEGORY_LIFESTYLE, domain.CATEGORY_ENVIRONMENTAL, domain.CATEGORY_DIET:
			return true
		}
		return false
	}
	return false
}

// dependenciesMet reports whether every prerequisite id has a recorded
// answer. Membership is exact: an answered prerequisite satisfies the
// dependency regardless of its value.
func dependenciesMet(q *domain.QuestionDefinition, answered map[string]domain.AnswerValue) bool {
	for _, dep := range q.Dependencies {
		if _, ok := answered[dep]; !ok {
			return false
		}
	}
	return true
}

// skipTriggered reports whether any skip condition matches a recorded answer
// exactly.
func skipTriggered(q *domain.QuestionDefinition, answered map[string]domain.AnswerValue) bool {
	for _, cond := range q.SkipConditions {
		if got, ok := answered[cond.QuestionID]; ok && got.Equal(cond.Value) {
			return true
		}
	}
	return false
}

// Validate inspects the catalogue and returns an integrity report. Running it
// twice on an unmodified bank yields identical results.
func (b *Bank) Validate() *domain.BankValidationReport {
	report := &domain.BankValidationReport{
		Issues:     []string{},
		Categories: make(map[domain.Category]int),
	}

	for _, id := range b.ordered {
		q := b.questions[id]
		report.TotalQuestions++
		report.Categories[q.Category]++

		if len(q.GeneAssociations) > 0 {
			report.GeneLinked++
		}
		if len(q.EpigeneticAssociations) > 0 {
			report.EpigeneticLinked++
		}

		if q.Text == "" {
			report.Issues = append(report.Issues, fmt.Sprintf("question %s missing question_text", id))
		}
		if !q.Type.IsValid() {
			report.Issues = append(report.Issues, fmt.Sprintf("question %s has invalid question_type %q", id, q.Type))
		}
		if (q.Type == domain.MULTIPLE_CHOICE || q.Type == domain.MULTI_SELECT) && len(q.Options) == 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("question %s is a choice type without options", id))
		}
		if q.PriorityWeight <= 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("question %s has non-positive priority_weight", id))
		}
		for gene, w := range q.GeneAssociations {
			if w < 0 || w > 1 {
				report.Issues = append(report.Issues, fmt.Sprintf("question %s gene weight for %s out of [0,1]: %g", id, gene, w))
			}
		}
		for factor, w := range q.EpigeneticAssociations {
			if w < -1 || w > 1 {
				report.Issues = append(report.Issues, fmt.Sprintf("question %s epigenetic weight for %s out of [-1,1]: %g", id, factor, w))
			}
		}
		for _, dep := range q.Dependencies {
			if _, ok := b.questions[dep]; !ok {
				report.Issues = append(report.Issues, fmt.Sprintf("question %s depends on unknown question %s", id, dep))
			}
		}
		for _, cond := range q.SkipConditions {
			if _, ok := b.questions[cond.QuestionID]; !ok {
				report.Issues = append(report.Issues, fmt.Sprintf("question %s skip condition references unknown question %s", id, cond.QuestionID))
			}
		}
		for _, follow := range q.FollowUps {
			if _, ok := b.questions[follow]; !ok {
				report.Issues = append(report.Issues, fmt.Sprintf("question %s follow-up references unknown question %s", id, follow))
			}
		}
	}

	if report.GeneLinked < 10 {
		report.Recommendations = append(report.Recommendations,
			"Consider adding more questions with genetic associations")
	}
	if report.EpigeneticLinked < 8 {
		report.Recommendations = append(report.Recommendations,
			"Consider adding more questions with epigenetic associations")
	}

	report.Valid = len(report.Issues) == 0
	return report
}
