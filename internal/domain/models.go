package domain

import (
	"time"
)

// NumericRule bounds a numeric answer. Zero value means unbounded.
type NumericRule struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SkipCondition removes a question from candidacy when a previously recorded
// answer equals Value exactly.
type SkipCondition struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
}

// QuestionDefinition describes one question in the knowledge base. Definitions
// are immutable after the bank is constructed; association weights are the
// declared evidence the risk engine scores against.
type QuestionDefinition struct {
	ID   string       `json:"question_id"`
	Text string       `json:"question_text"`
	Type QuestionType `json:"question_type"`

	// Options enumerates the legal values for choice types.
	Options    []string     `json:"options,omitempty"`
	Validation *NumericRule `json:"validation_rules,omitempty"`

	Category       Category `json:"category"`
	PriorityWeight float64  `json:"priority_weight"`

	// GeneAssociations maps gene symbol to evidence weight in [0,1].
	GeneAssociations map[string]float64 `json:"genetic_associations,omitempty"`
	// EpigeneticAssociations maps factor name to weight in [-1,1];
	// negative weights are protective.
	EpigeneticAssociations map[string]float64 `json:"epigenetic_associations,omitempty"`

	SkipConditions []SkipCondition `json:"skip_conditions,omitempty"`
	Dependencies   []string        `json:"dependencies,omitempty"`
	FollowUps      []string        `json:"follow_up_questions,omitempty"`
}

// ResponseRecord is one answered question. Records are append-only: once
// recorded they are never mutated or removed from a session.
type ResponseRecord struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"response"`
	Confidence float64     `json:"confidence,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Session is the persisted questionnaire state, exclusively owned by the
// session manager and stored as a single JSON snapshot in the expiring store.
type Session struct {
	ID                 string           `json:"session_id"`
	Variant            Variant          `json:"questionnaire_type"`
	SubjectID          string           `json:"subject_id,omitempty"`
	CreatorID          string           `json:"creator_id"`
	CreatedAt          time.Time        `json:"created_at"`
	Responses          []ResponseRecord `json:"responses"`
	QuestionPath       []string         `json:"question_path"`
	Completed          bool             `json:"completed"`
	Paused             bool             `json:"paused"`
	RiskScores         *InterimRisk     `json:"risk_scores,omitempty"`
	EstimatedQuestions int              `json:"estimated_questions"`
}

// Answered returns the recorded answers keyed by question id.
func (s *Session) Answered() map[string]AnswerValue {
	m := make(map[string]AnswerValue, len(s.Responses))
	for _, r := range s.Responses {
		m[r.QuestionID] = r.Value
	}
	return m
}

// HasAnswered reports whether the question id is already on the question path.
func (s *Session) HasAnswered(questionID string) bool {
	for _, id := range s.QuestionPath {
		if id == questionID {
			return true
		}
	}
	return false
}

// ConfidenceInterval brackets a point estimate; Low <= estimate <= High, both
// in [0,1].
type ConfidenceInterval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// GeneticRiskResult is the posterior mutation risk for one susceptibility
// gene. Derived from responses on demand, never stored as mutable state.
type GeneticRiskResult struct {
	GeneSymbol           string             `json:"gene_symbol"`
	MutationProbability  float64            `json:"mutation_probability"`
	ConfidenceInterval   ConfidenceInterval `json:"confidence_interval"`
	EvidenceStrength     EvidenceStrength   `json:"evidence_strength"`
	ClinicalSignificance string             `json:"clinical_significance"`
	RecommendedTesting   []string           `json:"recommended_testing"`
}

// EpigeneticFactorResult is the weighted risk for one epigenetic factor.
type EpigeneticFactorResult struct {
	FactorName       string    `json:"factor_name"`
	RiskLevel        RiskLevel `json:"risk_level"`
	ProbabilityScore float64   `json:"probability_score"`
	Modifiable       bool      `json:"modifiable"`
	Recommendations  []string  `json:"recommendations"`
}

// InterimRisk is the mid-questionnaire snapshot recomputed after every
// recorded response. Only the single strongest signal per track is reported.
type InterimRisk struct {
	HighestGeneticRisk    float64 `json:"highest_genetic_risk,omitempty"`
	GeneticRiskGene       string  `json:"genetic_risk_gene,omitempty"`
	HighestEpigeneticRisk float64 `json:"highest_epigenetic_risk,omitempty"`
	EpigeneticRiskFactor  string  `json:"epigenetic_risk_factor,omitempty"`
	OverallRisk           float64 `json:"overall_risk"`
	Confidence            float64 `json:"confidence"`
}

// InterimRiskDetail wraps one interim score for the risks read endpoint.
type InterimRiskDetail struct {
	RiskScore    float64 `json:"risk_score"`
	Confidence   float64 `json:"confidence"`
	Contributing int     `json:"questions_contributing"`
	Reliability  string  `json:"reliability"`
}

// AssessmentResults is the final output of a completed session.
type AssessmentResults struct {
	SessionID          string                   `json:"session_id"`
	Variant            Variant                  `json:"questionnaire_type"`
	CompletionDate     time.Time                `json:"completion_date"`
	TotalAnswered      int                      `json:"total_questions_answered"`
	GeneticPredictions []GeneticRiskResult      `json:"genetic_predictions"`
	EpigeneticFactors  []EpigeneticFactorResult `json:"epigenetic_factors"`
	OverallRiskScore   float64                  `json:"overall_risk_score"`
	AggregateRiskScore float64                  `json:"aggregate_risk_score"`
	NextSteps          []string                 `json:"next_steps"`
	ClinicalUrgency    ClinicalUrgency          `json:"clinical_urgency"`
}

// Progress reports how far along a session is.
type Progress struct {
	SessionID          string  `json:"session_id"`
	QuestionsAnswered  int     `json:"questions_answered"`
	TotalEstimated     int     `json:"total_estimated"`
	ProgressPercentage float64 `json:"progress_percentage"`
	EstimatedRemaining int     `json:"estimated_remaining"`
	Completed          bool    `json:"is_complete"`
	Paused             bool    `json:"is_paused"`
}

// NextQuestion is the advance payload: either the next question with session
// context, or a completion marker.
type NextQuestion struct {
	Complete       bool                `json:"complete"`
	Question       *QuestionDefinition `json:"question,omitempty"`
	QuestionNumber int                 `json:"question_number,omitempty"`
	TotalEstimated int                 `json:"total_estimated,omitempty"`
	Progress       *Progress           `json:"progress,omitempty"`
}

// PauseReceipt is returned when a session is paused. The resume token is
// single-use and expires independently of the session.
type PauseReceipt struct {
	ResumeToken string    `json:"resume_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// BankValidationReport is the integrity report for the question bank.
type BankValidationReport struct {
	Valid            bool             `json:"valid"`
	Issues           []string         `json:"issues"`
	TotalQuestions   int              `json:"total_questions"`
	Categories       map[Category]int `json:"categories"`
	GeneLinked       int              `json:"genetic_associations"`
	EpigeneticLinked int              `json:"epigenetic_associations"`
	Recommendations  []string         `json:"recommendations"`
}

// VariantRecommendation suggests a questionnaire variant for an intake
// profile.
type VariantRecommendation struct {
	Variant           Variant `json:"questionnaire_type"`
	Priority          string  `json:"priority"`
	Reason            string  `json:"reason"`
	EstimatedDuration string  `json:"estimated_duration"`
}
