// Package domain contains the core business entities for adaptive hereditary
// cancer risk assessment: questionnaire variants, question definitions,
// response records, sessions, and the derived genetic/epigenetic risk results.
//
// The engine is decision support over declared evidence weights. It does not
// diagnose disease and does not replace genetic counseling.
package domain

import "errors"

// Variant is the questionnaire mode. It controls which questions are relevant,
// which entry set a session starts with, and how genetic and epigenetic scores
// are blended into an overall risk.
type Variant string

const (
	GENETIC_SCREENING        Variant = "genetic_screening"
	EPIGENETIC_ASSESSMENT    Variant = "epigenetic_assessment"
	COMPREHENSIVE_ASSESSMENT Variant = "comprehensive_assessment"
)

// QuestionType represents the answer shape a question accepts.
type QuestionType string

const (
	BOOLEAN         QuestionType = "boolean"
	NUMERIC         QuestionType = "numeric"
	MULTIPLE_CHOICE QuestionType = "multiple_choice"
	MULTI_SELECT    QuestionType = "multi_select"
	TEXT            QuestionType = "text"
)

// RiskLevel bands an epigenetic factor score.
type RiskLevel string

const (
	RISK_LOW      RiskLevel = "low"
	RISK_MODERATE RiskLevel = "moderate"
	RISK_HIGH     RiskLevel = "high"
)

// EvidenceStrength categorizes the strongest likelihood ratio behind a gene
// risk estimate.
type EvidenceStrength string

const (
	EVIDENCE_LOW       EvidenceStrength = "low"
	EVIDENCE_MODERATE  EvidenceStrength = "moderate"
	EVIDENCE_HIGH      EvidenceStrength = "high"
	EVIDENCE_VERY_HIGH EvidenceStrength = "very_high"
)

// ClinicalUrgency is the triage level attached to a completed assessment.
type ClinicalUrgency string

const (
	URGENCY_ROUTINE  ClinicalUrgency = "routine"
	URGENCY_ELEVATED ClinicalUrgency = "elevated"
	URGENCY_URGENT   ClinicalUrgency = "urgent"
	URGENCY_CRITICAL ClinicalUrgency = "critical"
)

// Category tags a question for relevance filtering and evidence extraction.
// Evidence extractors dispatch on this tag, never on question id substrings.
type Category string

const (
	CATEGORY_DEMOGRAPHICS    Category = "demographics"
	CATEGORY_FAMILY_HISTORY  Category = "family_history"
	CATEGORY_MEDICAL_HISTORY Category = "medical_history"
	CATEGORY_LIFESTYLE       Category = "lifestyle"
	CATEGORY_ENVIRONMENTAL   Category = "environmental"
	CATEGORY_SYMPTOMS        Category = "symptoms"
	CATEGORY_DIET            Category = "diet"
	CATEGORY_REPRODUCTIVE    Category = "reproductive"
)

var (
	ErrInvalidVariant      = errors.New("invalid questionnaire variant")
	ErrInvalidQuestionType = errors.New("invalid question type")
)

// IsValid reports whether the variant is one of the supported questionnaire
// modes. Unsupported variants must be rejected before a session is created.
func (v Variant) IsValid() bool {
	switch v {
	case GENETIC_SCREENING, EPIGENETIC_ASSESSMENT, COMPREHENSIVE_ASSESSMENT:
		return true
	default:
		return false
	}
}

// String returns the string representation of the variant.
func (v Variant) String() string {
	return string(v)
}

// IncludesGenetic reports whether sessions of this variant produce gene
// mutation probabilities.
func (v Variant) IncludesGenetic() bool {
	return v == GENETIC_SCREENING || v == COMPREHENSIVE_ASSESSMENT
}

// IncludesEpigenetic reports whether sessions of this variant produce
// epigenetic factor scores.
func (v Variant) IncludesEpigenetic() bool {
	return v == EPIGENETIC_ASSESSMENT || v == COMPREHENSIVE_ASSESSMENT
}

// IsValid reports whether the urgency is one of the triage levels.
func (u ClinicalUrgency) IsValid() bool {
	switch u {
	case URGENCY_ROUTINE, URGENCY_ELEVATED, URGENCY_URGENT, URGENCY_CRITICAL:
		return true
	default:
		return false
	}
}

// IsValid reports whether the question type is supported.
func (t QuestionType) IsValid() bool {
	switch t {
	case BOOLEAN, NUMERIC, MULTIPLE_CHOICE, MULTI_SELECT, TEXT:
		return true
	default:
		return false
	}
}

// String returns the string representation of the question type.
func (t QuestionType) String() string {
	return string(t)
}

// RiskLevelFor bands a final epigenetic factor score.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 0.3:
		return RISK_LOW
	case score < 0.6:
		return RISK_MODERATE
	default:
		return RISK_HIGH
	}
}

// EvidenceStrengthFor bands the maximum likelihood ratio observed across
// evidence categories.
func EvidenceStrengthFor(maxRatio float64) EvidenceStrength {
	switch {
	case maxRatio > 3.0:
		return EVIDENCE_VERY_HIGH
	case maxRatio > 2.0:
		return EVIDENCE_HIGH
	case maxRatio > 1.5:
		return EVIDENCE_MODERATE
	default:
		return EVIDENCE_LOW
	}
}

// AtLeast reports whether the strength meets the given threshold.
func (s EvidenceStrength) AtLeast(min EvidenceStrength) bool {
	return s.rank() >= min.rank()
}

func (s EvidenceStrength) rank() int {
	switch s {
	case EVIDENCE_VERY_HIGH:
		return 3
	case EVIDENCE_HIGH:
		return 2
	case EVIDENCE_MODERATE:
		return 1
	default:
		return 0
	}
}
