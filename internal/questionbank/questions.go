package questionbank

import "github.com/genetic-risk-server/internal/domain"

// defaultCatalogue builds the evidence-based question catalogue. Association
// weights are declared clinical evidence strengths, not measured values: gene
// weights live in [0,1], epigenetic weights in [-1,1] with negative meaning
// protective.
func defaultCatalogue() []*domain.QuestionDefinition {
	var qs []*domain.QuestionDefinition
	qs = append(qs, demographicQuestions()...)
	qs = append(qs, familyHistoryQuestions()...)
	qs = append(qs, medicalHistoryQuestions()...)
	qs = append(qs, lifestyleQuestions()...)
	qs = append(qs, dietQuestions()...)
	qs = append(qs, environmentalQuestions()...)
	qs = append(qs, symptomQuestions()...)
	qs = append(qs, reproductiveQuestions()...)
	return qs
}

func demographicQuestions() []*domain.QuestionDefinition {
	return []*domain.QuestionDefinition{
		{
			ID:             "demo_age",
			Text:           "What is your current age?",
			Type:           domain.NUMERIC,
			Validation:     &domain.NumericRule{Min: 0, Max: 120},
			Category:       domain.CATEGORY_DEMOGRAPHICS,
			PriorityWeight: 10.0,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.2, "BRCA2": 0.2, "TP53": 0.3,
			},
			EpigeneticAssociations: map[string]float64{
				"telomere_health_markers": 0.4, "cellular_stress_indicators": 0.3,
			},
		},
		{
			ID:             "demo_gender",
			Text:           "What is your biological sex assigned at birth?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Male", "Female", "Intersex", "Prefer not to answer"},
			Category:       domain.CATEGORY_DEMOGRAPHICS,
			PriorityWeight: 8.0,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.4, "BRCA2": 0.4, "CDH1": 0.2,
			},
		},
		{
			ID:   "demo_ethnicity",
			Text: "What is your ethnic background? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Ashkenazi Jewish", "Caucasian/White", "African American/Black",
				"Hispanic/Latino", "Asian", "Native American", "Pacific Islander",
				"Middle Eastern", "Other", "Prefer not to answer",
			},
			Category:       domain.CATEGORY_DEMOGRAPHICS,
			PriorityWeight: 7.0,
			// Founder mutations drive the elevated weights here.
			GeneAssociations: map[string]float64{
				"BRCA1": 0.6, "BRCA2": 0.6,
			},
		},
	}
}

func familyHistoryQuestions() []*domain.QuestionDefinition {
	skipNoFamilyHistory := []domain.SkipCondition{
		{QuestionID: "family_cancer_history", Value: domain.BoolAnswer(false)},
	}
	return []*domain.QuestionDefinition{
		{
			ID:             "family_cancer_history",
			Text:           "Has anyone in your family been diagnosed with cancer?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_FAMILY_HISTORY,
			PriorityWeight: 9.5,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.8, "BRCA2": 0.8, "TP53": 0.7, "MLH1": 0.6, "MSH2": 0.6,
			},
			FollowUps: []string{"family_cancer_types", "family_cancer_relatives"},
		},
		{
			ID:   "family_cancer_types",
			Text: "What types of cancer have been diagnosed in your family? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Breast cancer", "Ovarian cancer", "Prostate cancer", "Colorectal cancer",
				"Pancreatic cancer", "Lung cancer", "Melanoma", "Gastric cancer",
				"Endometrial cancer", "Brain cancer", "Leukemia/Lymphoma", "Other",
			},
			Category:       domain.CATEGORY_FAMILY_HISTORY,
			PriorityWeight: 9.0,
			Dependencies:   []string{"family_cancer_history"},
			SkipConditions: skipNoFamilyHistory,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.9, "BRCA2": 0.8, "MLH1": 0.7, "MSH2": 0.7, "APC": 0.6,
			},
		},
		{
			ID:   "family_cancer_relatives",
			Text: "Which family members have been diagnosed with cancer? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Mother", "Father", "Sister", "Brother", "Maternal grandmother",
				"Maternal grandfather", "Paternal grandmother", "Paternal grandfather",
				"Aunt (mother's side)", "Aunt (father's side)", "Uncle (mother's side)",
				"Uncle (father's side)", "Cousin", "Other relative",
			},
			Category:       domain.CATEGORY_FAMILY_HISTORY,
			PriorityWeight: 8.5,
			Dependencies:   []string{"family_cancer_history"},
			SkipConditions: skipNoFamilyHistory,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.7, "BRCA2": 0.7, "TP53": 0.6,
			},
		},
		{
			ID:             "family_early_onset",
			Text:           "Were any family members diagnosed with cancer before age 50?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_FAMILY_HISTORY,
			PriorityWeight: 8.0,
			Dependencies:   []string{"family_cancer_history"},
			SkipConditions: skipNoFamilyHistory,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.8, "BRCA2": 0.7, "TP53": 0.9, "MLH1": 0.6,
			},
		},
		{
			ID:             "family_multiple_cancers",
			Text:           "Has any family member been diagnosed with more than one primary cancer?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_FAMILY_HISTORY,
			PriorityWeight: 7.5,
			SkipConditions: skipNoFamilyHistory,
			GeneAssociations: map[string]float64{
				"TP53": 0.9, "BRCA1": 0.6, "BRCA2": 0.6, "MLH1": 0.7,
			},
		},
		{
			ID:             "family_bilateral_cancer",
			Text:           "Has any family member been diagnosed with cancer in both paired organs (for example both breasts)?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_FAMILY_HISTORY,
			PriorityWeight: 7.0,
			SkipConditions: skipNoFamilyHistory,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.7, "BRCA2": 0.6, "TP53": 0.5,
			},
		},
	}
}

func medicalHistoryQuestions() []*domain.QuestionDefinition {
	skipNoPersonalHistory := []domain.SkipCondition{
		{QuestionID: "personal_cancer_history", Value: domain.BoolAnswer(false)},
	}
	return []*domain.QuestionDefinition{
		{
			ID:             "personal_cancer_history",
			Text:           "Have you ever been diagnosed with cancer?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 9.0,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.6, "BRCA2": 0.6, "TP53": 0.8, "MLH1": 0.5,
			},
			FollowUps: []string{"personal_cancer_type", "personal_cancer_age"},
		},
		{
			ID:   "personal_cancer_type",
			Text: "What type(s) of cancer have you been diagnosed with? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Breast cancer", "Ovarian cancer", "Prostate cancer", "Colorectal cancer",
				"Pancreatic cancer", "Lung cancer", "Melanoma", "Gastric cancer",
				"Endometrial cancer", "Brain cancer", "Leukemia/Lymphoma", "Other",
			},
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 8.5,
			Dependencies:   []string{"personal_cancer_history"},
			SkipConditions: skipNoPersonalHistory,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.8, "BRCA2": 0.7, "TP53": 0.9,
			},
		},
		{
			ID:             "personal_cancer_age",
			Text:           "At what age were you first diagnosed with cancer?",
			Type:           domain.NUMERIC,
			Validation:     &domain.NumericRule{Min: 0, Max: 100},
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 8.0,
			Dependencies:   []string{"personal_cancer_history"},
			SkipConditions: skipNoPersonalHistory,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.7, "BRCA2": 0.6, "TP53": 0.8,
			},
		},
		{
			ID:             "personal_multiple_primaries",
			Text:           "Have you been diagnosed with more than one primary cancer?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 7.5,
			Dependencies:   []string{"personal_cancer_history"},
			SkipConditions: skipNoPersonalHistory,
			GeneAssociations: map[string]float64{
				"TP53": 0.9, "MLH1": 0.5, "MSH2": 0.5,
			},
		},
		{
			ID:             "previous_genetic_testing",
			Text:           "Have you ever had genetic testing for cancer susceptibility?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 6.0,
			FollowUps:      []string{"genetic_testing_results"},
		},
		{
			ID:             "genetic_testing_results",
			Text:           "What was the result of your genetic testing?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Pathogenic variant found", "Variant of uncertain significance", "Negative", "Do not know"},
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 5.5,
			Dependencies:   []string{"previous_genetic_testing"},
			SkipConditions: []domain.SkipCondition{
				{QuestionID: "previous_genetic_testing", Value: domain.BoolAnswer(false)},
			},
		},
		{
			ID:   "chronic_conditions",
			Text: "Do you have any of the following chronic conditions? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Diabetes", "Heart disease", "High blood pressure", "Autoimmune disease",
				"Inflammatory bowel disease", "Thyroid disorders", "None of the above",
			},
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 5.0,
			EpigeneticAssociations: map[string]float64{
				"inflammation_response_markers": 0.6, "metabolic_regulation_patterns": 0.7,
				"cellular_stress_indicators": 0.5,
			},
		},
		{
			ID:             "radiation_treatment_history",
			Text:           "Have you ever received therapeutic radiation treatment?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_MEDICAL_HISTORY,
			PriorityWeight: 5.0,
			GeneAssociations: map[string]float64{
				"TP53": 0.3,
			},
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.4, "cellular_stress_indicators": 0.3,
			},
		},
	}
}

func lifestyleQuestions() []*domain.QuestionDefinition {
	return []*domain.QuestionDefinition{
		{
			ID:             "lifestyle_smoking",
			Text:           "Do you currently smoke or have you ever smoked tobacco products?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Never smoked", "Former smoker", "Current smoker"},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 8.0,
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.8, "cellular_stress_indicators": 0.9,
				"inflammation_response_markers": 0.7, "telomere_health_markers": 0.6,
			},
			FollowUps: []string{"smoking_duration", "smoking_amount"},
		},
		{
			ID:             "smoking_duration",
			Text:           "For how many years have you smoked (or did you smoke)?",
			Type:           domain.NUMERIC,
			Validation:     &domain.NumericRule{Min: 0, Max: 100},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 6.5,
			Dependencies:   []string{"lifestyle_smoking"},
			SkipConditions: []domain.SkipCondition{
				{QuestionID: "lifestyle_smoking", Value: domain.ChoiceAnswer("Never smoked")},
			},
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.6, "telomere_health_markers": 0.5,
			},
		},
		{
			ID:             "smoking_amount",
			Text:           "On average, how many cigarettes do you smoke per day?",
			Type:           domain.NUMERIC,
			Validation:     &domain.NumericRule{Min: 0, Max: 100},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 6.0,
			Dependencies:   []string{"lifestyle_smoking"},
			SkipConditions: []domain.SkipCondition{
				{QuestionID: "lifestyle_smoking", Value: domain.ChoiceAnswer("Never smoked")},
				{QuestionID: "lifestyle_smoking", Value: domain.ChoiceAnswer("Former smoker")},
			},
			EpigeneticAssociations: map[string]float64{
				"cellular_stress_indicators": 0.5, "inflammation_response_markers": 0.4,
			},
		},
		{
			ID:   "lifestyle_alcohol",
			Text: "How often do you consume alcoholic beverages?",
			Type: domain.MULTIPLE_CHOICE,
			Options: []string{
				"Never", "Rarely (few times per year)", "Occasionally (1-2 times per month)",
				"Regularly (1-2 times per week)", "Frequently (3-4 times per week)",
				"Daily or almost daily",
			},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 7.0,
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.6, "cellular_stress_indicators": 0.7,
				"inflammation_response_markers": 0.5,
			},
			GeneAssociations: map[string]float64{
				"BRCA1": 0.3, "BRCA2": 0.3,
			},
		},
		{
			ID:   "lifestyle_exercise",
			Text: "How often do you engage in moderate to vigorous physical exercise?",
			Type: domain.MULTIPLE_CHOICE,
			Options: []string{
				"Never", "Rarely (less than once per week)", "1-2 times per week",
				"3-4 times per week", "5+ times per week", "Daily",
			},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 6.5,
			EpigeneticAssociations: map[string]float64{
				"telomere_health_markers":       -0.4,
				"inflammation_response_markers": -0.3,
				"cellular_stress_indicators":    -0.2,
			},
		},
		{
			ID:             "lifestyle_sleep",
			Text:           "How would you rate your sleep quality over the past month?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Very poor", "Poor", "Fair", "Good", "Excellent"},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 5.5,
			EpigeneticAssociations: map[string]float64{
				"telomere_health_markers": 0.4, "cellular_stress_indicators": 0.3,
				"inflammation_response_markers": 0.3,
			},
		},
		{
			ID:             "stress_level",
			Text:           "How would you rate your overall stress level in the past 6 months?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Very low", "Low", "Moderate", "High", "Very high"},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 6.0,
			EpigeneticAssociations: map[string]float64{
				"telomere_health_markers": 0.5, "inflammation_response_markers": 0.6,
				"cellular_stress_indicators": 0.4,
			},
		},
		{
			ID:             "chronic_stress",
			Text:           "Do you consider yourself to be under chronic, ongoing stress?",
			Type:           domain.BOOLEAN,
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 5.5,
			EpigeneticAssociations: map[string]float64{
				"inflammation_response_markers": 0.5, "cellular_stress_indicators": 0.6,
				"histone_modification_patterns": 0.3,
			},
		},
		{
			ID:   "major_life_events",
			Text: "Have you experienced any of the following in the past two years? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Loss of a close family member", "Divorce or separation", "Job loss",
				"Serious illness or injury", "Relocation", "None of the above",
			},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 4.5,
			EpigeneticAssociations: map[string]float64{
				"cellular_stress_indicators": 0.4, "histone_modification_patterns": 0.2,
			},
		},
		{
			ID:             "mental_health_history",
			Text:           "Have you been treated for anxiety or depression?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Never", "In the past", "Currently"},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 4.0,
			EpigeneticAssociations: map[string]float64{
				"histone_modification_patterns": 0.3, "inflammation_response_markers": 0.2,
			},
		},
		{
			ID:             "social_support",
			Text:           "How would you rate the support you receive from family and friends?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Poor", "Adequate", "Strong"},
			Category:       domain.CATEGORY_LIFESTYLE,
			PriorityWeight: 3.5,
			EpigeneticAssociations: map[string]float64{
				"cellular_stress_indicators": -0.2, "inflammation_response_markers": -0.1,
			},
		},
	}
}

func dietQuestions() []*domain.QuestionDefinition {
	return []*domain.QuestionDefinition{
		{
			ID:   "diet_quality",
			Text: "How would you describe your typical diet?",
			Type: domain.MULTIPLE_CHOICE,
			Options: []string{
				"Mostly processed/fast foods", "Some processed foods with home cooking",
				"Balanced diet with occasional processed foods", "Mostly whole foods",
				"Strict healthy diet (Mediterranean, plant-based, etc.)",
			},
			Category:       domain.CATEGORY_DIET,
			PriorityWeight: 6.5,
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.5, "inflammation_response_markers": 0.6,
				"cellular_stress_indicators": 0.4, "metabolic_regulation_patterns": 0.7,
			},
		},
		{
			ID:             "processed_food_frequency",
			Text:           "How often do you eat processed or packaged foods?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Rarely", "Weekly", "Several times per week", "Daily"},
			Category:       domain.CATEGORY_DIET,
			PriorityWeight: 5.5,
			EpigeneticAssociations: map[string]float64{
				"metabolic_regulation_patterns": 0.5, "inflammation_response_markers": 0.4,
			},
		},
		{
			ID:             "vegetable_intake",
			Text:           "How many servings of vegetables do you typically eat per day?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"None", "1-2 servings", "3-4 servings", "5 or more servings"},
			Category:       domain.CATEGORY_DIET,
			PriorityWeight: 5.0,
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": -0.3, "inflammation_response_markers": -0.2,
			},
		},
		{
			ID:             "fruit_intake",
			Text:           "How many servings of fruit do you typically eat per day?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"None", "1-2 servings", "3-4 servings", "5 or more servings"},
			Category:       domain.CATEGORY_DIET,
			PriorityWeight: 4.5,
			EpigeneticAssociations: map[string]float64{
				"cellular_stress_indicators": -0.2, "dna_methylation_patterns": -0.2,
			},
		},
		{
			ID:             "whole_grain_consumption",
			Text:           "How often do you eat whole grains?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Rarely", "Weekly", "Several times per week", "Daily"},
			Category:       domain.CATEGORY_DIET,
			PriorityWeight: 4.0,
			EpigeneticAssociations: map[string]float64{
				"metabolic_regulation_patterns": -0.3,
			},
		},
		{
			ID:             "red_meat_consumption",
			Text:           "How often do you eat red or processed meat?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Rarely", "Weekly", "Several times per week", "Daily"},
			Category:       domain.CATEGORY_DIET,
			PriorityWeight: 4.5,
			EpigeneticAssociations: map[string]float64{
				"inflammation_response_markers": 0.3, "metabolic_regulation_patterns": 0.3,
			},
			GeneAssociations: map[string]float64{
				"APC": 0.2, "MLH1": 0.2,
			},
		},
	}
}

func environmentalQuestions() []*domain.QuestionDefinition {
	return []*domain.QuestionDefinition{
		{
			ID:   "environmental_exposures",
			Text: "Have you been exposed to any of the following environmental factors? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Asbestos", "Radiation (medical or occupational)", "Industrial chemicals",
				"Pesticides", "Heavy metals", "Air pollution", "Secondhand smoke",
				"Occupational dust", "None of the above",
			},
			Category:       domain.CATEGORY_ENVIRONMENTAL,
			PriorityWeight: 6.5,
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.6, "cellular_stress_indicators": 0.8,
				"inflammation_response_markers": 0.5,
			},
			GeneAssociations: map[string]float64{
				"TP53": 0.4, "BRCA1": 0.2, "BRCA2": 0.2,
			},
		},
		{
			ID:   "occupational_history",
			Text: "Have you worked in any of the following industries? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Chemical manufacturing", "Mining", "Construction", "Agriculture",
				"Healthcare", "Nuclear industry", "Textile industry", "None of the above",
			},
			Category:       domain.CATEGORY_ENVIRONMENTAL,
			PriorityWeight: 5.0,
			EpigeneticAssociations: map[string]float64{
				"cellular_stress_indicators": 0.4, "inflammation_response_markers": 0.3,
			},
		},
		{
			ID:             "sun_exposure",
			Text:           "How much unprotected sun exposure do you typically get?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Minimal", "Moderate", "High (outdoor work or frequent tanning)"},
			Category:       domain.CATEGORY_ENVIRONMENTAL,
			PriorityWeight: 4.5,
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.3, "cellular_stress_indicators": 0.3,
			},
		},
		{
			ID:             "residential_air_quality",
			Text:           "How would you rate the air quality where you live?",
			Type:           domain.MULTIPLE_CHOICE,
			Options:        []string{"Good", "Moderate", "Poor (heavy traffic or industrial area)"},
			Category:       domain.CATEGORY_ENVIRONMENTAL,
			PriorityWeight: 4.0,
			EpigeneticAssociations: map[string]float64{
				"inflammation_response_markers": 0.3, "cellular_stress_indicators": 0.2,
			},
		},
	}
}

func symptomQuestions() []*domain.QuestionDefinition {
	return []*domain.QuestionDefinition{
		{
			ID:   "current_symptoms",
			Text: "Are you currently experiencing any of the following symptoms? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Unexplained weight loss", "Persistent fatigue", "Unusual lumps or bumps",
				"Changes in bowel habits", "Unusual bleeding", "Persistent cough",
				"Changes in moles or skin", "Difficulty swallowing", "None of the above",
			},
			Category:       domain.CATEGORY_SYMPTOMS,
			PriorityWeight: 7.5,
			GeneAssociations: map[string]float64{
				"TP53": 0.4, "BRCA1": 0.3, "BRCA2": 0.3, "MLH1": 0.3, "APC": 0.3,
			},
		},
		{
			ID:             "symptom_duration",
			Text:           "For how many weeks have these symptoms persisted?",
			Type:           domain.NUMERIC,
			Validation:     &domain.NumericRule{Min: 0, Max: 520},
			Category:       domain.CATEGORY_SYMPTOMS,
			PriorityWeight: 6.0,
			Dependencies:   []string{"current_symptoms"},
			SkipConditions: []domain.SkipCondition{
				{QuestionID: "current_symptoms", Value: domain.MultiAnswer("None of the above")},
			},
			GeneAssociations: map[string]float64{
				"TP53": 0.2,
			},
		},
	}
}

func reproductiveQuestions() []*domain.QuestionDefinition {
	return []*domain.QuestionDefinition{
		{
			ID:   "reproductive_history",
			Text: "What is your reproductive history? (Select all that apply)",
			Type: domain.MULTI_SELECT,
			Options: []string{
				"Never pregnant", "1-2 pregnancies", "3+ pregnancies",
				"First pregnancy after age 30", "Early menarche (before age 12)",
				"Late menopause (after age 55)", "Use of hormone replacement therapy",
				"Use of oral contraceptives", "Not applicable",
			},
			Category:       domain.CATEGORY_REPRODUCTIVE,
			PriorityWeight: 6.0,
			GeneAssociations: map[string]float64{
				"BRCA1": 0.4, "BRCA2": 0.4,
			},
			EpigeneticAssociations: map[string]float64{
				"dna_methylation_patterns": 0.3,
			},
		},
		{
			ID:             "hormone_therapy_duration",
			Text:           "If you have used hormone replacement therapy, for how many years?",
			Type:           domain.NUMERIC,
			Validation:     &domain.NumericRule{Min: 0, Max: 60},
			Category:       domain.CATEGORY_REPRODUCTIVE,
			PriorityWeight: 4.5,
			Dependencies:   []string{"reproductive_history"},
			GeneAssociations: map[string]float64{
				"BRCA1": 0.2, "BRCA2": 0.2,
			},
		},
	}
}
