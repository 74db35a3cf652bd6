package risk

// Association tables for the risk engine. These are the declared clinical
// evidence weights the engine scores against; NewEngine copies them into the
// engine so scoring never reads package-level state.

// defaultGenePriors holds population prior probabilities for the susceptibility
// gene catalogue.
func defaultGenePriors() map[string]float64 {
	return map[string]float64{
		"BRCA1":  0.0024,   // ~1 in 400-500 general population
		"BRCA2":  0.0020,   // ~1 in 500-600 general population
		"TP53":   0.000020, // Li-Fraumeni syndrome
		"APC":    0.0001,   // Familial adenomatous polyposis
		"MLH1":   0.00035,  // Lynch syndrome
		"MSH2":   0.00035,  // Lynch syndrome
		"MSH6":   0.00020,  // Lynch syndrome
		"PMS2":   0.00015,  // Lynch syndrome
		"CHEK2":  0.01,     // Common moderate-risk gene
		"ATM":    0.0025,   // Ataxia telangiectasia
		"PALB2":  0.0024,   // BRCA2-associated
		"RAD51C": 0.0005,   // Ovarian cancer susceptibility
		"RAD51D": 0.0005,   // Ovarian cancer susceptibility
		"BRIP1":  0.0005,   // BRCA1-interacting protein
		"CDH1":   0.00002,  // Hereditary diffuse gastric cancer
		"PTEN":   0.00002,  // Cowden syndrome
		"STK11":  0.00002,  // Peutz-Jeghers syndrome
		"VHL":    0.00004,  // Von Hippel-Lindau syndrome
		"RET":    0.00002,  // Multiple endocrine neoplasia
		"NF1":    0.0003,   // Neurofibromatosis type 1
		"NF2":    0.00003,  // Neurofibromatosis type 2
		"TSC1":   0.00001,  // Tuberous sclerosis
		"TSC2":   0.00002,  // Tuberous sclerosis
	}
}

// Family history pattern identifiers extracted from responses.
const (
	patternBreastFamily      = "breast_cancer_family"
	patternOvarianFamily     = "ovarian_cancer_family"
	patternColorectalFamily  = "colorectal_cancer_family"
	patternPancreaticFamily  = "pancreatic_cancer_family"
	patternGastricFamily     = "gastric_cancer_family"
	patternEarlyOnset        = "early_onset_cancer"
	patternMultiplePrimaries = "multiple_primary_cancers"
	patternMaleBreast        = "male_breast_cancer"
)

// defaultPatternWeights maps family history patterns to per-gene evidence
// weights. The family likelihood ratio multiplies (1 + weight) for each
// matched pattern.
func defaultPatternWeights() map[string]map[string]float64 {
	return map[string]map[string]float64{
		patternBreastFamily: {
			"BRCA1": 0.8, "BRCA2": 0.7, "TP53": 0.4, "CHEK2": 0.3, "ATM": 0.25, "PALB2": 0.6,
		},
		patternOvarianFamily: {
			"BRCA1": 0.9, "BRCA2": 0.6, "RAD51C": 0.5, "RAD51D": 0.5, "BRIP1": 0.4,
		},
		patternColorectalFamily: {
			"APC": 0.7, "MLH1": 0.8, "MSH2": 0.8, "MSH6": 0.6, "PMS2": 0.5,
		},
		patternEarlyOnset: {
			"TP53": 0.6, "BRCA1": 0.5, "BRCA2": 0.4, "CHEK2": 0.3,
		},
		patternMultiplePrimaries: {
			"TP53": 0.8, "BRCA1": 0.4, "BRCA2": 0.4, "MLH1": 0.5, "MSH2": 0.5,
		},
		patternMaleBreast: {
			"BRCA2": 0.8, "BRCA1": 0.2, "CHEK2": 0.3, "PALB2": 0.4,
		},
		patternPancreaticFamily: {
			"BRCA2": 0.6, "ATM": 0.4, "PALB2": 0.5,
		},
		patternGastricFamily: {
			"CDH1": 0.8, "APC": 0.2, "MLH1": 0.3, "MSH2": 0.3,
		},
	}
}

// cancerWarningKeywords identify symptom answers that count toward the
// symptom likelihood ratio.
var cancerWarningKeywords = []string{
	"weight loss", "fatigue", "lump", "bleeding", "cough",
	"mole", "swallow", "bowel", "pain",
}

// Environmental exposure keywords and their modifier contributions.
var (
	highRiskExposureKeywords = []string{
		"asbestos", "radiation", "industrial chemicals", "pesticides", "heavy metals",
	}
	moderateRiskExposureKeywords = []string{
		"air pollution", "secondhand smoke", "occupational dust",
	}
)

const (
	highRiskExposureWeight     = 0.3
	moderateRiskExposureWeight = 0.15
	environmentalModifierCap   = 1.0
	environmentalImpactWeight  = 0.2
)

// factorProfile describes one epigenetic factor in the fixed catalogue.
type factorProfile struct {
	BaseRisk        float64
	Modifiable      bool
	LifestyleImpact float64
}

// defaultFactorProfiles holds the epigenetic factor catalogue.
func defaultFactorProfiles() map[string]factorProfile {
	return map[string]factorProfile{
		"dna_methylation_patterns":         {BaseRisk: 0.15, Modifiable: true, LifestyleImpact: 0.4},
		"histone_modification_patterns":    {BaseRisk: 0.12, Modifiable: true, LifestyleImpact: 0.3},
		"microrna_expression_patterns":     {BaseRisk: 0.18, Modifiable: true, LifestyleImpact: 0.35},
		"chromatin_accessibility_patterns": {BaseRisk: 0.08, Modifiable: false, LifestyleImpact: 0.1},
		"telomere_health_markers":          {BaseRisk: 0.25, Modifiable: true, LifestyleImpact: 0.6},
		"cellular_stress_indicators":       {BaseRisk: 0.45, Modifiable: true, LifestyleImpact: 0.8},
		"inflammation_response_markers":    {BaseRisk: 0.35, Modifiable: true, LifestyleImpact: 0.7},
		"metabolic_regulation_patterns":    {BaseRisk: 0.30, Modifiable: true, LifestyleImpact: 0.75},
	}
}
