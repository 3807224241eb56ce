package domain

// Core Enums and Types

// Gene represents one of the supported pharmacogenes
type Gene string

const (
	CYP2D6  Gene = "CYP2D6"
	CYP2C19 Gene = "CYP2C19"
	CYP2C9  Gene = "CYP2C9"
	SLCO1B1 Gene = "SLCO1B1"
	TPMT    Gene = "TPMT"
	DPYD    Gene = "DPYD"
)

// Drug represents one of the supported drugs
type Drug string

const (
	CODEINE      Drug = "CODEINE"
	WARFARIN     Drug = "WARFARIN"
	CLOPIDOGREL  Drug = "CLOPIDOGREL"
	SIMVASTATIN  Drug = "SIMVASTATIN"
	AZATHIOPRINE Drug = "AZATHIOPRINE"
	FLUOROURACIL Drug = "FLUOROURACIL"
)

// RiskLabel represents the CPIC-style risk classification
type RiskLabel string

const (
	RiskSafe         RiskLabel = "Safe"
	RiskAdjustDosage RiskLabel = "Adjust Dosage"
	RiskIneffective  RiskLabel = "Ineffective"
	RiskToxic        RiskLabel = "Toxic"
)

// Severity represents the clinical severity of a risk classification
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// RuleEngineStatus represents the outcome of the CPIC rule engine stage
type RuleEngineStatus string

const (
	RuleStatusSuccess RuleEngineStatus = "success"
	RuleStatusPartial RuleEngineStatus = "partial"
	RuleStatusError   RuleEngineStatus = "error"
)

// Core Data Models

// VariantRecord is a single variant call extracted from a genomic file.
// Produced only by the extractor; downstream stages treat it as read-only.
type VariantRecord struct {
	Gene     Gene   `json:"gene"`
	Star     string `json:"star"`
	RS       string `json:"rs"`
	Genotype string `json:"genotype"`
}

// PhenotypeProfile is the inferred metabolizer profile for one gene
type PhenotypeProfile struct {
	Gene          Gene    `json:"gene"`
	Diplotype     string  `json:"diplotype"`
	Phenotype     string  `json:"phenotype"`
	ActivityLevel float64 `json:"activity_level"`
}

// CpicRecommendation is the deterministic (drug, phenotype) lookup result
type CpicRecommendation struct {
	RiskLabel          RiskLabel `json:"risk_label"`
	Severity           Severity  `json:"severity"`
	ClinicalAction     string    `json:"clinical_action"`
	GuidelineReference string    `json:"guideline_reference"`
}

// ConfidenceBreakdown is the additive decomposition of the confidence score.
// The four components always sum exactly to the score after normalization.
type ConfidenceBreakdown struct {
	EvidenceWeight      float64 `json:"evidence_weight"`
	VariantCompleteness float64 `json:"variant_completeness"`
	ParsingIntegrity    float64 `json:"parsing_integrity"`
	DiplotypeClarity    float64 `json:"diplotype_clarity"`
}

// ConfidenceResult bundles the rounded score with its breakdown
type ConfidenceResult struct {
	Score     float64             `json:"score"`
	Breakdown ConfidenceBreakdown `json:"breakdown"`
}

// Response Models

// RiskAssessment is the risk section of a successful analysis response
type RiskAssessment struct {
	RiskLabel       RiskLabel `json:"risk_label"`
	Severity        Severity  `json:"severity"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// PharmacogenomicProfile is the genomic section of a successful analysis response
type PharmacogenomicProfile struct {
	Gene             Gene            `json:"gene"`
	Diplotype        string          `json:"diplotype"`
	Phenotype        string          `json:"phenotype"`
	DetectedVariants []VariantRecord `json:"detected_variants"`
}

// ClinicalRecommendation is the actionable guidance section
type ClinicalRecommendation struct {
	DoseAdjustment     string `json:"dose_adjustment"`
	AlternativeOptions string `json:"alternative_options"`
	GuidelineReference string `json:"guideline_reference"`
}

// Explanation is the generated narrative. It never alters risk fields.
type Explanation struct {
	Summary              string   `json:"summary"`
	MechanismExplanation string   `json:"mechanism_explanation"`
	VariantReferences    []string `json:"variant_references"`
	ClinicalRationale    string   `json:"clinical_rationale"`
}

// QualityMetrics reports pipeline-stage health alongside the result
type QualityMetrics struct {
	VcfParsingSuccess bool             `json:"vcf_parsing_success"`
	GeneCoverage      string           `json:"gene_coverage"`
	RuleEngineStatus  RuleEngineStatus `json:"rule_engine_status"`
}

// AuditTrail records which rule produced the classification
type AuditTrail struct {
	GeneDetected        Gene                `json:"gene_detected"`
	PhenotypeDetermined string              `json:"phenotype_determined"`
	RuleApplied         string              `json:"rule_applied"`
	CpicEvidenceLevel   string              `json:"cpic_evidence_level"`
	ConfidenceBreakdown ConfidenceBreakdown `json:"confidence_breakdown"`
}

// AnalysisResult is the full success payload. It is assembled once per
// request, schema-validated, and then immutable.
type AnalysisResult struct {
	PatientID              string                 `json:"patient_id"`
	Drug                   Drug                   `json:"drug"`
	Timestamp              string                 `json:"timestamp"`
	RiskAssessment         RiskAssessment         `json:"risk_assessment"`
	PharmacogenomicProfile PharmacogenomicProfile `json:"pharmacogenomic_profile"`
	ClinicalRecommendation ClinicalRecommendation `json:"clinical_recommendation"`
	LLMExplanation         Explanation            `json:"llm_generated_explanation"`
	QualityMetrics         QualityMetrics         `json:"quality_metrics"`
	AuditTrail             AuditTrail             `json:"audit_trail"`
}

// DrugDetection is the result of matching OCR-extracted label text against
// the supported drug list
type DrugDetection struct {
	DetectedDrug Drug    `json:"detected_drug"`
	Confidence   float64 `json:"confidence"`
	RawText      string  `json:"raw_text"`
}
