package domain

import (
	"fmt"
	"math"
	"time"
)

// TimestampLayout is the wire format for result timestamps: ISO-8601 UTC with
// millisecond precision and a literal Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ValidateAnalysisResult checks an assembled result against the response
// schema and the pipeline invariants before it may be returned. A non-nil
// error here means a bug in the pipeline, not bad client input.
func ValidateAnalysisResult(r *AnalysisResult) error {
	if r == nil {
		return fmt.Errorf("result is nil")
	}
	if r.PatientID == "" {
		return fmt.Errorf("patient_id is empty")
	}
	if !AllowedDrugs[r.Drug] {
		return fmt.Errorf("drug %q is not in scope", r.Drug)
	}
	if _, err := time.Parse(TimestampLayout, r.Timestamp); err != nil {
		return fmt.Errorf("timestamp %q is not ISO-8601 UTC with millisecond precision: %w", r.Timestamp, err)
	}

	switch r.RiskAssessment.RiskLabel {
	case RiskSafe, RiskAdjustDosage, RiskIneffective, RiskToxic:
	default:
		return fmt.Errorf("risk_label %q is not a recognized label", r.RiskAssessment.RiskLabel)
	}
	switch r.RiskAssessment.Severity {
	case SeverityLow, SeverityModerate, SeverityHigh:
	default:
		return fmt.Errorf("severity %q is not a recognized severity", r.RiskAssessment.Severity)
	}
	if r.RiskAssessment.ConfidenceScore < 0 || r.RiskAssessment.ConfidenceScore > 1 {
		return fmt.Errorf("confidence_score %v outside [0,1]", r.RiskAssessment.ConfidenceScore)
	}

	if !AllowedGenes[r.PharmacogenomicProfile.Gene] {
		return fmt.Errorf("gene %q is not in scope", r.PharmacogenomicProfile.Gene)
	}
	if r.PharmacogenomicProfile.Diplotype == "" {
		return fmt.Errorf("diplotype is empty")
	}
	if r.PharmacogenomicProfile.Phenotype == "" {
		return fmt.Errorf("phenotype is empty")
	}
	if r.PharmacogenomicProfile.DetectedVariants == nil {
		return fmt.Errorf("detected_variants is nil")
	}
	for i, v := range r.PharmacogenomicProfile.DetectedVariants {
		if !AllowedGenes[v.Gene] {
			return fmt.Errorf("detected_variants[%d]: gene %q is not in scope", i, v.Gene)
		}
		if v.Genotype == "" {
			return fmt.Errorf("detected_variants[%d]: genotype is empty", i)
		}
	}

	if r.ClinicalRecommendation.DoseAdjustment == "" {
		return fmt.Errorf("dose_adjustment is empty")
	}
	if r.ClinicalRecommendation.GuidelineReference == "" {
		return fmt.Errorf("guideline_reference is empty")
	}

	if r.LLMExplanation.Summary == "" {
		return fmt.Errorf("explanation summary is empty")
	}
	if r.LLMExplanation.VariantReferences == nil {
		return fmt.Errorf("variant_references is nil")
	}

	// A success result may never report a degraded pipeline.
	if !r.QualityMetrics.VcfParsingSuccess {
		return fmt.Errorf("success result with vcf_parsing_success=false")
	}
	if r.QualityMetrics.RuleEngineStatus != RuleStatusSuccess {
		return fmt.Errorf("success result with rule_engine_status=%q", r.QualityMetrics.RuleEngineStatus)
	}
	if r.QualityMetrics.GeneCoverage == "" {
		return fmt.Errorf("gene_coverage is empty")
	}

	// Components and score are 2-decimal values; compare in cents so binary
	// float representation cannot mask a real mismatch.
	b := r.AuditTrail.ConfidenceBreakdown
	sum := b.EvidenceWeight + b.VariantCompleteness + b.ParsingIntegrity + b.DiplotypeClarity
	if math.Round(sum*100) != math.Round(r.RiskAssessment.ConfidenceScore*100) {
		return fmt.Errorf("confidence breakdown sums to %v, score is %v", sum, r.RiskAssessment.ConfidenceScore)
	}

	return nil
}
