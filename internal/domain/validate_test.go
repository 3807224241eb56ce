package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult() *AnalysisResult {
	return &AnalysisResult{
		PatientID: "patient-1",
		Drug:      CODEINE,
		Timestamp: "2026-08-31T10:15:30.123Z",
		RiskAssessment: RiskAssessment{
			RiskLabel:       RiskAdjustDosage,
			Severity:        SeverityModerate,
			ConfidenceScore: 0.98,
		},
		PharmacogenomicProfile: PharmacogenomicProfile{
			Gene:      CYP2D6,
			Diplotype: "*1/*4",
			Phenotype: "IM",
			DetectedVariants: []VariantRecord{
				{Gene: CYP2D6, RS: "rs3892097", Genotype: "0/1"},
			},
		},
		ClinicalRecommendation: ClinicalRecommendation{
			DoseAdjustment:     "Consider reduced dose or alternative.",
			AlternativeOptions: "See CPIC guideline for alternatives if dose adjustment not suitable.",
			GuidelineReference: "CPIC",
		},
		LLMExplanation: Explanation{
			Summary:              "Reduced CYP2D6 activity.",
			MechanismExplanation: "m",
			VariantReferences:    []string{"rs3892097"},
			ClinicalRationale:    "r",
		},
		QualityMetrics: QualityMetrics{
			VcfParsingSuccess: true,
			GeneCoverage:      "CYP2D6",
			RuleEngineStatus:  RuleStatusSuccess,
		},
		AuditTrail: AuditTrail{
			GeneDetected:        CYP2D6,
			PhenotypeDetermined: "IM",
			RuleApplied:         "CODEINE:IM->Adjust Dosage",
			CpicEvidenceLevel:   "1A",
			ConfidenceBreakdown: ConfidenceBreakdown{
				EvidenceWeight:      0.30,
				VariantCompleteness: 0.23,
				ParsingIntegrity:    0.35,
				DiplotypeClarity:    0.10,
			},
		},
	}
}

func TestValidateAnalysisResult_Valid(t *testing.T) {
	require.NoError(t, ValidateAnalysisResult(validResult()))
}

func TestValidateAnalysisResult_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *AnalysisResult)
		wantErr string
	}{
		{"nil handled by caller", nil, "result is nil"},
		{
			"empty patient id",
			func(r *AnalysisResult) { r.PatientID = "" },
			"patient_id",
		},
		{
			"out of scope drug",
			func(r *AnalysisResult) { r.Drug = "ASPIRIN" },
			"not in scope",
		},
		{
			"second-precision timestamp",
			func(r *AnalysisResult) { r.Timestamp = "2026-08-31T10:15:30Z" },
			"millisecond",
		},
		{
			"non-UTC timestamp",
			func(r *AnalysisResult) { r.Timestamp = "2026-08-31T10:15:30.123+02:00" },
			"millisecond",
		},
		{
			"unknown risk label",
			func(r *AnalysisResult) { r.RiskAssessment.RiskLabel = "Risky" },
			"risk_label",
		},
		{
			"unknown severity",
			func(r *AnalysisResult) { r.RiskAssessment.Severity = "catastrophic" },
			"severity",
		},
		{
			"score above one",
			func(r *AnalysisResult) { r.RiskAssessment.ConfidenceScore = 1.2 },
			"outside [0,1]",
		},
		{
			"out of scope variant gene",
			func(r *AnalysisResult) { r.PharmacogenomicProfile.DetectedVariants[0].Gene = "BRCA1" },
			"detected_variants[0]",
		},
		{
			"nil variant list",
			func(r *AnalysisResult) { r.PharmacogenomicProfile.DetectedVariants = nil },
			"detected_variants is nil",
		},
		{
			"empty explanation summary",
			func(r *AnalysisResult) { r.LLMExplanation.Summary = "" },
			"summary",
		},
		{
			"degraded parsing flag",
			func(r *AnalysisResult) { r.QualityMetrics.VcfParsingSuccess = false },
			"vcf_parsing_success",
		},
		{
			"degraded rule status",
			func(r *AnalysisResult) { r.QualityMetrics.RuleEngineStatus = RuleStatusPartial },
			"rule_engine_status",
		},
		{
			"breakdown does not sum to score",
			func(r *AnalysisResult) { r.AuditTrail.ConfidenceBreakdown.DiplotypeClarity = 0.05 },
			"breakdown sums to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			if tt.mutate == nil {
				r = nil
			} else {
				tt.mutate(r)
			}
			err := ValidateAnalysisResult(r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAnalysisResult_BreakdownToleratesFloatNoise(t *testing.T) {
	// 0.30+0.23+0.35+0.10 does not hit 0.98 exactly in binary; the cent
	// comparison must still accept it.
	r := validResult()
	require.NoError(t, ValidateAnalysisResult(r))
}

func TestPipelineAbort(t *testing.T) {
	tests := []struct {
		class      AbortClass
		wantStatus int
		wantTitle  string
	}{
		{AbortClientData, 400, "VCF parsing failed"},
		{AbortRuleEngine, 422, "Rule engine failed"},
		{AbortInternal, 500, "Internal inconsistency"},
	}
	for _, tt := range tests {
		a := NewAbort(StageParseVcf, tt.class, "details")
		assert.Equal(t, tt.wantStatus, a.HTTPStatus())
		assert.Equal(t, tt.wantTitle, a.ErrorTitle())
		assert.Contains(t, a.Error(), "details")
	}
}
