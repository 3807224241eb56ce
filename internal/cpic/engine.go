// Package cpic is the deterministic drug/phenotype-to-risk lookup. Fixed
// tables only; every input yields a defined recommendation.
package cpic

import (
	"strings"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Engine resolves (drug, gene, phenotype) to a CpicRecommendation
type Engine struct{}

// NewEngine creates a CPIC rule engine
func NewEngine() *Engine {
	return &Engine{}
}

type riskEntry struct {
	label    domain.RiskLabel
	severity domain.Severity
}

// phenotypeKeys fixes the lookup order of the loose matcher's final scan
var phenotypeKeys = []string{
	"PM", "IM", "NM", "UM",
	"Low function", "DPD deficient", "Low activity",
	"Intermediate", "DPD intermediate",
	"Normal", "DPD normal",
}

// phenotypeToRisk maps canonical phenotype keys to risk label and severity
var phenotypeToRisk = map[string]riskEntry{
	"PM":               {domain.RiskIneffective, domain.SeverityModerate},
	"IM":               {domain.RiskAdjustDosage, domain.SeverityModerate},
	"NM":               {domain.RiskSafe, domain.SeverityLow},
	"UM":               {domain.RiskToxic, domain.SeverityHigh},
	"Low function":     {domain.RiskToxic, domain.SeverityHigh},
	"DPD deficient":    {domain.RiskToxic, domain.SeverityHigh},
	"Low activity":     {domain.RiskToxic, domain.SeverityHigh},
	"Intermediate":     {domain.RiskAdjustDosage, domain.SeverityModerate},
	"DPD intermediate": {domain.RiskAdjustDosage, domain.SeverityModerate},
	"Normal":           {domain.RiskSafe, domain.SeverityLow},
	"DPD normal":       {domain.RiskSafe, domain.SeverityLow},
}

// clinicalActions maps (drug, phenotype key) to the guideline action text
var clinicalActions = map[domain.Drug]map[string]string{
	domain.CODEINE: {
		"PM": "Avoid codeine; use alternative analgesic.",
		"IM": "Consider reduced dose or alternative.",
		"NM": "Standard dose.",
		"UM": "Avoid codeine; risk of toxicity.",
	},
	domain.WARFARIN: {
		"PM": "Use low dose; consider alternative.",
		"IM": "Consider dose reduction.",
		"NM": "Standard dose.",
	},
	domain.CLOPIDOGREL: {
		"PM": "Consider alternative antiplatelet (e.g. prasugrel/ticagrelor).",
		"IM": "Consider alternative or monitor.",
		"NM": "Standard dose.",
		"UM": "Standard dose; monitor.",
	},
	domain.SIMVASTATIN: {
		"Low function": "Use low dose or alternative statin.",
		"Intermediate": "Consider reduced dose.",
		"Normal":       "Standard dose.",
	},
	domain.AZATHIOPRINE: {
		"Low activity": "Use very low dose or alternative.",
		"Intermediate": "Reduce dose.",
		"Normal":       "Standard dose.",
	},
	domain.FLUOROURACIL: {
		"DPD deficient":    "Do not use full dose; consider alternative.",
		"DPD intermediate": "Start at 50% dose reduction.",
		"DPD normal":       "Standard dose.",
	},
}

// NormalizePhenotypeKey resolves a free-form phenotype string to a canonical
// table key. This is deliberately a loose heuristic matcher, not a strict
// enum lookup: upstream labels are wordy and case-varied, and an unrecognized
// label must fail safe to the normal-metabolizer key rather than error.
func NormalizePhenotypeKey(phenotype string) string {
	p := strings.ToUpper(strings.TrimSpace(phenotype))
	switch p {
	case "PM", "IM", "NM", "UM":
		return p
	}
	if strings.Contains(p, "DEFICIENT") || (strings.Contains(p, "LOW") && strings.Contains(p, "FUNCTION")) {
		return "Low function"
	}
	if strings.Contains(p, "INTERMEDIATE") || strings.Contains(phenotype, "DPD INTERMEDIATE") {
		if strings.Contains(phenotype, "DPD") {
			return "DPD intermediate"
		}
		return "Intermediate"
	}
	if strings.Contains(p, "NORMAL") || strings.Contains(phenotype, "DPD NORMAL") {
		if strings.Contains(phenotype, "DPD") {
			return "DPD normal"
		}
		return "Normal"
	}
	if strings.Contains(phenotype, "LOW ACTIVITY") {
		return "Low activity"
	}
	for _, k := range phenotypeKeys {
		if strings.Contains(p, strings.ToUpper(k)) || strings.Contains(phenotype, k) {
			return k
		}
	}
	return "NM"
}

// Recommend is a pure, total function: it never fails, and an unsupported
// drug short-circuits to a safe out-of-scope recommendation without touching
// the tables.
func (e *Engine) Recommend(drug domain.Drug, gene domain.Gene, phenotype string) domain.CpicRecommendation {
	drug = domain.Drug(strings.ToUpper(strings.TrimSpace(string(drug))))
	if !domain.AllowedDrugs[drug] {
		return domain.CpicRecommendation{
			RiskLabel:          domain.RiskSafe,
			Severity:           domain.SeverityLow,
			ClinicalAction:     "Drug not in scope.",
			GuidelineReference: "CPIC",
		}
	}

	key := NormalizePhenotypeKey(phenotype)
	risk, found := phenotypeToRisk[key]
	if !found {
		risk = phenotypeToRisk["NM"]
	}

	actions := clinicalActions[drug]
	action := actions[key]
	if action == "" {
		action = actions["NM"]
	}
	if action == "" {
		action = "Standard dose per CPIC."
	}

	return domain.CpicRecommendation{
		RiskLabel:          risk.label,
		Severity:           risk.severity,
		ClinicalAction:     action,
		GuidelineReference: "CPIC",
	}
}
