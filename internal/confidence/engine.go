// Package confidence turns pipeline-stage signals into an auditable 0–1
// score. All arithmetic happens in integer hundredths so the additive
// breakdown sums to the score exactly, not approximately.
package confidence

import (
	"math"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Engine computes confidence scores. Pure and stateless.
type Engine struct{}

// NewEngine creates a confidence engine
func NewEngine() *Engine {
	return &Engine{}
}

// Input carries the pipeline signals the score is derived from
type Input struct {
	ParsingSucceeded bool
	GeneCoverage     string
	RuleEngineStatus domain.RuleEngineStatus
	VariantCount     int
	Diplotype        string
	Phenotype        string
}

// Point caps, in hundredths
const (
	parsingPoints      = 35
	evidenceFullPoints = 30
	evidencePartial    = 15
	coveragePoints     = 20
	perVariantPoints   = 3
	variantCountCap    = 10
	diplotypePoints    = 5
	phenotypePoints    = 5
	maxScoreCents      = 100
)

// Score computes the rounded score and its breakdown. The four breakdown
// components are rescaled to the capped score and the diplotype-clarity
// component absorbs the rounding residual, so the components always sum
// exactly to the score.
func (e *Engine) Score(in Input) domain.ConfidenceResult {
	parsing := 0
	if in.ParsingSucceeded {
		parsing = parsingPoints
	}

	evidence := 0
	switch in.RuleEngineStatus {
	case domain.RuleStatusSuccess:
		evidence = evidenceFullPoints
	case domain.RuleStatusPartial:
		evidence = evidencePartial
	}

	variant := 0
	if in.GeneCoverage != "" && in.GeneCoverage != "none" {
		variant = coveragePoints
	}
	if in.VariantCount > 0 {
		extra := in.VariantCount * perVariantPoints
		if extra > variantCountCap {
			extra = variantCountCap
		}
		variant += extra
	}

	clarity := 0
	if diplotypeDefined(in.Diplotype) {
		clarity += diplotypePoints
	}
	if phenotypeDefined(in.Phenotype) {
		clarity += phenotypePoints
	}

	raw := parsing + evidence + variant + clarity
	score := raw
	if score > maxScoreCents {
		score = maxScoreCents
	}

	if raw == 0 {
		return domain.ConfidenceResult{Score: 0, Breakdown: domain.ConfidenceBreakdown{}}
	}

	// Rescale components to the capped score, rounding each to a whole
	// hundredth; the last component takes whatever is left.
	scale := float64(score) / float64(raw)
	evidenceCents := int(math.Round(float64(evidence) * scale))
	variantCents := int(math.Round(float64(variant) * scale))
	parsingCents := int(math.Round(float64(parsing) * scale))
	clarityCents := score - evidenceCents - variantCents - parsingCents

	return domain.ConfidenceResult{
		Score: cents(score),
		Breakdown: domain.ConfidenceBreakdown{
			EvidenceWeight:      cents(evidenceCents),
			VariantCompleteness: cents(variantCents),
			ParsingIntegrity:    cents(parsingCents),
			DiplotypeClarity:    cents(clarityCents),
		},
	}
}

func cents(c int) float64 {
	return float64(c) / 100
}

// diplotypeDefined rejects the placeholder forms an upstream no-call produces
func diplotypeDefined(d string) bool {
	return d != "" && d != "—" && d != "."
}

// phenotypeDefined rejects the undetermined labels
func phenotypeDefined(p string) bool {
	return p != "" && p != "Unknown" && p != "Genotype not determined"
}
