package explain

import (
	"context"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Fixed fallback text, also used when the remote service degrades
const (
	fallbackSummary   = "Explanation unavailable."
	fallbackMechanism = "Deterministic CPIC rule applied."
	fallbackRationale = "Based on CPIC guidelines."

	defaultMechanism = "Mechanism follows CPIC guideline."
	defaultRationale = "Based on CPIC guideline."
)

// FallbackExplainer returns the fixed explanation payload
type FallbackExplainer struct{}

// NewFallbackExplainer creates the deterministic explainer
func NewFallbackExplainer() *FallbackExplainer {
	return &FallbackExplainer{}
}

// Name implements Explainer
func (f *FallbackExplainer) Name() string { return "fallback" }

// Explain implements Explainer
func (f *FallbackExplainer) Explain(_ context.Context, _ Request) domain.Explanation {
	return fallbackExplanation()
}

func fallbackExplanation() domain.Explanation {
	return domain.Explanation{
		Summary:              fallbackSummary,
		MechanismExplanation: fallbackMechanism,
		VariantReferences:    []string{},
		ClinicalRationale:    fallbackRationale,
	}
}

var _ Explainer = (*FallbackExplainer)(nil)
