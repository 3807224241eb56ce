// Package explain generates the narrative explanation attached to a
// completed risk classification. Explanation is best-effort: every failure
// mode degrades to a fixed fallback payload, and nothing in this package may
// alter risk fields.
package explain

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Mode selects the explanation register
type Mode string

const (
	// ModeClinician produces short, action-focused text
	ModeClinician Mode = "clinician"
	// ModeResearch produces detailed mechanistic text
	ModeResearch Mode = "research"
)

// Request is the read-only classification context an explanation is built
// from. The explainer must not modify or second-guess any of it.
type Request struct {
	Drug               domain.Drug
	Gene               domain.Gene
	Phenotype          string
	RiskLabel          domain.RiskLabel
	Severity           domain.Severity
	GuidelineReference string
	DetectedVariants   []domain.VariantRecord
	Mode               Mode
}

// Explainer is the capability interface for narrative generation. Explain
// never returns an error; implementations degrade internally.
type Explainer interface {
	Explain(ctx context.Context, req Request) domain.Explanation
	Name() string
}

// New selects the implementation: the HTTP-backed explainer when an API key
// is configured, the deterministic fallback otherwise.
func New(cfg domain.ExplanationConfig, logger *logrus.Logger) Explainer {
	if cfg.APIKey == "" {
		return NewFallbackExplainer()
	}
	return NewHTTPExplainer(cfg, logger)
}
