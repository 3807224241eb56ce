// Package detect matches OCR-extracted label text against the supported drug
// list. Input enhancement only: it feeds the analyze endpoint a drug name and
// never touches the rule, phenotype or confidence engines. The OCR step
// itself is an external collaborator; this package starts from its text.
package detect

import (
	"math"
	"strings"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Confidence bounds for an accepted match
const (
	minConfidence = 0.6
	maxConfidence = 0.99

	// Any exact substring match is floored here so real-world labels
	// ("Codeine Phosphate Tablets") pass even when the drug name is a small
	// fraction of the OCR text.
	exactMatchFloor = 0.8
)

// drugOrder fixes the scan order for deterministic tie-breaking
var drugOrder = []domain.Drug{
	domain.CODEINE,
	domain.WARFARIN,
	domain.CLOPIDOGREL,
	domain.SIMVASTATIN,
	domain.AZATHIOPRINE,
	domain.FLUOROURACIL,
}

// Match finds which supported drug appears in the text. With multiple
// candidates the highest occurrence count wins; equal counts prefer the
// longer name. Returns ok=false when no supported drug appears.
func Match(text string) (domain.Drug, float64, bool) {
	if strings.TrimSpace(text) == "" {
		return "", 0, false
	}
	upper := strings.ToUpper(text)
	totalLen := len(strings.TrimSpace(upper))
	if totalLen < 1 {
		totalLen = 1
	}

	var best domain.Drug
	bestCount := 0
	for _, drug := range drugOrder {
		count := strings.Count(upper, string(drug))
		if count == 0 {
			continue
		}
		if count > bestCount || (count == bestCount && (best == "" || len(drug) > len(best))) {
			best = drug
			bestCount = count
		}
	}
	if best == "" {
		return "", 0, false
	}

	raw := float64(len(best)*bestCount) / float64(totalLen)
	confidence := math.Max(raw, exactMatchFloor)
	confidence = math.Max(minConfidence, math.Min(maxConfidence, confidence))
	confidence = math.Round(confidence*100) / 100
	return best, confidence, true
}
