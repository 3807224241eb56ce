package vcf

import (
	"strings"
	"unicode/utf8"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// TextExtractor is the pure-text fallback extractor. It accepts only plain
// uncompressed payloads and must produce exactly the same output as
// StreamExtractor for any well-formed text input.
type TextExtractor struct{}

// NewTextExtractor creates the fallback extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract implements Extractor
func (e *TextExtractor) Extract(content []byte, maxSize int64) ([]domain.VariantRecord, bool, string) {
	if int64(len(content)) > maxSize {
		return []domain.VariantRecord{}, false, "VCF exceeds max size"
	}
	if !utf8.Valid(content) {
		return []domain.VariantRecord{}, false, "content is not valid text"
	}

	variants := []domain.VariantRecord{}
	seen := map[domain.Gene]bool{}
	sawHeader := false

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "#CHROM") {
				sawHeader = true
			}
			continue
		}
		if line == "" {
			continue
		}
		if rec, keep := parseDataLine(line); keep {
			variants = append(variants, rec)
			seen[rec.Gene] = true
		}
	}
	if !sawHeader {
		return []domain.VariantRecord{}, false, "missing #CHROM header line"
	}

	return variants, true, coverageString(seen)
}

var _ Extractor = (*TextExtractor)(nil)
