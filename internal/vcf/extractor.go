// Package vcf extracts typed variant records from VCF payloads, restricted to
// the six supported pharmacogenes. Records whose gene cannot be resolved to
// the whitelist are discarded, not flagged.
package vcf

import (
	"sort"
	"strings"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Extractor turns raw VCF bytes into variant records plus a coverage summary.
// On failure the variant list is empty, ok is false and coverage holds an
// error string instead of a gene list.
type Extractor interface {
	Extract(content []byte, maxSize int64) (variants []domain.VariantRecord, ok bool, coverage string)
}

// resolveRSID picks the first semicolon-delimited ID token with an rs prefix.
// A bare non-rs ID is kept as-is unless it is the VCF missing marker.
func resolveRSID(idField string) string {
	if idField == "" || idField == "." {
		return ""
	}
	for _, tok := range strings.Split(idField, ";") {
		tok = strings.TrimSpace(tok)
		if strings.HasPrefix(tok, "rs") {
			return tok
		}
	}
	return idField
}

// infoValue extracts key=value entries from a VCF INFO field
func infoValue(info, key string) string {
	for _, entry := range strings.Split(info, ";") {
		k, v, found := strings.Cut(entry, "=")
		if found && k == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// starFromInfo checks the INFO keys that may carry a named-allele annotation
func starFromInfo(info string) string {
	for _, key := range []string{"STAR", "STAR_ALLELE", "ALLELE"} {
		if v := infoValue(info, key); v != "" {
			return v
		}
	}
	return ""
}

// normalizeGenotype reads the GT value of the first sample and normalizes it
// to two allele calls. Any unresolvable allele index collapses the whole call
// to "./.".
func normalizeGenotype(format string, sample string) string {
	gtIdx := -1
	for i, key := range strings.Split(format, ":") {
		if key == "GT" {
			gtIdx = i
			break
		}
	}
	if gtIdx < 0 {
		return "./."
	}
	fields := strings.Split(sample, ":")
	if gtIdx >= len(fields) {
		return "./."
	}
	gt := strings.TrimSpace(fields[gtIdx])

	sep := "/"
	if strings.Contains(gt, "|") && !strings.Contains(gt, "/") {
		sep = "|"
	}
	parts := strings.FieldsFunc(gt, func(r rune) bool { return r == '/' || r == '|' })
	if len(parts) < 2 {
		return "./."
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if !isAlleleIndex(a) || !isAlleleIndex(b) {
		return "./."
	}
	return a + sep + b
}

func isAlleleIndex(s string) bool {
	if s == "" || s == "." {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseDataLine parses one tab-separated variant line into a record. The
// second return is false when the line carries no resolvable supported gene.
func parseDataLine(line string) (domain.VariantRecord, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return domain.VariantRecord{}, false
	}

	rsid := resolveRSID(fields[2])
	info := fields[7]

	var gene domain.Gene
	if g := infoValue(info, "GENE"); g != "" {
		gene = domain.Gene(g)
	} else if rsid != "" {
		gene = domain.RSIDToGene[rsid]
	}
	if !domain.AllowedGenes[gene] {
		return domain.VariantRecord{}, false
	}

	genotype := "./."
	if len(fields) >= 10 {
		genotype = normalizeGenotype(fields[8], fields[9])
	}

	return domain.VariantRecord{
		Gene:     gene,
		Star:     starFromInfo(info),
		RS:       rsid,
		Genotype: genotype,
	}, true
}

// coverageString serializes the seen-gene set as a sorted comma-joined list,
// or "none" when empty.
func coverageString(seen map[domain.Gene]bool) string {
	if len(seen) == 0 {
		return "none"
	}
	names := make([]string, 0, len(seen))
	for g := range seen {
		names = append(names, string(g))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
