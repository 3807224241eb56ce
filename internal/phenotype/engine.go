// Package phenotype infers star-allele diplotypes and metabolizer phenotypes
// from extracted variant records. All scoring is fixed arithmetic over
// per-gene allele activity tables; there is no statistical inference.
package phenotype

import (
	"strconv"
	"strings"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
)

// Engine maps (gene, variants) to a PhenotypeProfile. Pure and stateless.
type Engine struct{}

// NewEngine creates a phenotype inference engine
func NewEngine() *Engine {
	return &Engine{}
}

// Named-allele tables per gene. Activity is on a scale where a fully
// functional allele scores 1.0.
var (
	cyp2c19Alleles = map[string]string{
		"rs4244285":  "*2",
		"rs4986893":  "*3",
		"rs12248560": "*17",
	}
	cyp2c9Alleles = map[string]string{
		"rs1799853": "*2",
		"rs1057910": "*3",
	}
	cyp2d6Alleles = map[string]string{
		"rs3892097":  "*4",
		"rs5030655":  "*6",
		"rs1065852":  "*10",
		"rs28371725": "*41",
	}
)

// Infer produces the profile for one gene from variants already filtered to
// the supported set. An unsupported gene yields a degraded-but-defined
// "Unknown" profile, never an error.
func (e *Engine) Infer(gene domain.Gene, variants []domain.VariantRecord) domain.PhenotypeProfile {
	if !domain.AllowedGenes[gene] {
		return domain.PhenotypeProfile{Gene: gene, Diplotype: "*1/*1", Phenotype: "Unknown", ActivityLevel: 1}
	}

	geneVariants := make([]domain.VariantRecord, 0, len(variants))
	for _, v := range variants {
		if v.Gene == gene {
			geneVariants = append(geneVariants, v)
		}
	}

	var diplotype, phenotype string
	var level float64
	switch gene {
	case domain.CYP2C19:
		diplotype, phenotype, level = scoreCYP2C19(geneVariants)
	case domain.CYP2C9:
		diplotype, phenotype, level = scoreCYP2C9(geneVariants)
	case domain.CYP2D6:
		diplotype, phenotype, level = scoreCYP2D6(geneVariants)
	case domain.SLCO1B1:
		diplotype, phenotype, level = scoreSLCO1B1(geneVariants)
	case domain.TPMT:
		diplotype, phenotype, level = scoreTPMT(geneVariants)
	case domain.DPYD:
		diplotype, phenotype, level = scoreDPYD(geneVariants)
	}

	return domain.PhenotypeProfile{
		Gene:          gene,
		Diplotype:     diplotype,
		Phenotype:     phenotype,
		ActivityLevel: level,
	}
}

// countVariantAlleles counts non-reference allele calls in a genotype string.
// Phased and unphased separators are equivalent here.
func countVariantAlleles(gt string) int {
	n := 0
	for _, p := range strings.Split(strings.ReplaceAll(gt, "|", "/"), "/") {
		p = strings.TrimSpace(p)
		if p == "" || p == "." {
			continue
		}
		if idx, err := strconv.Atoi(p); err == nil && idx >= 1 {
			n++
		}
	}
	return n
}

// assignLowest folds an allele activity into the two-slot diplotype model:
// each contributing call is assigned to whichever slot currently holds the
// higher activity, ties going to the first slot, and the slot keeps the
// minimum of its value and the incoming activity.
func assignLowest(slots *[2]float64, activity float64, calls int) {
	for i := 0; i < calls; i++ {
		if slots[1] > slots[0] {
			if activity < slots[1] {
				slots[1] = activity
			}
		} else {
			if activity < slots[0] {
				slots[0] = activity
			}
		}
	}
}

// scoreCYP2C19 accumulates loss-of-function (*2/*3) and increased-function
// (*17) calls; *2 and *3 score 0, *17 scores 1.5, *1 scores 1.
func scoreCYP2C19(variants []domain.VariantRecord) (string, string, float64) {
	nLoF, nGain := 0, 0
	for _, v := range variants {
		c := countVariantAlleles(v.Genotype)
		switch cyp2c19Alleles[v.RS] {
		case "*17":
			nGain += c
		case "*2", "*3":
			nLoF += c
		}
	}
	nRef := 2 - nLoF - nGain
	if nRef < 0 {
		nRef = 0
	}
	score := float64(nRef)*1.0 + float64(nGain)*1.5
	switch {
	case score == 0:
		return "*2/*2", "PM", 0.0
	case score <= 1:
		return "*1/*2", "IM", 1.0
	case score < 2.5:
		return "*1/*1", "NM", 2.0
	default:
		return "*1/*17", "UM", 3.0
	}
}

// scoreCYP2C9 uses the two-slot model: *2 = 0.5, *3 = 0, *1 = 1
func scoreCYP2C9(variants []domain.VariantRecord) (string, string, float64) {
	slots := [2]float64{1.0, 1.0}
	for _, v := range variants {
		c := countVariantAlleles(v.Genotype)
		var a float64
		switch cyp2c9Alleles[v.RS] {
		case "*2":
			a = 0.5
		case "*3":
			a = 0.0
		default:
			a = 1.0
		}
		assignLowest(&slots, a, c)
	}
	switch total := slots[0] + slots[1]; {
	case total <= 0.5:
		return "*3/*3", "PM", 0.0
	case total <= 1.5:
		return "*1/*3", "IM", 1.0
	default:
		return "*1/*1", "NM", 2.0
	}
}

// scoreCYP2D6 uses the two-slot model: *4/*6 = 0, *10/*41 = 0.5, *1 = 1
func scoreCYP2D6(variants []domain.VariantRecord) (string, string, float64) {
	slots := [2]float64{1.0, 1.0}
	for _, v := range variants {
		c := countVariantAlleles(v.Genotype)
		var a float64
		switch cyp2d6Alleles[v.RS] {
		case "*4", "*6":
			a = 0.0
		case "*10", "*41":
			a = 0.5
		default:
			a = 1.0
		}
		assignLowest(&slots, a, c)
	}
	switch total := slots[0] + slots[1]; {
	case total == 0:
		return "*4/*4", "PM", 0.0
	case total <= 1:
		return "*1/*4", "IM", 1.0
	case total < 2.5:
		return "*1/*1", "NM", 2.0
	default:
		return "*1/*1xN", "UM", 3.0
	}
}

// scoreSLCO1B1 keys off rs4149056 (c.521T>C, decreased transport);
// rs2306283 is a normal-function marker
func scoreSLCO1B1(variants []domain.VariantRecord) (string, string, float64) {
	for _, v := range variants {
		if v.RS != "rs4149056" {
			continue
		}
		if c := countVariantAlleles(v.Genotype); c >= 1 {
			if c >= 2 {
				return "*5/*5", "Low function", 0.0
			}
			return "*1a/*5", "Intermediate", 1.0
		}
	}
	return "*1a/*1a", "Normal", 2.0
}

// scoreTPMT counts loss-of-function calls across all TPMT markers
func scoreTPMT(variants []domain.VariantRecord) (string, string, float64) {
	nLoF := 0
	for _, v := range variants {
		nLoF += countVariantAlleles(v.Genotype)
	}
	if nLoF > 2 {
		nLoF = 2
	}
	switch {
	case nLoF >= 2:
		return "*3A/*3A", "Low activity", 0.0
	case nLoF == 1:
		return "*1/*3A", "Intermediate", 1.0
	default:
		return "*1/*1", "Normal", 2.0
	}
}

// scoreDPYD distinguishes no-function (*2A, *13) from decreased-function
// (c.2846A>T) calls per CPIC activity-score conventions
func scoreDPYD(variants []domain.VariantRecord) (string, string, float64) {
	nNoFunc, nDec := 0, 0
	for _, v := range variants {
		c := countVariantAlleles(v.Genotype)
		switch v.RS {
		case "rs3918290", "rs55886062":
			if c > nNoFunc {
				nNoFunc = c
			}
		case "rs67376798":
			if c > nDec {
				nDec = c
			}
		}
	}
	if nNoFunc > 2 {
		nNoFunc = 2
	}
	dec := nDec
	if remaining := 2 - nNoFunc; dec > remaining {
		dec = remaining
	}
	activity := 2.0 - float64(nNoFunc) - 0.5*float64(dec)
	if activity < 0 {
		activity = 0
	}
	switch {
	case activity <= 0:
		return "*2A/*2A", "DPD deficient", 0.0
	case activity < 1.5:
		return "*1/*2A", "DPD intermediate", 1.0
	default:
		return "*1/*1", "DPD normal", 2.0
	}
}
