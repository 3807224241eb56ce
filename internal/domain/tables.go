package domain

// Fixed reference tables. Loaded once at startup, read-only afterwards; no
// write path exists.

// AllowedGenes is the supported-gene whitelist
var AllowedGenes = map[Gene]bool{
	CYP2D6:  true,
	CYP2C19: true,
	CYP2C9:  true,
	SLCO1B1: true,
	TPMT:    true,
	DPYD:    true,
}

// AllowedDrugs is the supported-drug whitelist
var AllowedDrugs = map[Drug]bool{
	CODEINE:      true,
	WARFARIN:     true,
	CLOPIDOGREL:  true,
	SIMVASTATIN:  true,
	AZATHIOPRINE: true,
	FLUOROURACIL: true,
}

// DrugGeneMap maps each supported drug to its CPIC pharmacogene
var DrugGeneMap = map[Drug]Gene{
	CODEINE:      CYP2D6,
	WARFARIN:     CYP2C9,
	CLOPIDOGREL:  CYP2C19,
	SIMVASTATIN:  SLCO1B1,
	AZATHIOPRINE: TPMT,
	FLUOROURACIL: DPYD,
}

// RSIDToGene maps common pharmacogenomic reference-SNP markers to their gene
var RSIDToGene = map[string]Gene{
	// CYP2C19
	"rs4244285":  CYP2C19,
	"rs4986893":  CYP2C19,
	"rs12248560": CYP2C19,
	// CYP2C9
	"rs1799853": CYP2C9,
	"rs1057910": CYP2C9,
	// CYP2D6
	"rs3892097":  CYP2D6,
	"rs5030655":  CYP2D6,
	"rs1065852":  CYP2D6,
	"rs28371725": CYP2D6,
	// SLCO1B1
	"rs4149056": SLCO1B1,
	"rs2306283": SLCO1B1,
	// TPMT
	"rs1800462": TPMT,
	"rs1800460": TPMT,
	"rs1142345": TPMT,
	// DPYD
	"rs3918290":  DPYD,
	"rs55886062": DPYD,
	"rs67376798": DPYD,
}

// CpicEvidenceLevels maps each drug to the evidence level of its CPIC
// guideline. All six guidelines carry level A evidence.
var CpicEvidenceLevels = map[Drug]string{
	CODEINE:      "1A",
	WARFARIN:     "1A",
	CLOPIDOGREL:  "1A",
	SIMVASTATIN:  "1A",
	AZATHIOPRINE: "1A",
	FLUOROURACIL: "1A",
}
