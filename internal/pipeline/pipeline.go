// Package pipeline sequences the decision stages for one analysis request.
// Every stage is an unconditional gate: a failure aborts before any later
// stage runs, so a partial or inconsistent result is never observable.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/confidence"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/cpic"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/domain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/explain"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/phenotype"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/report"
	"github.com/Shashank-V-A/pharmaco-guidance-hub/internal/vcf"
)

// Fixed response text outside the rule tables
const alternativeOptionsText = "See CPIC guideline for alternatives if dose adjustment not suitable."

// Pipeline wires the extraction, inference, rule, confidence and explanation
// stages. Requests are processed synchronously end to end; the only shared
// state is the advisory result store written after schema validation.
type Pipeline struct {
	logger      *logrus.Logger
	extractor   vcf.Extractor
	phenotypes  *phenotype.Engine
	rules       *cpic.Engine
	confidences *confidence.Engine
	explainer   explain.Explainer
	store       report.Store
	maxVcfSize  int64
}

// New creates a decision pipeline
func New(
	logger *logrus.Logger,
	extractor vcf.Extractor,
	explainer explain.Explainer,
	store report.Store,
	maxVcfSize int64,
) *Pipeline {
	return &Pipeline{
		logger:      logger,
		extractor:   extractor,
		phenotypes:  phenotype.NewEngine(),
		rules:       cpic.NewEngine(),
		confidences: confidence.NewEngine(),
		explainer:   explainer,
		store:       store,
		maxVcfSize:  maxVcfSize,
	}
}

// AnalyzeInput is one request's raw material
type AnalyzeInput struct {
	Filename        string
	Content         []byte
	DrugName        string
	PatientID       string
	ExplanationMode explain.Mode
}

// Analyze runs the gating state machine. Exactly one of the returns is
// non-nil: a schema-validated result, or the abort that stopped the run.
func (p *Pipeline) Analyze(ctx context.Context, in AnalyzeInput) (*domain.AnalysisResult, *domain.PipelineAbort) {
	// ValidateDrug
	drug := domain.Drug(strings.ToUpper(strings.TrimSpace(in.DrugName)))
	if !domain.AllowedDrugs[drug] {
		return nil, domain.NewAbort(domain.StageValidateDrug, domain.AbortRuleEngine,
			fmt.Sprintf("drug_name must be one of: %s", strings.Join(sortedDrugs(), ", ")))
	}

	// ValidateFile
	name := strings.ToLower(in.Filename)
	if name == "" || (!strings.HasSuffix(name, ".vcf") && !strings.HasSuffix(name, ".vcf.gz")) {
		return nil, domain.NewAbort(domain.StageValidateFile, domain.AbortClientData,
			"File must be a VCF (.vcf or .vcf.gz)")
	}
	if int64(len(in.Content)) > p.maxVcfSize {
		return nil, domain.NewAbort(domain.StageValidateFile, domain.AbortClientData,
			fmt.Sprintf("VCF exceeds maximum size of %d bytes", p.maxVcfSize))
	}

	// ParseVcf
	variants, parsed, coverage := p.extractor.Extract(in.Content, p.maxVcfSize)
	if !parsed {
		p.logger.WithFields(logrus.Fields{"drug": drug, "detail": coverage}).Info("VCF parsing failed")
		return nil, domain.NewAbort(domain.StageParseVcf, domain.AbortClientData, coverage)
	}

	// ValidateGeneForDrug
	gene, ok := domain.DrugGeneMap[drug]
	if !ok {
		return nil, domain.NewAbort(domain.StageValidateGeneForDrug, domain.AbortRuleEngine,
			fmt.Sprintf("no pharmacogene mapped for drug %s", drug))
	}

	// ValidateGeneDetected
	if !coverageContains(coverage, gene) {
		return nil, domain.NewAbort(domain.StageValidateGeneDetected, domain.AbortRuleEngine,
			fmt.Sprintf("gene %s required for %s not covered by sample (coverage: %s)", gene, drug, coverage))
	}

	// InferPhenotype
	profile := p.phenotypes.Infer(gene, variants)

	// ValidatePhenotypeDefined
	switch profile.Phenotype {
	case "", "Unknown", "Genotype not determined":
		return nil, domain.NewAbort(domain.StageValidatePhenotypeDefined, domain.AbortRuleEngine,
			fmt.Sprintf("phenotype undetermined for gene %s", gene))
	}

	// ApplyRules
	rec := p.rules.Recommend(drug, gene, profile.Phenotype)
	ruleStatus := domain.RuleStatusSuccess

	// ValidateRiskLabel
	switch rec.RiskLabel {
	case domain.RiskSafe, domain.RiskAdjustDosage, domain.RiskIneffective, domain.RiskToxic:
	default:
		return nil, domain.NewAbort(domain.StageValidateRiskLabel, domain.AbortRuleEngine,
			fmt.Sprintf("risk label %q not mapped", rec.RiskLabel))
	}

	// ComputeConfidence
	conf := p.confidences.Score(confidence.Input{
		ParsingSucceeded: parsed,
		GeneCoverage:     coverage,
		RuleEngineStatus: ruleStatus,
		VariantCount:     len(variants),
		Diplotype:        profile.Diplotype,
		Phenotype:        profile.Phenotype,
	})

	// ExternalExplanation: runs only once a valid risk label exists, and its
	// failure degrades inside the explainer instead of aborting.
	explanation := p.explainer.Explain(ctx, explain.Request{
		Drug:               drug,
		Gene:               gene,
		Phenotype:          profile.Phenotype,
		RiskLabel:          rec.RiskLabel,
		Severity:           rec.Severity,
		GuidelineReference: rec.GuidelineReference,
		DetectedVariants:   variants,
		Mode:               in.ExplanationMode,
	})

	// AssembleResult
	patientID := strings.TrimSpace(in.PatientID)
	if patientID == "" {
		patientID = uuid.New().String()
	}
	result := &domain.AnalysisResult{
		PatientID: patientID,
		Drug:      drug,
		Timestamp: time.Now().UTC().Format(domain.TimestampLayout),
		RiskAssessment: domain.RiskAssessment{
			RiskLabel:       rec.RiskLabel,
			Severity:        rec.Severity,
			ConfidenceScore: conf.Score,
		},
		PharmacogenomicProfile: domain.PharmacogenomicProfile{
			Gene:             gene,
			Diplotype:        profile.Diplotype,
			Phenotype:        profile.Phenotype,
			DetectedVariants: variants,
		},
		ClinicalRecommendation: domain.ClinicalRecommendation{
			DoseAdjustment:     rec.ClinicalAction,
			AlternativeOptions: alternativeOptionsText,
			GuidelineReference: rec.GuidelineReference,
		},
		LLMExplanation: explanation,
		QualityMetrics: domain.QualityMetrics{
			VcfParsingSuccess: parsed,
			GeneCoverage:      coverage,
			RuleEngineStatus:  ruleStatus,
		},
		AuditTrail: domain.AuditTrail{
			GeneDetected:        gene,
			PhenotypeDetermined: profile.Phenotype,
			RuleApplied:         fmt.Sprintf("%s:%s->%s", drug, cpic.NormalizePhenotypeKey(profile.Phenotype), rec.RiskLabel),
			CpicEvidenceLevel:   domain.CpicEvidenceLevels[drug],
			ConfidenceBreakdown: conf.Breakdown,
		},
	}

	// ValidateResultSchema: failing here is a pipeline bug, logged apart
	// from client errors.
	if err := domain.ValidateAnalysisResult(result); err != nil {
		p.logger.WithFields(logrus.Fields{
			"drug":  drug,
			"gene":  gene,
			"error": err.Error(),
		}).Error("Assembled result failed schema validation")
		return nil, domain.NewAbort(domain.StageValidateResultSchema, domain.AbortInternal, err.Error())
	}

	// Cache write is the pipeline's only side effect: idempotent,
	// last-write-wins per patient identifier.
	p.store.Put(patientID, result)

	p.logger.WithFields(logrus.Fields{
		"patient_id": patientID,
		"drug":       drug,
		"gene":       gene,
		"phenotype":  profile.Phenotype,
		"risk_label": rec.RiskLabel,
		"confidence": conf.Score,
	}).Info("Analysis completed")

	return result, nil
}

func coverageContains(coverage string, gene domain.Gene) bool {
	for _, g := range strings.Split(coverage, ",") {
		if domain.Gene(g) == gene {
			return true
		}
	}
	return false
}

func sortedDrugs() []string {
	names := make([]string, 0, len(domain.AllowedDrugs))
	for d := range domain.AllowedDrugs {
		names = append(names, string(d))
	}
	sort.Strings(names)
	return names
}
