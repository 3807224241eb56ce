package domain

import (
	"fmt"
	"net/http"
	"time"
)

// AbortClass partitions pipeline failures into the three observable families
type AbortClass string

const (
	// AbortClientData covers malformed, oversized or unparseable input
	AbortClientData AbortClass = "client_data_error"
	// AbortRuleEngine covers unsupported drugs, missing gene coverage,
	// undetermined phenotypes and unmapped risk labels
	AbortRuleEngine AbortClass = "rule_engine_inapplicable"
	// AbortInternal covers result-schema validation failures; reaching it is
	// always a bug in the pipeline itself
	AbortInternal AbortClass = "internal_inconsistency"
)

// Stage identifies a state of the decision pipeline
type Stage string

const (
	StageValidateDrug             Stage = "validate_drug"
	StageValidateFile             Stage = "validate_file"
	StageParseVcf                 Stage = "parse_vcf"
	StageValidateGeneForDrug      Stage = "validate_gene_for_drug"
	StageValidateGeneDetected     Stage = "validate_gene_detected"
	StageInferPhenotype           Stage = "infer_phenotype"
	StageValidatePhenotypeDefined Stage = "validate_phenotype_defined"
	StageApplyRules               Stage = "apply_rules"
	StageValidateRiskLabel        Stage = "validate_risk_label"
	StageComputeConfidence        Stage = "compute_confidence"
	StageExternalExplanation      Stage = "external_explanation"
	StageAssembleResult           Stage = "assemble_result"
	StageValidateResultSchema     Stage = "validate_result_schema"
)

// PipelineAbort is a gated stage failure. No partial result escapes with it;
// the handler maps it straight to the stable error shape.
type PipelineAbort struct {
	Stage   Stage      `json:"stage"`
	Class   AbortClass `json:"class"`
	Details string     `json:"details"`
}

// Error implements the error interface
func (a *PipelineAbort) Error() string {
	return fmt.Sprintf("pipeline aborted at %s (%s): %s", a.Stage, a.Class, a.Details)
}

// HTTPStatus maps the abort class to the response status
func (a *PipelineAbort) HTTPStatus() int {
	switch a.Class {
	case AbortClientData:
		return http.StatusBadRequest
	case AbortRuleEngine:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorTitle returns the stable error field for the abort class
func (a *PipelineAbort) ErrorTitle() string {
	switch a.Class {
	case AbortClientData:
		return "VCF parsing failed"
	case AbortRuleEngine:
		return "Rule engine failed"
	default:
		return "Internal inconsistency"
	}
}

// NewAbort creates a PipelineAbort for the given stage and class
func NewAbort(stage Stage, class AbortClass, details string) *PipelineAbort {
	return &PipelineAbort{Stage: stage, Class: class, Details: details}
}

// ServiceError is a structured error for non-pipeline failures
type ServiceError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrInvalidInput   = "INVALID_INPUT"
	ErrNotFound       = "NOT_FOUND"
	ErrExternalAPI    = "EXTERNAL_API_ERROR"
	ErrReportRender   = "REPORT_RENDER_ERROR"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
)

// NewServiceError creates a ServiceError with timestamp
func NewServiceError(code, message, details, requestID string) *ServiceError {
	return &ServiceError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}
